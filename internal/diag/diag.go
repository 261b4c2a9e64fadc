package diag

import (
	"regexp"
	"strings"
)

// Record is a single diagnostic reported by the checker.
// Records have no identity beyond value equality and are compared
// positionally within a Report.
type Record struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Report is an ordered sequence of diagnostic records.
// Insertion order equals the order of appearance in the checker's output.
type Report []Record

// lineRe matches one diagnostic line. Capture groups: line number,
// message, bracketed error code. The two spaces before the bracket are
// part of the checker's format and are matched exactly. The pattern is
// anchored at the start of the line only; trailing text after the
// closing bracket is tolerated.
var lineRe = regexp.MustCompile(`^.+\.py:(\d+): error: (.+)  \[(.+)\]`)

// Parse transforms raw checker output into a Report.
//
// Empty lines are discarded, then the last remaining line is dropped
// unconditionally as the summary line. Every other line either matches
// lineRe and yields a record, or is silently skipped. Parse never fails;
// empty input yields an empty report.
func Parse(raw string) Report {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if line != "" {
			lines = append(lines, line)
		}
	}
	if len(lines) > 0 {
		lines = lines[:len(lines)-1]
	}

	report := Report{}
	for _, line := range lines {
		m := lineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		report = append(report, Record{Message: m[2], Code: m[3]})
	}
	return report
}

// SkippedLines reports how many non-empty, non-summary lines of raw did
// not parse into a record. Useful for verbose logging at the harness
// level; the parser itself stays silent.
func SkippedLines(raw string, parsed Report) int {
	nonEmpty := 0
	for _, line := range strings.Split(raw, "\n") {
		if line != "" {
			nonEmpty++
		}
	}
	if nonEmpty == 0 {
		return 0
	}
	return nonEmpty - 1 - len(parsed)
}
