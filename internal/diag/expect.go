package diag

import (
	"fmt"
	"regexp"
	"strings"
)

// Expectation describes one diagnostic a scenario expects the checker
// to emit.
//
// Code is matched by exact string equality. Message is
// literal-or-pattern: exact equality first, regexp fallback anchored at
// the start of the actual message. Pattern declares the message as a
// regular expression up front so scenario loading can reject patterns
// that do not compile; it does not change matching order.
type Expectation struct {
	Message string `yaml:"message" json:"message"`
	Pattern bool   `yaml:"pattern,omitempty" json:"pattern,omitempty"`
	Code    string `yaml:"code" json:"code"`
}

// Match reports whether rec satisfies the expectation.
func (e Expectation) Match(rec Record) bool {
	if e.Code != rec.Code {
		return false
	}
	return e.matchMessage(rec.Message)
}

// matchMessage tries exact equality before the regexp fallback.
// A message that fails to compile as a regexp can still match literally.
func (e Expectation) matchMessage(msg string) bool {
	if e.Message == msg {
		return true
	}
	re, err := regexp.Compile(e.Message)
	if err != nil {
		return false
	}
	// Anchored at the start only: a match must begin at offset zero,
	// trailing text is tolerated.
	loc := re.FindStringIndex(msg)
	return loc != nil && loc[0] == 0
}

// Compile verifies that a Pattern expectation holds a valid regexp.
// Literal expectations always compile.
func (e Expectation) Compile() error {
	if !e.Pattern {
		return nil
	}
	if _, err := regexp.Compile(e.Message); err != nil {
		return fmt.Errorf("invalid message pattern %q: %w", e.Message, err)
	}
	return nil
}

// AssertionError is returned when a report does not conform to its
// expectations. It carries expected/actual context plus the full report
// for debugging.
type AssertionError struct {
	Type     string // assertion type for categorization
	Index    int    // record position, -1 for report-level assertions
	Expected string // human-readable expected outcome
	Actual   string // human-readable actual outcome
	Report   Report // full parsed report for context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s", e.Type)
	if e.Index >= 0 {
		fmt.Fprintf(&buf, " (diagnostic %d)", e.Index)
	}
	buf.WriteString("\n")
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull report:\n")
	for i, rec := range e.Report {
		fmt.Fprintf(&buf, "  [%d] %s  [%s]\n", i+1, rec.Message, rec.Code)
	}

	return buf.String()
}

// Assertion type constants.
const (
	AssertCount   = "diagnostic_count"
	AssertCode    = "diagnostic_code"
	AssertMessage = "diagnostic_message"
)

// Compare checks actual against expected, record by record, in order.
// It returns a slice of error messages for failed assertions, nil when
// the report conforms.
//
// A length mismatch short-circuits: positional comparison of sequences
// with different lengths would produce misleading per-record errors, and
// a count change is the primary signal that the checker's behavior moved.
func Compare(expected []Expectation, actual Report) []string {
	if len(expected) != len(actual) {
		err := &AssertionError{
			Type:     AssertCount,
			Index:    -1,
			Expected: fmt.Sprintf("%d diagnostic(s)", len(expected)),
			Actual:   fmt.Sprintf("%d diagnostic(s)", len(actual)),
			Report:   actual,
		}
		return []string{err.Error()}
	}

	var errors []string
	for i, exp := range expected {
		rec := actual[i]

		if exp.Code != rec.Code {
			err := &AssertionError{
				Type:     AssertCode,
				Index:    i,
				Expected: fmt.Sprintf("code %q", exp.Code),
				Actual:   fmt.Sprintf("code %q", rec.Code),
				Report:   actual,
			}
			errors = append(errors, err.Error())
			continue
		}

		if !exp.matchMessage(rec.Message) {
			err := &AssertionError{
				Type:     AssertMessage,
				Index:    i,
				Expected: fmt.Sprintf("message matching %q", exp.Message),
				Actual:   fmt.Sprintf("message %q", rec.Message),
				Report:   actual,
			}
			errors = append(errors, err.Error())
		}
	}

	return errors
}
