package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOutput = `sample.py:10: error: Argument 1 to "f" has incompatible type "int"; expected "str"  [arg-type]
sample.py:20: error: Incompatible return value type  [return-value]
Found 2 errors in 1 file (checked 1 source file)
`

func TestParse_Sample(t *testing.T) {
	report := Parse(sampleOutput)

	require.Len(t, report, 2)
	assert.Equal(t, Record{
		Message: `Argument 1 to "f" has incompatible type "int"; expected "str"`,
		Code:    "arg-type",
	}, report[0])
	assert.Equal(t, Record{
		Message: "Incompatible return value type",
		Code:    "return-value",
	}, report[1])
}

func TestParse_EmptyInput(t *testing.T) {
	assert.Empty(t, Parse(""))
}

func TestParse_SummaryOnly(t *testing.T) {
	// Zero diagnostics: the single line is the summary and is discarded.
	report := Parse("Success: no issues found in 1 source file\n")
	assert.Empty(t, report)
}

func TestParse_SingleSpaceSeparatorDoesNotMatch(t *testing.T) {
	raw := "sample.py:10: error: Incompatible return value type [return-value]\n" +
		"Found 1 error in 1 file (checked 1 source file)\n"

	assert.Empty(t, Parse(raw))
}

func TestParse_SkipsNonMatchingLines(t *testing.T) {
	raw := `sample.py:5: note: Revealed type is "builtins.int"
sample.py:10: error: Incompatible return value type  [return-value]
sample.py:12: warning: unused "type: ignore" comment
Found 1 error in 1 file (checked 1 source file)
`
	report := Parse(raw)

	require.Len(t, report, 1)
	assert.Equal(t, "return-value", report[0].Code)
}

func TestParse_OrderPreserved(t *testing.T) {
	raw := `a.py:1: error: first  [misc]
a.py:2: error: second  [misc]
a.py:3: error: third  [misc]
Found 3 errors in 1 file (checked 1 source file)
`
	report := Parse(raw)

	require.Len(t, report, 3)
	assert.Equal(t, "first", report[0].Message)
	assert.Equal(t, "second", report[1].Message)
	assert.Equal(t, "third", report[2].Message)
}

func TestParse_DuplicatesPreserved(t *testing.T) {
	raw := `a.py:1: error: same message  [misc]
a.py:1: error: same message  [misc]
Found 2 errors in 1 file (checked 1 source file)
`
	report := Parse(raw)

	require.Len(t, report, 2)
	assert.Equal(t, report[0], report[1])
}

func TestParse_OtherFilesNotFiltered(t *testing.T) {
	// The parser does not know which file was the target: any line
	// matching the diagnostic shape becomes a record.
	raw := `target.py:1: error: in target  [misc]
dependency.py:9: error: in dependency  [misc]
Found 2 errors in 2 files (checked 1 source file)
`
	report := Parse(raw)

	require.Len(t, report, 2)
	assert.Equal(t, "in dependency", report[1].Message)
}

func TestParse_EmptyLinesDiscardedBeforeSummary(t *testing.T) {
	raw := "\n\nsample.py:3: error: boom  [misc]\n\nFound 1 error in 1 file (checked 1 source file)\n\n"

	report := Parse(raw)

	require.Len(t, report, 1)
	assert.Equal(t, "boom", report[0].Message)
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(sampleOutput)
	second := Parse(sampleOutput)

	assert.Equal(t, first, second)
}

func TestSkippedLines(t *testing.T) {
	raw := `sample.py:5: note: a note
sample.py:10: error: Incompatible return value type  [return-value]
Found 1 error in 1 file (checked 1 source file)
`
	report := Parse(raw)

	assert.Equal(t, 1, SkippedLines(raw, report))
	assert.Equal(t, 0, SkippedLines("", Report{}))
}
