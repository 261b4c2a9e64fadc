package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpectation_LiteralMatch(t *testing.T) {
	exp := Expectation{Message: "Incompatible return value type", Code: "return-value"}

	assert.True(t, exp.Match(Record{Message: "Incompatible return value type", Code: "return-value"}))
}

func TestExpectation_PatternFallback(t *testing.T) {
	exp := Expectation{Message: `^Argument 1 to .+ has incompatible type`, Pattern: true, Code: "arg-type"}

	rec := Record{
		Message: `Argument 1 to "f" has incompatible type "int"; expected "str"`,
		Code:    "arg-type",
	}
	assert.True(t, exp.Match(rec))
}

func TestExpectation_PatternAnchoredAtStart(t *testing.T) {
	exp := Expectation{Message: "incompatible type", Pattern: true, Code: "arg-type"}

	// The pattern text appears mid-message, so an anchored match fails.
	rec := Record{Message: `Argument 1 to "f" has incompatible type`, Code: "arg-type"}
	assert.False(t, exp.Match(rec))
}

func TestExpectation_PatternPrefixMatches(t *testing.T) {
	exp := Expectation{Message: "Slice index must be", Pattern: true, Code: "misc"}

	rec := Record{Message: "Slice index must be an integer or None", Code: "misc"}
	assert.True(t, exp.Match(rec))
}

func TestExpectation_MetacharactersMatchLiterally(t *testing.T) {
	// "(" is not a valid regexp, so the fallback compile fails; the
	// literal-first order still lets the message match itself.
	exp := Expectation{Message: `Argument 1 to "f(" has incompatible type`, Code: "arg-type"}

	assert.True(t, exp.Match(Record{Message: `Argument 1 to "f(" has incompatible type`, Code: "arg-type"}))
	assert.False(t, exp.Match(Record{Message: "something else", Code: "arg-type"}))
}

func TestExpectation_CodeMismatch(t *testing.T) {
	exp := Expectation{Message: "Incompatible return value type", Code: "return-value"}

	assert.False(t, exp.Match(Record{Message: "Incompatible return value type", Code: "arg-type"}))
}

func TestExpectation_Compile(t *testing.T) {
	assert.NoError(t, Expectation{Message: "^Argument .+", Pattern: true}.Compile())
	assert.Error(t, Expectation{Message: "(unbalanced", Pattern: true}.Compile())

	// Literal expectations never fail to compile, even with metacharacters.
	assert.NoError(t, Expectation{Message: "(unbalanced"}.Compile())
}

func TestCompare_Conformant(t *testing.T) {
	expected := []Expectation{
		{Message: "^Argument 1 to .+ has incompatible type", Pattern: true, Code: "arg-type"},
		{Message: "Incompatible return value type", Code: "return-value"},
	}
	actual := Parse(sampleOutput)

	assert.Nil(t, Compare(expected, actual))
}

func TestCompare_CountMismatch(t *testing.T) {
	expected := []Expectation{
		{Message: "Incompatible return value type", Code: "return-value"},
	}
	actual := Parse(sampleOutput)

	errs := Compare(expected, actual)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], AssertCount)
	assert.Contains(t, errs[0], "1 diagnostic(s)")
	assert.Contains(t, errs[0], "2 diagnostic(s)")
}

func TestCompare_CodeMismatch(t *testing.T) {
	expected := []Expectation{
		{Message: "Incompatible return value type", Code: "assignment"},
	}
	actual := Report{{Message: "Incompatible return value type", Code: "return-value"}}

	errs := Compare(expected, actual)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], AssertCode)
	assert.Contains(t, errs[0], `"assignment"`)
	assert.Contains(t, errs[0], `"return-value"`)
}

func TestCompare_MessageMismatch(t *testing.T) {
	expected := []Expectation{
		{Message: "^Incompatible types in assignment", Pattern: true, Code: "assignment"},
	}
	actual := Report{{Message: "Incompatible return value type", Code: "assignment"}}

	errs := Compare(expected, actual)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], AssertMessage)
}

func TestCompare_EmptyAgainstEmpty(t *testing.T) {
	assert.Nil(t, Compare(nil, Report{}))
	assert.Nil(t, Compare([]Expectation{}, Parse("Success: no issues found in 1 source file\n")))
}

func TestCompare_ReportsAllPositionalMismatches(t *testing.T) {
	expected := []Expectation{
		{Message: "first", Code: "misc"},
		{Message: "second", Code: "misc"},
	}
	actual := Report{
		{Message: "wrong-first", Code: "misc"},
		{Message: "wrong-second", Code: "other"},
	}

	errs := Compare(expected, actual)
	assert.Len(t, errs, 2)
}

func TestAssertionError_IncludesReportContext(t *testing.T) {
	err := &AssertionError{
		Type:     AssertCount,
		Index:    -1,
		Expected: "0 diagnostic(s)",
		Actual:   "1 diagnostic(s)",
		Report:   Report{{Message: "boom", Code: "misc"}},
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: diagnostic_count")
	assert.Contains(t, msg, "Expected: 0 diagnostic(s)")
	assert.Contains(t, msg, "boom  [misc]")
}
