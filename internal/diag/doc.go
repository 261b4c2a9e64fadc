// Package diag parses the textual diagnostic stream of a static type
// checker into structured records and compares those records against
// declared expectations.
//
// # Diagnostic Format
//
// The checker emits one diagnostic per line:
//
//	<file>.py:<line>: error: <message>  [<code>]
//
// followed by exactly one trailing summary line
// ("Found 2 errors in 1 file (checked 1 source file)") which is never
// parsed into a record. The separator before the bracketed code is
// exactly two spaces; lines with a single space do not match. Notes,
// warnings and any other non-matching lines contribute no record.
//
// # Expectation Matching
//
// An Expectation's code is matched by exact string equality. Its message
// is literal-or-pattern: exact equality is tried first, and only when
// that fails is the message compiled as a regular expression and matched
// anchored at the start of the actual text. The literal-first order
// keeps messages containing regexp metacharacters matching themselves.
//
// Parse is total: malformed input yields fewer records, never an error.
// All conformance judgments are deferred to Compare so a single parsed
// report can be checked against any expectation shape.
package diag
