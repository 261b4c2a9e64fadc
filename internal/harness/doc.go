// Package harness executes conformance scenarios against an external
// static type checker and validates the parsed diagnostic report
// against declared expectations.
//
// # Scenario Format
//
// Scenarios are defined in YAML files:
//
//	name: pandera-inheritance-no-plugin
//	description: "Stub inheritance false positives without the plugin"
//	target: modules/pandera_inheritance.py
//	config_file: config/no_plugin.ini
//	cache_dir: .mypy_cache/test-default
//	expect:
//	  - message: "Incompatible types in assignment"
//	    code: assignment
//	  - message: "^Argument 1 to .+ has incompatible type"
//	    pattern: true
//	    code: arg-type
//
// config_file and cache_dir are optional and passed through to the
// checker opaquely. An empty (or absent) expect list means the target
// must produce zero diagnostics.
//
// Scenario files are validated twice on load: strict YAML decoding
// rejects unknown fields (typos like "expects:"), and an embedded CUE
// schema rejects wrong field types before execution starts.
//
// # Execution
//
// Run performs exactly one checker invocation per scenario, parses the
// captured output with package diag, and compares the resulting report
// against the scenario's expectations in order. A checker launch
// failure is an execution error; a diagnostic mismatch is a scenario
// failure recorded on the Result.
//
// # Deterministic Testing
//
// Tests inject a testutil.StubRunner for canned checker output and a
// FixedIDGenerator for stable run IDs, making results byte-identical
// across runs for golden file comparison (RunWithGolden).
package harness
