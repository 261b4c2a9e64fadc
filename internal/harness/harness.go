package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/veritype/veritype/internal/checker"
	"github.com/veritype/veritype/internal/diag"
)

// Options configures scenario execution. The zero value runs the real
// checker (checker.DefaultCommand), discards logs and generates UUIDv7
// run IDs.
type Options struct {
	Runner checker.Runner
	Logger *slog.Logger
	IDs    IDGenerator
}

// Result is the outcome of one scenario execution.
type Result struct {
	// RunID identifies this execution in the run history.
	RunID string `json:"run_id"`

	// Pass is true when every expectation matched.
	Pass bool `json:"pass"`

	// Diagnostics is the parsed report, in checker output order.
	Diagnostics diag.Report `json:"diagnostics"`

	// Errors contains assertion failure messages. Empty if Pass.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result for the given run ID.
func NewResult(runID string) *Result {
	return &Result{
		RunID:       runID,
		Pass:        true,
		Diagnostics: diag.Report{},
		Errors:      []string{},
	}
}

// AddError records an assertion failure and marks the result failed.
func (r *Result) AddError(msg string) {
	r.Errors = append(r.Errors, msg)
	r.Pass = false
}

// Run executes a scenario: one checker invocation, one parse, one
// ordered comparison against the scenario's expectations.
//
// A checker launch failure returns an error (fatal setup, nothing to
// assert on). Diagnostic mismatches never return an error; they are
// recorded on the Result so callers can report all scenario failures
// in one pass.
func Run(ctx context.Context, scenario *Scenario, opts Options) (*Result, error) {
	runner := opts.Runner
	if runner == nil {
		runner = checker.NewExec("")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	ids := opts.IDs
	if ids == nil {
		ids = UUIDv7Generator{}
	}

	inv := checker.Invocation{
		Target:     scenario.Target,
		CacheDir:   scenario.CacheDir,
		ConfigFile: scenario.ConfigFile,
	}

	raw, err := runner.Run(ctx, inv)
	if err != nil {
		return nil, fmt.Errorf("checker invocation failed: %w", err)
	}

	report := diag.Parse(raw)

	// The parser drops unmatched lines silently by contract; surface
	// the count at debug level for people chasing format drift.
	if skipped := diag.SkippedLines(raw, report); skipped > 0 {
		logger.Debug("checker lines did not parse as diagnostics",
			"scenario", scenario.Name,
			"lines", skipped,
		)
	}

	result := NewResult(ids.Generate())
	result.Diagnostics = report

	for _, msg := range diag.Compare(scenario.Expect, report) {
		result.AddError(msg)
	}

	logger.Info("scenario executed",
		"scenario", scenario.Name,
		"target", scenario.Target,
		"run_id", result.RunID,
		"diagnostics", len(report),
		"pass", result.Pass,
	)

	return result, nil
}
