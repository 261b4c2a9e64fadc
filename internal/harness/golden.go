package harness

import (
	"context"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/veritype/veritype/internal/canon"
)

// Snapshot renders the parsed report of a scenario execution as
// canonical JSON for byte-exact golden comparison. The run ID is
// deliberately excluded: snapshots capture checker behavior, not
// execution identity.
func Snapshot(scenario *Scenario, result *Result) ([]byte, error) {
	diags := make([]any, len(result.Diagnostics))
	for i, rec := range result.Diagnostics {
		diags[i] = map[string]any{
			"message": rec.Message,
			"code":    rec.Code,
		}
	}

	return canon.Marshal(map[string]any{
		"scenario_name": scenario.Name,
		"target":        scenario.Target,
		"diagnostics":   diags,
	})
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns an error if execution or snapshot rendering fails; a snapshot
// mismatch fails the test via goldie.
func RunWithGolden(t *testing.T, scenario *Scenario, opts Options) error {
	t.Helper()

	result, err := Run(context.Background(), scenario, opts)
	if err != nil {
		return err
	}

	data, err := Snapshot(scenario, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return nil
}
