package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veritype/veritype/internal/checker"
	"github.com/veritype/veritype/internal/harness"
	"github.com/veritype/veritype/internal/store"
)

// TestOptions holds options for the test command.
type TestOptions struct {
	*RootOptions
	Checker string
	Filter  string
	DB      string
}

// ScenarioResult is the outcome of one scenario in a test run.
type ScenarioResult struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	RunID  string   `json:"run_id,omitempty"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// TestSummary aggregates a full test run.
type TestSummary struct {
	Total     int              `json:"total"`
	Passed    int              `json:"passed"`
	Failed    int              `json:"failed"`
	Scenarios []ScenarioResult `json:"scenarios"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run every scenario in a directory and assert expectations",
		Long: `Test discovers scenario YAML files under the given directory, runs
the checker for each, and compares the parsed diagnostics against the
scenario's ordered expectations. Relative paths inside a scenario are
resolved against the scenario directory.

Exits 1 when any scenario fails, 2 when a scenario cannot be loaded
or the checker cannot be launched.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Checker, "checker", checker.DefaultCommand, "checker command to invoke")
	cmd.Flags().StringVar(&opts.Filter, "filter", "", "only run scenarios whose name matches this glob")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record runs in this history database")

	return cmd
}

func runTest(cmd *cobra.Command, opts *TestOptions, dir string) error {
	files, err := findScenarioFiles(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to discover scenarios", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no scenario files found in %s", dir))
	}

	var st *store.Store
	var seq int64
	if opts.DB != "" {
		st, err = store.Open(opts.DB)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
		defer st.Close()

		seq, err = st.NextSeq(cmd.Context())
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open history database", err)
		}
	}

	logger := newCLILogger(opts.Verbose)
	runOpts := harness.Options{
		Runner: checker.NewExec(opts.Checker),
		Logger: logger,
	}

	summary := TestSummary{Scenarios: []ScenarioResult{}}
	for _, file := range files {
		scenario, err := harness.LoadScenarioWithBasePath(file, dir)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to load scenario", err)
		}
		if opts.Filter != "" {
			matched, err := filepath.Match(opts.Filter, scenario.Name)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid filter", err)
			}
			if !matched {
				continue
			}
		}

		result, err := harness.Run(cmd.Context(), scenario, runOpts)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("scenario %s", scenario.Name), err)
		}

		if st != nil {
			if err := recordScenario(cmd.Context(), st, seq, scenario, result); err != nil {
				return WrapExitError(ExitCommandError, "failed to record run", err)
			}
			seq++
		}

		summary.Total++
		if result.Pass {
			summary.Passed++
		} else {
			summary.Failed++
		}
		summary.Scenarios = append(summary.Scenarios, ScenarioResult{
			Name:   scenario.Name,
			File:   file,
			RunID:  result.RunID,
			Pass:   result.Pass,
			Errors: result.Errors,
		})
	}

	if summary.Total == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no scenarios matched filter %q", opts.Filter))
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: summary}
		if summary.Failed > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_TEST_FAILED",
				Message: fmt.Sprintf("%d of %d scenario(s) failed", summary.Failed, summary.Total),
			}
		}
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	} else {
		outputTestText(cmd.OutOrStdout(), summary)
	}

	if summary.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario(s) failed", summary.Failed, summary.Total))
	}
	return nil
}

func outputTestText(w io.Writer, summary TestSummary) {
	for _, sc := range summary.Scenarios {
		if sc.Pass {
			fmt.Fprintf(w, "✓ %s\n", sc.Name)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", sc.Name)
		for _, msg := range sc.Errors {
			for _, line := range strings.Split(msg, "\n") {
				fmt.Fprintf(w, "    %s\n", line)
			}
		}
	}
	fmt.Fprintf(w, "\n%d scenario(s): %d passed, %d failed\n",
		summary.Total, summary.Passed, summary.Failed)
}

// findScenarioFiles returns the sorted .yaml/.yml files directly under
// dir. Subdirectories hold targets and configs, not scenarios, so the
// walk does not recurse.
func findScenarioFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// recordScenario appends one scenario execution to the run history.
func recordScenario(ctx context.Context, st *store.Store, seq int64, scenario *harness.Scenario, result *harness.Result) error {
	return st.WriteRun(ctx, store.RunRecord{
		ID:          result.RunID,
		Scenario:    scenario.Name,
		Target:      scenario.Target,
		ConfigFile:  scenario.ConfigFile,
		Pass:        result.Pass,
		Seq:         seq,
		Diagnostics: result.Diagnostics,
	})
}
