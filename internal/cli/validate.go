package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/veritype/veritype/internal/harness"
)

// ValidationIssue describes one scenario file that failed validation.
type ValidationIssue struct {
	File  string `json:"file"`
	Error string `json:"error"`
}

// ValidationSummary aggregates a validate run.
type ValidationSummary struct {
	Total  int               `json:"total"`
	Valid  int               `json:"valid"`
	Issues []ValidationIssue `json:"issues"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenarios-dir>",
		Short: "Validate scenario files without invoking the checker",
		Long: `Validate loads every scenario YAML file under the given directory and
reports schema violations, unknown fields and invalid expectation
patterns. No checker is invoked; this is meant as a fast pre-commit
or CI gate for scenario edits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, args[0])
		},
	}
	return cmd
}

func runValidate(cmd *cobra.Command, opts *RootOptions, dir string) error {
	files, err := findScenarioFiles(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to discover scenarios", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no scenario files found in %s", dir))
	}

	summary := ValidationSummary{Issues: []ValidationIssue{}}
	for _, file := range files {
		summary.Total++
		if _, err := harness.LoadScenario(file); err != nil {
			summary.Issues = append(summary.Issues, ValidationIssue{
				File:  file,
				Error: err.Error(),
			})
			continue
		}
		summary.Valid++
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: summary}
		if len(summary.Issues) > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_INVALID_SCENARIO",
				Message: fmt.Sprintf("%d of %d scenario file(s) invalid", len(summary.Issues), summary.Total),
			}
		}
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	} else {
		outputValidateText(cmd.OutOrStdout(), summary)
	}

	if len(summary.Issues) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenario file(s) invalid", len(summary.Issues), summary.Total))
	}
	return nil
}

func outputValidateText(w io.Writer, summary ValidationSummary) {
	for _, issue := range summary.Issues {
		fmt.Fprintf(w, "✗ %s\n    %s\n", issue.File, issue.Error)
	}
	fmt.Fprintf(w, "%d scenario file(s): %d valid, %d invalid\n",
		summary.Total, summary.Valid, len(summary.Issues))
}
