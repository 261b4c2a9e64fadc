package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/veritype/veritype/internal/store"
)

// HistoryOptions holds options for the history command.
type HistoryOptions struct {
	*RootOptions
	DB    string
	Limit int
}

// NewHistoryCommand creates the history command.
func NewHistoryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &HistoryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs from a history database",
		Long: `History lists runs recorded by check or test with --db, oldest
first. Listing order is deterministic: sequence number, then run ID.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistory(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", "", "history database path")
	cmd.Flags().IntVar(&opts.Limit, "limit", 0, "maximum runs to list (0 = all)")

	return cmd
}

func runHistory(cmd *cobra.Command, opts *HistoryOptions) error {
	if opts.DB == "" {
		return NewExitError(ExitCommandError, "history database path required (--db)")
	}

	st, err := store.Open(opts.DB)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open history database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(cmd.Context(), opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		if err := writeJSON(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: runs}); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		return nil
	}

	outputHistoryText(cmd.OutOrStdout(), runs)
	return nil
}

func outputHistoryText(w io.Writer, runs []store.RunRecord) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "no runs recorded")
		return
	}
	for _, run := range runs {
		mark := "✓"
		if !run.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %-4d %s  %s  (%s)  %s\n",
			mark, run.Seq, run.ID, run.Scenario, run.Target, run.CreatedAt)
	}
	fmt.Fprintf(w, "\n%d run(s)\n", len(runs))
}
