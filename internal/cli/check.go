package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/veritype/veritype/internal/checker"
	"github.com/veritype/veritype/internal/diag"
	"github.com/veritype/veritype/internal/harness"
	"github.com/veritype/veritype/internal/store"
)

// CheckOptions holds options for the check command.
type CheckOptions struct {
	*RootOptions
	Checker    string
	CacheDir   string
	ConfigFile string
	DB         string
}

// CheckResult is the payload of a single ad hoc check.
type CheckResult struct {
	Target      string      `json:"target"`
	Diagnostics diag.Report `json:"diagnostics"`
}

// NewCheckCommand creates the check command.
func NewCheckCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CheckOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "check <target>",
		Short: "Run the checker against one target and report its diagnostics",
		Long: `Check invokes the type checker against a single target file and
prints the parsed diagnostics without asserting any expectations.
Exits 1 when the checker reports diagnostics, 0 when the target is
clean.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Checker, "checker", checker.DefaultCommand, "checker command to invoke")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", "", "checker cache directory")
	cmd.Flags().StringVar(&opts.ConfigFile, "config-file", "", "checker configuration file")
	cmd.Flags().StringVar(&opts.DB, "db", "", "record the run in this history database")

	return cmd
}

func runCheck(cmd *cobra.Command, opts *CheckOptions, target string) error {
	runner := checker.NewExec(opts.Checker)
	inv := checker.Invocation{
		Target:     target,
		CacheDir:   opts.CacheDir,
		ConfigFile: opts.ConfigFile,
	}

	raw, err := runner.Run(cmd.Context(), inv)
	if err != nil {
		return WrapExitError(ExitCommandError, "checker invocation failed", err)
	}
	report := diag.Parse(raw)

	if opts.DB != "" {
		if err := recordCheck(cmd.Context(), opts, target, report); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
	}

	result := CheckResult{Target: target, Diagnostics: report}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: result}
		if len(report) > 0 {
			resp.Status = "error"
			resp.Error = &CLIError{
				Code:    "E_DIAGNOSTICS",
				Message: fmt.Sprintf("%d diagnostic(s) reported", len(report)),
			}
		}
		if err := writeJSON(cmd.OutOrStdout(), resp); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
	} else {
		outputCheckText(cmd.OutOrStdout(), result)
	}

	if len(report) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d diagnostic(s) reported", len(report)))
	}
	return nil
}

func outputCheckText(w io.Writer, result CheckResult) {
	if len(result.Diagnostics) == 0 {
		fmt.Fprintf(w, "✓ %s: no diagnostics\n", result.Target)
		return
	}
	for _, d := range result.Diagnostics {
		fmt.Fprintf(w, "%s  [%s]\n", d.Message, d.Code)
	}
	fmt.Fprintf(w, "\n%d diagnostic(s) in %s\n", len(result.Diagnostics), result.Target)
}

// recordCheck appends an ad hoc check to the run history. The run is
// stored under the target's base name; pass means a clean report.
func recordCheck(ctx context.Context, opts *CheckOptions, target string, report diag.Report) error {
	st, err := store.Open(opts.DB)
	if err != nil {
		return err
	}
	defer st.Close()

	seq, err := st.NextSeq(ctx)
	if err != nil {
		return err
	}

	return st.WriteRun(ctx, store.RunRecord{
		ID:          harness.UUIDv7Generator{}.Generate(),
		Scenario:    filepath.Base(target),
		Target:      target,
		ConfigFile:  opts.ConfigFile,
		Pass:        len(report) == 0,
		Seq:         seq,
		Diagnostics: report,
	})
}

// newCLILogger builds the slog logger for command execution. Verbose
// enables debug output on stderr; otherwise logs are discarded.
func newCLILogger(verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}
