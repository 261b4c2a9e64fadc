// Package checker invokes an external static type checker as a
// subprocess and captures its standard output verbatim.
//
// The checker's exit status is deliberately not inspected: a checker
// exits nonzero when it finds diagnostics, which is an expected outcome
// for a conformance harness. Only a failure to launch the process at
// all is surfaced as an error. Each invocation is synchronous and
// blocking; cancellation is governed solely by the caller's context.
package checker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// DefaultCommand is the checker executable used when none is configured.
const DefaultCommand = "mypy"

// Invocation describes one checker run against a single target file.
//
// Target existence is not validated here: a missing file surfaces as
// checker output, which the caller's expectations then fail to match.
type Invocation struct {
	// Target is the path of the source file to check.
	Target string

	// CacheDir, when non-empty, is passed as --cache-dir.
	CacheDir string

	// ConfigFile, when non-empty, is passed as --config-file.
	ConfigFile string
}

// Runner runs the checker once and returns its raw standard output.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (string, error)
}

// Exec is the subprocess-backed Runner.
type Exec struct {
	// Command is the checker executable name or path.
	Command string
}

// NewExec creates a Runner for the given checker command.
// An empty command selects DefaultCommand.
func NewExec(command string) *Exec {
	if command == "" {
		command = DefaultCommand
	}
	return &Exec{Command: command}
}

// Args builds the argument vector for an invocation:
// [<target>, --cache-dir <dir>?, --config-file <path>?].
// Optional flags are omitted when their value is empty.
func (e *Exec) Args(inv Invocation) []string {
	args := []string{inv.Target}
	if inv.CacheDir != "" {
		args = append(args, "--cache-dir", inv.CacheDir)
	}
	if inv.ConfigFile != "" {
		args = append(args, "--config-file", inv.ConfigFile)
	}
	return args
}

// Run launches the checker and returns captured stdout as a single
// string, trailing newline included.
//
// A nonzero exit with captured output is not an error. A launch failure
// (executable missing, permission denied) or context cancellation is.
// There are no retries: one invocation per call.
func (e *Exec) Run(ctx context.Context, inv Invocation) (string, error) {
	cmd := exec.CommandContext(ctx, e.Command, e.Args(inv)...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	err := cmd.Run()
	if ctx.Err() != nil {
		// CommandContext kills the process on cancellation, which
		// surfaces as an ExitError; report the cancellation instead.
		return "", ctx.Err()
	}
	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return "", fmt.Errorf("failed to launch checker %q: %w", e.Command, err)
	}

	return stdout.String(), nil
}
