// Package testutil provides deterministic helpers for harness tests:
// a stub checker runner with canned outputs and a logical clock for
// reproducible run sequencing.
package testutil

import (
	"context"
	"sync"

	"github.com/veritype/veritype/internal/checker"
)

// StubRunner returns predetermined raw checker outputs in order and
// records every invocation it receives.
//
// This enables harness tests to run without a real type checker on the
// machine and to assert on the exact invocation the harness built.
//
// Thread-safety: safe for concurrent use via internal mutex.
type StubRunner struct {
	mu          sync.Mutex
	outputs     []string
	idx         int
	invocations []checker.Invocation
}

// NewStubRunner creates a runner that returns outputs in order.
//
// Example:
//
//	r := testutil.NewStubRunner(out1, out2)
//	r.Run(ctx, inv) // out1
//	r.Run(ctx, inv) // out2
//	r.Run(ctx, inv) // panic: all outputs exhausted
func NewStubRunner(outputs ...string) *StubRunner {
	return &StubRunner{outputs: outputs}
}

// Run returns the next canned output.
//
// Panics when all outputs are consumed. This is a fail-fast approach to
// catch test misconfiguration (a test invoking the checker more times
// than it provided outputs for).
func (r *StubRunner) Run(_ context.Context, inv checker.Invocation) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.invocations = append(r.invocations, inv)
	if r.idx >= len(r.outputs) {
		panic("StubRunner: all outputs exhausted")
	}
	out := r.outputs[r.idx]
	r.idx++
	return out, nil
}

// Invocations returns a copy of the invocations received so far.
func (r *StubRunner) Invocations() []checker.Invocation {
	r.mu.Lock()
	defer r.mu.Unlock()

	invs := make([]checker.Invocation, len(r.invocations))
	copy(invs, r.invocations)
	return invs
}

// FailingRunner always returns Err. Used to exercise the fatal
// invocation-failure path without a subprocess.
type FailingRunner struct {
	Err error
}

// Run implements checker.Runner.
func (r *FailingRunner) Run(context.Context, checker.Invocation) (string, error) {
	return "", r.Err
}
