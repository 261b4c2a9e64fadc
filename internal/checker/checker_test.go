package checker

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExec_DefaultCommand(t *testing.T) {
	assert.Equal(t, DefaultCommand, NewExec("").Command)
	assert.Equal(t, "mypy-dev", NewExec("mypy-dev").Command)
}

func TestArgs_TargetOnly(t *testing.T) {
	e := NewExec("")

	args := e.Args(Invocation{Target: "modules/pandas_dataframe.py"})
	assert.Equal(t, []string{"modules/pandas_dataframe.py"}, args)
}

func TestArgs_WithCacheDirAndConfigFile(t *testing.T) {
	e := NewExec("")

	args := e.Args(Invocation{
		Target:     "modules/pandera_types.py",
		CacheDir:   ".mypy_cache/test-default",
		ConfigFile: "config/no_plugin.ini",
	})
	assert.Equal(t, []string{
		"modules/pandera_types.py",
		"--cache-dir", ".mypy_cache/test-default",
		"--config-file", "config/no_plugin.ini",
	}, args)
}

func TestArgs_ConfigFileOnly(t *testing.T) {
	e := NewExec("")

	args := e.Args(Invocation{Target: "a.py", ConfigFile: "config/plugin.ini"})
	assert.Equal(t, []string{"a.py", "--config-file", "config/plugin.ini"}, args)
}

func TestRun_CapturesStdout(t *testing.T) {
	// echo prints its argument vector, standing in for checker output.
	e := NewExec("echo")

	out, err := e.Run(context.Background(), Invocation{Target: "sample.py"})
	require.NoError(t, err)
	assert.Equal(t, "sample.py\n", out)
}

func TestRun_NonzeroExitIsNotAnError(t *testing.T) {
	// A checker exits nonzero when it finds diagnostics; only the text
	// matters.
	e := NewExec("false")

	out, err := e.Run(context.Background(), Invocation{Target: "sample.py"})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestRun_LaunchFailure(t *testing.T) {
	e := NewExec("definitely-not-a-real-type-checker")

	_, err := e.Run(context.Background(), Invocation{Target: "sample.py"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to launch checker")
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e := NewExec("echo")
	_, err := e.Run(ctx, Invocation{Target: "sample.py"})
	assert.ErrorIs(t, err, context.Canceled)
}
