package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenario(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadScenario_Valid(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/pandas-dataframe.yaml")
	require.NoError(t, err)

	assert.Equal(t, "pandas-dataframe", scenario.Name)
	assert.Equal(t, "modules/pandas_dataframe.py", scenario.Target)
	require.Len(t, scenario.Expect, 2)
	assert.Equal(t, "arg-type", scenario.Expect[0].Code)
	assert.True(t, scenario.Expect[0].Pattern)
}

func TestLoadScenario_EmptyExpectMeansClean(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/clean-module.yaml")
	require.NoError(t, err)

	assert.Empty(t, scenario.Expect)
	assert.Equal(t, "config/no_plugin.ini", scenario.ConfigFile)
	assert.Equal(t, ".mypy_cache/test-default", scenario.CacheDir)
}

func TestLoadScenario_FileNotFound(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestLoadScenario_UnknownFieldRejected(t *testing.T) {
	path := writeScenario(t, `
name: typo
description: "unknown field"
target: modules/a.py
expects:
  - message: "nope"
    code: misc
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_MissingTarget(t *testing.T) {
	path := writeScenario(t, `
name: no-target
description: "missing target"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenario_WrongFieldType(t *testing.T) {
	path := writeScenario(t, `
name: bad-type
description: "target must be a string"
target: 42
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "schema violation")
}

func TestLoadScenario_InvalidPattern(t *testing.T) {
	path := writeScenario(t, `
name: bad-pattern
description: "pattern does not compile"
target: modules/a.py
expect:
  - message: "(unbalanced"
    pattern: true
    code: misc
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid message pattern")
}

func TestLoadScenario_ExpectEntryMissingCode(t *testing.T) {
	path := writeScenario(t, `
name: no-code
description: "expectation without a code"
target: modules/a.py
expect:
  - message: "Incompatible return value type"
`)

	_, err := LoadScenario(path)
	require.Error(t, err)
}

func TestLoadScenarioWithBasePath_ResolvesPaths(t *testing.T) {
	scenario, err := LoadScenarioWithBasePath("testdata/scenarios/clean-module.yaml", "/suite")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("/suite", "modules/pandas_concat.py"), scenario.Target)
	assert.Equal(t, filepath.Join("/suite", "config/no_plugin.ini"), scenario.ConfigFile)
	assert.Equal(t, filepath.Join("/suite", ".mypy_cache/test-default"), scenario.CacheDir)
}

func TestLoadScenarioWithBasePath_AbsolutePathsUntouched(t *testing.T) {
	path := writeScenario(t, `
name: absolute
description: "absolute paths are kept as-is"
target: /abs/modules/a.py
`)

	scenario, err := LoadScenarioWithBasePath(path, "/suite")
	require.NoError(t, err)
	assert.Equal(t, "/abs/modules/a.py", scenario.Target)
}
