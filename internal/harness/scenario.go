package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/veritype/veritype/internal/diag"
)

// Scenario defines one conformance case: a target file to check and
// the ordered diagnostics the checker is expected to emit for it.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario guards against.
	Description string `yaml:"description"`

	// Target is the source file handed to the checker.
	// Existence is not validated here; a missing file surfaces as
	// checker output that fails to match the expectations.
	Target string `yaml:"target"`

	// ConfigFile is an optional checker configuration file,
	// passed through opaquely as --config-file.
	ConfigFile string `yaml:"config_file,omitempty"`

	// CacheDir is an optional checker cache directory,
	// passed through opaquely as --cache-dir.
	CacheDir string `yaml:"cache_dir,omitempty"`

	// Expect lists the expected diagnostics in order of appearance.
	// Empty means the target must check clean.
	Expect []diag.Expectation `yaml:"expect,omitempty"`
}

// LoadScenario reads, schema-validates and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields, or declares an invalid expectation pattern.
func LoadScenario(path string) (*Scenario, error) {
	return LoadScenarioWithBasePath(path, "")
}

// LoadScenarioWithBasePath is LoadScenario with relative target,
// config_file and cache_dir paths resolved against basePath. Scenario
// files typically live next to a modules/ and config/ tree; the base
// path lets one scenario set run from any working directory.
func LoadScenarioWithBasePath(path, basePath string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Schema validation first: CUE reports wrong types and missing
	// required fields with better positions than struct decoding.
	var doc map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := validateSchema(doc); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	// Strict decoding catches unknown fields (typos like "expects:").
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if basePath != "" {
		scenario.resolvePaths(basePath)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario %s: %w", path, err)
	}

	return &scenario, nil
}

// resolvePaths joins relative file paths onto basePath.
func (s *Scenario) resolvePaths(basePath string) {
	if s.Target != "" && !filepath.IsAbs(s.Target) {
		s.Target = filepath.Join(basePath, s.Target)
	}
	if s.ConfigFile != "" && !filepath.IsAbs(s.ConfigFile) {
		s.ConfigFile = filepath.Join(basePath, s.ConfigFile)
	}
	if s.CacheDir != "" && !filepath.IsAbs(s.CacheDir) {
		s.CacheDir = filepath.Join(basePath, s.CacheDir)
	}
}

// validateScenario checks required fields and expectation patterns.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if s.Target == "" {
		return fmt.Errorf("target is required")
	}

	for i, exp := range s.Expect {
		if exp.Message == "" {
			return fmt.Errorf("expect[%d]: message is required", i)
		}
		if exp.Code == "" {
			return fmt.Errorf("expect[%d]: code is required", i)
		}
		if err := exp.Compile(); err != nil {
			return fmt.Errorf("expect[%d]: %w", i, err)
		}
	}

	return nil
}
