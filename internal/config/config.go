// Package config loads the optional .lilcc.yaml configuration file that
// controls the driver's non-semantic knobs. Nothing in here changes a
// compile's pass/fail outcome or the text of any diagnostic; it only
// affects how much the driver logs and whether a bad field access gets a
// suggested-field hint.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level shape of .lilcc.yaml.
type Config struct {
	// Verbose turns on debug-level logging of each compiler phase. The
	// CLI's --verbose flag turns it on as well.
	Verbose bool `yaml:"verbose,omitempty"`

	// DotHints adds a suggested-field note to an undefined dot-access
	// diagnostic when the misspelled field is close to one that exists.
	DotHints bool `yaml:"dot_hints,omitempty"`

	// AsmDialect names the stack-machine dialect. The driver only logs it
	// when code generation starts; the generated listing does not contain
	// it. Defaults to "mips".
	AsmDialect string `yaml:"asm_dialect,omitempty"`
}

// Default returns the configuration used when no .lilcc.yaml is found.
func Default() *Config {
	return &Config{AsmDialect: "mips"}
}

// Load reads and parses a .lilcc.yaml file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// Find looks for .lilcc.yaml next to sourcePath, then walks up through
// parent directories, the way a project-root config file is conventionally
// discovered.
func Find(sourcePath string) (string, error) {
	dir, err := filepath.Abs(filepath.Dir(sourcePath))
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ".lilcc.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}

// LoadForSource finds and loads the config nearest sourcePath, or returns
// Default() if none exists.
func LoadForSource(sourcePath string) (*Config, error) {
	path, err := Find(sourcePath)
	if err != nil {
		return nil, err
	}
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
