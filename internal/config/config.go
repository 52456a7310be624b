// Package config reads and writes the graphql2go project configuration.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the configuration format version this build reads and
// writes.
const CurrentVersion = 1

// DefaultFileName is where commands look for configuration when --config
// is not given.
const DefaultFileName = "graphql2go.yaml"

type Config struct {
	Version int      `yaml:"version"`
	Schema  []string `yaml:"schema"`
	Output  Output   `yaml:"output"`

	// Scalars maps custom scalar names to Go types, e.g. DateTime:
	// time.Time. Unmapped scalars become opaque named string types.
	Scalars map[string]string `yaml:"scalars,omitempty"`

	// ReservedSuffix is appended to names colliding with Go keywords or
	// reserved builder methods. Defaults to "_".
	ReservedSuffix string `yaml:"reservedSuffix,omitempty"`

	// IncludeDeprecated emits deprecated fields and enum values.
	IncludeDeprecated bool `yaml:"includeDeprecated,omitempty"`
}

type Output struct {
	Dir      string `yaml:"dir"`
	Package  string `yaml:"package"`
	Models   string `yaml:"models,omitempty"`
	Builders string `yaml:"builders,omitempty"`
}

// Default returns a configuration with every optional field filled in.
func Default() *Config {
	cfg := &Config{Version: CurrentVersion}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file and fills in defaults. Validation is
// left to the caller so that command-line flags can be merged in first.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := new(Config)
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %v", path, err)
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Output.Dir == "" {
		c.Output.Dir = "./generated"
	}
	if c.Output.Package == "" {
		c.Output.Package = "api"
	}
	if c.Output.Models == "" {
		c.Output.Models = "models.go"
	}
	if c.Output.Builders == "" {
		c.Output.Builders = "builders.go"
	}
}

// Validate checks the configuration is complete enough to run generation.
func (c *Config) Validate() error {
	if c.Version != CurrentVersion {
		return fmt.Errorf("config: unsupported version %d (want %d)", c.Version, CurrentVersion)
	}
	if len(c.Schema) == 0 {
		return fmt.Errorf("config: no schema sources configured")
	}
	if c.Output.Models == c.Output.Builders {
		return fmt.Errorf("config: models and builders cannot share the file %q", c.Output.Models)
	}
	return nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: %v", err)
	}
	return os.WriteFile(path, data, 0o600)
}
