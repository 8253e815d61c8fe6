package config

import (
	"fmt"
	"os"

	dserrors "github.com/nishad/dsquery/internal/errors"
	"github.com/nishad/dsquery/internal/paths"
	"gopkg.in/yaml.v3"
)

// Formats accepted by output.format
var Formats = []string{"plain", "json", "yaml", "csv", "tsv", "table"}

// Config represents the dsquery configuration
type Config struct {
	Output  OutputConfig  `yaml:"output"`
	Dataset DatasetConfig `yaml:"dataset"`
	Server  ServerConfig  `yaml:"server"`
}

// OutputConfig controls how query results are rendered
type OutputConfig struct {
	Format string `yaml:"format"` // plain, json, yaml, csv, tsv, table
	Color  bool   `yaml:"color"`  // colorize diagnostics on a terminal
}

// DatasetConfig names the elements the loader recognizes
type DatasetConfig struct {
	GroupTags []string `yaml:"group_tags"` // synonyms for a group element
	SampleTag string   `yaml:"sample_tag"`
}

// ServerConfig contains serve mode settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Format: "plain",
			Color:  true,
		},
		Dataset: DatasetConfig{
			GroupTags: []string{"group", "patient"},
			SampleTag: "sample",
		},
		Server: ServerConfig{
			Host: "localhost",
			Port: 8080,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	const op dserrors.Op = "config.load"

	// Start with defaults
	config := DefaultConfig()

	// Return defaults if file doesn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, dserrors.E(op, dserrors.KindConfig, err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, dserrors.E(op, dserrors.KindConfig, err, "failed to parse config file")
	}

	if err := config.Validate(); err != nil {
		return nil, dserrors.Wrap(op, err)
	}

	return config, nil
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	const op dserrors.Op = "config.validate"

	if !IsFormat(c.Output.Format) {
		return dserrors.E(op, dserrors.KindConfig,
			fmt.Sprintf("invalid output format %q (valid values: %v)", c.Output.Format, Formats))
	}
	if len(c.Dataset.GroupTags) == 0 {
		return dserrors.E(op, dserrors.KindConfig, "dataset.group_tags must not be empty")
	}
	for _, tag := range c.Dataset.GroupTags {
		if tag == "" {
			return dserrors.E(op, dserrors.KindConfig, "dataset.group_tags contains an empty tag")
		}
	}
	if c.Dataset.SampleTag == "" {
		return dserrors.E(op, dserrors.KindConfig, "dataset.sample_tag must not be empty")
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return dserrors.E(op, dserrors.KindConfig, fmt.Sprintf("invalid server port %d", c.Server.Port))
	}
	return nil
}

// GetConfigPath returns the config file path to use when no --config flag is given
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("DSQUERY_CONFIG"); path != "" {
		return path
	}

	// Check current directory
	if _, err := os.Stat("dsquery.yaml"); err == nil {
		return "dsquery.yaml"
	}

	return paths.GetConfigFilePath()
}

// IsFormat reports whether name is a supported output format
func IsFormat(name string) bool {
	for _, f := range Formats {
		if f == name {
			return true
		}
	}
	return false
}
