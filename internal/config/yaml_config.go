package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLConfig represents the structure of the optional config.yaml file.
// Settings that are lists are easier to manage in YAML than env vars.
type YAMLConfig struct {
	Export   ExportConfig   `yaml:"export"`
	Grouping GroupingConfig `yaml:"grouping"`
}

// ExportConfig defines export defaults.
type ExportConfig struct {
	// Fields exported when the caller selects none. Unknown names are dropped.
	Fields []string `yaml:"fields"`
}

// GroupingConfig defines the duplicate-grouping key allow-list.
type GroupingConfig struct {
	// Single-field keys eligible for duplicate grouping. Unknown names are
	// dropped; an empty list keeps the built-in defaults.
	Keys []string `yaml:"keys"`
}

// LoadYAMLConfig loads the YAML configuration file.
// Path is determined by CONFIG_FILE env var, defaulting to "config.yaml".
// Returns nil without error if the config file doesn't exist.
func LoadYAMLConfig() (*YAMLConfig, error) {
	path := getEnv("CONFIG_FILE", "config.yaml")

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Config file is optional
			return nil, nil
		}
		return nil, err
	}

	var cfg YAMLConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ExportFields returns the configured default export field set, or nil.
func (c *YAMLConfig) ExportFields() []string {
	if c == nil {
		return nil
	}
	return c.Export.Fields
}

// GroupingKeys returns the configured grouping-key allow-list, or nil.
func (c *YAMLConfig) GroupingKeys() []string {
	if c == nil {
		return nil
	}
	return c.Grouping.Keys
}
