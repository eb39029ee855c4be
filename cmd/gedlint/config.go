package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// fileConfig is the shape of a --config YAML file for batch gedlint runs,
// grounded on C360Studio-semspec's config.Config/LoadFromFile pattern.
type fileConfig struct {
	Dialect string `yaml:"dialect"`
	Schema  string `yaml:"schema"`
	Output  struct {
		Format string `yaml:"format"` // "text" or "json"
	} `yaml:"output"`
}

func defaultFileConfig() *fileConfig {
	return &fileConfig{Dialect: "7"}
}

func loadFileConfig(path string) (*fileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := defaultFileConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// merge applies file-supplied defaults beneath whatever the user already
// set on the command line (flags take precedence, matching semspec's
// Merge "other takes precedence for non-zero values" except inverted:
// here the explicit flag is "other").
func (c *fileConfig) merge(dialectFlag, schemaFlag string) (dialect, schema string) {
	dialect = c.Dialect
	if dialectFlag != "" {
		dialect = dialectFlag
	}
	schema = c.Schema
	if schemaFlag != "" {
		schema = schemaFlag
	}
	return dialect, schema
}
