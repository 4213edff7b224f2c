package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds application configuration
type Config struct {
	Pipeline struct {
		ConfidenceThreshold float64 `yaml:"confidence_threshold"`
	} `yaml:"pipeline"`

	Input struct {
		Path string `yaml:"path"` // CSV/TSV/XLSX annotation table
	} `yaml:"input"`

	Output struct {
		Path string `yaml:"path"` // JSONL destination, overwritten each run
	} `yaml:"output"`

	Logging struct {
		Dir string `yaml:"dir"` // date-partitioned audit logs live here
	} `yaml:"logging"`

	Review struct {
		Database string `yaml:"database"` // SQLite path; empty disables the review queue
	} `yaml:"review"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	config := &Config{}
	config.applyDefaults()
	return config
}

// LoadConfig loads configuration from YAML file
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	config.applyDefaults()

	// Expand environment variables in paths
	config.Input.Path = os.ExpandEnv(config.Input.Path)
	config.Output.Path = os.ExpandEnv(config.Output.Path)
	config.Logging.Dir = os.ExpandEnv(config.Logging.Dir)
	config.Review.Database = os.ExpandEnv(config.Review.Database)

	return config, nil
}

// applyDefaults fills unset fields.
func (c *Config) applyDefaults() {
	if c.Pipeline.ConfidenceThreshold == 0 {
		c.Pipeline.ConfidenceThreshold = 0.8
	}

	if c.Input.Path == "" {
		c.Input.Path = "data/raw/raw_annotations.csv"
	}

	if c.Output.Path == "" {
		c.Output.Path = "data/processed/clean_training_dataset.jsonl"
	}

	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.Pipeline.ConfidenceThreshold < 0 || c.Pipeline.ConfidenceThreshold > 1 {
		return fmt.Errorf("confidence threshold %v outside [0,1]", c.Pipeline.ConfidenceThreshold)
	}
	if c.Input.Path == "" {
		return fmt.Errorf("input path is required")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output path is required")
	}
	return nil
}
