package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultPath is where commands look for configuration when no
// --config flag is given.
const DefaultPath = "finbuddy.yaml"

// Config represents the top-level finbuddy.yaml configuration.
type Config struct {
	Classifier ClassifierConfig `yaml:"classifier"`
	Statement  StatementConfig  `yaml:"statement"`
	Report     ReportConfig     `yaml:"report"`
}

// ClassifierConfig locates training data and model artifacts.
type ClassifierConfig struct {
	Corpus              string  `yaml:"corpus"`
	Overrides           string  `yaml:"overrides"`
	Vectorizer          string  `yaml:"vectorizer"`
	Model               string  `yaml:"model"`
	ConfidenceThreshold float64 `yaml:"confidence_threshold"`
}

// StatementConfig selects the vendor pattern table and the
// reconciliation policy ("strict" or "lenient").
type StatementConfig struct {
	Vendor    string `yaml:"vendor"`
	Reconcile string `yaml:"reconcile"`
}

// ReportConfig controls analysis outputs.
type ReportConfig struct {
	Output       string `yaml:"output"`
	Descriptions string `yaml:"descriptions"`
}

// Load reads a finbuddy.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new workspace.
func Default() *Config {
	return &Config{
		Classifier: ClassifierConfig{
			Corpus:              "data/training-categories.json",
			Overrides:           "data/overrides.yaml",
			Vectorizer:          "data/vectorizer.gob",
			Model:               "data/model.gob",
			ConfidenceThreshold: 0.6,
		},
		Statement: StatementConfig{
			Vendor:    "capitalone",
			Reconcile: "strict",
		},
		Report: ReportConfig{
			Output:       "/tmp/finbuddy-report.json",
			Descriptions: "private/descriptions-data.json",
		},
	}
}
