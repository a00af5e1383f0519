package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/stagehand-ci/stagehand/internal/schema"
)

// Load reads and parses a stagehand.yaml pipeline definition.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pipeline definition: %w", err)
	}
	return Parse(data)
}

// Parse parses pipeline definition bytes.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse pipeline definition: %w", err)
	}
	return &cfg, nil
}

// LoadAndValidate reads a pipeline definition, validates it against the
// embedded JSON schema and the semantic rules, applies defaults, and
// returns any warnings.
func LoadAndValidate(path string) (*Config, []string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read pipeline definition: %w", err)
	}

	if err := schema.ValidatePipeline(data); err != nil {
		return nil, nil, err
	}

	cfg, unknownWarnings, err := ParseWithWarnings(data)
	if err != nil {
		return nil, nil, err
	}

	applyDefaults(cfg)

	validationWarnings, err := Validate(cfg)

	allWarnings := make([]string, 0, len(unknownWarnings)+len(validationWarnings))
	allWarnings = append(allWarnings, unknownWarnings...)
	allWarnings = append(allWarnings, validationWarnings...)

	if err != nil {
		return nil, allWarnings, err
	}

	return cfg, allWarnings, nil
}
