package config

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseWithWarnings parses a pipeline definition and returns any unknown
// field warnings. Unknown fields are ignored rather than rejected so that
// newer definitions stay loadable by older binaries.
func ParseWithWarnings(data []byte) (*Config, []string, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse pipeline definition: %w", err)
	}

	warnings := detectUnknownFields(data)

	return &cfg, warnings, nil
}

// detectUnknownFields compares the raw YAML document with known struct fields.
// Note: since this is called after successful Config parsing, a parse failure
// here would indicate an unexpected internal inconsistency.
func detectUnknownFields(data []byte) []string {
	var warnings []string

	var raw map[string]yaml.Node
	if err := yaml.Unmarshal(data, &raw); err != nil {
		// This should never happen since the data already parsed successfully.
		// Return a warning so the condition is visible rather than silently ignored.
		return []string{"internal: failed to re-parse definition for unknown field detection"}
	}

	knownTopLevel := getYAMLFields(reflect.TypeOf(Config{}))
	for key := range raw {
		if !knownTopLevel[key] {
			warnings = append(warnings, fmt.Sprintf("unknown field %q at root level (ignored)", key))
		}
	}

	if stagesRaw, ok := raw["stages"]; ok {
		warnings = append(warnings, checkStagesUnknownFields(stagesRaw)...)
	}

	return warnings
}

func checkStagesUnknownFields(node yaml.Node) []string {
	var warnings []string

	var stages []map[string]yaml.Node
	if err := node.Decode(&stages); err != nil {
		// Should not happen since Config.Stages parsed successfully.
		return []string{"internal: failed to re-parse stages for unknown field detection"}
	}

	knownStageFields := getYAMLFields(reflect.TypeOf(StageConfig{}))
	for i, stage := range stages {
		for key := range stage {
			if !knownStageFields[key] {
				warnings = append(warnings, fmt.Sprintf("unknown field %q in stage %d (ignored)", key, i))
			}
		}
	}

	return warnings
}

// getYAMLFields returns a map of known YAML field names for a struct type.
func getYAMLFields(t reflect.Type) map[string]bool {
	fields := make(map[string]bool)
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		name := strings.Split(tag, ",")[0]
		if name != "" {
			fields[name] = true
		}
	}
	return fields
}
