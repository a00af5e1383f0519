// Package schema provides JSON schema validation for stagehand pipeline
// definitions.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"

	schemafs "github.com/stagehand-ci/stagehand/schema"
)

var (
	pipelineSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
)

// compileSchema compiles the embedded schema once.
func compileSchema() error {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()

		data, err := schemafs.FS.ReadFile("pipeline.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("read pipeline schema: %w", err)
			return
		}

		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal pipeline schema: %w", err)
			return
		}

		if err := compiler.AddResource("pipeline.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add pipeline schema resource: %w", err)
			return
		}

		pipelineSchema, err = compiler.Compile("pipeline.schema.json")
		if err != nil {
			compileErr = fmt.Errorf("compile pipeline schema: %w", err)
			return
		}
	})

	return compileErr
}

// ValidatePipeline validates YAML pipeline definition data against the
// embedded schema. The document is round-tripped through JSON so the
// validator sees the value types it expects.
func ValidatePipeline(data []byte) error {
	if err := compileSchema(); err != nil {
		return err
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("invalid YAML: %w", err)
	}

	jsonData, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("convert definition to JSON: %w", err)
	}

	v, err := jsonschema.UnmarshalJSON(bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("reparse definition: %w", err)
	}

	if err := pipelineSchema.Validate(v); err != nil {
		return fmt.Errorf("pipeline definition validation failed: %w", err)
	}

	return nil
}
