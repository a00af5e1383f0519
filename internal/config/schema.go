// Package config provides pipeline definition loading and validation for
// stagehand.yaml.
package config

// Config represents the complete stagehand.yaml pipeline definition.
type Config struct {
	Pipeline  PipelineConfig    `yaml:"pipeline"`
	Workspace string            `yaml:"workspace,omitempty"`
	Env       map[string]string `yaml:"env,omitempty"`
	Stages    []StageConfig     `yaml:"stages"`
}

// PipelineConfig contains pipeline metadata.
type PipelineConfig struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
}

// StageConfig defines a single named stage. Exactly one of Run (opaque
// shell command string), Command (exact argv, with Args), or Checkout
// must be set.
type StageConfig struct {
	Name     string            `yaml:"name"`
	Run      string            `yaml:"run,omitempty"`
	Command  string            `yaml:"command,omitempty"`
	Args     []string          `yaml:"args,omitempty"`
	Checkout *CheckoutConfig   `yaml:"checkout,omitempty"`
	Dir      string            `yaml:"dir,omitempty"`
	Env      map[string]string `yaml:"env,omitempty"`
}

// CheckoutConfig configures a version-control checkout stage.
type CheckoutConfig struct {
	Repository string `yaml:"repository"`
	Ref        string `yaml:"ref,omitempty"`
	Depth      int    `yaml:"depth,omitempty"`
}
