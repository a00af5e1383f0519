package config

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	// Pipeline name: must start with a lowercase letter, may contain
	// lowercase letters, digits, and non-consecutive hyphens.
	pipelineNamePattern = regexp.MustCompile(`^[a-z][a-z0-9]*(-[a-z0-9]+)*$`)

	// Stage name: a display name; letters, digits, spaces, hyphens,
	// underscores, and colons. Must start with a letter.
	stageNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _:-]*$`)
)

// ValidationError represents a pipeline definition validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks a definition for errors and returns warnings for
// non-fatal issues.
func Validate(cfg *Config) (warnings []string, err error) {
	if err := ValidatePipelineName(cfg.Pipeline.Name); err != nil {
		return nil, err
	}

	if err := validateWorkspace(cfg.Workspace); err != nil {
		return nil, err
	}

	if len(cfg.Stages) == 0 {
		return nil, &ValidationError{Field: "stages", Message: "at least one stage is required"}
	}

	seen := make(map[string]bool, len(cfg.Stages))
	for i, stage := range cfg.Stages {
		if err := validateStage(i, stage); err != nil {
			return nil, err
		}
		if seen[stage.Name] {
			return nil, &ValidationError{
				Field:   fmt.Sprintf("stages[%d].name", i),
				Message: fmt.Sprintf("duplicate stage name %q", stage.Name),
			}
		}
		seen[stage.Name] = true
	}

	return nil, nil
}

func validateStage(i int, stage StageConfig) error {
	field := func(name string) string { return fmt.Sprintf("stages[%d].%s", i, name) }

	if stage.Name == "" {
		return &ValidationError{Field: field("name"), Message: "is required"}
	}
	if !stageNamePattern.MatchString(stage.Name) {
		return &ValidationError{
			Field:   field("name"),
			Message: "must start with a letter and contain only letters, digits, spaces, hyphens, underscores, and colons",
		}
	}

	kinds := 0
	if stage.Run != "" {
		kinds++
	}
	if stage.Command != "" {
		kinds++
	}
	if stage.Checkout != nil {
		kinds++
	}
	if kinds == 0 {
		return &ValidationError{
			Field:   field(""),
			Message: `one of "run", "command", or "checkout" is required`,
		}
	}
	if kinds > 1 {
		return &ValidationError{
			Field:   field(""),
			Message: `"run", "command", and "checkout" are mutually exclusive`,
		}
	}

	if len(stage.Args) > 0 && stage.Command == "" {
		return &ValidationError{
			Field:   field("args"),
			Message: `requires "command"`,
		}
	}

	if stage.Checkout != nil {
		if stage.Checkout.Repository == "" {
			return &ValidationError{Field: field("checkout.repository"), Message: "is required"}
		}
		if stage.Checkout.Depth < 0 {
			return &ValidationError{Field: field("checkout.depth"), Message: "must be non-negative"}
		}
	}

	if err := validateStageDir(stage.Dir); err != nil {
		return &ValidationError{Field: field("dir"), Message: err.Error()}
	}

	return nil
}

// validateStageDir ensures a stage working directory stays inside the
// workspace.
func validateStageDir(dir string) error {
	if dir == "" {
		return nil
	}
	if filepath.IsAbs(dir) {
		return fmt.Errorf("must be relative to the workspace, got absolute path %q", dir)
	}
	clean := filepath.Clean(dir)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return fmt.Errorf("must not escape the workspace, got %q", dir)
	}
	return nil
}

func validateWorkspace(dir string) error {
	if dir == "" {
		return nil
	}
	// Workspace may be absolute or relative to the project root; nothing
	// more to check at definition time.
	return nil
}

// ValidatePipelineName checks if a pipeline name is valid.
func ValidatePipelineName(name string) error {
	if name == "" {
		return &ValidationError{Field: "pipeline.name", Message: "is required"}
	}
	if len(name) > 128 {
		return &ValidationError{Field: "pipeline.name", Message: "must be 128 characters or less"}
	}
	if !pipelineNamePattern.MatchString(name) {
		return &ValidationError{
			Field:   "pipeline.name",
			Message: "must match pattern ^[a-z][a-z0-9]*(-[a-z0-9]+)*$ (lowercase letters, digits, non-consecutive hyphens)",
		}
	}
	return nil
}
