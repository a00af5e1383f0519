package project

import (
	"fmt"
	"path/filepath"

	"github.com/stagehand-ci/stagehand/internal/config"
)

// Project represents a loaded stagehand project.
type Project struct {
	Root     string
	Config   *config.Config
	Warnings []string
}

// LoadProject finds and loads a project from the current directory.
func LoadProject() (*Project, error) {
	root, err := FindRoot()
	if err != nil {
		return nil, err
	}
	return LoadProjectFrom(root)
}

// LoadProjectFrom loads a project from a specified root directory.
func LoadProjectFrom(root string) (*Project, error) {
	return LoadProjectFile(root, filepath.Join(root, DefinitionFileName))
}

// LoadProjectFile loads a project from an explicit definition file path.
// Used by the -f flag to run definitions outside the default location.
func LoadProjectFile(root, definitionPath string) (*Project, error) {
	cfg, warnings, err := config.LoadAndValidate(definitionPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load pipeline definition: %w", err)
	}

	return &Project{
		Root:     root,
		Config:   cfg,
		Warnings: warnings,
	}, nil
}

// DefinitionPath returns the full path to the pipeline definition file.
func (p *Project) DefinitionPath() string {
	return filepath.Join(p.Root, DefinitionFileName)
}

// WorkspaceDir resolves the configured workspace directory against the
// project root. Absolute workspace paths are used as-is.
func (p *Project) WorkspaceDir() string {
	ws := p.Config.Workspace
	if ws == "" {
		ws = config.DefaultWorkspace
	}
	if filepath.IsAbs(ws) {
		return ws
	}
	return filepath.Join(p.Root, ws)
}
