// Package project provides pipeline project discovery and loading.
package project

import (
	"errors"
	"os"
	"path/filepath"
)

// DefinitionFileName is the name of the pipeline definition file.
const DefinitionFileName = "stagehand.yaml"

// ErrNoProjectRoot is returned when stagehand.yaml is not found.
var ErrNoProjectRoot = errors.New("stagehand.yaml not found: not a stagehand project (or any parent up to the root)")

// FindRoot walks up from the current working directory until it finds
// stagehand.yaml.
func FindRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return FindRootFrom(cwd)
}

// FindRootFrom walks up from the given directory until it finds stagehand.yaml.
func FindRootFrom(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		definitionPath := filepath.Join(dir, DefinitionFileName)
		if _, err := os.Stat(definitionPath); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoProjectRoot
		}
		dir = parent
	}
}
