// Package workspace provides the filesystem workspace handle shared by all
// stages in a pipeline run.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// Workspace is the working checkout a pipeline run executes against.
// It is passed explicitly into each stage invocation rather than held as
// ambient global state, so tests can substitute isolated temporary
// directories per run. The runner owns it exclusively for the run's
// duration.
type Workspace struct {
	root string
}

// New creates a workspace rooted at dir, creating the directory if needed.
func New(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace path: %w", err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return nil, fmt.Errorf("create workspace directory: %w", err)
	}
	return &Workspace{root: abs}, nil
}

// Root returns the absolute path of the workspace root.
func (w *Workspace) Root() string { return w.root }

// Path resolves a stage's working directory relative to the workspace root.
// An empty rel resolves to the root itself.
func (w *Workspace) Path(rel string) string {
	if rel == "" {
		return w.root
	}
	return filepath.Join(w.root, rel)
}

// IsEmpty reports whether the workspace root contains no entries.
// Checkout providers use this to refuse cloning over existing content.
func (w *Workspace) IsEmpty() (bool, error) {
	entries, err := os.ReadDir(w.root)
	if err != nil {
		return false, fmt.Errorf("read workspace directory: %w", err)
	}
	return len(entries) == 0, nil
}
