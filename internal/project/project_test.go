package project

import (
	"os"
	"path/filepath"
	"testing"
)

const testDefinition = `
pipeline:
  name: demo
stages:
  - name: Build
    run: make build
`

func writeProject(t *testing.T, workspace string) string {
	t.Helper()
	root := t.TempDir()
	def := testDefinition
	if workspace != "" {
		def += "workspace: " + workspace + "\n"
	}
	if err := os.WriteFile(filepath.Join(root, DefinitionFileName), []byte(def), 0644); err != nil {
		t.Fatal(err)
	}
	return root
}

func TestFindRootFrom_CurrentDirectory(t *testing.T) {
	t.Parallel()
	root := writeProject(t, "")

	got, err := FindRootFrom(root)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if got != root {
		t.Errorf("FindRootFrom() = %q, want %q", got, root)
	}
}

func TestFindRootFrom_WalksUp(t *testing.T) {
	t.Parallel()
	root := writeProject(t, "")
	nested := filepath.Join(root, "a", "b", "c")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	got, err := FindRootFrom(nested)
	if err != nil {
		t.Fatalf("FindRootFrom() error = %v", err)
	}
	if got != root {
		t.Errorf("FindRootFrom() = %q, want %q", got, root)
	}
}

func TestFindRootFrom_NotFound(t *testing.T) {
	t.Parallel()
	_, err := FindRootFrom(t.TempDir())
	if err != ErrNoProjectRoot {
		t.Errorf("FindRootFrom() error = %v, want ErrNoProjectRoot", err)
	}
}

func TestLoadProjectFrom(t *testing.T) {
	t.Parallel()
	root := writeProject(t, "")

	proj, err := LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("LoadProjectFrom() error = %v", err)
	}
	if proj.Root != root {
		t.Errorf("proj.Root = %q, want %q", proj.Root, root)
	}
	if proj.Config.Pipeline.Name != "demo" {
		t.Errorf("pipeline name = %q", proj.Config.Pipeline.Name)
	}
	if got, want := proj.DefinitionPath(), filepath.Join(root, DefinitionFileName); got != want {
		t.Errorf("DefinitionPath() = %q, want %q", got, want)
	}
}

func TestLoadProjectFrom_InvalidDefinition(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	bad := "pipeline:\n  name: Not Valid\nstages:\n  - name: Build\n    run: make\n"
	if err := os.WriteFile(filepath.Join(root, DefinitionFileName), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadProjectFrom(root)
	if err == nil {
		t.Fatal("LoadProjectFrom() error = nil, want validation error")
	}
}

func TestWorkspaceDir(t *testing.T) {
	t.Parallel()
	t.Run("default", func(t *testing.T) {
		t.Parallel()
		root := writeProject(t, "")
		proj, err := LoadProjectFrom(root)
		if err != nil {
			t.Fatal(err)
		}
		if got := proj.WorkspaceDir(); got != root {
			t.Errorf("WorkspaceDir() = %q, want project root %q", got, root)
		}
	})

	t.Run("relative", func(t *testing.T) {
		t.Parallel()
		root := writeProject(t, "build")
		proj, err := LoadProjectFrom(root)
		if err != nil {
			t.Fatal(err)
		}
		if got, want := proj.WorkspaceDir(), filepath.Join(root, "build"); got != want {
			t.Errorf("WorkspaceDir() = %q, want %q", got, want)
		}
	})

	t.Run("absolute", func(t *testing.T) {
		t.Parallel()
		abs := t.TempDir()
		root := writeProject(t, abs)
		proj, err := LoadProjectFrom(root)
		if err != nil {
			t.Fatal(err)
		}
		if got := proj.WorkspaceDir(); got != abs {
			t.Errorf("WorkspaceDir() = %q, want %q", got, abs)
		}
	})
}
