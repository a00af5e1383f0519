package workspace

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNew_CreatesDirectory(t *testing.T) {
	t.Parallel()
	dir := filepath.Join(t.TempDir(), "nested", "ws")

	ws, err := New(dir)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	info, err := os.Stat(ws.Root())
	if err != nil {
		t.Fatalf("workspace directory missing: %v", err)
	}
	if !info.IsDir() {
		t.Error("workspace root is not a directory")
	}
	if !filepath.IsAbs(ws.Root()) {
		t.Errorf("Root() = %q, want absolute path", ws.Root())
	}
}

func TestPath(t *testing.T) {
	t.Parallel()
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	if got := ws.Path(""); got != ws.Root() {
		t.Errorf("Path(\"\") = %q, want root %q", got, ws.Root())
	}
	if got, want := ws.Path("sub/dir"), filepath.Join(ws.Root(), "sub", "dir"); got != want {
		t.Errorf("Path(\"sub/dir\") = %q, want %q", got, want)
	}
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()
	ws, err := New(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	empty, err := ws.IsEmpty()
	if err != nil {
		t.Fatal(err)
	}
	if !empty {
		t.Error("fresh workspace should be empty")
	}

	if err := os.WriteFile(ws.Path("file.txt"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	empty, err = ws.IsEmpty()
	if err != nil {
		t.Fatal(err)
	}
	if empty {
		t.Error("workspace with a file should not be empty")
	}
}
