package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDefinition = `
pipeline:
  name: demo-service
  description: Demo service pipeline
workspace: build
env:
  CI: "true"
stages:
  - name: Checkout
    checkout:
      repository: https://example.com/demo.git
      ref: main
      depth: 1
  - name: Build
    run: make build
  - name: Docker Build
    command: docker
    args: ["build", "."]
    dir: docker
`

func writeDefinition(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stagehand.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadAndValidate_Valid(t *testing.T) {
	t.Parallel()
	path := writeDefinition(t, validDefinition)

	cfg, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 0 {
		t.Errorf("warnings = %v, want none", warnings)
	}

	if cfg.Pipeline.Name != "demo-service" {
		t.Errorf("Pipeline.Name = %q, want %q", cfg.Pipeline.Name, "demo-service")
	}
	if cfg.Workspace != "build" {
		t.Errorf("Workspace = %q, want %q", cfg.Workspace, "build")
	}
	if cfg.Env["CI"] != "true" {
		t.Errorf("Env[CI] = %q, want %q", cfg.Env["CI"], "true")
	}
	if len(cfg.Stages) != 3 {
		t.Fatalf("len(Stages) = %d, want 3", len(cfg.Stages))
	}

	checkout := cfg.Stages[0]
	if checkout.Checkout == nil || checkout.Checkout.Repository != "https://example.com/demo.git" {
		t.Errorf("checkout stage = %+v", checkout)
	}
	if checkout.Checkout.Depth != 1 {
		t.Errorf("checkout.Depth = %d, want 1", checkout.Checkout.Depth)
	}
	if cfg.Stages[1].Run != "make build" {
		t.Errorf("Stages[1].Run = %q", cfg.Stages[1].Run)
	}
	docker := cfg.Stages[2]
	if docker.Command != "docker" || len(docker.Args) != 2 || docker.Dir != "docker" {
		t.Errorf("docker stage = %+v", docker)
	}
}

func TestLoadAndValidate_DefaultWorkspace(t *testing.T) {
	t.Parallel()
	path := writeDefinition(t, `
pipeline:
  name: demo
stages:
  - name: Build
    run: "true"
`)

	cfg, _, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if cfg.Workspace != DefaultWorkspace {
		t.Errorf("Workspace = %q, want default %q", cfg.Workspace, DefaultWorkspace)
	}
}

func TestLoadAndValidate_MissingFile(t *testing.T) {
	t.Parallel()
	_, _, err := LoadAndValidate(filepath.Join(t.TempDir(), "stagehand.yaml"))
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want read error")
	}
}

func TestLoadAndValidate_MalformedYAML(t *testing.T) {
	t.Parallel()
	path := writeDefinition(t, "pipeline: [unclosed")

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want parse error")
	}
}

func TestLoadAndValidate_SchemaRejectsMissingStages(t *testing.T) {
	t.Parallel()
	path := writeDefinition(t, `
pipeline:
  name: demo
`)

	_, _, err := LoadAndValidate(path)
	if err == nil {
		t.Fatal("LoadAndValidate() error = nil, want schema violation")
	}
}

func TestLoadAndValidate_UnknownFieldWarnings(t *testing.T) {
	t.Parallel()
	path := writeDefinition(t, `
pipeline:
  name: demo
stages:
  - name: Build
    run: make
    retries: 3
`)

	_, warnings, err := LoadAndValidate(path)
	if err != nil {
		t.Fatalf("LoadAndValidate() error = %v", err)
	}
	if len(warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", warnings)
	}
	if !strings.Contains(warnings[0], `"retries"`) {
		t.Errorf("warning = %q, should name the unknown field", warnings[0])
	}
}

func TestParseWithWarnings_UnknownTopLevelField(t *testing.T) {
	t.Parallel()
	cfg, warnings, err := ParseWithWarnings([]byte(`
pipeline:
  name: demo
notifications:
  slack: "#builds"
stages:
  - name: Build
    run: make
`))
	if err != nil {
		t.Fatalf("ParseWithWarnings() error = %v", err)
	}
	if cfg.Pipeline.Name != "demo" {
		t.Errorf("Pipeline.Name = %q", cfg.Pipeline.Name)
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], `"notifications"`) {
		t.Errorf("warnings = %v, want one naming notifications", warnings)
	}
}
