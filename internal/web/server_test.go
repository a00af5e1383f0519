package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stagehand-ci/stagehand/internal/checkout"
	"github.com/stagehand-ci/stagehand/internal/execute"
	"github.com/stagehand-ci/stagehand/internal/output"
	"github.com/stagehand-ci/stagehand/internal/pipeline"
	"github.com/stagehand-ci/stagehand/internal/project"
)

func newTestServer(t *testing.T, definition string) *Server {
	t.Helper()

	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, project.DefinitionFileName), []byte(definition), 0644); err != nil {
		t.Fatal(err)
	}
	proj, err := project.LoadProjectFrom(root)
	if err != nil {
		t.Fatalf("failed to load test project: %v", err)
	}

	out := output.NewWithWriters(&bytes.Buffer{}, &bytes.Buffer{}, false)
	executor := execute.NewWithSinks(&bytes.Buffer{}, &bytes.Buffer{})
	runner := pipeline.New(executor, checkout.NewGit(executor), out)

	return NewServer(proj, runner, out)
}

const serverDefinition = `
pipeline:
  name: demo
  description: Demo pipeline
workspace: build
stages:
  - name: Build
    run: "true"
  - name: Package
    run: "true"
`

func TestHealthz(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, serverDefinition)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "ok" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "ok")
	}
}

func TestGreet(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, serverDefinition)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/greet/alice", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if rec.Body.String() != "Hello, Alice!" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "Hello, Alice!")
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Errorf("Content-Type = %q", ct)
	}
}

func TestGetPipeline(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, serverDefinition)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/pipeline", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var view struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Workspace   string `json:"workspace"`
		Stages      []struct {
			Name string `json:"name"`
			Kind string `json:"kind"`
		} `json:"stages"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if view.Name != "demo" || view.Description != "Demo pipeline" {
		t.Errorf("pipeline = %+v", view)
	}
	if len(view.Stages) != 2 {
		t.Fatalf("len(stages) = %d, want 2", len(view.Stages))
	}
	if view.Stages[0].Name != "Build" || view.Stages[0].Kind != "shell" {
		t.Errorf("stages[0] = %+v", view.Stages[0])
	}
}

func TestPostRuns_Success(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, serverDefinition)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/runs", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var run struct {
		ID      string `json:"id"`
		State   string `json:"state"`
		Success bool   `json:"success"`
		Results []struct {
			Stage    string `json:"stage"`
			ExitCode int    `json:"exitCode"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}

	if !run.Success || run.State != "succeeded" {
		t.Errorf("run = %+v, want succeeded", run)
	}
	if run.ID == "" {
		t.Error("run.ID is empty")
	}
	if len(run.Results) != 2 {
		t.Errorf("len(results) = %d, want 2", len(run.Results))
	}
}

func TestPostRuns_FailureReturns422(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, `
pipeline:
  name: demo
workspace: build
stages:
  - name: Build
    run: "true"
  - name: Test
    run: "exit 5"
  - name: Package
    run: "true"
`)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/runs", nil))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422; body = %s", rec.Code, rec.Body.String())
	}

	var run struct {
		Success bool `json:"success"`
		Results []struct {
			Stage    string `json:"stage"`
			ExitCode int    `json:"exitCode"`
		} `json:"results"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &run); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if run.Success {
		t.Error("run.Success = true, want false")
	}
	if len(run.Results) != 2 {
		t.Errorf("len(results) = %d, want 2 (fail-fast)", len(run.Results))
	}
	if run.Results[1].ExitCode != 5 {
		t.Errorf("results[1].exitCode = %d, want 5", run.Results[1].ExitCode)
	}
}

func TestUnknownRouteReturns404(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t, serverDefinition)

	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
