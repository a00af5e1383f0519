// Package web exposes the demo greeting endpoint and a small HTTP surface
// over the loaded pipeline.
package web

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/stagehand-ci/stagehand/internal/output"
	"github.com/stagehand-ci/stagehand/internal/pipeline"
	"github.com/stagehand-ci/stagehand/internal/project"
	"github.com/stagehand-ci/stagehand/internal/workspace"
	"github.com/stagehand-ci/stagehand/pkg/greeting"
)

// Server serves the HTTP API for a loaded project.
type Server struct {
	proj   *project.Project
	runner *pipeline.Runner
	out    *output.Writer

	// Serializes runs: the workspace is exclusively owned by one run at a time.
	runMu sync.Mutex
}

// NewServer creates a Server for the given project and runner.
func NewServer(proj *project.Project, runner *pipeline.Runner, out *output.Writer) *Server {
	return &Server{proj: proj, runner: runner, out: out}
}

// Router builds the HTTP routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/api/greet/{name}", s.handleGreet)
	r.Get("/api/pipeline", s.handlePipeline)
	r.Post("/api/runs", s.handleRun)

	return r
}

// ListenAndServe starts the HTTP server on addr and blocks.
func (s *Server) ListenAndServe(addr string) error {
	s.out.Info("stagehand API listening on %s", addr)
	return http.ListenAndServe(addr, s.Router())
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleGreet(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(greeting.Greet(name)))
}

// pipelineView is the JSON shape of the loaded definition.
type pipelineView struct {
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Workspace   string      `json:"workspace"`
	Stages      []stageView `json:"stages"`
}

type stageView struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (s *Server) handlePipeline(w http.ResponseWriter, _ *http.Request) {
	stages := pipeline.StagesFromConfig(s.proj.Config)

	view := pipelineView{
		Name:        s.proj.Config.Pipeline.Name,
		Description: s.proj.Config.Pipeline.Description,
		Workspace:   s.proj.WorkspaceDir(),
		Stages:      make([]stageView, 0, len(stages)),
	}
	for _, stage := range stages {
		view.Stages = append(view.Stages, stageView{
			Name: stage.Name,
			Kind: stageKindName(stage.Kind),
		})
	}

	writeJSON(w, http.StatusOK, view)
}

// handleRun executes the loaded pipeline synchronously and returns the
// completed run record. The fail-fast semantics are the runner's; this
// handler adds nothing beyond transport.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	ws, err := workspace.New(s.proj.WorkspaceDir())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	stages := pipeline.StagesFromConfig(s.proj.Config)
	run := s.runner.Run(r.Context(), s.proj.Config.Pipeline.Name, stages, ws)

	status := http.StatusOK
	if !run.Success {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, run)
}

func stageKindName(kind pipeline.StageKind) string {
	switch kind {
	case pipeline.KindCheckout:
		return "checkout"
	case pipeline.KindExec:
		return "exec"
	default:
		return "shell"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
