// Package checkout populates the execution workspace from version control.
package checkout

import (
	"context"
	"fmt"

	stagehanderrors "github.com/stagehand-ci/stagehand/internal/errors"
	"github.com/stagehand-ci/stagehand/internal/execute"
	"github.com/stagehand-ci/stagehand/internal/workspace"
)

// Spec describes a version-control checkout.
type Spec struct {
	Repository string
	Ref        string
	Depth      int
}

// Git checks out a repository into the workspace using the git CLI.
type Git struct {
	executor *execute.Executor
}

// NewGit creates a Git checkout provider running git through the given
// executor, so clone output streams to the same sinks as stage commands.
func NewGit(executor *execute.Executor) *Git {
	return &Git{executor: executor}
}

// Checkout clones the repository into the workspace root. The workspace
// must be empty; refusing to clone over existing content keeps a stale
// checkout from silently masquerading as a fresh one.
func (g *Git) Checkout(ctx context.Context, stage string, spec Spec, ws *workspace.Workspace) error {
	empty, err := ws.IsEmpty()
	if err != nil {
		return stagehanderrors.Checkout(stage, "inspect workspace: "+err.Error(), err)
	}
	if !empty {
		return stagehanderrors.Checkout(stage,
			fmt.Sprintf("workspace %s is not empty; use a fresh directory for checkout", ws.Root()), nil)
	}

	args := []string{"clone"}
	if spec.Depth > 0 {
		args = append(args, "--depth", fmt.Sprintf("%d", spec.Depth))
	}
	if spec.Ref != "" {
		args = append(args, "--branch", spec.Ref)
	}
	args = append(args, spec.Repository, ws.Root())

	code, err := g.executor.Execute(ctx, execute.Spec{
		Stage:   stage,
		Command: "git",
		Args:    args,
	})
	if err != nil {
		// git itself could not be launched.
		return stagehanderrors.Checkout(stage, "git unavailable: "+err.Error(), err)
	}
	if code != 0 {
		return stagehanderrors.Checkout(stage,
			fmt.Sprintf("git clone %s exited with code %d", spec.Repository, code), nil)
	}

	return nil
}
