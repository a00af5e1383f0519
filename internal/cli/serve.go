package cli

import (
	"github.com/stagehand-ci/stagehand/internal/project"
	"github.com/stagehand-ci/stagehand/internal/web"
)

// newServer wires the HTTP API for a loaded project.
func newServer(proj *project.Project) *web.Server {
	return web.NewServer(proj, newRunner(), out)
}
