package cli

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/stagehand-ci/stagehand/internal/checkout"
	"github.com/stagehand-ci/stagehand/internal/errors"
	"github.com/stagehand-ci/stagehand/internal/execute"
	"github.com/stagehand-ci/stagehand/internal/pipeline"
	"github.com/stagehand-ci/stagehand/internal/project"
	"github.com/stagehand-ci/stagehand/internal/workspace"
)

// loadProject resolves and loads the project for the current invocation:
// from -f when given, otherwise by walking up from the working directory.
func loadProject(opts *GlobalOptions) (*project.Project, error) {
	if opts.File != "" {
		abs, err := filepath.Abs(opts.File)
		if err != nil {
			return nil, err
		}
		return project.LoadProjectFile(filepath.Dir(abs), abs)
	}
	return project.LoadProject()
}

func printWarnings(warnings []string) {
	for _, warning := range warnings {
		out.WarningSimple("%s", warning)
	}
}

// newRunner wires the executor and checkout provider into a pipeline runner.
// Stage process output streams through the CLI writer's sinks unbuffered.
func newRunner() *pipeline.Runner {
	executor := execute.NewWithSinks(out.Stdout(), out.Stderr())
	return pipeline.New(executor, checkout.NewGit(executor), out)
}

// cmdRun executes the pipeline and exits with 0 on success or the first
// failing stage's exit code.
func cmdRun(args []string, opts *GlobalOptions) int {
	if len(args) > 0 {
		out.ErrorPrefix("run takes no arguments, got %q", args[0])
		return errors.ExitConfigError
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	printWarnings(proj.Warnings)

	wsDir := proj.WorkspaceDir()
	if opts.Workspace != "" {
		wsDir = opts.Workspace
	}
	ws, err := workspace.New(wsDir)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitEnvironmentError
	}

	stages := pipeline.StagesFromConfig(proj.Config)
	runner := newRunner()

	run := runner.Run(context.Background(), proj.Config.Pipeline.Name, stages, ws)
	pipeline.PrintRunSummary(run, len(stages), out)

	return run.ExitCode()
}

// cmdValidate checks the definition against the schema and semantic rules.
func cmdValidate(args []string, opts *GlobalOptions) int {
	if len(args) > 0 {
		out.ErrorPrefix("validate takes no arguments, got %q", args[0])
		return errors.ExitConfigError
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	printWarnings(proj.Warnings)

	out.Success("%s: pipeline %q is valid (%d stages)",
		proj.DefinitionPath(), proj.Config.Pipeline.Name, len(proj.Config.Stages))
	return errors.ExitSuccess
}

// cmdStages lists the declared stages in execution order.
func cmdStages(args []string, opts *GlobalOptions) int {
	if len(args) > 0 {
		out.ErrorPrefix("stages takes no arguments, got %q", args[0])
		return errors.ExitConfigError
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	printWarnings(proj.Warnings)

	stages := pipeline.StagesFromConfig(proj.Config)

	rows := make([][]string, 0, len(stages))
	for i, stage := range stages {
		rows = append(rows, []string{
			// 1-based, matching run output
			strconv.Itoa(i + 1),
			stage.Name,
			stageKind(stage),
			stageCommand(stage),
		})
	}
	out.Table([]string{"#", "Stage", "Kind", "Command"}, rows)

	return errors.ExitSuccess
}

// cmdServe runs the HTTP API until interrupted.
func cmdServe(args []string, opts *GlobalOptions) int {
	addr := ":8080"
	if env := os.Getenv("STAGEHAND_ADDR"); env != "" {
		addr = env
	}

	i := 0
	for i < len(args) {
		switch args[i] {
		case "--addr":
			if i+1 >= len(args) {
				out.ErrorPrefix("--addr requires a value")
				return errors.ExitConfigError
			}
			addr = args[i+1]
			i += 2
		default:
			out.ErrorPrefix("unknown serve argument %q", args[i])
			return errors.ExitConfigError
		}
	}

	proj, err := loadProject(opts)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}
	printWarnings(proj.Warnings)

	server := newServer(proj)
	if err := server.ListenAndServe(addr); err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitEnvironmentError
	}
	return errors.ExitSuccess
}

func stageKind(stage pipeline.Stage) string {
	switch stage.Kind {
	case pipeline.KindCheckout:
		return "checkout"
	case pipeline.KindExec:
		return "exec"
	default:
		return "shell"
	}
}

func stageCommand(stage pipeline.Stage) string {
	switch stage.Kind {
	case pipeline.KindCheckout:
		return stage.Checkout.Repository
	case pipeline.KindExec:
		if len(stage.Args) == 0 {
			return stage.Command
		}
		return stage.Command + " " + strings.Join(stage.Args, " ")
	default:
		return stage.Shell
	}
}
