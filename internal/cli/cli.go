// Package cli provides command-line interface functionality for stagehand.
package cli

import (
	"fmt"

	"github.com/stagehand-ci/stagehand/internal/errors"
	"github.com/stagehand-ci/stagehand/internal/output"
)

// Version is set at build time.
var Version = "dev"

var out = output.New()

// Run executes the CLI with the given arguments and returns an exit code.
func Run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "-h", "--help", "help":
		printUsage()
		return 0
	case "--version", "version":
		fmt.Printf("stagehand %s\n", Version)
		return 0
	}

	opts, remaining, err := parseGlobalFlags(args)
	if err != nil {
		out.ErrorPrefix("%v", err)
		return errors.ExitConfigError
	}

	if len(remaining) == 0 {
		printUsage()
		return 0
	}
	cmd := remaining[0]
	cmdArgs := remaining[1:]

	switch cmd {
	case "run":
		return cmdRun(cmdArgs, opts)
	case "validate":
		return cmdValidate(cmdArgs, opts)
	case "stages":
		return cmdStages(cmdArgs, opts)
	case "serve":
		return cmdServe(cmdArgs, opts)
	default:
		out.ErrorPrefix("unknown command %q", cmd)
		out.Errorln("Run 'stagehand help' for usage.")
		return errors.ExitConfigError
	}
}

// GlobalOptions holds parsed global flags.
type GlobalOptions struct {
	File      string // Explicit pipeline definition path (-f)
	Workspace string // Workspace directory override
	Quiet     bool
}

// parseGlobalFlags manually parses global flags from arguments.
//
// Manual parsing is used instead of the stdlib flag package because flags
// can appear anywhere in the argument list, not just before the command,
// and custom error messages with usage hints are needed.
func parseGlobalFlags(args []string) (*GlobalOptions, []string, error) {
	opts := &GlobalOptions{}
	var remaining []string

	i := 0
	for i < len(args) {
		arg := args[i]

		switch {
		case arg == "-q" || arg == "--quiet":
			opts.Quiet = true
			i++
		case arg == "-f" || arg == "--file":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("%s requires a value", arg)
			}
			opts.File = args[i+1]
			i += 2
		case arg == "--workspace":
			if i+1 >= len(args) {
				return nil, nil, fmt.Errorf("--workspace requires a value")
			}
			opts.Workspace = args[i+1]
			i += 2
		case arg == "--":
			// Everything after -- is passed through untouched
			remaining = append(remaining, args[i+1:]...)
			i = len(args)
		default:
			remaining = append(remaining, arg)
			i++
		}
	}

	out.SetQuiet(opts.Quiet)

	return opts, remaining, nil
}

func printUsage() {
	w := output.New()

	w.HelpTitle("stagehand - fail-fast sequential pipeline runner")

	w.HelpSection("Usage:")
	w.HelpUsage("stagehand <command> [flags]")

	w.HelpSection("Commands:")
	w.HelpCommand("run", "Execute the pipeline stages in declared order", 10)
	w.HelpCommand("validate", "Validate the pipeline definition", 10)
	w.HelpCommand("stages", "List the declared stages", 10)
	w.HelpCommand("serve", "Serve the HTTP API (greeting + pipeline endpoints)", 10)
	w.HelpCommand("version", "Show version information", 10)

	w.HelpSection("Global Flags:")
	w.HelpFlag("-f, --file <path>", "Pipeline definition file (default: stagehand.yaml, discovered upward)", 20)
	w.HelpFlag("--workspace <dir>", "Workspace directory override", 20)
	w.HelpFlag("-q, --quiet", "Minimal output (errors only)", 20)
	w.HelpFlag("-h, --help", "Show this help", 20)
	w.HelpFlag("--version", "Show version", 20)

	w.HelpSection("Examples:")
	w.HelpExample("stagehand run", "Run the pipeline in the current project")
	w.HelpExample("stagehand run --workspace /tmp/build-42", "Run against a fresh workspace")
	w.HelpExample("stagehand validate -f ci/stagehand.yaml", "Validate a specific definition")
	w.Println("")
}
