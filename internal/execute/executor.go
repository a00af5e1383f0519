// Package execute runs a single external command to completion, capturing
// its exit status.
package execute

import (
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	stagehanderrors "github.com/stagehand-ci/stagehand/internal/errors"
)

// Spec describes one external command invocation. Exactly one of Command
// (exact argv) or Shell (opaque command string run via sh -c) is set;
// config validation guarantees this before a Spec is built.
type Spec struct {
	Stage   string            // Stage name, used for error attribution
	Command string            // Executable for the argv form
	Args    []string          // Arguments for the argv form
	Shell   string            // Opaque shell command string
	Dir     string            // Working directory (absolute)
	Env     map[string]string // Additional environment variables
}

// Executor launches external processes synchronously, streaming their
// output unbuffered to the configured sinks.
type Executor struct {
	stdout io.Writer
	stderr io.Writer
}

// New creates an Executor that streams to the process's stdout/stderr.
func New() *Executor {
	return NewWithSinks(os.Stdout, os.Stderr)
}

// NewWithSinks creates an Executor with custom output sinks (for testing).
func NewWithSinks(stdout, stderr io.Writer) *Executor {
	return &Executor{stdout: stdout, stderr: stderr}
}

// Execute runs the command described by spec and blocks until it exits.
// It returns the process's exit code. A command that starts and exits
// non-zero is not an error here; the returned error is non-nil only when
// the command could not be launched at all (missing executable, permission
// denied), in which case the exit code is the launch sentinel.
func (e *Executor) Execute(ctx context.Context, spec Spec) (int, error) {
	cmd, err := e.buildCommand(ctx, spec)
	if err != nil {
		return stagehanderrors.LaunchExitCode, err
	}

	cmd.Dir = spec.Dir
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr

	// Environment precedence: spec env overrides inherited process env.
	cmd.Env = os.Environ()
	for k, v := range spec.Env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			code := exitErr.ExitCode()
			if code < 0 {
				// Signal-terminated processes report no exit status.
				code = stagehanderrors.ExitRuntimeError
			}
			return code, nil
		}
		// Run failed before the process started.
		return stagehanderrors.LaunchExitCode,
			stagehanderrors.Launch(spec.Stage, "cannot launch command: "+err.Error(), err)
	}

	return 0, nil
}

// buildCommand constructs the exec.Cmd for a spec, pre-checking that the
// executable exists. The pre-check matters most for the shell form: a
// missing binary inside `sh -c` would otherwise surface as a plain exit
// 127 from the shell, indistinguishable from a launch failure.
func (e *Executor) buildCommand(ctx context.Context, spec Spec) (*exec.Cmd, error) {
	if spec.Shell != "" {
		name := extractCommandName(spec.Shell)
		if name != "" && !isCommandAvailable(name) {
			return nil, stagehanderrors.Launch(spec.Stage, "command not found: "+name, nil)
		}
		return exec.CommandContext(ctx, "sh", "-c", spec.Shell), nil
	}

	if _, err := exec.LookPath(spec.Command); err != nil {
		return nil, stagehanderrors.Launch(spec.Stage, "command not found: "+spec.Command, err)
	}
	return exec.CommandContext(ctx, spec.Command, spec.Args...), nil
}

// extractCommandName extracts the executable name (first word) from a shell
// command string. Returns empty string for shell expressions that start
// with quotes, which the shell interprets directly.
func extractCommandName(cmdStr string) string {
	trimmed := strings.TrimSpace(cmdStr)
	if len(trimmed) == 0 {
		return ""
	}
	if trimmed[0] == '"' || trimmed[0] == '\'' {
		return ""
	}
	return strings.Fields(trimmed)[0]
}

// isCommandAvailable checks if a command is available in PATH.
// Returns true for shell builtins, which are always available via sh -c.
func isCommandAvailable(cmdName string) bool {
	if isShellBuiltin(cmdName) {
		return true
	}
	_, err := exec.LookPath(cmdName)
	return err == nil
}

// shellBuiltins is the set of common shell builtins that don't exist as
// external commands in PATH but are always available via sh -c.
// Reference: IEEE Std 1003.1-2017 (POSIX.1-2017) and common shell implementations.
var shellBuiltins = map[string]struct{}{
	"exit":     {},
	"test":     {},
	"[":        {},
	"echo":     {},
	"cd":       {},
	"pwd":      {},
	"export":   {},
	"unset":    {},
	"set":      {},
	"true":     {},
	"false":    {},
	"read":     {},
	"eval":     {},
	"exec":     {},
	"source":   {},
	".":        {},
	"return":   {},
	"break":    {},
	"continue": {},
	"shift":    {},
	"trap":     {},
	"wait":     {},
	"kill":     {},
	"type":     {},
	"alias":    {},
	"unalias":  {},
	"command":  {},
	"builtin":  {},
	"local":    {},
	"declare":  {},
	"typeset":  {},
	"readonly": {},
	"getopts":  {},
	"hash":     {},
	"times":    {},
	"umask":    {},
	"ulimit":   {},
}

// isShellBuiltin returns true if the command is a shell builtin.
func isShellBuiltin(cmdName string) bool {
	_, ok := shellBuiltins[cmdName]
	return ok
}
