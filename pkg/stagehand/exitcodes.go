// Package stagehand provides public constants for external tools
// integrating with the stagehand CLI.
package stagehand

// Exit codes returned by the stagehand CLI.
// These constants allow external tools to check exit codes symbolically
// rather than using magic numbers. A failed run exits with the first
// failing stage's own exit code, so any non-zero value is possible there;
// the constants below cover stagehand's own outcomes.
const (
	// ExitSuccess indicates every stage completed successfully.
	ExitSuccess = 0

	// ExitFailure indicates a generic runtime failure.
	ExitFailure = 1

	// ExitConfigError indicates an invalid pipeline definition.
	ExitConfigError = 2

	// ExitEnvError indicates an environment error (missing tool, unusable workspace).
	ExitEnvError = 3

	// ExitLaunchFailure is the sentinel recorded when a stage's command
	// could not be started at all.
	ExitLaunchFailure = 127
)
