package pipeline

import (
	"fmt"
	"strings"
	"time"

	"github.com/stagehand-ci/stagehand/internal/output"
)

// PrintRunSummary prints a per-stage listing and the final verdict of a run.
func PrintRunSummary(run *Run, total int, out *output.Writer) {
	out.SummaryHeader("Run Summary")

	out.SummarySectionLabel("Stages:")
	for _, result := range run.Results {
		var errMsg string
		if result.Err != nil {
			errMsg = result.Err.Error()
		} else if !result.Success() {
			errMsg = fmt.Sprintf("exit code %d", result.ExitCode)
		}
		out.SummaryAction(result.Stage, result.Success(), FormatDuration(result.Duration), errMsg)
	}
	if skipped := total - len(run.Results); skipped > 0 {
		out.SummarySectionLabel(fmt.Sprintf("(%d stage(s) not attempted)", skipped))
	}
	out.Println("")

	var passed, failed []string
	for _, result := range run.Results {
		if result.Success() {
			passed = append(passed, result.Stage)
		} else {
			failed = append(failed, result.Stage)
		}
	}
	if len(passed) > 0 {
		out.SummaryPassed("Passed", strings.Join(passed, ", "))
	}
	if len(failed) > 0 {
		out.SummaryFailed("Failed", strings.Join(failed, ", "))
	}

	out.SummaryItem("Run ID", run.ID.String())
	out.SummaryItem("Duration", FormatDuration(run.Duration))

	if run.Success {
		out.FinalSuccess("Pipeline %q completed successfully.", run.Pipeline)
	} else {
		out.FinalFailure("Pipeline %q failed.", run.Pipeline)
	}
}

// FormatDuration formats a duration in a human-readable way.
func FormatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	m := int(d.Minutes())
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%dm%ds", m, s)
}
