// Package output provides formatted output utilities for the CLI.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Writer handles CLI output formatting.
type Writer struct {
	out   io.Writer
	err   io.Writer
	color bool
	quiet bool
}

// New creates a new Writer with default settings.
func New() *Writer {
	return &Writer{
		out:   os.Stdout,
		err:   os.Stderr,
		color: isTerminal(),
	}
}

// NewWithWriters creates a Writer with custom io.Writers (for testing).
func NewWithWriters(out, err io.Writer, color bool) *Writer {
	return &Writer{
		out:   out,
		err:   err,
		color: color,
	}
}

// SetQuiet enables or disables quiet mode.
func (w *Writer) SetQuiet(quiet bool) {
	w.quiet = quiet
}

// Stdout returns the writer used for standard output.
// Stage processes inherit it so their output streams through unbuffered.
func (w *Writer) Stdout() io.Writer { return w.out }

// Stderr returns the writer used for standard error.
func (w *Writer) Stderr() io.Writer { return w.err }

// Print writes to stdout.
func (w *Writer) Print(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout.
func (w *Writer) Println(format string, args ...interface{}) {
	fmt.Fprintf(w.out, format+"\n", args...)
}

// Error writes to stderr.
func (w *Writer) Error(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format, args...)
}

// Errorln writes a line to stderr.
func (w *Writer) Errorln(format string, args ...interface{}) {
	fmt.Fprintf(w.err, format+"\n", args...)
}

// Info prints an info message (skipped in quiet mode).
func (w *Writer) Info(format string, args ...interface{}) {
	if w.quiet {
		return
	}
	w.Println(format, args...)
}

// Success prints a success message.
func (w *Writer) Success(format string, args ...interface{}) {
	if w.color {
		w.Println(green+format+reset, args...)
	} else {
		w.Println(format, args...)
	}
}

// Warning prints a warning message.
func (w *Writer) Warning(format string, args ...interface{}) {
	if w.color {
		w.Errorln(yellow+"warning: "+format+reset, args...)
	} else {
		w.Errorln("warning: "+format, args...)
	}
}

// WarningSimple prints a warning message with a colored prefix only.
func (w *Writer) WarningSimple(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%swarning:%s %s", yellow, reset, msg)
	} else {
		w.Errorln("warning: %s", msg)
	}
}

// ErrorPrefix prints an error message with the stagehand prefix to stderr.
func (w *Writer) ErrorPrefix(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Errorln("%sstagehand:%s %s", red, reset, msg)
	} else {
		w.Errorln("stagehand: %s", msg)
	}
}

// StageStart prints the start of a pipeline stage with enhanced visibility.
func (w *Writer) StageStart(index, total int, stage string) {
	if w.quiet {
		return
	}
	// Empty line for visual separation
	w.Println("")
	label := fmt.Sprintf("─── [%d/%d] %s ───", index, total, stage)
	if w.color {
		w.Println("%s%s%s", bold+cyan, label, reset)
	} else {
		w.Println("%s", label)
	}
}

// StageSuccess prints stage completion.
func (w *Writer) StageSuccess(stage, duration string) {
	if w.quiet {
		return
	}
	if w.color {
		w.Println("%s[%s]%s %s✓%s %s", green, stage, reset, green, reset, duration)
	} else {
		w.Println("[%s] done (%s)", stage, duration)
	}
}

// StageFailed prints stage failure.
func (w *Writer) StageFailed(stage string, exitCode int, err error) {
	detail := fmt.Sprintf("exit code %d", exitCode)
	if err != nil {
		detail = err.Error()
	}
	if w.color {
		w.Errorln("%s[%s] failed:%s %s", red, stage, reset, detail)
	} else {
		w.Errorln("[%s] failed: %s", stage, detail)
	}
}

// Section prints a section header.
func (w *Writer) Section(title string) {
	if w.quiet {
		return
	}
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
}

// List prints a list of items.
func (w *Writer) List(items []string) {
	for _, item := range items {
		w.Println("  - %s", item)
	}
}

// SummaryHeader prints a summary section header.
func (w *Writer) SummaryHeader(title string) {
	w.Println("")
	if w.color {
		w.Println("%s=== %s ===%s", bold+cyan, title, reset)
	} else {
		w.Println("=== %s ===", title)
	}
	w.Println("")
}

// SummaryItem prints a labeled summary item with value.
func (w *Writer) SummaryItem(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s", dim, label, reset, value)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryPassed prints a passed/success items summary.
func (w *Writer) SummaryPassed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, green, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummaryFailed prints a failed items summary.
func (w *Writer) SummaryFailed(label, value string) {
	if w.color {
		w.Println("  %s%s:%s %s%s%s", dim, label, reset, red, value, reset)
	} else {
		w.Println("  %s: %s", label, value)
	}
}

// SummarySectionLabel prints a label for a summary section (e.g., "Stages:").
func (w *Writer) SummarySectionLabel(label string) {
	if w.color {
		w.Println("  %s%s%s", dim, label, reset)
	} else {
		w.Println("  %s", label)
	}
}

// SummaryAction prints a status indicator, name, duration, and optional error.
// Used for per-stage lines in run summaries.
func (w *Writer) SummaryAction(name string, success bool, duration string, errMsg string) {
	if w.color {
		if success {
			w.Print("    %s✓%s %-14s %s%s%s", green, reset, name, dim, duration, reset)
		} else {
			w.Print("    %s✗%s %-14s %s%s%s", red, reset, name, dim, duration, reset)
			if errMsg != "" {
				w.Print("  %s(%s)%s", dim, errMsg, reset)
			}
		}
	} else {
		if success {
			w.Print("    + %-14s %s", name, duration)
		} else {
			w.Print("    x %-14s %s", name, duration)
			if errMsg != "" {
				w.Print("  (%s)", errMsg)
			}
		}
	}
	w.Print("\n")
}

// FinalSuccess prints a final success message.
func (w *Writer) FinalSuccess(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", green, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// FinalFailure prints a final failure message.
func (w *Writer) FinalFailure(format string, args ...interface{}) {
	w.Println("")
	msg := fmt.Sprintf(format, args...)
	if w.color {
		w.Println("%s%s%s", red, msg, reset)
	} else {
		w.Println("%s", msg)
	}
}

// HelpTitle formats the main help title line.
func (w *Writer) HelpTitle(title string) {
	if w.color {
		w.Println("%s%s%s", bold+cyan, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpSection formats a section header (e.g., "Commands:").
func (w *Writer) HelpSection(title string) {
	w.Println("")
	if w.color {
		w.Println("%s%s%s", bold+yellow, title, reset)
	} else {
		w.Println("%s", title)
	}
}

// HelpCommand formats a command with its description.
func (w *Writer) HelpCommand(name, description string, width int) {
	if w.color {
		w.Println("  %s%-*s%s  %s%s%s", bold+cyan, width, name, reset, dim, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// HelpFlag formats a flag with its description.
func (w *Writer) HelpFlag(name, description string, width int) {
	if w.color {
		w.Println("  %s%-*s%s  %s%s%s", yellow, width, name, reset, dim, description, reset)
	} else {
		w.Println("  %-*s  %s", width, name, description)
	}
}

// HelpUsage formats usage lines.
func (w *Writer) HelpUsage(usage string) {
	w.Println("  %s", usage)
}

// HelpExample formats an example command with description.
func (w *Writer) HelpExample(command, description string) {
	if w.color {
		w.Println("  %s%s%s", cyan, command, reset)
		if description != "" {
			w.Println("      %s%s%s", dim, description, reset)
		}
	} else {
		w.Println("  %s", command)
		if description != "" {
			w.Println("      %s", description)
		}
	}
}

// Table prints a simple table.
func (w *Writer) Table(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var headerParts []string
	for i, h := range headers {
		headerParts = append(headerParts, fmt.Sprintf("%-*s", widths[i], h))
	}
	w.Println(strings.Join(headerParts, "  "))

	var sepParts []string
	for _, width := range widths {
		sepParts = append(sepParts, strings.Repeat("-", width))
	}
	w.Println(strings.Join(sepParts, "  "))

	for _, row := range rows {
		var rowParts []string
		for i, cell := range row {
			if i < len(widths) {
				rowParts = append(rowParts, fmt.Sprintf("%-*s", widths[i], cell))
			}
		}
		w.Println(strings.Join(rowParts, "  "))
	}
}

// isTerminal returns true if stdout is a terminal.
func isTerminal() bool {
	if fi, _ := os.Stdout.Stat(); fi != nil {
		return (fi.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// ANSI color codes.
const (
	reset  = "\033[0m"
	bold   = "\033[1m"
	dim    = "\033[2m"
	red    = "\033[31m"
	green  = "\033[32m"
	yellow = "\033[33m"
	cyan   = "\033[36m"
)
