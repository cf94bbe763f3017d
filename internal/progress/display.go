package progress

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Display orchestrates progress indicators for one phase of work.
type Display struct {
	capabilities TerminalCapabilities
	symbols      Symbols
	spinner      *spinner.Spinner
	enabled      bool
}

// NewDisplay creates a display with the given terminal capabilities.
// A disabled display still prints plain per-task lines.
func NewDisplay(caps TerminalCapabilities, enabled bool) *Display {
	return &Display{
		capabilities: caps,
		symbols:      SelectSymbols(caps),
		enabled:      enabled,
	}
}

// StartTask begins displaying progress for a task.
func (d *Display) StartTask(task TaskInfo, action string) error {
	if err := task.Validate(); err != nil {
		return err
	}

	msg := buildTaskMessage(task, action)

	if d.enabled && d.capabilities.IsTTY {
		d.spinner = spinner.New(
			spinner.CharSets[d.symbols.SpinnerSet],
			100*time.Millisecond,
		)
		d.spinner.Writer = os.Stderr // keep stdout clean for report output
		d.spinner.Suffix = " " + msg
		d.spinner.Start()
	} else {
		fmt.Println(msg)
	}

	return nil
}

// CompleteTask stops the spinner and displays completion status.
func (d *Display) CompleteTask(task TaskInfo, detail string) {
	d.StopSpinner()

	mark := checkmark(d.symbols, d.capabilities.SupportsColor)
	counter := formatTaskCounter(task.Number, task.Total)
	if detail != "" {
		fmt.Printf("%s %s %s - %s\n", mark, counter, task.Name, detail)
	} else {
		fmt.Printf("%s %s %s\n", mark, counter, task.Name)
	}
}

// FailTask stops the spinner and displays failure status.
func (d *Display) FailTask(task TaskInfo, err error) {
	d.StopSpinner()

	mark := failureMark(d.symbols, d.capabilities.SupportsColor)
	counter := formatTaskCounter(task.Number, task.Total)
	fmt.Printf("%s %s %s failed: %v\n", mark, counter, task.Name, err)
}

// StopSpinner stops the spinner without showing completion or failure.
func (d *Display) StopSpinner() {
	if d.spinner != nil {
		d.spinner.Stop()
		d.spinner = nil
	}
}

// formatTaskCounter returns the [N/Total] counter string
func formatTaskCounter(number, total int) string {
	return fmt.Sprintf("[%d/%d]", number, total)
}

// buildTaskMessage constructs the complete task message
func buildTaskMessage(task TaskInfo, action string) string {
	return fmt.Sprintf("%s %s %s", formatTaskCounter(task.Number, task.Total), action, task.Name)
}

// checkmark returns the appropriate checkmark symbol
func checkmark(symbols Symbols, supportsColor bool) string {
	mark := symbols.Checkmark
	if supportsColor && symbols.Checkmark == "✓" {
		mark = "\033[32m" + mark + "\033[0m" // Green
	}
	return mark
}

// failureMark returns the appropriate failure symbol
func failureMark(symbols Symbols, supportsColor bool) string {
	mark := symbols.Failure
	if supportsColor && symbols.Failure == "✗" {
		mark = "\033[31m" + mark + "\033[0m" // Red
	}
	return mark
}
