// Package progress provides terminal progress display for compilation and
// validation runs: spinners on interactive terminals, plain lines on pipes.
package progress

import "fmt"

// TaskInfo describes one unit of work for progress display: a rule source
// being compiled or a document being validated.
type TaskInfo struct {
	// Name is the human-readable task label (e.g. "PEPPOL-EN16931-UBL.sch")
	Name string
	// Number is the current task number (1-based index)
	Number int
	// Total is the total number of tasks in this phase
	Total int
}

// Validate checks that all TaskInfo fields meet display requirements
func (t TaskInfo) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("task name cannot be empty")
	}
	if t.Number <= 0 {
		return fmt.Errorf("task number must be > 0")
	}
	if t.Total <= 0 {
		return fmt.Errorf("total tasks must be > 0")
	}
	if t.Number > t.Total {
		return fmt.Errorf("task number cannot exceed total tasks")
	}
	return nil
}

// TerminalCapabilities encapsulates detected terminal features
type TerminalCapabilities struct {
	// IsTTY indicates whether stdout is a terminal (vs pipe/redirect)
	IsTTY bool
	// SupportsColor indicates whether terminal supports ANSI color codes
	SupportsColor bool
	// SupportsUnicode indicates whether terminal supports Unicode characters
	SupportsUnicode bool
	// Width is the terminal width in columns (0 if unknown/pipe)
	Width int
}

// Symbols defines the character set for visual indicators
type Symbols struct {
	// Checkmark is the success indicator ("✓" or "[OK]")
	Checkmark string
	// Failure is the failure indicator ("✗" or "[FAIL]")
	Failure string
	// SpinnerSet is the index into spinner.CharSets
	SpinnerSet int
}
