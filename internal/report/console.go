package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"svalid/internal/svrl"
	"svalid/internal/validator"
)

// PrintDocumentResult writes the one-line outcome for a validated document.
func PrintDocumentResult(w io.Writer, r *validator.DocumentReport) {
	name := filepath.Base(r.Document)
	sizeMB := float64(r.SizeBytes) / 1024 / 1024

	if !r.ExecSuccess {
		fmt.Fprintf(w, "  %-25s (%6.1f MB) - INVALID - validation failed\n", name, sizeMB)
		return
	}

	verdict := "VALID"
	if !r.Valid() {
		verdict = "INVALID"
	}
	fmt.Fprintf(w, "  %-25s (%6.1f MB) - %s - %6.3fs - rules: %d, errors: %d\n",
		name, sizeMB, verdict, r.Duration.Seconds(), r.TotalFired, r.TotalFailed)
}

// PrintRunSummary writes the run-wide summary block.
func PrintRunSummary(w io.Writer, s *validator.RunSummary, cacheHits int) {
	fmt.Fprintln(w, strings.Repeat("=", 60))
	fmt.Fprintln(w, "VALIDATION SUMMARY")
	fmt.Fprintln(w, strings.Repeat("=", 60))

	fmt.Fprintf(w, "Files processed:        %d\n", s.Documents)
	fmt.Fprintf(w, "Successful validations: %d\n", s.Succeeded)
	fmt.Fprintf(w, "Failed validations:     %d\n", s.Failed)
	fmt.Fprintf(w, "Valid documents:        %d\n", s.ValidDocuments)
	fmt.Fprintf(w, "Data processed:         %d bytes (%.1f MB)\n",
		s.TotalBytes, float64(s.TotalBytes)/1024/1024)
	fmt.Fprintf(w, "Rules fired:            %d\n", s.TotalFired)
	fmt.Fprintf(w, "Failed assertions:      %d\n", s.TotalFailed)

	for _, severity := range svrl.Severities {
		if count := s.Breakdown[severity]; count > 0 {
			fmt.Fprintf(w, "  %-8s %d\n", string(severity)+":", count)
		}
	}

	fmt.Fprintf(w, "Total time:             %.2f seconds\n", s.Duration.Seconds())
	if s.ThroughputMBs > 0 {
		fmt.Fprintf(w, "Average speed:          %.1f MB/second\n", s.ThroughputMBs)
	}
	if cacheHits > 0 {
		fmt.Fprintf(w, "XSLT cache hits:        %d\n", cacheHits)
	}

	if s.GoalApplicable {
		status := "MISSED"
		if s.GoalMet {
			status = "MET"
		}
		fmt.Fprintf(w, "Large file goal:        %s (%s in %.1fs)\n",
			status, filepath.Base(s.LargestDocument), s.LargestDuration.Seconds())
	}
}
