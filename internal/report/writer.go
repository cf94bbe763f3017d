package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"svalid/internal/validator"
)

// Writer persists per-document JSON reports into the results directory.
type Writer struct {
	// ResultsDir is the directory receiving <stem>_validation_result.json
	// files.
	ResultsDir string
}

// NewWriter creates a report writer.
func NewWriter(resultsDir string) *Writer {
	return &Writer{ResultsDir: resultsDir}
}

// Write renders and saves the JSON report for one document report.
// Errors are non-fatal: they are written to stderr and the run continues.
// Returns the report path when the write succeeded.
func (w *Writer) Write(r *validator.DocumentReport) string {
	path, err := w.writeInternal(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to write JSON result: %v\n", err)
		return ""
	}
	return path
}

func (w *Writer) writeInternal(r *validator.DocumentReport) (string, error) {
	if err := os.MkdirAll(w.ResultsDir, 0755); err != nil {
		return "", fmt.Errorf("creating results directory: %w", err)
	}

	doc := FromDocumentReport(r)

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}

	base := filepath.Base(r.Document)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	path := filepath.Join(w.ResultsDir, stem+"_validation_result.json")

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("saving report: %w", err)
	}

	return path, nil
}
