// Package report renders validation results: per-document JSON report
// files and the human-readable run summary.
package report

import (
	"math"
	"path/filepath"
	"strings"

	"svalid/internal/svrl"
	"svalid/internal/validator"
)

// Document is the on-disk JSON report for one validated document.
type Document struct {
	Metadata  Metadata           `json:"validation_metadata"`
	Summary   Summary            `json:"overall_summary"`
	Breakdown map[string]int     `json:"overall_severity_breakdown"`
	RuleSets  []RuleSet          `json:"schematron_results"`
}

// Metadata describes the validated document and the run that produced
// this report.
type Metadata struct {
	XMLFile         string  `json:"xml_file"`
	XMLFilename     string  `json:"xml_filename"`
	FileSizeBytes   int64   `json:"file_size_bytes"`
	FileSizeMB      float64 `json:"file_size_mb"`
	Timestamp       string  `json:"validation_timestamp"`
	DurationSeconds float64 `json:"validation_duration_seconds"`
	RuleSetCount    int     `json:"total_xslt_files_processed"`
}

// Summary carries the document-level totals and verdict.
type Summary struct {
	ValidationSuccess bool `json:"validation_success"`
	TotalRulesFired   int  `json:"total_rules_fired"`
	TotalFailed       int  `json:"total_failed_assertions"`
	TotalReports      int  `json:"total_successful_reports"`
	IsValid           bool `json:"is_valid"`
}

// RuleSet is the per-rule-set section of the report.
type RuleSet struct {
	SchematronName string         `json:"schematron_name"`
	XSLTFile       string         `json:"xslt_file"`
	TimeSeconds    float64        `json:"processing_time_seconds"`
	RulesFired     int            `json:"rules_fired"`
	Failed         int            `json:"failed_assertions"`
	Reports        int            `json:"successful_reports"`
	Breakdown      map[string]int `json:"severity_breakdown"`
	Findings       []FindingJSON  `json:"errors"`
}

// FindingJSON is one failed assertion in report order.
type FindingJSON struct {
	Location string `json:"location"`
	Test     string `json:"test"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Role     string `json:"role,omitempty"`
	RuleID   string `json:"rule_id,omitempty"`
}

// FromDocumentReport converts an aggregated report into the JSON schema.
// Rule sets that failed to execute carry no counts and are omitted, the
// same way the execution failure is already reflected in the summary flag.
func FromDocumentReport(r *validator.DocumentReport) *Document {
	doc := &Document{
		Metadata: Metadata{
			XMLFile:         r.Document,
			XMLFilename:     filepath.Base(r.Document),
			FileSizeBytes:   r.SizeBytes,
			FileSizeMB:      roundMB(r.SizeBytes),
			Timestamp:       r.Timestamp.Format("2006-01-02 15:04:05 UTC"),
			DurationSeconds: r.Duration.Seconds(),
			RuleSetCount:    len(r.RuleSets),
		},
		Summary: Summary{
			ValidationSuccess: r.ExecSuccess,
			TotalRulesFired:   r.TotalFired,
			TotalFailed:       r.TotalFailed,
			TotalReports:      r.TotalReports,
			IsValid:           r.Valid(),
		},
		Breakdown: breakdownJSON(r.Breakdown),
	}

	for _, rs := range r.RuleSets {
		if !rs.Success || rs.Analysis == nil {
			continue
		}

		ruleSet := RuleSet{
			SchematronName: schematronName(rs.Stylesheet),
			XSLTFile:       rs.Stylesheet,
			TimeSeconds:    rs.Duration.Seconds(),
			RulesFired:     rs.Analysis.FiredRules,
			Failed:         rs.Analysis.FailedAssertions,
			Reports:        rs.Analysis.SuccessfulReports,
			Breakdown:      breakdownJSON(rs.Analysis.SeverityBreakdown),
			Findings:       []FindingJSON{},
		}

		for _, f := range rs.Analysis.Findings {
			ruleSet.Findings = append(ruleSet.Findings, FindingJSON{
				Location: f.Location,
				Test:     f.Test,
				Message:  f.Message,
				Severity: string(f.Severity),
				Role:     f.Role,
				RuleID:   f.RuleID,
			})
		}

		doc.RuleSets = append(doc.RuleSets, ruleSet)
	}

	return doc
}

func breakdownJSON(b map[svrl.Severity]int) map[string]int {
	out := make(map[string]int, len(svrl.Severities))
	for _, s := range svrl.Severities {
		out[string(s)] = b[s]
	}
	return out
}

func schematronName(xsltFile string) string {
	base := filepath.Base(xsltFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func roundMB(bytes int64) float64 {
	return math.Round(float64(bytes)/1024/1024*100) / 100
}
