package validator

import (
	"fmt"
	"os"
	"time"

	"svalid/internal/svrl"
)

// DocumentReport aggregates all rule-set runs for one input document.
type DocumentReport struct {
	Document     string
	SizeBytes    int64
	Timestamp    time.Time
	Duration     time.Duration
	RuleSets     []RuleSetResult
	TotalFired   int
	TotalFailed  int
	TotalReports int
	Breakdown    map[svrl.Severity]int

	// ExecSuccess is true when every rule-set run executed cleanly. It is
	// independent of whether assertions failed.
	ExecSuccess bool
}

// Valid reports the document verdict: every run succeeded and no assertion
// failed across any rule set.
func (d *DocumentReport) Valid() bool {
	return d.ExecSuccess && d.TotalFailed == 0
}

// ValidateDocument runs every stylesheet against document sequentially and
// merges the per-rule-set results.
//
// A missing document short-circuits into a failed report before any rule
// set runs; the caller still receives a well-formed report so batch
// processing continues.
func (e *Executor) ValidateDocument(document string, stylesheets []string) *DocumentReport {
	report := &DocumentReport{
		Document:    document,
		Timestamp:   time.Now().UTC(),
		Breakdown:   svrl.NewBreakdown(),
		ExecSuccess: true,
	}

	if info, err := os.Stat(document); err == nil {
		report.SizeBytes = info.Size()
	} else {
		report.ExecSuccess = false
		report.RuleSets = append(report.RuleSets, RuleSetResult{
			Error: fmt.Sprintf("XML file not found: %s", document),
		})
		return report
	}

	start := time.Now()
	for _, xsl := range stylesheets {
		result := e.Run(xsl, document)
		report.RuleSets = append(report.RuleSets, result)

		if !result.Success {
			report.ExecSuccess = false
			continue
		}
		if result.Analysis == nil {
			continue
		}

		report.TotalFired += result.Analysis.FiredRules
		report.TotalFailed += result.Analysis.FailedAssertions
		report.TotalReports += result.Analysis.SuccessfulReports
		for severity, count := range result.Analysis.SeverityBreakdown {
			report.Breakdown[severity] += count
		}
	}
	report.Duration = time.Since(start)

	return report
}
