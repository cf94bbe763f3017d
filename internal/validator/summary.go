package validator

import (
	"time"

	"svalid/internal/svrl"
)

// PerformanceGoal is the informational large-file target: documents above
// SizeMB should validate in under TimeSeconds. Missing the goal never
// fails a run; it is reported and nothing else.
type PerformanceGoal struct {
	SizeMB      float64
	TimeSeconds float64
}

// RunSummary aggregates every document report of one invocation.
type RunSummary struct {
	Documents      int
	Succeeded      int // documents whose every run executed cleanly
	Failed         int
	ValidDocuments int

	TotalBytes   int64
	TotalFired   int
	TotalFailed  int
	TotalReports int
	Breakdown    map[svrl.Severity]int

	Duration      time.Duration
	ThroughputMBs float64

	LargestDocument string
	LargestSizeMB   float64
	LargestDuration time.Duration
	GoalApplicable  bool
	GoalMet         bool
}

// AllValid reports whether every document executed cleanly and passed.
func (s *RunSummary) AllValid() bool {
	return s.Documents > 0 && s.ValidDocuments == s.Documents && s.Failed == 0
}

// Summarize merges per-document reports into the run-wide summary.
// elapsed is the wall time of the whole validation phase, which drives the
// throughput figure.
func Summarize(reports []*DocumentReport, elapsed time.Duration, goal PerformanceGoal) *RunSummary {
	summary := &RunSummary{
		Documents: len(reports),
		Breakdown: svrl.NewBreakdown(),
		Duration:  elapsed,
	}

	for _, report := range reports {
		if report.ExecSuccess {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
		if report.Valid() {
			summary.ValidDocuments++
		}

		summary.TotalBytes += report.SizeBytes
		summary.TotalFired += report.TotalFired
		summary.TotalFailed += report.TotalFailed
		summary.TotalReports += report.TotalReports
		for severity, count := range report.Breakdown {
			summary.Breakdown[severity] += count
		}

		sizeMB := float64(report.SizeBytes) / 1024 / 1024
		if sizeMB > summary.LargestSizeMB {
			summary.LargestSizeMB = sizeMB
			summary.LargestDocument = report.Document
			summary.LargestDuration = report.Duration
		}
	}

	if elapsed > 0 {
		summary.ThroughputMBs = (float64(summary.TotalBytes) / 1024 / 1024) / elapsed.Seconds()
	}

	if goal.SizeMB > 0 && summary.LargestSizeMB > goal.SizeMB {
		summary.GoalApplicable = true
		summary.GoalMet = summary.LargestDuration.Seconds() < goal.TimeSeconds
	}

	return summary
}
