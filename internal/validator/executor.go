package validator

import (
	"fmt"
	"os"
	"time"

	"svalid/internal/engine"
	"svalid/internal/svrl"
)

// RuleSetResult is the outcome of running one compiled stylesheet against
// one document. It is immutable once produced; aggregation only reads it.
type RuleSetResult struct {
	Stylesheet   string
	Success      bool
	Error        string
	ParseWarning string
	Duration     time.Duration
	Analysis     *svrl.Analysis
}

// Executor runs compiled stylesheets against documents. Failures of any
// kind are captured in the result, never raised: the caller must be able
// to continue with the remaining rule sets and documents.
type Executor struct {
	Engine     engine.Engine
	Cache      *ExecutableCache
	Classifier *svrl.Classifier
}

// NewExecutor creates an executor sharing the run-wide engine instance.
func NewExecutor(eng engine.Engine, classifier *svrl.Classifier) *Executor {
	return &Executor{
		Engine:     eng,
		Cache:      NewExecutableCache(eng),
		Classifier: classifier,
	}
}

// Run validates document against the stylesheet at xslPath.
//
// Missing inputs are precondition failures detected before the engine is
// invoked. The engine's out-of-band fault flag is checked even when the
// transform returns cleanly. Malformed SVRL degrades to zero counts with a
// parse warning; the execution success flag is preserved.
func (e *Executor) Run(xslPath, document string) RuleSetResult {
	result := RuleSetResult{Stylesheet: xslPath}

	if _, err := os.Stat(document); err != nil {
		result.Error = fmt.Sprintf("XML file not found: %s", document)
		return result
	}

	exe, err := e.Cache.Get(xslPath)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	start := time.Now()
	output, err := exe.TransformToString(document)
	result.Duration = time.Since(start)

	if err != nil {
		result.Error = fmt.Sprintf("XSLT transformation failed: %v", err)
		return result
	}
	if e.Engine.FaultOccurred() {
		result.Error = fmt.Sprintf("XSLT transformation fault: %s", e.Engine.FaultMessage())
		return result
	}

	result.Success = true

	analysis, err := svrl.Analyze(output, e.Classifier)
	if err != nil {
		result.ParseWarning = fmt.Sprintf("could not parse SVRL output: %v", err)
		result.Analysis = &svrl.Analysis{SeverityBreakdown: svrl.NewBreakdown()}
		return result
	}
	result.Analysis = analysis

	return result
}
