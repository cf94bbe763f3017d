package compiler

import (
	"fmt"
	"path/filepath"
)

// SourceStatus is the batch outcome for one rule source.
type SourceStatus int

const (
	StatusCompiled SourceStatus = iota
	StatusSkipped
	StatusFailed
)

func (s SourceStatus) String() string {
	switch s {
	case StatusCompiled:
		return "compiled"
	case StatusSkipped:
		return "up to date"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// SourceResult pairs a rule source with its batch outcome.
type SourceResult struct {
	Source string
	Status SourceStatus
	Err    error
}

// BatchResult collects per-source outcomes for one CompileAll invocation.
type BatchResult struct {
	Results []SourceResult
}

// Count returns how many sources ended in the given status.
func (b *BatchResult) Count(status SourceStatus) int {
	n := 0
	for _, r := range b.Results {
		if r.Status == status {
			n++
		}
	}
	return n
}

// OK reports whether every source ended skipped or compiled.
func (b *BatchResult) OK() bool {
	return b.Count(StatusFailed) == 0
}

// BatchObserver receives per-source progress notifications during
// CompileAll. Implementations drive console progress display; a nil
// observer is allowed.
type BatchObserver interface {
	SourceStarted(source string, index, total int)
	SourceFinished(result SourceResult, index, total int)
}

// CompileAll compiles every rule source in the schematron directory.
//
// Each source is independent: up-to-date sources are skipped (counted as
// success) unless force is set, and a compilation failure is recorded
// without aborting the remaining sources.
func (p *Pipeline) CompileAll(force bool, observer BatchObserver) (*BatchResult, error) {
	if err := p.CheckRequirements(); err != nil {
		return nil, err
	}

	sources, err := p.RuleSources()
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no .sch files found in %s", p.SchematronDir)
	}

	batch := &BatchResult{}
	for i, source := range sources {
		if observer != nil {
			observer.SourceStarted(source, i+1, len(sources))
		}

		result := SourceResult{Source: source}
		switch {
		case !force && !p.NeedsRebuild(source):
			result.Status = StatusSkipped
		default:
			if err := p.Compile(source); err != nil {
				result.Status = StatusFailed
				result.Err = err
			} else {
				result.Status = StatusCompiled
			}
		}

		batch.Results = append(batch.Results, result)
		if observer != nil {
			observer.SourceFinished(result, i+1, len(sources))
		}
	}

	return batch, nil
}

// StatusLine formats one source outcome for console display.
func (r SourceResult) StatusLine() string {
	name := filepath.Base(r.Source)
	if r.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", name, r.Status, r.Err)
	}
	return fmt.Sprintf("%s: %s", name, r.Status)
}
