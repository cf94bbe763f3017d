// Package validator executes compiled validation stylesheets against XML
// documents and aggregates the analyzed results into per-document reports
// and a run-wide summary.
package validator

import (
	"fmt"
	"os"

	"svalid/internal/engine"
)

// ExecutableCache memoizes compiled stylesheet executables for the lifetime
// of one run, keyed by stylesheet path.
//
// Identity-based keying is deliberate: artifacts are rebuilt before
// validation starts, so within one process the path is a stable identity
// and content hashing would be wasted work. The cache is unbounded; the
// rule-set count is small.
type ExecutableCache struct {
	engine      engine.Engine
	executables map[string]engine.Executable
	hits        int
}

// NewExecutableCache creates an empty cache over the given engine.
func NewExecutableCache(eng engine.Engine) *ExecutableCache {
	return &ExecutableCache{
		engine:      eng,
		executables: make(map[string]engine.Executable),
	}
}

// Get returns the executable for the stylesheet at path, compiling it on
// first use. A compile failure is returned and never cached, so a later
// call retries (the artifact may have been rebuilt in the meantime).
func (c *ExecutableCache) Get(path string) (engine.Executable, error) {
	if exe, ok := c.executables[path]; ok {
		c.hits++
		return exe, nil
	}

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stylesheet not found: %s", path)
	}

	exe, err := c.engine.CompileStylesheet(path)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}

	c.executables[path] = exe
	return exe, nil
}

// Hits returns how many lookups were served without an engine call.
func (c *ExecutableCache) Hits() int { return c.hits }

// Len returns the number of cached executables.
func (c *ExecutableCache) Len() int { return len(c.executables) }
