package compiler

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"svalid/internal/digest"
)

// CacheRecord is the persisted evidence of the last successful build of one
// rule source: the source's content digest and the build's unix timestamp.
type CacheRecord struct {
	Digest    string
	Timestamp int64
}

// Cache decides whether a rule source needs recompilation. Records live as
// <stem>.cache files in Dir, two newline-delimited fields, written in a
// single operation so a record is never half-updated.
type Cache struct {
	Dir string
}

// NewCache creates a cache over the given directory.
func NewCache(dir string) *Cache {
	return &Cache{Dir: dir}
}

func (c *Cache) recordPath(source string) string {
	return filepath.Join(c.Dir, stem(source)+".cache")
}

// Lookup returns the stored record for source. A missing or malformed
// record is a cache miss, never an error.
func (c *Cache) Lookup(source string) (CacheRecord, bool) {
	data, err := os.ReadFile(c.recordPath(source))
	if err != nil {
		return CacheRecord{}, false
	}

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) < 2 {
		return CacheRecord{}, false
	}

	ts, err := strconv.ParseInt(strings.TrimSpace(lines[1]), 10, 64)
	if err != nil {
		return CacheRecord{}, false
	}

	return CacheRecord{Digest: strings.TrimSpace(lines[0]), Timestamp: ts}, true
}

// NeedsRebuild reports whether source must be recompiled: the compiled
// artifact is missing, no valid record exists, or the source content
// changed since the recorded build.
func (c *Cache) NeedsRebuild(source, artifact string) bool {
	if _, err := os.Stat(artifact); err != nil {
		return true
	}

	current, err := digest.FileDigest(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not hash %s: %v\n", source, err)
		return true
	}

	rec, ok := c.Lookup(source)
	if !ok || rec.Digest != current {
		return true
	}

	return false
}

// RecordBuild persists a record for source after a successful compilation.
// Both fields are written together; a write failure downgrades to a warning
// and the next NeedsRebuild simply sees a cache miss.
func (c *Cache) RecordBuild(source, dgst string) {
	content := fmt.Sprintf("%s\n%d\n", dgst, time.Now().Unix())
	if err := os.WriteFile(c.recordPath(source), []byte(content), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not save cache record for %s: %v\n", filepath.Base(source), err)
	}
}

// stem returns the base name of path without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
