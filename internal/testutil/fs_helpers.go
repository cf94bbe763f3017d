// Package testutil provides test utilities and helpers for svalid tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// PipelineDirs bundles the directory layout a compilation or validation
// test needs, all rooted under a test temp directory.
type PipelineDirs struct {
	Schematron  string
	Stylesheets string
	Output      string
	Cache       string
	Temp        string
	Results     string
}

// CreatePipelineDirs creates the standard directory layout under a fresh
// temp root. Cleanup is handled by t.TempDir.
func CreatePipelineDirs(t *testing.T) PipelineDirs {
	t.Helper()

	root := t.TempDir()
	dirs := PipelineDirs{
		Schematron:  filepath.Join(root, "schematron"),
		Stylesheets: filepath.Join(root, "iso_transformers"),
		Output:      filepath.Join(root, "xslt_schematron"),
		Cache:       filepath.Join(root, ".cache"),
		Temp:        filepath.Join(root, ".temp"),
		Results:     filepath.Join(root, "results"),
	}

	for _, dir := range []string{dirs.Schematron, dirs.Stylesheets, dirs.Output, dirs.Cache, dirs.Temp, dirs.Results} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("failed to create %s: %v", dir, err)
		}
	}

	return dirs
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(t *testing.T, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// WriteRuleSource creates a minimal Schematron rule source in dir.
func WriteRuleSource(t *testing.T, dir, name, assertion string) string {
	t.Helper()

	content := `<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern>
    <rule context="/">
      <assert test="` + assertion + `">assertion failed</assert>
    </rule>
  </pattern>
</schema>
`
	return WriteFile(t, filepath.Join(dir, name), content)
}

// WriteISOStylesheets creates placeholder files for the three fixed
// transformation stylesheets the pipeline requires.
func WriteISOStylesheets(t *testing.T, dir string) {
	t.Helper()

	for _, name := range []string{"iso_dsdl_include.xsl", "iso_abstract_expand.xsl", "iso_svrl_for_xslt2.xsl"} {
		WriteFile(t, filepath.Join(dir, name),
			`<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform" version="2.0"/>`)
	}
}
