// Package compiler turns Schematron rule sources into executable XSLT
// validation stylesheets via the fixed ISO 3-stage pipeline, with a
// content-digest build cache deciding which sources actually recompile.
package compiler

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"svalid/internal/digest"
	"svalid/internal/engine"
)

// The fixed ISO transformation stylesheets, applied in order.
const (
	stageInclude    = "iso_dsdl_include.xsl"
	stageAbstract   = "iso_abstract_expand.xsl"
	stageSVRL       = "iso_svrl_for_xslt2.xsl"
	artifactExt     = ".xsl"
	intermediateExt = ".xml"
)

// CompilationError reports a pipeline stage failure for one rule source.
// It is recorded per source; a batch continues past it.
type CompilationError struct {
	Source string
	Stage  string
	Msg    string
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("compiling %s: stage %s: %s", filepath.Base(e.Source), e.Stage, e.Msg)
}

// Pipeline compiles rule sources through the 3-stage chain. It is the sole
// writer of compiled artifacts and cache records.
type Pipeline struct {
	Engine        engine.Engine
	Cache         *Cache
	SchematronDir string
	StylesheetDir string
	OutputDir     string
	TempDir       string
}

// New creates a pipeline around a shared engine instance.
func New(eng engine.Engine, cache *Cache, schematronDir, stylesheetDir, outputDir, tempDir string) *Pipeline {
	return &Pipeline{
		Engine:        eng,
		Cache:         cache,
		SchematronDir: schematronDir,
		StylesheetDir: stylesheetDir,
		OutputDir:     outputDir,
		TempDir:       tempDir,
	}
}

type stage struct {
	name       string
	stylesheet string
}

func (p *Pipeline) stages() []stage {
	return []stage{
		{name: stageInclude, stylesheet: filepath.Join(p.StylesheetDir, stageInclude)},
		{name: stageAbstract, stylesheet: filepath.Join(p.StylesheetDir, stageAbstract)},
		{name: stageSVRL, stylesheet: filepath.Join(p.StylesheetDir, stageSVRL)},
	}
}

// CheckRequirements verifies the fixed transformation stylesheets and the
// rule-source directory exist. Failures here abort before any work starts.
func (p *Pipeline) CheckRequirements() error {
	var missing []string
	for _, s := range p.stages() {
		if _, err := os.Stat(s.stylesheet); err != nil {
			missing = append(missing, s.stylesheet)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required ISO transformation stylesheets: %v", missing)
	}

	if _, err := os.Stat(p.SchematronDir); err != nil {
		return fmt.Errorf("schematron directory not found: %s", p.SchematronDir)
	}

	return nil
}

// RuleSources returns the .sch files in the rule-source directory, sorted.
func (p *Pipeline) RuleSources() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(p.SchematronDir, "*.sch"))
	if err != nil {
		return nil, fmt.Errorf("listing schematron files: %w", err)
	}
	sort.Strings(matches)
	return matches, nil
}

// ArtifactPath returns where the compiled stylesheet for source lives.
func (p *Pipeline) ArtifactPath(source string) string {
	return filepath.Join(p.OutputDir, stem(source)+artifactExt)
}

// NeedsRebuild reports whether source is out of date with respect to its
// compiled artifact and cache record.
func (p *Pipeline) NeedsRebuild(source string) bool {
	return p.Cache.NeedsRebuild(source, p.ArtifactPath(source))
}

// Compile runs source through the full 3-stage chain and commits the result.
//
// A stage failure aborts immediately and leaves already-produced
// intermediates in the temp directory for diagnosis. On success the final
// intermediate replaces any existing artifact (delete then copy, never
// merge), the xsd namespace is repaired if absent, the cache record is
// updated, and intermediates are removed best-effort.
func (p *Pipeline) Compile(source string) error {
	base := stem(source)
	intermediates := []string{
		filepath.Join(p.TempDir, base+"_step1"+intermediateExt),
		filepath.Join(p.TempDir, base+"_step2"+intermediateExt),
		filepath.Join(p.TempDir, base+"_step3"+intermediateExt),
	}

	input := source
	for i, s := range p.stages() {
		if err := p.runStage(s, input, intermediates[i]); err != nil {
			return &CompilationError{Source: source, Stage: s.name, Msg: err.Error()}
		}
		input = intermediates[i]
	}

	artifact := p.ArtifactPath(source)
	if err := p.commitArtifact(intermediates[2], artifact); err != nil {
		return &CompilationError{Source: source, Stage: "commit", Msg: err.Error()}
	}

	if repaired, err := RepairXSDNamespace(artifact); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not check xsd namespace in %s: %v\n", filepath.Base(artifact), err)
	} else if repaired {
		fmt.Fprintf(os.Stderr, "Adding missing xmlns:xsd namespace to %s\n", filepath.Base(artifact))
	}

	if info, err := InspectArtifact(artifact); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not inspect %s: %v\n", filepath.Base(artifact), err)
	} else if !info.StructurallyValid() {
		fmt.Fprintf(os.Stderr, "Warning: %s has no %s\n", filepath.Base(artifact), structuralDefect(info))
	}

	dgst, err := digest.FileDigest(source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not hash %s for cache: %v\n", filepath.Base(source), err)
	} else {
		p.Cache.RecordBuild(source, dgst)
	}

	// The artifact is committed; leftover intermediates are only clutter.
	for _, f := range intermediates {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: could not delete intermediate %s: %v\n", filepath.Base(f), err)
		}
	}

	return nil
}

// runStage compiles one transformation stylesheet and executes it over
// input, writing output. The engine's out-of-band fault flag is checked
// even when the execute call returns cleanly.
func (p *Pipeline) runStage(s stage, input, output string) error {
	exe, err := p.Engine.CompileStylesheet(s.stylesheet)
	if err != nil {
		return fmt.Errorf("compile failed: %v", err)
	}

	if err := exe.TransformToFile(input, output); err != nil {
		return fmt.Errorf("transform failed: %v", err)
	}
	if p.Engine.FaultOccurred() {
		return fmt.Errorf("transform fault: %s", p.Engine.FaultMessage())
	}

	return nil
}

// commitArtifact replaces the compiled stylesheet wholesale with the final
// intermediate.
func (p *Pipeline) commitArtifact(final, artifact string) error {
	if _, err := os.Stat(artifact); err == nil {
		if err := os.Remove(artifact); err != nil {
			return fmt.Errorf("removing previous artifact: %v", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(artifact), 0755); err != nil {
		return fmt.Errorf("creating output directory: %v", err)
	}

	src, err := os.Open(final)
	if err != nil {
		return fmt.Errorf("opening pipeline output: %v", err)
	}
	defer src.Close()

	dst, err := os.Create(artifact)
	if err != nil {
		return fmt.Errorf("creating artifact: %v", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("copying artifact: %v", err)
	}
	return nil
}

func structuralDefect(info ArtifactInfo) string {
	if !info.HasRoot {
		return "stylesheet root element"
	}
	return "template rules"
}
