package compiler

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"svalid/internal/engine"
)

// fakeEngine is a test double for the XSLT engine. Each stage "transform"
// copies a canned stylesheet body to the output file so the pipeline's file
// plumbing is exercised for real.
type fakeEngine struct {
	// compileCalls counts CompileStylesheet invocations across all stages.
	compileCalls int
	// transformCalls counts executed transforms.
	transformCalls int

	// failCompileOn / failTransformOn name a stage stylesheet (base name)
	// that should fail.
	failCompileOn   string
	failTransformOn string

	// failOnSource fails the transform whose input path ends with the
	// given suffix (the first stage's input is the rule source itself).
	failOnSource string

	// faultOn raises the out-of-band fault flag after transforming with
	// the named stage stylesheet, while returning a nil error.
	faultOn string

	// finalOutput is what the last stage writes; defaults to a minimal
	// valid stylesheet when empty.
	finalOutput string

	fault string
}

func (f *fakeEngine) CompileStylesheet(path string) (engine.Executable, error) {
	f.compileCalls++
	if f.failCompileOn != "" && strings.HasSuffix(path, f.failCompileOn) {
		return nil, errors.New("stylesheet did not compile")
	}
	return &fakeExecutable{engine: f, xsl: path}, nil
}

func (f *fakeEngine) FaultOccurred() bool  { return f.fault != "" }
func (f *fakeEngine) FaultMessage() string { return f.fault }

type fakeExecutable struct {
	engine *fakeEngine
	xsl    string
}

func (x *fakeExecutable) TransformToFile(source, output string) error {
	x.engine.transformCalls++
	x.engine.fault = ""

	if x.engine.failTransformOn != "" && strings.HasSuffix(x.xsl, x.engine.failTransformOn) {
		return errors.New("transformation blew up")
	}
	if x.engine.failOnSource != "" && strings.HasSuffix(source, x.engine.failOnSource) {
		return errors.New("transformation blew up")
	}
	if x.engine.faultOn != "" && strings.HasSuffix(x.xsl, x.engine.faultOn) {
		x.engine.fault = "recoverable error XTDE0540"
		return nil
	}

	content := x.engine.finalOutput
	if content == "" {
		content = `<xsl:stylesheet xmlns:xsl="http://www.w3.org/1999/XSL/Transform" version="2.0">
  <xsl:template match="/">checked</xsl:template>
</xsl:stylesheet>`
	}
	return os.WriteFile(output, []byte(content), 0644)
}

func (x *fakeExecutable) TransformToString(source string) (string, error) {
	x.engine.transformCalls++
	return "", errors.New("pipeline never transforms to string")
}

// countFiles returns how many entries match pattern under dir.
func countFiles(dir, pattern string) int {
	matches, _ := filepath.Glob(filepath.Join(dir, pattern))
	return len(matches)
}
