package validator

import (
	"errors"

	"svalid/internal/engine"
)

// stubEngine is a test double that serves canned SVRL strings per
// stylesheet path.
type stubEngine struct {
	// svrlByStylesheet maps a stylesheet path to the SVRL output its
	// executable returns.
	svrlByStylesheet map[string]string

	// compileErrOn returns a compile error for the given stylesheet path.
	compileErrOn string
	// transformErrOn returns an execute error for the given stylesheet path.
	transformErrOn string
	// faultOn raises the out-of-band fault flag for the given stylesheet
	// path while the transform itself returns normally.
	faultOn string

	compileCalls   int
	transformCalls int
	fault          string
}

func (s *stubEngine) CompileStylesheet(path string) (engine.Executable, error) {
	s.compileCalls++
	if s.compileErrOn == path {
		return nil, errors.New("compile rejected")
	}
	return &stubExecutable{engine: s, xsl: path}, nil
}

func (s *stubEngine) FaultOccurred() bool  { return s.fault != "" }
func (s *stubEngine) FaultMessage() string { return s.fault }

type stubExecutable struct {
	engine *stubEngine
	xsl    string
}

func (x *stubExecutable) TransformToFile(source, output string) error {
	return errors.New("validation never transforms to file")
}

func (x *stubExecutable) TransformToString(source string) (string, error) {
	x.engine.transformCalls++
	x.engine.fault = ""

	if x.engine.transformErrOn == x.xsl {
		return "", errors.New("document exploded mid-transform")
	}
	if x.engine.faultOn == x.xsl {
		x.engine.fault = "SXXP0003: error reported by XML parser"
		return "", nil
	}
	return x.engine.svrlByStylesheet[x.xsl], nil
}

// emptySVRL is a well-formed report with no findings.
const emptySVRL = `<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl"/>`

// svrlWithFailures builds a report with the given number of fired rules
// and failed assertions.
func svrlWithFailures(fired int, asserts []string) string {
	out := `<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl">`
	for i := 0; i < fired; i++ {
		out += `<svrl:fired-rule context="/"/>`
	}
	for _, a := range asserts {
		out += a
	}
	out += `</svrl:schematron-output>`
	return out
}
