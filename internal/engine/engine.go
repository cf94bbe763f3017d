// Package engine defines the boundary to the external XSLT transformation
// engine. The rest of the tool treats the engine as a black box: it compiles
// stylesheets and executes them against documents, nothing more.
//
// The interfaces exist for dependency injection: unit tests substitute a mock
// engine so the compilation pipeline and validation executor can be tested
// without an XSLT processor installed.
package engine

// Executable is a compiled stylesheet ready to run against documents.
type Executable interface {
	// TransformToFile runs the stylesheet against source and writes the
	// transformation result to output.
	TransformToFile(source, output string) error

	// TransformToString runs the stylesheet against source and returns the
	// serialized transformation result.
	TransformToString(source string) (string, error)
}

// Engine abstracts the external XSLT processor.
//
// Some processors report execution faults out-of-band: the transform call
// returns normally but an error flag is raised on the processor. Callers
// must check FaultOccurred after every execute call, even on a nil error.
type Engine interface {
	// CompileStylesheet compiles the stylesheet at path into an Executable.
	CompileStylesheet(path string) (Executable, error)

	// FaultOccurred reports whether the most recent execute call raised an
	// engine-level fault, independent of its return value.
	FaultOccurred() bool

	// FaultMessage returns the engine's message for the most recent fault,
	// or an empty string when no fault occurred.
	FaultMessage() string
}
