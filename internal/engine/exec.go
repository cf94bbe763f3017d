package engine

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// ExecEngine drives an external XSLT 2.0 processor CLI (Saxon, xslt3)
// through a command template. The template carries {{XSL}}, {{XML}} and
// {{OUT}} placeholders which are replaced, shell-quoted, per invocation.
//
// The engine is a long-lived, process-wide resource: construct it once and
// hand it to both the compilation pipeline and the validation executor.
type ExecEngine struct {
	// Cmd is the invocation template, e.g.
	// "xslt3 -xsl:{{XSL}} -s:{{XML}} -o:{{OUT}}".
	Cmd string

	// TempDir receives scratch output files for string-mode transforms.
	TempDir string

	lastFault string
}

// NewExecEngine creates an engine around the given command template.
func NewExecEngine(cmd, tempDir string) *ExecEngine {
	return &ExecEngine{Cmd: cmd, TempDir: tempDir}
}

// CompileStylesheet checks the stylesheet exists and returns an executable
// bound to it. CLI processors compile per invocation, so compilation errors
// for a broken stylesheet surface on the first transform instead.
func (e *ExecEngine) CompileStylesheet(path string) (Executable, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stylesheet not readable: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("stylesheet path is a directory: %s", path)
	}
	return &execExecutable{engine: e, xsl: path}, nil
}

// FaultOccurred reports whether the last transform raised a processor fault.
func (e *ExecEngine) FaultOccurred() bool {
	return e.lastFault != ""
}

// FaultMessage returns the processor's message for the last fault.
func (e *ExecEngine) FaultMessage() string {
	return e.lastFault
}

// execExecutable runs one stylesheet via the parent engine's command template.
type execExecutable struct {
	engine *ExecEngine
	xsl    string
}

func (x *execExecutable) TransformToFile(source, output string) error {
	return x.engine.run(x.xsl, source, output)
}

func (x *execExecutable) TransformToString(source string) (string, error) {
	// The template always routes output through a file, so string mode
	// writes to a scratch file and reads it back.
	out, err := os.CreateTemp(x.engine.TempDir, "svrl-*.xml")
	if err != nil {
		return "", fmt.Errorf("creating scratch output: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	if err := x.engine.run(x.xsl, source, outPath); err != nil {
		return "", err
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return "", fmt.Errorf("reading transform output: %w", err)
	}
	return string(data), nil
}

// run expands the command template and executes it via the shell. The
// processor's stderr becomes the out-of-band fault message on failure.
func (e *ExecEngine) run(xsl, xml, out string) error {
	e.lastFault = ""

	cmdStr := e.expandTemplate(xsl, xml, out)
	cmd := exec.Command("sh", "-c", cmdStr)
	cmd.Env = os.Environ()

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		e.lastFault = strings.TrimSpace(stderr.String())
		if e.lastFault == "" {
			e.lastFault = err.Error()
		}
		return fmt.Errorf("xslt processor failed: %s", e.lastFault)
	}

	// A processor that exits zero but produced no output file still failed;
	// some CLIs report template errors this way.
	if out != "" {
		if _, err := os.Stat(out); err != nil {
			e.lastFault = fmt.Sprintf("processor produced no output at %s", filepath.Base(out))
			return fmt.Errorf("xslt processor failed: %s", e.lastFault)
		}
	}

	return nil
}

// expandTemplate replaces the {{XSL}}, {{XML}} and {{OUT}} placeholders.
// Paths are shell-quoted to survive spaces and special characters.
func (e *ExecEngine) expandTemplate(xsl, xml, out string) string {
	cmdStr := strings.ReplaceAll(e.Cmd, "{{XSL}}", shellQuote(xsl))
	cmdStr = strings.ReplaceAll(cmdStr, "{{XML}}", shellQuote(xml))
	cmdStr = strings.ReplaceAll(cmdStr, "{{OUT}}", shellQuote(out))
	return cmdStr
}

// shellQuote quotes a string for safe use in shell commands
// It wraps the string in single quotes and escapes any single quotes within
func shellQuote(s string) string {
	escaped := strings.ReplaceAll(s, "'", "'\\''")
	return "'" + escaped + "'"
}
