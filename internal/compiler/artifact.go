package compiler

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// xsdNamespace is the XML-Schema namespace declaration the SVRL generation
// stage sometimes drops even though assertion expressions reference
// xsd-typed functions.
const xsdNamespace = `xmlns:xsd="http://www.w3.org/2001/XMLSchema"`

// rootStylesheetTag matches the opening tag of the stylesheet root element,
// with or without the xsl prefix.
var rootStylesheetTag = regexp.MustCompile(`<(?:xsl:)?stylesheet[^>]*?>`)

// RepairXSDNamespace inserts the XML-Schema namespace declaration into the
// root element's opening tag if it is absent. Only the first occurrence is
// rewritten; a second pass is a no-op. Returns true if the file was changed.
//
// The repair is textual on purpose: re-serializing through an XML parser
// would rewrite namespace prefixes the generated assertions depend on.
func RepairXSDNamespace(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading artifact: %w", err)
	}
	content := string(data)

	if strings.Contains(content, "xmlns:xsd=") {
		return false, nil
	}

	match := rootStylesheetTag.FindString(content)
	if match == "" {
		return false, fmt.Errorf("no stylesheet root element in %s", path)
	}

	repaired := match[:len(match)-1] + " " + xsdNamespace + ">"
	content = strings.Replace(content, match, repaired, 1)

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("writing repaired artifact: %w", err)
	}
	return true, nil
}

// ArtifactInfo summarizes the structural health of a compiled stylesheet.
type ArtifactInfo struct {
	SizeBytes      int
	HasRoot        bool
	TemplateCount  int
	NamespaceCount int
}

// StructurallyValid reports whether the artifact looks like a usable
// validation stylesheet: a stylesheet root element and at least one
// template rule.
func (a ArtifactInfo) StructurallyValid() bool {
	return a.HasRoot && a.TemplateCount > 0
}

// InspectArtifact performs the structural post-check on a committed
// artifact. Failing the check is a warning at the call site, not a hard
// failure: the artifact has already replaced its predecessor.
func InspectArtifact(path string) (ArtifactInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ArtifactInfo{}, fmt.Errorf("reading artifact: %w", err)
	}
	content := string(data)

	return ArtifactInfo{
		SizeBytes:      len(content),
		HasRoot:        strings.Contains(content, "<xsl:stylesheet") || strings.Contains(content, "<stylesheet"),
		TemplateCount:  strings.Count(content, "<xsl:template"),
		NamespaceCount: strings.Count(content, "xmlns:"),
	}, nil
}
