package svrl

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Namespace is the SVRL report vocabulary namespace.
const Namespace = "http://purl.oclc.org/dsdl/svrl"

// Finding is one failed assertion extracted from SVRL output.
type Finding struct {
	Location string
	Test     string
	Message  string
	Severity Severity
	Role     string
	RuleID   string
}

// Analysis is the structured result of analyzing one SVRL document.
type Analysis struct {
	FiredRules        int
	FailedAssertions  int
	SuccessfulReports int
	Findings          []Finding
	SeverityBreakdown map[Severity]int
}

// NewBreakdown returns a histogram with all four severity keys present.
func NewBreakdown() map[Severity]int {
	b := make(map[Severity]int, len(Severities))
	for _, s := range Severities {
		b[s] = 0
	}
	return b
}

// failedAssert mirrors the svrl:failed-assert element. The optional nested
// rule element carries the originating rule's id when the stylesheet emits
// one.
type failedAssert struct {
	Location string `xml:"location,attr"`
	Test     string `xml:"test,attr"`
	Role     string `xml:"role,attr"`
	Text     string `xml:"text"`
	Rule     struct {
		ID string `xml:"id,attr"`
	} `xml:"rule"`
}

// Analyze parses SVRL output and classifies every failed assertion.
//
// The walk is a streaming token scan rather than a whole-document
// unmarshal so report elements are found at any depth. A malformed
// document returns an error; callers treat that as a parse warning and
// keep zeroed counts, never as a validation abort.
func Analyze(svrlOutput string, classifier *Classifier) (*Analysis, error) {
	analysis := &Analysis{SeverityBreakdown: NewBreakdown()}

	decoder := xml.NewDecoder(strings.NewReader(svrlOutput))
	for {
		tok, err := decoder.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("malformed SVRL output: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Space != Namespace {
			continue
		}

		switch start.Name.Local {
		case "fired-rule":
			analysis.FiredRules++
			if err := decoder.Skip(); err != nil {
				return nil, fmt.Errorf("malformed SVRL output: %w", err)
			}
		case "successful-report":
			analysis.SuccessfulReports++
			if err := decoder.Skip(); err != nil {
				return nil, fmt.Errorf("malformed SVRL output: %w", err)
			}
		case "failed-assert":
			var fa failedAssert
			if err := decoder.DecodeElement(&fa, &start); err != nil {
				return nil, fmt.Errorf("malformed failed-assert: %w", err)
			}
			analysis.FailedAssertions++
			analysis.addFinding(fa, classifier)
		}
	}

	return analysis, nil
}

func (a *Analysis) addFinding(fa failedAssert, classifier *Classifier) {
	message := strings.TrimSpace(fa.Text)
	if message == "" {
		message = "No message"
	}

	severity := classifier.Classify(fa.Role, message, fa.Test)
	a.SeverityBreakdown[severity]++

	a.Findings = append(a.Findings, Finding{
		Location: fa.Location,
		Test:     fa.Test,
		Message:  message,
		Severity: severity,
		Role:     fa.Role,
		RuleID:   fa.Rule.ID,
	})
}
