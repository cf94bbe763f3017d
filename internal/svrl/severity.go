// Package svrl parses SVRL validation output (the structured report an
// executed validation stylesheet produces) and classifies failed assertions
// by severity.
package svrl

import "strings"

// Severity is the resolved severity of one finding. Classification is
// total: every finding ends with exactly one of the four values.
type Severity string

const (
	SeverityFatal   Severity = "fatal"
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Severities lists the four severities in decreasing order of weight.
// Histogram maps are keyed by exactly this set.
var Severities = []Severity{SeverityFatal, SeverityError, SeverityWarning, SeverityInfo}

// KeywordSets configures message-based classification. Sets are scanned in
// fatal, error, warning, info order; the first set containing any matching
// substring wins.
type KeywordSets struct {
	Fatal   []string
	Error   []string
	Warning []string
	Info    []string
}

// DefaultKeywords returns the stock keyword sets.
func DefaultKeywords() KeywordSets {
	return KeywordSets{
		Fatal:   []string{"fatal", "critical", "must not", "required"},
		Error:   []string{"error", "invalid", "violation", "shall not"},
		Warning: []string{"warning", "should", "recommend"},
		Info:    []string{"info", "information", "note"},
	}
}

// classifierRule is one step of the classification chain. Apply returns
// (severity, true) when the rule matches.
type classifierRule struct {
	Name  string
	Apply func(role, message, test string) (Severity, bool)
}

// Classifier resolves finding severity through an ordered rule chain.
//
// The chain order is the specification: a declared role is authoritative,
// message keywords are a fallback signal, and the shape of the test
// expression is a last resort before the default. Rules are held as data so
// the order stays inspectable.
type Classifier struct {
	rules []classifierRule
}

// NewClassifier builds the standard chain over the given keyword sets.
func NewClassifier(kw KeywordSets) *Classifier {
	return &Classifier{rules: []classifierRule{
		{Name: "declared-role", Apply: declaredRole},
		{Name: "message-keywords", Apply: messageKeywords(kw)},
		{Name: "test-shape", Apply: testShape},
		{Name: "default", Apply: func(_, _, _ string) (Severity, bool) { return SeverityError, true }},
	}}
}

// Classify resolves the severity for one finding. The chain terminates at
// the first matching rule and always terminates: the last rule matches
// unconditionally.
func (c *Classifier) Classify(role, message, test string) Severity {
	for _, rule := range c.rules {
		if sev, ok := rule.Apply(role, message, test); ok {
			return sev
		}
	}
	return SeverityError
}

// declaredRole matches a role attribute that names a severity outright.
func declaredRole(role, _, _ string) (Severity, bool) {
	switch strings.ToLower(role) {
	case "fatal":
		return SeverityFatal, true
	case "error":
		return SeverityError, true
	case "warning":
		return SeverityWarning, true
	case "info":
		return SeverityInfo, true
	}
	return "", false
}

// messageKeywords scans the message against the keyword sets in priority
// order, case-insensitive substring match.
func messageKeywords(kw KeywordSets) func(string, string, string) (Severity, bool) {
	ordered := []struct {
		severity Severity
		words    []string
	}{
		{SeverityFatal, kw.Fatal},
		{SeverityError, kw.Error},
		{SeverityWarning, kw.Warning},
		{SeverityInfo, kw.Info},
	}

	return func(_, message, _ string) (Severity, bool) {
		lower := strings.ToLower(message)
		for _, set := range ordered {
			for _, word := range set.words {
				if strings.Contains(lower, word) {
					return set.severity, true
				}
			}
		}
		return "", false
	}
}

// testShape classifies a negated test expression as an error.
func testShape(_, _, test string) (Severity, bool) {
	lower := strings.ToLower(test)
	if strings.Contains(lower, "not(") || strings.Contains(lower, "false()") {
		return SeverityError, true
	}
	return "", false
}
