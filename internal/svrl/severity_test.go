package svrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify_RoleIsAuthoritative(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())

	tests := map[string]struct {
		role     string
		expected Severity
	}{
		"fatal":      {role: "fatal", expected: SeverityFatal},
		"error":      {role: "error", expected: SeverityError},
		"warning":    {role: "warning", expected: SeverityWarning},
		"info":       {role: "info", expected: SeverityInfo},
		"uppercase":  {role: "WARNING", expected: SeverityWarning},
		"mixed case": {role: "Fatal", expected: SeverityFatal},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			// Message content that would otherwise classify as fatal must
			// not override a declared role.
			got := c.Classify(test.role, "this is a critical must not situation", "true()")
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestClassify_MessageKeywords(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())

	tests := map[string]struct {
		message  string
		expected Severity
	}{
		"fatal keyword":          {message: "a CRITICAL condition", expected: SeverityFatal},
		"must not":               {message: "the element must not appear twice", expected: SeverityFatal},
		"shall not yields error": {message: "the value shall not be empty", expected: SeverityError},
		"invalid":                {message: "Invalid currency code", expected: SeverityError},
		"should yields warning":  {message: "the buyer should provide a reference", expected: SeverityWarning},
		"recommendation":         {message: "it is recommended to set a date", expected: SeverityWarning},
		"note yields info":       {message: "note: optional element", expected: SeverityInfo},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := c.Classify("", test.message, "true()")
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestClassify_KeywordPriorityOrder(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())

	// "critical" (fatal set) and "should" (warning set) both match; the
	// fatal set is scanned first and wins.
	got := c.Classify("", "critical: you should fix this", "true()")
	assert.Equal(t, SeverityFatal, got)
}

func TestClassify_TestShapeFallback(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())

	tests := map[string]struct {
		test     string
		expected Severity
	}{
		"negation":       {test: "not(empty(ID))", expected: SeverityError},
		"false function": {test: "count(x) = 0 or false()", expected: SeverityError},
		"uppercase NOT":  {test: "NOT(empty(ID))", expected: SeverityError},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got := c.Classify("", "plain text without keywords", test.test)
			assert.Equal(t, test.expected, got)
		})
	}
}

func TestClassify_Default(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())
	got := c.Classify("", "plain text", "string-length(.) > 3")
	assert.Equal(t, SeverityError, got)
}

func TestClassify_UnknownRoleFallsThrough(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())

	// An unrecognized role is ignored; the message keywords decide.
	got := c.Classify("blocker", "you should do this differently", "true()")
	assert.Equal(t, SeverityWarning, got)
}

func TestClassify_IsTotal(t *testing.T) {
	t.Parallel()

	c := NewClassifier(DefaultKeywords())

	// Classification yields exactly one of the four severities for every
	// input combination, including fully empty ones.
	inputs := []struct{ role, message, test string }{
		{"", "", ""},
		{"nonsense", "", ""},
		{"", "no matching words here at all", ""},
		{"", "", "count(item)"},
		{"FATAL", "note", "not("},
	}

	for _, in := range inputs {
		got := c.Classify(in.role, in.message, in.test)
		assert.Contains(t, Severities, got)
	}
}

func TestClassify_CustomKeywords(t *testing.T) {
	t.Parallel()

	c := NewClassifier(KeywordSets{
		Fatal:   []string{"doom"},
		Error:   []string{"bad"},
		Warning: []string{"meh"},
		Info:    []string{"fyi"},
	})

	assert.Equal(t, SeverityFatal, c.Classify("", "DOOM approaches", "true()"))
	assert.Equal(t, SeverityInfo, c.Classify("", "fyi only", "true()"))
	// Stock keywords no longer match.
	assert.Equal(t, SeverityError, c.Classify("", "you should fix this", "true()"))
}
