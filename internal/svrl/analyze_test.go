package svrl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const svrlHeader = `<svrl:schematron-output xmlns:svrl="http://purl.oclc.org/dsdl/svrl">`
const svrlFooter = `</svrl:schematron-output>`

func TestAnalyze_Counts(t *testing.T) {
	t.Parallel()

	output := svrlHeader + `
  <svrl:fired-rule context="/Invoice"/>
  <svrl:fired-rule context="/Invoice/Line"/>
  <svrl:fired-rule context="/Invoice/Party"/>
  <svrl:successful-report test="exists(Note)" location="/Invoice">
    <svrl:text>has a note</svrl:text>
  </svrl:successful-report>
  <svrl:failed-assert test="not(empty(ID))" location="/Invoice/ID">
    <svrl:text>ID must be present</svrl:text>
  </svrl:failed-assert>
` + svrlFooter

	analysis, err := Analyze(output, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)

	assert.Equal(t, 3, analysis.FiredRules)
	assert.Equal(t, 1, analysis.FailedAssertions)
	assert.Equal(t, 1, analysis.SuccessfulReports)
	assert.Len(t, analysis.Findings, 1)
}

func TestAnalyze_FindingExtraction(t *testing.T) {
	t.Parallel()

	output := svrlHeader + `
  <svrl:failed-assert test="string-length(Name) > 0" location="/Invoice/Party[1]" role="warning">
    <svrl:text>Party name should be provided</svrl:text>
    <svrl:rule id="R-PARTY-01"/>
  </svrl:failed-assert>
` + svrlFooter

	analysis, err := Analyze(output, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)
	require.Len(t, analysis.Findings, 1)

	f := analysis.Findings[0]
	assert.Equal(t, "/Invoice/Party[1]", f.Location)
	assert.Equal(t, "string-length(Name) > 0", f.Test)
	assert.Equal(t, "Party name should be provided", f.Message)
	assert.Equal(t, "warning", f.Role)
	assert.Equal(t, SeverityWarning, f.Severity)
	assert.Equal(t, "R-PARTY-01", f.RuleID)
}

func TestAnalyze_SeverityBreakdownHasAllKeys(t *testing.T) {
	t.Parallel()

	output := svrlHeader + `
  <svrl:failed-assert test="a" role="fatal"><svrl:text>x</svrl:text></svrl:failed-assert>
  <svrl:failed-assert test="b" role="fatal"><svrl:text>x</svrl:text></svrl:failed-assert>
  <svrl:failed-assert test="c" role="info"><svrl:text>x</svrl:text></svrl:failed-assert>
` + svrlFooter

	analysis, err := Analyze(output, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)

	assert.Equal(t, map[Severity]int{
		SeverityFatal:   2,
		SeverityError:   0,
		SeverityWarning: 0,
		SeverityInfo:    1,
	}, analysis.SeverityBreakdown)
}

func TestAnalyze_MissingMessage(t *testing.T) {
	t.Parallel()

	output := svrlHeader + `<svrl:failed-assert test="not(x)" location="/a"/>` + svrlFooter

	analysis, err := Analyze(output, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)
	require.Len(t, analysis.Findings, 1)
	assert.Equal(t, "No message", analysis.Findings[0].Message)
}

func TestAnalyze_NestedElements(t *testing.T) {
	t.Parallel()

	// Report elements below the top level are still counted.
	output := svrlHeader + `
  <svrl:active-pattern name="p1"/>
  <wrapper>
    <svrl:fired-rule context="/x"/>
  </wrapper>
` + svrlFooter

	analysis, err := Analyze(output, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)
	assert.Equal(t, 1, analysis.FiredRules)
}

func TestAnalyze_MalformedOutput(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"truncated": svrlHeader + `<svrl:fired-rule`,
		"not xml":   "this is not xml at all <<<",
	}

	for name, output := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Analyze(output, NewClassifier(DefaultKeywords()))
			assert.Error(t, err)
		})
	}
}

func TestAnalyze_EmptyReport(t *testing.T) {
	t.Parallel()

	analysis, err := Analyze(svrlHeader+svrlFooter, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.FiredRules)
	assert.Equal(t, 0, analysis.FailedAssertions)
	assert.Empty(t, analysis.Findings)
}

func TestAnalyze_ForeignNamespaceIgnored(t *testing.T) {
	t.Parallel()

	output := `<report xmlns:other="urn:other">
  <failed-assert test="x"/>
</report>`

	analysis, err := Analyze(output, NewClassifier(DefaultKeywords()))
	require.NoError(t, err)
	assert.Equal(t, 0, analysis.FailedAssertions, "non-SVRL elements must not be counted")
}
