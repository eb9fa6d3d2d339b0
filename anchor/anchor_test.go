package anchor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClauses() []Clause {
	return []Clause{
		{ClauseID: "security", Title: "SECURITY MEASURES", OriginalText: "The processor shall implement appropriate technical and organizational security measures."},
		{ClauseID: "subprocessors", Title: "SUB-PROCESSORS", OriginalText: "The processor shall not engage a sub-processor without prior written authorization."},
		{ClauseID: "term", Title: "TERM", OriginalText: "This Agreement shall remain in effect for three (3) years from the Effective Date."},
	}
}

func sampleContent(clauses []Clause) string {
	out := ""
	for _, c := range clauses {
		out += c.Title + "\n" + c.OriginalText + "\n\n"
	}
	return out
}

func TestSelectInsertionPoint_EndOfDocument(t *testing.T) {
	clauses := sampleClauses()
	point := SelectInsertionPoint(sampleContent(clauses), clauses, "end_of_document")
	require.True(t, point.Resolved())
	assert.Equal(t, "term", point.ClauseID)
}

func TestSelectInsertionPoint_AfterHeading(t *testing.T) {
	clauses := sampleClauses()
	content := sampleContent(clauses)
	point := SelectInsertionPoint(content, clauses, "after_heading:SECURITY MEASURES|SUB-PROCESSORS")
	require.True(t, point.Resolved())
	assert.Equal(t, "security", point.ClauseID)
}

func TestSelectInsertionPoint_FallsBackThroughAlternatives(t *testing.T) {
	clauses := sampleClauses()
	content := sampleContent(clauses)
	point := SelectInsertionPoint(content, clauses, "after_heading:NONEXISTENT HEADING|SUB-PROCESSORS")
	require.True(t, point.Resolved())
	assert.Equal(t, "subprocessors", point.ClauseID)
}

func TestSelectInsertionPoint_EmptyWhenNoHeadingMatches(t *testing.T) {
	clauses := sampleClauses()
	content := sampleContent(clauses)
	point := SelectInsertionPoint(content, clauses, "after_heading:NOT THERE AT ALL")
	assert.False(t, point.Resolved())
}

func TestSelectInsertionPoint_Deterministic(t *testing.T) {
	clauses := sampleClauses()
	content := sampleContent(clauses)
	a := SelectInsertionPoint(content, clauses, "after_heading:SECURITY MEASURES")
	b := SelectInsertionPoint(content, clauses, "after_heading:SECURITY MEASURES")
	assert.Equal(t, a, b)
}

func TestEvaluateCoverage_DPAScenario(t *testing.T) {
	// Scenario S3.
	clauses := sampleClauses()
	content := sampleContent(clauses)

	anchors := []AnchorSpec{
		{Heading: "SECURITY MEASURES"},
		{Heading: "SUB-PROCESSORS"},
	}

	result := EvaluateCoverage(content, clauses, nil, anchors)
	require.Len(t, result.ClauseAnchorResults, 2)
	assert.True(t, result.ClauseAnchorResults[0].Met)
	assert.True(t, result.ClauseAnchorResults[1].Met)
}

func TestEvaluateCoverage_EmptyContentIsZero(t *testing.T) {
	result := EvaluateCoverage("", nil, nil, nil)
	assert.Equal(t, 0.0, result.Score)
}

func TestEvaluateCoverage_OptionalAnchorExcludedFromDenominator(t *testing.T) {
	clauses := sampleClauses()
	content := sampleContent(clauses)

	anchors := []AnchorSpec{
		{Heading: "SECURITY MEASURES"},
		{Heading: "Export control / sanctions (if relevant)"},
	}

	result := EvaluateCoverage(content, clauses, nil, anchors)
	// Only one non-optional anchor, met -> score 1.0 regardless of the
	// unmet optional one.
	assert.Equal(t, 1.0, result.Score)
}

func TestFindRequirementMatch_FallsBackToContentContainment(t *testing.T) {
	clauses := sampleClauses()
	content := sampleContent(clauses) + "Confidentiality survives termination indefinitely."
	matched, evidence := FindRequirementMatch("survives termination indefinitely", clauses, content)
	assert.True(t, matched)
	assert.Equal(t, "Contract text", evidence)
}
