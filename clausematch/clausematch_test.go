package clausematch

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleClauses() []Clause {
	return []Clause{
		{
			ClauseID:     "obligations-of-receiving-party",
			Title:        "OBLIGATIONS OF RECEIVING PARTY",
			OriginalText: "The Receiving Party shall Use the Confidential Information solely for the Purpose and shall not disclose it to any third party.",
		},
		{
			ClauseID:     "remedies",
			Title:        "REMEDIES",
			OriginalText: "The parties agree that a breach of this Agreement would cause irreparable harm entitling the non-breaching party to seek injunction and specific performance.",
		},
		{
			ClauseID:     "term",
			Title:        "TERM",
			OriginalText: "This Agreement shall remain in effect for three (3) years from the Effective Date.",
		},
	}
}

func TestResolve_ExactIDMatch(t *testing.T) {
	clauses := sampleClauses()
	match := Resolve(Reference{ClauseID: "remedies"}, clauses)

	require.True(t, match.Matched())
	assert.Equal(t, MethodID, match.Method)
	assert.Equal(t, 1.0, match.Confidence)
	assert.Equal(t, "remedies", clauses[match.ClauseIndex].ClauseID)
}

func TestResolve_HeadingMatch(t *testing.T) {
	// Scenario S2: an issue referencing heading "REMEDIES" and an
	// excerpt drawn from that clause resolves to it by heading.
	clauses := sampleClauses()
	match := Resolve(Reference{
		Heading: "REMEDIES",
		Excerpt: "injunction and specific performance",
	}, clauses)

	require.True(t, match.Matched())
	assert.Equal(t, "remedies", clauses[match.ClauseIndex].ClauseID)
}

func TestResolve_HeadingAndExcerptMatch(t *testing.T) {
	// Scenario S1: a heading + excerpt pair resolves to the obligations
	// clause; the heading equals that clause's title.
	clauses := sampleClauses()
	match := Resolve(Reference{
		Heading: "OBLIGATIONS OF RECEIVING PARTY",
		Excerpt: "Use the Confidential Information solely for the Purpose",
	}, clauses)

	require.True(t, match.Matched())
	assert.Equal(t, "obligations-of-receiving-party", clauses[match.ClauseIndex].ClauseID)
}

func TestResolve_NoMatchBelowThreshold(t *testing.T) {
	clauses := sampleClauses()
	match := Resolve(Reference{FallbackText: "xyz unrelated gibberish query"}, clauses)
	assert.False(t, match.Matched())
	assert.Equal(t, MethodNone, match.Method)
}

func TestResolve_EmptyClauseList(t *testing.T) {
	match := Resolve(Reference{ClauseID: "anything"}, nil)
	assert.False(t, match.Matched())
}

func TestResolve_CandidatesCappedAtThree(t *testing.T) {
	clauses := sampleClauses()
	match := Resolve(Reference{FallbackText: "Agreement party shall"}, clauses)
	assert.LessOrEqual(t, len(match.Candidates), 3)
}
