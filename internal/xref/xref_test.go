package xref

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectReferences_UnresolvedSchedule(t *testing.T) {
	clauses := []Clause{
		{ClauseID: "pricing", Title: "PRICING", Text: "Fees are as set out in Schedule C."},
	}
	refs := DetectReferences(clauses)
	require.Len(t, refs, 1)
	assert.False(t, refs[0].Resolved)
	assert.Equal(t, "Schedule C", refs[0].Label)
}

func TestDetectReferences_ResolvedSchedule(t *testing.T) {
	clauses := []Clause{
		{ClauseID: "pricing", Title: "PRICING", Text: "Fees are as set out in Schedule A."},
		{ClauseID: "schedule-a", Title: "SCHEDULE A - FEES", Text: "Fee table."},
	}
	refs := DetectReferences(clauses)
	require.Len(t, refs, 1)
	assert.True(t, refs[0].Resolved)
	assert.Equal(t, "schedule-a", refs[0].ToClauseID)
}

func TestDeviationInsights_OnlyUnresolved(t *testing.T) {
	refs := []Reference{
		{FromClauseID: "a", Label: "Schedule Z", Resolved: false},
		{FromClauseID: "b", Label: "Schedule A", Resolved: true, ToClauseID: "schedule-a"},
	}
	insights := DeviationInsights(refs)
	require.Len(t, insights, 1)
	assert.Contains(t, insights[0].Detail, "Schedule Z")
}

func TestBuildCommunities_GroupsByCategory(t *testing.T) {
	clauses := []Clause{
		{ClauseID: "a", Category: "liability"},
		{ClauseID: "b", Category: "termination"},
		{ClauseID: "c", Category: "liability"},
		{ClauseID: "d"},
	}
	communities := BuildCommunities(clauses)
	require.Len(t, communities, 2)
	assert.Equal(t, "liability", communities[0].Category)
	assert.ElementsMatch(t, []string{"a", "c"}, communities[0].ClauseIDs)
}

func TestPlaybookInsights_FlagsIsolatedCategory(t *testing.T) {
	clauses := []Clause{
		{ClauseID: "liab-1", Category: "liability", Title: "LIMITATION OF LIABILITY", Text: "Liability is capped."},
		{ClauseID: "term-1", Category: "termination", Title: "TERMINATION", Text: "Either party may terminate."},
	}
	communities := BuildCommunities(clauses)
	refs := DetectReferences(clauses) // no cross-references at all in this fixture

	insights := PlaybookInsights(clauses, refs, communities)
	require.Len(t, insights, 2)
	for _, i := range insights {
		assert.Contains(t, i.Title, "Isolated")
	}
}

func TestPlaybookInsights_NoIsolationWhenLinked(t *testing.T) {
	clauses := []Clause{
		{ClauseID: "liab-1", Category: "liability", Title: "LIMITATION OF LIABILITY", Text: "Liability is subject to Section 9 termination rights."},
		{ClauseID: "term-1", Category: "termination", Title: "SECTION 9 TERMINATION", Text: "Either party may terminate."},
	}
	communities := BuildCommunities(clauses)
	refs := DetectReferences(clauses)

	insights := PlaybookInsights(clauses, refs, communities)
	assert.Empty(t, insights)
}

func TestSummarizeCommunity_TrimsAtWordBoundary(t *testing.T) {
	clauses := []Clause{
		{ClauseID: "a", Title: "Limitation of liability and indemnification obligations for third party claims arising hereunder, including consequential damages, lost profits and regulatory penalties"},
	}
	comm := Community{Category: "liability", ClauseIDs: []string{"a"}}
	summary := SummarizeCommunity(comm, clauses)
	assert.LessOrEqual(t, len(summary), 124)
}
