package checklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunobiangulo/contractreview/evidence"
)

func TestCompile_PreservesDeclaredOrderAndDropsNone(t *testing.T) {
	clauses := []evidence.Clause{
		{ClauseID: "obligations", Title: "OBLIGATIONS", OriginalText: "The Receiving Party shall keep information confidential and shall not disclose it."},
		{ClauseID: "term", Title: "TERM", OriginalText: "This Agreement remains in effect for two years."},
	}
	idx := evidence.Build(clauses, "OBLIGATIONS\nThe Receiving Party shall keep information confidential and shall not disclose it.\n\nTERM\nThis Agreement remains in effect for two years.\n")

	items := []Item{
		{
			ID:              "CHECK_A",
			Title:           "Confidentiality",
			RequiredSignals: []string{"confidential"},
			EvidenceMapping: evidence.Mapping{Headings: []string{"OBLIGATIONS"}},
		},
		{
			ID:              "CHECK_B",
			Title:           "Term length",
			RequiredSignals: []string{"nonexistent phrase"},
			EvidenceMapping: evidence.Mapping{Headings: []string{"TERM"}},
		},
		{
			ID:              "CHECK_C",
			Title:           "Unmapped criterion",
			RequiredSignals: []string{"something"},
		},
	}

	got := Compile(items, idx, 320)

	require.Len(t, got, 3)
	assert.Equal(t, "CHECK_A", got[0].ID)
	assert.Equal(t, "CHECK_B", got[1].ID)
	assert.Equal(t, "CHECK_C", got[2].ID)

	assert.Equal(t, evidence.StatusMet, got[0].Status)
	assert.True(t, got[0].Met)

	assert.Equal(t, evidence.StatusMissing, got[1].Status)
	assert.False(t, got[1].Met)
	assert.Equal(t, evidence.NotPresent, got[1].Evidence)

	assert.Equal(t, evidence.StatusMissing, got[2].Status)
}
