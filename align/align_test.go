package align

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunobiangulo/contractreview/checklist"
	"github.com/brunobiangulo/contractreview/evidence"
)

func defaultOptions() Options {
	return Options{
		IssueAlignMinScore:      0.20,
		DriftMinSimilarity:      0.30,
		IssueDedupMinSimilarity: 0.80,
		EditDedupMinSimilarity:  0.85,
		EditAnchorSentenceMin:   30,
		EditAnchorSentenceMax:   220,
	}
}

func TestAssessDrift_S4_FlagsDivergentReplace(t *testing.T) {
	clauses := []evidence.Clause{
		{ClauseID: "payment", Title: "PAYMENT", OriginalText: "The Customer shall pay all undisputed invoices within thirty (30) days of receipt."},
	}
	idx := evidence.Build(clauses, "PAYMENT\nThe Customer shall pay all undisputed invoices within thirty (30) days of receipt.\n")

	edit := Edit{
		ID:           "EDIT_PAYMENT",
		ClauseID:     "payment",
		Intent:       IntentReplace,
		ProposedText: "The Receiving Party shall not disclose Confidential Information to any third party.",
	}

	got := AssessDrift(edit, idx, 0.30)
	assert.NotEmpty(t, got.DriftAlert)
	assert.Contains(t, got.DriftAlert, "EDIT_PAYMENT")
}

func TestAssessDrift_InsertNeverChecked(t *testing.T) {
	clauses := []evidence.Clause{{ClauseID: "a", Title: "A", OriginalText: "Something."}}
	idx := evidence.Build(clauses, "A\nSomething.\n")
	edit := Edit{ID: "EDIT_X", ClauseID: "a", Intent: IntentInsert, ProposedText: "Completely unrelated text."}
	got := AssessDrift(edit, idx, 0.30)
	assert.Empty(t, got.DriftAlert)
}

func TestFilterRedundantInserts_S5(t *testing.T) {
	clauses := []evidence.Clause{
		{
			ClauseID:     "term",
			Title:        "TERM AND SURVIVAL",
			OriginalText: "This Agreement shall remain in effect for three (3) years. Obligations survive termination.",
		},
	}

	criteria := map[string]checklist.Criterion{
		"CHECK_TERM": {
			ID:              "CHECK_TERM",
			RequiredSignals: []string{"survive", "effect"},
		},
	}

	edits := []Edit{
		{
			ID:           "EDIT_CHECK_TERM",
			Intent:       IntentInsert,
			ProposedText: "Term and survival. This Agreement remains in effect for 2 years. Obligations survive termination.",
		},
	}

	out := FilterRedundantInserts(edits, criteria, clauses)
	assert.Empty(t, out)
}

func TestFilterPlaceholderEdits_S6(t *testing.T) {
	edits := []Edit{
		{ID: "EDIT_1", AnchorText: "Not present in contract", ProposedText: "[Insert exact project date]", Intent: IntentInsert},
		{ID: "EDIT_2", AnchorText: "Valid anchor text", ProposedText: "A real, specific proposed replacement.", Intent: IntentReplace},
	}

	out := FilterPlaceholderEdits(edits)
	require.Len(t, out, 1)
	assert.Equal(t, "EDIT_2", out[0].ID)
}

func TestEnsureDeltaSignals_AppendsMissingSignals(t *testing.T) {
	text := "Security measures. The parties shall address: encryption."
	result := EnsureDeltaSignals(text, []string{"encryption", "pseudonymization"})
	assert.Contains(t, result, "pseudonymization")
}

func TestEnsureDeltaSignals_NoopWhenAllPresent(t *testing.T) {
	text := "Must include encryption and pseudonymization safeguards."
	result := EnsureDeltaSignals(text, []string{"encryption", "pseudonymization"})
	assert.Equal(t, text, result)
}

func TestDedupIssues_CollapsesSimilarIssuesKeepingHigherSeverity(t *testing.T) {
	issues := []Issue{
		{
			ID: "ISSUE_A", Severity: SeverityMedium,
			Title: "Missing security clause", Recommendation: "Add encryption requirements",
			ClauseReference: ClauseReference{ClauseID: "security"},
		},
		{
			ID: "ISSUE_B", Severity: SeverityHigh,
			Title: "Missing security clause", Recommendation: "Add encryption requirements",
			ClauseReference: ClauseReference{ClauseID: "security"},
		},
	}

	out := DedupIssues(issues, 0.80)
	require.Len(t, out, 1)
	assert.Equal(t, SeverityHigh, out[0].Severity)
}

func TestDedupIssues_Idempotent(t *testing.T) {
	issues := []Issue{
		{ID: "ISSUE_A", Severity: SeverityMedium, Title: "Missing clause", Recommendation: "Add it", ClauseReference: ClauseReference{ClauseID: "x"}},
		{ID: "ISSUE_B", Severity: SeverityLow, Title: "Unrelated finding entirely", Recommendation: "Different", ClauseReference: ClauseReference{ClauseID: "y"}},
	}
	once := DedupIssues(issues, 0.80)
	twice := DedupIssues(once, 0.80)
	assert.Equal(t, once, twice)
}

func TestValidateIssueClauseReference_EmptyExcerpt(t *testing.T) {
	idx := evidence.Build([]evidence.Clause{{ClauseID: "a", Title: "A", OriginalText: "Text."}}, "A\nText.\n")
	ok, failure := ValidateIssueClauseReference(ClauseReference{ClauseID: "a", Excerpt: ""}, idx)
	assert.False(t, ok)
	assert.Equal(t, FailureEmptyExcerpt, failure)
}

func TestValidateIssueClauseReference_MissingMarkerOnExistingClauseInvalid(t *testing.T) {
	idx := evidence.Build([]evidence.Clause{{ClauseID: "a", Title: "A", OriginalText: "Text."}}, "A\nText.\n")
	ok, failure := ValidateIssueClauseReference(ClauseReference{ClauseID: "a", Excerpt: "Not present"}, idx)
	assert.False(t, ok)
	assert.Equal(t, FailureMissingMarkerInvalid, failure)
}

func TestValidateIssueClauseReference_ExcerptMustComeFromClause(t *testing.T) {
	idx := evidence.Build([]evidence.Clause{{ClauseID: "a", Title: "A", OriginalText: "The processor shall encrypt data at rest."}}, "A\nThe processor shall encrypt data at rest.\n")
	ok, _ := ValidateIssueClauseReference(ClauseReference{ClauseID: "a", Excerpt: "encrypt data at rest"}, idx)
	assert.True(t, ok)

	ok2, failure := ValidateIssueClauseReference(ClauseReference{ClauseID: "a", Excerpt: "a completely fabricated sentence"}, idx)
	assert.False(t, ok2)
	assert.Equal(t, FailureExcerptNotFromClause, failure)
}

func TestBindEdits_FallsBackToProposedEditIndex(t *testing.T) {
	idx := evidence.Build([]evidence.Clause{{ClauseID: "a", Title: "A", OriginalText: "Unrelated text."}}, "A\nUnrelated text.\n")
	edits := []Edit{{ID: "e1", ClauseID: "", AnchorText: "completely unmatched gibberish anchor", ProposedText: "xyz"}}
	bound := BindEdits(edits, nil, idx)
	require.Len(t, bound, 1)
	assert.Equal(t, "proposed-edit-0", bound[0].ClauseID)
}

func TestSynthesizeIssues_SkipsMetAndCoveredCriteria(t *testing.T) {
	criteria := []checklist.Criterion{
		{ID: "CHECK_A", Title: "A", Status: evidence.StatusMet, Met: true},
		{ID: "CHECK_B", Title: "B", Status: evidence.StatusMissing, Met: false, MissingSignals: []string{"x"}},
		{ID: "CHECK_C", Title: "C", Status: evidence.StatusAttention, Met: false, MissingSignals: []string{"y"}},
	}
	covered := map[string]bool{"CHECK_C": true}

	out := SynthesizeIssues(criteria, covered)
	require.Len(t, out, 1)
	assert.Equal(t, "ISSUE_CHECK_B", out[0].ID)
	assert.Equal(t, SeverityHigh, out[0].Severity)
}

func TestAlignIssues_BindsToCriterionAboveThreshold(t *testing.T) {
	clauses := []evidence.Clause{
		{ClauseID: "security", Title: "SECURITY MEASURES", OriginalText: "The processor shall encrypt personal data at rest and in transit."},
	}
	idx := evidence.Build(clauses, "SECURITY MEASURES\nThe processor shall encrypt personal data at rest and in transit.\n")

	criteria := []checklist.Criterion{
		{
			ID: "CHECK_SECURITY", Title: "Security measures", Description: "Technical and organizational measures",
			RequiredSignals: []string{"encrypt"}, ClauseID: "security", Heading: "SECURITY MEASURES",
			Evidence: "The processor shall encrypt personal data at rest and in transit.",
		},
	}

	candidates := []Issue{
		{ID: "cand-1", Title: "Missing encryption requirement", Recommendation: "Require encryption of personal data", Rationale: "No encrypt clause found"},
	}

	aligned, covered := AlignIssues(candidates, criteria, idx, defaultOptions())
	require.Len(t, aligned, 1)
	assert.Equal(t, "CHECK_SECURITY", aligned[0].CriterionID)
	assert.True(t, covered["CHECK_SECURITY"])
}
