package contractreview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunobiangulo/contractreview/evidence"
	"github.com/brunobiangulo/contractreview/playbook"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ndaClauses() []Clause {
	return []Clause{
		{
			ClauseID:     "obligations",
			Title:        "OBLIGATIONS OF RECEIVING PARTY",
			OriginalText: "OBLIGATIONS OF RECEIVING PARTY\nThe Receiving Party shall use the Confidential Information solely for the Purpose and shall not disclose it to any third party.",
			Category:     "confidentiality",
		},
		{
			ClauseID:     "remedies",
			Title:        "REMEDIES",
			OriginalText: "REMEDIES\nThe parties agree that money damages may not be a sufficient remedy and that the Disclosing Party is entitled to seek injunction and specific performance.",
			Category:     "remedies",
		},
		{
			ClauseID:     "term",
			Title:        "TERM AND SURVIVAL",
			OriginalText: "TERM AND SURVIVAL\nThis Agreement shall remain in effect for three (3) years. Obligations survive termination.",
			Category:     "term",
		},
	}
}

func ndaContent(clauses []Clause) string {
	content := ""
	for _, c := range clauses {
		content += c.OriginalText + "\n\n"
	}
	return content
}

func TestReview_S1_ObligationsExcerptResolvesAndMatches(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	candidate := []Issue{
		{
			ID:       "cand-1",
			Title:    "Confirm purpose limitation",
			Severity: SeverityMedium,
			ClauseReference: ClauseReference{
				ClauseID: "obligations",
				Heading:  "OBLIGATIONS OF RECEIVING PARTY",
				Excerpt:  "Use the Confidential Information solely for the Purpose",
			},
		},
	}

	report, err := Review(content, clauses, "non_disclosure_agreement", candidate, nil, WithClock(fixedClock(time.Unix(0, 0))))
	require.NoError(t, err)
	require.NotEmpty(t, report.IssuesToAddress)

	found := report.IssuesToAddress[0]
	assert.Equal(t, "obligations", found.ClauseReference.ClauseID)
	match := evidence.CheckMatch(found.ClauseReference.Excerpt, content)
	assert.True(t, match.Matched)
}

func TestReview_S2_RemediesMatchesOwnClauseNotObligations(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	candidate := []Issue{
		{
			ID:       "cand-2",
			Title:    "Confirm remedies clause",
			Severity: SeverityMedium,
			ClauseReference: ClauseReference{
				ClauseID: "remedies",
				Heading:  "REMEDIES",
				Excerpt:  "injunction and specific performance",
			},
		},
	}

	report, err := Review(content, clauses, "non_disclosure_agreement", candidate, nil)
	require.NoError(t, err)
	require.NotEmpty(t, report.IssuesToAddress)
	assert.Equal(t, "remedies", report.IssuesToAddress[0].ClauseReference.ClauseID)
	assert.NotEqual(t, "obligations", report.IssuesToAddress[0].ClauseReference.ClauseID)
}

func TestReview_S3_EmptyContentYieldsZeroCoverage(t *testing.T) {
	report, err := Review("", nil, "data_processing_agreement", nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.GeneralInformation.ComplianceScore)
}

func TestReview_ChecklistCompleteness(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	report, err := Review(content, clauses, "non_disclosure_agreement", nil, nil)
	require.NoError(t, err)

	pb, ok := playbook.ByKey("non_disclosure_agreement")
	require.True(t, ok)
	assert.Equal(t, len(pb.Checklist), len(report.CriteriaMet))
	for i, item := range pb.Checklist {
		assert.Equal(t, item.ID, report.CriteriaMet[i].ID)
	}
}

func TestReview_CoverageScoreBounds(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	report, err := Review(content, clauses, "non_disclosure_agreement", nil, nil)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, report.GeneralInformation.ComplianceScore, 0)
	assert.LessOrEqual(t, report.GeneralInformation.ComplianceScore, 100)
}

func TestReview_Determinism(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)
	candidate := []Issue{
		{
			ID:       "cand-1",
			Title:    "Confirm purpose limitation",
			Severity: SeverityMedium,
			ClauseReference: ClauseReference{
				Heading: "OBLIGATIONS OF RECEIVING PARTY",
				Excerpt: "Use the Confidential Information solely for the Purpose",
			},
		},
	}

	clock := fixedClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))

	r1, err := Review(content, clauses, "non_disclosure_agreement", candidate, nil, WithClock(clock))
	require.NoError(t, err)
	r2, err := Review(content, clauses, "non_disclosure_agreement", candidate, nil, WithClock(clock))
	require.NoError(t, err)

	j1, err := json.Marshal(r1)
	require.NoError(t, err)
	j2, err := json.Marshal(r2)
	require.NoError(t, err)
	assert.Equal(t, string(j1), string(j2))
}

func TestReview_UnknownPlaybookReturnsUnknownPlaybookError(t *testing.T) {
	_, err := Review("content", nil, "not-a-real-playbook", nil, nil)
	require.Error(t, err)

	reviewErr, ok := err.(*ReviewError)
	require.True(t, ok)
	assert.Equal(t, KindUnknownPlaybook, reviewErr.Kind)
}

func TestReview_EmptyContentWithClausesIsSchemaError(t *testing.T) {
	clauses := []Clause{{ClauseID: "a", Title: "A", OriginalText: "text"}}
	_, err := Review("", clauses, "non_disclosure_agreement", nil, nil)
	require.Error(t, err)

	reviewErr, ok := err.(*ReviewError)
	require.True(t, ok)
	assert.Equal(t, KindSchema, reviewErr.Kind)
}

func TestReview_InvalidClauseIDIsSchemaError(t *testing.T) {
	clauses := []Clause{{ClauseID: "Not A Valid Slug!", Title: "A", OriginalText: "text"}}
	_, err := Review("text", clauses, "non_disclosure_agreement", nil, nil)
	require.Error(t, err)

	reviewErr, ok := err.(*ReviewError)
	require.True(t, ok)
	assert.Equal(t, KindSchema, reviewErr.Kind)
}

func TestReview_InvalidSeverityIsSchemaError(t *testing.T) {
	candidate := []Issue{{ID: "x", Title: "bad severity", Severity: Severity("catastrophic")}}
	_, err := Review("text", nil, "non_disclosure_agreement", candidate, nil)
	require.Error(t, err)

	reviewErr, ok := err.(*ReviewError)
	require.True(t, ok)
	assert.Equal(t, KindSchema, reviewErr.Kind)
}

func TestReview_S5_RedundantInsertDropped(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	edits := []ProposedEdit{
		{
			ID:           "EDIT_CHECK_NDA_04",
			ClauseID:     "term",
			Intent:       IntentInsert,
			ProposedText: "Term and survival. This Agreement remains in effect for 2 years. Obligations survive termination.",
		},
	}

	report, err := Review(content, clauses, "non_disclosure_agreement", nil, edits)
	require.NoError(t, err)
	for _, e := range report.ProposedEdits {
		assert.NotEqual(t, "EDIT_CHECK_NDA_04", e.ID)
	}
}

func TestReview_S6_PlaceholderEditDropped(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	edits := []ProposedEdit{
		{
			ID:           "edit-placeholder",
			ClauseID:     "term",
			AnchorText:   "Not present in contract",
			Intent:       IntentInsert,
			ProposedText: "[Insert exact project date]",
		},
	}

	report, err := Review(content, clauses, "non_disclosure_agreement", nil, edits)
	require.NoError(t, err)
	for _, e := range report.ProposedEdits {
		assert.NotEqual(t, "edit-placeholder", e.ID)
	}
}

func TestReview_ReportExpiryNormalizedWhenUnparseable(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	report, err := Review("text", nil, "non_disclosure_agreement", nil, nil, WithClock(fixedClock(now)), WithReportExpiry("not-a-timestamp"))
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour).Format(time.RFC3339), report.DraftMetadata.ReportExpiry)
}

func TestReview_ReportExpiryPreservedWhenValid(t *testing.T) {
	valid := "2030-01-01T00:00:00Z"
	report, err := Review("text", nil, "non_disclosure_agreement", nil, nil, WithReportExpiry(valid))
	require.NoError(t, err)
	assert.Equal(t, valid, report.DraftMetadata.ReportExpiry)
}

func TestReview_DedupIdempotentAcrossRepeatedIssues(t *testing.T) {
	clauses := ndaClauses()
	content := ndaContent(clauses)

	candidate := []Issue{
		{
			ID: "dup-1", Title: "Confirm purpose limitation", Severity: SeverityMedium,
			Recommendation: "Clarify purpose limitation language.",
			ClauseReference: ClauseReference{
				ClauseID: "obligations",
				Heading:  "OBLIGATIONS OF RECEIVING PARTY",
				Excerpt:  "Use the Confidential Information solely for the Purpose",
			},
		},
		{
			ID: "dup-2", Title: "Confirm purpose limitation", Severity: SeverityHigh,
			Recommendation: "Clarify purpose limitation language.",
			ClauseReference: ClauseReference{
				ClauseID: "obligations",
				Heading:  "OBLIGATIONS OF RECEIVING PARTY",
				Excerpt:  "Use the Confidential Information solely for the Purpose",
			},
		},
	}

	report, err := Review(content, clauses, "non_disclosure_agreement", candidate, nil)
	require.NoError(t, err)

	count := 0
	for _, iss := range report.IssuesToAddress {
		if iss.Title == "Confirm purpose limitation" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}
