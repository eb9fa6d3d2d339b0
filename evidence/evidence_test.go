package evidence

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
			ClauseID:     "security",
			Title:        "SECURITY MEASURES",
			OriginalText: "The processor shall implement appropriate technical and organizational measures, including encryption of personal data at rest and in transit.",
		},
	}
}

func sampleContent() string {
	return "PREAMBLE\n\n" +
		"OBLIGATIONS OF RECEIVING PARTY\nThe Receiving Party shall Use the Confidential Information solely for the Purpose and shall not disclose it to any third party.\n\n" +
		"REMEDIES\nThe parties agree that a breach of this Agreement would cause irreparable harm entitling the non-breaching party to seek injunction and specific performance.\n\n" +
		"SECURITY MEASURES\nThe processor shall implement appropriate technical and organizational measures, including encryption of personal data at rest and in transit.\n"
}

func TestResolve_S1_ExactExcerptMatch(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())

	res := idx.Resolve(
		[]string{"solely for the Purpose"},
		Mapping{Headings: []string{"OBLIGATIONS OF RECEIVING PARTY"}},
		320,
	)

	require.Equal(t, StatusMet, res.Status)
	assert.Equal(t, "obligations-of-receiving-party", res.ClauseID)

	match := CheckMatch(res.Evidence, idx.Content)
	assert.True(t, match.Matched)
	assert.Contains(t, []MatchReason{ReasonExact, ReasonPrefix}, match.Reason)
}

func TestResolve_S2_CrossClauseNoMatch(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())
	obligations, ok := idx.ClauseByID("obligations-of-receiving-party")
	require.True(t, ok)

	result := CheckMatchAgainstClause("injunction and specific performance", obligations.OriginalText)
	assert.False(t, result.Matched)
}

func TestResolve_RegexSignal(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())
	res := idx.Resolve(
		[]string{`re:encrypt\w*`},
		Mapping{Topics: []string{"security"}},
		320,
	)
	assert.Equal(t, StatusMet, res.Status)
	assert.Contains(t, res.MatchedSignals, `re:encrypt\w*`)
}

func TestResolve_SlashRegexSignal(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())
	res := idx.Resolve(
		[]string{`/technical and organizational/`},
		Mapping{Headings: []string{"SECURITY MEASURES"}},
		320,
	)
	assert.Equal(t, StatusMet, res.Status)
}

func TestResolve_PartialSignalsAttention(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())
	res := idx.Resolve(
		[]string{"encryption", "pseudonymization"},
		Mapping{Headings: []string{"SECURITY MEASURES"}},
		320,
	)
	assert.Equal(t, StatusAttention, res.Status)
	assert.Contains(t, res.MatchedSignals, "encryption")
	assert.Contains(t, res.MissingSignals, "pseudonymization")
}

func TestResolve_NoSignalsMatchedIsMissing(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())
	res := idx.Resolve(
		[]string{"zzz nonexistent phrase"},
		Mapping{Headings: []string{"SECURITY MEASURES"}},
		320,
	)
	assert.Equal(t, StatusMissing, res.Status)
	assert.Equal(t, NotPresent, res.Evidence)
}

func TestResolve_FallbackAcrossAllClauses(t *testing.T) {
	idx := Build(sampleClauses(), sampleContent())
	// No evidence mapping at all; required signal only present in the
	// remedies clause, so the fallback-to-every-clause retry must find it.
	res := idx.Resolve([]string{"injunction"}, Mapping{}, 320)
	assert.Equal(t, StatusMet, res.Status)
	assert.Equal(t, "remedies", res.ClauseID)
}

func TestBuildExcerpt_ShortClauseReturnedWhole(t *testing.T) {
	text := "Short clause text."
	assert.Equal(t, text, BuildExcerpt(text, "", 320))
}

func TestBuildExcerpt_LongClauseWindowed(t *testing.T) {
	long := ""
	for i := 0; i < 50; i++ {
		long += "This is filler sentence number to pad out the clause text. "
	}
	long += "The anchor phrase appears exactly once here and should be centered."
	long += " More filler follows after the anchor to pad the tail of the clause out further and further."

	excerpt := BuildExcerpt(long, "The anchor phrase appears exactly once here", 320)
	assert.LessOrEqual(t, len([]rune(excerpt)), 320)
	assert.Contains(t, excerpt, "anchor phrase")
}

func TestIsMissingEvidenceMarker(t *testing.T) {
	assert.True(t, IsMissingEvidenceMarker("Not present"))
	assert.True(t, IsMissingEvidenceMarker("  Evidence NOT FOUND  "))
	assert.False(t, IsMissingEvidenceMarker("The processor shall encrypt data."))
}

func TestCheckMatch_EmptyContentPermissive(t *testing.T) {
	result := CheckMatch("anything", "")
	assert.True(t, result.Matched)
	assert.Equal(t, ReasonEmptyContent, result.Reason)
}

func TestCheckMatch_EmptyExcerpt(t *testing.T) {
	result := CheckMatch("", "some content")
	assert.False(t, result.Matched)
	assert.Equal(t, ReasonEmptyExcerpt, result.Reason)
}

func TestCheckMatch_MissingMarker(t *testing.T) {
	result := CheckMatch("Not present", "some content")
	assert.True(t, result.Matched)
	assert.Equal(t, ReasonMissingMarker, result.Reason)
}
