package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeForMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "curly quotes and section mark",
			input: `The “Confidential Information” under §4.2`,
			want:  "the confidential information under section 4 2",
		},
		{
			name:  "diacritics stripped",
			input: "Café résumé naïve",
			want:  "cafe resume naive",
		},
		{
			name:  "punctuation collapsed",
			input: "Clause 1.2.3 -- shall not!!",
			want:  "clause 1 2 3 shall not",
		},
		{
			name:  "empty",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeForMatch(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenizeForMatch(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "negation preserved",
			input: "may not disclose",
			want:  []string{"not", "disclose"},
		},
		{
			name:  "stopwords dropped",
			input: "the parties shall use the information",
			want:  []string{"parties", "use", "information"},
		},
		{
			name:  "short abbreviation kept",
			input: "the DPA governs this",
			want:  []string{"dpa", "governs"},
		},
		{
			name:  "numeric tokens kept regardless of length",
			input: "pay 30 days",
			want:  []string{"pay", "30", "days"},
		},
		{
			name:  "single-letter non-abbreviation dropped",
			input: "a b use it",
			want:  []string{"use", "it"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenizeForMatch(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenJaccard(t *testing.T) {
	a := "the parties shall keep information confidential"
	b := "parties must keep all information confidential"
	score := TokenJaccard(a, b)
	require.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)

	assert.Equal(t, 0.0, TokenJaccard("", ""))
}

func TestFourGramJaccard(t *testing.T) {
	score := FourGramJaccard("confidential information", "confidential info")
	require.Greater(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
}

func TestScoreTextSimilarity_ShortQueryMatch(t *testing.T) {
	// Property 9: a short fallback query still matches a longer clause
	// containing the full phrase, with confidence >= 0.15.
	query := "Purpose/use limitation"
	clause := "The Receiving Party shall not use any Confidential Information for any purpose other than the Project."

	result := ScoreTextSimilarity(query, clause)
	assert.GreaterOrEqual(t, result.Score, 0.15)
}

func TestScoreTextSimilarity_MethodSelection(t *testing.T) {
	result := ScoreTextSimilarity("termination for convenience", "termination for convenience by either party")
	assert.Contains(t, []SimilarityMethod{MethodText, MethodNGram}, result.Method)
}
