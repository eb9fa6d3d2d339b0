package contractreview

// Config holds the tunable knobs of the review core. The seven playbook
// configurations themselves are compile-time constants (see package
// playbook) and are not part of Config — only the thresholds the
// pipeline applies to them are.
type Config struct {
	// DriftMinSimilarity is the minimum scoreTextSimilarity score a
	// replace edit's proposed text must reach against the clause it
	// replaces before assessEditSemanticDrift raises a drift alert.
	// spec.md §4.E and §9 leave this as an open question ("default
	// 0.30") rather than a hardcoded constant; exposed here as the
	// configuration knob the spec calls for.
	DriftMinSimilarity float64 `json:"drift_min_similarity" mapstructure:"drift_min_similarity"`

	// IssueAlignMinScore is the minimum combined score (signalHits +
	// tokenScore) for a candidate issue to be bound to a checklist
	// criterion rather than falling back to enforceIssueClauseReference.
	IssueAlignMinScore float64 `json:"issue_align_min_score" mapstructure:"issue_align_min_score"`

	// EditAnchorSentenceMin/Max bound the sentence-length window used
	// when synthesizing a replace edit's anchor text from clause
	// sentences (spec.md §4.E: "30-220").
	EditAnchorSentenceMin int `json:"edit_anchor_sentence_min" mapstructure:"edit_anchor_sentence_min"`
	EditAnchorSentenceMax int `json:"edit_anchor_sentence_max" mapstructure:"edit_anchor_sentence_max"`

	// EvidenceExcerptMaxLength bounds buildEvidenceExcerpt windows
	// (spec.md §4.C: "maxLength=320").
	EvidenceExcerptMaxLength int `json:"evidence_excerpt_max_length" mapstructure:"evidence_excerpt_max_length"`

	// NGramMatchThreshold is the 4-gram hit-ratio threshold for a fuzzy
	// evidence match (spec.md §4.C: "0.45"). Review does not pass this
	// field on; evidence.CheckMatch applies a fixed 0.45.
	NGramMatchThreshold float64 `json:"ngram_match_threshold" mapstructure:"ngram_match_threshold"`

	// IssueDedupMinSimilarity / EditDedupMinSimilarity are the
	// token-Jaccard thresholds used by the dedup passes in component E
	// (spec.md §4.E: "0.8" for issues, "0.85" for edits).
	IssueDedupMinSimilarity float64 `json:"issue_dedup_min_similarity" mapstructure:"issue_dedup_min_similarity"`
	EditDedupMinSimilarity  float64 `json:"edit_dedup_min_similarity" mapstructure:"edit_dedup_min_similarity"`
}

// DefaultConfig returns the thresholds named explicitly in spec.md,
// wherever the spec gives a default.
func DefaultConfig() Config {
	return Config{
		DriftMinSimilarity:       0.30,
		IssueAlignMinScore:       0.20,
		EditAnchorSentenceMin:    30,
		EditAnchorSentenceMax:    220,
		EvidenceExcerptMaxLength: 320,
		NGramMatchThreshold:      0.45,
		IssueDedupMinSimilarity:  0.80,
		EditDedupMinSimilarity:   0.85,
	}
}
