package contractreview

// GeneralInformation carries the top-level compliance summary.
type GeneralInformation struct {
	ComplianceScore int `json:"complianceScore"`
}

// ContractSummary is a short, structured restatement of the contract's
// parties and governing terms, derived from the clauses the caller
// supplied (not from any model inference).
type ContractSummary struct {
	Parties       []string `json:"parties"`
	GoverningLaw  string   `json:"governingLaw,omitempty"`
	EffectiveDate string   `json:"effectiveDate,omitempty"`
	ContractType  string   `json:"contractType,omitempty"`
}

// PlaybookInsight is a diagnostic surfaced by the cross-reference
// graph about how the contract's clauses relate to the playbook's
// expectations (see internal/xref).
type PlaybookInsight struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// SimilarityFinding reports how closely a checklist criterion's
// evidence matched its winning clause, for reviewer diagnostics.
type SimilarityFinding struct {
	CriterionID string  `json:"criterionId"`
	ClauseID    string  `json:"clauseId,omitempty"`
	Score       float64 `json:"score"`
	Method      string  `json:"method"`
}

// DeviationInsight is a diagnostic about a structural anomaly in the
// contract's cross-references (see internal/xref).
type DeviationInsight struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
}

// ActionItem is a short, reviewer-facing next step derived from the
// report's issues and missing criteria.
type ActionItem struct {
	Title    string   `json:"title"`
	Severity Severity `json:"severity"`
}

// DraftMetadata records provenance of the candidate issues/edits the
// core was handed, when the caller supplies it (e.g. via
// cmd/draftmodel); it is opaque to the core itself.
type DraftMetadata struct {
	Model        string `json:"model,omitempty"`
	GeneratedAt  string `json:"generatedAt,omitempty"`
	ReportExpiry string `json:"reportExpiry,omitempty"`
}

// ReportMetadata carries the request's playbook key and a
// classification label echoed back for the caller's bookkeeping.
type ReportMetadata struct {
	PlaybookKey    string `json:"playbookKey"`
	Classification string `json:"classification,omitempty"`
}

// AnalysisReport is the deterministic output of Review (spec.md §6).
type AnalysisReport struct {
	Version            string               `json:"version"`
	GeneratedAt        string               `json:"generatedAt"`
	GeneralInformation GeneralInformation   `json:"generalInformation"`
	ContractSummary    ContractSummary      `json:"contractSummary"`
	IssuesToAddress    []Issue              `json:"issuesToAddress"`
	CriteriaMet        []ChecklistCriterion `json:"criteriaMet"`
	ClauseFindings     []ClauseReference    `json:"clauseFindings"`
	ProposedEdits      []ProposedEdit       `json:"proposedEdits"`
	PlaybookInsights   []PlaybookInsight    `json:"playbookInsights"`
	SimilarityAnalysis []SimilarityFinding  `json:"similarityAnalysis"`
	DeviationInsights  []DeviationInsight   `json:"deviationInsights"`
	ActionItems        []ActionItem         `json:"actionItems"`
	DraftMetadata      DraftMetadata        `json:"draftMetadata"`
	Metadata           ReportMetadata       `json:"metadata"`
}
