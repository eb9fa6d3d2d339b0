// Package contractreview is a deterministic, evidence-anchored
// contract-review core. Given a contract's raw text, its extracted
// clauses, and a domain playbook describing what a well-formed contract
// of that type must contain, Review produces a checklist verdict per
// playbook criterion, a set of issues bound to literal excerpts, a set
// of proposed edits pinned to verifiable anchors, and a coverage score.
//
// The core is single-threaded and has no shared or process-wide state:
// the same inputs always produce byte-identical output.
package contractreview

// Severity is the closed set of issue severities.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// severityRank orders severities for sorting action items (higher first).
var severityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Rank returns a comparable ordinal for severity, critical highest.
func (s Severity) Rank() int { return severityRank[s] }

// Status is the closed set of checklist-criterion verdicts.
type Status string

const (
	StatusMet       Status = "met"
	StatusAttention Status = "attention"
	StatusMissing   Status = "missing"
)

// Intent is the closed set of proposed-edit intents.
type Intent string

const (
	IntentReplace Intent = "replace"
	IntentInsert  Intent = "insert"
)

// ClauseLocation holds optional document coordinates for a clause.
type ClauseLocation struct {
	Page         *int    `json:"page,omitempty"`
	Paragraph    *int    `json:"paragraph,omitempty"`
	SectionLabel *string `json:"sectionLabel,omitempty"`
	ClauseNumber *string `json:"clauseNumber,omitempty"`
}

// Clause is a contiguous run of contract text tagged with a stable
// identifier. ClauseId is unique within a contract and slug-compatible
// (lowercase, [a-z0-9-], <=64 chars).
type Clause struct {
	ClauseID       string          `json:"clauseId"`
	Title          string          `json:"title"`
	OriginalText   string          `json:"originalText"`
	NormalizedText string          `json:"normalizedText"`
	Location       *ClauseLocation `json:"location,omitempty"`
	Category       string          `json:"category,omitempty"`
}

// CriticalClause is a playbook-authored clause requirement: a title to
// match, plus phrases that must be present once matched, and red flags
// that, if present, indicate a problem.
type CriticalClause struct {
	Title        string   `json:"title"`
	MustInclude  []string `json:"mustInclude"`
	RedFlags     []string `json:"redFlags"`
}

// PlaybookChecklistItem is one authoritative checklist entry in a
// playbook.
type PlaybookChecklistItem struct {
	ID                 string            `json:"id"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	RequiredSignals    []string          `json:"requiredSignals"`
	EvidenceMapping    EvidenceMapping   `json:"evidenceMapping"`
	InsertionPolicyKey string            `json:"insertionPolicyKey"`
}

// EvidenceMapping narrows candidate clauses for a checklist item. At
// least one of the three fields is expected to be non-empty.
type EvidenceMapping struct {
	ClauseIDs []string `json:"clauseIds,omitempty"`
	Headings  []string `json:"headings,omitempty"`
	Topics    []string `json:"topics,omitempty"`
}

// Playbook is a fixed, authored configuration for one contract type.
type Playbook struct {
	Key             string                  `json:"key"`
	DisplayName     string                  `json:"displayName"`
	Description     string                  `json:"description"`
	ClauseAnchors   []ClauseAnchor          `json:"clauseAnchors"`
	CriticalClauses []CriticalClause        `json:"criticalClauses"`
	Checklist       []PlaybookChecklistItem `json:"checklist"`
}

// ClauseAnchor is one heading a contract of this playbook's type is
// expected to contain, used for coverage scoring. Optional anchors
// (wrapped in "(if ...)" or tagged as conditional) count toward the
// report but not toward the coverage denominator.
type ClauseAnchor struct {
	Heading  string `json:"heading"`
	Optional bool   `json:"optional"`
}

// ChecklistCriterion is the computed result of evaluating one playbook
// checklist item against a contract's clauses.
type ChecklistCriterion struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Status          Status   `json:"status"`
	Met             bool     `json:"met"`
	Evidence        string   `json:"evidence"`
	ClauseID        string   `json:"clauseId,omitempty"`
	Heading         string   `json:"heading,omitempty"`
	LocationHint    string   `json:"locationHint,omitempty"`
	RequiredSignals []string `json:"requiredSignals"`
	MatchedSignals  []string `json:"matchedSignals"`
	MissingSignals  []string `json:"missingSignals"`
	InsertionPolicyKey string `json:"insertionPolicyKey"`
	Diagnostic      string   `json:"diagnostic,omitempty"`
}

// ClauseReference pins a claim to a literal excerpt of a specific
// clause.
type ClauseReference struct {
	ClauseID     string `json:"clauseId"`
	Heading      string `json:"heading,omitempty"`
	Excerpt      string `json:"excerpt"`
	LocationHint string `json:"locationHint,omitempty"`
}

// Issue is a finding bound to a clause and an in-document excerpt.
type Issue struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Severity        Severity        `json:"severity"`
	Recommendation  string          `json:"recommendation"`
	Rationale       string          `json:"rationale"`
	Tags            []string        `json:"tags,omitempty"`
	ClauseReference ClauseReference `json:"clauseReference"`

	// CriterionID is set once an issue has been aligned to (or
	// synthesized for) a checklist criterion; empty for an incoming
	// candidate issue that was not aligned.
	CriterionID string `json:"criterionId,omitempty"`
}

// ProposedEdit is an edit pinned to a verifiable anchor in the source
// text.
type ProposedEdit struct {
	ID           string `json:"id"`
	ClauseID     string `json:"clauseId"`
	AnchorText   string `json:"anchorText"`
	ProposedText string `json:"proposedText"`
	Intent       Intent `json:"intent"`
	Rationale    string `json:"rationale,omitempty"`

	// DriftAlert is set when assessEditSemanticDrift found the proposed
	// text too dissimilar from the clause it replaces.
	DriftAlert string `json:"driftAlert,omitempty"`
}
