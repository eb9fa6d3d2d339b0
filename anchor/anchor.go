// Package anchor resolves an insertion-policy directive into a
// concrete, verifiable anchor in a contract's text, and scores a
// contract's coverage of a playbook's clause anchors and critical
// clauses.
package anchor

import (
	"math"
	"strings"

	"github.com/brunobiangulo/contractreview/normalize"
)

// Clause is the minimal shape anchor needs from a contract clause.
type Clause struct {
	ClauseID     string
	Title        string
	OriginalText string
}

// Mode is the insertion-policy directive kind.
type Mode string

const (
	ModeAfter  Mode = "after"
	ModeBefore Mode = "before"
	ModeEnd    Mode = "end"
)

// ParsePolicy splits an insertionPolicyKey of the form
// "after_heading:A|B|C", "before_heading:A|B|C", or "end_of_document"
// into a mode and its pipe-separated heading alternatives.
func ParsePolicy(policyKey string) (Mode, []string) {
	switch {
	case policyKey == "end_of_document":
		return ModeEnd, nil
	case strings.HasPrefix(policyKey, "after_heading:"):
		return ModeAfter, strings.Split(strings.TrimPrefix(policyKey, "after_heading:"), "|")
	case strings.HasPrefix(policyKey, "before_heading:"):
		return ModeBefore, strings.Split(strings.TrimPrefix(policyKey, "before_heading:"), "|")
	default:
		return ModeEnd, nil
	}
}

// Point is a resolved insertion point: the anchor text and the clause
// it belongs to. A zero Point (empty AnchorText) means no anchor could
// be resolved; the caller treats the edit as an append-at-end
// directive.
type Point struct {
	AnchorText string
	ClauseID   string
}

// Resolved reports whether a usable anchor was found.
func (p Point) Resolved() bool { return p.AnchorText != "" }

// SelectInsertionPoint implements selectInsertionPoint (spec.md §4.F):
// for end_of_document, the last clause's text; for after/before,
// the first clause (in clause-list order) whose title matches any
// listed heading alternative (tried in the order given) and whose
// text is an exact substring of content. Falls back through heading
// alternatives, then to an empty anchor.
func SelectInsertionPoint(content string, clauses []Clause, policyKey string) Point {
	mode, headings := ParsePolicy(policyKey)

	if mode == ModeEnd {
		if len(clauses) == 0 {
			return Point{}
		}
		last := clauses[len(clauses)-1]
		return Point{AnchorText: last.OriginalText, ClauseID: last.ClauseID}
	}

	for _, heading := range headings {
		normHeading := normalize.NormalizeForMatch(heading)
		if normHeading == "" {
			continue
		}
		for _, c := range clauses {
			normTitle := normalize.NormalizeForMatch(c.Title)
			if normTitle == "" {
				continue
			}
			if !strings.Contains(normTitle, normHeading) && !strings.Contains(normHeading, normTitle) {
				continue
			}
			if c.OriginalText != "" && strings.Contains(content, c.OriginalText) {
				return Point{AnchorText: c.OriginalText, ClauseID: c.ClauseID}
			}
		}
	}

	return Point{}
}

// CriticalClause is a playbook-authored clause requirement.
type CriticalClause struct {
	Title       string
	MustInclude []string
}

// AnchorSpec is one playbook clause-anchor heading expectation.
type AnchorSpec struct {
	Heading  string
	Optional bool
}

// RequirementResult is the computed verdict for one critical clause or
// clause anchor.
type RequirementResult struct {
	Title    string
	Met      bool
	Evidence string
	Optional bool
}

// CoverageResult is the output of EvaluateCoverage.
type CoverageResult struct {
	Score                 float64
	CriticalClauseResults []RequirementResult
	ClauseAnchorResults   []RequirementResult
}

// FindRequirementMatch implements findRequirementMatch (spec.md §4.F).
// It first checks a small set of domain-specific preferences (keyed on
// "definition of", "compelled disclosure", and "no transfer of IP
// ownership"/"no implied license" in the requirement); when one applies,
// its clause is returned at once, ahead of any scoring. Otherwise it
// scores requirement against every clause's combined text, accepts the
// best clause at or above 0.18, and falls back to whole-content
// containment.
func FindRequirementMatch(requirement string, clauses []Clause, content string) (bool, string) {
	lowerReq := strings.ToLower(requirement)

	if strings.Contains(lowerReq, "definition of") {
		for _, c := range clauses {
			if strings.Contains(normalize.NormalizeForMatch(c.Title), "definition") {
				return true, c.Title
			}
		}
	}

	if strings.Contains(lowerReq, "compelled disclosure") {
		for _, c := range clauses {
			nt := normalize.NormalizeForMatch(c.OriginalText)
			if strings.Contains(nt, "required by law") || strings.Contains(nt, "court order") || strings.Contains(nt, "protective order") {
				return true, c.Title
			}
		}
	}

	if strings.Contains(lowerReq, "no transfer of ip ownership") || strings.Contains(lowerReq, "no implied license") {
		for _, c := range clauses {
			nt := normalize.NormalizeForMatch(c.OriginalText)
			if strings.Contains(nt, "no license") || strings.Contains(nt, "not granted or implied") {
				return true, c.Title
			}
		}
	}

	bestScore := -1.0
	bestIdx := -1
	for i, c := range clauses {
		combined := c.Title + " " + c.OriginalText
		sim := normalize.ScoreTextSimilarity(requirement, combined)
		if sim.Score > bestScore {
			bestScore = sim.Score
			bestIdx = i
		}
	}
	if bestIdx >= 0 && bestScore >= 0.18 {
		return true, clauses[bestIdx].Title
	}

	normReq := normalize.NormalizeForMatch(requirement)
	if normReq != "" && strings.Contains(normalize.NormalizeForMatch(content), normReq) {
		return true, "Contract text"
	}

	return false, ""
}

// isOptionalHeading reports whether a clause-anchor heading is
// conditional and therefore excluded from the coverage denominator
// (spec.md §4.F).
func isOptionalHeading(heading string) bool {
	lower := strings.ToLower(heading)
	return strings.Contains(lower, "(if") ||
		strings.Contains(lower, "remedies / injunctive relief") ||
		strings.Contains(lower, "export control / sanctions")
}

// EvaluateCoverage implements evaluatePlaybookCoverageFromContent
// (spec.md §4.F): each critical clause is met iff its title matched
// and every mustInclude phrase also matched; each clause anchor is
// evaluated the same way; optional anchors are reported but excluded
// from the score denominator.
func EvaluateCoverage(content string, clauses []Clause, critical []CriticalClause, anchors []AnchorSpec) CoverageResult {
	result := CoverageResult{}

	metCount, total := 0, 0

	for _, cc := range critical {
		matched, ev := FindRequirementMatch(cc.Title, clauses, content)
		met := matched
		if met {
			for _, must := range cc.MustInclude {
				mustMatched, _ := FindRequirementMatch(must, clauses, content)
				if !mustMatched {
					met = false
					break
				}
			}
		}
		result.CriticalClauseResults = append(result.CriticalClauseResults, RequirementResult{
			Title: cc.Title, Met: met, Evidence: ev,
		})
		total++
		if met {
			metCount++
		}
	}

	for _, a := range anchors {
		matched, ev := FindRequirementMatch(a.Heading, clauses, content)
		optional := a.Optional || isOptionalHeading(a.Heading)
		result.ClauseAnchorResults = append(result.ClauseAnchorResults, RequirementResult{
			Title: a.Heading, Met: matched, Evidence: ev, Optional: optional,
		})
		if optional {
			continue
		}
		total++
		if matched {
			metCount++
		}
	}

	if strings.TrimSpace(content) == "" || total == 0 {
		result.Score = 0
		return result
	}

	score := float64(metCount) / float64(total)
	if score < 0 {
		score = 0
	}
	result.Score = math.Round(score*100) / 100
	return result
}
