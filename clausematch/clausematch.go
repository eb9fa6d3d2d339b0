// Package clausematch resolves a reference to a clause — by id, by
// heading, or by free text — to the best matching clause in an
// extracted clause list, ranked by the normalize package's similarity
// primitives.
package clausematch

import (
	"sort"
	"strings"

	"github.com/brunobiangulo/contractreview/normalize"
)

// Method identifies which stage of resolveClauseMatch produced a
// match.
type Method string

const (
	MethodID      Method = "id"
	MethodHeading Method = "heading"
	MethodText    Method = "text"
	MethodNGram   Method = "ngram"
	MethodNone    Method = "none"
)

// methodPriority orders methods for tie-breaking: id beats heading
// beats text beats ngram.
var methodPriority = map[Method]int{
	MethodID:      4,
	MethodHeading: 3,
	MethodText:    2,
	MethodNGram:   1,
	MethodNone:    0,
}

// Clause is the minimal shape clausematch needs from a contract clause.
// The root package's Clause type satisfies this by field identity; it
// is declared locally so this package has no dependency on the root
// package (avoiding an import cycle, since the root package depends on
// clausematch).
type Clause struct {
	ClauseID       string
	Title          string
	OriginalText   string
	NormalizedText string
}

// Reference is the caller-supplied hint used to locate a clause:
// a clause id, a heading, and/or free text (an excerpt or fallback
// description). Any subset may be empty.
type Reference struct {
	ClauseID     string
	Heading      string
	Excerpt      string
	FallbackText string
}

// Candidate is one ranked clause in a Match's diagnostic candidate
// list.
type Candidate struct {
	ClauseID string
	Score    float64
	Method   Method
}

// Match is the result of resolveClauseMatch: the winning clause index
// (-1 if none), the confidence score, the method that won, and up to
// three candidates for diagnostics.
type Match struct {
	ClauseIndex int
	Confidence  float64
	Method      Method
	Candidates  []Candidate
}

// Matched reports whether a clause was resolved.
func (m Match) Matched() bool { return m.ClauseIndex >= 0 }

// Resolve implements resolveClauseMatch (spec.md §4.B): exact id match,
// then heading ranking, then text ranking, merged by clauseId keeping
// the higher score, then thresholded.
func Resolve(ref Reference, clauses []Clause) Match {
	none := Match{ClauseIndex: -1, Method: MethodNone}

	if len(clauses) == 0 {
		return none
	}

	if id := normalize.NormalizeForMatch(ref.ClauseID); id != "" {
		for i, c := range clauses {
			if normalize.NormalizeForMatch(c.ClauseID) == id {
				return Match{
					ClauseIndex: i,
					Confidence:  1,
					Method:      MethodID,
					Candidates:  []Candidate{{ClauseID: c.ClauseID, Score: 1, Method: MethodID}},
				}
			}
		}
	}

	scores := make(map[int]Candidate, len(clauses))

	if strings.TrimSpace(ref.Heading) != "" {
		for i, c := range clauses {
			sim := normalize.ScoreTextSimilarity(ref.Heading, c.Title)
			if sim.Score <= 0 {
				continue
			}
			method := MethodHeading
			cand := Candidate{ClauseID: c.ClauseID, Score: sim.Score, Method: method}
			if best, ok := scores[i]; !ok || cand.Score > best.Score {
				scores[i] = cand
			}
		}
	}

	query := strings.TrimSpace(ref.Excerpt)
	if query == "" {
		query = strings.TrimSpace(ref.FallbackText)
	}
	if query != "" {
		for i, c := range clauses {
			combined := c.Title + " " + c.OriginalText + " " + c.NormalizedText
			sim := normalize.ScoreTextSimilarity(query, combined)
			if sim.Score <= 0 {
				continue
			}
			method := MethodText
			if sim.Method == normalize.MethodNGram {
				method = MethodNGram
			}
			cand := Candidate{ClauseID: c.ClauseID, Score: sim.Score, Method: method}
			if best, ok := scores[i]; !ok || cand.Score > best.Score {
				scores[i] = cand
			}
		}
	}

	if len(scores) == 0 {
		return none
	}

	indexed := make([]int, 0, len(scores))
	for i := range scores {
		indexed = append(indexed, i)
	}
	sort.Slice(indexed, func(a, b int) bool {
		ca, cb := scores[indexed[a]], scores[indexed[b]]
		if ca.Score != cb.Score {
			return ca.Score > cb.Score
		}
		if methodPriority[ca.Method] != methodPriority[cb.Method] {
			return methodPriority[ca.Method] > methodPriority[cb.Method]
		}
		return indexed[a] < indexed[b]
	})

	top := scores[indexed[0]]
	threshold := 0.18
	if top.Method == MethodHeading {
		threshold = 0.30
	}

	if top.Score < threshold {
		headingReachesStrongThreshold := false
		for _, i := range indexed {
			if scores[i].Method == MethodHeading && scores[i].Score >= 0.30 {
				headingReachesStrongThreshold = true
				break
			}
		}
		if !headingReachesStrongThreshold {
			return none
		}
	}

	limit := len(indexed)
	if limit > 3 {
		limit = 3
	}
	candidates := make([]Candidate, 0, limit)
	for _, i := range indexed[:limit] {
		candidates = append(candidates, scores[i])
	}

	return Match{
		ClauseIndex: indexed[0],
		Confidence:  top.Score,
		Method:      top.Method,
		Candidates:  candidates,
	}
}
