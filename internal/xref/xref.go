// Package xref builds a deterministic cross-reference graph over a
// contract's clauses: which clauses mention another schedule, exhibit,
// or numbered section, and whether that target actually exists; and
// which clause categories cluster together with no cross-references
// binding them to the rest of the contract. No model call is involved;
// every finding here is a string-matching diagnostic.
package xref

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brunobiangulo/contractreview/chunker"
	"github.com/brunobiangulo/contractreview/normalize"
)

// Clause is the minimal shape xref needs from a contract clause.
type Clause struct {
	ClauseID string
	Title    string
	Category string
	Text     string
}

// Reference is one detected mention of another part of the contract
// from within a clause.
type Reference struct {
	FromClauseID string
	Label        string
	Resolved     bool
	ToClauseID   string
}

// DetectReferences scans every clause's text for mentions of another
// schedule, exhibit, or numbered section (via chunker.DetectCrossReferences)
// and checks whether a clause with a matching title exists.
func DetectReferences(clauses []Clause) []Reference {
	var refs []Reference
	for _, c := range clauses {
		if !chunker.HasCrossReferences(c.Text) {
			continue
		}
		for _, cr := range chunker.DetectCrossReferences(c.Text) {
			toID, resolved := resolveLabel(cr.FullMatch, clauses)
			refs = append(refs, Reference{
				FromClauseID: c.ClauseID,
				Label:        strings.TrimSpace(cr.FullMatch),
				Resolved:     resolved,
				ToClauseID:   toID,
			})
		}
	}
	return refs
}

func resolveLabel(label string, clauses []Clause) (string, bool) {
	normLabel := normalize.NormalizeForMatch(label)
	for _, c := range clauses {
		normTitle := normalize.NormalizeForMatch(c.Title)
		if normTitle == "" {
			continue
		}
		if strings.Contains(normTitle, normLabel) || strings.Contains(normLabel, normTitle) {
			return c.ClauseID, true
		}
	}
	return "", false
}

// Community is a cluster of clauses sharing a category.
type Community struct {
	Category  string
	ClauseIDs []string
}

// BuildCommunities groups clauses by their (non-empty) category, in
// first-seen category order.
func BuildCommunities(clauses []Clause) []Community {
	order := []string{}
	byCategory := map[string][]string{}

	for _, c := range clauses {
		if c.Category == "" {
			continue
		}
		if _, seen := byCategory[c.Category]; !seen {
			order = append(order, c.Category)
		}
		byCategory[c.Category] = append(byCategory[c.Category], c.ClauseID)
	}

	communities := make([]Community, 0, len(order))
	for _, cat := range order {
		communities = append(communities, Community{Category: cat, ClauseIDs: byCategory[cat]})
	}
	return communities
}

// Insight is one diagnostic finding surfaced to the review report.
type Insight struct {
	Title  string
	Detail string
}

// DeviationInsights implements the "dangling reference" diagnostic:
// one insight per unresolved cross-reference.
func DeviationInsights(refs []Reference) []Insight {
	var out []Insight
	for _, r := range refs {
		if r.Resolved {
			continue
		}
		out = append(out, Insight{
			Title:  "Unresolved cross-reference",
			Detail: fmt.Sprintf("Clause %s references %s, which does not exist.", r.FromClauseID, r.Label),
		})
	}
	return out
}

// PlaybookInsights implements the "isolated cluster" diagnostic: a
// category whose clauses carry no resolved cross-reference, in either
// direction, to a clause of a different category is flagged as
// isolated, when at least one other category exists to be isolated
// from.
func PlaybookInsights(clauses []Clause, refs []Reference, communities []Community) []Insight {
	if len(communities) < 2 {
		return nil
	}

	categoryOf := make(map[string]string, len(clauses))
	for _, c := range clauses {
		categoryOf[c.ClauseID] = c.Category
	}

	connected := make(map[string]bool, len(communities))
	for _, r := range refs {
		if !r.Resolved {
			continue
		}
		from, to := categoryOf[r.FromClauseID], categoryOf[r.ToClauseID]
		if from == "" || to == "" || from == to {
			continue
		}
		connected[from] = true
		connected[to] = true
	}

	var out []Insight
	for _, comm := range communities {
		if connected[comm.Category] {
			continue
		}
		others := otherCategories(communities, comm.Category)
		out = append(out, Insight{
			Title:  "Isolated clause cluster",
			Detail: fmt.Sprintf("Clauses in category %q form an isolated cluster with no cross-references to %s.", comm.Category, strings.Join(others, ", ")),
		})
	}
	return out
}

func otherCategories(communities []Community, exclude string) []string {
	names := make([]string, 0, len(communities)-1)
	for _, c := range communities {
		if c.Category != exclude {
			names = append(names, c.Category)
		}
	}
	sort.Strings(names)
	return names
}

// SummarizeCommunity builds a short human-readable blurb for a
// cluster of clauses: the significant (non-stopword) terms shared
// across its clause titles, trimmed to a fixed length at a word
// boundary.
func SummarizeCommunity(comm Community, clauses []Clause) string {
	byID := make(map[string]Clause, len(clauses))
	for _, c := range clauses {
		byID[c.ClauseID] = c
	}

	termSeen := make(map[string]bool)
	var terms []string
	for _, id := range comm.ClauseIDs {
		c, ok := byID[id]
		if !ok {
			continue
		}
		for _, tok := range normalize.TokenizeForMatch(c.Title) {
			if !termSeen[tok] {
				termSeen[tok] = true
				terms = append(terms, tok)
			}
		}
	}

	return trimAtWordBoundary(strings.Join(terms, " "), 120)
}

// trimAtWordBoundary truncates s to at most maxLen runes, backing off
// to the preceding space so a summary never ends mid-word.
func trimAtWordBoundary(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return strings.TrimSpace(cut) + "..."
}
