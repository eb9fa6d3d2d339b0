// Package align aligns an upstream model's candidate issues and
// proposed edits to a contract's checklist criteria, synthesizes
// issues and edits for criteria the candidates leave uncovered, binds
// every edit to a verifiable anchor, detects semantic drift in
// replace edits, and deduplicates the result.
package align

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/brunobiangulo/contractreview/anchor"
	"github.com/brunobiangulo/contractreview/checklist"
	"github.com/brunobiangulo/contractreview/clausematch"
	"github.com/brunobiangulo/contractreview/evidence"
	"github.com/brunobiangulo/contractreview/normalize"
)

// Severity mirrors the root package's closed severity enum.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

var severityRank = map[Severity]int{
	SeverityCritical: 4,
	SeverityHigh:     3,
	SeverityMedium:   2,
	SeverityLow:      1,
}

// Intent mirrors the root package's closed proposed-edit intent enum.
type Intent string

const (
	IntentReplace Intent = "replace"
	IntentInsert  Intent = "insert"
)

// ClauseReference pins a claim to a literal excerpt of a clause.
type ClauseReference struct {
	ClauseID     string
	Heading      string
	Excerpt      string
	LocationHint string
}

// Issue is a finding bound to a clause and an in-document excerpt.
type Issue struct {
	ID              string
	Title           string
	Severity        Severity
	Recommendation  string
	Rationale       string
	Tags            []string
	ClauseReference ClauseReference
	CriterionID     string
}

// Edit is a proposed edit pinned to an anchor in the source text.
type Edit struct {
	ID           string
	ClauseID     string
	AnchorText   string
	ProposedText string
	Intent       Intent
	Rationale    string
	DriftAlert   string
}

// Options carries the thresholds align needs from the root package's
// Config, so this package has no dependency on it (avoiding a cycle).
type Options struct {
	IssueAlignMinScore      float64
	DriftMinSimilarity      float64
	IssueDedupMinSimilarity float64
	EditDedupMinSimilarity  float64
	EditAnchorSentenceMin   int
	EditAnchorSentenceMax   int
}

// clauseText returns the clause's combined matchable text.
func clauseText(c evidence.Clause) string {
	return c.Title + " " + c.OriginalText + " " + c.NormalizedText
}

func criterionText(c checklist.Criterion) string {
	return strings.Join(append([]string{c.Title, c.Description}, c.RequiredSignals...), " ")
}

// scoreIssueAgainstCriterion implements the issue alignment scoring
// rule of spec.md §4.E: signalHits plus a token-overlap ratio, with
// signalHits only added (not just tie-breaking) when positive.
func scoreIssueAgainstCriterion(issue Issue, criterion checklist.Criterion) float64 {
	issueText := issue.Title + " " + issue.Recommendation + " " + issue.Rationale
	normIssue := normalize.NormalizeForMatch(issueText)

	signalHits := 0
	for _, sig := range criterion.RequiredSignals {
		if strings.Contains(normIssue, normalize.NormalizeForMatch(sig)) {
			signalHits++
		}
	}

	issueTokens := normalize.TokenSet(issueText)
	criterionTokens := normalize.TokenSet(criterionText(criterion))

	overlap := 0
	for tok := range issueTokens {
		if criterionTokens[tok] {
			overlap++
		}
	}
	tokenScore := 0.0
	if len(criterionTokens) > 0 {
		tokenScore = float64(overlap) / float64(len(criterionTokens))
	}

	if signalHits > 0 {
		return tokenScore + float64(signalHits)
	}
	return tokenScore
}

// AlignIssues implements the issue-alignment half of spec.md §4.E. It
// returns the aligned/rewritten candidate issues (in input order) and
// the set of criterion ids an aligned issue now covers.
func AlignIssues(candidates []Issue, criteria []checklist.Criterion, idx *evidence.Index, opts Options) ([]Issue, map[string]bool) {
	aligned := make([]Issue, len(candidates))
	covered := make(map[string]bool)

	for i, issue := range candidates {
		best := -1.0
		bestIdx := -1
		for ci, criterion := range criteria {
			score := scoreIssueAgainstCriterion(issue, criterion)
			if score > best {
				best = score
				bestIdx = ci
			}
		}

		if bestIdx >= 0 && best >= opts.IssueAlignMinScore {
			criterion := criteria[bestIdx]
			issue.CriterionID = criterion.ID
			issue.ClauseReference = ClauseReference{
				ClauseID: criterion.ClauseID,
				Heading:  criterion.Heading,
				Excerpt:  criterion.Evidence,
			}
			covered[criterion.ID] = true
		} else {
			issue = enforceIssueClauseReference(issue, idx)
		}

		aligned[i] = issue
	}

	return aligned, covered
}

// enforceIssueClauseReference implements spec.md §4.E's recovery path
// for an issue that did not align to any criterion: if its stated
// clauseId resolves to a real clause, rewrite the excerpt from that
// clause's text; otherwise downgrade the excerpt to the missing-
// evidence marker.
func enforceIssueClauseReference(issue Issue, idx *evidence.Index) Issue {
	clause, ok := idx.ClauseByID(issue.ClauseReference.ClauseID)
	if !ok {
		issue.ClauseReference.Excerpt = evidence.NotPresent
		return issue
	}

	excerpt := issue.ClauseReference.Excerpt
	if excerpt == "" || !strings.Contains(collapseWhitespace(clause.OriginalText), collapseWhitespace(excerpt)) {
		excerpt = evidence.BuildExcerpt(clause.OriginalText, excerpt, 320)
	}

	issue.ClauseReference = ClauseReference{
		ClauseID: clause.ClauseID,
		Heading:  clause.Title,
		Excerpt:  excerpt,
	}
	return issue
}

// SynthesizeIssues implements spec.md §4.E issue synthesis: one issue
// per criterion whose status is not met and that no aligned issue
// covers, in criteria order.
func SynthesizeIssues(criteria []checklist.Criterion, covered map[string]bool) []Issue {
	var out []Issue
	for _, c := range criteria {
		if c.Met || covered[c.ID] {
			continue
		}

		severity := SeverityMedium
		if c.Status == evidence.StatusMissing {
			severity = SeverityHigh
		}

		out = append(out, Issue{
			ID:             "ISSUE_" + c.ID,
			Title:          c.Title,
			Severity:       severity,
			Recommendation: "Add or clarify: " + strings.Join(c.MissingSignals, "; ") + ".",
			Rationale:      fmt.Sprintf("Checklist %s requires %s.", c.ID, c.Title),
			CriterionID:    c.ID,
			ClauseReference: ClauseReference{
				ClauseID: c.ClauseID,
				Heading:  c.Heading,
				Excerpt:  c.Evidence,
			},
		})
	}
	return out
}

// ValidationFailure is the reason validateIssueClauseReference
// rejected an issue's clause reference.
type ValidationFailure string

const (
	FailureMissingClauseID      ValidationFailure = "missing-clause-id"
	FailureUnknownClauseID      ValidationFailure = "unknown-clause-id"
	FailureEmptyExcerpt         ValidationFailure = "empty-excerpt"
	FailureMissingMarkerInvalid ValidationFailure = "missing-marker-on-existing-clause"
	FailureExcerptNotFromClause ValidationFailure = "excerpt-not-from-clause"
)

// ValidateIssueClauseReference implements validateIssueClauseReference
// (spec.md §4.E).
func ValidateIssueClauseReference(ref ClauseReference, idx *evidence.Index) (bool, ValidationFailure) {
	if strings.TrimSpace(ref.ClauseID) == "" {
		if evidence.IsMissingEvidenceMarker(ref.Excerpt) {
			return true, ""
		}
		return false, FailureMissingClauseID
	}

	clause, ok := idx.ClauseByID(ref.ClauseID)
	if !ok {
		if evidence.IsMissingEvidenceMarker(ref.Excerpt) {
			return true, ""
		}
		return false, FailureUnknownClauseID
	}

	if strings.TrimSpace(ref.Excerpt) == "" {
		return false, FailureEmptyExcerpt
	}

	if evidence.IsMissingEvidenceMarker(ref.Excerpt) {
		return false, FailureMissingMarkerInvalid
	}

	if !strings.Contains(collapseWhitespace(clause.OriginalText), collapseWhitespace(ref.Excerpt)) {
		return false, FailureExcerptNotFromClause
	}

	return true, ""
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// BindEdits implements spec.md §4.E edit binding: resolve each
// candidate edit's clauseId, in order of preference, to a real clause.
func BindEdits(candidates []Edit, criteria []checklist.Criterion, idx *evidence.Index) []Edit {
	bound := make([]Edit, len(candidates))

	for i, edit := range candidates {
		if _, ok := idx.ClauseByID(edit.ClauseID); ok {
			bound[i] = edit
			continue
		}

		query := edit.AnchorText + " " + edit.ProposedText
		normQuery := normalize.NormalizeForMatch(query)

		bestScore := 0
		bestClauseID := ""
		for _, c := range criteria {
			hits := 0
			for _, sig := range c.RequiredSignals {
				if strings.Contains(normQuery, normalize.NormalizeForMatch(sig)) {
					hits++
				}
			}
			if hits > bestScore && c.ClauseID != "" {
				bestScore = hits
				bestClauseID = c.ClauseID
			}
		}

		if bestClauseID != "" {
			edit.ClauseID = bestClauseID
			bound[i] = edit
			continue
		}

		clauses := make([]clausematch.Clause, 0, len(idx.Clauses()))
		for _, c := range idx.Clauses() {
			clauses = append(clauses, clausematch.Clause{
				ClauseID: c.ClauseID, Title: c.Title,
				OriginalText: c.OriginalText, NormalizedText: c.NormalizedText,
			})
		}
		match := clausematch.Resolve(clausematch.Reference{FallbackText: edit.AnchorText}, clauses)
		if match.Matched() {
			edit.ClauseID = idx.Clauses()[match.ClauseIndex].ClauseID
		} else {
			edit.ClauseID = fmt.Sprintf("proposed-edit-%d", i)
		}

		bound[i] = edit
	}

	return bound
}

var sentenceSplit = regexp.MustCompile(`(?s)[^.!?]+[.!?]`)

// sentencesInRange splits text into sentences and returns those whose
// rune length is within [min, max].
func sentencesInRange(text string, min, max int) []string {
	var out []string
	for _, s := range sentenceSplit.FindAllString(text, -1) {
		s = strings.TrimSpace(s)
		n := len([]rune(s))
		if n >= min && n <= max {
			out = append(out, s)
		}
	}
	return out
}

// SynthesizeEdits implements spec.md §4.E edit synthesis: one edit per
// criterion not already covered by a bound candidate edit.
func SynthesizeEdits(criteria []checklist.Criterion, boundEdits []Edit, idx *evidence.Index, opts Options) []Edit {
	coveredByExisting := make(map[string]Edit)
	for _, e := range boundEdits {
		for _, c := range criteria {
			if c.ClauseID != "" && c.ClauseID == e.ClauseID && coveredByExisting[c.ID].ID == "" {
				coveredByExisting[c.ID] = e
			}
		}
	}

	var out []Edit
	for _, c := range criteria {
		if c.Met {
			continue
		}
		if _, ok := coveredByExisting[c.ID]; ok {
			continue
		}

		intent := IntentReplace
		if c.ClauseID == "" && c.Status == evidence.StatusMissing {
			intent = IntentInsert
		}

		editID := "EDIT_" + c.ID
		proposedText := synthesizedProposedText(c)

		if intent == IntentInsert {
			clauses := make([]anchor.Clause, 0, len(idx.Clauses()))
			for _, cl := range idx.Clauses() {
				clauses = append(clauses, anchor.Clause{ClauseID: cl.ClauseID, Title: cl.Title, OriginalText: cl.OriginalText})
			}
			point := anchor.SelectInsertionPoint(idx.Content, clauses, c.InsertionPolicyKey)
			out = append(out, Edit{
				ID:           editID,
				ClauseID:     point.ClauseID,
				AnchorText:   point.AnchorText,
				ProposedText: proposedText,
				Intent:       IntentInsert,
				Rationale:    fmt.Sprintf("Checklist %s requires %s.", c.ID, c.Title),
			})
			continue
		}

		anchorText := synthesizeReplaceAnchor(c, idx, opts)
		if anchorText == "" {
			// anchor-resolution recovery (spec.md §7): fall back to insert.
			clauses := make([]anchor.Clause, 0, len(idx.Clauses()))
			for _, cl := range idx.Clauses() {
				clauses = append(clauses, anchor.Clause{ClauseID: cl.ClauseID, Title: cl.Title, OriginalText: cl.OriginalText})
			}
			point := anchor.SelectInsertionPoint(idx.Content, clauses, c.InsertionPolicyKey)
			if !point.Resolved() {
				continue
			}
			out = append(out, Edit{
				ID:           editID,
				ClauseID:     point.ClauseID,
				AnchorText:   point.AnchorText,
				ProposedText: proposedText,
				Intent:       IntentInsert,
				Rationale:    fmt.Sprintf("Checklist %s requires %s.", c.ID, c.Title),
			})
			continue
		}

		out = append(out, Edit{
			ID:           editID,
			ClauseID:     c.ClauseID,
			AnchorText:   anchorText,
			ProposedText: proposedText,
			Intent:       IntentReplace,
			Rationale:    fmt.Sprintf("Checklist %s requires %s.", c.ID, c.Title),
		})
	}

	return out
}

// synthesizeReplaceAnchor implements the anchorText fallback ladder of
// spec.md §4.E for a criterion that has no bound edit: heading, first
// sentence within the opts.EditAnchorSentenceMin/Max length window,
// first 200 chars, evidence — the first that is an exact substring of
// content wins.
func synthesizeReplaceAnchor(c checklist.Criterion, idx *evidence.Index, opts Options) string {
	clause, ok := idx.ClauseByID(c.ClauseID)
	if !ok {
		return ""
	}

	candidates := []string{}
	if c.Heading != "" {
		candidates = append(candidates, c.Heading)
	}
	candidates = append(candidates, sentencesInRange(clause.OriginalText, opts.EditAnchorSentenceMin, opts.EditAnchorSentenceMax)...)
	if n := len([]rune(clause.OriginalText)); n > 0 {
		end := 200
		if end > n {
			end = n
		}
		candidates = append(candidates, string([]rune(clause.OriginalText)[:end]))
	}
	candidates = append(candidates, c.Evidence)

	for _, cand := range candidates {
		if cand != "" && strings.Contains(idx.Content, cand) {
			return cand
		}
	}
	return ""
}

// synthesizedProposedText builds the fallback proposed text for a
// synthesized edit, then applies ensureDeltaSignals so the text is
// guaranteed to contain every required signal.
func synthesizedProposedText(c checklist.Criterion) string {
	base := fmt.Sprintf("%s. The parties shall address: %s.", c.Title, strings.Join(c.MissingSignals, "; "))
	return EnsureDeltaSignals(base, c.RequiredSignals)
}

// EnsureDeltaSignals implements ensureDeltaSignals (spec.md §4.E): any
// required signal whose normalized form is absent from text is
// appended as a single trailing clause.
func EnsureDeltaSignals(text string, requiredSignals []string) string {
	normText := normalize.NormalizeForMatch(text)

	var missing []string
	for _, sig := range requiredSignals {
		plain := sig
		if p, isRegex := regexSignalLiteral(sig); isRegex {
			plain = p
		}
		if plain == "" {
			continue
		}
		if !strings.Contains(normText, normalize.NormalizeForMatch(plain)) {
			missing = append(missing, plain)
		}
	}

	if len(missing) == 0 {
		return text
	}
	return text + "\n\nInclude: " + strings.Join(missing, ", ") + "."
}

func regexSignalLiteral(signal string) (string, bool) {
	if strings.HasPrefix(signal, "re:") {
		return strings.TrimPrefix(signal, "re:"), true
	}
	if len(signal) > 2 && strings.HasPrefix(signal, "/") && strings.HasSuffix(signal, "/") {
		return signal[1 : len(signal)-1], true
	}
	return signal, false
}

// AssessDrift implements assessEditSemanticDrift (spec.md §4.E): only
// for replace edits, flags a drift alert when the proposed text is too
// dissimilar from the clause it replaces.
func AssessDrift(edit Edit, idx *evidence.Index, minSimilarity float64) Edit {
	if edit.Intent != IntentReplace {
		return edit
	}
	clause, ok := idx.ClauseByID(edit.ClauseID)
	if !ok {
		return edit
	}

	score := normalize.ScoreTextSimilarity(clause.OriginalText, edit.ProposedText).Score
	if score < minSimilarity {
		edit.DriftAlert = fmt.Sprintf("edit %s: proposed text diverges from clause %s (similarity %.2f)", edit.ID, clause.ClauseID, score)
	}
	return edit
}

// DedupIssues implements the issue-deduplication rule of spec.md §4.E:
// collapse issues sharing a bound clauseId with token-Jaccard
// similarity of title+recommendation >= threshold, keeping the higher
// severity (ties keep the first-seen).
func DedupIssues(issues []Issue, threshold float64) []Issue {
	kept := make([]Issue, 0, len(issues))

	for _, issue := range issues {
		replaced := false
		for i, existing := range kept {
			if existing.ClauseReference.ClauseID == "" || existing.ClauseReference.ClauseID != issue.ClauseReference.ClauseID {
				continue
			}
			sim := normalize.TokenJaccard(
				existing.Title+" "+existing.Recommendation,
				issue.Title+" "+issue.Recommendation,
			)
			if sim < threshold {
				continue
			}
			if severityRank[issue.Severity] > severityRank[existing.Severity] {
				kept[i] = issue
			}
			replaced = true
			break
		}
		if !replaced {
			kept = append(kept, issue)
		}
	}

	return kept
}

// DedupEdits implements the edit-deduplication rule of spec.md §4.E:
// collapse edits sharing clauseId + intent with token-Jaccard of
// normalized proposedText >= threshold, keeping the longest rationale
// (ties keep the earliest id).
func DedupEdits(edits []Edit, threshold float64) []Edit {
	kept := make([]Edit, 0, len(edits))

	for _, edit := range edits {
		replaced := false
		for i, existing := range kept {
			if existing.ClauseID != edit.ClauseID || existing.Intent != edit.Intent {
				continue
			}
			sim := normalize.TokenJaccard(existing.ProposedText, edit.ProposedText)
			if sim < threshold {
				continue
			}
			replaced = true
			if len(edit.Rationale) > len(existing.Rationale) {
				kept[i] = edit
			} else if len(edit.Rationale) == len(existing.Rationale) && edit.ID < existing.ID {
				kept[i] = edit
			}
			break
		}
		if !replaced {
			kept = append(kept, edit)
		}
	}

	return kept
}

var placeholderPattern = regexp.MustCompile(`(?i)\[\s*insert[^\]]*\]`)

// FilterPlaceholderEdits drops edits whose proposedText is a bracketed
// placeholder, or whose anchorText is a missing-evidence marker on an
// insert with no added signals (spec.md §4.E).
func FilterPlaceholderEdits(edits []Edit) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if placeholderPattern.MatchString(e.ProposedText) {
			continue
		}
		if e.Intent == IntentInsert && evidence.IsMissingEvidenceMarker(e.AnchorText) && !strings.Contains(e.ProposedText, "Include:") {
			continue
		}
		out = append(out, e)
	}
	return out
}

// FilterRedundantInserts implements spec.md §4.E's redundant-insert
// filter: drop an insert edit if a clause already exists whose
// normalized text contains every required signal of the criterion the
// edit targets.
func FilterRedundantInserts(edits []Edit, criteriaByID map[string]checklist.Criterion, clauses []evidence.Clause) []Edit {
	out := make([]Edit, 0, len(edits))
	for _, e := range edits {
		if e.Intent != IntentInsert {
			out = append(out, e)
			continue
		}

		criterionID := strings.TrimPrefix(e.ID, "EDIT_")
		c, ok := criteriaByID[criterionID]
		if !ok || len(c.RequiredSignals) == 0 {
			out = append(out, e)
			continue
		}

		redundant := false
		for _, clause := range clauses {
			normText := normalize.NormalizeForMatch(clause.OriginalText)
			allPresent := true
			for _, sig := range c.RequiredSignals {
				plain, _ := regexSignalLiteral(sig)
				if plain == "" || !strings.Contains(normText, normalize.NormalizeForMatch(plain)) {
					allPresent = false
					break
				}
			}
			if allPresent {
				redundant = true
				break
			}
		}
		if redundant {
			continue
		}
		out = append(out, e)
	}
	return out
}

// SortIssuesDeterministic orders issues by severity desc, then id asc.
func SortIssuesDeterministic(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if severityRank[issues[i].Severity] != severityRank[issues[j].Severity] {
			return severityRank[issues[i].Severity] > severityRank[issues[j].Severity]
		}
		return issues[i].ID < issues[j].ID
	})
}
