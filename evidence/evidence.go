// Package evidence builds an index over a contract's clauses and
// resolves playbook checklist requirements against it, producing
// verifiable excerpts.
package evidence

import (
	"regexp"
	"strings"

	"github.com/brunobiangulo/contractreview/normalize"
)

// Clause is the minimal shape evidence needs from a contract clause.
type Clause struct {
	ClauseID       string
	Title          string
	OriginalText   string
	NormalizedText string
}

// Mapping narrows candidate clauses for a checklist item.
type Mapping struct {
	ClauseIDs []string
	Headings  []string
	Topics    []string
}

// Index is the computed evidence index over a contract (spec.md §3
// EvidenceIndex): a clauseId lookup, inverted heading and topic
// indexes, and the raw content the excerpts are verified against.
type Index struct {
	Content    string
	clauses    []Clause
	byClauseID map[string]int
	byHeading  map[string][]int
	byTopic    map[string][]int
}

// Build populates an Index from a clause list and the raw contract
// content (spec.md §4.C buildEvidenceIndex).
func Build(clauses []Clause, content string) *Index {
	idx := &Index{
		Content:    content,
		clauses:    clauses,
		byClauseID: make(map[string]int, len(clauses)),
		byHeading:  make(map[string][]int),
		byTopic:    make(map[string][]int),
	}

	for i, c := range clauses {
		idx.byClauseID[normalize.NormalizeForMatch(c.ClauseID)] = i

		heading := normalize.NormalizeForMatch(c.Title)
		if heading != "" {
			idx.byHeading[heading] = append(idx.byHeading[heading], i)
		}

		for _, tok := range normalize.TokenizeForMatch(c.Title) {
			idx.byTopic[tok] = append(idx.byTopic[tok], i)
		}
	}

	return idx
}

// Clauses returns the indexed clause list, in original order.
func (idx *Index) Clauses() []Clause { return idx.clauses }

// ClauseByID looks up a clause by its (normalized) clauseId.
func (idx *Index) ClauseByID(clauseID string) (Clause, bool) {
	i, ok := idx.byClauseID[normalize.NormalizeForMatch(clauseID)]
	if !ok {
		return Clause{}, false
	}
	return idx.clauses[i], true
}

// Ref is one candidate clause satisfying a checklist item's required
// signals, with the excerpt that will be reported as evidence.
type Ref struct {
	ClauseIndex    int
	MatchedSignals []string
	MissingSignals []string
	Excerpt        string
}

// Status is the verdict of resolving one checklist item's evidence.
type Status string

const (
	StatusMet       Status = "met"
	StatusAttention Status = "attention"
	StatusMissing   Status = "missing"
)

// Resolution is the result of Resolve for one checklist item.
type Resolution struct {
	Status         Status
	Evidence       string
	ClauseID       string
	Heading        string
	MatchedSignals []string
	MissingSignals []string
	Refs           []Ref
}

// NotPresent is the literal evidence string reported for a missing
// criterion.
const NotPresent = "Not present"

// candidateIndices gathers clause indices for a checklist item's
// evidence mapping, deduplicated, preserving first-seen order.
func (idx *Index) candidateIndices(mapping Mapping) []int {
	seen := make(map[int]bool)
	var order []int

	add := func(i int) {
		if !seen[i] {
			seen[i] = true
			order = append(order, i)
		}
	}

	for _, id := range mapping.ClauseIDs {
		if i, ok := idx.byClauseID[normalize.NormalizeForMatch(id)]; ok {
			add(i)
		}
	}

	for _, heading := range mapping.Headings {
		normHeading := normalize.NormalizeForMatch(heading)
		if normHeading == "" {
			continue
		}
		for i, c := range idx.clauses {
			normTitle := normalize.NormalizeForMatch(c.Title)
			if normTitle == "" {
				continue
			}
			if strings.Contains(normTitle, normHeading) || strings.Contains(normHeading, normTitle) {
				add(i)
			}
		}
	}

	for _, topic := range mapping.Topics {
		normTopic := normalize.NormalizeForMatch(topic)
		if normTopic == "" {
			continue
		}
		for i, c := range idx.clauses {
			normTitle := normalize.NormalizeForMatch(c.Title)
			normText := normalize.NormalizeForMatch(c.OriginalText)
			if strings.Contains(normTitle, normTopic) || strings.Contains(normText, normTopic) {
				add(i)
			}
		}
	}

	return order
}

// matchSignal reports whether a single required signal is present in
// text (spec.md §4.C step 2): "re:" and "/.../" prefixed signals are
// regexes, compiled once per call; anything else is literal
// normalized-substring containment. An invalid regex is treated as
// non-matching rather than propagating an error.
func matchSignal(signal, text string) bool {
	pattern, isRegex := regexSignalPattern(signal)
	if isRegex {
		re, err := regexp.Compile("(?i)" + pattern)
		if err != nil {
			return false
		}
		return re.MatchString(text)
	}
	return strings.Contains(normalize.NormalizeForMatch(text), normalize.NormalizeForMatch(signal))
}

func regexSignalPattern(signal string) (string, bool) {
	if strings.HasPrefix(signal, "re:") {
		return strings.TrimPrefix(signal, "re:"), true
	}
	if len(signal) > 2 && strings.HasPrefix(signal, "/") && strings.HasSuffix(signal, "/") {
		return signal[1 : len(signal)-1], true
	}
	return "", false
}

// signalsAgainst evaluates every required signal against a clause's
// original text, returning matched and missing signal lists in
// requiredSignals order.
func signalsAgainst(requiredSignals []string, clauseText string) (matched, missing []string) {
	for _, sig := range requiredSignals {
		if matchSignal(sig, clauseText) {
			matched = append(matched, sig)
		} else {
			missing = append(missing, sig)
		}
	}
	return matched, missing
}

// Resolve implements resolveEvidence (spec.md §4.C) for one checklist
// item's required signals and evidence mapping.
func (idx *Index) Resolve(requiredSignals []string, mapping Mapping, excerptMaxLength int) Resolution {
	candidates := idx.candidateIndices(mapping)

	refs := idx.buildRefs(candidates, requiredSignals, excerptMaxLength)

	if len(refs) == 0 && len(requiredSignals) > 0 {
		all := make([]int, len(idx.clauses))
		for i := range idx.clauses {
			all[i] = i
		}
		refs = idx.buildRefs(all, requiredSignals, excerptMaxLength)
	}

	if len(requiredSignals) == 0 {
		if len(refs) == 0 && len(candidates) > 0 {
			refs = idx.buildRefs(candidates, nil, excerptMaxLength)
		}
		if len(refs) == 0 {
			return Resolution{Status: StatusMissing, Evidence: NotPresent}
		}
		primary := refs[0]
		c := idx.clauses[primary.ClauseIndex]
		return Resolution{
			Status:   StatusMet,
			Evidence: primary.Excerpt,
			ClauseID: c.ClauseID,
			Heading:  c.Title,
			Refs:     refs,
		}
	}

	if len(refs) == 0 {
		return Resolution{
			Status:         StatusMissing,
			Evidence:       NotPresent,
			MissingSignals: requiredSignals,
		}
	}

	primary := refs[0]
	for _, r := range refs[1:] {
		if len(r.MatchedSignals) > len(primary.MatchedSignals) {
			primary = r
		}
	}

	c := idx.clauses[primary.ClauseIndex]
	status := StatusAttention
	if len(primary.MatchedSignals) == 0 {
		status = StatusMissing
	} else if len(primary.MissingSignals) == 0 {
		status = StatusMet
	}

	evidence := primary.Excerpt
	if status == StatusMissing {
		evidence = NotPresent
	}

	return Resolution{
		Status:         status,
		Evidence:       evidence,
		ClauseID:       c.ClauseID,
		Heading:        c.Title,
		MatchedSignals: primary.MatchedSignals,
		MissingSignals: primary.MissingSignals,
		Refs:           refs,
	}
}

// buildRefs builds an EvidenceRef per candidate clause that matches at
// least one required signal (or, when no signals are required, every
// candidate), in candidate order.
func (idx *Index) buildRefs(candidates []int, requiredSignals []string, excerptMaxLength int) []Ref {
	var refs []Ref
	for _, i := range candidates {
		c := idx.clauses[i]

		if len(requiredSignals) == 0 {
			refs = append(refs, Ref{
				ClauseIndex: i,
				Excerpt:     BuildExcerpt(c.OriginalText, "", excerptMaxLength),
			})
			continue
		}

		matched, missing := signalsAgainst(requiredSignals, c.OriginalText)
		if len(matched) == 0 {
			continue
		}

		anchor := matched[0]
		if p, isRegex := regexSignalPattern(anchor); isRegex {
			anchor = p
		}
		refs = append(refs, Ref{
			ClauseIndex:    i,
			MatchedSignals: matched,
			MissingSignals: missing,
			Excerpt:        BuildExcerpt(c.OriginalText, anchor, excerptMaxLength),
		})
	}
	return refs
}

// BuildExcerpt implements buildEvidenceExcerpt (spec.md §4.C): a
// substring of clauseText bounded to maxLength, windowed around the
// first occurrence of anchorText's leading 64 characters when the
// clause exceeds maxLength.
func BuildExcerpt(clauseText, anchorText string, maxLength int) string {
	runes := []rune(clauseText)
	if len(runes) <= maxLength {
		return clauseText
	}

	prefixLen := 64
	anchorRunes := []rune(anchorText)
	if len(anchorRunes) < prefixLen {
		prefixLen = len(anchorRunes)
	}

	if prefixLen > 0 {
		prefix := string(anchorRunes[:prefixLen])
		idxPos := strings.Index(
			normalize.NormalizeForMatch(clauseText),
			normalize.NormalizeForMatch(prefix),
		)
		if idxPos >= 0 {
			// idxPos is a byte offset into the normalized string; map it
			// back to an approximate rune offset into the original text
			// by counting runes of the un-normalized prefix up to idxPos.
			center := runeOffsetFromNormalizedByteOffset(clauseText, idxPos)
			start := center - maxLength*4/10
			if start < 0 {
				start = 0
			}
			end := start + maxLength
			if end > len(runes) {
				end = len(runes)
				start = end - maxLength
				if start < 0 {
					start = 0
				}
			}
			return string(runes[start:end])
		}
	}

	end := maxLength
	if end > len(runes) {
		end = len(runes)
	}
	return string(runes[:end])
}

// runeOffsetFromNormalizedByteOffset approximates the rune offset into
// original that corresponds to a byte offset into
// normalizeForMatch(original), by normalizing increasingly long
// prefixes of original until the normalized length reaches the target.
// Contract text is short enough per clause that this linear scan is
// cheap and keeps BuildExcerpt a pure function of its inputs.
func runeOffsetFromNormalizedByteOffset(original string, targetByteOffset int) int {
	runes := []rune(original)
	for i := range runes {
		normalized := normalize.NormalizeForMatch(string(runes[:i+1]))
		if len(normalized) >= targetByteOffset {
			return i
		}
	}
	return len(runes)
}

// missingEvidenceMarkers are substrings that admit the absence of
// evidence (spec.md §4.C isMissingEvidenceMarker).
var missingEvidenceMarkers = []string{
	"not present", "missing", "not found", "evidence not found",
}

// IsMissingEvidenceMarker reports whether s is an admission that no
// evidence was found, bypassing excerpt verification.
func IsMissingEvidenceMarker(s string) bool {
	lower := strings.ToLower(strings.TrimSpace(s))
	if lower == "" {
		return false
	}
	for _, marker := range missingEvidenceMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// MatchReason identifies why CheckMatch accepted or rejected an
// excerpt.
type MatchReason string

const (
	ReasonEmptyContent MatchReason = "empty-content"
	ReasonEmptyExcerpt MatchReason = "empty-excerpt"
	ReasonMissingMarker MatchReason = "missing-marker"
	ReasonExact         MatchReason = "exact"
	ReasonPrefix        MatchReason = "prefix"
	ReasonNGram         MatchReason = "ngram"
	ReasonNoMatch       MatchReason = "no-match"
)

// MatchResult is the result of CheckMatch / CheckMatchAgainstClause.
type MatchResult struct {
	Matched bool
	Reason  MatchReason
	Ratio   float64
}

// CheckMatch implements checkEvidenceMatch (spec.md §4.C): verifies an
// excerpt actually appears in content.
func CheckMatch(excerpt, content string) MatchResult {
	if strings.TrimSpace(content) == "" {
		return MatchResult{Matched: true, Reason: ReasonEmptyContent}
	}
	if strings.TrimSpace(excerpt) == "" {
		return MatchResult{Matched: false, Reason: ReasonEmptyExcerpt}
	}
	if IsMissingEvidenceMarker(excerpt) {
		return MatchResult{Matched: true, Reason: ReasonMissingMarker}
	}

	normExcerpt := normalize.NormalizeForMatch(excerpt)
	normContent := normalize.NormalizeForMatch(content)

	if strings.Contains(normContent, normExcerpt) {
		return MatchResult{Matched: true, Reason: ReasonExact}
	}

	excerptRunes := []rune(excerpt)
	if len(excerptRunes) > 40 {
		prefixLen := 220
		if prefixLen > len(excerptRunes) {
			prefixLen = len(excerptRunes)
		}
		prefix := normalize.NormalizeForMatch(string(excerptRunes[:prefixLen]))
		if prefix != "" && strings.Contains(normContent, prefix) {
			return MatchResult{Matched: true, Reason: ReasonPrefix}
		}
	}

	excerptGrams := normalize.FourGramSet(excerpt)
	contentGrams := normalize.FourGramSet(content)
	hits := 0
	for g := range excerptGrams {
		if contentGrams[g] {
			hits++
		}
	}
	ratio := 0.0
	if len(excerptGrams) > 0 {
		ratio = float64(hits) / float64(len(excerptGrams))
	}
	if ratio >= 0.45 {
		return MatchResult{Matched: true, Reason: ReasonNGram, Ratio: ratio}
	}

	return MatchResult{Matched: false, Reason: ReasonNoMatch, Ratio: ratio}
}

// CheckMatchAgainstClause is CheckMatch scoped to a single clause's
// text rather than the whole document (used by tests and diagnostics
// that need to rule out a false-positive cross-clause match).
func CheckMatchAgainstClause(excerpt, clauseText string) MatchResult {
	return CheckMatch(excerpt, clauseText)
}
