// Package normalize implements the text canonicalization and similarity
// primitives shared by every other component of the review pipeline:
// normalized text, match tokens, token Jaccard, and character 4-gram
// Jaccard.
package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopWords are dropped from TokenizeForMatch. "not" is deliberately
// excluded from this set: negation changes the meaning of a clause and
// must survive tokenization (spec property: negation preservation).
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "for": true, "to": true,
	"of": true, "in": true, "a": true, "an": true, "by": true,
	"with": true, "on": true, "at": true, "as": true, "is": true,
	"are": true, "be": true, "this": true, "that": true, "from": true,
	"any": true, "all": true, "each": true, "per": true, "shall": true,
	"may": true, "must": true, "will": true,
}

// shortAbbreviations are kept despite being shorter than the general
// minimum token length because they carry domain meaning in contracts.
var shortAbbreviations = map[string]bool{
	"ip": true, "law": true, "term": true, "use": true,
	"nda": true, "dpa": true, "gdpr": true, "ci": true,
}

var (
	nonAlnumRun = regexp.MustCompile(`[^\p{L}\p{N}]+`)

	curlyQuoteReplacer = strings.NewReplacer(
		"‘", "'", "’", "'", "“", `"`, "”", `"`,
		"«", `"`, "»", `"`,
	)

	// stripCombining removes combining diacritical marks left behind by
	// NFKD decomposition, isolating the base letter.
	stripCombining = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// NormalizeForMatch canonicalizes s for matching: NFKD decomposition with
// diacritics stripped, curly quotes straightened, "§" expanded to
// " section ", any run of non-letter/non-digit characters collapsed to a
// single space, lowercased, and trimmed.
func NormalizeForMatch(s string) string {
	s = curlyQuoteReplacer.Replace(s)
	s = strings.ReplaceAll(s, "§", " section ")

	decomposed, _, err := transform.String(stripCombining, s)
	if err == nil {
		s = decomposed
	}

	s = nonAlnumRun.ReplaceAllString(s, " ")
	s = strings.ToLower(s)
	return strings.TrimSpace(s)
}

// TokenizeForMatch splits NormalizeForMatch(s) on whitespace, drops
// stoplist words, and keeps only tokens that are numeric, at least two
// characters, or a known short legal abbreviation.
func TokenizeForMatch(s string) []string {
	normalized := NormalizeForMatch(s)
	if normalized == "" {
		return nil
	}

	fields := strings.Fields(normalized)
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if stopWords[f] {
			continue
		}
		if isNumeric(f) {
			tokens = append(tokens, f)
			continue
		}
		if len(f) >= 2 || shortAbbreviations[f] {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// TokenSet builds a set (map) from TokenizeForMatch output, for Jaccard
// computation.
func TokenSet(s string) map[string]bool {
	tokens := TokenizeForMatch(s)
	set := make(map[string]bool, len(tokens))
	for _, t := range tokens {
		set[t] = true
	}
	return set
}

// TokenJaccard computes |A∩B| / |A∪B| over TokenizeForMatch output of a
// and b. Two empty token sets score 0 (no evidence of similarity).
func TokenJaccard(a, b string) float64 {
	return jaccard(TokenSet(a), TokenSet(b))
}

// TokenJaccardSets computes token Jaccard directly from precomputed sets,
// so callers that memoize per-clause token sets (spec.md §9) avoid
// re-tokenizing on every comparison.
func TokenJaccardSets(a, b map[string]bool) float64 {
	return jaccard(a, b)
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 0
	}
	inter := 0
	for k := range a {
		if b[k] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// FourGramSet builds the character 4-gram set of NormalizeForMatch(s)
// with spaces removed.
func FourGramSet(s string) map[string]bool {
	normalized := strings.ReplaceAll(NormalizeForMatch(s), " ", "")
	runes := []rune(normalized)
	if len(runes) < 4 {
		if len(runes) == 0 {
			return map[string]bool{}
		}
		return map[string]bool{string(runes): true}
	}
	set := make(map[string]bool, len(runes)-3)
	for i := 0; i+4 <= len(runes); i++ {
		set[string(runes[i:i+4])] = true
	}
	return set
}

// FourGramJaccard computes the character 4-gram Jaccard similarity of a
// and b.
func FourGramJaccard(a, b string) float64 {
	return jaccard(FourGramSet(a), FourGramSet(b))
}

// FourGramJaccardSets computes 4-gram Jaccard from precomputed sets.
func FourGramJaccardSets(a, b map[string]bool) float64 {
	return jaccard(a, b)
}

// SimilarityMethod identifies which scoring primitive produced the
// winning score in ScoreTextSimilarity.
type SimilarityMethod string

const (
	MethodText  SimilarityMethod = "text"
	MethodNGram SimilarityMethod = "ngram"
)

// SimilarityScore is the result of ScoreTextSimilarity: the winning
// score and which primitive produced it.
type SimilarityScore struct {
	Score  float64
	Method SimilarityMethod
}

// ScoreTextSimilarity scores q against c using both token Jaccard and
// character 4-gram Jaccard, returning the larger of the two. Ties go to
// token Jaccard ("text"), since whole-word overlap is more specific
// evidence than character-shingle overlap.
func ScoreTextSimilarity(q, c string) SimilarityScore {
	textScore := TokenJaccard(q, c)
	ngramScore := FourGramJaccard(q, c)
	if textScore >= ngramScore {
		return SimilarityScore{Score: textScore, Method: MethodText}
	}
	return SimilarityScore{Score: ngramScore, Method: MethodNGram}
}
