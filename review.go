package contractreview

import (
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/brunobiangulo/contractreview/align"
	"github.com/brunobiangulo/contractreview/anchor"
	"github.com/brunobiangulo/contractreview/checklist"
	"github.com/brunobiangulo/contractreview/evidence"
	"github.com/brunobiangulo/contractreview/internal/xref"
	"github.com/brunobiangulo/contractreview/normalize"
	"github.com/brunobiangulo/contractreview/playbook"
)

// reviewSettings holds everything a ReviewOption can override.
type reviewSettings struct {
	config       Config
	clock        func() time.Time
	reportExpiry string
	draftModel   string
}

// ReviewOption configures one Review invocation. The zero-value
// settings (DefaultConfig, time.Now) apply when no options are given.
type ReviewOption func(*reviewSettings)

// WithConfig overrides the default threshold configuration.
func WithConfig(cfg Config) ReviewOption {
	return func(s *reviewSettings) { s.config = cfg }
}

// WithClock overrides the clock Review uses for GeneratedAt. Tests
// inject a fixed clock to exercise the determinism property (spec.md
// §8 property 6) without a time-dependent diff.
func WithClock(now func() time.Time) ReviewOption {
	return func(s *reviewSettings) { s.clock = now }
}

// WithReportExpiry sets the caller-supplied report expiry timestamp;
// if it fails to parse as RFC 3339, it is normalized to now + 24h.
func WithReportExpiry(expiry string) ReviewOption {
	return func(s *reviewSettings) { s.reportExpiry = expiry }
}

// WithDraftModel records the upstream model identifier that produced
// candidateIssues/candidateEdits, echoed in DraftMetadata.
func WithDraftModel(model string) ReviewOption {
	return func(s *reviewSettings) { s.draftModel = model }
}

var clauseIDPattern = regexp.MustCompile(`^[a-z0-9-]{1,64}$`)

func validateClauses(clauses []Clause) error {
	seen := make(map[string]bool, len(clauses))
	for _, c := range clauses {
		if c.ClauseID == "" || !clauseIDPattern.MatchString(c.ClauseID) {
			return &ReviewError{Kind: KindSchema, Message: "invalid clauseId: " + c.ClauseID}
		}
		if seen[c.ClauseID] {
			return &ReviewError{Kind: KindSchema, Message: "duplicate clauseId: " + c.ClauseID}
		}
		seen[c.ClauseID] = true
	}
	return nil
}

func validSeverity(s Severity) bool {
	switch s {
	case SeverityCritical, SeverityHigh, SeverityMedium, SeverityLow, "":
		return true
	}
	return false
}

func validIntent(i Intent) bool {
	switch i {
	case IntentReplace, IntentInsert, "":
		return true
	}
	return false
}

// normaliseReportExpiry implements spec.md §6's rule: an unparseable
// reportExpiry is replaced with now + 24h in ISO 8601 (RFC 3339).
func normaliseReportExpiry(raw string, now time.Time) string {
	if raw != "" {
		if _, err := time.Parse(time.RFC3339, raw); err == nil {
			return raw
		}
	}
	return now.Add(24 * time.Hour).Format(time.RFC3339)
}

// Review is the core entry point: given a contract's content, its
// extracted clauses, a playbook key, and a candidate set of issues and
// edits from an upstream model, it produces a deterministic,
// evidence-anchored AnalysisReport.
func Review(
	content string,
	clauses []Clause,
	playbookKey string,
	candidateIssues []Issue,
	candidateEdits []ProposedEdit,
	opts ...ReviewOption,
) (*AnalysisReport, error) {
	settings := reviewSettings{config: DefaultConfig(), clock: time.Now}
	for _, opt := range opts {
		opt(&settings)
	}

	pb, ok := playbook.ByKey(playbookKey)
	if !ok {
		return nil, &ReviewError{Kind: KindUnknownPlaybook, Message: "unknown playbook key: " + playbookKey}
	}

	if err := validateClauses(clauses); err != nil {
		return nil, err
	}
	if content == "" && len(clauses) > 0 {
		return nil, &ReviewError{Kind: KindSchema, Message: "content is empty but clauses were provided"}
	}
	for _, iss := range candidateIssues {
		if !validSeverity(iss.Severity) {
			return nil, &ReviewError{Kind: KindSchema, Message: "invalid severity: " + string(iss.Severity)}
		}
	}
	for _, e := range candidateEdits {
		if !validIntent(e.Intent) {
			return nil, &ReviewError{Kind: KindSchema, Message: "invalid intent: " + string(e.Intent)}
		}
	}

	evClauses := toEvidenceClauses(clauses)
	idx := evidence.Build(evClauses, content)

	criteria := checklist.Compile(toChecklistItems(pb.Checklist), idx, settings.config.EvidenceExcerptMaxLength)

	alignOpts := align.Options{
		IssueAlignMinScore:      settings.config.IssueAlignMinScore,
		DriftMinSimilarity:      settings.config.DriftMinSimilarity,
		IssueDedupMinSimilarity: settings.config.IssueDedupMinSimilarity,
		EditDedupMinSimilarity:  settings.config.EditDedupMinSimilarity,
		EditAnchorSentenceMin:   settings.config.EditAnchorSentenceMin,
		EditAnchorSentenceMax:   settings.config.EditAnchorSentenceMax,
	}

	alignedIssues, covered := align.AlignIssues(toAlignIssues(candidateIssues), criteria, idx, alignOpts)
	synthesizedIssues := align.SynthesizeIssues(criteria, covered)
	allIssues := append(append([]align.Issue{}, alignedIssues...), synthesizedIssues...)

	for i, iss := range allIssues {
		if ok, _ := align.ValidateIssueClauseReference(iss.ClauseReference, idx); !ok {
			allIssues[i].ClauseReference.Excerpt = evidence.NotPresent
		}
	}
	allIssues = align.DedupIssues(allIssues, settings.config.IssueDedupMinSimilarity)

	boundEdits := align.BindEdits(toAlignEdits(candidateEdits), criteria, idx)
	synthesizedEdits := align.SynthesizeEdits(criteria, boundEdits, idx, alignOpts)
	allEdits := append(append([]align.Edit{}, boundEdits...), synthesizedEdits...)

	for i, e := range allEdits {
		allEdits[i] = align.AssessDrift(e, idx, settings.config.DriftMinSimilarity)
	}

	criteriaByID := make(map[string]checklist.Criterion, len(criteria))
	for _, c := range criteria {
		criteriaByID[c.ID] = c
	}
	allEdits = align.FilterRedundantInserts(allEdits, criteriaByID, evClauses)
	allEdits = align.FilterPlaceholderEdits(allEdits)
	allEdits = align.DedupEdits(allEdits, settings.config.EditDedupMinSimilarity)

	coverage := anchor.EvaluateCoverage(
		content,
		toAnchorClauses(clauses),
		toAnchorCriticalClauses(pb.CriticalClauses),
		toAnchorSpecs(pb.ClauseAnchors),
	)

	xrefClauses := toXrefClauses(clauses)
	refs := xref.DetectReferences(xrefClauses)
	communities := xref.BuildCommunities(xrefClauses)
	deviations := xref.DeviationInsights(refs)
	playbookFindings := xref.PlaybookInsights(xrefClauses, refs, communities)

	now := settings.clock()

	report := &AnalysisReport{
		Version:     "v3",
		GeneratedAt: now.UTC().Format(time.RFC3339),
		GeneralInformation: GeneralInformation{
			ComplianceScore: int(coverage.Score * 100),
		},
		ContractSummary:    buildContractSummary(clauses),
		IssuesToAddress:    fromAlignIssues(allIssues),
		CriteriaMet:        toChecklistCriteria(criteria),
		ClauseFindings:     buildClauseFindings(allIssues),
		ProposedEdits:      fromAlignEdits(allEdits),
		PlaybookInsights:   toPlaybookInsights(playbookFindings),
		SimilarityAnalysis: buildSimilarityAnalysis(criteria),
		DeviationInsights:  toDeviationInsights(deviations),
		ActionItems:        buildActionItems(criteria, allIssues),
		DraftMetadata: DraftMetadata{
			Model:        settings.draftModel,
			GeneratedAt:  now.UTC().Format(time.RFC3339),
			ReportExpiry: normaliseReportExpiry(settings.reportExpiry, now),
		},
		Metadata: ReportMetadata{
			PlaybookKey:    pb.Key,
			Classification: pb.DisplayName,
		},
	}

	return report, nil
}

func toXrefClauses(clauses []Clause) []xref.Clause {
	out := make([]xref.Clause, len(clauses))
	for i, c := range clauses {
		out[i] = xref.Clause{ClauseID: c.ClauseID, Title: c.Title, Category: c.Category, Text: c.OriginalText}
	}
	return out
}

func toPlaybookInsights(insights []xref.Insight) []PlaybookInsight {
	out := make([]PlaybookInsight, len(insights))
	for i, ins := range insights {
		out[i] = PlaybookInsight{Title: ins.Title, Detail: ins.Detail}
	}
	return out
}

func toDeviationInsights(insights []xref.Insight) []DeviationInsight {
	out := make([]DeviationInsight, len(insights))
	for i, ins := range insights {
		out[i] = DeviationInsight{Title: ins.Title, Detail: ins.Detail}
	}
	return out
}

// buildContractSummary derives a minimal ContractSummary from the
// clause list alone: the first sentence of the first clause titled
// GOVERNING LAW or EFFECTIVE DATE fills the matching field. Parties is
// always returned empty; no clause is parsed for party names.
func buildContractSummary(clauses []Clause) ContractSummary {
	summary := ContractSummary{Parties: []string{}}
	for _, c := range clauses {
		upperTitle := strings.ToUpper(c.Title)
		switch {
		case strings.Contains(upperTitle, "GOVERNING LAW") && summary.GoverningLaw == "":
			summary.GoverningLaw = firstSentence(c.OriginalText)
		case strings.Contains(upperTitle, "EFFECTIVE DATE") && summary.EffectiveDate == "":
			summary.EffectiveDate = firstSentence(c.OriginalText)
		}
	}
	return summary
}

func firstSentence(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, ".!?"); i >= 0 {
		return strings.TrimSpace(s[:i+1])
	}
	return s
}

// buildClauseFindings summarizes the distinct clause references an
// issue points at, in first-seen order.
func buildClauseFindings(issues []align.Issue) []ClauseReference {
	seen := make(map[string]bool)
	var out []ClauseReference
	for _, iss := range issues {
		ref := iss.ClauseReference
		if ref.ClauseID == "" || seen[ref.ClauseID] {
			continue
		}
		seen[ref.ClauseID] = true
		out = append(out, ClauseReference{
			ClauseID:     ref.ClauseID,
			Heading:      ref.Heading,
			Excerpt:      ref.Excerpt,
			LocationHint: ref.LocationHint,
		})
	}
	return out
}

// buildSimilarityAnalysis reports, for every criterion with a bound
// clause, the text-similarity score between the criterion's evidence
// and the clause it was drawn from, as a reviewer-facing confidence
// signal distinct from the pass/fail checklist status.
func buildSimilarityAnalysis(criteria []checklist.Criterion) []SimilarityFinding {
	out := make([]SimilarityFinding, 0, len(criteria))
	for _, c := range criteria {
		if c.ClauseID == "" || c.Evidence == "" {
			continue
		}
		sim := normalize.ScoreTextSimilarity(c.Title+" "+strings.Join(c.RequiredSignals, " "), c.Evidence)
		out = append(out, SimilarityFinding{
			CriterionID: c.ID,
			ClauseID:    c.ClauseID,
			Score:       sim.Score,
			Method:      string(sim.Method),
		})
	}
	return out
}

// buildActionItems derives a short reviewer checklist of what to do
// next from issues sorted by severity and the unmet criteria they
// don't already cover.
func buildActionItems(criteria []checklist.Criterion, issues []align.Issue) []ActionItem {
	covered := make(map[string]bool, len(issues))
	items := make([]ActionItem, 0, len(issues))
	for _, iss := range issues {
		items = append(items, ActionItem{Title: iss.Title, Severity: Severity(iss.Severity)})
		if iss.CriterionID != "" {
			covered[iss.CriterionID] = true
		}
	}
	for _, c := range criteria {
		if c.Met || covered[c.ID] {
			continue
		}
		items = append(items, ActionItem{Title: c.Title, Severity: SeverityMedium})
	}

	sort.SliceStable(items, func(i, j int) bool {
		return severityRank[items[i].Severity] > severityRank[items[j].Severity]
	})
	return items
}
