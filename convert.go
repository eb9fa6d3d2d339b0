package contractreview

import (
	"github.com/brunobiangulo/contractreview/align"
	"github.com/brunobiangulo/contractreview/anchor"
	"github.com/brunobiangulo/contractreview/checklist"
	"github.com/brunobiangulo/contractreview/evidence"
)

func toEvidenceClauses(clauses []Clause) []evidence.Clause {
	out := make([]evidence.Clause, len(clauses))
	for i, c := range clauses {
		out[i] = evidence.Clause{
			ClauseID:       c.ClauseID,
			Title:          c.Title,
			OriginalText:   c.OriginalText,
			NormalizedText: c.NormalizedText,
		}
	}
	return out
}

func toAnchorClauses(clauses []Clause) []anchor.Clause {
	out := make([]anchor.Clause, len(clauses))
	for i, c := range clauses {
		out[i] = anchor.Clause{ClauseID: c.ClauseID, Title: c.Title, OriginalText: c.OriginalText}
	}
	return out
}

func toAnchorCriticalClauses(critical []CriticalClause) []anchor.CriticalClause {
	out := make([]anchor.CriticalClause, len(critical))
	for i, c := range critical {
		out[i] = anchor.CriticalClause{Title: c.Title, MustInclude: c.MustInclude}
	}
	return out
}

func toAnchorSpecs(anchors []ClauseAnchor) []anchor.AnchorSpec {
	out := make([]anchor.AnchorSpec, len(anchors))
	for i, a := range anchors {
		out[i] = anchor.AnchorSpec{Heading: a.Heading, Optional: a.Optional}
	}
	return out
}

func toChecklistItems(items []PlaybookChecklistItem) []checklist.Item {
	out := make([]checklist.Item, len(items))
	for i, item := range items {
		out[i] = checklist.Item{
			ID:                 item.ID,
			Title:              item.Title,
			Description:        item.Description,
			RequiredSignals:    item.RequiredSignals,
			InsertionPolicyKey: item.InsertionPolicyKey,
			EvidenceMapping: evidence.Mapping{
				ClauseIDs: item.EvidenceMapping.ClauseIDs,
				Headings:  item.EvidenceMapping.Headings,
				Topics:    item.EvidenceMapping.Topics,
			},
		}
	}
	return out
}

func toChecklistCriteria(criteria []checklist.Criterion) []ChecklistCriterion {
	out := make([]ChecklistCriterion, len(criteria))
	for i, c := range criteria {
		out[i] = ChecklistCriterion{
			ID:                 c.ID,
			Title:              c.Title,
			Description:        c.Description,
			Status:             Status(c.Status),
			Met:                c.Met,
			Evidence:           c.Evidence,
			ClauseID:           c.ClauseID,
			Heading:            c.Heading,
			LocationHint:       c.LocationHint,
			RequiredSignals:    c.RequiredSignals,
			MatchedSignals:     c.MatchedSignals,
			MissingSignals:     c.MissingSignals,
			InsertionPolicyKey: c.InsertionPolicyKey,
		}
	}
	return out
}

func toAlignIssues(issues []Issue) []align.Issue {
	out := make([]align.Issue, len(issues))
	for i, iss := range issues {
		out[i] = align.Issue{
			ID:             iss.ID,
			Title:          iss.Title,
			Severity:       align.Severity(iss.Severity),
			Recommendation: iss.Recommendation,
			Rationale:      iss.Rationale,
			Tags:           iss.Tags,
			CriterionID:    iss.CriterionID,
			ClauseReference: align.ClauseReference{
				ClauseID:     iss.ClauseReference.ClauseID,
				Heading:      iss.ClauseReference.Heading,
				Excerpt:      iss.ClauseReference.Excerpt,
				LocationHint: iss.ClauseReference.LocationHint,
			},
		}
	}
	return out
}

func fromAlignIssues(issues []align.Issue) []Issue {
	out := make([]Issue, len(issues))
	for i, iss := range issues {
		out[i] = Issue{
			ID:             iss.ID,
			Title:          iss.Title,
			Severity:       Severity(iss.Severity),
			Recommendation: iss.Recommendation,
			Rationale:      iss.Rationale,
			Tags:           iss.Tags,
			CriterionID:    iss.CriterionID,
			ClauseReference: ClauseReference{
				ClauseID:     iss.ClauseReference.ClauseID,
				Heading:      iss.ClauseReference.Heading,
				Excerpt:      iss.ClauseReference.Excerpt,
				LocationHint: iss.ClauseReference.LocationHint,
			},
		}
	}
	return out
}

func toAlignEdits(edits []ProposedEdit) []align.Edit {
	out := make([]align.Edit, len(edits))
	for i, e := range edits {
		out[i] = align.Edit{
			ID:           e.ID,
			ClauseID:     e.ClauseID,
			AnchorText:   e.AnchorText,
			ProposedText: e.ProposedText,
			Intent:       align.Intent(e.Intent),
			Rationale:    e.Rationale,
			DriftAlert:   e.DriftAlert,
		}
	}
	return out
}

func fromAlignEdits(edits []align.Edit) []ProposedEdit {
	out := make([]ProposedEdit, len(edits))
	for i, e := range edits {
		out[i] = ProposedEdit{
			ID:           e.ID,
			ClauseID:     e.ClauseID,
			AnchorText:   e.AnchorText,
			ProposedText: e.ProposedText,
			Intent:       Intent(e.Intent),
			Rationale:    e.Rationale,
			DriftAlert:   e.DriftAlert,
		}
	}
	return out
}
