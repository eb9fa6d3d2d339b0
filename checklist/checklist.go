// Package checklist turns a playbook's authored checklist items into
// computed ChecklistCriterion values by resolving each item's evidence
// against a contract's evidence index.
package checklist

import "github.com/brunobiangulo/contractreview/evidence"

// Item is the authored input for one checklist entry (mirrors the root
// package's PlaybookChecklistItem without importing it, to avoid a
// cycle).
type Item struct {
	ID                 string
	Title              string
	Description        string
	RequiredSignals    []string
	EvidenceMapping    evidence.Mapping
	InsertionPolicyKey string
}

// Criterion is the computed result of evaluating one Item against a
// contract's clauses (mirrors the root package's ChecklistCriterion).
type Criterion struct {
	ID                 string
	Title              string
	Description        string
	Status             evidence.Status
	Met                bool
	Evidence           string
	ClauseID           string
	Heading            string
	LocationHint       string
	RequiredSignals    []string
	MatchedSignals     []string
	MissingSignals     []string
	InsertionPolicyKey string
}

// Compile implements the checklist compiler (spec.md §4.D): one
// Criterion per Item, in the playbook's declared order, none dropped.
func Compile(items []Item, idx *evidence.Index, excerptMaxLength int) []Criterion {
	criteria := make([]Criterion, 0, len(items))
	for _, item := range items {
		res := idx.Resolve(item.RequiredSignals, item.EvidenceMapping, excerptMaxLength)

		criteria = append(criteria, Criterion{
			ID:                 item.ID,
			Title:              item.Title,
			Description:        item.Description,
			Status:             res.Status,
			Met:                res.Status == evidence.StatusMet,
			Evidence:           res.Evidence,
			ClauseID:           res.ClauseID,
			Heading:            res.Heading,
			RequiredSignals:    item.RequiredSignals,
			MatchedSignals:     res.MatchedSignals,
			MissingSignals:     res.MissingSignals,
			InsertionPolicyKey: item.InsertionPolicyKey,
		})
	}
	return criteria
}
