package contractreview

import "errors"

// ErrorKind is one of the closed error kinds the core distinguishes
// (spec §7). Only "schema", "unknown-playbook", and "internal" are ever
// surfaced to a caller; the others are recovered locally and never
// escape Review.
type ErrorKind string

const (
	KindSchema          ErrorKind = "schema"
	KindUnknownPlaybook ErrorKind = "unknown-playbook"
	KindEvidence        ErrorKind = "evidence-validation"
	KindAnchor          ErrorKind = "anchor-resolution"
	KindDrift           ErrorKind = "drift"
	KindInternal        ErrorKind = "internal"
)

// ReviewError is the surfaced error type for Review. Kind distinguishes
// schema violations (400), unknown playbooks (400), and unexpected
// faults (500) at the HTTP layer; evidence-validation, anchor-resolution,
// and drift are recovered internally and never constructed as a
// ReviewError returned from Review.
type ReviewError struct {
	Kind    ErrorKind
	Message string
}

func (e *ReviewError) Error() string {
	return "contractreview: " + string(e.Kind) + ": " + e.Message
}

// The sentinel errors below name the input violations Review rejects.
// Review reports each of these conditions as a *ReviewError (kind schema
// or unknown-playbook); it does not return or wrap the sentinels.
var (
	// ErrEmptyContent names empty content with non-empty clauses, and
	// other schema-level input violations.
	ErrEmptyContent = errors.New("contractreview: content is empty")

	// ErrInvalidClause names a clause that fails its data-model
	// invariants (empty or duplicate clauseId, malformed slug, etc.).
	ErrInvalidClause = errors.New("contractreview: invalid clause")

	// ErrUnknownPlaybook names a playbookKey that is not one of the
	// seven closed playbook keys.
	ErrUnknownPlaybook = errors.New("contractreview: unknown playbook key")

	// ErrInvalidSeverity names a candidate issue that carries a
	// severity outside the closed enum.
	ErrInvalidSeverity = errors.New("contractreview: invalid severity")

	// ErrInvalidIntent names a candidate edit that carries an
	// intent outside the closed enum.
	ErrInvalidIntent = errors.New("contractreview: invalid intent")
)
