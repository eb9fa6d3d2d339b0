package parser

import "context"

// ParseResult is what a parser produces from a contract document file.
type ParseResult struct {
	Sections []Section // Ordered sections extracted from the document
	Method   string    // "native"
	Metadata map[string]string
}

// Section represents a logical section of a parsed contract document —
// a heading and the body text under it, on the way to becoming one or
// more contractreview.Clause values.
type Section struct {
	Heading string
	Content string
	Level   int    // Heading level (1=top, 2=sub, etc.)
	// ClauseNumber is the hierarchical clause number the parser itself
	// recognised for this section (e.g. "3.2.1"), empty when the
	// section's heading carries no numbering. Populated at parse time
	// so that clause-boundary awareness lives in the parser, not only
	// in whatever reads ParseResult afterward.
	ClauseNumber string
	PageNumber   int
	Type         string // "section", "table", "definition", "requirement", "clause", "paragraph", "annex"
	Children     []Section
	Metadata     map[string]string
}

// Parser can parse a specific document format.
type Parser interface {
	Parse(ctx context.Context, path string) (*ParseResult, error)
	SupportedFormats() []string
}
