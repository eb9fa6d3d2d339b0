// Command ingest turns a contract document (PDF or XLSX) into the
// {content, clauses} shape the contractreview HTTP API consumes. It is
// a standalone, deliberately thin reference adapter: the contractreview
// core never imports it and never calls into a parser itself (document
// ingestion is out of scope for the core, spec.md §1).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/brunobiangulo/contractreview"
	"github.com/brunobiangulo/contractreview/chunker"
	"github.com/brunobiangulo/contractreview/parser"
)

func main() {
	path := flag.String("path", "", "path to a .pdf or .xlsx contract document")
	category := flag.String("category", "", "optional category tag applied to every extracted clause")
	flag.Parse()

	if *path == "" {
		fmt.Fprintln(os.Stderr, "usage: ingest -path contract.pdf")
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, nil)))

	p, err := parserFor(*path)
	if err != nil {
		slog.Error("selecting parser", "error", err)
		os.Exit(1)
	}

	result, err := p.Parse(context.Background(), *path)
	if err != nil {
		slog.Error("parsing document", "path", *path, "error", err)
		os.Exit(1)
	}

	content, clauses := toContractreview(result.Sections, *category)

	out := struct {
		Content string                   `json:"content"`
		Clauses []contractreview.Clause `json:"clauses"`
	}{Content: content, Clauses: clauses}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		slog.Error("encoding output", "error", err)
		os.Exit(1)
	}
}

func parserFor(path string) (parser.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return &parser.PDFParser{}, nil
	case ".xlsx", ".xls":
		return &parser.XLSXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported format %q (only .pdf and .xlsx are supported)", filepath.Ext(path))
	}
}

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// slugify turns a section heading into a clauseId conforming to
// spec.md §3's slug invariant (lowercase, [a-z0-9-], <=64 chars),
// disambiguating repeats with a numeric suffix.
func slugify(heading string, seq int, seen map[string]int) string {
	slug := nonSlugChars.ReplaceAllString(strings.ToLower(strings.TrimSpace(heading)), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = fmt.Sprintf("clause-%d", seq)
	}
	if len(slug) > 64 {
		slug = slug[:64]
		slug = strings.Trim(slug, "-")
	}
	seen[slug]++
	if n := seen[slug]; n > 1 {
		suffix := fmt.Sprintf("-%d", n)
		if len(slug)+len(suffix) > 64 {
			slug = slug[:64-len(suffix)]
		}
		slug += suffix
	}
	return slug
}

// toContractreview flattens a parser.ParseResult's sections into a
// single content string and a parallel set of Clause values, detecting
// clause-number boundaries within each section and, in definition
// sections, the defined term via chunker's legal-document heuristics.
func toContractreview(sections []parser.Section, category string) (string, []contractreview.Clause) {
	var contentBuilder strings.Builder
	var clauses []contractreview.Clause
	seen := make(map[string]int)

	for i, sec := range sections {
		text := strings.TrimSpace(sec.Content)
		if text == "" {
			continue
		}

		parts := chunker.SplitByClauses(text)
		if len(parts) == 0 {
			parts = []string{text}
		}

		for _, part := range parts {
			heading := sec.Heading
			if num, ok := chunker.ExtractClauseNumber(part); ok {
				heading = num
			} else if sec.ClauseNumber != "" && !strings.HasPrefix(strings.TrimSpace(sec.Heading), sec.ClauseNumber) {
				heading = strings.TrimSpace(sec.ClauseNumber + " " + sec.Heading)
			}
			if sec.Type == "definition" {
				if defs := chunker.ExtractDefinitions(part); len(defs) > 0 {
					heading = defs[0].Term
				}
			}

			contentBuilder.WriteString(part)
			contentBuilder.WriteString("\n\n")

			clauses = append(clauses, contractreview.Clause{
				ClauseID:     slugify(heading, i, seen),
				Title:        heading,
				OriginalText: part,
				Category:     category,
				Location: &contractreview.ClauseLocation{
					Page: pageNumberOrNil(sec.PageNumber),
				},
			})
		}
	}

	return strings.TrimSpace(contentBuilder.String()), clauses
}

func pageNumberOrNil(page int) *int {
	if page <= 0 {
		return nil
	}
	p := page
	return &p
}
