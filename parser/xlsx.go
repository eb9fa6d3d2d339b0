package parser

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/brunobiangulo/contractreview/chunker"
)

// XLSXParser parses schedule/annex spreadsheets — e.g. pricing schedules,
// deliverable lists, or SLA tables attached to a contract. Each sheet is
// split into individually numbered items when its rows carry clause-style
// numbering in the first column (e.g. a "1.1 | Widget A | $40" schedule
// line); sheets with no such numbering fall back to one whole-sheet
// section, typed by chunker.ContentType.
type XLSXParser struct{}

func (p *XLSXParser) SupportedFormats() []string { return []string{"xlsx", "xls"} }

func (p *XLSXParser) Parse(ctx context.Context, path string) (*ParseResult, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("opening XLSX: %w", err)
	}
	defer f.Close()

	var sections []Section

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(rows) == 0 {
			continue
		}

		sections = append(sections, splitRowsIntoSections(sheet, rows)...)
	}

	if len(sections) == 0 {
		return nil, fmt.Errorf("no data found in XLSX")
	}

	return &ParseResult{
		Sections: sections,
		Method:   "native",
	}, nil
}

// splitRowsIntoSections walks a sheet's rows looking for clause-numbered
// schedule items in the first column (via chunker.ExtractClauseNumber). A
// numbered row starts a new Section; subsequent rows append to it until the
// next numbered row. Rows before the first numbering are prepended to the
// first item; a sheet with no numbering at all is emitted as a single
// whole-sheet section classified by chunker.ContentType instead of a
// hardcoded "table" type.
func splitRowsIntoSections(sheet string, rows [][]string) []Section {
	var items []Section
	var current *Section
	var preamble strings.Builder

	flushCurrent := func() {
		if current != nil {
			current.Content = strings.TrimSpace(current.Content)
			items = append(items, *current)
			current = nil
		}
	}

	for i, row := range rows {
		if len(row) == 0 {
			continue
		}
		line := "| " + strings.Join(row, " | ") + " |"
		first := strings.TrimSpace(row[0])

		if num, ok := chunker.ExtractClauseNumber(first); ok {
			flushCurrent()
			heading := first
			if len(row) > 1 {
				heading = strings.TrimSpace(row[1])
			}
			current = &Section{
				Heading:      heading,
				ClauseNumber: num,
				Level:        chunker.ClauseDepth(num),
				Type:         "clause",
				Metadata: map[string]string{
					"sheet_name": sheet,
					"row":        strconv.Itoa(i),
				},
			}
			continue
		}

		if chunker.IsHeading(first) && current == nil {
			// A heading row with no schedule-item numbering (e.g. a
			// section banner row inside the sheet) — carry it as context
			// for the items that follow rather than losing it in the
			// preamble. DetectNumbering catches single-level numbering
			// ("1. Pricing") that ExtractClauseNumber's multi-level
			// pattern doesn't.
			flushCurrent()
			num, _ := chunker.DetectNumbering(first)
			current = &Section{
				Heading:      first,
				ClauseNumber: num,
				Level:        chunker.NumberingLevel(num),
				Type:         "section",
				Metadata: map[string]string{
					"sheet_name": sheet,
					"row":        strconv.Itoa(i),
				},
			}
			continue
		}

		switch {
		case current != nil:
			current.Content += line + "\n"
		default:
			preamble.WriteString(line + "\n")
		}
	}
	flushCurrent()

	if len(items) == 0 {
		// No numbering or heading rows found anywhere in the sheet — fall
		// back to one whole-sheet section, same as the teacher's original
		// behavior, but classified by content shape rather than assumed
		// to always be a table.
		content := preamble.String()
		return []Section{{
			Heading: sheet,
			Content: content,
			Type:    chunker.ContentType(content),
			Level:   1,
			Metadata: map[string]string{
				"sheet_name": sheet,
				"row_count":  strconv.Itoa(len(rows)),
			},
		}}
	}

	if preamble.Len() > 0 {
		// Preamble rows preceded the first numbered/heading row (e.g. a
		// title banner) — prepend them to the first item instead of
		// dropping them.
		items[0].Content = strings.TrimSpace(preamble.String()) + "\n" + items[0].Content
	}

	return items
}
