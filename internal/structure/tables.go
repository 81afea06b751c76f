// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"context"
	"regexp"
	"strings"

	"holdings-scan/internal/document"
)

// minDataRows is the smallest number of data rows a run of qualifying lines
// needs before it is emitted as a table.
const minDataRows = 2

// numberWordsNumber matches lines shaped like "1234 Some Words 56.78":
// a leading numeric token, free text, and a trailing numeric token.
var numberWordsNumber = regexp.MustCompile(`^\s*[$€£]?\d[\d,.]*\s+\S.*\s[$€£]?-?\d[\d,.]*%?\s*$`)

// multiSpace splits columns in fixed-width layouts.
var multiSpace = regexp.MustCompile(`\s{2,}`)

// TextHeuristicStrategy detects tables from raw text layout alone. It is
// the last resort of the cascade: cheap, always available, and tolerant of
// whatever the text extractor produced.
type TextHeuristicStrategy struct{}

// NewTextHeuristicStrategy creates the text-layout table strategy.
func NewTextHeuristicStrategy() *TextHeuristicStrategy {
	return &TextHeuristicStrategy{}
}

// Name returns the strategy identifier.
func (s *TextHeuristicStrategy) Name() string { return "text-heuristic" }

// Detect scans lines for runs of table-shaped rows. A run opens at the
// first qualifying line (the header), accumulates qualifying lines as data
// rows, and closes at the first non-qualifying line or end of input. Runs
// with fewer than two data rows are dropped.
func (s *TextHeuristicStrategy) Detect(_ context.Context, doc *document.Document) ([]document.Table, error) {
	if doc.Empty() {
		return nil, nil
	}

	var tables []document.Table
	var current *document.Table

	flush := func() {
		if current != nil && len(current.Rows) >= minDataRows {
			tables = append(tables, *current)
		}
		current = nil
	}

	for _, line := range strings.Split(doc.Text, "\n") {
		if !looksLikeTableRow(line) {
			flush()
			continue
		}

		cells := splitRow(line)
		if current == nil {
			current = &document.Table{
				Source:  s.Name(),
				Headers: cells,
			}
			continue
		}
		current.Rows = append(current.Rows, cells)
	}
	flush()

	return tables, nil
}

// looksLikeTableRow reports whether a line qualifies as a table row: it
// contains a column separator, splits into three or more whitespace fields,
// or has the number-words-number shape.
func looksLikeTableRow(line string) bool {
	if strings.TrimSpace(line) == "" {
		return false
	}
	if strings.ContainsAny(line, "|\t") {
		return true
	}
	if len(strings.Fields(line)) >= 3 {
		return true
	}
	return numberWordsNumber.MatchString(line)
}

// splitRow breaks a qualifying line into cells. Explicit separators win;
// otherwise runs of two or more spaces mark column gaps; single-space lines
// fall back to whitespace fields.
func splitRow(line string) []string {
	line = strings.TrimSpace(line)

	var parts []string
	switch {
	case strings.Contains(line, "|"):
		parts = strings.Split(line, "|")
	case strings.Contains(line, "\t"):
		parts = strings.Split(line, "\t")
	case multiSpace.MatchString(line):
		parts = multiSpace.Split(line, -1)
	default:
		parts = strings.Fields(line)
	}

	cells := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}
