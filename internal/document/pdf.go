// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// maxPDFPages caps how many pages are extracted from very large statements.
const maxPDFPages = 100

// PDFLoader extracts per-page text from PDF statements. pdfcpu validates the
// file up front; ledongthuc/pdf does the text extraction.
type PDFLoader struct {
	pdfConfig *model.Configuration
}

// NewPDFLoader creates a PDF loader with relaxed validation, since financial
// statements from real custodians are frequently not strictly conformant.
func NewPDFLoader() *PDFLoader {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PDFLoader{pdfConfig: conf}
}

// Name returns the loader identifier.
func (l *PDFLoader) Name() string { return "pdf" }

// CanLoad accepts .pdf files.
func (l *PDFLoader) CanLoad(path string) bool {
	return hasExtension(path, ".pdf")
}

// Load validates the PDF and extracts text page by page. A page that fails
// extraction is skipped, not fatal; the remaining pages still form the
// document.
func (l *PDFLoader) Load(path string) (*Document, error) {
	if err := api.ValidateFile(path, l.pdfConfig); err != nil {
		return nil, fmt.Errorf("invalid PDF file: %w", err)
	}

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF: %w", err)
	}
	defer f.Close()

	pageCount := r.NumPage()
	if pageCount > maxPDFPages {
		pageCount = maxPDFPages
	}

	pages := make([]string, 0, pageCount)
	for i := 1; i <= pageCount; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		text, err := pageText(p)
		if err != nil {
			continue
		}
		pages = append(pages, cleanPageText(text))
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in PDF: %s", path)
	}

	return New(path, pages), nil
}

// pageText extracts one page using row-based positioning so that tabular
// holdings keep their column spacing; falls back to plain extraction.
func pageText(p pdf.Page) (string, error) {
	rows, err := p.GetTextByRow()
	if err != nil {
		return p.GetPlainText(nil)
	}

	sorted := make([]*pdf.Row, 0, len(rows))
	for _, row := range rows {
		if row != nil && len(row.Content) > 0 {
			sorted = append(sorted, row)
		}
	}
	sort.Slice(sorted, func(i, j int) bool {
		return averageY(sorted[i].Content) < averageY(sorted[j].Content)
	})

	var buf bytes.Buffer
	for _, row := range sorted {
		line := rowText(row.Content)
		if strings.TrimSpace(line) != "" {
			buf.WriteString(line)
			buf.WriteString("\n")
		}
	}
	return buf.String(), nil
}

func averageY(elements []pdf.Text) float64 {
	if len(elements) == 0 {
		return 0
	}
	var total float64
	for _, e := range elements {
		total += e.Y
	}
	return total / float64(len(elements))
}

// rowText joins the text elements of one row left to right, inserting a
// single space for small gaps and a double space when the gap looks like a
// column boundary. The double space is what lets the downstream table
// heuristic split columns.
func rowText(elements []pdf.Text) string {
	if len(elements) == 0 {
		return ""
	}

	sorted := make([]pdf.Text, len(elements))
	copy(sorted, elements)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var buf bytes.Buffer
	for i, e := range sorted {
		buf.WriteString(e.S)
		if i == len(sorted)-1 {
			continue
		}
		gap := sorted[i+1].X - (e.X + e.W)
		fontSize := e.FontSize
		if fontSize <= 0 {
			fontSize = 12
		}
		switch {
		case gap > fontSize*2:
			buf.WriteString("  ")
		case gap > fontSize*0.15:
			buf.WriteString(" ")
		}
	}
	return buf.String()
}

func cleanPageText(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " \t")
		if strings.TrimSpace(line) != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
