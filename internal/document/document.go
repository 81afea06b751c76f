// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package document

import "strings"

// Document is one ingested financial document: the full extracted text plus
// the ordered per-page texts supplied by a text-extraction collaborator.
// A Document is immutable once built and lives for a single pipeline run.
type Document struct {
	SourcePath string   `json:"source_path,omitempty"`
	Text       string   `json:"-"`
	Pages      []string `json:"-"`
}

// New builds a Document from ordered page texts. The full text is the pages
// joined with newlines.
func New(sourcePath string, pages []string) *Document {
	return &Document{
		SourcePath: sourcePath,
		Text:       strings.Join(pages, "\n"),
		Pages:      pages,
	}
}

// PageCount returns the number of pages in the document.
func (d *Document) PageCount() int {
	if d == nil {
		return 0
	}
	return len(d.Pages)
}

// Empty reports whether the document carries no usable text.
func (d *Document) Empty() bool {
	return d == nil || strings.TrimSpace(d.Text) == ""
}

// Table is a candidate or classified table: ordered header labels plus data
// rows. Source names the strategy or provider that produced it.
type Table struct {
	Source     string     `json:"source"`
	Page       int        `json:"page,omitempty"` // 1-based, 0 when unknown
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	Confidence float64    `json:"confidence,omitempty"`
}

// Section is a titled region of document text, delimited by line indices
// into the full text.
type Section struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	StartLine int    `json:"start_line"`
	EndLine   int    `json:"end_line"`
}

// HeadersFooters holds repeated per-page header and footer lines, when page
// count and similarity allow detecting them.
type HeadersFooters struct {
	Headers []string `json:"headers"`
	Footers []string `json:"footers"`
}

// Security is one extracted holding. Numeric fields are pointers so that
// "unknown" is distinguishable from zero; the validator appends to Errors and
// sets IsValid rather than dropping malformed records.
type Security struct {
	ISIN      string   `json:"isin,omitempty"`
	Name      string   `json:"name"`
	Ticker    string   `json:"ticker,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Value     *float64 `json:"value,omitempty"`
	Weight    *float64 `json:"weight,omitempty"`
	Currency  string   `json:"currency,omitempty"`
	AssetType string   `json:"asset_type,omitempty"`
	Sector    string   `json:"sector,omitempty"`
	Source    string   `json:"source,omitempty"`

	Errors  []string        `json:"errors,omitempty"`
	IsValid bool            `json:"is_valid"`
	Checks  map[string]bool `json:"checks,omitempty"`
}

// RiskLevel classifies portfolio concentration risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskModerate RiskLevel = "Moderate"
	RiskHigh     RiskLevel = "High"
	RiskVeryHigh RiskLevel = "Very High"
	RiskUnknown  RiskLevel = "Unknown"
)

// AllocationEntry is one group in an allocation breakdown: the grouping key
// (sector or currency code), the summed value, and the share of total.
type AllocationEntry struct {
	Key        string  `json:"key"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
}

// PortfolioMetrics captures portfolio-level aggregates over the validated,
// priced subset of securities. Computed once per run; immutable.
type PortfolioMetrics struct {
	TotalValue           float64           `json:"total_value"`
	SecuritiesCount      int               `json:"securities_count"`
	DiversificationScore float64           `json:"diversification_score"`
	RiskLevel            RiskLevel         `json:"risk_level"`
	SectorAllocation     []AllocationEntry `json:"sector_allocation"`
	CurrencyAllocation   []AllocationEntry `json:"currency_allocation"`
}

// Float is a convenience constructor for optional numeric fields.
func Float(v float64) *float64 { return &v }
