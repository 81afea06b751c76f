// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package csv

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"holdings-scan/internal/core"
	"holdings-scan/internal/formatters"
)

// Formatter implements CSV output formatting over the extracted securities.
type Formatter struct{}

// NewFormatter creates a new CSV formatter
func NewFormatter() *Formatter {
	return &Formatter{}
}

func (f *Formatter) Name() string {
	return "csv"
}

func (f *Formatter) Description() string {
	return "Comma-separated securities for spreadsheet import"
}

func (f *Formatter) FileExtension() string {
	return ".csv"
}

func (f *Formatter) Format(result *core.Result, options formatters.FormatterOptions) (string, error) {
	var sb strings.Builder
	w := csv.NewWriter(&sb)

	header := []string{"name", "isin", "ticker", "quantity", "price", "value", "weight", "currency", "sector", "asset_type", "source", "is_valid", "errors"}
	if err := w.Write(header); err != nil {
		return "", fmt.Errorf("error writing CSV header: %w", err)
	}

	for _, sec := range result.Securities {
		record := []string{
			sec.Name,
			sec.ISIN,
			sec.Ticker,
			formatOptional(sec.Quantity),
			formatOptional(sec.Price),
			formatOptional(sec.Value),
			formatOptional(sec.Weight),
			sec.Currency,
			sec.Sector,
			sec.AssetType,
			sec.Source,
			strconv.FormatBool(sec.IsValid),
			strings.Join(sec.Errors, "; "),
		}
		if err := w.Write(record); err != nil {
			return "", fmt.Errorf("error writing CSV record: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("error flushing CSV: %w", err)
	}
	return sb.String(), nil
}

func formatOptional(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'f', -1, 64)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
