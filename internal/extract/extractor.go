// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"holdings-scan/internal/document"
	"holdings-scan/internal/observability"
)

// Extractor turns classified tables and raw text into raw security
// holdings. It is stateless; one Extractor serves concurrent runs.
type Extractor struct {
	observer *observability.Recorder
}

// NewExtractor creates an extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// SetObserver sets the diagnostics recorder.
func (e *Extractor) SetObserver(observer *observability.Recorder) {
	e.observer = observer
}

// Holdings extracts securities for one document. Table-based extraction is
// authoritative: when any table yields at least one holding, text-based
// extraction is not attempted at all for that document.
func (e *Extractor) Holdings(tables []document.Table, text string) []document.Security {
	finish := e.observer.StartTiming("extract", "holdings", "")

	holdings := HoldingsFromTables(tables)
	source := "tables"
	if len(holdings) == 0 {
		holdings = HoldingsFromText(text)
		source = "text"
	}

	finish(true, map[string]any{
		"holding_count": len(holdings),
		"source":        source,
	})
	return holdings
}

// ISINs extracts the distinct ISIN tokens from the document text.
func (e *Extractor) ISINs(text string) []string {
	finish := e.observer.StartTiming("extract", "isins", "")
	isins := ExtractISINs(text)
	finish(true, map[string]any{"isin_count": len(isins)})
	return isins
}
