// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"context"

	"holdings-scan/internal/document"
	"holdings-scan/internal/observability"
)

// TableStrategy is one way of finding tables in a document. Strategies are
// tried strictly in priority order; the first strategy returning at least
// one table wins and later strategies are not consulted. A strategy that
// errors or is unavailable is skipped, never fatal.
type TableStrategy interface {
	// Name returns the strategy identifier used to tag produced tables
	Name() string

	// Detect finds candidate tables in the document
	Detect(ctx context.Context, doc *document.Document) ([]document.Table, error)
}

// Detector resolves raw text plus candidate tables into classified tables,
// headers/footers, and sections. It holds no per-document state, so one
// Detector may serve concurrent pipeline runs.
type Detector struct {
	strategies []TableStrategy
	observer   *observability.Recorder
}

// NewDetector creates a detector with the given strategy cascade. Order is
// a correctness requirement: an earlier strategy's non-empty result
// short-circuits the rest.
func NewDetector(strategies ...TableStrategy) *Detector {
	return &Detector{strategies: strategies}
}

// SetObserver sets the diagnostics recorder.
func (d *Detector) SetObserver(observer *observability.Recorder) {
	d.observer = observer
}

// StrategyNames returns the cascade order, for diagnostics.
func (d *Detector) StrategyNames() []string {
	names := make([]string, 0, len(d.strategies))
	for _, s := range d.strategies {
		names = append(names, s.Name())
	}
	return names
}

// DetectTables runs the strategy cascade and returns the first non-empty
// result, with every table tagged by the strategy that produced it. A nil
// or empty document yields no tables; strategy failures are recorded as
// diagnostics and absorbed.
func (d *Detector) DetectTables(ctx context.Context, doc *document.Document) []document.Table {
	if doc.Empty() {
		return nil
	}

	for _, strategy := range d.strategies {
		if ctx.Err() != nil {
			return nil
		}

		finish := d.observer.StartTiming("structure", "detect_tables:"+strategy.Name(), doc.SourcePath)

		tables, err := strategy.Detect(ctx, doc)
		if err != nil {
			finish(false, map[string]any{"error": err.Error()})
			d.observer.RecordError("structure", "detect_tables:"+strategy.Name(), err)
			continue
		}
		finish(true, map[string]any{"table_count": len(tables)})

		if len(tables) == 0 {
			continue
		}

		for i := range tables {
			if tables[i].Source == "" {
				tables[i].Source = strategy.Name()
			}
		}
		return tables
	}

	return nil
}

// DetectHeadersFooters finds repeated per-page header and footer lines.
func (d *Detector) DetectHeadersFooters(pages []string) document.HeadersFooters {
	finish := d.observer.StartTiming("structure", "detect_headers_footers", "")
	result := DetectHeadersFooters(pages)
	finish(true, map[string]any{
		"header_count": len(result.Headers),
		"footer_count": len(result.Footers),
	})
	return result
}

// DetectSections splits the document text into titled sections.
func (d *Detector) DetectSections(text string) []document.Section {
	finish := d.observer.StartTiming("structure", "detect_sections", "")
	sections := DetectSections(text)
	finish(true, map[string]any{"section_count": len(sections)})
	return sections
}
