// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"errors"
	"io"

	"holdings-scan/internal/document"
	"holdings-scan/internal/extract"
	"holdings-scan/internal/metrics"
	"holdings-scan/internal/observability"
	"holdings-scan/internal/structure"
	"holdings-scan/internal/validate"
)

// ErrNoDocument is returned when Analyze is called without a document.
var ErrNoDocument = errors.New("no document to analyze")

// Options holds per-run configuration for the analysis pipeline.
type Options struct {
	// CandidateTables are table geometries supplied by upstream detectors;
	// they form the highest-priority strategy.
	CandidateTables []document.Table

	// ExtraStrategies are additional table strategies (typically external
	// detector commands) tried after the candidates and before the text
	// heuristic, in the given order.
	ExtraStrategies []structure.TableStrategy

	// Observability selects how much diagnostic detail is recorded.
	Observability observability.Level

	// DebugWriter, when set together with LevelDebug, receives diagnostic
	// events as JSON lines while the run progresses.
	DebugWriter io.Writer
}

// Result is the full output of one pipeline run. Diagnostics travel with
// the result instead of being logged, so the pipeline stays side-effect
// free.
type Result struct {
	RunID       string                    `json:"run_id"`
	SourcePath  string                    `json:"source_path,omitempty"`
	Tables      []document.Table          `json:"tables"`
	Headers     []string                  `json:"headers,omitempty"`
	Footers     []string                  `json:"footers,omitempty"`
	Sections    []document.Section        `json:"sections"`
	ISINs       []string                  `json:"isins"`
	Securities  []document.Security       `json:"securities"`
	Metrics     document.PortfolioMetrics `json:"metrics"`
	Diagnostics []observability.Event     `json:"diagnostics,omitempty"`
}

// Analyze runs the full pipeline for one document: structure detection,
// entity extraction, validation, portfolio metrics. The pipeline is
// stateless and synchronous per document; arbitrarily many documents may
// be analyzed concurrently with independent calls.
//
// Only a missing document fails the call. Every per-strategy and
// per-entity problem is absorbed locally: a bad table or a malformed
// security never blocks extraction of the rest.
func Analyze(ctx context.Context, doc *document.Document, opts Options) (*Result, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}

	observer := observability.NewRecorder(opts.Observability, opts.DebugWriter)

	detector := structure.NewDetector(buildStrategies(opts)...)
	detector.SetObserver(observer)

	extractor := extract.NewExtractor()
	extractor.SetObserver(observer)

	validator := validate.NewValidator()
	validator.SetObserver(observer)

	engine := metrics.NewEngine()
	engine.SetObserver(observer)

	tables := detector.DetectTables(ctx, doc)
	headersFooters := detector.DetectHeadersFooters(doc.Pages)
	sections := detector.DetectSections(doc.Text)

	raw := extractor.Holdings(tables, doc.Text)
	securities := validator.ValidateAll(raw)
	portfolio := engine.Compute(securities)

	return &Result{
		RunID:       observer.RunID(),
		SourcePath:  doc.SourcePath,
		Tables:      tables,
		Headers:     headersFooters.Headers,
		Footers:     headersFooters.Footers,
		Sections:    sections,
		ISINs:       extractor.ISINs(doc.Text),
		Securities:  securities,
		Metrics:     portfolio,
		Diagnostics: observer.Events(),
	}, nil
}

// buildStrategies assembles the strategy cascade in priority order:
// caller-supplied candidates, then external detectors, then the text
// heuristic. Reordering strategies is a data change, not control flow.
func buildStrategies(opts Options) []structure.TableStrategy {
	strategies := make([]structure.TableStrategy, 0, len(opts.ExtraStrategies)+2)
	if len(opts.CandidateTables) > 0 {
		strategies = append(strategies, structure.NewCandidateStrategy(opts.CandidateTables))
	}
	strategies = append(strategies, opts.ExtraStrategies...)
	strategies = append(strategies, structure.NewTextHeuristicStrategy())
	return strategies
}
