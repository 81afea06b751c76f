// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"context"
	"errors"
	"testing"

	"holdings-scan/internal/document"
	"holdings-scan/internal/observability"
)

type stubStrategy struct {
	name   string
	tables []document.Table
	err    error
	calls  int
}

func (s *stubStrategy) Name() string { return s.name }

func (s *stubStrategy) Detect(_ context.Context, _ *document.Document) ([]document.Table, error) {
	s.calls++
	return s.tables, s.err
}

func TestDetectTablesFirstNonEmptyWins(t *testing.T) {
	first := &stubStrategy{name: "first"}
	second := &stubStrategy{name: "second", tables: []document.Table{{Headers: []string{"Name"}}}}
	third := &stubStrategy{name: "third", tables: []document.Table{{Headers: []string{"unused"}}}}

	detector := NewDetector(first, second, third)
	doc := document.New("doc.txt", []string{"some content"})

	tables := detector.DetectTables(context.Background(), doc)
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if tables[0].Source != "second" {
		t.Errorf("source = %q, want second", tables[0].Source)
	}
	if third.calls != 0 {
		t.Errorf("third strategy consulted after a winner; calls = %d", third.calls)
	}
}

func TestDetectTablesSkipsFailingStrategy(t *testing.T) {
	failing := &stubStrategy{name: "broken", err: errors.New("detector unavailable")}
	working := &stubStrategy{name: "working", tables: []document.Table{{Headers: []string{"Name"}}}}

	detector := NewDetector(failing, working)
	detector.SetObserver(observability.NewRecorder(observability.LevelMetrics, nil))

	tables := detector.DetectTables(context.Background(), document.New("doc.txt", []string{"content"}))
	if len(tables) != 1 || tables[0].Source != "working" {
		t.Fatalf("expected fallback to working strategy, got %v", tables)
	}
}

func TestDetectTablesEmptyDocument(t *testing.T) {
	strategy := &stubStrategy{name: "any", tables: []document.Table{{}}}
	detector := NewDetector(strategy)

	if got := detector.DetectTables(context.Background(), nil); got != nil {
		t.Errorf("expected nil for nil document, got %v", got)
	}
	if got := detector.DetectTables(context.Background(), document.New("x", nil)); got != nil {
		t.Errorf("expected nil for empty document, got %v", got)
	}
	if strategy.calls != 0 {
		t.Errorf("strategies should not run on empty documents; calls = %d", strategy.calls)
	}
}

func TestDetectTablesCancelledContext(t *testing.T) {
	strategy := &stubStrategy{name: "any", tables: []document.Table{{}}}
	detector := NewDetector(strategy)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := detector.DetectTables(ctx, document.New("x", []string{"content"})); got != nil {
		t.Errorf("expected nil after cancellation, got %v", got)
	}
	if strategy.calls != 0 {
		t.Errorf("strategy ran after cancellation; calls = %d", strategy.calls)
	}
}

func TestStrategyNames(t *testing.T) {
	detector := NewDetector(&stubStrategy{name: "a"}, &stubStrategy{name: "b"})
	names := detector.StrategyNames()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("StrategyNames() = %v", names)
	}
}

func TestCandidateStrategy(t *testing.T) {
	candidates := []document.Table{{Headers: []string{"Name", "Value"}, Rows: [][]string{{"A", "1"}}}}
	strategy := NewCandidateStrategy(candidates)

	tables, err := strategy.Detect(context.Background(), document.New("x", []string{"text"}))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}
	if strategy.Name() != "candidate" {
		t.Errorf("Name() = %q", strategy.Name())
	}
}
