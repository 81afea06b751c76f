// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"context"
	"reflect"
	"testing"

	"holdings-scan/internal/document"
)

func TestTextHeuristicDetect(t *testing.T) {
	text := "Quarterly Report\n" +
		"\n" +
		"Security Name | ISIN | Market Value\n" +
		"Apple Inc. | US0378331005 | 1,234.56\n" +
		"Microsoft Corp | US5949181045 | 2,345.67\n" +
		"\n" +
		"Closing remarks follow the table."

	strategy := NewTextHeuristicStrategy()
	tables, err := strategy.Detect(context.Background(), document.New("report.txt", []string{text}))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("expected 1 table, got %d", len(tables))
	}

	table := tables[0]
	wantHeaders := []string{"Security Name", "ISIN", "Market Value"}
	if !reflect.DeepEqual(table.Headers, wantHeaders) {
		t.Errorf("headers = %v, want %v", table.Headers, wantHeaders)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(table.Rows))
	}
	wantRow := []string{"Apple Inc.", "US0378331005", "1,234.56"}
	if !reflect.DeepEqual(table.Rows[0], wantRow) {
		t.Errorf("row 0 = %v, want %v", table.Rows[0], wantRow)
	}
	if table.Source != "text-heuristic" {
		t.Errorf("source = %q, want text-heuristic", table.Source)
	}
}

func TestTextHeuristicDropsShortRuns(t *testing.T) {
	// One header plus a single data row is not enough evidence.
	text := "Name | Value\nApple | 100\n\nplain prose here"

	strategy := NewTextHeuristicStrategy()
	tables, err := strategy.Detect(context.Background(), document.New("short.txt", []string{text}))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(tables) != 0 {
		t.Errorf("expected no tables, got %d", len(tables))
	}
}

func TestTextHeuristicMultipleRuns(t *testing.T) {
	text := "Name | Value\nA | 1\nB | 2\n" +
		"interlude\n" +
		"Sector\tWeight\nTech\t40%\nEnergy\t60%\n"

	strategy := NewTextHeuristicStrategy()
	tables, err := strategy.Detect(context.Background(), document.New("two.txt", []string{text}))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 tables, got %d", len(tables))
	}
	if tables[1].Headers[0] != "Sector" {
		t.Errorf("second table header = %v", tables[1].Headers)
	}
}

func TestTextHeuristicEmptyDocument(t *testing.T) {
	strategy := NewTextHeuristicStrategy()
	tables, err := strategy.Detect(context.Background(), document.New("empty.txt", nil))
	if err != nil {
		t.Fatalf("Detect returned error: %v", err)
	}
	if tables != nil {
		t.Errorf("expected nil tables for empty document, got %v", tables)
	}
}

func TestLooksLikeTableRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"pipe separated", "a | b", true},
		{"tab separated", "a\tb", true},
		{"three fields", "Apple Inc. 1000", true},
		{"number words number", "100 Treasury Notes 99.50", true},
		{"short prose", "hello world", false},
		{"empty line", "", false},
		{"whitespace only", "   ", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeTableRow(tt.line); got != tt.want {
				t.Errorf("looksLikeTableRow(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}

func TestSplitRow(t *testing.T) {
	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "pipes win over spaces",
			line: "Apple Inc. | US0378331005 | 1,234.56",
			want: []string{"Apple Inc.", "US0378331005", "1,234.56"},
		},
		{
			name: "tabs",
			line: "Apple\t100\t5.5",
			want: []string{"Apple", "100", "5.5"},
		},
		{
			name: "fixed width double spaces",
			line: "Apple Inc.  US0378331005  1,234.56",
			want: []string{"Apple Inc.", "US0378331005", "1,234.56"},
		},
		{
			name: "single spaces fall back to fields",
			line: "Apple 100 5.5",
			want: []string{"Apple", "100", "5.5"},
		},
		{
			name: "empty cells dropped",
			line: "| a |  | b |",
			want: []string{"a", "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := splitRow(tt.line); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("splitRow(%q) = %v, want %v", tt.line, got, tt.want)
			}
		})
	}
}
