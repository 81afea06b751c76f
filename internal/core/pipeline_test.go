// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"holdings-scan/internal/document"
	"holdings-scan/internal/observability"
)

func TestAnalyzeNilDocument(t *testing.T) {
	_, err := Analyze(context.Background(), nil, Options{})
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	result, err := Analyze(context.Background(), document.New("empty.txt", nil), Options{})
	require.NoError(t, err)

	assert.Empty(t, result.Tables)
	assert.Empty(t, result.Securities)
	assert.Equal(t, document.RiskUnknown, result.Metrics.RiskLevel)
}

func TestAnalyzeEndToEnd(t *testing.T) {
	pages := []string{
		"Acme Capital Statement\n" +
			"PORTFOLIO HOLDINGS\n" +
			"Name | ISIN | Value\n" +
			"Apple Inc. | US0378331005 | 600\n" +
			"Exxon Mobil | US30231G1022 | 400\n" +
			"Page 1 of 3",
		"Acme Capital Statement\nnarrative text\nPage 2 of 3",
		"Acme Capital Statement\nclosing notes\nPage 3 of 3",
	}

	result, err := Analyze(context.Background(), document.New("statement.txt", pages), Options{})
	require.NoError(t, err)

	require.Len(t, result.Tables, 1)
	assert.Equal(t, "text-heuristic", result.Tables[0].Source)

	require.Len(t, result.Securities, 2)
	assert.True(t, result.Securities[0].IsValid)
	assert.Equal(t, "Apple Inc.", result.Securities[0].Name)

	assert.Equal(t, 1000.0, result.Metrics.TotalValue)
	assert.Equal(t, 2, result.Metrics.SecuritiesCount)
	assert.InDelta(t, 0.48, result.Metrics.DiversificationScore, 1e-9)

	assert.Contains(t, result.ISINs, "US0378331005")
	assert.Contains(t, result.ISINs, "US30231G1022")

	require.Len(t, result.Headers, 3)
	assert.Equal(t, "Acme Capital Statement", result.Headers[0])
	require.Len(t, result.Footers, 3)

	require.NotEmpty(t, result.Sections)
	assert.Equal(t, "PORTFOLIO HOLDINGS", result.Sections[0].Title)
}

func TestAnalyzeCandidateTablesWin(t *testing.T) {
	// The document text would also yield a table through the heuristic;
	// the candidate strategy must pre-empt it.
	pages := []string{"Name | ISIN | Value\nOther Corp | US5949181045 | 100\nMore Corp | US0378331005 | 100"}

	opts := Options{
		CandidateTables: []document.Table{
			{
				Headers: []string{"Name", "ISIN", "Value"},
				Rows:    [][]string{{"Candidate Corp", "US0378331005", "500"}},
			},
		},
	}

	result, err := Analyze(context.Background(), document.New("doc.txt", pages), opts)
	require.NoError(t, err)

	require.Len(t, result.Tables, 1)
	assert.Equal(t, "candidate", result.Tables[0].Source)
	require.Len(t, result.Securities, 1)
	assert.Equal(t, "Candidate Corp", result.Securities[0].Name)
}

func TestAnalyzeRecordsDiagnostics(t *testing.T) {
	opts := Options{Observability: observability.LevelMetrics}
	result, err := Analyze(context.Background(), document.New("doc.txt", []string{"some text"}), opts)
	require.NoError(t, err)

	assert.NotEmpty(t, result.RunID)
	assert.NotEmpty(t, result.Diagnostics)
	for _, event := range result.Diagnostics {
		assert.Equal(t, result.RunID, event.RunID)
	}
}

func TestAnalyzeNoDiagnosticsByDefault(t *testing.T) {
	result, err := Analyze(context.Background(), document.New("doc.txt", []string{"some text"}), Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}
