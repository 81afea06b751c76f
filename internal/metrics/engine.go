// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"holdings-scan/internal/document"
	"holdings-scan/internal/observability"
)

// Risk thresholds on the diversification score.
const (
	lowRiskThreshold      = 0.8
	moderateRiskThreshold = 0.5
	highRiskThreshold     = 0.3
)

// Engine aggregates validated securities into portfolio-level metrics.
// Only records that passed validation and carry a value participate;
// everything else is ignored, never fatal.
type Engine struct {
	observer *observability.Recorder
}

// NewEngine creates a metrics engine.
func NewEngine() *Engine {
	return &Engine{}
}

// SetObserver sets the diagnostics recorder.
func (e *Engine) SetObserver(observer *observability.Recorder) {
	e.observer = observer
}

// Compute produces portfolio metrics over the valid, priced subset of the
// given securities. Empty input yields zeroed metrics with RiskLevel
// Unknown. An unexpected fault inside aggregation is caught at this
// boundary and degraded the same way.
func (e *Engine) Compute(securities []document.Security) (m document.PortfolioMetrics) {
	finish := e.observer.StartTiming("metrics", "compute", "")

	defer func() {
		if r := recover(); r != nil {
			e.observer.RecordError("metrics", "compute", fmt.Errorf("aggregation failure: %v", r))
			m = document.PortfolioMetrics{RiskLevel: document.RiskUnknown}
			finish(false, map[string]any{"panic": fmt.Sprint(r)})
			return
		}
		finish(true, map[string]any{
			"securities_count": m.SecuritiesCount,
			"risk_level":       string(m.RiskLevel),
		})
	}()

	filtered := filterPriced(securities)
	if len(filtered) == 0 {
		return document.PortfolioMetrics{RiskLevel: document.RiskUnknown}
	}

	total := decimal.Zero
	for _, sec := range filtered {
		total = total.Add(decimal.NewFromFloat(*sec.Value))
	}

	score := diversificationScore(filtered, total)

	return document.PortfolioMetrics{
		TotalValue:           total.InexactFloat64(),
		SecuritiesCount:      len(filtered),
		DiversificationScore: score,
		RiskLevel:            riskLevel(score),
		SectorAllocation:     allocation(filtered, total, sectorKey),
		CurrencyAllocation:   allocation(filtered, total, currencyKey),
	}
}

// filterPriced keeps valid records with a known value.
func filterPriced(securities []document.Security) []document.Security {
	var out []document.Security
	for _, sec := range securities {
		if sec.IsValid && sec.Value != nil {
			out = append(out, sec)
		}
	}
	return out
}

// diversificationScore is clamp(1-HHI, 0, 1) where HHI is the sum of
// squared portfolio weights. A single holding concentrates everything,
// HHI=1, score 0.
func diversificationScore(filtered []document.Security, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}

	hhi := decimal.Zero
	for _, sec := range filtered {
		weight := decimal.NewFromFloat(*sec.Value).Div(total)
		hhi = hhi.Add(weight.Mul(weight))
	}

	score := decimal.NewFromInt(1).Sub(hhi).InexactFloat64()
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

// riskLevel classifies a diversification score.
func riskLevel(score float64) document.RiskLevel {
	switch {
	case score >= lowRiskThreshold:
		return document.RiskLow
	case score >= moderateRiskThreshold:
		return document.RiskModerate
	case score >= highRiskThreshold:
		return document.RiskHigh
	default:
		return document.RiskVeryHigh
	}
}

func sectorKey(sec document.Security) string {
	if sec.Sector == "" {
		return "Unknown"
	}
	return sec.Sector
}

func currencyKey(sec document.Security) string {
	if sec.Currency == "" {
		return "USD"
	}
	return sec.Currency
}

// allocation groups the filtered records by key, sums value per group, and
// expresses each group as a percentage of total, sorted descending by
// value. Percentages over the filtered subset sum to 100.
func allocation(filtered []document.Security, total decimal.Decimal, key func(document.Security) string) []document.AllocationEntry {
	groups := make(map[string]decimal.Decimal)
	for _, sec := range filtered {
		k := key(sec)
		groups[k] = groups[k].Add(decimal.NewFromFloat(*sec.Value))
	}

	hundred := decimal.NewFromInt(100)
	entries := make([]document.AllocationEntry, 0, len(groups))
	for k, v := range groups {
		pct := 0.0
		if !total.IsZero() {
			pct = v.Mul(hundred).Div(total).InexactFloat64()
		}
		entries = append(entries, document.AllocationEntry{
			Key:        k,
			Value:      v.InexactFloat64(),
			Percentage: pct,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Value != entries[j].Value {
			return entries[i].Value > entries[j].Value
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}
