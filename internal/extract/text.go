// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package extract

import (
	"regexp"
	"strings"

	"holdings-scan/internal/document"
)

// isinHoldingPattern matches the primary free-text holding form:
// "US Treasury Bond (US912810SP08) $2,450,000".
var isinHoldingPattern = regexp.MustCompile(
	`([A-Za-z][A-Za-z0-9 .,&'\-]*?)\s*\(([A-Z]{2}[A-Z0-9]{10})\)\s*\$?\s*(-?[\d,]+(?:\.\d+)?)`)

// bareHoldingPattern is the fallback form without an ISIN:
// "Vanguard Total Stock Market $12,500.00". It fires only when the primary
// pattern matched nothing, and only for multi-word names, which suppresses
// most false positives.
var bareHoldingPattern = regexp.MustCompile(
	`(?m)([A-Za-z][A-Za-z .,&'\-]*[A-Za-z.])\s+\$\s*(-?[\d,]+(?:\.\d+)?)`)

// HoldingsFromText extracts securities from free text. The parenthetical
// ISIN pattern is authoritative; the bare name/value fallback runs only
// when it produced nothing at all.
func HoldingsFromText(text string) []document.Security {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	if holdings := isinHoldings(text); len(holdings) > 0 {
		return holdings
	}
	return bareHoldings(text)
}

func isinHoldings(text string) []document.Security {
	var holdings []document.Security
	for _, m := range isinHoldingPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		value := parseNumeric(m[3])
		if name == "" || value <= 0 {
			continue
		}
		holdings = append(holdings, document.Security{
			Name:   name,
			ISIN:   m[2],
			Value:  document.Float(value),
			Source: "text-pattern",
		})
	}
	return holdings
}

func bareHoldings(text string) []document.Security {
	var holdings []document.Security
	for _, m := range bareHoldingPattern.FindAllStringSubmatch(text, -1) {
		name := strings.TrimSpace(m[1])
		if len(strings.Fields(name)) < 2 {
			continue
		}
		value := parseNumeric(m[2])
		if value <= 0 {
			continue
		}
		holdings = append(holdings, document.Security{
			Name:   name,
			Value:  document.Float(value),
			Source: "text-fallback",
		})
	}
	return holdings
}
