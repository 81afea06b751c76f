// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"holdings-scan/internal/core"
	"holdings-scan/internal/document"
	"holdings-scan/internal/formatters"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable portfolio summary with colors"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(result *core.Result, options formatters.FormatterOptions) (string, error) {
	if options.NoColor {
		color.NoColor = true
	}

	var sb strings.Builder

	f.colors["white"].Fprintln(&sb, "Portfolio Analysis")
	if result.SourcePath != "" {
		fmt.Fprintf(&sb, "Source: %s\n", result.SourcePath)
	}
	fmt.Fprintf(&sb, "Run: %s\n\n", result.RunID)

	f.writeStructure(&sb, result)
	f.writeSecurities(&sb, result, options)
	f.writeMetrics(&sb, result.Metrics)

	if options.IncludeDiagnostics && len(result.Diagnostics) > 0 {
		f.colors["cyan"].Fprintln(&sb, "Diagnostics:")
		for _, event := range result.Diagnostics {
			status := "ok"
			if !event.Success {
				status = "failed"
			}
			fmt.Fprintf(&sb, "  %s/%s: %s (%dms)\n", event.Component, event.Operation, status, event.DurationMs)
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

func (f *Formatter) writeStructure(sb *strings.Builder, result *core.Result) {
	fmt.Fprintf(sb, "Tables: %d", len(result.Tables))
	if len(result.Tables) > 0 {
		sources := make([]string, 0, len(result.Tables))
		for _, t := range result.Tables {
			sources = append(sources, t.Source)
		}
		fmt.Fprintf(sb, " (via %s)", strings.Join(uniqueStrings(sources), ", "))
	}
	sb.WriteString("\n")

	fmt.Fprintf(sb, "Sections: %d, ISINs: %d\n", len(result.Sections), len(result.ISINs))
	if len(result.Headers) > 0 {
		fmt.Fprintf(sb, "Repeated header: %q\n", result.Headers[0])
	}
	if len(result.Footers) > 0 {
		fmt.Fprintf(sb, "Repeated footer: %q\n", result.Footers[0])
	}
	sb.WriteString("\n")
}

func (f *Formatter) writeSecurities(sb *strings.Builder, result *core.Result, options formatters.FormatterOptions) {
	if len(result.Securities) == 0 {
		fmt.Fprintln(sb, "No securities found.")
		sb.WriteString("\n")
		return
	}

	f.colors["white"].Fprintf(sb, "Securities (%d):\n", len(result.Securities))
	for _, sec := range result.Securities {
		mark := f.colors["green"].Sprint("✓")
		if !sec.IsValid {
			mark = f.colors["red"].Sprint("✗")
		}

		line := fmt.Sprintf("  %s %s", mark, sec.Name)
		if sec.ISIN != "" {
			line += fmt.Sprintf(" [%s]", sec.ISIN)
		}
		if sec.Value != nil {
			line += fmt.Sprintf("  %s %.2f", sec.Currency, *sec.Value)
		}
		fmt.Fprintln(sb, line)

		if options.Verbose && len(sec.Errors) > 0 {
			for _, msg := range sec.Errors {
				f.colors["yellow"].Fprintf(sb, "      - %s\n", msg)
			}
		}
	}
	sb.WriteString("\n")
}

func (f *Formatter) writeMetrics(sb *strings.Builder, m document.PortfolioMetrics) {
	f.colors["white"].Fprintln(sb, "Portfolio metrics:")
	fmt.Fprintf(sb, "  Total value:     %.2f\n", m.TotalValue)
	fmt.Fprintf(sb, "  Securities:      %d\n", m.SecuritiesCount)
	fmt.Fprintf(sb, "  Diversification: %.2f\n", m.DiversificationScore)
	fmt.Fprintf(sb, "  Risk level:      %s\n", f.riskColor(m.RiskLevel).Sprint(string(m.RiskLevel)))

	writeAllocation(sb, "Sector allocation", m.SectorAllocation)
	writeAllocation(sb, "Currency allocation", m.CurrencyAllocation)
}

func writeAllocation(sb *strings.Builder, title string, entries []document.AllocationEntry) {
	if len(entries) == 0 {
		return
	}
	fmt.Fprintf(sb, "  %s:\n", title)
	for _, entry := range entries {
		fmt.Fprintf(sb, "    %-20s %12.2f  %5.1f%%\n", entry.Key, entry.Value, entry.Percentage)
	}
}

func (f *Formatter) riskColor(level document.RiskLevel) *color.Color {
	switch level {
	case document.RiskLow:
		return f.colors["green"]
	case document.RiskModerate:
		return f.colors["yellow"]
	case document.RiskHigh, document.RiskVeryHigh:
		return f.colors["red"]
	default:
		return f.colors["white"]
	}
}

func uniqueStrings(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	var out []string
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
