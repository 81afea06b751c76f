// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"holdings-scan/internal/config"
	"holdings-scan/internal/core"
	"holdings-scan/internal/document"
	"holdings-scan/internal/formatters"
	_ "holdings-scan/internal/formatters/csv"
	_ "holdings-scan/internal/formatters/json"
	_ "holdings-scan/internal/formatters/text"
	"holdings-scan/internal/observability"
	"holdings-scan/internal/structure"
	"holdings-scan/internal/version"
)

// configFlags holds command line flag values
type configFlags struct {
	filePath        string
	tablesPath      string
	outputFormat    string
	configFile      string
	profileName     string
	detectorCmd     string
	detectorTimeout time.Duration
	verbose         bool
	debug           bool
	noColor         bool
	showDiagnostics bool
	showVersion     bool
	listFormats     bool
	listProfiles    bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format    string
	verbose   bool
	debug     bool
	noColor   bool
	detectors []config.DetectorConfig
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Println(version.Info())
		return
	}
	if flags.listFormats {
		listFormats()
		return
	}

	cfg := config.LoadConfigOrDefault(flags.configFile)

	if flags.listProfiles {
		listProfiles(cfg)
		return
	}

	var activeProfile *config.Profile
	if flags.profileName != "" {
		activeProfile = cfg.GetProfile(flags.profileName)
		if activeProfile == nil {
			fmt.Fprintf(os.Stderr, "Error: profile %q not found. Available: %s\n",
				flags.profileName, strings.Join(cfg.ListProfiles(), ", "))
			os.Exit(1)
		}
	}

	final := resolveConfiguration(cfg, activeProfile, flags)

	if final.noColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	if flags.filePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -file is required")
		flag.Usage()
		os.Exit(1)
	}

	doc, err := document.DefaultRegistry().Load(flags.filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading document: %v\n", err)
		os.Exit(1)
	}

	opts := core.Options{
		Observability: observability.LevelMetrics,
	}
	if final.debug {
		opts.Observability = observability.LevelDebug
		opts.DebugWriter = os.Stderr
	}

	if flags.tablesPath != "" {
		candidates, err := loadCandidateTables(flags.tablesPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading candidate tables: %v\n", err)
			os.Exit(1)
		}
		opts.CandidateTables = candidates
	}

	for _, d := range final.detectors {
		opts.ExtraStrategies = append(opts.ExtraStrategies,
			structure.NewCommandStrategy(d.Command, d.Args, d.Timeout()))
	}

	result, err := core.Analyze(context.Background(), doc, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing document: %v\n", err)
		os.Exit(1)
	}

	output, err := formatters.Export(final.format, result, formatters.FormatterOptions{
		Verbose:            final.verbose,
		NoColor:            final.noColor,
		IncludeDiagnostics: flags.showDiagnostics || final.debug,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting output: %v\n", err)
		os.Exit(1)
	}

	fmt.Print(output)
	if !strings.HasSuffix(output, "\n") {
		fmt.Println()
	}
}

func parseFlags() *configFlags {
	flags := &configFlags{}

	flag.StringVar(&flags.filePath, "file", "", "Document to analyze (.pdf or extracted text)")
	flag.StringVar(&flags.tablesPath, "tables", "", "JSON file with candidate tables from an upstream detector")
	flag.StringVar(&flags.outputFormat, "format", "", "Output format: text, json, csv")
	flag.StringVar(&flags.configFile, "config", "", "Path to configuration file")
	flag.StringVar(&flags.profileName, "profile", "", "Named configuration profile to apply")
	flag.StringVar(&flags.detectorCmd, "detector-cmd", "", "External table-detector command (takes text on stdin, emits JSON tables)")
	flag.DurationVar(&flags.detectorTimeout, "timeout", 30*time.Second, "Timeout per external detector call")
	flag.BoolVar(&flags.verbose, "verbose", false, "Show per-security validation detail")
	flag.BoolVar(&flags.debug, "debug", false, "Stream diagnostics to stderr while running")
	flag.BoolVar(&flags.noColor, "no-color", false, "Disable colored output")
	flag.BoolVar(&flags.showDiagnostics, "show-diagnostics", false, "Include pipeline diagnostics in the output")
	flag.BoolVar(&flags.showVersion, "version", false, "Print version information and exit")
	flag.BoolVar(&flags.listFormats, "list-formats", false, "List available output formats and exit")
	flag.BoolVar(&flags.listProfiles, "list-profiles", false, "List configured profiles and exit")

	flag.Parse()
	return flags
}

// resolveConfiguration resolves final values with precedence:
// flags > profile > config defaults > built-ins.
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags) *finalConfiguration {
	final := &finalConfiguration{}

	final.format = "text"
	if cfg.Defaults.Format != "" {
		final.format = cfg.Defaults.Format
	}
	if activeProfile != nil && activeProfile.Format != "" {
		final.format = activeProfile.Format
	}
	if isFlagSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}

	final.verbose = cfg.Defaults.Verbose
	if activeProfile != nil {
		final.verbose = final.verbose || activeProfile.Verbose
	}
	if isFlagSet("verbose") {
		final.verbose = flags.verbose
	}

	final.debug = cfg.Defaults.Debug
	if activeProfile != nil {
		final.debug = final.debug || activeProfile.Debug
	}
	if isFlagSet("debug") {
		final.debug = flags.debug
	}

	final.noColor = cfg.Defaults.NoColor
	if activeProfile != nil {
		final.noColor = final.noColor || activeProfile.NoColor
	}
	if isFlagSet("no-color") {
		final.noColor = flags.noColor
	}

	final.detectors = cfg.Detectors
	if activeProfile != nil && len(activeProfile.Detectors) > 0 {
		final.detectors = activeProfile.Detectors
	}
	if flags.detectorCmd != "" {
		parts := strings.Fields(flags.detectorCmd)
		final.detectors = append(final.detectors, config.DetectorConfig{
			Command:        parts[0],
			Args:           parts[1:],
			TimeoutSeconds: int(flags.detectorTimeout.Seconds()),
		})
	}

	return final
}

// isFlagSet checks whether a flag was explicitly provided on the command line
func isFlagSet(name string) bool {
	found := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// loadCandidateTables reads upstream detector output: a JSON array of
// tables with headers, rows, and optional page/confidence.
func loadCandidateTables(path string) ([]document.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading tables file: %w", err)
	}
	var tables []document.Table
	if err := json.Unmarshal(data, &tables); err != nil {
		return nil, fmt.Errorf("error parsing tables file: %w", err)
	}
	return tables, nil
}

func listFormats() {
	fmt.Println("Available output formats:")
	for _, name := range formatters.List() {
		f, _ := formatters.Get(name)
		fmt.Printf("  %-6s %s\n", name, f.Description())
	}
}

func listProfiles(cfg *config.Config) {
	names := cfg.ListProfiles()
	if len(names) == 0 {
		fmt.Println("No profiles configured.")
		return
	}
	fmt.Println("Configured profiles:")
	for _, name := range names {
		profile := cfg.GetProfile(name)
		fmt.Printf("  %-12s %s\n", name, profile.Description)
	}
}
