// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package structure

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"holdings-scan/internal/document"
	"holdings-scan/internal/resilience"
)

// CandidateStrategy adapts caller-supplied candidate tables (output of an
// upstream geometry detector) into the cascade. It sits first in the
// default priority order.
type CandidateStrategy struct {
	tables []document.Table
}

// NewCandidateStrategy wraps tables handed in by the caller.
func NewCandidateStrategy(tables []document.Table) *CandidateStrategy {
	return &CandidateStrategy{tables: tables}
}

// Name returns the strategy identifier.
func (s *CandidateStrategy) Name() string { return "candidate" }

// Detect returns the caller-supplied tables, dropping any without both
// headers and rows.
func (s *CandidateStrategy) Detect(_ context.Context, _ *document.Document) ([]document.Table, error) {
	var tables []document.Table
	for _, t := range s.tables {
		if len(t.Headers) == 0 || len(t.Rows) == 0 {
			continue
		}
		tables = append(tables, t)
	}
	return tables, nil
}

// CommandStrategy runs an out-of-process table detector: a command that
// reads document text on stdin and writes a JSON array of tables on stdout.
// Calls are bounded by a timeout, retried on transient failures, and
// guarded by a circuit breaker so a flapping detector degrades to "no
// tables" instead of stalling every document.
type CommandStrategy struct {
	command string
	args    []string
	timeout time.Duration

	retry   resilience.RetryConfig
	breaker *resilience.CircuitBreaker
}

// commandTable is the wire shape an external detector emits.
type commandTable struct {
	Headers    []string   `json:"headers"`
	Rows       [][]string `json:"rows"`
	Page       int        `json:"page,omitempty"`
	Confidence float64    `json:"confidence,omitempty"`
}

// NewCommandStrategy creates an external detector strategy.
func NewCommandStrategy(command string, args []string, timeout time.Duration) *CommandStrategy {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	name := "external:" + filepath.Base(command)
	return &CommandStrategy{
		command: command,
		args:    args,
		timeout: timeout,
		retry:   resilience.DetectorRetryConfig(),
		breaker: resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig(name)),
	}
}

// Name returns the strategy identifier.
func (s *CommandStrategy) Name() string {
	return "external:" + filepath.Base(s.command)
}

// Detect invokes the external command. Every failure mode - missing binary,
// timeout, bad JSON, open circuit - comes back as an error for the cascade
// to skip over.
func (s *CommandStrategy) Detect(ctx context.Context, doc *document.Document) ([]document.Table, error) {
	var tables []document.Table

	err := resilience.RetryWithCircuitBreaker(ctx, s.retry, s.breaker, func(ctx context.Context) error {
		out, err := s.run(ctx, doc.Text)
		if err != nil {
			return err
		}
		tables, err = parseCommandTables(out)
		return err
	})
	if err != nil {
		return nil, err
	}
	return tables, nil
}

func (s *CommandStrategy) run(ctx context.Context, input string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, s.command, s.args...)
	cmd.Stdin = strings.NewReader(input)

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, resilience.NewTransientError(
				fmt.Sprintf("detector %s timed out after %v", s.command, s.timeout), err)
		}
		return nil, fmt.Errorf("detector %s failed: %w", s.command, err)
	}
	return out, nil
}

func parseCommandTables(data []byte) ([]document.Table, error) {
	var raw []commandTable
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("malformed detector output: %w", err)
	}

	tables := make([]document.Table, 0, len(raw))
	for _, t := range raw {
		if len(t.Headers) == 0 || len(t.Rows) == 0 {
			continue
		}
		tables = append(tables, document.Table{
			Headers:    t.Headers,
			Rows:       t.Rows,
			Page:       t.Page,
			Confidence: t.Confidence,
		})
	}
	return tables, nil
}
