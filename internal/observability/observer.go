// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Recorder collects diagnostic events from pipeline components. Events are
// accumulated in memory and returned alongside pipeline results, so library
// code never writes to process-wide logs. When a debug writer is set, events
// are additionally streamed as JSON lines.
type Recorder struct {
	mu     sync.Mutex
	runID  string
	events []Event
	level  Level
	writer io.Writer
}

// Level controls how much is recorded.
type Level int

const (
	LevelOff     Level = 0
	LevelMetrics Level = 1
	LevelDebug   Level = 2
)

// Event is one diagnostic record emitted by a component.
type Event struct {
	RunID      string         `json:"run_id"`
	Component  string         `json:"component"`
	Operation  string         `json:"operation"`
	Target     string         `json:"target,omitempty"`
	DurationMs int64          `json:"duration_ms,omitempty"`
	Success    bool           `json:"success"`
	Error      string         `json:"error,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewRecorder creates a recorder for one pipeline run.
func NewRecorder(level Level, debugWriter io.Writer) *Recorder {
	return &Recorder{
		runID:  uuid.NewString(),
		level:  level,
		writer: debugWriter,
	}
}

// RunID returns the unique identifier for this run.
func (r *Recorder) RunID() string {
	if r == nil {
		return ""
	}
	return r.runID
}

// StartTiming returns a function to complete timing for one operation.
func (r *Recorder) StartTiming(component, operation, target string) func(success bool, metadata map[string]any) {
	if r == nil || r.level == LevelOff {
		return func(bool, map[string]any) {}
	}
	start := time.Now()

	return func(success bool, metadata map[string]any) {
		r.Record(Event{
			Component:  component,
			Operation:  operation,
			Target:     target,
			DurationMs: time.Since(start).Milliseconds(),
			Success:    success,
			Metadata:   metadata,
		})
	}
}

// RecordError records a non-fatal failure that a component absorbed.
func (r *Recorder) RecordError(component, operation string, err error) {
	if r == nil || err == nil {
		return
	}
	r.Record(Event{
		Component: component,
		Operation: operation,
		Success:   false,
		Error:     err.Error(),
	})
}

// Record appends an event to the run's diagnostics.
func (r *Recorder) Record(event Event) {
	if r == nil || r.level == LevelOff {
		return
	}

	event.RunID = r.runID

	r.mu.Lock()
	r.events = append(r.events, event)
	r.mu.Unlock()

	if r.level == LevelDebug && r.writer != nil {
		json.NewEncoder(r.writer).Encode(event)
	}
}

// Events returns a copy of the recorded diagnostics.
func (r *Recorder) Events() []Event {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}
