// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package observability

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestRecorderCollectsEvents(t *testing.T) {
	r := NewRecorder(LevelMetrics, nil)

	finish := r.StartTiming("structure", "detect_tables", "statement.pdf")
	finish(true, map[string]any{"table_count": 2})
	r.RecordError("extract", "holdings", errors.New("boom"))

	events := r.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	timing := events[0]
	if timing.Component != "structure" || timing.Operation != "detect_tables" {
		t.Errorf("unexpected timing event: %+v", timing)
	}
	if !timing.Success {
		t.Error("timing event should be successful")
	}
	if timing.RunID != r.RunID() {
		t.Errorf("event run ID %q does not match recorder %q", timing.RunID, r.RunID())
	}

	failure := events[1]
	if failure.Success || failure.Error != "boom" {
		t.Errorf("unexpected error event: %+v", failure)
	}
}

func TestRecorderLevelOff(t *testing.T) {
	r := NewRecorder(LevelOff, nil)

	finish := r.StartTiming("structure", "detect_tables", "")
	finish(true, nil)
	r.RecordError("x", "y", errors.New("ignored"))

	if events := r.Events(); len(events) != 0 {
		t.Errorf("expected no events at LevelOff, got %d", len(events))
	}
}

func TestRecorderNilSafe(t *testing.T) {
	var r *Recorder

	finish := r.StartTiming("a", "b", "c")
	finish(true, nil)
	r.RecordError("a", "b", errors.New("x"))

	if r.Events() != nil {
		t.Error("nil recorder should return nil events")
	}
	if r.RunID() != "" {
		t.Error("nil recorder should return empty run ID")
	}
}

func TestRecorderDebugStreaming(t *testing.T) {
	var buf bytes.Buffer
	r := NewRecorder(LevelDebug, &buf)

	r.Record(Event{Component: "metrics", Operation: "compute", Success: true})

	line := strings.TrimSpace(buf.String())
	if line == "" {
		t.Fatal("expected a streamed JSON line")
	}
	var event Event
	if err := json.Unmarshal([]byte(line), &event); err != nil {
		t.Fatalf("streamed line is not valid JSON: %v", err)
	}
	if event.Component != "metrics" {
		t.Errorf("component = %q", event.Component)
	}
}

func TestRecorderUniqueRunIDs(t *testing.T) {
	a := NewRecorder(LevelMetrics, nil)
	b := NewRecorder(LevelMetrics, nil)
	if a.RunID() == b.RunID() {
		t.Error("two recorders should not share a run ID")
	}
}
