// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package consoleui

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestTUILogHandlerLevel(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	if handler.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("info enabled on a warn handler")
	}
	if !handler.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled on a warn handler")
	}
}

func TestTUILogHandlerDropsWithoutProgram(t *testing.T) {
	handler := NewTUILogHandler(slog.LevelWarn)
	record := slog.NewRecord(time.Now(), slog.LevelWarn, "dropped", 0)
	if err := handler.Handle(context.Background(), record); err != nil {
		t.Fatalf("Handle: %v", err)
	}
}

func TestTUILogHandlerSummary(t *testing.T) {
	root := NewTUILogHandler(slog.LevelWarn)
	derived := root.WithAttrs([]slog.Attr{slog.String("component", "roster")}).WithGroup("request").(*TUILogHandler)

	record := slog.NewRecord(time.Now(), slog.LevelWarn, "fetch failed", 0)
	record.AddAttrs(slog.Int("status", 503))

	want := "fetch failed (component=roster, request.status=503)"
	if got := derived.summarize(record); got != want {
		t.Errorf("summary = %q, want %q", got, want)
	}
	if derived.program != root.program {
		t.Error("derived handler does not share the program pointer")
	}
	if len(root.attrs) != 0 {
		t.Error("WithAttrs mutated the root handler")
	}
}
