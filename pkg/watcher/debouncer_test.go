package watcher

import (
	"context"
	"testing"
	"time"
)

func TestDebouncerBatchesBurst(t *testing.T) {
	input := make(chan ChangeEvent)
	d := NewDebouncer(input, 20*time.Millisecond, time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	input <- ChangeEvent{Type: ChangeTypeDescription, Paths: []string{"graph.toml"}}
	input <- ChangeEvent{Type: ChangeTypeDescription, Paths: []string{"graph.toml"}}
	input <- ChangeEvent{Type: ChangeTypeConfig, Paths: []string{"nodegraph.toml"}}

	first := receive(t, d.Output())
	second := receive(t, d.Output())

	if first.Type != ChangeTypeConfig {
		t.Errorf("Expected config changes first, got %v", first.Type)
	}
	if second.Type != ChangeTypeDescription || len(second.Paths) != 1 {
		t.Errorf("Expected one de-duplicated description path, got %+v", second)
	}
}

func TestDebouncerMaxWait(t *testing.T) {
	input := make(chan ChangeEvent)
	d := NewDebouncer(input, time.Hour, 30*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	input <- ChangeEvent{Type: ChangeTypeDescription, Paths: []string{"graph.toml"}}

	if event := receive(t, d.Output()); event.Type != ChangeTypeDescription {
		t.Errorf("Expected description event, got %v", event.Type)
	}
}

func TestDebouncerFlushesOnClose(t *testing.T) {
	input := make(chan ChangeEvent, 1)
	d := NewDebouncer(input, time.Hour, time.Hour)
	d.Start(context.Background())

	input <- ChangeEvent{Type: ChangeTypeDescription, Paths: []string{"graph.toml"}}
	close(input)

	if event := receive(t, d.Output()); len(event.Paths) != 1 {
		t.Errorf("Expected pending event on close, got %+v", event)
	}
	if _, ok := <-d.Output(); ok {
		t.Error("Expected output to be closed")
	}
}

func TestAnalyzeChanges(t *testing.T) {
	desc := AnalyzeChanges(ChangeEvent{Type: ChangeTypeDescription, Paths: []string{"a"}})
	if !desc.Rebuild || desc.ReloadConfig {
		t.Errorf("Unexpected analysis for description change: %+v", desc)
	}

	cfg := AnalyzeChanges(ChangeEvent{Type: ChangeTypeConfig})
	if !cfg.Rebuild || !cfg.ReloadConfig {
		t.Errorf("Unexpected analysis for config change: %+v", cfg)
	}
}

func receive(t *testing.T, ch <-chan ChangeEvent) ChangeEvent {
	t.Helper()
	select {
	case event, ok := <-ch:
		if !ok {
			t.Fatal("Output closed unexpectedly")
		}
		return event
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for debounced event")
	}
	return ChangeEvent{}
}
