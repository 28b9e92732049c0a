package realtime

import (
	"context"
	"testing"
	"time"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/internal/evaluators"
)

func simpleChart(t *testing.T) *hscx.StateChart {
	t.Helper()
	b := hscx.NewBuilder("test", "root")
	b.State("root").Compound("a")
	b.State("root.a")
	b.State("root.b")
	b.State("root.a").On("event1", "root.b", nil, nil)
	chart, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	return chart
}

func newTestInterpreter(t *testing.T) *hscx.Interpreter {
	t.Helper()
	interp, err := hscx.NewInterpreter(simpleChart(t), evaluators.NewRegistry(nil))
	if err != nil {
		t.Fatalf("NewInterpreter failed: %v", err)
	}
	return interp
}

func TestRuntimeCreation(t *testing.T) {
	rt := NewRuntime(newTestInterpreter(t), Config{TickRate: 10 * time.Millisecond})
	if rt == nil {
		t.Fatal("Runtime is nil")
	}
	if rt.interp == nil {
		t.Fatal("wrapped interpreter is nil")
	}
}

func TestTickLoopTiming(t *testing.T) {
	rt := NewRuntime(newTestInterpreter(t), Config{TickRate: 10 * time.Millisecond})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	start := time.Now()
	startTick := rt.GetTickNumber()

	time.Sleep(105 * time.Millisecond) // ~10 ticks

	endTick := rt.GetTickNumber()
	elapsed := time.Since(start)

	tickDiff := endTick - startTick
	if tickDiff < 8 || tickDiff > 12 {
		t.Errorf("Expected ~10 ticks, got %d", tickDiff)
	}

	expectedDuration := 100 * time.Millisecond
	if elapsed < expectedDuration-20*time.Millisecond || elapsed > expectedDuration+20*time.Millisecond {
		t.Errorf("Expected ~%v, got %v", expectedDuration, elapsed)
	}
}

func TestSimpleTransition(t *testing.T) {
	rt := NewRuntime(newTestInterpreter(t), Config{TickRate: 10 * time.Millisecond})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	cfg := rt.Configuration()
	if !contains(cfg, "root.a") {
		t.Errorf("expected initial configuration to contain root.a, got %v", cfg)
	}

	if err := rt.SendEvent(hscx.NewEvent("event1")); err != nil {
		t.Fatalf("Failed to send event: %v", err)
	}

	time.Sleep(15 * time.Millisecond)

	cfg = rt.Configuration()
	if !contains(cfg, "root.b") {
		t.Errorf("expected post-transition configuration to contain root.b, got %v", cfg)
	}
}

func TestEventBatching(t *testing.T) {
	rt := NewRuntime(newTestInterpreter(t), Config{
		TickRate:         10 * time.Millisecond,
		MaxEventsPerTick: 5,
	})

	ctx := context.Background()
	if err := rt.Start(ctx); err != nil {
		t.Fatalf("Failed to start runtime: %v", err)
	}
	defer rt.Stop()

	for i := 0; i < 5; i++ {
		if err := rt.SendEvent(hscx.NewEvent("filler")); err != nil {
			t.Errorf("Failed to send event %d: %v", i, err)
		}
	}

	if err := rt.SendEvent(hscx.NewEvent("overflow")); err == nil {
		t.Error("Expected error when batch is full, got nil")
	}

	time.Sleep(15 * time.Millisecond)

	if err := rt.SendEvent(hscx.NewEvent("after-drain")); err != nil {
		t.Errorf("Failed to send event after batch cleared: %v", err)
	}
}

func TestEventSorting(t *testing.T) {
	events := []EventWithMeta{
		{Event: hscx.NewEvent("e1"), SequenceNum: 3, Priority: 0},
		{Event: hscx.NewEvent("e2"), SequenceNum: 1, Priority: 0},
		{Event: hscx.NewEvent("e3"), SequenceNum: 2, Priority: 10},
		{Event: hscx.NewEvent("e4"), SequenceNum: 4, Priority: 0},
		{Event: hscx.NewEvent("e5"), SequenceNum: 5, Priority: 5},
	}

	sortEvents(events)

	expectedOrder := []string{"e3", "e5", "e2", "e1", "e4"}
	for i, ev := range events {
		if ev.Event.Name != expectedOrder[i] {
			t.Errorf("Event at position %d: expected %q, got %q", i, expectedOrder[i], ev.Event.Name)
		}
	}
}

func contains(names []string, target string) bool {
	for _, n := range names {
		if n == target {
			return true
		}
	}
	return false
}
