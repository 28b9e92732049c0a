package builder

import (
	"testing"

	"github.com/comalice/hscx"
)

func TestNewAndState(t *testing.T) {
	b := New("light", "root", Compound("off"))
	State(b, "root.on")
	State(b, "root.off", On("turnOn", "root.on", nil, nil))
	State(b, "root.on", On("turnOff", "root.off", nil, nil))

	chart, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if chart.Root() != "root" {
		t.Errorf("expected root %q, got %q", "root", chart.Root())
	}
	if chart.StateFor("root").Initial != "root.off" {
		t.Errorf("expected initial root.off, got %q", chart.StateFor("root").Initial)
	}

	transitions := chart.TransitionsFrom("root.off")
	if len(transitions) != 1 || transitions[0].Target != "root.on" {
		t.Errorf("expected one transition root.off -> root.on, got %v", transitions)
	}
}

func TestOrthogonalAndFinal(t *testing.T) {
	b := New("machine", "root", Orthogonal())
	State(b, "root.left", Compound("root.left.a"))
	State(b, "root.left.a")
	State(b, "root.right", Final())

	chart, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if chart.StateFor("root").Kind != hscx.Orthogonal {
		t.Errorf("expected root to be Orthogonal, got %v", chart.StateFor("root").Kind)
	}
	if chart.StateFor("root.right").Kind != hscx.Final {
		t.Errorf("expected root.right to be Final, got %v", chart.StateFor("root.right").Kind)
	}
}

func TestHistoryOption(t *testing.T) {
	b := New("player", "root", Compound("root.playing"))
	State(b, "root.playing")
	State(b, "root.h", History(true, "playing"))

	chart, err := b.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	h := chart.StateFor("root.h")
	if h.Kind != hscx.DeepHistory {
		t.Errorf("expected DeepHistory, got %v", h.Kind)
	}
	if h.Memory != "root.playing" {
		t.Errorf("expected memory root.playing, got %q", h.Memory)
	}
}
