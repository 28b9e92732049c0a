package evaluators

import (
	"testing"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/internal/hostctx"
)

func buildChart(t *testing.T) *hscx.StateChart {
	t.Helper()
	b := hscx.NewBuilder("reg", "root")
	b.State("root").Compound("root.idle")
	b.State("root.active")
	b.State("root.idle").On("go", "root.active", nil, nil)
	chart, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return chart
}

func TestNewRegistryDefaultsContext(t *testing.T) {
	r := NewRegistry(nil)
	if r.GetContext() == nil {
		t.Error("expected NewRegistry(nil) to default to a fresh hostctx.Context")
	}
}

func TestNewRegistryKeepsSuppliedContext(t *testing.T) {
	ctx := hostctx.New()
	ctx.Set("k", "v")
	r := NewRegistry(ctx)
	if r.GetContext() != ctx {
		t.Error("expected GetContext to return the supplied context unchanged")
	}
}

func TestRegistryEvaluateGuardDefaultsTrue(t *testing.T) {
	interp, err := hscx.NewInterpreter(buildChart(t), NewRegistry(nil))
	if err != nil {
		t.Fatal(err)
	}
	unguarded := &hscx.Transition{Source: "root.idle", Target: "root.active"}
	r := &Registry{}
	r.BindInterpreter(interp)
	if !r.EvaluateGuard(unguarded, nil) {
		t.Error("expected an unguarded transition to evaluate to true")
	}
}

func TestRegistryExecuteActionCollectsSentEvents(t *testing.T) {
	var sawEvent *hscx.Event
	interp, err := hscx.NewInterpreter(buildChart(t), NewRegistry(nil))
	if err != nil {
		t.Fatal(err)
	}
	tr := &hscx.Transition{
		Source: "root.idle",
		Target: "root.active",
		Action: func(ctx *hscx.ActionContext) []*hscx.Event {
			ctx.Send(hscx.NewEvent("extra"))
			return []*hscx.Event{hscx.NewEvent("returned")}
		},
	}
	r := &Registry{}
	r.BindInterpreter(interp)
	sent := r.ExecuteAction(tr, nil)
	if len(sent) != 2 {
		t.Fatalf("expected both the returned and the sent event, got %v", sent)
	}
	for _, e := range sent {
		if e.Name == "returned" {
			sawEvent = e
		}
	}
	if sawEvent == nil {
		t.Error("expected the directly returned event to be present")
	}
}

func TestRegistryExecuteOnEntryExitNilIsNoOp(t *testing.T) {
	interp, err := hscx.NewInterpreter(buildChart(t), NewRegistry(nil))
	if err != nil {
		t.Fatal(err)
	}
	r := &Registry{}
	r.BindInterpreter(interp)

	s := &hscx.State{Name: "root.idle"}
	if events := r.ExecuteOnEntry(s); events != nil {
		t.Errorf("expected nil OnEntry to produce no events, got %v", events)
	}
	if events := r.ExecuteOnExit(s); events != nil {
		t.Errorf("expected nil OnExit to produce no events, got %v", events)
	}
}

func TestRegistryExecuteStatechartIsNoOp(t *testing.T) {
	r := NewRegistry(nil)
	if err := r.ExecuteStatechart(buildChart(t)); err != nil {
		t.Errorf("expected ExecuteStatechart to never error, got %v", err)
	}
}
