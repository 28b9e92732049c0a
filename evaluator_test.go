package hscx

import "testing"

// stubEvaluator is a minimal Evaluator used to exercise the callback
// context constructors and the two-phase BindInterpreter wiring directly,
// without going through internal/evaluators.
type stubEvaluator struct {
	interp      *Interpreter
	ctx         any
	boundCalled bool
}

func (s *stubEvaluator) BindInterpreter(i *Interpreter) { s.interp = i; s.boundCalled = true }
func (s *stubEvaluator) ExecuteStatechart(chart *StateChart) error { return nil }
func (s *stubEvaluator) EvaluateGuard(t *Transition, event *Event) bool {
	if t.Guard == nil {
		return true
	}
	return t.Guard(s.interp.NewGuardContext(t.Source, event))
}
func (s *stubEvaluator) ExecuteAction(t *Transition, event *Event) []*Event {
	if t.Action == nil {
		return nil
	}
	ctx := s.interp.NewActionContext(event)
	ret := t.Action(ctx)
	return append(ret, ctx.Sent()...)
}
func (s *stubEvaluator) ExecuteOnEntry(state *State) []*Event {
	if state.OnEntry == nil {
		return nil
	}
	ctx := s.interp.NewEntryExitContext()
	ret := state.OnEntry(ctx)
	return append(ret, ctx.Sent()...)
}
func (s *stubEvaluator) ExecuteOnExit(state *State) []*Event {
	if state.OnExit == nil {
		return nil
	}
	ctx := s.interp.NewEntryExitContext()
	ret := state.OnExit(ctx)
	return append(ret, ctx.Sent()...)
}
func (s *stubEvaluator) GetContext() any { return s.ctx }

func buildTinyChart(t *testing.T) *StateChart {
	t.Helper()
	b := NewBuilder("tiny", "root")
	b.State("root").Compound("root.a")
	b.State("root.b")
	b.State("root.a").On("go", "root.b", nil, nil)
	chart, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return chart
}

func TestBindInterpreterCalledOnce(t *testing.T) {
	ev := &stubEvaluator{ctx: "hello"}
	interp, err := NewInterpreter(buildTinyChart(t), ev)
	if err != nil {
		t.Fatal(err)
	}
	if !ev.boundCalled {
		t.Fatal("expected BindInterpreter to have been called")
	}
	if ev.interp != interp {
		t.Error("expected the Evaluator to be bound to the Interpreter returned by NewInterpreter")
	}
}

func TestCallbackContextAccessesHostContext(t *testing.T) {
	var seen any
	ev := &stubEvaluator{ctx: "payload"}
	b := NewBuilder("ctx", "root")
	b.State("root").Compound("root.a")
	b.State("root.a").Entry(func(ctx *EntryExitContext) []*Event {
		seen = ctx.Context()
		return nil
	})
	chart, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	interp, err := NewInterpreter(chart, ev)
	if err != nil {
		t.Fatal(err)
	}
	interp.Execute()

	if seen != "payload" {
		t.Errorf("expected entry body to observe host context %q, got %v", "payload", seen)
	}
}

func TestCallbackContextSendQueuesInternalEvent(t *testing.T) {
	ev := &stubEvaluator{}
	b := NewBuilder("send", "root")
	b.State("root").Compound("root.a")
	b.State("root.b")
	b.State("root.c")
	b.State("root.a").
		On("go", "root.b", nil, func(ctx *ActionContext) []*Event {
			ctx.Send(NewEvent("followup"))
			return nil
		})
	b.State("root.b").On("followup", "root.c", nil, nil)
	chart, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	interp, err := NewInterpreter(chart, ev)
	if err != nil {
		t.Fatal(err)
	}
	interp.Execute()
	interp.QueueName("go")
	interp.Execute()

	if !interp.isActive("root.c") {
		t.Errorf("expected the sent internal event to drive a follow-up transition into root.c, configuration: %v", interp.Configuration())
	}
}

func TestGuardContextAfter(t *testing.T) {
	ev := &stubEvaluator{}
	b := NewBuilder("guard", "root")
	b.State("root").Compound("root.a")
	b.State("root.b")
	b.State("root.a").On("go", "root.b", func(ctx *GuardContext) bool {
		return ctx.After(1)
	}, nil)
	chart, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	interp, err := NewInterpreter(chart, ev)
	if err != nil {
		t.Fatal(err)
	}
	clock := &SimulatedClock{}
	interp.SetClock(clock)
	interp.Execute()

	interp.QueueName("go")
	interp.Execute()
	if interp.isActive("root.b") {
		t.Fatal("guard should block the transition before 1 second has elapsed")
	}

	if err := clock.Advance(2); err != nil {
		t.Fatal(err)
	}
	interp.QueueName("go")
	interp.Execute()
	if !interp.isActive("root.b") {
		t.Error("guard should allow the transition once After(1) holds")
	}
}
