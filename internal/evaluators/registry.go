// Package evaluators provides ready-made hscx.Evaluator implementations:
// a default pass-through registry, a logging decorator, and an
// expression-string guard constructor, mirroring the teacher's
// DefaultActionRunner/DefaultGuardEvaluator/ExpressionGuardEvaluator split.
package evaluators

import (
	"github.com/comalice/hscx"
	"github.com/comalice/hscx/internal/hostctx"
)

// Registry is the default Evaluator: guard/action/entry/exit bodies are
// ordinary Go closures attached directly to States and Transitions, so
// Registry's job is just building the right callback context and
// invoking the closure against a shared hostctx.Context.
type Registry struct {
	ctx    *hostctx.Context
	interp *hscx.Interpreter
}

// NewRegistry wraps ctx (or a fresh hostctx.Context if ctx is nil) as an
// Evaluator.
func NewRegistry(ctx *hostctx.Context) *Registry {
	if ctx == nil {
		ctx = hostctx.New()
	}
	return &Registry{ctx: ctx}
}

// BindInterpreter records the Interpreter this Registry serves.
func (r *Registry) BindInterpreter(i *hscx.Interpreter) { r.interp = i }

// GetContext returns the underlying host context.
func (r *Registry) GetContext() any { return r.ctx }

// ExecuteStatechart is a no-op: a Registry needs no setup against the
// chart's shape since it never resolves named callbacks, only direct
// closures.
func (r *Registry) ExecuteStatechart(chart *hscx.StateChart) error { return nil }

// EvaluateGuard runs t.Guard against a freshly built GuardContext,
// defaulting to true for an unguarded transition.
func (r *Registry) EvaluateGuard(t *hscx.Transition, event *hscx.Event) bool {
	if t.Guard == nil {
		return true
	}
	ctx := r.interp.NewGuardContext(t.Source, event)
	return t.Guard(ctx)
}

// ExecuteAction runs t.Action (a no-op if nil) and returns the events it
// produced, whether returned directly or queued via the context's Send.
func (r *Registry) ExecuteAction(t *hscx.Transition, event *hscx.Event) []*hscx.Event {
	if t.Action == nil {
		return nil
	}
	ctx := r.interp.NewActionContext(event)
	returned := t.Action(ctx)
	return append(returned, ctx.Sent()...)
}

// ExecuteOnEntry runs state.OnEntry (a no-op if nil) and returns the
// events it produced.
func (r *Registry) ExecuteOnEntry(state *hscx.State) []*hscx.Event {
	if state.OnEntry == nil {
		return nil
	}
	ctx := r.interp.NewEntryExitContext()
	returned := state.OnEntry(ctx)
	return append(returned, ctx.Sent()...)
}

// ExecuteOnExit runs state.OnExit (a no-op if nil) and returns the events
// it produced.
func (r *Registry) ExecuteOnExit(state *hscx.State) []*hscx.Event {
	if state.OnExit == nil {
		return nil
	}
	ctx := r.interp.NewEntryExitContext()
	returned := state.OnExit(ctx)
	return append(returned, ctx.Sent()...)
}
