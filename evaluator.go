package hscx

// Evaluator is the boundary through which the interpreter executes
// guard/action/entry/exit bodies against a host data context. The engine
// never constructs one of these itself; it is injected at NewInterpreter
// time.
type Evaluator interface {
	// BindInterpreter is called once by NewInterpreter, before anything
	// else, so the Evaluator can build callback contexts (which must
	// reference the live Interpreter) via NewEntryExitContext /
	// NewActionContext / NewGuardContext.
	BindInterpreter(i *Interpreter)

	// ExecuteStatechart runs once, right after BindInterpreter, for
	// evaluator-side setup against the chart shape (e.g. a
	// registry-backed evaluator pre-resolving named callbacks). It does
	// not run the chart's Preamble: that needs a live callback context,
	// which only the Interpreter can construct, so NewInterpreter runs
	// Preamble itself immediately after calling this.
	ExecuteStatechart(chart *StateChart) error

	// EvaluateGuard evaluates t's guard against the given exposed event
	// (nil for an eventless transition). A transition with no guard is
	// always eligible; callers only invoke EvaluateGuard when t.Guard is
	// non-nil conceptually, but implementations should treat a nil guard
	// as "true" defensively.
	EvaluateGuard(t *Transition, event *Event) bool

	// ExecuteAction runs t's action body and returns any events it sent.
	ExecuteAction(t *Transition, event *Event) []*Event

	// ExecuteOnEntry runs state's entry body and returns any events it
	// sent.
	ExecuteOnEntry(state *State) []*Event

	// ExecuteOnExit runs state's exit body and returns any events it
	// sent.
	ExecuteOnExit(state *State) []*Event

	// GetContext returns the opaque host data context pointer. The
	// engine never inspects it; it exists purely for callback bodies.
	GetContext() any
}

// callbackCore is embedded by every callback context; it provides the
// primitives shared by entry/exit/action/guard contexts: querying the
// active configuration, the current time, sending an internal event, and
// notifying the observer bus directly.
type callbackCore struct {
	interp *Interpreter
	sent   []*Event
}

func (c *callbackCore) Active(name string) bool {
	for _, s := range c.interp.configuration {
		if s == name {
			return true
		}
	}
	return false
}

func (c *callbackCore) GetTime() float64 {
	return c.interp.clock.Now()
}

// Send queues an internal event, to be dispatched (possibly) within the
// same macro step once the current micro step finishes applying.
func (c *callbackCore) Send(event *Event) {
	event.Kind = InternalKind
	c.sent = append(c.sent, event)
}

// Notify delivers a meta-event directly to the observer bus, bypassing the
// queue.
func (c *callbackCore) Notify(event *Event) {
	event.Kind = MetaKind
	c.sent = append(c.sent, event)
}

// Sent returns the events this callback invocation queued via Send/Notify
// so far. Evaluator implementations outside this package use it to
// collect the return value of ExecuteAction/ExecuteOnEntry/ExecuteOnExit.
func (c *callbackCore) Sent() []*Event { return c.sent }

// Context returns the opaque host data context, as supplied by whatever
// Evaluator is bound to this Interpreter (Evaluator.GetContext()). Guard
// and action bodies type-assert it to the concrete type their Evaluator
// uses.
func (c *callbackCore) Context() any { return c.interp.evaluator.GetContext() }

// EntryExitContext is passed to on_entry/on_exit bodies.
type EntryExitContext struct {
	callbackCore
}

// ActionContext is passed to a transition's action body; it additionally
// exposes the event that triggered the transition (nil for an eventless
// transition).
type ActionContext struct {
	callbackCore
	Event *Event
}

// GuardContext is passed to a transition's guard predicate; it exposes the
// triggering event plus After/Idle, both computed relative to the
// transition's source state's recorded entry/idle time.
type GuardContext struct {
	callbackCore
	Event *Event
	// source is the transition's source state name, used to resolve
	// After/Idle against the time provider.
	source string
}

// After reports whether at least seconds have elapsed since the source
// state was entered.
func (g *GuardContext) After(seconds float64) bool {
	return g.interp.timeProvider.after(g.source, seconds)
}

// Idle reports whether at least seconds have elapsed since the source
// state was last idle (entered, or had an internal transition processed).
func (g *GuardContext) Idle(seconds float64) bool {
	return g.interp.timeProvider.idle(g.source, seconds)
}

// NewEntryExitContext builds the context passed to a state's on_entry/
// on_exit body. Exported so Evaluator implementations living outside this
// package can construct one once bound via BindInterpreter.
func (i *Interpreter) NewEntryExitContext() *EntryExitContext {
	return &EntryExitContext{callbackCore{interp: i}}
}

// NewActionContext builds the context passed to a transition's action
// body.
func (i *Interpreter) NewActionContext(event *Event) *ActionContext {
	return &ActionContext{callbackCore: callbackCore{interp: i}, Event: event}
}

// NewGuardContext builds the context passed to a transition's guard
// predicate; source is the transition's source state name.
func (i *Interpreter) NewGuardContext(source string, event *Event) *GuardContext {
	return &GuardContext{callbackCore: callbackCore{interp: i}, Event: event, source: source}
}
