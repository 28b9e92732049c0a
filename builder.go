package hscx

import "strings"

// Builder provides a fluent API for constructing a StateChart using
// dot-separated string paths instead of manually wiring State/parent/child
// relations by hand. A path like "on.playing" auto-creates "on" as a
// Compound state the first time it is referenced as an ancestor.
type Builder struct {
	chart *StateChart
	err   error
}

// StateBuilder configures one state named by a path passed to Builder.State.
type StateBuilder struct {
	b    *Builder
	name string
}

// NewBuilder starts a chart named name with the given root state name. The
// root is created as Compound; call .State(rootName).Compound(...) (or
// .Final, .Orthogonal, etc.) to finish configuring it, or leave it Compound
// and set Initial via State().
func NewBuilder(name, rootName string) *Builder {
	b := &Builder{chart: NewStateChart(name)}
	if err := b.chart.AddState(&State{Name: rootName, Kind: Compound}, ""); err != nil {
		b.err = err
	}
	return b
}

// ensure returns the StateBuilder for path, auto-creating any missing
// ancestor along the way. An ancestor created purely to host a descendant
// defaults to Compound (it necessarily has children); the directly
// requested path defaults to Basic until a later call (Compound,
// Orthogonal, Final, History) says otherwise.
func (b *Builder) ensure(path string, asAncestor bool) *StateBuilder {
	if b.err != nil {
		return &StateBuilder{b: b, name: path}
	}
	if _, ok := b.chart.states[path]; ok {
		return &StateBuilder{b: b, name: path}
	}

	parentPath, _ := splitPath(path)
	if parentPath != "" {
		b.ensure(parentPath, true)
	}

	if b.err != nil {
		return &StateBuilder{b: b, name: path}
	}

	kind := Basic
	if asAncestor {
		kind = Compound
	}
	if err := b.chart.AddState(&State{Name: path, Kind: kind}, parentPath); err != nil {
		b.err = err
	}
	return &StateBuilder{b: b, name: path}
}

// State returns a StateBuilder for path (dot-separated; e.g. "on.playing"),
// creating it (and any missing ancestors) as needed.
func (b *Builder) State(path string) *StateBuilder {
	return b.ensure(path, false)
}

// Preamble sets the chart-level preamble, run once by Evaluator.ExecuteStatechart.
func (b *Builder) Preamble(fn func(ctx *EntryExitContext) []*Event) *Builder {
	if b.err == nil {
		b.chart.Preamble = fn
	}
	return b
}

// Description sets the chart's human-readable description.
func (b *Builder) Description(text string) *Builder {
	if b.err == nil {
		b.chart.Description = text
	}
	return b
}

// Build validates the accumulated chart and returns it, or the first
// structural error encountered during construction or validation.
func (b *Builder) Build() (*StateChart, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.chart.Validate(); err != nil {
		return nil, err
	}
	return b.chart, nil
}

func splitPath(path string) (parent, name string) {
	idx := strings.LastIndex(path, ".")
	if idx == -1 {
		return "", path
	}
	return path[:idx], path[idx+1:]
}

func (sb *StateBuilder) state() *State {
	return sb.b.chart.states[sb.name]
}

// Basic marks this state as a plain leaf state (the default).
func (sb *StateBuilder) Basic() *StateBuilder {
	if sb.b.err == nil {
		sb.state().Kind = Basic
	}
	return sb
}

// Compound marks this state as compound with the given initial child
// (a simple name relative to this state, or a full path under it).
func (sb *StateBuilder) Compound(initialChild string) *StateBuilder {
	if sb.b.err != nil {
		return sb
	}
	sb.state().Kind = Compound
	sb.state().Initial = sb.b.childPath(sb.name, initialChild)
	return sb
}

// Orthogonal marks this state as orthogonal (parallel): every direct child
// is active whenever this state is.
func (sb *StateBuilder) Orthogonal() *StateBuilder {
	if sb.b.err == nil {
		sb.state().Kind = Orthogonal
	}
	return sb
}

// Final marks this state as a final state.
func (sb *StateBuilder) Final() *StateBuilder {
	if sb.b.err == nil {
		sb.state().Kind = Final
	}
	return sb
}

// History turns this state into a shallow or deep history pseudostate,
// whose default (no-memory-yet) target is defaultChild, a simple name
// relative to this state's parent or a full path under it.
func (sb *StateBuilder) History(deep bool, defaultChild string) *StateBuilder {
	if sb.b.err != nil {
		return sb
	}
	s := sb.state()
	if deep {
		s.Kind = DeepHistory
	} else {
		s.Kind = ShallowHistory
	}
	if defaultChild != "" {
		parent := sb.b.chart.ParentFor(sb.name)
		s.Memory = sb.b.childPath(parent, defaultChild)
	}
	return sb
}

// childPath joins parent and child as a dot path, or returns child unchanged
// if it already looks like a full path rooted at parent.
func (b *Builder) childPath(parent, child string) string {
	if strings.HasPrefix(child, parent+".") || parent == "" {
		return child
	}
	return parent + "." + child
}

// Entry sets this state's on_entry body.
func (sb *StateBuilder) Entry(fn OnEntryExit) *StateBuilder {
	if sb.b.err == nil {
		sb.state().OnEntry = fn
	}
	return sb
}

// Exit sets this state's on_exit body.
func (sb *StateBuilder) Exit(fn OnEntryExit) *StateBuilder {
	if sb.b.err == nil {
		sb.state().OnExit = fn
	}
	return sb
}

// On adds a (possibly guarded) external transition from this state to
// target (a path, not necessarily a child) firing on event.
func (sb *StateBuilder) On(event, target string, guard GuardFunc, action ActionFunc) *StateBuilder {
	return sb.onPriority(event, target, guard, action, 0)
}

// OnPriority is On with an explicit tie-break priority (higher wins among
// transitions sharing this source and this event/eventless-ness).
func (sb *StateBuilder) OnPriority(event, target string, guard GuardFunc, action ActionFunc, priority int) *StateBuilder {
	return sb.onPriority(event, target, guard, action, priority)
}

func (sb *StateBuilder) onPriority(event, target string, guard GuardFunc, action ActionFunc, priority int) *StateBuilder {
	if sb.b.err != nil {
		return sb
	}
	err := sb.b.chart.AddTransition(Transition{
		Source:   sb.name,
		Target:   target,
		Event:    event,
		Guard:    guard,
		Action:   action,
		Priority: priority,
	})
	if err != nil {
		sb.b.err = err
	}
	return sb
}

// OnInternal adds an internal transition (no exit/entry) firing on event.
func (sb *StateBuilder) OnInternal(event string, guard GuardFunc, action ActionFunc) *StateBuilder {
	if sb.b.err != nil {
		return sb
	}
	err := sb.b.chart.AddTransition(Transition{
		Source: sb.name,
		Target: "",
		Event:  event,
		Guard:  guard,
		Action: action,
	})
	if err != nil {
		sb.b.err = err
	}
	return sb
}

// Eventless adds an automatic (guard-only) transition to target. Eventless
// transitions are considered before event-triggered ones, so an enabled
// eventless transition fires ahead of any pending event.
func (sb *StateBuilder) Eventless(target string, guard GuardFunc, action ActionFunc) *StateBuilder {
	return sb.On("", target, guard, action)
}

// B returns to the Builder so calls can continue chaining across
// different state paths: b.State("a").Compound("x").B().State("a.x")....
func (sb *StateBuilder) B() *Builder {
	return sb.b
}
