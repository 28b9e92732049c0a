// Package builder re-exports the root hscx.Builder DSL as a set of
// functional options, so a chart's shape can be declared in one
// expression instead of a long method chain, mirroring the teacher's
// Option/TransOption pattern adapted to hscx's path-addressed states.
package builder

import "github.com/comalice/hscx"

// Option configures a single state once hscx.Builder.State has created it.
type Option func(*hscx.StateBuilder)

// New starts a chart named name with root rootName, applying opts to the
// root state.
func New(name, rootName string, opts ...Option) *hscx.Builder {
	b := hscx.NewBuilder(name, rootName)
	sb := b.State(rootName)
	for _, opt := range opts {
		opt(sb)
	}
	return b
}

// State adds (or configures) the state at path within b, applying opts, and
// returns b so calls can chain across paths: builder.State(b, "on.playing",
// builder.On("stop", "off", nil, nil))
func State(b *hscx.Builder, path string, opts ...Option) *hscx.Builder {
	sb := b.State(path)
	for _, opt := range opts {
		opt(sb)
	}
	return sb.B()
}

// Basic marks the state a plain leaf (the default).
func Basic() Option {
	return func(sb *hscx.StateBuilder) { sb.Basic() }
}

// Compound marks the state compound with the given initial child.
func Compound(initialChild string) Option {
	return func(sb *hscx.StateBuilder) { sb.Compound(initialChild) }
}

// Orthogonal marks the state as a parallel (AND) state.
func Orthogonal() Option {
	return func(sb *hscx.StateBuilder) { sb.Orthogonal() }
}

// Final marks the state as a final state.
func Final() Option {
	return func(sb *hscx.StateBuilder) { sb.Final() }
}

// History turns the state into a shallow or deep history pseudostate.
func History(deep bool, defaultChild string) Option {
	return func(sb *hscx.StateBuilder) { sb.History(deep, defaultChild) }
}

// OnEntry sets the state's on_entry body.
func OnEntry(fn hscx.OnEntryExit) Option {
	return func(sb *hscx.StateBuilder) { sb.Entry(fn) }
}

// OnExit sets the state's on_exit body.
func OnExit(fn hscx.OnEntryExit) Option {
	return func(sb *hscx.StateBuilder) { sb.Exit(fn) }
}

// On adds an external transition firing on event.
func On(event, target string, guard hscx.GuardFunc, action hscx.ActionFunc) Option {
	return func(sb *hscx.StateBuilder) { sb.On(event, target, guard, action) }
}

// OnPriority is On with an explicit tie-break priority.
func OnPriority(event, target string, guard hscx.GuardFunc, action hscx.ActionFunc, priority int) Option {
	return func(sb *hscx.StateBuilder) { sb.OnPriority(event, target, guard, action, priority) }
}

// OnInternal adds an internal transition (no exit/entry) firing on event.
func OnInternal(event string, guard hscx.GuardFunc, action hscx.ActionFunc) Option {
	return func(sb *hscx.StateBuilder) { sb.OnInternal(event, guard, action) }
}

// Eventless adds an automatic transition. Eventless transitions are
// considered before event-triggered ones, so an enabled one fires ahead of
// any pending event.
func Eventless(target string, guard hscx.GuardFunc, action hscx.ActionFunc) Option {
	return func(sb *hscx.StateBuilder) { sb.Eventless(target, guard, action) }
}
