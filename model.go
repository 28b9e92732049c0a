package hscx

import "sort"

// StateKind is the closed sum of state variants, replacing the boolean
// is_* predicates of the original C++ model with a tagged enum matched by
// switch statements throughout the engine.
type StateKind int

const (
	Basic StateKind = iota
	Compound
	Orthogonal
	ShallowHistory
	DeepHistory
	Final
)

func (k StateKind) String() string {
	switch k {
	case Basic:
		return "basic"
	case Compound:
		return "compound"
	case Orthogonal:
		return "orthogonal"
	case ShallowHistory:
		return "shallow history"
	case DeepHistory:
		return "deep history"
	case Final:
		return "final"
	default:
		return "unknown"
	}
}

// OnEntryExit is the signature of a state's entry/exit action body. It
// receives the callback context and returns any events it wants sent (the
// engine enqueues/delivers them once the caller returns).
type OnEntryExit func(ctx *EntryExitContext) []*Event

// ActionFunc is the signature of a transition's action body.
type ActionFunc func(ctx *ActionContext) []*Event

// GuardFunc is the signature of a transition's guard predicate.
type GuardFunc func(ctx *GuardContext) bool

// State is a single node of the statechart. Exactly one of Initial (for
// Compound), Memory (for ShallowHistory/DeepHistory) is meaningful,
// depending on Kind; see the capability matrix in spec.md §3.
type State struct {
	Name    string
	Kind    StateKind
	OnEntry OnEntryExit
	OnExit  OnEntryExit

	// Initial is the default child entered when this Compound state is
	// entered without a more specific target. Must name a direct child.
	Initial string

	// Memory is the default target of a history pseudostate when no prior
	// memory has been recorded yet. Must name a sibling, and must not be
	// the history state itself.
	Memory string
}

// CanHostActions reports whether this state kind executes on_entry/on_exit
// bodies. Every kind except none does (all six kinds host actions per the
// capability matrix), kept as a named predicate for readability at call
// sites mirroring the original's is_actions_state().
func (s *State) CanHostActions() bool { return true }

// CanHostTransitions reports whether this state kind may be a transition's
// source: Basic, Compound, and Orthogonal only.
func (s *State) CanHostTransitions() bool {
	switch s.Kind {
	case Basic, Compound, Orthogonal:
		return true
	default:
		return false
	}
}

// IsComposite reports whether this state has children: Compound or
// Orthogonal.
func (s *State) IsComposite() bool {
	return s.Kind == Compound || s.Kind == Orthogonal
}

// IsHistory reports whether this is a shallow or deep history pseudostate.
func (s *State) IsHistory() bool {
	return s.Kind == ShallowHistory || s.Kind == DeepHistory
}

// Transition is a single edge of the statechart.
type Transition struct {
	Source string
	Target string // empty => internal: no exit/entry
	Event  string // empty => eventless/automatic
	Guard  GuardFunc
	Action ActionFunc
	// Priority breaks ties among transitions sharing the same Source;
	// higher wins. Default 0.
	Priority int
}

// IsInternal reports whether firing this transition performs no exit/entry.
func (t *Transition) IsInternal() bool { return t.Target == "" }

// IsEventless reports whether this transition is automatic (fires whenever
// its guard holds, without waiting for a named event).
func (t *Transition) IsEventless() bool { return t.Event == "" }

// StateChart is the validated, immutable (post-construction) definition of
// a statechart: states, parent/child relations, and transitions.
type StateChart struct {
	Name        string
	Description string
	Preamble    func(ctx *EntryExitContext) []*Event

	states      map[string]*State
	parent      map[string]string
	children    map[string][]string
	transitions []Transition

	root string
}

// NewStateChart creates an empty StateChart ready for AddState/AddTransition.
func NewStateChart(name string) *StateChart {
	return &StateChart{
		Name:     name,
		states:   make(map[string]*State),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

// Root returns the name of the one state whose parent is empty, or "" if no
// state has been added yet.
func (sc *StateChart) Root() string { return sc.root }

// States returns every state name, in no particular order.
func (sc *StateChart) States() []string {
	names := make([]string, 0, len(sc.states))
	for name := range sc.states {
		names = append(names, name)
	}
	return names
}

// StateFor returns the named state. Panics if name is not a valid state,
// matching the original's at()-throws-on-missing-key contract: callers in
// this engine only ever look up names that validation has already checked.
func (sc *StateChart) StateFor(name string) *State {
	s, ok := sc.states[name]
	if !ok {
		panic("hscx: unknown state " + name)
	}
	return s
}

// ParentFor returns the parent of name, or "" if name is the root.
func (sc *StateChart) ParentFor(name string) string { return sc.parent[name] }

// ChildrenFor returns the direct children of name, in insertion order.
func (sc *StateChart) ChildrenFor(name string) []string {
	return append([]string(nil), sc.children[name]...)
}

// AncestorsFor returns name's parent, grandparent, ... up to (excluding)
// the root-parent sentinel, excluding name itself.
func (sc *StateChart) AncestorsFor(name string) []string {
	var ancestors []string
	cur := sc.parent[name]
	for cur != "" {
		ancestors = append(ancestors, cur)
		cur = sc.parent[cur]
	}
	return ancestors
}

// DescendantsFor returns all descendants of name via BFS, in insertion
// order.
func (sc *StateChart) DescendantsFor(name string) []string {
	var descendants []string
	queue := []string{name}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range sc.children[cur] {
			queue = append(queue, child)
			descendants = append(descendants, child)
		}
	}
	return descendants
}

// DepthFor returns 1 + the number of ancestors of name; the root has depth
// 1.
func (sc *StateChart) DepthFor(name string) int {
	return len(sc.AncestorsFor(name)) + 1
}

// LeastCommonAncestor returns the first ancestor of a that is also an
// ancestor of b, or "" if none (a cross-root transition).
func (sc *StateChart) LeastCommonAncestor(a, b string) string {
	aAncestors := sc.AncestorsFor(a)
	bAncestors := sc.AncestorsFor(b)
	bSet := make(map[string]struct{}, len(bAncestors))
	for _, s := range bAncestors {
		bSet[s] = struct{}{}
	}
	for _, s := range aAncestors {
		if _, ok := bSet[s]; ok {
			return s
		}
	}
	return ""
}

// LeafFor returns the subset of names whose descendants are all outside the
// given set of names.
func (sc *StateChart) LeafFor(names []string) []string {
	nameSet := make(map[string]struct{}, len(names))
	for _, n := range names {
		nameSet[n] = struct{}{}
	}
	var leaves []string
	for _, n := range names {
		isLeaf := true
		for _, d := range sc.DescendantsFor(n) {
			if _, ok := nameSet[d]; ok {
				isLeaf = false
				break
			}
		}
		if isLeaf {
			leaves = append(leaves, n)
		}
	}
	return leaves
}

// TransitionsFrom returns pointers into the chart's transition slice whose
// Source equals source.
func (sc *StateChart) TransitionsFrom(source string) []*Transition {
	var ret []*Transition
	for i := range sc.transitions {
		if sc.transitions[i].Source == source {
			ret = append(ret, &sc.transitions[i])
		}
	}
	return ret
}

// TransitionsTo returns transitions targeting target, including internal
// transitions (Target == "") whose Source equals target.
func (sc *StateChart) TransitionsTo(target string) []*Transition {
	var ret []*Transition
	for i := range sc.transitions {
		t := &sc.transitions[i]
		if t.Target == target || (t.Target == "" && t.Source == target) {
			ret = append(ret, t)
		}
	}
	return ret
}

// TransitionsWith returns transitions triggered by the named event.
func (sc *StateChart) TransitionsWith(event string) []*Transition {
	var ret []*Transition
	for i := range sc.transitions {
		if sc.transitions[i].Event == event {
			ret = append(ret, &sc.transitions[i])
		}
	}
	return ret
}

// EventsFor returns the names of events that can trigger a transition out of
// any of the given states.
func (sc *StateChart) EventsFor(names []string) []string {
	var ret []string
	for _, n := range names {
		for _, t := range sc.TransitionsFrom(n) {
			if t.Event != "" {
				ret = append(ret, t.Event)
			}
		}
	}
	return ret
}

// AllEventsFor returns the names of events that can trigger a transition out
// of any state in the chart.
func (sc *StateChart) AllEventsFor() []string {
	return sc.EventsFor(sc.States())
}

// AddState registers a new state under parent ("" for the root). It returns
// a StructuralError for a duplicate/empty name, a second root, a missing or
// incapable parent, or a history state parented to something other than a
// Compound.
func (sc *StateChart) AddState(state *State, parent string) error {
	if state.Name == "" {
		return newStructuralError("state must have a name")
	}
	if _, exists := sc.states[state.Name]; exists {
		return newStructuralError("state %s already exists", state.Name)
	}

	if parent == "" {
		if sc.root != "" {
			return newStructuralError("root already defined (%s); try adding %s with an existing parent", sc.root, state.Name)
		}
		sc.states[state.Name] = state
		sc.parent[state.Name] = ""
		sc.children[state.Name] = nil
		sc.root = state.Name
		return nil
	}

	parentState, ok := sc.states[parent]
	if !ok {
		return newStructuralError("parent %q of %q does not exist", parent, state.Name)
	}
	if !parentState.IsComposite() {
		return newStructuralError("state %q cannot be used as a parent for %q", parent, state.Name)
	}
	if state.IsHistory() && parentState.Kind != Compound {
		return newStructuralError("state %q cannot be used as a parent for history state %q", parent, state.Name)
	}

	sc.states[state.Name] = state
	sc.parent[state.Name] = parent
	sc.children[state.Name] = nil
	sc.children[parent] = append(sc.children[parent], state.Name)
	return nil
}

// AddTransition registers a transition. It returns a StructuralError if the
// source cannot host transitions or the target does not exist.
func (sc *StateChart) AddTransition(t Transition) error {
	source, ok := sc.states[t.Source]
	if !ok {
		return newStructuralError("unknown source state %q", t.Source)
	}
	if !source.CanHostTransitions() {
		return newStructuralError("cannot add transition on state %s (kind %s)", source.Name, source.Kind)
	}
	if t.Target != "" {
		if _, ok := sc.states[t.Target]; !ok {
			return newStructuralError("unknown target state %q", t.Target)
		}
	}
	sc.transitions = append(sc.transitions, t)
	return nil
}

// Validate checks every CompoundState.Initial is a direct child and every
// HistoryState.Memory (if set) is a sibling other than itself.
func (sc *StateChart) Validate() error {
	if err := sc.validateCompoundInitial(); err != nil {
		return err
	}
	return sc.validateHistoryMemory()
}

func (sc *StateChart) validateCompoundInitial() error {
	names := sc.States()
	sort.Strings(names)
	for _, name := range names {
		s := sc.states[name]
		if s.Kind != Compound {
			continue
		}
		if _, ok := sc.states[s.Initial]; !ok {
			return newStructuralError("initial state %q of state %q does not exist", s.Initial, s.Name)
		}
		if !contains(sc.children[s.Name], s.Initial) {
			return newStructuralError("initial state %q of state %q must be a child state", s.Initial, s.Name)
		}
	}
	return nil
}

func (sc *StateChart) validateHistoryMemory() error {
	names := sc.States()
	sort.Strings(names)
	for _, name := range names {
		s := sc.states[name]
		if !s.IsHistory() || s.Memory == "" {
			continue
		}
		if s.Memory == s.Name {
			return newStructuralError("initial memory %q of state %q cannot target itself", s.Memory, s.Name)
		}
		if _, ok := sc.states[s.Memory]; !ok {
			return newStructuralError("initial memory %q of state %q does not exist", s.Memory, s.Name)
		}
		if !contains(sc.children[sc.parent[s.Name]], s.Memory) {
			return newStructuralError("initial memory %q of state %q must be a parent's child", s.Memory, s.Name)
		}
	}
	return nil
}

func contains(haystack []string, needle string) bool {
	for _, s := range haystack {
		if s == needle {
			return true
		}
	}
	return false
}
