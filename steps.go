package hscx

// MicroStep is the atomic application of one transition, or one
// stabilization move. Exactly one of {Transition set, EnteredStates
// non-empty, ExitedStates non-empty} is typical, but a transition-driven
// step may carry all three.
type MicroStep struct {
	Event         *Event
	Transition    *Transition
	EnteredStates []string
	ExitedStates  []string
	SentEvents    []*Event
}

// MacroStep is the transitive closure of micro steps triggered by one
// event (or by initialization/automatic transitions) until the
// configuration is stable.
type MacroStep struct {
	Time  float64
	Steps []MicroStep
}
