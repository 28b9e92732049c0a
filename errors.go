package hscx

import "fmt"

// DomainError reports an invalid parameter passed to the builder, such as an
// unknown state kind tag. It is never raised by the step engine itself.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string { return e.Message }

func newDomainError(format string, args ...any) error {
	return &DomainError{Message: fmt.Sprintf(format, args...)}
}

// StructuralError reports a chart-construction violation: duplicate name,
// missing parent, a parent that cannot host a given child kind, a transition
// on a non-transitions-capable state, a transition to an unknown target, an
// invalid compound initial, invalid history memory, or clock regression.
//
// StructuralError is raised only by StateChart.AddState, AddTransition, and
// Validate (and by SimulatedClock.SetTime for the clock-regression case). The
// engine's step functions assume a validated chart and do not raise at
// runtime.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() string { return e.Message }

func newStructuralError(format string, args ...any) error {
	return &StructuralError{Message: fmt.Sprintf(format, args...)}
}
