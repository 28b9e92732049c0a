package evaluators

import (
	"log"
	"time"

	"github.com/comalice/hscx"
)

// Logging wraps an Evaluator and logs around guard/action/entry/exit
// execution, mirroring the teacher's LoggingActionRunner decorator.
type Logging struct {
	inner hscx.Evaluator
}

// NewLogging wraps inner with logging.
func NewLogging(inner hscx.Evaluator) *Logging {
	return &Logging{inner: inner}
}

// BindInterpreter delegates to the wrapped Evaluator.
func (l *Logging) BindInterpreter(i *hscx.Interpreter) { l.inner.BindInterpreter(i) }

// GetContext delegates to the wrapped Evaluator.
func (l *Logging) GetContext() any { return l.inner.GetContext() }

// ExecuteStatechart delegates to the wrapped Evaluator.
func (l *Logging) ExecuteStatechart(chart *hscx.StateChart) error {
	return l.inner.ExecuteStatechart(chart)
}

// EvaluateGuard logs the guarded transition's source and target and the
// verdict.
func (l *Logging) EvaluateGuard(t *hscx.Transition, event *hscx.Event) bool {
	result := l.inner.EvaluateGuard(t, event)
	log.Printf("hscx: guard %s -> %s evaluated to %v", t.Source, t.Target, result)
	return result
}

// ExecuteAction logs the transition fired and how long its action took.
func (l *Logging) ExecuteAction(t *hscx.Transition, event *hscx.Event) []*hscx.Event {
	start := time.Now()
	sent := l.inner.ExecuteAction(t, event)
	log.Printf("hscx: action %s -> %s completed in %v, sent %d event(s)", t.Source, t.Target, time.Since(start), len(sent))
	return sent
}

// ExecuteOnEntry logs entry into state.Name.
func (l *Logging) ExecuteOnEntry(state *hscx.State) []*hscx.Event {
	log.Printf("hscx: entering %s", state.Name)
	return l.inner.ExecuteOnEntry(state)
}

// ExecuteOnExit logs exit from state.Name.
func (l *Logging) ExecuteOnExit(state *hscx.State) []*hscx.Event {
	log.Printf("hscx: exiting %s", state.Name)
	return l.inner.ExecuteOnExit(state)
}
