package hscx

// timeProvider mirrors sismicpp's TimeContextProvider: it tracks entry and
// idle times per state plus a mirror of the active configuration, updated
// purely by observing meta-events. The interpreter pre-attaches one and
// exposes After/Idle/Active to guard/action/entry/exit callback contexts.
type timeProvider struct {
	entryTime     map[string]float64
	idleTime      map[string]float64
	time          float64
	configuration []string
}

func newTimeProvider() *timeProvider {
	return &timeProvider{
		entryTime: make(map[string]float64),
		idleTime:  make(map[string]float64),
	}
}

func (p *timeProvider) after(name string, seconds float64) bool {
	return p.time-seconds >= p.entryTime[name]
}

func (p *timeProvider) idle(name string, seconds float64) bool {
	return p.time-seconds >= p.idleTime[name]
}

func (p *timeProvider) active(name string) bool {
	for _, s := range p.configuration {
		if s == name {
			return true
		}
	}
	return false
}

func (p *timeProvider) Notify(event *Event) {
	switch event.Name {
	case MetaStepStarted:
		p.time = event.Time
	case MetaStateEntered:
		p.configuration = append(p.configuration, event.State)
		p.entryTime[event.State] = p.time
		p.idleTime[event.State] = p.time
	case MetaStateExited:
		for i, s := range p.configuration {
			if s == event.State {
				p.configuration = append(p.configuration[:i], p.configuration[i+1:]...)
				break
			}
		}
	case MetaTransitionProcessed:
		p.idleTime[event.Source] = p.time
	}
}

// eventProvider mirrors sismicpp's EventContextProvider: it tracks which
// event was consumed this macro step and which events have been sent, reset
// at every "step started".
type eventProvider struct {
	pending  []*Event
	sent     []*Event
	consumed *Event
}

func newEventProvider() *eventProvider {
	return &eventProvider{}
}

// WasSent reports whether an event named name was sent during the current
// macro step.
func (p *eventProvider) WasSent(name string) bool {
	for _, e := range p.sent {
		if e.Name == name {
			return true
		}
	}
	return false
}

// Received reports whether the event consumed this macro step was named
// name.
func (p *eventProvider) Received(name string) bool {
	return p.consumed != nil && p.consumed.Name == name
}

func (p *eventProvider) Notify(event *Event) {
	switch event.Name {
	case MetaEventConsumed:
		p.consumed = event.Event
	case MetaEventSent:
		p.sent = append(p.sent, event.Event)
	case MetaStepStarted:
		p.consumed = nil
		p.sent = nil
		p.pending = nil
	}
}
