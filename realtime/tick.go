package realtime

// advancer is satisfied by *hscx.SimulatedClock; processTick type-asserts
// against it rather than widening hscx.Clock, since a RealClock advances on
// its own and has nothing to do here.
type advancer interface {
	Advance(delta float64) error
}

// processTick processes one complete tick: collect, sort, drain, advance.
func (rt *RealtimeRuntime) processTick() {
	events := rt.collectEvents()
	sortEvents(events)

	for _, em := range events {
		rt.interp.Queue(em.Event)
	}

	// A single Execute drains the external/internal queues to quiescence,
	// which covers eventless transitions and orthogonal-region entry in
	// the same pass the interpreter already uses outside the tick loop.
	rt.interp.Execute()

	// Move the backing clock forward by one tick so that delayed events and
	// After()/Idle()-guarded transitions queued this tick become eligible on
	// a future one; a frozen SimulatedClock never advances on its own.
	if clock, ok := rt.interp.Clock().(advancer); ok {
		_ = clock.Advance(rt.tickRate.Seconds())
	}

	rt.mu.Lock()
	rt.configuration = rt.interp.Configuration()
	rt.mu.Unlock()
}

// collectEvents atomically retrieves and clears the event batch.
func (rt *RealtimeRuntime) collectEvents() []EventWithMeta {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	events := rt.eventBatch
	rt.eventBatch = make([]EventWithMeta, 0, cap(rt.eventBatch))

	return events
}
