package hscx

import "sort"

// queuedEvent pairs a scheduled time with the event waiting to fire at (or
// after) that time.
type queuedEvent struct {
	time  float64
	event *Event
}

// insertQueue performs a stable upper-bound insertion by time: the new
// entry lands after every existing entry with an equal or earlier
// scheduled time, preserving FIFO order among ties.
func insertQueue(queue []queuedEvent, t float64, event *Event) []queuedEvent {
	idx := sort.Search(len(queue), func(i int) bool { return queue[i].time > t })
	queue = append(queue, queuedEvent{})
	copy(queue[idx+1:], queue[idx:])
	queue[idx] = queuedEvent{time: t, event: event}
	return queue
}

// Interpreter is the step engine: it owns a validated StateChart, an
// injected Evaluator, a Clock, the active configuration, history memory,
// and the internal/external event queues. It is single-threaded and
// non-re-entrant (see spec's concurrency model): once ExecuteOnce begins,
// no other method may be called from within a callback except Queue (via
// a callback context's Send, which only ever appends to a pending-events
// slice local to the step being applied).
type Interpreter struct {
	chart     *StateChart
	evaluator Evaluator
	clock     Clock

	initialized   bool
	configuration []string
	memory        map[string][]string

	internalQueue []queuedEvent
	externalQueue []queuedEvent

	observers bus

	timeProvider  *timeProvider
	eventProvider *eventProvider

	// eventlessFirst and innerFirst are the two selection policy flags;
	// both default true as in the reference interpreter.
	eventlessFirst bool
	innerFirst     bool
}

// NewInterpreter validates chart, constructs an Interpreter around it and
// evaluator, pre-attaches the time and event context providers, calls
// evaluator.ExecuteStatechart, and then runs the chart's preamble itself
// once, raising any events it returns.
func NewInterpreter(chart *StateChart, evaluator Evaluator) (*Interpreter, error) {
	if err := chart.Validate(); err != nil {
		return nil, err
	}

	interp := &Interpreter{
		chart:          chart,
		evaluator:      evaluator,
		clock:          &SimulatedClock{},
		memory:         make(map[string][]string),
		timeProvider:   newTimeProvider(),
		eventProvider:  newEventProvider(),
		eventlessFirst: true,
		innerFirst:     true,
	}
	interp.observers.attach(interp.timeProvider)
	interp.observers.attach(interp.eventProvider)

	evaluator.BindInterpreter(interp)

	if err := evaluator.ExecuteStatechart(chart); err != nil {
		return nil, err
	}

	if chart.Preamble != nil {
		ctx := &EntryExitContext{callbackCore{interp: interp}}
		for _, e := range chart.Preamble(ctx) {
			interp.raiseEvent(e)
		}
	}

	return interp, nil
}

// Chart returns the interpreter's underlying statechart.
func (i *Interpreter) Chart() *StateChart { return i.chart }

// Clock returns the interpreter's clock, mutable by the caller (e.g. to
// call SimulatedClock.Advance between macro steps).
func (i *Interpreter) Clock() Clock { return i.clock }

// SetClock replaces the interpreter's clock. Intended for use right after
// construction, before the first ExecuteOnce.
func (i *Interpreter) SetClock(c Clock) { i.clock = c }

// Attach registers a listener to receive meta-events, in attachment order.
func (i *Interpreter) Attach(l Listener) { i.observers.attach(l) }

// Detach removes a previously attached listener. Calling Detach from
// within a Listener's Notify (re-entrant detach during dispatch) is
// undefined behavior.
func (i *Interpreter) Detach(l Listener) { i.observers.detach(l) }

// WasSent reports whether an event named name was sent during the current
// (or most recently completed) macro step.
func (i *Interpreter) WasSent(name string) bool { return i.eventProvider.WasSent(name) }

// Received reports whether the event consumed during the current (or most
// recently completed) macro step was named name.
func (i *Interpreter) Received(name string) bool { return i.eventProvider.Received(name) }

// Queue enqueues event (chainable). Internal events go to the internal
// queue, everything else to the external queue. Scheduled time is
// Clock.Now() + event.Delay.
func (i *Interpreter) Queue(event *Event) *Interpreter {
	t := i.clock.Now() + event.Delay
	if event.IsInternal() {
		i.internalQueue = insertQueue(i.internalQueue, t, event)
	} else {
		i.externalQueue = insertQueue(i.externalQueue, t, event)
	}
	return i
}

// QueueName enqueues a new plain event with the given name (chainable).
func (i *Interpreter) QueueName(name string) *Interpreter {
	return i.Queue(NewEvent(name))
}

// Configuration returns the active state names, sorted by (depth, name)
// ascending.
func (i *Interpreter) Configuration() []string {
	ret := append([]string(nil), i.configuration...)
	sort.Slice(ret, func(a, b int) bool {
		da, db := i.chart.DepthFor(ret[a]), i.chart.DepthFor(ret[b])
		if da != db {
			return da < db
		}
		return ret[a] < ret[b]
	})
	return ret
}

// IsInFinal reports whether the interpreter has been initialized and the
// configuration is now empty (the chart reached a root-level final
// state and terminated).
func (i *Interpreter) IsInFinal() bool {
	return i.initialized && len(i.configuration) == 0
}

func (i *Interpreter) isActive(name string) bool {
	for _, s := range i.configuration {
		if s == name {
			return true
		}
	}
	return false
}

func (i *Interpreter) notify(event *Event) {
	i.observers.notify(event)
}

// raiseEvent dispatches a single event produced by a callback: internal
// events are announced as "event sent" and queued; meta-events go
// straight to the observer bus.
//
// Open question resolved per spec: the meta-event name is "transition
// processed" (with a space), not "transition_processed" — the latter is a
// one-off typo in one call site of the original source.
func (i *Interpreter) raiseEvent(event *Event) {
	switch event.Kind {
	case InternalKind:
		sent := newMetaEvent(MetaEventSent, i.clock.Now())
		sent.Event = event
		i.notify(sent)
		i.Queue(event)
	case MetaKind:
		i.notify(event)
	default:
		// Callback contexts only ever produce Internal or Meta events
		// via Send/Notify; a plain event here would indicate a bug in
		// a custom Evaluator.
		i.notify(event)
	}
}

// selectEvent peeks (without consuming) the candidate event for this
// macro step: the internal queue's head if its scheduled time is at or
// before now, else the external queue's head under the same rule, else
// nil.
//
// Open question resolved per spec: the predicate is "<=", not strict
// "<" — a zero-delay event queued at the current clock time must be
// eligible immediately, since nothing else advances a SimulatedClock on
// its own. A future-scheduled event (Delay > 0, or After()-guarded)
// remains ineligible until the clock actually reaches its scheduled
// time.
func (i *Interpreter) selectEvent() *Event {
	if len(i.internalQueue) > 0 && i.internalQueue[0].time <= i.clock.Now() {
		return i.internalQueue[0].event
	}
	if len(i.externalQueue) > 0 && i.externalQueue[0].time <= i.clock.Now() {
		return i.externalQueue[0].event
	}
	return nil
}

func (i *Interpreter) selectEventAndConsume() *Event {
	if len(i.internalQueue) > 0 && i.internalQueue[0].time <= i.clock.Now() {
		e := i.internalQueue[0].event
		i.internalQueue = i.internalQueue[1:]
		return e
	}
	if len(i.externalQueue) > 0 && i.externalQueue[0].time <= i.clock.Now() {
		e := i.externalQueue[0].event
		i.externalQueue = i.externalQueue[1:]
		return e
	}
	return nil
}

// selectTransitions implements spec's §4.3: filter by source-in-
// configuration and matching event, group by has-event (eventless group
// first iff eventlessFirst), short-circuit at the first group that
// yields anything, then within that group order by source depth
// (deepest first iff innerFirst), then by source name, then by
// descending priority within a source — recording an ignored-states set
// once a source's tier yields a transition so that an inner (or outer)
// state's firing preempts its ancestors (or descendants).
func (i *Interpreter) selectTransitions(event *Event, states []string, eventlessFirst, innerFirst bool) []*Transition {
	stateSet := make(map[string]struct{}, len(states))
	for _, s := range states {
		stateSet[s] = struct{}{}
	}

	var considered []*Transition
	for idx := range i.chart.transitions {
		t := &i.chart.transitions[idx]
		if _, inConfig := stateSet[t.Source]; !inConfig {
			continue
		}
		if t.Event == "" || (event != nil && t.Event == event.Name) {
			considered = append(considered, t)
		}
	}

	var eventless, withEvent []*Transition
	for _, t := range considered {
		if t.Event == "" {
			eventless = append(eventless, t)
		} else {
			withEvent = append(withEvent, t)
		}
	}

	groups := [][]*Transition{withEvent, eventless}
	if eventlessFirst {
		groups = [][]*Transition{eventless, withEvent}
	}

	var selected []*Transition
	ignored := make(map[string]struct{})

	for _, group := range groups {
		if len(selected) > 0 {
			break
		}
		if len(group) == 0 {
			continue
		}

		exposedEvent := event
		if len(group) > 0 && group[0].Event == "" {
			exposedEvent = nil
		}

		for _, depthTier := range groupByDepth(group, i.chart.DepthFor, innerFirst) {
			for _, sourceTier := range groupBySource(depthTier) {
				source := sourceTier[0].Source
				if _, skip := ignored[source]; skip {
					continue
				}

				found := false
				for _, priorityTier := range groupByPriority(sourceTier) {
					for _, t := range priorityTier {
						if t.Guard == nil || i.evaluator.EvaluateGuard(t, exposedEvent) {
							selected = append(selected, t)
							found = true
						}
					}
					if found {
						if innerFirst {
							for _, a := range i.chart.AncestorsFor(source) {
								ignored[a] = struct{}{}
							}
						} else {
							for _, d := range i.chart.DescendantsFor(source) {
								ignored[d] = struct{}{}
							}
						}
						ignored[source] = struct{}{}
						break
					}
				}
			}
		}
	}

	return selected
}

// groupByDepth buckets transitions by their source's depth, returning
// buckets ordered by depth ascending, or descending when reverse is true.
func groupByDepth(ts []*Transition, depthFor func(string) int, reverse bool) [][]*Transition {
	buckets := make(map[int][]*Transition)
	for _, t := range ts {
		d := depthFor(t.Source)
		buckets[d] = append(buckets[d], t)
	}
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	if reverse {
		for l, r := 0, len(keys)-1; l < r; l, r = l+1, r-1 {
			keys[l], keys[r] = keys[r], keys[l]
		}
	}
	ret := make([][]*Transition, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, buckets[k])
	}
	return ret
}

// groupBySource buckets transitions by source name, ascending.
func groupBySource(ts []*Transition) [][]*Transition {
	buckets := make(map[string][]*Transition)
	for _, t := range ts {
		buckets[t.Source] = append(buckets[t.Source], t)
	}
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ret := make([][]*Transition, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, buckets[k])
	}
	return ret
}

// groupByPriority buckets transitions by priority, descending (highest
// first).
func groupByPriority(ts []*Transition) [][]*Transition {
	buckets := make(map[int][]*Transition)
	for _, t := range ts {
		buckets[t.Priority] = append(buckets[t.Priority], t)
	}
	keys := make([]int, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(keys)))
	ret := make([][]*Transition, 0, len(keys))
	for _, k := range keys {
		ret = append(ret, buckets[k])
	}
	return ret
}

// sortTransitions orders selected transitions by source depth descending
// (tie-break source name ascending) — the order in which they are applied
// within one macro step, so that deeper exits happen first.
func (i *Interpreter) sortTransitions(transitions []*Transition) []*Transition {
	ret := append([]*Transition(nil), transitions...)
	sort.SliceStable(ret, func(a, b int) bool {
		da, db := i.chart.DepthFor(ret[a].Source), i.chart.DepthFor(ret[b].Source)
		if da != db {
			return da > db
		}
		return ret[a].Source < ret[b].Source
	})
	return ret
}

// createSteps computes, for each already-ordered transition, the
// MicroStep that applying it requires: an internal transition produces no
// exit/entry; an external one computes the LCA-delimited exited and
// entered state lists.
func (i *Interpreter) createSteps(event *Event, transitions []*Transition) []MicroStep {
	var steps []MicroStep
	for _, t := range transitions {
		if t.Target == "" {
			steps = append(steps, MicroStep{Event: event, Transition: t})
			continue
		}

		lca := i.chart.LeastCommonAncestor(t.Source, t.Target)

		lastBeforeLCA := t.Source
		for _, a := range i.chart.AncestorsFor(t.Source) {
			if a == lca {
				break
			}
			lastBeforeLCA = a
		}

		descendants := i.chart.DescendantsFor(lastBeforeLCA)
		var exited []string
		for idx := len(descendants) - 1; idx >= 0; idx-- {
			if i.isActive(descendants[idx]) {
				exited = append(exited, descendants[idx])
			}
		}
		if i.isActive(lastBeforeLCA) {
			exited = append(exited, lastBeforeLCA)
		}

		entered := []string{t.Target}
		for _, a := range i.chart.AncestorsFor(t.Target) {
			if a == lca {
				break
			}
			entered = append([]string{a}, entered...)
		}

		steps = append(steps, MicroStep{
			Event:         event,
			Transition:    t,
			EnteredStates: entered,
			ExitedStates:  exited,
		})
	}
	return steps
}

// computeSteps computes the steps for this macro step: on the very first
// call it simply enters the root; thereafter it selects a candidate
// event, selects and orders eligible transitions, and builds their
// micro steps.
func (i *Interpreter) computeSteps() []MicroStep {
	if !i.initialized {
		i.initialized = true
		return []MicroStep{{EnteredStates: []string{i.chart.Root()}}}
	}

	event := i.selectEvent()
	transitions := i.selectTransitions(event, i.configuration, i.eventlessFirst, i.innerFirst)

	if len(transitions) == 0 {
		if event == nil {
			return nil
		}
		return []MicroStep{{Event: event}}
	}

	transitions = i.sortTransitions(transitions)
	if transitions[0].Event == "" {
		event = nil
	}

	return i.createSteps(event, transitions)
}

// createStabilizationStep finds the deepest leaf of the current
// configuration that needs a follow-up move (entering an initial child,
// entering all orthogonal regions, restoring history, or terminating on a
// root-level final) and returns the corresponding MicroStep, or nil if
// the configuration is already stable.
func (i *Interpreter) createStabilizationStep(names []string) *MicroStep {
	leaves := i.chart.LeafFor(names)
	sort.SliceStable(leaves, func(a, b int) bool {
		da, db := i.chart.DepthFor(leaves[a]), i.chart.DepthFor(leaves[b])
		if da != db {
			return da > db
		}
		return leaves[a] < leaves[b]
	})

	for _, leafName := range leaves {
		leaf := i.chart.StateFor(leafName)

		switch {
		case leaf.Kind == Final && i.chart.ParentFor(leaf.Name) == i.chart.Root():
			return &MicroStep{ExitedStates: []string{leaf.Name, i.chart.Root()}}

		case leaf.IsHistory():
			if recorded, ok := i.memory[leaf.Name]; ok {
				toEnter := append([]string(nil), recorded...)
				sort.Slice(toEnter, func(a, b int) bool {
					da, db := i.chart.DepthFor(toEnter[a]), i.chart.DepthFor(toEnter[b])
					if da != db {
						return da < db
					}
					return toEnter[a] < toEnter[b]
				})
				return &MicroStep{EnteredStates: toEnter, ExitedStates: []string{leaf.Name}}
			}
			var entered []string
			if leaf.Memory != "" {
				entered = []string{leaf.Memory}
			}
			return &MicroStep{EnteredStates: entered, ExitedStates: []string{leaf.Name}}

		case leaf.Kind == Orthogonal:
			children := i.chart.ChildrenFor(leaf.Name)
			if len(children) > 0 {
				sort.Strings(children)
				return &MicroStep{EnteredStates: children}
			}

		case leaf.Kind == Compound:
			if leaf.Initial != "" {
				return &MicroStep{EnteredStates: []string{leaf.Initial}}
			}
		}
	}

	return nil
}

// applyStep mutates the configuration and history memory in the strict
// order spec's §4.6 requires: exits (with history recording), then the
// transition's action (if any), then entries, then dispatch of any
// events those callbacks sent.
func (i *Interpreter) applyStep(step *MicroStep) {
	activeConfig := append([]string(nil), i.configuration...)
	sort.Strings(activeConfig)

	var sentEvents []*Event

	for _, stateName := range step.ExitedStates {
		state := i.chart.StateFor(stateName)
		sentEvents = append(sentEvents, i.evaluator.ExecuteOnExit(state)...)

		if state.Kind == Compound {
			for _, childName := range i.chart.ChildrenFor(stateName) {
				child := i.chart.StateFor(childName)
				if !child.IsHistory() {
					continue
				}
				var descendants []string
				if child.Kind == DeepHistory {
					descendants = i.chart.DescendantsFor(stateName)
				} else {
					descendants = i.chart.ChildrenFor(stateName)
				}
				sort.Strings(descendants)
				i.memory[childName] = intersectSorted(activeConfig, descendants)
			}
		}

		i.configuration = removeOne(i.configuration, stateName)

		exited := newMetaEvent(MetaStateExited, i.clock.Now())
		exited.State = stateName
		i.notify(exited)
	}

	if step.Transition != nil {
		sentEvents = append(sentEvents, i.evaluator.ExecuteAction(step.Transition, step.Event)...)

		processed := newMetaEvent(MetaTransitionProcessed, i.clock.Now())
		processed.Source = step.Transition.Source
		processed.Target = step.Transition.Target
		processed.Event = step.Event
		i.notify(processed)
	}

	for _, stateName := range step.EnteredStates {
		state := i.chart.StateFor(stateName)
		sentEvents = append(sentEvents, i.evaluator.ExecuteOnEntry(state)...)

		i.configuration = append(i.configuration, stateName)

		entered := newMetaEvent(MetaStateEntered, i.clock.Now())
		entered.State = stateName
		i.notify(entered)
	}

	for _, e := range sentEvents {
		i.raiseEvent(e)
	}

	step.SentEvents = sentEvents
}

func removeOne(haystack []string, needle string) []string {
	for idx, s := range haystack {
		if s == needle {
			return append(haystack[:idx], haystack[idx+1:]...)
		}
	}
	return haystack
}

// intersectSorted returns the elements common to two already-sorted
// slices.
func intersectSorted(a, b []string) []string {
	var ret []string
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) {
		switch {
		case a[ai] == b[bi]:
			ret = append(ret, a[ai])
			ai++
			bi++
		case a[ai] < b[bi]:
			ai++
		default:
			bi++
		}
	}
	return ret
}

// stabilize repeatedly applies stabilization micro steps until the
// configuration reaches a fixed point, returning every step it applied.
func (i *Interpreter) stabilize() []MicroStep {
	var steps []MicroStep
	for {
		step := i.createStabilizationStep(i.configuration)
		if step == nil {
			break
		}
		i.applyStep(step)
		steps = append(steps, *step)
	}
	return steps
}

// ExecuteOnce advances the interpreter by one macro step: it emits "step
// started", computes and applies the steps for this step (initial entry,
// or the selected/ordered transitions, consuming an event if the first
// computed step carries one), stabilizes after each, emits "step ended",
// and returns the completed MacroStep, or nil if nothing happened.
func (i *Interpreter) ExecuteOnce() *MacroStep {
	i.notify(newMetaEvent(MetaStepStarted, i.clock.Now()))

	var macro *MacroStep

	computed := i.computeSteps()
	if len(computed) > 0 {
		if computed[0].Event != nil {
			event := i.selectEventAndConsume()
			consumed := newMetaEvent(MetaEventConsumed, i.clock.Now())
			consumed.Event = event
			i.notify(consumed)
		}

		var executed []MicroStep
		for idx := range computed {
			step := &computed[idx]
			i.applyStep(step)
			executed = append(executed, *step)
			executed = append(executed, i.stabilize()...)

			macro = &MacroStep{Time: i.clock.Now(), Steps: executed}
		}
	}

	i.notify(newMetaEvent(MetaStepEnded, i.clock.Now()))

	return macro
}

// Execute repeatedly calls ExecuteOnce, collecting every non-nil
// MacroStep until it returns nil.
func (i *Interpreter) Execute() []MacroStep {
	var ret []MacroStep
	for {
		m := i.ExecuteOnce()
		if m == nil {
			break
		}
		ret = append(ret, *m)
	}
	return ret
}
