// Package actor wraps an *hscx.Interpreter as a single-goroutine actor:
// every Queue/Execute call happens on one owned goroutine, so callers on
// other goroutines only ever touch the actor through its channel-based
// Send and the lock-guarded Configuration snapshot, honoring the
// interpreter's single-owner, non-re-entrant contract.
package actor

import (
	"errors"
	"sync"
	"time"

	"github.com/comalice/hscx"
)

// ErrQueueFull is returned by Send when the actor's inbound buffer is
// saturated.
var ErrQueueFull = errors.New("actor: event queue full (backpressure)")

// Actor owns one Interpreter and drives it from a single internal
// goroutine, started by Start and stopped by Stop.
type Actor struct {
	interp *hscx.Interpreter

	eventQueue chan *hscx.Event
	done       chan struct{}
	stopped    chan struct{}
	ready      chan struct{}
	startOnce  sync.Once

	// pollInterval bounds how long an eventless or after()-guarded
	// transition can wait with no external event to wake the loop.
	pollInterval time.Duration

	mu            sync.RWMutex
	configuration []string
	inFinal       bool
}

// New wraps interp. pollInterval controls how often the actor re-checks
// for eventless/time-guarded transitions when no external event arrives;
// 0 selects a 20ms default.
func New(interp *hscx.Interpreter, pollInterval time.Duration) *Actor {
	if pollInterval <= 0 {
		pollInterval = 20 * time.Millisecond
	}
	return &Actor{
		interp:       interp,
		eventQueue:   make(chan *hscx.Event, 1000),
		done:         make(chan struct{}),
		stopped:      make(chan struct{}),
		ready:        make(chan struct{}),
		pollInterval: pollInterval,
	}
}

// Start launches the actor's event loop and blocks until the loop has run
// the interpreter to its initial configuration. Idempotent: later calls
// are a no-op.
func (a *Actor) Start() {
	a.startOnce.Do(func() {
		go a.run()
		<-a.ready
	})
}

// Stop signals the event loop to exit and blocks until it has.
func (a *Actor) Stop() {
	select {
	case <-a.done:
	default:
		close(a.done)
	}
	<-a.stopped
}

// Send enqueues event for the actor's goroutine to Queue and process.
// Non-blocking: returns ErrQueueFull if the buffer is saturated rather
// than stalling the caller.
func (a *Actor) Send(event *hscx.Event) error {
	select {
	case a.eventQueue <- event:
		return nil
	default:
		return ErrQueueFull
	}
}

// SendName is Send(hscx.NewEvent(name)).
func (a *Actor) SendName(name string) error {
	return a.Send(hscx.NewEvent(name))
}

// Configuration returns a thread-safe snapshot of the interpreter's
// active configuration as of the most recently completed drain.
func (a *Actor) Configuration() []string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]string(nil), a.configuration...)
}

// IsInFinal reports whether the wrapped interpreter has run to
// completion, per the last drain.
func (a *Actor) IsInFinal() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.inFinal
}

func (a *Actor) run() {
	defer close(a.stopped)

	a.drain()
	close(a.ready)

	ticker := time.NewTicker(a.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case e := <-a.eventQueue:
			a.interp.Queue(e)
			a.drain()
		case <-ticker.C:
			a.drain()
		case <-a.done:
			return
		}
	}
}

// drain runs the interpreter to a fixed point and republishes the
// resulting configuration for Configuration/IsInFinal to read.
func (a *Actor) drain() {
	a.interp.Execute()
	a.mu.Lock()
	a.configuration = a.interp.Configuration()
	a.inFinal = a.interp.IsInFinal()
	a.mu.Unlock()
}
