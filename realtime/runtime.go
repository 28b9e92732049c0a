package realtime

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/comalice/hscx"
)

// ErrQueueFull is returned when a tick's event batch is already at capacity.
var ErrQueueFull = errors.New("realtime: event batch full")

// Config configures the real-time runtime.
type Config struct {
	TickRate         time.Duration // fixed tick rate, e.g. 16.67ms for 60 FPS
	MaxEventsPerTick int           // event batch capacity (default: 1000)
}

// RealtimeRuntime drives an *hscx.Interpreter at a fixed tick rate instead
// of on every Send, batching and priority-ordering events within each tick
// so that replaying the same SendEvent calls always yields the same run.
type RealtimeRuntime struct {
	interp *hscx.Interpreter

	tickRate time.Duration
	ticker   *time.Ticker
	tickNum  uint64

	eventBatch  []EventWithMeta
	batchMu     sync.Mutex
	sequenceNum uint64

	tickCtx    context.Context
	tickCancel context.CancelFunc
	stopped    chan struct{}

	mu            sync.RWMutex
	configuration []string
}

// NewRuntime wraps interp in a tick-based driver.
func NewRuntime(interp *hscx.Interpreter, cfg Config) *RealtimeRuntime {
	if cfg.MaxEventsPerTick == 0 {
		cfg.MaxEventsPerTick = 1000
	}
	if cfg.TickRate == 0 {
		cfg.TickRate = 16667 * time.Microsecond // default 60 FPS
	}

	return &RealtimeRuntime{
		interp:     interp,
		tickRate:   cfg.TickRate,
		eventBatch: make([]EventWithMeta, 0, cfg.MaxEventsPerTick),
		stopped:    make(chan struct{}),
	}
}

// Start runs the interpreter to its initial quiescent configuration, then
// begins the tick loop.
func (rt *RealtimeRuntime) Start(ctx context.Context) error {
	rt.interp.Execute()
	rt.mu.Lock()
	rt.configuration = rt.interp.Configuration()
	rt.mu.Unlock()

	rt.tickCtx, rt.tickCancel = context.WithCancel(ctx)
	rt.ticker = time.NewTicker(rt.tickRate)

	go rt.tickLoop()

	return nil
}

// Stop cancels the tick loop and waits for it to exit.
func (rt *RealtimeRuntime) Stop() error {
	if rt.tickCancel != nil {
		rt.tickCancel()
	}
	if rt.ticker != nil {
		rt.ticker.Stop()
	}
	<-rt.stopped
	return nil
}

func (rt *RealtimeRuntime) tickLoop() {
	defer close(rt.stopped)
	defer func() {
		_ = recover()
	}()

	for {
		select {
		case <-rt.tickCtx.Done():
			return
		case <-rt.ticker.C:
			func() {
				defer func() {
					_ = recover()
				}()
				rt.processTick()
			}()

			rt.batchMu.Lock()
			rt.tickNum++
			rt.batchMu.Unlock()
		}
	}
}

// SendEvent queues event for the next tick at priority 0.
func (rt *RealtimeRuntime) SendEvent(event *hscx.Event) error {
	return rt.SendEventWithPriority(event, 0)
}

// SendEventWithPriority queues event for the next tick at the given
// priority; higher priorities drain first within the tick.
func (rt *RealtimeRuntime) SendEventWithPriority(event *hscx.Event, priority int) error {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()

	if len(rt.eventBatch) >= cap(rt.eventBatch) {
		return ErrQueueFull
	}

	rt.eventBatch = append(rt.eventBatch, EventWithMeta{
		Event:       event,
		SequenceNum: rt.sequenceNum,
		Priority:    priority,
	})
	rt.sequenceNum++

	return nil
}

// GetTickNumber returns the number of ticks processed so far.
func (rt *RealtimeRuntime) GetTickNumber() uint64 {
	rt.batchMu.Lock()
	defer rt.batchMu.Unlock()
	return rt.tickNum
}

// Configuration returns the interpreter's configuration as of the last
// completed tick.
func (rt *RealtimeRuntime) Configuration() []string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	out := make([]string, len(rt.configuration))
	copy(out, rt.configuration)
	return out
}
