// Package eventsources provides EventSource implementations that feed
// external events into an actor.Actor, mirroring the teacher's
// ChannelEventSource/TimerEventSource pair.
package eventsources

import (
	"time"

	"github.com/comalice/hscx"
)

// EventSource produces a stream of events to be queued into a running
// interpreter (typically via actor.Actor.Send).
type EventSource interface {
	Events() <-chan *hscx.Event
}

// Channel is an EventSource backed directly by a caller-owned channel.
type Channel struct {
	ch chan *hscx.Event
}

// NewChannel wraps ch (buffer it yourself if backpressure matters).
func NewChannel(ch chan *hscx.Event) *Channel {
	return &Channel{ch: ch}
}

// Events returns the receive-only view of the wrapped channel.
func (c *Channel) Events() <-chan *hscx.Event { return c.ch }

// Timer emits a named event every d, until Stop is called.
type Timer struct {
	ch     chan *hscx.Event
	name   string
	data   any
	ticker *time.Ticker
	stop   chan struct{}
}

// NewTimer starts a Timer emitting name (carrying data) every d.
func NewTimer(name string, data any, d time.Duration) *Timer {
	t := &Timer{
		ch:     make(chan *hscx.Event, 10),
		name:   name,
		data:   data,
		ticker: time.NewTicker(d),
		stop:   make(chan struct{}),
	}
	go t.run()
	return t
}

func (t *Timer) run() {
	for {
		select {
		case <-t.ticker.C:
			e := hscx.NewEvent(t.name)
			e.Data = t.data
			select {
			case t.ch <- e:
			default:
				// receiver too slow; drop rather than block the ticker
			}
		case <-t.stop:
			t.ticker.Stop()
			close(t.ch)
			return
		}
	}
}

// Events returns the event channel.
func (t *Timer) Events() <-chan *hscx.Event { return t.ch }

// Stop halts the ticker and closes the channel.
func (t *Timer) Stop() { close(t.stop) }
