package production

import (
	"context"

	"github.com/comalice/hscx"
)

// EventPublisher forwards an hscx meta-event somewhere external (a log
// shipper, a message bus adapter, a test harness).
type EventPublisher interface {
	Publish(ctx context.Context, event *hscx.Event) error
	Close() error
}

// ChannelPublisher is a stdlib-only EventPublisher that forwards to a Go
// channel. Publish is non-blocking: a full channel drops the event rather
// than stalling the interpreter's own goroutine.
type ChannelPublisher struct {
	ch chan<- *hscx.Event
}

// NewChannelPublisher wraps ch.
func NewChannelPublisher(ch chan<- *hscx.Event) *ChannelPublisher {
	return &ChannelPublisher{ch: ch}
}

// Publish forwards event to the wrapped channel, or drops it if the
// channel is full, or returns ctx.Err() if ctx was already done.
func (p *ChannelPublisher) Publish(ctx context.Context, event *hscx.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	select {
	case p.ch <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}

// Close closes the wrapped channel.
func (p *ChannelPublisher) Close() error {
	close(p.ch)
	return nil
}

// Listener adapts an EventPublisher to hscx.Listener, so Attach wires it
// straight into an Interpreter's observer bus: every meta-event the
// interpreter emits is forwarded to the publisher under ctx.
type Listener struct {
	ctx       context.Context
	publisher EventPublisher
}

// NewListener builds a Listener forwarding to publisher under ctx.
func NewListener(ctx context.Context, publisher EventPublisher) *Listener {
	return &Listener{ctx: ctx, publisher: publisher}
}

// Notify implements hscx.Listener.
func (l *Listener) Notify(event *hscx.Event) {
	_ = l.publisher.Publish(l.ctx, event)
}
