package eventsources

import (
	"testing"
	"time"

	"github.com/comalice/hscx"
)

func TestChannelForwardsEvents(t *testing.T) {
	raw := make(chan *hscx.Event, 1)
	c := NewChannel(raw)

	raw <- hscx.NewEvent("ping")

	select {
	case e := <-c.Events():
		if e.Name != "ping" {
			t.Errorf("expected ping, got %q", e.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the forwarded event")
	}
}

func TestChannelClosesWhenUnderlyingChannelCloses(t *testing.T) {
	raw := make(chan *hscx.Event)
	c := NewChannel(raw)
	close(raw)

	select {
	case _, ok := <-c.Events():
		if ok {
			t.Fatal("expected the channel to be closed, got a value")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the channel close to propagate")
	}
}

func TestTimerEmitsNamedEventWithData(t *testing.T) {
	timer := NewTimer("tick", 7, 5*time.Millisecond)
	defer timer.Stop()

	select {
	case e := <-timer.Events():
		if e.Name != "tick" {
			t.Errorf("expected event name tick, got %q", e.Name)
		}
		if e.Data != 7 {
			t.Errorf("expected carried data 7, got %v", e.Data)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for the first tick")
	}
}

func TestTimerStopClosesChannel(t *testing.T) {
	timer := NewTimer("tick", nil, time.Hour)
	timer.Stop()

	select {
	case _, ok := <-timer.Events():
		if ok {
			t.Fatal("expected the events channel to be closed after Stop")
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for Stop to close the channel")
	}
}

func TestTimerDropsWhenReceiverIsSlow(t *testing.T) {
	// Buffer is 10; let many ticks accumulate without ever draining, and
	// confirm the timer keeps running (never blocks) rather than hanging.
	timer := NewTimer("tick", nil, time.Millisecond)
	defer timer.Stop()

	time.Sleep(50 * time.Millisecond)

	select {
	case e := <-timer.Events():
		if e.Name != "tick" {
			t.Errorf("expected event name tick, got %q", e.Name)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for a tick despite the timer not blocking on a slow receiver")
	}
}
