package hscx

import "testing"

func TestTimeProviderAfterAndIdle(t *testing.T) {
	p := newTimeProvider()

	p.Notify(&Event{Name: MetaStepStarted, Kind: MetaKind, Time: 0})
	p.Notify(&Event{Name: MetaStateEntered, Kind: MetaKind, State: "s"})

	if p.after("s", 1) {
		t.Error("should not yet be after(1) at time 0")
	}
	if !p.idle("s", 0) {
		t.Error("should be idle(0) immediately after entry")
	}

	p.Notify(&Event{Name: MetaStepStarted, Kind: MetaKind, Time: 1.5})
	if !p.after("s", 1) {
		t.Error("should be after(1) once 1.5s have elapsed since entry")
	}
	if p.after("s", 2) {
		t.Error("should not be after(2) after only 1.5s")
	}
}

func TestTimeProviderIdleResetByTransition(t *testing.T) {
	p := newTimeProvider()

	p.Notify(&Event{Name: MetaStepStarted, Kind: MetaKind, Time: 0})
	p.Notify(&Event{Name: MetaStateEntered, Kind: MetaKind, State: "s"})

	p.Notify(&Event{Name: MetaStepStarted, Kind: MetaKind, Time: 2})
	p.Notify(&Event{Name: MetaTransitionProcessed, Kind: MetaKind, Source: "s"})

	p.Notify(&Event{Name: MetaStepStarted, Kind: MetaKind, Time: 2.5})
	if p.idle("s", 1) {
		t.Error("idle clock should have reset at the internal transition, not still measuring from entry")
	}
	if !p.idle("s", 0.1) {
		t.Error("should be idle(0.1) half a second after the transition reset idle time")
	}
}

func TestTimeProviderActiveTracksEntryAndExit(t *testing.T) {
	p := newTimeProvider()

	if p.active("s") {
		t.Error("should not be active before any entry")
	}

	p.Notify(&Event{Name: MetaStateEntered, Kind: MetaKind, State: "s"})
	if !p.active("s") {
		t.Error("should be active after entry")
	}

	p.Notify(&Event{Name: MetaStateExited, Kind: MetaKind, State: "s"})
	if p.active("s") {
		t.Error("should not be active after exit")
	}
}

func TestEventProviderWasSentAndReceived(t *testing.T) {
	p := newEventProvider()

	if p.WasSent("ping") || p.Received("ping") {
		t.Error("fresh eventProvider should report nothing sent or received")
	}

	p.Notify(&Event{Name: MetaEventConsumed, Kind: MetaKind, Event: NewEvent("ping")})
	p.Notify(&Event{Name: MetaEventSent, Kind: MetaKind, Event: NewInternalEvent("pong")})

	if !p.Received("ping") {
		t.Error("expected Received(\"ping\")")
	}
	if p.Received("pong") {
		t.Error("did not expect Received(\"pong\")")
	}
	if !p.WasSent("pong") {
		t.Error("expected WasSent(\"pong\")")
	}
	if p.WasSent("ping") {
		t.Error("ping was only consumed, not sent")
	}
}

func TestEventProviderResetsOnStepStarted(t *testing.T) {
	p := newEventProvider()

	p.Notify(&Event{Name: MetaEventConsumed, Kind: MetaKind, Event: NewEvent("ping")})
	p.Notify(&Event{Name: MetaEventSent, Kind: MetaKind, Event: NewInternalEvent("pong")})

	p.Notify(&Event{Name: MetaStepStarted, Kind: MetaKind})

	if p.Received("ping") {
		t.Error("Received should reset at step started")
	}
	if p.WasSent("pong") {
		t.Error("WasSent should reset at step started")
	}
}
