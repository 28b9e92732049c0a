// Package testutil provides a common interface over the actor and realtime
// drivers, so the same scenario can run against both and assert identical
// end states.
package testutil

import (
	"context"
	"time"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/actor"
	"github.com/comalice/hscx/realtime"
)

// RuntimeAdapter is the shared surface exercised by cross-driver tests.
type RuntimeAdapter interface {
	Start(ctx context.Context) error
	Stop() error
	SendEvent(event *hscx.Event) error
	Configuration() []string
	WaitForStability(timeout time.Duration) error
}

// ActorAdapter wraps actor.Actor, the polling single-goroutine driver.
type ActorAdapter struct {
	a            *actor.Actor
	pollInterval time.Duration
}

// NewActorAdapter wraps interp as an ActorAdapter polling at pollInterval.
func NewActorAdapter(interp *hscx.Interpreter, pollInterval time.Duration) *ActorAdapter {
	return &ActorAdapter{a: actor.New(interp, pollInterval), pollInterval: pollInterval}
}

func (a *ActorAdapter) Start(ctx context.Context) error {
	a.a.Start()
	return nil
}

func (a *ActorAdapter) Stop() error {
	a.a.Stop()
	return nil
}

func (a *ActorAdapter) SendEvent(event *hscx.Event) error {
	return a.a.Send(event)
}

func (a *ActorAdapter) Configuration() []string {
	return a.a.Configuration()
}

// WaitForStability sleeps past one poll interval, enough for the actor's
// loop to have drained whatever was sent.
func (a *ActorAdapter) WaitForStability(timeout time.Duration) error {
	time.Sleep(a.pollInterval + 5*time.Millisecond)
	return nil
}

// RealtimeAdapter wraps realtime.RealtimeRuntime, the fixed-tick driver.
type RealtimeAdapter struct {
	rt       *realtime.RealtimeRuntime
	tickRate time.Duration
}

// NewRealtimeAdapter wraps interp as a RealtimeAdapter ticking at tickRate.
func NewRealtimeAdapter(interp *hscx.Interpreter, tickRate time.Duration) *RealtimeAdapter {
	return &RealtimeAdapter{
		rt:       realtime.NewRuntime(interp, realtime.Config{TickRate: tickRate}),
		tickRate: tickRate,
	}
}

func (a *RealtimeAdapter) Start(ctx context.Context) error {
	return a.rt.Start(ctx)
}

func (a *RealtimeAdapter) Stop() error {
	return a.rt.Stop()
}

func (a *RealtimeAdapter) SendEvent(event *hscx.Event) error {
	return a.rt.SendEvent(event)
}

func (a *RealtimeAdapter) Configuration() []string {
	return a.rt.Configuration()
}

// WaitForStability sleeps past one tick boundary so the batch containing
// the most recent SendEvent has been drained.
func (a *RealtimeAdapter) WaitForStability(timeout time.Duration) error {
	time.Sleep(a.tickRate + 5*time.Millisecond)
	return nil
}
