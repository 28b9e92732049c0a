// Package realtime provides a tick-based deterministic runtime for hscx.
//
// The real-time runtime differs from the actor package in event dispatch:
//   - Events are batched and processed at fixed tick boundaries
//   - Deterministic event ordering via priority and sequence numbers
//   - A full tick drains the batch through a single Interpreter.Execute
//     call, so orthogonal regions and eventless transitions settle inside
//     the same tick rather than needing a separate sweep
//   - Fixed time-step execution (e.g., 60 FPS)
//
// # Example Usage
//
//	interp, _ := hscx.NewInterpreter(chart, evaluator)
//	rt := realtime.NewRuntime(interp, realtime.Config{
//		TickRate: 16667 * time.Microsecond, // 60 FPS
//	})
//	rt.Start(ctx)
//	rt.SendEvent(hscx.NewEvent("tick"))
//
// # Trade-offs vs the actor package
//
// actor.Actor drains its queue on every poll interval and whenever Send is
// called, so latency tracks the poll interval loosely. RealtimeRuntime
// drains only at tick boundaries and orders the batch by explicit priority
// before draining, trading a little latency for a hard guarantee: given the
// same sequence of SendEvent/SendEventWithPriority calls, the interpreter
// executes the same way every run, independent of goroutine scheduling.
//
// # Use Cases
//
//   - Game engines (60 FPS game logic)
//   - Physics simulations (fixed time-step)
//   - Robotics (deterministic control loops)
//   - Testing/debugging (reproducible scenarios)
//
// # Architecture
//
// RealtimeRuntime wraps an *hscx.Interpreter and reuses its entire step
// engine (selection, LCA computation, stabilization, orthogonal-region
// entry). Only the event dispatch mechanism is replaced with tick-based
// batching: a tick collects the events queued since the last tick, sorts
// them by priority then arrival order, hands them to the interpreter via
// Queue, and then calls Execute once to run the macrostep (and any
// eventless follow-on steps) to quiescence.
//
// # Event Ordering Guarantees
//
// Events are ordered deterministically using:
//  1. Priority (higher priority processed first)
//  2. Sequence number (FIFO for same priority)
//  3. Stable sorting (preserves relative order)
package realtime
