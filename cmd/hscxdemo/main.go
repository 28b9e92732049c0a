// Command hscxdemo runs a small traffic-light statechart end to end: it
// wires the builder DSL, the default evaluator, an actor, a JSON
// persister, a channel publisher, and the DOT visualizer together, the
// way a host application would.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/actor"
	"github.com/comalice/hscx/builder"
	"github.com/comalice/hscx/internal/evaluators"
	"github.com/comalice/hscx/internal/hostctx"
	"github.com/comalice/hscx/internal/production"
)

func main() {
	b := builder.New("traffic-light", "traffic", builder.Compound("red"))
	builder.State(b, "traffic.red")
	builder.State(b, "traffic.green")
	builder.State(b, "traffic.yellow")
	builder.State(b, "traffic.red", builder.On("TIMER", "traffic.green", nil, nil))
	builder.State(b, "traffic.green", builder.On("TIMER", "traffic.yellow", nil, nil))
	builder.State(b, "traffic.yellow", builder.On("TIMER", "traffic.red", nil, nil))

	chart, err := b.Build()
	if err != nil {
		panic(err)
	}

	ctx := hostctx.New()
	logged := evaluators.NewLogging(evaluators.NewRegistry(ctx))

	interp, err := hscx.NewInterpreter(chart, logged)
	if err != nil {
		panic(err)
	}

	persister, err := production.NewJSONPersister("/tmp/hscxdemo")
	if err != nil {
		panic(err)
	}

	if prior, err := persister.Load(context.Background(), chart.Name); err == nil {
		ctx.Restore(prior.ContextData)
		fmt.Printf("Restored context from prior run (saved %s)\n", prior.Timestamp.Format(time.RFC3339))
	}

	publishCh := make(chan *hscx.Event, 100)
	publisher := production.NewChannelPublisher(publishCh)
	interp.Attach(production.NewListener(context.Background(), publisher))

	visualizer := &production.DefaultVisualizer{}

	a := actor.New(interp, 20*time.Millisecond)
	a.Start()
	defer a.Stop()

	ticker := time.NewTicker(2 * time.Second)
	defer ticker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	cycles := 0
	for {
		select {
		case <-ticker.C:
			if err := a.SendName("TIMER"); err != nil {
				fmt.Printf("Send error: %v\n", err)
			}
			time.Sleep(25 * time.Millisecond) // let the actor's poll loop drain

			cycles++
			fmt.Printf("\n--- Cycle %d ---\n", cycles)
			fmt.Println("Current configuration:", a.Configuration())
			fmt.Println("DOT:\n" + visualizer.ExportDOT(chart, a.Configuration()))

			select {
			case event := <-publishCh:
				fmt.Printf("Published: %s\n", event.Name)
			default:
			}

			snap := production.Snapshot{
				ChartName:     chart.Name,
				Configuration: a.Configuration(),
				ContextData:   ctx.Snapshot(),
				Timestamp:     time.Now(),
			}
			if err := persister.Save(context.Background(), snap); err != nil {
				fmt.Printf("Save error: %v\n", err)
			}

			if cycles >= 12 {
				fmt.Println("Demo complete after 12 cycles.")
				return
			}
		case <-sig:
			fmt.Println("\nShutting down gracefully...")
			return
		}
	}
}
