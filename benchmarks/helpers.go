// Package benchmarks provides shared chart generators and performance
// benchmarks for the interpreter, actor, and realtime drivers.
package benchmarks

import (
	"fmt"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/builder"
)

// GenFlatChart creates a flat chart with n leaf states cycling via "tick".
func GenFlatChart(n int) *hscx.StateChart {
	if n < 1 {
		n = 1
	}
	b := builder.New(fmt.Sprintf("flat_%d", n), "root", builder.Compound("s0"))
	for i := 0; i < n; i++ {
		builder.State(b, fmt.Sprintf("root.s%d", i))
	}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("root.s%d", i)
		target := fmt.Sprintf("root.s%d", (i+1)%n)
		builder.State(b, id, builder.On("tick", target, nil, nil))
	}
	chart, err := b.Build()
	if err != nil {
		panic(err)
	}
	return chart
}

// GenDeepChart creates a chain of depth nested compound states, each holding
// a two-leaf cycle flipping on "tick".
func GenDeepChart(depth int) *hscx.StateChart {
	if depth < 1 {
		depth = 1
	}
	b := builder.New(fmt.Sprintf("deep_%d", depth), "root", builder.Compound("c0"))
	parent := "root"
	for i := 0; i < depth; i++ {
		compound := fmt.Sprintf("%s.c%d", parent, i)
		builder.State(b, compound, builder.Compound("leaf1"))
		builder.State(b, compound+".leaf1")
		builder.State(b, compound+".leaf2", builder.On("tick", compound+".leaf1", nil, nil))
		builder.State(b, compound+".leaf1", builder.On("tick", compound+".leaf2", nil, nil))
		parent = compound
	}
	chart, err := b.Build()
	if err != nil {
		panic(err)
	}
	return chart
}

// GenWideChart creates one source state with numTransitions outgoing "tick"
// transitions, ordered by descending priority so only the first guard ever
// actually fires.
func GenWideChart(numTransitions int) *hscx.StateChart {
	if numTransitions < 1 {
		numTransitions = 1
	}
	b := builder.New(fmt.Sprintf("wide_%d", numTransitions), "root", builder.Compound("main"))
	builder.State(b, "root.main")
	for i := 0; i < numTransitions; i++ {
		target := fmt.Sprintf("root.target%d", i)
		builder.State(b, target, builder.On("tick", "root.main", nil, nil))
	}
	for i := 0; i < numTransitions; i++ {
		target := fmt.Sprintf("root.target%d", i)
		i := i
		guard := func(ctx *hscx.GuardContext) bool { return i == 0 }
		builder.State(b, "root.main", builder.OnPriority("tick", target, guard, nil, numTransitions-i))
	}
	chart, err := b.Build()
	if err != nil {
		panic(err)
	}
	return chart
}
