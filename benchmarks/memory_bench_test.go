// Package benchmarks provides memory footprint benchmarks.
package benchmarks

import (
	"fmt"
	"runtime"
	"testing"

	"github.com/comalice/hscx"
	"github.com/comalice/hscx/internal/evaluators"
)

func BenchmarkMemoryFootprint(b *testing.B) {
	chart := simpleChart()
	numInterps := 1000

	var before runtime.MemStats
	runtime.ReadMemStats(&before)
	interps := make([]*hscx.Interpreter, numInterps)
	for i := 0; i < numInterps; i++ {
		interp, err := hscx.NewInterpreter(chart, evaluators.NewRegistry(nil))
		if err != nil {
			b.Fatal(err)
		}
		interps[i] = interp
	}
	runtime.GC()
	var after runtime.MemStats
	runtime.ReadMemStats(&after)

	bytesPerInterp := (after.TotalAlloc - before.TotalAlloc) / uint64(numInterps)
	b.ReportMetric(float64(bytesPerInterp)/1024/1024, "MB/interpreter")
}

func BenchmarkMemoryFlat(b *testing.B) {
	for _, n := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("states=%d", n), func(b *testing.B) {
			chart := GenFlatChart(n)
			numInterps := 100

			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			interps := make([]*hscx.Interpreter, numInterps)
			for i := 0; i < numInterps; i++ {
				interp, err := hscx.NewInterpreter(chart, evaluators.NewRegistry(nil))
				if err != nil {
					b.Fatal(err)
				}
				interps[i] = interp
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)

			bytesPerInterp := (after.TotalAlloc - before.TotalAlloc) / uint64(numInterps)
			bytesPerState := bytesPerInterp / uint64(n)
			b.ReportMetric(float64(bytesPerInterp)/1024/1024, "MB/interpreter")
			b.ReportMetric(float64(bytesPerState)/1024, "KB/state")
		})
	}
}

func BenchmarkMemoryDeep(b *testing.B) {
	for _, depth := range []int{1, 3, 5} {
		b.Run(fmt.Sprintf("depth=%d", depth), func(b *testing.B) {
			chart := GenDeepChart(depth)
			numStates := 3 * depth // compound + 2 leaves per level
			numInterps := 100

			var before runtime.MemStats
			runtime.ReadMemStats(&before)
			interps := make([]*hscx.Interpreter, numInterps)
			for i := 0; i < numInterps; i++ {
				interp, err := hscx.NewInterpreter(chart, evaluators.NewRegistry(nil))
				if err != nil {
					b.Fatal(err)
				}
				interps[i] = interp
			}
			runtime.GC()
			var after runtime.MemStats
			runtime.ReadMemStats(&after)

			bytesPerInterp := (after.TotalAlloc - before.TotalAlloc) / uint64(numInterps)
			bytesPerState := bytesPerInterp / uint64(numStates)
			b.ReportMetric(float64(bytesPerInterp)/1024/1024, "MB/interpreter")
			b.ReportMetric(float64(bytesPerState)/1024, "KB/state")
		})
	}
}
