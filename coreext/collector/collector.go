// Package collector provides the collector module, imported in Alvin with
// (import collector).
package collector

import (
	"fmt"
	"runtime"
	"time"

	"github.com/zephyrtronium/alvin"
	"github.com/zephyrtronium/alvin/internal"
)

// The interpreter keeps closure environments in a registry that Go's
// collector cannot see into, so it runs its own mark-and-sweep over the
// registry. This module exposes that collection alongside Go's statistics.

func init() {
	internal.Register(initCollector)
}

func initCollector(in *alvin.Interp) {
	in.ProvideModule(&alvin.Module{
		Name: "collector",
		Members: map[alvin.Symbol]alvin.Value{
			"collect":   alvin.NewBuiltin("collect", collectorCollect),
			"count":     alvin.NewBuiltin("count", collectorCount),
			"showStats": alvin.NewBuiltin("showStats", collectorShowStats),
			"timeUsed":  alvin.NewBuiltin("timeUsed", collectorTimeUsed),
		},
	})
}

// collectorCollect is a collector function.
//
// collect sweeps closure environments that no binding can reach and returns
// the number removed.
func collectorCollect(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("collector.collect", args, 0, 0); err != nil {
		return nil, err
	}
	return alvin.Int(in.Collect()), nil
}

// collectorCount is a collector function.
//
// count returns the number of closure environments in the registry.
func collectorCount(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("collector.count", args, 0, 0); err != nil {
		return nil, err
	}
	return alvin.Int(len(in.ClosureTable())), nil
}

// collectorShowStats is a collector function.
//
// showStats prints the registry size and Go's garbage collector statistics.
func collectorShowStats(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	if err := internal.CheckArity("collector.showStats", args, 0, 0); err != nil {
		return nil, err
	}
	var s runtime.MemStats
	runtime.ReadMemStats(&s)
	fmt.Fprintf(in.Stdout, "Closure environments: %d\n", len(in.ClosureTable()))
	if s.NumGC > 0 {
		last := time.Unix(0, int64(s.LastGC))
		fmt.Fprintf(in.Stdout, "Last GC at %v (%v ago)", last, time.Since(last))
	} else {
		fmt.Fprint(in.Stdout, "GC has not run")
	}
	fmt.Fprintf(in.Stdout, showStatsFormat,
		s.TotalAlloc, s.Mallocs,
		s.HeapAlloc, s.Mallocs-s.Frees,
		s.NextGC,
		s.NumGC,
		s.GCCPUFraction*100)
	return nil, nil
}

// collectorTimeUsed is a collector function.
//
// timeUsed reports the number of seconds Go has spent in stop-the-world
// garbage collection.
func collectorTimeUsed(in *alvin.Interp, args alvin.List) (alvin.Value, error) {
	var stats runtime.MemStats
	runtime.ReadMemStats(&stats)
	return alvin.Float(float64(stats.PauseTotalNs) / 1e9), nil
}

const showStatsFormat = `
Lifetime allocated: %d B (%d objects)
Live heap: %d B (%d objects)
Next GC target: %d B
Completed cycles: %d
GC CPU usage: %.6f%%
`
