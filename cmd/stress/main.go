package main

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/delaneyj/geomtoy/shapes"
	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
)

func main() {
	log.Print("Starting geomtoy stress run, please wait...")
	defer log.Print("Finished geomtoy stress run")

	cfgs := []stressConfig{
		{name: "fan out", kind: fanOut, width: 1000, iterations: 200},
		{name: "wide fan out", kind: fanOut, width: 10000, iterations: 20},
		{name: "deep chain", kind: chain, width: 2000, iterations: 100},
		{name: "recursive cycle", kind: recursiveCycle, width: 2, iterations: 1000},
		{name: "runaway cycle", kind: runawayCycle, width: 2, iterations: 3, watchdog: 20 * time.Millisecond},
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{
		"test", "objects", "nTimes", "time",
		"passes", "serviced", "invocations", "skips", "trips",
		"updateRate",
	})

	for _, cfg := range cfgs {
		log.Printf("Running '%s' config", cfg.name)
		res, err := run(cfg)
		if err != nil {
			log.Fatalf("%s: %v", cfg.name, err)
		}

		updateRate := float64(res.stats.Invocations) / (float64(res.duration) / float64(time.Millisecond))
		table.Append([]string{
			cfg.name,
			humanize.Comma(int64(res.objects)),
			humanize.Comma(int64(cfg.iterations)),
			fmt.Sprint(res.duration),
			humanize.Comma(int64(res.stats.Passes)),
			humanize.Comma(int64(res.stats.Serviced)),
			humanize.Comma(int64(res.stats.Invocations)),
			humanize.Comma(int64(res.stats.RecursiveSkips)),
			humanize.Comma(int64(res.stats.WatchdogTrips)),
			humanize.Comma(int64(updateRate)),
		})
	}
	table.Render()
}

type stressKind int

const (
	fanOut stressKind = iota
	chain
	recursiveCycle
	runawayCycle
)

type stressConfig struct {
	name       string
	kind       stressKind
	width      int // bound objects, or chain length
	iterations int
	watchdog   time.Duration
}

type stressResult struct {
	objects  int
	duration time.Duration
	stats    geomtoy.Stats
}

func run(cfg stressConfig) (*stressResult, error) {
	opts := []geomtoy.Option{geomtoy.WithLogger(geomtoy.NopLogger())}
	if cfg.watchdog > 0 {
		opts = append(opts, geomtoy.WithWatchdog(cfg.watchdog))
	}
	w := geomtoy.NewWorld(opts...)

	src, err := build(w, cfg)
	if err != nil {
		return nil, err
	}
	if err := w.Settle(); err != nil {
		return nil, err
	}

	start := time.Now()
	for i := 0; i < cfg.iterations; i++ {
		if err := src.SetX(src.X() + 1); err != nil {
			return nil, err
		}
		err := w.Settle()
		switch {
		case err == nil:
		case cfg.kind == runawayCycle && errors.Is(err, geomtoy.ErrWatchdog):
		default:
			return nil, err
		}
	}
	return &stressResult{
		objects:  len(w.Targets()),
		duration: time.Since(start),
		stats:    w.Scheduler().Stats(),
	}, nil
}

func build(w *geomtoy.World, cfg stressConfig) (*shapes.Point, error) {
	src := shapes.NewPoint(w, 0, 0)
	switch cfg.kind {
	case fanOut:
		for i := 0; i < cfg.width; i++ {
			if _, err := shapes.BindCopy(shapes.NewPoint(w, 0, 0), src); err != nil {
				return nil, err
			}
		}
	case chain:
		last := src
		for i := 0; i < cfg.width; i++ {
			next := shapes.NewPoint(w, 0, 0)
			if _, err := shapes.BindCopy(next, last); err != nil {
				return nil, err
			}
			last = next
		}
	case recursiveCycle, runawayCycle:
		other := shapes.NewPoint(w, 0, 0)
		var opts []geomtoy.HandlerOption
		if cfg.kind == recursiveCycle {
			opts = append(opts, geomtoy.WithRecursiveEffect())
		}
		if err := bump(other, src, opts...); err != nil {
			return nil, err
		}
		if err := bump(src, other, opts...); err != nil {
			return nil, err
		}
	}
	return src, nil
}

// bump makes dst.x follow src.x + 1, which never settles without a guard.
func bump(dst, src *shapes.Point, opts ...geomtoy.HandlerOption) error {
	cb := geomtoy.NewCallback("bump", func([]geomtoy.Event) {
		if err := dst.SetX(src.X() + 1); err != nil {
			dst.World().Logger().Warn("bump rejected", "target", dst.String(), "err", err)
		}
	})
	opts = append(opts, geomtoy.WithImmediately(false))
	return dst.Bind([]geomtoy.Pair{geomtoy.Watch(src, shapes.EventX)}, cb, opts...)
}
