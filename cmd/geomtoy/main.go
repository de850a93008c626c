package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/delaneyj/geomtoy/cmd/geomtoy/templates"
	"github.com/delaneyj/geomtoy/config"
	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/delaneyj/geomtoy/shapes"
	"github.com/urfave/cli/v3"
)

const (
	configKey   = "config"
	lengthKey   = "length"
	watchdogKey = "watchdog"
	outKey      = "out"
)

func main() {
	cmd := &cli.Command{
		Name:  "geomtoy",
		Usage: "Exercise the geomtoy propagation engine",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  configKey,
				Usage: "YAML or TOML file with world settings",
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "chain",
				Usage: "Propagate a change through a chain of bound points",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  lengthKey,
						Usage: "Number of points in the chain",
						Value: 10,
					},
				},
				Action: chain,
			},
			{
				Name:  "cycle",
				Usage: "Run two mutually triggering points until the watchdog trips",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  watchdogKey,
						Usage: "Drain budget in milliseconds, 0 keeps the configured value",
						Value: 50,
					},
				},
				Action: cycle,
			},
			{
				Name:  "graph",
				Usage: "Dump the binding graph of a sample scene as Graphviz DOT",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  outKey,
						Usage: "Output file, stdout when empty",
					},
				},
				Action: graph,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func newWorld(cmd *cli.Command, extra ...geomtoy.Option) (*geomtoy.World, error) {
	opts := []geomtoy.Option{
		geomtoy.WithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))),
	}
	if path := cmd.String(configKey); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cfg.Options()...)
	}
	opts = append(opts, extra...)
	return geomtoy.NewWorld(opts...), nil
}

func chain(ctx context.Context, cmd *cli.Command) error {
	w, err := newWorld(cmd)
	if err != nil {
		return err
	}

	n := int(cmd.Int(lengthKey))
	if n < 2 {
		return fmt.Errorf("chain length %d, need at least 2", n)
	}
	points := make([]*shapes.Point, n)
	for i := range points {
		points[i] = shapes.NewPoint(w, 0, 0)
		points[i].SetLabel(fmt.Sprintf("p%d", i))
	}
	for i := 1; i < n; i++ {
		if _, err := shapes.BindCopy(points[i], points[i-1]); err != nil {
			return err
		}
	}
	if err := w.Settle(); err != nil {
		return err
	}

	start := time.Now()
	if err := points[0].SetXY(5, 5); err != nil {
		return err
	}
	if err := w.Settle(); err != nil {
		return err
	}
	last := points[n-1]
	log.Printf("%s=(%v, %v) after %v", last, last.X(), last.Y(), time.Since(start))
	logStats(w)
	return nil
}

func cycle(ctx context.Context, cmd *cli.Command) error {
	var extra []geomtoy.Option
	if ms := cmd.Int(watchdogKey); ms > 0 {
		extra = append(extra, geomtoy.WithWatchdog(time.Duration(ms)*time.Millisecond))
	}
	w, err := newWorld(cmd, extra...)
	if err != nil {
		return err
	}

	a := shapes.NewPoint(w, 0, 0)
	a.SetLabel("a")
	b := shapes.NewPoint(w, 0, 0)
	b.SetLabel("b")

	bump := func(dst, src *shapes.Point) error {
		cb := geomtoy.NewCallback("bump", func([]geomtoy.Event) {
			if err := dst.SetX(src.X() + 1); err != nil {
				dst.World().Logger().Warn("bump rejected", "target", dst.String(), "err", err)
			}
		})
		return dst.Bind([]geomtoy.Pair{geomtoy.Watch(src, shapes.EventX)}, cb, geomtoy.WithImmediately(false))
	}
	if err := bump(a, b); err != nil {
		return err
	}
	if err := bump(b, a); err != nil {
		return err
	}

	log.Printf("running a <-> b within %v", w.Options().Watchdog())
	if err := a.SetX(1); err != nil {
		return err
	}
	err = w.Settle()
	var wd *geomtoy.WatchdogError
	if !errors.As(err, &wd) {
		return fmt.Errorf("expected a watchdog trip, got %v", err)
	}
	log.Printf("aborted after %v, a.x=%v b.x=%v", wd.Elapsed, a.X(), b.X())
	logStats(w)
	return nil
}

func graph(ctx context.Context, cmd *cli.Command) error {
	w, err := newWorld(cmd)
	if err != nil {
		return err
	}
	if err := buildScene(w); err != nil {
		return err
	}
	if err := w.Settle(); err != nil {
		return err
	}

	g := sceneGraph("geomtoy", w)
	out := os.Stdout
	if path := cmd.String(outKey); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	templates.WriteGraphDOT(out, g)
	return nil
}

func logStats(w *geomtoy.World) {
	s := w.Scheduler().Stats()
	log.Printf("passes=%d serviced=%d invocations=%d recursive-skips=%d watchdog-trips=%d abandoned=%d",
		s.Passes, s.Serviced, s.Invocations, s.RecursiveSkips, s.WatchdogTrips, s.Abandoned)
}
