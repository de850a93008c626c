package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/delaneyj/geomtoy/geomtoy"
	"github.com/delaneyj/geomtoy/shapes"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/mattn/go-isatty"
)

var (
	ww    = []int{1, 10, 100}
	hh    = []int{1, 10, 100}
	iters = 100

	profile = flag.String("profile", "", "write a CPU profile to this file")
)

func main() {
	flag.Parse()

	if *profile != "" {
		f, err := os.Create(*profile)
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	log.Printf("warming up")
	benchmarkPropagate(false)
	benchmarkPropagate(true)
}

// benchmarkPropagate times one source change travelling through w chains of
// h copying points each.
func benchmarkPropagate(shouldRender bool) {
	tbl := table.NewWriter()
	tbl.SetTitle("geomtoy propagation")
	tbl.SetOutputMirror(os.Stdout)
	if isatty.IsTerminal(os.Stdout.Fd()) {
		tbl.SetStyle(table.StyleColoredBright)
	} else {
		tbl.SetStyle(table.StyleLight)
	}
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max", "passes"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			world := geomtoy.NewWorld(geomtoy.WithLogger(geomtoy.NopLogger()))
			src := shapes.NewPoint(world, 0, 0)
			for i := 0; i < w; i++ {
				last := src
				for j := 0; j < h; j++ {
					next := shapes.NewPoint(world, 0, 0)
					if _, err := shapes.BindCopy(next, last); err != nil {
						log.Fatal(err)
					}
					last = next
				}
			}
			if err := world.Settle(); err != nil {
				log.Fatal(err)
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				if err := src.SetX(src.X() + 1); err != nil {
					log.Fatal(err)
				}
				if err := world.Settle(); err != nil {
					log.Fatal(err)
				}
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
					world.Scheduler().Stats().Passes,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}
