// Command clocksim builds, validates, and searches the synthetic clock
// ephemeris: a central CLOCK body with MINUTE and HOUR hands on circular
// orbits timed so the face behaves like a real 12-hour clock. It creates the
// trajectory store on first run, checks the persisted motion against the
// closed-form geometry, and then counts hand alignments and 30-degree
// separations over one synthetic day.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.opentelemetry.io/otel"

	"github.com/signalsfoundry/clock-ephemeris/core"
	"github.com/signalsfoundry/clock-ephemeris/ephemtime"
	"github.com/signalsfoundry/clock-ephemeris/internal/logging"
	"github.com/signalsfoundry/clock-ephemeris/internal/observability"
	"github.com/signalsfoundry/clock-ephemeris/kb"
	"github.com/signalsfoundry/clock-ephemeris/model"
	"github.com/signalsfoundry/clock-ephemeris/spk"
)

func main() {
	debug := flag.Bool("debug", false, "print each found event window as a calendar timestamp")
	configPath := flag.String("config", "configs/clock_kernel.json", "primary kernel file")
	metricsListen := flag.String("metrics-listen", "", "optional address to serve Prometheus metrics on")
	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	if err := run(ctx, *configPath, flag.Args(), *debug, *metricsListen, log); err != nil {
		log.Error(ctx, "clock simulation failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
}

// gate is one search whose window count is a hard regression oracle.
type gate struct {
	name   string
	search core.Search
	window model.Window
	want   int
}

func run(ctx context.Context, configPath string, extraKernels []string, debug bool, metricsListen string, log logging.Logger) error {
	pool, err := kb.Furnish(append([]string{configPath}, extraKernels...)...)
	if err != nil {
		return err
	}

	clock, err := pool.Body("CLOCK")
	if err != nil {
		return err
	}
	minute, err := pool.Body("MINUTE")
	if err != nil {
		return err
	}
	hour, err := pool.Body("HOUR")
	if err != nil {
		return err
	}

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)
	tracer := otel.Tracer("clocksim")

	collector, err := observability.NewCollector(nil)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}
	if metricsListen != "" {
		go func() {
			if err := http.ListenAndServe(metricsListen, collector.Handler()); err != nil {
				log.Warn(ctx, "metrics server stopped", logging.String("error", err.Error()))
			}
		}()
	}

	et0 := pool.ET0()
	store := spk.FileStore{Path: pool.StorePath(), Log: log, Metrics: collector}

	buildCtx, span := tracer.Start(ctx, "build")
	builder := &core.Builder{Log: log}
	built, err := builder.BuildIfAbsent(buildCtx, store, core.BuildConfig{
		Center:    clock,
		Minute:    minute,
		Hour:      hour,
		ET0:       et0,
		DayLength: ephemtime.SecondsPerDay,
		Mu:        1.0,
		Frame:     "J2000",
	})
	span.End()
	if err != nil {
		return err
	}
	if built {
		log.Info(ctx, "trajectory store built", logging.String("path", pool.StorePath()))
	} else {
		log.Info(ctx, "reusing existing trajectory store", logging.String("path", pool.StorePath()))
	}

	eph, err := store.Open(ctx)
	if err != nil {
		return err
	}
	defer eph.Close()

	validateCtx, span := tracer.Start(ctx, "validate")
	validator := &core.Validator{Log: log}
	passes, err := validator.Validate(validateCtx, eph, core.ValidateConfig{
		Center:    clock,
		Minute:    minute,
		Hour:      hour,
		ET0:       et0,
		DayLength: ephemtime.SecondsPerDay,
	})
	span.End()
	if err != nil {
		return err
	}
	log.Info(ctx, "ephemeris passed half-hour tests", logging.Int("passes", passes))

	day := model.Window{Left: et0 - 10e-3, Right: et0 + ephemtime.SecondsPerDay - 10e-3}
	extended := model.Window{Left: day.Left, Right: et0 + ephemtime.SecondsPerDay + 10e-3}
	common := core.Search{
		Step:      ephemtime.SecondsPerMinute,
		MaxSteps:  6000,
		Tolerance: 1e-6,
	}

	locmin := common
	locmin.Relation = model.RelationLocalMin
	equals30 := common
	equals30.Relation = model.RelationEquals
	equals30.RefValue = 30.0 / core.DegPerRad

	gates := []gate{
		{"alignments per day", locmin, day, 22},
		{"alignments per day+20ms", locmin, extended, 23},
		{"30-deg-alignments per day+20ms", equals30, extended, 44},
	}

	for _, g := range gates {
		searchCtx, span := tracer.Start(ctx, "search "+g.name)
		result, err := eph.FindWindows(searchCtx, clock, minute, hour, g.search, g.window)
		span.End()
		if err != nil {
			return fmt.Errorf("search %q: %w", g.name, err)
		}
		if result.Card() != g.want {
			return &core.EventCountMismatch{Search: g.name, Want: g.want, Got: result.Card()}
		}
		log.Info(ctx, "ephemeris passed search gate",
			logging.String("gate", g.name),
			logging.Int("windows", result.Card()),
		)
		if debug {
			reportWindows(g.name, g.window, result)
		}
	}

	return nil
}

// reportWindows prints each found window's start as a calendar timestamp.
// The half-millisecond offset rounds the truncating formatter to the nearest
// millisecond. Reporting is best-effort and never fails the run.
func reportWindows(name string, confine model.Window, result *model.WindowSet) {
	fmt.Printf("%s between %s and %s:\n", name,
		ephemtime.Calendar(confine.Left+0.0005),
		ephemtime.Calendar(confine.Right+0.0005),
	)
	for i, w := range result.Windows() {
		fmt.Printf("  %d:  %s\n", i, ephemtime.Calendar(w.Left+0.0005))
	}
}
