package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"virtual-conductor/internal/conductor"
	"virtual-conductor/internal/config"
	"virtual-conductor/internal/db"
	"virtual-conductor/internal/loop"
	"virtual-conductor/internal/metrics"
	"virtual-conductor/internal/publisher"
	"virtual-conductor/internal/routefile"
	"virtual-conductor/internal/sim"
	"virtual-conductor/internal/transit"
	"virtual-conductor/internal/window"
)

func main() {
	// Load configuration from .env and environment
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	// Root context with cancellation on SIGINT/SIGTERM
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	route, err := loadRoute(ctx, cfg)
	if err != nil {
		log.Fatalf("load route: %v", err)
	}
	log.Printf("route %s (%d): %d stations, direction %s", route.Line.NameRoman, route.Line.ID, len(route.Stations), cfg.Direction)

	loops := loop.DefaultTable()
	if cfg.LoopTableFile != "" {
		loops, err = loop.LoadTable(cfg.LoopTableFile)
		if err != nil {
			log.Fatalf("loop table: %v", err)
		}
	}

	// the simulated track is laid out once; the conductor re-checks the
	// holiday per fix
	segments := sim.BuildSegments(window.Orient(route.Stations, cfg.Direction), sim.SegmentOptions{
		Line:      &route.Line,
		TrainType: route.TrainType,
		Holiday:   cfg.IsHoliday(time.Now()),
	})
	if len(segments) == 0 {
		log.Fatalf("route has fewer than two stopping stations with coordinates")
	}
	simulator := sim.New(segments)

	if cfg.TrackGeoJSON != "" {
		b, err := simulator.TrackGeoJSON()
		if err != nil {
			log.Fatalf("track geojson: %v", err)
		}
		if err := os.WriteFile(cfg.TrackGeoJSON, b, 0o644); err != nil {
			log.Fatalf("write %s: %v", cfg.TrackGeoJSON, err)
		}
		log.Printf("track written to %s", cfg.TrackGeoJSON)
	}

	// Metrics setup
	var mcol *metrics.Collector
	if cfg.MetricsAddr != "" {
		mcol = metrics.NewCollector(cfg.SpeedMultiplier, cfg.TickInterval, len(route.Stations))
		srv := mcol.Serve(cfg.MetricsAddr)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	var pub *publisher.NATSPublisher
	if cfg.NATSURL != "" {
		pub, err = publisher.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix, route.Line.ID, cfg.LogNATSSubjects, wrapPublisherMetrics(mcol))
		if err != nil {
			log.Fatalf("nats error: %v", err)
		}
		defer pub.Close()
	}

	opts := conductor.Options{
		Route:         route,
		Direction:     cfg.Direction,
		Theme:         cfg.Theme,
		Languages:     cfg.Languages,
		Loops:         loops,
		Head:          cfg.Head,
		Holiday:       cfg.IsHoliday,
		CooldownTicks: cfg.CooldownTicks,
		Sink:          logSink{},
		Metrics:       mcol,
	}
	if pub != nil {
		opts.Sink = teeSink{pub, logSink{}}
	}
	cond := conductor.New(opts)

	runner := sim.NewRunner(simulator, cfg.TickInterval, cfg.SpeedMultiplier, func(ctx context.Context, loc transit.Location) {
		res := cond.Tick(ctx, loc)
		if pub == nil {
			return
		}
		if err := pub.PublishState(publisher.NewStateMessage(route.Line.ID, loc, res)); err != nil {
			log.Printf("publish state: %v", err)
		}
	}, mcol)
	runner.Start(ctx)

	// Block until context cancelled
	<-ctx.Done()
	runner.Stop()
	log.Println("shutdown complete")
}

func loadRoute(ctx context.Context, cfg *config.Config) (transit.Route, error) {
	var store *db.Store
	var err error
	switch cfg.Source {
	case config.SourceFile:
		return routefile.Load(cfg.RouteFile)
	case config.SourceSQLite:
		store, err = db.OpenSQLite(cfg.SQLitePath)
	case config.SourcePostgres:
		store, err = db.OpenPostgres(cfg.DatabaseURL)
	default:
		return transit.Route{}, fmt.Errorf("unknown route source %q", cfg.Source)
	}
	if err != nil {
		return transit.Route{}, err
	}
	defer store.Close()
	if err := store.Ping(ctx); err != nil {
		return transit.Route{}, fmt.Errorf("db ping: %w", err)
	}
	return store.FetchRoute(ctx, cfg.LineID, cfg.TrainTypeID)
}

// logSink prints announcements when nothing else consumes them.
type logSink struct{}

func (logSink) Announce(_ context.Context, a conductor.Announcement) error {
	log.Printf("announce %s: %s", a.State, a.Roman)
	return nil
}

type teeSink []conductor.Sink

func (t teeSink) Announce(ctx context.Context, a conductor.Announcement) error {
	var first error
	for _, s := range t {
		if err := s.Announce(ctx, a); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// wrapPublisherMetrics adapts our Collector to the PublisherMetrics interface.
func wrapPublisherMetrics(c *metrics.Collector) publisher.PublisherMetrics {
	if c == nil {
		return nil
	}
	return &pubMetrics{c: c}
}

type pubMetrics struct{ c *metrics.Collector }

func (p *pubMetrics) NATSPublishedInc()              { p.c.NATSPublished.Inc() }
func (p *pubMetrics) NATSPublishErrInc()             { p.c.NATSPublishErrs.Inc() }
func (p *pubMetrics) PublishObserve(d time.Duration) { p.c.PublishDuration.Observe(d.Seconds()) }
func (p *pubMetrics) NATSSetConnected(b bool) {
	if b {
		p.c.NATSConnected.Set(1)
	} else {
		p.c.NATSConnected.Set(0)
	}
}
