package metrics

import (
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Collector struct {
	reg *prometheus.Registry

	Ticks       prometheus.Counter
	Arrivals    prometheus.Counter
	Approaches  prometheus.Counter
	BadAccuracy prometheus.Counter

	Announcements           *prometheus.CounterVec // theme label
	AnnouncementsSuppressed prometheus.Counter
	SpeakerState            prometheus.Gauge // 0 idle, 1 speaking, 2 cooling down

	NATSPublished   prometheus.Counter
	NATSPublishErrs prometheus.Counter
	NATSConnected   prometheus.Gauge

	TickDuration    prometheus.Histogram
	PublishDuration prometheus.Histogram

	SimSpeed   prometheus.Gauge // m/s
	SimSegment prometheus.Gauge

	SpeedMultiplier prometheus.Gauge
	TickInterval    prometheus.Gauge // seconds
	RouteStations   prometheus.Gauge
}

func NewCollector(speedMultiplier float64, tickInterval time.Duration, routeStations int) *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		Ticks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_ticks_total",
			Help: "Location fixes evaluated.",
		}),
		Arrivals: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_arrivals_total",
			Help: "Ticks that reported an arrival at a new station.",
		}),
		Approaches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_approaches_total",
			Help: "Ticks that started approaching the next station.",
		}),
		BadAccuracy: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_bad_accuracy_total",
			Help: "Fixes whose accuracy was worse than the arrive threshold.",
		}),
		Announcements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "conductor_announcements_total",
			Help: "Announcements handed to the sink.",
		}, []string{"theme"}),
		AnnouncementsSuppressed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_announcements_suppressed_total",
			Help: "Announcements dropped as duplicates of the last one spoken.",
		}),
		SpeakerState: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_speaker_state",
			Help: "0 idle, 1 speaking, 2 cooling down.",
		}),
		NATSPublished: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_nats_published_total",
			Help: "Total NATS messages published.",
		}),
		NATSPublishErrs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "conductor_nats_publish_errors_total",
			Help: "Total NATS publish errors.",
		}),
		NATSConnected: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_nats_connected",
			Help: "1 if NATS connection is established, 0 otherwise.",
		}),
		TickDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conductor_tick_duration_seconds",
			Help:    "Duration of one simulator step plus conductor evaluation.",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 15),
		}),
		PublishDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "conductor_publish_duration_seconds",
			Help:    "Duration to marshal and publish a NATS message.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 15),
		}),
		SimSpeed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_sim_speed_mps",
			Help: "Simulated train speed during the last tick.",
		}),
		SimSegment: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_sim_segment",
			Help: "Index of the segment the simulator is running.",
		}),
		SpeedMultiplier: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_speed_multiplier",
			Help: "Current speed multiplier.",
		}),
		TickInterval: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_tick_interval_seconds",
			Help: "Wall clock interval per simulated second before the multiplier.",
		}),
		RouteStations: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "conductor_route_stations",
			Help: "Stations in the loaded route.",
		}),
	}

	reg.MustRegister(
		c.Ticks, c.Arrivals, c.Approaches, c.BadAccuracy,
		c.Announcements, c.AnnouncementsSuppressed, c.SpeakerState,
		c.NATSPublished, c.NATSPublishErrs, c.NATSConnected,
		c.TickDuration, c.PublishDuration,
		c.SimSpeed, c.SimSegment,
		c.SpeedMultiplier, c.TickInterval, c.RouteStations,
	)

	c.SpeedMultiplier.Set(speedMultiplier)
	c.TickInterval.Set(tickInterval.Seconds())
	c.RouteStations.Set(float64(routeStations))

	return c
}

func (c *Collector) Handler() http.Handler { return promhttp.HandlerFor(c.reg, promhttp.HandlerOpts{}) }

// Serve starts an HTTP server exposing /metrics on the given address.
func (c *Collector) Serve(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("metrics server error: %v", err)
		}
	}()
	log.Printf("metrics listening on %s", addr)
	return srv
}
