package sim

import (
	"context"
	"log"
	"sync"
	"time"

	mmetrics "virtual-conductor/internal/metrics"
	"virtual-conductor/internal/transit"
)

// Runner feeds simulator fixes to a handler on a fixed-rate ticker.
type Runner struct {
	sim             *Simulator
	interval        time.Duration
	speedMultiplier float64
	handle          func(context.Context, transit.Location)
	metrics         *mmetrics.Collector

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRunner ticks every interval/speedMultiplier; each tick is one
// simulated second.
func NewRunner(s *Simulator, interval time.Duration, speedMultiplier float64, handle func(context.Context, transit.Location), metrics *mmetrics.Collector) *Runner {
	if speedMultiplier <= 0 {
		speedMultiplier = 1
	}
	return &Runner{
		sim:             s,
		interval:        interval,
		speedMultiplier: speedMultiplier,
		handle:          handle,
		metrics:         metrics,
	}
}

func (r *Runner) Start(parent context.Context) {
	ctx, cancel := context.WithCancel(parent)
	r.cancel = cancel
	period := time.Duration(float64(r.interval) / r.speedMultiplier)
	if period <= 0 {
		period = time.Second
	}
	r.wg.Add(1)
	log.Printf("simulator running: %d segments, tick %s", len(r.sim.segments), period)
	go func() {
		defer r.wg.Done()
		tick := time.NewTicker(period)
		defer tick.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-tick.C:
				start := time.Now()
				prevSeg := r.sim.Segment()
				loc := r.sim.Tick()
				if seg := r.sim.Segment(); seg != prevSeg && seg < len(r.sim.segments) {
					log.Printf("simulator reached %s (segment %d/%d)", r.sim.segments[seg].From.NameRoman, seg+1, len(r.sim.segments))
				}
				if r.metrics != nil {
					r.metrics.SimSpeed.Set(r.sim.Speed())
					r.metrics.SimSegment.Set(float64(r.sim.Segment()))
				}
				r.handle(ctx, loc)
				if r.metrics != nil {
					r.metrics.TickDuration.Observe(time.Since(start).Seconds())
				}
			}
		}
	}()
}

func (r *Runner) Stop() {
	if r.cancel != nil {
		r.cancel()
	}
	r.wg.Wait()
}
