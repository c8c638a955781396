package transport

import (
	"context"
	"math/rand"
	"time"

	"github.com/trezcool/shule/core"
)

// Tracker simulates GPS updates: on every tick each active vehicle drifts by up to Jitter degrees.
type Tracker struct {
	svc      *Service
	logger   core.Logger
	interval time.Duration
	jitter   float64
	random   func() float64 // [0.0, 1.0)
}

func NewTracker(svc *Service, cfg core.TrackerConfig, logger core.Logger) *Tracker {
	return &Tracker{
		svc:      svc,
		logger:   logger,
		interval: cfg.Interval,
		jitter:   cfg.Jitter,
		random:   rand.Float64,
	}
}

// Run ticks until ctx is done.
func (t *Tracker) Run(ctx context.Context) {
	if t.interval <= 0 {
		t.logger.Warn("tracker disabled: non-positive interval", t.interval)
		return
	}
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if _, err := t.Tick(now); err != nil {
				t.logger.Error("tracking vehicles", err)
			}
		}
	}
}

// Tick moves every active vehicle once and returns how many moved.
func (t *Tracker) Tick(now time.Time) (int, error) {
	return t.svc.MoveVehicles(now, func(loc Location) Location {
		return Location{
			Lat: loc.Lat + t.drift(),
			Lng: loc.Lng + t.drift(),
		}
	})
}

// drift is uniform in [-jitter, jitter).
func (t *Tracker) drift() float64 {
	return (t.random()*2 - 1) * t.jitter
}
