package workers

import (
	"context"
	"sync"
	"time"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
)

const defaultProbeInterval = 15 * time.Second

// HealthProbe periodically pings the storage and forwards the result to a
// StatusReporter. Only transitions are logged.
type HealthProbe struct {
	health   service.HealthService
	reporter StatusReporter
	interval time.Duration

	mu      sync.Mutex
	healthy *bool

	logger *logger.Logger
}

func NewHealthProbe(health service.HealthService, reporter StatusReporter, interval time.Duration, logger *logger.Logger) *HealthProbe {
	if interval <= 0 {
		interval = defaultProbeInterval
	}

	return &HealthProbe{
		health:   health,
		reporter: reporter,
		interval: interval,
		logger:   logger,
	}
}

// Run probes once synchronously, so the first status is known before the
// servers start, then keeps probing in the background until ctx is done.
func (p *HealthProbe) Run(ctx context.Context) {
	p.probe(ctx)

	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.probe(ctx)
			}
		}
	}()
}

func (p *HealthProbe) probe(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, p.interval)
	defer cancel()

	err := p.health.Check(probeCtx)
	healthy := err == nil

	p.mu.Lock()
	changed := p.healthy == nil || *p.healthy != healthy
	p.healthy = &healthy
	p.mu.Unlock()

	if changed {
		if healthy {
			p.logger.Info().Str("func", "HealthProbe.probe").Msg("storage is reachable")
		} else {
			p.logger.Err(err).Str("func", "HealthProbe.probe").Msg("storage is unreachable")
		}
	}

	if p.reporter != nil {
		p.reporter.SetServing(healthy)
	}
}

// Healthy reports the result of the latest probe.
func (p *HealthProbe) Healthy() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.healthy != nil && *p.healthy
}
