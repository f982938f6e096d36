package workers

import (
	"context"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
)

type Workers struct {
	workers []Worker
}

// NewWorkers builds the background workers of the server. reporter may be
// nil when no gRPC health endpoint is configured.
func NewWorkers(services *service.Services, reporter StatusReporter, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewHealthProbe(services.HealthService, reporter, cfg.HealthCheckInterval, logger),
		},
	}
}

func (w *Workers) Run(ctx context.Context) {
	for _, worker := range w.workers {
		worker.Run(ctx)
	}
}
