// Package grpc exposes the standard gRPC health service of the ledger.
//
// Load balancers and orchestrators probe it instead of the HTTP API. The
// serving status is driven by the storage health probe in internal/workers.
package grpc

import (
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name under which the ledger reports its health. The
// empty service name reports the same status.
const ServiceName = "allocation.ledger"

// Handler is the root gRPC transport handler.
type Handler struct {
	services *service.Services
	health   *health.Server

	logger *logger.Logger
}

// NewHandler creates a handler whose health status starts as NOT_SERVING
// until the first successful storage probe.
func NewHandler(services *service.Services, logger *logger.Logger) *Handler {
	logger.Debug().Msg("gRPC handler created")

	h := &Handler{
		services: services,
		health:   health.NewServer(),
		logger:   logger,
	}
	h.SetServing(false)

	return h
}

// Register attaches the handler's services to server.
func (h *Handler) Register(server *grpc.Server) {
	healthpb.RegisterHealthServer(server, h.health)
}

// SetServing flips the reported health status.
func (h *Handler) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}

	h.health.SetServingStatus("", status)
	h.health.SetServingStatus(ServiceName, status)
}

// Shutdown reports NOT_SERVING for good; later status updates are ignored.
func (h *Handler) Shutdown() {
	h.health.Shutdown()
}
