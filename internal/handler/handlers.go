package handler

import (
	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/handler/grpc"
	"github.com/MKhiriev/allocation-ledger/internal/handler/http"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
)

type Handlers struct {
	HTTP *http.Handler
	GRPC *grpc.Handler
}

// NewHandlers creates a transport handler for every configured address.
func NewHandlers(services *service.Services, cfg config.Server, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	handlers := &Handlers{}

	if cfg.HTTPAddress != "" {
		handlers.HTTP = http.NewHandler(services, cfg, logger)
	}
	if cfg.GRPCAddress != "" {
		handlers.GRPC = grpc.NewHandler(services, logger)
	}

	if handlers.HTTP == nil && handlers.GRPC == nil {
		return nil, errNoHandlersAreCreated
	}

	return handlers, nil
}
