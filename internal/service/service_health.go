package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/store"
)

type healthService struct {
	checker store.HealthChecker

	logger *logger.Logger
}

func NewHealthService(checker store.HealthChecker, logger *logger.Logger) HealthService {
	return &healthService{
		checker: checker,
		logger:  logger,
	}
}

// Check pings the database.
func (s *healthService) Check(ctx context.Context) error {
	if err := s.checker.PingContext(ctx); err != nil {
		return fmt.Errorf("storage is unreachable: %w", err)
	}
	return nil
}
