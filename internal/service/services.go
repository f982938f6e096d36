package service

import (
	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/store"
)

type Services struct {
	ClientService     ClientService
	AllocationService AllocationService
	CountObfuscator   CountObfuscator
	AssetService      AssetService
	AppInfoService    AppInfoService
	HealthService     HealthService
}

// NewServices wires the services on top of storages. Client and allocation
// services are wrapped with validation.
func NewServices(storages *store.Storages, codec crypto.Codec, cfg config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	clientService := NewClientValidationService().
		Wrap(NewClientService(storages.ClientRepository, codec, logger))
	allocationService := NewAllocationValidationService().
		Wrap(NewAllocationService(storages.AllocationRepository, codec, cfg.Merge, logger))

	return &Services{
		ClientService:     clientService,
		AllocationService: allocationService,
		CountObfuscator:   NewCountObfuscator(storages.ClientRepository, storages.AllocationRepository, codec, logger),
		AssetService:      NewAssetService(),
		AppInfoService:    appInfoService,
		HealthService:     NewHealthService(storages.HealthChecker, logger),
	}, nil
}
