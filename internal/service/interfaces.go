package service

import (
	"context"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
)

// ClientService manages clients. Every client it returns carries the
// obfuscated number of its allocations.
type ClientService interface {
	CreateClient(ctx context.Context, client models.Client) (models.ClientView, error)
	GetClient(ctx context.Context, id int64) (models.ClientView, error)

	// ListClients returns one page of the clients matching filter, newest
	// first, together with the number of all matching clients.
	ListClients(ctx context.Context, filter models.ClientFilter) (models.ClientList, error)

	// SearchClients returns every client matching filter, ignoring its
	// pagination fields.
	SearchClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientView, error)

	UpdateClient(ctx context.Context, update models.ClientUpdate) (models.ClientView, error)
	DeleteClient(ctx context.Context, id int64) error
}

// AllocationService keeps at most one allocation per client and asset.
// Amounts enter and leave it in plain form and are stored encrypted.
type AllocationService interface {
	// RecordAllocation adds amount to the client's allocation in assetCode,
	// creating it when absent. merged reports whether an existing
	// allocation was topped up.
	RecordAllocation(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (allocation models.Allocation, merged bool, err error)

	// EditAllocation overwrites the supplied fields of an allocation. The
	// amount is replaced, never summed.
	EditAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error)

	DeleteAllocation(ctx context.Context, id int64) error
	ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error)
}

// CountObfuscator encrypts the number of allocations of a client before it
// leaves the service.
type CountObfuscator interface {
	ObfuscateCount(ctx context.Context, clientID int64) (models.AllocationCount, error)
}

// AssetService exposes the asset catalog.
type AssetService interface {
	ListAssets(ctx context.Context) []models.Asset
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// HealthService reports whether the service can reach its storage.
type HealthService interface {
	Check(ctx context.Context) error
}

// ClientServiceWrapper decorates a ClientService with additional behavior
// such as validation.
type ClientServiceWrapper interface {
	Wrap(ClientService) ClientService
}

// AllocationServiceWrapper decorates an AllocationService with additional
// behavior such as validation.
type AllocationServiceWrapper interface {
	Wrap(AllocationService) AllocationService
}
