package store

import (
	"context"

	"github.com/MKhiriev/allocation-ledger/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/store_mock.go -package=mock

// ClientRepository persists clients. Read methods return the plain number of
// allocations of each client alongside it.
type ClientRepository interface {
	CreateClient(ctx context.Context, client models.Client) (models.Client, error)
	GetClient(ctx context.Context, id int64) (models.ClientRecord, error)
	ListClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientRecord, error)
	CountClients(ctx context.Context, filter models.ClientFilter) (int64, error)
	UpdateClient(ctx context.Context, update models.ClientUpdate) (models.Client, error)
	DeleteClient(ctx context.Context, id int64) error
}

// MergeFunc computes the ciphertext to store for an allocation. current is
// nil when the client holds no allocation in the asset yet.
type MergeFunc func(current *string) (string, error)

// AllocationRepository persists allocations. Amounts cross this boundary
// only as ciphertext tokens.
type AllocationRepository interface {
	// MergeAllocation runs merge inside one transaction that holds the
	// (client, asset) row locked, then inserts or updates that row with the
	// token merge returns. merged reports whether an existing row was updated.
	MergeAllocation(ctx context.Context, clientID int64, assetCode string, merge MergeFunc) (allocation models.Allocation, merged bool, err error)
	UpdateAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error)
	DeleteAllocation(ctx context.Context, id int64) error
	ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error)
	CountAllocations(ctx context.Context, clientID int64) (int64, error)
}

// HealthChecker reports whether the database answers.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// ErrorClassificator maps a driver error to an [ErrorClassification].
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}
