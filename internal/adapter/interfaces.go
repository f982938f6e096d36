// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the client side of the allocation ledger HTTP API.
//
// [LedgerAPI] decouples the CLI from the transport. Amounts of allocations are
// returned in clear, while allocation counts arrive as opaque tokens that the
// caller decrypts with the shared secret.
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] (e.g. [ErrConflict] for
// 409, [ErrCorruptedCiphertext] for a 500 caused by an unreadable token).
package adapter

import (
	"context"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
)

// LedgerAPI is the set of ledger operations used by the CLI.
type LedgerAPI interface {
	// ListClients returns one page of clients matching filter. Each client
	// carries its allocation count as a token.
	ListClients(ctx context.Context, filter models.ClientFilter) (models.ClientList, error)

	// GetAllocationCount returns the count token of one client.
	GetAllocationCount(ctx context.Context, clientID int64) (models.AllocationCount, error)

	// ListAllocations returns the allocations of one client.
	ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error)

	// RecordAllocation adds amount to the client's allocation in assetCode.
	// merged reports whether an existing allocation was topped up.
	RecordAllocation(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (allocation models.Allocation, merged bool, err error)

	// EditAllocation replaces the asset code and/or amount of an allocation.
	EditAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error)

	// DeleteAllocation removes one allocation.
	DeleteAllocation(ctx context.Context, id int64) error

	// ListAssets returns the asset catalog.
	ListAssets(ctx context.Context) ([]models.Asset, error)

	// ServerVersion returns the version string reported by the server.
	ServerVersion(ctx context.Context) (string, error)
}
