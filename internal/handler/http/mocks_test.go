package http

import (
	"context"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
)

// ---- Mock: ClientService ----

type mockClientService struct {
	createFn func(ctx context.Context, client models.Client) (models.ClientView, error)
	getFn    func(ctx context.Context, id int64) (models.ClientView, error)
	listFn   func(ctx context.Context, filter models.ClientFilter) (models.ClientList, error)
	searchFn func(ctx context.Context, filter models.ClientFilter) ([]models.ClientView, error)
	updateFn func(ctx context.Context, update models.ClientUpdate) (models.ClientView, error)
	deleteFn func(ctx context.Context, id int64) error
}

func (m *mockClientService) CreateClient(ctx context.Context, client models.Client) (models.ClientView, error) {
	return m.createFn(ctx, client)
}
func (m *mockClientService) GetClient(ctx context.Context, id int64) (models.ClientView, error) {
	return m.getFn(ctx, id)
}
func (m *mockClientService) ListClients(ctx context.Context, filter models.ClientFilter) (models.ClientList, error) {
	return m.listFn(ctx, filter)
}
func (m *mockClientService) SearchClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientView, error) {
	return m.searchFn(ctx, filter)
}
func (m *mockClientService) UpdateClient(ctx context.Context, update models.ClientUpdate) (models.ClientView, error) {
	return m.updateFn(ctx, update)
}
func (m *mockClientService) DeleteClient(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}

// ---- Mock: AllocationService ----

type mockAllocationService struct {
	recordFn func(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (models.Allocation, bool, error)
	editFn   func(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error)
	deleteFn func(ctx context.Context, id int64) error
	listFn   func(ctx context.Context, clientID int64) ([]models.Allocation, error)
}

func (m *mockAllocationService) RecordAllocation(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (models.Allocation, bool, error) {
	return m.recordFn(ctx, clientID, assetCode, amount)
}
func (m *mockAllocationService) EditAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error) {
	return m.editFn(ctx, update)
}
func (m *mockAllocationService) DeleteAllocation(ctx context.Context, id int64) error {
	return m.deleteFn(ctx, id)
}
func (m *mockAllocationService) ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error) {
	return m.listFn(ctx, clientID)
}

// ---- Mock: CountObfuscator ----

type mockCountObfuscator struct {
	obfuscateFn func(ctx context.Context, clientID int64) (models.AllocationCount, error)
}

func (m *mockCountObfuscator) ObfuscateCount(ctx context.Context, clientID int64) (models.AllocationCount, error) {
	return m.obfuscateFn(ctx, clientID)
}

// ---- Mock: AssetService ----

type mockAssetService struct {
	assets []models.Asset
}

func (m *mockAssetService) ListAssets(_ context.Context) []models.Asset {
	return m.assets
}

// ---- Mock: AppInfoService ----

type mockAppInfoService struct {
	version string
}

func (m *mockAppInfoService) GetAppVersion(_ context.Context) string {
	return m.version
}
