package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/allocation-ledger/internal/validators"
	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
)

// ClientValidationService rejects invalid client input before the wrapped
// ClientService sees it.
type ClientValidationService struct {
	inner     ClientService
	validator validators.Validator
}

func NewClientValidationService() ClientServiceWrapper {
	return &ClientValidationService{
		validator: validators.NewLedgerValidator(),
	}
}

func (v *ClientValidationService) CreateClient(ctx context.Context, client models.Client) (models.ClientView, error) {
	if err := v.validator.Validate(ctx, client); err != nil {
		return models.ClientView{}, invalid("client creation", err)
	}
	return v.inner.CreateClient(ctx, client)
}

func (v *ClientValidationService) GetClient(ctx context.Context, id int64) (models.ClientView, error) {
	if err := v.validator.Validate(ctx, id); err != nil {
		return models.ClientView{}, invalid("client lookup", err)
	}
	return v.inner.GetClient(ctx, id)
}

func (v *ClientValidationService) ListClients(ctx context.Context, filter models.ClientFilter) (models.ClientList, error) {
	return v.inner.ListClients(ctx, filter)
}

func (v *ClientValidationService) SearchClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientView, error) {
	return v.inner.SearchClients(ctx, filter)
}

func (v *ClientValidationService) UpdateClient(ctx context.Context, update models.ClientUpdate) (models.ClientView, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.ClientView{}, invalid("client update", err)
	}
	return v.inner.UpdateClient(ctx, update)
}

func (v *ClientValidationService) DeleteClient(ctx context.Context, id int64) error {
	if err := v.validator.Validate(ctx, id); err != nil {
		return invalid("client deletion", err)
	}
	return v.inner.DeleteClient(ctx, id)
}

func (v *ClientValidationService) Wrap(inner ClientService) ClientService {
	v.inner = inner
	return v
}

// AllocationValidationService rejects invalid allocation input before the
// wrapped AllocationService sees it, so nothing is written.
type AllocationValidationService struct {
	inner     AllocationService
	validator validators.Validator
}

func NewAllocationValidationService() AllocationServiceWrapper {
	return &AllocationValidationService{
		validator: validators.NewLedgerValidator(),
	}
}

func (v *AllocationValidationService) RecordAllocation(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (models.Allocation, bool, error) {
	allocation := models.Allocation{ClientID: clientID, AssetCode: assetCode, Amount: amount}
	if err := v.validator.Validate(ctx, allocation); err != nil {
		return models.Allocation{}, false, invalid("allocation recording", err)
	}
	return v.inner.RecordAllocation(ctx, clientID, assetCode, amount)
}

func (v *AllocationValidationService) EditAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error) {
	if err := v.validator.Validate(ctx, update); err != nil {
		return models.Allocation{}, invalid("allocation edit", err)
	}
	return v.inner.EditAllocation(ctx, update)
}

func (v *AllocationValidationService) DeleteAllocation(ctx context.Context, id int64) error {
	if err := v.validator.Validate(ctx, id); err != nil {
		return invalid("allocation deletion", err)
	}
	return v.inner.DeleteAllocation(ctx, id)
}

func (v *AllocationValidationService) ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error) {
	if err := v.validator.Validate(ctx, clientID); err != nil {
		return nil, invalid("allocation listing", err)
	}
	return v.inner.ListAllocations(ctx, clientID)
}

func (v *AllocationValidationService) Wrap(inner AllocationService) AllocationService {
	v.inner = inner
	return v
}

func invalid(operation string, err error) error {
	return fmt.Errorf("%w: error during %s validation: %w", ErrInvalidDataProvided, operation, err)
}
