package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
)

const defaultRetryBaseDelay = 10 * time.Millisecond

// allocationService is the merge engine of the ledger. It owns the
// read-decrypt-sum-encrypt-write cycle and hands the storage layer a
// callback that runs while the (client, asset) row is locked.
type allocationService struct {
	allocationRepository store.AllocationRepository
	codec                crypto.Codec

	maxRetries     uint64
	retryBaseDelay time.Duration

	logger *logger.Logger
}

func NewAllocationService(allocationRepository store.AllocationRepository, codec crypto.Codec, cfg config.Merge, logger *logger.Logger) AllocationService {
	baseDelay := cfg.RetryBaseDelay
	if baseDelay <= 0 {
		baseDelay = defaultRetryBaseDelay
	}

	return &allocationService{
		allocationRepository: allocationRepository,
		codec:                codec,
		maxRetries:           cfg.MaxRetries,
		retryBaseDelay:       baseDelay,
		logger:               logger,
	}
}

// RecordAllocation implements [AllocationService].
//
// A lost race against a concurrent first insert of the same pair, or a
// transient storage failure, repeats the whole merge with exponential
// back-off. Every other error is returned as is.
func (s *allocationService) RecordAllocation(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (models.Allocation, bool, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "allocationService.RecordAllocation").
		Int64("client_id", clientID).
		Str("asset_code", assetCode).
		Logger()

	var (
		allocation models.Allocation
		merged     bool
		attempt    int
	)

	backoff := retry.WithMaxRetries(s.maxRetries, retry.NewExponential(s.retryBaseDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		attempt++

		var total decimal.Decimal
		stored, wasMerged, err := s.allocationRepository.MergeAllocation(ctx, clientID, assetCode, func(current *string) (string, error) {
			total = amount
			if current != nil {
				previous, err := s.codec.Decrypt(*current)
				if err != nil {
					return "", err
				}
				total = previous.Add(amount)
			}

			token, err := s.codec.Encrypt(total)
			if err != nil {
				return "", fmt.Errorf("%w: %w", ErrEncryptingAmount, err)
			}
			return token, nil
		})
		if err != nil {
			if errors.Is(err, store.ErrAllocationConflict) || errors.Is(err, store.ErrTransient) {
				log.Warn().Err(err).Int("attempt", attempt).Msg("allocation merge collided, retrying")
				return retry.RetryableError(err)
			}
			return err
		}

		stored.Amount = total
		allocation, merged = stored, wasMerged
		return nil
	})
	if err != nil {
		log.Err(err).Int("attempts", attempt).Msg("failed to record allocation")
		return models.Allocation{}, false, err
	}

	return allocation, merged, nil
}

func (s *allocationService) EditAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error) {
	if update.Amount != nil {
		token, err := s.codec.Encrypt(*update.Amount)
		if err != nil {
			return models.Allocation{}, fmt.Errorf("%w: %w", ErrEncryptingAmount, err)
		}
		update.EncryptedAmount = &token
	}

	allocation, err := s.allocationRepository.UpdateAllocation(ctx, update)
	if err != nil {
		return models.Allocation{}, err
	}

	if update.Amount != nil {
		allocation.Amount = *update.Amount
		return allocation, nil
	}

	return s.decrypt(ctx, allocation)
}

func (s *allocationService) DeleteAllocation(ctx context.Context, id int64) error {
	return s.allocationRepository.DeleteAllocation(ctx, id)
}

func (s *allocationService) ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error) {
	allocations, err := s.allocationRepository.ListAllocations(ctx, clientID)
	if err != nil {
		return nil, err
	}

	for i := range allocations {
		if allocations[i], err = s.decrypt(ctx, allocations[i]); err != nil {
			return nil, err
		}
	}

	return allocations, nil
}

func (s *allocationService) decrypt(ctx context.Context, allocation models.Allocation) (models.Allocation, error) {
	amount, err := s.codec.Decrypt(allocation.EncryptedAmount)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "allocationService.decrypt").
			Int64("allocation_id", allocation.ID).
			Msg("stored allocation amount cannot be decrypted")
		return models.Allocation{}, err
	}

	allocation.Amount = amount
	return allocation, nil
}
