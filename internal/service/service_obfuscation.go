package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
)

// countObfuscator turns allocation counts into ciphertext tokens.
type countObfuscator struct {
	codec crypto.Codec

	logger *logger.Logger
}

func newCountObfuscator(codec crypto.Codec, logger *logger.Logger) *countObfuscator {
	return &countObfuscator{codec: codec, logger: logger}
}

// allocationCountService serves the dedicated count endpoint. The count is
// never stored; it is read from the live allocation rows on every call.
type allocationCountService struct {
	clientRepository     store.ClientRepository
	allocationRepository store.AllocationRepository
	obfuscator           *countObfuscator

	logger *logger.Logger
}

func NewCountObfuscator(clientRepository store.ClientRepository, allocationRepository store.AllocationRepository, codec crypto.Codec, logger *logger.Logger) CountObfuscator {
	return &allocationCountService{
		clientRepository:     clientRepository,
		allocationRepository: allocationRepository,
		obfuscator:           newCountObfuscator(codec, logger),
		logger:               logger,
	}
}

// ObfuscateCount returns the encrypted number of allocations owned by
// clientID. Unknown clients yield [store.ErrClientNotFound].
func (s *allocationCountService) ObfuscateCount(ctx context.Context, clientID int64) (models.AllocationCount, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "allocationCountService.ObfuscateCount").
		Int64("client_id", clientID).
		Logger()

	if _, err := s.clientRepository.GetClient(ctx, clientID); err != nil {
		return models.AllocationCount{}, err
	}

	count, err := s.allocationRepository.CountAllocations(ctx, clientID)
	if err != nil {
		log.Err(err).Msg("failed to count allocations")
		return models.AllocationCount{}, err
	}

	token, err := s.obfuscator.obfuscate(count)
	if err != nil {
		log.Err(err).Msg("failed to obfuscate allocation count")
		return models.AllocationCount{}, err
	}

	return models.AllocationCount{ClientID: clientID, Count: token}, nil
}

func (o *countObfuscator) obfuscate(count int64) (string, error) {
	token, err := o.codec.Encrypt(decimal.NewFromInt(count))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrObfuscatingCount, err)
	}
	return token, nil
}

// view builds the outbound form of a stored client.
func (o *countObfuscator) view(record models.ClientRecord) (models.ClientView, error) {
	token, err := o.obfuscate(record.AllocationCount)
	if err != nil {
		return models.ClientView{}, err
	}
	return models.ClientView{Client: record.Client, AllocationCount: token}, nil
}

func (o *countObfuscator) views(records []models.ClientRecord) ([]models.ClientView, error) {
	views := make([]models.ClientView, 0, len(records))
	for _, record := range records {
		view, err := o.view(record)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}
