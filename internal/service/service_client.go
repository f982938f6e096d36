package service

import (
	"context"

	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/models"
)

type clientService struct {
	clientRepository store.ClientRepository
	obfuscator       *countObfuscator

	logger *logger.Logger
}

func NewClientService(clientRepository store.ClientRepository, codec crypto.Codec, logger *logger.Logger) ClientService {
	return &clientService{
		clientRepository: clientRepository,
		obfuscator:       newCountObfuscator(codec, logger),
		logger:           logger,
	}
}

func (s *clientService) CreateClient(ctx context.Context, client models.Client) (models.ClientView, error) {
	created, err := s.clientRepository.CreateClient(ctx, client)
	if err != nil {
		return models.ClientView{}, err
	}

	// a new client owns no allocations yet
	return s.obfuscator.view(models.ClientRecord{Client: created})
}

func (s *clientService) GetClient(ctx context.Context, id int64) (models.ClientView, error) {
	record, err := s.clientRepository.GetClient(ctx, id)
	if err != nil {
		return models.ClientView{}, err
	}

	return s.obfuscator.view(record)
}

func (s *clientService) ListClients(ctx context.Context, filter models.ClientFilter) (models.ClientList, error) {
	filter = filter.Normalized()

	records, err := s.clientRepository.ListClients(ctx, filter)
	if err != nil {
		return models.ClientList{}, err
	}

	total, err := s.clientRepository.CountClients(ctx, filter)
	if err != nil {
		return models.ClientList{}, err
	}

	views, err := s.obfuscator.views(records)
	if err != nil {
		return models.ClientList{}, err
	}

	logger.FromContext(ctx).Debug().
		Str("func", "clientService.ListClients").
		Uint64("page", filter.Page).
		Int("returned", len(views)).
		Int64("total", total).
		Msg("clients listed")

	return models.ClientList{Clients: views, Total: total}, nil
}

func (s *clientService) SearchClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientView, error) {
	filter.Page, filter.Limit = 0, 0

	records, err := s.clientRepository.ListClients(ctx, filter)
	if err != nil {
		return nil, err
	}

	return s.obfuscator.views(records)
}

func (s *clientService) UpdateClient(ctx context.Context, update models.ClientUpdate) (models.ClientView, error) {
	if _, err := s.clientRepository.UpdateClient(ctx, update); err != nil {
		return models.ClientView{}, err
	}

	return s.GetClient(ctx, update.ID)
}

func (s *clientService) DeleteClient(ctx context.Context, id int64) error {
	return s.clientRepository.DeleteClient(ctx, id)
}
