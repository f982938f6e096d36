package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/models"
)

// clientRepository is the SQL implementation of [ClientRepository].
//
// All methods obtain a context-scoped logger via [logger.FromContext] for
// structured, request-level tracing of database interactions.
type clientRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewClientRepository constructs a [ClientRepository] backed by db.
func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	logger.Debug().Msg("creating client repository")
	return &clientRepository{
		db:     db,
		logger: logger,
	}
}

// CreateClient inserts client and returns it with the assigned id.
//
// A unique violation on the e-mail column is reported as
// [ErrEmailAlreadyExists].
func (r *clientRepository) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildCreateClientQuery(client)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.CreateClient").Msg("failed to build query")
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&client.ID); err != nil {
		log.Err(err).Str("func", "clientRepository.CreateClient").Str("email", client.Email).Msg("failed to insert client")
		if r.db.classify(err) == UniqueViolation {
			return models.Client{}, ErrEmailAlreadyExists
		}
		return models.Client{}, r.db.wrap(ErrExecutingQuery, err)
	}

	log.Info().Str("func", "clientRepository.CreateClient").Int64("client_id", client.ID).Msg("client created")
	return client, nil
}

// GetClient returns the client with the given id and its allocation count.
func (r *clientRepository) GetClient(ctx context.Context, id int64) (models.ClientRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildGetClientQuery(id)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.GetClient").Msg("failed to build query")
		return models.ClientRecord{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	record, err := scanClientRecord(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		log.Warn().Str("func", "clientRepository.GetClient").Int64("client_id", id).Msg("client not found")
		return models.ClientRecord{}, ErrClientNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "clientRepository.GetClient").Int64("client_id", id).Msg("failed to get client")
		return models.ClientRecord{}, r.db.wrap(ErrExecutingQuery, err)
	}

	return record, nil
}

// ListClients returns the clients matching filter ordered by id descending.
// A zero filter.Limit returns every match.
func (r *clientRepository) ListClients(ctx context.Context, filter models.ClientFilter) ([]models.ClientRecord, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildListClientsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.ListClients").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.ListClients").Msg("failed to list clients")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	records := make([]models.ClientRecord, 0, filter.Limit)
	for rows.Next() {
		record, scanErr := scanClientRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", "clientRepository.ListClients").Msg("failed to scan client row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		records = append(records, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "clientRepository.ListClients").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return records, nil
}

// CountClients returns the number of clients matching filter, ignoring its
// pagination.
func (r *clientRepository) CountClients(ctx context.Context, filter models.ClientFilter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildCountClientsQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.CountClients").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "clientRepository.CountClients").Msg("failed to count clients")
		return 0, r.db.wrap(ErrExecutingQuery, err)
	}

	return total, nil
}

// UpdateClient writes the non-nil fields of update and returns the stored
// client.
func (r *clientRepository) UpdateClient(ctx context.Context, update models.ClientUpdate) (models.Client, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildUpdateClientQuery(update)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.UpdateClient").Int64("client_id", update.ID).Msg("failed to build query")
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var client models.Client
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&client.ID, &client.Name, &client.Email, &client.Phone, &client.Status)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Warn().Str("func", "clientRepository.UpdateClient").Int64("client_id", update.ID).Msg("client not found")
		return models.Client{}, ErrClientNotFound
	case err != nil && r.db.classify(err) == UniqueViolation:
		log.Warn().Str("func", "clientRepository.UpdateClient").Int64("client_id", update.ID).Msg("email already taken")
		return models.Client{}, ErrEmailAlreadyExists
	case err != nil:
		log.Err(err).Str("func", "clientRepository.UpdateClient").Int64("client_id", update.ID).Msg("failed to update client")
		return models.Client{}, r.db.wrap(ErrExecutingQuery, err)
	}

	log.Info().Str("func", "clientRepository.UpdateClient").Int64("client_id", client.ID).Msg("client updated")
	return client, nil
}

// DeleteClient removes the client; its allocations go with it through the
// ON DELETE CASCADE foreign key.
func (r *clientRepository) DeleteClient(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildDeleteClientQuery(id)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.DeleteClient").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "clientRepository.DeleteClient").Int64("client_id", id).Msg("failed to delete client")
		return r.db.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().Str("func", "clientRepository.DeleteClient").Int64("client_id", id).Msg("client not found")
		return ErrClientNotFound
	}

	log.Info().Str("func", "clientRepository.DeleteClient").Int64("client_id", id).Msg("client deleted")
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClientRecord(row rowScanner) (models.ClientRecord, error) {
	var record models.ClientRecord
	err := row.Scan(
		&record.ID,
		&record.Name,
		&record.Email,
		&record.Phone,
		&record.Status,
		&record.AllocationCount,
	)
	return record, err
}
