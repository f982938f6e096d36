package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/models"
)

// allocationRepository is the SQL implementation of [AllocationRepository].
type allocationRepository struct {
	db     *DB
	logger *logger.Logger
}

// NewAllocationRepository constructs an [AllocationRepository] backed by db.
func NewAllocationRepository(db *DB, logger *logger.Logger) AllocationRepository {
	logger.Debug().Msg("creating allocation repository")
	return &allocationRepository{
		db:     db,
		logger: logger,
	}
}

// MergeAllocation implements [AllocationRepository].
//
// The existing row is read with FOR UPDATE on PostgreSQL; on SQLite the
// transaction already holds the database write lock. When no row exists the
// insert can still lose a race against another first insert of the same
// pair: the unique constraint then rejects it with [ErrAllocationConflict]
// and the caller repeats the whole merge. An unknown client surfaces as a
// foreign key violation and is reported as [ErrClientNotFound].
//
// Errors returned by merge are passed through unwrapped and roll back the
// transaction.
func (r *allocationRepository) MergeAllocation(ctx context.Context, clientID int64, assetCode string, merge MergeFunc) (models.Allocation, bool, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "allocationRepository.MergeAllocation").
		Int64("client_id", clientID).
		Str("asset_code", assetCode).
		Logger()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.Allocation{}, false, r.db.wrap(ErrBeginningTransaction, err)
	}
	defer tx.Rollback()

	query, args, err := r.db.queries.buildSelectAllocationForMergeQuery(clientID, assetCode)
	if err != nil {
		log.Err(err).Msg("failed to build select query")
		return models.Allocation{}, false, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var allocation models.Allocation
	err = tx.QueryRowContext(ctx, query, args...).
		Scan(&allocation.ID, &allocation.ClientID, &allocation.AssetCode, &allocation.EncryptedAmount)

	merged := true
	switch {
	case errors.Is(err, sql.ErrNoRows):
		merged = false
	case err != nil:
		log.Err(err).Msg("failed to read current allocation")
		return models.Allocation{}, false, r.db.wrap(ErrExecutingQuery, err)
	}

	var current *string
	if merged {
		current = &allocation.EncryptedAmount
	}

	token, err := merge(current)
	if err != nil {
		log.Err(err).Msg("merge function failed")
		return models.Allocation{}, false, err
	}

	if merged {
		if err = r.updateAmount(ctx, tx, allocation.ID, token); err != nil {
			log.Err(err).Int64("allocation_id", allocation.ID).Msg("failed to update allocation")
			return models.Allocation{}, false, err
		}
	} else {
		allocation = models.Allocation{ClientID: clientID, AssetCode: assetCode}
		if allocation.ID, err = r.insert(ctx, tx, clientID, assetCode, token); err != nil {
			log.Err(err).Msg("failed to insert allocation")
			return models.Allocation{}, false, err
		}
	}

	if commitErr := tx.Commit(); commitErr != nil {
		log.Err(commitErr).Msg("failed to commit transaction")
		return models.Allocation{}, false, r.db.wrap(ErrCommitingTransaction, commitErr)
	}

	allocation.EncryptedAmount = token
	log.Info().Int64("allocation_id", allocation.ID).Bool("merged", merged).Msg("allocation recorded")

	return allocation, merged, nil
}

func (r *allocationRepository) updateAmount(ctx context.Context, tx *sql.Tx, id int64, token string) error {
	query, args, err := r.db.queries.buildUpdateAllocationAmountQuery(id, token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = tx.ExecContext(ctx, query, args...); err != nil {
		return r.db.wrap(ErrExecutingStatement, err)
	}

	return nil
}

func (r *allocationRepository) insert(ctx context.Context, tx *sql.Tx, clientID int64, assetCode, token string) (int64, error) {
	query, args, err := r.db.queries.buildInsertAllocationQuery(clientID, assetCode, token)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var id int64
	if err = tx.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		switch r.db.classify(err) {
		case UniqueViolation:
			return 0, fmt.Errorf("%w: %w", ErrAllocationConflict, err)
		case ForeignKeyViolation:
			return 0, ErrClientNotFound
		default:
			return 0, r.db.wrap(ErrExecutingQuery, err)
		}
	}

	return id, nil
}

// UpdateAllocation overwrites the asset code and/or ciphertext of one
// allocation. Renaming to an asset the client already holds is rejected with
// [ErrDuplicateAllocation].
func (r *allocationRepository) UpdateAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildUpdateAllocationQuery(update)
	if err != nil {
		log.Err(err).Str("func", "allocationRepository.UpdateAllocation").Int64("allocation_id", update.ID).Msg("failed to build query")
		return models.Allocation{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var allocation models.Allocation
	err = r.db.QueryRowContext(ctx, query, args...).
		Scan(&allocation.ID, &allocation.ClientID, &allocation.AssetCode, &allocation.EncryptedAmount)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		log.Warn().Str("func", "allocationRepository.UpdateAllocation").Int64("allocation_id", update.ID).Msg("allocation not found")
		return models.Allocation{}, ErrAllocationNotFound
	case err != nil && r.db.classify(err) == UniqueViolation:
		log.Warn().Str("func", "allocationRepository.UpdateAllocation").Int64("allocation_id", update.ID).Msg("asset already allocated")
		return models.Allocation{}, ErrDuplicateAllocation
	case err != nil:
		log.Err(err).Str("func", "allocationRepository.UpdateAllocation").Int64("allocation_id", update.ID).Msg("failed to update allocation")
		return models.Allocation{}, r.db.wrap(ErrExecutingQuery, err)
	}

	log.Info().Str("func", "allocationRepository.UpdateAllocation").Int64("allocation_id", allocation.ID).Msg("allocation updated")
	return allocation, nil
}

// DeleteAllocation removes one allocation.
func (r *allocationRepository) DeleteAllocation(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildDeleteAllocationQuery(id)
	if err != nil {
		log.Err(err).Str("func", "allocationRepository.DeleteAllocation").Msg("failed to build query")
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "allocationRepository.DeleteAllocation").Int64("allocation_id", id).Msg("failed to delete allocation")
		return r.db.wrap(ErrExecutingStatement, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		log.Warn().Str("func", "allocationRepository.DeleteAllocation").Int64("allocation_id", id).Msg("allocation not found")
		return ErrAllocationNotFound
	}

	log.Info().Str("func", "allocationRepository.DeleteAllocation").Int64("allocation_id", id).Msg("allocation deleted")
	return nil
}

// ListAllocations returns the allocations of one client ordered by id. An
// unknown client yields an empty slice.
func (r *allocationRepository) ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildListAllocationsQuery(clientID)
	if err != nil {
		log.Err(err).Str("func", "allocationRepository.ListAllocations").Msg("failed to build query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "allocationRepository.ListAllocations").Int64("client_id", clientID).Msg("failed to list allocations")
		return nil, r.db.wrap(ErrExecutingQuery, err)
	}
	defer rows.Close()

	allocations := make([]models.Allocation, 0, 8)
	for rows.Next() {
		var allocation models.Allocation
		if scanErr := rows.Scan(&allocation.ID, &allocation.ClientID, &allocation.AssetCode, &allocation.EncryptedAmount); scanErr != nil {
			log.Err(scanErr).Str("func", "allocationRepository.ListAllocations").Int64("client_id", clientID).Msg("failed to scan allocation row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		allocations = append(allocations, allocation)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		log.Err(rowsErr).Str("func", "allocationRepository.ListAllocations").Int64("client_id", clientID).Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return allocations, nil
}

// CountAllocations returns how many allocations the client holds.
func (r *allocationRepository) CountAllocations(ctx context.Context, clientID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.db.queries.buildCountAllocationsQuery(clientID)
	if err != nil {
		log.Err(err).Str("func", "allocationRepository.CountAllocations").Msg("failed to build query")
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var count int64
	if err = r.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		log.Err(err).Str("func", "allocationRepository.CountAllocations").Int64("client_id", clientID).Msg("failed to count allocations")
		return 0, r.db.wrap(ErrExecutingQuery, err)
	}

	return count, nil
}
