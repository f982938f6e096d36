package store

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/models"
)

var allocationCols = []string{"id", "client_id", "asset_code", "encrypted_amount"}

const selectForMerge = `SELECT (.+) FROM allocations WHERE client_id = \$1 AND asset_code = \$2 FOR UPDATE`

func newMockDB(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return newDB(conn, config.DriverPostgres, NewPostgresErrorClassifier(), logger.Nop()), mock
}

func newTestAllocationRepo(t *testing.T) (*allocationRepository, sqlmock.Sqlmock) {
	db, mock := newMockDB(t)
	return &allocationRepository{db: db, logger: logger.Nop()}, mock
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

// ── MergeAllocation ──────────────────────────────────────────────────────────

func TestMergeAllocation_InsertsWhenAbsent(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).
		WithArgs(1, "XYZ3").
		WillReturnRows(sqlmock.NewRows(allocationCols))
	mock.ExpectQuery(`INSERT INTO allocations`).
		WithArgs(1, "XYZ3", "tok-new").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectCommit()

	var seen *string
	allocation, merged, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", func(current *string) (string, error) {
		seen = current
		return "tok-new", nil
	})

	require.NoError(t, err)
	assert.False(t, merged)
	assert.Nil(t, seen)
	assert.Equal(t, models.Allocation{ID: 7, ClientID: 1, AssetCode: "XYZ3", EncryptedAmount: "tok-new"}, allocation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAllocation_UpdatesWhenPresent(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).
		WithArgs(1, "XYZ3").
		WillReturnRows(sqlmock.NewRows(allocationCols).AddRow(5, 1, "XYZ3", "tok-old"))
	mock.ExpectExec(`UPDATE allocations SET encrypted_amount = \$1 WHERE id = \$2`).
		WithArgs("tok-sum", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	allocation, merged, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", func(current *string) (string, error) {
		require.NotNil(t, current)
		assert.Equal(t, "tok-old", *current)
		return "tok-sum", nil
	})

	require.NoError(t, err)
	assert.True(t, merged)
	assert.Equal(t, int64(5), allocation.ID)
	assert.Equal(t, "tok-sum", allocation.EncryptedAmount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAllocation_ConcurrentInsertIsConflict(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).WillReturnRows(sqlmock.NewRows(allocationCols))
	mock.ExpectQuery(`INSERT INTO allocations`).WillReturnError(pgError(pgerrcode.UniqueViolation))
	mock.ExpectRollback()

	_, _, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", func(*string) (string, error) {
		return "tok", nil
	})

	assert.ErrorIs(t, err, ErrAllocationConflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAllocation_UnknownClient(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).WillReturnRows(sqlmock.NewRows(allocationCols))
	mock.ExpectQuery(`INSERT INTO allocations`).WillReturnError(pgError(pgerrcode.ForeignKeyViolation))
	mock.ExpectRollback()

	_, _, err := repo.MergeAllocation(context.Background(), 9999, "XYZ3", func(*string) (string, error) {
		return "tok", nil
	})

	assert.ErrorIs(t, err, ErrClientNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAllocation_MergeFuncErrorRollsBack(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)
	mergeErr := errors.New("cannot decrypt")

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).
		WillReturnRows(sqlmock.NewRows(allocationCols).AddRow(5, 1, "XYZ3", "garbage"))
	mock.ExpectRollback()

	_, _, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", func(*string) (string, error) {
		return "", mergeErr
	})

	assert.ErrorIs(t, err, mergeErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAllocation_RetryableReadIsTransient(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).WillReturnError(pgError(pgerrcode.DeadlockDetected))
	mock.ExpectRollback()

	_, _, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", func(*string) (string, error) {
		t.Fatal("merge must not run after a failed read")
		return "", nil
	})

	assert.ErrorIs(t, err, ErrTransient)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMergeAllocation_BeginFails(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)
	mock.ExpectBegin().WillReturnError(errors.New("connection refused"))

	_, _, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", nil)
	assert.ErrorIs(t, err, ErrBeginningTransaction)
}

func TestMergeAllocation_CommitFails(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectBegin()
	mock.ExpectQuery(selectForMerge).WillReturnRows(sqlmock.NewRows(allocationCols))
	mock.ExpectQuery(`INSERT INTO allocations`).WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit().WillReturnError(pgError(pgerrcode.SerializationFailure))

	_, _, err := repo.MergeAllocation(context.Background(), 1, "XYZ3", func(*string) (string, error) {
		return "tok", nil
	})

	assert.ErrorIs(t, err, ErrCommitingTransaction)
	assert.ErrorIs(t, err, ErrTransient)
}

// ── UpdateAllocation ─────────────────────────────────────────────────────────

func TestUpdateAllocation_Success(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`UPDATE allocations SET asset_code = \$1, encrypted_amount = \$2 WHERE id = \$3 RETURNING`).
		WithArgs("ABC11", "tok", 4).
		WillReturnRows(sqlmock.NewRows(allocationCols).AddRow(4, 1, "ABC11", "tok"))

	allocation, err := repo.UpdateAllocation(context.Background(), models.AllocationUpdate{
		ID:              4,
		AssetCode:       ptr("ABC11"),
		EncryptedAmount: ptr("tok"),
	})

	require.NoError(t, err)
	assert.Equal(t, models.Allocation{ID: 4, ClientID: 1, AssetCode: "ABC11", EncryptedAmount: "tok"}, allocation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateAllocation_NotFound(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`UPDATE allocations`).WillReturnRows(sqlmock.NewRows(allocationCols))

	_, err := repo.UpdateAllocation(context.Background(), models.AllocationUpdate{ID: 9999, EncryptedAmount: ptr("tok")})
	assert.ErrorIs(t, err, ErrAllocationNotFound)
}

func TestUpdateAllocation_DuplicateAsset(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`UPDATE allocations`).WillReturnError(pgError(pgerrcode.UniqueViolation))

	_, err := repo.UpdateAllocation(context.Background(), models.AllocationUpdate{ID: 4, AssetCode: ptr("XYZ3")})
	assert.ErrorIs(t, err, ErrDuplicateAllocation)
}

func TestUpdateAllocation_NothingToUpdate(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	_, err := repo.UpdateAllocation(context.Background(), models.AllocationUpdate{ID: 4})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// ── DeleteAllocation ─────────────────────────────────────────────────────────

func TestDeleteAllocation(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "not found", affected: 0, wantErr: ErrAllocationNotFound},
		{name: "db error", execErr: errors.New("boom"), wantErr: ErrExecutingStatement},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newTestAllocationRepo(t)

			exp := mock.ExpectExec(`DELETE FROM allocations WHERE id = \$1`).WithArgs(3)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, tt.affected))
			}

			err := repo.DeleteAllocation(context.Background(), 3)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// ── ListAllocations / CountAllocations ───────────────────────────────────────

func TestListAllocations(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM allocations WHERE client_id = \$1 ORDER BY id ASC`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows(allocationCols).
			AddRow(1, 1, "XYZ3", "t1").
			AddRow(2, 1, "ABC11", "t2"))

	allocations, err := repo.ListAllocations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, allocations, 2)
	assert.Equal(t, "XYZ3", allocations[0].AssetCode)
	assert.Equal(t, "t2", allocations[1].EncryptedAmount)
}

func TestListAllocations_EmptyForUnknownClient(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`FROM allocations`).WillReturnRows(sqlmock.NewRows(allocationCols))

	allocations, err := repo.ListAllocations(context.Background(), 9999)
	require.NoError(t, err)
	assert.NotNil(t, allocations)
	assert.Empty(t, allocations)
}

func TestListAllocations_RowError(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`FROM allocations`).
		WillReturnRows(sqlmock.NewRows(allocationCols).
			AddRow(1, 1, "XYZ3", "t1").
			RowError(0, errors.New("broken row")))

	_, err := repo.ListAllocations(context.Background(), 1)
	assert.ErrorIs(t, err, ErrScanningRows)
}

func TestCountAllocations(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM allocations WHERE client_id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountAllocations(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestCountAllocations_Error(t *testing.T) {
	repo, mock := newTestAllocationRepo(t)

	mock.ExpectQuery(`SELECT COUNT`).WillReturnError(sql.ErrConnDone)

	_, err := repo.CountAllocations(context.Background(), 1)
	assert.ErrorIs(t, err, ErrExecutingQuery)
	assert.NotErrorIs(t, err, ErrTransient)
}
