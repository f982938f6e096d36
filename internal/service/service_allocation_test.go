package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/mock"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestAllocationSvc(t *testing.T, ctrl *gomock.Controller) (AllocationService, *mock.MockAllocationRepository, *mock.MockCodec) {
	t.Helper()
	repo := mock.NewMockAllocationRepository(ctrl)
	codec := mock.NewMockCodec(ctrl)

	svc := NewAllocationService(repo, codec, config.Merge{MaxRetries: 2, RetryBaseDelay: time.Millisecond}, logger.Nop())
	return svc, repo, codec
}

// runMerge makes the repository mock invoke the merge callback the way the
// SQL repository does, with current as the stored token.
func runMerge(current *string, stored models.Allocation) func(context.Context, int64, string, store.MergeFunc) (models.Allocation, bool, error) {
	return func(_ context.Context, clientID int64, assetCode string, merge store.MergeFunc) (models.Allocation, bool, error) {
		token, err := merge(current)
		if err != nil {
			return models.Allocation{}, false, err
		}
		stored.ClientID, stored.AssetCode, stored.EncryptedAmount = clientID, assetCode, token
		return stored, current != nil, nil
	}
}

// ── RecordAllocation ─────────────────────────────────────────────────────────

func TestAllocationService_RecordAllocation_NewRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
		DoAndReturn(runMerge(nil, models.Allocation{ID: 10}))
	codec.EXPECT().Encrypt(eqDecimal("100")).Return("iv:ct-100", nil)

	allocation, merged, err := svc.RecordAllocation(ctx, 1, "XYZ3", decimal.NewFromInt(100))
	require.NoError(t, err)

	assert.False(t, merged)
	assert.Equal(t, int64(10), allocation.ID)
	assert.Equal(t, "XYZ3", allocation.AssetCode)
	assert.True(t, allocation.Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, "iv:ct-100", allocation.EncryptedAmount)
}

func TestAllocationService_RecordAllocation_MergesIntoExistingRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)
	ctx := context.Background()

	current := "iv:ct-100"
	repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
		DoAndReturn(runMerge(&current, models.Allocation{ID: 10}))
	gomock.InOrder(
		codec.EXPECT().Decrypt(current).Return(decimal.NewFromInt(100), nil),
		codec.EXPECT().Encrypt(eqDecimal("125")).Return("iv:ct-125", nil),
	)

	allocation, merged, err := svc.RecordAllocation(ctx, 1, "XYZ3", decimal.NewFromInt(25))
	require.NoError(t, err)

	assert.True(t, merged)
	assert.True(t, allocation.Amount.Equal(decimal.NewFromInt(125)), "got %s", allocation.Amount)
	assert.Equal(t, "iv:ct-125", allocation.EncryptedAmount)
}

func TestAllocationService_RecordAllocation_RetriesOnConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)
	ctx := context.Background()

	current := "iv:ct-100"
	gomock.InOrder(
		// lost the race for the first insert
		repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ int64, _ string, merge store.MergeFunc) (models.Allocation, bool, error) {
				_, err := merge(nil)
				require.NoError(t, err)
				return models.Allocation{}, false, store.ErrAllocationConflict
			}),
		// the winner's row is visible now
		repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
			DoAndReturn(runMerge(&current, models.Allocation{ID: 10})),
	)
	codec.EXPECT().Encrypt(eqDecimal("50")).Return("iv:ct-50", nil)
	codec.EXPECT().Decrypt(current).Return(decimal.NewFromInt(100), nil)
	codec.EXPECT().Encrypt(eqDecimal("150")).Return("iv:ct-150", nil)

	allocation, merged, err := svc.RecordAllocation(ctx, 1, "XYZ3", decimal.NewFromInt(50))
	require.NoError(t, err)

	assert.True(t, merged)
	assert.True(t, allocation.Amount.Equal(decimal.NewFromInt(150)))
}

func TestAllocationService_RecordAllocation_RetriesTransientErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)

	transient := errors.Join(store.ErrExecutingQuery, store.ErrTransient)
	gomock.InOrder(
		repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
			Return(models.Allocation{}, false, transient),
		repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
			DoAndReturn(runMerge(nil, models.Allocation{ID: 3})),
	)
	codec.EXPECT().Encrypt(gomock.Any()).Return("iv:ct", nil)

	_, merged, err := svc.RecordAllocation(context.Background(), 1, "XYZ3", decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.False(t, merged)
}

func TestAllocationService_RecordAllocation_GivesUpAfterMaxRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAllocationSvc(t, ctrl)

	// first attempt plus two retries
	repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
		Return(models.Allocation{}, false, store.ErrAllocationConflict).
		Times(3)

	_, _, err := svc.RecordAllocation(context.Background(), 1, "XYZ3", decimal.NewFromInt(1))
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ErrAllocationConflict)
}

func TestAllocationService_RecordAllocation_UnknownClientIsNotRetried(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAllocationSvc(t, ctrl)

	repo.EXPECT().MergeAllocation(gomock.Any(), int64(9999), "XYZ3", gomock.Any()).
		Return(models.Allocation{}, false, store.ErrClientNotFound).
		Times(1)

	_, _, err := svc.RecordAllocation(context.Background(), 9999, "XYZ3", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, store.ErrClientNotFound)
}

func TestAllocationService_RecordAllocation_CorruptedStoredAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)

	current := "garbage"
	repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
		DoAndReturn(runMerge(&current, models.Allocation{ID: 1})).
		Times(1)
	codec.EXPECT().Decrypt(current).Return(decimal.Zero, crypto.ErrMalformedToken)

	_, _, err := svc.RecordAllocation(context.Background(), 1, "XYZ3", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, crypto.ErrMalformedToken)
}

func TestAllocationService_RecordAllocation_EncryptionFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)

	repo.EXPECT().MergeAllocation(gomock.Any(), int64(1), "XYZ3", gomock.Any()).
		DoAndReturn(runMerge(nil, models.Allocation{}))
	codec.EXPECT().Encrypt(gomock.Any()).Return("", errors.New("entropy exhausted"))

	_, _, err := svc.RecordAllocation(context.Background(), 1, "XYZ3", decimal.NewFromInt(1))
	assert.ErrorIs(t, err, ErrEncryptingAmount)
}

// ── EditAllocation ───────────────────────────────────────────────────────────

func TestAllocationService_EditAllocation_ReplacesAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)
	ctx := context.Background()

	amount := decimal.NewFromInt(40)
	codec.EXPECT().Encrypt(eqDecimal("40")).Return("iv:ct-40", nil)
	repo.EXPECT().UpdateAllocation(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, update models.AllocationUpdate) (models.Allocation, error) {
			require.NotNil(t, update.EncryptedAmount)
			assert.Equal(t, "iv:ct-40", *update.EncryptedAmount)
			assert.Nil(t, update.AssetCode)
			return models.Allocation{ID: update.ID, ClientID: 1, AssetCode: "XYZ3", EncryptedAmount: *update.EncryptedAmount}, nil
		},
	)

	allocation, err := svc.EditAllocation(ctx, models.AllocationUpdate{ID: 5, Amount: &amount})
	require.NoError(t, err)

	assert.Equal(t, int64(5), allocation.ID)
	assert.True(t, allocation.Amount.Equal(amount))
}

func TestAllocationService_EditAllocation_AssetOnlyKeepsCiphertext(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)
	ctx := context.Background()

	repo.EXPECT().UpdateAllocation(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, update models.AllocationUpdate) (models.Allocation, error) {
			assert.Nil(t, update.EncryptedAmount)
			return models.Allocation{ID: update.ID, AssetCode: *update.AssetCode, EncryptedAmount: "iv:ct-old"}, nil
		},
	)
	codec.EXPECT().Decrypt("iv:ct-old").Return(decimal.RequireFromString("12.5"), nil)

	allocation, err := svc.EditAllocation(ctx, models.AllocationUpdate{ID: 5, AssetCode: ptr("ABC11")})
	require.NoError(t, err)

	assert.Equal(t, "ABC11", allocation.AssetCode)
	assert.Equal(t, "12.5", allocation.Amount.String())
}

func TestAllocationService_EditAllocation_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)

	amount := decimal.NewFromInt(1)
	codec.EXPECT().Encrypt(gomock.Any()).Return("iv:ct", nil)
	repo.EXPECT().UpdateAllocation(gomock.Any(), gomock.Any()).Return(models.Allocation{}, store.ErrAllocationNotFound)

	_, err := svc.EditAllocation(context.Background(), models.AllocationUpdate{ID: 9999, Amount: &amount})
	assert.ErrorIs(t, err, store.ErrAllocationNotFound)
}

// ── DeleteAllocation / ListAllocations ───────────────────────────────────────

func TestAllocationService_DeleteAllocation(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAllocationSvc(t, ctrl)

	repo.EXPECT().DeleteAllocation(gomock.Any(), int64(9999)).Return(store.ErrAllocationNotFound)

	assert.ErrorIs(t, svc.DeleteAllocation(context.Background(), 9999), store.ErrAllocationNotFound)
}

func TestAllocationService_ListAllocations_DecryptsAmounts(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)

	repo.EXPECT().ListAllocations(gomock.Any(), int64(1)).Return([]models.Allocation{
		{ID: 1, ClientID: 1, AssetCode: "XYZ3", EncryptedAmount: "a"},
		{ID: 2, ClientID: 1, AssetCode: "ABC11", EncryptedAmount: "b"},
	}, nil)
	codec.EXPECT().Decrypt("a").Return(decimal.NewFromInt(125), nil)
	codec.EXPECT().Decrypt("b").Return(decimal.RequireFromString("0.5"), nil)

	allocations, err := svc.ListAllocations(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, allocations, 2)

	assert.Equal(t, "125", allocations[0].Amount.String())
	assert.Equal(t, "0.5", allocations[1].Amount.String())
}

func TestAllocationService_ListAllocations_CorruptedRow(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, codec := newTestAllocationSvc(t, ctrl)

	repo.EXPECT().ListAllocations(gomock.Any(), int64(1)).Return([]models.Allocation{{ID: 1, EncryptedAmount: "x"}}, nil)
	codec.EXPECT().Decrypt("x").Return(decimal.Zero, crypto.ErrDecryption)

	allocations, err := svc.ListAllocations(context.Background(), 1)
	assert.Nil(t, allocations)
	assert.ErrorIs(t, err, crypto.ErrDecryption)
}

func TestAllocationService_ListAllocations_UnknownClientIsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, repo, _ := newTestAllocationSvc(t, ctrl)

	repo.EXPECT().ListAllocations(gomock.Any(), int64(42)).Return([]models.Allocation{}, nil)

	allocations, err := svc.ListAllocations(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, allocations)
	assert.Empty(t, allocations)
}
