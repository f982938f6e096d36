package http

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newLedgerRouter serves the real services over in-memory SQLite.
func newLedgerRouter(t *testing.T) (http.Handler, crypto.Codec) {
	t.Helper()

	cfg := config.StructuredConfig{
		App:     config.App{EncryptionKey: "segredo", Version: "e2e"},
		Storage: config.Storage{DB: config.DB{Driver: config.DriverSQLite, DSN: ":memory:"}},
		Merge:   config.Merge{MaxRetries: 3},
	}

	storages, err := store.NewStorages(context.Background(), cfg.Storage, logger.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = storages.Close() })

	codec, err := crypto.NewCodec(cfg.App.EncryptionKey, cfg.App.CipherMode)
	require.NoError(t, err)

	services, err := service.NewServices(storages, codec, cfg, logger.Nop())
	require.NoError(t, err)

	return newTestRouter(t, services), codec
}

func TestLedgerEndToEnd(t *testing.T) {
	router, codec := newLedgerRouter(t)

	rec := serve(t, router, http.MethodPost, "/clientes", `{"nome":"Ana","email":"ana@x.com","status":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	client := decodeBody[models.ClientView](t, rec)

	allocationsPath := fmt.Sprintf("/clientes/%d/alocacoes", client.ID)

	rec = serve(t, router, http.MethodPost, allocationsPath, `{"ativo":"XYZ3","valor":100}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = serve(t, router, http.MethodPost, allocationsPath, `{"ativo":"XYZ3","valor":25}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, router, http.MethodGet, allocationsPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	allocations := decodeBody[[]models.Allocation](t, rec)
	require.Len(t, allocations, 1)
	assert.Equal(t, "XYZ3", allocations[0].AssetCode)
	assert.Equal(t, "125", allocations[0].Amount.String())

	for _, asset := range []string{"ABC11", "TESOURO"} {
		rec = serve(t, router, http.MethodPost, allocationsPath, fmt.Sprintf(`{"ativo":%q,"valor":1}`, asset))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	rec = serve(t, router, http.MethodGet, fmt.Sprintf("/clientes/%d", client.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	count, err := codec.Decrypt(decodeBody[models.ClientView](t, rec).AllocationCount)
	require.NoError(t, err)
	assert.Equal(t, "3", count.String())

	rec = serve(t, router, http.MethodGet, "/clientes?nome=An", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeBody[models.ClientList](t, rec)
	assert.Equal(t, int64(1), list.Total)
	require.Len(t, list.Clients, 1)
	count, err = codec.Decrypt(list.Clients[0].AllocationCount)
	require.NoError(t, err)
	assert.Equal(t, "3", count.String())

	rec = serve(t, router, http.MethodPut, "/alocacoes/9999", `{"valor":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = serve(t, router, http.MethodDelete, "/alocacoes/9999", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(t, router, http.MethodPost, allocationsPath, `{"ativo":"","valor":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(t, router, http.MethodPost, "/clientes", `{"nome":"Ana Clone","email":"ana@x.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = serve(t, router, http.MethodDelete, fmt.Sprintf("/clientes/%d", client.ID), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = serve(t, router, http.MethodGet, allocationsPath, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}
