package adapter

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/utils"
	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
)

type httpLedgerAdapter struct {
	client *utils.HTTPClient

	logger *logger.Logger
}

// NewHTTPLedgerAdapter constructs the HTTP implementation of [LedgerAPI].
// A base URL without a scheme is treated as plain http.
func NewHTTPLedgerAdapter(cfg config.ClientAdapter, logger *logger.Logger) (LedgerAPI, error) {
	baseURL, err := normalizeBaseURL(cfg.HTTPAddress)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Accept", "application/json")

	return &httpLedgerAdapter{client: client, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpLedgerAdapter) request(ctx context.Context) *resty.Request {
	return h.client.R().
		SetContext(ctx).
		SetError(&models.ErrorResponse{})
}

// ListClients implements [LedgerAPI] via GET /clientes.
func (h *httpLedgerAdapter) ListClients(ctx context.Context, filter models.ClientFilter) (models.ClientList, error) {
	var list models.ClientList

	req := h.request(ctx).SetResult(&list)
	if filter.Page > 0 {
		req.SetQueryParam("page", strconv.FormatUint(filter.Page, 10))
	}
	if filter.Limit > 0 {
		req.SetQueryParam("limit", strconv.FormatUint(filter.Limit, 10))
	}
	if filter.Name != nil {
		req.SetQueryParam("nome", *filter.Name)
	}
	if filter.Email != nil {
		req.SetQueryParam("email", *filter.Email)
	}
	if filter.Status != nil {
		req.SetQueryParam("status", strconv.FormatBool(*filter.Status))
	}

	resp, err := req.Get("/clientes")
	if err != nil {
		return models.ClientList{}, fmt.Errorf("list clients request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.ClientList{}, err
	}

	return list, nil
}

// GetAllocationCount implements [LedgerAPI] via
// GET /clientes/{id}/numero-alocacoes.
func (h *httpLedgerAdapter) GetAllocationCount(ctx context.Context, clientID int64) (models.AllocationCount, error) {
	var count models.AllocationCount

	resp, err := h.request(ctx).
		SetResult(&count).
		SetPathParam("id", strconv.FormatInt(clientID, 10)).
		Get("/clientes/{id}/numero-alocacoes")
	if err != nil {
		return models.AllocationCount{}, fmt.Errorf("get allocation count request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.AllocationCount{}, err
	}

	return count, nil
}

// ListAllocations implements [LedgerAPI] via GET /clientes/{id}/alocacoes.
func (h *httpLedgerAdapter) ListAllocations(ctx context.Context, clientID int64) ([]models.Allocation, error) {
	allocations := make([]models.Allocation, 0)

	resp, err := h.request(ctx).
		SetResult(&allocations).
		SetPathParam("id", strconv.FormatInt(clientID, 10)).
		Get("/clientes/{id}/alocacoes")
	if err != nil {
		return nil, fmt.Errorf("list allocations request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return allocations, nil
}

// RecordAllocation implements [LedgerAPI] via POST /clientes/{id}/alocacoes.
// The server answers 201 for a new allocation and 200 for a merge.
func (h *httpLedgerAdapter) RecordAllocation(ctx context.Context, clientID int64, assetCode string, amount decimal.Decimal) (models.Allocation, bool, error) {
	var allocation models.Allocation

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.AllocationRequest{AssetCode: assetCode, Amount: amount}).
		SetResult(&allocation).
		SetPathParam("id", strconv.FormatInt(clientID, 10)).
		Post("/clientes/{id}/alocacoes")
	if err != nil {
		return models.Allocation{}, false, fmt.Errorf("record allocation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Allocation{}, false, err
	}

	return allocation, resp.StatusCode() == http.StatusOK, nil
}

// EditAllocation implements [LedgerAPI] via PUT /alocacoes/{alocacaoId}.
func (h *httpLedgerAdapter) EditAllocation(ctx context.Context, update models.AllocationUpdate) (models.Allocation, error) {
	var allocation models.Allocation

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(update).
		SetResult(&allocation).
		SetPathParam("alocacaoId", strconv.FormatInt(update.ID, 10)).
		Put("/alocacoes/{alocacaoId}")
	if err != nil {
		return models.Allocation{}, fmt.Errorf("edit allocation request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.Allocation{}, err
	}

	return allocation, nil
}

// DeleteAllocation implements [LedgerAPI] via DELETE /alocacoes/{alocacaoId}.
func (h *httpLedgerAdapter) DeleteAllocation(ctx context.Context, id int64) error {
	resp, err := h.request(ctx).
		SetPathParam("alocacaoId", strconv.FormatInt(id, 10)).
		Delete("/alocacoes/{alocacaoId}")
	if err != nil {
		return fmt.Errorf("delete allocation request: %w", err)
	}

	return mapHTTPError(resp)
}

// ListAssets implements [LedgerAPI] via GET /ativos.
func (h *httpLedgerAdapter) ListAssets(ctx context.Context) ([]models.Asset, error) {
	assets := make([]models.Asset, 0)

	resp, err := h.request(ctx).SetResult(&assets).Get("/ativos")
	if err != nil {
		return nil, fmt.Errorf("list assets request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return assets, nil
}

// ServerVersion implements [LedgerAPI] via GET /version.
func (h *httpLedgerAdapter) ServerVersion(ctx context.Context) (string, error) {
	resp, err := h.client.R().SetContext(ctx).Get("/version")
	if err != nil {
		return "", fmt.Errorf("server version request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	return strings.TrimSpace(resp.String()), nil
}
