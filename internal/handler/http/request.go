package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/go-chi/chi/v5"
)

// Query parameters of client listing and search.
const (
	queryPage   = "page"
	queryLimit  = "limit"
	queryName   = "nome"
	queryEmail  = "email"
	queryStatus = "status"
)

func pathID(r *http.Request, param string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPathID, chi.URLParam(r, param))
	}
	return id, nil
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	return nil
}

// clientFilterFromQuery maps the query string to a [models.ClientFilter].
// Empty parameters are treated as absent.
func clientFilterFromQuery(r *http.Request) (models.ClientFilter, error) {
	query := r.URL.Query()
	var filter models.ClientFilter

	if name := query.Get(queryName); name != "" {
		filter.Name = &name
	}
	if email := query.Get(queryEmail); email != "" {
		filter.Email = &email
	}
	if raw := query.Get(queryStatus); raw != "" {
		status, err := strconv.ParseBool(raw)
		if err != nil {
			return models.ClientFilter{}, fmt.Errorf("%w: %s=%q", ErrInvalidQueryArg, queryStatus, raw)
		}
		filter.Status = &status
	}

	var err error
	if filter.Page, err = uintQuery(r, queryPage); err != nil {
		return models.ClientFilter{}, err
	}
	if filter.Page > models.MaxPage {
		return models.ClientFilter{}, fmt.Errorf("%w: %s must not exceed %d", ErrInvalidQueryArg, queryPage, models.MaxPage)
	}
	if filter.Limit, err = uintQuery(r, queryLimit); err != nil {
		return models.ClientFilter{}, err
	}

	return filter, nil
}

func uintQuery(r *http.Request, key string) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || value == 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidQueryArg, key, raw)
	}
	return value, nil
}
