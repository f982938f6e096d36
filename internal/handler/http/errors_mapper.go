package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/service"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/internal/utils"
	"github.com/MKhiriev/allocation-ledger/models"
)

const corruptedCiphertextMessage = "stored ciphertext is corrupted"

var errorStatusMap = map[error]int{
	ErrInvalidJSON:                 http.StatusBadRequest,
	ErrInvalidPathID:               http.StatusBadRequest,
	ErrInvalidQueryArg:             http.StatusBadRequest,
	service.ErrInvalidDataProvided: http.StatusBadRequest,

	store.ErrClientNotFound:      http.StatusNotFound,
	store.ErrAllocationNotFound:  http.StatusNotFound,
	store.ErrEmailAlreadyExists:  http.StatusConflict,
	store.ErrDuplicateAllocation: http.StatusConflict,
	store.ErrAllocationConflict:  http.StatusConflict,

	store.ErrBuildingSQLQuery:     http.StatusInternalServerError,
	store.ErrExecutingQuery:       http.StatusInternalServerError,
	store.ErrBeginningTransaction: http.StatusInternalServerError,
	store.ErrCommitingTransaction: http.StatusInternalServerError,
	store.ErrExecutingStatement:   http.StatusInternalServerError,
	store.ErrScanningRow:          http.StatusInternalServerError,
	store.ErrScanningRows:         http.StatusInternalServerError,
}

// corruptionErrors mark ciphertext that was stored but cannot be read back.
var corruptionErrors = []error{
	crypto.ErrMalformedToken,
	crypto.ErrDecryption,
	crypto.ErrInvalidPlaintext,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

func isCorruption(err error) bool {
	for _, target := range corruptionErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// writeError logs err and answers with the status it maps to. Client errors
// carry the error text; server errors never expose internals.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	log := logger.FromRequest(r)

	if isCorruption(err) {
		log.Err(err).Msg("stored ciphertext cannot be decrypted")
		writeErrorMessage(w, r, http.StatusInternalServerError, corruptedCiphertextMessage)
		return
	}

	status := statusFromError(err)
	if status >= http.StatusInternalServerError {
		log.Err(err).Msg("request failed")
		writeErrorMessage(w, r, status, http.StatusText(status))
		return
	}

	log.Warn().Err(err).Int("status", status).Msg("request rejected")
	writeErrorMessage(w, r, status, err.Error())
}

func writeErrorMessage(w http.ResponseWriter, r *http.Request, status int, message string) {
	if _, err := utils.WriteJSON(w, models.ErrorResponse{Error: message}, status); err != nil {
		logger.FromRequest(r).Err(err).Msg("failed to write error response")
	}
}
