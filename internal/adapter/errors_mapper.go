package adapter

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/allocation-ledger/models"
	"github.com/go-resty/resty/v2"
)

// corruptedCiphertextMessage is the body the server sends when a stored token
// cannot be decrypted.
const corruptedCiphertextMessage = "stored ciphertext is corrupted"

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	message := errorMessage(resp)

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, message)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, message)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, message)
	case http.StatusInternalServerError:
		if message == corruptedCiphertextMessage {
			return ErrCorruptedCiphertext
		}
		return fmt.Errorf("%w: %s", ErrInternalServerError, message)
	default:
		return fmt.Errorf("http %d: %s", resp.StatusCode(), message)
	}
}

// errorMessage prefers the "error" field of a JSON error body and falls back
// to the raw body, then to the status text.
func errorMessage(resp *resty.Response) string {
	if body, ok := resp.Error().(*models.ErrorResponse); ok && body.Error != "" {
		return body.Error
	}

	if raw := strings.TrimSpace(string(resp.Body())); raw != "" {
		return raw
	}

	return http.StatusText(resp.StatusCode())
}
