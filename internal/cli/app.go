// Package cli implements the ledger command-line client.
//
// The CLI talks to the HTTP API through [adapter.LedgerAPI] and holds the
// shared secret, so it can turn the opaque allocation-count tokens returned by
// the server back into numbers.
package cli

import (
	"fmt"
	"strconv"

	"github.com/MKhiriev/allocation-ledger/internal/adapter"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
)

// App is what every command runs against.
type App struct {
	api   adapter.LedgerAPI
	codec crypto.Codec

	logger *logger.Logger
}

func NewApp(api adapter.LedgerAPI, codec crypto.Codec, logger *logger.Logger) *App {
	return &App{api: api, codec: codec, logger: logger}
}

// Factory builds the App once flags are parsed. serverURL is empty unless
// --server was given.
type Factory func(serverURL string) (*App, error)

// revealCount decrypts a count token into its decimal string.
func (a *App) revealCount(token string) (string, error) {
	value, err := a.codec.Decrypt(token)
	if err != nil {
		a.logger.Err(err).Str("func", "App.revealCount").Msg("failed to decrypt allocation count")
		return "", err
	}

	if !value.IsInteger() || value.IsNegative() {
		return "", fmt.Errorf("%w: count %s is not a natural number", crypto.ErrInvalidPlaintext, value)
	}

	return strconv.FormatInt(value.IntPart(), 10), nil
}
