package config

import (
	"fmt"
	"time"
)

// ClientApp holds the settings the CLI needs to decrypt ledger tokens.
type ClientApp struct {
	// EncryptionKey is the shared secret, identical to the server's.
	EncryptionKey string
	// CipherMode must match the server's cipher mode.
	CipherMode string
}

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the base URL of the ledger API.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level CLI configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// App contains the shared secret and cipher mode.
	App ClientApp
	// Adapter contains the ledger API address and timeout.
	Adapter ClientAdapter
}

// GetClientConfig builds and validates the CLI config view.
//
// Command-line flags are owned by the CLI itself, so only the .env file,
// environment variables, and the JSON file named by CONFIG are consulted.
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := newConfigBuilder(nil).
		withDotEnv().
		withEnv().
		withJSON().
		merge()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		App: ClientApp{
			EncryptionKey: cfg.App.EncryptionKey,
			CipherMode:    cfg.App.CipherMode,
		},
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
	}

	return clientCfg, clientCfg.validate()
}
