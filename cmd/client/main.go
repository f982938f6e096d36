package main

import (
	"fmt"
	"os"

	"github.com/MKhiriev/allocation-ledger/internal/adapter"
	"github.com/MKhiriev/allocation-ledger/internal/cli"
	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewClientLogger("ledger-cli")
	log.Info().Str("build", models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).BuildVersion()).Msg("starting")

	root := cli.NewRootCommand(func(serverURL string) (*cli.App, error) {
		cfg, err := config.GetClientConfig()
		if err != nil {
			return nil, err
		}
		if serverURL != "" {
			cfg.Adapter.HTTPAddress = serverURL
		}

		codec, err := crypto.NewCodec(cfg.App.EncryptionKey, cfg.App.CipherMode)
		if err != nil {
			return nil, fmt.Errorf("create codec: %w", err)
		}

		api, err := adapter.NewHTTPLedgerAdapter(cfg.Adapter, log)
		if err != nil {
			return nil, err
		}

		return cli.NewApp(api, codec, log), nil
	})
	root.Version = models.NewAppBuildInfo(buildVersion, buildDate, buildCommit).String()

	os.Exit(cli.Execute(root, os.Stderr))
}
