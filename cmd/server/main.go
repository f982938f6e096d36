package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/allocation-ledger/internal/config"
	"github.com/MKhiriev/allocation-ledger/internal/crypto"
	"github.com/MKhiriev/allocation-ledger/internal/handler"
	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/internal/server"
	"github.com/MKhiriev/allocation-ledger/internal/service"
	"github.com/MKhiriev/allocation-ledger/internal/store"
	"github.com/MKhiriev/allocation-ledger/internal/workers"
	"github.com/MKhiriev/allocation-ledger/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	fmt.Println(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit))

	log := logger.NewLogger("ledger-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)
	defer stop()

	codec, err := crypto.NewCodec(cfg.App.EncryptionKey, cfg.App.CipherMode)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating cipher codec")
	}

	storages, err := store.NewStorages(ctx, cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storages")
	}
	defer storages.Close()

	services, err := service.NewServices(storages, codec, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var reporter workers.StatusReporter
	if handlers.GRPC != nil {
		reporter = handlers.GRPC
	}
	workers.NewWorkers(services, reporter, cfg.Workers, log).Run(ctx)

	if err = srv.RunServer(ctx); err != nil {
		log.Error().Err(err).Msg("server stopped with error")
	}
}
