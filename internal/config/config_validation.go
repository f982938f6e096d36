// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import "fmt"

// validate checks that the final merged [StructuredConfig] satisfies the
// server's startup requirements. A missing encryption secret is reported as
// [ErrInvalidAppConfigs] and must stop the process.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.EncryptionKey == "" {
		return fmt.Errorf("%w: encryption key is required", ErrInvalidAppConfigs)
	}

	if err := validateCipherMode(cfg.App.CipherMode); err != nil {
		return err
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	if cfg.Storage.DB.DSN == "" {
		return fmt.Errorf("%w: database DSN is required", ErrInvalidStorageConfigs)
	}

	if cfg.Server.HTTPAddress == "" && cfg.Server.GRPCAddress == "" {
		return fmt.Errorf("%w: at least one listen address is required", ErrInvalidServerConfigs)
	}

	if cfg.Workers.HealthCheckInterval < 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.App.EncryptionKey == "" {
		return fmt.Errorf("%w: encryption key is required", ErrInvalidAppConfigs)
	}

	if err := validateCipherMode(cfg.App.CipherMode); err != nil {
		return err
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout <= 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}

func validateCipherMode(mode string) error {
	switch mode {
	case CipherModeGCM, CipherModeCBC:
		return nil
	default:
		return fmt.Errorf("%w: unknown cipher mode %q", ErrInvalidAppConfigs, mode)
	}
}
