package store

import (
	"database/sql"
	"fmt"

	"github.com/MKhiriev/allocation-ledger/internal/logger"
	"github.com/MKhiriev/allocation-ledger/migrations"
)

// DB is a database connection together with the SQL dialect it speaks.
type DB struct {
	*sql.DB
	driver             string
	queries            queries
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

func newDB(conn *sql.DB, driver string, classificator ErrorClassificator, log *logger.Logger) *DB {
	return &DB{
		DB:                 conn,
		driver:             driver,
		queries:            newQueries(driver),
		errorClassificator: classificator,
		logger:             log,
	}
}

// Migrate applies the embedded schema migrations of the connection's
// dialect.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}

func (db *DB) classify(err error) ErrorClassification {
	if db.errorClassificator == nil {
		return NonRetryable
	}
	return db.errorClassificator.Classify(err)
}

// wrap attaches base to err and marks retryable failures with ErrTransient.
func (db *DB) wrap(base, err error) error {
	if db.classify(err) == Retryable {
		return fmt.Errorf("%w: %w: %w", ErrTransient, base, err)
	}
	return fmt.Errorf("%w: %w", base, err)
}
