package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-feed-client/internal/logger"
	"github.com/MKhiriev/go-feed-client/migrations"
)

// DB wraps the SQLite connection pool of the client.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// Migrate applies the embedded schema migrations.
func (db *DB) Migrate(ctx context.Context) error {
	version, err := migrations.Migrate(ctx, db.DB)
	if err != nil {
		db.logger.Err(err).Str("func", "*DB.Migrate").Msg("error migrating credential database")
		return fmt.Errorf("migrate credential database: %w", err)
	}

	db.logger.Debug().Int64("version", version).Msg("credential database schema is up to date")
	return nil
}
