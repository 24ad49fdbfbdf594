package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-feed-client/internal/config"
	"github.com/MKhiriev/go-feed-client/internal/logger"
)

// Supported values of [config.ClientStorage.Driver].
const (
	DriverSQLite = "sqlite"
	DriverFile   = "file"
)

// NewCredentialStore initialises the credential store selected by
// cfg.Driver. For the SQLite driver it opens the database file at
// cfg.DB.DSN, creating it if it does not exist, and runs pending schema
// migrations. The returned close function releases the underlying resources
// and is never nil.
func NewCredentialStore(ctx context.Context, cfg config.ClientStorage, logger *logger.Logger) (CredentialStore, func() error, error) {
	logger.Info().Str("driver", cfg.Driver).Msg("creating credential store...")

	switch cfg.Driver {
	case DriverSQLite, "":
		db, err := NewConnectSQLite(ctx, cfg.DB, logger)
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite connection error: %w", err)
		}

		if err = db.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migration failed: %w", err)
		}

		return NewSQLiteCredentialStore(db, logger), db.Close, nil

	case DriverFile:
		s, err := NewFileCredentialStore(cfg.File.Path)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	}

	return nil, nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
