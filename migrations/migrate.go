// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the SQL schema of the client's local credential
// database and applies it with goose.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/pressly/goose/v3"
)

//go:embed *.sql
var embedMigrations embed.FS

// Migrate brings the SQLite schema behind db up to date and returns the
// resulting schema version.
func Migrate(ctx context.Context, db *sql.DB) (int64, error) {
	if db == nil {
		return 0, errors.New("migration error: nil database handle")
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, embedMigrations)
	if err != nil {
		return 0, fmt.Errorf("migration error creating provider: %w", err)
	}

	if _, err = provider.Up(ctx); err != nil {
		return 0, fmt.Errorf("migration error: %w", err)
	}

	version, err := provider.GetDBVersion(ctx)
	if err != nil {
		return 0, fmt.Errorf("migration error reading version: %w", err)
	}
	return version, nil
}
