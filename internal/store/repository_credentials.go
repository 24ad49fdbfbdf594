package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-feed-client/internal/logger"
)

type sqliteCredentialStore struct {
	db     *DB
	name   string
	now    func() time.Time
	logger *logger.Logger
}

// NewSQLiteCredentialStore returns a [CredentialStore] backed by the
// credentials table of db. The schema must already be migrated.
func NewSQLiteCredentialStore(db *DB, logger *logger.Logger) CredentialStore {
	logger.Debug().Msg("sqlite credential store created")
	return &sqliteCredentialStore{
		db:     db,
		name:   SessionTokenName,
		now:    time.Now,
		logger: logger,
	}
}

func (s *sqliteCredentialStore) Get(ctx context.Context) (string, error) {
	query, args, err := getCredentialQuery(s.name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	var token string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&token)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return "", ErrSessionNotFound
	case err != nil:
		s.logger.Err(err).Str("func", "*sqliteCredentialStore.Get").Msg("error reading session token")
		return "", fmt.Errorf("%w: %v", ErrExecutingQuery, err)
	case token == "":
		return "", ErrSessionNotFound
	}

	return token, nil
}

func (s *sqliteCredentialStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}

	query, args, err := upsertCredentialQuery(s.name, token, s.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteCredentialStore.Set").Msg("error saving session token")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}

func (s *sqliteCredentialStore) Clear(ctx context.Context) error {
	query, args, err := deleteCredentialQuery(s.name)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBuildingSQLQuery, err)
	}

	if _, err = s.db.ExecContext(ctx, query, args...); err != nil {
		s.logger.Err(err).Str("func", "*sqliteCredentialStore.Clear").Msg("error removing session token")
		return fmt.Errorf("%w: %v", ErrExecutingStatement, err)
	}

	return nil
}
