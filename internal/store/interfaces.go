// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package store provides the client's durable credential storage.
//
// The only thing the client persists is the current session token, kept as a
// single named entry ([SessionTokenName]). Two backends are available: an
// SQLite database migrated with goose, and a JSON file. Neither applies any
// expiry logic; a token is valid until the server rejects it.
package store

import (
	"context"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/credential_store_mock.go -package=mock

// SessionTokenName is the key under which the session token is stored.
const SessionTokenName = "SessionToken"

// CredentialStore holds the single opaque session token.
type CredentialStore interface {
	// Get returns the stored token, or [ErrSessionNotFound] when none is
	// stored.
	Get(ctx context.Context) (string, error)

	// Set replaces the stored token. Setting an empty token is equivalent to
	// Clear.
	Set(ctx context.Context, token string) error

	// Clear removes the stored token. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
