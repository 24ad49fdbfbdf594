// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"time"

	sq "github.com/Masterminds/squirrel"
)

const credentialsTable = "credentials"

// sqlite understands "?" placeholders only.
var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

func getCredentialQuery(name string) (string, []any, error) {
	return builder.
		Select("value").
		From(credentialsTable).
		Where(sq.Eq{"name": name}).
		Limit(1).
		ToSql()
}

func upsertCredentialQuery(name, value string, at time.Time) (string, []any, error) {
	return builder.
		Insert(credentialsTable).
		Columns("name", "value", "updated_at").
		Values(name, value, at).
		Suffix("ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at").
		ToSql()
}

func deleteCredentialQuery(name string) (string, []any, error) {
	return builder.
		Delete(credentialsTable).
		Where(sq.Eq{"name": name}).
		ToSql()
}
