package store

import "errors"

// Sentinel errors returned by credential stores. Callers should use
// [errors.Is] to match against these values.
var (
	// ErrSessionNotFound is returned by Get when no session token is stored.
	ErrSessionNotFound = errors.New("local session not found")

	// ErrUnknownDriver is returned when the configured storage driver is
	// neither "sqlite" nor "file".
	ErrUnknownDriver = errors.New("unknown storage driver")
)

// Low-level database operation errors, wrapped together with the driver
// error by the SQLite backend.
var (
	// ErrBuildingSQLQuery is returned when constructing a SQL query fails.
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing an INSERT or DELETE
	// fails.
	ErrExecutingStatement = errors.New("failed to executing statement")
)
