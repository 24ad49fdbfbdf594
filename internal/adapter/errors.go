package adapter

import "errors"

// HTTP status sentinels returned by the login fallback. Match with
// [errors.Is]; the response body is wrapped alongside.
var (
	ErrBadRequest          = errors.New("bad request")
	ErrUnauthorized        = errors.New("client unauthorized")
	ErrForbidden           = errors.New("forbidden")
	ErrNotFound            = errors.New("not found")
	ErrConflict            = errors.New("conflict")
	ErrBadGateway          = errors.New("bad gateway")
	ErrInternalServerError = errors.New("internal server error")

	// ErrEmptyResponse is returned when the server answers 2xx without a body.
	ErrEmptyResponse = errors.New("empty response body")
)
