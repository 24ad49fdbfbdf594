package config

import "errors"

// Validation errors returned by [GetClientConfig]. The concrete reason is
// wrapped together with one of these values.
var (
	// ErrInvalidAdapterConfigs reports an unusable server address or timeout.
	ErrInvalidAdapterConfigs = errors.New("invalid adapter configuration")

	// ErrInvalidTransportConfigs reports an unusable reconnect policy.
	ErrInvalidTransportConfigs = errors.New("invalid transport configuration")

	// ErrInvalidStorageConfigs reports an unknown driver or missing location.
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")
)
