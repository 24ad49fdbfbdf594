// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package server

import "errors"

var (
	// ErrNoAddress is returned when a server is requested without a listen
	// address.
	ErrNoAddress = errors.New("no listen address configured")
)
