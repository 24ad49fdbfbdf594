// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
)

// parseEnv populates cfg from the process environment.
func parseEnv(cfg *StructuredConfig) error {
	return parseEnvFrom(cfg, env.ToMap(os.Environ()))
}

// parseEnvFrom populates cfg from environ using the env and envPrefix struct
// tags. Unset variables leave their fields zero so lower priority sources
// can fill them.
func parseEnvFrom(cfg *StructuredConfig, environ map[string]string) error {
	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}
	return nil
}
