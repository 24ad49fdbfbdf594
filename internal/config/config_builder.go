package config

import (
	"errors"
	"fmt"

	"dario.cat/mergo"
)

// configBuilder collects partial configs in priority order. mergo only fills
// zero fields of the destination, so the first config to set a field wins.
type configBuilder struct {
	configs []*StructuredConfig
	err     error
}

func newConfigBuilder() *configBuilder {
	return &configBuilder{
		configs: make([]*StructuredConfig, 0, 4),
	}
}

func (b *configBuilder) build() (*StructuredConfig, error) {
	if b.err != nil {
		return nil, fmt.Errorf("error occured during building config: %w", b.err)
	}

	merged := new(StructuredConfig)
	for _, cfg := range b.configs {
		if err := mergo.Merge(merged, cfg); err != nil {
			return nil, fmt.Errorf("error merging configs: %w", err)
		}
	}

	return merged, nil
}

// add appends cfg as the next source, or records err against source.
func (b *configBuilder) add(source string, cfg *StructuredConfig, err error) *configBuilder {
	if err != nil {
		b.err = errors.Join(b.err, fmt.Errorf("%s: %w", source, err))
		return b
	}
	b.configs = append(b.configs, cfg)
	return b
}

func (b *configBuilder) withFlags(args []string) *configBuilder {
	cfg, err := parseFlags(args)
	return b.add("flags", cfg, err)
}

func (b *configBuilder) withEnv() *configBuilder {
	cfg := new(StructuredConfig)
	return b.add("env", cfg, parseEnv(cfg))
}

// withJSON reads the file named by the highest priority source that names
// one. Without such a source it adds nothing.
func (b *configBuilder) withJSON() *configBuilder {
	path := b.jsonPath()
	if path == "" {
		return b
	}

	cfg, err := parseJSON(path)
	return b.add("json "+path, cfg, err)
}

func (b *configBuilder) withDefaults() *configBuilder {
	return b.add("defaults", defaultConfig(), nil)
}

func (b *configBuilder) jsonPath() string {
	for _, cfg := range b.configs {
		if cfg.JSONFilePath != "" {
			return cfg.JSONFilePath
		}
	}
	return ""
}
