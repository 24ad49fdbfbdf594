package utils

import "github.com/google/uuid"

// IntentIDGenerator produces time-ordered identifiers for local intents,
// such as "vote-01923f5e-...". An empty prefix yields the bare UUID.
type IntentIDGenerator struct {
	prefix string
}

// NewIntentIDGenerator returns a generator whose ids start with prefix.
func NewIntentIDGenerator(prefix string) *IntentIDGenerator {
	return &IntentIDGenerator{prefix: prefix}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4 when the
// clock source fails.
func (g *IntentIDGenerator) Generate() string {
	id := uuid.NewString()
	if v7, err := uuid.NewV7(); err == nil {
		id = v7.String()
	}

	if g.prefix == "" {
		return id
	}
	return g.prefix + "-" + id
}
