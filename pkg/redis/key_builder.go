package redis

import "fmt"

// KeyBuilder provides environment-aware Redis key building functionality
type KeyBuilder struct {
	prefix string // Environment prefix (staging/prod)
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" {
		prefix = "staging"
	}

	return &KeyBuilder{
		prefix: prefix,
	}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// Team draw key builders
func (kb *KeyBuilder) KeyDrawByID(id int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyDrawByID, id))
}

// KeyDrawsRecent is the recent-draws page for limit cached under generation
func (kb *KeyBuilder) KeyDrawsRecent(generation int64, limit int) string {
	return kb.BuildKey(fmt.Sprintf(KeyDrawsRecent, generation, limit))
}

// KeyDrawsGeneration counts recent-draws invalidations
func (kb *KeyBuilder) KeyDrawsGeneration() string {
	return kb.BuildKey(KeyDrawsGeneration)
}

// KeyDrawsRecentPattern matches every cached recent-draws page
func (kb *KeyBuilder) KeyDrawsRecentPattern() string {
	return kb.BuildKey("draws:recent:*")
}

func (kb *KeyBuilder) KeyDrawIdempotency(key string) string {
	return kb.BuildKey(fmt.Sprintf(KeyDrawIdempotency, key))
}

// Auth key builders
func (kb *KeyBuilder) KeyLoginAttempts(email string) string {
	return kb.BuildKey(fmt.Sprintf(KeyLoginAttempts, email))
}
