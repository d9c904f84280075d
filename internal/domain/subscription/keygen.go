package subscription

import (
	"context"
	"crypto/rand"
	"encoding/base64"

	"github.com/storekit/backend/internal/domain/shared"
)

const (
	// apiKeyEntropyBytes is the amount of entropy drawn per key. 48 bytes
	// encode to 64 URL-safe characters, which fits the api_key column.
	apiKeyEntropyBytes = 48

	// maxGenerateAttempts bounds the uniqueness retry loop. Exhausting it
	// implies a broken entropy source or a saturated key space, not a
	// transient condition worth retrying from the caller.
	maxGenerateAttempts = 10
)

// ErrKeyGenerationExhausted is returned when repeated generation attempts all
// collided with existing keys. Fatal and alerting-worthy, never user-retryable.
var ErrKeyGenerationExhausted = shared.NewDomainError("KEY_GENERATION_EXHAUSTED", "Failed to generate a unique API key after multiple attempts")

// KeyTakenFunc reports whether a candidate key is already assigned.
type KeyTakenFunc func(ctx context.Context, key string) (bool, error)

// KeyGenerator produces cryptographically unique, URL-safe API keys.
type KeyGenerator struct{}

// NewKeyGenerator creates a new key generator
func NewKeyGenerator() *KeyGenerator {
	return &KeyGenerator{}
}

// Generate returns a high-entropy URL-safe token.
func (g *KeyGenerator) Generate() (string, error) {
	buf := make([]byte, apiKeyEntropyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", shared.NewDomainError("KEY_GENERATION_FAILED", "Failed to read random bytes for API key")
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GenerateUnique generates a key that satisfies the uniqueness predicate,
// retrying up to the attempt bound.
func (g *KeyGenerator) GenerateUnique(ctx context.Context, taken KeyTakenFunc) (string, error) {
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		key, err := g.Generate()
		if err != nil {
			return "", err
		}

		exists, err := taken(ctx, key)
		if err != nil {
			return "", err
		}
		if !exists {
			return key, nil
		}
	}
	return "", ErrKeyGenerationExhausted
}
