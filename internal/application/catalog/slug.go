package catalog

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/storekit/backend/internal/domain/shared"
)

// slugSuffixBytes gives a 6-hex-char suffix when a slug collides
const slugSuffixBytes = 3

// maxSlugAttempts bounds suffix retries before the request fails
const maxSlugAttempts = 10

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9]+`)
	slugEdgeHyphens  = regexp.MustCompile(`^-+|-+$`)
)

// Slugify converts a product name into a URL-safe slug
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugInvalidChars.ReplaceAllString(slug, "-")
	slug = slugEdgeHyphens.ReplaceAllString(slug, "")
	if slug == "" {
		slug = "product"
	}
	return slug
}

// slugTakenFunc reports whether a slug is already in use within a subscription
type slugTakenFunc func(ctx context.Context, subscriptionID uuid.UUID, slug string) (bool, error)

// uniqueSlug derives a slug from the name. On collision it appends a short
// random suffix and retries.
func uniqueSlug(ctx context.Context, subscriptionID uuid.UUID, name string, taken slugTakenFunc) (string, error) {
	base := Slugify(name)

	slug := base
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		inUse, err := taken(ctx, subscriptionID, slug)
		if err != nil {
			return "", err
		}
		if !inUse {
			return slug, nil
		}

		suffix := make([]byte, slugSuffixBytes)
		if _, err := rand.Read(suffix); err != nil {
			return "", shared.NewDomainError("SLUG_GENERATION_FAILED", "Failed to generate product slug")
		}
		slug = base + "-" + hex.EncodeToString(suffix)
	}

	return "", shared.NewDomainError("SLUG_GENERATION_FAILED", "Failed to find a free product slug")
}
