package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Mechanical Keyboard", "mechanical-keyboard"},
		{"  USB-C   Hub!  ", "usb-c-hub"},
		{"100% Cotton T-Shirt", "100-cotton-t-shirt"},
		{"---", "product"},
		{"Déjà Vu", "d-j-vu"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.name))
		})
	}
}

func TestUniqueSlug(t *testing.T) {
	ctx := context.Background()
	subscriptionID := uuid.New()

	t.Run("returns base slug when free", func(t *testing.T) {
		taken := func(ctx context.Context, subscriptionID uuid.UUID, slug string) (bool, error) {
			return false, nil
		}

		slug, err := uniqueSlug(ctx, subscriptionID, "Mechanical Keyboard", taken)

		require.NoError(t, err)
		assert.Equal(t, "mechanical-keyboard", slug)
	})

	t.Run("appends suffix on collision", func(t *testing.T) {
		taken := func(ctx context.Context, subscriptionID uuid.UUID, slug string) (bool, error) {
			return slug == "mechanical-keyboard", nil
		}

		slug, err := uniqueSlug(ctx, subscriptionID, "Mechanical Keyboard", taken)

		require.NoError(t, err)
		assert.NotEqual(t, "mechanical-keyboard", slug)
		assert.Regexp(t, `^mechanical-keyboard-[0-9a-f]{6}$`, slug)
	})

	t.Run("gives up when every candidate collides", func(t *testing.T) {
		attempts := 0
		taken := func(ctx context.Context, subscriptionID uuid.UUID, slug string) (bool, error) {
			attempts++
			return true, nil
		}

		_, err := uniqueSlug(ctx, subscriptionID, "Mechanical Keyboard", taken)

		assert.Error(t, err)
		assert.Equal(t, maxSlugAttempts, attempts)
	})
}
