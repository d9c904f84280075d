package migration

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readMigration(t *testing.T, name string) string {
	t.Helper()
	path := filepath.Join("..", "..", "..", "migrations", name)
	data, err := os.ReadFile(path)
	require.NoError(t, err, "migration file must exist: %s", name)
	return string(data)
}

// Deleting an account must take its subscription with it, and deleting a
// subscription must take every row the tenant owns. Category parent and
// product category links stay restrictive because the services guard those
// deletes explicitly.
func TestOwnershipCascades(t *testing.T) {
	t.Run("subscription cascades from account", func(t *testing.T) {
		sql := readMigration(t, "20250601000003_create_subscriptions.up.sql")
		assert.Contains(t, sql, "REFERENCES accounts (id) ON DELETE CASCADE")
	})

	t.Run("tenant rows cascade from subscription", func(t *testing.T) {
		for _, name := range []string{
			"20250601000004_create_catalog.up.sql",
			"20250601000005_create_orders.up.sql",
		} {
			sql := readMigration(t, name)
			for _, line := range strings.Split(sql, "\n") {
				if strings.Contains(line, "REFERENCES subscriptions (id)") {
					assert.Contains(t, line, "ON DELETE CASCADE", "in %s: %s", name, line)
				}
			}
		}
	})

	t.Run("category links stay restrictive", func(t *testing.T) {
		sql := readMigration(t, "20250601000004_create_catalog.up.sql")
		assert.Contains(t, sql, "parent_id UUID REFERENCES categories (id),")
		assert.Contains(t, sql, "category_id UUID NOT NULL REFERENCES categories (id),")
	})
}
