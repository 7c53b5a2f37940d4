package store

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrations(t *testing.T) {
	files, err := fs.Glob(migrationsFS, "migrations/*.sql")
	require.NoError(t, err)
	require.Len(t, files, 4)

	var all strings.Builder
	for _, name := range files {
		data, err := migrationsFS.ReadFile(name)
		require.NoError(t, err)
		content := string(data)
		assert.Contains(t, content, "-- +goose Up", name)
		assert.Contains(t, content, "-- +goose Down", name)
		all.WriteString(content)
	}

	checks := []string{
		"CREATE SCHEMA IF NOT EXISTS pawn",
		"CREATE TABLE IF NOT EXISTS pawn.products",
		"CHECK (stock >= 0)",
		"CHECK (status IN ('A', 'I'))",
		"CREATE TABLE IF NOT EXISTS pawn.detail_sales",
		"PRIMARY KEY (invoice_sale_id, line_item_id)",
		"ON DELETE RESTRICT",
		"CHECK (quantity > 0)",
		"payment_id      VARCHAR(20) NOT NULL",
		`line_item_id    VARCHAR(5) COLLATE "C" NOT NULL`,
		`line_item_id        VARCHAR(5) COLLATE "C" NOT NULL`,
		"expertise_level  INTEGER",
		"mgr_id           INTEGER REFERENCES pawn.employees (employee_id)",
		"CREATE TABLE IF NOT EXISTS pawn.pawns",
		"CREATE TABLE IF NOT EXISTS pawn.audit_events",
	}
	for _, sub := range checks {
		assert.Contains(t, all.String(), sub)
	}
}
