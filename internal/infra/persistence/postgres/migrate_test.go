package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"handly/internal/errors"
	"handly/internal/infra/persistence/migrations"
)

func stubGooseUp(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()

	orig := gooseUpContext
	gooseUpContext = fn
	t.Cleanup(func() { gooseUpContext = orig })
}

func TestRunMigrations(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	t.Run("applies from embedded root", func(t *testing.T) {
		var gotDir string
		stubGooseUp(t, func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
			gotDir = dir

			return nil
		})

		require.NoError(t, RunMigrations(context.Background(), sqlDB))
		assert.Equal(t, ".", gotDir)
	})

	t.Run("wraps failures", func(t *testing.T) {
		stubGooseUp(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
			return errors.New("boom")
		})

		err := RunMigrations(context.Background(), sqlDB)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to run migrations")
	})
}

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.Migrations.ReadDir(".")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_users.sql", entries[0].Name())
}
