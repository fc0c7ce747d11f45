package database

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/bangladiet/backend/config"
	"github.com/pageza/bangladiet/backend/internal/models"
)

func sqliteConfig(t *testing.T) *config.Config {
	return &config.Config{
		Environment: config.Test,
		DBDriver:    config.DriverSQLite,
		DBName:      filepath.Join(t.TempDir(), "app.db"),
	}
}

func TestOpenSQLiteAndMigrate(t *testing.T) {
	db, err := Open(context.Background(), sqliteConfig(t))
	require.NoError(t, err)

	require.NoError(t, RunMigrations(db, "does-not-matter"))
	for _, table := range []string{"users", "food_log_entries", "daily_nutrition_totals"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}

	user := &models.User{Name: "Test User", Email: "test@example.com", PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	assert.NotZero(t, user.ID)
}

func TestDialectorRejectsUnknownDriver(t *testing.T) {
	_, err := Dialector(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestDialectorNames(t *testing.T) {
	for driver, want := range map[string]string{
		config.DriverPostgres: "postgres",
		config.DriverMySQL:    "mysql",
		config.DriverSQLite:   "sqlite",
	} {
		d, err := Dialector(&config.Config{DBDriver: driver, DBName: "x"})
		require.NoError(t, err)
		assert.Equal(t, want, d.Name())
	}
}

func TestUpMigrationsOrder(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"0002_b.up.sql", "0001_a.up.sql", "0001_a.down.sql", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("SELECT 1;"), 0o600))
	}

	names, err := upMigrations(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"0001_a.up.sql", "0002_b.up.sql"}, names)
}
