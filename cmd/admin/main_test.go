package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-gin-gorm-todo/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { purgeYes = false; migrateDown = 0 })
	err := rootCmd.ExecuteContext(context.Background())
	return out.String(), err
}

func setupEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_JWT_SECRET", "cli-secret")
	t.Setenv("APP_DB_DRIVER", "sqlite")
	t.Setenv("APP_DB_DSN", "file:"+filepath.Join(t.TempDir(), "cli.db")+"?_foreign_keys=on")
	t.Setenv("APP_DB_AUTOMIGRATE", "true")
	t.Setenv("APP_LOG_LEVEL", "error")
	t.Setenv("APP_REDIS_ADDR", "")
}

func TestCLI(t *testing.T) {
	setupEnv(t)
	missing := filepath.Join(t.TempDir(), "none.yaml")

	_, err := run(t, "--config", missing, "migrate")
	require.NoError(t, err)

	_, err = run(t, "--config", missing, "token", "ghost@example.com")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = run(t, "--config", missing, "seed", "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = run(t, "--config", missing, "purge-user", "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--yes")

	_, err = run(t, "--config", missing, "purge-user", "ghost", "--yes")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = run(t, "--config", missing, "migrate", "--down", "1")
	require.Error(t, err)
}
