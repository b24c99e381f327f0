package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dg-does/Drag-Library/internal/config"
	"github.com/dg-does/Drag-Library/internal/lending"
)

// clearEnv makes sure no DRAGLIB_* variable leaks in from the host.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{"DB", "ADDR", "LOG", "IDENTITY_MATCH", "CONDITIONAL_WRITES"} {
		key := config.Prefix + "_" + name
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "draglibrary.sqlite3", cfg.DB)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Empty(t, cfg.Log)
	assert.True(t, cfg.ConditionalWrites)

	m, err := cfg.Identity()
	require.NoError(t, err)
	assert.Equal(t, lending.MatchUserID, m)
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAGLIB_ADDR", "127.0.0.1:9000")
	t.Setenv("DRAGLIB_IDENTITY_MATCH", "display_name")
	t.Setenv("DRAGLIB_CONDITIONAL_WRITES", "false")

	cfg, err := config.Load("")

	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Addr)
	assert.False(t, cfg.ConditionalWrites)
	m, err := cfg.Identity()
	require.NoError(t, err)
	assert.Equal(t, lending.MatchDisplayName, m)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAGLIB_ADDR", ":7000")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DRAGLIB_DB=/tmp/lib.sqlite3\nDRAGLIB_ADDR=:1234\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("DRAGLIB_DB") })

	cfg, err := config.Load(path)

	require.NoError(t, err)
	assert.Equal(t, "/tmp/lib.sqlite3", cfg.DB)
	assert.Equal(t, ":7000", cfg.Addr, "the environment wins over the file")
}

func TestLoadMissingEnvFile(t *testing.T) {
	clearEnv(t)

	_, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))

	assert.NoError(t, err)
}

func TestLoadBadIdentity(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAGLIB_IDENTITY_MATCH", "email")

	_, err := config.Load("")

	assert.Error(t, err)
}

func TestLoadBadBool(t *testing.T) {
	clearEnv(t)
	t.Setenv("DRAGLIB_CONDITIONAL_WRITES", "maybe")

	_, err := config.Load("")

	assert.Error(t, err)
}
