package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "gcs", cfg.Storage.Provider)
		assert.Equal(t, "localhost:4443", cfg.Storage.Endpoint)
		assert.True(t, cfg.Storage.Anonymous)
		assert.Equal(t, "my-bucket", cfg.Storage.Bucket)
		assert.Equal(t, 2, cfg.Storage.Retry.MaxErrors)
		assert.Equal(t, "always", cfg.Storage.Retry.Policy)
		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, "info", cfg.Log.Level)
	})

	t.Run("EnvOverrides", func(t *testing.T) {
		t.Setenv("STORAGE_ENDPOINT", "localhost:8080")
		t.Setenv("STORAGE_RETRY_MAX_ERRORS", "5")
		t.Setenv("STORAGE_PROVIDER", "s3")

		cfg, err := LoadConfig(t.TempDir())
		require.NoError(t, err)
		assert.Equal(t, "localhost:8080", cfg.Storage.Endpoint)
		assert.Equal(t, 5, cfg.Storage.Retry.MaxErrors)
		assert.Equal(t, "s3", cfg.Storage.Provider)
	})

	t.Run("DotEnvFile", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("STORAGE_BUCKET=from-dotenv\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("STORAGE_BUCKET") })

		cfg, err := LoadConfig(dir)
		require.NoError(t, err)
		assert.Equal(t, "from-dotenv", cfg.Storage.Bucket)
	})

	t.Run("InvalidProvider", func(t *testing.T) {
		t.Setenv("STORAGE_PROVIDER", "azure")

		cfg, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "Provider")
	})

	t.Run("InvalidRetryPolicy", func(t *testing.T) {
		t.Setenv("STORAGE_RETRY_POLICY", "sometimes")

		_, err := LoadConfig(t.TempDir())
		assert.Error(t, err)
	})
}
