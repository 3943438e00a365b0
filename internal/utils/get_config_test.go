package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigYAMLWithEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("DB_HOST: yaml-host\nDB_NAME: purchases\nAPP_URL: http://yaml.local\n"), 0o600))

	t.Setenv("DB_HOST", "env-host")

	cfg, err := loadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "env-host", cfg.DBHost)
	assert.Equal(t, "purchases", cfg.DBName)
	assert.Equal(t, "http://yaml.local", cfg.AppURL)
	assert.Equal(t, "product-images", cfg.AWSS3Bucket)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoadConfigMissingFileUsesEnvironment(t *testing.T) {
	t.Setenv("AWS_S3_BUCKET", "custom-bucket")
	t.Setenv("DATABASE_URL", "postgres://u:p@db/purchases")

	cfg, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "custom-bucket", cfg.AWSS3Bucket)
	assert.Equal(t, "postgres://u:p@db/purchases", cfg.DatabaseURL)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestGetConfig(t *testing.T) {
	config = Config{DBUser: "tracker", AWSS3Bucket: "product-images"}
	t.Cleanup(func() { config = Config{} })

	assert.Equal(t, "tracker", GetConfig("DB_USER"))
	assert.Equal(t, "product-images", GetConfig("AWS_S3_BUCKET"))
	assert.Equal(t, "", GetConfig("UNKNOWN"))
}
