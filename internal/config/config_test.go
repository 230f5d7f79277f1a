package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DB.Host)
	assert.Equal(t, 5003, cfg.Order.Port)
	assert.Equal(t, "http://localhost:5002", cfg.Order.CatalogURL)
	assert.Equal(t, "http://localhost:5004", cfg.Order.DirectoryURL)
	assert.Equal(t, 5002, cfg.Product.Port)
	assert.Equal(t, 5004, cfg.Customer.Port)
	assert.Equal(t, "smtp.gmail.com", cfg.Mail.Host)
}

func TestLoadConfigPartialFileFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
order_service:
  port: 8080
  catalog_url: http://catalog:5002
  directory_url: http://directory:5004
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Order.Port)
	assert.Equal(t, "http://catalog:5002", cfg.Order.CatalogURL)

	// Sections the file omits still come back populated.
	require.NotNil(t, cfg.DB)
	assert.Equal(t, "localhost", cfg.DB.Host)
	require.NotNil(t, cfg.RMQ)
	assert.Equal(t, "guest", cfg.RMQ.User)
	require.NotNil(t, cfg.Mail)
}

func TestLoadConfigEnvFallback(t *testing.T) {
	t.Setenv("ORDER_SERVICE_PORT", "9090")
	t.Setenv("PRODUCT_SERVICE_URL", "http://catalog.internal")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Order.Port)
	assert.Equal(t, "http://catalog.internal", cfg.Order.CatalogURL)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("order_service: ["), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}
