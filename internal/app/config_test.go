package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
  admin_ids: [1000, 2000]
shop:
  delivery_fee: 120
database:
  host: localhost
  name: snackbot
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []int64{1000, 2000}, cfg.Core.Telegram.AdminIDs)
	assert.Equal(t, 120, cfg.Shop.DeliveryFee)
	assert.Equal(t, "longpoll", cfg.Core.Telegram.RunMode)
}

func TestLoadConfigDefaultFee(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
  admin_ids: [1000]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, defaultDeliveryFee, cfg.Shop.DeliveryFee)
}

func TestLoadConfigRequiresAdmins(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin_ids")
}

func TestLoadConfigRejectsNegativeFee(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "test-token"
  admin_ids: [1000]
shop:
  delivery_fee: -1
`)

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "delivery_fee")
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
