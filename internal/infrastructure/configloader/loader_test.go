package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  port: "8080"
logging:
  level: "debug"
rpc:
  infuraKey: "file-key"
  confirmTimeoutSeconds: 120
dataApi:
  baseURL: "https://example.com/api"
  apiKey: "data-key"
gas:
  defaultGasLimit: 30000
session:
  ipfsGateway: "gateway.example"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "file-key", cfg.RPC.InfuraKey)
	assert.Equal(t, 120, cfg.RPC.ConfirmTimeoutSeconds)
	assert.Equal(t, "https://example.com/api", cfg.DataAPI.BaseURL)
	assert.Equal(t, uint64(30000), cfg.Gas.DefaultGasLimit)
	assert.Equal(t, "gateway.example", cfg.Session.IPFSGateway)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, "server: {}\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 90, cfg.RPC.ConfirmTimeoutSeconds)
	assert.Equal(t, 10, cfg.RPC.RateLimit)
	assert.Equal(t, "https://deep-index.moralis.io/api/v2.2", cfg.DataAPI.BaseURL)
	assert.Equal(t, "data/cryptoicons", cfg.Logos.Directory)
	assert.Equal(t, uint64(21000), cfg.Gas.DefaultGasLimit)
	assert.Equal(t, 10, cfg.Gas.PollIntervalSeconds)
	assert.Equal(t, 4, cfg.Session.RefreshDelaySeconds)
	assert.Equal(t, "ipfs.io", cfg.Session.IPFSGateway)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("INFURA_API_KEY", "env-infura")
	t.Setenv("DATA_API_KEY", "env-data")

	path := writeConfig(t, `
rpc:
  infuraKey: "file-key"
dataApi:
  apiKey: "file-key"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-infura", cfg.RPC.InfuraKey)
	assert.Equal(t, "env-data", cfg.DataAPI.APIKey)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := writeConfig(t, "server: [not a map\n")
	_, err := Load(path)
	assert.Error(t, err)
}
