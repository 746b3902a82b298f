package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultChainID), cfg.ExpectedChainID)
	require.Equal(t, ":8085", cfg.ListenAddress)

	_, err = os.Stat(path)
	require.NoError(t, err, "default config file not written")

	// Reloading the written default must round-trip.
	again, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.ProviderURL, again.ProviderURL)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "ProviderURL = \"http://127.0.0.1:8545\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, uint64(DefaultChainID), cfg.ExpectedChainID)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 5*time.Second, cfg.ProviderPollInterval())
}

func TestLoadRequiresProviderURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("ListenAddress = \":9000\"\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
