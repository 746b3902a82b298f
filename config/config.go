package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// DefaultChainID is the local development network (hardhat/ganache default).
const DefaultChainID = 1337

// Config captures the runtime configuration of the blocktrack daemon.
type Config struct {
	ListenAddress              string `toml:"ListenAddress"`
	DataDir                    string `toml:"DataDir"`
	ProviderURL                string `toml:"ProviderURL"`
	ExpectedChainID            uint64 `toml:"ExpectedChainID"`
	ProductRegistryAddress     string `toml:"ProductRegistryAddress"`
	ParticipantRegistryAddress string `toml:"ParticipantRegistryAddress"`
	AuthToken                  string `toml:"AuthToken"`
	Env                        string `toml:"Env"`
	LogLevel                   string `toml:"LogLevel"`
	ProviderPollSeconds        int    `toml:"ProviderPollSeconds"`
}

// Load loads the configuration from the given path, creating a default file
// when none exists.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createDefault(path)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, err
	}
	applyDefaults(cfg)
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.ListenAddress) == "" {
		cfg.ListenAddress = ":8085"
	}
	if strings.TrimSpace(cfg.DataDir) == "" {
		cfg.DataDir = "./blocktrack-data"
	}
	if cfg.ExpectedChainID == 0 {
		cfg.ExpectedChainID = DefaultChainID
	}
	if strings.TrimSpace(cfg.LogLevel) == "" {
		cfg.LogLevel = "info"
	}
	if cfg.ProviderPollSeconds <= 0 {
		cfg.ProviderPollSeconds = 5
	}
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.ProviderURL) == "" {
		return fmt.Errorf("config: ProviderURL is required")
	}
	return nil
}

// ProviderPollInterval returns the provider poll cadence as a duration.
func (c *Config) ProviderPollInterval() time.Duration {
	return time.Duration(c.ProviderPollSeconds) * time.Second
}

// createDefault creates and saves a default configuration file.
func createDefault(path string) (*Config, error) {
	cfg := &Config{
		ListenAddress:       ":8085",
		DataDir:             "./blocktrack-data",
		ProviderURL:         "http://127.0.0.1:8545",
		ExpectedChainID:     DefaultChainID,
		Env:                 "local",
		LogLevel:            "info",
		ProviderPollSeconds: 5,
	}

	if err := persist(path, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func persist(path string, cfg *Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return toml.NewEncoder(f).Encode(cfg)
}
