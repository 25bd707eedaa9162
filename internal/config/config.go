package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all stash configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Transfer   TransferConfig   `toml:"transfer"`
	Daemon     DaemonConfig     `toml:"daemon"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	CountryCode    string `toml:"country_code"`
	CurrencySymbol string `toml:"currency_symbol"`
	HistoryMonths  int    `toml:"history_months"`
}

// TransferConfig holds smart-transfer batching settings.
type TransferConfig struct {
	MinTransferCents   int64   `toml:"min_transfer_cents"`
	BatchWindowMinutes int     `toml:"batch_window_minutes"`
	ReserveCap         float64 `toml:"reserve_cap"`
}

// DaemonConfig holds background service settings.
type DaemonConfig struct {
	Addr            string `toml:"addr,omitempty"`
	PollIntervalSec int    `toml:"poll_interval_sec"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			CountryCode:    "US",
			CurrencySymbol: "$",
			HistoryMonths:  6,
		},
		Transfer: TransferConfig{
			MinTransferCents:   1000, // $10.00
			BatchWindowMinutes: 3,
			ReserveCap:         0.5,
		},
		Daemon: DaemonConfig{
			PollIntervalSec: 30,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "stash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stash")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "stash")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "stash")
}

// DBPath returns the full path to the sqlite database.
func DBPath() string {
	return filepath.Join(DataDir(), "stash.db")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
