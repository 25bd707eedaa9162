// Package cmd implements the stash CLI commands.
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/store"
)

var (
	flagDBPath  string
	flagCountry string
	flagQuiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "stash",
	Short: "Personal savings autopilot",
	Long:  "Turn everyday spending into automatic saving: allocations, vaults, transfers, budgets.",
	RunE:  runHealth,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", config.DBPath(), "Database path")
	rootCmd.PersistentFlags().StringVarP(&flagCountry, "country", "c", "", "Override country code for norms")
	rootCmd.PersistentFlags().BoolVarP(&flagQuiet, "quiet", "q", false, "Suppress progress output")
}

// openStore is the shared open path used by all commands.
func openStore() (*store.Store, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		cfg = config.DefaultConfig()
	}
	st, err := store.Open(flagDBPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("opening store: %w", err)
	}
	return st, cfg, nil
}

// loadProfile fetches the stored profile and the norms for its country.
// The country flag wins over the profile's own code.
func loadProfile(st *store.Store, cfg config.Config) (model.Profile, config.CountryNorms, error) {
	p, found, err := st.Profile()
	if err != nil {
		return model.Profile{}, config.CountryNorms{}, err
	}
	if !found {
		return model.Profile{}, config.CountryNorms{},
			fmt.Errorf("no profile yet; run `stash setup` first")
	}

	code := p.CountryCode
	if code == "" {
		code = cfg.General.CountryCode
	}
	if flagCountry != "" {
		code = flagCountry
	}
	norms, _ := config.LookupNorms(code)
	return p, norms, nil
}

// parseMoney converts a dollar string like "12.34" into integer cents.
func parseMoney(s string) (int64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	cents := d.Mul(decimal.NewFromInt(100)).Round(0)
	if !cents.IsInteger() || cents.Sign() < 0 {
		return 0, fmt.Errorf("invalid amount %q", s)
	}
	return cents.IntPart(), nil
}

// parseDate accepts YYYY-MM-DD, defaulting empty input to now.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return t, nil
}

func currencySymbol(cfg config.Config) string {
	if cfg.General.CurrencySymbol != "" {
		return cfg.General.CurrencySymbol
	}
	return "$"
}
