package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show current configuration",
	RunE:  runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

func runConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	fmt.Printf("  Config file: %s\n", config.ConfigPath())
	if config.Exists() {
		fmt.Println("  Status: loaded")
	} else {
		fmt.Println("  Status: using defaults (no config file)")
	}
	fmt.Println()

	fmt.Println("  [General]")
	fmt.Printf("    Country:         %s\n", cfg.General.CountryCode)
	fmt.Printf("    Currency symbol: %s\n", cfg.General.CurrencySymbol)
	fmt.Printf("    History months:  %d\n", cfg.General.HistoryMonths)
	fmt.Println()

	fmt.Println("  [Transfer]")
	fmt.Printf("    Minimum transfer: %s\n",
		cli.FormatMoney(cfg.Transfer.MinTransferCents, cfg.General.CurrencySymbol))
	fmt.Printf("    Batch window:     %dm\n", cfg.Transfer.BatchWindowMinutes)
	fmt.Printf("    Reserve cap:      %s\n", cli.FormatPercent(cfg.Transfer.ReserveCap))
	fmt.Println()

	fmt.Println("  [Daemon]")
	if cfg.Daemon.Addr != "" {
		fmt.Printf("    Address:       %s\n", cfg.Daemon.Addr)
	}
	fmt.Printf("    Poll interval: %ds\n", cfg.Daemon.PollIntervalSec)
	fmt.Println()

	fmt.Println("  [Appearance]")
	fmt.Printf("    Theme: %s\n", cfg.Appearance.Theme)
	fmt.Println()

	fmt.Printf("  Database: %s\n", config.DBPath())
	fmt.Println("  Run `stash setup` to reconfigure.")
	return nil
}
