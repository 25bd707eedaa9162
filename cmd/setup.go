package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "First-time setup wizard",
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(_ *cobra.Command, _ []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, _ := config.Load()

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	profile, _, _ := st.Profile()

	fmt.Println()
	fmt.Println("  Welcome to stash!")
	fmt.Println()

	// 1. Country
	fmt.Println("  1. Country code (for tax and savings norms)")
	fmt.Printf("     Known: %s\n", strings.Join(config.Countries(), ", "))
	if profile.CountryCode != "" {
		fmt.Printf("     Current: %s\n", profile.CountryCode)
	}
	fmt.Print("     > ")
	country, _ := reader.ReadString('\n')
	country = config.NormalizeCountryCode(country)
	if country != "" {
		profile.CountryCode = country
		cfg.General.CountryCode = country
	} else if profile.CountryCode == "" {
		profile.CountryCode = "US"
	}
	fmt.Println()

	// 2. Monthly income
	fmt.Println("  2. Monthly net income (e.g. 4500)")
	fmt.Print("     > ")
	if cents, ok := readMoney(reader); ok {
		profile.MonthlyIncomeCents = cents
	}
	fmt.Println()

	// 3. Monthly expenses
	fmt.Println("  3. Typical monthly expenses")
	fmt.Print("     > ")
	if cents, ok := readMoney(reader); ok {
		profile.MonthlyExpensesCents = cents
	}
	fmt.Println()

	// 4. Emergency balance
	fmt.Println("  4. Current emergency fund balance")
	fmt.Print("     > ")
	if cents, ok := readMoney(reader); ok {
		profile.EmergencyBalanceCents = cents
	}
	fmt.Println()

	// 5. Risk appetite
	fmt.Println("  5. Investment risk appetite")
	fmt.Println("     (1) Conservative")
	fmt.Println("     (2) Balanced [default]")
	fmt.Println("     (3) Aggressive")
	fmt.Print("     > ")
	choice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(choice) {
	case "1":
		profile.Risk = model.RiskConservative
	case "3":
		profile.Risk = model.RiskAggressive
	default:
		profile.Risk = model.RiskBalanced
	}
	fmt.Println()

	// 6. Age
	fmt.Println("  6. Age (blank to skip)")
	fmt.Print("     > ")
	ageStr, _ := reader.ReadString('\n')
	if age, err := strconv.Atoi(strings.TrimSpace(ageStr)); err == nil && age > 0 {
		profile.Age = age
	}
	fmt.Println()

	// 7. Debts
	fmt.Println("  7. Outstanding debt (blank or 0 for none)")
	fmt.Print("     > ")
	if cents, ok := readMoney(reader); ok && cents > 0 {
		profile.HasDebts = true
		profile.DebtCents = cents
	} else {
		profile.HasDebts = false
		profile.DebtCents = 0
	}
	fmt.Println()

	// 8. Save rate
	fmt.Println("  8. Save rate: share of each paycheck skimmed into vaults")
	fmt.Println("     (e.g. 0.15 for 15%; blank for 0.15)")
	fmt.Print("     > ")
	rateStr, _ := reader.ReadString('\n')
	if rate, err := strconv.ParseFloat(strings.TrimSpace(rateStr), 64); err == nil && rate >= 0 && rate <= 1 {
		profile.SaveRate = rate
	} else if profile.SaveRate == 0 {
		profile.SaveRate = 0.15
	}
	fmt.Println()

	// 9. Saving tax
	fmt.Println("  9. Saving tax: share of each expense skimmed into vaults")
	fmt.Println("     (e.g. 0.02 for 2%; blank or 0 for none)")
	fmt.Print("     > ")
	taxStr, _ := reader.ReadString('\n')
	if rate, err := strconv.ParseFloat(strings.TrimSpace(taxStr), 64); err == nil && rate >= 0 && rate < 1 {
		profile.SavingTaxRate = rate
	}
	fmt.Println()

	// 10. Theme
	fmt.Println("  10. Color theme")
	fmt.Println("     (1) Flexoki Dark [default]")
	fmt.Println("     (2) Catppuccin Mocha")
	fmt.Println("     (3) Terminal (ANSI 16)")
	fmt.Print("     > ")
	themeChoice, _ := reader.ReadString('\n')
	switch strings.TrimSpace(themeChoice) {
	case "2":
		cfg.Appearance.Theme = "catppuccin-mocha"
	case "3":
		cfg.Appearance.Theme = "terminal"
	default:
		cfg.Appearance.Theme = "flexoki-dark"
	}

	profile.Employed = profile.MonthlyIncomeCents > 0

	if err := st.SaveProfile(profile); err != nil {
		return fmt.Errorf("saving profile: %w", err)
	}
	if err := config.Save(cfg); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Println()
	fmt.Printf("  Saved profile and config (%s)\n", config.ConfigPath())
	fmt.Println("  Try `stash recommend` next, or `stash vaults add` to create a vault.")
	fmt.Println()
	return nil
}

func readMoney(reader *bufio.Reader) (int64, bool) {
	line, _ := reader.ReadString('\n')
	line = strings.TrimSpace(line)
	if line == "" {
		return 0, false
	}
	cents, err := parseMoney(line)
	if err != nil {
		return 0, false
	}
	return cents, true
}
