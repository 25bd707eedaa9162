package cmd

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/vault"
)

var (
	flagIncomeDate string
	flagIncomeNote string
	flagIncomeSkim float64
)

var incomeCmd = &cobra.Command{
	Use:   "income <amount>",
	Short: "Log income and skim the save-rate share into vaults",
	Args:  cobra.ExactArgs(1),
	RunE:  runIncome,
}

func init() {
	incomeCmd.Flags().StringVar(&flagIncomeDate, "date", "", "Income date (YYYY-MM-DD, default today)")
	incomeCmd.Flags().StringVar(&flagIncomeNote, "note", "", "Income note")
	incomeCmd.Flags().Float64Var(&flagIncomeSkim, "skim", -1, "Override the save rate for this income (0-1)")
	rootCmd.AddCommand(incomeCmd)
}

func runIncome(_ *cobra.Command, args []string) error {
	amountCents, err := parseMoney(args[0])
	if err != nil {
		return err
	}
	if amountCents <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	date, err := parseDate(flagIncomeDate)
	if err != nil {
		return err
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	profile, _, err := loadProfile(st, cfg)
	if err != nil {
		return err
	}

	rate := profile.SaveRate
	if flagIncomeSkim >= 0 {
		rate = flagIncomeSkim
	}
	if rate > 1 {
		rate = 1
	}
	skimCents := int64(math.Round(float64(amountCents) * rate))

	income := model.Income{
		ID:          uuid.NewString(),
		AmountCents: amountCents,
		SkimCents:   skimCents,
		Date:        date,
		Note:        flagIncomeNote,
	}
	if err := st.SaveIncome(income); err != nil {
		return fmt.Errorf("saving income: %w", err)
	}

	symbol := currencySymbol(cfg)
	fmt.Println()
	fmt.Printf("  Logged income %s", cli.FormatMoney(amountCents, symbol))
	if skimCents <= 0 {
		fmt.Println()
		fmt.Println("  Nothing skimmed (save rate is zero).")
		return nil
	}
	fmt.Printf(", skimming %s (%s)\n", cli.FormatMoney(skimCents, symbol), cli.FormatPercent(rate))

	vaults, err := st.ListVaults(false)
	if err != nil {
		return err
	}
	dist := vault.Distribute(skimCents, vaults, time.Now())
	contribs := vault.AsContributions(dist, model.SourceIncome, date)
	if err := st.ApplyContributions(contribs); err != nil {
		return fmt.Errorf("applying contributions: %w", err)
	}

	if len(contribs) > 0 {
		byID := make(map[string]model.SmartVault, len(vaults))
		for _, v := range vaults {
			byID[v.ID] = v
		}
		rows := make([][]string, 0, len(contribs))
		for _, c := range contribs {
			rows = append(rows, []string{byID[c.VaultID].Name, cli.FormatMoney(c.AmountCents, symbol)})
		}
		fmt.Println()
		fmt.Print(cli.RenderTable(cli.Table{
			Title:   "Distributed",
			Headers: []string{"Vault", "Amount"},
			Rows:    rows,
		}))
	}
	if dist.UnallocatedCents > 0 {
		fmt.Printf("  %s left unallocated (no vault can take it)\n",
			cli.FormatMoney(dist.UnallocatedCents, symbol))
	}
	return nil
}
