package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/allocate"
	"github.com/stash-cli/stash/internal/budget"
	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/recommend"
	"github.com/stash-cli/stash/internal/store"
	"github.com/stash-cli/stash/internal/transfer"
	"github.com/stash-cli/stash/internal/vault"
)

var (
	flagLogDesc        string
	flagLogDate        string
	flagLogTaxIncluded bool
	flagLogTaxRate     float64
	flagLogEmergency   float64
	flagLogInvest      float64
	flagLogFun         float64
	flagLogSafeSplit   float64
)

var logCmd = &cobra.Command{
	Use:   "log <amount> <category>",
	Short: "Log an expense and reserve its savings allocation",
	Args:  cobra.ExactArgs(2),
	RunE:  runLog,
}

func init() {
	logCmd.Flags().StringVar(&flagLogDesc, "desc", "", "Expense description")
	logCmd.Flags().StringVar(&flagLogDate, "date", "", "Expense date (YYYY-MM-DD, default today)")
	logCmd.Flags().BoolVar(&flagLogTaxIncluded, "tax-included", false, "Amount already includes tax")
	logCmd.Flags().Float64Var(&flagLogTaxRate, "tax-rate", 0, "Override income tax rate (0-1)")
	logCmd.Flags().Float64Var(&flagLogEmergency, "emergency", -1, "Manual emergency percentage (0-1)")
	logCmd.Flags().Float64Var(&flagLogInvest, "invest", -1, "Manual invest percentage (0-1)")
	logCmd.Flags().Float64Var(&flagLogFun, "fun", -1, "Manual fun percentage (0-1)")
	logCmd.Flags().Float64Var(&flagLogSafeSplit, "safe-split", -1, "Manual safe share of the invest bucket (0-1)")
	rootCmd.AddCommand(logCmd)
}

func runLog(_ *cobra.Command, args []string) error {
	amountCents, err := parseMoney(args[0])
	if err != nil {
		return err
	}
	category := strings.ToLower(strings.TrimSpace(args[1]))
	if category == "" {
		return fmt.Errorf("category must not be empty")
	}
	date, err := parseDate(flagLogDate)
	if err != nil {
		return err
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	profile, norms, err := loadProfile(st, cfg)
	if err != nil {
		return err
	}

	pcts, manual := manualPercentages()
	if !manual {
		pcts = recommend.Recommend(profile, norms, nil, cfg.Transfer.ReserveCap).Percentages
	}

	expense, err := allocate.Allocate(model.ExpenseInput{
		AmountCents:     amountCents,
		Category:        category,
		Description:     flagLogDesc,
		Date:            date,
		IncludesTax:     flagLogTaxIncluded,
		TaxRateOverride: flagLogTaxRate,
	}, pcts, norms)
	if err != nil {
		return err
	}
	if err := st.SaveExpense(expense); err != nil {
		return fmt.Errorf("saving expense: %w", err)
	}

	// Route the emergency and investment buckets into the transfer
	// accumulator; the fun bucket stays liquid. The whole read-apply-write
	// runs inside one store transaction so concurrent logs cannot clobber
	// each other.
	window := time.Duration(cfg.Transfer.BatchWindowMinutes) * time.Minute
	snap, err := st.UpdateTransferSnapshot(func(snap model.SmartTransferSnapshot) model.SmartTransferSnapshot {
		agg := transfer.New(snap, cfg.Transfer.MinTransferCents, window)
		agg.Add(expense.Breakdown.EmergencyCents, expense.Breakdown.InvestmentCents)
		return agg.Snapshot()
	})
	if err != nil {
		return err
	}

	symbol := currencySymbol(cfg)
	skimCents, err := applySavingTax(st, expense.AmountCents, profile.SavingTaxRate, date)
	if err != nil {
		return err
	}
	b := expense.Breakdown

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("LOGGED  %s  %s", cli.FormatMoney(amountCents, symbol), category)))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bucket", "Reserved"},
		Rows: [][]string{
			{"Emergency", cli.FormatMoney(b.EmergencyCents, symbol)},
			{"Invest (safe)", cli.FormatMoney(b.SafeInvestmentCents, symbol)},
			{"Invest (high-risk)", cli.FormatMoney(b.HighRiskInvestmentCents, symbol)},
			{"Fun", cli.FormatMoney(b.FunCents, symbol)},
			{"---"},
			{"Total", cli.FormatMoney(b.TotalCents(), symbol)},
		},
	}))

	if skimCents > 0 {
		fmt.Printf("  Saving tax: %s skimmed into vaults\n", cli.FormatMoney(skimCents, symbol))
	}

	rec := transfer.New(snap, cfg.Transfer.MinTransferCents, window).Recommendation()
	fmt.Printf("  Transfer: %s  pending %s across %d expenses\n",
		cli.RenderTransferStatus(rec.Status),
		cli.FormatMoney(rec.TotalCents, symbol), rec.ActiveExpenseCount)

	printBudgetWarnings(st, category, symbol)
	return nil
}

// applySavingTax skims the profile's saving-tax rate off the expense amount
// and distributes it across the active vaults. Returns the skimmed cents,
// zero when the rate is unset or no vaults exist.
func applySavingTax(st *store.Store, amountCents int64, rate float64, date time.Time) (int64, error) {
	skim := allocate.SavingTax(amountCents, rate)
	if skim == 0 {
		return 0, nil
	}
	vaults, err := st.ListVaults(false)
	if err != nil {
		return 0, err
	}
	if len(vaults) == 0 {
		return 0, nil
	}
	dist := vault.Distribute(skim, vaults, time.Now())
	if err := st.ApplyContributions(vault.AsContributions(dist, model.SourceSavingTax, date)); err != nil {
		return 0, fmt.Errorf("applying saving tax: %w", err)
	}
	return dist.TotalCents(), nil
}

// manualPercentages builds a split from flags when all three bucket flags
// are set. Partial overrides are ignored so a lone --fun cannot produce an
// unbalanced split.
func manualPercentages() (model.SavingsPercentages, bool) {
	if flagLogEmergency < 0 || flagLogInvest < 0 || flagLogFun < 0 {
		return model.SavingsPercentages{}, false
	}
	pcts := model.SavingsPercentages{
		Emergency:           flagLogEmergency,
		Invest:              flagLogInvest,
		Fun:                 flagLogFun,
		SafeInvestmentSplit: flagLogSafeSplit,
	}
	if flagLogSafeSplit < 0 {
		pcts.SafeInvestmentSplit = model.DefaultPercentages().SafeInvestmentSplit
	}
	return pcts, true
}

func printBudgetWarnings(st *store.Store, category model.ExpenseCategory, symbol string) {
	budgets, err := st.ListBudgets()
	if err != nil || len(budgets) == 0 {
		return
	}
	expenses, err := st.ListExpensesSince(time.Now().AddDate(0, -1, 0))
	if err != nil {
		return
	}

	now := time.Now()
	for _, s := range budget.Statuses(budgets, expenses, now) {
		if s.Category != category || s.Health == model.BudgetHealthy {
			continue
		}
		fmt.Printf("  Budget %s: %s of %s used (%s)\n",
			cli.RenderBudgetHealth(s.Health),
			cli.FormatMoney(s.SpentCents, symbol),
			cli.FormatMoney(s.LimitCents, symbol),
			cli.FormatPercent(s.PercentageUsed))
	}
	for _, p := range budget.OverrunPrompts(budgets, expenses, now) {
		if p.Category != category {
			continue
		}
		fmt.Printf("  Over budget by %s (%s, %d expenses)\n",
			cli.FormatMoney(p.OverageCents, symbol), p.Reason, p.ExpenseCount)
	}
}
