package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/report"
)

var flagHistoryMonths int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Monthly spending and saving history",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryMonths, "months", 0, "Months of history to show (default from config)")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	months := flagHistoryMonths
	if months <= 0 {
		months = cfg.General.HistoryMonths
	}
	if months <= 0 {
		months = 6
	}

	now := time.Now()
	windowStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	expenses, err := st.ListExpensesSince(windowStart)
	if err != nil {
		return err
	}
	incomes, err := st.ListIncomesSince(windowStart)
	if err != nil {
		return err
	}

	series := report.Monthly(expenses, incomes, months, now)
	summary := report.Summarize(series)
	symbol := currencySymbol(cfg)

	fmt.Println(cli.RenderTitle(fmt.Sprintf("Last %d months", months)))
	fmt.Println()
	fmt.Printf("  Spend  %s\n", cli.RenderSparkline(report.SpendSeries(series)))
	fmt.Println()

	table := cli.Table{
		Headers: []string{"Month", "Spent", "Saved", "Income", "Save rate"},
	}
	for _, m := range series {
		rate := "-"
		if m.IncomeCents > 0 {
			rate = cli.FormatPercent(m.SavingsRate)
		}
		table.Rows = append(table.Rows, []string{
			cli.FormatMonth(m.Month),
			cli.FormatMoney(m.SpentCents, symbol),
			cli.FormatMoney(m.SavedCents(), symbol),
			cli.FormatMoney(m.IncomeCents, symbol),
			rate,
		})
	}
	fmt.Println(cli.RenderTable(table))

	fmt.Printf("  Average spend: %s/month\n", cli.FormatMoney(summary.AvgMonthlySpendCents, symbol))
	if summary.TopCategory != "" {
		fmt.Printf("  Biggest category: %s (%s)\n", summary.TopCategory,
			cli.FormatMoney(summary.TopCategoryCents, symbol))
	}
	if summary.IncomeCents > 0 {
		fmt.Printf("  Overall save rate: %s\n", cli.FormatPercent(summary.SavingsRate))
	}
	return nil
}
