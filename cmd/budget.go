package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/budget"
	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Manage category budgets",
	RunE:  runBudgetList,
}

var budgetSetCmd = &cobra.Command{
	Use:   "set <category> <limit>",
	Short: "Set a monthly limit for a category",
	Args:  cobra.ExactArgs(2),
	RunE:  runBudgetSet,
}

var budgetSuggestCmd = &cobra.Command{
	Use:   "suggest <category>",
	Short: "Suggest a limit from history and your income",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetSuggest,
}

var budgetRemoveCmd = &cobra.Command{
	Use:   "remove <category>",
	Short: "Remove a category budget",
	Args:  cobra.ExactArgs(1),
	RunE:  runBudgetRemove,
}

func init() {
	budgetCmd.AddCommand(budgetSetCmd)
	budgetCmd.AddCommand(budgetSuggestCmd)
	budgetCmd.AddCommand(budgetRemoveCmd)
	rootCmd.AddCommand(budgetCmd)
}

func runBudgetList(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	budgets, err := st.ListBudgets()
	if err != nil {
		return err
	}
	if len(budgets) == 0 {
		fmt.Println("\n  No budgets yet. Set one with `stash budget set <category> <limit>`.")
		return nil
	}

	now := time.Now()
	expenses, err := st.ListExpensesSince(now.AddDate(0, -1, 0))
	if err != nil {
		return err
	}

	symbol := currencySymbol(cfg)
	statuses := budget.Statuses(budgets, expenses, now)

	fmt.Println()
	fmt.Println(cli.RenderTitle(fmt.Sprintf("BUDGETS  %s", now.Format("January 2006"))))
	fmt.Println()

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{
			s.Category,
			cli.FormatMoney(s.SpentCents, symbol),
			cli.FormatMoney(s.LimitCents, symbol),
			cli.FormatMoney(s.RemainingCents, symbol),
			cli.FormatPercent(s.PercentageUsed),
			cli.RenderBudgetHealth(s.Health),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Category", "Spent", "Limit", "Remaining", "Used", "Health"},
		Rows:    rows,
	}))

	for _, p := range budget.OverrunPrompts(budgets, expenses, now) {
		fmt.Printf("  %s over by %s (%s)\n",
			p.Category, cli.FormatMoney(p.OverageCents, symbol), p.Reason)
	}
	return nil
}

func runBudgetSet(_ *cobra.Command, args []string) error {
	category := strings.ToLower(strings.TrimSpace(args[0]))
	limitCents, err := parseMoney(args[1])
	if err != nil {
		return err
	}
	if limitCents <= 0 {
		return fmt.Errorf("limit must be positive")
	}

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	b := model.CategoryBudget{
		ID:         uuid.NewString(),
		Category:   category,
		LimitCents: limitCents,
		CreatedAt:  time.Now(),
	}
	if err := st.SaveBudget(b); err != nil {
		return fmt.Errorf("saving budget: %w", err)
	}
	fmt.Printf("  Budget for %s set to %s/month\n",
		category, cli.FormatMoney(limitCents, currencySymbol(cfg)))
	return nil
}

func runBudgetSuggest(_ *cobra.Command, args []string) error {
	category := strings.ToLower(strings.TrimSpace(args[0]))

	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	profile, norms, err := loadProfile(st, cfg)
	if err != nil {
		return err
	}

	months := cfg.General.HistoryMonths
	if months <= 0 {
		months = 6
	}
	now := time.Now()
	expenses, err := st.ListExpensesSince(now.AddDate(0, -months, 0))
	if err != nil {
		return err
	}

	s := budget.Suggest(category, expenses, profile, norms, now)
	symbol := currencySymbol(cfg)

	fmt.Println()
	fmt.Printf("  Suggested limit for %s: %s/month (%s confidence)\n",
		category, cli.FormatMoney(s.SuggestedCents, symbol), s.Confidence)
	if s.HistoricalCents > 0 {
		fmt.Printf("  Trailing average: %s over %d months\n",
			cli.FormatMoney(s.HistoricalCents, symbol), s.MonthsOfHistory)
	}
	if s.TargetCents > 0 {
		fmt.Printf("  Income-based target: %s\n", cli.FormatMoney(s.TargetCents, symbol))
	}
	fmt.Printf("\n  Apply with: stash budget set %s %.2f\n",
		category, float64(s.SuggestedCents)/100)
	return nil
}

func runBudgetRemove(_ *cobra.Command, args []string) error {
	category := strings.ToLower(strings.TrimSpace(args[0]))

	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if err := st.DeleteBudget(category); err != nil {
		return err
	}
	fmt.Printf("  Removed budget for %s\n", category)
	return nil
}
