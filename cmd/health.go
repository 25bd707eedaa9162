package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/budget"
	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/health"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Show your financial health score",
	RunE:  runHealth,
}

func init() {
	rootCmd.AddCommand(healthCmd)
}

func runHealth(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	profile, norms, err := loadProfile(st, cfg)
	if err != nil {
		return err
	}

	now := time.Now()
	vaults, err := st.ListVaults(false)
	if err != nil {
		return err
	}
	budgets, err := st.ListBudgets()
	if err != nil {
		return err
	}
	expenses, err := st.ListExpensesSince(now.AddDate(0, -1, 0))
	if err != nil {
		return err
	}

	// This month's saving is the reserved share of logged expenses plus
	// income skims.
	var savedCents int64
	for _, e := range expenses {
		if e.Date.Year() == now.Year() && e.Date.Month() == now.Month() {
			savedCents += e.Breakdown.TotalCents()
		}
	}
	incomes, err := st.ListIncomesSince(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()))
	if err != nil {
		return err
	}
	for _, in := range incomes {
		savedCents += in.SkimCents
	}

	score := health.Score(health.Input{
		Profile:           profile,
		Norms:             norms,
		Vaults:            vaults,
		BudgetStatuses:    budget.Statuses(budgets, expenses, now),
		MonthlySavedCents: savedCents,
	})

	fmt.Println()
	fmt.Println(cli.RenderTitle("FINANCIAL HEALTH"))
	fmt.Println()
	fmt.Printf("  Score: %.0f/100  %s\n", score.OverallScore, cli.RenderHealthLevel(score.Level))
	if score.InsufficientData {
		fmt.Println("  Low confidence: not enough data yet. Log expenses and set up vaults.")
	}
	fmt.Println()

	rows := make([][]string, 0, len(score.SubScores))
	for _, s := range score.SubScores {
		rows = append(rows, []string{
			s.Metric.String(),
			fmt.Sprintf("%.0f", s.Score),
			cli.FormatPercent(s.Weight),
		})
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Signal", "Score", "Weight"},
		Rows:    rows,
	}))

	if len(score.TopStrengths) > 0 {
		fmt.Println("  Strengths:")
		for _, s := range score.TopStrengths {
			fmt.Printf("    + %s (%.0f)\n", s.Metric, s.Score)
		}
	}
	if len(score.ImprovementAreas) > 0 {
		fmt.Println("  Improvements:")
		for _, a := range score.ImprovementAreas {
			fmt.Printf("    - [%s] %s: %s (+%.1f points)\n",
				a.Priority, a.Metric, a.Action, a.EstimatedPointGain)
		}
	}
	return nil
}
