package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/recommend"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show the recommended savings percentages for your profile",
	RunE:  runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(_ *cobra.Command, _ []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	profile, norms, err := loadProfile(st, cfg)
	if err != nil {
		return err
	}

	result := recommend.Recommend(profile, norms, nil, cfg.Transfer.ReserveCap)

	symbol := currencySymbol(cfg)
	pcts := result.Percentages

	fmt.Println()
	fmt.Println(cli.RenderTitle("RECOMMENDED SAVINGS SPLIT"))
	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers: []string{"Bucket", "Share"},
		Rows: [][]string{
			{"Emergency", cli.FormatPercent(pcts.Emergency)},
			{"Invest", cli.FormatPercent(pcts.Invest)},
			{"Fun", cli.FormatPercent(pcts.Fun)},
			{"---"},
			{"Total reserved", cli.FormatPercent(pcts.Total())},
			{"Invest safe share", cli.FormatPercent(result.SafeInvestmentRatio)},
			{"Invest high-risk share", cli.FormatPercent(result.HighRiskInvestmentRatio)},
		},
	}))

	if result.AutoAdjusted {
		fmt.Println("  Split was scaled down to fit the reserve cap.")
	}

	for _, r := range result.Rationale {
		fmt.Printf("  - %s\n", r)
	}

	plan := result.Plan
	if plan.MonthlyReserveCents > 0 {
		fmt.Println()
		fmt.Printf("  Monthly reserve: ~%s\n", cli.FormatMoney(plan.MonthlyReserveCents, symbol))
	}
	if plan.EmergencyTargetCents > 0 {
		fmt.Printf("  Emergency target: %s", cli.FormatMoney(plan.EmergencyTargetCents, symbol))
		if plan.MonthsToEmergencyTarget > 0 {
			fmt.Printf(" (~%d months at this rate)", plan.MonthsToEmergencyTarget)
		}
		fmt.Println()
	}
	return nil
}
