package tui

import (
	"fmt"
	"strings"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/tui/components"
	"github.com/stash-cli/stash/internal/tui/theme"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active
	d := a.data
	symbol := a.cfg.General.CurrencySymbol
	var b strings.Builder

	healthDelta := d.Health.Level.String()
	if d.Health.InsufficientData {
		healthDelta = "log more to sharpen this"
	}

	cards := []struct{ Label, Value, Delta string }{
		{"Saved", cli.FormatCompactMoney(d.TotalSavedCents, symbol), fmt.Sprintf("%d vaults", len(d.Vaults))},
		{"Spent this month", cli.FormatMoney(d.MonthSpentCents, symbol), fmt.Sprintf("%d expenses", d.ExpenseCount)},
		{"Reserved this month", cli.FormatMoney(d.MonthSavedCents, symbol), "skimmed into vaults"},
		{"Health", fmt.Sprintf("%.1f", d.Health.OverallScore), healthDelta},
	}
	b.WriteString(components.MetricCardRow(cards, cw))
	b.WriteString("\n")

	// Smart transfer card
	snap := d.Snapshot
	pending := snap.PendingEmergencyCents + snap.PendingInvestmentCents
	awaiting := snap.AwaitingEmergencyCents + snap.AwaitingInvestmentCents

	var tb strings.Builder
	tb.WriteString(fmt.Sprintf("Status     %s\n", d.TransferStatus))
	tb.WriteString(fmt.Sprintf("Pending    %s  (%d expenses)\n",
		cli.FormatMoney(pending, symbol), snap.PendingExpenseCount))
	if awaiting > 0 {
		tb.WriteString(fmt.Sprintf("Awaiting   %s  run `stash transfer done` after moving it\n",
			cli.FormatMoney(awaiting, symbol)))
	}
	if d.TransferStatus == model.TransferReady {
		tb.WriteString("\nRun `stash transfer confirm` to batch this into one transfer.")
	}

	halves := components.LayoutRow(cw, 2)

	transferCard := components.ContentCard("Smart Transfer", tb.String(), halves[0])

	// Top vaults by remaining urgency
	var vb strings.Builder
	shown := 0
	for _, v := range d.Vaults {
		if shown == 4 {
			break
		}
		vb.WriteString(components.GoalBar(
			truncStr(v.Name, 14), v.Progress(), v.TargetDate,
			14, components.CardInnerWidth(halves[1])-28))
		vb.WriteString("\n")
		shown++
	}
	if shown == 0 {
		vb.WriteString("No vaults yet. Create one with `stash vaults add`.")
	}
	vaultCard := components.ContentCard("Vaults", vb.String(), halves[1])

	if a.isCompactLayout() {
		b.WriteString(components.ContentCard("Smart Transfer", tb.String(), cw))
		b.WriteString("\n")
		b.WriteString(components.ContentCard("Vaults", vb.String(), cw))
	} else {
		b.WriteString(components.CardRow([]string{transferCard, vaultCard}))
	}
	b.WriteString("\n")

	// Budget pressure chart
	if len(d.BudgetStatuses) > 0 {
		vals := make([]float64, len(d.BudgetStatuses))
		labels := make([]string, len(d.BudgetStatuses))
		for i, s := range d.BudgetStatuses {
			vals[i] = s.PercentageUsed * 100
			labels[i] = truncStr(s.Category, 8)
		}
		b.WriteString(components.ContentCard(
			"Budget usage",
			components.BarChart(vals, labels, t.Blue, components.CardInnerWidth(cw), 8, "%"),
			cw,
		))
	}

	return b.String()
}
