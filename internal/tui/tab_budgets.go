package tui

import (
	"fmt"
	"strings"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/tui/components"
	"github.com/stash-cli/stash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderBudgetsTab(cw int) string {
	t := theme.Active
	d := a.data
	symbol := a.cfg.General.CurrencySymbol

	if len(d.BudgetStatuses) == 0 {
		return components.ContentCard("Budgets",
			"No category budgets set.\n\nLet history suggest one:\n\n  stash budget suggest groceries", cw)
	}

	inner := components.CardInnerWidth(cw)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	overStyle := lipgloss.NewStyle().Foreground(t.Red).Bold(true)

	var b strings.Builder
	var totalSpent, totalLimit int64
	for _, s := range d.BudgetStatuses {
		totalSpent += s.SpentCents
		totalLimit += s.LimitCents

		label := fmt.Sprintf("%-14s", truncStr(s.Category, 14))
		b.WriteString(components.UsageBar(label, s.PercentageUsed, inner-26))

		detail := fmt.Sprintf("  %s / %s",
			cli.FormatCompactMoney(s.SpentCents, symbol),
			cli.FormatCompactMoney(s.LimitCents, symbol))
		if s.Health == model.BudgetOverBudget {
			b.WriteString(overStyle.Render(detail + "  OVER"))
		} else {
			b.WriteString(mutedStyle.Render(detail))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Total  %s spent of %s budgeted this month",
		cli.FormatMoney(totalSpent, symbol), cli.FormatMoney(totalLimit, symbol))))

	return components.ContentCard("Budgets", b.String(), cw)
}
