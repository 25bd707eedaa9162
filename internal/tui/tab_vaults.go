package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/tui/components"
	"github.com/stash-cli/stash/internal/tui/theme"
	"github.com/stash-cli/stash/internal/vault"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderVaultsTab(cw int) string {
	t := theme.Active
	d := a.data
	symbol := a.cfg.General.CurrencySymbol

	if len(d.Vaults) == 0 {
		return components.ContentCard("Vaults",
			"Nothing here yet.\n\nCreate your first vault:\n\n  stash vaults add \"Emergency Fund\" --target 10000 --priority critical", cw)
	}

	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)

	var list strings.Builder
	barW := components.CardInnerWidth(cw) - 46
	if barW < 10 {
		barW = 10
	}
	for i, v := range d.Vaults {
		marker := "  "
		style := rowStyle
		if i == a.vaultCursor {
			marker = "> "
			style = cursorStyle
		}
		list.WriteString(style.Render(marker))
		list.WriteString(components.GoalBar(truncStr(v.Name, 18), v.Progress(), v.TargetDate, 18, barW))
		list.WriteString(style.Render(fmt.Sprintf("  %s", cli.FormatCompactMoney(v.BalanceCents, symbol))))
		list.WriteString("\n")
	}
	listCard := components.ContentCard(fmt.Sprintf("Vaults (%d)", len(d.Vaults)), list.String(), cw)

	// Detail for the selected vault
	v := d.Vaults[a.vaultCursor]
	var det strings.Builder
	det.WriteString(fmt.Sprintf("Balance    %s", cli.FormatMoney(v.BalanceCents, symbol)))
	if v.TargetCents > 0 {
		det.WriteString(fmt.Sprintf("  of  %s", cli.FormatMoney(v.TargetCents, symbol)))
		if v.FullyFunded() {
			det.WriteString("  (funded)")
		} else {
			det.WriteString(fmt.Sprintf("  (%s to go)", cli.FormatMoney(v.RemainingCents(), symbol)))
		}
	}
	det.WriteString("\n")
	det.WriteString(fmt.Sprintf("Type       %s\n", v.Type))
	det.WriteString(fmt.Sprintf("Priority   %s\n", v.Priority))
	if v.Mode == model.AllocationManual {
		det.WriteString(fmt.Sprintf("Mode       manual %.0f%% of each pool\n", v.ManualAllocationPct*100))
	} else {
		det.WriteString("Mode       dynamic\n")
	}
	if v.MonthlyNeedCents > 0 {
		det.WriteString(fmt.Sprintf("Pace       %s/month to hit the target date\n", cli.FormatMoney(v.MonthlyNeedCents, symbol)))
	}
	if next, ok := vault.NextDeposit(v, time.Now()); ok {
		det.WriteString(fmt.Sprintf("Auto       %s on %s\n",
			cli.FormatMoney(v.AutoDepositCents, symbol), next.Format("Jan 2 15:04")))
	}

	return listCard + "\n" + components.ContentCard(v.Name, det.String(), cw)
}
