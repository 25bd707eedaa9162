package tui

import (
	"fmt"
	"strings"

	"github.com/stash-cli/stash/internal/cli"
	"github.com/stash-cli/stash/internal/tui/components"
	"github.com/stash-cli/stash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderSettingsTab(cw int) string {
	t := theme.Active
	cfg := a.cfg
	symbol := cfg.General.CurrencySymbol

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	cursorStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	row := func(label, value string) string {
		return labelStyle.Render(fmt.Sprintf("%-16s", label)) + valueStyle.Render(value) + "\n"
	}

	var gen strings.Builder
	gen.WriteString(row("Country", cfg.General.CountryCode))
	gen.WriteString(row("Currency", symbol))
	gen.WriteString(row("History", fmt.Sprintf("%d months", cfg.General.HistoryMonths)))
	gen.WriteString(row("Min transfer", cli.FormatMoney(cfg.Transfer.MinTransferCents, symbol)))
	gen.WriteString(row("Batch window", fmt.Sprintf("%d minutes", cfg.Transfer.BatchWindowMinutes)))
	gen.WriteString(row("Database", a.dbPath))
	gen.WriteString("\n")
	gen.WriteString(labelStyle.Render("Edit with `stash setup` or in the config file directly."))

	var th strings.Builder
	for i, candidate := range theme.All {
		marker := "( ) "
		style := valueStyle
		if candidate.Name == theme.Active.Name {
			marker = "(o) "
		}
		if i == a.themeCursor {
			style = cursorStyle
			marker = "> " + marker[2:]
		}
		th.WriteString(style.Render(marker + candidate.Name))
		th.WriteString("\n")
	}
	th.WriteString("\n")
	th.WriteString(labelStyle.Render("j/k to move, Enter to apply and save"))

	return components.ContentCard("Configuration", gen.String(), cw) + "\n" +
		components.ContentCard("Theme", th.String(), cw)
}
