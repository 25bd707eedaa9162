package tui

import (
	"fmt"
	"strings"

	"github.com/stash-cli/stash/internal/tui/components"
	"github.com/stash-cli/stash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderHealthTab(cw int) string {
	t := theme.Active
	h := a.data.Health

	scoreStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	greenStyle := lipgloss.NewStyle().Foreground(t.Green)

	var head strings.Builder
	head.WriteString(scoreStyle.Render(fmt.Sprintf("%.1f", h.OverallScore)))
	head.WriteString(levelStyle.Render(" / 100  "))
	head.WriteString(levelStyle.Render(h.Level.String()))
	if h.InsufficientData {
		head.WriteString("\n")
		head.WriteString(mutedStyle.Render("Not much history yet. Log expenses and income to sharpen this."))
	}

	inner := components.CardInnerWidth(cw)
	barW := inner - 30
	if barW < 10 {
		barW = 10
	}

	var subs strings.Builder
	for _, s := range h.SubScores {
		subs.WriteString(mutedStyle.Render(fmt.Sprintf("%-20s", s.Metric)))
		subs.WriteString(" ")
		subs.WriteString(components.ProgressBar(s.Score/100, barW))
		subs.WriteString("\n")
	}

	var notes strings.Builder
	if len(h.TopStrengths) > 0 {
		notes.WriteString(greenStyle.Render("Strengths"))
		notes.WriteString("\n")
		for _, s := range h.TopStrengths {
			notes.WriteString(fmt.Sprintf("  %s (%.0f)\n", s.Metric, s.Score))
		}
		notes.WriteString("\n")
	}
	if len(h.ImprovementAreas) > 0 {
		notes.WriteString(levelStyle.Render("Where points are hiding"))
		notes.WriteString("\n")
		for _, imp := range h.ImprovementAreas {
			notes.WriteString(fmt.Sprintf("  [%s] %s\n", imp.Priority, imp.Action))
			notes.WriteString(mutedStyle.Render(fmt.Sprintf("         worth about +%.1f points\n", imp.EstimatedPointGain)))
		}
	}
	if notes.Len() == 0 {
		notes.WriteString(greenStyle.Render("Everything above 90. Keep going."))
	}

	return components.ContentCard("Financial Health", head.String(), cw) + "\n" +
		components.ContentCard("Signals", subs.String(), cw) + "\n" +
		components.ContentCard("Next moves", notes.String(), cw)
}
