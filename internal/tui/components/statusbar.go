package components

import (
	"fmt"

	"github.com/stash-cli/stash/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. transferStatus is the
// current smart-transfer state string, empty to hide it.
func RenderStatusBar(width int, dataAge, transferStatus string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [r]efresh  [q]uit"
	if refreshing {
		left += "  refreshing..."
	}

	right := ""
	if transferStatus != "" {
		right = "transfer: " + transferStatus + "  "
	}
	if dataAge != "" {
		right += fmt.Sprintf("Data: %s ", dataAge)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
