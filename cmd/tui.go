package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/tui"
	"github.com/stash-cli/stash/internal/tui/theme"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var tuiCmd = &cobra.Command{
	Use:     "tui",
	Aliases: []string{"dashboard", "ui"},
	Short:   "Open the interactive dashboard",
	RunE:    runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err == nil && cfg.Appearance.Theme != "" {
		theme.SetActive(cfg.Appearance.Theme)
	}

	lipgloss.SetColorProfile(termenv.TrueColor)

	app := tui.NewApp(flagDBPath)
	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
