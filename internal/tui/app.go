// Package tui provides the interactive Bubble Tea dashboard for stash.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/stash-cli/stash/internal/budget"
	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/health"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/store"
	"github.com/stash-cli/stash/internal/transfer"
	"github.com/stash-cli/stash/internal/tui/components"
	"github.com/stash-cli/stash/internal/tui/theme"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// DataLoadedMsg is sent when the initial store read finishes.
type DataLoadedMsg struct {
	Data     tuiData
	LoadTime time.Duration
	Err      error
}

// RefreshDataMsg is sent when a background refresh completes.
type RefreshDataMsg struct {
	Data     tuiData
	LoadTime time.Duration
	Err      error
}

// tuiData is everything the dashboard renders, read in one pass.
type tuiData struct {
	Profile    model.Profile
	HasProfile bool
	Norms      config.CountryNorms

	Vaults         []model.SmartVault
	BudgetStatuses []model.BudgetStatus
	Snapshot       model.SmartTransferSnapshot
	Health         model.FinancialHealthScore

	TransferStatus  model.TransferStatus
	TotalSavedCents int64
	MonthSpentCents int64
	MonthSavedCents int64
	ExpenseCount    int
}

// App is the root Bubble Tea model.
type App struct {
	dbPath string
	cfg    config.Config

	data     tuiData
	loaded   bool
	loadErr  error
	loadTime time.Duration

	refreshing bool

	// UI state
	width     int
	height    int
	activeTab int
	showHelp  bool

	// Per-tab cursors
	vaultCursor int
	themeCursor int

	// First-run setup (huh form)
	setupForm *huh.Form
	setupVals setupValues
	needSetup bool

	spinner spinner.Model
}

const (
	minTerminalWidth = 70
	compactWidth     = 110
	maxContentWidth  = 160

	minContentHeight = 5
)

// loadConfigOrDefault loads config, returning defaults on error so the
// dashboard can always start.
func loadConfigOrDefault() config.Config {
	cfg, err := config.Load()
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// NewApp creates a new TUI app model reading from the given database.
func NewApp(dbPath string) App {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(theme.Active.Accent).Background(theme.Active.Surface)

	return App{
		dbPath:  dbPath,
		cfg:     loadConfigOrDefault(),
		spinner: sp,
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnableMouseCellMotion,
		loadDataCmd(a.dbPath, a.cfg),
		a.spinner.Tick,
	)
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		if a.setupForm != nil {
			a.setupForm = a.setupForm.WithWidth(msg.Width).WithHeight(msg.Height)
		}
		return a, nil

	case tea.MouseMsg:
		if !a.loaded || a.showHelp || (a.needSetup && a.setupForm != nil) {
			return a, nil
		}
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if a.activeTab == 1 && a.vaultCursor > 0 {
				a.vaultCursor--
			}
			return a, nil
		case tea.MouseButtonWheelDown:
			if a.activeTab == 1 && a.vaultCursor < len(a.data.Vaults)-1 {
				a.vaultCursor++
			}
			return a, nil
		case tea.MouseButtonLeft:
			if msg.Y == 0 {
				if tab := a.tabAtX(msg.X); tab >= 0 {
					a.activeTab = tab
				}
			}
			return a, nil
		}
		return a, nil

	case tea.KeyMsg:
		key := msg.String()

		if key == "ctrl+c" {
			return a, tea.Quit
		}

		if !a.loaded {
			return a, nil
		}

		// First-run setup wizard intercepts all keys
		if a.needSetup && a.setupForm != nil {
			return a.updateSetupForm(msg)
		}

		if key == "?" {
			a.showHelp = !a.showHelp
			return a, nil
		}
		if a.showHelp {
			a.showHelp = false
			return a, nil
		}

		if key == "q" {
			return a, tea.Quit
		}

		if key == "r" && !a.refreshing {
			a.refreshing = true
			return a, refreshDataCmd(a.dbPath, a.cfg)
		}

		// Per-tab cursor movement
		switch key {
		case "j", "down":
			switch a.activeTab {
			case 1:
				if a.vaultCursor < len(a.data.Vaults)-1 {
					a.vaultCursor++
				}
			case 4:
				if a.themeCursor < len(theme.All)-1 {
					a.themeCursor++
				}
			}
			return a, nil
		case "k", "up":
			switch a.activeTab {
			case 1:
				if a.vaultCursor > 0 {
					a.vaultCursor--
				}
			case 4:
				if a.themeCursor > 0 {
					a.themeCursor--
				}
			}
			return a, nil
		case "enter":
			if a.activeTab == 4 {
				return a.applyTheme()
			}
			return a, nil
		}

		// Tab navigation
		switch key {
		case "o":
			a.activeTab = 0
		case "v":
			a.activeTab = 1
		case "b":
			a.activeTab = 2
		case "h":
			a.activeTab = 3
		case "x":
			a.activeTab = 4
		case "left":
			a.activeTab = (a.activeTab - 1 + len(components.Tabs)) % len(components.Tabs)
		case "right", "tab":
			a.activeTab = (a.activeTab + 1) % len(components.Tabs)
		}
		return a, nil

	case DataLoadedMsg:
		a.loaded = true
		a.loadErr = msg.Err
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.data = msg.Data
		}

		// Activate first-run setup when no profile exists yet
		if msg.Err == nil && !msg.Data.HasProfile {
			a.needSetup = true
			a.setupForm = newSetupForm(&a.setupVals)
			if a.width > 0 {
				a.setupForm = a.setupForm.WithWidth(a.width).WithHeight(a.height)
			}
			return a, a.setupForm.Init()
		}
		return a, nil

	case RefreshDataMsg:
		a.refreshing = false
		a.loadTime = msg.LoadTime
		if msg.Err == nil {
			a.data = msg.Data
			if a.vaultCursor >= len(a.data.Vaults) {
				a.vaultCursor = 0
			}
		}
		return a, nil

	case spinner.TickMsg:
		if !a.loaded {
			var cmd tea.Cmd
			a.spinner, cmd = a.spinner.Update(msg)
			return a, cmd
		}
		return a, nil
	}

	// Forward unhandled messages to the setup form (cursor blinks, etc.)
	if a.needSetup && a.setupForm != nil {
		return a.updateSetupForm(msg)
	}

	return a, nil
}

func (a App) updateSetupForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	form, cmd := a.setupForm.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		a.setupForm = f
	}

	if a.setupForm.State == huh.StateCompleted {
		a.saveSetup()
		a.needSetup = false
		a.setupForm = nil
		a.refreshing = true
		return a, refreshDataCmd(a.dbPath, a.cfg)
	}

	if a.setupForm.State == huh.StateAborted {
		return a, tea.Quit
	}

	return a, cmd
}

func (a App) applyTheme() (tea.Model, tea.Cmd) {
	name := theme.All[a.themeCursor].Name
	theme.SetActive(name)
	a.cfg.Appearance.Theme = name
	_ = config.Save(a.cfg)
	return a, nil
}

func (a App) contentWidth() int {
	cw := a.width
	if cw > maxContentWidth {
		cw = maxContentWidth
	}
	return cw
}

func (a App) isCompactLayout() bool {
	return a.contentWidth() < compactWidth
}

// View implements tea.Model.
func (a App) View() string {
	if a.width == 0 {
		return ""
	}

	if a.width < minTerminalWidth {
		return a.viewTooNarrow()
	}

	if !a.loaded {
		return a.viewLoading()
	}

	if a.loadErr != nil {
		return fmt.Sprintf("\n  Could not open the database:\n\n  %s\n\n  Press ctrl+c to quit.\n", a.loadErr)
	}

	if a.needSetup && a.setupForm != nil {
		return a.setupForm.View()
	}

	if a.showHelp {
		return a.viewHelp()
	}

	return a.viewMain()
}

func (a App) viewTooNarrow() string {
	h := a.height
	if h < 5 {
		h = 5
	}

	msg := fmt.Sprintf(
		"\n  Terminal too narrow (%d cols)\n\n  stash needs at least %d columns.\n",
		a.width,
		minTerminalWidth,
	)

	return padHeight(truncateHeight(msg, h), h)
}

func (a App) viewLoading() string {
	t := theme.Active

	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Accent).
		Padding(1, 3)

	body := a.spinner.View() + " Reading your money..."
	card := cardStyle.Render(body)

	return lipgloss.Place(a.width, a.height, lipgloss.Center, lipgloss.Center, card,
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewHelp() string {
	t := theme.Active

	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	descStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	titleStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)

	rows := []struct{ key, desc string }{
		{"o / v / b / h / x", "jump to tab"},
		{"left / right", "cycle tabs"},
		{"j / k", "move cursor (vaults, settings)"},
		{"enter", "apply selected theme (settings)"},
		{"r", "reload from the database"},
		{"?", "toggle this help"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(titleStyle.Render("Keyboard"))
	b.WriteString("\n\n")
	for _, r := range rows {
		b.WriteString(fmt.Sprintf("  %s  %s\n",
			keyStyle.Render(fmt.Sprintf("%-18s", r.key)),
			descStyle.Render(r.desc)))
	}
	b.WriteString("\n  ")
	b.WriteString(descStyle.Render("Press any key to close"))

	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, b.String(),
		lipgloss.WithWhitespaceBackground(t.Background))
}

func (a App) viewMain() string {
	t := theme.Active
	w := a.width
	cw := a.contentWidth()
	h := a.height

	header := components.RenderTabBar(a.activeTab, w)

	dataAge := fmt.Sprintf("%.0fms", float64(a.loadTime.Microseconds())/1000)
	statusBar := components.RenderStatusBar(w, dataAge, a.data.TransferStatus.String(), a.refreshing)

	headerH := lipgloss.Height(header)
	statusH := lipgloss.Height(statusBar)
	contentH := h - headerH - statusH
	if contentH < minContentHeight {
		contentH = minContentHeight
	}

	var content string
	switch a.activeTab {
	case 0:
		content = a.renderOverviewTab(cw)
	case 1:
		content = a.renderVaultsTab(cw)
	case 2:
		content = a.renderBudgetsTab(cw)
	case 3:
		content = a.renderHealthTab(cw)
	case 4:
		content = a.renderSettingsTab(cw)
	}

	content = padHeight(truncateHeight(content, contentH), contentH)
	content = fillLinesWithBackground(content, cw, t.Background)
	content = lipgloss.Place(w, contentH, lipgloss.Center, lipgloss.Top, content,
		lipgloss.WithWhitespaceBackground(t.Background))

	output := lipgloss.JoinVertical(lipgloss.Left, header, content, statusBar)

	return lipgloss.Place(w, h, lipgloss.Left, lipgloss.Top, output,
		lipgloss.WithWhitespaceBackground(t.Background))
}

// tabAtX maps a click column to a tab index, mirroring RenderTabBar layout.
func (a App) tabAtX(x int) int {
	pos := 1 // leading space
	for i := range components.Tabs {
		w := components.TabWidth(i, a.activeTab)
		if x >= pos && x < pos+w {
			return i
		}
		pos += w + 2 // separator
	}
	return -1
}

// ─── Data loading ───────────────────────────────────────────────

func loadData(dbPath string, cfg config.Config) (tuiData, error) {
	st, err := store.Open(dbPath)
	if err != nil {
		return tuiData{}, err
	}
	defer st.Close()

	now := time.Now()
	var d tuiData

	profile, found, err := st.Profile()
	if err != nil {
		return tuiData{}, err
	}
	d.Profile = profile
	d.HasProfile = found

	code := profile.CountryCode
	if code == "" {
		code = cfg.General.CountryCode
	}
	norms, _ := config.LookupNorms(code)
	d.Norms = norms

	if d.Vaults, err = st.ListVaults(false); err != nil {
		return tuiData{}, err
	}
	for _, v := range d.Vaults {
		d.TotalSavedCents += v.BalanceCents
	}

	budgets, err := st.ListBudgets()
	if err != nil {
		return tuiData{}, err
	}

	expenses, err := st.ListExpensesSince(now.AddDate(0, -1, 0))
	if err != nil {
		return tuiData{}, err
	}
	d.ExpenseCount = len(expenses)
	d.BudgetStatuses = budget.Statuses(budgets, expenses, now)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	for _, e := range expenses {
		if e.Date.Before(monthStart) {
			continue
		}
		d.MonthSpentCents += e.AmountCents
		d.MonthSavedCents += e.Breakdown.TotalCents()
	}

	incomes, err := st.ListIncomesSince(monthStart)
	if err != nil {
		return tuiData{}, err
	}
	for _, in := range incomes {
		d.MonthSavedCents += in.SkimCents
	}

	if d.Snapshot, err = st.TransferSnapshot(); err != nil {
		return tuiData{}, err
	}
	window := time.Duration(cfg.Transfer.BatchWindowMinutes) * time.Minute
	d.TransferStatus = transfer.Status(d.Snapshot, cfg.Transfer.MinTransferCents, window, now)

	d.Health = health.Score(health.Input{
		Profile:           profile,
		Norms:             norms,
		Vaults:            d.Vaults,
		BudgetStatuses:    d.BudgetStatuses,
		MonthlySavedCents: d.MonthSavedCents,
	})

	return d, nil
}

func loadDataCmd(dbPath string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		d, err := loadData(dbPath, cfg)
		return DataLoadedMsg{Data: d, LoadTime: time.Since(start), Err: err}
	}
}

func refreshDataCmd(dbPath string, cfg config.Config) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		d, err := loadData(dbPath, cfg)
		return RefreshDataMsg{Data: d, LoadTime: time.Since(start), Err: err}
	}
}

// ─── Layout helpers ─────────────────────────────────────────────

func truncStr(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	if limit <= 1 {
		return s[:limit]
	}
	return s[:limit-1] + "…"
}

func truncateHeight(s string, limit int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= limit {
		return s
	}
	return strings.Join(lines[:limit], "\n")
}

func padHeight(s string, h int) string {
	lines := strings.Count(s, "\n") + 1
	if lines >= h {
		return s
	}
	return s + strings.Repeat("\n", h-lines)
}

// fillLinesWithBackground pads every line to width w with the background
// color so card gaps do not show through as unstyled cells.
func fillLinesWithBackground(s string, w int, bg lipgloss.Color) string {
	fill := lipgloss.NewStyle().Background(bg)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lw := lipgloss.Width(line)
		if lw < w {
			lines[i] = line + fill.Render(strings.Repeat(" ", w-lw))
		}
	}
	return strings.Join(lines, "\n")
}
