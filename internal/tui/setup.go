package tui

import (
	"fmt"
	"strings"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/store"
	"github.com/stash-cli/stash/internal/tui/theme"

	"github.com/charmbracelet/huh"
	"github.com/shopspring/decimal"
)

// setupValues holds the raw answers from the first-run form.
type setupValues struct {
	Country   string
	Income    string
	Expenses  string
	Emergency string
	Risk      string
	Theme     string
}

// newSetupForm builds the first-run profile form shown when the database
// has no profile yet.
func newSetupForm(vals *setupValues) *huh.Form {
	themeNames := make([]string, len(theme.All))
	for i, t := range theme.All {
		themeNames[i] = t.Name
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where do you live?").
				Description("Sets tax and savings norms.").
				Options(huh.NewOptions(config.Countries()...)...).
				Value(&vals.Country),

			huh.NewInput().
				Title("Monthly net income").
				Placeholder("4500").
				Validate(validateMoney).
				Value(&vals.Income),

			huh.NewInput().
				Title("Typical monthly expenses").
				Placeholder("2800").
				Validate(validateMoney).
				Value(&vals.Expenses),

			huh.NewInput().
				Title("Current emergency fund balance").
				Placeholder("0").
				Validate(validateMoney).
				Value(&vals.Emergency),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Risk appetite").
				Options(
					huh.NewOption("Conservative", "conservative"),
					huh.NewOption("Balanced", "balanced"),
					huh.NewOption("Aggressive", "aggressive"),
				).
				Value(&vals.Risk),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(huh.NewOptions(themeNames...)...).
				Value(&vals.Theme),
		),
	)
}

// saveSetup persists the completed form to the profile row and the config
// file. Save failures are swallowed so the dashboard still opens.
func (a *App) saveSetup() {
	st, err := store.Open(a.dbPath)
	if err != nil {
		return
	}
	defer st.Close()

	profile, _, _ := st.Profile()

	profile.CountryCode = config.NormalizeCountryCode(a.setupVals.Country)
	if profile.CountryCode == "" {
		profile.CountryCode = "US"
	}
	profile.MonthlyIncomeCents = parseMoneyInput(a.setupVals.Income)
	profile.MonthlyExpensesCents = parseMoneyInput(a.setupVals.Expenses)
	profile.EmergencyBalanceCents = parseMoneyInput(a.setupVals.Emergency)
	profile.Risk = model.ParseRiskLevel(a.setupVals.Risk)
	profile.Employed = profile.MonthlyIncomeCents > 0
	if profile.SaveRate == 0 {
		profile.SaveRate = 0.15
	}

	_ = st.SaveProfile(profile)

	a.cfg.General.CountryCode = profile.CountryCode
	if a.setupVals.Theme != "" {
		a.cfg.Appearance.Theme = a.setupVals.Theme
		theme.SetActive(a.setupVals.Theme)
	}
	_ = config.Save(a.cfg)
}

func validateMoney(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	if parseMoneyInput(s) < 0 {
		return fmt.Errorf("enter an amount like 1234.56")
	}
	return nil
}

// parseMoneyInput converts a user-typed amount to cents, -1 on bad input.
// Empty input reads as zero.
func parseMoneyInput(s string) int64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if s == "" {
		return 0
	}
	d, err := decimal.NewFromString(s)
	if err != nil || d.IsNegative() {
		return -1
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
