package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/tui/theme"
)

func init() {
	lipgloss.SetColorProfile(termenv.TrueColor)
	theme.SetActive("flexoki-dark")
}

func budgetApp() App {
	return App{
		cfg:    config.DefaultConfig(),
		loaded: true,
		width:  120,
		height: 40,
		data: tuiData{
			BudgetStatuses: []model.BudgetStatus{
				{Category: "groceries", SpentCents: 32000, LimitCents: 50000, PercentageUsed: 0.64, Health: model.BudgetHealthy},
				{Category: "dining", SpentCents: 26000, LimitCents: 20000, PercentageUsed: 1.3, Health: model.BudgetOverBudget},
			},
		},
	}
}

func TestBudgetsTabRendersCategoryNames(t *testing.T) {
	out := budgetApp().renderBudgetsTab(100)

	if !strings.Contains(out, "groceries") {
		t.Error("budgets tab missing the groceries row")
	}
	if !strings.Contains(out, "dining") {
		t.Error("budgets tab missing the dining row")
	}
	if !strings.Contains(out, "OVER") {
		t.Error("over-budget row missing the OVER marker")
	}
}

func TestOverviewTabRendersBudgetChart(t *testing.T) {
	out := budgetApp().renderOverviewTab(100)

	if !strings.Contains(out, "Budget usage") {
		t.Error("overview missing the budget usage chart")
	}
	if !strings.Contains(out, "grocerie") { // labels truncate to 8 runes
		t.Error("overview chart missing the groceries label")
	}
}
