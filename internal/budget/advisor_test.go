package budget

import (
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

var testNow = time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC)

func expense(category string, cents int64, date time.Time) model.Expense {
	return model.Expense{Category: category, AmountCents: cents, Date: date}
}

func TestHealthTierBoundaries(t *testing.T) {
	cases := []struct {
		used float64
		want model.BudgetHealth
	}{
		{0.0, model.BudgetHealthy},
		{0.69, model.BudgetHealthy},
		{0.70, model.BudgetWarning}, // lower-inclusive
		{0.89, model.BudgetWarning},
		{0.90, model.BudgetCritical}, // lower-inclusive
		{1.00, model.BudgetCritical}, // exactly 100% is not over budget
		{1.001, model.BudgetOverBudget},
		{2.5, model.BudgetOverBudget},
	}

	for _, tc := range cases {
		if got := HealthFor(tc.used); got != tc.want {
			t.Errorf("HealthFor(%v) = %v, want %v", tc.used, got, tc.want)
		}
	}
}

func TestStatusForZeroLimit(t *testing.T) {
	s := StatusFor(model.CategoryBudget{Category: "misc", LimitCents: 0}, 5000)
	if s.PercentageUsed != 0 {
		t.Fatalf("zero limit PercentageUsed = %v, want 0 (no division by zero)", s.PercentageUsed)
	}
	if s.Health != model.BudgetHealthy {
		t.Fatalf("zero limit health = %v, want healthy", s.Health)
	}
}

func TestStatusesScopedToCurrentMonth(t *testing.T) {
	budgets := []model.CategoryBudget{{Category: "groceries", LimitCents: 40000}}
	expenses := []model.Expense{
		expense("groceries", 10000, testNow),
		expense("groceries", 10000, testNow.AddDate(0, -1, 0)), // last month, ignored
	}

	statuses := Statuses(budgets, expenses, testNow)
	if len(statuses) != 1 {
		t.Fatalf("statuses = %d, want 1", len(statuses))
	}
	if statuses[0].SpentCents != 10000 {
		t.Fatalf("spent = %d, want only current month's 10000", statuses[0].SpentCents)
	}
	if statuses[0].RemainingCents != 30000 {
		t.Fatalf("remaining = %d, want 30000", statuses[0].RemainingCents)
	}
}

func TestSuggestHighConfidenceWhenAnchorsAgree(t *testing.T) {
	norms, _ := config.LookupNorms("US")
	p := model.Profile{MonthlyIncomeCents: 400000} // groceries target: 4000*0.12*0.8 = 38400

	var expenses []model.Expense
	for m := 1; m <= 4; m++ {
		expenses = append(expenses, expense("groceries", 40000, testNow.AddDate(0, -m, 0)))
	}

	s := Suggest("groceries", expenses, p, norms, testNow)
	if s.Confidence != model.ConfidenceHigh {
		t.Fatalf("confidence = %v, want high (stable history, agreeing anchors)", s.Confidence)
	}
	if s.MonthsOfHistory != 4 {
		t.Fatalf("months = %d, want 4", s.MonthsOfHistory)
	}
	want := (s.HistoricalCents + s.TargetCents) / 2
	if s.SuggestedCents != want {
		t.Fatalf("suggested = %d, want blended %d", s.SuggestedCents, want)
	}
}

func TestSuggestNoHistoryIsLowConfidence(t *testing.T) {
	norms, _ := config.LookupNorms("US")
	p := model.Profile{MonthlyIncomeCents: 400000}

	s := Suggest("entertainment", nil, p, norms, testNow)
	if s.Confidence != model.ConfidenceLow {
		t.Fatalf("confidence with no history = %v, want low", s.Confidence)
	}
	if s.SuggestedCents != s.TargetCents || s.SuggestedCents <= 0 {
		t.Fatalf("suggested = %d, want the income target %d", s.SuggestedCents, s.TargetCents)
	}
}

func TestSuggestEmptyEverything(t *testing.T) {
	norms, _ := config.LookupNorms("US")

	s := Suggest("misc", nil, model.Profile{}, norms, testNow)
	if s.Confidence != model.ConfidenceLow {
		t.Fatalf("confidence = %v, want low", s.Confidence)
	}
	if s.SuggestedCents != 0 {
		t.Fatalf("suggested = %d, want well-defined 0 for no data", s.SuggestedCents)
	}
}

func TestSuggestVolatileHistoryIsNotHigh(t *testing.T) {
	norms, _ := config.LookupNorms("US")
	p := model.Profile{MonthlyIncomeCents: 400000}

	expenses := []model.Expense{
		expense("travel", 1000, testNow.AddDate(0, -1, 0)),
		expense("travel", 90000, testNow.AddDate(0, -2, 0)),
		expense("travel", 2000, testNow.AddDate(0, -3, 0)),
	}

	s := Suggest("travel", expenses, p, norms, testNow)
	if s.Confidence == model.ConfidenceHigh {
		t.Fatal("volatile history produced a high-confidence suggestion")
	}
}

func TestOverrunOneOffVsTrending(t *testing.T) {
	budgets := []model.CategoryBudget{
		{Category: "electronics", LimitCents: 20000},
		{Category: "dining", LimitCents: 10000},
	}
	expenses := []model.Expense{
		// electronics: one big purchase blows the budget
		expense("electronics", 25000, testNow),
		// dining: death by a thousand cuts
		expense("dining", 3000, testNow),
		expense("dining", 3000, testNow),
		expense("dining", 3000, testNow),
		expense("dining", 3000, testNow),
		expense("dining", 3000, testNow),
	}

	prompts := OverrunPrompts(budgets, expenses, testNow)
	if len(prompts) != 2 {
		t.Fatalf("prompts = %d, want 2", len(prompts))
	}

	byCategory := make(map[model.ExpenseCategory]model.BudgetOverrunPrompt)
	for _, p := range prompts {
		byCategory[p.Category] = p
	}

	if got := byCategory["electronics"].Reason; got != model.PromptOneOff {
		t.Errorf("electronics reason = %v, want potential-one-off", got)
	}
	if got := byCategory["dining"].Reason; got != model.PromptTrendingHigh {
		t.Errorf("dining reason = %v, want trending-high", got)
	}
	if byCategory["dining"].OverageCents != 5000 {
		t.Errorf("dining overage = %d, want 5000", byCategory["dining"].OverageCents)
	}
}

func TestOverrunUnplannedCategory(t *testing.T) {
	expenses := []model.Expense{expense("pets", 8000, testNow)}

	prompts := OverrunPrompts(nil, expenses, testNow)
	if len(prompts) != 1 {
		t.Fatalf("prompts = %d, want 1", len(prompts))
	}
	if prompts[0].Reason != model.PromptUnplannedCategory {
		t.Fatalf("reason = %v, want unplanned-category", prompts[0].Reason)
	}
	if prompts[0].OverageCents != 8000 {
		t.Fatalf("overage = %d, want the whole 8000 spend", prompts[0].OverageCents)
	}
}

func TestExactlyAtLimitRaisesNoPrompt(t *testing.T) {
	budgets := []model.CategoryBudget{{Category: "dining", LimitCents: 10000}}
	expenses := []model.Expense{expense("dining", 10000, testNow)}

	if prompts := OverrunPrompts(budgets, expenses, testNow); len(prompts) != 0 {
		t.Fatalf("prompt raised at exactly 100%%: %+v", prompts)
	}
}
