// Package budget derives budget statuses, suggestions, and overrun prompts
// from spending history.
package budget

import (
	"math"
	"sort"
	"time"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

// Suggestion tuning.
const (
	// stableMonths is the history depth required for a HIGH-confidence
	// suggestion.
	stableMonths = 3
	// anchorTolerance is the max relative gap between the historical and
	// target anchors for them to "agree".
	anchorTolerance = 0.25
	// emergingMonths is the history depth below which a pattern is
	// considered emerging (LOW confidence).
	emergingMonths = 2
)

// incomeFractions maps known categories to a reasonable fraction of monthly
// income. Static lookup data; unknown categories use defaultIncomeFraction.
var incomeFractions = map[model.ExpenseCategory]float64{
	"housing":       0.30,
	"rent":          0.30,
	"groceries":     0.12,
	"transport":     0.08,
	"utilities":     0.07,
	"dining":        0.06,
	"entertainment": 0.05,
	"health":        0.05,
	"shopping":      0.05,
	"travel":        0.04,
	"subscriptions": 0.02,
}

const defaultIncomeFraction = 0.05

// HealthFor buckets a usage fraction into its tier. Boundaries are
// lower-inclusive: exactly 70% is warning, exactly 90% is critical, and
// over-budget requires strictly more than 100%.
func HealthFor(percentUsed float64) model.BudgetHealth {
	switch {
	case percentUsed > 1.0:
		return model.BudgetOverBudget
	case percentUsed >= 0.9:
		return model.BudgetCritical
	case percentUsed >= 0.7:
		return model.BudgetWarning
	default:
		return model.BudgetHealthy
	}
}

// StatusFor computes one category's derived status. A zero limit reads as 0%
// used rather than dividing by zero.
func StatusFor(b model.CategoryBudget, spentCents int64) model.BudgetStatus {
	status := model.BudgetStatus{
		Category:       b.Category,
		SpentCents:     spentCents,
		LimitCents:     b.LimitCents,
		RemainingCents: b.LimitCents - spentCents,
	}
	if b.LimitCents > 0 {
		status.PercentageUsed = float64(spentCents) / float64(b.LimitCents)
	}
	status.Health = HealthFor(status.PercentageUsed)
	return status
}

// Statuses computes the status of every budgeted category for the month
// containing now.
func Statuses(budgets []model.CategoryBudget, expenses []model.Expense, now time.Time) []model.BudgetStatus {
	spent := monthSpend(expenses, now)

	statuses := make([]model.BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		statuses = append(statuses, StatusFor(b, spent[b.Category]))
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Category < statuses[j].Category
	})
	return statuses
}

// Suggest blends the trailing historical mean for a category with a
// profile-derived income fraction. Empty history is not an error: it yields
// a LOW-confidence suggestion from whatever anchors exist.
func Suggest(category model.ExpenseCategory, expenses []model.Expense, p model.Profile, norms config.CountryNorms, now time.Time) model.BudgetSuggestion {
	months := trailingMonths(expenses, category, now)

	s := model.BudgetSuggestion{
		Category:        category,
		MonthsOfHistory: len(months),
	}

	if len(months) > 0 {
		var sum int64
		for _, m := range months {
			sum += m
		}
		s.HistoricalCents = sum / int64(len(months))
	}

	if p.MonthlyIncomeCents > 0 {
		frac, ok := incomeFractions[category]
		if !ok {
			frac = defaultIncomeFraction
		}
		// The country baseline savings rate shrinks the spendable share.
		s.TargetCents = int64(math.Round(float64(p.MonthlyIncomeCents) * frac * (1 - norms.BaselineSavingsRate)))
	}

	historyReliable := len(months) >= stableMonths && stable(months, s.HistoricalCents)
	targetReliable := s.TargetCents > 0

	switch {
	case historyReliable && targetReliable && anchorsAgree(s.HistoricalCents, s.TargetCents):
		s.SuggestedCents = (s.HistoricalCents + s.TargetCents) / 2
		s.Confidence = model.ConfidenceHigh
	case historyReliable:
		s.SuggestedCents = s.HistoricalCents
		s.Confidence = model.ConfidenceMedium
	case targetReliable && len(months) < emergingMonths:
		s.SuggestedCents = s.TargetCents
		s.Confidence = model.ConfidenceLow
	case targetReliable:
		// Some history, but not stable enough to trust on its own.
		s.SuggestedCents = (s.HistoricalCents + s.TargetCents) / 2
		s.Confidence = model.ConfidenceMedium
	default:
		s.SuggestedCents = s.HistoricalCents
		s.Confidence = model.ConfidenceLow
	}

	return s
}

// OverrunPrompts raises a prompt for every over-budget category and for
// unbudgeted categories with spending this month.
func OverrunPrompts(budgets []model.CategoryBudget, expenses []model.Expense, now time.Time) []model.BudgetOverrunPrompt {
	spent := monthSpend(expenses, now)
	largest := make(map[model.ExpenseCategory]int64)
	counts := make(map[model.ExpenseCategory]int)
	for _, e := range expenses {
		if !sameMonth(e.Date, now) {
			continue
		}
		counts[e.Category]++
		if e.AmountCents > largest[e.Category] {
			largest[e.Category] = e.AmountCents
		}
	}

	budgeted := make(map[model.ExpenseCategory]bool, len(budgets))
	var prompts []model.BudgetOverrunPrompt

	for _, b := range budgets {
		budgeted[b.Category] = true
		status := StatusFor(b, spent[b.Category])
		if status.Health != model.BudgetOverBudget {
			continue
		}

		overage := status.SpentCents - status.LimitCents
		reason := model.PromptTrendingHigh
		// A single expense at least as large as the overage means the
		// month was fine without it.
		if largest[b.Category] >= overage {
			reason = model.PromptOneOff
		}
		prompts = append(prompts, model.BudgetOverrunPrompt{
			Category:            b.Category,
			OverageCents:        overage,
			Reason:              reason,
			LargestExpenseCents: largest[b.Category],
			ExpenseCount:        counts[b.Category],
		})
	}

	for category, amount := range spent {
		if budgeted[category] || amount <= 0 {
			continue
		}
		prompts = append(prompts, model.BudgetOverrunPrompt{
			Category:            category,
			OverageCents:        amount,
			Reason:              model.PromptUnplannedCategory,
			LargestExpenseCents: largest[category],
			ExpenseCount:        counts[category],
		})
	}

	sort.Slice(prompts, func(i, j int) bool {
		return prompts[i].Category < prompts[j].Category
	})
	return prompts
}

// monthSpend sums expense amounts per category for the month containing now.
func monthSpend(expenses []model.Expense, now time.Time) map[model.ExpenseCategory]int64 {
	spent := make(map[model.ExpenseCategory]int64)
	for _, e := range expenses {
		if sameMonth(e.Date, now) {
			spent[e.Category] += e.AmountCents
		}
	}
	return spent
}

// trailingMonths returns the per-month spend for the category over the
// months preceding the current one, oldest first, trimmed to months that
// actually had spending.
func trailingMonths(expenses []model.Expense, category model.ExpenseCategory, now time.Time) []int64 {
	byMonth := make(map[string]int64)
	for _, e := range expenses {
		if e.Category != category || sameMonth(e.Date, now) || e.Date.After(now) {
			continue
		}
		byMonth[e.Date.Format("2006-01")] += e.AmountCents
	}

	keys := make([]string, 0, len(byMonth))
	for k := range byMonth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	months := make([]int64, 0, len(keys))
	for _, k := range keys {
		months = append(months, byMonth[k])
	}
	return months
}

// stable reports whether every month sits within 50% of the mean.
func stable(months []int64, mean int64) bool {
	if mean <= 0 {
		return false
	}
	for _, m := range months {
		if ratio := float64(m) / float64(mean); ratio < 0.5 || ratio > 1.5 {
			return false
		}
	}
	return true
}

// anchorsAgree reports whether the two anchors are within the tolerance
// band of each other.
func anchorsAgree(historical, target int64) bool {
	if historical <= 0 || target <= 0 {
		return false
	}
	hi, lo := historical, target
	if lo > hi {
		hi, lo = lo, hi
	}
	return float64(hi-lo)/float64(hi) <= anchorTolerance
}

func sameMonth(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month()
}
