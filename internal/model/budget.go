package model

import "time"

// CategoryBudget is a user-set monthly spending limit for one category.
type CategoryBudget struct {
	ID         string
	Category   ExpenseCategory
	LimitCents int64
	CreatedAt  time.Time
}

// BudgetHealth is the tier of a category's budget usage.
type BudgetHealth int

// Budget health tiers. Boundaries are lower-inclusive: usage of exactly 70%
// is Warning, exactly 90% is Critical, and OverBudget requires strictly more
// than 100%.
const (
	BudgetHealthy BudgetHealth = iota
	BudgetWarning
	BudgetCritical
	BudgetOverBudget
)

func (h BudgetHealth) String() string {
	switch h {
	case BudgetWarning:
		return "warning"
	case BudgetCritical:
		return "critical"
	case BudgetOverBudget:
		return "over-budget"
	default:
		return "healthy"
	}
}

// BudgetStatus is the derived state of one category for the current month.
type BudgetStatus struct {
	Category       ExpenseCategory
	SpentCents     int64
	LimitCents     int64
	RemainingCents int64
	PercentageUsed float64 // 0-1 scale; 0 when no limit is set
	Health         BudgetHealth
}

// SuggestionConfidence grades how trustworthy a budget suggestion is.
type SuggestionConfidence int

// Suggestion confidence levels.
const (
	ConfidenceLow SuggestionConfidence = iota
	ConfidenceMedium
	ConfidenceHigh
)

func (c SuggestionConfidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// BudgetSuggestion blends trailing history with a profile-derived target.
type BudgetSuggestion struct {
	Category        ExpenseCategory
	SuggestedCents  int64
	HistoricalCents int64 // trailing mean; 0 when no history
	TargetCents     int64 // income-fraction anchor; 0 when income unknown
	MonthsOfHistory int
	Confidence      SuggestionConfidence
}

// BudgetPromptReason classifies why a category ran over budget.
type BudgetPromptReason int

// Overrun reasons.
const (
	// PromptOneOff means a single large expense dominates the overage.
	PromptOneOff BudgetPromptReason = iota
	// PromptTrendingHigh means the overage is spread across many smaller
	// expenses.
	PromptTrendingHigh
	// PromptUnplannedCategory means no budget existed for the category.
	PromptUnplannedCategory
)

func (r BudgetPromptReason) String() string {
	switch r {
	case PromptTrendingHigh:
		return "trending-high"
	case PromptUnplannedCategory:
		return "unplanned-category"
	default:
		return "potential-one-off"
	}
}

// BudgetOverrunPrompt is raised for categories that exceeded their limit.
type BudgetOverrunPrompt struct {
	Category     ExpenseCategory
	OverageCents int64
	Reason       BudgetPromptReason
	// LargestExpenseCents backs the one-off classification.
	LargestExpenseCents int64
	ExpenseCount        int
}
