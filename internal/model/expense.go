package model

import "time"

// ExpenseCategory is a free-form spending category key, lowercased.
type ExpenseCategory = string

// ExpenseInput is a raw expense event before allocation.
type ExpenseInput struct {
	AmountCents int64
	Category    ExpenseCategory
	Description string
	Date        time.Time
	IncludesTax bool
	// TaxRateOverride replaces the country income-tax rate when > 0.
	TaxRateOverride float64
	// Percentages overrides the recommender when non-nil (manual mode).
	Percentages *SavingsPercentages
}

// AllocationBreakdown holds the per-bucket amounts derived from one expense.
// All fields are integer cents; SafeInvestmentCents + HighRiskInvestmentCents
// always equals InvestmentCents.
type AllocationBreakdown struct {
	EmergencyCents          int64
	InvestmentCents         int64
	FunCents                int64
	SafeInvestmentCents     int64
	HighRiskInvestmentCents int64
}

// TotalCents returns the full reserved amount across the three buckets.
func (b AllocationBreakdown) TotalCents() int64 {
	return b.EmergencyCents + b.InvestmentCents + b.FunCents
}

// Expense is a logged expense with its immutable allocation breakdown.
type Expense struct {
	ID          string
	AmountCents int64
	Category    ExpenseCategory
	Description string
	Date        time.Time
	IncludesTax bool
	Breakdown   AllocationBreakdown
}
