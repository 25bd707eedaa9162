// Package allocate splits logged expenses into savings-bucket amounts.
package allocate

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

// TaxAdjustedBase reduces a tax-inclusive amount by the effective income-tax
// rate. Pure function of its inputs; rates outside (0,1) leave the amount
// untouched.
func TaxAdjustedBase(amountCents int64, taxRate float64, includesTax bool) int64 {
	if !includesTax || taxRate <= 0 || taxRate >= 1 {
		return amountCents
	}
	base := decimal.NewFromInt(amountCents).Mul(decimal.NewFromFloat(1 - taxRate))
	return base.Round(0).IntPart()
}

// SavingTax computes the automatic skim taken from an expense on top of the
// bucket split. Rates outside (0,1) skim nothing.
func SavingTax(amountCents int64, rate float64) int64 {
	if amountCents <= 0 || rate <= 0 || rate >= 1 {
		return 0
	}
	return decimal.NewFromInt(amountCents).Mul(decimal.NewFromFloat(rate)).Round(0).IntPart()
}

// Split divides baseCents across the three buckets. The bucket amounts sum
// exactly to round(base * total fraction): each bucket gets the floor of its
// ideal share and leftover cents go to the largest remainders first
// (ties broken by bucket order, emergency first). The safe/high-risk split
// never re-rounds independently: high-risk is the exact complement.
func Split(baseCents int64, p model.SavingsPercentages) model.AllocationBreakdown {
	base := decimal.NewFromInt(baseCents)
	fracs := []decimal.Decimal{
		decimal.NewFromFloat(p.Emergency),
		decimal.NewFromFloat(p.Invest),
		decimal.NewFromFloat(p.Fun),
	}

	total := decimal.Zero
	for _, f := range fracs {
		total = total.Add(f)
	}
	reserved := base.Mul(total).Round(0).IntPart()

	cents := make([]int64, len(fracs))
	remainders := make([]decimal.Decimal, len(fracs))
	var floorSum int64
	for i, f := range fracs {
		ideal := base.Mul(f)
		floor := ideal.Floor()
		cents[i] = floor.IntPart()
		remainders[i] = ideal.Sub(floor)
		floorSum += cents[i]
	}

	// Hand out the leftover cents by largest remainder.
	order := []int{0, 1, 2}
	sort.SliceStable(order, func(a, b int) bool {
		return remainders[order[a]].GreaterThan(remainders[order[b]])
	})
	leftover := reserved - floorSum
	for i := 0; leftover > 0; i++ {
		cents[order[i%len(order)]]++
		leftover--
	}

	safe := decimal.NewFromInt(cents[1]).
		Mul(decimal.NewFromFloat(p.SafeInvestmentSplit)).
		Round(0).IntPart()
	if safe > cents[1] {
		safe = cents[1]
	}

	return model.AllocationBreakdown{
		EmergencyCents:          cents[0],
		InvestmentCents:         cents[1],
		FunCents:                cents[2],
		SafeInvestmentCents:     safe,
		HighRiskInvestmentCents: cents[1] - safe,
	}
}

// Allocate turns an expense input into a stored Expense with its breakdown.
// The amount must be positive and the percentages within [0,1]; both are
// boundary checks, valid inputs never fail.
func Allocate(in model.ExpenseInput, pcts model.SavingsPercentages, norms config.CountryNorms) (model.Expense, error) {
	if in.AmountCents <= 0 {
		return model.Expense{}, fmt.Errorf("expense amount must be positive, got %d cents", in.AmountCents)
	}
	if !pcts.Valid() {
		return model.Expense{}, fmt.Errorf("savings percentages out of range: %+v", pcts)
	}

	taxRate := norms.IncomeTaxRate
	if in.TaxRateOverride > 0 {
		taxRate = in.TaxRateOverride
	}
	base := TaxAdjustedBase(in.AmountCents, taxRate, in.IncludesTax)

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	return model.Expense{
		ID:          uuid.NewString(),
		AmountCents: in.AmountCents,
		Category:    in.Category,
		Description: in.Description,
		Date:        date,
		IncludesTax: in.IncludesTax,
		Breakdown:   Split(base, pcts),
	}, nil
}
