// Package recommend derives savings percentage recommendations from the
// user profile and country norms.
package recommend

import (
	"fmt"
	"math"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

// SavingsPlan projects what the recommended split means in money terms.
type SavingsPlan struct {
	MonthlyReserveCents     int64
	EmergencyTargetCents    int64
	MonthsToEmergencyTarget int // 0 when not computable or already funded
}

// Result is the recommender output.
type Result struct {
	Percentages             model.SavingsPercentages
	SafeInvestmentRatio     float64
	HighRiskInvestmentRatio float64
	Rationale               []string
	Plan                    SavingsPlan
	// AutoAdjusted is true when the computed split exceeded the reserve
	// cap and had to be rescaled.
	AutoAdjusted bool
}

// base invest fractions per risk level
const (
	investConservative = 0.04
	investBalanced     = 0.06
	investAggressive   = 0.09
)

// safeRatioFor returns the safe share of the invest bucket for a risk level.
func safeRatioFor(risk model.RiskLevel) float64 {
	switch risk {
	case model.RiskConservative:
		return 0.80
	case model.RiskAggressive:
		return 0.50
	default:
		return 0.65
	}
}

// Recommend computes the recommended split for a profile. current, when
// non-nil, is blended in at half weight to avoid abrupt swings for users who
// already tuned their percentages. cap bounds the total reserved fraction;
// non-positive values use the default.
func Recommend(p model.Profile, norms config.CountryNorms, current *model.SavingsPercentages, cap float64) Result {
	var rationale []string

	emergency := model.DefaultEmergencyPct
	fun := model.DefaultFunPct

	invest := investBalanced
	switch p.Risk {
	case model.RiskConservative:
		invest = investConservative
	case model.RiskAggressive:
		invest = investAggressive
	}
	rationale = append(rationale, fmt.Sprintf("%s risk profile", p.Risk))

	coverage := p.EmergencyCoverage(norms.EmergencyFundMonths)
	switch {
	case coverage < 1.0:
		// Underfunded emergency fund widens the emergency share, more so
		// the farther from the target.
		bump := (1.0 - coverage) * 0.10
		emergency += bump
		rationale = append(rationale, fmt.Sprintf(
			"emergency fund at %.0f%% of the %.0f-month target, emergency share raised",
			coverage*100, norms.EmergencyFundMonths))
	case coverage >= 1.0:
		// Fully covered: shrink emergency and push the difference into
		// investments.
		shift := emergency * 0.5
		emergency -= shift
		invest += shift
		rationale = append(rationale, "emergency fund fully covered, shifting toward investments")
	}

	if p.HasDebts {
		emergency += 0.05
		rationale = append(rationale, "outstanding debts widen the emergency buffer")
	}
	if p.Age > 0 && p.Age < 25 {
		emergency += 0.03
		rationale = append(rationale, "young savers carry a larger emergency share")
	}

	// Country baseline acts as a floor on the total reserved fraction.
	if total := emergency + invest + fun; total < norms.BaselineSavingsRate {
		invest += norms.BaselineSavingsRate - total
		rationale = append(rationale, fmt.Sprintf(
			"raised to the %.0f%% country baseline savings rate", norms.BaselineSavingsRate*100))
	}

	safeRatio := safeRatioFor(p.Risk)
	pcts := model.SavingsPercentages{
		Emergency:           emergency,
		Invest:              invest,
		Fun:                 fun,
		SafeInvestmentSplit: safeRatio,
	}.Clamped()

	if current != nil && current.Valid() {
		pcts = model.SavingsPercentages{
			Emergency:           (pcts.Emergency + current.Emergency) / 2,
			Invest:              (pcts.Invest + current.Invest) / 2,
			Fun:                 (pcts.Fun + current.Fun) / 2,
			SafeInvestmentSplit: safeRatio,
		}
		rationale = append(rationale, "blended with your current percentages")
	}

	adjusted := pcts.AdjustWithinBudget(cap)
	autoAdjusted := adjusted != pcts
	if autoAdjusted {
		rationale = append(rationale, "rescaled to stay within the reserve cap")
	}

	return Result{
		Percentages:             adjusted,
		SafeInvestmentRatio:     safeRatio,
		HighRiskInvestmentRatio: 1 - safeRatio,
		Rationale:               rationale,
		Plan:                    buildPlan(p, norms, adjusted),
		AutoAdjusted:            autoAdjusted,
	}
}

func buildPlan(p model.Profile, norms config.CountryNorms, pcts model.SavingsPercentages) SavingsPlan {
	plan := SavingsPlan{}

	if p.MonthlyIncomeCents > 0 {
		plan.MonthlyReserveCents = int64(math.Round(float64(p.MonthlyIncomeCents) * pcts.Total()))
	}
	if p.MonthlyExpensesCents > 0 {
		plan.EmergencyTargetCents = int64(math.Round(float64(p.MonthlyExpensesCents) * norms.EmergencyFundMonths))
	}

	gap := plan.EmergencyTargetCents - p.EmergencyBalanceCents
	if gap > 0 && p.MonthlyIncomeCents > 0 && pcts.Emergency > 0 {
		perMonth := float64(p.MonthlyIncomeCents) * pcts.Emergency
		if perMonth > 0 {
			plan.MonthsToEmergencyTarget = int(math.Ceil(float64(gap) / perMonth))
		}
	}

	return plan
}
