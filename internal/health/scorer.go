// Package health computes the composite financial health score.
package health

import (
	"math"
	"sort"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

// Sub-score weights. They sum to 1.
const (
	weightSavingsRate = 0.25
	weightEmergency   = 0.25
	weightBudgets     = 0.20
	weightGoals       = 0.15
	weightDebt        = 0.15
)

// neutralScore stands in for signals with no data, so an empty history
// yields a defined mid-range result instead of an error.
const neutralScore = 50.0

// Input is the snapshot of signals the scorer reads.
type Input struct {
	Profile           model.Profile
	Norms             config.CountryNorms
	Vaults            []model.SmartVault
	BudgetStatuses    []model.BudgetStatus
	MonthlySavedCents int64
}

// Score combines the five sub-scores into the composite health score.
func Score(in Input) model.FinancialHealthScore {
	subs := []model.SubScore{
		{Metric: model.MetricSavingsRate, Weight: weightSavingsRate},
		{Metric: model.MetricEmergencyCoverage, Weight: weightEmergency},
		{Metric: model.MetricBudgetAdherence, Weight: weightBudgets},
		{Metric: model.MetricGoalProgress, Weight: weightGoals},
		{Metric: model.MetricDebtRatio, Weight: weightDebt},
	}

	hasIncome := in.Profile.MonthlyIncomeCents > 0
	hasBudgets := len(in.BudgetStatuses) > 0
	goals := activeGoals(in.Vaults)

	subs[0].Score = savingsRateScore(in, hasIncome)
	subs[1].Score = emergencyScore(in)
	subs[2].Score = budgetScore(in.BudgetStatuses)
	subs[3].Score = goalScore(goals)
	subs[4].Score = debtScore(in.Profile)

	var overall float64
	for _, s := range subs {
		overall += s.Score * s.Weight
	}
	overall = clampScore(overall)

	result := model.FinancialHealthScore{
		OverallScore:     overall,
		Level:            model.HealthLevelForScore(overall),
		SubScores:        subs,
		InsufficientData: !hasIncome && !hasBudgets && len(goals) == 0,
	}

	ranked := make([]model.SubScore, len(subs))
	copy(ranked, subs)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	for _, s := range ranked[:2] {
		result.TopStrengths = append(result.TopStrengths, s)
	}
	for i := len(ranked) - 1; i >= 0 && len(result.ImprovementAreas) < 3; i-- {
		s := ranked[i]
		if s.Score >= 90 {
			break
		}
		result.ImprovementAreas = append(result.ImprovementAreas, model.ImprovementArea{
			Metric:             s.Metric,
			Score:              s.Score,
			Priority:           priorityFor(s.Score),
			EstimatedPointGain: math.Round((90-s.Score)*s.Weight*10) / 10,
			Action:             actionFor(s.Metric),
		})
	}

	return result
}

func savingsRateScore(in Input, hasIncome bool) float64 {
	if !hasIncome {
		return neutralScore
	}
	target := in.Norms.BaselineSavingsRate
	if target <= 0 {
		return neutralScore
	}
	rate := float64(in.MonthlySavedCents) / float64(in.Profile.MonthlyIncomeCents)
	return clampScore(rate / target * 100)
}

func emergencyScore(in Input) float64 {
	if in.Profile.MonthlyExpensesCents <= 0 {
		return neutralScore
	}
	coverage := in.Profile.EmergencyCoverage(in.Norms.EmergencyFundMonths)
	return clampScore(coverage * 100)
}

// budgetScore averages per-category adherence: full marks up to the 70%
// warning line, falling linearly to zero at 150% of the limit.
func budgetScore(statuses []model.BudgetStatus) float64 {
	if len(statuses) == 0 {
		return neutralScore
	}
	var sum float64
	for _, s := range statuses {
		used := s.PercentageUsed
		switch {
		case used <= 0.7:
			sum += 100
		case used >= 1.5:
			// nothing
		default:
			sum += (1.5 - used) / 0.8 * 100
		}
	}
	return clampScore(sum / float64(len(statuses)))
}

func goalScore(goals []model.SmartVault) float64 {
	if len(goals) == 0 {
		return neutralScore
	}
	var sum float64
	for _, v := range goals {
		sum += v.Progress() * 100
	}
	return clampScore(sum / float64(len(goals)))
}

// debtScore treats debt relative to annual income as a proxy: debt-free is
// a perfect score, debt at or above one year of income is zero.
func debtScore(p model.Profile) float64 {
	if !p.HasDebts || p.DebtCents <= 0 {
		return 100
	}
	if p.MonthlyIncomeCents <= 0 {
		return 20
	}
	ratio := float64(p.DebtCents) / float64(p.MonthlyIncomeCents*12)
	return clampScore((1 - ratio) * 100)
}

func activeGoals(vaults []model.SmartVault) []model.SmartVault {
	var goals []model.SmartVault
	for _, v := range vaults {
		if !v.Archived && v.TargetCents > 0 {
			goals = append(goals, v)
		}
	}
	return goals
}

func priorityFor(score float64) model.VaultPriority {
	switch {
	case score < 40:
		return model.PriorityCritical
	case score < 60:
		return model.PriorityHigh
	case score < 75:
		return model.PriorityMedium
	default:
		return model.PriorityLow
	}
}

func actionFor(m model.HealthMetric) string {
	switch m {
	case model.MetricSavingsRate:
		return "raise your save rate or log income skims more consistently"
	case model.MetricEmergencyCoverage:
		return "route more of each expense's emergency share into your emergency vault"
	case model.MetricBudgetAdherence:
		return "trim spending in the categories running past their limits"
	case model.MetricGoalProgress:
		return "bump the priority of stalled vaults so they win a larger share"
	default:
		return "pay down outstanding debt before growing investments"
	}
}

func clampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
