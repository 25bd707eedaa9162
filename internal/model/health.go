package model

// HealthLevel maps an overall score into a named band.
type HealthLevel int

// Health levels. Bands are contiguous and exhaustive over 0-100; selection
// is the first band whose [min,max] contains the score.
const (
	HealthCritical  HealthLevel = iota // 0-39
	HealthNeedsWork                    // 40-59
	HealthFair                         // 60-74
	HealthGood                         // 75-89
	HealthExcellent                    // 90-100
)

func (l HealthLevel) String() string {
	switch l {
	case HealthExcellent:
		return "excellent"
	case HealthGood:
		return "good"
	case HealthFair:
		return "fair"
	case HealthNeedsWork:
		return "needs-work"
	default:
		return "critical"
	}
}

// HealthLevelForScore buckets a 0-100 score into its band.
func HealthLevelForScore(score float64) HealthLevel {
	switch {
	case score >= 90:
		return HealthExcellent
	case score >= 75:
		return HealthGood
	case score >= 60:
		return HealthFair
	case score >= 40:
		return HealthNeedsWork
	default:
		return HealthCritical
	}
}

// HealthMetric names one of the five scored signals.
type HealthMetric int

// Health metrics.
const (
	MetricSavingsRate HealthMetric = iota
	MetricEmergencyCoverage
	MetricBudgetAdherence
	MetricGoalProgress
	MetricDebtRatio
)

func (m HealthMetric) String() string {
	switch m {
	case MetricSavingsRate:
		return "savings-rate"
	case MetricEmergencyCoverage:
		return "emergency-coverage"
	case MetricBudgetAdherence:
		return "budget-adherence"
	case MetricGoalProgress:
		return "goal-progress"
	default:
		return "debt-ratio"
	}
}

// SubScore is one scored signal with its contribution weight.
type SubScore struct {
	Metric HealthMetric
	Score  float64 // 0-100
	Weight float64
}

// ImprovementArea is one ranked suggestion with its estimated payoff.
type ImprovementArea struct {
	Metric             HealthMetric
	Score              float64
	Priority           VaultPriority
	EstimatedPointGain float64
	Action             string
}

// FinancialHealthScore is the derived composite, recomputed on demand and
// never persisted.
type FinancialHealthScore struct {
	OverallScore     float64
	Level            HealthLevel
	SubScores        []SubScore
	TopStrengths     []SubScore
	ImprovementAreas []ImprovementArea
	// InsufficientData marks a low-confidence result computed over empty
	// history.
	InsufficientData bool
}
