package model

// RiskLevel is the user's self-declared investment risk appetite.
type RiskLevel int

// Risk levels.
const (
	RiskConservative RiskLevel = iota
	RiskBalanced
	RiskAggressive
)

func (r RiskLevel) String() string {
	switch r {
	case RiskAggressive:
		return "aggressive"
	case RiskBalanced:
		return "balanced"
	default:
		return "conservative"
	}
}

// ParseRiskLevel maps a config string to a risk level, defaulting to
// balanced for unknown values.
func ParseRiskLevel(s string) RiskLevel {
	switch s {
	case "conservative":
		return RiskConservative
	case "aggressive":
		return RiskAggressive
	default:
		return RiskBalanced
	}
}

// Profile holds the user facts the recommender and advisors read.
type Profile struct {
	Age                int
	Risk               RiskLevel
	MonthlyIncomeCents int64
	HasDebts           bool
	DebtCents          int64
	CountryCode        string
	Employed           bool
	Student            bool
	// SaveRate is the fraction of each paycheck skimmed into vaults.
	SaveRate float64
	// SavingTaxRate is the skim taken from each expense for vaults.
	SavingTaxRate float64
	// EmergencyBalanceCents is the current emergency-fund balance.
	EmergencyBalanceCents int64
	// MonthlyExpensesCents estimates one month of spending, used for
	// emergency-fund coverage.
	MonthlyExpensesCents int64
}

// EmergencyCoverage returns months-of-expenses currently covered divided by
// the recommended target months. Zero denominators read as 0.
func (p Profile) EmergencyCoverage(targetMonths float64) float64 {
	if targetMonths <= 0 || p.MonthlyExpensesCents <= 0 {
		return 0
	}
	months := float64(p.EmergencyBalanceCents) / float64(p.MonthlyExpensesCents)
	return months / targetMonths
}
