// Package model defines domain types for the stash savings engine.
package model

// Default split used when a percentage set degenerates to zero.
const (
	DefaultEmergencyPct = 0.15
	DefaultInvestPct    = 0.05
	DefaultFunPct       = 0.05

	// DefaultReserveCap is the maximum total fraction of an expense that
	// may be reserved for savings unless the user raises it.
	DefaultReserveCap = 0.5
)

// SavingsPercentages holds the fraction of each expense diverted into the
// three savings buckets, plus the safe share of the investment bucket.
// Values are fractions in [0,1]. Instances are value types: every derivation
// returns a fresh copy.
type SavingsPercentages struct {
	Emergency           float64
	Invest              float64
	Fun                 float64
	SafeInvestmentSplit float64
}

// DefaultPercentages returns the fixed fallback split.
func DefaultPercentages() SavingsPercentages {
	return SavingsPercentages{
		Emergency:           DefaultEmergencyPct,
		Invest:              DefaultInvestPct,
		Fun:                 DefaultFunPct,
		SafeInvestmentSplit: 0.65,
	}
}

// Total returns the sum of the three bucket fractions.
func (p SavingsPercentages) Total() float64 {
	return p.Emergency + p.Invest + p.Fun
}

// Valid reports whether every fraction lies in [0,1].
func (p SavingsPercentages) Valid() bool {
	for _, f := range []float64{p.Emergency, p.Invest, p.Fun, p.SafeInvestmentSplit} {
		if f < 0 || f > 1 {
			return false
		}
	}
	return true
}

// Normalized rescales the three fractions to sum to exactly 1. A zero total
// falls back to the fixed default split.
func (p SavingsPercentages) Normalized() SavingsPercentages {
	total := p.Total()
	if total <= 0 {
		d := DefaultPercentages()
		d.SafeInvestmentSplit = p.SafeInvestmentSplit
		if d.SafeInvestmentSplit <= 0 {
			d.SafeInvestmentSplit = 0.65
		}
		return d
	}
	return SavingsPercentages{
		Emergency:           p.Emergency / total,
		Invest:              p.Invest / total,
		Fun:                 p.Fun / total,
		SafeInvestmentSplit: p.SafeInvestmentSplit,
	}
}

// AdjustWithinBudget proportionally rescales the split so the total does not
// exceed maxTotal, preserving the relative ratios. A non-positive maxTotal
// uses DefaultReserveCap.
func (p SavingsPercentages) AdjustWithinBudget(maxTotal float64) SavingsPercentages {
	if maxTotal <= 0 {
		maxTotal = DefaultReserveCap
	}
	total := p.Total()
	if total <= maxTotal {
		return p
	}
	scale := maxTotal / total
	return SavingsPercentages{
		Emergency:           p.Emergency * scale,
		Invest:              p.Invest * scale,
		Fun:                 p.Fun * scale,
		SafeInvestmentSplit: p.SafeInvestmentSplit,
	}
}

// Clamped coerces every fraction into [0,1]. Reserved for derived values;
// user-supplied percentages are validated, not clamped.
func (p SavingsPercentages) Clamped() SavingsPercentages {
	clamp := func(f float64) float64 {
		if f < 0 {
			return 0
		}
		if f > 1 {
			return 1
		}
		return f
	}
	return SavingsPercentages{
		Emergency:           clamp(p.Emergency),
		Invest:              clamp(p.Invest),
		Fun:                 clamp(p.Fun),
		SafeInvestmentSplit: clamp(p.SafeInvestmentSplit),
	}
}
