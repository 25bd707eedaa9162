package model

import (
	"math"
	"testing"
)

func TestNormalizedSumsToOne(t *testing.T) {
	cases := []SavingsPercentages{
		{Emergency: 0.15, Invest: 0.05, Fun: 0.05},
		{Emergency: 0.5, Invest: 0.5, Fun: 0.5},
		{Emergency: 0.01, Invest: 0, Fun: 0},
		{Emergency: 0.2, Invest: 0.7, Fun: 0.1},
	}

	for _, p := range cases {
		n := p.Normalized()
		if math.Abs(n.Total()-1.0) > 1e-9 {
			t.Errorf("Normalized(%+v).Total() = %v, want 1.0", p, n.Total())
		}
	}
}

func TestNormalizedZeroTotalFallsBackToDefault(t *testing.T) {
	n := SavingsPercentages{SafeInvestmentSplit: 0.5}.Normalized()

	want := DefaultPercentages()
	if n.Emergency != want.Emergency || n.Invest != want.Invest || n.Fun != want.Fun {
		t.Fatalf("zero-total Normalized() = %+v, want default triple %+v", n, want)
	}
	if n.SafeInvestmentSplit != 0.5 {
		t.Fatalf("SafeInvestmentSplit = %v, want preserved 0.5", n.SafeInvestmentSplit)
	}
}

func TestAdjustWithinBudgetPreservesRatios(t *testing.T) {
	p := SavingsPercentages{Emergency: 0.4, Invest: 0.2, Fun: 0.2}
	adj := p.AdjustWithinBudget(0.5)

	if math.Abs(adj.Total()-0.5) > 1e-9 {
		t.Fatalf("adjusted total = %v, want 0.5", adj.Total())
	}
	// Emergency was twice Invest before; must remain so.
	if math.Abs(adj.Emergency-2*adj.Invest) > 1e-9 {
		t.Fatalf("ratio broken: emergency=%v invest=%v", adj.Emergency, adj.Invest)
	}
}

func TestAdjustWithinBudgetNoopUnderCap(t *testing.T) {
	p := SavingsPercentages{Emergency: 0.1, Invest: 0.1, Fun: 0.1}
	if adj := p.AdjustWithinBudget(0.5); adj != p {
		t.Fatalf("under-cap split changed: %+v -> %+v", p, adj)
	}
}

func TestValidRejectsOutOfRange(t *testing.T) {
	if (SavingsPercentages{Emergency: -0.1}).Valid() {
		t.Error("negative fraction reported valid")
	}
	if (SavingsPercentages{Invest: 1.1}).Valid() {
		t.Error("fraction above 1 reported valid")
	}
	if !(SavingsPercentages{Emergency: 1, Invest: 0, Fun: 0, SafeInvestmentSplit: 1}).Valid() {
		t.Error("boundary fractions reported invalid")
	}
}
