package allocate

import (
	"testing"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
)

func TestSplitBucketsSumToReservedTotal(t *testing.T) {
	cases := []struct {
		name      string
		baseCents int64
		pcts      model.SavingsPercentages
	}{
		{"default split on $100", 10000, model.DefaultPercentages()},
		{"odd cents", 9999, model.SavingsPercentages{Emergency: 0.15, Invest: 0.05, Fun: 0.05, SafeInvestmentSplit: 0.65}},
		{"one-cent expense", 1, model.DefaultPercentages()},
		{"third splits", 10001, model.SavingsPercentages{Emergency: 1.0 / 3, Invest: 1.0 / 3, Fun: 1.0 / 3, SafeInvestmentSplit: 0.5}},
		{"everything reserved", 4242, model.SavingsPercentages{Emergency: 0.5, Invest: 0.3, Fun: 0.2, SafeInvestmentSplit: 0.65}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := Split(tc.baseCents, tc.pcts)

			sum := b.EmergencyCents + b.InvestmentCents + b.FunCents
			if sum != b.TotalCents() {
				t.Fatalf("TotalCents() = %d, want %d", b.TotalCents(), sum)
			}

			// The three buckets must sum to the rounded reserved total,
			// never off by a stray cent from independent rounding.
			ideal := float64(tc.baseCents) * tc.pcts.Total()
			if diff := float64(sum) - ideal; diff > 0.5+1e-9 || diff < -0.5-1e-9 {
				t.Fatalf("buckets sum %d differs from ideal %.4f by more than half a cent", sum, ideal)
			}

			if b.SafeInvestmentCents+b.HighRiskInvestmentCents != b.InvestmentCents {
				t.Fatalf("safe %d + high-risk %d != investment %d",
					b.SafeInvestmentCents, b.HighRiskInvestmentCents, b.InvestmentCents)
			}
			if b.SafeInvestmentCents < 0 || b.HighRiskInvestmentCents < 0 {
				t.Fatalf("negative investment tranche: %+v", b)
			}
		})
	}
}

func TestSplitZeroPercentages(t *testing.T) {
	b := Split(10000, model.SavingsPercentages{})
	if b.TotalCents() != 0 {
		t.Fatalf("zero percentages reserved %d cents, want 0", b.TotalCents())
	}
}

func TestTaxAdjustedBase(t *testing.T) {
	cases := []struct {
		name        string
		amount      int64
		rate        float64
		includesTax bool
		want        int64
	}{
		{"tax excluded", 10000, 0.22, false, 10000},
		{"tax included", 10000, 0.22, true, 7800},
		{"half-up rounding", 999, 0.5, true, 500},
		{"zero rate", 10000, 0, true, 10000},
		{"rate of one", 10000, 1, true, 10000},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := TaxAdjustedBase(tc.amount, tc.rate, tc.includesTax); got != tc.want {
				t.Fatalf("TaxAdjustedBase(%d, %v, %v) = %d, want %d",
					tc.amount, tc.rate, tc.includesTax, got, tc.want)
			}
		})
	}
}

func TestSavingTax(t *testing.T) {
	cases := []struct {
		name   string
		amount int64
		rate   float64
		want   int64
	}{
		{"five percent skim", 10000, 0.05, 500},
		{"half-up rounding", 999, 0.05, 50},
		{"zero rate", 10000, 0, 0},
		{"rate of one", 10000, 1, 0},
		{"negative amount", -500, 0.05, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SavingTax(tc.amount, tc.rate); got != tc.want {
				t.Fatalf("SavingTax(%d, %v) = %d, want %d", tc.amount, tc.rate, got, tc.want)
			}
		})
	}
}

func TestAllocateRejectsBadInput(t *testing.T) {
	norms, _ := config.LookupNorms("US")

	if _, err := Allocate(model.ExpenseInput{AmountCents: 0}, model.DefaultPercentages(), norms); err == nil {
		t.Error("zero amount accepted")
	}
	if _, err := Allocate(model.ExpenseInput{AmountCents: -500}, model.DefaultPercentages(), norms); err == nil {
		t.Error("negative amount accepted")
	}
	bad := model.SavingsPercentages{Emergency: 1.5}
	if _, err := Allocate(model.ExpenseInput{AmountCents: 100}, bad, norms); err == nil {
		t.Error("out-of-range percentages accepted")
	}
}

func TestAllocateFillsIdentity(t *testing.T) {
	norms, _ := config.LookupNorms("US")
	exp, err := Allocate(model.ExpenseInput{
		AmountCents: 4250,
		Category:    "groceries",
	}, model.DefaultPercentages(), norms)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if exp.ID == "" {
		t.Error("expense ID not assigned")
	}
	if exp.Date.IsZero() {
		t.Error("expense date not defaulted")
	}
	if exp.Breakdown.TotalCents() == 0 {
		t.Error("breakdown empty for default percentages")
	}
}

func TestAllocateTaxInclusiveReducesBase(t *testing.T) {
	norms, _ := config.LookupNorms("US")
	pcts := model.DefaultPercentages()

	gross, err := Allocate(model.ExpenseInput{AmountCents: 10000, IncludesTax: true}, pcts, norms)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}
	net, err := Allocate(model.ExpenseInput{AmountCents: 10000}, pcts, norms)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	if gross.Breakdown.TotalCents() >= net.Breakdown.TotalCents() {
		t.Fatalf("tax-inclusive reserved %d cents, want less than %d",
			gross.Breakdown.TotalCents(), net.Breakdown.TotalCents())
	}
}
