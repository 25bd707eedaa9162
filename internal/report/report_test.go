package report

import (
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/model"
)

func TestMonthlyBucketsAndFillsEmptyMonths(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

	expenses := []model.Expense{
		{AmountCents: 10000, Category: "groceries", Date: now.AddDate(0, 0, -1),
			Breakdown: model.AllocationBreakdown{EmergencyCents: 500, InvestmentCents: 300, FunCents: 200}},
		{AmountCents: 7000, Category: "dining", Date: now.AddDate(0, -2, 0)},
		{AmountCents: 99999, Category: "old", Date: now.AddDate(0, -8, 0)}, // outside window
	}
	incomes := []model.Income{
		{AmountCents: 400000, SkimCents: 60000, Date: now.AddDate(0, 0, -3)},
	}

	months := Monthly(expenses, incomes, 3, now)
	if len(months) != 3 {
		t.Fatalf("Monthly returned %d months, want 3", len(months))
	}
	if months[0].Month != "2026-01" || months[2].Month != "2026-03" {
		t.Fatalf("month keys wrong: first=%s last=%s", months[0].Month, months[2].Month)
	}

	jan := months[0]
	if jan.SpentCents != 7000 || jan.ExpenseCount != 1 {
		t.Errorf("jan: spent=%d count=%d, want 7000/1", jan.SpentCents, jan.ExpenseCount)
	}

	feb := months[1]
	if feb.SpentCents != 0 || feb.ExpenseCount != 0 {
		t.Errorf("empty feb should stay zero, got spent=%d count=%d", feb.SpentCents, feb.ExpenseCount)
	}

	mar := months[2]
	if mar.SpentCents != 10000 {
		t.Errorf("mar spent = %d, want 10000", mar.SpentCents)
	}
	if mar.ReservedCents != 1000 {
		t.Errorf("mar reserved = %d, want 1000", mar.ReservedCents)
	}
	if mar.IncomeCents != 400000 || mar.SkimCents != 60000 {
		t.Errorf("mar income=%d skim=%d, want 400000/60000", mar.IncomeCents, mar.SkimCents)
	}
	if mar.SavedCents() != 61000 {
		t.Errorf("mar saved = %d, want 61000", mar.SavedCents())
	}
	// 61000 / 400000
	if mar.SavingsRate < 0.152 || mar.SavingsRate > 0.153 {
		t.Errorf("mar savings rate = %f, want 0.1525", mar.SavingsRate)
	}
	if mar.ByCategory["groceries"] != 10000 {
		t.Errorf("groceries bucket = %d, want 10000", mar.ByCategory["groceries"])
	}
}

func TestSummarizePicksTopCategory(t *testing.T) {
	months := []MonthlyStats{
		{SpentCents: 10000, IncomeCents: 100000, SkimCents: 15000,
			ByCategory: map[model.ExpenseCategory]int64{"groceries": 6000, "dining": 4000}},
		{SpentCents: 8000, IncomeCents: 100000, SkimCents: 15000,
			ByCategory: map[model.ExpenseCategory]int64{"dining": 8000}},
	}

	s := Summarize(months)
	if s.SpentCents != 18000 {
		t.Errorf("spent = %d, want 18000", s.SpentCents)
	}
	if s.AvgMonthlySpendCents != 9000 {
		t.Errorf("avg = %d, want 9000", s.AvgMonthlySpendCents)
	}
	if s.TopCategory != "dining" || s.TopCategoryCents != 12000 {
		t.Errorf("top = %s/%d, want dining/12000", s.TopCategory, s.TopCategoryCents)
	}
	if s.SavingsRate != 0.15 {
		t.Errorf("savings rate = %f, want 0.15", s.SavingsRate)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.SpentCents != 0 || s.TopCategory != "" || s.SavingsRate != 0 {
		t.Errorf("empty summary not zero: %+v", s)
	}
}

func TestSpendSeries(t *testing.T) {
	months := []MonthlyStats{{SpentCents: 100}, {SpentCents: 0}, {SpentCents: 250}}
	got := SpendSeries(months)
	want := []float64{100, 0, 250}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("series[%d] = %f, want %f", i, got[i], want[i])
		}
	}
}
