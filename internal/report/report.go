// Package report aggregates logged history into monthly summaries.
package report

import (
	"sort"
	"time"

	"github.com/stash-cli/stash/internal/model"
)

// MonthlyStats holds one calendar month of activity.
type MonthlyStats struct {
	Month         string // "2006-01"
	SpentCents    int64
	ReservedCents int64 // saving-tax skimmed off expenses
	IncomeCents   int64
	SkimCents     int64 // paycheck skim routed to vaults
	ExpenseCount  int
	ByCategory    map[model.ExpenseCategory]int64
	// SavingsRate is (reserved + skim) / income, 0 when no income landed.
	SavingsRate float64
}

// SavedCents returns everything routed to vaults that month.
func (m MonthlyStats) SavedCents() int64 {
	return m.ReservedCents + m.SkimCents
}

// Monthly buckets expenses and incomes into the trailing `months` calendar
// months ending at now, oldest first. Empty months are included so charts
// keep their shape.
func Monthly(expenses []model.Expense, incomes []model.Income, months int, now time.Time) []MonthlyStats {
	if months <= 0 {
		months = 6
	}

	byMonth := make(map[string]*MonthlyStats, months)
	keys := make([]string, 0, months)
	for i := months - 1; i >= 0; i-- {
		key := now.AddDate(0, -i, 0).Format("2006-01")
		byMonth[key] = &MonthlyStats{
			Month:      key,
			ByCategory: make(map[model.ExpenseCategory]int64),
		}
		keys = append(keys, key)
	}

	for _, e := range expenses {
		m, ok := byMonth[e.Date.Format("2006-01")]
		if !ok {
			continue
		}
		m.SpentCents += e.AmountCents
		m.ReservedCents += e.Breakdown.TotalCents()
		m.ExpenseCount++
		m.ByCategory[e.Category] += e.AmountCents
	}

	for _, in := range incomes {
		m, ok := byMonth[in.Date.Format("2006-01")]
		if !ok {
			continue
		}
		m.IncomeCents += in.AmountCents
		m.SkimCents += in.SkimCents
	}

	out := make([]MonthlyStats, 0, len(keys))
	for _, key := range keys {
		m := byMonth[key]
		if m.IncomeCents > 0 {
			m.SavingsRate = float64(m.SavedCents()) / float64(m.IncomeCents)
		}
		out = append(out, *m)
	}
	return out
}

// Summary condenses a monthly series for the report header.
type Summary struct {
	SpentCents           int64
	SavedCents           int64
	IncomeCents          int64
	AvgMonthlySpendCents int64
	SavingsRate          float64
	TopCategory          model.ExpenseCategory
	TopCategoryCents     int64
}

// Summarize totals a monthly series. Months with no activity still count
// toward the monthly average.
func Summarize(months []MonthlyStats) Summary {
	var s Summary
	byCategory := make(map[model.ExpenseCategory]int64)

	for _, m := range months {
		s.SpentCents += m.SpentCents
		s.SavedCents += m.SavedCents()
		s.IncomeCents += m.IncomeCents
		for cat, cents := range m.ByCategory {
			byCategory[cat] += cents
		}
	}

	if len(months) > 0 {
		s.AvgMonthlySpendCents = s.SpentCents / int64(len(months))
	}
	if s.IncomeCents > 0 {
		s.SavingsRate = float64(s.SavedCents) / float64(s.IncomeCents)
	}

	cats := make([]model.ExpenseCategory, 0, len(byCategory))
	for cat := range byCategory {
		cats = append(cats, cat)
	}
	sort.Slice(cats, func(i, j int) bool {
		if byCategory[cats[i]] != byCategory[cats[j]] {
			return byCategory[cats[i]] > byCategory[cats[j]]
		}
		return cats[i] < cats[j]
	})
	if len(cats) > 0 {
		s.TopCategory = cats[0]
		s.TopCategoryCents = byCategory[cats[0]]
	}

	return s
}

// SpendSeries extracts the per-month spend for sparkline rendering.
func SpendSeries(months []MonthlyStats) []float64 {
	out := make([]float64, len(months))
	for i, m := range months {
		out[i] = float64(m.SpentCents)
	}
	return out
}
