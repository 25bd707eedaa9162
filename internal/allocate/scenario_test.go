package allocate

import (
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/config"
	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/recommend"
	"github.com/stash-cli/stash/internal/transfer"
)

// Follows one $100 grocery run for a balanced saver from recommendation
// through allocation to the transfer snapshot.
func TestGroceryRunEndToEnd(t *testing.T) {
	norms, ok := config.LookupNorms("US")
	if !ok {
		t.Fatal("US norms missing")
	}

	profile := model.Profile{
		Age:                   30,
		Risk:                  model.RiskBalanced,
		MonthlyIncomeCents:    500000,
		MonthlyExpensesCents:  200000,
		EmergencyBalanceCents: 600000, // 3 of the 6 recommended months
		Employed:              true,
	}

	rec := recommend.Recommend(profile, norms, nil, 0)

	// Half-covered emergency fund bumps the emergency share by 5 points.
	if got := rec.Percentages.Emergency; got < 0.1999 || got > 0.2001 {
		t.Fatalf("emergency pct = %f, want 0.20", got)
	}
	if got := rec.Percentages.Invest; got < 0.0599 || got > 0.0601 {
		t.Fatalf("invest pct = %f, want 0.06", got)
	}
	if rec.AutoAdjusted {
		t.Error("31%% total should fit under the default reserve cap")
	}
	if rec.SafeInvestmentRatio != 0.65 {
		t.Errorf("safe ratio = %f, want 0.65 for balanced", rec.SafeInvestmentRatio)
	}
	if rec.Plan.MonthlyReserveCents != 155000 {
		t.Errorf("monthly reserve = %d, want 155000", rec.Plan.MonthlyReserveCents)
	}
	if rec.Plan.EmergencyTargetCents != 1200000 {
		t.Errorf("emergency target = %d, want 1200000", rec.Plan.EmergencyTargetCents)
	}
	if rec.Plan.MonthsToEmergencyTarget != 6 {
		t.Errorf("months to target = %d, want 6", rec.Plan.MonthsToEmergencyTarget)
	}

	expense, err := Allocate(model.ExpenseInput{
		AmountCents: 10000,
		Category:    "groceries",
		Date:        time.Date(2026, 2, 10, 18, 30, 0, 0, time.UTC),
	}, rec.Percentages, norms)
	if err != nil {
		t.Fatalf("Allocate: %v", err)
	}

	bd := expense.Breakdown
	if bd.EmergencyCents != 2000 || bd.InvestmentCents != 600 || bd.FunCents != 500 {
		t.Fatalf("breakdown = %d/%d/%d, want 2000/600/500",
			bd.EmergencyCents, bd.InvestmentCents, bd.FunCents)
	}
	if bd.SafeInvestmentCents != 390 || bd.HighRiskInvestmentCents != 210 {
		t.Errorf("invest split = %d/%d, want 390/210",
			bd.SafeInvestmentCents, bd.HighRiskInvestmentCents)
	}

	// Feed the allocation into the transfer accumulator.
	agg := transfer.New(model.SmartTransferSnapshot{}, 1000, 3*time.Minute)
	agg.Add(bd.EmergencyCents, bd.InvestmentCents)
	snap := agg.Snapshot()

	if snap.PendingEmergencyCents != 2000 || snap.PendingInvestmentCents != 600 {
		t.Fatalf("pending = %d/%d, want 2000/600",
			snap.PendingEmergencyCents, snap.PendingInvestmentCents)
	}

	last := time.UnixMilli(snap.LastExpenseEpochMillis)
	if got := transfer.Status(snap, 1000, 3*time.Minute, last.Add(time.Minute)); got != model.TransferAccumulating {
		t.Errorf("inside the batch window: status = %v, want accumulating", got)
	}
	if got := transfer.Status(snap, 1000, 3*time.Minute, last.Add(5*time.Minute)); got != model.TransferReady {
		t.Errorf("window elapsed over the minimum: status = %v, want ready", got)
	}
}
