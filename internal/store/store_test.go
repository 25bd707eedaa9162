package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "stash.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestApplyContributionsUpdatesBalance(t *testing.T) {
	s := openTestStore(t)

	v := model.SmartVault{ID: "v1", Name: "trip", TargetCents: 100000, CreatedAt: time.Now()}
	if err := s.SaveVault(v); err != nil {
		t.Fatalf("SaveVault: %v", err)
	}

	contribs := []model.VaultContribution{
		{ID: "c1", VaultID: "v1", AmountCents: 2500, Date: time.Now(), Source: model.SourceIncome},
		{ID: "c2", VaultID: "v1", AmountCents: 1500, Date: time.Now(), Source: model.SourceSavingTax},
	}
	if err := s.ApplyContributions(contribs); err != nil {
		t.Fatalf("ApplyContributions: %v", err)
	}

	got, err := s.GetVault("v1")
	if err != nil {
		t.Fatalf("GetVault: %v", err)
	}
	if got.BalanceCents != 4000 {
		t.Errorf("BalanceCents = %d, want 4000", got.BalanceCents)
	}

	ledger, err := s.ListContributions("v1")
	if err != nil {
		t.Fatalf("ListContributions: %v", err)
	}
	if len(ledger) != 2 {
		t.Fatalf("ledger has %d entries, want 2", len(ledger))
	}
	if ledger[0].Reconciled {
		t.Error("fresh contribution marked reconciled")
	}
}

func TestApplyContributionsRejectsUnknownVault(t *testing.T) {
	s := openTestStore(t)

	err := s.ApplyContributions([]model.VaultContribution{
		{ID: "c1", VaultID: "missing", AmountCents: 100, Date: time.Now()},
	})
	if err == nil {
		t.Fatal("ApplyContributions accepted a contribution to a nonexistent vault")
	}
}

func TestListVaultsFiltersArchived(t *testing.T) {
	s := openTestStore(t)

	for _, v := range []model.SmartVault{
		{ID: "a", Name: "active", CreatedAt: time.Now()},
		{ID: "b", Name: "done", Archived: true, CreatedAt: time.Now()},
	} {
		if err := s.SaveVault(v); err != nil {
			t.Fatalf("SaveVault(%s): %v", v.ID, err)
		}
	}

	active, err := s.ListVaults(false)
	if err != nil {
		t.Fatalf("ListVaults: %v", err)
	}
	if len(active) != 1 || active[0].ID != "a" {
		t.Errorf("ListVaults(false) = %v, want just vault a", active)
	}

	all, err := s.ListVaults(true)
	if err != nil {
		t.Fatalf("ListVaults(true): %v", err)
	}
	if len(all) != 2 {
		t.Errorf("ListVaults(true) returned %d vaults, want 2", len(all))
	}
}

func TestVaultDateRoundTrip(t *testing.T) {
	s := openTestStore(t)

	target := time.Date(2027, 6, 1, 0, 0, 0, 0, time.UTC)
	v := model.SmartVault{
		ID: "v1", Name: "house", TargetCents: 500000,
		TargetDate: &target, CreatedAt: time.Now(),
	}
	if err := s.SaveVault(v); err != nil {
		t.Fatalf("SaveVault: %v", err)
	}

	got, err := s.GetVault("v1")
	if err != nil {
		t.Fatalf("GetVault: %v", err)
	}
	if got.TargetDate == nil || !got.TargetDate.Equal(target) {
		t.Errorf("TargetDate = %v, want %v", got.TargetDate, target)
	}
	if got.StartDate != nil {
		t.Errorf("StartDate = %v, want nil", got.StartDate)
	}
}

func TestSaveBudgetReplacesCategory(t *testing.T) {
	s := openTestStore(t)

	first := model.CategoryBudget{ID: "b1", Category: "groceries", LimitCents: 40000, CreatedAt: time.Now()}
	second := model.CategoryBudget{ID: "b2", Category: "groceries", LimitCents: 35000, CreatedAt: time.Now()}
	if err := s.SaveBudget(first); err != nil {
		t.Fatalf("SaveBudget: %v", err)
	}
	if err := s.SaveBudget(second); err != nil {
		t.Fatalf("SaveBudget replace: %v", err)
	}

	budgets, err := s.ListBudgets()
	if err != nil {
		t.Fatalf("ListBudgets: %v", err)
	}
	if len(budgets) != 1 {
		t.Fatalf("budgets = %d rows, want 1", len(budgets))
	}
	if budgets[0].LimitCents != 35000 {
		t.Errorf("LimitCents = %d, want 35000", budgets[0].LimitCents)
	}
}

func TestTransferSnapshotMissingReadsZero(t *testing.T) {
	s := openTestStore(t)

	snap, err := s.TransferSnapshot()
	if err != nil {
		t.Fatalf("TransferSnapshot: %v", err)
	}
	if snap != (model.SmartTransferSnapshot{}) {
		t.Errorf("empty store snapshot = %+v, want zero value", snap)
	}

	snap.PendingEmergencyCents = 800
	snap.PendingInvestmentCents = 700
	snap.PendingExpenseCount = 2
	snap.LastExpenseEpochMillis = 1700000000000
	written, err := s.UpdateTransferSnapshot(func(model.SmartTransferSnapshot) model.SmartTransferSnapshot {
		return snap
	})
	if err != nil {
		t.Fatalf("UpdateTransferSnapshot: %v", err)
	}
	if written != snap {
		t.Errorf("returned snapshot = %+v, want %+v", written, snap)
	}

	got, err := s.TransferSnapshot()
	if err != nil {
		t.Fatalf("TransferSnapshot reload: %v", err)
	}
	if got != snap {
		t.Errorf("reloaded snapshot = %+v, want %+v", got, snap)
	}
}

// Two processes logging at the same time must not overwrite each other's
// pending contributions. Each update reads, adds and writes inside one
// transaction, so both additions have to survive.
func TestUpdateTransferSnapshotConcurrentAdds(t *testing.T) {
	s := openTestStore(t)

	add := func(cents int64) func(model.SmartTransferSnapshot) model.SmartTransferSnapshot {
		return func(snap model.SmartTransferSnapshot) model.SmartTransferSnapshot {
			snap.PendingEmergencyCents += cents
			snap.PendingExpenseCount++
			return snap
		}
	}

	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for _, cents := range []int64{500, 300} {
		wg.Add(1)
		go func(cents int64) {
			defer wg.Done()
			if _, err := s.UpdateTransferSnapshot(add(cents)); err != nil {
				errs <- err
			}
		}(cents)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("UpdateTransferSnapshot: %v", err)
	}

	got, err := s.TransferSnapshot()
	if err != nil {
		t.Fatalf("TransferSnapshot: %v", err)
	}
	if got.PendingEmergencyCents != 800 {
		t.Errorf("PendingEmergencyCents = %d, want 800 (lost update)", got.PendingEmergencyCents)
	}
	if got.PendingExpenseCount != 2 {
		t.Errorf("PendingExpenseCount = %d, want 2", got.PendingExpenseCount)
	}
}

func TestProfileFoundFlag(t *testing.T) {
	s := openTestStore(t)

	_, found, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if found {
		t.Error("Profile reported found on an empty store")
	}

	p := model.Profile{
		Age: 29, Risk: model.RiskAggressive, MonthlyIncomeCents: 450000,
		HasDebts: true, DebtCents: 120000, CountryCode: "US",
		Employed: true, SaveRate: 0.2, SavingTaxRate: 0.05,
		EmergencyBalanceCents: 300000, MonthlyExpensesCents: 250000,
	}
	if err := s.SaveProfile(p); err != nil {
		t.Fatalf("SaveProfile: %v", err)
	}

	got, found, err := s.Profile()
	if err != nil {
		t.Fatalf("Profile reload: %v", err)
	}
	if !found {
		t.Fatal("Profile not found after save")
	}
	if got != p {
		t.Errorf("reloaded profile = %+v, want %+v", got, p)
	}
}

func TestExpensesSinceCutoff(t *testing.T) {
	s := openTestStore(t)

	old := model.Expense{ID: "e1", AmountCents: 1000, Category: "dining",
		Date: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC)}
	recent := model.Expense{ID: "e2", AmountCents: 2000, Category: "dining",
		Date: time.Date(2026, 8, 10, 0, 0, 0, 0, time.UTC),
		Breakdown: model.AllocationBreakdown{EmergencyCents: 300, InvestmentCents: 100, FunCents: 100,
			SafeInvestmentCents: 65, HighRiskInvestmentCents: 35}}
	for _, e := range []model.Expense{old, recent} {
		if err := s.SaveExpense(e); err != nil {
			t.Fatalf("SaveExpense(%s): %v", e.ID, err)
		}
	}

	got, err := s.ListExpensesSince(time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("ListExpensesSince: %v", err)
	}
	if len(got) != 1 || got[0].ID != "e2" {
		t.Fatalf("ListExpensesSince = %v, want just e2", got)
	}
	if got[0].Breakdown != recent.Breakdown {
		t.Errorf("breakdown = %+v, want %+v", got[0].Breakdown, recent.Breakdown)
	}

	count, err := s.ExpenseCount()
	if err != nil {
		t.Fatalf("ExpenseCount: %v", err)
	}
	if count != 2 {
		t.Errorf("ExpenseCount = %d, want 2", count)
	}
}
