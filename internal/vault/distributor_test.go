package vault

import (
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/model"
)

func dynVault(id string, priority model.VaultPriority, balance, target int64) model.SmartVault {
	return model.SmartVault{
		ID:           id,
		Name:         id,
		Priority:     priority,
		Mode:         model.AllocationDynamicAuto,
		BalanceCents: balance,
		TargetCents:  target,
	}
}

func checkNoLeakage(t *testing.T, pool int64, d Distribution) {
	t.Helper()
	if got := d.TotalCents() + d.UnallocatedCents; got != pool {
		t.Fatalf("contributions %d + unallocated %d = %d, want pool %d",
			d.TotalCents(), d.UnallocatedCents, got, pool)
	}
}

func TestDistributeConservesPool(t *testing.T) {
	now := time.Now()
	vaults := []model.SmartVault{
		dynVault("a", model.PriorityLow, 0, 100000),
		dynVault("b", model.PriorityHigh, 25000, 100000),
		dynVault("c", model.PriorityCritical, 99000, 100000),
	}

	for _, pool := range []int64{1, 99, 1000, 3333, 1000001} {
		d := Distribute(pool, vaults, now)
		checkNoLeakage(t, pool, d)
		if d.UnallocatedCents != 0 {
			t.Fatalf("pool %d: unallocated %d with eligible dynamic vaults", pool, d.UnallocatedCents)
		}
	}
}

func TestDistributeExcludesFullyFunded(t *testing.T) {
	now := time.Now()
	full := dynVault("full", model.PriorityCritical, 100000, 100000)
	open := dynVault("open", model.PriorityLow, 0, 100000)

	d := Distribute(5000, []model.SmartVault{full, open}, now)
	checkNoLeakage(t, 5000, d)

	if d.Contributions["full"] != 0 {
		t.Fatalf("fully funded vault received %d cents, want 0", d.Contributions["full"])
	}
	if d.Contributions["open"] != 5000 {
		t.Fatalf("open vault received %d cents, want the full pool", d.Contributions["open"])
	}
}

func TestDistributeExcludesArchived(t *testing.T) {
	now := time.Now()
	archived := dynVault("archived", model.PriorityCritical, 0, 100000)
	archived.Archived = true

	d := Distribute(5000, []model.SmartVault{archived}, now)
	if len(d.Contributions) != 0 {
		t.Fatalf("archived vault received a contribution: %v", d.Contributions)
	}
	if d.UnallocatedCents != 5000 {
		t.Fatalf("unallocated = %d, want full pool 5000", d.UnallocatedCents)
	}
}

func TestDistributeManualSharesAreIndependent(t *testing.T) {
	now := time.Now()
	m1 := dynVault("m1", model.PriorityLow, 0, 100000)
	m1.Mode = model.AllocationManual
	m1.ManualAllocationPct = 0.30
	m2 := dynVault("m2", model.PriorityLow, 0, 100000)
	m2.Mode = model.AllocationManual
	m2.ManualAllocationPct = 0.20
	dyn := dynVault("z-dyn", model.PriorityMedium, 0, 100000)

	d := Distribute(10000, []model.SmartVault{m1, m2, dyn}, now)
	checkNoLeakage(t, 10000, d)

	if d.Contributions["m1"] != 3000 {
		t.Errorf("m1 = %d, want 3000 (30%% of pool)", d.Contributions["m1"])
	}
	if d.Contributions["m2"] != 2000 {
		t.Errorf("m2 = %d, want 2000 (20%% of pool)", d.Contributions["m2"])
	}
	if d.Contributions["z-dyn"] != 5000 {
		t.Errorf("dynamic vault = %d, want the 5000 remainder", d.Contributions["z-dyn"])
	}
}

func TestDistributePriorityWeighting(t *testing.T) {
	now := time.Now()
	low := dynVault("low", model.PriorityLow, 0, 100000)
	critical := dynVault("crit", model.PriorityCritical, 0, 100000)

	d := Distribute(6000, []model.SmartVault{low, critical}, now)
	checkNoLeakage(t, 6000, d)

	// Weights 1 vs 5: 1000 vs 5000.
	if d.Contributions["low"] != 1000 || d.Contributions["crit"] != 5000 {
		t.Fatalf("low=%d crit=%d, want 1000/5000", d.Contributions["low"], d.Contributions["crit"])
	}
}

func TestDistributeUrgencyRaisesShare(t *testing.T) {
	now := time.Now()
	soon := now.AddDate(0, 1, 0)
	later := now.AddDate(0, 24, 0)

	urgent := dynVault("urgent", model.PriorityMedium, 0, 100000)
	urgent.TargetDate = &soon
	relaxed := dynVault("relaxed", model.PriorityMedium, 0, 100000)
	relaxed.TargetDate = &later

	d := Distribute(10000, []model.SmartVault{urgent, relaxed}, now)
	checkNoLeakage(t, 10000, d)

	if d.Contributions["urgent"] <= d.Contributions["relaxed"] {
		t.Fatalf("urgent=%d relaxed=%d, want urgent larger", d.Contributions["urgent"], d.Contributions["relaxed"])
	}
}

func TestDistributeEqualWeightsFallBackToNeed(t *testing.T) {
	now := time.Now()
	// Same priority, no target dates, zero balances but different targets
	// make progress 0 for both: equal weights, unequal need.
	small := dynVault("small", model.PriorityMedium, 0, 0)
	big := dynVault("big", model.PriorityMedium, 0, 0)
	small.TargetCents = 0
	big.TargetCents = 0
	small.BalanceCents = 0
	big.BalanceCents = 0
	// With zero targets both Progress() are 0 and needs are 0: even split.
	d := Distribute(1001, []model.SmartVault{small, big}, now)
	checkNoLeakage(t, 1001, d)
	diff := d.Contributions["small"] - d.Contributions["big"]
	if diff < -1 || diff > 1 {
		t.Fatalf("even split off by more than a cent: small=%d big=%d",
			d.Contributions["small"], d.Contributions["big"])
	}
}

func TestDistributeDeterministicOrdering(t *testing.T) {
	now := time.Now()
	a := dynVault("a", model.PriorityMedium, 0, 10000)
	b := dynVault("b", model.PriorityMedium, 0, 10000)

	first := Distribute(333, []model.SmartVault{a, b}, now)
	second := Distribute(333, []model.SmartVault{b, a}, now)

	for id := range first.Contributions {
		if first.Contributions[id] != second.Contributions[id] {
			t.Fatalf("ordering-dependent result for %s: %d vs %d",
				id, first.Contributions[id], second.Contributions[id])
		}
	}
	// Equal weight and equal need: the odd cent goes to the lower id.
	if first.Contributions["a"] != 167 || first.Contributions["b"] != 166 {
		t.Fatalf("a=%d b=%d, want 167/166 with the odd cent on the lower id",
			first.Contributions["a"], first.Contributions["b"])
	}
}

func TestDistributeEmptyAndNonPositivePool(t *testing.T) {
	now := time.Now()
	if d := Distribute(0, nil, now); d.TotalCents() != 0 || d.UnallocatedCents != 0 {
		t.Fatalf("zero pool produced %+v", d)
	}
	if d := Distribute(-100, nil, now); d.TotalCents() != 0 || d.UnallocatedCents != 0 {
		t.Fatalf("negative pool produced %+v", d)
	}

	d := Distribute(700, nil, now)
	if d.UnallocatedCents != 700 {
		t.Fatalf("no vaults: unallocated = %d, want 700", d.UnallocatedCents)
	}
}
