// Package vault distributes money pools across savings vaults.
package vault

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/stash-cli/stash/internal/model"
)

// urgencyClamp bounds the inverse months-until-target multiplier so an
// imminent deadline cannot starve every other vault.
const urgencyClamp = 3.0

// Distribution maps vault IDs to contribution cents. The contributions plus
// the unallocated remainder always equal the input pool exactly.
type Distribution struct {
	Contributions    map[string]int64
	UnallocatedCents int64
}

// TotalCents returns the sum of all per-vault contributions.
func (d Distribution) TotalCents() int64 {
	var sum int64
	for _, c := range d.Contributions {
		sum += c
	}
	return sum
}

// Distribute splits poolCents across the active vaults. MANUAL vaults each
// claim their fixed percentage of the pool first (independent of one
// another, clamped to what is left); DYNAMIC_AUTO vaults compete for the
// remainder by weighted priority. Pool left over with no eligible dynamic
// vault passes through unallocated.
func Distribute(poolCents int64, vaults []model.SmartVault, now time.Time) Distribution {
	dist := Distribution{Contributions: make(map[string]int64)}
	if poolCents <= 0 {
		return dist
	}

	active := make([]model.SmartVault, 0, len(vaults))
	for _, v := range vaults {
		if !v.Archived {
			active = append(active, v)
		}
	}
	// Vault id ordering keeps manual clamping and leftover cents
	// deterministic.
	sort.Slice(active, func(i, j int) bool { return active[i].ID < active[j].ID })

	remaining := poolCents
	for _, v := range active {
		if v.Mode != model.AllocationManual || v.ManualAllocationPct <= 0 {
			continue
		}
		share := int64(math.Round(float64(poolCents) * v.ManualAllocationPct))
		if share > remaining {
			share = remaining
		}
		if share > 0 {
			dist.Contributions[v.ID] = share
			remaining -= share
		}
	}

	if remaining <= 0 {
		return dist
	}

	dynamic := make([]model.SmartVault, 0, len(active))
	for _, v := range active {
		if v.Mode == model.AllocationDynamicAuto && !v.FullyFunded() {
			dynamic = append(dynamic, v)
		}
	}
	if len(dynamic) == 0 {
		dist.UnallocatedCents = remaining
		return dist
	}

	weights := dynamicWeights(dynamic, now)
	shareOut(dist.Contributions, remaining, dynamic, weights)
	return dist
}

// dynamicWeights computes the competition weight for each dynamic vault:
// priority base x urgency multiplier x remaining progress. Equal weights
// fall back to remaining need, then to an even split.
func dynamicWeights(vaults []model.SmartVault, now time.Time) []float64 {
	weights := make([]float64, len(vaults))
	for i, v := range vaults {
		weights[i] = v.Priority.Weight() * urgencyMultiplier(v, now) * (1 - v.Progress())
		if weights[i] < 0 {
			weights[i] = 0
		}
	}

	if !allEqual(weights) {
		return weights
	}

	// Tie-break one: proportional to remaining need.
	needs := make([]float64, len(vaults))
	for i, v := range vaults {
		needs[i] = float64(v.RemainingCents())
	}
	if !allEqual(needs) {
		return needs
	}

	// Tie-break two: even split; vault id ordering settles leftover cents.
	even := make([]float64, len(vaults))
	for i := range even {
		even[i] = 1
	}
	return even
}

// urgencyMultiplier grows as the target date approaches: 1 + 1/months,
// clamped. Vaults with no target date, or a target already passed, sit at
// the respective extremes.
func urgencyMultiplier(v model.SmartVault, now time.Time) float64 {
	if v.TargetDate == nil {
		return 1
	}
	months := v.TargetDate.Sub(now).Hours() / 24 / 30.44
	if months <= 0 {
		return 1 + urgencyClamp
	}
	inv := 1 / months
	if inv > urgencyClamp {
		inv = urgencyClamp
	}
	return 1 + inv
}

// shareOut assigns remaining cents proportional to weight using the
// largest-remainder method, so the shares sum to remaining exactly.
func shareOut(out map[string]int64, remaining int64, vaults []model.SmartVault, weights []float64) {
	var sumW float64
	for _, w := range weights {
		sumW += w
	}
	if sumW <= 0 {
		return
	}

	type share struct {
		idx       int
		cents     int64
		remainder float64
	}
	shares := make([]share, len(vaults))
	var assigned int64
	for i := range vaults {
		ideal := float64(remaining) * weights[i] / sumW
		floor := math.Floor(ideal)
		shares[i] = share{idx: i, cents: int64(floor), remainder: ideal - floor}
		assigned += int64(floor)
	}

	sort.SliceStable(shares, func(a, b int) bool {
		if shares[a].remainder != shares[b].remainder {
			return shares[a].remainder > shares[b].remainder
		}
		na := vaults[shares[a].idx].RemainingCents()
		nb := vaults[shares[b].idx].RemainingCents()
		if na != nb {
			return na > nb
		}
		return vaults[shares[a].idx].ID < vaults[shares[b].idx].ID
	})

	leftover := remaining - assigned
	for i := 0; leftover > 0; i++ {
		shares[i%len(shares)].cents++
		leftover--
	}

	for _, s := range shares {
		if s.cents > 0 {
			out[vaults[s.idx].ID] += s.cents
		}
	}
}

func allEqual(vals []float64) bool {
	for i := 1; i < len(vals); i++ {
		if math.Abs(vals[i]-vals[0]) > 1e-9 {
			return false
		}
	}
	return true
}

// AsContributions converts a distribution into ledger entries.
func AsContributions(d Distribution, source model.ContributionSource, date time.Time) []model.VaultContribution {
	ids := make([]string, 0, len(d.Contributions))
	for id := range d.Contributions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	entries := make([]model.VaultContribution, 0, len(ids))
	for _, id := range ids {
		entries = append(entries, model.VaultContribution{
			ID:          uuid.NewString(),
			VaultID:     id,
			AmountCents: d.Contributions[id],
			Date:        date,
			Source:      source,
		})
	}
	return entries
}
