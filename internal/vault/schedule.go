package vault

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/stash-cli/stash/internal/model"
)

// ValidateSchedule checks an auto-deposit cron expression. Empty schedules
// are valid (auto-deposit disabled).
func ValidateSchedule(expr string) error {
	if expr == "" {
		return nil
	}
	if _, err := cron.ParseStandard(expr); err != nil {
		return fmt.Errorf("parsing auto-deposit schedule %q: %w", expr, err)
	}
	return nil
}

// NextDeposit returns the next auto-deposit time for a vault after the given
// instant. Returns false for vaults with no schedule, an unparseable
// schedule, or nothing left to fund.
func NextDeposit(v model.SmartVault, after time.Time) (time.Time, bool) {
	if v.AutoDepositSchedule == "" || v.AutoDepositCents <= 0 || v.Archived || v.FullyFunded() {
		return time.Time{}, false
	}
	sched, err := cron.ParseStandard(v.AutoDepositSchedule)
	if err != nil {
		return time.Time{}, false
	}
	return sched.Next(after), true
}

// DueDeposits returns the vaults whose auto-deposit fired in (since, now],
// with the deposit amount capped at the vault's remaining need.
func DueDeposits(vaults []model.SmartVault, since, now time.Time) []model.VaultContribution {
	var due []model.VaultContribution
	for _, v := range vaults {
		next, ok := NextDeposit(v, since)
		if !ok || next.After(now) {
			continue
		}
		amount := v.AutoDepositCents
		if rem := v.RemainingCents(); v.TargetCents > 0 && amount > rem {
			amount = rem
		}
		if amount <= 0 {
			continue
		}
		due = append(due, model.VaultContribution{
			ID:          uuid.NewString(),
			VaultID:     v.ID,
			AmountCents: amount,
			Date:        next,
			Source:      model.SourceAutoDeposit,
		})
	}
	return due
}
