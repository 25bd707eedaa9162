// Package transfer batches small savings diversions into a single
// human-actionable transfer recommendation.
package transfer

import (
	"sync"
	"time"

	"github.com/stash-cli/stash/internal/model"
)

// Defaults for the batching behavior.
const (
	DefaultMinCents    = 1000 // $10.00
	DefaultBatchWindow = 3 * time.Minute
)

// Aggregator owns the smart transfer snapshot. All mutation goes through its
// mutex so that adding a pending amount is atomic; a naive read-modify-write
// from concurrent expense submissions would lose contributions.
type Aggregator struct {
	mu   sync.Mutex
	snap model.SmartTransferSnapshot

	minCents    int64
	batchWindow time.Duration
	now         func() time.Time
}

// New wraps an existing snapshot. Non-positive settings fall back to the
// defaults.
func New(snap model.SmartTransferSnapshot, minCents int64, batchWindow time.Duration) *Aggregator {
	if minCents <= 0 {
		minCents = DefaultMinCents
	}
	if batchWindow <= 0 {
		batchWindow = DefaultBatchWindow
	}
	return &Aggregator{
		snap:        snap,
		minCents:    minCents,
		batchWindow: batchWindow,
		now:         time.Now,
	}
}

// Add records one allocation event's emergency and investment cents into the
// pending bucket.
func (a *Aggregator) Add(emergencyCents, investmentCents int64) {
	if emergencyCents < 0 {
		emergencyCents = 0
	}
	if investmentCents < 0 {
		investmentCents = 0
	}
	if emergencyCents == 0 && investmentCents == 0 {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.snap.PendingEmergencyCents += emergencyCents
	a.snap.PendingInvestmentCents += investmentCents
	a.snap.PendingExpenseCount++
	a.snap.LastExpenseEpochMillis = a.now().UnixMilli()
}

// Snapshot returns a copy of the current snapshot for persistence.
func (a *Aggregator) Snapshot() model.SmartTransferSnapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.snap
}

// Status derives the display status for a snapshot at a point in time.
// Time-window transitions are evaluated here, on read, rather than by a
// background timer. The awaiting-confirmation bucket dominates whenever it
// holds money.
func Status(snap model.SmartTransferSnapshot, minCents int64, batchWindow time.Duration, now time.Time) model.TransferStatus {
	if snap.AwaitingTotalCents() > 0 {
		return model.TransferAwaitingConfirmation
	}

	total := snap.PendingTotalCents()
	if total <= 0 || snap.PendingExpenseCount == 0 {
		return model.TransferStandby
	}

	last := time.UnixMilli(snap.LastExpenseEpochMillis)
	if now.Sub(last) < batchWindow {
		// Recent activity: keep batching so near-simultaneous purchases
		// land in one recommendation.
		return model.TransferAccumulating
	}

	if total >= minCents {
		return model.TransferReady
	}
	return model.TransferStandby
}

// Recommendation projects the snapshot for display. Dollar amounts are
// derived from cents only here, at the read boundary.
func (a *Aggregator) Recommendation() model.SmartTransferRecommendation {
	a.mu.Lock()
	defer a.mu.Unlock()

	status := Status(a.snap, a.minCents, a.batchWindow, a.now())

	emergency := a.snap.PendingEmergencyCents
	invest := a.snap.PendingInvestmentCents
	count := a.snap.PendingExpenseCount
	if status == model.TransferAwaitingConfirmation {
		emergency = a.snap.AwaitingEmergencyCents
		invest = a.snap.AwaitingInvestmentCents
		count = a.snap.AwaitingExpenseCount
	}

	total := emergency + invest
	return model.SmartTransferRecommendation{
		Status:             status,
		EmergencyCents:     emergency,
		InvestmentCents:    invest,
		TotalCents:         total,
		ActiveExpenseCount: count,
		EmergencyAmount:    float64(emergency) / 100,
		InvestmentAmount:   float64(invest) / 100,
		TotalAmount:        float64(total) / 100,
	}
}

// Confirm moves the pending bucket into awaiting-confirmation ("move now").
// A no-op when nothing is pending, so duplicate taps are harmless.
func (a *Aggregator) Confirm() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.PendingTotalCents() <= 0 {
		return false
	}

	a.snap.AwaitingEmergencyCents += a.snap.PendingEmergencyCents
	a.snap.AwaitingInvestmentCents += a.snap.PendingInvestmentCents
	a.snap.AwaitingExpenseCount += a.snap.PendingExpenseCount
	a.snap.PendingEmergencyCents = 0
	a.snap.PendingInvestmentCents = 0
	a.snap.PendingExpenseCount = 0
	a.snap.ConfirmationStartedEpochMillis = a.now().UnixMilli()
	return true
}

// MarkDone clears the awaiting-confirmation bucket: the money has actually
// moved. Returns the cleared amounts so the caller can record reconciled
// contributions. A no-op returning ok=false when the bucket is already
// empty.
func (a *Aggregator) MarkDone() (emergencyCents, investmentCents int64, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.AwaitingTotalCents() <= 0 {
		return 0, 0, false
	}

	emergencyCents = a.snap.AwaitingEmergencyCents
	investmentCents = a.snap.AwaitingInvestmentCents
	a.snap.AwaitingEmergencyCents = 0
	a.snap.AwaitingInvestmentCents = 0
	a.snap.AwaitingExpenseCount = 0
	a.snap.ConfirmationStartedEpochMillis = 0
	return emergencyCents, investmentCents, true
}

// ReturnToPending undoes a confirm, moving the awaiting amounts back while
// preserving the expense count.
func (a *Aggregator) ReturnToPending() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.AwaitingTotalCents() <= 0 {
		return false
	}

	a.snap.PendingEmergencyCents += a.snap.AwaitingEmergencyCents
	a.snap.PendingInvestmentCents += a.snap.AwaitingInvestmentCents
	a.snap.PendingExpenseCount += a.snap.AwaitingExpenseCount
	a.snap.AwaitingEmergencyCents = 0
	a.snap.AwaitingInvestmentCents = 0
	a.snap.AwaitingExpenseCount = 0
	a.snap.ConfirmationStartedEpochMillis = 0
	return true
}

// Dismiss clears the pending bucket without recording a transfer. The money
// stays put; stash just stops nudging.
func (a *Aggregator) Dismiss() bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.snap.PendingTotalCents() <= 0 {
		return false
	}

	a.snap.PendingEmergencyCents = 0
	a.snap.PendingInvestmentCents = 0
	a.snap.PendingExpenseCount = 0
	a.snap.LastExpenseEpochMillis = 0
	return true
}
