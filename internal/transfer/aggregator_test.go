package transfer

import (
	"sync"
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/model"
)

// fixedClock lets tests drive the aggregator's notion of now.
type fixedClock struct {
	t time.Time
}

func (c *fixedClock) now() time.Time          { return c.t }
func (c *fixedClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestAggregator() (*Aggregator, *fixedClock) {
	clock := &fixedClock{t: time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)}
	a := New(model.SmartTransferSnapshot{}, DefaultMinCents, DefaultBatchWindow)
	a.now = clock.now
	return a, clock
}

func TestBelowThresholdNeverReady(t *testing.T) {
	a, clock := newTestAggregator()

	a.Add(500, 300) // $8.00 total
	if got := a.Recommendation().Status; got != model.TransferAccumulating {
		t.Fatalf("status right after expense = %v, want accumulating", got)
	}

	clock.advance(time.Hour)
	if got := a.Recommendation().Status; got != model.TransferStandby {
		t.Fatalf("status for $8 after quiescence = %v, want standby, never ready", got)
	}
}

func TestReadyRequiresSufficiencyAndQuiescence(t *testing.T) {
	a, clock := newTestAggregator()

	a.Add(500, 300) // $8.00
	clock.advance(time.Minute)
	a.Add(300, 200) // +$5.00 = $13.00

	// Enough money, but the batch window has not elapsed.
	if got := a.Recommendation().Status; got != model.TransferAccumulating {
		t.Fatalf("status inside batch window = %v, want accumulating", got)
	}

	clock.advance(DefaultBatchWindow)
	if got := a.Recommendation().Status; got != model.TransferReady {
		t.Fatalf("status after window = %v, want ready", got)
	}
}

func TestNewExpenseExtendsBatchWindow(t *testing.T) {
	a, clock := newTestAggregator()

	a.Add(1200, 0)
	clock.advance(2 * time.Minute)
	a.Add(100, 0) // resets quiescence

	clock.advance(2 * time.Minute)
	if got := a.Recommendation().Status; got != model.TransferAccumulating {
		t.Fatalf("status 2m after latest expense = %v, want accumulating", got)
	}
}

func TestConfirmThenMarkDone(t *testing.T) {
	a, clock := newTestAggregator()

	a.Add(800, 700)
	clock.advance(DefaultBatchWindow + time.Second)

	if !a.Confirm() {
		t.Fatal("Confirm returned false with pending money")
	}

	snap := a.Snapshot()
	if snap.PendingTotalCents() != 0 {
		t.Fatalf("pending after confirm = %d, want 0", snap.PendingTotalCents())
	}
	if snap.AwaitingEmergencyCents != 800 || snap.AwaitingInvestmentCents != 700 {
		t.Fatalf("awaiting = %d/%d, want 800/700", snap.AwaitingEmergencyCents, snap.AwaitingInvestmentCents)
	}
	if snap.ConfirmationStartedEpochMillis == 0 {
		t.Fatal("confirmation start timestamp not set")
	}

	rec := a.Recommendation()
	if rec.Status != model.TransferAwaitingConfirmation {
		t.Fatalf("status after confirm = %v, want awaiting-confirmation", rec.Status)
	}
	if rec.TotalCents != 1500 || rec.ActiveExpenseCount != 1 {
		t.Fatalf("recommendation = %+v, want 1500 cents over 1 expense", rec)
	}

	em, inv, ok := a.MarkDone()
	if !ok || em != 800 || inv != 700 {
		t.Fatalf("MarkDone = (%d, %d, %v), want (800, 700, true)", em, inv, ok)
	}
	if a.Snapshot().AwaitingTotalCents() != 0 {
		t.Fatal("awaiting bucket not cleared by MarkDone")
	}
	if got := a.Recommendation().Status; got != model.TransferStandby {
		t.Fatalf("status after done = %v, want standby", got)
	}
}

func TestDuplicateActionsAreNoops(t *testing.T) {
	a, _ := newTestAggregator()

	if _, _, ok := a.MarkDone(); ok {
		t.Error("MarkDone on empty bucket reported ok")
	}
	if a.Confirm() {
		t.Error("Confirm with nothing pending reported ok")
	}
	if a.ReturnToPending() {
		t.Error("ReturnToPending with empty awaiting bucket reported ok")
	}
	if a.Dismiss() {
		t.Error("Dismiss with nothing pending reported ok")
	}

	a.Add(2000, 0)
	a.Confirm()
	a.MarkDone()
	if _, _, ok := a.MarkDone(); ok {
		t.Error("second MarkDone reported ok")
	}
}

func TestReturnToPendingPreservesCount(t *testing.T) {
	a, _ := newTestAggregator()

	a.Add(600, 0)
	a.Add(700, 0)
	a.Confirm()
	if !a.ReturnToPending() {
		t.Fatal("ReturnToPending returned false")
	}

	snap := a.Snapshot()
	if snap.PendingEmergencyCents != 1300 {
		t.Fatalf("pending emergency = %d, want 1300", snap.PendingEmergencyCents)
	}
	if snap.PendingExpenseCount != 2 {
		t.Fatalf("pending count = %d, want preserved 2", snap.PendingExpenseCount)
	}
	if snap.AwaitingTotalCents() != 0 {
		t.Fatal("awaiting bucket not emptied by undo")
	}
}

func TestDismissClearsPending(t *testing.T) {
	a, _ := newTestAggregator()

	a.Add(900, 100)
	if !a.Dismiss() {
		t.Fatal("Dismiss returned false with pending money")
	}
	snap := a.Snapshot()
	if snap.PendingTotalCents() != 0 || snap.PendingExpenseCount != 0 {
		t.Fatalf("pending not cleared: %+v", snap)
	}
}

func TestAwaitingDominatesDisplay(t *testing.T) {
	a, clock := newTestAggregator()

	a.Add(2000, 0)
	a.Confirm()
	// New money arrives while a confirmation is in flight: both buckets
	// are transiently non-zero, display stays on the confirmation.
	a.Add(500, 0)
	clock.advance(time.Hour)

	rec := a.Recommendation()
	if rec.Status != model.TransferAwaitingConfirmation {
		t.Fatalf("status = %v, want awaiting-confirmation to dominate", rec.Status)
	}
	if rec.TotalCents != 2000 {
		t.Fatalf("displayed total = %d, want the awaiting 2000", rec.TotalCents)
	}
}

func TestConcurrentAddsLoseNothing(t *testing.T) {
	a, _ := newTestAggregator()

	const workers = 8
	const perWorker = 250

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < perWorker; i++ {
				a.Add(3, 2)
			}
		}()
	}
	wg.Wait()

	snap := a.Snapshot()
	want := int64(workers * perWorker * 5)
	if snap.PendingTotalCents() != want {
		t.Fatalf("pending total = %d, want %d (no lost updates)", snap.PendingTotalCents(), want)
	}
	if snap.PendingExpenseCount != workers*perWorker {
		t.Fatalf("pending count = %d, want %d", snap.PendingExpenseCount, workers*perWorker)
	}
}

func TestStatusPure(t *testing.T) {
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	snap := model.SmartTransferSnapshot{
		PendingEmergencyCents:  1500,
		PendingExpenseCount:    1,
		LastExpenseEpochMillis: now.Add(-5 * time.Minute).UnixMilli(),
	}

	if got := Status(snap, 1000, 3*time.Minute, now); got != model.TransferReady {
		t.Fatalf("Status = %v, want ready", got)
	}
	if got := Status(model.SmartTransferSnapshot{}, 1000, 3*time.Minute, now); got != model.TransferStandby {
		t.Fatalf("empty snapshot Status = %v, want standby", got)
	}
}
