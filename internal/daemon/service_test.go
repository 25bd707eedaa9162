package daemon

import (
	"testing"
	"time"

	"github.com/stash-cli/stash/internal/logger"
)

func TestDiffSnapshots(t *testing.T) {
	prev := Snapshot{
		PendingCents:    500,
		AwaitingCents:   0,
		TotalSavedCents: 120000,
	}
	curr := Snapshot{
		PendingCents:      1300,
		AwaitingCents:     0,
		TotalSavedCents:   125000,
		AutoDepositsCents: 5000,
	}

	delta := diffSnapshots(prev, curr)
	if delta.PendingCents != 800 {
		t.Fatalf("PendingCents delta = %d, want 800", delta.PendingCents)
	}
	if delta.TotalSavedCents != 5000 {
		t.Fatalf("TotalSavedCents delta = %d, want 5000", delta.TotalSavedCents)
	}
	if delta.AutoDepositsCents != 5000 {
		t.Fatalf("AutoDepositsCents = %d, want 5000", delta.AutoDepositsCents)
	}
	if delta.isZero() {
		t.Fatal("delta unexpectedly reported as zero")
	}
}

func TestDiffSnapshotsZero(t *testing.T) {
	snap := Snapshot{PendingCents: 500, TotalSavedCents: 1000}
	if !diffSnapshots(snap, snap).isZero() {
		t.Fatal("identical snapshots should produce a zero delta")
	}
}

func TestPublishEventRingBuffer(t *testing.T) {
	s := New(Config{
		Interval:     10 * time.Second,
		EventsBuffer: 2,
	}, nil, logger.New())

	s.publishEvent(Event{ID: 1})
	s.publishEvent(Event{ID: 2})
	s.publishEvent(Event{ID: 3})

	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.events) != 2 {
		t.Fatalf("events len = %d, want 2", len(s.events))
	}
	if s.events[0].ID != 2 || s.events[1].ID != 3 {
		t.Fatalf("events ring contains IDs [%d, %d], want [2, 3]", s.events[0].ID, s.events[1].ID)
	}
}

func TestConfigDefaults(t *testing.T) {
	s := New(Config{}, nil, logger.New())

	if s.cfg.Interval != 30*time.Second {
		t.Errorf("Interval default = %v, want 30s", s.cfg.Interval)
	}
	if s.cfg.MinTransferCents != 1000 {
		t.Errorf("MinTransferCents default = %d, want 1000", s.cfg.MinTransferCents)
	}
	if s.cfg.BatchWindow != 3*time.Minute {
		t.Errorf("BatchWindow default = %v, want 3m", s.cfg.BatchWindow)
	}
	if s.cfg.Addr != "127.0.0.1:8787" {
		t.Errorf("Addr default = %q", s.cfg.Addr)
	}
}
