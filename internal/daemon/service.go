// Package daemon provides the long-running background savings monitor.
package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/stash-cli/stash/internal/model"
	"github.com/stash-cli/stash/internal/store"
	"github.com/stash-cli/stash/internal/transfer"
	"github.com/stash-cli/stash/internal/vault"
)

// Config controls the daemon runtime behavior.
type Config struct {
	DBPath           string
	Addr             string
	Interval         time.Duration
	EventsBuffer     int
	MinTransferCents int64
	BatchWindow      time.Duration
}

// Snapshot is a compact savings state for status/event payloads.
type Snapshot struct {
	At                 time.Time `json:"at"`
	TransferStatus     string    `json:"transfer_status"`
	PendingCents       int64     `json:"pending_cents"`
	AwaitingCents      int64     `json:"awaiting_cents"`
	ActiveExpenses     int       `json:"active_expenses"`
	ActiveVaults       int       `json:"active_vaults"`
	TotalSavedCents    int64     `json:"total_saved_cents"`
	AutoDepositsCents  int64     `json:"auto_deposits_cents"`
	AutoDepositsCount  int       `json:"auto_deposits_count"`
}

// Delta captures snapshot deltas between polls.
type Delta struct {
	PendingCents      int64 `json:"pending_cents"`
	AwaitingCents     int64 `json:"awaiting_cents"`
	TotalSavedCents   int64 `json:"total_saved_cents"`
	AutoDepositsCents int64 `json:"auto_deposits_cents"`
}

func (d Delta) isZero() bool {
	return d.PendingCents == 0 &&
		d.AwaitingCents == 0 &&
		d.TotalSavedCents == 0 &&
		d.AutoDepositsCents == 0
}

// Event is emitted whenever the savings snapshot changes.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status is served at /v1/status.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastPollAt      time.Time `json:"last_poll_at"`
	PollIntervalSec int       `json:"poll_interval_sec"`
	PollCount       int64     `json:"poll_count"`
	DBPath          string    `json:"db_path"`
	Summary         Snapshot  `json:"summary"`
	LastError       string    `json:"last_error,omitempty"`
	EventCount      int       `json:"event_count"`
	SubscriberCount int       `json:"subscriber_count"`
}

// Service provides the daemon runtime and HTTP API.
type Service struct {
	cfg Config
	st  *store.Store
	log zerolog.Logger

	mu          sync.RWMutex
	startedAt   time.Time
	lastPollAt  time.Time
	pollCount   int64
	lastError   string
	hasSnapshot bool
	snapshot    Snapshot
	nextEventID int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a new daemon service with the provided config.
func New(cfg Config, st *store.Store, log zerolog.Logger) *Service {
	if cfg.Interval < 2*time.Second {
		cfg.Interval = 30 * time.Second
	}
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Addr == "" {
		cfg.Addr = "127.0.0.1:8787"
	}
	if cfg.MinTransferCents <= 0 {
		cfg.MinTransferCents = 1000
	}
	if cfg.BatchWindow <= 0 {
		cfg.BatchWindow = 3 * time.Minute
	}

	return &Service{
		cfg:       cfg,
		st:        st,
		log:       log,
		startedAt: time.Now(),
		subs:      make(map[int]chan Event),
	}
}

// Run starts HTTP endpoints and polling until ctx is canceled.
func (s *Service) Run(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", s.handleHealth)
	mux.HandleFunc("/v1/status", s.handleStatus)
	mux.HandleFunc("/v1/events", s.handleEvents)
	mux.HandleFunc("/v1/stream", s.handleStream)

	server := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.log.Info().Str("addr", s.cfg.Addr).Dur("interval", s.cfg.Interval).Msg("daemon started")

	// Seed initial snapshot so status is useful immediately.
	s.pollOnce()

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		case <-ticker.C:
			s.pollOnce()
		case err := <-errCh:
			return fmt.Errorf("daemon http server: %w", err)
		}
	}
}

func (s *Service) pollOnce() {
	now := time.Now()

	s.mu.RLock()
	since := s.lastPollAt
	s.mu.RUnlock()
	if since.IsZero() {
		since = now.Add(-s.cfg.Interval)
	}

	snap, err := s.buildSnapshot(since, now)
	if err != nil {
		s.mu.Lock()
		s.lastError = err.Error()
		s.lastPollAt = now
		s.pollCount++
		s.mu.Unlock()
		s.log.Error().Err(err).Msg("poll failed")
		return
	}

	var (
		ev      Event
		publish bool
	)

	s.mu.Lock()
	prev := s.snapshot
	prevExists := s.hasSnapshot

	s.hasSnapshot = true
	s.snapshot = snap
	s.lastPollAt = now
	s.pollCount++
	s.lastError = ""

	if !prevExists {
		s.nextEventID++
		ev = Event{
			ID:        s.nextEventID,
			Type:      "snapshot",
			Timestamp: now,
			Snapshot:  snap,
		}
		publish = true
	} else {
		delta := diffSnapshots(prev, snap)
		becameReady := prev.TransferStatus != snap.TransferStatus &&
			snap.TransferStatus == model.TransferReady.String()
		if !delta.isZero() || becameReady {
			s.nextEventID++
			evType := "state_delta"
			if becameReady {
				evType = "transfer_ready"
			}
			ev = Event{
				ID:        s.nextEventID,
				Type:      evType,
				Timestamp: now,
				Snapshot:  snap,
				Delta:     delta,
			}
			publish = true
		}
	}
	s.mu.Unlock()

	if publish {
		s.publishEvent(ev)
	}
}

// buildSnapshot applies due auto-deposits for the poll window, then reads
// the transfer accumulator and vault totals.
func (s *Service) buildSnapshot(since, now time.Time) (Snapshot, error) {
	vaults, err := s.st.ListVaults(false)
	if err != nil {
		return Snapshot{}, err
	}

	var depositCents int64
	deposits := vault.DueDeposits(vaults, since, now)
	if len(deposits) > 0 {
		if err := s.st.ApplyContributions(deposits); err != nil {
			return Snapshot{}, err
		}
		for _, d := range deposits {
			depositCents += d.AmountCents
		}
		s.log.Info().Int("count", len(deposits)).Int64("cents", depositCents).Msg("auto-deposits applied")
		// Re-read so balances include the deposits we just wrote.
		vaults, err = s.st.ListVaults(false)
		if err != nil {
			return Snapshot{}, err
		}
	}

	transferSnap, err := s.st.TransferSnapshot()
	if err != nil {
		return Snapshot{}, err
	}
	status := transfer.Status(transferSnap, s.cfg.MinTransferCents, s.cfg.BatchWindow, now)

	var totalSaved int64
	for _, v := range vaults {
		totalSaved += v.BalanceCents
	}

	return Snapshot{
		At:                now,
		TransferStatus:    status.String(),
		PendingCents:      transferSnap.PendingTotalCents(),
		AwaitingCents:     transferSnap.AwaitingTotalCents(),
		ActiveExpenses:    transferSnap.PendingExpenseCount,
		ActiveVaults:      len(vaults),
		TotalSavedCents:   totalSaved,
		AutoDepositsCents: depositCents,
		AutoDepositsCount: len(deposits),
	}, nil
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		PendingCents:      curr.PendingCents - prev.PendingCents,
		AwaitingCents:     curr.AwaitingCents - prev.AwaitingCents,
		TotalSavedCents:   curr.TotalSavedCents - prev.TotalSavedCents,
		AutoDepositsCents: curr.AutoDepositsCents,
	}
}

func (s *Service) publishEvent(ev Event) {
	s.mu.Lock()
	s.events = append(s.events, ev)
	if len(s.events) > s.cfg.EventsBuffer {
		s.events = s.events[len(s.events)-s.cfg.EventsBuffer:]
	}

	for _, ch := range s.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	s.mu.Unlock()
}

func (s *Service) snapshotStatus() Status {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Status{
		StartedAt:       s.startedAt,
		LastPollAt:      s.lastPollAt,
		PollIntervalSec: int(s.cfg.Interval.Seconds()),
		PollCount:       s.pollCount,
		DBPath:          s.cfg.DBPath,
		Summary:         s.snapshot,
		LastError:       s.lastError,
		EventCount:      len(s.events),
		SubscriberCount: len(s.subs),
	}
}

func (s *Service) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Service) handleStatus(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(s.snapshotStatus())
}

func (s *Service) handleEvents(w http.ResponseWriter, _ *http.Request) {
	s.mu.RLock()
	events := make([]Event, len(s.events))
	copy(events, s.events)
	s.mu.RUnlock()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(events)
}

func (s *Service) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan Event, 16)
	id := s.addSubscriber(ch)
	defer s.removeSubscriber(id)

	// Send current snapshot immediately.
	current := Event{
		Type:      "snapshot",
		Timestamp: time.Now(),
		Snapshot:  s.snapshotStatus().Summary,
	}
	writeSSE(w, current)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case ev := <-ch:
			writeSSE(w, ev)
			flusher.Flush()
		}
	}
}

func writeSSE(w http.ResponseWriter, ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		return
	}
	_, _ = fmt.Fprintf(w, "event: %s\n", ev.Type)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", data)
}

func (s *Service) addSubscriber(ch chan Event) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextSubID++
	id := s.nextSubID
	s.subs[id] = ch
	return id
}

func (s *Service) removeSubscriber(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}
