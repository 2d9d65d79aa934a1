// Package watch re-tracks a set of parcels on a cron schedule and reports
// status changes.
//
// The watch list is persisted as JSON:
//
//	{ "version": 1, "watches": [ { "id":"…", "trackingNumber":"…",
//	    "carrier":"cdek", "lastStatus":"in_transit",
//	    "lastCheckedAtMs":…, "createdAtMs":… } ] }
package watch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	robfigcron "github.com/robfig/cron/v3"

	"github.com/abureyko/shipping-agent/internal/schema"
)

// DefaultSchedule re-checks every ten minutes.
const DefaultSchedule = "@every 10m"

// Watch is one tracked parcel and what was last observed about it.
type Watch struct {
	ID              string  `json:"id"`
	TrackingNumber  string  `json:"trackingNumber"`
	Carrier         string  `json:"carrier,omitempty"`
	LastStatus      string  `json:"lastStatus,omitempty"`
	LastMessage     string  `json:"lastMessage,omitempty"`
	LastCheckedAtMs *int64  `json:"lastCheckedAtMs,omitempty"`
	LastError       *string `json:"lastError,omitempty"`
	CreatedAtMs     int64   `json:"createdAtMs"`
}

type watchStore struct {
	Version int     `json:"version"`
	Watches []Watch `json:"watches"`
}

// OnChangeFunc is called when a parcel's status differs from the last one
// seen. oldStatus is empty on the first observation.
type OnChangeFunc func(ctx context.Context, w Watch, oldStatus, newStatus string)

// Watcher periodically runs the track_package tool for every watch.
type Watcher struct {
	track     schema.Tool
	schedule  string
	storePath string // empty keeps the list in memory only
	onChange  OnChangeFunc

	mu    sync.Mutex
	store watchStore

	// checking is held for the whole of a CheckAll run.
	checking sync.Mutex

	robfig *robfigcron.Cron
}

// NewWatcher validates schedule (standard 5-field cron or a descriptor such
// as "@every 10m") and returns a Watcher backed by storePath.
func NewWatcher(track schema.Tool, schedule, storePath string) (*Watcher, error) {
	if schedule == "" {
		schedule = DefaultSchedule
	}
	if _, err := robfigcron.ParseStandard(schedule); err != nil {
		return nil, fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
	}
	w := &Watcher{
		track:     track,
		schedule:  schedule,
		storePath: storePath,
		store:     watchStore{Version: 1},
		robfig:    robfigcron.New(robfigcron.WithChain(robfigcron.SkipIfStillRunning(robfigcron.DiscardLogger))),
	}
	if err := w.load(); err != nil {
		slog.Warn("watch: load failed, starting empty", "path", storePath, "err", err)
	}
	return w, nil
}

// SetOnChange registers the status-change callback. Must be set before Start().
func (w *Watcher) SetOnChange(fn OnChangeFunc) { w.onChange = fn }

// Schedule returns the effective cron schedule.
func (w *Watcher) Schedule() string { return w.schedule }

// Add starts watching number. Adding a number that is already watched
// returns the existing watch.
func (w *Watcher) Add(number, carrier string) (Watch, error) {
	number = strings.TrimSpace(number)
	if number == "" {
		return Watch{}, schema.NewToolError(schema.CodeInvalidParams, "tracking_number is required", nil)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, existing := range w.store.Watches {
		if existing.TrackingNumber == number {
			return existing, nil
		}
	}
	wt := Watch{
		ID:             uuid.NewString(),
		TrackingNumber: number,
		Carrier:        strings.TrimSpace(carrier),
		CreatedAtMs:    time.Now().UnixMilli(),
	}
	w.store.Watches = append(w.store.Watches, wt)
	w.saveLocked()
	slog.Info("watch: added", "tracking_number", number, "id", wt.ID)
	return wt, nil
}

// Remove stops watching the parcel with the given ID or tracking number.
func (w *Watcher) Remove(idOrNumber string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	before := len(w.store.Watches)
	filtered := w.store.Watches[:0]
	for _, wt := range w.store.Watches {
		if wt.ID != idOrNumber && wt.TrackingNumber != idOrNumber {
			filtered = append(filtered, wt)
		}
	}
	w.store.Watches = filtered
	removed := len(filtered) < before
	if removed {
		w.saveLocked()
	}
	return removed
}

// List returns every watch, oldest first.
func (w *Watcher) List() []Watch {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Watch, len(w.store.Watches))
	copy(out, w.store.Watches)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAtMs < out[j].CreatedAtMs })
	return out
}

// Start runs one check immediately, then on every schedule tick.
// Blocks until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	if _, err := w.robfig.AddFunc(w.schedule, func() { w.CheckAll(ctx) }); err != nil {
		return fmt.Errorf("schedule watch: %w", err)
	}
	w.CheckAll(ctx)

	w.robfig.Start()
	slog.Info("watch: started", "schedule", w.schedule, "watches", len(w.List()))

	<-ctx.Done()

	<-w.robfig.Stop().Done()
	return ctx.Err()
}

// CheckAll tracks every watched parcel once. Failures are recorded on the
// watch and logged; they never stop the schedule. A call made while another
// run is in progress returns immediately.
func (w *Watcher) CheckAll(ctx context.Context) {
	if !w.checking.TryLock() {
		slog.Warn("watch: previous check still running, skipping")
		return
	}
	defer w.checking.Unlock()

	for _, wt := range w.List() {
		if ctx.Err() != nil {
			return
		}
		w.check(ctx, wt)
	}
}

func (w *Watcher) check(ctx context.Context, wt Watch) {
	params := map[string]any{"tracking_number": wt.TrackingNumber}
	if wt.Carrier != "" {
		params["carrier"] = wt.Carrier
	}

	res, err := w.track.Execute(ctx, params)
	checkedAt := time.Now().UnixMilli()

	var newStatus, message string
	var lastErr *string
	if err != nil {
		e := err.Error()
		lastErr = &e
		slog.Error("watch: tracking failed", "tracking_number", wt.TrackingNumber, "err", err)
	} else {
		newStatus, _ = res.StructuredContent["status"].(string)
		message = res.Text()
	}

	w.mu.Lock()
	var (
		updated Watch
		found   bool
	)
	for i := range w.store.Watches {
		if w.store.Watches[i].ID != wt.ID {
			continue
		}
		w.store.Watches[i].LastCheckedAtMs = &checkedAt
		w.store.Watches[i].LastError = lastErr
		if err == nil {
			w.store.Watches[i].LastStatus = newStatus
			w.store.Watches[i].LastMessage = message
		}
		updated, found = w.store.Watches[i], true
		break
	}
	w.saveLocked()
	w.mu.Unlock()

	if !found || err != nil || newStatus == wt.LastStatus {
		return
	}
	slog.Info("watch: status changed", "tracking_number", wt.TrackingNumber, "old", wt.LastStatus, "new", newStatus)
	if w.onChange != nil {
		w.onChange(ctx, updated, wt.LastStatus, newStatus)
	}
}

func (w *Watcher) load() error {
	if w.storePath == "" {
		return nil
	}
	data, err := os.ReadFile(w.storePath)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	var st watchStore
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if st.Version == 0 {
		st.Version = 1
	}
	w.store = st
	return nil
}

func (w *Watcher) saveLocked() {
	if w.storePath == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(w.storePath), 0o755); err != nil {
		slog.Warn("watch: mkdir failed", "err", err)
		return
	}
	data, err := json.MarshalIndent(w.store, "", "  ")
	if err != nil {
		slog.Warn("watch: marshal failed", "err", err)
		return
	}
	if err := os.WriteFile(w.storePath, data, 0o644); err != nil {
		slog.Warn("watch: write failed", "err", err)
	}
}
