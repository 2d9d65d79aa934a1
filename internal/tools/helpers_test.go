package tools

import (
	"context"
	"sync"

	"github.com/abureyko/shipping-agent/internal/tracking"
)

type fakeTracker struct {
	live bool
	rec  tracking.TrackingRecord
	err  error

	mu    sync.Mutex
	calls []tracking.TrackingQuery
}

func (f *fakeTracker) Live() bool { return f.live }

func (f *fakeTracker) Track(_ context.Context, q tracking.TrackingQuery) (tracking.TrackingRecord, error) {
	f.mu.Lock()
	f.calls = append(f.calls, q)
	f.mu.Unlock()
	if f.err != nil {
		return tracking.TrackingRecord{}, f.err
	}
	if !f.live {
		return tracking.ProvideDemoRecord(q.TrackingNumber, q.Carrier), nil
	}
	return f.rec, nil
}

func (f *fakeTracker) EstimateDelivery(ctx context.Context, q tracking.TrackingQuery) (tracking.DeliveryEstimate, error) {
	rec, err := f.Track(ctx, q)
	if err != nil {
		return tracking.DeliveryEstimate{}, err
	}
	return rec.Estimate(), nil
}

type event struct {
	level string
	msg   string
}

type recordingReporter struct {
	mu       sync.Mutex
	events   []event
	progress []float64
}

func (r *recordingReporter) add(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event{level, msg})
}

func (r *recordingReporter) Info(_ context.Context, msg string)    { r.add("info", msg) }
func (r *recordingReporter) Warning(_ context.Context, msg string) { r.add("warning", msg) }
func (r *recordingReporter) Error(_ context.Context, msg string)   { r.add("error", msg) }

func (r *recordingReporter) Progress(_ context.Context, progress, _ float64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, progress)
}

func (r *recordingReporter) levels() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.level
	}
	return out
}
