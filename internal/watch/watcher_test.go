package watch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abureyko/shipping-agent/internal/schema"
)

// scriptedTool returns the next status from statuses on every call.
type scriptedTool struct {
	mu       sync.Mutex
	statuses []string
	calls    int
	err      error
}

func (s *scriptedTool) Name() string                { return "track_package" }
func (s *scriptedTool) Description() string         { return "" }
func (s *scriptedTool) Parameters() json.RawMessage { return json.RawMessage(`{}`) }

func (s *scriptedTool) Execute(_ context.Context, params map[string]any) (*schema.ToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	status := s.statuses[min(s.calls-1, len(s.statuses)-1)]
	return schema.NewToolResult("Package "+params["tracking_number"].(string)+": "+status,
		map[string]any{"status": status}, nil), nil
}

type change struct{ old, new string }

func TestNewWatcher_Schedule(t *testing.T) {
	w, err := NewWatcher(&scriptedTool{}, "", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultSchedule, w.Schedule())

	_, err = NewWatcher(&scriptedTool{}, "*/5 * * * *", "")
	assert.NoError(t, err)

	_, err = NewWatcher(&scriptedTool{}, "every now and then", "")
	assert.Error(t, err)
}

func TestAdd_DeduplicatesAndValidates(t *testing.T) {
	w, err := NewWatcher(&scriptedTool{}, "", "")
	require.NoError(t, err)

	a, err := w.Add("1234567890", "cdek")
	require.NoError(t, err)
	b, err := w.Add(" 1234567890 ", "")
	require.NoError(t, err)
	assert.Equal(t, a.ID, b.ID)
	assert.Len(t, w.List(), 1)

	_, err = w.Add("  ", "")
	assert.Equal(t, schema.CodeInvalidParams, schema.AsToolError(err).Code)
}

func TestRemove(t *testing.T) {
	w, _ := NewWatcher(&scriptedTool{}, "", "")
	a, _ := w.Add("11111111", "")
	_, _ = w.Add("22222222", "")

	assert.True(t, w.Remove(a.ID))
	assert.True(t, w.Remove("22222222"))
	assert.False(t, w.Remove("33333333"))
	assert.Empty(t, w.List())
}

func TestCheckAll_ReportsChanges(t *testing.T) {
	tool := &scriptedTool{statuses: []string{"in_transit", "in_transit", "delivered"}}
	w, _ := NewWatcher(tool, "", "")
	_, _ = w.Add("1234567890", "cdek")

	var changes []change
	w.SetOnChange(func(_ context.Context, wt Watch, oldStatus, newStatus string) {
		assert.Equal(t, "1234567890", wt.TrackingNumber)
		assert.Equal(t, newStatus, wt.LastStatus)
		changes = append(changes, change{oldStatus, newStatus})
	})

	ctx := context.Background()
	w.CheckAll(ctx)
	w.CheckAll(ctx)
	w.CheckAll(ctx)

	assert.Equal(t, []change{{"", "in_transit"}, {"in_transit", "delivered"}}, changes)
	assert.Equal(t, 3, tool.calls)
	got := w.List()[0]
	assert.Equal(t, "delivered", got.LastStatus)
	assert.Equal(t, "Package 1234567890: delivered", got.LastMessage)
	assert.NotNil(t, got.LastCheckedAtMs)
}

func TestCheckAll_ErrorsAreRecorded(t *testing.T) {
	tool := &scriptedTool{err: schema.NewToolError(schema.CodeUpstreamFailure, "request timed out", nil)}
	w, _ := NewWatcher(tool, "", "")
	_, _ = w.Add("1234567890", "")

	called := false
	w.SetOnChange(func(context.Context, Watch, string, string) { called = true })
	w.CheckAll(context.Background())

	assert.False(t, called)
	got := w.List()[0]
	require.NotNil(t, got.LastError)
	assert.Contains(t, *got.LastError, "request timed out")
	assert.Empty(t, got.LastStatus)
}

func TestPersistence_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watch", "watches.json")
	tool := &scriptedTool{statuses: []string{"in_transit"}}

	w, err := NewWatcher(tool, "", path)
	require.NoError(t, err)
	_, _ = w.Add("1234567890", "dhl")
	w.CheckAll(context.Background())

	_, err = os.Stat(path)
	require.NoError(t, err)

	reloaded, err := NewWatcher(tool, "", path)
	require.NoError(t, err)
	list := reloaded.List()
	require.Len(t, list, 1)
	assert.Equal(t, "dhl", list[0].Carrier)
	assert.Equal(t, "in_transit", list[0].LastStatus)
}

func TestPersistence_CorruptFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watches.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	w, err := NewWatcher(&scriptedTool{}, "", path)
	require.NoError(t, err)
	assert.Empty(t, w.List())
}

func TestStart_ChecksImmediatelyAndStops(t *testing.T) {
	tool := &scriptedTool{statuses: []string{"in_transit"}}
	w, _ := NewWatcher(tool, "@every 1h", "")
	_, _ = w.Add("1234567890", "")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Start(ctx) }()

	require.Eventually(t, func() bool {
		tool.mu.Lock()
		defer tool.mu.Unlock()
		return tool.calls == 1
	}, time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Start did not return after cancel")
	}
}

// blockingTool holds every Execute call until release is closed.
type blockingTool struct {
	scriptedTool
	entered chan struct{}
	release chan struct{}
}

func (b *blockingTool) Execute(ctx context.Context, params map[string]any) (*schema.ToolResult, error) {
	b.entered <- struct{}{}
	<-b.release
	return b.scriptedTool.Execute(ctx, params)
}

func TestCheckAll_OverlappingRunIsSkipped(t *testing.T) {
	tool := &blockingTool{
		scriptedTool: scriptedTool{statuses: []string{"in_transit"}},
		entered:      make(chan struct{}, 2),
		release:      make(chan struct{}),
	}
	w, _ := NewWatcher(tool, "", "")
	_, _ = w.Add("1234567890", "")

	var (
		mu      sync.Mutex
		changes int
	)
	w.SetOnChange(func(context.Context, Watch, string, string) {
		mu.Lock()
		changes++
		mu.Unlock()
	})

	done := make(chan struct{})
	go func() {
		w.CheckAll(context.Background())
		close(done)
	}()
	<-tool.entered

	w.CheckAll(context.Background())
	close(tool.release)
	<-done

	assert.Equal(t, 1, tool.calls)
	assert.Len(t, tool.entered, 0)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, changes)
}
