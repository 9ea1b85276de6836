package notify_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
	"github.com/kapilcyber/bank.ai-sub001/internal/notify"
)

// fakeFetcher serves scripted batches and records every call.
type fakeFetcher struct {
	mu      sync.Mutex
	calls   int64
	limit   int
	days    int
	batch   *domain.NotificationBatch
	err     error
	release chan struct{} // when set, Notifications blocks until closed
}

func (f *fakeFetcher) Notifications(ctx context.Context, limit, windowDays int) (*domain.NotificationBatch, error) {
	atomic.AddInt64(&f.calls, 1)
	f.mu.Lock()
	f.limit = limit
	f.days = windowDays
	batch, err, release := f.batch, f.err, f.release
	f.mu.Unlock()
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return batch, err
}

func (f *fakeFetcher) callCount() int64 { return atomic.LoadInt64(&f.calls) }

func (f *fakeFetcher) set(batch *domain.NotificationBatch, err error) {
	f.mu.Lock()
	f.batch = batch
	f.err = err
	f.mu.Unlock()
}

func twoItemBatch() *domain.NotificationBatch {
	return &domain.NotificationBatch{
		Items: []domain.NotificationItem{
			{ID: "n1", Type: domain.NotificationJobApplication, Message: "New application"},
			{ID: "n2", Type: domain.NotificationResumeUpload, Message: "Resume uploaded"},
		},
		UnreadCount: 2,
	}
}

func TestRefreshUpdatesSnapshot(t *testing.T) {
	f := &fakeFetcher{}
	f.set(twoItemBatch(), nil)

	var updates []notify.Snapshot
	p := notify.NewPoller(f, notify.Options{
		Limit:      25,
		WindowDays: 3,
		OnUpdate:   func(s notify.Snapshot) { updates = append(updates, s) },
	})

	p.Refresh(context.Background())

	snap := p.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 2, snap.UnreadCount)
	assert.Equal(t, 25, f.limit)
	assert.Equal(t, 3, f.days)
	assert.Len(t, updates, 1)
}

func TestRefreshFailureClearsSnapshot(t *testing.T) {
	f := &fakeFetcher{}
	f.set(twoItemBatch(), nil)
	p := notify.NewPoller(f, notify.Options{})

	p.Refresh(context.Background())
	assert.Equal(t, 2, p.Snapshot().UnreadCount)

	f.set(nil, errors.New("backend down"))
	p.Refresh(context.Background())

	snap := p.Snapshot()
	assert.Empty(t, snap.Items)
	assert.Zero(t, snap.UnreadCount, "failure must clear the count, not keep stale data")
}

func TestRefreshClampsNegativeUnread(t *testing.T) {
	f := &fakeFetcher{}
	f.set(&domain.NotificationBatch{UnreadCount: -5}, nil)
	p := notify.NewPoller(f, notify.Options{})

	p.Refresh(context.Background())
	assert.Zero(t, p.Snapshot().UnreadCount)
}

func TestRefreshInFlightAbsorbsOverlap(t *testing.T) {
	release := make(chan struct{})
	f := &fakeFetcher{release: release}
	f.set(twoItemBatch(), nil)
	p := notify.NewPoller(f, notify.Options{})

	firstDone := make(chan struct{})
	go func() {
		p.Refresh(context.Background())
		close(firstDone)
	}()

	// Wait for the first refresh to reach the fetcher, then pile on.
	waitFor(t, func() bool { return f.callCount() == 1 })
	p.Refresh(context.Background())
	p.Refresh(context.Background())
	assert.EqualValues(t, 1, f.callCount(), "overlapping refreshes must not fetch")

	close(release)
	<-firstDone
	assert.EqualValues(t, 1, f.callCount())
}

func TestDebouncedUploadSignalsCollapse(t *testing.T) {
	f := &fakeFetcher{}
	f.set(twoItemBatch(), nil)

	updates := make(chan notify.Snapshot, 16)
	p := notify.NewPoller(f, notify.Options{
		Interval: time.Hour, // keep the ticker out of the way
		Debounce: 20 * time.Millisecond,
		OnUpdate: func(s notify.Snapshot) { updates <- s },
	})

	p.Start(context.Background())
	defer p.Stop()
	<-updates // initial refresh on start
	assert.EqualValues(t, 1, f.callCount())

	p.NotifyResumeUploaded()
	p.NotifyResumeUploaded()
	p.NotifyResumeUploaded()

	select {
	case <-updates:
	case <-time.After(2 * time.Second):
		t.Fatal("debounced refresh never fired")
	}
	// A burst of signals inside the window yields exactly one extra fetch.
	time.Sleep(50 * time.Millisecond)
	assert.EqualValues(t, 2, f.callCount())
}

func TestStopHaltsPolling(t *testing.T) {
	f := &fakeFetcher{}
	f.set(twoItemBatch(), nil)
	p := notify.NewPoller(f, notify.Options{
		Interval: 10 * time.Millisecond,
		Debounce: 5 * time.Millisecond,
	})

	p.Start(context.Background())
	waitFor(t, func() bool { return f.callCount() >= 2 })

	p.NotifyResumeUploaded()
	p.Stop()

	calls := f.callCount()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, f.callCount(), "no fetches after Stop")

	// Signals after Stop are dropped.
	p.NotifyResumeUploaded()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, calls, f.callCount())
}

func TestStartTwiceIsNoop(t *testing.T) {
	f := &fakeFetcher{}
	f.set(twoItemBatch(), nil)
	p := notify.NewPoller(f, notify.Options{Interval: time.Hour})

	p.Start(context.Background())
	p.Start(context.Background())
	defer p.Stop()

	waitFor(t, func() bool { return f.callCount() >= 1 })
	time.Sleep(30 * time.Millisecond)
	assert.EqualValues(t, 1, f.callCount(), "second Start must not spawn a second loop")
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("condition not met in time")
}
