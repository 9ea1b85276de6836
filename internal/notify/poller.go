// Package notify fetches admin activity notifications on a fixed interval
// and exposes the latest batch. A failed fetch clears the visible list and
// zeroes the unread count rather than showing stale data.
package notify

import (
	"context"
	"sync"
	"time"

	"github.com/kapilcyber/bank.ai-sub001/internal/domain"
	"github.com/kapilcyber/bank.ai-sub001/internal/logger"
)

// Fetcher retrieves one notification batch.
type Fetcher interface {
	Notifications(ctx context.Context, limit, windowDays int) (*domain.NotificationBatch, error)
}

// Snapshot is the poller's current view.
type Snapshot struct {
	Items       []domain.NotificationItem
	UnreadCount int
}

// UpdateFunc observes snapshot changes.
type UpdateFunc func(Snapshot)

// Options configure a Poller.
type Options struct {
	Interval   time.Duration // fixed refresh interval; default 60s
	Debounce   time.Duration // delay for upload-triggered refreshes; default 2s
	Limit      int           // max items per fetch; default 50
	WindowDays int           // lookback window; default 7
	OnUpdate   UpdateFunc    // optional snapshot observer
}

// Poller periodically refreshes notifications. Timer ticks and
// upload-triggered signals converge on the same refresh path, and a refresh
// that is already in flight absorbs any overlapping trigger.
type Poller struct {
	fetcher    Fetcher
	interval   time.Duration
	debounce   time.Duration
	limit      int
	windowDays int
	onUpdate   UpdateFunc

	mu            sync.Mutex
	snapshot      Snapshot
	inFlight      bool
	debounceTimer *time.Timer
	cancel        context.CancelFunc
	done          chan struct{}
	runCtx        context.Context
}

// NewPoller creates a poller over the given fetcher.
func NewPoller(fetcher Fetcher, opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 2 * time.Second
	}
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 7
	}
	return &Poller{
		fetcher:    fetcher,
		interval:   opts.Interval,
		debounce:   opts.Debounce,
		limit:      opts.Limit,
		windowDays: opts.WindowDays,
		onUpdate:   opts.OnUpdate,
	}
}

// Start begins polling: one immediate refresh, then one per interval. It
// returns immediately; polling continues until ctx is cancelled or Stop is
// called. Starting a running poller is a no-op.
func (p *Poller) Start(ctx context.Context) {
	p.mu.Lock()
	if p.cancel != nil {
		p.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	p.runCtx = runCtx
	p.cancel = cancel
	done := make(chan struct{})
	p.done = done
	p.mu.Unlock()

	go p.run(runCtx, done)
}

// Stop halts polling, clears any pending debounce timer, and cancels an
// in-flight fetch. It blocks until the polling goroutine has exited.
func (p *Poller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	done := p.done
	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
		p.debounceTimer = nil
	}
	p.cancel = nil
	p.runCtx = nil
	p.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (p *Poller) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	p.Refresh(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.Refresh(ctx)
		}
	}
}

// Refresh fetches one batch now. When a refresh is already in flight the
// call returns immediately without issuing a second request. On failure the
// snapshot is cleared: no items, zero unread.
func (p *Poller) Refresh(ctx context.Context) {
	p.mu.Lock()
	if p.inFlight {
		p.mu.Unlock()
		return
	}
	p.inFlight = true
	p.mu.Unlock()

	batch, err := p.fetcher.Notifications(ctx, p.limit, p.windowDays)

	p.mu.Lock()
	p.inFlight = false
	if err != nil {
		p.snapshot = Snapshot{}
	} else {
		unread := batch.UnreadCount
		if unread < 0 {
			unread = 0
		}
		p.snapshot = Snapshot{Items: batch.Items, UnreadCount: unread}
	}
	snap := p.snapshot
	onUpdate := p.onUpdate
	p.mu.Unlock()

	if err != nil {
		logger.Warn("notifications.refresh_failed", "err", err)
	}
	if onUpdate != nil {
		onUpdate(snap)
	}
}

// NotifyResumeUploaded schedules an out-of-band refresh after the debounce
// delay, giving the backend time to index the new record. Repeated signals
// within the delay collapse into one refresh. Signals on a stopped poller
// are ignored.
func (p *Poller) NotifyResumeUploaded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.runCtx == nil {
		return
	}
	ctx := p.runCtx
	if p.debounceTimer != nil {
		p.debounceTimer.Stop()
	}
	p.debounceTimer = time.AfterFunc(p.debounce, func() {
		p.Refresh(ctx)
	})
}

// Snapshot returns the latest batch and its derived unread count.
func (p *Poller) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshot
}
