// Package dashboard keeps the admin dashboard statistics fresh.
package dashboard

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/echoverse/echo-web/internal/domain"
)

// DefaultInterval is the refresh period when none is configured.
const DefaultInterval = 60 * time.Second

// Source supplies the raw statistics.
type Source interface {
	CategoryStats(ctx context.Context) ([]domain.CategoryStat, error)
	ItemStats(ctx context.Context) (domain.ItemOverview, error)
}

// CategoryCounts summarizes categories.
type CategoryCounts struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// ItemCounts summarizes items.
type ItemCounts struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Draft    int `json:"draft"`
	Featured int `json:"featured"`
}

// Snapshot is the most recent dashboard state.
// Counts are from the last successful refresh; LastError is set when the latest one failed.
type Snapshot struct {
	Categories  CategoryCounts `json:"categories"`
	Items       ItemCounts     `json:"items"`
	UpdatedAt   time.Time      `json:"updatedAt,omitzero"`
	LastError   string         `json:"lastError,omitempty"`
	LastAttempt time.Time      `json:"lastAttempt,omitzero"`
}

// Poller refreshes the snapshot on a fixed interval.
type Poller struct {
	source   Source
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu       sync.RWMutex
	snapshot Snapshot

	cancel context.CancelFunc
	done   chan struct{}
}

// NewPoller creates a poller. A non-positive interval uses DefaultInterval.
func NewPoller(source Source, interval time.Duration, logger *slog.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{
		source:   source,
		interval: interval,
		logger:   logger,
		now:      time.Now,
	}
}

// Start refreshes once immediately and then on every tick until ctx is cancelled or Stop is called.
// Ticks do not wait for earlier refreshes; whichever finishes last wins.
func (p *Poller) Start(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.done = make(chan struct{})

	go func() {
		defer close(p.done)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		var wg sync.WaitGroup
		defer wg.Wait()

		run := func() {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = p.Refresh(ctx)
			}()
		}

		run()
		for {
			select {
			case <-ticker.C:
				run()
			case <-ctx.Done():
				return
			}
		}
	}()

	p.logger.Info("dashboard poller started", "interval", p.interval)
}

// Stop cancels the poller and waits for in-flight refreshes.
func (p *Poller) Stop() {
	if p.cancel == nil {
		return
	}
	p.cancel()
	<-p.done
}

// Shutdown implements do.ShutdownerWithError.
func (p *Poller) Shutdown() error {
	p.Stop()
	return nil
}

// Snapshot returns a copy of the current state.
func (p *Poller) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

// Refresh fetches both statistics concurrently and stores the result.
// On failure the previous counts are kept and the error is recorded.
func (p *Poller) Refresh(ctx context.Context) (Snapshot, error) {
	var (
		categories []domain.CategoryStat
		items      domain.ItemOverview
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		categories, err = p.source.CategoryStats(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		items, err = p.source.ItemStats(gctx)
		return err
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()

	p.snapshot.LastAttempt = p.now()
	if err != nil {
		p.snapshot.LastError = err.Error()
		p.logger.Warn("dashboard stats refresh failed", "error", err)
		return p.snapshot, err
	}

	p.snapshot.Categories = countCategories(categories)
	p.snapshot.Items = ItemCounts(items)
	p.snapshot.UpdatedAt = p.snapshot.LastAttempt
	p.snapshot.LastError = ""
	return p.snapshot, nil
}

func countCategories(stats []domain.CategoryStat) CategoryCounts {
	c := CategoryCounts{Total: len(stats)}
	for _, s := range stats {
		if s.Status == domain.CategoryActive {
			c.Active++
		}
	}
	return c
}
