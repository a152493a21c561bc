// Package poller implements the timer-driven refresh loop used where no push
// channel is wired for a data type (the live crypto list).
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"assetdeck/internal/domain"
)

// FetchFunc fetches the current live-quote batch.
type FetchFunc func(ctx context.Context) ([]domain.Quote, error)

// ApplyFunc merges a fetched batch into view state. Called only on
// successful fetches.
type ApplyFunc func([]domain.Quote)

// LivePoller re-fetches the live list on a fixed interval and hands each
// successful batch to apply. Fetch errors are swallowed so the view keeps
// its last-known-good data. Starting a running poller tears the previous
// loop down first, so there is never more than one timer per poller.
type LivePoller struct {
	interval time.Duration
	fetch    FetchFunc
	apply    ApplyFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewLivePoller creates a poller with the given refresh interval.
func NewLivePoller(interval time.Duration, fetch FetchFunc, apply ApplyFunc) *LivePoller {
	return &LivePoller{
		interval: interval,
		fetch:    fetch,
		apply:    apply,
	}
}

// Start begins polling. Any previous run is stopped first.
func (p *LivePoller) Start(ctx context.Context) {
	p.Stop()

	p.mu.Lock()
	ctx, p.cancel = context.WithCancel(ctx)
	p.mu.Unlock()

	p.wg.Add(1)
	go p.run(ctx)
}

// Stop cancels the polling loop and waits for it to exit. Idempotent, and
// required on view teardown: a leaked timer keeps fetching forever.
func (p *LivePoller) Stop() {
	p.mu.Lock()
	cancel := p.cancel
	p.cancel = nil
	p.mu.Unlock()

	if cancel != nil {
		cancel()
		p.wg.Wait()
	}
}

func (p *LivePoller) run(ctx context.Context) {
	defer p.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Live polling stopped")
			return
		case <-ticker.C:
			batch, err := p.fetch(ctx)
			if err != nil {
				slog.Debug("Live poll fetch failed", "err", err)
				continue
			}
			p.apply(batch)
		}
	}
}
