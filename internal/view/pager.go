// Package view holds the per-screen state controllers: pagination cursors,
// loading/error flags, and the merge/refetch decisions between server
// responses and displayed state. Rendering is someone else's job.
package view

import (
	"context"
	"sync"

	"assetdeck/internal/domain"
)

// PageState is the pagination state machine's state.
type PageState int

const (
	PageIdle PageState = iota
	PageLoading
	PageLoaded
	PageErrored
)

func (s PageState) String() string {
	switch s {
	case PageIdle:
		return "IDLE"
	case PageLoading:
		return "LOADING"
	case PageLoaded:
		return "LOADED"
	case PageErrored:
		return "ERRORED"
	default:
		return "UNKNOWN"
	}
}

// FetchPage loads one page of a collection.
type FetchPage[T any] func(ctx context.Context, page, size int) (domain.Page[T], error)

// Pager drives one paginated collection. A failed fetch keeps the requested
// page number so the same page can be retried; an empty non-first page is
// never surfaced; the pager walks back a page and re-fetches instead.
//
// There is no request-generation guard: when Load is invoked concurrently,
// whichever response resolves last wins, even if it was requested first.
type Pager[T any] struct {
	mu         sync.Mutex
	state      PageState
	page       int
	totalPages int
	content    []T
	lastErr    error

	size  int
	fetch FetchPage[T]
}

// NewPager creates a pager with the given page size.
func NewPager[T any](size int, fetch FetchPage[T]) *Pager[T] {
	return &Pager[T]{size: size, fetch: fetch}
}

// Load fetches the given page. On an empty result for a non-first page it
// decrements and fetches again until it lands on a stable page.
func (p *Pager[T]) Load(ctx context.Context, page int) error {
	for {
		p.mu.Lock()
		p.state = PageLoading
		p.page = page
		p.mu.Unlock()

		result, err := p.fetch(ctx, page, p.size)

		p.mu.Lock()
		if err != nil {
			p.state = PageErrored
			p.lastErr = err
			p.mu.Unlock()
			return err
		}

		if len(result.Content) == 0 && page > 0 {
			// Never display an empty non-first page.
			page--
			p.mu.Unlock()
			continue
		}

		p.state = PageLoaded
		p.content = result.Content
		p.totalPages = result.TotalPages
		p.lastErr = nil
		p.mu.Unlock()
		return nil
	}
}

// Reload re-fetches the current page.
func (p *Pager[T]) Reload(ctx context.Context) error {
	p.mu.Lock()
	page := p.page
	p.mu.Unlock()
	return p.Load(ctx, page)
}

// Reset returns the pager to Idle at page 0. Called when an upstream filter
// changes: the page reset is unconditional.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	p.state = PageIdle
	p.page = 0
	p.totalPages = 0
	p.content = nil
	p.lastErr = nil
	p.mu.Unlock()
}

// AfterDelete refreshes state after one item of the current page was
// deleted. Removing the last remaining item of a non-first page goes
// straight to the previous page.
func (p *Pager[T]) AfterDelete(ctx context.Context) error {
	p.mu.Lock()
	page := p.page
	if len(p.content) <= 1 && page > 0 {
		page--
	}
	p.mu.Unlock()
	return p.Load(ctx, page)
}

// State returns the current state.
func (p *Pager[T]) State() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Page returns the current page index.
func (p *Pager[T]) Page() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.page
}

// TotalPages returns the last known page count.
func (p *Pager[T]) TotalPages() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.totalPages
}

// Content returns a copy of the loaded page content.
func (p *Pager[T]) Content() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.content))
	copy(out, p.content)
	return out
}

// Err returns the error from the last failed fetch, nil after a success.
func (p *Pager[T]) Err() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastErr
}
