package view

import (
	"context"
	"sync"
	"time"

	"assetdeck/internal/domain"
	"assetdeck/internal/poller"
)

// Category selects which asset universe the list shows.
type Category string

const (
	CategoryDomestic Category = "domestic"
	CategoryOverseas Category = "overseas"
	CategoryCrypto   Category = "crypto"
)

// AssetService is the slice of the asset API the list controller needs.
type AssetService interface {
	DomesticSymbols(ctx context.Context) ([]domain.Quote, error)
	OverseasSymbols(ctx context.Context) ([]domain.Quote, error)
	CryptoSymbols(ctx context.Context) ([]domain.Quote, error)
	Search(ctx context.Context, keyword string) ([]domain.Quote, error)
	LiveCrypto(ctx context.Context) ([]domain.Quote, error)
}

// AssetListController owns the asset-list screen: the selected category,
// the displayed quote rows, and the background refresh that keeps crypto
// prices live. Live batches are merged into the existing rows in place;
// they never reorder or grow the list.
type AssetListController struct {
	assets AssetService
	poll   *poller.LivePoller

	mu       sync.Mutex
	category Category
	quotes   []domain.Quote
	lastErr  error
}

// NewAssetListController creates the controller. pollInterval is the live
// crypto refresh period.
func NewAssetListController(assets AssetService, pollInterval time.Duration) *AssetListController {
	c := &AssetListController{
		assets:   assets,
		category: CategoryDomestic,
	}
	c.poll = poller.NewLivePoller(pollInterval, assets.LiveCrypto, c.applyLive)
	return c
}

// SetCategory switches the displayed universe and fetches its symbol list.
// The live poller runs only while the crypto category is shown. On a fetch
// error the previous rows stay on screen.
func (c *AssetListController) SetCategory(ctx context.Context, category Category) error {
	c.poll.Stop()

	var list []domain.Quote
	var err error
	switch category {
	case CategoryOverseas:
		list, err = c.assets.OverseasSymbols(ctx)
	case CategoryCrypto:
		list, err = c.assets.CryptoSymbols(ctx)
	default:
		list, err = c.assets.DomesticSymbols(ctx)
	}

	c.mu.Lock()
	c.category = category
	if err != nil {
		c.lastErr = err
	} else {
		c.quotes = list
		c.lastErr = nil
	}
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if category == CategoryCrypto {
		c.poll.Start(ctx)
	}
	return nil
}

// Search replaces the displayed rows with keyword search results. Search
// results are a static list, so the live poller is stopped.
func (c *AssetListController) Search(ctx context.Context, keyword string) error {
	c.poll.Stop()

	list, err := c.assets.Search(ctx, keyword)
	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.lastErr = err
		return err
	}
	c.quotes = list
	c.lastErr = nil
	return nil
}

// ApplyLive merges a pushed quote update into the displayed rows. Updates
// for symbols not on screen are dropped.
func (c *AssetListController) ApplyLive(updates []domain.Quote) {
	c.applyLive(updates)
}

func (c *AssetListController) applyLive(updates []domain.Quote) {
	c.mu.Lock()
	domain.MergeQuotes(c.quotes, updates)
	c.mu.Unlock()
}

// Category returns the selected category.
func (c *AssetListController) Category() Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.category
}

// Quotes returns a copy of the displayed rows.
func (c *AssetListController) Quotes() []domain.Quote {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]domain.Quote, len(c.quotes))
	copy(out, c.quotes)
	return out
}

// Err returns the error from the last failed fetch, nil after a success.
func (c *AssetListController) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Close stops the background refresh.
func (c *AssetListController) Close() {
	c.poll.Stop()
}
