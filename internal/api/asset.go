package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/shopspring/decimal"

	"assetdeck/internal/domain"
	"assetdeck/internal/infra"
)

// AssetClient talks to the asset service: symbol lists, live market data,
// watchlist, and price targets.
type AssetClient struct {
	*client
	throttle *infra.KeyedThrottle
}

// NewAssetClient creates an asset-service client. throttleWindow bounds the
// single-symbol live fetch to one call per symbol per window.
func NewAssetClient(baseURL string, timeout time.Duration, creds CredentialSource, throttleWindow time.Duration) *AssetClient {
	return &AssetClient{
		client:   newClient(baseURL, timeout, creds, HeaderAuthorization),
		throttle: infra.NewKeyedThrottle(throttleWindow),
	}
}

// DomesticSymbols lists domestic stock symbols.
func (c *AssetClient) DomesticSymbols(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	err := c.do(ctx, http.MethodGet, "/symbols/domestic", nil, nil, &out)
	return out, err
}

// OverseasSymbols lists overseas stock symbols.
func (c *AssetClient) OverseasSymbols(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	err := c.do(ctx, http.MethodGet, "/symbols/overseas", nil, nil, &out)
	return out, err
}

// CryptoSymbols lists crypto symbols.
func (c *AssetClient) CryptoSymbols(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	err := c.do(ctx, http.MethodGet, "/symbols/crypto", nil, nil, &out)
	return out, err
}

// AllSymbols lists every known symbol.
func (c *AssetClient) AllSymbols(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	err := c.do(ctx, http.MethodGet, "/symbols", nil, nil, &out)
	return out, err
}

// Search looks up symbols by keyword.
func (c *AssetClient) Search(ctx context.Context, keyword string) ([]domain.Quote, error) {
	var out []domain.Quote
	q := url.Values{"keyword": {keyword}}
	err := c.do(ctx, http.MethodGet, "/search", q, nil, &out)
	return out, err
}

// LiveCrypto fetches the full live-crypto list. This is the polling-fallback
// read: the poller swallows its errors to keep last-known-good display.
func (c *AssetClient) LiveCrypto(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	err := c.do(ctx, http.MethodGet, "/symbols/crypto/live", nil, nil, &out)
	return out, err
}

// LiveQuote fetches live market data for one symbol. Calls inside the
// throttle window are dropped with ErrRateLimited and never hit the network.
func (c *AssetClient) LiveQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	if !c.throttle.Allow(symbol) {
		return nil, ErrRateLimited
	}
	var out domain.Quote
	if err := c.do(ctx, http.MethodGet, "/market-data/live/"+symbol, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// MarketData fetches the detail view data for one symbol.
func (c *AssetClient) MarketData(ctx context.Context, symbol string) (*domain.Quote, error) {
	var out domain.Quote
	if err := c.do(ctx, http.MethodGet, "/"+symbol+"/market-data", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Watchlist lists the signed-in user's watched symbols.
func (c *AssetClient) Watchlist(ctx context.Context) ([]domain.Quote, error) {
	var out []domain.Quote
	err := c.do(ctx, http.MethodGet, "/watchlist", nil, nil, &out)
	return out, err
}

// AddWatch adds symbol to the watchlist.
func (c *AssetClient) AddWatch(ctx context.Context, symbol string) error {
	return c.do(ctx, http.MethodPost, "/"+symbol+"/watchlist", nil, nil, nil)
}

// RemoveWatch removes symbol from the watchlist.
func (c *AssetClient) RemoveWatch(ctx context.Context, symbol string) error {
	return c.do(ctx, http.MethodDelete, "/"+symbol+"/watchlist", nil, nil, nil)
}

// TargetPrices lists the user's price targets.
func (c *AssetClient) TargetPrices(ctx context.Context) ([]domain.TargetPrice, error) {
	var out []domain.TargetPrice
	err := c.do(ctx, http.MethodGet, "/target-prices", nil, nil, &out)
	return out, err
}

// SetTargetPrice registers a price target for symbol. The backend expects
// the bare value as the request body, not a wrapper object.
func (c *AssetClient) SetTargetPrice(ctx context.Context, symbol string, price decimal.Decimal) error {
	return c.do(ctx, http.MethodPost, "/"+symbol+"/target-price", nil, json.RawMessage(price.String()), nil)
}

// RemoveTargetPrice deletes the price target for symbol.
func (c *AssetClient) RemoveTargetPrice(ctx context.Context, symbol string) error {
	return c.do(ctx, http.MethodDelete, "/"+symbol+"/target-price", nil, nil, nil)
}
