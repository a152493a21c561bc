package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"assetdeck/internal/domain"
)

// titleCleaner strips the search-highlight bold tags and decodes the four
// HTML entities the news backend emits. Deliberately not a full HTML
// unescape: entities outside this set pass through untouched, matching the
// dashboard's output byte for byte.
var titleCleaner = strings.NewReplacer(
	"<b>", "",
	"</b>", "",
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
)

// CleanTitle sanitizes a news title for display.
func CleanTitle(title string) string {
	return titleCleaner.Replace(title)
}

// NewsClient talks to the news search service.
type NewsClient struct {
	*client
}

// NewNewsClient creates a news-service client.
func NewNewsClient(baseURL string, timeout time.Duration, creds CredentialSource) *NewsClient {
	return &NewsClient{client: newClient(baseURL, timeout, creds, HeaderAuthorization)}
}

func (c *NewsClient) search(ctx context.Context, path, name string) (*domain.NewsResult, error) {
	var out domain.NewsResult
	q := url.Values{"name": {name}}
	if err := c.do(ctx, http.MethodGet, path, q, nil, &out); err != nil {
		return nil, err
	}
	for i := range out.Items {
		out.Items[i].Title = CleanTitle(out.Items[i].Title)
	}
	return &out, nil
}

// StockNews searches stock news by company name.
func (c *NewsClient) StockNews(ctx context.Context, name string) (*domain.NewsResult, error) {
	return c.search(ctx, "/news/stock", name)
}

// CryptoNews searches crypto news by coin name.
func (c *NewsClient) CryptoNews(ctx context.Context, name string) (*domain.NewsResult, error) {
	return c.search(ctx, "/news/crypto", name)
}
