package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetdeck/internal/domain"
)

type fakeAssetService struct {
	domestic []domain.Quote
	overseas []domain.Quote
	crypto   []domain.Quote
	search   []domain.Quote
	live     []domain.Quote

	err       error
	liveCalls atomic.Int32
}

func (f *fakeAssetService) DomesticSymbols(context.Context) ([]domain.Quote, error) {
	return f.domestic, f.err
}

func (f *fakeAssetService) OverseasSymbols(context.Context) ([]domain.Quote, error) {
	return f.overseas, f.err
}

func (f *fakeAssetService) CryptoSymbols(context.Context) ([]domain.Quote, error) {
	return f.crypto, f.err
}

func (f *fakeAssetService) Search(context.Context, string) ([]domain.Quote, error) {
	return f.search, f.err
}

func (f *fakeAssetService) LiveCrypto(context.Context) ([]domain.Quote, error) {
	f.liveCalls.Add(1)
	return f.live, nil
}

func quoteRow(symbol string, price int64) domain.Quote {
	return domain.Quote{Symbol: symbol, Price: decimal.NewFromInt(price)}
}

func TestAssetListSetCategory(t *testing.T) {
	svc := &fakeAssetService{
		domestic: []domain.Quote{quoteRow("005930", 70000)},
		overseas: []domain.Quote{quoteRow("AAPL", 190)},
	}
	ctrl := NewAssetListController(svc, time.Hour)
	defer ctrl.Close()

	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryDomestic))
	assert.Equal(t, CategoryDomestic, ctrl.Category())
	assert.Equal(t, "005930", ctrl.Quotes()[0].Symbol)

	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryOverseas))
	assert.Equal(t, "AAPL", ctrl.Quotes()[0].Symbol)
}

func TestAssetListFetchErrorKeepsRows(t *testing.T) {
	svc := &fakeAssetService{
		domestic: []domain.Quote{quoteRow("005930", 70000)},
	}
	ctrl := NewAssetListController(svc, time.Hour)
	defer ctrl.Close()
	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryDomestic))

	svc.err = errors.New("gateway down")
	err := ctrl.SetCategory(context.Background(), CategoryOverseas)
	require.Error(t, err)
	assert.Equal(t, err, ctrl.Err())
	assert.Equal(t, "005930", ctrl.Quotes()[0].Symbol, "previous rows stay on a failed switch")

	svc.err = nil
	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryDomestic))
	assert.NoError(t, ctrl.Err())
}

func TestAssetListCryptoPolling(t *testing.T) {
	svc := &fakeAssetService{
		crypto: []domain.Quote{quoteRow("KRW-BTC", 100), quoteRow("KRW-ETH", 10)},
		live:   []domain.Quote{quoteRow("KRW-BTC", 120), quoteRow("KRW-XRP", 1)},
	}
	ctrl := NewAssetListController(svc, 10*time.Millisecond)
	defer ctrl.Close()

	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryCrypto))

	deadline := time.After(time.Second)
	for {
		quotes := ctrl.Quotes()
		if len(quotes) == 2 && quotes[0].Price.Equal(decimal.NewFromInt(120)) {
			// Merged in place: off-screen symbols dropped, order kept.
			assert.Equal(t, "KRW-ETH", quotes[1].Symbol)
			break
		}
		select {
		case <-deadline:
			t.Fatalf("live batch never merged, rows: %v", quotes)
		case <-time.After(5 * time.Millisecond):
		}
	}

	// Leaving crypto stops the refresh loop.
	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryDomestic))
	calls := svc.liveCalls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, svc.liveCalls.Load())
}

func TestAssetListSearch(t *testing.T) {
	svc := &fakeAssetService{
		crypto: []domain.Quote{quoteRow("KRW-BTC", 100)},
		search: []domain.Quote{quoteRow("005930", 70000)},
	}
	ctrl := NewAssetListController(svc, 10*time.Millisecond)
	defer ctrl.Close()
	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryCrypto))

	require.NoError(t, ctrl.Search(context.Background(), "samsung"))
	assert.Equal(t, "005930", ctrl.Quotes()[0].Symbol)

	calls := svc.liveCalls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, svc.liveCalls.Load(), "search results are static")
}

func TestAssetListApplyLive(t *testing.T) {
	svc := &fakeAssetService{
		domestic: []domain.Quote{quoteRow("005930", 70000)},
	}
	ctrl := NewAssetListController(svc, time.Hour)
	defer ctrl.Close()
	require.NoError(t, ctrl.SetCategory(context.Background(), CategoryDomestic))

	ctrl.ApplyLive([]domain.Quote{quoteRow("005930", 71000)})
	assert.True(t, ctrl.Quotes()[0].Price.Equal(decimal.NewFromInt(71000)))
}
