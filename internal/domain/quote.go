package domain

import "github.com/shopspring/decimal"

// Quote represents price data for a single listed symbol.
type Quote struct {
	Symbol      string          `json:"symbol"` // Exchange-qualified (e.g., "005930", "KRW-BTC")
	KoreanName  string          `json:"korean_name,omitempty"`
	EnglishName string          `json:"english_name,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ChangeRate  decimal.Decimal `json:"changeRate"` // Fraction: 0.025 = +2.5%
}

// DisplayName prefers the Korean listing name and falls back to the English one.
func (q Quote) DisplayName() string {
	if q.KoreanName != "" {
		return q.KoreanName
	}
	return q.EnglishName
}

// ChangeDirection returns "positive", "negative", or "neutral".
func (q Quote) ChangeDirection() string {
	switch q.ChangeRate.Sign() {
	case 1:
		return "positive"
	case -1:
		return "negative"
	default:
		return "neutral"
	}
}

// MergeQuotes folds a live-quote batch into an existing list in place.
// Entries are matched by symbol: a match replaces only Price and ChangeRate,
// everything else is left untouched. Updates for symbols not already in the
// list are discarded, and the list order never changes.
func MergeQuotes(list []Quote, updates []Quote) {
	if len(updates) == 0 {
		return
	}
	bySymbol := make(map[string]Quote, len(updates))
	for _, u := range updates {
		bySymbol[u.Symbol] = u
	}
	for i := range list {
		u, ok := bySymbol[list[i].Symbol]
		if !ok {
			continue
		}
		list[i].Price = u.Price
		list[i].ChangeRate = u.ChangeRate
	}
}
