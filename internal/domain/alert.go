package domain

import "github.com/shopspring/decimal"

// TargetPrice is a price-target subscription for one symbol. Triggering is
// owned by the alert backend; the client only sets, lists, and removes.
type TargetPrice struct {
	Symbol string          `json:"symbol"`
	Price  decimal.Decimal `json:"targetPrice"`
}

// Notification is a delivered price-alert record from the alert history.
type Notification struct {
	ID           int64           `json:"id"`
	AssetName    string          `json:"assetName"`
	TargetPrice  decimal.Decimal `json:"targetPrice"`
	CurrentPrice decimal.Decimal `json:"currentPrice"`
	Condition    string          `json:"condition"` // "above" or "below"
	CreatedAt    string          `json:"createdAt"`
	IsRead       bool            `json:"isRead"`
}
