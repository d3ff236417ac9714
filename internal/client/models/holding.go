package models

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// HoldingKind is the asset class of a holding as reported by the backend.
type HoldingKind string

const (
	KindStock      HoldingKind = "stock"
	KindCrypto     HoldingKind = "crypto"
	KindRealEstate HoldingKind = "real_estate"
	KindLiability  HoldingKind = "liability"
)

// Kinds lists every recognised holding kind in display order.
var Kinds = []HoldingKind{KindStock, KindCrypto, KindRealEstate, KindLiability}

func (k HoldingKind) Valid() bool {
	switch k {
	case KindStock, KindCrypto, KindRealEstate, KindLiability:
		return true
	}
	return false
}

func (k HoldingKind) IsLiability() bool { return k == KindLiability }

// Category returns the breakdown bucket the kind aggregates into.
func (k HoldingKind) Category() (Category, bool) {
	switch k {
	case KindStock:
		return CategoryStocks, true
	case KindCrypto:
		return CategoryCrypto, true
	case KindRealEstate:
		return CategoryRealEstate, true
	case KindLiability:
		return CategoryLiabilities, true
	}
	return "", false
}

// Holding is a single owned asset or liability record.
//
// CurrentValue is authoritative when set; otherwise the value is derived as
// Quantity × UnitPrice. Metadata is an open bag the client never interprets.
type Holding struct {
	ID           string              `json:"id"`
	PortfolioID  string              `json:"portfolio_id"`
	Kind         HoldingKind         `json:"type"`
	Identifier   string              `json:"identifier"`
	Quantity     decimal.Decimal     `json:"quantity"`
	UnitPrice    decimal.Decimal     `json:"unit_price"`
	CurrentValue decimal.NullDecimal `json:"current_value"`
	PurchaseDate time.Time           `json:"purchase_date"`
	Metadata     map[string]any      `json:"metadata,omitempty"`
}

// Value returns the valuation used for aggregation.
func (h Holding) Value() decimal.Decimal {
	if h.CurrentValue.Valid {
		return h.CurrentValue.Decimal
	}
	return h.Quantity.Mul(h.UnitPrice)
}

// Validate checks the constraints the aggregator relies on: a known kind,
// non-negative quantity and unit price, and no negative current value on
// an asset. Liabilities may carry either sign.
func (h Holding) Validate() error {
	if !h.Kind.Valid() {
		return &ValidationError{HoldingID: h.ID, Field: "type", Reason: fmt.Sprintf("unrecognized kind %q", h.Kind)}
	}
	if h.Quantity.IsNegative() {
		return &ValidationError{HoldingID: h.ID, Field: "quantity", Reason: "must not be negative"}
	}
	if h.UnitPrice.IsNegative() {
		return &ValidationError{HoldingID: h.ID, Field: "unit_price", Reason: "must not be negative"}
	}
	if h.CurrentValue.Valid && h.CurrentValue.Decimal.IsNegative() && !h.Kind.IsLiability() {
		return &ValidationError{HoldingID: h.ID, Field: "current_value", Reason: "must not be negative for an asset"}
	}
	return nil
}
