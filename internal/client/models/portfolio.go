package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Portfolio groups holdings. Deleting a portfolio deletes its holdings on
// the backend; the client never keeps orphaned holdings.
type Portfolio struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// PortfolioInput is the body for creating or updating a portfolio.
type PortfolioInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (p PortfolioInput) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	return nil
}

// AssetInput is the body for creating or updating a holding.
type AssetInput struct {
	Kind         HoldingKind
	Identifier   string
	Quantity     decimal.Decimal
	UnitPrice    decimal.Decimal
	PurchaseDate time.Time
	Metadata     map[string]any
}

func (a AssetInput) Validate() error {
	if strings.TrimSpace(a.Identifier) == "" {
		return &ValidationError{Field: "identifier", Reason: "must not be empty"}
	}
	return Holding{Kind: a.Kind, Quantity: a.Quantity, UnitPrice: a.UnitPrice}.Validate()
}

// Valuation is a per-portfolio value observation returned by
// /portfolios/{id}/valuations.
type Valuation struct {
	Date  time.Time       `json:"date"`
	Value decimal.Decimal `json:"value"`
}
