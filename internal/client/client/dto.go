package client

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/shopspring/decimal"
)

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorBody struct {
	Detail json.RawMessage `json:"detail"`
}

// detailText flattens the error detail. Validation failures arrive as a
// list of objects carrying "msg".
func (b errorBody) detailText() string {
	if len(b.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(b.Detail, &s); err == nil {
		return s
	}
	var items []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(b.Detail, &items); err == nil && len(items) > 0 && items[0].Msg != "" {
		return items[0].Msg
	}
	return string(b.Detail)
}

type portfolioDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

func (d portfolioDTO) model() (models.Portfolio, error) {
	p := models.Portfolio{ID: d.ID, Name: d.Name}
	if d.Description != nil {
		p.Description = *d.Description
	}
	var err error
	if p.CreatedAt, err = optionalTimestamp(d.CreatedAt); err != nil {
		return models.Portfolio{}, err
	}
	if p.UpdatedAt, err = optionalTimestamp(d.UpdatedAt); err != nil {
		return models.Portfolio{}, err
	}
	return p, nil
}

// assetDTO accepts both purchase_price (asset endpoints) and unit_price
// (top assets of /networth/current).
type assetDTO struct {
	ID            string              `json:"id"`
	PortfolioID   string              `json:"portfolio_id"`
	Type          models.HoldingKind  `json:"type"`
	Identifier    string              `json:"identifier"`
	Quantity      decimal.NullDecimal `json:"quantity"`
	PurchasePrice decimal.NullDecimal `json:"purchase_price"`
	UnitPrice     decimal.NullDecimal `json:"unit_price"`
	CurrentValue  decimal.NullDecimal `json:"current_value"`
	PurchaseDate  string              `json:"purchase_date"`
	Metadata      map[string]any      `json:"metadata"`
}

func (d assetDTO) model() (models.Holding, error) {
	h := models.Holding{
		ID:           d.ID,
		PortfolioID:  d.PortfolioID,
		Kind:         d.Type,
		Identifier:   d.Identifier,
		Quantity:     d.Quantity.Decimal,
		CurrentValue: d.CurrentValue,
		Metadata:     d.Metadata,
	}
	switch {
	case d.UnitPrice.Valid:
		h.UnitPrice = d.UnitPrice.Decimal
	case d.PurchasePrice.Valid:
		h.UnitPrice = d.PurchasePrice.Decimal
	}
	var err error
	if h.PurchaseDate, err = optionalTimestamp(d.PurchaseDate); err != nil {
		return models.Holding{}, err
	}
	return h, nil
}

type assetRequest struct {
	Type          models.HoldingKind `json:"type"`
	Identifier    string             `json:"identifier"`
	Quantity      json.Number        `json:"quantity"`
	PurchasePrice json.Number        `json:"purchase_price"`
	PurchaseDate  string             `json:"purchase_date,omitempty"`
	Metadata      map[string]any     `json:"metadata,omitempty"`
}

func newAssetRequest(in models.AssetInput) assetRequest {
	r := assetRequest{
		Type:          in.Kind,
		Identifier:    in.Identifier,
		Quantity:      json.Number(in.Quantity.String()),
		PurchasePrice: json.Number(in.UnitPrice.String()),
		Metadata:      in.Metadata,
	}
	if !in.PurchaseDate.IsZero() {
		r.PurchaseDate = in.PurchaseDate.Format(models.DateLayout)
	}
	return r
}

type valuationDTO struct {
	Date  string          `json:"date"`
	Value decimal.Decimal `json:"value"`
}

type netWorthExtras struct {
	TopAssets []assetDTO `json:"top_assets"`
}

// decodeNetWorth reads /networth/current. A missing as_of is stamped with
// now.
func decodeNetWorth(body []byte, now time.Time) (models.NetWorthReport, error) {
	var report models.NetWorthReport
	if err := json.Unmarshal(body, &report.Snapshot); err != nil {
		return models.NetWorthReport{}, err
	}
	if report.Snapshot.AsOf().IsZero() {
		report.Snapshot = models.NewNetWorthSnapshot(now, report.Snapshot.Breakdown())
	}

	var extras netWorthExtras
	if err := json.Unmarshal(body, &extras); err != nil {
		return models.NetWorthReport{}, err
	}
	for _, a := range extras.TopAssets {
		h, err := a.model()
		if err != nil {
			return models.NetWorthReport{}, err
		}
		report.TopAssets = append(report.TopAssets, h)
	}
	return report, nil
}

func optionalTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := models.ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("decode: %w", err)
	}
	return t, nil
}
