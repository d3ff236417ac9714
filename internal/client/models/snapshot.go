package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is a breakdown bucket of a net-worth snapshot.
type Category string

const (
	CategoryStocks      Category = "stocks"
	CategoryCrypto      Category = "crypto"
	CategoryRealEstate  Category = "real_estate"
	CategoryLiabilities Category = "liabilities"
)

// AssetCategories are the categories summed into TotalAssets.
var AssetCategories = []Category{CategoryStocks, CategoryCrypto, CategoryRealEstate}

// NetWorthSnapshot is an immutable point-in-time aggregation of holdings.
// Values are only reachable through accessors; Breakdown returns a copy.
type NetWorthSnapshot struct {
	asOf             time.Time
	totalAssets      decimal.Decimal
	totalLiabilities decimal.Decimal
	breakdown        map[Category]decimal.Decimal
}

// NewNetWorthSnapshot builds a snapshot from per-category amounts. Every
// category is present in the result; missing ones are zero. Liabilities
// are stored by magnitude.
func NewNetWorthSnapshot(asOf time.Time, amounts map[Category]decimal.Decimal) NetWorthSnapshot {
	s := NetWorthSnapshot{
		asOf:      asOf,
		breakdown: make(map[Category]decimal.Decimal, len(AssetCategories)+1),
	}
	for _, c := range AssetCategories {
		v := amounts[c]
		s.breakdown[c] = v
		s.totalAssets = s.totalAssets.Add(v)
	}
	s.totalLiabilities = amounts[CategoryLiabilities].Abs()
	s.breakdown[CategoryLiabilities] = s.totalLiabilities
	return s
}

func (s NetWorthSnapshot) AsOf() time.Time                   { return s.asOf }
func (s NetWorthSnapshot) TotalAssets() decimal.Decimal      { return s.totalAssets }
func (s NetWorthSnapshot) TotalLiabilities() decimal.Decimal { return s.totalLiabilities }

// NetWorth is TotalAssets minus TotalLiabilities and may be negative.
func (s NetWorthSnapshot) NetWorth() decimal.Decimal {
	return s.totalAssets.Sub(s.totalLiabilities)
}

// Amount returns the value of a single category, zero if unknown.
func (s NetWorthSnapshot) Amount(c Category) decimal.Decimal {
	return s.breakdown[c]
}

func (s NetWorthSnapshot) Breakdown() map[Category]decimal.Decimal {
	out := make(map[Category]decimal.Decimal, len(s.breakdown))
	for k, v := range s.breakdown {
		out[k] = v
	}
	return out
}

// HistoryPoint converts the snapshot into a series record for its day.
func (s NetWorthSnapshot) HistoryPoint() HistoryPoint {
	return HistoryPoint{
		Date:        Day(s.asOf),
		NetWorth:    s.NetWorth(),
		Assets:      s.totalAssets,
		Liabilities: s.totalLiabilities,
	}
}

type snapshotJSON struct {
	TotalNetWorth    decimal.Decimal              `json:"total_net_worth"`
	TotalAssets      decimal.Decimal              `json:"total_assets"`
	TotalLiabilities decimal.Decimal              `json:"total_liabilities"`
	Breakdown        map[Category]decimal.Decimal `json:"breakdown"`
	AsOf             string                       `json:"as_of,omitempty"`
}

func (s NetWorthSnapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(snapshotJSON{
		TotalNetWorth:    s.NetWorth(),
		TotalAssets:      s.totalAssets,
		TotalLiabilities: s.totalLiabilities,
		Breakdown:        s.Breakdown(),
		AsOf:             s.asOf.Format(time.RFC3339Nano),
	})
}

// UnmarshalJSON rebuilds the snapshot from its breakdown so that the
// totals always agree with the categories. A missing as_of leaves AsOf
// zero.
func (s *NetWorthSnapshot) UnmarshalJSON(data []byte) error {
	var v snapshotJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	if v.Breakdown == nil {
		return errors.New("net worth snapshot without breakdown")
	}
	var asOf time.Time
	if v.AsOf != "" {
		var err error
		if asOf, err = ParseTimestamp(v.AsOf); err != nil {
			return err
		}
	}
	*s = NewNetWorthSnapshot(asOf, v.Breakdown)
	return nil
}

// NetWorthReport is the backend's current net worth with its largest
// holdings.
type NetWorthReport struct {
	Snapshot  NetWorthSnapshot
	TopAssets []Holding
}

// HistoryPoint is one dated net-worth observation.
type HistoryPoint struct {
	Date        time.Time
	NetWorth    decimal.Decimal
	Assets      decimal.Decimal
	Liabilities decimal.Decimal
}

type historyPointJSON struct {
	Date        string          `json:"date"`
	NetWorth    decimal.Decimal `json:"net_worth"`
	Assets      decimal.Decimal `json:"assets"`
	Liabilities decimal.Decimal `json:"liabilities"`
}

func (p HistoryPoint) MarshalJSON() ([]byte, error) {
	return json.Marshal(historyPointJSON{
		Date:        p.Date.Format(DateLayout),
		NetWorth:    p.NetWorth,
		Assets:      p.Assets,
		Liabilities: p.Liabilities,
	})
}

func (p *HistoryPoint) UnmarshalJSON(data []byte) error {
	var v historyPointJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	d, err := ParseDate(v.Date)
	if err != nil {
		return err
	}
	*p = HistoryPoint{Date: d, NetWorth: v.NetWorth, Assets: v.Assets, Liabilities: v.Liabilities}
	return nil
}

// DateLayout is the calendar date format used on the wire.
const DateLayout = "2006-01-02"

// Day truncates t to midnight UTC of its calendar day.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
	DateLayout,
}

// ParseTimestamp accepts RFC 3339, a zone-less ISO timestamp (read as UTC)
// or a bare date.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// ParseDate is ParseTimestamp truncated to the calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := ParseTimestamp(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q", s)
	}
	return Day(t), nil
}
