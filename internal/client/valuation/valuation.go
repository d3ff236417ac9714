// Package valuation turns a set of holdings into a net-worth snapshot.
//
// Everything here is a pure function of its inputs and safe for concurrent use.
package valuation

import (
	"sort"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Aggregate validates every holding and sums them into a snapshot as of
// asOf. A single invalid holding fails the whole call with a
// *models.ValidationError; nothing is dropped silently.
func Aggregate(asOf time.Time, holdings []models.Holding) (models.NetWorthSnapshot, error) {
	amounts := make(map[models.Category]decimal.Decimal, 4)

	for _, h := range holdings {
		if err := h.Validate(); err != nil {
			return models.NetWorthSnapshot{}, err
		}
		c, _ := h.Kind.Category()
		v := h.Value()
		if h.Kind.IsLiability() {
			v = v.Abs()
		}
		amounts[c] = amounts[c].Add(v)
	}

	return models.NewNetWorthSnapshot(asOf, amounts), nil
}

// Contribution is the magnitude a holding is ranked by: its value, or the
// absolute value for a liability.
func Contribution(h models.Holding) decimal.Decimal {
	if h.Kind.IsLiability() {
		return h.Value().Abs()
	}
	return h.Value()
}

// TopHoldings returns the n holdings with the largest contribution, ties
// broken by identifier ascending. n <= 0 or n beyond the input length
// returns every holding in ranked order. The input is not modified.
func TopHoldings(holdings []models.Holding, n int) ([]models.Holding, error) {
	for _, h := range holdings {
		if err := h.Validate(); err != nil {
			return nil, err
		}
	}

	out := make([]models.Holding, len(holdings))
	copy(out, holdings)

	sort.SliceStable(out, func(i, j int) bool {
		ci, cj := Contribution(out[i]), Contribution(out[j])
		if !ci.Equal(cj) {
			return ci.GreaterThan(cj)
		}
		return out[i].Identifier < out[j].Identifier
	})

	if n > 0 && n < len(out) {
		out = out[:n]
	}
	return out, nil
}

// Allocation returns each asset category's percentage share of
// TotalAssets. All shares are zero when there are no assets.
func Allocation(s models.NetWorthSnapshot) map[models.Category]decimal.Decimal {
	out := make(map[models.Category]decimal.Decimal, len(models.AssetCategories))
	total := s.TotalAssets()
	for _, c := range models.AssetCategories {
		if total.IsZero() {
			out[c] = decimal.Zero
			continue
		}
		out[c] = s.Amount(c).Div(total).Mul(hundred)
	}
	return out
}
