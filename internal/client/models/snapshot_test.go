package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNetWorthSnapshot(t *testing.T) {
	asOf := time.Date(2024, 5, 15, 10, 0, 0, 0, time.UTC)
	s := NewNetWorthSnapshot(asOf, map[Category]decimal.Decimal{
		CategoryStocks:      dec("1500"),
		CategoryCrypto:      dec("15000"),
		CategoryLiabilities: dec("-5000"),
	})

	assert.True(t, s.TotalAssets().Equal(dec("16500")))
	assert.True(t, s.TotalLiabilities().Equal(dec("5000")))
	assert.True(t, s.NetWorth().Equal(dec("11500")))
	assert.True(t, s.Amount(CategoryRealEstate).IsZero())
	assert.Len(t, s.Breakdown(), 4)
	assert.Equal(t, asOf, s.AsOf())
}

func TestNetWorthSnapshot_BreakdownIsCopy(t *testing.T) {
	s := NewNetWorthSnapshot(time.Now(), map[Category]decimal.Decimal{CategoryStocks: dec("10")})
	b := s.Breakdown()
	b[CategoryStocks] = dec("999")
	delete(b, CategoryCrypto)

	assert.True(t, s.Amount(CategoryStocks).Equal(dec("10")))
	assert.Len(t, s.Breakdown(), 4)
}

func TestNetWorthSnapshot_UnmarshalBackendShape(t *testing.T) {
	raw := `{
		"total_net_worth": 125650,
		"total_assets": 150000,
		"total_liabilities": 24350,
		"breakdown": {"stocks": 80000, "crypto": 20000, "real_estate": 50000, "liabilities": 24350},
		"as_of": "2024-05-15T00:00:00Z"
	}`
	var s NetWorthSnapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &s))
	assert.True(t, s.NetWorth().Equal(dec("125650")))
	assert.True(t, s.Amount(CategoryRealEstate).Equal(dec("50000")))

	out, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"as_of":"2024-05-15T00:00:00Z"`)
}

func TestHistoryPoint_JSONDate(t *testing.T) {
	var p HistoryPoint
	require.NoError(t, json.Unmarshal([]byte(`{"date":"2024-01-01","net_worth":95000,"assets":100000,"liabilities":5000}`), &p))
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), p.Date)
	assert.True(t, p.NetWorth.Equal(dec("95000")))

	out, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"date":"2024-01-01"`)

	require.Error(t, json.Unmarshal([]byte(`{"date":"yesterday"}`), &p))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-03-01T23:30:00+02:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), d)
}

func TestParseTimestamp_Layouts(t *testing.T) {
	for _, in := range []string{"2024-01-02T03:04:05Z", "2024-01-02T03:04:05.123456", "2024-01-02 03:04:05", "2024-01-02"} {
		ts, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.Equal(t, 2024, ts.Year())
	}
	_, err := ParseTimestamp("02/01/2024")
	require.Error(t, err)
}

func TestNetWorthSnapshot_UnmarshalWithoutBreakdown(t *testing.T) {
	var s NetWorthSnapshot
	require.Error(t, json.Unmarshal([]byte(`{"total_assets": 1}`), &s))
}
