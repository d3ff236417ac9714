// Package history assembles dated net-worth records into an ordered series
// and derives growth metrics from it.
package history

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/shopspring/decimal"
)

// ErrInsufficientData is matched by every *InsufficientDataError.
var ErrInsufficientData = errors.New("insufficient data")

// InsufficientDataError is returned when a metric needs more points than
// the series holds.
type InsufficientDataError struct {
	Have int
	Need int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient data: have %d points, need %d", e.Have, e.Need)
}

func (e *InsufficientDataError) Is(target error) bool { return target == ErrInsufficientData }

// Series is ascending by date with no duplicate dates.
type Series []models.HistoryPoint

func (s Series) First() models.HistoryPoint { return s[0] }
func (s Series) Last() models.HistoryPoint  { return s[len(s)-1] }

// Build dedups records by calendar day, the later record in input order
// winning, sorts them ascending and clips to the period.
func Build(records []models.HistoryPoint, p Period) (Series, error) {
	if p.Kind == Custom && !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
		return nil, fmt.Errorf("period end %s is before start %s", p.End.Format(models.DateLayout), p.Start.Format(models.DateLayout))
	}

	byDay := make(map[time.Time]models.HistoryPoint, len(records))
	for _, r := range records {
		r.Date = models.Day(r.Date)
		byDay[r.Date] = r
	}

	out := make(Series, 0, len(byDay))
	for _, r := range byDay {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })

	if len(out) == 0 {
		return out, nil
	}
	start, end := p.Bounds(out.Last().Date)
	return Filter(out, start, end), nil
}

// Filter keeps points with start <= date <= end. A zero bound is open.
// Filtering an already filtered series to the same bounds is a no-op.
func Filter(s Series, start, end time.Time) Series {
	if !start.IsZero() {
		start = models.Day(start)
	}
	if !end.IsZero() {
		end = models.Day(end)
	}
	out := make(Series, 0, len(s))
	for _, p := range s {
		if !start.IsZero() && p.Date.Before(start) {
			continue
		}
		if !end.IsZero() && p.Date.After(end) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Growth describes the change between the first and last point.
type Growth struct {
	Amount         decimal.Decimal
	Percentage     decimal.Decimal
	AverageMonthly decimal.Decimal
	Months         int
}

var hundred = decimal.NewFromInt(100)

// ComputeGrowth returns the zero Growth and an *InsufficientDataError for
// fewer than two points. Percentage is zero when the first net worth is
// zero; the month divisor is at least one.
func ComputeGrowth(s Series) (Growth, error) {
	if len(s) < 2 {
		return Growth{}, &InsufficientDataError{Have: len(s), Need: 2}
	}
	first, last := s.First(), s.Last()

	g := Growth{
		Amount: last.NetWorth.Sub(first.NetWorth),
		Months: max(1, MonthsBetween(first.Date, last.Date)),
	}
	if !first.NetWorth.IsZero() {
		g.Percentage = g.Amount.Div(first.NetWorth).Mul(hundred)
	}
	g.AverageMonthly = g.Amount.Div(decimal.NewFromInt(int64(g.Months)))
	return g, nil
}

// MonthsBetween counts whole calendar months from a to b.
func MonthsBetween(a, b time.Time) int {
	if b.Before(a) {
		a, b = b, a
	}
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

// Summary is the latest, highest and lowest point of a series.
type Summary struct {
	Latest models.HistoryPoint
	High   models.HistoryPoint
	Low    models.HistoryPoint
}

// Summarize fails with an *InsufficientDataError on an empty series.
func Summarize(s Series) (Summary, error) {
	if len(s) == 0 {
		return Summary{}, &InsufficientDataError{Have: 0, Need: 1}
	}
	sum := Summary{Latest: s.Last(), High: s[0], Low: s[0]}
	for _, p := range s[1:] {
		if p.NetWorth.GreaterThan(sum.High.NetWorth) {
			sum.High = p
		}
		if p.NetWorth.LessThan(sum.Low.NetWorth) {
			sum.Low = p
		}
	}
	return sum, nil
}
