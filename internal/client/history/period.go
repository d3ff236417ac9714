package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
)

// PeriodKind names a history window.
type PeriodKind string

const (
	OneMonth    PeriodKind = "1m"
	ThreeMonths PeriodKind = "3m"
	SixMonths   PeriodKind = "6m"
	OneYear     PeriodKind = "1y"
	All         PeriodKind = "all"
	Custom      PeriodKind = "custom"
)

// DefaultPeriod is used when the caller does not pick one.
const DefaultPeriod = SixMonths

// Period is a requested window. Named periods end at the latest available
// record; a custom period carries explicit bounds, either of which may be
// zero to leave that side open.
type Period struct {
	Kind  PeriodKind
	Start time.Time
	End   time.Time
}

func Named(k PeriodKind) Period { return Period{Kind: k} }

func Between(start, end time.Time) Period {
	return Period{Kind: Custom, Start: start, End: end}
}

// ParsePeriod accepts "1m", "3m", "6m", "1y", "all", or a custom range
// written as "YYYY-MM-DD..YYYY-MM-DD" where either side may be empty.
// An empty string yields DefaultPeriod.
func ParsePeriod(s string) (Period, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch PeriodKind(s) {
	case "":
		return Named(DefaultPeriod), nil
	case OneMonth, ThreeMonths, SixMonths, OneYear, All:
		return Named(PeriodKind(s)), nil
	}

	from, to, ok := strings.Cut(s, "..")
	if !ok {
		return Period{}, fmt.Errorf("unknown period %q", s)
	}
	var p Period
	p.Kind = Custom
	var err error
	if from != "" {
		if p.Start, err = models.ParseDate(from); err != nil {
			return Period{}, err
		}
	}
	if to != "" {
		if p.End, err = models.ParseDate(to); err != nil {
			return Period{}, err
		}
	}
	if !p.Start.IsZero() && !p.End.IsZero() && p.End.Before(p.Start) {
		return Period{}, fmt.Errorf("period end %s is before start %s", to, from)
	}
	return p, nil
}

// Bounds resolves the period against the latest record date. Zero values
// mean the side is unbounded.
func (p Period) Bounds(latest time.Time) (start, end time.Time) {
	switch p.Kind {
	case Custom:
		return p.Start, p.End
	case OneMonth:
		return monthsBefore(latest, 1), latest
	case ThreeMonths:
		return monthsBefore(latest, 3), latest
	case SixMonths:
		return monthsBefore(latest, 6), latest
	case OneYear:
		return monthsBefore(latest, 12), latest
	}
	return time.Time{}, time.Time{}
}

// monthsBefore steps t back n calendar months, clamping the day to the
// last day of the target month (Mar 31 -> Feb 29).
func monthsBefore(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	first := time.Date(y, m-time.Month(n), 1, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	if last := first.AddDate(0, 1, -1).Day(); d > last {
		d = last
	}
	return first.AddDate(0, 0, d-1)
}

// Query returns the backend query parameters for the period.
func (p Period) Query() map[string]string {
	if p.Kind != Custom {
		return map[string]string{"period": string(p.Kind)}
	}
	q := map[string]string{}
	if !p.Start.IsZero() {
		q["start"] = p.Start.Format(models.DateLayout)
	}
	if !p.End.IsZero() {
		q["end"] = p.End.Format(models.DateLayout)
	}
	return q
}

func (p Period) String() string {
	if p.Kind != Custom {
		return string(p.Kind)
	}
	var from, to string
	if !p.Start.IsZero() {
		from = p.Start.Format(models.DateLayout)
	}
	if !p.End.IsZero() {
		to = p.End.Format(models.DateLayout)
	}
	return from + ".." + to
}
