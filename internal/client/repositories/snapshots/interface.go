// Package snapshots is the local journal of computed net-worth snapshots,
// one row per calendar day. Recording a second snapshot on the same day
// replaces the first. The journal feeds history when the backend cannot.
package snapshots

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/models"
)

// Source tags where a journal row came from.
type Source string

const (
	SourceLocal  Source = "local"
	SourceRemote Source = "remote"
)

type Repository interface {
	Record(ctx context.Context, s models.NetWorthSnapshot, src Source) error
	// List returns points with from <= day <= to, ascending. Zero bounds
	// are open.
	List(ctx context.Context, from, to time.Time) ([]models.HistoryPoint, error)
	Latest(ctx context.Context) (models.NetWorthSnapshot, bool, error)
	Clear(ctx context.Context) error
}
