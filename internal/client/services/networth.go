package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/export"
	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/wealthwise/internal/client/repositories/snapshots"
	"github.com/dmitrijs2005/wealthwise/internal/client/valuation"
	"github.com/dmitrijs2005/wealthwise/internal/dbx"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
)

// DefaultTopN is how many holdings a computed report carries.
const DefaultTopN = 5

// NetWorthService turns holdings into snapshots and history.
//
// Compute aggregates locally from every portfolio's assets and journals the
// result; Remote asks the backend for its own figure. History uses the
// backend's series, LocalHistory the journal. Latest is the most recent
// journaled snapshot, for when the backend cannot be reached.
type NetWorthService interface {
	Compute(ctx context.Context) (models.NetWorthReport, error)
	Remote(ctx context.Context) (models.NetWorthReport, error)
	History(ctx context.Context, p history.Period) (history.Series, error)
	LocalHistory(ctx context.Context, p history.Period) (history.Series, error)
	Latest(ctx context.Context) (models.NetWorthSnapshot, bool, error)
	Top(ctx context.Context, n int) ([]models.Holding, error)
	Export(ctx context.Context, f export.Format, sink export.Sink) (string, error)
	LastSync(ctx context.Context) (time.Time, bool)
}

type netWorthService struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger
	now    func() time.Time
}

func NewNetWorthService(c client.Client, db *sql.DB, log logging.Logger) NetWorthService {
	return &netWorthService{client: c, db: db, log: log, now: time.Now}
}

// holdings fetches the assets of every portfolio. Any failure aborts the
// whole fetch; a partial set would understate net worth.
func (s *netWorthService) holdings(ctx context.Context) ([]models.Holding, error) {
	portfolios, err := s.client.ListPortfolios(ctx)
	if err != nil {
		return nil, err
	}
	var all []models.Holding
	for _, p := range portfolios {
		assets, err := s.client.ListAssets(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("portfolio %s: %w", p.ID, err)
		}
		all = append(all, assets...)
	}
	return all, nil
}

func (s *netWorthService) Compute(ctx context.Context) (models.NetWorthReport, error) {
	holdings, err := s.holdings(ctx)
	if err != nil {
		return models.NetWorthReport{}, err
	}
	snap, err := valuation.Aggregate(s.now(), holdings)
	if err != nil {
		return models.NetWorthReport{}, err
	}
	top, err := valuation.TopHoldings(holdings, DefaultTopN)
	if err != nil {
		return models.NetWorthReport{}, err
	}
	if err := s.record(ctx, snap, snapshots.SourceLocal); err != nil {
		return models.NetWorthReport{}, err
	}
	return models.NetWorthReport{Snapshot: snap, TopAssets: top}, nil
}

func (s *netWorthService) Remote(ctx context.Context) (models.NetWorthReport, error) {
	rep, err := s.client.CurrentNetWorth(ctx)
	if err != nil {
		return models.NetWorthReport{}, err
	}
	if err := s.record(ctx, rep.Snapshot, snapshots.SourceRemote); err != nil {
		s.log.Warn(ctx, "remote snapshot not journaled", "error", err)
	}
	return rep, nil
}

// record journals a snapshot and stamps the sync time in one transaction.
func (s *netWorthService) record(ctx context.Context, snap models.NetWorthSnapshot, src snapshots.Source) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := snapshots.NewSQLiteRepository(tx).Record(ctx, snap, src); err != nil {
			return err
		}
		stamp := s.now().UTC().Format(time.RFC3339Nano)
		return metadata.NewSQLiteRepository(tx).Set(ctx, metadata.KeyLastSync, []byte(stamp))
	})
	if err != nil {
		return fmt.Errorf("journal snapshot: %w", err)
	}
	s.log.Debug(ctx, "snapshot journaled", "source", string(src), "net_worth", snap.NetWorth().String())
	return nil
}

func (s *netWorthService) History(ctx context.Context, p history.Period) (history.Series, error) {
	points, err := s.client.NetWorthHistory(ctx, p)
	if err != nil {
		return nil, err
	}
	return history.Build(points, p)
}

func (s *netWorthService) LocalHistory(ctx context.Context, p history.Period) (history.Series, error) {
	points, err := snapshots.NewSQLiteRepository(s.db).List(ctx, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	return history.Build(points, p)
}

func (s *netWorthService) Latest(ctx context.Context) (models.NetWorthSnapshot, bool, error) {
	return snapshots.NewSQLiteRepository(s.db).Latest(ctx)
}

func (s *netWorthService) Top(ctx context.Context, n int) ([]models.Holding, error) {
	holdings, err := s.holdings(ctx)
	if err != nil {
		return nil, err
	}
	return valuation.TopHoldings(holdings, n)
}

func (s *netWorthService) Export(ctx context.Context, f export.Format, sink export.Sink) (string, error) {
	var (
		data []byte
		err  error
	)
	switch f {
	case export.FormatJSON:
		data, err = s.client.ExportJSON(ctx)
	default:
		f = export.FormatCSV
		data, err = s.client.ExportCSV(ctx)
	}
	if err != nil {
		return "", err
	}
	loc, err := sink.Put(ctx, export.FileName(f, s.now()), f, data)
	if err != nil {
		return "", fmt.Errorf("store export: %w", err)
	}
	s.log.Info(ctx, "export stored", "format", string(f), "location", loc, "bytes", len(data))
	return loc, nil
}

// LastSync is when a snapshot was last journaled.
func (s *netWorthService) LastSync(ctx context.Context) (time.Time, bool) {
	v, err := metadata.NewSQLiteRepository(s.db).Get(ctx, metadata.KeyLastSync)
	if err != nil || v == nil {
		return time.Time{}, false
	}
	t, err := models.ParseTimestamp(string(v))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
