package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/dmitrijs2005/wealthwise/internal/logging"
	"github.com/google/uuid"
)

// Gateway wraps a remote Client and is the only path the services use to
// reach the backend.
//
// Every call is recorded as a PENDING event followed by its terminal
// state. When Login, Signup or Me fail with a transport error a fallback
// event is recorded and logged and the call is answered by the offline
// authenticator, which still rejects credentials other than the demo
// account's. All other operations return their errors unchanged. With a
// simulated authenticator configured, auth calls never reach the remote
// and the fallback path is not used.
type Gateway struct {
	remote    Client
	simulated Authenticator
	offline   Authenticator
	recorder  Recorder
	log       logging.Logger
	now       func() time.Time
}

var _ Client = (*Gateway)(nil)

type GatewayOption func(*Gateway)

// WithSimulatedAuth routes Login, Signup and Me to a.
func WithSimulatedAuth(a Authenticator) GatewayOption {
	return func(g *Gateway) { g.simulated = a }
}

// WithFallbackAuth replaces the authenticator that answers auth calls while
// the backend is unreachable.
func WithFallbackAuth(a Authenticator) GatewayOption {
	return func(g *Gateway) { g.offline = a }
}

func WithRecorder(r Recorder) GatewayOption {
	return func(g *Gateway) { g.recorder = r }
}

func WithGatewayLogger(l logging.Logger) GatewayOption {
	return func(g *Gateway) { g.log = l }
}

func NewGateway(remote Client, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		remote:   remote,
		recorder: NewMemoryRecorder(0),
		log:      logging.Nop(),
		now:      time.Now,
	}
	if sim, err := NewSimulated(); err == nil {
		g.offline = sim
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Simulated reports whether auth is served by the simulated backend.
func (g *Gateway) Simulated() bool { return g.simulated != nil }

func call[T any](ctx context.Context, g *Gateway, op string, simulated bool, fn func(context.Context) (T, error)) (T, error) {
	ev := Event{ID: uuid.NewString(), Op: op, State: StatePending, Simulated: simulated, At: g.now()}
	g.recorder.Record(ev)

	v, err := fn(ctx)

	ev.State = Classify(err)
	ev.Err = err
	ev.Elapsed = g.now().Sub(ev.At)
	g.recorder.Record(ev)
	return v, err
}

func callErr(ctx context.Context, g *Gateway, op string, fn func(context.Context) error) error {
	_, err := call(ctx, g, op, false, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

// fallback decides whether err is handed to the offline authenticator. A
// caller that has already given up never gets a substitute.
func (g *Gateway) fallback(ctx context.Context, op string, err error) bool {
	if g.offline == nil || !IsTransport(err) || ctx.Err() != nil {
		return false
	}
	ev := Event{ID: uuid.NewString(), Op: op, State: StateTransportError, Fallback: true, Err: err, At: g.now()}
	g.recorder.Record(ev)
	g.log.Warn(ctx, "backend unreachable, falling back to the demo account", "op", op, "event_id", ev.ID, "error", err)
	return true
}

func (g *Gateway) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	if g.simulated != nil {
		return call(ctx, g, OpLogin, true, func(ctx context.Context) (models.AuthResponse, error) {
			return g.simulated.Login(ctx, creds)
		})
	}
	resp, err := call(ctx, g, OpLogin, false, func(ctx context.Context) (models.AuthResponse, error) {
		return g.remote.Login(ctx, creds)
	})
	if g.fallback(ctx, OpLogin, err) {
		return g.offline.Login(ctx, creds)
	}
	return resp, err
}

func (g *Gateway) Signup(ctx context.Context, creds models.SignupCredentials) (models.AuthResponse, error) {
	if g.simulated != nil {
		return call(ctx, g, OpSignup, true, func(ctx context.Context) (models.AuthResponse, error) {
			return g.simulated.Signup(ctx, creds)
		})
	}
	resp, err := call(ctx, g, OpSignup, false, func(ctx context.Context) (models.AuthResponse, error) {
		return g.remote.Signup(ctx, creds)
	})
	if g.fallback(ctx, OpSignup, err) {
		return g.offline.Signup(ctx, creds)
	}
	return resp, err
}

func (g *Gateway) Me(ctx context.Context) (models.User, error) {
	if g.simulated != nil {
		return call(ctx, g, OpMe, true, g.simulated.Me)
	}
	u, err := call(ctx, g, OpMe, false, g.remote.Me)
	if g.fallback(ctx, OpMe, err) {
		return g.offline.Me(ctx)
	}
	return u, err
}

func (g *Gateway) Close() error { return g.remote.Close() }

func (g *Gateway) Ping(ctx context.Context) error {
	return callErr(ctx, g, OpPing, g.remote.Ping)
}

func (g *Gateway) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	return call(ctx, g, OpListPortfolios, false, g.remote.ListPortfolios)
}

func (g *Gateway) GetPortfolio(ctx context.Context, id string) (models.Portfolio, error) {
	return call(ctx, g, OpGetPortfolio, false, func(ctx context.Context) (models.Portfolio, error) {
		return g.remote.GetPortfolio(ctx, id)
	})
}

func (g *Gateway) CreatePortfolio(ctx context.Context, in models.PortfolioInput) (models.Portfolio, error) {
	return call(ctx, g, OpCreatePortfolio, false, func(ctx context.Context) (models.Portfolio, error) {
		return g.remote.CreatePortfolio(ctx, in)
	})
}

func (g *Gateway) UpdatePortfolio(ctx context.Context, id string, in models.PortfolioInput) (models.Portfolio, error) {
	return call(ctx, g, OpUpdatePortfolio, false, func(ctx context.Context) (models.Portfolio, error) {
		return g.remote.UpdatePortfolio(ctx, id, in)
	})
}

func (g *Gateway) DeletePortfolio(ctx context.Context, id string) error {
	return callErr(ctx, g, OpDeletePortfolio, func(ctx context.Context) error {
		return g.remote.DeletePortfolio(ctx, id)
	})
}

func (g *Gateway) ListAssets(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	return call(ctx, g, OpListAssets, false, func(ctx context.Context) ([]models.Holding, error) {
		return g.remote.ListAssets(ctx, portfolioID)
	})
}

func (g *Gateway) CreateAsset(ctx context.Context, portfolioID string, in models.AssetInput) (models.Holding, error) {
	return call(ctx, g, OpCreateAsset, false, func(ctx context.Context) (models.Holding, error) {
		return g.remote.CreateAsset(ctx, portfolioID, in)
	})
}

func (g *Gateway) UpdateAsset(ctx context.Context, portfolioID, assetID string, in models.AssetInput) (models.Holding, error) {
	return call(ctx, g, OpUpdateAsset, false, func(ctx context.Context) (models.Holding, error) {
		return g.remote.UpdateAsset(ctx, portfolioID, assetID, in)
	})
}

func (g *Gateway) DeleteAsset(ctx context.Context, portfolioID, assetID string) error {
	return callErr(ctx, g, OpDeleteAsset, func(ctx context.Context) error {
		return g.remote.DeleteAsset(ctx, portfolioID, assetID)
	})
}

func (g *Gateway) Valuations(ctx context.Context, portfolioID string, start, end time.Time) ([]models.Valuation, error) {
	return call(ctx, g, OpValuations, false, func(ctx context.Context) ([]models.Valuation, error) {
		return g.remote.Valuations(ctx, portfolioID, start, end)
	})
}

func (g *Gateway) CurrentNetWorth(ctx context.Context) (models.NetWorthReport, error) {
	return call(ctx, g, OpCurrentNetWorth, false, g.remote.CurrentNetWorth)
}

func (g *Gateway) NetWorthHistory(ctx context.Context, p history.Period) ([]models.HistoryPoint, error) {
	return call(ctx, g, OpNetWorthHistory, false, func(ctx context.Context) ([]models.HistoryPoint, error) {
		return g.remote.NetWorthHistory(ctx, p)
	})
}

func (g *Gateway) ExportCSV(ctx context.Context) ([]byte, error) {
	return call(ctx, g, OpExportCSV, false, g.remote.ExportCSV)
}

func (g *Gateway) ExportJSON(ctx context.Context) ([]byte, error) {
	return call(ctx, g, OpExportJSON, false, g.remote.ExportJSON)
}
