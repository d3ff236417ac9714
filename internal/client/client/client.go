package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
)

// Authenticator covers the operations that may be served by the fallback
// identity or the simulated backend.
type Authenticator interface {
	Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error)
	Signup(ctx context.Context, creds models.SignupCredentials) (models.AuthResponse, error)
	Me(ctx context.Context) (models.User, error)
}

// Client is the full backend contract.
type Client interface {
	Authenticator

	Close() error
	Ping(ctx context.Context) error

	ListPortfolios(ctx context.Context) ([]models.Portfolio, error)
	GetPortfolio(ctx context.Context, id string) (models.Portfolio, error)
	CreatePortfolio(ctx context.Context, in models.PortfolioInput) (models.Portfolio, error)
	UpdatePortfolio(ctx context.Context, id string, in models.PortfolioInput) (models.Portfolio, error)
	DeletePortfolio(ctx context.Context, id string) error

	ListAssets(ctx context.Context, portfolioID string) ([]models.Holding, error)
	CreateAsset(ctx context.Context, portfolioID string, in models.AssetInput) (models.Holding, error)
	UpdateAsset(ctx context.Context, portfolioID, assetID string, in models.AssetInput) (models.Holding, error)
	DeleteAsset(ctx context.Context, portfolioID, assetID string) error
	Valuations(ctx context.Context, portfolioID string, start, end time.Time) ([]models.Valuation, error)

	CurrentNetWorth(ctx context.Context) (models.NetWorthReport, error)
	NetWorthHistory(ctx context.Context, p history.Period) ([]models.HistoryPoint, error)
	ExportCSV(ctx context.Context) ([]byte, error)
	ExportJSON(ctx context.Context) ([]byte, error)
}

// TokenSource yields the bearer token for the next request, or "" to send
// it unauthenticated. session.Store satisfies it.
type TokenSource interface {
	Token() string
}
