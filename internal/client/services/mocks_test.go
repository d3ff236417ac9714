package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/history"
	"github.com/dmitrijs2005/wealthwise/internal/client/migrations"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

type mockClient struct {
	mock.Mock
}

var _ client.Client = (*mockClient)(nil)

func (m *mockClient) Login(ctx context.Context, creds models.Credentials) (models.AuthResponse, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *mockClient) Signup(ctx context.Context, creds models.SignupCredentials) (models.AuthResponse, error) {
	args := m.Called(ctx, creds)
	return args.Get(0).(models.AuthResponse), args.Error(1)
}

func (m *mockClient) Me(ctx context.Context) (models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *mockClient) Close() error { return m.Called().Error(0) }

func (m *mockClient) Ping(ctx context.Context) error { return m.Called(ctx).Error(0) }

func (m *mockClient) ListPortfolios(ctx context.Context) ([]models.Portfolio, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Portfolio), args.Error(1)
}

func (m *mockClient) GetPortfolio(ctx context.Context, id string) (models.Portfolio, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Portfolio), args.Error(1)
}

func (m *mockClient) CreatePortfolio(ctx context.Context, in models.PortfolioInput) (models.Portfolio, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(models.Portfolio), args.Error(1)
}

func (m *mockClient) UpdatePortfolio(ctx context.Context, id string, in models.PortfolioInput) (models.Portfolio, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(models.Portfolio), args.Error(1)
}

func (m *mockClient) DeletePortfolio(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClient) ListAssets(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	args := m.Called(ctx, portfolioID)
	return args.Get(0).([]models.Holding), args.Error(1)
}

func (m *mockClient) CreateAsset(ctx context.Context, portfolioID string, in models.AssetInput) (models.Holding, error) {
	args := m.Called(ctx, portfolioID, in)
	return args.Get(0).(models.Holding), args.Error(1)
}

func (m *mockClient) UpdateAsset(ctx context.Context, portfolioID, assetID string, in models.AssetInput) (models.Holding, error) {
	args := m.Called(ctx, portfolioID, assetID, in)
	return args.Get(0).(models.Holding), args.Error(1)
}

func (m *mockClient) DeleteAsset(ctx context.Context, portfolioID, assetID string) error {
	return m.Called(ctx, portfolioID, assetID).Error(0)
}

func (m *mockClient) Valuations(ctx context.Context, portfolioID string, start, end time.Time) ([]models.Valuation, error) {
	args := m.Called(ctx, portfolioID, start, end)
	return args.Get(0).([]models.Valuation), args.Error(1)
}

func (m *mockClient) CurrentNetWorth(ctx context.Context) (models.NetWorthReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.NetWorthReport), args.Error(1)
}

func (m *mockClient) NetWorthHistory(ctx context.Context, p history.Period) ([]models.HistoryPoint, error) {
	args := m.Called(ctx, p)
	return args.Get(0).([]models.HistoryPoint), args.Error(1)
}

func (m *mockClient) ExportCSV(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return args.Get(0).([]byte), args.Error(1)
}

func (m *mockClient) ExportJSON(ctx context.Context) ([]byte, error) {
	args := m.Called(ctx)
	return args.Get(0).([]byte), args.Error(1)
}

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrations.Up(context.Background(), db))
	return db
}

func transportErr(op string) error {
	return &client.TransportError{Op: op, Err: context.DeadlineExceeded}
}
