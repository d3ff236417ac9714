package services

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/wealthwise/internal/client/client"
	"github.com/dmitrijs2005/wealthwise/internal/client/models"
)

// PortfolioService validates input locally before it reaches the backend.
type PortfolioService interface {
	List(ctx context.Context) ([]models.Portfolio, error)
	Get(ctx context.Context, id string) (models.Portfolio, error)
	Create(ctx context.Context, in models.PortfolioInput) (models.Portfolio, error)
	Update(ctx context.Context, id string, in models.PortfolioInput) (models.Portfolio, error)
	Delete(ctx context.Context, id string) error

	Assets(ctx context.Context, portfolioID string) ([]models.Holding, error)
	AddAsset(ctx context.Context, portfolioID string, in models.AssetInput) (models.Holding, error)
	UpdateAsset(ctx context.Context, portfolioID, assetID string, in models.AssetInput) (models.Holding, error)
	RemoveAsset(ctx context.Context, portfolioID, assetID string) error
	Valuations(ctx context.Context, portfolioID string, start, end time.Time) ([]models.Valuation, error)
}

type portfolioService struct {
	client client.Client
}

func NewPortfolioService(c client.Client) PortfolioService {
	return &portfolioService{client: c}
}

func requireID(field, id string) error {
	if strings.TrimSpace(id) == "" {
		return &models.ValidationError{Field: field, Reason: "must not be empty"}
	}
	return nil
}

func (s *portfolioService) List(ctx context.Context) ([]models.Portfolio, error) {
	return s.client.ListPortfolios(ctx)
}

func (s *portfolioService) Get(ctx context.Context, id string) (models.Portfolio, error) {
	if err := requireID("portfolio_id", id); err != nil {
		return models.Portfolio{}, err
	}
	return s.client.GetPortfolio(ctx, id)
}

func (s *portfolioService) Create(ctx context.Context, in models.PortfolioInput) (models.Portfolio, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return models.Portfolio{}, err
	}
	return s.client.CreatePortfolio(ctx, in)
}

func (s *portfolioService) Update(ctx context.Context, id string, in models.PortfolioInput) (models.Portfolio, error) {
	if err := requireID("portfolio_id", id); err != nil {
		return models.Portfolio{}, err
	}
	in.Name = strings.TrimSpace(in.Name)
	if err := in.Validate(); err != nil {
		return models.Portfolio{}, err
	}
	return s.client.UpdatePortfolio(ctx, id, in)
}

func (s *portfolioService) Delete(ctx context.Context, id string) error {
	if err := requireID("portfolio_id", id); err != nil {
		return err
	}
	return s.client.DeletePortfolio(ctx, id)
}

func (s *portfolioService) Assets(ctx context.Context, portfolioID string) ([]models.Holding, error) {
	if err := requireID("portfolio_id", portfolioID); err != nil {
		return nil, err
	}
	return s.client.ListAssets(ctx, portfolioID)
}

func (s *portfolioService) AddAsset(ctx context.Context, portfolioID string, in models.AssetInput) (models.Holding, error) {
	if err := requireID("portfolio_id", portfolioID); err != nil {
		return models.Holding{}, err
	}
	if err := in.Validate(); err != nil {
		return models.Holding{}, err
	}
	return s.client.CreateAsset(ctx, portfolioID, in)
}

func (s *portfolioService) UpdateAsset(ctx context.Context, portfolioID, assetID string, in models.AssetInput) (models.Holding, error) {
	if err := requireID("portfolio_id", portfolioID); err != nil {
		return models.Holding{}, err
	}
	if err := requireID("asset_id", assetID); err != nil {
		return models.Holding{}, err
	}
	if err := in.Validate(); err != nil {
		return models.Holding{}, err
	}
	return s.client.UpdateAsset(ctx, portfolioID, assetID, in)
}

func (s *portfolioService) RemoveAsset(ctx context.Context, portfolioID, assetID string) error {
	if err := requireID("portfolio_id", portfolioID); err != nil {
		return err
	}
	if err := requireID("asset_id", assetID); err != nil {
		return err
	}
	return s.client.DeleteAsset(ctx, portfolioID, assetID)
}

func (s *portfolioService) Valuations(ctx context.Context, portfolioID string, start, end time.Time) ([]models.Valuation, error) {
	if err := requireID("portfolio_id", portfolioID); err != nil {
		return nil, err
	}
	return s.client.Valuations(ctx, portfolioID, start, end)
}
