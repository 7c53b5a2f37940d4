package service

import (
	"context"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.uber.org/zap"
)

// ProviderStore is the persistence needed by ProviderService
type ProviderStore interface {
	ListProviders(ctx context.Context) ([]models.Provider, error)
	GetProvider(ctx context.Context, id string) (*models.Provider, error)
	CreateProvider(ctx context.Context, p *models.Provider) error
	UpdateProvider(ctx context.Context, p *models.Provider) error
	DeleteProvider(ctx context.Context, id string) error
}

// ProviderService handles providers, the counterparties of sales
type ProviderService struct {
	store  ProviderStore
	logger *zap.Logger
}

func NewProviderService(store ProviderStore) *ProviderService {
	return &ProviderService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func (s *ProviderService) List(ctx context.Context) ([]models.Provider, error) {
	return s.store.ListProviders(ctx)
}

func (s *ProviderService) Get(ctx context.Context, id string) (*models.Provider, error) {
	return s.store.GetProvider(ctx, id)
}

func (s *ProviderService) Create(ctx context.Context, req *CreateProviderRequest) (*models.Provider, error) {
	p := req.ProviderRequest.toModel(req.ProviderID)
	if err := s.store.CreateProvider(ctx, p); err != nil {
		return nil, err
	}

	recordWrite("provider", "create")
	s.logger.Info("Provider created", zap.String("provider_id", p.ProviderID))
	return p, nil
}

func (s *ProviderService) Update(ctx context.Context, id string, req *ProviderRequest) (*models.Provider, error) {
	p := req.toModel(id)
	if err := s.store.UpdateProvider(ctx, p); err != nil {
		return nil, err
	}

	recordWrite("provider", "update")
	return p, nil
}

func (s *ProviderService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProvider(ctx, id); err != nil {
		return err
	}

	recordWrite("provider", "delete")
	s.logger.Info("Provider deleted", zap.String("provider_id", id))
	return nil
}
