package service

import (
	"context"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ProductStore is the persistence needed by ProductService
type ProductStore interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	GetProduct(ctx context.Context, id string) (*models.Product, error)
	CreateProduct(ctx context.Context, p *models.Product) error
	UpdateProduct(ctx context.Context, p *models.Product) error
	DeleteProduct(ctx context.Context, id string) error
}

// ProductService handles the product catalog
type ProductService struct {
	store  ProductStore
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store ProductStore) *ProductService {
	return &ProductService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.store.ListProducts(ctx)
}

func (s *ProductService) Get(ctx context.Context, id string) (*models.Product, error) {
	return s.store.GetProduct(ctx, id)
}

// Create inserts a product under the ID chosen by the caller
func (s *ProductService) Create(ctx context.Context, req *CreateProductRequest) (p *models.Product, err error) {
	ctx, span := util.StartSpan(ctx, "ProductService.Create", attribute.String("product_id", req.ProductID))
	defer func() { util.EndSpan(span, err) }()

	p = req.ProductRequest.toModel(req.ProductID)
	if err = s.store.CreateProduct(ctx, p); err != nil {
		return nil, err
	}

	recordWrite("product", "create")
	s.logger.Info("Product created", zap.String("product_id", p.ProductID))
	return p, nil
}

// Update replaces every mutable field of the product
func (s *ProductService) Update(ctx context.Context, id string, req *ProductRequest) (*models.Product, error) {
	p := req.toModel(id)
	if err := s.store.UpdateProduct(ctx, p); err != nil {
		return nil, err
	}

	recordWrite("product", "update")
	s.logger.Info("Product updated", zap.String("product_id", id))
	return p, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.store.DeleteProduct(ctx, id); err != nil {
		return err
	}

	recordWrite("product", "delete")
	s.logger.Info("Product deleted", zap.String("product_id", id))
	return nil
}
