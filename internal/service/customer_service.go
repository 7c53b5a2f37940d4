package service

import (
	"context"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.uber.org/zap"
)

// CustomerStore is the persistence needed by CustomerService
type CustomerStore interface {
	ListCustomers(ctx context.Context) ([]models.Customer, error)
	GetCustomer(ctx context.Context, id int64) (*models.Customer, error)
	CreateCustomer(ctx context.Context, c *models.Customer) error
	UpdateCustomer(ctx context.Context, c *models.Customer) error
	DeleteCustomer(ctx context.Context, id int64) error
}

// CustomerService handles customers, the counterparties of purchases and pawns
type CustomerService struct {
	store  CustomerStore
	logger *zap.Logger
}

func NewCustomerService(store CustomerStore) *CustomerService {
	return &CustomerService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	return s.store.ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id int64) (*models.Customer, error) {
	return s.store.GetCustomer(ctx, id)
}

func (s *CustomerService) Create(ctx context.Context, req *CustomerRequest) (*models.Customer, error) {
	c := req.toModel(0)
	if err := s.store.CreateCustomer(ctx, c); err != nil {
		return nil, err
	}

	recordWrite("customer", "create")
	s.logger.Info("Customer created", zap.Int64("customer_id", c.CustomerID))
	return c, nil
}

func (s *CustomerService) Update(ctx context.Context, id int64, req *CustomerRequest) (*models.Customer, error) {
	c := req.toModel(id)
	if err := s.store.UpdateCustomer(ctx, c); err != nil {
		return nil, err
	}

	recordWrite("customer", "update")
	return c, nil
}

func (s *CustomerService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteCustomer(ctx, id); err != nil {
		return err
	}

	recordWrite("customer", "delete")
	s.logger.Info("Customer deleted", zap.Int64("customer_id", id))
	return nil
}
