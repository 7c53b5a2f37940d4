package service

import (
	"context"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.uber.org/zap"
)

// EmployeeStore is the persistence needed by EmployeeService
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]models.Employee, error)
	GetEmployee(ctx context.Context, id int64) (*models.Employee, error)
	CreateEmployee(ctx context.Context, e *models.Employee) error
	UpdateEmployee(ctx context.Context, e *models.Employee) error
	DeleteEmployee(ctx context.Context, id int64) error
}

// EmployeeService handles staff records. The manager reference is stored as
// given; it is neither resolved nor checked for cycles.
type EmployeeService struct {
	store  EmployeeStore
	logger *zap.Logger
}

func NewEmployeeService(store EmployeeStore) *EmployeeService {
	return &EmployeeService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *EmployeeService) Get(ctx context.Context, id int64) (*models.Employee, error) {
	return s.store.GetEmployee(ctx, id)
}

func (s *EmployeeService) Create(ctx context.Context, req *EmployeeRequest) (*models.Employee, error) {
	e := req.toModel(0)
	if err := s.store.CreateEmployee(ctx, e); err != nil {
		return nil, err
	}

	recordWrite("employee", "create")
	s.logger.Info("Employee created", zap.Int64("employee_id", e.EmployeeID))
	return e, nil
}

func (s *EmployeeService) Update(ctx context.Context, id int64, req *EmployeeRequest) (*models.Employee, error) {
	e := req.toModel(id)
	if err := s.store.UpdateEmployee(ctx, e); err != nil {
		return nil, err
	}

	recordWrite("employee", "update")
	return e, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteEmployee(ctx, id); err != nil {
		return err
	}

	recordWrite("employee", "delete")
	s.logger.Info("Employee deleted", zap.Int64("employee_id", id))
	return nil
}
