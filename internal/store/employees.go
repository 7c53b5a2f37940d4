package store

import (
	"context"

	"halcon-service/internal/models"
)

const employeeColumns = `employee_id, first_name, middle_name, last_name, phone, email, address,
	salary, experience_years, expertise_level, speciality, certification, emp_type, mgr_id`

func (s *Store) ListEmployees(ctx context.Context) ([]models.Employee, error) {
	employees := []models.Employee{}
	err := s.db.SelectContext(ctx, &employees,
		"SELECT "+employeeColumns+" FROM pawn.employees ORDER BY employee_id")
	if err != nil {
		return nil, translateError(err, "employee", nil)
	}
	return employees, nil
}

func (s *Store) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.GetContext(ctx, &employee,
		"SELECT "+employeeColumns+" FROM pawn.employees WHERE employee_id = $1", id)
	if err != nil {
		return nil, translateError(err, "employee", id)
	}
	return &employee, nil
}

// CreateEmployee inserts an employee and fills in the generated ID
func (s *Store) CreateEmployee(ctx context.Context, e *models.Employee) error {
	query := `
		INSERT INTO pawn.employees (first_name, middle_name, last_name, phone, email, address,
			salary, experience_years, expertise_level, speciality, certification, emp_type, mgr_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING ` + employeeColumns

	err := s.db.GetContext(ctx, e, query,
		e.FirstName, e.MiddleName, e.LastName, e.Phone, e.Email, e.Address,
		e.Salary, e.ExperienceYears, e.ExpertiseLevel, e.Speciality, e.Certification, e.EmpType, e.MgrID)
	return translateError(err, "employee", nil)
}

func (s *Store) UpdateEmployee(ctx context.Context, e *models.Employee) error {
	query := `
		UPDATE pawn.employees
		SET first_name = $2, middle_name = $3, last_name = $4, phone = $5, email = $6, address = $7,
			salary = $8, experience_years = $9, expertise_level = $10, speciality = $11,
			certification = $12, emp_type = $13, mgr_id = $14
		WHERE employee_id = $1
		RETURNING ` + employeeColumns

	err := s.db.GetContext(ctx, e, query,
		e.EmployeeID, e.FirstName, e.MiddleName, e.LastName, e.Phone, e.Email, e.Address,
		e.Salary, e.ExperienceYears, e.ExpertiseLevel, e.Speciality, e.Certification, e.EmpType, e.MgrID)
	return translateError(err, "employee", e.EmployeeID)
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.employees WHERE employee_id = $1", id)
	if err != nil {
		return translateError(err, "employee", id)
	}
	return expectAffected(res, "employee", id)
}
