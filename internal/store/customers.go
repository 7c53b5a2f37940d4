package store

import (
	"context"

	"halcon-service/internal/models"
)

const customerColumns = `customer_id, first_name, middle_name, last_name, address, phone, email,
	country_id, department_id, city_id, document_id`

func (s *Store) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers := []models.Customer{}
	err := s.db.SelectContext(ctx, &customers,
		"SELECT "+customerColumns+" FROM pawn.customers ORDER BY customer_id")
	if err != nil {
		return nil, translateError(err, "customer", nil)
	}
	return customers, nil
}

func (s *Store) GetCustomer(ctx context.Context, id int64) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.GetContext(ctx, &customer,
		"SELECT "+customerColumns+" FROM pawn.customers WHERE customer_id = $1", id)
	if err != nil {
		return nil, translateError(err, "customer", id)
	}
	return &customer, nil
}

// CreateCustomer inserts a customer and fills in the generated ID
func (s *Store) CreateCustomer(ctx context.Context, c *models.Customer) error {
	query := `
		INSERT INTO pawn.customers (first_name, middle_name, last_name, address, phone, email,
			country_id, department_id, city_id, document_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + customerColumns

	err := s.db.GetContext(ctx, c, query,
		c.FirstName, c.MiddleName, c.LastName, c.Address, c.Phone, c.Email,
		c.CountryID, c.DepartmentID, c.CityID, c.DocumentID)
	return translateError(err, "customer", nil)
}

func (s *Store) UpdateCustomer(ctx context.Context, c *models.Customer) error {
	query := `
		UPDATE pawn.customers
		SET first_name = $2, middle_name = $3, last_name = $4, address = $5, phone = $6, email = $7,
			country_id = $8, department_id = $9, city_id = $10, document_id = $11
		WHERE customer_id = $1
		RETURNING ` + customerColumns

	err := s.db.GetContext(ctx, c, query,
		c.CustomerID, c.FirstName, c.MiddleName, c.LastName, c.Address, c.Phone, c.Email,
		c.CountryID, c.DepartmentID, c.CityID, c.DocumentID)
	return translateError(err, "customer", c.CustomerID)
}

func (s *Store) DeleteCustomer(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.customers WHERE customer_id = $1", id)
	if err != nil {
		return translateError(err, "customer", id)
	}
	return expectAffected(res, "customer", id)
}
