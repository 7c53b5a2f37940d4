package store

import (
	"context"

	"halcon-service/internal/models"
)

const productColumns = `product_id, product_name, stock, brand, status, image, jewelry_id, non_jewelry_id`

// ListProducts retrieves all products
func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	err := s.db.SelectContext(ctx, &products,
		"SELECT "+productColumns+" FROM pawn.products ORDER BY product_id")
	if err != nil {
		return nil, translateError(err, "product", nil)
	}
	return products, nil
}

// GetProduct retrieves a product by ID
func (s *Store) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT "+productColumns+" FROM pawn.products WHERE product_id = $1", id)
	if err != nil {
		return nil, translateError(err, "product", id)
	}
	return &product, nil
}

// CreateProduct inserts a product under its caller-supplied ID
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO pawn.products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + productColumns

	err := s.db.GetContext(ctx, p, query,
		p.ProductID, p.ProductName, p.Stock, p.Brand, p.Status, p.Image, p.JewelryID, p.NonJewelryID)
	return translateError(err, "product", p.ProductID)
}

// UpdateProduct replaces every mutable field of a product
func (s *Store) UpdateProduct(ctx context.Context, p *models.Product) error {
	query := `
		UPDATE pawn.products
		SET product_name = $2, stock = $3, brand = $4, status = $5, image = $6,
			jewelry_id = $7, non_jewelry_id = $8
		WHERE product_id = $1
		RETURNING ` + productColumns

	err := s.db.GetContext(ctx, p, query,
		p.ProductID, p.ProductName, p.Stock, p.Brand, p.Status, p.Image, p.JewelryID, p.NonJewelryID)
	return translateError(err, "product", p.ProductID)
}

// DeleteProduct removes a product
func (s *Store) DeleteProduct(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.products WHERE product_id = $1", id)
	if err != nil {
		return translateError(err, "product", id)
	}
	return expectAffected(res, "product", id)
}
