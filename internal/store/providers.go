package store

import (
	"context"

	"halcon-service/internal/models"
)

const providerColumns = `provider_id, first_name, middle_name, last_name, phone, email, address,
	country_id, department_id, city_id`

func (s *Store) ListProviders(ctx context.Context) ([]models.Provider, error) {
	providers := []models.Provider{}
	err := s.db.SelectContext(ctx, &providers,
		"SELECT "+providerColumns+" FROM pawn.providers ORDER BY provider_id")
	if err != nil {
		return nil, translateError(err, "provider", nil)
	}
	return providers, nil
}

func (s *Store) GetProvider(ctx context.Context, id string) (*models.Provider, error) {
	var provider models.Provider
	err := s.db.GetContext(ctx, &provider,
		"SELECT "+providerColumns+" FROM pawn.providers WHERE provider_id = $1", id)
	if err != nil {
		return nil, translateError(err, "provider", id)
	}
	return &provider, nil
}

func (s *Store) CreateProvider(ctx context.Context, p *models.Provider) error {
	query := `
		INSERT INTO pawn.providers (` + providerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + providerColumns

	err := s.db.GetContext(ctx, p, query,
		p.ProviderID, p.FirstName, p.MiddleName, p.LastName, p.Phone, p.Email, p.Address,
		p.CountryID, p.DepartmentID, p.CityID)
	return translateError(err, "provider", p.ProviderID)
}

func (s *Store) UpdateProvider(ctx context.Context, p *models.Provider) error {
	query := `
		UPDATE pawn.providers
		SET first_name = $2, middle_name = $3, last_name = $4, phone = $5, email = $6, address = $7,
			country_id = $8, department_id = $9, city_id = $10
		WHERE provider_id = $1
		RETURNING ` + providerColumns

	err := s.db.GetContext(ctx, p, query,
		p.ProviderID, p.FirstName, p.MiddleName, p.LastName, p.Phone, p.Email, p.Address,
		p.CountryID, p.DepartmentID, p.CityID)
	return translateError(err, "provider", p.ProviderID)
}

func (s *Store) DeleteProvider(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.providers WHERE provider_id = $1", id)
	if err != nil {
		return translateError(err, "provider", id)
	}
	return expectAffected(res, "provider", id)
}
