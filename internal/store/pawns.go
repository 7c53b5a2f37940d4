package store

import (
	"context"

	"halcon-service/internal/models"
)

const pawnColumns = `pawn_id, pawn_date, return_date, expiration_date, fee_rate, total_amount, status, ctr_id, epe_id`

// ListPawns returns every pawn with the customer and employee display names,
// most recent pawn date first
func (s *Store) ListPawns(ctx context.Context) ([]models.PawnListing, error) {
	query := `
		SELECT p.pawn_id, p.pawn_date, p.return_date, p.expiration_date, p.fee_rate,
			p.total_amount, p.status, p.ctr_id, p.epe_id,
			TRIM(CONCAT_WS(' ', c.first_name, c.middle_name, c.last_name)) AS customer_name,
			TRIM(CONCAT_WS(' ', e.first_name, e.middle_name, e.last_name)) AS employee_name
		FROM pawn.pawns p
		LEFT JOIN pawn.customers c ON c.customer_id = p.ctr_id
		LEFT JOIN pawn.employees e ON e.employee_id = p.epe_id
		ORDER BY p.pawn_date DESC, p.pawn_id DESC`

	pawns := []models.PawnListing{}
	if err := s.db.SelectContext(ctx, &pawns, query); err != nil {
		return nil, translateError(err, "pawn", nil)
	}
	return pawns, nil
}

func (s *Store) GetPawn(ctx context.Context, id int64) (*models.Pawn, error) {
	var pawn models.Pawn
	err := s.db.GetContext(ctx, &pawn,
		"SELECT "+pawnColumns+" FROM pawn.pawns WHERE pawn_id = $1", id)
	if err != nil {
		return nil, translateError(err, "pawn", id)
	}
	return &pawn, nil
}

func (s *Store) CreatePawn(ctx context.Context, p *models.Pawn) error {
	query := `
		INSERT INTO pawn.pawns (pawn_date, return_date, expiration_date, fee_rate, total_amount, status, ctr_id, epe_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + pawnColumns

	err := s.db.GetContext(ctx, p, query,
		p.PawnDate, p.ReturnDate, p.ExpirationDate, p.FeeRate, p.TotalAmount, p.Status, p.CtrID, p.EpeID)
	return translateError(err, "pawn", nil)
}

func (s *Store) UpdatePawn(ctx context.Context, p *models.Pawn) error {
	query := `
		UPDATE pawn.pawns
		SET pawn_date = $2, return_date = $3, expiration_date = $4, fee_rate = $5,
			total_amount = $6, status = $7, ctr_id = $8, epe_id = $9
		WHERE pawn_id = $1
		RETURNING ` + pawnColumns

	err := s.db.GetContext(ctx, p, query,
		p.PawnID, p.PawnDate, p.ReturnDate, p.ExpirationDate, p.FeeRate, p.TotalAmount, p.Status, p.CtrID, p.EpeID)
	return translateError(err, "pawn", p.PawnID)
}

func (s *Store) DeletePawn(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.pawns WHERE pawn_id = $1", id)
	if err != nil {
		return translateError(err, "pawn", id)
	}
	return expectAffected(res, "pawn", id)
}
