package store

import (
	"context"
	"time"

	"halcon-service/internal/models"
)

// CountPawnsByStatus groups pawns by their stored status
func (s *Store) CountPawnsByStatus(ctx context.Context) ([]models.PawnStatusCount, error) {
	counts := []models.PawnStatusCount{}
	err := s.db.SelectContext(ctx, &counts,
		"SELECT status, COUNT(*) AS count FROM pawn.pawns GROUP BY status ORDER BY status")
	if err != nil {
		return nil, translateError(err, "pawn", nil)
	}
	return counts, nil
}

// CountOverduePawns counts active pawns whose expiration date is before asOf
func (s *Store) CountOverduePawns(ctx context.Context, asOf time.Time) (int64, error) {
	var n int64
	err := s.db.GetContext(ctx, &n,
		"SELECT COUNT(*) FROM pawn.pawns WHERE status = $1 AND expiration_date < $2",
		string(models.PawnStatusActive), asOf.Format(models.DateLayout))
	if err != nil {
		return 0, translateError(err, "pawn", nil)
	}
	return n, nil
}
