package store

import (
	"context"

	"halcon-service/internal/models"
)

const auditColumns = `event_id, event_type, aggregate, aggregate_id, payload, occurred_at, recorded_at`

// RecordAuditEvent appends an event to the audit trail. Redelivered events are
// ignored; the returned flag reports whether a row was written.
func (s *Store) RecordAuditEvent(ctx context.Context, e *models.AuditEvent) (bool, error) {
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO pawn.audit_events (event_id, event_type, aggregate, aggregate_id, payload, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (event_id) DO NOTHING`,
		e.EventID, e.EventType, e.Aggregate, e.AggregateID, e.Payload, e.OccurredAt)
	if err != nil {
		return false, translateError(err, "audit event", e.EventID)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, translateError(err, "audit event", e.EventID)
	}
	return n > 0, nil
}

// ListAuditEvents returns the trail of one aggregate in the order it happened
func (s *Store) ListAuditEvents(ctx context.Context, aggregate, aggregateID string) ([]models.AuditEvent, error) {
	events := []models.AuditEvent{}
	err := s.db.SelectContext(ctx, &events,
		"SELECT "+auditColumns+" FROM pawn.audit_events WHERE aggregate = $1 AND aggregate_id = $2 ORDER BY occurred_at, recorded_at",
		aggregate, aggregateID)
	if err != nil {
		return nil, translateError(err, "audit event", nil)
	}
	return events, nil
}
