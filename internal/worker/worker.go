package worker

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"halcon-service/internal/broker"
	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"
)

// MessageSource is the consuming side of the broker
type MessageSource interface {
	StartConsuming(ctx context.Context, handler broker.MessageHandler) error
	Close() error
}

// AuditStore appends events to the audit trail
type AuditStore interface {
	RecordAuditEvent(ctx context.Context, e *models.AuditEvent) (bool, error)
}

// AuditWorker consumes domain events and appends each one to the audit trail.
// Redelivered events are recorded once.
type AuditWorker struct {
	consumer     MessageSource
	store        AuditStore
	eventHandler *broker.EventHandler
	logger       *zap.Logger
}

// NewAuditWorker creates a new audit worker
func NewAuditWorker(consumer MessageSource, store AuditStore) *AuditWorker {
	w := &AuditWorker{
		consumer:     consumer,
		store:        store,
		eventHandler: broker.NewEventHandler(),
		logger:       util.GetLogger(),
	}

	w.eventHandler.OnItemsCommitted(w.recordItemsCommitted)
	w.eventHandler.OnPawnEvent(w.recordPawnEvent)
	return w
}

// Start blocks until ctx is cancelled
func (w *AuditWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting audit worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *AuditWorker) Stop() error {
	w.logger.Info("Stopping audit worker")
	return w.consumer.Close()
}

// recordItemsCommitted writes one audit row per invoice touched by the batch.
// Each row's event ID is derived from the batch event ID and the invoice ID,
// so a redelivered batch maps onto the same rows.
func (w *AuditWorker) recordItemsCommitted(ctx context.Context, event *models.ItemsCommittedEvent) error {
	for _, id := range event.InvoiceIDs {
		base := event.BaseEvent
		base.EventID = invoiceEventID(event.EventID, id)
		if err := w.record(ctx, base, strconv.FormatInt(id, 10), event); err != nil {
			return err
		}
	}
	return nil
}

func invoiceEventID(batchEventID string, invoiceID int64) string {
	return batchEventID + "/" + strconv.FormatInt(invoiceID, 10)
}

func (w *AuditWorker) recordPawnEvent(ctx context.Context, event *models.PawnEvent) error {
	return w.record(ctx, event.BaseEvent, strconv.FormatInt(event.PawnID, 10), event)
}

func (w *AuditWorker) record(ctx context.Context, base models.BaseEvent, aggregateID string, event interface{}) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", base.EventType, err)
	}

	inserted, err := w.store.RecordAuditEvent(ctx, &models.AuditEvent{
		EventID:     base.EventID,
		EventType:   base.EventType,
		Aggregate:   models.AggregateFor(base.EventType),
		AggregateID: aggregateID,
		Payload:     types.JSONText(payload),
		OccurredAt:  base.Timestamp,
	})
	if err != nil {
		util.AuditEventsRecordedTotal.WithLabelValues(base.EventType, "failed").Inc()
		return fmt.Errorf("failed to record event %s: %w", base.EventID, err)
	}

	outcome := "recorded"
	if !inserted {
		outcome = "duplicate"
	}
	util.AuditEventsRecordedTotal.WithLabelValues(base.EventType, outcome).Inc()
	w.logger.Debug("Audit event handled",
		zap.String("event_id", base.EventID),
		zap.String("event_type", base.EventType),
		zap.String("outcome", outcome))
	return nil
}

var _ MessageSource = (*broker.Consumer)(nil)
