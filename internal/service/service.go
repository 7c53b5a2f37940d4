package service

import (
	"context"
	"time"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Publisher sends domain events. Publishing is best effort: callers log
// failures and never fail the request because of them.
type Publisher interface {
	PublishItemsCommitted(ctx context.Context, event *models.ItemsCommittedEvent) error
	PublishPawnEvent(ctx context.Context, event *models.PawnEvent) error
}

// IdempotencyStore remembers which batch submissions already succeeded
type IdempotencyStore interface {
	CheckIdempotencyKey(ctx context.Context, key string) (bool, error)
	SetIdempotencyKey(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	AcquireLock(ctx context.Context, key string, ttl time.Duration) (bool, error)
	ReleaseLock(ctx context.Context, key string) error
}

// NoopPublisher drops every event. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishItemsCommitted(context.Context, *models.ItemsCommittedEvent) error {
	return nil
}

func (NoopPublisher) PublishPawnEvent(context.Context, *models.PawnEvent) error {
	return nil
}

func newBaseEvent(eventType string) models.BaseEvent {
	return models.BaseEvent{
		EventID:   uuid.New().String(),
		EventType: eventType,
		Timestamp: time.Now().UTC(),
	}
}

func recordWrite(resource, op string) {
	util.RecordsWrittenTotal.WithLabelValues(resource, op).Inc()
}

func logPublishFailure(logger *zap.Logger, eventType string, err error) {
	util.EventsPublishedTotal.WithLabelValues(eventType, "failed").Inc()
	logger.Error("Failed to publish event", zap.String("event_type", eventType), zap.Error(err))
}

func recordPublished(eventType string) {
	util.EventsPublishedTotal.WithLabelValues(eventType, "ok").Inc()
}
