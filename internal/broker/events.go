package broker

import (
	"context"
	"encoding/json"
	"fmt"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// EventWriter is satisfied by Producer
type EventWriter interface {
	PublishEvent(ctx context.Context, key string, event interface{}) error
}

// EventPublisher handles publishing domain events
type EventPublisher struct {
	producer EventWriter
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer EventWriter) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishItemsCommitted publishes SALE_ITEMS_COMMITTED or PURCHASE_ITEMS_COMMITTED
func (ep *EventPublisher) PublishItemsCommitted(ctx context.Context, event *models.ItemsCommittedEvent) error {
	key := event.EventType
	if len(event.InvoiceIDs) > 0 {
		key = fmt.Sprintf("%s-%d", models.AggregateFor(event.EventType), event.InvoiceIDs[0])
	}
	return ep.producer.PublishEvent(ctx, key, event)
}

// PublishPawnEvent publishes PAWN_CREATED, PAWN_STATUS_CHANGED or PAWN_DELETED
func (ep *EventPublisher) PublishPawnEvent(ctx context.Context, event *models.PawnEvent) error {
	key := fmt.Sprintf("pawn-%d", event.PawnID)
	return ep.producer.PublishEvent(ctx, key, event)
}

// EventHandler handles incoming events
type EventHandler struct {
	onItemsCommitted func(context.Context, *models.ItemsCommittedEvent) error
	onPawnEvent      func(context.Context, *models.PawnEvent) error
	logger           *zap.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{logger: util.GetLogger()}
}

// OnItemsCommitted registers a handler for both line-item commit events
func (eh *EventHandler) OnItemsCommitted(handler func(context.Context, *models.ItemsCommittedEvent) error) {
	eh.onItemsCommitted = handler
}

// OnPawnEvent registers a handler for pawn lifecycle events
func (eh *EventHandler) OnPawnEvent(handler func(context.Context, *models.PawnEvent) error) {
	eh.onPawnEvent = handler
}

// HandleMessage routes messages to appropriate handlers. Unknown types are
// acknowledged and skipped.
func (eh *EventHandler) HandleMessage(ctx context.Context, msg kafka.Message) error {
	var baseEvent models.BaseEvent
	if err := json.Unmarshal(msg.Value, &baseEvent); err != nil {
		return fmt.Errorf("failed to unmarshal base event: %w", err)
	}

	eh.logger.Debug("Handling event",
		zap.String("type", baseEvent.EventType),
		zap.String("id", baseEvent.EventID))

	switch baseEvent.EventType {
	case models.EventTypeSaleItemsCommitted, models.EventTypePurchaseItemsCommitted:
		if eh.onItemsCommitted != nil {
			var event models.ItemsCommittedEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal %s event: %w", baseEvent.EventType, err)
			}
			return eh.onItemsCommitted(ctx, &event)
		}

	case models.EventTypePawnCreated, models.EventTypePawnStatusChanged, models.EventTypePawnDeleted:
		if eh.onPawnEvent != nil {
			var event models.PawnEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				return fmt.Errorf("failed to unmarshal %s event: %w", baseEvent.EventType, err)
			}
			return eh.onPawnEvent(ctx, &event)
		}

	default:
		eh.logger.Warn("Unhandled event type", zap.String("type", baseEvent.EventType))
	}

	return nil
}
