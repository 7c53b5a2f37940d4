package models

import "time"

// Event types
const (
	EventTypeSaleItemsCommitted     = "SALE_ITEMS_COMMITTED"
	EventTypePurchaseItemsCommitted = "PURCHASE_ITEMS_COMMITTED"
	EventTypePawnCreated            = "PAWN_CREATED"
	EventTypePawnStatusChanged      = "PAWN_STATUS_CHANGED"
	EventTypePawnDeleted            = "PAWN_DELETED"
)

// Aggregates named in audit records
const (
	AggregateSaleInvoice     = "sale_invoice"
	AggregatePurchaseInvoice = "purchase_invoice"
	AggregatePawn            = "pawn"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// LineItemRef identifies one committed line item
type LineItemRef struct {
	InvoiceID  int64  `json:"invoice_id"`
	LineItemID string `json:"line_item_id"`
}

// ItemsCommittedEvent published after a line-item batch commits
type ItemsCommittedEvent struct {
	BaseEvent
	InvoiceIDs []int64       `json:"invoice_ids"`
	Items      []LineItemRef `json:"items"`
	Count      int           `json:"count"`
}

// PawnEvent published on pawn create, status change and delete
type PawnEvent struct {
	BaseEvent
	PawnID         int64  `json:"pawn_id"`
	Status         string `json:"status"`
	PreviousStatus string `json:"previous_status,omitempty"`
	CustomerID     int64  `json:"ctr_id"`
	EmployeeID     int64  `json:"epe_id"`
}

// AggregateFor maps an event type to the aggregate it belongs to.
func AggregateFor(eventType string) string {
	switch eventType {
	case EventTypeSaleItemsCommitted:
		return AggregateSaleInvoice
	case EventTypePurchaseItemsCommitted:
		return AggregatePurchaseInvoice
	case EventTypePawnCreated, EventTypePawnStatusChanged, EventTypePawnDeleted:
		return AggregatePawn
	}
	return ""
}
