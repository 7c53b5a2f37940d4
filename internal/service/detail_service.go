package service

import (
	"context"
	"time"

	"halcon-service/internal/apperr"
	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

const (
	kindSale     = "sale"
	kindPurchase = "purchase"

	batchLockTTL = 30 * time.Second
)

// DetailStore is the persistence needed by DetailService
type DetailStore interface {
	CreateSaleItems(ctx context.Context, items []models.SaleItem) error
	ListSaleItems(ctx context.Context) ([]models.SaleItem, error)
	ListSaleItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.SaleItem, error)
	GetSaleItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.SaleItem, error)
	UpdateSaleItem(ctx context.Context, item *models.SaleItem) error
	DeleteSaleItem(ctx context.Context, invoiceID int64, lineItemID string) error

	CreatePurchaseItems(ctx context.Context, items []models.PurchaseItem) error
	ListPurchaseItems(ctx context.Context) ([]models.PurchaseItem, error)
	ListPurchaseItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.PurchaseItem, error)
	GetPurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.PurchaseItem, error)
	UpdatePurchaseItem(ctx context.Context, item *models.PurchaseItem) error
	DeletePurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) error
}

// BatchResult acknowledges a committed line-item batch
type BatchResult struct {
	Count    int  `json:"count"`
	Replayed bool `json:"replayed,omitempty"`
}

// DetailService handles sale and purchase line items. Batches are written
// all-or-nothing; items of one batch are not required to share an invoice.
type DetailService struct {
	store          DetailStore
	idempotency    IdempotencyStore
	publisher      Publisher
	idempotencyTTL time.Duration
	logger         *zap.Logger
}

// NewDetailService creates a new line-item service. idempotency may be nil,
// in which case Idempotency-Key headers are ignored.
func NewDetailService(store DetailStore, idempotency IdempotencyStore, publisher Publisher, idempotencyTTL time.Duration) *DetailService {
	if publisher == nil {
		publisher = NoopPublisher{}
	}
	return &DetailService{
		store:          store,
		idempotency:    idempotency,
		publisher:      publisher,
		idempotencyTTL: idempotencyTTL,
		logger:         util.GetLogger(),
	}
}

// CreateSaleItems commits a batch of sale line items in one transaction
func (s *DetailService) CreateSaleItems(ctx context.Context, idempotencyKey string, reqs []SaleItemRequest) (*BatchResult, error) {
	items := make([]models.SaleItem, 0, len(reqs))
	refs := make([]models.LineItemRef, 0, len(reqs))
	for _, r := range reqs {
		item := r.LineItemRequest.toSaleItem(r.InvoiceSaleID.Int64(), r.LineItemID)
		items = append(items, item)
		refs = append(refs, models.LineItemRef{InvoiceID: item.InvoiceSaleID, LineItemID: item.LineItemID})
	}

	return s.commitBatch(ctx, kindSale, idempotencyKey, refs, func(ctx context.Context) error {
		return s.store.CreateSaleItems(ctx, items)
	})
}

// CreatePurchaseItems commits a batch of purchase line items in one transaction
func (s *DetailService) CreatePurchaseItems(ctx context.Context, idempotencyKey string, reqs []PurchaseItemRequest) (*BatchResult, error) {
	items := make([]models.PurchaseItem, 0, len(reqs))
	refs := make([]models.LineItemRef, 0, len(reqs))
	for _, r := range reqs {
		item := r.LineItemRequest.toPurchaseItem(r.InvoicePurchaseID.Int64(), r.LineItemID)
		items = append(items, item)
		refs = append(refs, models.LineItemRef{InvoiceID: item.InvoicePurchaseID, LineItemID: item.LineItemID})
	}

	return s.commitBatch(ctx, kindPurchase, idempotencyKey, refs, func(ctx context.Context) error {
		return s.store.CreatePurchaseItems(ctx, items)
	})
}

// commitBatch wraps a batch insert with idempotency, metrics and the commit event
func (s *DetailService) commitBatch(
	ctx context.Context,
	kind, idempotencyKey string,
	refs []models.LineItemRef,
	insert func(context.Context) error,
) (result *BatchResult, err error) {
	ctx, span := util.StartSpan(ctx, "DetailService.commitBatch",
		attribute.String("kind", kind),
		attribute.Int("items", len(refs)))
	defer func() { util.EndSpan(span, err) }()

	if len(refs) == 0 {
		return nil, apperr.Validation("at least one line item is required")
	}

	key, replay, release, err := s.claimIdempotencyKey(ctx, kind, idempotencyKey)
	if err != nil {
		return nil, err
	}
	defer release()
	if replay {
		util.IdempotentReplaysTotal.Inc()
		s.logger.Info("Duplicate batch request detected",
			zap.String("kind", kind),
			zap.String("idempotency_key", idempotencyKey))
		return &BatchResult{Count: len(refs), Replayed: true}, nil
	}

	start := time.Now()
	err = insert(ctx)
	util.LineItemBatchLatency.WithLabelValues(kind).Observe(time.Since(start).Seconds())
	if err != nil {
		util.LineItemBatchesTotal.WithLabelValues(kind, "failed").Inc()
		fields := []zap.Field{zap.String("kind", kind), zap.Int("items", len(refs)), zap.Error(err)}
		if typed := apperr.As(err); typed != nil && typed.Details() != nil {
			fields = append(fields, zap.Any("details", typed.Details()))
		}
		s.logger.Error("Line item batch rolled back", fields...)
		return nil, err
	}

	util.LineItemBatchesTotal.WithLabelValues(kind, "committed").Inc()
	util.LineItemsCommittedTotal.WithLabelValues(kind).Add(float64(len(refs)))
	s.logger.Info("Line item batch committed", zap.String("kind", kind), zap.Int("items", len(refs)))

	if key != "" {
		if err := s.idempotency.SetIdempotencyKey(ctx, key, len(refs), s.idempotencyTTL); err != nil {
			s.logger.Warn("Failed to store idempotency key", zap.String("key", key), zap.Error(err))
		}
	}

	s.publishCommitted(ctx, kind, refs)
	return &BatchResult{Count: len(refs)}, nil
}

// claimIdempotencyKey reports whether the request was already served and, if
// not, holds a short lock on the key until release is called. Cache outages
// degrade to a plain, non-idempotent write.
func (s *DetailService) claimIdempotencyKey(ctx context.Context, kind, idempotencyKey string) (key string, replay bool, release func(), err error) {
	release = func() {}
	if idempotencyKey == "" || s.idempotency == nil {
		return "", false, release, nil
	}
	key = kind + ":" + idempotencyKey

	seen, err := s.idempotency.CheckIdempotencyKey(ctx, key)
	if err != nil {
		s.logger.Warn("Idempotency check failed, continuing without it", zap.Error(err))
		return "", false, release, nil
	}
	if seen {
		return key, true, release, nil
	}

	locked, err := s.idempotency.AcquireLock(ctx, key, batchLockTTL)
	if err != nil {
		s.logger.Warn("Idempotency lock failed, continuing without it", zap.Error(err))
		return "", false, release, nil
	}
	if !locked {
		return "", false, release, apperr.New(apperr.CodeConflict,
			"a request with this idempotency key is already in progress")
	}
	release = func() {
		if err := s.idempotency.ReleaseLock(ctx, key); err != nil {
			s.logger.Warn("Failed to release idempotency lock", zap.String("key", key), zap.Error(err))
		}
	}

	// the first request may have finished between the check and the lock
	seen, err = s.idempotency.CheckIdempotencyKey(ctx, key)
	if err == nil && seen {
		return key, true, release, nil
	}
	return key, false, release, nil
}

func (s *DetailService) publishCommitted(ctx context.Context, kind string, refs []models.LineItemRef) {
	eventType := models.EventTypeSaleItemsCommitted
	if kind == kindPurchase {
		eventType = models.EventTypePurchaseItemsCommitted
	}

	invoiceIDs := make([]int64, 0, 1)
	seen := make(map[int64]bool)
	for _, ref := range refs {
		if !seen[ref.InvoiceID] {
			seen[ref.InvoiceID] = true
			invoiceIDs = append(invoiceIDs, ref.InvoiceID)
		}
	}

	event := &models.ItemsCommittedEvent{
		BaseEvent:  newBaseEvent(eventType),
		InvoiceIDs: invoiceIDs,
		Items:      refs,
		Count:      len(refs),
	}
	if err := s.publisher.PublishItemsCommitted(ctx, event); err != nil {
		logPublishFailure(s.logger, eventType, err)
		return
	}
	recordPublished(eventType)
}

func (s *DetailService) ListSaleItems(ctx context.Context) ([]models.SaleItem, error) {
	return s.store.ListSaleItems(ctx)
}

// ListSaleItemsByInvoice returns the lines of one sale invoice ordered by line id
func (s *DetailService) ListSaleItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.SaleItem, error) {
	return s.store.ListSaleItemsByInvoice(ctx, invoiceID)
}

func (s *DetailService) GetSaleItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.SaleItem, error) {
	return s.store.GetSaleItem(ctx, invoiceID, lineItemID)
}

func (s *DetailService) UpdateSaleItem(ctx context.Context, invoiceID int64, lineItemID string, req *LineItemRequest) (*models.SaleItem, error) {
	item := req.toSaleItem(invoiceID, lineItemID)
	if err := s.store.UpdateSaleItem(ctx, &item); err != nil {
		return nil, err
	}
	recordWrite("sale_item", "update")
	return &item, nil
}

func (s *DetailService) DeleteSaleItem(ctx context.Context, invoiceID int64, lineItemID string) error {
	if err := s.store.DeleteSaleItem(ctx, invoiceID, lineItemID); err != nil {
		return err
	}
	recordWrite("sale_item", "delete")
	return nil
}

func (s *DetailService) ListPurchaseItems(ctx context.Context) ([]models.PurchaseItem, error) {
	return s.store.ListPurchaseItems(ctx)
}

func (s *DetailService) ListPurchaseItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.PurchaseItem, error) {
	return s.store.ListPurchaseItemsByInvoice(ctx, invoiceID)
}

func (s *DetailService) GetPurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.PurchaseItem, error) {
	return s.store.GetPurchaseItem(ctx, invoiceID, lineItemID)
}

func (s *DetailService) UpdatePurchaseItem(ctx context.Context, invoiceID int64, lineItemID string, req *LineItemRequest) (*models.PurchaseItem, error) {
	item := req.toPurchaseItem(invoiceID, lineItemID)
	if err := s.store.UpdatePurchaseItem(ctx, &item); err != nil {
		return nil, err
	}
	recordWrite("purchase_item", "update")
	return &item, nil
}

func (s *DetailService) DeletePurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) error {
	if err := s.store.DeletePurchaseItem(ctx, invoiceID, lineItemID); err != nil {
		return err
	}
	recordWrite("purchase_item", "delete")
	return nil
}
