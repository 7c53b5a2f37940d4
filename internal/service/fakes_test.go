package service

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"halcon-service/internal/apperr"
	"halcon-service/internal/models"
)

// fakeDetailStore keeps committed batches in memory and can fail a batch at
// a given position to mimic a rolled back transaction.
type fakeDetailStore struct {
	mu        sync.Mutex
	sales     []models.SaleItem
	purchases []models.PurchaseItem
	failAt    int
	calls     int
}

func (f *fakeDetailStore) CreateSaleItems(_ context.Context, items []models.SaleItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(items) == 0 {
		return apperr.Validation("at least one line item is required")
	}
	if f.failAt > 0 && f.failAt <= len(items) {
		return apperr.Wrap(apperr.CodeStore, errors.New("insert failed"), "failed to insert sale item").
			WithDetails(map[string]any{"position": f.failAt, "line_item_id": items[f.failAt-1].LineItemID})
	}
	f.sales = append(f.sales, items...)
	return nil
}

func (f *fakeDetailStore) ListSaleItems(context.Context) ([]models.SaleItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.SaleItem{}, f.sales...), nil
}

func (f *fakeDetailStore) ListSaleItemsByInvoice(_ context.Context, invoiceID int64) ([]models.SaleItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.SaleItem{}
	for _, it := range f.sales {
		if it.InvoiceSaleID == invoiceID {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LineItemID < out[j].LineItemID })
	return out, nil
}

func (f *fakeDetailStore) GetSaleItem(_ context.Context, invoiceID int64, lineItemID string) (*models.SaleItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, it := range f.sales {
		if it.InvoiceSaleID == invoiceID && it.LineItemID == lineItemID {
			item := it
			return &item, nil
		}
	}
	return nil, apperr.NotFound("sale item", lineItemID)
}

func (f *fakeDetailStore) UpdateSaleItem(_ context.Context, item *models.SaleItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.sales {
		if it.InvoiceSaleID == item.InvoiceSaleID && it.LineItemID == item.LineItemID {
			f.sales[i] = *item
			return nil
		}
	}
	return apperr.NotFound("sale item", item.LineItemID)
}

func (f *fakeDetailStore) DeleteSaleItem(_ context.Context, invoiceID int64, lineItemID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.sales {
		if it.InvoiceSaleID == invoiceID && it.LineItemID == lineItemID {
			f.sales = append(f.sales[:i], f.sales[i+1:]...)
			return nil
		}
	}
	return apperr.NotFound("sale item", lineItemID)
}

func (f *fakeDetailStore) CreatePurchaseItems(_ context.Context, items []models.PurchaseItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if len(items) == 0 {
		return apperr.Validation("at least one line item is required")
	}
	f.purchases = append(f.purchases, items...)
	return nil
}

func (f *fakeDetailStore) ListPurchaseItems(context.Context) ([]models.PurchaseItem, error) {
	return f.purchases, nil
}

func (f *fakeDetailStore) ListPurchaseItemsByInvoice(context.Context, int64) ([]models.PurchaseItem, error) {
	return f.purchases, nil
}

func (f *fakeDetailStore) GetPurchaseItem(_ context.Context, _ int64, lineItemID string) (*models.PurchaseItem, error) {
	return nil, apperr.NotFound("purchase item", lineItemID)
}

func (f *fakeDetailStore) UpdatePurchaseItem(_ context.Context, item *models.PurchaseItem) error {
	return apperr.NotFound("purchase item", item.LineItemID)
}

func (f *fakeDetailStore) DeletePurchaseItem(_ context.Context, _ int64, lineItemID string) error {
	return apperr.NotFound("purchase item", lineItemID)
}

// fakeIdempotency is an in-memory IdempotencyStore
type fakeIdempotency struct {
	mu       sync.Mutex
	keys     map[string]interface{}
	locks    map[string]bool
	checkErr error
}

func newFakeIdempotency() *fakeIdempotency {
	return &fakeIdempotency{keys: map[string]interface{}{}, locks: map[string]bool{}}
}

func (f *fakeIdempotency) CheckIdempotencyKey(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.checkErr != nil {
		return false, f.checkErr
	}
	_, ok := f.keys[key]
	return ok, nil
}

func (f *fakeIdempotency) SetIdempotencyKey(_ context.Context, key string, value interface{}, _ time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keys[key] = value
	return nil
}

func (f *fakeIdempotency) AcquireLock(_ context.Context, key string, _ time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locks[key] {
		return false, nil
	}
	f.locks[key] = true
	return true, nil
}

func (f *fakeIdempotency) ReleaseLock(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.locks, key)
	return nil
}

// recordingPublisher captures published events
type recordingPublisher struct {
	mu    sync.Mutex
	items []*models.ItemsCommittedEvent
	pawns []*models.PawnEvent
	err   error
}

func (p *recordingPublisher) PublishItemsCommitted(_ context.Context, e *models.ItemsCommittedEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.items = append(p.items, e)
	return nil
}

func (p *recordingPublisher) PublishPawnEvent(_ context.Context, e *models.PawnEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.pawns = append(p.pawns, e)
	return nil
}

// fakePawnStore is an in-memory PawnStore
type fakePawnStore struct {
	mu     sync.Mutex
	nextID int64
	pawns  map[int64]models.Pawn
}

func newFakePawnStore() *fakePawnStore {
	return &fakePawnStore{pawns: map[int64]models.Pawn{}}
}

func (f *fakePawnStore) ListPawns(context.Context) ([]models.PawnListing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.PawnListing{}
	for _, p := range f.pawns {
		out = append(out, models.PawnListing{Pawn: p})
	}
	return out, nil
}

func (f *fakePawnStore) GetPawn(_ context.Context, id int64) (*models.Pawn, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.pawns[id]
	if !ok {
		return nil, apperr.NotFound("pawn", id)
	}
	return &p, nil
}

func (f *fakePawnStore) CreatePawn(_ context.Context, p *models.Pawn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	p.PawnID = f.nextID
	f.pawns[p.PawnID] = *p
	return nil
}

func (f *fakePawnStore) UpdatePawn(_ context.Context, p *models.Pawn) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pawns[p.PawnID]; !ok {
		return apperr.NotFound("pawn", p.PawnID)
	}
	f.pawns[p.PawnID] = *p
	return nil
}

func (f *fakePawnStore) DeletePawn(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pawns[id]; !ok {
		return apperr.NotFound("pawn", id)
	}
	delete(f.pawns, id)
	return nil
}
