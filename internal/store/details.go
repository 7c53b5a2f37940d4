package store

import (
	"context"
	"fmt"

	"halcon-service/internal/apperr"
	"halcon-service/internal/models"

	"github.com/jmoiron/sqlx"
)

const (
	saleItemColumns     = `invoice_sale_id, line_item_id, quantity, price, sub_total, product_id`
	purchaseItemColumns = `invoice_purchase_id, line_item_id, quantity, price, sub_total, product_id`

	insertSaleItemQuery = `
		INSERT INTO pawn.detail_sales (` + saleItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
	insertPurchaseItemQuery = `
		INSERT INTO pawn.detail_purchases (` + purchaseItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6)`
)

// batchRow is one prepared insert of a line-item batch
type batchRow struct {
	invoiceID  int64
	lineItemID string
	args       []any
}

// insertBatch inserts rows in order inside a single transaction. Either every
// row is committed or none is.
func (s *Store) insertBatch(ctx context.Context, resource, query string, rows []batchRow) error {
	if len(rows) == 0 {
		return apperr.Validation("at least one line item is required")
	}

	return s.withTx(ctx, func(tx *sqlx.Tx) error {
		for i, row := range rows {
			if _, err := tx.ExecContext(ctx, query, row.args...); err != nil {
				return apperr.Wrap(apperr.CodeStore, err,
					fmt.Sprintf("failed to insert %s %d of %d", resource, i+1, len(rows))).
					WithDetails(map[string]any{
						"position":     i + 1,
						"invoice_id":   row.invoiceID,
						"line_item_id": row.lineItemID,
					})
			}
		}
		return nil
	})
}

// CreateSaleItems inserts a batch of sale line items atomically
func (s *Store) CreateSaleItems(ctx context.Context, items []models.SaleItem) error {
	rows := make([]batchRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, batchRow{
			invoiceID:  it.InvoiceSaleID,
			lineItemID: it.LineItemID,
			args:       []any{it.InvoiceSaleID, it.LineItemID, it.Quantity, it.Price, it.SubTotal, it.ProductID},
		})
	}
	return s.insertBatch(ctx, "sale item", insertSaleItemQuery, rows)
}

// CreatePurchaseItems inserts a batch of purchase line items atomically
func (s *Store) CreatePurchaseItems(ctx context.Context, items []models.PurchaseItem) error {
	rows := make([]batchRow, 0, len(items))
	for _, it := range items {
		rows = append(rows, batchRow{
			invoiceID:  it.InvoicePurchaseID,
			lineItemID: it.LineItemID,
			args:       []any{it.InvoicePurchaseID, it.LineItemID, it.Quantity, it.Price, it.SubTotal, it.ProductID},
		})
	}
	return s.insertBatch(ctx, "purchase item", insertPurchaseItemQuery, rows)
}

func (s *Store) ListSaleItems(ctx context.Context) ([]models.SaleItem, error) {
	items := []models.SaleItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT "+saleItemColumns+" FROM pawn.detail_sales ORDER BY invoice_sale_id, line_item_id")
	if err != nil {
		return nil, translateError(err, "sale item", nil)
	}
	return items, nil
}

// ListSaleItemsByInvoice returns the lines of one invoice ordered by line id
func (s *Store) ListSaleItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.SaleItem, error) {
	items := []models.SaleItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT "+saleItemColumns+" FROM pawn.detail_sales WHERE invoice_sale_id = $1 ORDER BY line_item_id",
		invoiceID)
	if err != nil {
		return nil, translateError(err, "sale item", invoiceID)
	}
	return items, nil
}

func (s *Store) GetSaleItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.SaleItem, error) {
	var item models.SaleItem
	err := s.db.GetContext(ctx, &item,
		"SELECT "+saleItemColumns+" FROM pawn.detail_sales WHERE invoice_sale_id = $1 AND line_item_id = $2",
		invoiceID, lineItemID)
	if err != nil {
		return nil, translateError(err, "sale item", lineKey(invoiceID, lineItemID))
	}
	return &item, nil
}

func (s *Store) UpdateSaleItem(ctx context.Context, item *models.SaleItem) error {
	query := `
		UPDATE pawn.detail_sales
		SET quantity = $3, price = $4, sub_total = $5, product_id = $6
		WHERE invoice_sale_id = $1 AND line_item_id = $2
		RETURNING ` + saleItemColumns

	err := s.db.GetContext(ctx, item, query,
		item.InvoiceSaleID, item.LineItemID, item.Quantity, item.Price, item.SubTotal, item.ProductID)
	return translateError(err, "sale item", lineKey(item.InvoiceSaleID, item.LineItemID))
}

func (s *Store) DeleteSaleItem(ctx context.Context, invoiceID int64, lineItemID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM pawn.detail_sales WHERE invoice_sale_id = $1 AND line_item_id = $2",
		invoiceID, lineItemID)
	if err != nil {
		return translateError(err, "sale item", lineKey(invoiceID, lineItemID))
	}
	return expectAffected(res, "sale item", lineKey(invoiceID, lineItemID))
}

func (s *Store) ListPurchaseItems(ctx context.Context) ([]models.PurchaseItem, error) {
	items := []models.PurchaseItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT "+purchaseItemColumns+" FROM pawn.detail_purchases ORDER BY invoice_purchase_id, line_item_id")
	if err != nil {
		return nil, translateError(err, "purchase item", nil)
	}
	return items, nil
}

func (s *Store) ListPurchaseItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.PurchaseItem, error) {
	items := []models.PurchaseItem{}
	err := s.db.SelectContext(ctx, &items,
		"SELECT "+purchaseItemColumns+" FROM pawn.detail_purchases WHERE invoice_purchase_id = $1 ORDER BY line_item_id",
		invoiceID)
	if err != nil {
		return nil, translateError(err, "purchase item", invoiceID)
	}
	return items, nil
}

func (s *Store) GetPurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.PurchaseItem, error) {
	var item models.PurchaseItem
	err := s.db.GetContext(ctx, &item,
		"SELECT "+purchaseItemColumns+" FROM pawn.detail_purchases WHERE invoice_purchase_id = $1 AND line_item_id = $2",
		invoiceID, lineItemID)
	if err != nil {
		return nil, translateError(err, "purchase item", lineKey(invoiceID, lineItemID))
	}
	return &item, nil
}

func (s *Store) UpdatePurchaseItem(ctx context.Context, item *models.PurchaseItem) error {
	query := `
		UPDATE pawn.detail_purchases
		SET quantity = $3, price = $4, sub_total = $5, product_id = $6
		WHERE invoice_purchase_id = $1 AND line_item_id = $2
		RETURNING ` + purchaseItemColumns

	err := s.db.GetContext(ctx, item, query,
		item.InvoicePurchaseID, item.LineItemID, item.Quantity, item.Price, item.SubTotal, item.ProductID)
	return translateError(err, "purchase item", lineKey(item.InvoicePurchaseID, item.LineItemID))
}

func (s *Store) DeletePurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) error {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM pawn.detail_purchases WHERE invoice_purchase_id = $1 AND line_item_id = $2",
		invoiceID, lineItemID)
	if err != nil {
		return translateError(err, "purchase item", lineKey(invoiceID, lineItemID))
	}
	return expectAffected(res, "purchase item", lineKey(invoiceID, lineItemID))
}

func lineKey(invoiceID int64, lineItemID string) string {
	return fmt.Sprintf("%d/%s", invoiceID, lineItemID)
}
