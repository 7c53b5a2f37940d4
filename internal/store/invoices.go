package store

import (
	"context"

	"halcon-service/internal/models"
)

const (
	saleInvoiceColumns     = `invoice_sale_id, date, total, comment_sales, provider_id, payment_id, employee_id`
	purchaseInvoiceColumns = `invoice_purchase_id, date, total, comment_purchases, customer_id, payment_id, employee_id`
)

// ListSaleInvoices returns sale invoices, newest first
func (s *Store) ListSaleInvoices(ctx context.Context) ([]models.SaleInvoice, error) {
	invoices := []models.SaleInvoice{}
	err := s.db.SelectContext(ctx, &invoices,
		"SELECT "+saleInvoiceColumns+" FROM pawn.invoice_sales ORDER BY date DESC, invoice_sale_id DESC")
	if err != nil {
		return nil, translateError(err, "sale invoice", nil)
	}
	return invoices, nil
}

func (s *Store) GetSaleInvoice(ctx context.Context, id int64) (*models.SaleInvoice, error) {
	var invoice models.SaleInvoice
	err := s.db.GetContext(ctx, &invoice,
		"SELECT "+saleInvoiceColumns+" FROM pawn.invoice_sales WHERE invoice_sale_id = $1", id)
	if err != nil {
		return nil, translateError(err, "sale invoice", id)
	}
	return &invoice, nil
}

func (s *Store) CreateSaleInvoice(ctx context.Context, inv *models.SaleInvoice) error {
	query := `
		INSERT INTO pawn.invoice_sales (date, total, comment_sales, provider_id, payment_id, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + saleInvoiceColumns

	err := s.db.GetContext(ctx, inv, query,
		inv.Date, inv.Total, inv.CommentSales, inv.ProviderID, inv.PaymentID, inv.EmployeeID)
	return translateError(err, "sale invoice", nil)
}

func (s *Store) UpdateSaleInvoice(ctx context.Context, inv *models.SaleInvoice) error {
	query := `
		UPDATE pawn.invoice_sales
		SET date = $2, total = $3, comment_sales = $4, provider_id = $5, payment_id = $6, employee_id = $7
		WHERE invoice_sale_id = $1
		RETURNING ` + saleInvoiceColumns

	err := s.db.GetContext(ctx, inv, query,
		inv.InvoiceSaleID, inv.Date, inv.Total, inv.CommentSales, inv.ProviderID, inv.PaymentID, inv.EmployeeID)
	return translateError(err, "sale invoice", inv.InvoiceSaleID)
}

// DeleteSaleInvoice removes the header. Remaining line items block the delete.
func (s *Store) DeleteSaleInvoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.invoice_sales WHERE invoice_sale_id = $1", id)
	if err != nil {
		return translateError(err, "sale invoice", id)
	}
	return expectAffected(res, "sale invoice", id)
}

// ListPurchaseInvoices returns purchase invoices, newest first
func (s *Store) ListPurchaseInvoices(ctx context.Context) ([]models.PurchaseInvoice, error) {
	invoices := []models.PurchaseInvoice{}
	err := s.db.SelectContext(ctx, &invoices,
		"SELECT "+purchaseInvoiceColumns+" FROM pawn.invoice_purchases ORDER BY date DESC, invoice_purchase_id DESC")
	if err != nil {
		return nil, translateError(err, "purchase invoice", nil)
	}
	return invoices, nil
}

func (s *Store) GetPurchaseInvoice(ctx context.Context, id int64) (*models.PurchaseInvoice, error) {
	var invoice models.PurchaseInvoice
	err := s.db.GetContext(ctx, &invoice,
		"SELECT "+purchaseInvoiceColumns+" FROM pawn.invoice_purchases WHERE invoice_purchase_id = $1", id)
	if err != nil {
		return nil, translateError(err, "purchase invoice", id)
	}
	return &invoice, nil
}

func (s *Store) CreatePurchaseInvoice(ctx context.Context, inv *models.PurchaseInvoice) error {
	query := `
		INSERT INTO pawn.invoice_purchases (date, total, comment_purchases, customer_id, payment_id, employee_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + purchaseInvoiceColumns

	err := s.db.GetContext(ctx, inv, query,
		inv.Date, inv.Total, inv.CommentPurchases, inv.CustomerID, inv.PaymentID, inv.EmployeeID)
	return translateError(err, "purchase invoice", nil)
}

func (s *Store) UpdatePurchaseInvoice(ctx context.Context, inv *models.PurchaseInvoice) error {
	query := `
		UPDATE pawn.invoice_purchases
		SET date = $2, total = $3, comment_purchases = $4, customer_id = $5, payment_id = $6, employee_id = $7
		WHERE invoice_purchase_id = $1
		RETURNING ` + purchaseInvoiceColumns

	err := s.db.GetContext(ctx, inv, query,
		inv.InvoicePurchaseID, inv.Date, inv.Total, inv.CommentPurchases, inv.CustomerID, inv.PaymentID, inv.EmployeeID)
	return translateError(err, "purchase invoice", inv.InvoicePurchaseID)
}

func (s *Store) DeletePurchaseInvoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM pawn.invoice_purchases WHERE invoice_purchase_id = $1", id)
	if err != nil {
		return translateError(err, "purchase invoice", id)
	}
	return expectAffected(res, "purchase invoice", id)
}
