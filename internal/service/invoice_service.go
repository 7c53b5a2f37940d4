package service

import (
	"context"

	"halcon-service/internal/models"
	"halcon-service/internal/util"

	"go.uber.org/zap"
)

// InvoiceStore is the persistence needed by InvoiceService
type InvoiceStore interface {
	ListSaleInvoices(ctx context.Context) ([]models.SaleInvoice, error)
	GetSaleInvoice(ctx context.Context, id int64) (*models.SaleInvoice, error)
	CreateSaleInvoice(ctx context.Context, inv *models.SaleInvoice) error
	UpdateSaleInvoice(ctx context.Context, inv *models.SaleInvoice) error
	DeleteSaleInvoice(ctx context.Context, id int64) error

	ListPurchaseInvoices(ctx context.Context) ([]models.PurchaseInvoice, error)
	GetPurchaseInvoice(ctx context.Context, id int64) (*models.PurchaseInvoice, error)
	CreatePurchaseInvoice(ctx context.Context, inv *models.PurchaseInvoice) error
	UpdatePurchaseInvoice(ctx context.Context, inv *models.PurchaseInvoice) error
	DeletePurchaseInvoice(ctx context.Context, id int64) error
}

// InvoiceService handles sale and purchase invoice headers. Totals are stored
// as given and are not reconciled with the line items.
type InvoiceService struct {
	store  InvoiceStore
	logger *zap.Logger
}

func NewInvoiceService(store InvoiceStore) *InvoiceService {
	return &InvoiceService{
		store:  store,
		logger: util.GetLogger(),
	}
}

func (s *InvoiceService) ListSales(ctx context.Context) ([]models.SaleInvoice, error) {
	return s.store.ListSaleInvoices(ctx)
}

func (s *InvoiceService) GetSale(ctx context.Context, id int64) (*models.SaleInvoice, error) {
	return s.store.GetSaleInvoice(ctx, id)
}

func (s *InvoiceService) CreateSale(ctx context.Context, req *SaleInvoiceRequest) (*models.SaleInvoice, error) {
	inv := req.toModel(0)
	if err := s.store.CreateSaleInvoice(ctx, inv); err != nil {
		return nil, err
	}

	recordWrite("sale_invoice", "create")
	s.logger.Info("Sale invoice created",
		zap.Int64("invoice_sale_id", inv.InvoiceSaleID),
		zap.String("provider_id", inv.ProviderID))
	return inv, nil
}

func (s *InvoiceService) UpdateSale(ctx context.Context, id int64, req *SaleInvoiceRequest) (*models.SaleInvoice, error) {
	inv := req.toModel(id)
	if err := s.store.UpdateSaleInvoice(ctx, inv); err != nil {
		return nil, err
	}

	recordWrite("sale_invoice", "update")
	return inv, nil
}

// DeleteSale removes a sale invoice. It fails with a conflict while line
// items still reference it.
func (s *InvoiceService) DeleteSale(ctx context.Context, id int64) error {
	if err := s.store.DeleteSaleInvoice(ctx, id); err != nil {
		return err
	}

	recordWrite("sale_invoice", "delete")
	s.logger.Info("Sale invoice deleted", zap.Int64("invoice_sale_id", id))
	return nil
}

func (s *InvoiceService) ListPurchases(ctx context.Context) ([]models.PurchaseInvoice, error) {
	return s.store.ListPurchaseInvoices(ctx)
}

func (s *InvoiceService) GetPurchase(ctx context.Context, id int64) (*models.PurchaseInvoice, error) {
	return s.store.GetPurchaseInvoice(ctx, id)
}

func (s *InvoiceService) CreatePurchase(ctx context.Context, req *PurchaseInvoiceRequest) (*models.PurchaseInvoice, error) {
	inv := req.toModel(0)
	if err := s.store.CreatePurchaseInvoice(ctx, inv); err != nil {
		return nil, err
	}

	recordWrite("purchase_invoice", "create")
	s.logger.Info("Purchase invoice created",
		zap.Int64("invoice_purchase_id", inv.InvoicePurchaseID),
		zap.Int64("customer_id", inv.CustomerID))
	return inv, nil
}

func (s *InvoiceService) UpdatePurchase(ctx context.Context, id int64, req *PurchaseInvoiceRequest) (*models.PurchaseInvoice, error) {
	inv := req.toModel(id)
	if err := s.store.UpdatePurchaseInvoice(ctx, inv); err != nil {
		return nil, err
	}

	recordWrite("purchase_invoice", "update")
	return inv, nil
}

func (s *InvoiceService) DeletePurchase(ctx context.Context, id int64) error {
	if err := s.store.DeletePurchaseInvoice(ctx, id); err != nil {
		return err
	}

	recordWrite("purchase_invoice", "delete")
	s.logger.Info("Purchase invoice deleted", zap.Int64("invoice_purchase_id", id))
	return nil
}
