package api

import (
	"context"
	"net/http"
	"time"

	"halcon-service/internal/models"
	"halcon-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type ProductService interface {
	List(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req *service.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *service.ProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
}

type CustomerService interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, req *service.CustomerRequest) (*models.Customer, error)
	Update(ctx context.Context, id int64, req *service.CustomerRequest) (*models.Customer, error)
	Delete(ctx context.Context, id int64) error
}

type ProviderService interface {
	List(ctx context.Context) ([]models.Provider, error)
	Get(ctx context.Context, id string) (*models.Provider, error)
	Create(ctx context.Context, req *service.CreateProviderRequest) (*models.Provider, error)
	Update(ctx context.Context, id string, req *service.ProviderRequest) (*models.Provider, error)
	Delete(ctx context.Context, id string) error
}

type EmployeeService interface {
	List(ctx context.Context) ([]models.Employee, error)
	Get(ctx context.Context, id int64) (*models.Employee, error)
	Create(ctx context.Context, req *service.EmployeeRequest) (*models.Employee, error)
	Update(ctx context.Context, id int64, req *service.EmployeeRequest) (*models.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type InvoiceService interface {
	ListSales(ctx context.Context) ([]models.SaleInvoice, error)
	GetSale(ctx context.Context, id int64) (*models.SaleInvoice, error)
	CreateSale(ctx context.Context, req *service.SaleInvoiceRequest) (*models.SaleInvoice, error)
	UpdateSale(ctx context.Context, id int64, req *service.SaleInvoiceRequest) (*models.SaleInvoice, error)
	DeleteSale(ctx context.Context, id int64) error

	ListPurchases(ctx context.Context) ([]models.PurchaseInvoice, error)
	GetPurchase(ctx context.Context, id int64) (*models.PurchaseInvoice, error)
	CreatePurchase(ctx context.Context, req *service.PurchaseInvoiceRequest) (*models.PurchaseInvoice, error)
	UpdatePurchase(ctx context.Context, id int64, req *service.PurchaseInvoiceRequest) (*models.PurchaseInvoice, error)
	DeletePurchase(ctx context.Context, id int64) error
}

type DetailService interface {
	CreateSaleItems(ctx context.Context, idempotencyKey string, reqs []service.SaleItemRequest) (*service.BatchResult, error)
	ListSaleItems(ctx context.Context) ([]models.SaleItem, error)
	ListSaleItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.SaleItem, error)
	GetSaleItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.SaleItem, error)
	UpdateSaleItem(ctx context.Context, invoiceID int64, lineItemID string, req *service.LineItemRequest) (*models.SaleItem, error)
	DeleteSaleItem(ctx context.Context, invoiceID int64, lineItemID string) error

	CreatePurchaseItems(ctx context.Context, idempotencyKey string, reqs []service.PurchaseItemRequest) (*service.BatchResult, error)
	ListPurchaseItems(ctx context.Context) ([]models.PurchaseItem, error)
	ListPurchaseItemsByInvoice(ctx context.Context, invoiceID int64) ([]models.PurchaseItem, error)
	GetPurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) (*models.PurchaseItem, error)
	UpdatePurchaseItem(ctx context.Context, invoiceID int64, lineItemID string, req *service.LineItemRequest) (*models.PurchaseItem, error)
	DeletePurchaseItem(ctx context.Context, invoiceID int64, lineItemID string) error
}

type PawnService interface {
	List(ctx context.Context) ([]models.PawnListing, error)
	Get(ctx context.Context, id int64) (*models.Pawn, error)
	Create(ctx context.Context, req *service.PawnRequest) (*models.Pawn, error)
	Update(ctx context.Context, id int64, req *service.PawnRequest) (*models.Pawn, error)
	Delete(ctx context.Context, id int64) error
}

// AuditReader serves the recorded event trail of an aggregate
type AuditReader interface {
	ListAuditEvents(ctx context.Context, aggregate, aggregateID string) ([]models.AuditEvent, error)
}

// Pinger reports whether the database pool can serve queries
type Pinger interface {
	Ping(ctx context.Context) error
}

// Services groups everything the HTTP layer depends on
type Services struct {
	Products  ProductService
	Customers CustomerService
	Providers ProviderService
	Employees EmployeeService
	Invoices  InvoiceService
	Details   DetailService
	Pawns     PawnService
	Audit     AuditReader
	DB        Pinger
}

// Handler contains HTTP handlers
type Handler struct {
	Services
	clientOrigin string
	logger       *zap.Logger
}

// NewHandler creates a new HTTP handler. clientOrigin is the only origin
// allowed by CORS; empty disables the CORS headers.
func NewHandler(services Services, clientOrigin string, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		Services:     services,
		clientOrigin: clientOrigin,
		logger:       logger,
	}
}

// SetupRoutes sets up HTTP routes
func (h *Handler) SetupRoutes(router *gin.Engine) {
	router.Use(requestID())
	router.Use(h.recovery())
	router.Use(prometheusMiddleware())
	router.Use(h.accessLog())
	router.Use(cors(h.clientOrigin))

	router.GET("/health", h.healthCheck)
	router.GET("/ready", h.readinessCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	{
		api.GET("/products", h.listProducts)
		api.POST("/products", h.createProduct)
		api.GET("/products/:id", h.getProduct)
		api.PUT("/products/:id", h.updateProduct)
		api.DELETE("/products/:id", h.deleteProduct)

		api.GET("/customers", h.listCustomers)
		api.POST("/customers", h.createCustomer)
		api.GET("/customers/:id", h.getCustomer)
		api.PUT("/customers/:id", h.updateCustomer)
		api.DELETE("/customers/:id", h.deleteCustomer)

		api.GET("/providers", h.listProviders)
		api.POST("/providers", h.createProvider)
		api.GET("/providers/:id", h.getProvider)
		api.PUT("/providers/:id", h.updateProvider)
		api.DELETE("/providers/:id", h.deleteProvider)

		api.GET("/employees", h.listEmployees)
		api.POST("/employees", h.createEmployee)
		api.GET("/employees/:id", h.getEmployee)
		api.PUT("/employees/:id", h.updateEmployee)
		api.DELETE("/employees/:id", h.deleteEmployee)

		api.GET("/saleinvoices", h.listSaleInvoices)
		api.POST("/saleinvoices", h.createSaleInvoice)
		api.GET("/saleinvoices/:id", h.getSaleInvoice)
		api.PUT("/saleinvoices/:id", h.updateSaleInvoice)
		api.DELETE("/saleinvoices/:id", h.deleteSaleInvoice)

		api.GET("/purchaseinvoices", h.listPurchaseInvoices)
		api.POST("/purchaseinvoices", h.createPurchaseInvoice)
		api.GET("/purchaseinvoices/:id", h.getPurchaseInvoice)
		api.PUT("/purchaseinvoices/:id", h.updatePurchaseInvoice)
		api.DELETE("/purchaseinvoices/:id", h.deletePurchaseInvoice)

		api.GET("/sales", h.listSaleItems)
		api.POST("/sales", h.createSaleItems)
		api.GET("/sales/:invoiceId", h.listSaleItemsByInvoice)
		api.GET("/sales/detail/:invoiceId/:lineItemId", h.getSaleItem)
		api.PUT("/sales/detail/:invoiceId/:lineItemId", h.updateSaleItem)
		api.DELETE("/sales/detail/:invoiceId/:lineItemId", h.deleteSaleItem)

		api.GET("/purchases", h.listPurchaseItems)
		api.POST("/purchases", h.createPurchaseItems)
		api.GET("/purchases/:invoiceId", h.listPurchaseItemsByInvoice)
		api.GET("/purchases/detail/:invoiceId/:lineItemId", h.getPurchaseItem)
		api.PUT("/purchases/detail/:invoiceId/:lineItemId", h.updatePurchaseItem)
		api.DELETE("/purchases/detail/:invoiceId/:lineItemId", h.deletePurchaseItem)

		api.GET("/pawns", h.listPawns)
		api.POST("/pawns", h.createPawn)
		api.GET("/pawns/:id", h.getPawn)
		api.PUT("/pawns/:id", h.updatePawn)
		api.DELETE("/pawns/:id", h.deletePawn)

		if h.Audit != nil {
			api.GET("/audit/:aggregate/:id", h.listAuditEvents)
		}
	}
}

// healthCheck handles health check requests
func (h *Handler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().Unix(),
	})
}

// readinessCheck reports ready only while the database answers
func (h *Handler) readinessCheck(c *gin.Context) {
	if h.DB != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := h.DB.Ping(ctx); err != nil {
			h.logger.Warn("Readiness check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unavailable",
				"time":   time.Now().Unix(),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now().Unix(),
	})
}

func (h *Handler) listAuditEvents(c *gin.Context) {
	events, err := h.Audit.ListAuditEvents(c.Request.Context(), c.Param("aggregate"), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, events)
}
