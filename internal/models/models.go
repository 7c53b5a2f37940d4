package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

func init() {
	// Clients post and read amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product status codes
const (
	ProductStatusActive   = "A"
	ProductStatusInactive = "I"
)

// Product represents an item in the shop catalog
type Product struct {
	ProductID    string  `db:"product_id" json:"product_id"`
	ProductName  string  `db:"product_name" json:"product_name"`
	Stock        int     `db:"stock" json:"stock"`
	Brand        string  `db:"brand" json:"brand"`
	Status       string  `db:"status" json:"status"`
	Image        *string `db:"image" json:"image"`
	JewelryID    *int64  `db:"jewelry_id" json:"jewelry_id"`
	NonJewelryID *int64  `db:"non_jewelry_id" json:"non_jewelry_id"`
}

// Customer is the counterparty of purchase invoices and pawns
type Customer struct {
	CustomerID   int64   `db:"customer_id" json:"customer_id"`
	FirstName    string  `db:"first_name" json:"first_name"`
	MiddleName   *string `db:"middle_name" json:"middle_name"`
	LastName     string  `db:"last_name" json:"last_name"`
	Address      string  `db:"address" json:"address"`
	Phone        string  `db:"phone" json:"phone"`
	Email        *string `db:"email" json:"email"`
	CountryID    string  `db:"country_id" json:"country_id"`
	DepartmentID string  `db:"department_id" json:"department_id"`
	CityID       string  `db:"city_id" json:"city_id"`
	DocumentID   string  `db:"document_id" json:"document_id"`
}

// Provider is the counterparty of sale invoices
type Provider struct {
	ProviderID   string  `db:"provider_id" json:"provider_id"`
	FirstName    string  `db:"first_name" json:"first_name"`
	MiddleName   *string `db:"middle_name" json:"middle_name"`
	LastName     string  `db:"last_name" json:"last_name"`
	Phone        string  `db:"phone" json:"phone"`
	Email        *string `db:"email" json:"email"`
	Address      string  `db:"address" json:"address"`
	CountryID    string  `db:"country_id" json:"country_id"`
	DepartmentID string  `db:"department_id" json:"department_id"`
	CityID       string  `db:"city_id" json:"city_id"`
}

// Employee is a staff member. MgrID points at another employee and is never
// followed by the service, so cycles are tolerated.
type Employee struct {
	EmployeeID      int64           `db:"employee_id" json:"employee_id"`
	FirstName       string          `db:"first_name" json:"first_name"`
	MiddleName      *string         `db:"middle_name" json:"middle_name"`
	LastName        string          `db:"last_name" json:"last_name"`
	Phone           string          `db:"phone" json:"phone"`
	Email           *string         `db:"email" json:"email"`
	Address         string          `db:"address" json:"address"`
	Salary          decimal.Decimal `db:"salary" json:"salary"`
	ExperienceYears *int            `db:"experience_years" json:"experience_years"`
	ExpertiseLevel  *int            `db:"expertise_level" json:"expertise_level"`
	Speciality      *string         `db:"speciality" json:"speciality"`
	Certification   *string         `db:"certification" json:"certification"`
	EmpType         string          `db:"emp_type" json:"emp_type"`
	MgrID           *int64          `db:"mgr_id" json:"mgr_id"`
}

// SaleInvoice is the header of a sale. Its counterparty is a provider.
type SaleInvoice struct {
	InvoiceSaleID int64           `db:"invoice_sale_id" json:"invoice_sale_id"`
	Date          Date            `db:"date" json:"date"`
	Total         decimal.Decimal `db:"total" json:"total"`
	CommentSales  string          `db:"comment_sales" json:"comment_sales"`
	ProviderID    string          `db:"provider_id" json:"provider_id"`
	PaymentID     string          `db:"payment_id" json:"payment_id"`
	EmployeeID    int64           `db:"employee_id" json:"employee_id"`
}

// PurchaseInvoice is the header of a purchase. Its counterparty is a customer.
type PurchaseInvoice struct {
	InvoicePurchaseID int64           `db:"invoice_purchase_id" json:"invoice_purchase_id"`
	Date              Date            `db:"date" json:"date"`
	Total             decimal.Decimal `db:"total" json:"total"`
	CommentPurchases  string          `db:"comment_purchases" json:"comment_purchases"`
	CustomerID        int64           `db:"customer_id" json:"customer_id"`
	PaymentID         string          `db:"payment_id" json:"payment_id"`
	EmployeeID        int64           `db:"employee_id" json:"employee_id"`
}

// SaleItem is one line of a sale invoice, keyed by (InvoiceSaleID, LineItemID)
type SaleItem struct {
	InvoiceSaleID int64           `db:"invoice_sale_id" json:"invoice_sale_id"`
	LineItemID    string          `db:"line_item_id" json:"line_item_id"`
	Quantity      int             `db:"quantity" json:"quantity"`
	Price         decimal.Decimal `db:"price" json:"price"`
	SubTotal      decimal.Decimal `db:"sub_total" json:"sub_total"`
	ProductID     string          `db:"product_id" json:"product_id"`
}

// PurchaseItem is one line of a purchase invoice, keyed by (InvoicePurchaseID, LineItemID)
type PurchaseItem struct {
	InvoicePurchaseID int64           `db:"invoice_purchase_id" json:"invoice_purchase_id"`
	LineItemID        string          `db:"line_item_id" json:"line_item_id"`
	Quantity          int             `db:"quantity" json:"quantity"`
	Price             decimal.Decimal `db:"price" json:"price"`
	SubTotal          decimal.Decimal `db:"sub_total" json:"sub_total"`
	ProductID         string          `db:"product_id" json:"product_id"`
}

// Pawn is a pawn transaction. CtrID references the customer, EpeID the employee.
type Pawn struct {
	PawnID         int64           `db:"pawn_id" json:"pawn_id"`
	PawnDate       Date            `db:"pawn_date" json:"pawn_date"`
	ReturnDate     *Date           `db:"return_date" json:"return_date"`
	ExpirationDate Date            `db:"expiration_date" json:"expiration_date"`
	FeeRate        decimal.Decimal `db:"fee_rate" json:"fee_rate"`
	TotalAmount    decimal.Decimal `db:"total_amount" json:"total_amount"`
	Status         string          `db:"status" json:"status"`
	CtrID          int64           `db:"ctr_id" json:"ctr_id"`
	EpeID          int64           `db:"epe_id" json:"epe_id"`
}

// PawnListing is a pawn with the display names of its customer and employee
type PawnListing struct {
	Pawn
	CustomerName string `db:"customer_name" json:"customer_name"`
	EmployeeName string `db:"employee_name" json:"employee_name"`
}

// AuditEvent is an immutable record of a domain event
type AuditEvent struct {
	EventID     string         `db:"event_id" json:"event_id"`
	EventType   string         `db:"event_type" json:"event_type"`
	Aggregate   string         `db:"aggregate" json:"aggregate"`
	AggregateID string         `db:"aggregate_id" json:"aggregate_id"`
	Payload     types.JSONText `db:"payload" json:"payload"`
	OccurredAt  time.Time      `db:"occurred_at" json:"occurred_at"`
	RecordedAt  time.Time      `db:"recorded_at" json:"recorded_at"`
}

// PawnStatusCount is one row of the per-status pawn statistics
type PawnStatusCount struct {
	Status string `db:"status"`
	Count  int64  `db:"count"`
}
