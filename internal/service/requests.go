package service

import (
	"halcon-service/internal/models"

	"github.com/shopspring/decimal"
)

// Request bodies are validated at the HTTP boundary through the binding tags.
// Numeric and date fields are pointers so that "required" means present.
// Foreign keys use models.NumericID so form clients may send them as strings;
// zero is never a valid key, so "required" rejects it. Lengths and formats
// are left to the column definitions.

// ProductRequest carries the mutable fields of a product
type ProductRequest struct {
	ProductName  string  `json:"product_name" binding:"required"`
	Stock        *int    `json:"stock" binding:"required,min=0"`
	Brand        string  `json:"brand" binding:"required"`
	Status       string  `json:"status" binding:"required,oneof=A I"`
	Image        *string `json:"image"`
	JewelryID    *int64  `json:"jewelry_id"`
	NonJewelryID *int64  `json:"non_jewelry_id"`
}

// CreateProductRequest adds the caller-supplied product ID
type CreateProductRequest struct {
	ProductID string `json:"product_id" binding:"required"`
	ProductRequest
}

func (r ProductRequest) toModel(id string) *models.Product {
	return &models.Product{
		ProductID:    id,
		ProductName:  r.ProductName,
		Stock:        derefInt(r.Stock),
		Brand:        r.Brand,
		Status:       r.Status,
		Image:        r.Image,
		JewelryID:    r.JewelryID,
		NonJewelryID: r.NonJewelryID,
	}
}

// CustomerRequest carries the mutable fields of a customer
type CustomerRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	MiddleName   *string `json:"middle_name"`
	LastName     string  `json:"last_name" binding:"required"`
	Address      string  `json:"address" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Email        *string `json:"email"`
	CountryID    string  `json:"country_id" binding:"required"`
	DepartmentID string  `json:"department_id" binding:"required"`
	CityID       string  `json:"city_id" binding:"required"`
	DocumentID   string  `json:"document_id" binding:"required"`
}

func (r CustomerRequest) toModel(id int64) *models.Customer {
	return &models.Customer{
		CustomerID:   id,
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		Address:      r.Address,
		Phone:        r.Phone,
		Email:        r.Email,
		CountryID:    r.CountryID,
		DepartmentID: r.DepartmentID,
		CityID:       r.CityID,
		DocumentID:   r.DocumentID,
	}
}

// ProviderRequest carries the mutable fields of a provider
type ProviderRequest struct {
	FirstName    string  `json:"first_name" binding:"required"`
	MiddleName   *string `json:"middle_name"`
	LastName     string  `json:"last_name" binding:"required"`
	Phone        string  `json:"phone" binding:"required"`
	Email        *string `json:"email"`
	Address      string  `json:"address" binding:"required"`
	CountryID    string  `json:"country_id" binding:"required"`
	DepartmentID string  `json:"department_id" binding:"required"`
	CityID       string  `json:"city_id" binding:"required"`
}

// CreateProviderRequest adds the caller-supplied provider ID
type CreateProviderRequest struct {
	ProviderID string `json:"provider_id" binding:"required"`
	ProviderRequest
}

func (r ProviderRequest) toModel(id string) *models.Provider {
	return &models.Provider{
		ProviderID:   id,
		FirstName:    r.FirstName,
		MiddleName:   r.MiddleName,
		LastName:     r.LastName,
		Phone:        r.Phone,
		Email:        r.Email,
		Address:      r.Address,
		CountryID:    r.CountryID,
		DepartmentID: r.DepartmentID,
		CityID:       r.CityID,
	}
}

// EmployeeRequest carries the mutable fields of an employee
type EmployeeRequest struct {
	FirstName       string           `json:"first_name" binding:"required"`
	MiddleName      *string          `json:"middle_name"`
	LastName        string           `json:"last_name" binding:"required"`
	Phone           string           `json:"phone" binding:"required"`
	Email           *string          `json:"email"`
	Address         string           `json:"address" binding:"required"`
	Salary          *decimal.Decimal `json:"salary" binding:"required"`
	ExperienceYears *int             `json:"experience_years"`
	ExpertiseLevel  *int             `json:"expertise_level"`
	Speciality      *string          `json:"speciality"`
	Certification   *string          `json:"certification"`
	EmpType         string           `json:"emp_type" binding:"required"`
	MgrID           *int64           `json:"mgr_id"`
}

func (r EmployeeRequest) toModel(id int64) *models.Employee {
	return &models.Employee{
		EmployeeID:      id,
		FirstName:       r.FirstName,
		MiddleName:      r.MiddleName,
		LastName:        r.LastName,
		Phone:           r.Phone,
		Email:           r.Email,
		Address:         r.Address,
		Salary:          derefDecimal(r.Salary),
		ExperienceYears: r.ExperienceYears,
		ExpertiseLevel:  r.ExpertiseLevel,
		Speciality:      r.Speciality,
		Certification:   r.Certification,
		EmpType:         r.EmpType,
		MgrID:           r.MgrID,
	}
}

// SaleInvoiceRequest is the body of a sale invoice create or update
type SaleInvoiceRequest struct {
	Date         *models.Date     `json:"date" binding:"required"`
	Total        *decimal.Decimal `json:"total" binding:"required"`
	CommentSales string           `json:"comment_sales"`
	ProviderID   string           `json:"provider_id" binding:"required"`
	PaymentID    string           `json:"payment_id" binding:"required"`
	EmployeeID   models.NumericID `json:"employee_id" binding:"required"`
}

func (r SaleInvoiceRequest) toModel(id int64) *models.SaleInvoice {
	return &models.SaleInvoice{
		InvoiceSaleID: id,
		Date:          derefDate(r.Date),
		Total:         derefDecimal(r.Total),
		CommentSales:  r.CommentSales,
		ProviderID:    r.ProviderID,
		PaymentID:     r.PaymentID,
		EmployeeID:    r.EmployeeID.Int64(),
	}
}

// PurchaseInvoiceRequest is the body of a purchase invoice create or update
type PurchaseInvoiceRequest struct {
	Date             *models.Date     `json:"date" binding:"required"`
	Total            *decimal.Decimal `json:"total" binding:"required"`
	CommentPurchases string           `json:"comment_purchases"`
	CustomerID       models.NumericID `json:"customer_id" binding:"required"`
	PaymentID        string           `json:"payment_id" binding:"required"`
	EmployeeID       models.NumericID `json:"employee_id" binding:"required"`
}

func (r PurchaseInvoiceRequest) toModel(id int64) *models.PurchaseInvoice {
	return &models.PurchaseInvoice{
		InvoicePurchaseID: id,
		Date:              derefDate(r.Date),
		Total:             derefDecimal(r.Total),
		CommentPurchases:  r.CommentPurchases,
		CustomerID:        r.CustomerID.Int64(),
		PaymentID:         r.PaymentID,
		EmployeeID:        r.EmployeeID.Int64(),
	}
}

// LineItemRequest carries the mutable fields of a line item
type LineItemRequest struct {
	Quantity  *int             `json:"quantity" binding:"required,min=1"`
	Price     *decimal.Decimal `json:"price" binding:"required"`
	SubTotal  *decimal.Decimal `json:"sub_total" binding:"required"`
	ProductID string           `json:"product_id" binding:"required"`
}

// SaleItemRequest is one element of a sale line-item batch
type SaleItemRequest struct {
	InvoiceSaleID models.NumericID `json:"invoice_sale_id" binding:"required"`
	LineItemID    string           `json:"line_item_id" binding:"required"`
	LineItemRequest
}

// PurchaseItemRequest is one element of a purchase line-item batch
type PurchaseItemRequest struct {
	InvoicePurchaseID models.NumericID `json:"invoice_purchase_id" binding:"required"`
	LineItemID        string           `json:"line_item_id" binding:"required"`
	LineItemRequest
}

func (r LineItemRequest) toSaleItem(invoiceID int64, lineItemID string) models.SaleItem {
	return models.SaleItem{
		InvoiceSaleID: invoiceID,
		LineItemID:    lineItemID,
		Quantity:      derefInt(r.Quantity),
		Price:         derefDecimal(r.Price),
		SubTotal:      derefDecimal(r.SubTotal),
		ProductID:     r.ProductID,
	}
}

func (r LineItemRequest) toPurchaseItem(invoiceID int64, lineItemID string) models.PurchaseItem {
	return models.PurchaseItem{
		InvoicePurchaseID: invoiceID,
		LineItemID:        lineItemID,
		Quantity:          derefInt(r.Quantity),
		Price:             derefDecimal(r.Price),
		SubTotal:          derefDecimal(r.SubTotal),
		ProductID:         r.ProductID,
	}
}

// PawnRequest is the body of a pawn create or update
type PawnRequest struct {
	PawnDate       *models.Date     `json:"pawn_date" binding:"required"`
	ReturnDate     *models.Date     `json:"return_date"`
	ExpirationDate *models.Date     `json:"expiration_date" binding:"required"`
	FeeRate        *decimal.Decimal `json:"fee_rate" binding:"required"`
	TotalAmount    *decimal.Decimal `json:"total_amount" binding:"required"`
	Status         string           `json:"status" binding:"required"`
	CtrID          models.NumericID `json:"ctr_id" binding:"required"`
	EpeID          models.NumericID `json:"epe_id" binding:"required"`
}

func (r PawnRequest) toModel(id int64) *models.Pawn {
	p := &models.Pawn{
		PawnID:         id,
		PawnDate:       derefDate(r.PawnDate),
		ExpirationDate: derefDate(r.ExpirationDate),
		FeeRate:        derefDecimal(r.FeeRate),
		TotalAmount:    derefDecimal(r.TotalAmount),
		Status:         r.Status,
		CtrID:          r.CtrID.Int64(),
		EpeID:          r.EpeID.Int64(),
	}
	if r.ReturnDate != nil && !r.ReturnDate.IsZero() {
		p.ReturnDate = r.ReturnDate
	}
	return p
}

func derefInt(v *int) int {
	if v == nil {
		return 0
	}
	return *v
}

func derefDecimal(v *decimal.Decimal) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	return *v
}

func derefDate(v *models.Date) models.Date {
	if v == nil {
		return models.Date{}
	}
	return *v
}
