package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"halcon-service/internal/apperr"
	"halcon-service/internal/models"
	"halcon-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubProducts serves products from a map
type stubProducts struct {
	ProductService
	products map[string]models.Product
	deleted  []string
}

func (s *stubProducts) Get(_ context.Context, id string) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, apperr.NotFound("product", id)
	}
	return &p, nil
}

func (s *stubProducts) Delete(_ context.Context, id string) error {
	if _, ok := s.products[id]; !ok {
		return apperr.NotFound("product", id)
	}
	s.deleted = append(s.deleted, id)
	return nil
}

func (s *stubProducts) List(context.Context) ([]models.Product, error) {
	return nil, errors.New("pq: connection refused")
}

// stubDetailStore lets the real DetailService run against a recorded store
type stubDetailStore struct {
	service.DetailStore
	calls int
	sales []models.SaleItem
}

func (s *stubDetailStore) CreateSaleItems(_ context.Context, items []models.SaleItem) error {
	s.calls++
	s.sales = append(s.sales, items...)
	return nil
}

type stubInvoices struct {
	InvoiceService
	sale     *service.SaleInvoiceRequest
	purchase *service.PurchaseInvoiceRequest
}

func (s *stubInvoices) CreateSale(_ context.Context, req *service.SaleInvoiceRequest) (*models.SaleInvoice, error) {
	s.sale = req
	return &models.SaleInvoice{InvoiceSaleID: 1, PaymentID: req.PaymentID, EmployeeID: req.EmployeeID.Int64()}, nil
}

func (s *stubInvoices) CreatePurchase(_ context.Context, req *service.PurchaseInvoiceRequest) (*models.PurchaseInvoice, error) {
	s.purchase = req
	return &models.PurchaseInvoice{InvoicePurchaseID: 1, CustomerID: req.CustomerID.Int64()}, nil
}

func (*stubInvoices) DeleteSale(_ context.Context, id int64) error {
	return apperr.New(apperr.CodeConflict, "sale invoice conflicts with a related record").
		WithDetails(map[string]any{"constraint": "detail_sales_invoice_sale_id_fkey"})
}

type stubPawns struct {
	PawnService
	created *service.PawnRequest
}

func (s *stubPawns) Create(_ context.Context, req *service.PawnRequest) (*models.Pawn, error) {
	s.created = req
	return &models.Pawn{PawnID: 1, Status: req.Status, CtrID: req.CtrID.Int64(), EpeID: req.EpeID.Int64()}, nil
}

func (*stubPawns) Update(_ context.Context, _ int64, req *service.PawnRequest) (*models.Pawn, error) {
	return nil, apperr.Newf(apperr.CodeStateConflict, "pawn cannot move from VENCIDO to %s", req.Status).
		WithDetails(map[string]any{"from": "VENCIDO", "to": req.Status})
}

type stubEmployees struct {
	EmployeeService
	created *service.EmployeeRequest
}

func (s *stubEmployees) Create(_ context.Context, req *service.EmployeeRequest) (*models.Employee, error) {
	s.created = req
	return &models.Employee{EmployeeID: 1, ExpertiseLevel: req.ExpertiseLevel}, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(context.Context) error { return p.err }

type fixture struct {
	router    *gin.Engine
	products  *stubProducts
	details   *stubDetailStore
	invoices  *stubInvoices
	pawns     *stubPawns
	employees *stubEmployees
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		products: &stubProducts{products: map[string]models.Product{
			"P1": {ProductID: "P1", ProductName: "Gold ring", Stock: 3, Brand: "Halcon", Status: models.ProductStatusActive},
		}},
		details:   &stubDetailStore{},
		invoices:  &stubInvoices{},
		pawns:     &stubPawns{},
		employees: &stubEmployees{},
	}

	h := NewHandler(Services{
		Products:  f.products,
		Employees: f.employees,
		Invoices:  f.invoices,
		Details:   service.NewDetailService(f.details, nil, nil, time.Hour),
		Pawns:     f.pawns,
		DB:        stubPinger{},
	}, "http://localhost:5173", nil)

	f.router = gin.New()
	h.SetupRoutes(f.router)
	return f
}

func (f *fixture) do(method, path, body string, headers ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

const saleLine = `{"invoice_sale_id": 7, "line_item_id": "%s", "quantity": 1, "price": 10.5, "sub_total": 10.5, "product_id": "P1"}`

func saleLines(ids ...string) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strings.Replace(saleLine, "%s", id, 1))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

func TestGetProduct(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/products/P1", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Gold ring", body["product_name"])
	assert.Equal(t, "A", body["status"])
}

func TestUnknownProductIsNotFound(t *testing.T) {
	f := newFixture(t)

	for _, method := range []string{http.MethodGet, http.MethodDelete} {
		w := f.do(method, "/api/products/NOPE", "")
		require.Equal(t, http.StatusNotFound, w.Code, method)

		body := decodeBody(t, w)
		assert.Equal(t, "NOT_FOUND", body["code"])
		assert.Contains(t, body["error"], "NOPE")
		assert.NotContains(t, body, "detail")
	}
	assert.Empty(t, f.products.deleted)
}

func TestDeleteProductAcknowledges(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodDelete, "/api/products/P1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "product deleted", decodeBody(t, w)["message"])
	assert.Equal(t, []string{"P1"}, f.products.deleted)
}

func TestStoreErrorHidesCause(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "STORE_ERROR", body["code"])
	assert.Equal(t, "internal server error", body["error"])
	assert.NotContains(t, w.Body.String(), "connection refused")
}

func TestCreateProductValidationDetails(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/products", `{"product_id": "P2", "stock": -1, "status": "X"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	detail, ok := body["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "is required", detail["product_name"])
	assert.Equal(t, "must be at least 0", detail["stock"])
	assert.Equal(t, "must be one of A I", detail["status"])
}

func TestCreateSaleItemsCreated(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/sales", saleLines("C", "A", "B"))
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "sale items created", body["message"])
	assert.Equal(t, map[string]any{"count": float64(3)}, body["data"])

	require.Len(t, f.details.sales, 3)
	assert.Equal(t, "C", f.details.sales[0].LineItemID)
	assert.Equal(t, int64(7), f.details.sales[0].InvoiceSaleID)
	assert.Equal(t, "10.5", f.details.sales[0].Price.String())
}

func TestCreateSaleItemsRequiresArray(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/sales", strings.Replace(saleLine, "%s", "A", 1))
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["code"])
	assert.Zero(t, f.details.calls)
}

func TestCreateSaleItemsEmptyArray(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/sales", `[]`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "at least one line item is required", decodeBody(t, w)["error"])
	assert.Zero(t, f.details.calls)
}

func TestCreateSaleItemsReportsItemPosition(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/sales",
		`[`+strings.Replace(saleLine, "%s", "A", 1)+`, {"invoice_sale_id": 7, "line_item_id": "TOOLONG", "price": 1, "sub_total": 1, "product_id": "P1"}]`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	detail, ok := decodeBody(t, w)["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "is required", detail["items[1].quantity"])
	assert.NotContains(t, detail, "items[1].line_item_id")
	assert.NotContains(t, detail, "items[0].quantity")
	assert.Zero(t, f.details.calls)
}

func TestDeleteInvoiceWithItemsConflicts(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodDelete, "/api/saleinvoices/4", "")
	require.Equal(t, http.StatusConflict, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "CONFLICT", body["code"])
	assert.Equal(t, map[string]any{"constraint": "detail_sales_invoice_sale_id_fkey"}, body["detail"])
}

func TestInvalidIDParam(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodDelete, "/api/saleinvoices/abc", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid id", decodeBody(t, w)["error"])
}

func TestPawnIllegalTransition(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPut, "/api/pawns/1", `{
		"pawn_date": "2024-06-01", "expiration_date": "2024-09-01",
		"fee_rate": 5, "total_amount": 1500, "status": "ACTIVO", "ctr_id": 1, "epe_id": 2
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "STATE_CONFLICT", body["code"])
	assert.Equal(t, map[string]any{"from": "VENCIDO", "to": "ACTIVO"}, body["detail"])
}

func TestPawnRejectsMalformedDate(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/pawns", `{"pawn_date": "01/06/2024"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid request body", decodeBody(t, w)["error"])
}

func TestRequestIDAndCORS(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodOptions, "/api/sales", "", "Origin", "http://localhost:5173")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))

	w = f.do(http.MethodGet, "/health", "", "Origin", "http://evil.example", requestIDHeader, "req-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "req-1", w.Header().Get(requestIDHeader))
}

func TestReadinessFollowsDatabase(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, http.StatusOK, f.do(http.MethodGet, "/ready", "").Code)

	h := NewHandler(Services{DB: stubPinger{err: errors.New("down")}}, "", nil)
	router := gin.New()
	h.SetupRoutes(router)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestCreateSaleInvoiceAcceptsLongPaymentID(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/saleinvoices", `{
		"date": "2024-01-10", "total": 150.00, "comment_sales": "test",
		"provider_id": "PRV1", "payment_id": "efectivo", "employee_id": 2
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, f.invoices.sale)
	assert.Equal(t, "efectivo", f.invoices.sale.PaymentID)
	assert.Equal(t, models.NumericID(2), f.invoices.sale.EmployeeID)
}

func TestCreateSaleInvoiceFromFormStrings(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/saleinvoices", `{
		"date": "2024-01-10", "total": "150.00", "comment_sales": "",
		"provider_id": "PRV1", "payment_id": "tarjeta", "employee_id": "3"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, f.invoices.sale)
	assert.Equal(t, models.NumericID(3), f.invoices.sale.EmployeeID)
	assert.Equal(t, "150", f.invoices.sale.Total.String())
}

func TestCreateSaleInvoiceUnselectedEmployeeIsRequired(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/saleinvoices", `{
		"date": "2024-01-10", "total": "150.00", "provider_id": "PRV1",
		"payment_id": "efectivo", "employee_id": ""
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	detail, ok := decodeBody(t, w)["detail"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "is required", detail["employee_id"])
	assert.Nil(t, f.invoices.sale)
}

func TestCreatePurchaseInvoiceFromFormStrings(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/purchaseinvoices", `{
		"date": "2024-02-01", "total": 80, "comment_purchases": "walk-in",
		"customer_id": "5", "payment_id": "efectivo", "employee_id": "2"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, f.invoices.purchase)
	assert.Equal(t, models.NumericID(5), f.invoices.purchase.CustomerID)
	assert.Equal(t, models.NumericID(2), f.invoices.purchase.EmployeeID)
}

func TestCreatePawnFromFormStrings(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/pawns", `{
		"pawn_date": "2024-06-01", "return_date": "", "expiration_date": "2024-09-01",
		"fee_rate": 5, "total_amount": 1500, "status": "ACTIVO", "ctr_id": "3", "epe_id": "1"
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, f.pawns.created)
	assert.Equal(t, models.NumericID(3), f.pawns.created.CtrID)
	assert.Equal(t, models.NumericID(1), f.pawns.created.EpeID)
	assert.True(t, f.pawns.created.ReturnDate == nil || f.pawns.created.ReturnDate.IsZero())
}

func TestCreatePawnRejectsNonNumericCustomer(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/pawns", `{
		"pawn_date": "2024-06-01", "expiration_date": "2024-09-01",
		"fee_rate": 5, "total_amount": 1500, "status": "ACTIVO", "ctr_id": "ana", "epe_id": 1
	}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Nil(t, f.pawns.created)
}

func TestCreateEmployeeWithNumericExpertise(t *testing.T) {
	f := newFixture(t)

	w := f.do(http.MethodPost, "/api/employees", `{
		"first_name": "Luis", "middle_name": "", "last_name": "Soto", "phone": "555-0101",
		"email": "", "address": "Av. Central 12", "salary": 1200.5,
		"experience_years": 4, "expertise_level": 3, "speciality": "Oro",
		"certification": "", "emp_type": "Tasador", "mgr_id": null
	}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NotNil(t, f.employees.created)
	require.NotNil(t, f.employees.created.ExpertiseLevel)
	assert.Equal(t, 3, *f.employees.created.ExpertiseLevel)
	assert.Nil(t, f.employees.created.MgrID)
}
