package api

import (
	"net/http"

	"halcon-service/internal/service"

	"github.com/gin-gonic/gin"
)

func (h *Handler) listSaleInvoices(c *gin.Context) {
	invoices, err := h.Invoices.ListSales(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) getSaleInvoice(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	invoice, err := h.Invoices.GetSale(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) createSaleInvoice(c *gin.Context) {
	var req service.SaleInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	invoice, err := h.Invoices.CreateSale(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "sale invoice created", invoice)
}

func (h *Handler) updateSaleInvoice(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.SaleInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	invoice, err := h.Invoices.UpdateSale(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "sale invoice updated", invoice)
}

// deleteSaleInvoice fails with 409 while the invoice still has line items
func (h *Handler) deleteSaleInvoice(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Invoices.DeleteSale(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "sale invoice deleted", nil)
}

func (h *Handler) listPurchaseInvoices(c *gin.Context) {
	invoices, err := h.Invoices.ListPurchases(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}

func (h *Handler) getPurchaseInvoice(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	invoice, err := h.Invoices.GetPurchase(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoice)
}

func (h *Handler) createPurchaseInvoice(c *gin.Context) {
	var req service.PurchaseInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	invoice, err := h.Invoices.CreatePurchase(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "purchase invoice created", invoice)
}

func (h *Handler) updatePurchaseInvoice(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.PurchaseInvoiceRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	invoice, err := h.Invoices.UpdatePurchase(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "purchase invoice updated", invoice)
}

func (h *Handler) deletePurchaseInvoice(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Invoices.DeletePurchase(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "purchase invoice deleted", nil)
}
