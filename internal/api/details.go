package api

import (
	"net/http"

	"halcon-service/internal/service"

	"github.com/gin-gonic/gin"
)

const idempotencyHeader = "Idempotency-Key"

// createSaleItems commits a JSON array of sale lines all-or-nothing
func (h *Handler) createSaleItems(c *gin.Context) {
	var reqs []service.SaleItemRequest
	if err := bindBatch(c, &reqs); err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.Details.CreateSaleItems(c.Request.Context(), c.GetHeader(idempotencyHeader), reqs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "sale items created", result)
}

func (h *Handler) listSaleItems(c *gin.Context) {
	items, err := h.Details.ListSaleItems(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) listSaleItemsByInvoice(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	items, err := h.Details.ListSaleItemsByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getSaleItem(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	item, err := h.Details.GetSaleItem(c.Request.Context(), invoiceID, c.Param("lineItemId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updateSaleItem(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.LineItemRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	item, err := h.Details.UpdateSaleItem(c.Request.Context(), invoiceID, c.Param("lineItemId"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "sale item updated", item)
}

func (h *Handler) deleteSaleItem(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Details.DeleteSaleItem(c.Request.Context(), invoiceID, c.Param("lineItemId")); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "sale item deleted", nil)
}

// createPurchaseItems commits a JSON array of purchase lines all-or-nothing
func (h *Handler) createPurchaseItems(c *gin.Context) {
	var reqs []service.PurchaseItemRequest
	if err := bindBatch(c, &reqs); err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.Details.CreatePurchaseItems(c.Request.Context(), c.GetHeader(idempotencyHeader), reqs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "purchase items created", result)
}

func (h *Handler) listPurchaseItems(c *gin.Context) {
	items, err := h.Details.ListPurchaseItems(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) listPurchaseItemsByInvoice(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	items, err := h.Details.ListPurchaseItemsByInvoice(c.Request.Context(), invoiceID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *Handler) getPurchaseItem(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	item, err := h.Details.GetPurchaseItem(c.Request.Context(), invoiceID, c.Param("lineItemId"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *Handler) updatePurchaseItem(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.LineItemRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	item, err := h.Details.UpdatePurchaseItem(c.Request.Context(), invoiceID, c.Param("lineItemId"), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "purchase item updated", item)
}

func (h *Handler) deletePurchaseItem(c *gin.Context) {
	invoiceID, err := int64Param(c, "invoiceId")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Details.DeletePurchaseItem(c.Request.Context(), invoiceID, c.Param("lineItemId")); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "purchase item deleted", nil)
}
