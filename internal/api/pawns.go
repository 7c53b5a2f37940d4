package api

import (
	"net/http"

	"halcon-service/internal/service"

	"github.com/gin-gonic/gin"
)

// listPawns includes customer and employee display names
func (h *Handler) listPawns(c *gin.Context) {
	pawns, err := h.Pawns.List(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pawns)
}

func (h *Handler) getPawn(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	pawn, err := h.Pawns.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, pawn)
}

func (h *Handler) createPawn(c *gin.Context) {
	var req service.PawnRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	pawn, err := h.Pawns.Create(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created(c, "pawn created", pawn)
}

func (h *Handler) updatePawn(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	var req service.PawnRequest
	if err := bindJSON(c, &req); err != nil {
		h.writeError(c, err)
		return
	}

	pawn, err := h.Pawns.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "pawn updated", pawn)
}

func (h *Handler) deletePawn(c *gin.Context) {
	id, err := int64Param(c, "id")
	if err != nil {
		h.writeError(c, err)
		return
	}
	if err := h.Pawns.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	ack(c, "pawn deleted", nil)
}
