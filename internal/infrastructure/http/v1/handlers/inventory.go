package handlers

import (
	"github.com/gin-gonic/gin"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/domain/inventory"
	"stocktrack/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles stock item endpoints.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /inventories
func (h *InventoryHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockItems(items))
}

// Create handles POST /inventories
func (h *InventoryHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := req.ToStockItem(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	created, err := h.service.Create(ctx, item)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromStockItem(created))
}

// Update handles PUT /inventories/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.itemID(c)
	if !ok {
		return
	}

	var req dto.UpdateStockItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Update(ctx, itemID, req.ToPatch())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStockItem(item))
}

// Delete handles DELETE /inventories/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, ok := h.itemID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.SuccessResponse{Success: true, Message: "stock item deleted"})
}

func (h *InventoryHandler) itemID(c *gin.Context) (id.ID, bool) {
	itemID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid item id").WithDetail("field", "id"))
		return id.Nil(), false
	}
	return itemID, true
}
