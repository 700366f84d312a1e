package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/domain/sales"
	"stocktrack/internal/infrastructure/http/v1/dto"
)

// SalesHandler handles sale recording, listing and statistics endpoints.
type SalesHandler struct {
	*BaseHandler
	ledger     *sales.Ledger
	aggregator *sales.Aggregator
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(base *BaseHandler, ledger *sales.Ledger, aggregator *sales.Aggregator) *SalesHandler {
	return &SalesHandler{
		BaseHandler: base,
		ledger:      ledger,
		aggregator:  aggregator,
	}
}

// List handles GET /sales
func (h *SalesHandler) List(c *gin.Context) {
	records, err := h.ledger.List(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSaleRecords(records))
}

// Record handles POST /sales
func (h *SalesHandler) Record(c *gin.Context) {
	var req dto.RecordSaleRequest
	if !h.BindJSON(c, &req) {
		return
	}

	itemID, err := id.Parse(req.ItemID)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid item id").WithDetail("field", "itemId"))
		return
	}

	if req.Quantity == nil {
		h.Error(c, apperror.NewValidation("quantity is required").WithDetail("field", "quantity"))
		return
	}

	var customer sales.Customer
	if req.Customer != nil {
		customer = req.Customer.ToCustomer()
	}

	record, err := h.ledger.RecordSale(c.Request.Context(), itemID, *req.Quantity, customer)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromSaleRecord(record))
}

// Stats handles GET /sales/stats
func (h *SalesHandler) Stats(c *gin.Context) {
	snapshot, err := h.aggregator.ComputeStatistics(c.Request.Context(), time.Now())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStatistics(snapshot))
}
