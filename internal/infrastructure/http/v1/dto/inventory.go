package dto

import (
	"context"
	"time"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/types"
	"stocktrack/internal/domain/inventory"
)

// CreateStockItemRequest for POST /inventories. Numeric fields are
// pointers so a missing field is distinguishable from zero and
// rejected rather than silently defaulted.
type CreateStockItemRequest struct {
	Name             string       `json:"name"`
	Category         string       `json:"category"`
	UnitPrice        *types.Money `json:"unitPrice"`
	QuantityOnHand   *int         `json:"quantityOnHand"`
	ReorderThreshold *int         `json:"reorderThreshold"`
	Description      *string      `json:"description,omitempty"`
	ImageURL         *string      `json:"imageUrl,omitempty"`
}

// ToStockItem validates presence of required fields and builds the
// domain item. Field-level range checks live on the domain type.
func (r CreateStockItemRequest) ToStockItem(ctx context.Context) (*inventory.StockItem, error) {
	if r.UnitPrice == nil {
		return nil, apperror.NewValidation("unit price is required").WithDetail("field", "unitPrice")
	}
	if r.QuantityOnHand == nil {
		return nil, apperror.NewValidation("quantity on hand is required").WithDetail("field", "quantityOnHand")
	}
	if r.ReorderThreshold == nil {
		return nil, apperror.NewValidation("reorder threshold is required").WithDetail("field", "reorderThreshold")
	}

	item := inventory.NewStockItem(r.Name, r.Category, *r.UnitPrice, *r.QuantityOnHand, *r.ReorderThreshold)
	item.Description = r.Description
	item.ImageURL = r.ImageURL

	if err := item.Validate(ctx); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateStockItemRequest for PUT /inventories/:id. All fields optional.
type UpdateStockItemRequest struct {
	Name             *string      `json:"name,omitempty"`
	Category         *string      `json:"category,omitempty"`
	UnitPrice        *types.Money `json:"unitPrice,omitempty"`
	QuantityOnHand   *int         `json:"quantityOnHand,omitempty"`
	ReorderThreshold *int         `json:"reorderThreshold,omitempty"`
	Description      *string      `json:"description,omitempty"`
	ImageURL         *string      `json:"imageUrl,omitempty"`
}

// ToPatch converts to the domain patch.
func (r UpdateStockItemRequest) ToPatch() inventory.Patch {
	return inventory.Patch{
		Name:             r.Name,
		Category:         r.Category,
		UnitPrice:        r.UnitPrice,
		QuantityOnHand:   r.QuantityOnHand,
		ReorderThreshold: r.ReorderThreshold,
		Description:      r.Description,
		ImageURL:         r.ImageURL,
	}
}

// StockItemResponse is the API shape of a stock item, with the
// display-only low-stock flag derived from the reorder threshold.
type StockItemResponse struct {
	ID               string      `json:"id"`
	Name             string      `json:"name"`
	Category         string      `json:"category"`
	UnitPrice        types.Money `json:"unitPrice"`
	QuantityOnHand   int         `json:"quantityOnHand"`
	ReorderThreshold int         `json:"reorderThreshold"`
	Description      *string     `json:"description,omitempty"`
	ImageURL         *string     `json:"imageUrl,omitempty"`
	LowStock         bool        `json:"lowStock"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// FromStockItem creates a StockItemResponse from a domain item.
func FromStockItem(i *inventory.StockItem) StockItemResponse {
	return StockItemResponse{
		ID:               i.ID.String(),
		Name:             i.Name,
		Category:         i.Category,
		UnitPrice:        i.UnitPrice,
		QuantityOnHand:   i.QuantityOnHand,
		ReorderThreshold: i.ReorderThreshold,
		Description:      i.Description,
		ImageURL:         i.ImageURL,
		LowStock:         i.IsLowStock(),
		CreatedAt:        i.CreatedAt,
		UpdatedAt:        i.UpdatedAt,
	}
}

// FromStockItems maps a list of domain items.
func FromStockItems(items []inventory.StockItem) []StockItemResponse {
	out := make([]StockItemResponse, 0, len(items))
	for i := range items {
		out = append(out, FromStockItem(&items[i]))
	}
	return out
}
