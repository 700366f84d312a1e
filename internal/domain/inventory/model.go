// Package inventory provides the stock item store.
package inventory

import (
	"context"
	"time"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
)

// StockItem represents one sellable product.
type StockItem struct {
	ID               id.ID       `db:"id" json:"id"`
	Name             string      `db:"name" json:"name"`
	Category         string      `db:"category" json:"category"`
	UnitPrice        types.Money `db:"unit_price" json:"unitPrice"`
	QuantityOnHand   int         `db:"quantity_on_hand" json:"quantityOnHand"`
	ReorderThreshold int         `db:"reorder_threshold" json:"reorderThreshold"`
	Description      *string     `db:"description" json:"description,omitempty"`
	ImageURL         *string     `db:"image_url" json:"imageUrl,omitempty"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
	UpdatedAt        time.Time   `db:"updated_at" json:"updatedAt"`
}

// NewStockItem creates a stock item with required fields.
func NewStockItem(name, category string, unitPrice types.Money, quantity, threshold int) *StockItem {
	now := time.Now()
	return &StockItem{
		ID:               id.New(),
		Name:             name,
		Category:         category,
		UnitPrice:        unitPrice,
		QuantityOnHand:   quantity,
		ReorderThreshold: threshold,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// Validate implements field-level validation. Missing numeric fields are
// rejected at the boundary, never silently defaulted to zero.
func (i *StockItem) Validate(ctx context.Context) error {
	if i.Name == "" {
		return apperror.NewValidation("name is required").WithDetail("field", "name")
	}
	if i.Category == "" {
		return apperror.NewValidation("category is required").WithDetail("field", "category")
	}
	if i.UnitPrice.IsNegative() {
		return apperror.NewValidation("unit price cannot be negative").WithDetail("field", "unitPrice")
	}
	if i.QuantityOnHand < 0 {
		return apperror.NewValidation("quantity on hand cannot be negative").WithDetail("field", "quantityOnHand")
	}
	if i.ReorderThreshold < 0 {
		return apperror.NewValidation("reorder threshold cannot be negative").WithDetail("field", "reorderThreshold")
	}
	return nil
}

// IsLowStock reports whether the item is at or below its reorder
// threshold. Display-only; nothing in the write path enforces it.
func (i *StockItem) IsLowStock() bool {
	return i.QuantityOnHand <= i.ReorderThreshold
}

// Patch is a partial update of a stock item. Nil fields are untouched.
type Patch struct {
	Name             *string      `json:"name,omitempty"`
	Category         *string      `json:"category,omitempty"`
	UnitPrice        *types.Money `json:"unitPrice,omitempty"`
	QuantityOnHand   *int         `json:"quantityOnHand,omitempty"`
	ReorderThreshold *int         `json:"reorderThreshold,omitempty"`
	Description      *string      `json:"description,omitempty"`
	ImageURL         *string      `json:"imageUrl,omitempty"`
}

// Apply mutates the item with the patch fields and revalidates.
// Driving QuantityOnHand negative through a patch is rejected.
func (p Patch) Apply(ctx context.Context, item *StockItem) error {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.UnitPrice != nil {
		item.UnitPrice = *p.UnitPrice
	}
	if p.QuantityOnHand != nil {
		item.QuantityOnHand = *p.QuantityOnHand
	}
	if p.ReorderThreshold != nil {
		item.ReorderThreshold = *p.ReorderThreshold
	}
	if p.Description != nil {
		item.Description = p.Description
	}
	if p.ImageURL != nil {
		item.ImageURL = p.ImageURL
	}
	item.UpdatedAt = time.Now()
	return item.Validate(ctx)
}
