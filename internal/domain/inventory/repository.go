package inventory

import (
	"context"

	"stocktrack/internal/core/id"
)

// Repository defines persistence operations for stock items.
type Repository interface {
	// Create persists a new stock item.
	Create(ctx context.Context, item *StockItem) error

	// GetByID retrieves a stock item.
	GetByID(ctx context.Context, itemID id.ID) (*StockItem, error)

	// List returns all stock items ordered by name.
	List(ctx context.Context) ([]StockItem, error)

	// Update persists the full item state.
	Update(ctx context.Context, item *StockItem) error

	// Delete removes a stock item.
	Delete(ctx context.Context, itemID id.ID) error

	// DecrementOnHand atomically subtracts qty from quantity_on_hand,
	// but only when enough stock remains. Returns false without any
	// mutation when stock is insufficient. This is the single
	// conditional write that keeps quantity_on_hand non-negative under
	// concurrent sales.
	DecrementOnHand(ctx context.Context, itemID id.ID, qty int) (bool, error)
}

// SaleReferenceChecker reports whether sale history references an item.
// Implemented by the sales repository; the inventory service uses it to
// refuse deleting items with recorded sales.
type SaleReferenceChecker interface {
	HasSalesForItem(ctx context.Context, itemID id.ID) (bool, error)
}
