package sales

import (
	"context"
	"time"

	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
)

// Repository defines persistence operations for the append-only sale
// ledger. There are deliberately no update or delete operations.
type Repository interface {
	// Create persists a new sale record.
	Create(ctx context.Context, sale *SaleRecord) error

	// List returns all sales newest-first with item names joined.
	List(ctx context.Context) ([]SaleRecord, error)

	// HasSalesForItem reports whether any sale references the item.
	HasSalesForItem(ctx context.Context, itemID id.ID) (bool, error)

	// SumTotals sums sale totals recorded at or after since.
	// A nil since sums the entire ledger.
	SumTotals(ctx context.Context, since *time.Time) (types.Money, error)

	// TopSellers groups sales by item, summing quantity and revenue,
	// ordered by quantity desc, revenue desc, name asc.
	TopSellers(ctx context.Context, limit int) ([]TopSeller, error)
}
