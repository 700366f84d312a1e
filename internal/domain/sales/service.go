package sales

import (
	"context"
	"fmt"
	"time"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/core/tx"
	"stocktrack/internal/domain/inventory"
	"stocktrack/pkg/logger"
)

// ItemStore is the slice of the inventory store the ledger needs:
// a price/name read and the atomic conditional decrement.
// inventory.Repository satisfies it.
type ItemStore interface {
	GetByID(ctx context.Context, itemID id.ID) (*inventory.StockItem, error)
	DecrementOnHand(ctx context.Context, itemID id.ID, qty int) (bool, error)
}

// Ledger is the core write path for sales. It validates a sale request
// against current stock, snapshots the unit price, computes the total,
// persists the record and decrements stock as one unit of work.
type Ledger struct {
	repo      Repository
	items     ItemStore
	txManager tx.Manager
}

// NewLedger creates a new sale ledger.
func NewLedger(repo Repository, items ItemStore, txManager tx.Manager) *Ledger {
	return &Ledger{
		repo:      repo,
		items:     items,
		txManager: txManager,
	}
}

// RecordSale records one sale. The stock check-and-decrement and the
// record insert commit or roll back together; a concurrent sale that
// consumed the stock first surfaces as InsufficientStock with zero
// side effects, never as a double decrement or an orphan record.
func (l *Ledger) RecordSale(ctx context.Context, itemID id.ID, quantity int, customer Customer) (*SaleRecord, error) {
	if quantity < 1 {
		return nil, apperror.NewValidation("quantity must be a positive integer").
			WithDetail("field", "quantity").
			WithDetail("value", quantity)
	}

	if err := customer.Validate(ctx); err != nil {
		return nil, err
	}

	var sale *SaleRecord
	err := l.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := l.items.GetByID(ctx, itemID)
		if err != nil {
			return err
		}

		// Single conditional update at the storage layer: the stock
		// check and the decrement cannot be interleaved by another
		// sale.
		ok, err := l.items.DecrementOnHand(ctx, itemID, quantity)
		if err != nil {
			return fmt.Errorf("decrement stock: %w", err)
		}
		if !ok {
			return apperror.NewInsufficientStock(itemID.String(), quantity, item.QuantityOnHand)
		}

		// Price snapshot from the read above; later price edits must
		// not alter this sale.
		sale = NewSaleRecord(itemID, quantity, item.UnitPrice, customer, time.Now())
		if err := l.repo.Create(ctx, sale); err != nil {
			return fmt.Errorf("create sale record: %w", err)
		}

		sale.ItemName = item.Name
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "sale recorded",
		"sale_id", sale.ID,
		"item_id", itemID,
		"quantity", quantity,
		"total", sale.Total)

	return sale, nil
}

// List returns the full ledger newest-first.
func (l *Ledger) List(ctx context.Context) ([]SaleRecord, error) {
	return l.repo.List(ctx)
}
