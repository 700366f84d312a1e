package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/domain/inventory"
)

const stockItemsTable = "stock_items"

var stockItemColumns = []string{
	"id", "name", "category", "unit_price", "quantity_on_hand",
	"reorder_threshold", "description", "image_url",
	"created_at", "updated_at",
}

// InventoryRepo implements inventory.Repository.
type InventoryRepo struct {
	builder squirrel.StatementBuilderType
	txm     *TxManager
}

// NewInventoryRepo creates a new inventory repository.
func NewInventoryRepo(txm *TxManager) *InventoryRepo {
	return &InventoryRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txm:     txm,
	}
}

// Create persists a new stock item.
func (r *InventoryRepo) Create(ctx context.Context, item *inventory.StockItem) error {
	q := r.builder.Insert(stockItemsTable).
		Columns(stockItemColumns...).
		Values(
			item.ID, item.Name, item.Category, item.UnitPrice, item.QuantityOnHand,
			item.ReorderThreshold, item.Description, item.ImageURL,
			item.CreatedAt, item.UpdatedAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert stock item: %w", err)
	}

	return nil
}

// GetByID retrieves a stock item.
func (r *InventoryRepo) GetByID(ctx context.Context, itemID id.ID) (*inventory.StockItem, error) {
	q := r.builder.Select(stockItemColumns...).
		From(stockItemsTable).
		Where(squirrel.Eq{"id": itemID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var item inventory.StockItem
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &item, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return nil, apperror.NewNotFound("stock item", itemID.String())
		}
		return nil, fmt.Errorf("get stock item: %w", err)
	}

	return &item, nil
}

// List returns all stock items ordered by name.
func (r *InventoryRepo) List(ctx context.Context) ([]inventory.StockItem, error) {
	q := r.builder.Select(stockItemColumns...).
		From(stockItemsTable).
		OrderBy("name ASC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var items []inventory.StockItem
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &items, sql, args...); err != nil {
		return nil, fmt.Errorf("list stock items: %w", err)
	}

	return items, nil
}

// Update persists the full item state.
func (r *InventoryRepo) Update(ctx context.Context, item *inventory.StockItem) error {
	q := r.builder.Update(stockItemsTable).
		Set("name", item.Name).
		Set("category", item.Category).
		Set("unit_price", item.UnitPrice).
		Set("quantity_on_hand", item.QuantityOnHand).
		Set("reorder_threshold", item.ReorderThreshold).
		Set("description", item.Description).
		Set("image_url", item.ImageURL).
		Set("updated_at", item.UpdatedAt).
		Where(squirrel.Eq{"id": item.ID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build update: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("update stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock item", item.ID.String())
	}

	return nil
}

// Delete removes a stock item.
func (r *InventoryRepo) Delete(ctx context.Context, itemID id.ID) error {
	q := r.builder.Delete(stockItemsTable).
		Where(squirrel.Eq{"id": itemID})

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFound("stock item", itemID.String())
	}

	return nil
}

// DecrementOnHand atomically subtracts qty when enough stock remains.
// The check and the decrement are one conditional UPDATE, so two
// concurrent sales can never both pass the stock check before either
// decrements.
func (r *InventoryRepo) DecrementOnHand(ctx context.Context, itemID id.ID, qty int) (bool, error) {
	sql, args, err := r.decrementQuery(itemID, qty, time.Now()).ToSql()
	if err != nil {
		return false, fmt.Errorf("build decrement: %w", err)
	}

	tag, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return false, fmt.Errorf("decrement stock: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// decrementQuery builds the conditional decrement. The stock guard
// lives in the WHERE clause, not in application code.
func (r *InventoryRepo) decrementQuery(itemID id.ID, qty int, now time.Time) squirrel.UpdateBuilder {
	return r.builder.Update(stockItemsTable).
		Set("quantity_on_hand", squirrel.Expr("quantity_on_hand - ?", qty)).
		Set("updated_at", now).
		Where(squirrel.Eq{"id": itemID}).
		Where(squirrel.Expr("quantity_on_hand >= ?", qty))
}
