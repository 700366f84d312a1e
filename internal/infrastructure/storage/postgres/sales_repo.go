package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
	"stocktrack/internal/domain/sales"
)

const saleRecordsTable = "sale_records"

// SalesRepo implements sales.Repository. The ledger is append-only:
// there are no UPDATE or DELETE statements against sale_records.
type SalesRepo struct {
	builder squirrel.StatementBuilderType
	txm     *TxManager
}

// NewSalesRepo creates a new sales repository.
func NewSalesRepo(txm *TxManager) *SalesRepo {
	return &SalesRepo{
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
		txm:     txm,
	}
}

// Create persists a new sale record.
func (r *SalesRepo) Create(ctx context.Context, sale *sales.SaleRecord) error {
	q := r.builder.Insert(saleRecordsTable).
		Columns(
			"id", "item_id", "quantity", "unit_price_at_sale", "total",
			"customer_name", "customer_email", "customer_phone", "sold_at",
		).
		Values(
			sale.ID, sale.ItemID, sale.Quantity, sale.UnitPriceAtSale, sale.Total,
			sale.Customer.Name, sale.Customer.Email, sale.Customer.Phone, sale.SoldAt,
		)

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert sale record: %w", err)
	}

	return nil
}

// List returns all sales newest-first with item names joined for
// display. The name join is read-side only; the snapshotted price and
// total come from the sale row itself.
func (r *SalesRepo) List(ctx context.Context) ([]sales.SaleRecord, error) {
	q := r.builder.Select(
		"s.id", "s.item_id", "s.quantity", "s.unit_price_at_sale", "s.total",
		"s.customer_name", "s.customer_email", "s.customer_phone", "s.sold_at",
		"i.name AS item_name",
	).
		From(saleRecordsTable + " s").
		Join(stockItemsTable + " i ON i.id = s.item_id").
		OrderBy("s.sold_at DESC")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var records []sales.SaleRecord
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &records, sql, args...); err != nil {
		return nil, fmt.Errorf("list sale records: %w", err)
	}

	return records, nil
}

// HasSalesForItem reports whether any sale references the item.
func (r *SalesRepo) HasSalesForItem(ctx context.Context, itemID id.ID) (bool, error) {
	q := r.builder.Select("1").
		From(saleRecordsTable).
		Where(squirrel.Eq{"item_id": itemID}).
		Limit(1)

	sql, args, err := q.ToSql()
	if err != nil {
		return false, fmt.Errorf("build query: %w", err)
	}

	var one int
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &one, sql, args...); err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("check sales for item: %w", err)
	}

	return true, nil
}

// SumTotals sums sale totals recorded at or after since.
func (r *SalesRepo) SumTotals(ctx context.Context, since *time.Time) (types.Money, error) {
	sql, args, err := r.sumTotalsQuery(since).ToSql()
	if err != nil {
		return types.ZeroMoney(), fmt.Errorf("build query: %w", err)
	}

	var revenue types.Money
	if err := pgxscan.Get(ctx, r.txm.GetQuerier(ctx), &revenue, sql, args...); err != nil {
		return types.ZeroMoney(), fmt.Errorf("sum totals: %w", err)
	}

	return revenue, nil
}

// TopSellers groups sales by item, ordered by summed quantity desc,
// summed revenue desc, then name asc for a deterministic ranking.
func (r *SalesRepo) TopSellers(ctx context.Context, limit int) ([]sales.TopSeller, error) {
	sql, args, err := r.topSellersQuery(limit).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var top []sales.TopSeller
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &top, sql, args...); err != nil {
		return nil, fmt.Errorf("top sellers: %w", err)
	}

	return top, nil
}

func (r *SalesRepo) sumTotalsQuery(since *time.Time) squirrel.SelectBuilder {
	q := r.builder.Select("COALESCE(SUM(total), 0) AS revenue").
		From(saleRecordsTable)

	if since != nil {
		q = q.Where(squirrel.GtOrEq{"sold_at": *since})
	}

	return q
}

func (r *SalesRepo) topSellersQuery(limit int) squirrel.SelectBuilder {
	return r.builder.Select(
		"s.item_id",
		"i.name",
		"SUM(s.quantity) AS quantity_sold",
		"SUM(s.total) AS revenue",
	).
		From(saleRecordsTable + " s").
		Join(stockItemsTable + " i ON i.id = s.item_id").
		GroupBy("s.item_id", "i.name").
		OrderBy("quantity_sold DESC", "revenue DESC", "i.name ASC").
		Limit(uint64(limit))
}
