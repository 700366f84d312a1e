package sales

import (
	"context"
	"fmt"
	"time"

	"stocktrack/internal/core/tx"
)

// topSellersLimit caps the top-sellers ranking size.
const topSellersLimit = 5

// Aggregator computes read-only statistics rollups over the ledger.
// Results are recomputed from sale history on every call and never
// persisted.
type Aggregator struct {
	repo Repository
	txm  tx.ReadOnlyManager
}

// NewAggregator creates a new statistics aggregator.
func NewAggregator(repo Repository, txm tx.ReadOnlyManager) *Aggregator {
	return &Aggregator{
		repo: repo,
		txm:  txm,
	}
}

// ComputeStatistics returns revenue rollups and the top-5 sellers.
// Monthly covers the calendar month containing now; weekly covers the
// calendar week starting Sunday containing now.
//
// All four reads run inside one read-only snapshot transaction, so a
// sale committing mid-call cannot appear in one rollup but not
// another: monthly revenue never exceeds total revenue.
func (a *Aggregator) ComputeStatistics(ctx context.Context, now time.Time) (*StatisticsSnapshot, error) {
	var snap *StatisticsSnapshot

	err := a.txm.ReadOnly(ctx, func(ctx context.Context) error {
		total, err := a.repo.SumTotals(ctx, nil)
		if err != nil {
			return fmt.Errorf("sum totals: %w", err)
		}

		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		monthly, err := a.repo.SumTotals(ctx, &monthStart)
		if err != nil {
			return fmt.Errorf("sum monthly totals: %w", err)
		}

		weekStart := startOfWeek(now)
		weekly, err := a.repo.SumTotals(ctx, &weekStart)
		if err != nil {
			return fmt.Errorf("sum weekly totals: %w", err)
		}

		top, err := a.repo.TopSellers(ctx, topSellersLimit)
		if err != nil {
			return fmt.Errorf("top sellers: %w", err)
		}
		if top == nil {
			top = []TopSeller{}
		}

		snap = &StatisticsSnapshot{
			TotalRevenue:    total,
			MonthlyRevenue:  monthly,
			WeeklyRevenue:   weekly,
			TopSellingItems: top,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snap, nil
}

// startOfWeek returns midnight of the Sunday beginning the week that
// contains t.
func startOfWeek(t time.Time) time.Time {
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -int(t.Weekday()))
}
