package sales

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
)

// snapshotTx counts ReadOnly invocations and marks the span where fn
// runs, so tests can verify reads happen inside the snapshot.
type snapshotTx struct {
	readOnlyCalls int
	inSnapshot    bool
}

func (s *snapshotTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *snapshotTx) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	s.readOnlyCalls++
	s.inSnapshot = true
	defer func() { s.inSnapshot = false }()
	return fn(ctx)
}

// recordingStatsRepo records the arguments of every rollup read and
// whether it ran inside the read-only snapshot.
type recordingStatsRepo struct {
	fakeSalesRepo
	txm *snapshotTx

	sinceArgs       []*time.Time
	limitArg        int
	readsInSnapshot int
	readsOutside    int
}

func (r *recordingStatsRepo) observe() {
	if r.txm != nil && r.txm.inSnapshot {
		r.readsInSnapshot++
	} else {
		r.readsOutside++
	}
}

func (r *recordingStatsRepo) SumTotals(ctx context.Context, since *time.Time) (types.Money, error) {
	r.observe()
	r.sinceArgs = append(r.sinceArgs, since)
	return r.fakeSalesRepo.SumTotals(ctx, since)
}

func (r *recordingStatsRepo) TopSellers(ctx context.Context, limit int) ([]TopSeller, error) {
	r.observe()
	r.limitArg = limit
	return r.fakeSalesRepo.TopSellers(ctx, limit)
}

func saleAt(total string, soldAt time.Time) SaleRecord {
	return SaleRecord{
		ID:     id.New(),
		ItemID: id.New(),
		Total:  types.MustMoney(total),
		SoldAt: soldAt,
	}
}

func TestComputeStatistics_Windows(t *testing.T) {
	txm := &snapshotTx{}
	repo := &recordingStatsRepo{txm: txm}
	repo.records = []SaleRecord{
		saleAt("100.00", time.Date(2026, 7, 10, 12, 0, 0, 0, time.UTC)),
		saleAt("250.00", time.Date(2026, 8, 3, 9, 30, 0, 0, time.UTC)),
		saleAt("50.00", time.Date(2026, 8, 17, 18, 0, 0, 0, time.UTC)),
	}
	agg := NewAggregator(repo, txm)

	// Wednesday, August 19th. The week began Sunday the 16th.
	now := time.Date(2026, 8, 19, 14, 0, 0, 0, time.UTC)

	snap, err := agg.ComputeStatistics(context.Background(), now)
	require.NoError(t, err)

	assert.True(t, snap.TotalRevenue.Equal(types.MustMoney("400.00")))
	assert.True(t, snap.MonthlyRevenue.Equal(types.MustMoney("300.00")))
	assert.True(t, snap.WeeklyRevenue.Equal(types.MustMoney("50.00")))

	require.Len(t, repo.sinceArgs, 3)
	assert.Nil(t, repo.sinceArgs[0])
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), *repo.sinceArgs[1])
	assert.Equal(t, time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC), *repo.sinceArgs[2])
	assert.Equal(t, 5, repo.limitArg)
}

func TestComputeStatistics_ReadsShareOneSnapshot(t *testing.T) {
	txm := &snapshotTx{}
	repo := &recordingStatsRepo{txm: txm}
	repo.records = []SaleRecord{
		saleAt("10.00", time.Date(2026, 8, 18, 10, 0, 0, 0, time.UTC)),
	}
	agg := NewAggregator(repo, txm)

	now := time.Date(2026, 8, 19, 14, 0, 0, 0, time.UTC)

	_, err := agg.ComputeStatistics(context.Background(), now)
	require.NoError(t, err)

	// One snapshot transaction holds all four rollup reads. A sale
	// committing between reads can then never make the monthly figure
	// exceed the all-time figure.
	assert.Equal(t, 1, txm.readOnlyCalls)
	assert.Equal(t, 4, repo.readsInSnapshot)
	assert.Equal(t, 0, repo.readsOutside)
}

func TestComputeStatistics_EmptyLedger(t *testing.T) {
	txm := &snapshotTx{}
	repo := &recordingStatsRepo{txm: txm}
	agg := NewAggregator(repo, txm)

	snap, err := agg.ComputeStatistics(context.Background(), time.Now())
	require.NoError(t, err)

	assert.True(t, snap.TotalRevenue.IsZero())
	assert.True(t, snap.MonthlyRevenue.IsZero())
	assert.True(t, snap.WeeklyRevenue.IsZero())
	assert.NotNil(t, snap.TopSellingItems)
	assert.Empty(t, snap.TopSellingItems)
}

func TestStartOfWeek(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{
			"midweek",
			time.Date(2026, 8, 19, 14, 30, 0, 0, time.UTC),
			time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"sunday maps to itself",
			time.Date(2026, 8, 16, 23, 59, 0, 0, time.UTC),
			time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"saturday",
			time.Date(2026, 8, 22, 1, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 16, 0, 0, 0, 0, time.UTC),
		},
		{
			"week spanning a month boundary",
			time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, startOfWeek(tt.in))
		})
	}
}

func TestNewSaleRecord_TotalDerivedFromSnapshot(t *testing.T) {
	rec := NewSaleRecord(id.New(), 7, types.MustMoney("3.33"), Customer{}, time.Now())

	assert.True(t, rec.Total.Equal(types.MustMoney("23.31")))
}
