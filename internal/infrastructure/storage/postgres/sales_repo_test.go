package postgres

import (
	"strings"
	"testing"
	"time"
)

func TestSalesRepo_SumTotalsQuery(t *testing.T) {
	repo := NewSalesRepo(nil)

	t.Run("all time", func(t *testing.T) {
		sql, args, err := repo.sumTotalsQuery(nil).ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}

		wantSQL := "SELECT COALESCE(SUM(total), 0) AS revenue FROM sale_records"
		if sql != wantSQL {
			t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
		}
		if len(args) != 0 {
			t.Errorf("expected no args, got %v", args)
		}
	})

	t.Run("windowed", func(t *testing.T) {
		since := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		sql, args, err := repo.sumTotalsQuery(&since).ToSql()
		if err != nil {
			t.Fatalf("ToSql failed: %v", err)
		}

		wantSQL := "SELECT COALESCE(SUM(total), 0) AS revenue FROM sale_records WHERE sold_at >= $1"
		if sql != wantSQL {
			t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
		}
		if len(args) != 1 || args[0] != since {
			t.Errorf("args mismatch, want [%v] got %v", since, args)
		}
	})
}

func TestSalesRepo_TopSellersQuery(t *testing.T) {
	repo := NewSalesRepo(nil)

	sql, args, err := repo.topSellersQuery(5).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "SELECT s.item_id, i.name, SUM(s.quantity) AS quantity_sold, SUM(s.total) AS revenue " +
		"FROM sale_records s " +
		"JOIN stock_items i ON i.id = s.item_id " +
		"GROUP BY s.item_id, i.name " +
		"ORDER BY quantity_sold DESC, revenue DESC, i.name ASC " +
		"LIMIT 5"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}

	// Ties resolve by revenue, then name, so the ranking is stable
	// across runs.
	if !strings.Contains(sql, "quantity_sold DESC, revenue DESC, i.name ASC") {
		t.Error("ranking order clause missing")
	}
}
