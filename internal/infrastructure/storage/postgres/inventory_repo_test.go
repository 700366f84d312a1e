package postgres

import (
	"testing"
	"time"

	"stocktrack/internal/core/id"
)

func TestInventoryRepo_DecrementQuery(t *testing.T) {
	repo := NewInventoryRepo(nil)
	itemID := id.MustParse("018f3b1a-7c2e-7d10-b3a5-25d1a1b3e0aa")
	now := time.Now()

	sql, args, err := repo.decrementQuery(itemID, 3, now).ToSql()
	if err != nil {
		t.Fatalf("ToSql failed: %v", err)
	}

	wantSQL := "UPDATE stock_items SET quantity_on_hand = quantity_on_hand - $1, updated_at = $2 WHERE id = $3 AND quantity_on_hand >= $4"
	if sql != wantSQL {
		t.Errorf("SQL mismatch\nwant: %s\ngot:  %s", wantSQL, sql)
	}

	if len(args) != 4 {
		t.Fatalf("args count mismatch, want 4 got %d", len(args))
	}
	if args[0] != 3 {
		t.Errorf("decrement arg mismatch, want 3 got %v", args[0])
	}
	if args[2] != itemID {
		t.Errorf("id arg mismatch, want %v got %v", itemID, args[2])
	}
	// The guard re-uses the same quantity: the check and the subtract
	// are one statement.
	if args[3] != 3 {
		t.Errorf("guard arg mismatch, want 3 got %v", args[3])
	}
}
