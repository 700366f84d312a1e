package inventory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	mu    sync.Mutex
	items map[id.ID]*StockItem
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{items: make(map[id.ID]*StockItem)}
}

func (f *fakeRepo) Create(ctx context.Context, item *StockItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, itemID id.ID) (*StockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if item, ok := f.items[itemID]; ok {
		copied := *item
		return &copied, nil
	}
	return nil, apperror.NewNotFound("stock item", itemID.String())
}

func (f *fakeRepo) List(ctx context.Context) ([]StockItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]StockItem, 0, len(f.items))
	for _, item := range f.items {
		out = append(out, *item)
	}
	return out, nil
}

func (f *fakeRepo) Update(ctx context.Context, item *StockItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[item.ID]; !ok {
		return apperror.NewNotFound("stock item", item.ID.String())
	}
	copied := *item
	f.items[item.ID] = &copied
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, itemID id.ID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[itemID]; !ok {
		return apperror.NewNotFound("stock item", itemID.String())
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeRepo) DecrementOnHand(ctx context.Context, itemID id.ID, qty int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[itemID]
	if !ok {
		return false, apperror.NewNotFound("stock item", itemID.String())
	}
	if item.QuantityOnHand < qty {
		return false, nil
	}
	item.QuantityOnHand -= qty
	return true, nil
}

// fakeSaleRefs implements SaleReferenceChecker.
type fakeSaleRefs struct {
	referenced map[id.ID]bool
}

func (f *fakeSaleRefs) HasSalesForItem(ctx context.Context, itemID id.ID) (bool, error) {
	return f.referenced[itemID], nil
}

func newTestService() (*Service, *fakeRepo, *fakeSaleRefs) {
	repo := newFakeRepo()
	refs := &fakeSaleRefs{referenced: make(map[id.ID]bool)}
	return NewService(repo, refs), repo, refs
}

func TestService_CreateAndGet(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item := NewStockItem("Espresso Beans", "Coffee", types.MustMoney("18.50"), 40, 10)
	created, err := svc.Create(ctx, item)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Espresso Beans", got.Name)
	assert.True(t, got.UnitPrice.Equal(types.MustMoney("18.50")))
	assert.Equal(t, 40, got.QuantityOnHand)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name string
		item *StockItem
	}{
		{"missing name", NewStockItem("", "Coffee", types.MustMoney("1.00"), 1, 1)},
		{"missing category", NewStockItem("Beans", "", types.MustMoney("1.00"), 1, 1)},
		{"negative price", NewStockItem("Beans", "Coffee", types.MustMoney("-1.00"), 1, 1)},
		{"negative quantity", NewStockItem("Beans", "Coffee", types.MustMoney("1.00"), -1, 1)},
		{"negative threshold", NewStockItem("Beans", "Coffee", types.MustMoney("1.00"), 1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tt.item)
			require.Error(t, err)
			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestService_UpdatePatch(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, NewStockItem("Beans", "Coffee", types.MustMoney("10.00"), 5, 2))
	require.NoError(t, err)

	newPrice := types.MustMoney("12.00")
	newQty := 8
	updated, err := svc.Update(ctx, item.ID, Patch{
		UnitPrice:      &newPrice,
		QuantityOnHand: &newQty,
	})
	require.NoError(t, err)
	assert.True(t, updated.UnitPrice.Equal(newPrice))
	assert.Equal(t, 8, updated.QuantityOnHand)
	// Untouched fields survive the patch.
	assert.Equal(t, "Beans", updated.Name)
	assert.Equal(t, 2, updated.ReorderThreshold)
}

func TestService_UpdateRejectsNegativeQuantity(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, NewStockItem("Beans", "Coffee", types.MustMoney("10.00"), 5, 2))
	require.NoError(t, err)

	negative := -3
	_, err = svc.Update(ctx, item.ID, Patch{QuantityOnHand: &negative})
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)

	// Item state is unchanged after the rejected patch.
	got, err := svc.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.QuantityOnHand)
}

func TestService_UpdateUnknownItem(t *testing.T) {
	svc, _, _ := newTestService()

	name := "x"
	_, err := svc.Update(context.Background(), id.New(), Patch{Name: &name})
	assert.True(t, apperror.IsNotFound(err))
}

func TestService_DeleteRefusedWhenReferenced(t *testing.T) {
	svc, _, refs := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, NewStockItem("Beans", "Coffee", types.MustMoney("10.00"), 5, 2))
	require.NoError(t, err)
	refs.referenced[item.ID] = true

	err = svc.Delete(ctx, item.ID)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeConflict, appErr.Code)

	// Item survives the refused delete.
	_, err = svc.Get(ctx, item.ID)
	assert.NoError(t, err)
}

func TestService_Delete(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	item, err := svc.Create(ctx, NewStockItem("Beans", "Coffee", types.MustMoney("10.00"), 5, 2))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))

	_, err = svc.Get(ctx, item.ID)
	assert.True(t, apperror.IsNotFound(err))

	// Deleting again reports not found.
	err = svc.Delete(ctx, item.ID)
	assert.True(t, apperror.IsNotFound(err))
}

func TestStockItem_IsLowStock(t *testing.T) {
	item := NewStockItem("Beans", "Coffee", types.MustMoney("10.00"), 5, 5)
	assert.True(t, item.IsLowStock())

	item.QuantityOnHand = 6
	assert.False(t, item.IsLowStock())

	item.QuantityOnHand = 0
	assert.True(t, item.IsLowStock())
}
