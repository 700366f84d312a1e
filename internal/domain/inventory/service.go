package inventory

import (
	"context"
	"fmt"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/pkg/logger"
)

// Service provides business operations for the inventory store.
type Service struct {
	repo     Repository
	saleRefs SaleReferenceChecker
}

// NewService creates a new inventory service.
func NewService(repo Repository, saleRefs SaleReferenceChecker) *Service {
	return &Service{
		repo:     repo,
		saleRefs: saleRefs,
	}
}

// Create validates and persists a new stock item.
func (s *Service) Create(ctx context.Context, item *StockItem) (*StockItem, error) {
	if err := item.Validate(ctx); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("create stock item: %w", err)
	}

	logger.Info(ctx, "stock item created",
		"item_id", item.ID,
		"name", item.Name)

	return item, nil
}

// Get retrieves a stock item by id.
func (s *Service) Get(ctx context.Context, itemID id.ID) (*StockItem, error) {
	return s.repo.GetByID(ctx, itemID)
}

// List returns all stock items.
func (s *Service) List(ctx context.Context) ([]StockItem, error) {
	return s.repo.List(ctx)
}

// Update applies a partial patch to an existing item.
func (s *Service) Update(ctx context.Context, itemID id.ID, patch Patch) (*StockItem, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if err := patch.Apply(ctx, item); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("update stock item: %w", err)
	}

	logger.Info(ctx, "stock item updated", "item_id", item.ID)

	return item, nil
}

// Delete removes a stock item. Items referenced by sale history cannot
// be deleted: sale records are immutable history and must not dangle.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	if _, err := s.repo.GetByID(ctx, itemID); err != nil {
		return err
	}

	referenced, err := s.saleRefs.HasSalesForItem(ctx, itemID)
	if err != nil {
		return fmt.Errorf("check sale references: %w", err)
	}
	if referenced {
		return apperror.NewConflict("item has recorded sales and cannot be deleted").
			WithDetail("item_id", itemID.String())
	}

	if err := s.repo.Delete(ctx, itemID); err != nil {
		return fmt.Errorf("delete stock item: %w", err)
	}

	logger.Info(ctx, "stock item deleted", "item_id", itemID)

	return nil
}
