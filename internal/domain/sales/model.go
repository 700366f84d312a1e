// Package sales provides the sale ledger and statistics rollups.
package sales

import (
	"context"
	"regexp"
	"time"

	"stocktrack/internal/core/apperror"
	"stocktrack/internal/core/id"
	"stocktrack/internal/core/types"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\d{10}$`)
)

// Customer is an optional sub-record attached to a sale. Each field is
// independently optional but validated when present.
type Customer struct {
	Name  *string `db:"customer_name" json:"name,omitempty"`
	Email *string `db:"customer_email" json:"email,omitempty"`
	Phone *string `db:"customer_phone" json:"phone,omitempty"`
}

// Validate checks the optional fields. Malformed customer data rejects
// the whole sale rather than being silently dropped.
func (c *Customer) Validate(ctx context.Context) error {
	if c == nil {
		return nil
	}
	if c.Email != nil && *c.Email != "" && !emailPattern.MatchString(*c.Email) {
		return apperror.NewValidation("customer email is not a valid email address").
			WithDetail("field", "customer.email")
	}
	if c.Phone != nil && *c.Phone != "" && !phonePattern.MatchString(*c.Phone) {
		return apperror.NewValidation("customer phone must be exactly 10 digits").
			WithDetail("field", "customer.phone")
	}
	return nil
}

// IsEmpty reports whether no customer field was supplied.
func (c *Customer) IsEmpty() bool {
	return c == nil || (c.Name == nil && c.Email == nil && c.Phone == nil)
}

// SaleRecord is an immutable snapshot of one completed sale.
// UnitPriceAtSale is captured at sale time and never re-read from the
// item; Total always equals Quantity x UnitPriceAtSale exactly.
type SaleRecord struct {
	ID              id.ID       `db:"id" json:"id"`
	ItemID          id.ID       `db:"item_id" json:"itemId"`
	Quantity        int         `db:"quantity" json:"quantity"`
	UnitPriceAtSale types.Money `db:"unit_price_at_sale" json:"unitPriceAtSale"`
	Total           types.Money `db:"total" json:"total"`
	Customer        Customer    `db:"" json:"customer,omitempty"`
	SoldAt          time.Time   `db:"sold_at" json:"soldAt"`

	// ItemName is a read-side join for display, not a stored field.
	ItemName string `db:"item_name" json:"itemName,omitempty"`
}

// NewSaleRecord builds a sale record with the total derived from the
// snapshotted price. The total is never set independently.
func NewSaleRecord(itemID id.ID, quantity int, unitPrice types.Money, customer Customer, soldAt time.Time) *SaleRecord {
	return &SaleRecord{
		ID:              id.New(),
		ItemID:          itemID,
		Quantity:        quantity,
		UnitPriceAtSale: unitPrice,
		Total:           unitPrice.Mul(types.MoneyFromInt(int64(quantity))),
		Customer:        customer,
		SoldAt:          soldAt,
	}
}

// StatisticsSnapshot is a derived view over the ledger. It is computed
// on demand and never persisted.
type StatisticsSnapshot struct {
	TotalRevenue    types.Money `json:"totalRevenue"`
	MonthlyRevenue  types.Money `json:"monthlyRevenue"`
	WeeklyRevenue   types.Money `json:"weeklyRevenue"`
	TopSellingItems []TopSeller `json:"topSellingItems"`
}

// TopSeller is one entry of the top-sellers ranking.
type TopSeller struct {
	ItemID       id.ID       `db:"item_id" json:"itemId"`
	Name         string      `db:"name" json:"name"`
	QuantitySold int         `db:"quantity_sold" json:"quantitySold"`
	Revenue      types.Money `db:"revenue" json:"revenue"`
}
