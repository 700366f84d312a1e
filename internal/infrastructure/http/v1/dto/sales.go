package dto

import (
	"time"

	"stocktrack/internal/core/types"
	"stocktrack/internal/domain/sales"
)

// CustomerPayload is the optional customer sub-record of a sale.
type CustomerPayload struct {
	Name  *string `json:"name,omitempty"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
}

// ToCustomer converts to the domain customer.
func (p *CustomerPayload) ToCustomer() sales.Customer {
	if p == nil {
		return sales.Customer{}
	}
	return sales.Customer{
		Name:  p.Name,
		Email: p.Email,
		Phone: p.Phone,
	}
}

// RecordSaleRequest for POST /sales. Quantity is a pointer so a
// missing quantity is a validation error, not a zero sale.
type RecordSaleRequest struct {
	ItemID   string           `json:"itemId"`
	Quantity *int             `json:"quantity"`
	Customer *CustomerPayload `json:"customer,omitempty"`
}

// SaleResponse is the API shape of a sale record.
type SaleResponse struct {
	ID              string           `json:"id"`
	ItemID          string           `json:"itemId"`
	ItemName        string           `json:"itemName,omitempty"`
	Quantity        int              `json:"quantity"`
	UnitPriceAtSale types.Money      `json:"unitPriceAtSale"`
	Total           types.Money      `json:"total"`
	Customer        *CustomerPayload `json:"customer,omitempty"`
	SoldAt          time.Time        `json:"soldAt"`
}

// FromSaleRecord creates a SaleResponse from a domain record.
func FromSaleRecord(s *sales.SaleRecord) SaleResponse {
	resp := SaleResponse{
		ID:              s.ID.String(),
		ItemID:          s.ItemID.String(),
		ItemName:        s.ItemName,
		Quantity:        s.Quantity,
		UnitPriceAtSale: s.UnitPriceAtSale,
		Total:           s.Total,
		SoldAt:          s.SoldAt,
	}
	if !s.Customer.IsEmpty() {
		resp.Customer = &CustomerPayload{
			Name:  s.Customer.Name,
			Email: s.Customer.Email,
			Phone: s.Customer.Phone,
		}
	}
	return resp
}

// FromSaleRecords maps a list of domain records.
func FromSaleRecords(records []sales.SaleRecord) []SaleResponse {
	out := make([]SaleResponse, 0, len(records))
	for i := range records {
		out = append(out, FromSaleRecord(&records[i]))
	}
	return out
}

// TopSellerResponse is one entry of the top-sellers ranking.
type TopSellerResponse struct {
	ItemID       string      `json:"itemId"`
	Name         string      `json:"name"`
	QuantitySold int         `json:"quantitySold"`
	Revenue      types.Money `json:"revenue"`
}

// StatisticsResponse for GET /sales/stats.
type StatisticsResponse struct {
	TotalRevenue    types.Money         `json:"totalRevenue"`
	MonthlyRevenue  types.Money         `json:"monthlyRevenue"`
	WeeklyRevenue   types.Money         `json:"weeklyRevenue"`
	TopSellingItems []TopSellerResponse `json:"topSellingItems"`
}

// FromStatistics creates a StatisticsResponse from a domain snapshot.
func FromStatistics(s *sales.StatisticsSnapshot) StatisticsResponse {
	top := make([]TopSellerResponse, 0, len(s.TopSellingItems))
	for _, t := range s.TopSellingItems {
		top = append(top, TopSellerResponse{
			ItemID:       t.ItemID.String(),
			Name:         t.Name,
			QuantitySold: t.QuantitySold,
			Revenue:      t.Revenue,
		})
	}
	return StatisticsResponse{
		TotalRevenue:    s.TotalRevenue,
		MonthlyRevenue:  s.MonthlyRevenue,
		WeeklyRevenue:   s.WeeklyRevenue,
		TopSellingItems: top,
	}
}
