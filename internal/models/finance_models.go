package models

import "github.com/shopspring/decimal"

// DerivedOrderFinancials is the canonical set of amounts computed from one
// order. It is recomputed on every aggregation pass and never stored.
//
// The closed invariant is:
//
//	GrossAmount = NetRevenue + Discount            (tax-exclusive pricing)
//	GrossAmount = NetRevenue + Discount + Tax      (tax-inclusive pricing)
type DerivedOrderFinancials struct {
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`
	CustomerPaid decimal.Decimal `json:"customer_paid"`
}

// ItemFinancials carries one order item's share of the order's financials
// after proportional allocation.
type ItemFinancials struct {
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSKU   *string         `json:"product_sku,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
	Quantity     int             `json:"quantity"`
	GrossAmount  decimal.Decimal `json:"gross_amount"`
	Discount     decimal.Decimal `json:"discount"`
	Tax          decimal.Decimal `json:"tax"`
	NetRevenue   decimal.Decimal `json:"net_revenue"`
	CustomerPaid decimal.Decimal `json:"customer_paid"`
}

// PaymentPart is one entry of a split payment.
type PaymentPart struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}
