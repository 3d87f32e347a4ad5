package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is an immutable snapshot of one order as fetched from the order
// store. Financial fields are already coerced to non-negative decimals by
// the repository; malformed stored values arrive here as zero.
type Order struct {
	ID               int64           `json:"id"`
	OrderNumber      string          `json:"order_number"`
	Status           string          `json:"status"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	Discount         decimal.Decimal `json:"discount"`
	Tax              decimal.Decimal `json:"tax"`
	Total            decimal.Decimal `json:"total"`
	PriceIncludesTax bool            `json:"price_includes_tax"`

	// PaymentMethod is the raw stored field: either a bare method name or a
	// JSON-encoded array of {method, amount} entries for split payments.
	PaymentMethod string `json:"payment_method"`

	CustomerID   *int64  `json:"customer_id,omitempty"`
	CustomerName *string `json:"customer_name,omitempty"`
	EmployeeID   *int64  `json:"employee_id,omitempty"`
	EmployeeName *string `json:"employee_name,omitempty"`

	// TableID presence marks the order as dine-in; nil means takeaway.
	TableID *int64 `json:"table_id,omitempty"`

	OrderedAt *time.Time `json:"ordered_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// OrderItem is one line of an order. The raw line amount is
// UnitPrice * Quantity; allocation of order-level discount and tax down to
// items happens in the services layer.
type OrderItem struct {
	OrderID      int64           `json:"order_id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSKU   *string         `json:"product_sku,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	CategoryID   *int64          `json:"category_id,omitempty"`
	CategoryName *string         `json:"category_name,omitempty"`
}

// RawAmount returns the pre-discount line amount for this item.
func (i OrderItem) RawAmount() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// OrderQuery defines the snapshot selection passed to the order store.
// Date bounds apply to ordered_at with created_at as fallback.
type OrderQuery struct {
	StartDate  *time.Time
	EndDate    *time.Time
	Statuses   []string
	EmployeeID *int64
	CustomerID *int64
}
