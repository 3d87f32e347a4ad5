package models

import (
	"github.com/shopspring/decimal"
)

// Dimension is the grouping axis for an aggregation pass.
type Dimension string

const (
	DimensionDate     Dimension = "date"
	DimensionProduct  Dimension = "product"
	DimensionEmployee Dimension = "employee"
	DimensionCustomer Dimension = "customer"
	DimensionChannel  Dimension = "channel"
)

// Sales channel keys. An order with a table is dine-in, otherwise takeaway.
const (
	ChannelDineIn   = "dine_in"
	ChannelTakeaway = "takeaway"
)

// ReportFilters holds the caller-supplied filter criteria for a report.
// Date bounds are parsed at the handler; the remaining filters narrow the
// snapshot before aggregation.
type ReportFilters struct {
	StartDate  *string `form:"start_date"` // YYYY-MM-DD
	EndDate    *string `form:"end_date"`   // YYYY-MM-DD, inclusive
	CategoryID *int64  `form:"category_id"`
	Search     string  `form:"q"` // product name/SKU substring
	EmployeeID *int64  `form:"employee_id"`
	CustomerID *int64  `form:"customer_id"`
	Status     *string `form:"status"`
	Floor      *string `form:"floor"`
}

// AggregateGroup holds the summed figures for one dimension value.
// Cancelled fields are only populated by the sales-channel report, which
// tracks cancelled orders separately from completed totals.
type AggregateGroup struct {
	Key             string                     `json:"key"`
	Label           string                     `json:"label,omitempty"`
	OrderCount      int                        `json:"order_count"`
	TotalQuantity   int64                      `json:"total_quantity,omitempty"`
	GrossAmount     decimal.Decimal            `json:"gross_amount"`
	Discount        decimal.Decimal            `json:"discount"`
	Tax             decimal.Decimal            `json:"tax"`
	NetRevenue      decimal.Decimal            `json:"net_revenue"`
	CustomerPaid    decimal.Decimal            `json:"customer_paid"`
	UniqueCustomers int                        `json:"unique_customers"`
	PaymentTotals   map[string]decimal.Decimal `json:"payment_totals,omitempty"`

	CancelledOrders  int             `json:"cancelled_orders,omitempty"`
	CancelledRevenue decimal.Decimal `json:"cancelled_revenue"`
}

// ReportPage is one deterministic page of aggregated groups plus the
// grand total over the whole group list (not just the page).
type ReportPage struct {
	Groups     []AggregateGroup `json:"groups"`
	Page       int              `json:"page"`
	PageSize   int              `json:"page_size"`
	TotalCount int              `json:"total_count"`
	TotalPages int              `json:"total_pages"`
	GrandTotal AggregateGroup   `json:"grand_total"`
}

// ReportSummary is the period-level rollup used by the dashboard.
type ReportSummary struct {
	OrderCount        int                        `json:"order_count"`
	GrossAmount       decimal.Decimal            `json:"gross_amount"`
	Discount          decimal.Decimal            `json:"discount"`
	Tax               decimal.Decimal            `json:"tax"`
	NetRevenue        decimal.Decimal            `json:"net_revenue"`
	CustomerPaid      decimal.Decimal            `json:"customer_paid"`
	UniqueCustomers   int                        `json:"unique_customers"`
	AverageOrderValue decimal.Decimal            `json:"average_order_value"`
	PaymentTotals     map[string]decimal.Decimal `json:"payment_totals,omitempty"`
	CancelledOrders   int                        `json:"cancelled_orders"`
	CancelledRevenue  decimal.Decimal            `json:"cancelled_revenue"`
}

// Sort keys accepted by the paginator.
const (
	SortByNetRevenue   = "net_revenue"
	SortByCustomerPaid = "customer_paid"
	SortByGrossAmount  = "gross_amount"
	SortByOrderCount   = "order_count"
	SortByKey          = "key"
)

// PageRequest controls sorting and paging of an aggregated group list.
// KeyAscending sets the direction of the dimension-key tie-break (and of
// the primary sort when SortBy is "key"): ascending for the daily report,
// descending elsewhere.
type PageRequest struct {
	SortBy       string `form:"sort"`
	KeyAscending bool   `form:"-"`
	Page         int    `form:"page"`
	PageSize     int    `form:"page_size"`
}
