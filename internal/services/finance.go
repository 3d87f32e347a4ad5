package services

import (
	"pos_reporting_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Order status constants, mirroring the lifecycle used by the POS backend.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusPreparing  = "preparing"
	StatusReady      = "ready"
	StatusServed     = "served"
	StatusInProgress = "in_progress"
	StatusPaid       = "paid"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// DeriveFinancials computes the canonical derived amounts for one order.
//
// With tax-inclusive pricing the stored subtotal is already the
// post-discount, tax-included net figure, so gross is rebuilt by adding
// discount and tax back on top and the stored total is trusted as the
// amount the customer paid. With tax-exclusive pricing the subtotal is the
// gross amount, revenue is subtotal minus discount (clamped at zero) and
// the customer additionally pays the tax.
func DeriveFinancials(order models.Order) models.DerivedOrderFinancials {
	derived := models.DerivedOrderFinancials{
		Discount: order.Discount,
		Tax:      order.Tax,
	}

	if order.PriceIncludesTax {
		derived.GrossAmount = order.Subtotal.Add(order.Discount).Add(order.Tax)
		derived.NetRevenue = order.Subtotal
		derived.CustomerPaid = order.Total
		return derived
	}

	derived.GrossAmount = order.Subtotal
	derived.NetRevenue = decimal.Max(decimal.Zero, order.Subtotal.Sub(order.Discount))
	derived.CustomerPaid = derived.NetRevenue.Add(order.Tax)
	return derived
}

// AllocateItems distributes the order's discount and tax across its line
// items proportionally to each item's share of the gross amount, and
// derives per-item revenue using the same tax-mode rule as the order level.
//
// An order whose gross amount is zero allocates nothing (ratio zero for
// every item). An empty item slice yields an empty result, which excludes
// the order from item-level aggregates entirely.
func AllocateItems(order models.Order, items []models.OrderItem) []models.ItemFinancials {
	if len(items) == 0 {
		return nil
	}

	derived := DeriveFinancials(order)
	allocated := make([]models.ItemFinancials, 0, len(items))

	for _, item := range items {
		raw := item.RawAmount()

		ratio := decimal.Zero
		if derived.GrossAmount.IsPositive() {
			ratio = raw.Div(derived.GrossAmount)
		}

		fin := models.ItemFinancials{
			OrderID:      order.ID,
			ProductID:    item.ProductID,
			ProductName:  item.ProductName,
			ProductSKU:   item.ProductSKU,
			CategoryName: item.CategoryName,
			Quantity:     item.Quantity,
			GrossAmount:  raw,
			Discount:     derived.Discount.Mul(ratio),
			Tax:          derived.Tax.Mul(ratio),
		}

		net := raw.Sub(fin.Discount)
		if order.PriceIncludesTax {
			net = net.Sub(fin.Tax)
		}
		fin.NetRevenue = decimal.Max(decimal.Zero, net)
		fin.CustomerPaid = fin.NetRevenue.Add(fin.Tax)

		allocated = append(allocated, fin)
	}
	return allocated
}
