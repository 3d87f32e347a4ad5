package services

import (
	"sort"
	"time"

	"pos_reporting_backend/internal/models"
	"pos_reporting_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

// DateKeyLayout is the grouping key format for the daily report.
const DateKeyLayout = "2006-01-02"

// groupAccumulator carries per-group running sums plus the identity set
// backing the unique-customer count.
type groupAccumulator struct {
	group     models.AggregateGroup
	customers map[string]struct{}
}

type aggregation struct {
	dimension models.Dimension
	groups    map[string]*groupAccumulator
	// global identity set for the grand-total unique-customer count
	customers map[string]struct{}
	cancelled struct {
		orders  int
		revenue decimal.Decimal
	}
}

// AggregateByDimension groups a snapshot of orders by the chosen dimension
// and sums the derived financial fields per group. It returns the group
// list ordered by key plus a grand-total row summed across all groups.
//
// Revenue reports include only paid and completed orders. The sales-channel
// dimension additionally admits cancelled orders, tracked in the separate
// cancelled fields rather than merged into completed totals.
//
// The items map is only consulted for the product dimension, where orders
// are first expanded through AllocateItems; an order with no items after
// filtering drops out of product aggregates entirely.
func AggregateByDimension(orders []models.Order, items map[int64][]models.OrderItem, dimension models.Dimension) ([]models.AggregateGroup, models.AggregateGroup) {
	agg := &aggregation{
		dimension: dimension,
		groups:    make(map[string]*groupAccumulator),
		customers: make(map[string]struct{}),
	}

	for _, order := range orders {
		if !includeInRevenue(order.Status) {
			if dimension == models.DimensionChannel && order.Status == StatusCancelled {
				agg.addCancelled(order)
			}
			continue
		}

		switch dimension {
		case models.DimensionProduct:
			agg.addOrderByProduct(order, items[order.ID])
		default:
			key, label, ok := agg.groupKey(order)
			if !ok {
				continue
			}
			derived := DeriveFinancials(order)
			acc := agg.accumulator(key, label)
			acc.addDerived(derived)
			acc.group.OrderCount++
			acc.addPayments(DecomposePayments(order, derived), decimal.NewFromInt(1))
			acc.addCustomer(customerIdentity(order))
			agg.customers[customerIdentity(order)] = struct{}{}
		}
	}

	return agg.finish()
}

func includeInRevenue(status string) bool {
	return status == StatusPaid || status == StatusCompleted
}

// customerIdentity implements the fallback chain used both for the
// customer dimension key and for unique-customer counting: customer ID,
// then customer name, then a synthetic per-order identity so unrelated
// guest orders never collapse into one bucket.
func customerIdentity(order models.Order) string {
	if order.CustomerID != nil {
		return "customer:" + utils.Int64ToStr(*order.CustomerID)
	}
	if order.CustomerName != nil && *order.CustomerName != "" {
		return "name:" + *order.CustomerName
	}
	return "order:" + utils.Int64ToStr(order.ID)
}

// orderTime resolves the order's effective timestamp, preferring orderedAt
// and falling back to createdAt.
func orderTime(order models.Order) (time.Time, bool) {
	if order.OrderedAt != nil && !order.OrderedAt.IsZero() {
		return *order.OrderedAt, true
	}
	if !order.CreatedAt.IsZero() {
		return order.CreatedAt, true
	}
	return time.Time{}, false
}

func channelKey(order models.Order) (string, string) {
	if order.TableID != nil {
		return models.ChannelDineIn, "Dine-in"
	}
	return models.ChannelTakeaway, "Takeaway"
}

// groupKey resolves the grouping key and display label for non-product
// dimensions. ok is false when the order cannot be keyed, which only
// happens for the date dimension when no usable timestamp exists.
func (a *aggregation) groupKey(order models.Order) (key, label string, ok bool) {
	switch a.dimension {
	case models.DimensionDate:
		t, valid := orderTime(order)
		if !valid {
			utils.LogWarn("Order has no usable timestamp, skipped from time grouping",
				map[string]interface{}{"order_id": order.ID})
			return "", "", false
		}
		day := t.Local().Format(DateKeyLayout)
		return day, day, true
	case models.DimensionEmployee:
		if order.EmployeeID != nil {
			key = utils.Int64ToStr(*order.EmployeeID)
		} else if order.EmployeeName != nil && *order.EmployeeName != "" {
			key = *order.EmployeeName
		} else {
			key = "unknown"
		}
		if order.EmployeeName != nil {
			label = *order.EmployeeName
		}
		return key, label, true
	case models.DimensionCustomer:
		key = customerIdentity(order)
		label = "Guest"
		if order.CustomerName != nil && *order.CustomerName != "" {
			label = *order.CustomerName
		}
		return key, label, true
	case models.DimensionChannel:
		key, label = channelKey(order)
		return key, label, true
	}
	return "", "", false
}

// addOrderByProduct expands one order through the line-item allocator and
// folds each product's share into its group. The order's decomposed
// payments are split pro-rata by each product's share of customerPaid so
// payment totals never double count across product groups.
func (a *aggregation) addOrderByProduct(order models.Order, items []models.OrderItem) {
	allocated := AllocateItems(order, items)
	if len(allocated) == 0 {
		return
	}

	derived := DeriveFinancials(order)
	payments := DecomposePayments(order, derived)
	identity := customerIdentity(order)
	a.customers[identity] = struct{}{}

	// Merge lines of the same product within the order first so the order
	// counts once per product group.
	perProduct := make(map[int64]*models.ItemFinancials)
	var productOrder []int64
	for i := range allocated {
		fin := allocated[i]
		if existing, found := perProduct[fin.ProductID]; found {
			existing.Quantity += fin.Quantity
			existing.GrossAmount = existing.GrossAmount.Add(fin.GrossAmount)
			existing.Discount = existing.Discount.Add(fin.Discount)
			existing.Tax = existing.Tax.Add(fin.Tax)
			existing.NetRevenue = existing.NetRevenue.Add(fin.NetRevenue)
			existing.CustomerPaid = existing.CustomerPaid.Add(fin.CustomerPaid)
			continue
		}
		perProduct[fin.ProductID] = &fin
		productOrder = append(productOrder, fin.ProductID)
	}

	for _, productID := range productOrder {
		fin := perProduct[productID]
		acc := a.accumulator(utils.Int64ToStr(productID), fin.ProductName)
		acc.group.OrderCount++
		acc.group.TotalQuantity += int64(fin.Quantity)
		acc.group.GrossAmount = acc.group.GrossAmount.Add(fin.GrossAmount)
		acc.group.Discount = acc.group.Discount.Add(fin.Discount)
		acc.group.Tax = acc.group.Tax.Add(fin.Tax)
		acc.group.NetRevenue = acc.group.NetRevenue.Add(fin.NetRevenue)
		acc.group.CustomerPaid = acc.group.CustomerPaid.Add(fin.CustomerPaid)

		share := decimal.Zero
		if derived.CustomerPaid.IsPositive() {
			share = fin.CustomerPaid.Div(derived.CustomerPaid)
		}
		acc.addPayments(payments, share)
		acc.addCustomer(identity)
	}
}

func (a *aggregation) addCancelled(order models.Order) {
	derived := DeriveFinancials(order)
	key, label := channelKey(order)
	acc := a.accumulator(key, label)
	acc.group.CancelledOrders++
	acc.group.CancelledRevenue = acc.group.CancelledRevenue.Add(derived.NetRevenue)
	a.cancelled.orders++
	a.cancelled.revenue = a.cancelled.revenue.Add(derived.NetRevenue)
}

func (a *aggregation) accumulator(key, label string) *groupAccumulator {
	acc, found := a.groups[key]
	if !found {
		acc = &groupAccumulator{
			group:     models.AggregateGroup{Key: key, Label: label},
			customers: make(map[string]struct{}),
		}
		a.groups[key] = acc
	}
	if acc.group.Label == "" && label != "" {
		acc.group.Label = label
	}
	return acc
}

func (g *groupAccumulator) addDerived(d models.DerivedOrderFinancials) {
	g.group.GrossAmount = g.group.GrossAmount.Add(d.GrossAmount)
	g.group.Discount = g.group.Discount.Add(d.Discount)
	g.group.Tax = g.group.Tax.Add(d.Tax)
	g.group.NetRevenue = g.group.NetRevenue.Add(d.NetRevenue)
	g.group.CustomerPaid = g.group.CustomerPaid.Add(d.CustomerPaid)
}

func (g *groupAccumulator) addPayments(payments map[string]decimal.Decimal, share decimal.Decimal) {
	if share.IsZero() {
		return
	}
	if g.group.PaymentTotals == nil {
		g.group.PaymentTotals = make(map[string]decimal.Decimal)
	}
	for method, amount := range payments {
		g.group.PaymentTotals[method] = g.group.PaymentTotals[method].Add(amount.Mul(share))
	}
}

func (g *groupAccumulator) addCustomer(identity string) {
	g.customers[identity] = struct{}{}
}

// finish materializes the group list (ordered by key for a deterministic
// base ordering) and the grand-total row summed across all groups.
func (a *aggregation) finish() ([]models.AggregateGroup, models.AggregateGroup) {
	keys := make([]string, 0, len(a.groups))
	for key := range a.groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	groups := make([]models.AggregateGroup, 0, len(keys))
	total := models.AggregateGroup{Key: "total"}
	for _, key := range keys {
		acc := a.groups[key]
		acc.group.UniqueCustomers = len(acc.customers)
		groups = append(groups, acc.group)

		total.OrderCount += acc.group.OrderCount
		total.TotalQuantity += acc.group.TotalQuantity
		total.GrossAmount = total.GrossAmount.Add(acc.group.GrossAmount)
		total.Discount = total.Discount.Add(acc.group.Discount)
		total.Tax = total.Tax.Add(acc.group.Tax)
		total.NetRevenue = total.NetRevenue.Add(acc.group.NetRevenue)
		total.CustomerPaid = total.CustomerPaid.Add(acc.group.CustomerPaid)
		for method, amount := range acc.group.PaymentTotals {
			if total.PaymentTotals == nil {
				total.PaymentTotals = make(map[string]decimal.Decimal)
			}
			total.PaymentTotals[method] = total.PaymentTotals[method].Add(amount)
		}
	}
	total.UniqueCustomers = len(a.customers)
	total.CancelledOrders = a.cancelled.orders
	total.CancelledRevenue = a.cancelled.revenue

	return groups, total
}
