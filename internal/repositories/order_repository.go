package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"pos_reporting_backend/internal/models"
	"pos_reporting_backend/pkg/utils"

	"github.com/lib/pq"
)

// OrderRepository supplies immutable order snapshots for aggregation.
// It is read-only: order CRUD belongs to the main POS backend.
type OrderRepository interface {
	// GetOrdersForRange returns all orders matching the query, ordered by
	// order time. Financial columns are coerced so malformed stored values
	// come back as zero rather than failing the snapshot.
	GetOrdersForRange(query models.OrderQuery) ([]models.Order, error)

	// GetItemsForOrders returns line items for the given orders, keyed by
	// order ID.
	GetItemsForOrders(orderIDs []int64) (map[int64][]models.OrderItem, error)
}

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderRepository.
func NewOrderRepository(db *sql.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetOrdersForRange(query models.OrderQuery) ([]models.Order, error) {
	orders := []models.Order{}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(`
        SELECT
            o.id, o.order_number, o.status,
            o.subtotal, o.discount, o.tax, o.total, o.price_includes_tax,
            o.payment_method,
            o.customer_id, o.customer_name,
            o.employee_id, o.employee_name,
            o.table_id, o.ordered_at, o.created_at
        FROM orders o
    `)

	var conditions []string
	var args []interface{}
	argCounter := 1

	if query.StartDate != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE(o.ordered_at, o.created_at) >= $%d", argCounter))
		args = append(args, *query.StartDate)
		argCounter++
	}
	if query.EndDate != nil {
		conditions = append(conditions, fmt.Sprintf("COALESCE(o.ordered_at, o.created_at) < $%d", argCounter))
		args = append(args, *query.EndDate)
		argCounter++
	}
	if len(query.Statuses) > 0 {
		conditions = append(conditions, fmt.Sprintf("o.status = ANY($%d)", argCounter))
		args = append(args, pq.Array(query.Statuses))
		argCounter++
	}
	if query.EmployeeID != nil {
		conditions = append(conditions, fmt.Sprintf("o.employee_id = $%d", argCounter))
		args = append(args, *query.EmployeeID)
		argCounter++
	}
	if query.CustomerID != nil {
		conditions = append(conditions, fmt.Sprintf("o.customer_id = $%d", argCounter))
		args = append(args, *query.CustomerID)
		argCounter++
	}

	if len(conditions) > 0 {
		queryBuilder.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	queryBuilder.WriteString(" ORDER BY COALESCE(o.ordered_at, o.created_at), o.id")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying orders: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var o models.Order
		var orderNumber, paymentMethod sql.NullString
		var subtotal, discount, tax, total sql.NullString
		var customerName, employeeName sql.NullString
		var orderedAt sql.NullTime

		err := rows.Scan(
			&o.ID, &orderNumber, &o.Status,
			&subtotal, &discount, &tax, &total, &o.PriceIncludesTax,
			&paymentMethod,
			&o.CustomerID, &customerName,
			&o.EmployeeID, &employeeName,
			&o.TableID, &orderedAt, &o.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order: %v", ErrDatabaseError, err)
		}

		if orderNumber.Valid {
			o.OrderNumber = orderNumber.String
		}
		o.Subtotal = utils.CoerceAmount(subtotal.String)
		o.Discount = utils.CoerceAmount(discount.String)
		o.Tax = utils.CoerceAmount(tax.String)
		o.Total = utils.CoerceAmount(total.String)
		if paymentMethod.Valid {
			o.PaymentMethod = paymentMethod.String
		}
		if customerName.Valid {
			name := customerName.String
			o.CustomerName = &name
		}
		if employeeName.Valid {
			name := employeeName.String
			o.EmployeeName = &name
		}
		if orderedAt.Valid {
			t := orderedAt.Time
			o.OrderedAt = &t
		}
		orders = append(orders, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order rows: %v", ErrDatabaseError, err)
	}
	return orders, nil
}

func (r *orderRepository) GetItemsForOrders(orderIDs []int64) (map[int64][]models.OrderItem, error) {
	items := make(map[int64][]models.OrderItem, len(orderIDs))
	if len(orderIDs) == 0 {
		return items, nil
	}

	query := `
		SELECT
		    oi.order_id, oi.product_id, p.name, p.sku,
		    oi.quantity, oi.unit_price,
		    p.category_id, pc.name AS category_name
		FROM order_items oi
		JOIN products p ON oi.product_id = p.id
		LEFT JOIN product_categories pc ON p.category_id = pc.id
		WHERE oi.order_id = ANY($1)
		ORDER BY oi.order_id, oi.id`

	rows, err := r.db.Query(query, pq.Array(orderIDs))
	if err != nil {
		return nil, fmt.Errorf("%w: querying order items: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	for rows.Next() {
		var item models.OrderItem
		var sku, categoryName sql.NullString
		var unitPrice sql.NullString

		err := rows.Scan(
			&item.OrderID, &item.ProductID, &item.ProductName, &sku,
			&item.Quantity, &unitPrice,
			&item.CategoryID, &categoryName,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanning order item: %v", ErrDatabaseError, err)
		}

		if sku.Valid {
			s := sku.String
			item.ProductSKU = &s
		}
		if categoryName.Valid {
			name := categoryName.String
			item.CategoryName = &name
		}
		item.UnitPrice = utils.CoerceAmount(unitPrice.String)
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		items[item.OrderID] = append(items[item.OrderID], item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating order item rows: %v", ErrDatabaseError, err)
	}
	return items, nil
}
