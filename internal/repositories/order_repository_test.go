package repositories

import (
	"errors"
	"testing"
	"time"

	"pos_reporting_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var orderColumns = []string{
	"id", "order_number", "status",
	"subtotal", "discount", "tax", "total", "price_includes_tax",
	"payment_method",
	"customer_id", "customer_name",
	"employee_id", "employee_name",
	"table_id", "ordered_at", "created_at",
}

func TestGetOrdersForRangeScansAndCoerces(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	createdAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows(orderColumns).
		AddRow(1, "ORD-001", "completed",
			"100000", "10000", "8000", "98000", false,
			"cash",
			nil, "Anh",
			int64(3), "Linh",
			nil, nil, createdAt).
		AddRow(2, nil, "paid",
			"garbage", "-500", nil, "50000", true,
			nil,
			int64(7), nil,
			nil, nil,
			int64(5), createdAt, createdAt)

	mock.ExpectQuery("FROM orders o").WillReturnRows(rows)

	repo := NewOrderRepository(db)
	orders, err := repo.GetOrdersForRange(models.OrderQuery{})
	require.NoError(t, err)
	require.Len(t, orders, 2)

	first := orders[0]
	assert.Equal(t, "ORD-001", first.OrderNumber)
	assert.True(t, first.Subtotal.Equal(decimal.NewFromInt(100000)))
	assert.Equal(t, "cash", first.PaymentMethod)
	require.NotNil(t, first.CustomerName)
	assert.Equal(t, "Anh", *first.CustomerName)
	assert.Nil(t, first.OrderedAt)

	// malformed and negative amounts coerce to zero instead of failing
	second := orders[1]
	assert.True(t, second.Subtotal.IsZero())
	assert.True(t, second.Discount.IsZero())
	assert.True(t, second.Tax.IsZero())
	assert.True(t, second.Total.Equal(decimal.NewFromInt(50000)))
	assert.True(t, second.PriceIncludesTax)
	require.NotNil(t, second.TableID)
	assert.Equal(t, int64(5), *second.TableID)
	require.NotNil(t, second.OrderedAt)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersForRangeAppliesFilters(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	employeeID := int64(3)

	mock.ExpectQuery("FROM orders o").
		WithArgs(start, end, pq.Array([]string{"paid", "completed"}), employeeID).
		WillReturnRows(sqlmock.NewRows(orderColumns))

	repo := NewOrderRepository(db)
	orders, err := repo.GetOrdersForRange(models.OrderQuery{
		StartDate:  &start,
		EndDate:    &end,
		Statuses:   []string{"paid", "completed"},
		EmployeeID: &employeeID,
	})
	require.NoError(t, err)
	assert.Empty(t, orders)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrdersForRangeWrapsDatabaseError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM orders o").WillReturnError(errors.New("connection refused"))

	repo := NewOrderRepository(db)
	_, err = repo.GetOrdersForRange(models.OrderQuery{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrDatabaseError)
}

func TestGetItemsForOrders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	itemColumns := []string{
		"order_id", "product_id", "name", "sku",
		"quantity", "unit_price",
		"category_id", "category_name",
	}
	rows := sqlmock.NewRows(itemColumns).
		AddRow(1, 11, "Espresso", "ESP-01", 2, "30000", int64(4), "Drinks").
		AddRow(1, 12, "Croissant", nil, 1, "40000", nil, nil).
		AddRow(2, 11, "Espresso", "ESP-01", 0, "bad-price", int64(4), "Drinks")

	mock.ExpectQuery("FROM order_items oi").
		WithArgs(pq.Array([]int64{1, 2})).
		WillReturnRows(rows)

	repo := NewOrderRepository(db)
	items, err := repo.GetItemsForOrders([]int64{1, 2})
	require.NoError(t, err)
	require.Len(t, items[1], 2)
	require.Len(t, items[2], 1)

	assert.Equal(t, "Espresso", items[1][0].ProductName)
	require.NotNil(t, items[1][0].ProductSKU)
	assert.Equal(t, "ESP-01", *items[1][0].ProductSKU)
	assert.True(t, items[1][0].UnitPrice.Equal(decimal.NewFromInt(30000)))
	assert.Nil(t, items[1][1].CategoryName)

	// malformed price coerces to zero, quantity floors at one
	assert.True(t, items[2][0].UnitPrice.IsZero())
	assert.Equal(t, 1, items[2][0].Quantity)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetItemsForOrdersEmptyInput(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewOrderRepository(db)
	items, err := repo.GetItemsForOrders(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestGetTableFloors(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name"}).
		AddRow(int64(5), "Ground floor").
		AddRow(int64(6), "Terrace")
	mock.ExpectQuery("FROM tables t").WillReturnRows(rows)

	repo := NewCatalogRepository(db)
	floors, err := repo.GetTableFloors()
	require.NoError(t, err)
	assert.Equal(t, map[int64]string{5: "Ground floor", 6: "Terrace"}, floors)
	assert.NoError(t, mock.ExpectationsWereMet())
}
