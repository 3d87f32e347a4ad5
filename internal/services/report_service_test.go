package services

import (
	"errors"
	"testing"
	"time"

	"pos_reporting_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderRepo struct {
	orders   []models.Order
	items    map[int64][]models.OrderItem
	err      error
	gotQuery models.OrderQuery
}

func (s *stubOrderRepo) GetOrdersForRange(query models.OrderQuery) ([]models.Order, error) {
	s.gotQuery = query
	return s.orders, s.err
}

func (s *stubOrderRepo) GetItemsForOrders(orderIDs []int64) (map[int64][]models.OrderItem, error) {
	return s.items, s.err
}

type stubCatalogRepo struct {
	floors map[int64]string
	err    error
}

func (s *stubCatalogRepo) GetTableFloors() (map[int64]string, error) {
	return s.floors, s.err
}

func TestGetDailyReportBuildsQueryFromFilters(t *testing.T) {
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	orderRepo := &stubOrderRepo{orders: []models.Order{dayOrder(1, day, 50000)}}
	svc := NewReportService(orderRepo, &stubCatalogRepo{})

	start := "2026-03-01"
	end := "2026-03-31"
	status := StatusPaid
	page, err := svc.GetDailyReport(models.ReportFilters{
		StartDate: &start,
		EndDate:   &end,
		Status:    &status,
	}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)

	query := orderRepo.gotQuery
	require.NotNil(t, query.StartDate)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local), *query.StartDate)
	// inclusive end date expands to the start of the next day
	require.NotNil(t, query.EndDate)
	assert.Equal(t, time.Date(2026, 4, 1, 0, 0, 0, 0, time.Local), *query.EndDate)
	assert.Equal(t, []string{StatusPaid}, query.Statuses)
}

func TestGetDailyReportDefaultsToChronologicalOrder(t *testing.T) {
	dayOne := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	dayTwo := dayOne.AddDate(0, 0, 1)
	orderRepo := &stubOrderRepo{orders: []models.Order{
		dayOrder(1, dayTwo, 90000),
		dayOrder(2, dayOne, 10000),
	}}
	svc := NewReportService(orderRepo, &stubCatalogRepo{})

	page, err := svc.GetDailyReport(models.ReportFilters{}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Groups, 2)
	// date ascending despite the larger revenue landing on the later day
	assert.Equal(t, "2026-03-14", page.Groups[0].Key)
	assert.Equal(t, "2026-03-15", page.Groups[1].Key)
}

func TestGetProductReportFiltersItems(t *testing.T) {
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	drinks := int64(4)
	orderRepo := &stubOrderRepo{
		orders: []models.Order{dayOrder(1, day, 70000)},
		items: map[int64][]models.OrderItem{
			1: {
				{OrderID: 1, ProductID: 11, ProductName: "Espresso", Quantity: 1, UnitPrice: amount(30000), CategoryID: &drinks},
				{OrderID: 1, ProductID: 12, ProductName: "Croissant", Quantity: 1, UnitPrice: amount(40000)},
			},
		},
	}
	svc := NewReportService(orderRepo, &stubCatalogRepo{})

	categoryID := drinks
	page, err := svc.GetProductReport(models.ReportFilters{CategoryID: &categoryID}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "11", page.Groups[0].Key)
}

func TestGetProductReportSearchMatchesNameAndSKU(t *testing.T) {
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	sku := "ESP-01"
	orderRepo := &stubOrderRepo{
		orders: []models.Order{dayOrder(1, day, 70000)},
		items: map[int64][]models.OrderItem{
			1: {
				{OrderID: 1, ProductID: 11, ProductName: "Espresso", ProductSKU: &sku, Quantity: 1, UnitPrice: amount(30000)},
				{OrderID: 1, ProductID: 12, ProductName: "Croissant", Quantity: 1, UnitPrice: amount(40000)},
			},
		},
	}
	svc := NewReportService(orderRepo, &stubCatalogRepo{})

	page, err := svc.GetProductReport(models.ReportFilters{Search: "esp-01"}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, "Espresso", page.Groups[0].Label)
}

func TestFloorFilterKeepsMatchingTables(t *testing.T) {
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	ground := dayOrder(1, day, 10000)
	ground.TableID = ptrInt64(5)
	terrace := dayOrder(2, day, 20000)
	terrace.TableID = ptrInt64(6)
	takeaway := dayOrder(3, day, 30000)

	orderRepo := &stubOrderRepo{orders: []models.Order{ground, terrace, takeaway}}
	catalogRepo := &stubCatalogRepo{floors: map[int64]string{5: "Ground floor", 6: "Terrace"}}
	svc := NewReportService(orderRepo, catalogRepo)

	floor := "Terrace"
	page, err := svc.GetChannelReport(models.ReportFilters{Floor: &floor}, models.PageRequest{})
	require.NoError(t, err)
	require.Len(t, page.Groups, 1)
	assert.Equal(t, models.ChannelDineIn, page.Groups[0].Key)
	assertAmount(t, 20000, page.Groups[0].NetRevenue)
}

func TestReportWrapsStoreFailure(t *testing.T) {
	orderRepo := &stubOrderRepo{err: errors.New("connection refused")}
	svc := NewReportService(orderRepo, &stubCatalogRepo{})

	_, err := svc.GetEmployeeReport(models.ReportFilters{}, models.PageRequest{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOrderFetchFailed)
}

func TestGetSummary(t *testing.T) {
	day := time.Date(2026, 3, 14, 10, 0, 0, 0, time.Local)
	first := dayOrder(1, day, 50000)
	first.CustomerID = ptrInt64(7)
	second := dayOrder(2, day, 30000)
	second.CustomerID = ptrInt64(7)
	cancelled := dayOrder(3, day, 20000)
	cancelled.Status = StatusCancelled

	orderRepo := &stubOrderRepo{orders: []models.Order{first, second, cancelled}}
	svc := NewReportService(orderRepo, &stubCatalogRepo{})

	summary, err := svc.GetSummary(models.ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, 2, summary.OrderCount)
	assertAmount(t, 80000, summary.NetRevenue)
	assert.Equal(t, 1, summary.UniqueCustomers)
	assertAmount(t, 40000, summary.AverageOrderValue)
	assert.Equal(t, 1, summary.CancelledOrders)
	assertAmount(t, 20000, summary.CancelledRevenue)
	assertAmount(t, 80000, summary.PaymentTotals[DefaultPaymentMethod])
}

func TestGetSummaryEmptyRange(t *testing.T) {
	svc := NewReportService(&stubOrderRepo{}, &stubCatalogRepo{})

	summary, err := svc.GetSummary(models.ReportFilters{})
	require.NoError(t, err)
	assert.Equal(t, 0, summary.OrderCount)
	assert.True(t, summary.NetRevenue.IsZero())
	assert.True(t, summary.AverageOrderValue.IsZero())
}
