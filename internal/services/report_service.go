package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"pos_reporting_backend/internal/models"
	"pos_reporting_backend/internal/repositories"
	"pos_reporting_backend/pkg/utils"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderFetchFailed marks an upstream order-store failure so the
	// presentation layer can offer a retry instead of treating it as an
	// empty report.
	ErrOrderFetchFailed = errors.New("failed to fetch order snapshot")
)

// ReportDateLayout is the wire format of start_date/end_date parameters.
const ReportDateLayout = "2006-01-02"

// ReportService builds paged, multi-dimensional financial reports from
// immutable order snapshots. Every call fetches its own snapshot and runs
// the aggregation purely against it; nothing is cached or mutated.
type ReportService interface {
	GetSummary(filters models.ReportFilters) (*models.ReportSummary, error)
	GetDailyReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error)
	GetProductReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error)
	GetEmployeeReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error)
	GetCustomerReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error)
	GetChannelReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error)
}

type reportService struct {
	orderRepo   repositories.OrderRepository
	catalogRepo repositories.CatalogRepository
}

// NewReportService creates a new instance of ReportService.
func NewReportService(or repositories.OrderRepository, cr repositories.CatalogRepository) ReportService {
	return &reportService{
		orderRepo:   or,
		catalogRepo: cr,
	}
}

func (s *reportService) GetDailyReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error) {
	// The daily report reads chronologically, so key ties (and the default
	// sort) run date-ascending.
	page.KeyAscending = true
	if page.SortBy == "" {
		page.SortBy = models.SortByKey
	}
	return s.buildReport(models.DimensionDate, filters, page)
}

func (s *reportService) GetProductReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error) {
	if page.SortBy == "" {
		page.SortBy = models.SortByNetRevenue
	}
	return s.buildReport(models.DimensionProduct, filters, page)
}

func (s *reportService) GetEmployeeReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error) {
	if page.SortBy == "" {
		page.SortBy = models.SortByNetRevenue
	}
	return s.buildReport(models.DimensionEmployee, filters, page)
}

func (s *reportService) GetCustomerReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error) {
	if page.SortBy == "" {
		page.SortBy = models.SortByCustomerPaid
	}
	return s.buildReport(models.DimensionCustomer, filters, page)
}

func (s *reportService) GetChannelReport(filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error) {
	if page.SortBy == "" {
		page.SortBy = models.SortByCustomerPaid
	}
	return s.buildReport(models.DimensionChannel, filters, page)
}

// GetSummary rolls the whole filtered period into one row: totals, payment
// breakdown, unique customers and the cancelled figures tracked by the
// channel policy.
func (s *reportService) GetSummary(filters models.ReportFilters) (*models.ReportSummary, error) {
	orders, err := s.fetchOrders(filters)
	if err != nil {
		return nil, err
	}

	_, total := AggregateByDimension(orders, nil, models.DimensionChannel)

	summary := &models.ReportSummary{
		OrderCount:       total.OrderCount,
		GrossAmount:      total.GrossAmount,
		Discount:         total.Discount,
		Tax:              total.Tax,
		NetRevenue:       total.NetRevenue,
		CustomerPaid:     total.CustomerPaid,
		UniqueCustomers:  total.UniqueCustomers,
		PaymentTotals:    total.PaymentTotals,
		CancelledOrders:  total.CancelledOrders,
		CancelledRevenue: total.CancelledRevenue,
	}
	if total.OrderCount > 0 {
		summary.AverageOrderValue = total.NetRevenue.Div(decimal.NewFromInt(int64(total.OrderCount)))
	}
	return summary, nil
}

func (s *reportService) buildReport(dimension models.Dimension, filters models.ReportFilters, page models.PageRequest) (*models.ReportPage, error) {
	orders, err := s.fetchOrders(filters)
	if err != nil {
		return nil, err
	}

	var items map[int64][]models.OrderItem
	if dimension == models.DimensionProduct {
		items, err = s.fetchItems(orders, filters)
		if err != nil {
			return nil, err
		}
	}

	groups, total := AggregateByDimension(orders, items, dimension)
	result := Paginate(groups, total, page)
	return &result, nil
}

// fetchOrders pulls the order snapshot for the filtered range and applies
// the filters the store cannot express (floor lookup via the catalog).
func (s *reportService) fetchOrders(filters models.ReportFilters) ([]models.Order, error) {
	query := models.OrderQuery{
		EmployeeID: filters.EmployeeID,
		CustomerID: filters.CustomerID,
	}
	if filters.Status != nil && *filters.Status != "" {
		query.Statuses = []string{*filters.Status}
	}
	if start, ok := parseReportDate(filters.StartDate); ok {
		query.StartDate = &start
	}
	if end, ok := parseReportDate(filters.EndDate); ok {
		// inclusive end date: fetch up to the start of the next day
		next := end.AddDate(0, 0, 1)
		query.EndDate = &next
	}

	orders, err := s.orderRepo.GetOrdersForRange(query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}

	if filters.Floor != nil && *filters.Floor != "" {
		floors, err := s.catalogRepo.GetTableFloors()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
		}
		filtered := orders[:0]
		for _, order := range orders {
			if order.TableID == nil {
				continue
			}
			if floors[*order.TableID] == *filters.Floor {
				filtered = append(filtered, order)
			}
		}
		orders = filtered
	}
	return orders, nil
}

// fetchItems loads line items for the snapshot and applies the item-level
// category and search filters. Orders left without matching items drop out
// of product aggregates in the aggregator.
func (s *reportService) fetchItems(orders []models.Order, filters models.ReportFilters) (map[int64][]models.OrderItem, error) {
	orderIDs := make([]int64, 0, len(orders))
	for _, order := range orders {
		orderIDs = append(orderIDs, order.ID)
	}

	items, err := s.orderRepo.GetItemsForOrders(orderIDs)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderFetchFailed, err)
	}

	if filters.CategoryID == nil && filters.Search == "" {
		return items, nil
	}

	search := strings.ToLower(strings.TrimSpace(filters.Search))
	filtered := make(map[int64][]models.OrderItem, len(items))
	for orderID, orderItems := range items {
		var kept []models.OrderItem
		for _, item := range orderItems {
			if filters.CategoryID != nil {
				if item.CategoryID == nil || *item.CategoryID != *filters.CategoryID {
					continue
				}
			}
			if search != "" && !matchesSearch(item, search) {
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) > 0 {
			filtered[orderID] = kept
		}
	}
	return filtered, nil
}

func matchesSearch(item models.OrderItem, search string) bool {
	if strings.Contains(strings.ToLower(item.ProductName), search) {
		return true
	}
	if item.ProductSKU != nil && strings.Contains(strings.ToLower(*item.ProductSKU), search) {
		return true
	}
	return false
}

func parseReportDate(value *string) (time.Time, bool) {
	if value == nil || *value == "" {
		return time.Time{}, false
	}
	parsed, err := time.ParseInLocation(ReportDateLayout, *value, time.Local)
	if err != nil {
		utils.LogWarn("Ignoring unparseable report date",
			map[string]interface{}{"value": *value})
		return time.Time{}, false
	}
	return parsed, true
}
