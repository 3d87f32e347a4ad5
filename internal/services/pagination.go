package services

import (
	"sort"

	"pos_reporting_backend/internal/models"

	"github.com/shopspring/decimal"
)

// Paging bounds applied to every report request.
const (
	DefaultPageSize = 20
	MaxPageSize     = 200
)

// Paginate produces one deterministic page over an aggregated group list.
//
// Sorting is stable: amount and count keys sort descending, with ties
// broken by the dimension key in the direction given by req.KeyAscending,
// so repeated calls over the same snapshot return identical pages.
// Page and page size are clamped to valid ranges and a page beyond the
// last one yields an empty page, never an error. The grand total covers
// every group, not just the returned page.
func Paginate(groups []models.AggregateGroup, grandTotal models.AggregateGroup, req models.PageRequest) models.ReportPage {
	page := req.Page
	if page < 1 {
		page = 1
	}
	pageSize := req.PageSize
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	sorted := make([]models.AggregateGroup, len(groups))
	copy(sorted, groups)
	sortGroups(sorted, req.SortBy, req.KeyAscending)

	totalCount := len(sorted)
	totalPages := (totalCount + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	end := start + pageSize
	pageGroups := []models.AggregateGroup{}
	if start < totalCount {
		if end > totalCount {
			end = totalCount
		}
		pageGroups = sorted[start:end]
	}

	return models.ReportPage{
		Groups:     pageGroups,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
		TotalPages: totalPages,
		GrandTotal: grandTotal,
	}
}

func sortGroups(groups []models.AggregateGroup, sortBy string, keyAscending bool) {
	keyLess := func(a, b models.AggregateGroup) bool {
		if keyAscending {
			return a.Key < b.Key
		}
		return a.Key > b.Key
	}

	if sortBy == models.SortByKey || sortBy == "" {
		sort.SliceStable(groups, func(i, j int) bool {
			return keyLess(groups[i], groups[j])
		})
		return
	}

	value := func(g models.AggregateGroup) decimal.Decimal {
		switch sortBy {
		case models.SortByCustomerPaid:
			return g.CustomerPaid
		case models.SortByGrossAmount:
			return g.GrossAmount
		case models.SortByOrderCount:
			return decimal.NewFromInt(int64(g.OrderCount))
		default:
			return g.NetRevenue
		}
	}

	sort.SliceStable(groups, func(i, j int) bool {
		cmp := value(groups[i]).Cmp(value(groups[j]))
		if cmp != 0 {
			return cmp > 0 // amounts and counts sort descending
		}
		return keyLess(groups[i], groups[j])
	})
}
