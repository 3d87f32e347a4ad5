package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"pos_reporting_backend/internal/models"
	"pos_reporting_backend/internal/services"
	"pos_reporting_backend/pkg/utils"

	"github.com/gin-gonic/gin"
)

// ReportHandler holds the report service.
type ReportHandler struct {
	reportService services.ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(rs services.ReportService) *ReportHandler {
	return &ReportHandler{reportService: rs}
}

// parseReportFilters parses the common report query parameters.
func parseReportFilters(c *gin.Context) (models.ReportFilters, bool) {
	var filters models.ReportFilters

	if startDate := c.Query("start_date"); startDate != "" {
		if _, err := time.Parse(services.ReportDateLayout, startDate); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid start_date format, expected YYYY-MM-DD.", err.Error()))
			return filters, false
		}
		filters.StartDate = &startDate
	}
	if endDate := c.Query("end_date"); endDate != "" {
		if _, err := time.Parse(services.ReportDateLayout, endDate); err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid end_date format, expected YYYY-MM-DD.", err.Error()))
			return filters, false
		}
		filters.EndDate = &endDate
	}
	if categoryIDStr := c.Query("category_id"); categoryIDStr != "" {
		categoryID, err := utils.StrToInt64(categoryIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid category_id format.", err.Error()))
			return filters, false
		}
		filters.CategoryID = &categoryID
	}
	if employeeIDStr := c.Query("employee_id"); employeeIDStr != "" {
		employeeID, err := utils.StrToInt64(employeeIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid employee_id format.", err.Error()))
			return filters, false
		}
		filters.EmployeeID = &employeeID
	}
	if customerIDStr := c.Query("customer_id"); customerIDStr != "" {
		customerID, err := utils.StrToInt64(customerIDStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid customer_id format.", err.Error()))
			return filters, false
		}
		filters.CustomerID = &customerID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = &status
	}
	if floor := c.Query("floor"); floor != "" {
		filters.Floor = &floor
	}
	filters.Search = c.Query("q")

	return filters, true
}

// parsePageRequest parses sort/page/page_size. Out-of-range values are
// clamped later by the paginator; only non-numeric input is rejected here.
func parsePageRequest(c *gin.Context) (models.PageRequest, bool) {
	var page models.PageRequest
	page.SortBy = c.Query("sort")

	if pageStr := c.Query("page"); pageStr != "" {
		p, err := strconv.Atoi(pageStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page format.", "page must be an integer"))
			return page, false
		}
		page.Page = p
	}
	if pageSizeStr := c.Query("page_size"); pageSizeStr != "" {
		ps, err := strconv.Atoi(pageSizeStr)
		if err != nil {
			utils.RespondWithError(c, utils.NewAPIError(http.StatusBadRequest, utils.ErrCodeValidationFailed, "Invalid page_size format.", "page_size must be an integer"))
			return page, false
		}
		page.PageSize = ps
	}
	return page, true
}

func (h *ReportHandler) respondReportError(c *gin.Context, err error, context string) {
	utils.LogError(err, context)
	if errors.Is(err, services.ErrOrderFetchFailed) {
		utils.RespondWithError(c, utils.NewAPIError(http.StatusBadGateway, utils.ErrCodeUpstreamUnavailable, "Order store is unavailable, please retry.", err.Error()))
		return
	}
	utils.RespondWithError(c, utils.NewAPIError(http.StatusInternalServerError, utils.ErrCodeInternalServerError, "Failed to build report.", "Internal error"))
}

// GetSummary returns the period-level rollup for the dashboard.
func (h *ReportHandler) GetSummary(c *gin.Context) {
	filters, ok := parseReportFilters(c)
	if !ok {
		return
	}
	summary, err := h.reportService.GetSummary(filters)
	if err != nil {
		h.respondReportError(c, err, "GetSummary: Error from reportService.GetSummary")
		return
	}
	c.JSON(http.StatusOK, summary)
}

type reportMethod func(models.ReportFilters, models.PageRequest) (*models.ReportPage, error)

func (h *ReportHandler) serveReport(c *gin.Context, build reportMethod, context string) {
	filters, ok := parseReportFilters(c)
	if !ok {
		return
	}
	page, ok := parsePageRequest(c)
	if !ok {
		return
	}
	result, err := build(filters, page)
	if err != nil {
		h.respondReportError(c, err, context)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDailyReport returns revenue grouped by calendar day.
func (h *ReportHandler) GetDailyReport(c *gin.Context) {
	h.serveReport(c, h.reportService.GetDailyReport, "GetDailyReport: Error from reportService.GetDailyReport")
}

// GetProductReport returns revenue grouped by product after item-level
// allocation of order discounts and tax.
func (h *ReportHandler) GetProductReport(c *gin.Context) {
	h.serveReport(c, h.reportService.GetProductReport, "GetProductReport: Error from reportService.GetProductReport")
}

// GetEmployeeReport returns revenue grouped by employee.
func (h *ReportHandler) GetEmployeeReport(c *gin.Context) {
	h.serveReport(c, h.reportService.GetEmployeeReport, "GetEmployeeReport: Error from reportService.GetEmployeeReport")
}

// GetCustomerReport returns revenue grouped by customer identity.
func (h *ReportHandler) GetCustomerReport(c *gin.Context) {
	h.serveReport(c, h.reportService.GetCustomerReport, "GetCustomerReport: Error from reportService.GetCustomerReport")
}

// GetChannelReport returns revenue grouped by sales channel, with
// cancelled orders tracked separately.
func (h *ReportHandler) GetChannelReport(c *gin.Context) {
	h.serveReport(c, h.reportService.GetChannelReport, "GetChannelReport: Error from reportService.GetChannelReport")
}
