package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/analytics"
	"github.com/workzen/hrms-backend-go/internal/handler/http/response"
)

type AnalyticsHandler interface {
	GetEmployeeStats(w http.ResponseWriter, r *http.Request)
	GetAttendanceSummary(w http.ResponseWriter, r *http.Request)
	GetLeaveSummary(w http.ResponseWriter, r *http.Request)
	GetPayrollSummary(w http.ResponseWriter, r *http.Request)
}

type analyticsHandlerImpl struct {
	analyticsService analytics.AnalyticsService
}

func NewAnalyticsHandler(analyticsService analytics.AnalyticsService) AnalyticsHandler {
	return &analyticsHandlerImpl{
		analyticsService: analyticsService,
	}
}

// GetEmployeeStats implements AnalyticsHandler
func (h *analyticsHandlerImpl) GetEmployeeStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.analyticsService.GetEmployeeStats(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, stats)
}

// GetAttendanceSummary implements AnalyticsHandler
func (h *analyticsHandlerImpl) GetAttendanceSummary(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)

	summary, err := h.analyticsService.GetAttendanceSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetLeaveSummary implements AnalyticsHandler
func (h *analyticsHandlerImpl) GetLeaveSummary(w http.ResponseWriter, r *http.Request) {
	year := time.Now().Year()
	if y := r.URL.Query().Get("year"); y != "" {
		if parsed, err := strconv.Atoi(y); err == nil {
			year = parsed
		}
	}

	summary, err := h.analyticsService.GetLeaveSummary(r.Context(), year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}

// GetPayrollSummary implements AnalyticsHandler
func (h *analyticsHandlerImpl) GetPayrollSummary(w http.ResponseWriter, r *http.Request) {
	month, year := monthYearFromQuery(r)

	summary, err := h.analyticsService.GetPayrollSummary(r.Context(), month, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, summary)
}
