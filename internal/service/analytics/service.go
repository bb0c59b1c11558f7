package analytics

import (
	"context"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/analytics"
)

type AnalyticsServiceImpl struct {
	analyticsRepo analytics.AnalyticsRepository
}

func NewAnalyticsService(analyticsRepo analytics.AnalyticsRepository) analytics.AnalyticsService {
	return &AnalyticsServiceImpl{analyticsRepo: analyticsRepo}
}

// GetEmployeeStats implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetEmployeeStats(ctx context.Context) (*analytics.EmployeeStatsResponse, error) {
	return s.analyticsRepo.EmployeeStats(ctx)
}

// GetAttendanceSummary implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetAttendanceSummary(ctx context.Context, month, year int) (*analytics.AttendanceSummaryResponse, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	return s.analyticsRepo.AttendanceSummary(ctx, start, end)
}

// GetLeaveSummary implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetLeaveSummary(ctx context.Context, year int) (*analytics.LeaveSummaryResponse, error) {
	return s.analyticsRepo.LeaveSummary(ctx, year)
}

// GetPayrollSummary implements analytics.AnalyticsService.
func (s *AnalyticsServiceImpl) GetPayrollSummary(ctx context.Context, month, year int) (*analytics.PayrollSummaryResponse, error) {
	return s.analyticsRepo.PayrollSummary(ctx, month, year)
}
