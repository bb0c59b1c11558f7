package analytics

import "context"

type AnalyticsService interface {
	GetEmployeeStats(ctx context.Context) (*EmployeeStatsResponse, error)
	GetAttendanceSummary(ctx context.Context, month, year int) (*AttendanceSummaryResponse, error)
	GetLeaveSummary(ctx context.Context, year int) (*LeaveSummaryResponse, error)
	GetPayrollSummary(ctx context.Context, month, year int) (*PayrollSummaryResponse, error)
}
