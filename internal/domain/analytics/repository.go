package analytics

import (
	"context"
	"time"
)

type AnalyticsRepository interface {
	EmployeeStats(ctx context.Context) (*EmployeeStatsResponse, error)
	AttendanceSummary(ctx context.Context, start, end time.Time) (*AttendanceSummaryResponse, error)
	LeaveSummary(ctx context.Context, year int) (*LeaveSummaryResponse, error)
	PayrollSummary(ctx context.Context, month, year int) (*PayrollSummaryResponse, error)
}
