package attendance

import "context"

type AttendanceService interface {
	Mark(ctx context.Context, req *MarkAttendanceRequest) (*AttendanceResponse, error)
	CheckIn(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	CheckOut(ctx context.Context, employeeID string) (*AttendanceResponse, error)
	List(ctx context.Context, req *ListAttendanceRequest) ([]*AttendanceResponse, error)
	GetSummary(ctx context.Context, employeeID string, month, year int) (*AttendanceSummaryResponse, error)
	MarkAbsentees(ctx context.Context) (int64, error)
}
