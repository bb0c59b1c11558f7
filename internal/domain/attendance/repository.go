package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	Create(ctx context.Context, record *Attendance) error
	GetByID(ctx context.Context, id string) (*Attendance, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*Attendance, error)
	Update(ctx context.Context, record *Attendance) error
	ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*Attendance, error)
	ListByDate(ctx context.Context, date time.Time) ([]*Attendance, error)
	ListByPeriod(ctx context.Context, start, end time.Time) ([]*Attendance, error)

	// WorkedDays sums payable day weights for the employee in [start, end].
	// Present counts as 1 and Half Day as 0.5.
	WorkedDays(ctx context.Context, employeeID string, start, end time.Time) (float64, error)

	// MarkAbsentees inserts Absent records for every active employee
	// without an attendance record on the given date. Returns the number
	// of rows inserted.
	MarkAbsentees(ctx context.Context, date time.Time) (int64, error)
}
