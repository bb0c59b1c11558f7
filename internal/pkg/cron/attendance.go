package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
)

type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	leaveService      leave.LeaveService
	employeeRepo      employee.EmployeeRepository
}

func NewAttendanceJobs(
	attendanceService attendance.AttendanceService,
	leaveService leave.LeaveService,
	employeeRepo employee.EmployeeRepository,
) *AttendanceJobs {
	return &AttendanceJobs{
		attendanceService: attendanceService,
		leaveService:      leaveService,
		employeeRepo:      employeeRepo,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("mark_absent_employees", 1*time.Hour, j.MarkAbsentEmployees)
	scheduler.AddJob("seed_annual_leave_allocations", 1*time.Hour, j.SeedAnnualLeaveAllocations)
}

// MarkAbsentEmployees backfills Absent records for active employees who
// have no attendance row for the previous day.
func (j *AttendanceJobs) MarkAbsentEmployees(ctx context.Context) error {
	// Only run at midnight (00:00-00:59 UTC)
	if time.Now().UTC().Hour() != 0 {
		return nil
	}

	slog.Info("Cron: Starting mark absent employees job")

	marked, err := j.attendanceService.MarkAbsentees(ctx)
	if err != nil {
		return fmt.Errorf("failed to mark absentees: %w", err)
	}

	slog.Info("Cron: Marked absent employees", "count", marked)
	return nil
}

// SeedAnnualLeaveAllocations makes sure every active employee has leave
// allocations for the current year. The underlying insert is idempotent,
// so re-running is safe.
func (j *AttendanceJobs) SeedAnnualLeaveAllocations(ctx context.Context) error {
	now := time.Now().UTC()

	// Only run during the first day of January
	if now.Month() != time.January || now.Day() != 1 {
		return nil
	}

	slog.Info("Cron: Seeding annual leave allocations", "year", now.Year())

	employees, err := j.employeeRepo.ListActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to list active employees: %w", err)
	}

	seeded := 0
	for _, emp := range employees {
		if err := j.leaveService.AllocateForEmployee(ctx, emp.ID, now.Year()); err != nil {
			slog.Error("Cron: Failed to seed leave allocation", "employee_id", emp.ID, "error", err)
			continue
		}
		seeded++
	}

	slog.Info("Cron: Annual leave allocations seeded", "count", seeded)
	return nil
}
