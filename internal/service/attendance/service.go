package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

type AttendanceServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
}

func NewAttendanceService(
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
}

func today() time.Time {
	now := time.Now().UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// Mark implements attendance.AttendanceService. Manual marking by HR,
// one record per employee per date. Re-marking updates the existing
// record rather than failing.
func (s *AttendanceServiceImpl) Mark(ctx context.Context, req *attendance.MarkAttendanceRequest) (*attendance.AttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, attendance.ErrEmployeeNotFound
		}
		return nil, err
	}

	date, _ := validator.IsValidDate(req.Date)
	if date.After(today()) {
		return nil, attendance.ErrFutureDate
	}

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, req.EmployeeID, date)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return nil, err
	}

	if existing != nil {
		existing.Status = req.Status
		existing.Remarks = req.Remarks
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return attendance.ToAttendanceResponse(existing), nil
	}

	record := &attendance.Attendance{
		EmployeeID: req.EmployeeID,
		Date:       date,
		Status:     req.Status,
		Remarks:    req.Remarks,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return attendance.ToAttendanceResponse(record), nil
}

// CheckIn implements attendance.AttendanceService. Self-service clock in
// stamps today's record Present.
func (s *AttendanceServiceImpl) CheckIn(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, attendance.ErrEmployeeNotFound
		}
		return nil, err
	}

	now := time.Now().UTC()
	date := today()

	existing, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil && !errors.Is(err, attendance.ErrAttendanceNotFound) {
		return nil, err
	}
	if existing != nil && existing.CheckIn != nil {
		return nil, attendance.ErrAlreadyCheckedIn
	}

	if existing != nil {
		existing.Status = attendance.StatusPresent
		existing.CheckIn = &now
		if err := s.attendanceRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		return attendance.ToAttendanceResponse(existing), nil
	}

	record := &attendance.Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Status:     attendance.StatusPresent,
		CheckIn:    &now,
	}
	if err := s.attendanceRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	return attendance.ToAttendanceResponse(record), nil
}

// CheckOut implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) CheckOut(ctx context.Context, employeeID string) (*attendance.AttendanceResponse, error) {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, today())
	if err != nil {
		if errors.Is(err, attendance.ErrAttendanceNotFound) {
			return nil, attendance.ErrNotCheckedIn
		}
		return nil, err
	}
	if record.CheckIn == nil {
		return nil, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return nil, attendance.ErrAlreadyCheckedOut
	}

	now := time.Now().UTC()
	record.CheckOut = &now
	if err := s.attendanceRepo.Update(ctx, record); err != nil {
		return nil, err
	}
	return attendance.ToAttendanceResponse(record), nil
}

// List implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) List(ctx context.Context, req *attendance.ListAttendanceRequest) ([]*attendance.AttendanceResponse, error) {
	start := time.Date(req.Year, time.Month(req.Month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	var records []*attendance.Attendance
	var err error
	if req.EmployeeID != nil {
		records, err = s.attendanceRepo.ListByEmployee(ctx, *req.EmployeeID, start, end)
	} else {
		records, err = s.attendanceRepo.ListByPeriod(ctx, start, end)
	}
	if err != nil {
		return nil, err
	}
	return attendance.ToAttendanceResponses(records), nil
}

// GetSummary implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetSummary(ctx context.Context, employeeID string, month, year int) (*attendance.AttendanceSummaryResponse, error) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)

	records, err := s.attendanceRepo.ListByEmployee(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	summary := &attendance.AttendanceSummaryResponse{
		EmployeeID: employeeID,
		Month:      month,
		Year:       year,
		TotalDays:  end.Day(),
	}
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			summary.PresentDays++
		case attendance.StatusAbsent:
			summary.AbsentDays++
		case attendance.StatusHalfDay:
			summary.HalfDays++
			summary.PresentDays += 0.5
		}
	}
	return summary, nil
}

// MarkAbsentees implements attendance.AttendanceService. Run by the
// nightly job to fill in Absent records for employees who never clocked
// in.
func (s *AttendanceServiceImpl) MarkAbsentees(ctx context.Context) (int64, error) {
	return s.attendanceRepo.MarkAbsentees(ctx, today())
}
