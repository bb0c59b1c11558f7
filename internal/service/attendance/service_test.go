package attendance

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
)

type fakeAttendanceRepo struct {
	records map[string]*attendance.Attendance
}

func dateKey(employeeID string, date time.Time) string {
	return employeeID + "/" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, record *attendance.Attendance) error {
	record.ID = fmt.Sprintf("att-%d", len(f.records)+1)
	copied := *record
	f.records[dateKey(record.EmployeeID, record.Date)] = &copied
	return nil
}

func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	for _, record := range f.records {
		if record.ID == id {
			copied := *record
			return &copied, nil
		}
	}
	return nil, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	record, ok := f.records[dateKey(employeeID, date)]
	if !ok {
		return nil, attendance.ErrAttendanceNotFound
	}
	copied := *record
	return &copied, nil
}

func (f *fakeAttendanceRepo) Update(ctx context.Context, record *attendance.Attendance) error {
	key := dateKey(record.EmployeeID, record.Date)
	if _, ok := f.records[key]; !ok {
		return attendance.ErrAttendanceNotFound
	}
	copied := *record
	f.records[key] = &copied
	return nil
}

func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, record := range f.records {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.Date.Before(start) || record.Date.After(end) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, record := range f.records {
		if record.Date.Equal(date) {
			out = append(out, record)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]*attendance.Attendance, error) {
	var out []*attendance.Attendance
	for _, record := range f.records {
		if record.Date.Before(start) || record.Date.After(end) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeAttendanceRepo) WorkedDays(ctx context.Context, employeeID string, start, end time.Time) (float64, error) {
	records, _ := f.ListByEmployee(ctx, employeeID, start, end)
	var worked float64
	for _, record := range records {
		switch record.Status {
		case attendance.StatusPresent:
			worked++
		case attendance.StatusHalfDay:
			worked += 0.5
		}
	}
	return worked, nil
}

func (f *fakeAttendanceRepo) MarkAbsentees(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) { return nil, nil }

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) ListActiveMissingBankAccount(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListActiveMissingManager(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func newTestService() (*AttendanceServiceImpl, *fakeAttendanceRepo, *fakeEmployeeRepo) {
	attendanceRepo := &fakeAttendanceRepo{records: map[string]*attendance.Attendance{}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1": {ID: "emp-1"},
	}}
	svc := &AttendanceServiceImpl{
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
	}
	return svc, attendanceRepo, employeeRepo
}

func TestMark_CreatesRecord(t *testing.T) {
	svc, _, _ := newTestService()

	resp, err := svc.Mark(context.Background(), &attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       today().Format("2006-01-02"),
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Equal(t, "emp-1", resp.EmployeeID)
}

func TestMark_RemarkUpdatesExisting(t *testing.T) {
	svc, repo, _ := newTestService()
	date := today().Format("2006-01-02")

	_, err := svc.Mark(context.Background(), &attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       date,
		Status:     attendance.StatusPresent,
	})
	require.NoError(t, err)

	resp, err := svc.Mark(context.Background(), &attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       date,
		Status:     attendance.StatusHalfDay,
	})
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusHalfDay, resp.Status)
	assert.Len(t, repo.records, 1)
}

func TestMark_FutureDateRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Mark(context.Background(), &attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       today().AddDate(0, 0, 1).Format("2006-01-02"),
		Status:     attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrFutureDate)
}

func TestMark_UnknownEmployee(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Mark(context.Background(), &attendance.MarkAttendanceRequest{
		EmployeeID: "nope",
		Date:       today().Format("2006-01-02"),
		Status:     attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrEmployeeNotFound)
}

func TestCheckIn_StampsPresent(t *testing.T) {
	svc, repo, _ := newTestService()

	resp, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.NotNil(t, resp.CheckIn)

	record := repo.records[dateKey("emp-1", today())]
	require.NotNil(t, record)
	assert.NotNil(t, record.CheckIn)
}

func TestCheckIn_TwiceRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	_, err = svc.CheckIn(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckIn_UpgradesMarkedRecord(t *testing.T) {
	svc, repo, _ := newTestService()

	// HR marked the day Absent before the employee clocked in
	_, err := svc.Mark(context.Background(), &attendance.MarkAttendanceRequest{
		EmployeeID: "emp-1",
		Date:       today().Format("2006-01-02"),
		Status:     attendance.StatusAbsent,
	})
	require.NoError(t, err)

	resp, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, resp.Status)
	assert.Len(t, repo.records, 1)
}

func TestCheckOut_WithoutCheckIn(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOut_TwiceRejected(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.CheckIn(context.Background(), "emp-1")
	require.NoError(t, err)

	resp, err := svc.CheckOut(context.Background(), "emp-1")
	require.NoError(t, err)
	assert.NotNil(t, resp.CheckOut)

	_, err = svc.CheckOut(context.Background(), "emp-1")
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestGetSummary_CountsHalfDaysAsHalf(t *testing.T) {
	svc, repo, _ := newTestService()

	seed := func(day int, status string) {
		date := time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC)
		repo.records[dateKey("emp-1", date)] = &attendance.Attendance{
			ID:         fmt.Sprintf("att-%d", day),
			EmployeeID: "emp-1",
			Date:       date,
			Status:     status,
		}
	}
	seed(3, attendance.StatusPresent)
	seed(4, attendance.StatusPresent)
	seed(5, attendance.StatusHalfDay)
	seed(6, attendance.StatusAbsent)

	summary, err := svc.GetSummary(context.Background(), "emp-1", 3, 2025)
	require.NoError(t, err)
	assert.Equal(t, 31, summary.TotalDays)
	assert.Equal(t, 2.5, summary.PresentDays)
	assert.Equal(t, 1, summary.AbsentDays)
	assert.Equal(t, 1, summary.HalfDays)
}
