package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type attendanceRepositoryImpl struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepositoryImpl{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.date, a.status, a.check_in, a.check_out,
		   a.remarks, a.created_at, a.updated_at, u.full_name, u.login_id
	FROM attendance a
	JOIN employees e ON e.id = a.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanAttendance(row pgx.Row) (*attendance.Attendance, error) {
	var a attendance.Attendance
	err := row.Scan(
		&a.ID,
		&a.EmployeeID,
		&a.Date,
		&a.Status,
		&a.CheckIn,
		&a.CheckOut,
		&a.Remarks,
		&a.CreatedAt,
		&a.UpdatedAt,
		&a.EmployeeName,
		&a.LoginID,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func collectAttendance(rows pgx.Rows) ([]*attendance.Attendance, error) {
	defer rows.Close()

	var result []*attendance.Attendance
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Create(ctx context.Context, record *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_id, date, status, check_in, check_out, remarks)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.EmployeeID,
		record.Date,
		record.Status,
		record.CheckIn,
		record.CheckOut,
		record.Remarks,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return attendance.ErrAttendanceAlreadyMarked
		}
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

// GetByID implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	a, err := scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance: %w", err)
	}
	return a, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + ` WHERE a.employee_id = $1 AND a.date = $2`

	a, err := scanAttendance(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, attendance.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("failed to get attendance by employee and date: %w", err)
	}
	return a, nil
}

// Update implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) Update(ctx context.Context, record *attendance.Attendance) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE attendance
		SET status = $1, check_in = $2, check_out = $3, remarks = $4, updated_at = NOW()
		WHERE id = $5
	`

	tag, err := q.Exec(ctx, query,
		record.Status,
		record.CheckIn,
		record.CheckOut,
		record.Remarks,
		record.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// ListByEmployee implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE a.employee_id = $1 AND a.date BETWEEN $2 AND $3
		ORDER BY a.date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by employee: %w", err)
	}
	return collectAttendance(rows)
}

// ListByDate implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByDate(ctx context.Context, date time.Time) ([]*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, attendanceSelect+` WHERE a.date = $1 ORDER BY u.full_name`, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	return collectAttendance(rows)
}

// ListByPeriod implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) ListByPeriod(ctx context.Context, start, end time.Time) ([]*attendance.Attendance, error) {
	q := GetQuerier(ctx, r.db)

	query := attendanceSelect + `
		WHERE a.date BETWEEN $1 AND $2
		ORDER BY a.date, u.full_name
	`

	rows, err := q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by period: %w", err)
	}
	return collectAttendance(rows)
}

// WorkedDays implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) WorkedDays(ctx context.Context, employeeID string, start, end time.Time) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(
			CASE status
				WHEN 'Present' THEN 1.0
				WHEN 'Half Day' THEN 0.5
				ELSE 0
			END
		), 0)
		FROM attendance
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
	`

	var worked float64
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&worked)
	if err != nil {
		return 0, fmt.Errorf("failed to sum worked days: %w", err)
	}
	return worked, nil
}

// MarkAbsentees implements attendance.AttendanceRepository.
func (r *attendanceRepositoryImpl) MarkAbsentees(ctx context.Context, date time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance (employee_id, date, status)
		SELECT e.id, $1, 'Absent'
		FROM employees e
		WHERE e.status = 'Active'
		  AND NOT EXISTS (
			SELECT 1 FROM attendance a
			WHERE a.employee_id = e.id AND a.date = $1
		  )
	`

	tag, err := q.Exec(ctx, query, date)
	if err != nil {
		return 0, fmt.Errorf("failed to mark absentees: %w", err)
	}
	return tag.RowsAffected(), nil
}
