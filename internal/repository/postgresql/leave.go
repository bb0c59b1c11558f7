package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, lt *leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (name, is_paid, default_days)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, lt.Name, lt.IsPaid, lt.DefaultDays).Scan(&lt.ID, &lt.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return leave.ErrLeaveTypeNameExists
		}
		return fmt.Errorf("failed to create leave type: %w", err)
	}
	return nil
}

func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (*leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, is_paid, default_days, created_at FROM leave_types WHERE id = $1`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, id).Scan(&lt.ID, &lt.Name, &lt.IsPaid, &lt.DefaultDays, &lt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveTypeNotFound
		}
		return nil, fmt.Errorf("failed to get leave type: %w", err)
	}
	return &lt, nil
}

func (r *leaveTypeRepositoryImpl) GetByName(ctx context.Context, name string) (*leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, is_paid, default_days, created_at FROM leave_types WHERE LOWER(name) = LOWER($1)`

	var lt leave.LeaveType
	err := q.QueryRow(ctx, query, name).Scan(&lt.ID, &lt.Name, &lt.IsPaid, &lt.DefaultDays, &lt.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveTypeNotFound
		}
		return nil, fmt.Errorf("failed to get leave type by name: %w", err)
	}
	return &lt, nil
}

func (r *leaveTypeRepositoryImpl) List(ctx context.Context) ([]*leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, is_paid, default_days, created_at FROM leave_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var result []*leave.LeaveType
	for rows.Next() {
		var lt leave.LeaveType
		if err := rows.Scan(&lt.ID, &lt.Name, &lt.IsPaid, &lt.DefaultDays, &lt.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		result = append(result, &lt)
	}
	return result, rows.Err()
}

type leaveAllocationRepositoryImpl struct {
	db *database.DB
}

func NewLeaveAllocationRepository(db *database.DB) leave.LeaveAllocationRepository {
	return &leaveAllocationRepositoryImpl{db: db}
}

func (r *leaveAllocationRepositoryImpl) Create(ctx context.Context, alloc *leave.LeaveAllocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allocations (employee_id, leave_type_id, year, total_days, used_days)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, leave_type_id, year) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		alloc.EmployeeID,
		alloc.LeaveTypeID,
		alloc.Year,
		alloc.TotalDays,
		alloc.UsedDays,
	).Scan(&alloc.ID, &alloc.CreatedAt, &alloc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Allocation already exists for this employee, type and year.
			return nil
		}
		return fmt.Errorf("failed to create leave allocation: %w", err)
	}
	return nil
}

func (r *leaveAllocationRepositoryImpl) Upsert(ctx context.Context, alloc *leave.LeaveAllocation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_allocations (employee_id, leave_type_id, year, total_days, used_days)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (employee_id, leave_type_id, year)
		DO UPDATE SET total_days = EXCLUDED.total_days, updated_at = NOW()
		RETURNING id, used_days, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		alloc.EmployeeID,
		alloc.LeaveTypeID,
		alloc.Year,
		alloc.TotalDays,
	).Scan(&alloc.ID, &alloc.UsedDays, &alloc.CreatedAt, &alloc.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert leave allocation: %w", err)
	}
	return nil
}

func (r *leaveAllocationRepositoryImpl) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (*leave.LeaveAllocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.employee_id, la.leave_type_id, la.year, la.total_days, la.used_days,
			   la.created_at, la.updated_at, lt.name, lt.is_paid
		FROM leave_allocations la
		JOIN leave_types lt ON lt.id = la.leave_type_id
		WHERE la.employee_id = $1 AND la.leave_type_id = $2 AND la.year = $3
	`

	var alloc leave.LeaveAllocation
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(
		&alloc.ID,
		&alloc.EmployeeID,
		&alloc.LeaveTypeID,
		&alloc.Year,
		&alloc.TotalDays,
		&alloc.UsedDays,
		&alloc.CreatedAt,
		&alloc.UpdatedAt,
		&alloc.LeaveTypeName,
		&alloc.IsPaid,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrAllocationNotFound
		}
		return nil, fmt.Errorf("failed to get leave allocation: %w", err)
	}
	return &alloc, nil
}

func (r *leaveAllocationRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, year int) ([]*leave.LeaveAllocation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT la.id, la.employee_id, la.leave_type_id, la.year, la.total_days, la.used_days,
			   la.created_at, la.updated_at, lt.name, lt.is_paid
		FROM leave_allocations la
		JOIN leave_types lt ON lt.id = la.leave_type_id
		WHERE la.employee_id = $1 AND la.year = $2
		ORDER BY lt.name
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave allocations: %w", err)
	}
	defer rows.Close()

	var result []*leave.LeaveAllocation
	for rows.Next() {
		var alloc leave.LeaveAllocation
		err := rows.Scan(
			&alloc.ID,
			&alloc.EmployeeID,
			&alloc.LeaveTypeID,
			&alloc.Year,
			&alloc.TotalDays,
			&alloc.UsedDays,
			&alloc.CreatedAt,
			&alloc.UpdatedAt,
			&alloc.LeaveTypeName,
			&alloc.IsPaid,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave allocation: %w", err)
		}
		result = append(result, &alloc)
	}
	return result, rows.Err()
}

func (r *leaveAllocationRepositoryImpl) AddUsedDays(ctx context.Context, id string, days int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_allocations
		SET used_days = used_days + $1, updated_at = NOW()
		WHERE id = $2 AND used_days + $1 <= total_days
	`

	tag, err := q.Exec(ctx, query, days, id)
	if err != nil {
		return fmt.Errorf("failed to add used days: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}
	return nil
}

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.start_date, lr.end_date,
		   lr.days, lr.reason, lr.status, lr.reviewed_by, lr.reviewed_at,
		   lr.created_at, lr.updated_at,
		   u.full_name, u.login_id, lt.name, lt.is_paid, ru.full_name
	FROM leave_requests lr
	JOIN employees e ON e.id = lr.employee_id
	JOIN users u ON u.id = e.user_id
	JOIN leave_types lt ON lt.id = lr.leave_type_id
	LEFT JOIN users ru ON ru.id = lr.reviewed_by
`

func scanLeaveRequest(row pgx.Row) (*leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID,
		&lr.EmployeeID,
		&lr.LeaveTypeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Days,
		&lr.Reason,
		&lr.Status,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.CreatedAt,
		&lr.UpdatedAt,
		&lr.EmployeeName,
		&lr.LoginID,
		&lr.LeaveTypeName,
		&lr.IsPaid,
		&lr.ReviewerName,
	)
	if err != nil {
		return nil, err
	}
	return &lr, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]*leave.LeaveRequest, error) {
	defer rows.Close()

	var result []*leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		result = append(result, lr)
	}
	return result, rows.Err()
}

func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests (employee_id, leave_type_id, start_date, end_date, days, reason, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		lr.EmployeeID,
		lr.LeaveTypeID,
		lr.StartDate,
		lr.EndDate,
		lr.Days,
		lr.Reason,
		lr.Status,
	).Scan(&lr.ID, &lr.CreatedAt, &lr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create leave request: %w", err)
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	lr, err := scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, leave.ErrLeaveRequestNotFound
		}
		return nil, fmt.Errorf("failed to get leave request: %w", err)
	}
	return lr, nil
}

func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveRequestSelect+` WHERE lr.employee_id = $1 ORDER BY lr.created_at DESC`, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by employee: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) ListByStatus(ctx context.Context, status string) ([]*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveRequestSelect+` WHERE lr.status = $1 ORDER BY lr.created_at`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests by status: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) List(ctx context.Context) ([]*leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, leaveRequestSelect+` ORDER BY lr.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}

func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, lr *leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, lr.Status, lr.ReviewedBy, lr.ReviewedAt, lr.ID)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

func (r *leaveRequestRepositoryImpl) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1
			  AND status IN ('Pending', 'Approved')
			  AND start_date <= $3
			  AND end_date >= $2
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check leave overlap: %w", err)
	}
	return exists, nil
}

func (r *leaveRequestRepositoryImpl) ApprovedDaysInPeriod(ctx context.Context, employeeID string, start, end time.Time) (int, int, error) {
	q := GetQuerier(ctx, r.db)

	// Clip each approved request to the period so cross-month leave only
	// counts the days that fall inside it.
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN lt.is_paid THEN
				(LEAST(lr.end_date, $3::date) - GREATEST(lr.start_date, $2::date) + 1)
			ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN NOT lt.is_paid THEN
				(LEAST(lr.end_date, $3::date) - GREATEST(lr.start_date, $2::date) + 1)
			ELSE 0 END), 0)
		FROM leave_requests lr
		JOIN leave_types lt ON lt.id = lr.leave_type_id
		WHERE lr.employee_id = $1
		  AND lr.status = 'Approved'
		  AND lr.start_date <= $3
		  AND lr.end_date >= $2
	`

	var paid, unpaid int
	err := q.QueryRow(ctx, query, employeeID, start, end).Scan(&paid, &unpaid)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to sum approved leave days: %w", err)
	}
	return paid, unpaid, nil
}
