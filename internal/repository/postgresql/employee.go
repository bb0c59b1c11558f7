package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.user_id, e.department_id, e.designation_id, e.date_of_joining,
		   e.status, e.reporting_manager_id, e.bank_name, e.bank_account_number,
		   e.pan, e.uan, e.created_at, e.updated_at,
		   u.full_name, u.email, u.login_id,
		   d.name, ds.title, mu.full_name
	FROM employees e
	JOIN users u ON u.id = e.user_id
	JOIN departments d ON d.id = e.department_id
	JOIN designations ds ON ds.id = e.designation_id
	LEFT JOIN employees m ON m.id = e.reporting_manager_id
	LEFT JOIN users mu ON mu.id = m.user_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.UserID,
		&e.DepartmentID,
		&e.DesignationID,
		&e.DateOfJoining,
		&e.Status,
		&e.ReportingManagerID,
		&e.BankName,
		&e.BankAccountNumber,
		&e.PAN,
		&e.UAN,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.FullName,
		&e.Email,
		&e.LoginID,
		&e.DepartmentName,
		&e.DesignationName,
		&e.ManagerName,
	)
	return e, err
}

func collectEmployees(rows pgx.Rows) ([]employee.Employee, error) {
	defer rows.Close()

	var result []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (
			user_id, department_id, designation_id, date_of_joining, status,
			reporting_manager_id, bank_name, bank_account_number, pan, uan
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		e.UserID,
		e.DepartmentID,
		e.DesignationID,
		e.DateOfJoining,
		e.Status,
		e.ReportingManagerID,
		e.BankName,
		e.BankAccountNumber,
		e.PAN,
		e.UAN,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to create employee: %w", err)
	}

	return e, nil
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + ` WHERE e.id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by id: %w", err)
	}

	return e, nil
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + ` WHERE e.user_id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee by user id: %w", err)
	}

	return e, nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+` ORDER BY u.full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}

	return collectEmployees(rows)
}

// ListActive implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, employeeSelect+` WHERE e.status = 'Active' ORDER BY u.full_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list active employees: %w", err)
	}

	return collectEmployees(rows)
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET department_id = COALESCE($1, department_id),
			designation_id = COALESCE($2, designation_id),
			status = COALESCE($3, status),
			reporting_manager_id = COALESCE($4, reporting_manager_id),
			bank_name = COALESCE($5, bank_name),
			bank_account_number = COALESCE($6, bank_account_number),
			pan = COALESCE($7, pan),
			uan = COALESCE($8, uan),
			updated_at = NOW()
		WHERE id = $9
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		req.DepartmentID,
		req.DesignationID,
		req.Status,
		req.ReportingManagerID,
		req.BankName,
		req.BankAccountNumber,
		req.PAN,
		req.UAN,
		req.ID,
	).Scan(&id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to update employee: %w", err)
	}

	return r.GetByID(ctx, id)
}

// Delete implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM employees WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// ListActiveMissingBankAccount implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActiveMissingBankAccount(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + `
		WHERE e.status = 'Active'
		  AND (e.bank_account_number IS NULL OR e.bank_account_number = '')
		ORDER BY u.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees missing bank account: %w", err)
	}

	return collectEmployees(rows)
}

// ListActiveMissingManager implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) ListActiveMissingManager(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := employeeSelect + `
		WHERE e.status = 'Active' AND e.reporting_manager_id IS NULL
		ORDER BY u.full_name
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees missing manager: %w", err)
	}

	return collectEmployees(rows)
}
