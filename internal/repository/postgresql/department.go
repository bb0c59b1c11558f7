package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/master/department"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) department.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

func (r *departmentRepositoryImpl) Create(ctx context.Context, dept *department.Department) error {
	q := GetQuerier(ctx, r.db)

	if dept.ID == "" {
		dept.ID = uuid.New().String()
	}

	query := `
		INSERT INTO departments (id, name, description)
		VALUES ($1, $2, $3)
	`

	_, err := q.Exec(ctx, query, dept.ID, dept.Name, dept.Description)
	if err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (*department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, description FROM departments WHERE id = $1`

	var dept department.Department
	err := q.QueryRow(ctx, query, id).Scan(&dept.ID, &dept.Name, &dept.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepositoryImpl) GetByName(ctx context.Context, name string) (*department.Department, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, description FROM departments WHERE LOWER(name) = LOWER($1)`

	var dept department.Department
	err := q.QueryRow(ctx, query, name).Scan(&dept.ID, &dept.Name, &dept.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, department.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("failed to get department by name: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepositoryImpl) List(ctx context.Context) ([]*department.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, description FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	defer rows.Close()

	var result []*department.Department
	for rows.Next() {
		var dept department.Department
		if err := rows.Scan(&dept.ID, &dept.Name, &dept.Description); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		result = append(result, &dept)
	}
	return result, rows.Err()
}

func (r *departmentRepositoryImpl) Update(ctx context.Context, dept *department.Department) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE departments
		SET name = $1, description = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, dept.Name, dept.Description, dept.ID)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return department.ErrDepartmentNotFound
	}
	return nil
}

func (r *departmentRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE department_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count department employees: %w", err)
	}
	return count, nil
}
