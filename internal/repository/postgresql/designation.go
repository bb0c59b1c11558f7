package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/master/designation"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type designationRepositoryImpl struct {
	db *database.DB
}

func NewDesignationRepository(db *database.DB) designation.DesignationRepository {
	return &designationRepositoryImpl{db: db}
}

func (r *designationRepositoryImpl) Create(ctx context.Context, desig *designation.Designation) error {
	q := GetQuerier(ctx, r.db)

	if desig.ID == "" {
		desig.ID = uuid.New().String()
	}

	query := `
		INSERT INTO designations (id, title, level)
		VALUES ($1, $2, $3)
	`

	_, err := q.Exec(ctx, query, desig.ID, desig.Title, desig.Level)
	if err != nil {
		return fmt.Errorf("failed to create designation: %w", err)
	}
	return nil
}

func (r *designationRepositoryImpl) GetByID(ctx context.Context, id string) (*designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, title, level FROM designations WHERE id = $1`

	var desig designation.Designation
	err := q.QueryRow(ctx, query, id).Scan(&desig.ID, &desig.Title, &desig.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, designation.ErrDesignationNotFound
		}
		return nil, fmt.Errorf("failed to get designation: %w", err)
	}
	return &desig, nil
}

func (r *designationRepositoryImpl) GetByTitle(ctx context.Context, title string) (*designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, title, level FROM designations WHERE LOWER(title) = LOWER($1)`

	var desig designation.Designation
	err := q.QueryRow(ctx, query, title).Scan(&desig.ID, &desig.Title, &desig.Level)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, designation.ErrDesignationNotFound
		}
		return nil, fmt.Errorf("failed to get designation by title: %w", err)
	}
	return &desig, nil
}

func (r *designationRepositoryImpl) List(ctx context.Context) ([]*designation.Designation, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, title, level FROM designations ORDER BY level, title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list designations: %w", err)
	}
	defer rows.Close()

	var result []*designation.Designation
	for rows.Next() {
		var desig designation.Designation
		if err := rows.Scan(&desig.ID, &desig.Title, &desig.Level); err != nil {
			return nil, fmt.Errorf("failed to scan designation: %w", err)
		}
		result = append(result, &desig)
	}
	return result, rows.Err()
}

func (r *designationRepositoryImpl) Update(ctx context.Context, desig *designation.Designation) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE designations
		SET title = $1, level = $2, updated_at = NOW()
		WHERE id = $3
	`

	tag, err := q.Exec(ctx, query, desig.Title, desig.Level, desig.ID)
	if err != nil {
		return fmt.Errorf("failed to update designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

func (r *designationRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM designations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete designation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return designation.ErrDesignationNotFound
	}
	return nil
}

func (r *designationRepositoryImpl) CountEmployees(ctx context.Context, id string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM employees WHERE designation_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count designation employees: %w", err)
	}
	return count, nil
}
