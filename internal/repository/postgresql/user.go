package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type userRepositoryImpl struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.UserRepository {
	return &userRepositoryImpl{db: db}
}

const userColumns = `u.id, u.email, u.login_id, u.password_hash, u.full_name, u.phone,
	   u.role, u.company_name, u.is_active, u.created_at, u.updated_at, e.id`

func scanUser(row pgx.Row) (user.User, error) {
	var found user.User
	err := row.Scan(
		&found.ID,
		&found.Email,
		&found.LoginID,
		&found.PasswordHash,
		&found.FullName,
		&found.Phone,
		&found.Role,
		&found.CompanyName,
		&found.IsActive,
		&found.CreatedAt,
		&found.UpdatedAt,
		&found.EmployeeID,
	)
	return found, err
}

// Create implements user.UserRepository.
func (r *userRepositoryImpl) Create(ctx context.Context, newUser user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, login_id, password_hash, full_name, phone, role, company_name, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, email, login_id, password_hash, full_name, phone,
				  role, company_name, is_active, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		newUser.Email,
		newUser.LoginID,
		newUser.PasswordHash,
		newUser.FullName,
		newUser.Phone,
		newUser.Role,
		newUser.CompanyName,
		newUser.IsActive,
	).Scan(
		&created.ID,
		&created.Email,
		&created.LoginID,
		&created.PasswordHash,
		&created.FullName,
		&created.Phone,
		&created.Role,
		&created.CompanyName,
		&created.IsActive,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByID implements user.UserRepository.
func (r *userRepositoryImpl) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.id = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	return found, nil
}

// GetByEmail implements user.UserRepository.
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.email = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return found, nil
}

// GetByLoginID implements user.UserRepository.
func (r *userRepositoryImpl) GetByLoginID(ctx context.Context, loginID string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + userColumns + `
		FROM users u
		LEFT JOIN employees e ON e.user_id = u.id
		WHERE u.login_id = $1
	`

	found, err := scanUser(q.QueryRow(ctx, query, loginID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by login id: %w", err)
	}

	return found, nil
}

// ExistsByEmail implements user.UserRepository.
func (r *userRepositoryImpl) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	var exists bool
	err := q.QueryRow(ctx, query, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check user email: %w", err)
	}
	return exists, nil
}

// Update implements user.UserRepository.
func (r *userRepositoryImpl) Update(ctx context.Context, req user.UpdateUserRequest) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE users
		SET full_name = COALESCE($1, full_name),
			phone = COALESCE($2, phone),
			role = COALESCE($3, role),
			is_active = COALESCE($4, is_active),
			updated_at = NOW()
		WHERE id = $5
		RETURNING id, email, login_id, password_hash, full_name, phone,
				  role, company_name, is_active, created_at, updated_at
	`

	var updated user.User
	err := q.QueryRow(ctx, query,
		req.FullName,
		req.Phone,
		req.Role,
		req.IsActive,
		req.ID,
	).Scan(
		&updated.ID,
		&updated.Email,
		&updated.LoginID,
		&updated.PasswordHash,
		&updated.FullName,
		&updated.Phone,
		&updated.Role,
		&updated.CompanyName,
		&updated.IsActive,
		&updated.CreatedAt,
		&updated.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return updated, nil
}

// Delete implements user.UserRepository.
func (r *userRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// CountJoinedInYear implements user.UserRepository. Used to compute the
// next serial when generating login ids.
func (r *userRepositoryImpl) CountJoinedInYear(ctx context.Context, year int) (int, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT COUNT(*) FROM users WHERE EXTRACT(YEAR FROM created_at) = $1`

	var count int
	err := q.QueryRow(ctx, query, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count users joined in year: %w", err)
	}
	return count, nil
}
