package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipSelect = `
	SELECT p.id, p.employee_id, p.month, p.year,
		   p.basic_salary, p.hra, p.standard_allowance, p.performance_bonus,
		   p.lta, p.fixed_allowance, p.employee_pf, p.employer_pf, p.professional_tax,
		   p.worked_days, p.paid_time_off, p.unpaid_leave, p.total_days_in_month,
		   p.gross_salary, p.total_deductions, p.net_salary, p.employer_cost,
		   p.status, p.validated_by, p.validated_at, p.created_at, p.updated_at,
		   u.full_name, u.login_id
	FROM payslips p
	JOIN employees e ON e.id = p.employee_id
	JOIN users u ON u.id = e.user_id
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID,
		&p.EmployeeID,
		&p.Month,
		&p.Year,
		&p.BasicSalary,
		&p.HRA,
		&p.StandardAllowance,
		&p.PerformanceBonus,
		&p.LTA,
		&p.FixedAllowance,
		&p.EmployeePF,
		&p.EmployerPF,
		&p.ProfessionalTax,
		&p.WorkedDays,
		&p.PaidTimeOff,
		&p.UnpaidLeave,
		&p.TotalDaysInMonth,
		&p.GrossSalary,
		&p.TotalDeductions,
		&p.NetSalary,
		&p.EmployerCost,
		&p.Status,
		&p.ValidatedBy,
		&p.ValidatedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EmployeeName,
		&p.LoginID,
	)
	return p, err
}

// Create implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (
			employee_id, month, year,
			basic_salary, hra, standard_allowance, performance_bonus,
			lta, fixed_allowance, employee_pf, employer_pf, professional_tax,
			worked_days, paid_time_off, unpaid_leave, total_days_in_month,
			gross_salary, total_deductions, net_salary, employer_cost, status
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
				$13, $14, $15, $16, $17, $18, $19, $20, $21)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		p.EmployeeID, p.Month, p.Year,
		p.BasicSalary, p.HRA, p.StandardAllowance, p.PerformanceBonus,
		p.LTA, p.FixedAllowance, p.EmployeePF, p.EmployerPF, p.ProfessionalTax,
		p.WorkedDays, p.PaidTimeOff, p.UnpaidLeave, p.TotalDaysInMonth,
		p.GrossSalary, p.TotalDeductions, p.NetSalary, p.EmployerCost, p.Status,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return payroll.Payslip{}, payroll.ErrPayslipAlreadyExists
		}
		return payroll.Payslip{}, fmt.Errorf("failed to create payslip: %w", err)
	}

	return p, nil
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	p, err := scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE p.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	return p, nil
}

// ListByPeriod implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListByPeriod(ctx context.Context, month, year int) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := payslipSelect + ` WHERE p.month = $1 AND p.year = $2 ORDER BY u.full_name`

	rows, err := q.Query(ctx, query, month, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var result []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// CountByPeriod implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) CountByPeriod(ctx context.Context, month, year int) (int64, error) {
	q := GetQuerier(ctx, r.db)

	var count int64
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payslips WHERE month = $1 AND year = $2`, month, year).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payslips: %w", err)
	}
	return count, nil
}

// ClaimPeriod implements payroll.PayslipRepository. The insert succeeds
// for exactly one caller per (month, year); everyone else observes the
// conflict and backs off. This closes the window between checking for an
// existing payrun and inserting its payslips.
func (r *payslipRepositoryImpl) ClaimPeriod(ctx context.Context, month, year int, generatedBy string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payrun_periods (month, year, generated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (month, year) DO NOTHING
	`

	tag, err := q.Exec(ctx, query, month, year, generatedBy)
	if err != nil {
		return false, fmt.Errorf("failed to claim payrun period: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ReleasePeriod implements payroll.PayslipRepository. Called when
// generation fails after the claim so the period can be retried.
func (r *payslipRepositoryImpl) ReleasePeriod(ctx context.Context, month, year int) error {
	q := GetQuerier(ctx, r.db)

	_, err := q.Exec(ctx, `DELETE FROM payrun_periods WHERE month = $1 AND year = $2`, month, year)
	if err != nil {
		return fmt.Errorf("failed to release payrun period: %w", err)
	}
	return nil
}

// SetPeriodCount implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) SetPeriodCount(ctx context.Context, month, year int, count int) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payrun_periods
		SET payslip_count = $1, completed_at = NOW()
		WHERE month = $2 AND year = $3
	`

	_, err := q.Exec(ctx, query, count, month, year)
	if err != nil {
		return fmt.Errorf("failed to set payrun period count: %w", err)
	}
	return nil
}

// MarkComputed implements payroll.PayslipRepository. Restamps the payslip
// to Computed regardless of its current status.
func (r *payslipRepositoryImpl) MarkComputed(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = 'Computed', validated_by = NULL, validated_at = NULL, updated_at = NOW()
		WHERE id = $1
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to mark payslip computed: %w", err)
	}

	return r.GetByID(ctx, updated)
}

// ValidatePeriod implements payroll.PayslipRepository. Bulk-moves every
// payslip in the period to Validated except ones already Done.
func (r *payslipRepositoryImpl) ValidatePeriod(ctx context.Context, month, year int, validatedBy string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = 'Validated', validated_by = $1, validated_at = NOW(), updated_at = NOW()
		WHERE month = $2 AND year = $3 AND status <> 'Done'
	`

	tag, err := q.Exec(ctx, query, validatedBy, month, year)
	if err != nil {
		return 0, fmt.Errorf("failed to validate payrun: %w", err)
	}
	return tag.RowsAffected(), nil
}

// MarkDone implements payroll.PayslipRepository. Single-payslip
// validation finalizes the record.
func (r *payslipRepositoryImpl) MarkDone(ctx context.Context, id, validatedBy string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips
		SET status = 'Done', validated_by = $1, validated_at = NOW(), updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var updated string
	err := q.QueryRow(ctx, query, validatedBy, id).Scan(&updated)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to mark payslip done: %w", err)
	}

	return r.GetByID(ctx, updated)
}

// PayrunHistory implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) PayrunHistory(ctx context.Context, limit int) ([]payroll.PayrunSummary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT month, year, COUNT(*), COALESCE(SUM(employer_cost), 0)
		FROM payslips
		GROUP BY month, year
		ORDER BY year DESC, month DESC
		LIMIT $1
	`

	rows, err := q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get payrun history: %w", err)
	}
	defer rows.Close()

	var result []payroll.PayrunSummary
	for rows.Next() {
		var s payroll.PayrunSummary
		if err := rows.Scan(&s.Month, &s.Year, &s.PayslipCount, &s.TotalCost); err != nil {
			return nil, fmt.Errorf("failed to scan payrun summary: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// PeriodTotals implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) PeriodTotals(ctx context.Context, month, year int) (payroll.PeriodTotals, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*), COALESCE(SUM(employer_cost), 0)
		FROM payslips
		WHERE month = $1 AND year = $2
	`

	totals := payroll.PeriodTotals{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(&totals.PayslipCount, &totals.TotalCost)
	if err != nil {
		return payroll.PeriodTotals{}, fmt.Errorf("failed to get period totals: %w", err)
	}
	return totals, nil
}
