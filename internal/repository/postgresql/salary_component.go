package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type salaryComponentRepositoryImpl struct {
	db *database.DB
}

func NewSalaryComponentRepository(db *database.DB) payroll.SalaryComponentRepository {
	return &salaryComponentRepositoryImpl{db: db}
}

const salaryComponentColumns = `
	id, employee_id, basic_salary,
	hra_is_percentage, hra_percentage, hra_amount,
	standard_allowance_is_percentage, standard_allowance_percentage, standard_allowance_amount,
	performance_bonus_is_percentage, performance_bonus_percentage, performance_bonus_amount,
	lta_is_percentage, lta_percentage, lta_amount,
	fixed_allowance_is_percentage, fixed_allowance_percentage, fixed_allowance_amount,
	employee_pf_is_percentage, employee_pf_percentage, employee_pf_amount,
	employer_pf_is_percentage, employer_pf_percentage, employer_pf_amount,
	professional_tax, gross_salary, total_deductions, net_salary,
	effective_date, created_at, updated_at
`

func scanSalaryComponent(row pgx.Row) (payroll.SalaryComponent, error) {
	var sc payroll.SalaryComponent
	err := row.Scan(
		&sc.ID,
		&sc.EmployeeID,
		&sc.BasicSalary,
		&sc.HRA.IsPercentage, &sc.HRA.Percentage, &sc.HRA.Amount,
		&sc.StandardAllowance.IsPercentage, &sc.StandardAllowance.Percentage, &sc.StandardAllowance.Amount,
		&sc.PerformanceBonus.IsPercentage, &sc.PerformanceBonus.Percentage, &sc.PerformanceBonus.Amount,
		&sc.LTA.IsPercentage, &sc.LTA.Percentage, &sc.LTA.Amount,
		&sc.FixedAllowance.IsPercentage, &sc.FixedAllowance.Percentage, &sc.FixedAllowance.Amount,
		&sc.EmployeePF.IsPercentage, &sc.EmployeePF.Percentage, &sc.EmployeePF.Amount,
		&sc.EmployerPF.IsPercentage, &sc.EmployerPF.Percentage, &sc.EmployerPF.Amount,
		&sc.ProfessionalTax,
		&sc.GrossSalary,
		&sc.TotalDeductions,
		&sc.NetSalary,
		&sc.EffectiveDate,
		&sc.CreatedAt,
		&sc.UpdatedAt,
	)
	return sc, err
}

// Create implements payroll.SalaryComponentRepository. Rows are append
// only; a new effective-dated record supersedes older ones.
func (r *salaryComponentRepositoryImpl) Create(ctx context.Context, sc payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_components (
			employee_id, basic_salary,
			hra_is_percentage, hra_percentage, hra_amount,
			standard_allowance_is_percentage, standard_allowance_percentage, standard_allowance_amount,
			performance_bonus_is_percentage, performance_bonus_percentage, performance_bonus_amount,
			lta_is_percentage, lta_percentage, lta_amount,
			fixed_allowance_is_percentage, fixed_allowance_percentage, fixed_allowance_amount,
			employee_pf_is_percentage, employee_pf_percentage, employee_pf_amount,
			employer_pf_is_percentage, employer_pf_percentage, employer_pf_amount,
			professional_tax, gross_salary, total_deductions, net_salary, effective_date
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
				$16, $17, $18, $19, $20, $21, $22, $23, $24, $25, $26, $27, $28)
		RETURNING ` + salaryComponentColumns

	created, err := scanSalaryComponent(q.QueryRow(ctx, query,
		sc.EmployeeID,
		sc.BasicSalary,
		sc.HRA.IsPercentage, sc.HRA.Percentage, sc.HRA.Amount,
		sc.StandardAllowance.IsPercentage, sc.StandardAllowance.Percentage, sc.StandardAllowance.Amount,
		sc.PerformanceBonus.IsPercentage, sc.PerformanceBonus.Percentage, sc.PerformanceBonus.Amount,
		sc.LTA.IsPercentage, sc.LTA.Percentage, sc.LTA.Amount,
		sc.FixedAllowance.IsPercentage, sc.FixedAllowance.Percentage, sc.FixedAllowance.Amount,
		sc.EmployeePF.IsPercentage, sc.EmployeePF.Percentage, sc.EmployeePF.Amount,
		sc.EmployerPF.IsPercentage, sc.EmployerPF.Percentage, sc.EmployerPF.Amount,
		sc.ProfessionalTax,
		sc.GrossSalary,
		sc.TotalDeductions,
		sc.NetSalary,
		sc.EffectiveDate,
	))
	if err != nil {
		return payroll.SalaryComponent{}, fmt.Errorf("failed to create salary component: %w", err)
	}

	return created, nil
}

// GetCurrentByEmployee implements payroll.SalaryComponentRepository.
func (r *salaryComponentRepositoryImpl) GetCurrentByEmployee(ctx context.Context, employeeID string) (payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryComponentColumns + `
		FROM salary_components
		WHERE employee_id = $1
		ORDER BY effective_date DESC, created_at DESC
		LIMIT 1
	`

	sc, err := scanSalaryComponent(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.SalaryComponent{}, payroll.ErrSalaryComponentNotFound
		}
		return payroll.SalaryComponent{}, fmt.Errorf("failed to get current salary component: %w", err)
	}

	return sc, nil
}

// ListByEmployee implements payroll.SalaryComponentRepository.
func (r *salaryComponentRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SalaryComponent, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryComponentColumns + `
		FROM salary_components
		WHERE employee_id = $1
		ORDER BY effective_date DESC, created_at DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary components: %w", err)
	}
	defer rows.Close()

	var result []payroll.SalaryComponent
	for rows.Next() {
		sc, err := scanSalaryComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary component: %w", err)
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}
