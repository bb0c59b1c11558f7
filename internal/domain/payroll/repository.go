package payroll

import "context"

// SalaryComponentRepository stores effective-dated salary component
// history. Records are never updated or deleted; new effective-dated rows
// supersede old ones.
type SalaryComponentRepository interface {
	Create(ctx context.Context, sc SalaryComponent) (SalaryComponent, error)
	// GetCurrentByEmployee returns the most recent component by effective
	// date, the single authoritative record for any computation.
	GetCurrentByEmployee(ctx context.Context, employeeID string) (SalaryComponent, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]SalaryComponent, error)
}

type PayslipRepository interface {
	Create(ctx context.Context, p Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	ListByPeriod(ctx context.Context, month, year int) ([]Payslip, error)
	CountByPeriod(ctx context.Context, month, year int) (int64, error)

	// ClaimPeriod atomically claims the (month, year) generation slot.
	// Returns false when another payrun already holds the period, which
	// serializes concurrent generation requests.
	ClaimPeriod(ctx context.Context, month, year int, generatedBy string) (bool, error)
	ReleasePeriod(ctx context.Context, month, year int) error
	SetPeriodCount(ctx context.Context, month, year int, count int) error

	// Lifecycle transitions
	MarkComputed(ctx context.Context, id string) (Payslip, error)
	ValidatePeriod(ctx context.Context, month, year int, validatedBy string) (int64, error)
	MarkDone(ctx context.Context, id, validatedBy string) (Payslip, error)

	// Reporting
	PayrunHistory(ctx context.Context, limit int) ([]PayrunSummary, error)
	PeriodTotals(ctx context.Context, month, year int) (PeriodTotals, error)
}
