package payroll

import "context"

type PayrollService interface {
	// Salary components
	CreateSalaryComponent(ctx context.Context, req CreateSalaryComponentRequest) (SalaryComponentResponse, error)
	GetCurrentSalaryComponent(ctx context.Context, employeeID string) (SalaryComponentResponse, error)
	ListSalaryComponents(ctx context.Context, employeeID string) ([]SalaryComponentResponse, error)

	// Payrun generation and lifecycle
	GeneratePayrun(ctx context.Context, req GeneratePayrunRequest, generatedBy string) (GeneratePayrunResponse, error)
	ValidatePayrun(ctx context.Context, req ValidatePayrunRequest, validatedBy string) (ValidatePayrunResponse, error)
	ComputePayslip(ctx context.Context, id string) (PayslipResponse, error)
	ValidatePayslip(ctx context.Context, id string, validatedBy string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, month, year int) ([]PayslipResponse, error)

	// Reporting
	GetWarnings(ctx context.Context) (WarningsResponse, error)
	GetPayrunHistory(ctx context.Context) ([]PayrunSummaryResponse, error)
	GetEmployerCostSeries(ctx context.Context) ([]CostSeriesPoint, error)
}
