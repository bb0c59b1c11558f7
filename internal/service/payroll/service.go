package payroll

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/repository/postgresql"
)

const historyLimit = 24

type PayrollServiceImpl struct {
	db             *database.DB
	salaryRepo     payroll.SalaryComponentRepository
	payslipRepo    payroll.PayslipRepository
	attendanceRepo attendance.AttendanceRepository
	leaveRepo      leave.LeaveRequestRepository
	employeeRepo   employee.EmployeeRepository
}

func NewPayrollService(
	db *database.DB,
	salaryRepo payroll.SalaryComponentRepository,
	payslipRepo payroll.PayslipRepository,
	attendanceRepo attendance.AttendanceRepository,
	leaveRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) payroll.PayrollService {
	return &PayrollServiceImpl{
		db:             db,
		salaryRepo:     salaryRepo,
		payslipRepo:    payslipRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
	}
}

// CreateSalaryComponent implements payroll.PayrollService. Writes a new
// effective-dated record; history is never mutated.
func (s *PayrollServiceImpl) CreateSalaryComponent(ctx context.Context, req payroll.CreateSalaryComponentRequest) (payroll.SalaryComponentResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return payroll.SalaryComponentResponse{}, payroll.ErrEmployeeNotFound
		}
		return payroll.SalaryComponentResponse{}, err
	}

	sc := req.ToEntity()
	if err := sc.Recalculate(); err != nil {
		return payroll.SalaryComponentResponse{}, err
	}

	current, err := s.salaryRepo.GetCurrentByEmployee(ctx, req.EmployeeID)
	if err != nil && !errors.Is(err, payroll.ErrSalaryComponentNotFound) {
		return payroll.SalaryComponentResponse{}, err
	}
	if err == nil && current.EffectiveDate.Equal(sc.EffectiveDate) {
		return payroll.SalaryComponentResponse{}, payroll.ErrEmployeeAlreadyOnPayroll
	}

	created, err := s.salaryRepo.Create(ctx, sc)
	if err != nil {
		return payroll.SalaryComponentResponse{}, err
	}

	return payroll.ToSalaryComponentResponse(created), nil
}

// GetCurrentSalaryComponent implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetCurrentSalaryComponent(ctx context.Context, employeeID string) (payroll.SalaryComponentResponse, error) {
	sc, err := s.salaryRepo.GetCurrentByEmployee(ctx, employeeID)
	if err != nil {
		return payroll.SalaryComponentResponse{}, err
	}
	return payroll.ToSalaryComponentResponse(sc), nil
}

// ListSalaryComponents implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListSalaryComponents(ctx context.Context, employeeID string) ([]payroll.SalaryComponentResponse, error) {
	components, err := s.salaryRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.SalaryComponentResponse, 0, len(components))
	for _, sc := range components {
		result = append(result, payroll.ToSalaryComponentResponse(sc))
	}
	return result, nil
}

// GeneratePayrun implements payroll.PayrollService. Claims the period
// slot first so two simultaneous requests cannot both generate; the loser
// gets ErrPayrunAlreadyGenerated. Active employees without a salary
// component are skipped, not failed, and reported back to the caller.
func (s *PayrollServiceImpl) GeneratePayrun(ctx context.Context, req payroll.GeneratePayrunRequest, generatedBy string) (payroll.GeneratePayrunResponse, error) {
	claimed, err := s.payslipRepo.ClaimPeriod(ctx, req.Month, req.Year, generatedBy)
	if err != nil {
		return payroll.GeneratePayrunResponse{}, err
	}
	if !claimed {
		return payroll.GeneratePayrunResponse{}, payroll.ErrPayrunAlreadyGenerated
	}

	resp := payroll.GeneratePayrunResponse{
		Month:   req.Month,
		Year:    req.Year,
		Skipped: []payroll.SkippedEmployee{},
	}

	err = postgresql.RunInTx(ctx, s.db, func(txCtx context.Context) error {
		employees, err := s.employeeRepo.ListActive(txCtx)
		if err != nil {
			return err
		}

		for _, emp := range employees {
			sc, err := s.salaryRepo.GetCurrentByEmployee(txCtx, emp.ID)
			if errors.Is(err, payroll.ErrSalaryComponentNotFound) {
				name := ""
				if emp.FullName != nil {
					name = *emp.FullName
				}
				resp.Skipped = append(resp.Skipped, payroll.SkippedEmployee{
					EmployeeID: emp.ID,
					FullName:   name,
					Reason:     "no salary component",
				})
				continue
			}
			if err != nil {
				return err
			}

			slip, err := s.computeSnapshot(txCtx, emp.ID, sc, req.Month, req.Year)
			if err != nil {
				return err
			}

			if _, err := s.payslipRepo.Create(txCtx, slip); err != nil {
				return err
			}
			resp.Count++
		}

		return s.payslipRepo.SetPeriodCount(txCtx, req.Month, req.Year, resp.Count)
	})
	if err != nil {
		if relErr := s.payslipRepo.ReleasePeriod(ctx, req.Month, req.Year); relErr != nil {
			return payroll.GeneratePayrunResponse{}, fmt.Errorf("%w (release failed: %v)", err, relErr)
		}
		return payroll.GeneratePayrunResponse{}, err
	}

	return resp, nil
}

// computeSnapshot freezes one employee's pay for the period. The salary
// component is recalculated, earnings are prorated by the attendance
// factor and every line is rounded to a whole amount exactly once.
// Aggregates are then sums of the rounded lines, so gross, deductions and
// net always reconcile to the rupee.
func (s *PayrollServiceImpl) computeSnapshot(ctx context.Context, employeeID string, sc payroll.SalaryComponent, month, year int) (payroll.Payslip, error) {
	if err := sc.Recalculate(); err != nil {
		return payroll.Payslip{}, err
	}

	totalDays := payroll.DaysInMonth(month, year)
	start, end := payroll.PeriodBounds(month, year)

	worked, err := s.attendanceRepo.WorkedDays(ctx, employeeID, start, end)
	if err != nil {
		return payroll.Payslip{}, err
	}

	paidLeave, unpaidLeave, err := s.leaveRepo.ApprovedDaysInPeriod(ctx, employeeID, start, end)
	if err != nil {
		return payroll.Payslip{}, err
	}

	// Paid time off counts as payable days; unpaid leave and absences do
	// not.
	payable := decimal.NewFromFloat(worked).Add(decimal.NewFromInt(int64(paidLeave)))
	factor := payable.Div(decimal.NewFromInt(int64(totalDays)))
	if factor.GreaterThan(decimal.NewFromInt(1)) {
		factor = decimal.NewFromInt(1)
	}
	if factor.IsNegative() {
		factor = decimal.Zero
	}

	basic := sc.BasicSalary.Mul(factor).Round(0)
	hra := sc.HRA.Amount.Mul(factor).Round(0)
	standard := sc.StandardAllowance.Amount.Mul(factor).Round(0)
	bonus := sc.PerformanceBonus.Amount.Mul(factor).Round(0)
	lta := sc.LTA.Amount.Mul(factor).Round(0)
	fixed := sc.FixedAllowance.Amount.Mul(factor).Round(0)

	// PF is assessed on the prorated basic, not the full one.
	employeePF := sc.EmployeePF.Resolve(basic).Round(0)
	employerPF := sc.EmployerPF.Resolve(basic).Round(0)
	profTax := sc.ProfessionalTax.Round(0)

	gross := basic.Add(hra).Add(standard).Add(bonus).Add(lta).Add(fixed)
	deductions := employeePF.Add(profTax)
	net := gross.Sub(deductions)
	employerCost := net.Add(employerPF)

	return payroll.Payslip{
		EmployeeID:        employeeID,
		Month:             month,
		Year:              year,
		BasicSalary:       basic,
		HRA:               hra,
		StandardAllowance: standard,
		PerformanceBonus:  bonus,
		LTA:               lta,
		FixedAllowance:    fixed,
		EmployeePF:        employeePF,
		EmployerPF:        employerPF,
		ProfessionalTax:   profTax,
		WorkedDays:        int(math.Round(worked)),
		PaidTimeOff:       paidLeave,
		UnpaidLeave:       unpaidLeave,
		TotalDaysInMonth:  totalDays,
		GrossSalary:       gross,
		TotalDeductions:   deductions,
		NetSalary:         net,
		EmployerCost:      employerCost,
		Status:            payroll.PayslipStatusComputed,
	}, nil
}

// ValidatePayrun implements payroll.PayrollService. Moves every payslip
// in the period to Validated, leaving Done ones untouched.
func (s *PayrollServiceImpl) ValidatePayrun(ctx context.Context, req payroll.ValidatePayrunRequest, validatedBy string) (payroll.ValidatePayrunResponse, error) {
	count, err := s.payslipRepo.CountByPeriod(ctx, req.Month, req.Year)
	if err != nil {
		return payroll.ValidatePayrunResponse{}, err
	}
	if count == 0 {
		return payroll.ValidatePayrunResponse{}, payroll.ErrNoPayslipsForPeriod
	}

	validated, err := s.payslipRepo.ValidatePeriod(ctx, req.Month, req.Year, validatedBy)
	if err != nil {
		return payroll.ValidatePayrunResponse{}, err
	}

	return payroll.ValidatePayrunResponse{
		Month:     req.Month,
		Year:      req.Year,
		Validated: validated,
	}, nil
}

// ComputePayslip implements payroll.PayrollService. Restamps the payslip
// to Computed whatever its previous status; the frozen amounts are left
// untouched.
func (s *PayrollServiceImpl) ComputePayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	existing, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	// The snapshot itself is immutable history; recompute only refreshes
	// the status stamp. A missing salary component still blocks the
	// restamp.
	if _, err := s.salaryRepo.GetCurrentByEmployee(ctx, existing.EmployeeID); err != nil {
		return payroll.PayslipResponse{}, err
	}

	updated, err := s.payslipRepo.MarkComputed(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.ToPayslipResponse(updated), nil
}

// ValidatePayslip implements payroll.PayrollService. Single-payslip
// validation finalizes the record as Done, unlike the bulk path which
// stops at Validated.
func (s *PayrollServiceImpl) ValidatePayslip(ctx context.Context, id string, validatedBy string) (payroll.PayslipResponse, error) {
	updated, err := s.payslipRepo.MarkDone(ctx, id, validatedBy)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.ToPayslipResponse(updated), nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, month, year int) ([]payroll.PayslipResponse, error) {
	payslips, err := s.payslipRepo.ListByPeriod(ctx, month, year)
	if err != nil {
		return nil, err
	}
	if len(payslips) == 0 {
		return nil, payroll.ErrNoPayslipsForPeriod
	}
	return payroll.ToPayslipResponses(payslips), nil
}

// GetWarnings implements payroll.PayrollService. Flags active employees
// whose records would block or complicate a payout.
func (s *PayrollServiceImpl) GetWarnings(ctx context.Context) (payroll.WarningsResponse, error) {
	resp := payroll.WarningsResponse{
		NoBankAccount: []payroll.EmployeeWarning{},
		NoManager:     []payroll.EmployeeWarning{},
	}

	noBank, err := s.employeeRepo.ListActiveMissingBankAccount(ctx)
	if err != nil {
		return payroll.WarningsResponse{}, err
	}
	for _, emp := range noBank {
		resp.NoBankAccount = append(resp.NoBankAccount, toWarning(emp))
	}

	noManager, err := s.employeeRepo.ListActiveMissingManager(ctx)
	if err != nil {
		return payroll.WarningsResponse{}, err
	}
	for _, emp := range noManager {
		resp.NoManager = append(resp.NoManager, toWarning(emp))
	}

	return resp, nil
}

func toWarning(emp employee.Employee) payroll.EmployeeWarning {
	w := payroll.EmployeeWarning{
		EmployeeID: emp.ID,
		LoginID:    emp.LoginID,
	}
	if emp.FullName != nil {
		w.FullName = *emp.FullName
	}
	return w
}

// GetPayrunHistory implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayrunHistory(ctx context.Context) ([]payroll.PayrunSummaryResponse, error) {
	history, err := s.payslipRepo.PayrunHistory(ctx, historyLimit)
	if err != nil {
		return nil, err
	}

	result := make([]payroll.PayrunSummaryResponse, 0, len(history))
	for _, h := range history {
		result = append(result, payroll.PayrunSummaryResponse{
			Month:        h.Month,
			Year:         h.Year,
			MonthName:    time.Month(h.Month).String(),
			PayslipCount: h.PayslipCount,
			TotalCost:    h.TotalCost,
		})
	}
	return result, nil
}

// GetEmployerCostSeries implements payroll.PayrollService. Returns the
// trailing twelve months oldest first, including empty periods, so the
// series plots as a continuous line.
func (s *PayrollServiceImpl) GetEmployerCostSeries(ctx context.Context) ([]payroll.CostSeriesPoint, error) {
	now := time.Now().UTC()
	// Anchor to the first of the month so subtracting months never
	// overflows into the wrong period.
	base := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	result := make([]payroll.CostSeriesPoint, 0, 12)
	for i := 11; i >= 0; i-- {
		at := base.AddDate(0, -i, 0)
		month := int(at.Month())
		year := at.Year()

		totals, err := s.payslipRepo.PeriodTotals(ctx, month, year)
		if err != nil {
			return nil, err
		}

		result = append(result, payroll.CostSeriesPoint{
			Month:        month,
			Year:         year,
			MonthName:    time.Month(month).String(),
			PayslipCount: totals.PayslipCount,
			TotalCost:    totals.TotalCost,
		})
	}
	return result, nil
}
