package payroll

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
)

// In-memory fakes so the computation paths can be exercised without a
// database. Transactional generation is covered by the postgresql tests.

type fakeSalaryRepo struct {
	components map[string]payroll.SalaryComponent
}

func (f *fakeSalaryRepo) Create(ctx context.Context, sc payroll.SalaryComponent) (payroll.SalaryComponent, error) {
	sc.ID = "sc-" + sc.EmployeeID
	f.components[sc.EmployeeID] = sc
	return sc, nil
}

func (f *fakeSalaryRepo) GetCurrentByEmployee(ctx context.Context, employeeID string) (payroll.SalaryComponent, error) {
	sc, ok := f.components[employeeID]
	if !ok {
		return payroll.SalaryComponent{}, payroll.ErrSalaryComponentNotFound
	}
	return sc, nil
}

func (f *fakeSalaryRepo) ListByEmployee(ctx context.Context, employeeID string) ([]payroll.SalaryComponent, error) {
	sc, ok := f.components[employeeID]
	if !ok {
		return nil, nil
	}
	return []payroll.SalaryComponent{sc}, nil
}

type fakePayslipRepo struct {
	payslips map[string]payroll.Payslip
	claimed  map[[2]int]bool
	nextID   int
}

func (f *fakePayslipRepo) Create(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	f.nextID++
	p.ID = "ps-" + p.EmployeeID
	f.payslips[p.ID] = p
	return p, nil
}

func (f *fakePayslipRepo) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	p, ok := f.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	return p, nil
}

func (f *fakePayslipRepo) ListByPeriod(ctx context.Context, month, year int) ([]payroll.Payslip, error) {
	var result []payroll.Payslip
	for _, p := range f.payslips {
		if p.Month == month && p.Year == year {
			result = append(result, p)
		}
	}
	return result, nil
}

func (f *fakePayslipRepo) CountByPeriod(ctx context.Context, month, year int) (int64, error) {
	list, _ := f.ListByPeriod(ctx, month, year)
	return int64(len(list)), nil
}

func (f *fakePayslipRepo) ClaimPeriod(ctx context.Context, month, year int, generatedBy string) (bool, error) {
	key := [2]int{month, year}
	if f.claimed[key] {
		return false, nil
	}
	f.claimed[key] = true
	return true, nil
}

func (f *fakePayslipRepo) ReleasePeriod(ctx context.Context, month, year int) error {
	delete(f.claimed, [2]int{month, year})
	return nil
}

func (f *fakePayslipRepo) SetPeriodCount(ctx context.Context, month, year, count int) error {
	return nil
}

func (f *fakePayslipRepo) MarkComputed(ctx context.Context, id string) (payroll.Payslip, error) {
	p, ok := f.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	p.Status = payroll.PayslipStatusComputed
	p.ValidatedBy = nil
	p.ValidatedAt = nil
	f.payslips[id] = p
	return p, nil
}

func (f *fakePayslipRepo) ValidatePeriod(ctx context.Context, month, year int, validatedBy string) (int64, error) {
	var count int64
	now := time.Now()
	for id, p := range f.payslips {
		if p.Month == month && p.Year == year && p.Status != payroll.PayslipStatusDone {
			p.Status = payroll.PayslipStatusValidated
			p.ValidatedBy = &validatedBy
			p.ValidatedAt = &now
			f.payslips[id] = p
			count++
		}
	}
	return count, nil
}

func (f *fakePayslipRepo) MarkDone(ctx context.Context, id, validatedBy string) (payroll.Payslip, error) {
	p, ok := f.payslips[id]
	if !ok {
		return payroll.Payslip{}, payroll.ErrPayslipNotFound
	}
	now := time.Now()
	p.Status = payroll.PayslipStatusDone
	p.ValidatedBy = &validatedBy
	p.ValidatedAt = &now
	f.payslips[id] = p
	return p, nil
}

func (f *fakePayslipRepo) PayrunHistory(ctx context.Context, limit int) ([]payroll.PayrunSummary, error) {
	return nil, nil
}

func (f *fakePayslipRepo) PeriodTotals(ctx context.Context, month, year int) (payroll.PeriodTotals, error) {
	totals := payroll.PeriodTotals{Month: month, Year: year}
	for _, p := range f.payslips {
		if p.Month == month && p.Year == year {
			totals.PayslipCount++
			totals.TotalCost = totals.TotalCost.Add(p.EmployerCost)
		}
	}
	return totals, nil
}

type fakeAttendanceRepo struct {
	worked map[string]float64
}

func (f *fakeAttendanceRepo) Create(ctx context.Context, a *attendance.Attendance) error { return nil }
func (f *fakeAttendanceRepo) GetByID(ctx context.Context, id string) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}
func (f *fakeAttendanceRepo) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	return nil, attendance.ErrAttendanceNotFound
}
func (f *fakeAttendanceRepo) Update(ctx context.Context, a *attendance.Attendance) error { return nil }
func (f *fakeAttendanceRepo) ListByEmployee(ctx context.Context, employeeID string, start, end time.Time) ([]*attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) ListByDate(ctx context.Context, date time.Time) ([]*attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) ListByPeriod(ctx context.Context, start, end time.Time) ([]*attendance.Attendance, error) {
	return nil, nil
}
func (f *fakeAttendanceRepo) WorkedDays(ctx context.Context, employeeID string, start, end time.Time) (float64, error) {
	return f.worked[employeeID], nil
}
func (f *fakeAttendanceRepo) MarkAbsentees(ctx context.Context, date time.Time) (int64, error) {
	return 0, nil
}

type fakeLeaveRepo struct {
	paid   map[string]int
	unpaid map[string]int
}

func (f *fakeLeaveRepo) Create(ctx context.Context, lr *leave.LeaveRequest) error { return nil }
func (f *fakeLeaveRepo) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	return nil, leave.ErrLeaveRequestNotFound
}
func (f *fakeLeaveRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*leave.LeaveRequest, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) ListByStatus(ctx context.Context, status string) ([]*leave.LeaveRequest, error) {
	return nil, nil
}
func (f *fakeLeaveRepo) List(ctx context.Context) ([]*leave.LeaveRequest, error) { return nil, nil }
func (f *fakeLeaveRepo) Update(ctx context.Context, lr *leave.LeaveRequest) error {
	return nil
}
func (f *fakeLeaveRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	return false, nil
}
func (f *fakeLeaveRepo) ApprovedDaysInPeriod(ctx context.Context, employeeID string, start, end time.Time) (int, int, error) {
	return f.paid[employeeID], f.unpaid[employeeID], nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	return e, nil
}
func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}
func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return f.ListActive(ctx)
}
func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range f.employees {
		if e.Status == employee.StatusActive {
			result = append(result, e)
		}
	}
	return result, nil
}
func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, employee.ErrEmployeeNotFound
}
func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }
func (f *fakeEmployeeRepo) ListActiveMissingBankAccount(ctx context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range f.employees {
		if e.Status == employee.StatusActive && e.BankAccountNumber == nil {
			result = append(result, e)
		}
	}
	return result, nil
}
func (f *fakeEmployeeRepo) ListActiveMissingManager(ctx context.Context) ([]employee.Employee, error) {
	var result []employee.Employee
	for _, e := range f.employees {
		if e.Status == employee.StatusActive && e.ReportingManagerID == nil {
			result = append(result, e)
		}
	}
	return result, nil
}

func strPtr(s string) *string { return &s }

func newTestService() (*PayrollServiceImpl, *fakeSalaryRepo, *fakePayslipRepo, *fakeAttendanceRepo, *fakeLeaveRepo, *fakeEmployeeRepo) {
	salaryRepo := &fakeSalaryRepo{components: map[string]payroll.SalaryComponent{}}
	payslipRepo := &fakePayslipRepo{payslips: map[string]payroll.Payslip{}, claimed: map[[2]int]bool{}}
	attendanceRepo := &fakeAttendanceRepo{worked: map[string]float64{}}
	leaveRepo := &fakeLeaveRepo{paid: map[string]int{}, unpaid: map[string]int{}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}}

	svc := &PayrollServiceImpl{
		salaryRepo:     salaryRepo,
		payslipRepo:    payslipRepo,
		attendanceRepo: attendanceRepo,
		leaveRepo:      leaveRepo,
		employeeRepo:   employeeRepo,
	}
	return svc, salaryRepo, payslipRepo, attendanceRepo, leaveRepo, employeeRepo
}

func testComponent(employeeID string, basic int64) payroll.SalaryComponent {
	sc := payroll.SalaryComponent{
		EmployeeID:        employeeID,
		BasicSalary:       decimal.NewFromInt(basic),
		HRA:               payroll.PercentageRate(decimal.NewFromInt(40)),
		StandardAllowance: payroll.FixedRate(decimal.NewFromInt(4000)),
		PerformanceBonus:  payroll.FixedRate(decimal.Zero),
		LTA:               payroll.FixedRate(decimal.Zero),
		FixedAllowance:    payroll.FixedRate(decimal.Zero),
		EmployeePF:        payroll.PercentageRate(payroll.DefaultPFPercentage),
		EmployerPF:        payroll.PercentageRate(payroll.DefaultPFPercentage),
		ProfessionalTax:   payroll.DefaultProfessionalTax,
		EffectiveDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	return sc
}

func TestComputeSnapshot_FullAttendance(t *testing.T) {
	svc, _, _, attendanceRepo, _, _ := newTestService()
	ctx := context.Background()

	// June 2024 has 30 days, all worked.
	attendanceRepo.worked["emp-1"] = 30

	sc := testComponent("emp-1", 60000)
	slip, err := svc.computeSnapshot(ctx, "emp-1", sc, 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, "60000", slip.BasicSalary.String())
	assert.Equal(t, "24000", slip.HRA.String())
	assert.Equal(t, "4000", slip.StandardAllowance.String())
	assert.Equal(t, "7200", slip.EmployeePF.String())
	assert.Equal(t, "7200", slip.EmployerPF.String())
	assert.Equal(t, "200", slip.ProfessionalTax.String())
	assert.Equal(t, "88000", slip.GrossSalary.String())
	assert.Equal(t, "7400", slip.TotalDeductions.String())
	assert.Equal(t, "80600", slip.NetSalary.String())
	assert.Equal(t, "87800", slip.EmployerCost.String())
	assert.Equal(t, 30, slip.WorkedDays)
	assert.Equal(t, 30, slip.TotalDaysInMonth)
	assert.Equal(t, payroll.PayslipStatusComputed, slip.Status)
}

func TestComputeSnapshot_ProratedByAttendance(t *testing.T) {
	svc, _, _, attendanceRepo, leaveRepo, _ := newTestService()
	ctx := context.Background()

	// 20 worked days plus 5 paid leave of 30: factor 25/30.
	attendanceRepo.worked["emp-1"] = 20
	leaveRepo.paid["emp-1"] = 5
	leaveRepo.unpaid["emp-1"] = 5

	sc := testComponent("emp-1", 60000)
	slip, err := svc.computeSnapshot(ctx, "emp-1", sc, 6, 2024)
	require.NoError(t, err)

	// 60000 * 25/30 = 50000.
	assert.Equal(t, "50000", slip.BasicSalary.String())
	assert.Equal(t, "20000", slip.HRA.String())
	// PF on the prorated basic: 12% of 50000.
	assert.Equal(t, "6000", slip.EmployeePF.String())
	assert.Equal(t, 5, slip.PaidTimeOff)
	assert.Equal(t, 5, slip.UnpaidLeave)

	// Integer identities hold after rounding each line once.
	sum := slip.BasicSalary.Add(slip.HRA).Add(slip.StandardAllowance).
		Add(slip.PerformanceBonus).Add(slip.LTA).Add(slip.FixedAllowance)
	assert.True(t, slip.GrossSalary.Equal(sum))
	assert.True(t, slip.NetSalary.Equal(slip.GrossSalary.Sub(slip.TotalDeductions)))
	assert.True(t, slip.EmployerCost.Equal(slip.NetSalary.Add(slip.EmployerPF)))
}

func TestComputeSnapshot_ZeroAttendance(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	sc := testComponent("emp-1", 60000)
	slip, err := svc.computeSnapshot(ctx, "emp-1", sc, 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, "0", slip.BasicSalary.String())
	assert.Equal(t, "0", slip.GrossSalary.String())
	// Professional tax still applies, pushing net negative.
	assert.Equal(t, "200", slip.TotalDeductions.String())
	assert.Equal(t, "-200", slip.NetSalary.String())
}

func TestComputeSnapshot_FactorCappedAtOne(t *testing.T) {
	svc, _, _, attendanceRepo, leaveRepo, _ := newTestService()
	ctx := context.Background()

	// Worked plus paid leave exceeds the calendar; pay never exceeds the
	// full component.
	attendanceRepo.worked["emp-1"] = 30
	leaveRepo.paid["emp-1"] = 10

	sc := testComponent("emp-1", 60000)
	slip, err := svc.computeSnapshot(ctx, "emp-1", sc, 6, 2024)
	require.NoError(t, err)

	assert.Equal(t, "60000", slip.BasicSalary.String())
}

func TestGeneratePayrun_SecondCallRejected(t *testing.T) {
	svc, _, payslipRepo, _, _, _ := newTestService()
	ctx := context.Background()

	claimed, err := payslipRepo.ClaimPeriod(ctx, 6, 2024, "user-1")
	require.NoError(t, err)
	require.True(t, claimed)

	_, err = svc.GeneratePayrun(ctx, payroll.GeneratePayrunRequest{Month: 6, Year: 2024}, "user-2")
	assert.ErrorIs(t, err, payroll.ErrPayrunAlreadyGenerated)
}

func TestGeneratePayrun_SkipsEmployeeWithoutComponent(t *testing.T) {
	svc, salaryRepo, payslipRepo, attendanceRepo, _, employeeRepo := newTestService()
	ctx := context.Background()

	employeeRepo.employees["emp-1"] = employee.Employee{
		ID: "emp-1", Status: employee.StatusActive, FullName: strPtr("Has Component"),
	}
	employeeRepo.employees["emp-2"] = employee.Employee{
		ID: "emp-2", Status: employee.StatusActive, FullName: strPtr("No Component"),
	}
	salaryRepo.components["emp-1"] = testComponent("emp-1", 60000)
	attendanceRepo.worked["emp-1"] = 30

	resp, err := svc.GeneratePayrun(ctx, payroll.GeneratePayrunRequest{Month: 6, Year: 2024}, "user-1")
	require.NoError(t, err)

	// The batch completes: one payslip, the component-less employee is
	// reported back instead of failing the run.
	assert.Equal(t, 1, resp.Count)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "emp-2", resp.Skipped[0].EmployeeID)
	assert.Equal(t, "No Component", resp.Skipped[0].FullName)
	assert.Equal(t, "no salary component", resp.Skipped[0].Reason)

	slips, err := payslipRepo.ListByPeriod(ctx, 6, 2024)
	require.NoError(t, err)
	require.Len(t, slips, 1)
	assert.Equal(t, "emp-1", slips[0].EmployeeID)
}

func TestValidatePayrun_NoPayslips(t *testing.T) {
	svc, _, _, _, _, _ := newTestService()
	ctx := context.Background()

	_, err := svc.ValidatePayrun(ctx, payroll.ValidatePayrunRequest{Month: 6, Year: 2024}, "user-1")
	assert.ErrorIs(t, err, payroll.ErrNoPayslipsForPeriod)
}

func TestValidatePayrun_SkipsDone(t *testing.T) {
	svc, _, payslipRepo, _, _, _ := newTestService()
	ctx := context.Background()

	payslipRepo.payslips["ps-1"] = payroll.Payslip{
		ID: "ps-1", EmployeeID: "emp-1", Month: 6, Year: 2024,
		Status: payroll.PayslipStatusComputed,
	}
	payslipRepo.payslips["ps-2"] = payroll.Payslip{
		ID: "ps-2", EmployeeID: "emp-2", Month: 6, Year: 2024,
		Status: payroll.PayslipStatusDone,
	}

	resp, err := svc.ValidatePayrun(ctx, payroll.ValidatePayrunRequest{Month: 6, Year: 2024}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Validated)
	assert.Equal(t, payroll.PayslipStatusDone, payslipRepo.payslips["ps-2"].Status)
}

func TestValidatePayslip_MarksDone(t *testing.T) {
	svc, _, payslipRepo, _, _, _ := newTestService()
	ctx := context.Background()

	payslipRepo.payslips["ps-1"] = payroll.Payslip{
		ID: "ps-1", EmployeeID: "emp-1", Month: 6, Year: 2024,
		Status: payroll.PayslipStatusValidated,
	}

	resp, err := svc.ValidatePayslip(ctx, "ps-1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayslipStatusDone), resp.Status)
	require.NotNil(t, resp.ValidatedBy)
	assert.Equal(t, "user-1", *resp.ValidatedBy)
}

func TestComputePayslip_RestampsAnyStatus(t *testing.T) {
	svc, salaryRepo, payslipRepo, attendanceRepo, _, _ := newTestService()
	ctx := context.Background()

	salaryRepo.components["emp-1"] = testComponent("emp-1", 60000)
	attendanceRepo.worked["emp-1"] = 30
	by := "user-1"
	now := time.Now()
	payslipRepo.payslips["ps-1"] = payroll.Payslip{
		ID: "ps-1", EmployeeID: "emp-1", Month: 6, Year: 2024,
		Status: payroll.PayslipStatusDone, ValidatedBy: &by, ValidatedAt: &now,
	}

	resp, err := svc.ComputePayslip(ctx, "ps-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayslipStatusComputed), resp.Status)
	assert.Nil(t, resp.ValidatedBy)
}

func TestComputePayslip_KeepsFrozenAmounts(t *testing.T) {
	svc, salaryRepo, payslipRepo, _, _, _ := newTestService()
	ctx := context.Background()

	// Current component pays more than the slip was frozen at.
	salaryRepo.components["emp-1"] = testComponent("emp-1", 90000)
	payslipRepo.payslips["ps-1"] = payroll.Payslip{
		ID: "ps-1", EmployeeID: "emp-1", Month: 6, Year: 2024,
		Status:      payroll.PayslipStatusValidated,
		BasicSalary: decimal.NewFromInt(50000),
		NetSalary:   decimal.NewFromInt(45000),
	}

	resp, err := svc.ComputePayslip(ctx, "ps-1")
	require.NoError(t, err)
	assert.Equal(t, string(payroll.PayslipStatusComputed), resp.Status)

	stored := payslipRepo.payslips["ps-1"]
	assert.True(t, stored.BasicSalary.Equal(decimal.NewFromInt(50000)))
	assert.True(t, stored.NetSalary.Equal(decimal.NewFromInt(45000)))
}

func TestComputePayslip_MissingComponentRejected(t *testing.T) {
	svc, _, payslipRepo, _, _, _ := newTestService()
	ctx := context.Background()

	payslipRepo.payslips["ps-1"] = payroll.Payslip{
		ID: "ps-1", EmployeeID: "emp-1", Month: 6, Year: 2024,
		Status: payroll.PayslipStatusComputed,
	}

	_, err := svc.ComputePayslip(ctx, "ps-1")
	assert.ErrorIs(t, err, payroll.ErrSalaryComponentNotFound)
}

func TestGetWarnings(t *testing.T) {
	svc, _, _, _, _, employeeRepo := newTestService()
	ctx := context.Background()

	mgr := "emp-2"
	acct := "1234567890"
	employeeRepo.employees["emp-1"] = employee.Employee{
		ID: "emp-1", Status: employee.StatusActive,
		FullName: strPtr("No Bank"), ReportingManagerID: &mgr,
	}
	employeeRepo.employees["emp-2"] = employee.Employee{
		ID: "emp-2", Status: employee.StatusActive,
		FullName: strPtr("No Manager"), BankAccountNumber: &acct,
	}

	resp, err := svc.GetWarnings(ctx)
	require.NoError(t, err)
	require.Len(t, resp.NoBankAccount, 1)
	assert.Equal(t, "emp-1", resp.NoBankAccount[0].EmployeeID)
	require.Len(t, resp.NoManager, 1)
	assert.Equal(t, "emp-2", resp.NoManager[0].EmployeeID)
}
