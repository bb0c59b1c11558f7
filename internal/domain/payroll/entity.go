package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)

	// Statutory defaults applied when a salary component omits them.
	DefaultPFPercentage    = decimal.NewFromInt(12)
	DefaultProfessionalTax = decimal.NewFromInt(200)
)

// RateSpec is a salary component rate: either a fixed amount or a
// percentage of basic salary. Amount is always derived via Resolve before
// persistence; a client-supplied amount for a percentage spec is never
// trusted.
type RateSpec struct {
	IsPercentage bool
	Percentage   decimal.Decimal
	Amount       decimal.Decimal
}

// FixedRate builds a fixed-amount spec.
func FixedRate(amount decimal.Decimal) RateSpec {
	return RateSpec{IsPercentage: false, Amount: amount}
}

// PercentageRate builds a percentage-of-basic spec.
func PercentageRate(percentage decimal.Decimal) RateSpec {
	return RateSpec{IsPercentage: true, Percentage: percentage}
}

// Resolve returns the monetary amount of the spec against a base salary.
func (s RateSpec) Resolve(base decimal.Decimal) decimal.Decimal {
	if s.IsPercentage {
		return base.Mul(s.Percentage).Div(hundred)
	}
	return s.Amount
}

// SalaryComponent is the live, effective-dated definition of an employee's
// pay structure. Records are immutable history; the most recent by
// effective date is authoritative.
type SalaryComponent struct {
	ID         string
	EmployeeID string

	BasicSalary decimal.Decimal

	// Allowances
	HRA               RateSpec
	StandardAllowance RateSpec
	PerformanceBonus  RateSpec
	LTA               RateSpec
	FixedAllowance    RateSpec

	// Deductions / employer contributions
	EmployeePF      RateSpec
	EmployerPF      RateSpec
	ProfessionalTax decimal.Decimal // fixed amount only

	// Derived, recomputed on every write
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal

	EffectiveDate time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Recalculate derives every amount from the basic salary and rate specs.
// It runs on every write path, is idempotent, and overwrites any
// externally supplied amounts for percentage-based groups. Employer PF is
// a cost, not a deduction from pay, so it is excluded from
// TotalDeductions.
func (sc *SalaryComponent) Recalculate() error {
	if !sc.BasicSalary.IsPositive() {
		return ErrInvalidBasicSalary
	}

	for _, spec := range []*RateSpec{
		&sc.HRA, &sc.StandardAllowance, &sc.PerformanceBonus,
		&sc.LTA, &sc.FixedAllowance,
		&sc.EmployeePF, &sc.EmployerPF,
	} {
		spec.Amount = spec.Resolve(sc.BasicSalary)
	}

	sc.GrossSalary = sc.BasicSalary.
		Add(sc.HRA.Amount).
		Add(sc.StandardAllowance.Amount).
		Add(sc.PerformanceBonus.Amount).
		Add(sc.LTA.Amount).
		Add(sc.FixedAllowance.Amount)
	sc.TotalDeductions = sc.EmployeePF.Amount.Add(sc.ProfessionalTax)
	sc.NetSalary = sc.GrossSalary.Sub(sc.TotalDeductions)

	return nil
}

// PayslipStatus enum. Draft exists on the schema but nothing creates it;
// the generator always emits Computed.
type PayslipStatus string

const (
	PayslipStatusDraft     PayslipStatus = "Draft"
	PayslipStatusComputed  PayslipStatus = "Computed"
	PayslipStatusValidated PayslipStatus = "Validated"
	PayslipStatusDone      PayslipStatus = "Done"
)

// Payslip is a frozen per-employee, per-period snapshot of computed pay.
// Amounts are integer-rounded copies, independent of later salary
// component changes. Keyed uniquely by (employee, month, year).
type Payslip struct {
	ID         string
	EmployeeID string
	Month      int
	Year       int

	BasicSalary       decimal.Decimal
	HRA               decimal.Decimal
	StandardAllowance decimal.Decimal
	PerformanceBonus  decimal.Decimal
	LTA               decimal.Decimal
	FixedAllowance    decimal.Decimal
	EmployeePF        decimal.Decimal
	EmployerPF        decimal.Decimal
	ProfessionalTax   decimal.Decimal

	WorkedDays       int
	PaidTimeOff      int
	UnpaidLeave      int
	TotalDaysInMonth int

	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
	EmployerCost    decimal.Decimal

	Status      PayslipStatus
	ValidatedBy *string
	ValidatedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	EmployeeName *string
	LoginID      *string
}

// PayrunSummary is one row of the payrun history: payslips grouped by
// period.
type PayrunSummary struct {
	Month        int
	Year         int
	PayslipCount int64
	TotalCost    decimal.Decimal
}

// PeriodTotals is one point of the employer cost/headcount time series.
type PeriodTotals struct {
	Month        int
	Year         int
	PayslipCount int64
	TotalCost    decimal.Decimal
}

// DaysInMonth returns the calendar day count of a month, leap years
// included.
func DaysInMonth(month, year int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// PeriodBounds returns the first and last calendar day of a period.
func PeriodBounds(month, year int) (start, end time.Time) {
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(month), DaysInMonth(month, year), 0, 0, 0, 0, time.UTC)
	return start, end
}
