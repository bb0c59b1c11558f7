package payroll

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

// ========== SALARY COMPONENT DTOs ==========

type RateSpecInput struct {
	IsPercentage bool            `json:"is_percentage"`
	Percentage   decimal.Decimal `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
}

func (i *RateSpecInput) toSpec() RateSpec {
	if i == nil {
		return FixedRate(decimal.Zero)
	}
	if i.IsPercentage {
		return PercentageRate(i.Percentage)
	}
	return FixedRate(i.Amount)
}

func (i *RateSpecInput) validate(field string, errs validator.ValidationErrors) validator.ValidationErrors {
	if i == nil {
		return errs
	}
	if i.IsPercentage {
		if i.Percentage.IsNegative() || i.Percentage.GreaterThan(decimal.NewFromInt(100)) {
			errs = append(errs, validator.ValidationError{Field: field, Message: "percentage must be between 0 and 100"})
		}
	} else if i.Amount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: field, Message: "amount must be non-negative"})
	}
	return errs
}

type CreateSalaryComponentRequest struct {
	EmployeeID  string          `json:"-"`
	BasicSalary decimal.Decimal `json:"basic_salary"`

	HRA               *RateSpecInput `json:"hra,omitempty"`
	StandardAllowance *RateSpecInput `json:"standard_allowance,omitempty"`
	PerformanceBonus  *RateSpecInput `json:"performance_bonus,omitempty"`
	LTA               *RateSpecInput `json:"lta,omitempty"`
	FixedAllowance    *RateSpecInput `json:"fixed_allowance,omitempty"`

	EmployeePF      *RateSpecInput   `json:"employee_pf,omitempty"`
	EmployerPF      *RateSpecInput   `json:"employer_pf,omitempty"`
	ProfessionalTax *decimal.Decimal `json:"professional_tax,omitempty"`

	EffectiveDate *string `json:"effective_date,omitempty"` // YYYY-MM-DD, defaults to today
}

func (r *CreateSalaryComponentRequest) Validate() error {
	var errs validator.ValidationErrors

	if !r.BasicSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{
			Field:   "basic_salary",
			Message: "basic_salary must be greater than zero",
		})
	}

	errs = r.HRA.validate("hra", errs)
	errs = r.StandardAllowance.validate("standard_allowance", errs)
	errs = r.PerformanceBonus.validate("performance_bonus", errs)
	errs = r.LTA.validate("lta", errs)
	errs = r.FixedAllowance.validate("fixed_allowance", errs)
	errs = r.EmployeePF.validate("employee_pf", errs)
	errs = r.EmployerPF.validate("employer_pf", errs)

	if r.ProfessionalTax != nil && r.ProfessionalTax.IsNegative() {
		errs = append(errs, validator.ValidationError{
			Field:   "professional_tax",
			Message: "professional_tax must be non-negative",
		})
	}

	if r.EffectiveDate != nil {
		if _, ok := validator.IsValidDate(*r.EffectiveDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "effective_date",
				Message: "effective_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToEntity maps the request to a SalaryComponent, applying statutory
// defaults (12% PF, 200 professional tax) for omitted groups. Amounts are
// not derived here; Recalculate does that on the write path.
func (r *CreateSalaryComponentRequest) ToEntity() SalaryComponent {
	sc := SalaryComponent{
		EmployeeID:        r.EmployeeID,
		BasicSalary:       r.BasicSalary,
		HRA:               r.HRA.toSpec(),
		StandardAllowance: r.StandardAllowance.toSpec(),
		PerformanceBonus:  r.PerformanceBonus.toSpec(),
		LTA:               r.LTA.toSpec(),
		FixedAllowance:    r.FixedAllowance.toSpec(),
		ProfessionalTax:   DefaultProfessionalTax,
		EffectiveDate:     time.Now().UTC().Truncate(24 * time.Hour),
	}

	if r.EmployeePF != nil {
		sc.EmployeePF = r.EmployeePF.toSpec()
	} else {
		sc.EmployeePF = PercentageRate(DefaultPFPercentage)
	}
	if r.EmployerPF != nil {
		sc.EmployerPF = r.EmployerPF.toSpec()
	} else {
		sc.EmployerPF = PercentageRate(DefaultPFPercentage)
	}
	if r.ProfessionalTax != nil {
		sc.ProfessionalTax = *r.ProfessionalTax
	}
	if r.EffectiveDate != nil {
		if date, ok := validator.IsValidDate(*r.EffectiveDate); ok {
			sc.EffectiveDate = date
		}
	}

	return sc
}

type RateSpecResponse struct {
	IsPercentage bool            `json:"is_percentage"`
	Percentage   decimal.Decimal `json:"percentage"`
	Amount       decimal.Decimal `json:"amount"`
}

func toRateSpecResponse(s RateSpec) RateSpecResponse {
	return RateSpecResponse{
		IsPercentage: s.IsPercentage,
		Percentage:   s.Percentage,
		Amount:       s.Amount,
	}
}

type SalaryComponentResponse struct {
	ID          string          `json:"id"`
	EmployeeID  string          `json:"employee_id"`
	BasicSalary decimal.Decimal `json:"basic_salary"`

	HRA               RateSpecResponse `json:"hra"`
	StandardAllowance RateSpecResponse `json:"standard_allowance"`
	PerformanceBonus  RateSpecResponse `json:"performance_bonus"`
	LTA               RateSpecResponse `json:"lta"`
	FixedAllowance    RateSpecResponse `json:"fixed_allowance"`

	EmployeePF      RateSpecResponse `json:"employee_pf"`
	EmployerPF      RateSpecResponse `json:"employer_pf"`
	ProfessionalTax decimal.Decimal  `json:"professional_tax"`

	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`

	EffectiveDate string `json:"effective_date"`
}

func ToSalaryComponentResponse(sc SalaryComponent) SalaryComponentResponse {
	return SalaryComponentResponse{
		ID:                sc.ID,
		EmployeeID:        sc.EmployeeID,
		BasicSalary:       sc.BasicSalary,
		HRA:               toRateSpecResponse(sc.HRA),
		StandardAllowance: toRateSpecResponse(sc.StandardAllowance),
		PerformanceBonus:  toRateSpecResponse(sc.PerformanceBonus),
		LTA:               toRateSpecResponse(sc.LTA),
		FixedAllowance:    toRateSpecResponse(sc.FixedAllowance),
		EmployeePF:        toRateSpecResponse(sc.EmployeePF),
		EmployerPF:        toRateSpecResponse(sc.EmployerPF),
		ProfessionalTax:   sc.ProfessionalTax,
		GrossSalary:       sc.GrossSalary,
		TotalDeductions:   sc.TotalDeductions,
		NetSalary:         sc.NetSalary,
		EffectiveDate:     sc.EffectiveDate.Format("2006-01-02"),
	}
}

// ========== PAYRUN DTOs ==========

type GeneratePayrunRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *GeneratePayrunRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "month must be between 1 and 12"})
	}
	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "year is out of range"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SkippedEmployee identifies an active employee left out of a payrun
// because they have no salary component yet. Surfaced so operators can
// see who is not onboarded to payroll.
type SkippedEmployee struct {
	EmployeeID string `json:"employee_id"`
	FullName   string `json:"full_name"`
	Reason     string `json:"reason"`
}

type GeneratePayrunResponse struct {
	Month   int               `json:"month"`
	Year    int               `json:"year"`
	Count   int               `json:"count"`
	Skipped []SkippedEmployee `json:"skipped"`
}

type ValidatePayrunRequest struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

func (r *ValidatePayrunRequest) Validate() error {
	g := GeneratePayrunRequest{Month: r.Month, Year: r.Year}
	return g.Validate()
}

type ValidatePayrunResponse struct {
	Month     int   `json:"month"`
	Year      int   `json:"year"`
	Validated int64 `json:"validated"`
}

// ========== PAYSLIP DTOs ==========

type PayslipResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	LoginID      *string `json:"login_id,omitempty"`
	Month        int     `json:"month"`
	Year         int     `json:"year"`

	BasicSalary       decimal.Decimal `json:"basic_salary"`
	HRA               decimal.Decimal `json:"hra"`
	StandardAllowance decimal.Decimal `json:"standard_allowance"`
	PerformanceBonus  decimal.Decimal `json:"performance_bonus"`
	LTA               decimal.Decimal `json:"lta"`
	FixedAllowance    decimal.Decimal `json:"fixed_allowance"`
	EmployeePF        decimal.Decimal `json:"employee_pf"`
	EmployerPF        decimal.Decimal `json:"employer_pf"`
	ProfessionalTax   decimal.Decimal `json:"professional_tax"`

	WorkedDays       int `json:"worked_days"`
	PaidTimeOff      int `json:"paid_time_off"`
	UnpaidLeave      int `json:"unpaid_leave"`
	TotalDaysInMonth int `json:"total_days_in_month"`

	GrossSalary     decimal.Decimal `json:"gross_salary"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	NetSalary       decimal.Decimal `json:"net_salary"`
	EmployerCost    decimal.Decimal `json:"employer_cost"`

	Status      string     `json:"status"`
	ValidatedBy *string    `json:"validated_by,omitempty"`
	ValidatedAt *time.Time `json:"validated_at,omitempty"`
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	return PayslipResponse{
		ID:                p.ID,
		EmployeeID:        p.EmployeeID,
		EmployeeName:      p.EmployeeName,
		LoginID:           p.LoginID,
		Month:             p.Month,
		Year:              p.Year,
		BasicSalary:       p.BasicSalary,
		HRA:               p.HRA,
		StandardAllowance: p.StandardAllowance,
		PerformanceBonus:  p.PerformanceBonus,
		LTA:               p.LTA,
		FixedAllowance:    p.FixedAllowance,
		EmployeePF:        p.EmployeePF,
		EmployerPF:        p.EmployerPF,
		ProfessionalTax:   p.ProfessionalTax,
		WorkedDays:        p.WorkedDays,
		PaidTimeOff:       p.PaidTimeOff,
		UnpaidLeave:       p.UnpaidLeave,
		TotalDaysInMonth:  p.TotalDaysInMonth,
		GrossSalary:       p.GrossSalary,
		TotalDeductions:   p.TotalDeductions,
		NetSalary:         p.NetSalary,
		EmployerCost:      p.EmployerCost,
		Status:            string(p.Status),
		ValidatedBy:       p.ValidatedBy,
		ValidatedAt:       p.ValidatedAt,
	}
}

func ToPayslipResponses(payslips []Payslip) []PayslipResponse {
	result := make([]PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		result = append(result, ToPayslipResponse(p))
	}
	return result
}

// ========== REPORTING DTOs ==========

type EmployeeWarning struct {
	EmployeeID string  `json:"employee_id"`
	FullName   string  `json:"full_name"`
	LoginID    *string `json:"login_id,omitempty"`
}

type WarningsResponse struct {
	NoBankAccount []EmployeeWarning `json:"noBankAccount"`
	NoManager     []EmployeeWarning `json:"noManager"`
}

type PayrunSummaryResponse struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	MonthName    string          `json:"monthName"`
	PayslipCount int64           `json:"payslipCount"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}

type CostSeriesPoint struct {
	Month        int             `json:"month"`
	Year         int             `json:"year"`
	MonthName    string          `json:"monthName"`
	PayslipCount int64           `json:"payslipCount"`
	TotalCost    decimal.Decimal `json:"totalCost"`
}
