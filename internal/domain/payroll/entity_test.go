package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateSpec_Resolve(t *testing.T) {
	base := decimal.NewFromInt(50000)

	fixed := FixedRate(decimal.NewFromInt(3000))
	assert.True(t, fixed.Resolve(base).Equal(decimal.NewFromInt(3000)))

	pct := PercentageRate(decimal.NewFromInt(40))
	assert.True(t, pct.Resolve(base).Equal(decimal.NewFromInt(20000)))

	zero := PercentageRate(decimal.Zero)
	assert.True(t, zero.Resolve(base).IsZero())
}

func TestSalaryComponent_Recalculate_Scenario(t *testing.T) {
	// basic 60000, HRA 40% (24000), employee PF 12% (7200), prof tax
	// 200: gross 84000, deductions 7400, net 76600.
	sc := SalaryComponent{
		BasicSalary:       decimal.NewFromInt(60000),
		HRA:               PercentageRate(decimal.NewFromInt(40)),
		StandardAllowance: FixedRate(decimal.Zero),
		PerformanceBonus:  FixedRate(decimal.Zero),
		LTA:               FixedRate(decimal.Zero),
		FixedAllowance:    FixedRate(decimal.Zero),
		EmployeePF:        PercentageRate(DefaultPFPercentage),
		EmployerPF:        PercentageRate(DefaultPFPercentage),
		ProfessionalTax:   DefaultProfessionalTax,
	}

	require.NoError(t, sc.Recalculate())

	assert.True(t, sc.HRA.Amount.Equal(decimal.NewFromInt(24000)), "HRA = %s", sc.HRA.Amount)
	assert.True(t, sc.EmployeePF.Amount.Equal(decimal.NewFromInt(7200)), "employee PF = %s", sc.EmployeePF.Amount)
	assert.True(t, sc.EmployerPF.Amount.Equal(decimal.NewFromInt(7200)))
	assert.True(t, sc.GrossSalary.Equal(decimal.NewFromInt(84000)), "gross = %s", sc.GrossSalary)
	assert.True(t, sc.TotalDeductions.Equal(decimal.NewFromInt(7400)), "deductions = %s", sc.TotalDeductions)
	assert.True(t, sc.NetSalary.Equal(decimal.NewFromInt(76600)), "net = %s", sc.NetSalary)
}

func TestSalaryComponent_Recalculate_Idempotent(t *testing.T) {
	sc := SalaryComponent{
		BasicSalary:       decimal.NewFromInt(45000),
		HRA:               PercentageRate(decimal.NewFromFloat(37.5)),
		StandardAllowance: FixedRate(decimal.NewFromInt(1800)),
		PerformanceBonus:  PercentageRate(decimal.NewFromInt(10)),
		LTA:               FixedRate(decimal.Zero),
		FixedAllowance:    FixedRate(decimal.NewFromInt(2500)),
		EmployeePF:        PercentageRate(DefaultPFPercentage),
		EmployerPF:        PercentageRate(DefaultPFPercentage),
		ProfessionalTax:   DefaultProfessionalTax,
	}

	require.NoError(t, sc.Recalculate())
	first := sc

	require.NoError(t, sc.Recalculate())

	assert.True(t, sc.HRA.Amount.Equal(first.HRA.Amount))
	assert.True(t, sc.PerformanceBonus.Amount.Equal(first.PerformanceBonus.Amount))
	assert.True(t, sc.GrossSalary.Equal(first.GrossSalary))
	assert.True(t, sc.TotalDeductions.Equal(first.TotalDeductions))
	assert.True(t, sc.NetSalary.Equal(first.NetSalary))
}

func TestSalaryComponent_Recalculate_OverwritesSuppliedAmounts(t *testing.T) {
	// Client-supplied amounts for percentage groups must never survive.
	sc := SalaryComponent{
		BasicSalary: decimal.NewFromInt(30000),
		HRA: RateSpec{
			IsPercentage: true,
			Percentage:   decimal.NewFromInt(20),
			Amount:       decimal.NewFromInt(999999),
		},
		EmployeePF: PercentageRate(DefaultPFPercentage),
		EmployerPF: PercentageRate(DefaultPFPercentage),
	}

	require.NoError(t, sc.Recalculate())
	assert.True(t, sc.HRA.Amount.Equal(decimal.NewFromInt(6000)))
}

func TestSalaryComponent_Recalculate_RejectsNonPositiveBasic(t *testing.T) {
	for _, basic := range []decimal.Decimal{decimal.Zero, decimal.NewFromInt(-1000)} {
		sc := SalaryComponent{BasicSalary: basic}
		err := sc.Recalculate()
		assert.ErrorIs(t, err, ErrInvalidBasicSalary)
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		month, year, want int
	}{
		{1, 2025, 31},
		{2, 2025, 28},
		{2, 2024, 29}, // leap year
		{4, 2025, 30},
		{12, 2025, 31},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DaysInMonth(c.month, c.year), "month=%d year=%d", c.month, c.year)
	}
}

func TestPeriodBounds(t *testing.T) {
	start, end := PeriodBounds(2, 2024)
	assert.Equal(t, "2024-02-01", start.Format("2006-01-02"))
	assert.Equal(t, "2024-02-29", end.Format("2006-01-02"))
}
