package payroll

import "errors"

var (
	ErrInvalidBasicSalary       = errors.New("basic salary must be greater than zero")
	ErrInvalidPeriod            = errors.New("invalid payroll period")
	ErrSalaryComponentNotFound  = errors.New("salary component not found")
	ErrPayslipNotFound          = errors.New("payslip not found")
	ErrPayslipAlreadyExists     = errors.New("payslip already exists for this employee and period")
	ErrPayrunAlreadyGenerated   = errors.New("payrun already generated for this period")
	ErrNoPayslipsForPeriod      = errors.New("no payslips found for this period")
	ErrEmployeeNotFound         = errors.New("employee not found")
	ErrEmployeeAlreadyOnPayroll = errors.New("employee already has a salary component effective on this date")
)
