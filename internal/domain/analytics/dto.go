package analytics

import "github.com/shopspring/decimal"

type EmployeeStatsResponse struct {
	TotalEmployees    int64              `json:"total_employees"`
	ActiveEmployees   int64              `json:"active_employees"`
	InactiveEmployees int64              `json:"inactive_employees"`
	ByDepartment      []*DepartmentCount `json:"by_department"`
	ByDesignation     []*GroupCount      `json:"by_designation"`
}

type DepartmentCount struct {
	DepartmentID   string `json:"department_id"`
	DepartmentName string `json:"department_name"`
	Count          int64  `json:"count"`
}

type GroupCount struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type AttendanceSummaryResponse struct {
	Month          int     `json:"month"`
	Year           int     `json:"year"`
	PresentDays    int64   `json:"present_days"`
	AbsentDays     int64   `json:"absent_days"`
	HalfDays       int64   `json:"half_days"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type LeaveSummaryResponse struct {
	Year     int           `json:"year"`
	Pending  int64         `json:"pending"`
	Approved int64         `json:"approved"`
	Rejected int64         `json:"rejected"`
	ByType   []*GroupCount `json:"by_type"`
}

type PayrollSummaryResponse struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	PayslipCount    int64           `json:"payslip_count"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}
