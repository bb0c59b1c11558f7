package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/analytics"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type analyticsRepositoryImpl struct {
	db *database.DB
}

func NewAnalyticsRepository(db *database.DB) analytics.AnalyticsRepository {
	return &analyticsRepositoryImpl{db: db}
}

// EmployeeStats implements analytics.AnalyticsRepository.
func (r *analyticsRepositoryImpl) EmployeeStats(ctx context.Context) (*analytics.EmployeeStatsResponse, error) {
	q := GetQuerier(ctx, r.db)

	stats := &analytics.EmployeeStatsResponse{}

	countQuery := `
		SELECT COUNT(*),
			   COUNT(*) FILTER (WHERE status = 'Active'),
			   COUNT(*) FILTER (WHERE status <> 'Active')
		FROM employees
	`
	err := q.QueryRow(ctx, countQuery).Scan(
		&stats.TotalEmployees,
		&stats.ActiveEmployees,
		&stats.InactiveEmployees,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to count employees: %w", err)
	}

	deptQuery := `
		SELECT d.id, d.name, COUNT(e.id)
		FROM departments d
		LEFT JOIN employees e ON e.department_id = d.id AND e.status = 'Active'
		GROUP BY d.id, d.name
		ORDER BY d.name
	`
	rows, err := q.Query(ctx, deptQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to group employees by department: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var dc analytics.DepartmentCount
		if err := rows.Scan(&dc.DepartmentID, &dc.DepartmentName, &dc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan department count: %w", err)
		}
		stats.ByDepartment = append(stats.ByDepartment, &dc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	desigQuery := `
		SELECT ds.title, COUNT(e.id)
		FROM designations ds
		LEFT JOIN employees e ON e.designation_id = ds.id AND e.status = 'Active'
		GROUP BY ds.title
		ORDER BY ds.title
	`
	desigRows, err := q.Query(ctx, desigQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to group employees by designation: %w", err)
	}
	defer desigRows.Close()

	for desigRows.Next() {
		var gc analytics.GroupCount
		if err := desigRows.Scan(&gc.Label, &gc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan designation count: %w", err)
		}
		stats.ByDesignation = append(stats.ByDesignation, &gc)
	}
	return stats, desigRows.Err()
}

// AttendanceSummary implements analytics.AnalyticsRepository.
func (r *analyticsRepositoryImpl) AttendanceSummary(ctx context.Context, start, end time.Time) (*analytics.AttendanceSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*) FILTER (WHERE status = 'Present'),
			   COUNT(*) FILTER (WHERE status = 'Absent'),
			   COUNT(*) FILTER (WHERE status = 'Half Day')
		FROM attendance
		WHERE date BETWEEN $1 AND $2
	`

	summary := &analytics.AttendanceSummaryResponse{
		Month: int(start.Month()),
		Year:  start.Year(),
	}
	err := q.QueryRow(ctx, query, start, end).Scan(
		&summary.PresentDays,
		&summary.AbsentDays,
		&summary.HalfDays,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize attendance: %w", err)
	}

	total := summary.PresentDays + summary.AbsentDays + summary.HalfDays
	if total > 0 {
		summary.AttendanceRate = (float64(summary.PresentDays) + 0.5*float64(summary.HalfDays)) / float64(total)
	}
	return summary, nil
}

// LeaveSummary implements analytics.AnalyticsRepository.
func (r *analyticsRepositoryImpl) LeaveSummary(ctx context.Context, year int) (*analytics.LeaveSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	statusQuery := `
		SELECT COUNT(*) FILTER (WHERE status = 'Pending'),
			   COUNT(*) FILTER (WHERE status = 'Approved'),
			   COUNT(*) FILTER (WHERE status = 'Rejected')
		FROM leave_requests
		WHERE EXTRACT(YEAR FROM start_date) = $1
	`

	summary := &analytics.LeaveSummaryResponse{Year: year}
	err := q.QueryRow(ctx, statusQuery, year).Scan(
		&summary.Pending,
		&summary.Approved,
		&summary.Rejected,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize leave requests: %w", err)
	}

	typeQuery := `
		SELECT lt.name, COUNT(lr.id)
		FROM leave_types lt
		LEFT JOIN leave_requests lr ON lr.leave_type_id = lt.id
			AND EXTRACT(YEAR FROM lr.start_date) = $1
		GROUP BY lt.name
		ORDER BY lt.name
	`
	rows, err := q.Query(ctx, typeQuery, year)
	if err != nil {
		return nil, fmt.Errorf("failed to group leave requests by type: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var gc analytics.GroupCount
		if err := rows.Scan(&gc.Label, &gc.Count); err != nil {
			return nil, fmt.Errorf("failed to scan leave type count: %w", err)
		}
		summary.ByType = append(summary.ByType, &gc)
	}
	return summary, rows.Err()
}

// PayrollSummary implements analytics.AnalyticsRepository.
func (r *analyticsRepositoryImpl) PayrollSummary(ctx context.Context, month, year int) (*analytics.PayrollSummaryResponse, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(gross_salary), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(net_salary), 0)
		FROM payslips
		WHERE month = $1 AND year = $2
	`

	summary := &analytics.PayrollSummaryResponse{Month: month, Year: year}
	err := q.QueryRow(ctx, query, month, year).Scan(
		&summary.PayslipCount,
		&summary.TotalGross,
		&summary.TotalDeductions,
		&summary.TotalNet,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize payroll: %w", err)
	}
	return summary, nil
}
