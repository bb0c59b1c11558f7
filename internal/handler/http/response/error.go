package response

import (
	"errors"
	"net/http"

	"github.com/workzen/hrms-backend-go/internal/domain/attendance"
	"github.com/workzen/hrms-backend-go/internal/domain/auth"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/master/department"
	"github.com/workzen/hrms-backend-go/internal/domain/master/designation"
	"github.com/workzen/hrms-backend-go/internal/domain/payroll"
	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserDeactivated):
		Forbidden(w, "Account is deactivated")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrLoginIDExists):
		Conflict(w, "Login ID already taken")
	case errors.Is(err, user.ErrGoogleAccountNotRegistered):
		Unauthorized(w, "Google account is not registered")
	case errors.Is(err, user.ErrCannotDeleteOwnAccount):
		BadRequest(w, "Cannot delete own account", nil)
	case errors.Is(err, user.ErrAdminAccessRequired),
		errors.Is(err, user.ErrHRAccessRequired),
		errors.Is(err, user.ErrPayrollAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeProfileExists):
		Conflict(w, "User already has an employee profile")
	case errors.Is(err, employee.ErrUserNotFound):
		NotFound(w, "Associated user not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrDesignationNotFound):
		NotFound(w, "Designation not found")
	case errors.Is(err, employee.ErrManagerNotFound):
		NotFound(w, "Reporting manager not found")
	case errors.Is(err, employee.ErrSelfManagerAssignment):
		BadRequest(w, "Employee cannot be their own reporting manager", nil)

	// Master data errors
	case errors.Is(err, department.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, department.ErrDepartmentNameExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, department.ErrDepartmentInUse):
		Conflict(w, "Department has assigned employees")
	case errors.Is(err, designation.ErrDesignationNotFound):
		NotFound(w, "Designation not found")
	case errors.Is(err, designation.ErrDesignationTitleExists):
		Conflict(w, "Designation title already exists")
	case errors.Is(err, designation.ErrDesignationInUse):
		Conflict(w, "Designation has assigned employees")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAttendanceAlreadyMarked):
		Conflict(w, "Attendance already marked for this date")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "Not checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrFutureDate):
		BadRequest(w, "Cannot mark attendance for a future date", nil)
	case errors.Is(err, attendance.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeNameExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAllocationNotFound):
		NotFound(w, "Leave allocation not found")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "Overlapping leave request exists")
	case errors.Is(err, leave.ErrAlreadyReviewed):
		Conflict(w, "Leave request already reviewed")
	case errors.Is(err, leave.ErrCannotReviewOwnRequest):
		Forbidden(w, "Cannot review own leave request")
	case errors.Is(err, leave.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrInvalidBasicSalary):
		BadRequest(w, "Basic salary must be greater than zero", nil)
	case errors.Is(err, payroll.ErrSalaryComponentNotFound):
		NotFound(w, "Salary component not found")
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrPayslipAlreadyExists):
		Conflict(w, "Payslip already exists for this employee and period")
	case errors.Is(err, payroll.ErrPayrunAlreadyGenerated):
		BadRequest(w, "Payrun already generated for this period", nil)
	case errors.Is(err, payroll.ErrNoPayslipsForPeriod):
		NotFound(w, "No payslips found for this period")
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrEmployeeAlreadyOnPayroll):
		Conflict(w, "Employee already has a salary component effective on this date")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
