package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Management
	PermissionLeaveViewOwn  Permission = "leave.view_own"
	PermissionLeaveApply    Permission = "leave.apply"
	PermissionLeaveViewAll  Permission = "leave.view_all"
	PermissionLeaveApprove  Permission = "leave.approve"
	PermissionLeaveAllocate Permission = "leave.allocate"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceMark    Permission = "attendance.mark"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceEdit    Permission = "attendance.edit"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Payroll
	PermissionPayrollRun  Permission = "payroll.run"
	PermissionPayrollView Permission = "payroll.view"

	// Analytics
	PermissionAnalyticsView Permission = "analytics.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: {
		// Admin has all permissions
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveApply,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionLeaveAllocate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceMark,
		PermissionAttendanceViewAll,
		PermissionAttendanceEdit,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionPayrollRun,
		PermissionPayrollView,
		PermissionAnalyticsView,
		PermissionUserManage,
	},
	RoleHROfficer: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveApply,
		PermissionLeaveViewAll,
		PermissionLeaveAllocate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceMark,
		PermissionAttendanceViewAll,
		PermissionAttendanceEdit,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
	},
	RolePayrollOfficer: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveApply,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceMark,
		PermissionEmployeeViewAll,
		PermissionPayrollRun,
		PermissionPayrollView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveApply,
		PermissionAttendanceViewOwn,
		PermissionAttendanceMark,
	},
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	perms, ok := RolePermissions[role]
	if !ok {
		return false
	}
	for _, p := range perms {
		if p == permission {
			return true
		}
	}
	return false
}

// ValidRoles lists every assignable role.
var ValidRoles = []Role{RoleAdmin, RoleHROfficer, RolePayrollOfficer, RoleEmployee}

// IsValidRole checks a role string against the assignable set.
func IsValidRole(role string) bool {
	for _, r := range ValidRoles {
		if Role(role) == r {
			return true
		}
	}
	return false
}
