package user

import "time"

type Role string

const (
	RoleAdmin          Role = "Admin"           // Full system access
	RoleHROfficer      Role = "HR Officer"      // Employee and leave administration
	RolePayrollOfficer Role = "Payroll Officer" // Payrun and payslip operations
	RoleEmployee       Role = "Employee"        // Self-service only
)

type User struct {
	ID           string
	Email        string
	LoginID      *string // auto-generated, e.g. OIJODO20220001
	PasswordHash *string
	FullName     string
	Phone        *string
	Role         Role
	CompanyName  *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// DTO / Join
	EmployeeID *string
}

// IsAdmin checks if user has full system access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsHROfficer checks if user can administer employees and leave
func (u *User) IsHROfficer() bool {
	return u.Role == RoleHROfficer || u.Role == RoleAdmin
}

// IsPayrollOfficer checks if user can run payroll operations
func (u *User) IsPayrollOfficer() bool {
	return u.Role == RolePayrollOfficer || u.Role == RoleAdmin
}
