package employee

import "errors"

var (
	ErrEmployeeNotFound       = errors.New("employee not found")
	ErrEmployeeProfileExists  = errors.New("user already has an employee profile")
	ErrUserNotFound           = errors.New("associated user not found")
	ErrDepartmentNotFound     = errors.New("department not found")
	ErrDesignationNotFound    = errors.New("designation not found")
	ErrManagerNotFound        = errors.New("reporting manager not found")
	ErrSelfManagerAssignment  = errors.New("employee cannot be their own reporting manager")
	ErrEmployeeAlreadyRemoved = errors.New("employee already removed")
)
