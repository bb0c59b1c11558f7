package department

import "errors"

var (
	ErrDepartmentNotFound   = errors.New("department not found")
	ErrDepartmentNameExists = errors.New("department name already exists")
	ErrDepartmentsNotFound  = errors.New("departments not found")
	ErrDepartmentInUse      = errors.New("department has assigned employees")
)
