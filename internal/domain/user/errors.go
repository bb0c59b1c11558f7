package user

import "errors"

var (
	ErrUserNotFound               = errors.New("user not found")
	ErrUserEmailExists            = errors.New("email already registered")
	ErrLoginIDExists              = errors.New("login ID already taken")
	ErrInvalidRole                = errors.New("invalid role")
	ErrUserInactive               = errors.New("user account is deactivated")
	ErrAdminAccessRequired        = errors.New("admin access required")
	ErrHRAccessRequired           = errors.New("HR officer access required")
	ErrPayrollAccessRequired      = errors.New("payroll officer access required")
	ErrEmployeeAccessRequired     = errors.New("employee access required")
	ErrInsufficientPermissions    = errors.New("insufficient permissions")
	ErrCannotDeleteOwnAccount     = errors.New("cannot delete own account")
	ErrEmployeeProfileNotLinked   = errors.New("no employee profile linked to this user")
	ErrPasswordTooShort           = errors.New("password must be at least 8 characters")
	ErrGoogleAccountNotRegistered = errors.New("google account is not registered")
)
