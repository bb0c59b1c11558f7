package user

import (
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
)

type UserResponse struct {
	ID          string  `json:"id"`
	Email       string  `json:"email"`
	LoginID     *string `json:"login_id"`
	FullName    string  `json:"full_name"`
	Phone       *string `json:"phone,omitempty"`
	Role        string  `json:"role"`
	CompanyName *string `json:"company_name,omitempty"`
	IsActive    bool    `json:"is_active"`
	EmployeeID  *string `json:"employee_id,omitempty"`
}

func ToResponse(u User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		Email:       u.Email,
		LoginID:     u.LoginID,
		FullName:    u.FullName,
		Phone:       u.Phone,
		Role:        string(u.Role),
		CompanyName: u.CompanyName,
		IsActive:    u.IsActive,
		EmployeeID:  u.EmployeeID,
	}
}

type UpdateUserRequest struct {
	ID       string  `json:"-"`
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

func (r *UpdateUserRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.FullName != nil && validator.IsEmpty(*r.FullName) {
		errs = append(errs, validator.ValidationError{Field: "full_name", Message: "full_name cannot be empty"})
	}
	if r.Phone != nil && !validator.IsValidPhoneNumber(*r.Phone) {
		errs = append(errs, validator.ValidationError{Field: "phone", Message: "invalid phone number"})
	}
	if r.Role != nil && !IsValidRole(*r.Role) {
		errs = append(errs, validator.ValidationError{Field: "role", Message: "invalid role"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
