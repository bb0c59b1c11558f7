package employee

import (
	"time"
)

type Employee struct {
	ID                 string
	UserID             string
	DepartmentID       string
	DesignationID      string
	DateOfJoining      time.Time
	Status             Status
	ReportingManagerID *string

	// Payout identifiers
	BankName          *string
	BankAccountNumber *string
	PAN               *string
	UAN               *string

	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	FullName        *string
	Email           *string
	LoginID         *string
	DepartmentName  *string
	DesignationName *string
	ManagerName     *string
}

type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
	StatusResigned Status = "Resigned"
)

func IsValidStatus(s string) bool {
	switch Status(s) {
	case StatusActive, StatusInactive, StatusResigned:
		return true
	}
	return false
}
