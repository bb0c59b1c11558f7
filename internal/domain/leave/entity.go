package leave

import (
	"time"
)

const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

type LeaveType struct {
	ID          string
	Name        string
	IsPaid      bool
	DefaultDays int
	CreatedAt   time.Time
}

type LeaveAllocation struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	Year        int
	TotalDays   int
	UsedDays    int
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	LeaveTypeName *string
	IsPaid        *bool
}

// RemainingDays returns the unconsumed balance for the allocation year.
func (a *LeaveAllocation) RemainingDays() int {
	remaining := a.TotalDays - a.UsedDays
	if remaining < 0 {
		return 0
	}
	return remaining
}

type LeaveRequest struct {
	ID          string
	EmployeeID  string
	LeaveTypeID string
	StartDate   time.Time
	EndDate     time.Time
	Days        int
	Reason      string
	Status      string
	ReviewedBy  *string
	ReviewedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO
	EmployeeName  *string
	LoginID       *string
	LeaveTypeName *string
	IsPaid        *bool
	ReviewerName  *string
}

// DaysBetween counts calendar days in [start, end] inclusive.
func DaysBetween(start, end time.Time) int {
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}
