package leave

import (
	"context"
	"time"
)

type LeaveTypeRepository interface {
	Create(ctx context.Context, lt *LeaveType) error
	GetByID(ctx context.Context, id string) (*LeaveType, error)
	GetByName(ctx context.Context, name string) (*LeaveType, error)
	List(ctx context.Context) ([]*LeaveType, error)
}

type LeaveAllocationRepository interface {
	Create(ctx context.Context, alloc *LeaveAllocation) error

	// Upsert inserts the allocation or, when one exists for the same
	// employee, type and year, updates its total days. Used days are
	// never overwritten.
	Upsert(ctx context.Context, alloc *LeaveAllocation) error
	GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (*LeaveAllocation, error)
	ListByEmployee(ctx context.Context, employeeID string, year int) ([]*LeaveAllocation, error)
	AddUsedDays(ctx context.Context, id string, days int) error
}

type LeaveRequestRepository interface {
	Create(ctx context.Context, lr *LeaveRequest) error
	GetByID(ctx context.Context, id string) (*LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*LeaveRequest, error)
	List(ctx context.Context) ([]*LeaveRequest, error)
	Update(ctx context.Context, lr *LeaveRequest) error
	HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	// ApprovedDaysInPeriod sums approved leave days for the employee whose
	// dates fall inside [start, end], clipped to the period, split by the
	// leave type's paid flag.
	ApprovedDaysInPeriod(ctx context.Context, employeeID string, start, end time.Time) (paid int, unpaid int, err error)
}
