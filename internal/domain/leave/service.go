package leave

import "context"

type LeaveService interface {
	CreateLeaveType(ctx context.Context, req *CreateLeaveTypeRequest) (*LeaveTypeResponse, error)
	ListLeaveTypes(ctx context.Context) ([]*LeaveTypeResponse, error)
	Apply(ctx context.Context, req *ApplyLeaveRequest) (*LeaveRequestResponse, error)
	Review(ctx context.Context, req *ReviewLeaveRequest) (*LeaveRequestResponse, error)
	ListByEmployee(ctx context.Context, employeeID string) ([]*LeaveRequestResponse, error)
	ListPending(ctx context.Context) ([]*LeaveRequestResponse, error)
	ListAll(ctx context.Context) ([]*LeaveRequestResponse, error)
	GetBalance(ctx context.Context, employeeID string, year int) ([]*LeaveBalanceResponse, error)
	SetAllocation(ctx context.Context, req *SetAllocationRequest) (*LeaveBalanceResponse, error)
	AllocateForEmployee(ctx context.Context, employeeID string, year int) error
}
