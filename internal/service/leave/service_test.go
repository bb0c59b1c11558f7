package leave

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
)

type fakeLeaveTypeRepo struct {
	types map[string]*leave.LeaveType
}

func (f *fakeLeaveTypeRepo) Create(ctx context.Context, lt *leave.LeaveType) error {
	lt.ID = fmt.Sprintf("lt-%d", len(f.types)+1)
	f.types[lt.ID] = lt
	return nil
}

func (f *fakeLeaveTypeRepo) GetByID(ctx context.Context, id string) (*leave.LeaveType, error) {
	lt, ok := f.types[id]
	if !ok {
		return nil, leave.ErrLeaveTypeNotFound
	}
	return lt, nil
}

func (f *fakeLeaveTypeRepo) GetByName(ctx context.Context, name string) (*leave.LeaveType, error) {
	for _, lt := range f.types {
		if lt.Name == name {
			return lt, nil
		}
	}
	return nil, leave.ErrLeaveTypeNotFound
}

func (f *fakeLeaveTypeRepo) List(ctx context.Context) ([]*leave.LeaveType, error) {
	out := make([]*leave.LeaveType, 0, len(f.types))
	for _, lt := range f.types {
		out = append(out, lt)
	}
	return out, nil
}

type fakeAllocationRepo struct {
	allocations map[string]*leave.LeaveAllocation
}

func (f *fakeAllocationRepo) Create(ctx context.Context, alloc *leave.LeaveAllocation) error {
	key := fmt.Sprintf("%s/%s/%d", alloc.EmployeeID, alloc.LeaveTypeID, alloc.Year)
	if _, exists := f.allocations[key]; exists {
		return nil
	}
	alloc.ID = key
	f.allocations[key] = alloc
	return nil
}

func (f *fakeAllocationRepo) Upsert(ctx context.Context, alloc *leave.LeaveAllocation) error {
	key := fmt.Sprintf("%s/%s/%d", alloc.EmployeeID, alloc.LeaveTypeID, alloc.Year)
	if existing, ok := f.allocations[key]; ok {
		existing.TotalDays = alloc.TotalDays
		alloc.ID = existing.ID
		alloc.UsedDays = existing.UsedDays
		return nil
	}
	alloc.ID = key
	copied := *alloc
	f.allocations[key] = &copied
	return nil
}

func (f *fakeAllocationRepo) GetByEmployeeTypeYear(ctx context.Context, employeeID, leaveTypeID string, year int) (*leave.LeaveAllocation, error) {
	alloc, ok := f.allocations[fmt.Sprintf("%s/%s/%d", employeeID, leaveTypeID, year)]
	if !ok {
		return nil, leave.ErrAllocationNotFound
	}
	return alloc, nil
}

func (f *fakeAllocationRepo) ListByEmployee(ctx context.Context, employeeID string, year int) ([]*leave.LeaveAllocation, error) {
	var out []*leave.LeaveAllocation
	for _, alloc := range f.allocations {
		if alloc.EmployeeID == employeeID && alloc.Year == year {
			out = append(out, alloc)
		}
	}
	return out, nil
}

func (f *fakeAllocationRepo) AddUsedDays(ctx context.Context, id string, days int) error {
	for _, alloc := range f.allocations {
		if alloc.ID == id {
			if alloc.UsedDays+days > alloc.TotalDays {
				return leave.ErrInsufficientBalance
			}
			alloc.UsedDays += days
			return nil
		}
	}
	return leave.ErrAllocationNotFound
}

type fakeRequestRepo struct {
	requests map[string]*leave.LeaveRequest
}

func (f *fakeRequestRepo) Create(ctx context.Context, lr *leave.LeaveRequest) error {
	lr.ID = fmt.Sprintf("lr-%d", len(f.requests)+1)
	copied := *lr
	f.requests[lr.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) GetByID(ctx context.Context, id string) (*leave.LeaveRequest, error) {
	lr, ok := f.requests[id]
	if !ok {
		return nil, leave.ErrLeaveRequestNotFound
	}
	copied := *lr
	return &copied, nil
}

func (f *fakeRequestRepo) ListByEmployee(ctx context.Context, employeeID string) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, lr := range f.requests {
		if lr.EmployeeID == employeeID {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) ListByStatus(ctx context.Context, status string) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, lr := range f.requests {
		if lr.Status == status {
			out = append(out, lr)
		}
	}
	return out, nil
}

func (f *fakeRequestRepo) List(ctx context.Context) ([]*leave.LeaveRequest, error) {
	var out []*leave.LeaveRequest
	for _, lr := range f.requests {
		out = append(out, lr)
	}
	return out, nil
}

func (f *fakeRequestRepo) Update(ctx context.Context, lr *leave.LeaveRequest) error {
	if _, ok := f.requests[lr.ID]; !ok {
		return leave.ErrLeaveRequestNotFound
	}
	copied := *lr
	f.requests[lr.ID] = &copied
	return nil
}

func (f *fakeRequestRepo) HasOverlap(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, lr := range f.requests {
		if lr.EmployeeID != employeeID || lr.Status == leave.StatusRejected {
			continue
		}
		if !start.After(lr.EndDate) && !end.Before(lr.StartDate) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRequestRepo) ApprovedDaysInPeriod(ctx context.Context, employeeID string, start, end time.Time) (int, int, error) {
	return 0, 0, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
	byUser    map[string]string
}

func (f *fakeEmployeeRepo) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	id, ok := f.byUser[userID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return f.GetByID(ctx, id)
}

func (f *fakeEmployeeRepo) List(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListActive(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	return employee.Employee{}, nil
}

func (f *fakeEmployeeRepo) Delete(ctx context.Context, id string) error { return nil }

func (f *fakeEmployeeRepo) ListActiveMissingBankAccount(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (f *fakeEmployeeRepo) ListActiveMissingManager(ctx context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func newTestService() (*LeaveServiceImpl, *fakeLeaveTypeRepo, *fakeAllocationRepo, *fakeRequestRepo, *fakeEmployeeRepo) {
	typeRepo := &fakeLeaveTypeRepo{types: map[string]*leave.LeaveType{}}
	allocRepo := &fakeAllocationRepo{allocations: map[string]*leave.LeaveAllocation{}}
	requestRepo := &fakeRequestRepo{requests: map[string]*leave.LeaveRequest{}}
	employeeRepo := &fakeEmployeeRepo{employees: map[string]employee.Employee{}, byUser: map[string]string{}}

	svc := &LeaveServiceImpl{
		leaveTypeRepo:  typeRepo,
		allocationRepo: allocRepo,
		requestRepo:    requestRepo,
		employeeRepo:   employeeRepo,
	}
	return svc, typeRepo, allocRepo, requestRepo, employeeRepo
}

func seedEmployeeWithBalance(typeRepo *fakeLeaveTypeRepo, allocRepo *fakeAllocationRepo, employeeRepo *fakeEmployeeRepo, total int) (string, string) {
	employeeRepo.employees["emp-1"] = employee.Employee{ID: "emp-1", UserID: "user-1"}
	employeeRepo.byUser["user-1"] = "emp-1"

	lt := &leave.LeaveType{Name: "Casual Leave", IsPaid: true, DefaultDays: total}
	_ = typeRepo.Create(context.Background(), lt)
	_ = allocRepo.Create(context.Background(), &leave.LeaveAllocation{
		EmployeeID:  "emp-1",
		LeaveTypeID: lt.ID,
		Year:        2025,
		TotalDays:   total,
	})
	return "emp-1", lt.ID
}

func TestApply_CreatesPendingRequest(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	resp, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "family event",
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, 3, resp.Days)
}

func TestApply_InsufficientBalance(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 2)

	_, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-14",
		Reason:      "trip",
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestApply_OverlappingRequestRejected(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	_, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "first",
	})
	require.NoError(t, err)

	_, err = svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-12",
		EndDate:     "2025-03-13",
		Reason:      "second",
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestApply_InvalidDateRange(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	_, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-12",
		EndDate:     "2025-03-10",
		Reason:      "backwards",
	})
	assert.ErrorIs(t, err, leave.ErrInvalidDateRange)
}

func TestReview_ApprovalDeductsBalance(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	applied, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "family event",
	})
	require.NoError(t, err)

	reviewed, err := svc.Review(context.Background(), &leave.ReviewLeaveRequest{
		ID:         applied.ID,
		ReviewerID: "hr-user",
		Status:     leave.StatusApproved,
	})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, reviewed.Status)

	alloc, err := allocRepo.GetByEmployeeTypeYear(context.Background(), empID, typeID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 3, alloc.UsedDays)
	assert.Equal(t, 9, alloc.RemainingDays())
}

func TestReview_RejectionKeepsBalance(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	applied, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "family event",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), &leave.ReviewLeaveRequest{
		ID:         applied.ID,
		ReviewerID: "hr-user",
		Status:     leave.StatusRejected,
	})
	require.NoError(t, err)

	alloc, err := allocRepo.GetByEmployeeTypeYear(context.Background(), empID, typeID, 2025)
	require.NoError(t, err)
	assert.Equal(t, 0, alloc.UsedDays)
}

func TestReview_SecondReviewRejected(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	applied, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "family event",
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), &leave.ReviewLeaveRequest{
		ID:         applied.ID,
		ReviewerID: "hr-user",
		Status:     leave.StatusApproved,
	})
	require.NoError(t, err)

	_, err = svc.Review(context.Background(), &leave.ReviewLeaveRequest{
		ID:         applied.ID,
		ReviewerID: "hr-user",
		Status:     leave.StatusRejected,
	})
	assert.ErrorIs(t, err, leave.ErrAlreadyReviewed)
}

func TestReview_OwnRequestRejected(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	applied, err := svc.Apply(context.Background(), &leave.ApplyLeaveRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-12",
		Reason:      "family event",
	})
	require.NoError(t, err)

	// user-1 is the linked account of emp-1
	_, err = svc.Review(context.Background(), &leave.ReviewLeaveRequest{
		ID:         applied.ID,
		ReviewerID: "user-1",
		Status:     leave.StatusApproved,
	})
	assert.ErrorIs(t, err, leave.ErrCannotReviewOwnRequest)
}

func TestSetAllocation_UpsertsEntitlement(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	balance, err := svc.SetAllocation(context.Background(), &leave.SetAllocationRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		Year:        2025,
		TotalDays:   20,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, balance.TotalDays)
	assert.Equal(t, 20, balance.RemainingDays)
}

func TestSetAllocation_CannotShrinkBelowUsed(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	empID, typeID := seedEmployeeWithBalance(typeRepo, allocRepo, employeeRepo, 12)

	alloc, err := allocRepo.GetByEmployeeTypeYear(context.Background(), empID, typeID, 2025)
	require.NoError(t, err)
	require.NoError(t, allocRepo.AddUsedDays(context.Background(), alloc.ID, 5))

	_, err = svc.SetAllocation(context.Background(), &leave.SetAllocationRequest{
		EmployeeID:  empID,
		LeaveTypeID: typeID,
		Year:        2025,
		TotalDays:   3,
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientBalance)
}

func TestAllocateForEmployee_SeedsDefaultsOnce(t *testing.T) {
	svc, typeRepo, allocRepo, _, employeeRepo := newTestService()
	employeeRepo.employees["emp-1"] = employee.Employee{ID: "emp-1"}

	_ = typeRepo.Create(context.Background(), &leave.LeaveType{Name: "Casual Leave", IsPaid: true, DefaultDays: 12})
	_ = typeRepo.Create(context.Background(), &leave.LeaveType{Name: "Personal Leave", IsPaid: false, DefaultDays: 5})

	require.NoError(t, svc.AllocateForEmployee(context.Background(), "emp-1", 2025))
	require.NoError(t, svc.AllocateForEmployee(context.Background(), "emp-1", 2025))

	allocations, err := allocRepo.ListByEmployee(context.Background(), "emp-1", 2025)
	require.NoError(t, err)
	assert.Len(t, allocations, 2)
	for _, alloc := range allocations {
		assert.Zero(t, alloc.UsedDays)
	}
}
