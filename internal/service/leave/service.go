package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
	"github.com/workzen/hrms-backend-go/internal/pkg/validator"
	"github.com/workzen/hrms-backend-go/internal/repository/postgresql"
)

type LeaveServiceImpl struct {
	db             *database.DB
	leaveTypeRepo  leave.LeaveTypeRepository
	allocationRepo leave.LeaveAllocationRepository
	requestRepo    leave.LeaveRequestRepository
	employeeRepo   employee.EmployeeRepository
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	allocationRepo leave.LeaveAllocationRepository,
	requestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
) leave.LeaveService {
	return &LeaveServiceImpl{
		db:             db,
		leaveTypeRepo:  leaveTypeRepo,
		allocationRepo: allocationRepo,
		requestRepo:    requestRepo,
		employeeRepo:   employeeRepo,
	}
}

// CreateLeaveType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req *leave.CreateLeaveTypeRequest) (*leave.LeaveTypeResponse, error) {
	lt := &leave.LeaveType{
		Name:        req.Name,
		IsPaid:      req.IsPaid,
		DefaultDays: req.DefaultDays,
	}
	if err := s.leaveTypeRepo.Create(ctx, lt); err != nil {
		return nil, err
	}
	return leave.ToLeaveTypeResponse(lt), nil
}

// ListLeaveTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListLeaveTypes(ctx context.Context) ([]*leave.LeaveTypeResponse, error) {
	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]*leave.LeaveTypeResponse, 0, len(types))
	for _, lt := range types {
		responses = append(responses, leave.ToLeaveTypeResponse(lt))
	}
	return responses, nil
}

// Apply implements leave.LeaveService. The balance is checked up front
// but only deducted on approval.
func (s *LeaveServiceImpl) Apply(ctx context.Context, req *leave.ApplyLeaveRequest) (*leave.LeaveRequestResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, leave.ErrEmployeeNotFound
		}
		return nil, err
	}

	if _, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return nil, err
	}

	start, _ := validator.IsValidDate(req.StartDate)
	end, _ := validator.IsValidDate(req.EndDate)
	if end.Before(start) {
		return nil, leave.ErrInvalidDateRange
	}
	days := leave.DaysBetween(start, end)

	overlap, err := s.requestRepo.HasOverlap(ctx, req.EmployeeID, start, end)
	if err != nil {
		return nil, err
	}
	if overlap {
		return nil, leave.ErrOverlappingRequest
	}

	alloc, err := s.allocationRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, start.Year())
	if err != nil {
		return nil, err
	}
	if alloc.RemainingDays() < days {
		return nil, leave.ErrInsufficientBalance
	}

	lr := &leave.LeaveRequest{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Days:        days,
		Reason:      req.Reason,
		Status:      leave.StatusPending,
	}
	if err := s.requestRepo.Create(ctx, lr); err != nil {
		return nil, err
	}

	return s.response(ctx, lr.ID)
}

// Review implements leave.LeaveService. Approval deducts the allocation
// inside the same transaction as the status change.
func (s *LeaveServiceImpl) Review(ctx context.Context, req *leave.ReviewLeaveRequest) (*leave.LeaveRequestResponse, error) {
	lr, err := s.requestRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}
	if lr.Status != leave.StatusPending {
		return nil, leave.ErrAlreadyReviewed
	}

	reviewerEmployee, err := s.employeeRepo.GetByUserID(ctx, req.ReviewerID)
	if err == nil && reviewerEmployee.ID == lr.EmployeeID {
		return nil, leave.ErrCannotReviewOwnRequest
	}
	if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
		return nil, err
	}

	now := time.Now().UTC()
	lr.Status = req.Status
	lr.ReviewedBy = &req.ReviewerID
	lr.ReviewedAt = &now

	err = postgresql.RunInTx(ctx, s.db, func(txCtx context.Context) error {
		if req.Status == leave.StatusApproved {
			alloc, err := s.allocationRepo.GetByEmployeeTypeYear(txCtx, lr.EmployeeID, lr.LeaveTypeID, lr.StartDate.Year())
			if err != nil {
				return err
			}
			if err := s.allocationRepo.AddUsedDays(txCtx, alloc.ID, lr.Days); err != nil {
				return fmt.Errorf("failed to deduct leave balance: %w", err)
			}
		}

		return s.requestRepo.Update(txCtx, lr)
	})
	if err != nil {
		return nil, err
	}

	return s.response(ctx, lr.ID)
}

func (s *LeaveServiceImpl) response(ctx context.Context, id string) (*leave.LeaveRequestResponse, error) {
	full, err := s.requestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return leave.ToLeaveRequestResponse(full), nil
}

// ListByEmployee implements leave.LeaveService.
func (s *LeaveServiceImpl) ListByEmployee(ctx context.Context, employeeID string) ([]*leave.LeaveRequestResponse, error) {
	requests, err := s.requestRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	return leave.ToLeaveRequestResponses(requests), nil
}

// ListPending implements leave.LeaveService.
func (s *LeaveServiceImpl) ListPending(ctx context.Context) ([]*leave.LeaveRequestResponse, error) {
	requests, err := s.requestRepo.ListByStatus(ctx, leave.StatusPending)
	if err != nil {
		return nil, err
	}
	return leave.ToLeaveRequestResponses(requests), nil
}

// ListAll implements leave.LeaveService.
func (s *LeaveServiceImpl) ListAll(ctx context.Context) ([]*leave.LeaveRequestResponse, error) {
	requests, err := s.requestRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return leave.ToLeaveRequestResponses(requests), nil
}

// GetBalance implements leave.LeaveService.
func (s *LeaveServiceImpl) GetBalance(ctx context.Context, employeeID string, year int) ([]*leave.LeaveBalanceResponse, error) {
	allocations, err := s.allocationRepo.ListByEmployee(ctx, employeeID, year)
	if err != nil {
		return nil, err
	}

	responses := make([]*leave.LeaveBalanceResponse, 0, len(allocations))
	for _, alloc := range allocations {
		responses = append(responses, leave.ToLeaveBalanceResponse(alloc))
	}
	return responses, nil
}

// SetAllocation implements leave.LeaveService. HR override of the yearly
// entitlement for one employee and leave type. Shrinking below already
// used days is rejected.
func (s *LeaveServiceImpl) SetAllocation(ctx context.Context, req *leave.SetAllocationRequest) (*leave.LeaveBalanceResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, req.EmployeeID); err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, leave.ErrEmployeeNotFound
		}
		return nil, err
	}
	if _, err := s.leaveTypeRepo.GetByID(ctx, req.LeaveTypeID); err != nil {
		return nil, err
	}

	existing, err := s.allocationRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil && !errors.Is(err, leave.ErrAllocationNotFound) {
		return nil, err
	}
	if existing != nil && req.TotalDays < existing.UsedDays {
		return nil, leave.ErrInsufficientBalance
	}

	alloc := &leave.LeaveAllocation{
		EmployeeID:  req.EmployeeID,
		LeaveTypeID: req.LeaveTypeID,
		Year:        req.Year,
		TotalDays:   req.TotalDays,
	}
	if err := s.allocationRepo.Upsert(ctx, alloc); err != nil {
		return nil, err
	}

	full, err := s.allocationRepo.GetByEmployeeTypeYear(ctx, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return nil, err
	}
	return leave.ToLeaveBalanceResponse(full), nil
}

// AllocateForEmployee implements leave.LeaveService. Seeds one allocation
// per leave type for the year from each type's default day count. Already
// seeded allocations are left untouched.
func (s *LeaveServiceImpl) AllocateForEmployee(ctx context.Context, employeeID string, year int) error {
	types, err := s.leaveTypeRepo.List(ctx)
	if err != nil {
		return err
	}

	for _, lt := range types {
		alloc := &leave.LeaveAllocation{
			EmployeeID:  employeeID,
			LeaveTypeID: lt.ID,
			Year:        year,
			TotalDays:   lt.DefaultDays,
		}
		if err := s.allocationRepo.Create(ctx, alloc); err != nil {
			return fmt.Errorf("failed to seed leave allocation: %w", err)
		}
	}
	return nil
}
