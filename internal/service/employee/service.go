package employee

import (
	"context"
	"errors"

	"github.com/workzen/hrms-backend-go/internal/domain/employee"
	"github.com/workzen/hrms-backend-go/internal/domain/leave"
	"github.com/workzen/hrms-backend-go/internal/domain/master/department"
	"github.com/workzen/hrms-backend-go/internal/domain/master/designation"
	"github.com/workzen/hrms-backend-go/internal/domain/user"
	"github.com/workzen/hrms-backend-go/internal/pkg/database"
)

type EmployeeServiceImpl struct {
	db              *database.DB
	employeeRepo    employee.EmployeeRepository
	userRepo        user.UserRepository
	departmentRepo  department.DepartmentRepository
	designationRepo designation.DesignationRepository
	leaveService    leave.LeaveService
}

func NewEmployeeService(
	db *database.DB,
	employeeRepo employee.EmployeeRepository,
	userRepo user.UserRepository,
	departmentRepo department.DepartmentRepository,
	designationRepo designation.DesignationRepository,
	leaveService leave.LeaveService,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		db:              db,
		employeeRepo:    employeeRepo,
		userRepo:        userRepo,
		departmentRepo:  departmentRepo,
		designationRepo: designationRepo,
		leaveService:    leaveService,
	}
}

// Create implements employee.EmployeeService. A new hire also gets the
// current year's leave allocations seeded from the leave type defaults.
func (s *EmployeeServiceImpl) Create(ctx context.Context, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	userData, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return employee.EmployeeResponse{}, employee.ErrUserNotFound
		}
		return employee.EmployeeResponse{}, err
	}
	if userData.EmployeeID != nil {
		return employee.EmployeeResponse{}, employee.ErrEmployeeProfileExists
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		if errors.Is(err, department.ErrDepartmentNotFound) {
			return employee.EmployeeResponse{}, employee.ErrDepartmentNotFound
		}
		return employee.EmployeeResponse{}, err
	}
	if _, err := s.designationRepo.GetByID(ctx, req.DesignationID); err != nil {
		if errors.Is(err, designation.ErrDesignationNotFound) {
			return employee.EmployeeResponse{}, employee.ErrDesignationNotFound
		}
		return employee.EmployeeResponse{}, err
	}
	if req.ReportingManagerID != nil {
		if _, err := s.employeeRepo.GetByID(ctx, *req.ReportingManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	created, err := s.employeeRepo.Create(ctx, req.ToEntity())
	if err != nil {
		return employee.EmployeeResponse{}, err
	}

	if err := s.leaveService.AllocateForEmployee(ctx, created.ID, created.DateOfJoining.Year()); err != nil {
		return employee.EmployeeResponse{}, err
	}

	full, err := s.employeeRepo.GetByID(ctx, created.ID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(full), nil
}

// GetByID implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByID(ctx, id)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// GetMyProfile implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetMyProfile(ctx context.Context, userID string) (employee.EmployeeResponse, error) {
	e, err := s.employeeRepo.GetByUserID(ctx, userID)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(e), nil
}

// List implements employee.EmployeeService.
func (s *EmployeeServiceImpl) List(ctx context.Context) ([]employee.EmployeeResponse, error) {
	employees, err := s.employeeRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	return employee.ToResponses(employees), nil
}

// Update implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Update(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	if req.DepartmentID != nil {
		if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
			if errors.Is(err, department.ErrDepartmentNotFound) {
				return employee.EmployeeResponse{}, employee.ErrDepartmentNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}
	if req.DesignationID != nil {
		if _, err := s.designationRepo.GetByID(ctx, *req.DesignationID); err != nil {
			if errors.Is(err, designation.ErrDesignationNotFound) {
				return employee.EmployeeResponse{}, employee.ErrDesignationNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}
	if req.ReportingManagerID != nil {
		if *req.ReportingManagerID == req.ID {
			return employee.EmployeeResponse{}, employee.ErrSelfManagerAssignment
		}
		if _, err := s.employeeRepo.GetByID(ctx, *req.ReportingManagerID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return employee.EmployeeResponse{}, employee.ErrManagerNotFound
			}
			return employee.EmployeeResponse{}, err
		}
	}

	updated, err := s.employeeRepo.Update(ctx, req)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	return employee.ToResponse(updated), nil
}

// Delete implements employee.EmployeeService.
func (s *EmployeeServiceImpl) Delete(ctx context.Context, id string) error {
	return s.employeeRepo.Delete(ctx, id)
}
