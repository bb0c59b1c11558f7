package leave

import "errors"

var (
	ErrLeaveTypeNotFound      = errors.New("leave type not found")
	ErrLeaveTypeNameExists    = errors.New("leave type name already exists")
	ErrLeaveRequestNotFound   = errors.New("leave request not found")
	ErrAllocationNotFound     = errors.New("leave allocation not found")
	ErrInsufficientBalance    = errors.New("insufficient leave balance")
	ErrInvalidDateRange       = errors.New("end date must not be before start date")
	ErrOverlappingRequest     = errors.New("overlapping leave request exists")
	ErrAlreadyReviewed        = errors.New("leave request already reviewed")
	ErrCannotReviewOwnRequest = errors.New("cannot review own leave request")
	ErrEmployeeNotFound       = errors.New("employee not found")
)
