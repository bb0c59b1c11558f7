package attendance

import "errors"

var (
	ErrAttendanceNotFound      = errors.New("attendance record not found")
	ErrAttendanceAlreadyMarked = errors.New("attendance already marked for this date")
	ErrAlreadyCheckedIn        = errors.New("already checked in today")
	ErrNotCheckedIn            = errors.New("not checked in today")
	ErrAlreadyCheckedOut       = errors.New("already checked out today")
	ErrInvalidStatus           = errors.New("invalid attendance status")
	ErrFutureDate              = errors.New("cannot mark attendance for a future date")
	ErrEmployeeNotFound        = errors.New("employee not found")
)
