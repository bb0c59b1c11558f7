package attendance

import (
	"time"
)

const (
	StatusPresent = "Present"
	StatusAbsent  = "Absent"
	StatusHalfDay = "Half Day"
)

func IsValidStatus(status string) bool {
	switch status {
	case StatusPresent, StatusAbsent, StatusHalfDay:
		return true
	}
	return false
}

type Attendance struct {
	ID         string
	EmployeeID string
	Date       time.Time
	Status     string
	CheckIn    *time.Time
	CheckOut   *time.Time
	Remarks    *string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO
	EmployeeName *string
	LoginID      *string
}

// WorkedDayValue returns the payable day weight of a record. Half days
// count as 0.5 and absences as zero.
func (a *Attendance) WorkedDayValue() float64 {
	switch a.Status {
	case StatusPresent:
		return 1
	case StatusHalfDay:
		return 0.5
	}
	return 0
}
