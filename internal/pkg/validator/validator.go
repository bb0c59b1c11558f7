package validator

import (
	"regexp"
	"strings"
	"time"
)

type ValidationError struct {
	Field   string
	Message string
}

type ValidationErrors []ValidationError

func (v ValidationErrors) Error() string {
	var msgs []string
	for _, err := range v {
		msgs = append(msgs, err.Field+": "+err.Message)
	}
	return strings.Join(msgs, "; ")
}

func (v ValidationErrors) ToMap() map[string]string {
	result := make(map[string]string)
	for _, err := range v {
		result[err.Field] = err.Message
	}
	return result
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Email validation
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// Numeric validation
var numericRegex = regexp.MustCompile(`^[0-9]+$`)

func IsNumeric(s string) bool {
	return numericRegex.MatchString(s)
}

// Date validation
func IsValidDate(dateStr string) (time.Time, bool) {
	date, err := time.Parse("2006-01-02", dateStr)
	return date, err == nil
}

// Month validation (payroll period)
func IsValidMonth(month int) bool {
	return month >= 1 && month <= 12
}

// Year validation (payroll period). The system predates nothing older than 2000.
func IsValidYear(year int) bool {
	return year >= 2000 && year <= 2200
}

// Phone number validation: 10-13 digits, optional leading +
func IsValidPhoneNumber(phone string) bool {
	phone = strings.ReplaceAll(phone, " ", "")
	phone = strings.ReplaceAll(phone, "-", "")
	phone = strings.TrimPrefix(phone, "+")

	if len(phone) < 10 || len(phone) > 13 {
		return false
	}
	return IsNumeric(phone)
}

// PAN validation (Indian Permanent Account Number): AAAAA9999A
var panRegex = regexp.MustCompile(`^[A-Z]{5}[0-9]{4}[A-Z]$`)

func IsValidPAN(pan string) bool {
	return panRegex.MatchString(strings.ToUpper(pan))
}

// UAN validation (Indian Universal Account Number): 12 digits
func IsValidUAN(uan string) bool {
	return len(uan) == 12 && IsNumeric(uan)
}

// Login ID validation: OI + 4 letters + year + 4-digit serial, e.g. OIJODO20220001
var loginIDRegex = regexp.MustCompile(`^OI[A-Z]{4}\d{4}\d{4}$`)

func IsValidLoginID(loginID string) bool {
	return loginIDRegex.MatchString(loginID)
}

// Slice contains check
func IsInSlice(value string, slice []string) bool {
	for _, item := range slice {
		if item == value {
			return true
		}
	}
	return false
}
