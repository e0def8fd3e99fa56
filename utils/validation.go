package utils

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// FieldValidationError represents a validation error for a specific field
type FieldValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// FieldValidationErrors represents multiple field validation errors
type FieldValidationErrors []FieldValidationError

// Error implements the error interface
func (e FieldValidationErrors) Error() string {
	var messages []string
	for _, err := range e {
		messages = append(messages, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return strings.Join(messages, "; ")
}

var (
	usernameRegex   = regexp.MustCompile(`^[a-zA-Z0-9_]{3,20}$`)
	emailRegex      = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	cardNumberRegex = regexp.MustCompile(`^[0-9]{13,19}$`)
)

// ValidateUsername checks username format
func ValidateUsername(username string) error {
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username must be 3-20 characters and contain only letters, numbers and underscores")
	}
	return nil
}

// ValidateEmail checks email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}
	return nil
}

// ValidatePassword enforces the minimum password policy
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// ValidateCard validates a stored card's fields. Only the last four
// digits of the number survive past this check.
func ValidateCard(number string, expMonth, expYear int) FieldValidationErrors {
	var errs FieldValidationErrors

	digits := strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	if !cardNumberRegex.MatchString(digits) {
		errs = append(errs, FieldValidationError{Field: "number", Message: "card number must be 13-19 digits"})
	} else if !luhnValid(digits) {
		errs = append(errs, FieldValidationError{Field: "number", Message: "card number failed checksum"})
	}

	if expMonth < 1 || expMonth > 12 {
		errs = append(errs, FieldValidationError{Field: "exp_month", Message: "expiry month must be between 1 and 12"})
	}

	now := time.Now()
	if expYear < now.Year() || (expYear == now.Year() && expMonth < int(now.Month())) {
		errs = append(errs, FieldValidationError{Field: "exp_year", Message: "card has expired"})
	}

	return errs
}

// CardLastFour returns the last four digits of a card number
func CardLastFour(number string) string {
	digits := strings.ReplaceAll(strings.ReplaceAll(number, " ", ""), "-", "")
	if len(digits) < 4 {
		return digits
	}
	return digits[len(digits)-4:]
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}
