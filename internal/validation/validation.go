// Package validation provides input format checks for handler payloads.
package validation

import (
	"fmt"
	"regexp"
)

var (
	regionRegex   = regexp.MustCompile(`^[A-Z]{2}$`)
	usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,32}$`)
	emailRegex    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

const minPasswordLength = 4

// IsValidRegionCode reports whether code looks like a two-letter region code.
func IsValidRegionCode(code string) bool {
	return regionRegex.MatchString(code)
}

// IsValidUsername reports whether username has an acceptable account-name shape.
func IsValidUsername(username string) bool {
	return usernameRegex.MatchString(username)
}

// IsValidEmail performs a shallow email shape check.
func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// ValidateNewUser checks an add-user payload.
func ValidateNewUser(username, email, password string) error {
	if !IsValidUsername(username) {
		return fmt.Errorf("invalid username format: %s", username)
	}
	if !IsValidEmail(email) {
		return fmt.Errorf("invalid email format: %s", email)
	}
	return ValidatePassword(password)
}

// ValidatePassword checks the minimal password requirement.
func ValidatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("password must be at least %d characters", minPasswordLength)
	}
	return nil
}
