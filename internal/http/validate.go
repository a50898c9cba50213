package http

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ayush931/stackskills/internal/crypto"
)

// Input shape rules for the enrollment and auth forms. Phone numbers are
// Indian mobile numbers: exactly 10 digits, leading digit 6-9.
var (
	nameRe    = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
	phoneRe   = regexp.MustCompile(`^[6-9]\d{9}$`)
	digitsRe  = regexp.MustCompile(`^\d+$`)
	emailRe   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	pincodeRe = regexp.MustCompile(`^\d{6}$`)
)

func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("Name is required")
	}
	if len(name) > 128 {
		return fmt.Errorf("Name cannot exceed more than 128 characters")
	}
	if !nameRe.MatchString(name) {
		return fmt.Errorf("Name can only contain letters, spaces, hyphens, and apostrophes")
	}
	return nil
}

func validatePhone(phone string) error {
	if !digitsRe.MatchString(phone) {
		return fmt.Errorf("Phone number must contain only digits")
	}
	if len(phone) != 10 {
		return fmt.Errorf("Phone number must be exactly 10 digits")
	}
	if !phoneRe.MatchString(phone) {
		return fmt.Errorf("Phone number must start with 6, 7, 8, or 9")
	}
	return nil
}

func validateSchoolName(schoolName string) error {
	if schoolName == "" {
		return fmt.Errorf("School name is required")
	}
	if len(schoolName) > 500 {
		return fmt.Errorf("School name cannot exceed more than 500 characters")
	}
	return nil
}

func validateClassName(className string) error {
	if className == "" {
		return fmt.Errorf("Class name is required")
	}
	if len(className) > 128 {
		return fmt.Errorf("Class name cannot exceed more than 128 characters")
	}
	return nil
}

func validatePassword(password string) error {
	length := utf8.RuneCountInString(password)
	if length < crypto.MinPasswordLength {
		return fmt.Errorf("Password must be at least %d characters long", crypto.MinPasswordLength)
	}
	if length > crypto.MaxPasswordLength {
		return fmt.Errorf("Password cannot exceed more than %d characters", crypto.MaxPasswordLength)
	}
	if strength := crypto.ValidatePasswordStrength(password); !strength.IsValid {
		return fmt.Errorf("%s", strings.Join(strength.Feedback, ", "))
	}
	return nil
}

func validateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("Email is required")
	}
	if len(email) > 255 {
		return fmt.Errorf("Email cannot exceed more than 255 characters")
	}
	if !emailRe.MatchString(email) {
		return fmt.Errorf("Email is not valid")
	}
	return nil
}

func validatePincode(pincode string) error {
	if !pincodeRe.MatchString(pincode) {
		return fmt.Errorf("Pincode must be 6 digits")
	}
	return nil
}

// missingFields returns the names of empty required fields, preserving order.
func missingFields(fields map[string]string, order []string) []string {
	var missing []string
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
