// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// NormalizeEmail lower-cases and trims an address. Uniqueness is checked on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateEmail checks basic email format
func ValidateEmail(email string) error {
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("invalid email format")
	}

	if len(email) > 254 {
		return fmt.Errorf("email must not exceed 254 characters")
	}

	return nil
}

// ValidatePassword only rejects empty passwords. Accounts created by earlier
// versions used short passwords such as "demo123" and must keep working.
func ValidatePassword(password string) error {
	if password == "" {
		return fmt.Errorf("password is required")
	}
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}
	return nil
}

// SplitSkills splits a comma separated list, trimming tokens and dropping
// empty ones. Order and duplicates are kept.
func SplitSkills(csv string) []string {
	skills := []string{}
	for _, token := range strings.Split(csv, ",") {
		if s := strings.TrimSpace(token); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}
