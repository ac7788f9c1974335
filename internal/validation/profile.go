// Package validation holds input validation helpers for the API surface.
package validation

import (
	"fmt"
	"regexp"
	"unicode"

	"kindling/internal/models"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Profile limits enforced on save.
const (
	MinAge        = 18
	MaxAge        = 120
	MaxNameLen    = 60
	MaxBioLen     = 500
	MaxImageCount = 6
)

// ValidateEmail validates email address format.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email is required")
	}
	if !emailRegex.MatchString(email) {
		return fmt.Errorf("email format is invalid")
	}
	return nil
}

// ValidatePassword enforces minimum password strength: at least 8
// characters with a letter and a digit.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return fmt.Errorf("password must contain at least one letter and one digit")
	}
	return nil
}

// ValidateProfile checks a profile document before it is saved wholesale.
func ValidateProfile(u *models.User) error {
	if u.Name == "" {
		return fmt.Errorf("name is required")
	}
	if len(u.Name) > MaxNameLen {
		return fmt.Errorf("name too long (max %d characters)", MaxNameLen)
	}
	if len(u.Bio) > MaxBioLen {
		return fmt.Errorf("bio too long (max %d characters)", MaxBioLen)
	}
	if u.Age < MinAge || u.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	if len(u.ImageURLs) > MaxImageCount {
		return fmt.Errorf("at most %d images allowed", MaxImageCount)
	}
	return ValidateSeekingRange(u.MinSeekingAge, u.MaxSeekingAge)
}

// ValidateSeekingRange checks the candidate age window.
func ValidateSeekingRange(minSeeking, maxSeeking int) error {
	if minSeeking < MinAge {
		return fmt.Errorf("minimum seeking age must be at least %d", MinAge)
	}
	if maxSeeking < minSeeking {
		return fmt.Errorf("maximum seeking age must not be below the minimum")
	}
	if maxSeeking > MaxAge {
		return fmt.Errorf("maximum seeking age must be at most %d", MaxAge)
	}
	return nil
}
