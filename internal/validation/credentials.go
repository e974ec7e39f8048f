// Package validation provides input validation utilities
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

// MaxTweetLength caps tweet and reply text.
const MaxTweetLength = 280

var usernameRegex = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidatePassword checks if a password meets account requirements.
// The minimum length boundary is exact: 5 characters fail, 6 pass.
func ValidatePassword(password string) error {
	if len(password) < 6 {
		return fmt.Errorf("password must be at least 6 characters long")
	}

	// Cap length to keep bcrypt inputs reasonable
	if len(password) > 128 {
		return fmt.Errorf("password must not exceed 128 characters")
	}

	return nil
}

// ValidateUsername checks if a username meets requirements
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return fmt.Errorf("username must be at least 3 characters long")
	}

	if len(username) > 30 {
		return fmt.Errorf("username must not exceed 30 characters")
	}

	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("username can only contain letters, numbers, underscores, and hyphens")
	}

	return nil
}

// ValidateTweetText checks that tweet or reply text is non-empty after
// trimming and within the length cap.
func ValidateTweetText(text string) error {
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("tweet text must not be empty")
	}

	if utf8.RuneCountInString(text) > MaxTweetLength {
		return fmt.Errorf("tweet text must not exceed %d characters", MaxTweetLength)
	}

	return nil
}
