package validation

import (
	"net/mail"
	"strings"
)

// ValidateEmail validates email format and length.
// Uses Go's built-in net/mail parser which follows RFC 5322.
func ValidateEmail(email string) error {
	if email == "" {
		return errorf("email address is required")
	}

	// RFC 5321: total max 254 with @
	if len(email) > 254 {
		return errorf("email address is too long (max 254 characters)")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return errorf("invalid email address format")
	}

	return nil
}

// ValidatePassword validates password strength.
// Enforces NIST recommendations: minimum 12 characters, blocks common patterns.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return errorf("password must be at least 12 characters")
	}

	// bcrypt silently truncates passwords longer than 72 bytes
	if len(password) > 72 {
		return errorf("password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	commonPatterns := []string{
		"password", "123456", "qwerty", "admin", "letmein",
		"welcome", "monkey", "dragon", "master", "sunshine",
	}

	for _, pattern := range commonPatterns {
		if strings.Contains(lower, pattern) {
			return errorf("password is too common, please choose a stronger one")
		}
	}

	return nil
}

// ValidateUsername validates the public handle shown on boxes and
// reviews: 3-30 chars, lowercase letters, digits, underscores.
func ValidateUsername(username string) error {
	if len(username) < 3 {
		return errorf("username must be at least 3 characters")
	}
	if len(username) > 30 {
		return errorf("username is too long (max 30 characters)")
	}
	for _, c := range username {
		if (c < 'a' || c > 'z') && (c < '0' || c > '9') && c != '_' {
			return errorf("username may only contain lowercase letters, digits and underscores")
		}
	}
	return nil
}

// ValidateName validates a first or last name field.
func ValidateName(name string) error {
	if len(strings.TrimSpace(name)) > 100 {
		return errorf("name is too long (max 100 characters)")
	}
	return nil
}

// ValidateBoxName validates the display name of a box.
func ValidateBoxName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return errorf("box name is required")
	}
	if len(trimmed) > 120 {
		return errorf("box name is too long (max 120 characters)")
	}
	return nil
}

// ValidateDescription validates a box description.
func ValidateDescription(description string) error {
	if len(description) > 2000 {
		return errorf("description is too long (max 2000 characters)")
	}
	return nil
}

// ValidateComment validates an optional visit comment.
func ValidateComment(comment *string) error {
	if comment == nil {
		return nil
	}
	if len(*comment) > 2000 {
		return errorf("comment is too long (max 2000 characters)")
	}
	return nil
}
