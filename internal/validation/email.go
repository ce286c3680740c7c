package validation

import (
	"errors"
	"net/mail"
)

const MaxEmailLength = 254

// ValidateEmail checks a bare address such as "jane@example.com".
// Display-name forms ("Jane <jane@example.com>") are rejected.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email address is required")
	}

	// RFC 5321: 254 characters including the @
	if len(email) > MaxEmailLength {
		return errors.New("email address is too long (max 254 characters)")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return errors.New("enter a valid email address")
	}

	return nil
}
