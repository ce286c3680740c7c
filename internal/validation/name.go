package validation

import (
	"errors"
	"fmt"
	"regexp"
	"unicode/utf8"
)

const MaxUsernameLength = 150

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// ValidateLength checks that a trimmed value is present and its rune count lies in [min, max].
// A max of 0 means unbounded.
func ValidateLength(value string, min, max int) error {
	n := utf8.RuneCountInString(value)

	if n == 0 {
		return errors.New("this field is required")
	}

	if n < min {
		return fmt.Errorf("must be at least %d characters (it has %d)", min, n)
	}

	if max > 0 && n > max {
		return fmt.Errorf("must be at most %d characters (it has %d)", max, n)
	}

	return nil
}

// ValidateUsername allows letters, digits and @ . + - _ up to 150 characters.
func ValidateUsername(username string) error {
	if err := ValidateLength(username, 1, MaxUsernameLength); err != nil {
		return err
	}

	if !usernamePattern.MatchString(username) {
		return errors.New("username may contain only letters, numbers and @ . + - _")
	}

	return nil
}
