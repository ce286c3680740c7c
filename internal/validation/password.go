package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

const (
	MinPasswordLength = 8
	// bcrypt silently truncates anything longer
	MaxPasswordLength = 72

	maxSimilarity = 0.7
)

var commonPasswords = map[string]bool{
	"password": true, "password1": true, "password123": true, "passw0rd": true,
	"12345678": true, "123456789": true, "1234567890": true, "87654321": true,
	"qwerty123": true, "qwertyuiop": true, "1q2w3e4r": true, "1qaz2wsx": true,
	"iloveyou": true, "sunshine": true, "princess": true, "football": true,
	"baseball": true, "welcome1": true, "letmein1": true, "trustno1": true,
	"superman": true, "starwars": true, "whatever": true, "dragon123": true,
	"monkey123": true, "master123": true, "admin123": true, "abc12345": true,
	"computer": true, "michelle": true, "jennifer": true, "corvette": true,
	"mustang1": true, "shadow12": true, "changeme": true, "secret123": true,
}

var nonWord = regexp.MustCompile(`\W+`)

// ValidatePassword enforces the password policy. userAttributes (username, names, email)
// are compared against the password to reject near copies.
func ValidatePassword(password string, userAttributes ...string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	}

	if len(password) > MaxPasswordLength {
		return fmt.Errorf("password must not exceed %d characters", MaxPasswordLength)
	}

	lower := strings.ToLower(password)
	if commonPasswords[lower] {
		return errors.New("password is too common, please choose a stronger one")
	}

	if strings.Trim(password, "0123456789") == "" {
		return errors.New("password is entirely numeric")
	}

	for _, attr := range userAttributes {
		attr = strings.ToLower(attr)
		if attr == "" {
			continue
		}
		parts := append([]string{attr}, nonWord.Split(attr, -1)...)
		for _, part := range parts {
			if part != "" && similarity(lower, part) >= maxSimilarity {
				return errors.New("password is too similar to your personal information")
			}
		}
	}

	return nil
}

// similarity is 2*M/T where M is the longest common subsequence length
// and T the combined length of both strings.
func similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 0
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for i := 1; i <= len(ra); i++ {
		for j := 1; j <= len(rb); j++ {
			switch {
			case ra[i-1] == rb[j-1]:
				curr[j] = prev[j-1] + 1
			case prev[j] >= curr[j-1]:
				curr[j] = prev[j]
			default:
				curr[j] = curr[j-1]
			}
		}
		prev, curr = curr, prev
	}

	return 2 * float64(prev[len(rb)]) / float64(total)
}
