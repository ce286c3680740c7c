package validation

import (
	"strconv"
	"strings"
)

const (
	MaxContactFieldLength = 50
	// MaxPersonNameLength bounds a user's first and last name on registration.
	// Usernames are bounded by MaxUsernameLength.
	MaxPersonNameLength = 150
)

// RejectedFirstName is refused as a contact first name. The match is exact and case-sensitive.
const RejectedFirstName = "ABC"

// ContactForm is the raw input of the contact create/update form.
// Category holds the submitted category id, empty for none.
type ContactForm struct {
	FirstName   string
	LastName    string
	Phone       string
	Email       string
	Description string
	Category    string
}

// Validate trims the fields in place and reports every problem found.
func (f *ContactForm) Validate() Errors {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Email = strings.TrimSpace(f.Email)
	f.Description = strings.TrimSpace(f.Description)
	f.Category = strings.TrimSpace(f.Category)

	errs := Errors{}
	check(errs, "first_name", ValidateLength(f.FirstName, 1, MaxContactFieldLength))
	check(errs, "last_name", ValidateLength(f.LastName, 1, MaxContactFieldLength))
	check(errs, "phone", ValidateLength(f.Phone, 1, MaxContactFieldLength))
	check(errs, "email", ValidateEmail(f.Email))

	if f.FirstName == RejectedFirstName {
		errs.Add("first_name", "ABC is not an acceptable first name")
	}

	if f.Category != "" {
		if _, ok := f.CategoryID(); !ok {
			errs.Add("category", InvalidChoice)
		}
	}

	return errs
}

// InvalidChoice is reported when a submitted category does not exist.
const InvalidChoice = "select a valid choice, that choice is not one of the available choices"

// CategoryID parses Category. ok is false for a malformed id; an empty Category yields (nil, true).
func (f *ContactForm) CategoryID() (*int64, bool) {
	if f.Category == "" {
		return nil, true
	}
	id, err := strconv.ParseInt(f.Category, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}
	return &id, true
}

// RegisterForm is the raw input of the registration form.
type RegisterForm struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password1 string
	Password2 string
}

// Validate checks the submission. Email and username uniqueness need the database
// and are checked by the caller.
func (f *RegisterForm) Validate() Errors {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)

	errs := Errors{}
	check(errs, "first_name", ValidateLength(f.FirstName, 3, MaxPersonNameLength))
	check(errs, "last_name", ValidateLength(f.LastName, 3, MaxPersonNameLength))
	check(errs, "email", ValidateEmail(f.Email))
	check(errs, "username", ValidateUsername(f.Username))

	if f.Password1 == "" {
		errs.Add("password1", "this field is required")
	}
	if f.Password2 == "" {
		errs.Add("password2", "this field is required")
	}
	if f.Password1 != "" && f.Password2 != "" {
		if f.Password1 != f.Password2 {
			errs.Add("password2", "the two password fields didn't match")
		} else {
			check(errs, "password1", ValidatePassword(f.Password1, f.Username, f.FirstName, f.LastName, f.Email))
		}
	}

	return errs
}

// ProfileForm is the raw input of the profile update form. Both passwords empty
// keeps the current password.
type ProfileForm struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
	Password1 string
	Password2 string
}

func (f *ProfileForm) Validate() Errors {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Email = strings.TrimSpace(f.Email)
	f.Username = strings.TrimSpace(f.Username)

	errs := Errors{}
	check(errs, "first_name", ValidateLength(f.FirstName, 2, 30))
	check(errs, "last_name", ValidateLength(f.LastName, 2, 30))
	check(errs, "email", ValidateEmail(f.Email))
	check(errs, "username", ValidateUsername(f.Username))

	if f.Password1 != "" || f.Password2 != "" {
		if f.Password1 != f.Password2 {
			errs.Add("password2", "the two password fields didn't match")
		}
		if f.Password1 != "" {
			check(errs, "password1", ValidatePassword(f.Password1, f.Username, f.FirstName, f.LastName, f.Email))
		}
	}

	return errs
}

// ChangesPassword reports whether a new password was submitted.
func (f *ProfileForm) ChangesPassword() bool {
	return f.Password1 != ""
}

func check(errs Errors, field string, err error) {
	if err != nil {
		errs.Add(field, err.Error())
	}
}
