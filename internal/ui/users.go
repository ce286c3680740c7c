package ui

import "github.com/templui/contacts/internal/validation"

const (
	registerPasswordHint = "At least 8 characters, not entirely numeric, not a common password."
	profilePasswordHint  = "Leave both password fields empty to keep your current password."
)

// userFormFields are shared by registration and profile update.
type userFormFields struct {
	FirstName string
	LastName  string
	Email     string
	Username  string
}

func registerFields(form validation.RegisterForm) userFormFields {
	return userFormFields{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Username:  form.Username,
	}
}

func profileFields(form validation.ProfileForm) userFormFields {
	return userFormFields{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Username:  form.Username,
	}
}
