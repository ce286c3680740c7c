package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/testutil"
)

func validContactForm() ContactForm {
	return ContactForm{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "555-0100",
		Email:     "jane@example.com",
	}
}

func TestContactForm_Valid(t *testing.T) {
	form := validContactForm()
	form.FirstName = "  Jane  "

	errs := form.Validate()
	assert.False(t, errs.Any(), errs.Error())
	assert.Equal(t, "Jane", form.FirstName)
}

func TestContactForm_RejectsABC(t *testing.T) {
	form := validContactForm()
	form.FirstName = "ABC"

	errs := form.Validate()
	assert.True(t, errs.Has("first_name"))
	assert.Len(t, errs, 1)

	lower := validContactForm()
	lower.FirstName = "abc"
	assert.False(t, lower.Validate().Any(), "the rule is case-sensitive")
}

func TestContactForm_RequiredAndLengths(t *testing.T) {
	form := ContactForm{
		FirstName: "   ",
		LastName:  strings.Repeat("x", MaxContactFieldLength+1),
		Email:     "not-an-email",
		Category:  "abc",
	}

	errs := form.Validate()
	for _, field := range []string{"first_name", "last_name", "phone", "email", "category"} {
		assert.True(t, errs.Has(field), field)
	}
	assert.False(t, errs.Has("description"))
}

func TestContactForm_CategoryID(t *testing.T) {
	form := validContactForm()
	id, ok := form.CategoryID()
	assert.True(t, ok)
	assert.Nil(t, id)

	form.Category = "7"
	id, ok = form.CategoryID()
	require.True(t, ok)
	assert.Equal(t, int64(7), *id)

	form.Category = "-1"
	_, ok = form.CategoryID()
	assert.False(t, ok)
}

func TestRegisterForm(t *testing.T) {
	valid := func() RegisterForm {
		return RegisterForm{
			FirstName: "Alice",
			LastName:  "Liddell",
			Email:     "alice@example.com",
			Username:  "alice",
			Password1: "tangerine-Rocket-42",
			Password2: "tangerine-Rocket-42",
		}
	}

	tests := []struct {
		name   string
		mutate func(*RegisterForm)
		field  string
	}{
		{"short first name", func(f *RegisterForm) { f.FirstName = "Al" }, "first_name"},
		{"short last name", func(f *RegisterForm) { f.LastName = "Li" }, "last_name"},
		{"long first name", func(f *RegisterForm) { f.FirstName = strings.Repeat("a", MaxPersonNameLength+1) }, "first_name"},
		{"bad email", func(f *RegisterForm) { f.Email = "alice" }, "email"},
		{"bad username", func(f *RegisterForm) { f.Username = "alice smith" }, "username"},
		{"mismatch", func(f *RegisterForm) { f.Password2 = "something-else-42" }, "password2"},
		{"missing confirmation", func(f *RegisterForm) { f.Password2 = "" }, "password2"},
		{"missing password", func(f *RegisterForm) { f.Password1 = "" }, "password1"},
		{"weak password", func(f *RegisterForm) { f.Password1, f.Password2 = "password", "password" }, "password1"},
	}

	form := valid()
	assert.False(t, form.Validate().Any())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid()
			tt.mutate(&form)
			errs := form.Validate()
			assert.True(t, errs.Has(tt.field), errs.Error())
		})
	}
}

func TestProfileForm_PasswordOptional(t *testing.T) {
	form := ProfileForm{FirstName: "Al", LastName: "Li", Email: "al@example.com", Username: "al"}
	assert.False(t, form.Validate().Any())
	assert.False(t, form.ChangesPassword())

	form.Password1 = "tangerine-Rocket-42"
	errs := form.Validate()
	assert.True(t, errs.Has("password2"))

	form.Password2 = "tangerine-Rocket-42"
	assert.False(t, form.Validate().Any())
	assert.True(t, form.ChangesPassword())

	form.Password1, form.Password2 = "short", "short"
	assert.True(t, form.Validate().Has("password1"))
}

func TestProfileForm_NameBounds(t *testing.T) {
	form := ProfileForm{FirstName: "A", LastName: strings.Repeat("b", 31), Email: "al@example.com", Username: "al"}
	errs := form.Validate()
	assert.True(t, errs.Has("first_name"))
	assert.True(t, errs.Has("last_name"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("tangerine-Rocket-42", "alice", "Alice", "Liddell", "alice@example.com"))
	assert.Error(t, ValidatePassword("short1"))
	assert.Error(t, ValidatePassword(strings.Repeat("a", MaxPasswordLength+1)))
	assert.Error(t, ValidatePassword("Password"))
	assert.Error(t, ValidatePassword("1234598765"))
	assert.Error(t, ValidatePassword("aliceliddell", "alice", "Alice", "Liddell"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("jane@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("Jane <jane@example.com>"))
	assert.Error(t, ValidateEmail(strings.Repeat("a", 250)+"@x.io"))
}

func TestErrors(t *testing.T) {
	errs := Errors{}
	assert.False(t, errs.Any())

	errs.Add("b", "second")
	errs.Add("a", "first")
	errs.Add("a", "again")

	assert.True(t, errs.Any())
	assert.Equal(t, "first", errs.First("a"))
	assert.Equal(t, []string{"first", "again"}, errs.Get("a"))
	assert.Equal(t, "", errs.First("c"))
	assert.Equal(t, "a: first, again; b: second", errs.Error())
}

func TestValidateImage(t *testing.T) {
	contentType, err := ValidateImage(testutil.FileHeader(t, "picture", "me.png", testutil.PNG), PictureRules)
	require.NoError(t, err)
	assert.Equal(t, "image/png", contentType)

	_, err = ValidateImage(testutil.FileHeader(t, "picture", "me.png", []byte("plain text, not an image")), PictureRules)
	assert.Error(t, err)

	_, err = ValidateImage(testutil.FileHeader(t, "picture", "me.exe", testutil.PNG), PictureRules)
	assert.Error(t, err)

	small := PictureRules
	small.MaxSize = 4
	_, err = ValidateImage(testutil.FileHeader(t, "picture", "me.png", testutil.PNG), small)
	assert.Error(t, err)
}
