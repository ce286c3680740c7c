package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/validation"
)

func profileForm() *validation.ProfileForm {
	return &validation.ProfileForm{
		FirstName: "Alicia",
		LastName:  "Liddell",
		Email:     "alice@example.com",
		Username:  "alice",
	}
}

func TestUserService_UpdateProfileKeepsPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)
	hash := user.PasswordHash

	require.NoError(t, f.profiles.UpdateProfile(ctx, user, profileForm()))

	stored, err := f.profiles.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alicia", stored.FirstName)
	assert.Equal(t, hash, stored.PasswordHash)
}

func TestUserService_UpdateProfileMismatchLeavesHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)
	hash := user.PasswordHash

	form := profileForm()
	form.Password1 = "brand-new-Secret-7"
	form.Password2 = "different-Secret-7"
	err = f.profiles.UpdateProfile(ctx, user, form)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("password2"))

	stored, err := f.profiles.ByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, hash, stored.PasswordHash)
	assert.Equal(t, "Alice", stored.FirstName)
}

func TestUserService_UpdateProfileChangesPassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)

	form := profileForm()
	form.Password1 = "brand-new-Secret-7"
	form.Password2 = "brand-new-Secret-7"
	require.NoError(t, f.profiles.UpdateProfile(ctx, user, form))

	_, err = f.auth.Login(ctx, "alice", "tangerine-Rocket-42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "alice", "brand-new-Secret-7")
	assert.NoError(t, err)
}

func TestUserService_UpdateProfileEmailTaken(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.user(t, "bob")
	user, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)

	form := profileForm()
	form.Email = "bob@example.com"
	err = f.profiles.UpdateProfile(ctx, user, form)

	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("email"))
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserService_DeleteByUsername(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	alice := f.user(t, "alice")
	contact, err := f.contacts.Create(ctx, alice.ID, contactForm("Jane"), nil)
	require.NoError(t, err)

	require.NoError(t, f.profiles.DeleteByUsername(ctx, "alice"))

	got, err := f.contacts.Detail(ctx, contact.ID)
	require.NoError(t, err)
	assert.Nil(t, got.OwnerID)
}
