package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("tangerine-Rocket-42")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)

	assert.NoError(t, ComparePassword("tangerine-Rocket-42", hash))
	assert.ErrorIs(t, ComparePassword("tangerine-rocket-42", hash), bcrypt.ErrMismatchedHashAndPassword)
}

func TestUserService_ProfilePasswordUsesSharedHash(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)

	form := profileForm()
	form.Password1 = "brand-new-Secret-7"
	form.Password2 = "brand-new-Secret-7"
	require.NoError(t, f.profiles.UpdateProfile(ctx, user, form))

	stored, err := f.profiles.ByID(ctx, user.ID)
	require.NoError(t, err)
	cost, err := bcrypt.Cost([]byte(stored.PasswordHash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.DefaultCost, cost)
	assert.NoError(t, ComparePassword("brand-new-Secret-7", stored.PasswordHash))
}
