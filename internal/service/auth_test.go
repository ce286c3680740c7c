package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/contacts/internal/validation"
)

func registerForm() *validation.RegisterForm {
	return &validation.RegisterForm{
		FirstName: "Alice",
		LastName:  "Liddell",
		Email:     "alice@example.com",
		Username:  "alice",
		Password1: "tangerine-Rocket-42",
		Password2: "tangerine-Rocket-42",
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "tangerine-Rocket-42", user.PasswordHash)

	got, err := f.auth.Login(ctx, "alice", "tangerine-Rocket-42")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.auth.Login(ctx, "alice", "wrong-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "nobody", "tangerine-Rocket-42")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_RegisterDuplicates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, registerForm())
	require.NoError(t, err)

	form := registerForm()
	form.Username = "alice2"
	form.Email = "ALICE@example.com"
	_, err = f.auth.Register(ctx, form)
	var errs validation.Errors
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("email"))
	assert.False(t, errs.Has("username"))

	form = registerForm()
	form.Email = "other@example.com"
	_, err = f.auth.Register(ctx, form)
	require.True(t, errors.As(err, &errs))
	assert.True(t, errs.Has("username"))
}

func TestAuthService_SessionRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	user := f.user(t, "alice")

	rec := httptest.NewRecorder()
	require.NoError(t, f.auth.StartSession(rec, user))

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	got, err := f.auth.Authenticate(ctx, cookies[0].Value)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = f.auth.Authenticate(ctx, cookies[0].Value+"x")
	assert.Error(t, err)

	other := NewAuthService(f.users, "other-secret", false, time.Hour)
	_, err = other.Authenticate(ctx, cookies[0].Value)
	assert.Error(t, err)
}

func TestAuthService_RejectsExpiredAndForeignTokens(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	expired := NewAuthService(f.users, "test-secret", false, -time.Minute)
	token, err := expired.GenerateJWT(f.user(t, "alice"))
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, token)
	assert.Error(t, err)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": "1"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = f.auth.Authenticate(ctx, unsigned)
	assert.Error(t, err)
}
