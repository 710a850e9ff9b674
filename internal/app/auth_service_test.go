package app_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"goblog/internal/app"
	"goblog/internal/repository"
	"goblog/testutil"
)

func newAuthService(t *testing.T) (*app.AuthService, *repository.UserRepository) {
	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	return app.NewAuthService(userRepo, bcrypt.MinCost), userRepo
}

func TestSignupStoresHashNotPlaintext(t *testing.T) {
	svc, userRepo := newAuthService(t)

	user, err := svc.Signup(app.SignupInput{Username: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotZero(t, user.ID)

	stored, err := userRepo.GetByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEqual(t, "s3cret-pass", stored.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret-pass")))
}

func TestSignupThenLoginSucceeds(t *testing.T) {
	svc, _ := newAuthService(t)

	for _, username := range []string{"alice", "bob", "carol"} {
		_, err := svc.Signup(app.SignupInput{Username: username, Password: "pw-" + username})
		require.NoError(t, err)
	}

	for _, username := range []string{"alice", "bob", "carol"} {
		user, err := svc.Login(app.LoginInput{Username: username, Password: "pw-" + username})
		require.NoError(t, err)
		assert.Equal(t, username, user.Username)
	}
}

func TestSignupDuplicateUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(app.SignupInput{Username: "alice", Password: "first"})
	require.NoError(t, err)

	_, err = svc.Signup(app.SignupInput{Username: "alice", Password: "second"})
	assert.ErrorIs(t, err, app.ErrDuplicateUsername)

	// The original credentials still work after the rejected attempt.
	_, err = svc.Login(app.LoginInput{Username: "alice", Password: "first"})
	assert.NoError(t, err)
}

func TestSignupValidation(t *testing.T) {
	svc, _ := newAuthService(t)

	cases := []struct {
		name  string
		input app.SignupInput
	}{
		{"empty username", app.SignupInput{Username: "", Password: "pw"}},
		{"whitespace username", app.SignupInput{Username: "   ", Password: "pw"}},
		{"username too long", app.SignupInput{Username: strings.Repeat("a", 31), Password: "pw"}},
		{"empty password", app.SignupInput{Username: "alice", Password: ""}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Signup(tc.input)
			assert.ErrorIs(t, err, app.ErrValidation)
		})
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Signup(app.SignupInput{Username: "alice", Password: "right"})
	require.NoError(t, err)

	_, err = svc.Login(app.LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)
}

func TestLoginUnknownUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	_, err := svc.Login(app.LoginInput{Username: "nobody", Password: "whatever"})
	assert.ErrorIs(t, err, app.ErrInvalidCredentials)
}
