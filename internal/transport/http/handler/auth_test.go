package handler_test

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"goblog/testutil"
)

func TestTopPageIsPublic(t *testing.T) {
	_, router := testutil.SetupTestApp(t)

	w := testutil.Get(router, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSignupRedirectsToLogin(t *testing.T) {
	_, router := testutil.SetupTestApp(t)

	w := testutil.PostForm(router, "/signup", url.Values{
		"username": {"alice"},
		"password": {"password123"},
	}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestSignupDuplicateUsernameRerendersForm(t *testing.T) {
	_, router := testutil.SetupTestApp(t)
	testutil.Signup(t, router, "alice", "password123")

	w := testutil.PostForm(router, "/signup", url.Values{
		"username": {"alice"},
		"password": {"different"},
	}, nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already taken")
}

func TestLoginEstablishesSession(t *testing.T) {
	_, router := testutil.SetupTestApp(t)
	cookies := testutil.SignupAndLogin(t, router, "alice", "password123")

	w := testutil.Get(router, "/index", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginWrongPasswordRerendersWithoutSession(t *testing.T) {
	_, router := testutil.SetupTestApp(t)
	testutil.Signup(t, router, "alice", "password123")

	w := testutil.PostForm(router, "/login", url.Values{
		"username": {"alice"},
		"password": {"wrong"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")
	// The submitted fields are not echoed back into the re-rendered form.
	assert.NotContains(t, w.Body.String(), "wrong")

	// Whatever cookie came back must not grant access.
	w = testutil.Get(router, "/index", w.Result().Cookies())
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginUnknownUsernameFails(t *testing.T) {
	_, router := testutil.SetupTestApp(t)

	w := testutil.PostForm(router, "/login", url.Values{
		"username": {"nobody"},
		"password": {"whatever"},
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Incorrect username or password")
}

func TestLogoutClearsSession(t *testing.T) {
	_, router := testutil.SetupTestApp(t)
	cookies := testutil.SignupAndLogin(t, router, "alice", "password123")

	w := testutil.Get(router, "/logout", cookies)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	cleared := w.Result().Cookies()

	for _, path := range []string{"/index", "/create", "/1/update", "/1/delete"} {
		w := testutil.Get(router, path, cleared)
		assert.Equal(t, http.StatusFound, w.Code, "expected redirect for %s", path)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	}

	// A fresh login regains access.
	cookies = testutil.Login(t, router, "alice", "password123")
	w = testutil.Get(router, "/index", cookies)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtectedRoutesRequireLogin(t *testing.T) {
	_, router := testutil.SetupTestApp(t)

	for _, path := range []string{"/index", "/logout", "/create", "/1/update", "/1/delete", "/activity"} {
		w := testutil.Get(router, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, "expected redirect for %s", path)
		assert.Equal(t, "/login", w.Header().Get("Location"))
	}
}
