// Package testutil provisions a throwaway MySQL-backed application for
// handler and service tests.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"goblog/internal/bootstrap"
	"goblog/internal/config"
	"goblog/internal/model"
	httptransport "goblog/internal/transport/http"
)

// SetupTestDB opens the test database named by TEST_MYSQL_DSN (optionally
// loaded from .env at the repo root), migrates the schema and truncates all
// tables. Tests are skipped when no test database is reachable.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	_ = godotenv.Load(filepath.Join(repoRoot(), ".env"))

	dsn := os.Getenv("TEST_MYSQL_DSN")
	if dsn == "" {
		t.Skip("TEST_MYSQL_DSN not set; skipping database-backed test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("mysql test database unavailable: %v", err)
	}

	if err := db.AutoMigrate(&model.User{}, &model.Post{}, &model.Activity{}); err != nil {
		t.Fatalf("auto migrate test tables failed: %v", err)
	}

	for _, table := range []string{"activities", "posts", "users"} {
		if err := db.Exec("TRUNCATE TABLE " + table).Error; err != nil {
			t.Fatalf("truncate %s failed: %v", table, err)
		}
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// SetupTestApp returns the test database plus a fully wired router. Redis and
// RabbitMQ stay disconnected; the cache and audit trail are optional by
// design.
func SetupTestApp(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()

	db := SetupTestDB(t)

	gin.SetMode(gin.TestMode)
	cfg := TestConfig()
	app := &bootstrap.App{
		Config: cfg,
		MySQL:  db,
	}
	return db, httptransport.NewRouter(app)
}

func TestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:         "goblog-test",
			Env:          "test",
			GinMode:      gin.TestMode,
			TemplateGlob: filepath.Join(repoRoot(), "web", "templates", "*.html"),
		},
		Auth: config.AuthConfig{
			SessionSecret:    "test-session-secret",
			SessionCookie:    "goblog_session",
			SessionMaxAgeSec: 3600,
			BcryptCost:       4, // bcrypt.MinCost keeps the suite fast
		},
	}
}

// Signup registers a user through the HTTP surface.
func Signup(t *testing.T, router *gin.Engine, username, password string) {
	t.Helper()

	w := PostForm(router, "/signup", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code, "signup failed: %s", w.Body.String())
	require.Equal(t, "/login", w.Header().Get("Location"))
}

// Login authenticates through the HTTP surface and returns the session
// cookies to replay on subsequent requests.
func Login(t *testing.T, router *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()

	w := PostForm(router, "/login", url.Values{
		"username": {username},
		"password": {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code, "login failed: %s", w.Body.String())
	require.Equal(t, "/index", w.Header().Get("Location"))

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies, "login did not set a session cookie")
	return cookies
}

// SignupAndLogin is the usual fixture: a fresh user with a live session.
func SignupAndLogin(t *testing.T, router *gin.Engine, username, password string) []*http.Cookie {
	t.Helper()
	Signup(t, router, username, password)
	return Login(t, router, username, password)
}

func Get(router *gin.Engine, path string, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func PostForm(router *gin.Engine, path string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func repoRoot() string {
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		panic(fmt.Errorf("cannot resolve testutil source path"))
	}
	return filepath.Dir(filepath.Dir(thisFile))
}
