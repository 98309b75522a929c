package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/config"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
	"github.com/taskhive/taskhive/internal/service"
	"github.com/taskhive/taskhive/internal/storage"
)

func setupAuth(t *testing.T, mode config.AuthMode) (*AuthMiddleware, *service.UserService) {
	t.Helper()
	store := storage.NewMemoryStore()
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute)
	users := service.NewUserService(store, jwtManager, mode, 30*time.Minute)
	return NewAuthMiddleware(users), users
}

func loginToken(t *testing.T, users *service.UserService) string {
	t.Helper()
	ctx := context.Background()
	_, err := users.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "mw@example.com", Name: "MW", Password: "password123",
	})
	require.NoError(t, err)
	res, err := users.Login(ctx, &usermodel.LoginRequest{
		Email: "mw@example.com", Password: "password123",
	})
	require.NoError(t, err)
	return res.Token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	mw, users := setupAuth(t, config.AuthEnforced)
	token := loginToken(t, users)

	var got *usermodel.User
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		got = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "mw@example.com", got.Email)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	mw, _ := setupAuth(t, config.AuthEnforced)

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Bearer", rec.Header().Get("WWW-Authenticate"))
	assert.Contains(t, rec.Body.String(), "unauthenticated")
}

func TestRequireAuth_GarbageToken(t *testing.T) {
	mw, _ := setupAuth(t, config.AuthEnforced)

	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	})

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAuth_Disabled(t *testing.T) {
	mw, _ := setupAuth(t, config.AuthDisabled)

	var got *usermodel.User
	handler := mw.RequireAuth(func(w http.ResponseWriter, r *http.Request) {
		got = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	// No Authorization header at all.
	req := httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	rec := httptest.NewRecorder()
	handler(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, got)
	assert.Equal(t, "anonymous@example.com", got.Email)
}

func TestUserFrom_Absent(t *testing.T) {
	assert.Nil(t, UserFrom(context.Background()))
}
