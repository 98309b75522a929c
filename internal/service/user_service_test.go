package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskhive/taskhive/internal/apperr"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/config"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
	"github.com/taskhive/taskhive/internal/storage"
)

func newUserService(mode config.AuthMode) (*UserService, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute)
	return NewUserService(store, jwtManager, mode, 30*time.Minute), store
}

func TestUserService_Signup(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)

	user, err := svc.Signup(context.Background(), &usermodel.CreateUserRequest{
		Email:    "Alice@Example.COM",
		Name:     "  Alice  ",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice@Example.COM", user.Email)
	assert.Equal(t, "Alice", user.Name)
	assert.NotEmpty(t, user.ID)
	assert.True(t, user.IsActive)
}

func TestUserService_Signup_Validation(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)
	ctx := context.Background()

	tests := []struct {
		name string
		req  usermodel.CreateUserRequest
	}{
		{"missing email", usermodel.CreateUserRequest{Name: "A", Password: "password123"}},
		{"bad email", usermodel.CreateUserRequest{Email: "not-an-email", Name: "A", Password: "password123"}},
		{"missing name", usermodel.CreateUserRequest{Email: "a@b.com", Password: "password123"}},
		{"short password", usermodel.CreateUserRequest{Email: "a@b.com", Name: "A", Password: "short"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Signup(ctx, &tt.req)
			assert.True(t, errors.Is(err, apperr.ErrValidation))
		})
	}
}

func TestUserService_Signup_DuplicateEmail(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)
	ctx := context.Background()

	req := usermodel.CreateUserRequest{Email: "dup@example.com", Name: "A", Password: "password123"}
	_, err := svc.Signup(ctx, &req)
	require.NoError(t, err)

	req2 := usermodel.CreateUserRequest{Email: "dup@example.com", Name: "B", Password: "password456"}
	_, err = svc.Signup(ctx, &req2)
	assert.True(t, errors.Is(err, apperr.ErrConflict))
}

func TestUserService_EmailsAreCaseSensitive(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)
	ctx := context.Background()

	lower, err := svc.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "case@example.com", Name: "Lower", Password: "password123",
	})
	require.NoError(t, err)

	// A case-variant email is a distinct account, not a conflict.
	upper, err := svc.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "CASE@example.com", Name: "Upper", Password: "password456",
	})
	require.NoError(t, err)
	assert.NotEqual(t, lower.ID, upper.ID)

	res, err := svc.Login(ctx, &usermodel.LoginRequest{
		Email: "CASE@example.com", Password: "password456",
	})
	require.NoError(t, err)
	assert.Equal(t, "CASE@example.com", res.User.Email)

	// The lowercase account keeps its own credentials.
	_, err = svc.Login(ctx, &usermodel.LoginRequest{
		Email: "case@example.com", Password: "password456",
	})
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestUserService_Login(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "login@example.com", Name: "L", Password: "password123",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, &usermodel.LoginRequest{
		Email: "login@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "bearer", res.TokenType)
	assert.Equal(t, "login@example.com", res.User.Email)
	assert.True(t, res.ExpiresAt.After(time.Now()))
}

func TestUserService_Login_BadCredentials(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "login@example.com", Name: "L", Password: "password123",
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, &usermodel.LoginRequest{Email: "login@example.com", Password: "wrong-pass"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))

	_, err = svc.Login(ctx, &usermodel.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestUserService_CurrentUser(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)
	ctx := context.Background()

	_, err := svc.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "me@example.com", Name: "Me", Password: "password123",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, &usermodel.LoginRequest{Email: "me@example.com", Password: "password123"})
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, res.Token)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", user.Email)
}

func TestUserService_CurrentUser_BadToken(t *testing.T) {
	svc, _ := newUserService(config.AuthEnforced)

	_, err := svc.CurrentUser(context.Background(), "not.a.token")
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestUserService_CurrentUser_ExpiredToken(t *testing.T) {
	store := storage.NewMemoryStore()
	jwtManager := auth.NewJWTManager("test-secret", 15*time.Minute)
	svc := NewUserService(store, jwtManager, config.AuthEnforced, 30*time.Minute)
	ctx := context.Background()

	user, err := svc.Signup(ctx, &usermodel.CreateUserRequest{
		Email: "exp@example.com", Name: "E", Password: "password123",
	})
	require.NoError(t, err)

	token, _, err := jwtManager.GenerateTokenWithTTL(user.ID, user.Email, -time.Minute)
	require.NoError(t, err)

	_, err = svc.CurrentUser(ctx, token)
	assert.True(t, errors.Is(err, apperr.ErrUnauthenticated))
}

func TestUserService_CurrentUser_AuthDisabled(t *testing.T) {
	svc, _ := newUserService(config.AuthDisabled)
	ctx := context.Background()

	first, err := svc.CurrentUser(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "anonymous@example.com", first.Email)

	// Same account on every request, regardless of the token.
	second, err := svc.CurrentUser(ctx, "garbage token")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
