package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/taskhive/taskhive/internal/apperr"
	"github.com/taskhive/taskhive/internal/auth"
	"github.com/taskhive/taskhive/internal/config"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
	"github.com/taskhive/taskhive/internal/storage"
)

const minPasswordLen = 8

// anonymousEmail identifies the single shared account used when
// authentication is disabled.
const anonymousEmail = "anonymous@example.com"

// LoginResult carries a freshly minted token alongside the account it
// belongs to.
type LoginResult struct {
	Token     string            `json:"token"`
	TokenType string            `json:"token_type"`
	ExpiresAt time.Time         `json:"expires_at"`
	User      usermodel.Summary `json:"user"`
}

type UserService struct {
	store      storage.UserStore
	jwtManager *auth.JWTManager
	authMode   config.AuthMode
	tokenTTL   time.Duration
}

func NewUserService(store storage.UserStore, jwtManager *auth.JWTManager, authMode config.AuthMode, tokenTTL time.Duration) *UserService {
	return &UserService{
		store:      store,
		jwtManager: jwtManager,
		authMode:   authMode,
		tokenTTL:   tokenTTL,
	}
}

func (s *UserService) Signup(ctx context.Context, req *usermodel.CreateUserRequest) (*usermodel.User, error) {
	// Emails are case-sensitive identifiers, stored exactly as given.
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	if req.Email == "" {
		return nil, apperr.Validationf("email is required")
	}
	if !strings.Contains(req.Email, "@") {
		return nil, apperr.Validationf("email is not valid")
	}
	if req.Name == "" {
		return nil, apperr.Validationf("name is required")
	}
	if len(req.Password) < minPasswordLen {
		return nil, apperr.Validationf("password must be at least %d characters", minPasswordLen)
	}

	existing, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperr.ErrConflict)
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, req, passwordHash)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Login(ctx context.Context, req *usermodel.LoginRequest) (*LoginResult, error) {
	req.Email = strings.TrimSpace(req.Email)

	if req.Email == "" {
		return nil, apperr.Validationf("email is required")
	}
	if req.Password == "" {
		return nil, apperr.Validationf("password is required")
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	// Unknown email and wrong password produce the same error.
	if user == nil || !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, fmt.Errorf("%w: invalid email or password", apperr.ErrUnauthenticated)
	}

	token, expiresAt, err := s.jwtManager.GenerateTokenWithTTL(user.ID, user.Email, s.tokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &LoginResult{
		Token:     token,
		TokenType: "bearer",
		ExpiresAt: expiresAt,
		User:      user.Summary(),
	}, nil
}

// CurrentUser resolves a bearer token to the account it names. Verification
// failures and vanished accounts both surface as ErrUnauthenticated. With
// authentication disabled the token is ignored and the shared anonymous
// account is returned, created on first use.
func (s *UserService) CurrentUser(ctx context.Context, token string) (*usermodel.User, error) {
	if s.authMode == config.AuthDisabled {
		return s.anonymousUser(ctx)
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid or expired token", apperr.ErrUnauthenticated)
	}

	user, err := s.store.GetUserByEmail(ctx, claims.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: account no longer exists", apperr.ErrUnauthenticated)
	}

	return user, nil
}

func (s *UserService) anonymousUser(ctx context.Context) (*usermodel.User, error) {
	user, err := s.store.GetUserByEmail(ctx, anonymousEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to get anonymous user: %w", err)
	}
	if user != nil {
		return user, nil
	}

	user, err = s.store.CreateUser(ctx, &usermodel.CreateUserRequest{
		Email: anonymousEmail,
		Name:  "Anonymous",
	}, "")
	if err != nil {
		// Lost a race with a concurrent request; the account exists now.
		existing, getErr := s.store.GetUserByEmail(ctx, anonymousEmail)
		if getErr == nil && existing != nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to provision anonymous user: %w", err)
	}

	return user, nil
}
