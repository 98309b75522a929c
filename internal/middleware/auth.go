package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/taskhive/taskhive/internal/logger"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
	"github.com/taskhive/taskhive/internal/service"
)

type contextKey string

const userKey contextKey = "user"

type AuthMiddleware struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthMiddleware(users *service.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		users: users,
		log:   logger.New("auth-middleware"),
	}
}

// RequireAuth resolves the bearer token to an account and stores it in the
// request context. With authentication disabled the resolution still runs,
// it just always lands on the shared anonymous account.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := extractBearer(r)

		user, err := m.users.CurrentUser(r.Context(), token)
		if err != nil {
			m.log.Debug("Rejected request: %v", err)
			w.Header().Set("WWW-Authenticate", "Bearer")
			writeJSONError(w, http.StatusUnauthorized, "unauthenticated", "invalid or missing credentials")
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

func extractBearer(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// UserFrom returns the authenticated account stored by RequireAuth, or nil
// when the handler runs outside the auth chain.
func UserFrom(ctx context.Context) *usermodel.User {
	if u, ok := ctx.Value(userKey).(*usermodel.User); ok {
		return u
	}
	return nil
}
