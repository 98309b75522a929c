package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/taskhive/taskhive/internal/logger"
)

// Recovery turns a handler panic into a 500 response instead of tearing down
// the connection.
func Recovery(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.Error("Panic recovered: %v\n%s", err, debug.Stack())
					writeJSONError(w, http.StatusInternalServerError, "internal", "internal server error")
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
