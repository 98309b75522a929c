package handlers

import (
	"net/http"

	"github.com/taskhive/taskhive/internal/middleware"
)

// Routes wires every endpoint onto a fresh mux. Method-qualified patterns
// give a free 405 on mismatched verbs.
func Routes(authH *AuthHandler, taskH *TaskHandler, dashH *DashboardHandler, healthH *HealthHandler, authMW *middleware.AuthMiddleware) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", healthH.Root)
	mux.HandleFunc("GET /health", healthH.Health)

	mux.HandleFunc("POST /api/auth/signup", authH.Signup)
	mux.HandleFunc("POST /api/auth/login", authH.Login)
	mux.HandleFunc("POST /api/auth/logout", authH.Logout)
	mux.HandleFunc("GET /api/auth/me", authMW.RequireAuth(authH.Me))

	mux.HandleFunc("POST /api/tasks", authMW.RequireAuth(taskH.Create))
	mux.HandleFunc("GET /api/tasks", authMW.RequireAuth(taskH.List))
	mux.HandleFunc("GET /api/tasks/{id}", authMW.RequireAuth(taskH.Get))
	mux.HandleFunc("PUT /api/tasks/{id}", authMW.RequireAuth(taskH.Update))
	mux.HandleFunc("PATCH /api/tasks/{id}", authMW.RequireAuth(taskH.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", authMW.RequireAuth(taskH.Delete))
	mux.HandleFunc("PATCH /api/tasks/{id}/complete", authMW.RequireAuth(taskH.Complete))
	// POST kept as an alias for clients that cannot send PATCH.
	mux.HandleFunc("POST /api/tasks/{id}/complete", authMW.RequireAuth(taskH.Complete))

	mux.HandleFunc("GET /api/dashboard/stats", authMW.RequireAuth(dashH.Stats))

	return mux
}
