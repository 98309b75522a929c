package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/middleware"
	usermodel "github.com/taskhive/taskhive/internal/models/user"
	"github.com/taskhive/taskhive/internal/service"
)

type AuthHandler struct {
	users *service.UserService
	log   *logger.Logger
}

func NewAuthHandler(users *service.UserService) *AuthHandler {
	return &AuthHandler{
		users: users,
		log:   logger.New("auth-handler"),
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req usermodel.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	user, err := h.users.Signup(r.Context(), &req)
	if err != nil {
		h.log.Debug("Signup rejected: %v", err)
		respondError(w, err)
		return
	}

	h.log.Info("User registered: %s", user.Email)
	respondJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req usermodel.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	res, err := h.users.Login(r.Context(), &req)
	if err != nil {
		h.log.Debug("Login rejected for %s: %v", req.Email, err)
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, res)
}

// Logout exists for client symmetry. Tokens are stateless, so there is
// nothing to revoke server-side; clients discard the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())
	if user == nil {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Error: "unauthenticated", Message: "missing credentials"})
		return
	}

	respondJSON(w, http.StatusOK, user)
}
