package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tradesim/walletd/internal/adapter/http/dto"
	"github.com/tradesim/walletd/internal/adapter/http/middleware"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/auth"
	"github.com/tradesim/walletd/internal/usecase"
)

// Authenticator verifies user credentials.
type Authenticator interface {
	Authenticate(ctx context.Context, input usecase.AuthenticateInput) (*domain.User, error)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	users      Authenticator
	jwtManager *auth.JWTManager
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(users Authenticator, jwtManager *auth.JWTManager) *AuthHandler {
	return &AuthHandler{
		users:      users,
		jwtManager: jwtManager,
	}
}

// Login exchanges credentials for a JWT.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.users.Authenticate(r.Context(), usecase.AuthenticateInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid credentials", "")
		return
	}

	token, err := h.jwtManager.Generate(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to generate token", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.LoginResponse{
		Token: token,
		User:  dto.UserFromDomain(user),
	})
}

// GetCurrentUser returns the authenticated user from the request context.
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", "")
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}
