package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tradesim/walletd/internal/adapter/http/dto"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
)

// UserService defines the behavior needed by UserHandler.
type UserService interface {
	CreateUser(ctx context.Context, input usecase.CreateUserInput) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// UserHandler handles user-related HTTP requests.
type UserHandler struct {
	userUC   UserService
	walletUC WalletService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userUC UserService, walletUC WalletService) *UserHandler {
	return &UserHandler{userUC: userUC, walletUC: walletUC}
}

// Create registers a user and provisions their wallet in one step.
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	user, err := h.userUC.CreateUser(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create user", err.Error())
		return
	}

	account, err := h.walletUC.GetAccount(r.Context(), user.ID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to load provisioned wallet", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreateUserResponse{
		User:    dto.UserFromDomain(user),
		Account: dto.AccountFromDomain(account),
	})
}

// Get retrieves a user by ID.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing user ID", "")
		return
	}

	user, err := h.userUC.GetUser(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get user", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UserFromDomain(user))
}

// List lists users, newest first.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	users, err := h.userUC.ListUsers(r.Context(), limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list users", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.UsersFromDomain(users))
}
