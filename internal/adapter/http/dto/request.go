package dto

import (
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
)

// CreateUserRequest represents a request to create a user and provision
// their wallet.
type CreateUserRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Tier     string `json:"tier"`
	Role     string `json:"role,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateUserRequest) ToUseCaseInput() usecase.CreateUserInput {
	return usecase.CreateUserInput{
		Email:    r.Email,
		Name:     r.Name,
		Password: r.Password,
		Tier:     domain.Tier(r.Tier),
		Role:     domain.Role(r.Role),
	}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RecordEntryRequest represents a request to record a ledger entry.
// Amount is in cents and must be non-zero; negative amounts are debits.
type RecordEntryRequest struct {
	Kind        string  `json:"kind"`
	Amount      int64   `json:"amount"`
	Description string  `json:"description"`
	ReferenceID *string `json:"reference_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput(userID string, adminID *string) usecase.RecordInput {
	return usecase.RecordInput{
		UserID:      userID,
		Kind:        domain.Kind(r.Kind),
		Amount:      r.Amount,
		Description: r.Description,
		ReferenceID: r.ReferenceID,
		AdminID:     adminID,
	}
}

// ResetRequest represents a request to reset a wallet balance.
type ResetRequest struct {
	NewBalance int64 `json:"new_balance"`
}

// PaginationRequest represents pagination parameters.
type PaginationRequest struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}
