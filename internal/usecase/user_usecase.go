package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/tradesim/walletd/internal/domain"
)

// WalletProvisioner creates the wallet for a new user.
type WalletProvisioner interface {
	Provision(ctx context.Context, userID string, tier domain.Tier) (*domain.Account, error)
}

// UserUseCase handles user management and drives wallet provisioning after a
// user is durably created. Provisioning is an explicit call, not a storage
// side effect, so its failure path is visible here.
type UserUseCase struct {
	userRepo UserRepository
	wallets  WalletProvisioner
	idGen    IDGenerator
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(userRepo UserRepository, wallets WalletProvisioner, idGen IDGenerator) *UserUseCase {
	return &UserUseCase{
		userRepo: userRepo,
		wallets:  wallets,
		idGen:    idGen,
	}
}

// CreateUserInput represents input for creating a user
type CreateUserInput struct {
	Email    string
	Name     string
	Password string
	Tier     domain.Tier
	Role     domain.Role
}

// CreateUser creates a new user and provisions their wallet.
func (uc *UserUseCase) CreateUser(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	if err := domain.ValidateEmail(input.Email); err != nil {
		return nil, err
	}

	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	if !input.Tier.IsValid() {
		return nil, domain.ErrInvalidTier
	}

	if input.Role == "" {
		input.Role = domain.RoleViewer
	}
	if !input.Role.IsValid() {
		return nil, errors.New("invalid role")
	}

	existing, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	hashedPassword, err := hashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		ID:             uc.idGen.Generate(),
		Email:          input.Email,
		Name:           input.Name,
		HashedPassword: hashedPassword,
		Tier:           input.Tier,
		Role:           input.Role,
		Active:         true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	// The user exists durably at this point. A provisioning failure leaves
	// them without a wallet and must be surfaced for operator follow-up.
	if _, err := uc.wallets.Provision(ctx, user.ID, user.Tier); err != nil {
		return nil, fmt.Errorf("user %s created but wallet provisioning failed: %w", user.ID, err)
	}

	user.HashedPassword = ""
	return user, nil
}

// AuthenticateInput represents authentication input
type AuthenticateInput struct {
	Email    string
	Password string
}

// Authenticate verifies user credentials
func (uc *UserUseCase) Authenticate(ctx context.Context, input AuthenticateInput) (*domain.User, error) {
	user, err := uc.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	if !user.Active {
		return nil, domain.ErrUnauthorized
	}

	if err := verifyPassword(user.HashedPassword, input.Password); err != nil {
		return nil, domain.ErrUnauthorized
	}

	user.HashedPassword = ""
	return user, nil
}

// GetUser retrieves a user by ID
func (uc *UserUseCase) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.HashedPassword = ""
	return user, nil
}

// ListUsers lists users with pagination
func (uc *UserUseCase) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	limit, offset = domain.ValidatePagination(limit, offset)

	users, err := uc.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	for _, user := range users {
		user.HashedPassword = ""
	}

	return users, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func verifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
