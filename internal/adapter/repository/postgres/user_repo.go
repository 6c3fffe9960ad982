package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/postgres/generated"
)

// UserRepository implements usecase.UserRepository.
type UserRepository struct {
	queries *generated.Queries
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{queries: generated.New(pool)}
}

// Create inserts a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.queries.CreateUser(ctx, generated.CreateUserParams{
		ID:             user.ID,
		Email:          user.Email,
		Name:           user.Name,
		HashedPassword: user.HashedPassword,
		Tier:           string(user.Tier),
		Role:           string(user.Role),
		Active:         user.Active,
		CreatedAt:      timeToPgTimestamptz(user.CreatedAt),
		UpdatedAt:      timeToPgTimestamptz(user.UpdatedAt),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrEmailTaken
		}

		return err
	}

	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row, err := r.queries.GetUserByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return rowToUser(row), nil
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row, err := r.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}

		return nil, err
	}

	return rowToUser(row), nil
}

// Update writes the mutable user fields.
func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	return r.queries.UpdateUser(ctx, generated.UpdateUserParams{
		ID:             user.ID,
		Name:           user.Name,
		Tier:           string(user.Tier),
		Role:           string(user.Role),
		Active:         user.Active,
		HashedPassword: user.HashedPassword,
		UpdatedAt:      timeToPgTimestamptz(user.UpdatedAt),
	})
}

// List returns users, newest first.
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	rows, err := r.queries.ListUsers(ctx, generated.ListUsersParams{
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	users := make([]*domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, rowToUser(row))
	}

	return users, nil
}

func rowToUser(row generated.User) *domain.User {
	return &domain.User{
		ID:             row.ID,
		Email:          row.Email,
		Name:           row.Name,
		HashedPassword: row.HashedPassword,
		Tier:           domain.Tier(row.Tier),
		Role:           domain.Role(row.Role),
		Active:         row.Active,
		CreatedAt:      row.CreatedAt.Time,
		UpdatedAt:      row.UpdatedAt.Time,
	}
}
