package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/postgres/generated"
	"github.com/tradesim/walletd/internal/usecase"
)

// PostgreSQL error codes mapped to domain errors.
const (
	pgErrUniqueViolation = "23505"
	pgErrCheckViolation  = "23514"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// CreateTx creates the account row inside a transaction.
func (r *AccountRepository) CreateTx(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	queries := generated.New(txOf(tx))

	_, err := queries.CreateAccount(ctx, generated.CreateAccountParams{
		UserID:      account.UserID,
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
		TotalSpent:  account.TotalSpent,
		AllTimeHigh: account.AllTimeHigh,
		AllTimeLow:  int64PtrToPgInt8(account.AllTimeLow),
		LastReset:   timePtrToPgTimestamptz(account.LastReset),
		UpdatedAt:   timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrAccountExists
		}

		return err
	}

	return nil
}

// GetByUserID retrieves an account by user ID.
func (r *AccountRepository) GetByUserID(ctx context.Context, userID string) (*domain.Account, error) {
	row, err := r.queries.GetAccountByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// GetByUserIDForUpdate retrieves an account with a FOR UPDATE lock.
func (r *AccountRepository) GetByUserIDForUpdate(ctx context.Context, tx usecase.Transaction, userID string) (*domain.Account, error) {
	queries := generated.New(txOf(tx))

	row, err := queries.GetAccountByUserIDForUpdate(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}

		return nil, err
	}

	return rowToAccount(row), nil
}

// UpdateProjection writes the materialized projection fields.
func (r *AccountRepository) UpdateProjection(ctx context.Context, tx usecase.Transaction, account *domain.Account) error {
	queries := generated.New(txOf(tx))

	err := queries.UpdateAccountProjection(ctx, generated.UpdateAccountProjectionParams{
		UserID:      account.UserID,
		Balance:     account.Balance,
		TotalEarned: account.TotalEarned,
		TotalSpent:  account.TotalSpent,
		AllTimeHigh: account.AllTimeHigh,
		AllTimeLow:  int64PtrToPgInt8(account.AllTimeLow),
		LastReset:   timePtrToPgTimestamptz(account.LastReset),
		UpdatedAt:   timeToPgTimestamptz(account.UpdatedAt),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrCheckViolation {
			// The balance >= 0 check is the storage-level backstop.
			return domain.ErrInsufficientBalance
		}

		return err
	}

	return nil
}

func rowToAccount(row generated.Account) *domain.Account {
	return &domain.Account{
		UserID:      row.UserID,
		Balance:     row.Balance,
		TotalEarned: row.TotalEarned,
		TotalSpent:  row.TotalSpent,
		AllTimeHigh: row.AllTimeHigh,
		AllTimeLow:  pgInt8ToInt64Ptr(row.AllTimeLow),
		LastReset:   pgTimestamptzToTimePtr(row.LastReset),
		UpdatedAt:   row.UpdatedAt.Time,
	}
}

// Type conversion helpers.
func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func timePtrToPgTimestamptz(t *time.Time) pgtype.Timestamptz {
	if t == nil {
		return pgtype.Timestamptz{}
	}

	return pgtype.Timestamptz{Time: *t, Valid: true}
}

func pgTimestamptzToTimePtr(ts pgtype.Timestamptz) *time.Time {
	if !ts.Valid {
		return nil
	}

	t := ts.Time

	return &t
}

func int64PtrToPgInt8(v *int64) pgtype.Int8 {
	if v == nil {
		return pgtype.Int8{}
	}

	return pgtype.Int8{Int64: *v, Valid: true}
}

func pgInt8ToInt64Ptr(v pgtype.Int8) *int64 {
	if !v.Valid {
		return nil
	}

	n := v.Int64

	return &n
}

func stringToPgText(s string) pgtype.Text {
	if s == "" {
		return pgtype.Text{}
	}

	return pgtype.Text{String: s, Valid: true}
}

func stringPtrToPgText(s *string) pgtype.Text {
	if s == nil {
		return pgtype.Text{}
	}

	return pgtype.Text{String: *s, Valid: true}
}

func pgTextToStringPtr(t pgtype.Text) *string {
	if !t.Valid {
		return nil
	}

	s := t.String

	return &s
}
