package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/infrastructure/postgres/generated"
	"github.com/tradesim/walletd/internal/usecase"
)

// EntryRepository implements usecase.EntryRepository.
type EntryRepository struct {
	pool    *pgxpool.Pool
	queries *generated.Queries
}

// NewEntryRepository creates a new EntryRepository.
func NewEntryRepository(pool *pgxpool.Pool) *EntryRepository {
	return &EntryRepository{
		pool:    pool,
		queries: generated.New(pool),
	}
}

// Create appends a ledger entry inside a transaction.
func (r *EntryRepository) Create(ctx context.Context, tx usecase.Transaction, entry *domain.LedgerEntry) error {
	queries := generated.New(txOf(tx))

	_, err := queries.CreateLedgerEntry(ctx, generated.CreateLedgerEntryParams{
		ID:           entry.ID,
		UserID:       entry.UserID,
		Kind:         string(entry.Kind),
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
		Description:  pgtype.Text{String: entry.Description, Valid: true},
		ReferenceID:  stringPtrToPgText(entry.ReferenceID),
		AdminID:      stringPtrToPgText(entry.AdminID),
		CreatedAt:    timeToPgTimestamptz(entry.CreatedAt),
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgErrUniqueViolation {
			return domain.ErrDuplicateReference
		}

		return err
	}

	return nil
}

// ReferenceExists reports whether a reference ID was already recorded for the user.
func (r *EntryRepository) ReferenceExists(ctx context.Context, tx usecase.Transaction, userID, referenceID string) (bool, error) {
	queries := generated.New(txOf(tx))

	return queries.EntryReferenceExists(ctx, generated.EntryReferenceExistsParams{
		UserID:      userID,
		ReferenceID: stringToPgText(referenceID),
	})
}

// ListByUser returns entries for a user, newest first.
func (r *EntryRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error) {
	rows, err := r.queries.ListEntriesByUser(ctx, generated.ListEntriesByUserParams{
		UserID: userID,
		Limit:  int32(limit),
		Offset: int32(offset),
	})
	if err != nil {
		return nil, err
	}

	entries := make([]*domain.LedgerEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, rowToEntry(row))
	}

	return entries, nil
}

// CountByUser returns the total number of entries for a user.
func (r *EntryRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.queries.CountEntriesByUser(ctx, userID)
}

// SumByUser returns the sum of all entry amounts for a user, within a transaction.
func (r *EntryRepository) SumByUser(ctx context.Context, tx usecase.Transaction, userID string) (int64, error) {
	queries := generated.New(txOf(tx))

	return queries.SumEntriesByUser(ctx, userID)
}

// LastByUser returns the most recent entry for a user, or nil if none exist.
func (r *EntryRepository) LastByUser(ctx context.Context, tx usecase.Transaction, userID string) (*domain.LedgerEntry, error) {
	queries := generated.New(txOf(tx))

	row, err := queries.GetLastEntryByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}

		return nil, err
	}

	return rowToEntry(row), nil
}

func rowToEntry(row generated.LedgerEntry) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:           row.ID,
		UserID:       row.UserID,
		Kind:         domain.Kind(row.Kind),
		Amount:       row.Amount,
		BalanceAfter: row.BalanceAfter,
		Description:  row.Description.String,
		ReferenceID:  pgTextToStringPtr(row.ReferenceID),
		AdminID:      pgTextToStringPtr(row.AdminID),
		CreatedAt:    row.CreatedAt.Time,
	}
}
