package usecase

import (
	"context"
	"time"

	"github.com/tradesim/walletd/internal/domain"
)

// AccountRepository defines data access for wallet accounts.
type AccountRepository interface {
	CreateTx(ctx context.Context, tx Transaction, account *domain.Account) error
	GetByUserID(ctx context.Context, userID string) (*domain.Account, error)
	GetByUserIDForUpdate(ctx context.Context, tx Transaction, userID string) (*domain.Account, error)
	UpdateProjection(ctx context.Context, tx Transaction, account *domain.Account) error
}

// EntryRepository defines data access for ledger entries.
type EntryRepository interface {
	Create(ctx context.Context, tx Transaction, entry *domain.LedgerEntry) error
	ReferenceExists(ctx context.Context, tx Transaction, userID, referenceID string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.LedgerEntry, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
	SumByUser(ctx context.Context, tx Transaction, userID string) (int64, error)
	LastByUser(ctx context.Context, tx Transaction, userID string) (*domain.LedgerEntry, error)
}

// UserRepository defines data access for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Transaction, event *domain.OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// AuditRepository defines data access for audit logs.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
	GetByResourceID(ctx context.Context, resourceType, resourceID string, limit, offset int) ([]*domain.AuditLog, error)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// Retrier retries an operation on transient storage failures.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
