package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tradesim/walletd/internal/usecase"
)

// Tx wraps a pgx transaction behind the usecase.Transaction interface.
type Tx struct {
	tx pgx.Tx
}

// Commit commits the transaction.
func (t *Tx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

// Rollback rolls back the transaction. Safe to call after Commit.
func (t *Tx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

// PgxTx exposes the underlying pgx transaction for repositories.
func (t *Tx) PgxTx() pgx.Tx {
	return t.tx
}

// txOf extracts the pgx transaction from a usecase.Transaction.
func txOf(tx usecase.Transaction) pgx.Tx {
	pgxTx, ok := tx.(*Tx)
	if !ok {
		panic(fmt.Sprintf("postgres: unexpected transaction type %T", tx))
	}

	return pgxTx.tx
}

// TxManager implements usecase.TransactionManager on a pgx pool.
type TxManager struct {
	pool *pgxpool.Pool
}

// NewTxManager creates a new TxManager.
func NewTxManager(pool *pgxpool.Pool) *TxManager {
	return &TxManager{pool: pool}
}

// Begin starts a new transaction.
func (m *TxManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	tx, err := m.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}

	return &Tx{tx: tx}, nil
}
