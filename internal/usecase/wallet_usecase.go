package usecase

import (
	"context"
	"encoding/json"
	"time"

	"github.com/tradesim/walletd/internal/domain"
)

// WalletUseCase owns the append-only ledger and the derived balance
// projection. Every mutation runs as a single transaction holding a row lock
// on the account, so concurrent calls against one account are serialized and
// no two entries are computed from the same stale balance.
type WalletUseCase struct {
	txManager   TransactionManager
	accountRepo AccountRepository
	entryRepo   EntryRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
	retrier     Retrier
	cache       Cache
}

// NewWalletUseCase creates a new WalletUseCase. cache may be nil to disable
// projection caching.
func NewWalletUseCase(
	txManager TransactionManager,
	accountRepo AccountRepository,
	entryRepo EntryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
	retrier Retrier,
	cache Cache,
) *WalletUseCase {
	return &WalletUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		entryRepo:   entryRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
		retrier:     retrier,
		cache:       cache,
	}
}

// RecordInput represents input for recording a ledger entry.
type RecordInput struct {
	UserID      string
	Kind        domain.Kind
	Amount      int64
	Description string
	ReferenceID *string
	AdminID     *string
}

// Record appends a ledger entry and updates the account projection
// atomically. A negative amount that would drive the balance below zero fails
// with ErrInsufficientBalance and writes nothing. A non-nil ReferenceID that
// was already recorded for the account fails with ErrDuplicateReference.
func (uc *WalletUseCase) Record(ctx context.Context, input RecordInput) (*domain.LedgerEntry, error) {
	if err := validateRecordInput(input); err != nil {
		return nil, err
	}

	var entry *domain.LedgerEntry

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, input.UserID)
		if err != nil {
			return err
		}

		entry, err = uc.recordInTx(ctx, tx, account, input, time.Now().UTC())
		if err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAccount(ctx, input.UserID)

	return entry, nil
}

// Provision creates the wallet for a newly created user, exactly once. The
// account starts at zero and the tier starting balance arrives as the first
// ledger entry, so the projection and the log never disagree.
func (uc *WalletUseCase) Provision(ctx context.Context, userID string, tier domain.Tier) (*domain.Account, error) {
	if !tier.IsValid() {
		return nil, domain.ErrInvalidTier
	}

	now := time.Now().UTC()

	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		// Rebuilt on every attempt: recordInTx mutates the projection,
		// and a replay after a rollback must start from zero.
		account = &domain.Account{
			UserID:    userID,
			UpdatedAt: now,
		}

		if err := uc.accountRepo.CreateTx(ctx, tx, account); err != nil {
			return err
		}

		_, err = uc.recordInTx(ctx, tx, account, RecordInput{
			UserID:      userID,
			Kind:        domain.KindInitialDeposit,
			Amount:      tier.StartingBalance(),
			Description: "Account creation bonus",
		}, now)
		if err != nil {
			return err
		}

		if err := uc.appendOutbox(ctx, tx, userID, domain.EventTypeWalletProvisioned, domain.WalletProvisionedEvent{
			UserID:          userID,
			Tier:            string(tier),
			StartingBalance: tier.StartingBalance(),
		}, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// Reset sets the balance to a non-negative target by recording a delta entry
// of kind reset, and stamps last_reset. A negative target fails with
// ErrInvalidAmount. A zero delta writes no entry.
func (uc *WalletUseCase) Reset(ctx context.Context, userID string, newBalance int64, adminID string) (*domain.Account, error) {
	if newBalance < 0 {
		return nil, domain.ErrInvalidAmount
	}

	var account *domain.Account

	err := uc.retrier.Retry(ctx, func() error {
		tx, err := uc.txManager.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		account, err = uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now().UTC()

		if delta := newBalance - account.Balance; delta != 0 {
			_, err = uc.recordInTx(ctx, tx, account, RecordInput{
				UserID:      userID,
				Kind:        domain.KindReset,
				Amount:      delta,
				Description: "Balance reset",
				AdminID:     &adminID,
			}, now)
			if err != nil {
				return err
			}
		}

		account.LastReset = &now
		account.UpdatedAt = now

		if err := uc.accountRepo.UpdateProjection(ctx, tx, account); err != nil {
			return err
		}

		if err := uc.appendOutbox(ctx, tx, userID, domain.EventTypeWalletReset, domain.WalletResetEvent{
			UserID:     userID,
			NewBalance: newBalance,
			AdminID:    adminID,
		}, now); err != nil {
			return err
		}

		return tx.Commit(ctx)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAccount(ctx, userID)

	return account, nil
}

// GetAccount retrieves the account projection, serving from cache when fresh.
func (uc *WalletUseCase) GetAccount(ctx context.Context, userID string) (*domain.Account, error) {
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, accountCacheKey(userID)); err == nil {
			var account domain.Account
			if err := json.Unmarshal([]byte(cached), &account); err == nil {
				return &account, nil
			}
		}
	}

	account, err := uc.accountRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if uc.cache != nil {
		if data, err := json.Marshal(account); err == nil {
			_ = uc.cache.Set(ctx, accountCacheKey(userID), string(data), AccountCacheTTL)
		}
	}

	return account, nil
}

// ListEntriesInput represents input for listing ledger entries.
type ListEntriesInput struct {
	UserID string
	Limit  int
	Offset int
}

// ListEntries lists ledger entries for an account, newest first. Limit and
// offset are clamped to valid ranges.
func (uc *WalletUseCase) ListEntries(ctx context.Context, input ListEntriesInput) ([]*domain.LedgerEntry, error) {
	limit, offset := domain.ValidatePagination(input.Limit, input.Offset)

	return uc.entryRepo.ListByUser(ctx, input.UserID, limit, offset)
}

// CountEntries returns the number of ledger entries for an account.
func (uc *WalletUseCase) CountEntries(ctx context.Context, userID string) (int64, error) {
	return uc.entryRepo.CountByUser(ctx, userID)
}

// VerifyResult reports whether the projection matches the entry log.
type VerifyResult struct {
	UserID           string
	Balance          int64
	EntrySum         int64
	LastBalanceAfter int64
	Consistent       bool
	CheckedAt        time.Time
}

// Verify replays the invariants that hold the ledger together: the sum of
// entry amounts and the latest entry's balance_after must both equal the
// projected balance. The check runs under the account row lock so it observes
// a quiescent state.
func (uc *WalletUseCase) Verify(ctx context.Context, userID string) (*VerifyResult, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByUserIDForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	sum, err := uc.entryRepo.SumByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	last, err := uc.entryRepo.LastByUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	result := &VerifyResult{
		UserID:    userID,
		Balance:   account.Balance,
		EntrySum:  sum,
		CheckedAt: time.Now().UTC(),
	}

	if last != nil {
		result.LastBalanceAfter = last.BalanceAfter
	}

	result.Consistent = sum == account.Balance &&
		(last == nil || last.BalanceAfter == account.Balance)

	return result, nil
}

// recordInTx appends an entry and folds it into the projection. The caller
// holds the row lock on account and owns the transaction.
func (uc *WalletUseCase) recordInTx(
	ctx context.Context,
	tx Transaction,
	account *domain.Account,
	input RecordInput,
	now time.Time,
) (*domain.LedgerEntry, error) {
	if input.ReferenceID != nil {
		exists, err := uc.entryRepo.ReferenceExists(ctx, tx, input.UserID, *input.ReferenceID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicateReference
		}
	}

	if err := account.CanApply(input.Amount); err != nil {
		return nil, err
	}

	balanceAfter := account.Apply(input.Amount, now)

	entry := &domain.LedgerEntry{
		ID:           uc.idGen.Generate(),
		UserID:       input.UserID,
		Kind:         input.Kind,
		Amount:       input.Amount,
		BalanceAfter: balanceAfter,
		Description:  input.Description,
		ReferenceID:  input.ReferenceID,
		AdminID:      input.AdminID,
		CreatedAt:    now,
	}

	if err := uc.entryRepo.Create(ctx, tx, entry); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.UpdateProjection(ctx, tx, account); err != nil {
		return nil, err
	}

	if err := uc.appendOutbox(ctx, tx, input.UserID, domain.EventTypeWalletEntryRecorded, domain.WalletEntryRecordedEvent{
		EntryID:      entry.ID,
		UserID:       entry.UserID,
		Kind:         string(entry.Kind),
		Amount:       entry.Amount,
		BalanceAfter: entry.BalanceAfter,
	}, now); err != nil {
		return nil, err
	}

	return entry, nil
}

func (uc *WalletUseCase) appendOutbox(ctx context.Context, tx Transaction, userID, eventType string, payload any, now time.Time) error {
	if uc.outboxRepo == nil {
		return nil
	}

	return uc.outboxRepo.Create(ctx, tx, &domain.OutboxEvent{
		ID:            uc.idGen.Generate(),
		AggregateID:   userID,
		AggregateType: domain.AggregateTypeWallet,
		EventType:     eventType,
		Payload:       domain.MarshalState(payload),
		CreatedAt:     now,
	})
}

func (uc *WalletUseCase) invalidateAccount(ctx context.Context, userID string) {
	if uc.cache != nil {
		_ = uc.cache.Delete(ctx, accountCacheKey(userID))
	}
}

func accountCacheKey(userID string) string {
	return "account:" + userID
}

func validateRecordInput(input RecordInput) error {
	if input.Amount == 0 {
		return domain.ErrInvalidAmount
	}

	if !input.Kind.IsValid() {
		return domain.ErrInvalidKind
	}

	if err := domain.ValidateDescription(input.Description); err != nil {
		return err
	}

	if input.ReferenceID != nil {
		if err := domain.ValidateReferenceID(*input.ReferenceID); err != nil {
			return err
		}
	}

	return nil
}
