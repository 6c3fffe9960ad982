package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradesim/walletd/internal/adapter/repository/postgres"
	"github.com/tradesim/walletd/internal/domain"
	"github.com/tradesim/walletd/internal/usecase"
	"github.com/tradesim/walletd/tests/testutil"
)

func newWalletUseCase(testDB *testutil.TestDB) *usecase.WalletUseCase {
	pool := testDB.Pool

	return usecase.NewWalletUseCase(
		postgres.NewTxManager(pool),
		postgres.NewAccountRepository(pool),
		postgres.NewEntryRepository(pool),
		postgres.NewNullOutboxRepository(),
		postgres.NewULIDGenerator(),
		postgres.NewRetrier(),
		nil,
	)
}

func TestWalletLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	testDB := testutil.NewTestDB(t)
	defer testDB.Cleanup()

	walletUC := newWalletUseCase(testDB)

	t.Run("provision funds starting balance through the ledger", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		user := testDB.CreateTestUser(ctx, "trader@example.com", domain.TierFree, domain.RoleViewer)

		account, err := walletUC.Provision(ctx, user.ID, domain.TierFree)
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), account.Balance)

		entries, err := walletUC.ListEntries(ctx, usecase.ListEntriesInput{UserID: user.ID, Limit: 10})
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, domain.KindInitialDeposit, entries[0].Kind)
	})

	t.Run("record applies signed amounts and rejects overdraft", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		user := testDB.CreateTestUser(ctx, "trader@example.com", domain.TierFree, domain.RoleViewer)
		_, err := walletUC.Provision(ctx, user.ID, domain.TierFree)
		require.NoError(t, err)

		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID: user.ID,
			Kind:   domain.KindTradeProfit,
			Amount: 50_000,
		})
		require.NoError(t, err)

		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID: user.ID,
			Kind:   domain.KindTradeLoss,
			Amount: -200_000,
		})
		require.NoError(t, err)

		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID: user.ID,
			Kind:   domain.KindTradeLoss,
			Amount: -900_000,
		})
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)

		account, err := walletUC.GetAccount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(850_000), account.Balance)
		assert.Equal(t, int64(1_050_000), account.TotalEarned)
		assert.Equal(t, int64(200_000), account.TotalSpent)

		// The rejected entry must leave no trace in the ledger
		total, err := walletUC.CountEntries(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("duplicate reference is rejected", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		user := testDB.CreateTestUser(ctx, "trader@example.com", domain.TierFree, domain.RoleViewer)
		_, err := walletUC.Provision(ctx, user.ID, domain.TierFree)
		require.NoError(t, err)

		ref := "trade-42"
		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID:      user.ID,
			Kind:        domain.KindTradeProfit,
			Amount:      10_000,
			ReferenceID: &ref,
		})
		require.NoError(t, err)

		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID:      user.ID,
			Kind:        domain.KindTradeProfit,
			Amount:      10_000,
			ReferenceID: &ref,
		})
		require.ErrorIs(t, err, domain.ErrDuplicateReference)

		account, err := walletUC.GetAccount(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(1_010_000), account.Balance)
	})

	t.Run("reset writes a compensating entry and stamps last_reset", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		user := testDB.CreateTestUser(ctx, "trader@example.com", domain.TierFree, domain.RoleViewer)
		_, err := walletUC.Provision(ctx, user.ID, domain.TierFree)
		require.NoError(t, err)

		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID: user.ID,
			Kind:   domain.KindTradeLoss,
			Amount: -400_000,
		})
		require.NoError(t, err)

		account, err := walletUC.Reset(ctx, user.ID, 1_000_000, "admin-1")
		require.NoError(t, err)
		assert.Equal(t, int64(1_000_000), account.Balance)
		assert.NotNil(t, account.LastReset)

		entries, err := walletUC.ListEntries(ctx, usecase.ListEntriesInput{UserID: user.ID, Limit: 10})
		require.NoError(t, err)
		require.NotEmpty(t, entries)
		assert.Equal(t, domain.KindReset, entries[0].Kind)
		assert.Equal(t, int64(400_000), entries[0].Amount)
	})

	t.Run("verify replays the ledger against the projection", func(t *testing.T) {
		testDB.TruncateAll(ctx)

		user := testDB.CreateTestUser(ctx, "trader@example.com", domain.TierFree, domain.RoleViewer)
		_, err := walletUC.Provision(ctx, user.ID, domain.TierFree)
		require.NoError(t, err)

		_, err = walletUC.Record(ctx, usecase.RecordInput{
			UserID: user.ID,
			Kind:   domain.KindContestPrize,
			Amount: 75_000,
		})
		require.NoError(t, err)

		result, err := walletUC.Verify(ctx, user.ID)
		require.NoError(t, err)
		assert.True(t, result.Consistent)
		assert.Equal(t, int64(1_075_000), result.EntrySum)
		assert.Equal(t, int64(1_075_000), result.Balance)
	})
}
