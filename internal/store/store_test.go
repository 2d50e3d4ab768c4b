package store

import (
	"context"
	"math/big"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// =============================================================================
// Test Data Builders
// =============================================================================

func testID(seed string) string {
	return crypto.Keccak256Hash([]byte(seed)).Hex()
}

func buildTestKey(owner, currency string) domain.BalanceKey {
	return domain.BalanceKey{
		Owner:    domain.OwnerRef{ChainID: "ethereum", Address: owner},
		Currency: domain.CurrencyRef{ChainID: "ethereum", Currency: currency},
	}
}

const (
	testOwner    = "0x1111111111111111111111111111111111111111"
	testSolver   = "0x2222222222222222222222222222222222222222"
	testCurrency = "0x0000000000000000000000000000000000000000"
)

// credit journals a deposit of amount for key and returns the resulting balance
func credit(t *testing.T, store Store, seed string, key domain.BalanceKey, amount int64) *schema.Balance {
	var balance *schema.Balance
	err := store.Transaction(context.Background(), func(tx Tx) error {
		result, err := tx.RecordEntry(RecordEntryInput{
			ID:            testID(seed),
			Kind:          domain.CustodyKindDepository,
			ChainID:       key.Owner.ChainID,
			TransactionID: testID("tx-" + seed),
			Key:           key,
			Delta:         big.NewInt(amount),
		})
		balance = result.Balance
		return err
	})
	require.NoError(t, err)
	return balance
}

func requireBalance(t *testing.T, store Store, key domain.BalanceKey, available, locked string) {
	t.Helper()
	balance, err := store.GetBalance(context.Background(), key)
	require.NoError(t, err)
	require.NotNil(t, balance)
	assert.Equal(t, available, balance.AvailableAmount, "available")
	assert.Equal(t, locked, balance.LockedAmount, "locked")
}

// =============================================================================
// Test: InitializeBalance
// =============================================================================

func testInitializeBalance(t *testing.T, store Store) {
	ctx := context.Background()
	key := buildTestKey(testOwner, testCurrency)

	balance, err := store.GetBalance(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, balance)

	for i := 0; i < 2; i++ {
		require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
			return tx.InitializeBalance(key)
		}))
	}
	requireBalance(t, store, key, "0", "0")

	credit(t, store, "init-credit", key, 10)
	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		return tx.InitializeBalance(key)
	}))
	requireBalance(t, store, key, "10", "0")
}

// =============================================================================
// Test: RecordEntry
// =============================================================================

func testRecordEntry(t *testing.T, store Store) {
	ctx := context.Background()
	key := buildTestKey(testOwner, testCurrency)

	t.Run("first insert credits available", func(t *testing.T) {
		balance := credit(t, store, "entry-1", key, 1000)
		require.NotNil(t, balance)
		assert.Equal(t, "1000", balance.AvailableAmount)
		assert.Equal(t, "0", balance.LockedAmount)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.RecordEntry(RecordEntryInput{
				ID:            testID("entry-1"),
				Kind:          domain.CustodyKindDepository,
				ChainID:       "ethereum",
				TransactionID: testID("tx-entry-1"),
				Key:           key,
				Delta:         big.NewInt(1000),
			})
			require.NoError(t, err)
			assert.False(t, result.Applied)
			assert.Nil(t, result.Balance)
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, key, "1000", "0")
	})

	t.Run("debit beyond available is rejected", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			_, err := tx.RecordEntry(RecordEntryInput{
				ID:            testID("entry-overdraw"),
				Kind:          domain.CustodyKindDepository,
				ChainID:       "ethereum",
				TransactionID: testID("tx-entry-overdraw"),
				Key:           key,
				Delta:         big.NewInt(-1001),
			})
			return err
		})
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
		requireBalance(t, store, key, "1000", "0")

		entry, err := store.GetEntry(ctx, testID("entry-overdraw"))
		require.NoError(t, err)
		assert.Nil(t, entry, "rolled back entry must not persist")
	})

	t.Run("negative delta on unseen balance is rejected", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			_, err := tx.RecordEntry(RecordEntryInput{
				ID:            testID("entry-unseen"),
				Kind:          domain.CustodyKindEscrow,
				ChainID:       "ethereum",
				TransactionID: testID("tx-entry-unseen"),
				Key:           buildTestKey(testSolver, testCurrency),
				Delta:         big.NewInt(-1),
			})
			return err
		})
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	})

	t.Run("settling entry is journaled without touching available", func(t *testing.T) {
		lockID := testID("settled-lock")
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.RecordEntry(RecordEntryInput{
				ID:            testID("entry-settle"),
				Kind:          domain.CustodyKindDepository,
				ChainID:       "ethereum",
				TransactionID: testID("tx-entry-settle"),
				Key:           key,
				Delta:         big.NewInt(-400),
				SettledLockID: &lockID,
			})
			require.NoError(t, err)
			assert.True(t, result.Applied)
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, key, "1000", "0")

		entry, err := store.GetEntry(ctx, testID("entry-settle"))
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, int64(-400), entry.Diff().Int64())
		require.NotNil(t, entry.SettledLockID)
		assert.Equal(t, lockID, *entry.SettledLockID)
		assert.Equal(t, string(domain.CustodyKindDepository), entry.Kind)
	})
}

// =============================================================================
// Test: Lock / Unlock
// =============================================================================

func testLockUnlock(t *testing.T, store Store) {
	ctx := context.Background()
	key := buildTestKey(testOwner, testCurrency)
	credit(t, store, "lock-credit", key, 1000)
	lockID := testID("lock-1")

	t.Run("lock moves available to locked", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Lock(LockInput{ID: lockID, Source: schema.LockSourceDeposit, Key: key, Amount: big.NewInt(300)})
			require.NoError(t, err)
			assert.True(t, result.Applied)
			require.NotNil(t, result.Balance)
			assert.Equal(t, "700", result.Balance.AvailableAmount)
			assert.Equal(t, "300", result.Balance.LockedAmount)
			return nil
		})
		require.NoError(t, err)

		lock, err := store.GetLock(ctx, lockID)
		require.NoError(t, err)
		require.NotNil(t, lock)
		assert.False(t, lock.Executed)
		assert.Equal(t, schema.LockSourceDeposit, lock.Source)
		assert.WithinDuration(t, time.Now().Add(domain.DefaultLockTTL), lock.Expiration, time.Minute)
	})

	t.Run("replayed lock id is not applied again", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Lock(LockInput{ID: lockID, Source: schema.LockSourceDeposit, Key: key, Amount: big.NewInt(300)})
			require.NoError(t, err)
			assert.False(t, result.Applied)
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, key, "700", "300")
	})

	t.Run("lock beyond available is rejected", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			_, err := tx.Lock(LockInput{ID: testID("lock-too-big"), Source: schema.LockSourceWithdrawal, Key: key, Amount: big.NewInt(701)})
			return err
		})
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
		requireBalance(t, store, key, "700", "300")

		lock, err := store.GetLock(ctx, testID("lock-too-big"))
		require.NoError(t, err)
		assert.Nil(t, lock)
	})

	t.Run("unlock restores the pre-lock split", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Unlock(lockID, UnlockOptions{})
			require.NoError(t, err)
			assert.True(t, result.Applied)
			require.NotNil(t, result.Lock)
			assert.Equal(t, "300", result.Lock.Amount)
			assert.True(t, result.Lock.Executed)
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, key, "1000", "0")
	})

	t.Run("second unlock is a no-op", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Unlock(lockID, UnlockOptions{})
			require.NoError(t, err)
			assert.False(t, result.Applied)
			assert.Nil(t, result.Balance)
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, key, "1000", "0")
	})

	t.Run("unknown lock is a no-op", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Unlock(testID("missing-lock"), UnlockOptions{})
			require.NoError(t, err)
			assert.False(t, result.Applied)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("skip available adjustment only releases locked", func(t *testing.T) {
		id := testID("lock-skip")
		err := store.Transaction(ctx, func(tx Tx) error {
			if _, err := tx.Lock(LockInput{ID: id, Source: schema.LockSourceWithdrawal, Key: key, Amount: big.NewInt(250)}); err != nil {
				return err
			}
			result, err := tx.Unlock(id, UnlockOptions{SkipAvailableAdjustment: true})
			require.NoError(t, err)
			assert.True(t, result.Applied)
			assert.Equal(t, "750", result.Balance.AvailableAmount)
			assert.Equal(t, "0", result.Balance.LockedAmount)
			return nil
		})
		require.NoError(t, err)
	})
}

func testUnlockCheckExpiration(t *testing.T, store Store) {
	ctx := context.Background()
	key := buildTestKey(testOwner, testCurrency)
	credit(t, store, "expiry-credit", key, 100)

	future := time.Now().Add(time.Hour)
	past := time.Now().Add(-time.Hour)
	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		if _, err := tx.Lock(LockInput{ID: testID("live"), Source: schema.LockSourceWithdrawal, Key: key, Amount: big.NewInt(40), Expiration: &future}); err != nil {
			return err
		}
		_, err := tx.Lock(LockInput{ID: testID("expired"), Source: schema.LockSourceWithdrawal, Key: key, Amount: big.NewInt(60), Expiration: &past})
		return err
	}))
	requireBalance(t, store, key, "0", "100")

	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		live, err := tx.Unlock(testID("live"), UnlockOptions{CheckExpiration: true})
		require.NoError(t, err)
		assert.False(t, live.Applied)

		expired, err := tx.Unlock(testID("expired"), UnlockOptions{CheckExpiration: true})
		require.NoError(t, err)
		assert.True(t, expired.Applied)
		return nil
	}))
	requireBalance(t, store, key, "60", "40")
}

// =============================================================================
// Test: Reallocate
// =============================================================================

func testReallocate(t *testing.T, store Store) {
	ctx := context.Background()
	from := buildTestKey(testOwner, testCurrency)
	solver := domain.OwnerRef{ChainID: "ethereum", Address: testSolver}
	credit(t, store, "realloc-credit", from, 1000)

	t.Run("missing recipient row leaves the result incomplete", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Reallocate(from, solver, big.NewInt(100))
			require.NoError(t, err)
			assert.False(t, result.Complete())
			assert.NotNil(t, result.Debited)
			assert.Nil(t, result.Credited)
			return domain.ErrReallocationFailed
		})
		require.ErrorIs(t, err, domain.ErrReallocationFailed)
		requireBalance(t, store, from, "1000", "0")
	})

	t.Run("moves available between owners", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			if err := tx.InitializeBalance(from.WithOwner(solver)); err != nil {
				return err
			}
			result, err := tx.Reallocate(from, solver, big.NewInt(400))
			require.NoError(t, err)
			require.True(t, result.Complete())
			assert.Equal(t, "600", result.Debited.AvailableAmount)
			assert.Equal(t, "400", result.Credited.AvailableAmount)
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, from, "600", "0")
		requireBalance(t, store, from.WithOwner(solver), "400", "0")
	})

	t.Run("overdraw is rejected", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			_, err := tx.Reallocate(from, solver, big.NewInt(601))
			return err
		})
		require.ErrorIs(t, err, domain.ErrInsufficientBalance)
		requireBalance(t, store, from, "600", "0")
		requireBalance(t, store, from.WithOwner(solver), "400", "0")
	})

	t.Run("self reallocation keeps the balance", func(t *testing.T) {
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Reallocate(from, from.Owner, big.NewInt(600))
			require.NoError(t, err)
			assert.True(t, result.Complete())
			return nil
		})
		require.NoError(t, err)
		requireBalance(t, store, from, "600", "0")
	})

	t.Run("missing sender row leaves the result incomplete", func(t *testing.T) {
		ghost := buildTestKey("0x3333333333333333333333333333333333333333", testCurrency)
		err := store.Transaction(ctx, func(tx Tx) error {
			result, err := tx.Reallocate(ghost, solver, big.NewInt(1))
			require.NoError(t, err)
			assert.Nil(t, result.Debited)
			assert.False(t, result.Complete())
			return domain.ErrReallocationFailed
		})
		require.ErrorIs(t, err, domain.ErrReallocationFailed)
		requireBalance(t, store, from.WithOwner(solver), "400", "0")
	})
}

// =============================================================================
// Test: Conservation
// =============================================================================

func testConservation(t *testing.T, store Store) {
	ctx := context.Background()
	owner := buildTestKey(testOwner, testCurrency)
	solver := domain.OwnerRef{ChainID: "solana", Address: "solver-address"}
	credit(t, store, "conservation-1", owner, 700)
	credit(t, store, "conservation-2", owner, 300)

	total := func() *big.Int {
		sum := new(big.Int)
		for _, key := range []domain.BalanceKey{owner, owner.WithOwner(solver)} {
			balance, err := store.GetBalance(ctx, key)
			require.NoError(t, err)
			if balance != nil {
				sum.Add(sum, balance.Total())
				assert.GreaterOrEqual(t, balance.Available().Sign(), 0)
				assert.GreaterOrEqual(t, balance.Locked().Sign(), 0)
			}
		}
		return sum
	}
	require.Equal(t, int64(1000), total().Int64())

	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		for i, amount := range []int64{100, 250, 50} {
			if _, err := tx.Lock(LockInput{ID: testID("conservation-lock-" + string(rune('a'+i))), Source: schema.LockSourceDeposit, Key: owner, Amount: big.NewInt(amount)}); err != nil {
				return err
			}
		}
		return nil
	}))
	assert.Equal(t, int64(1000), total().Int64())

	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		if _, err := tx.Unlock(testID("conservation-lock-a"), UnlockOptions{}); err != nil {
			return err
		}
		// released back to the owner, then handed to the solver
		unlocked, err := tx.Unlock(testID("conservation-lock-b"), UnlockOptions{})
		if err != nil {
			return err
		}
		if err := tx.InitializeBalance(owner.WithOwner(solver)); err != nil {
			return err
		}
		_, err = tx.Reallocate(owner, solver, unlocked.Lock.AmountInt())
		return err
	}))
	assert.Equal(t, int64(1000), total().Int64())
	requireBalance(t, store, owner, "700", "50")
	requireBalance(t, store, owner.WithOwner(solver), "250", "0")
}

// =============================================================================
// Test: Withdrawal requests
// =============================================================================

func testWithdrawalRequests(t *testing.T, store Store) {
	ctx := context.Background()
	id := testID("withdrawal-1")
	request := schema.WithdrawalRequest{
		ID:           id,
		OwnerChainID: "ethereum",
		Owner:        testOwner,
		ChainID:      "base",
		Currency:     testCurrency,
		Amount:       "400000",
		Recipient:    testSolver,
		EncodedData:  "0xdeadbeef",
		Signature:    "0xsig",
	}

	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		return tx.CreateWithdrawalRequest(request)
	}))

	err := store.Transaction(ctx, func(tx Tx) error {
		return tx.CreateWithdrawalRequest(request)
	})
	require.ErrorIs(t, err, domain.ErrAlreadyExists)

	require.NoError(t, store.Transaction(ctx, func(tx Tx) error {
		return tx.MarkWithdrawalExecuted(id)
	}))

	got, err := store.GetWithdrawalRequest(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Executed)
	assert.Equal(t, "400000", got.Amount)

	missing, err := store.GetWithdrawalRequest(ctx, testID("withdrawal-missing"))
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// =============================================================================
// Test: Mappings
// =============================================================================

func testMappings(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("nonce mapping", func(t *testing.T) {
		mapping := schema.NonceMapping{WalletChainID: "ethereum", Wallet: testOwner, Nonce: "1", ID: testID("nonce-1")}
		require.NoError(t, store.SaveNonceMapping(ctx, mapping))
		require.ErrorIs(t, store.SaveNonceMapping(ctx, mapping), domain.ErrAlreadyExists)

		got, err := store.GetNonceMapping(ctx, "ethereum", testOwner, "1")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, mapping.ID, got.ID)

		got, err = store.GetNonceMapping(ctx, "ethereum", testOwner, "2")
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("deposit binding", func(t *testing.T) {
		binding := schema.DepositBinding{DepositorChainID: "ethereum", Depositor: testOwner, Nonce: "7", DepositID: testID("deposit-7")}
		require.NoError(t, store.SaveDepositBinding(ctx, binding))
		require.ErrorIs(t, store.SaveDepositBinding(ctx, binding), domain.ErrAlreadyExists)

		got, err := store.GetDepositBinding(ctx, "ethereum", testOwner, "7")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, binding.DepositID, got.DepositID)
	})

	t.Run("request id mapping", func(t *testing.T) {
		mapping := schema.RequestIDMapping{ChainID: "base", Wallet: testOwner, Nonce: "9", RequestID: testID("request-9")}
		require.NoError(t, store.SaveRequestIDMapping(ctx, mapping))
		require.ErrorIs(t, store.SaveRequestIDMapping(ctx, mapping), domain.ErrAlreadyExists)

		got, err := store.GetRequestIDMapping(ctx, "base", testOwner, "9")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, mapping.RequestID, got.RequestID)
	})
}

// =============================================================================
// Test: Chains and balances listing
// =============================================================================

func testChains(t *testing.T, store Store) {
	ctx := context.Background()
	depository := "0x4444444444444444444444444444444444444444"

	require.NoError(t, store.UpsertChain(ctx, schema.Chain{ID: "ethereum", VmType: "ethereum-vm", Depository: &depository}))
	require.NoError(t, store.UpsertChain(ctx, schema.Chain{ID: "solana", VmType: "solana-vm", Metadata: datatypes.JSON(`{"commitment":"finalized"}`)}))
	require.NoError(t, store.UpsertChain(ctx, schema.Chain{ID: "ethereum", VmType: "ethereum-vm"}))

	chains, err := store.ListChains(ctx)
	require.NoError(t, err)
	require.Len(t, chains, 2)
	assert.Equal(t, "ethereum", chains[0].ID)
	assert.Nil(t, chains[0].Depository)
	assert.JSONEq(t, `{"commitment":"finalized"}`, string(chains[1].Metadata))
}

func testListBalancesByOwner(t *testing.T, store Store) {
	ctx := context.Background()
	credit(t, store, "list-1", buildTestKey(testOwner, testCurrency), 5)
	credit(t, store, "list-2", buildTestKey(testOwner, "0x5555555555555555555555555555555555555555"), 6)
	credit(t, store, "list-3", buildTestKey(testSolver, testCurrency), 7)

	balances, err := store.ListBalancesByOwner(ctx, domain.OwnerRef{ChainID: "ethereum", Address: testOwner})
	require.NoError(t, err)
	require.Len(t, balances, 2)
	assert.Equal(t, testCurrency, balances[0].Currency)
	assert.Equal(t, "5", balances[0].AvailableAmount)
}

// RunStoreTests runs every store test against the given implementation
func RunStoreTests(t *testing.T, initDB func(t *testing.T) Store, cleanupDB func(t *testing.T)) {
	tests := []struct {
		name string
		fn   func(*testing.T, Store)
	}{
		{"InitializeBalance", testInitializeBalance},
		{"RecordEntry", testRecordEntry},
		{"LockUnlock", testLockUnlock},
		{"UnlockCheckExpiration", testUnlockCheckExpiration},
		{"Reallocate", testReallocate},
		{"Conservation", testConservation},
		{"WithdrawalRequests", testWithdrawalRequests},
		{"Mappings", testMappings},
		{"Chains", testChains},
		{"ListBalancesByOwner", testListBalancesByOwner},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := initDB(t)
			defer cleanupDB(t)
			tt.fn(t, store)
		})
	}
}
