package store

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"os"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
	"github.com/relay-hub/settlement-hub/internal/testutil"
)

var testDB *gorm.DB

// TestMain sets up the test database before running tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	db, err := testutil.StartDatabase(ctx)
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	testDB = db.DB

	code := m.Run()

	db.Terminate(ctx)
	os.Exit(code)
}

// initPGTestDB opens a transaction per test; everything the test writes is rolled back on cleanup
func initPGTestDB(t *testing.T) Store {
	tx := testDB.Begin()
	require.NotNil(t, tx)
	require.NoError(t, tx.Error)

	t.Cleanup(func() {
		tx.Rollback()
	})

	return NewPGStore(tx, adapter.NewClock())
}

// cleanupPGTestDB is a no-op, rollback happens in initPGTestDB's cleanup
func cleanupPGTestDB(t *testing.T) {}

// TestPostgreSQLStore runs all store tests against PostgreSQL
func TestPostgreSQLStore(t *testing.T) {
	if testDB == nil {
		t.Fatal("Test database not initialized")
	}

	RunStoreTests(t, initPGTestDB, cleanupPGTestDB)
}

// committedKey returns a balance key unique to this run, for tests that need real commits
func committedKey(t *testing.T) domain.BalanceKey {
	suffix := uuid.NewString()
	key := domain.BalanceKey{
		Owner:    domain.OwnerRef{ChainID: "base", Address: "owner-" + suffix},
		Currency: domain.CurrencyRef{ChainID: "base", Currency: "currency-" + suffix},
	}
	t.Cleanup(func() {
		testDB.Where("currency = ?", key.Currency.Currency).Delete(&schema.Balance{})
		testDB.Where("currency = ?", key.Currency.Currency).Delete(&schema.OnchainEntry{})
		testDB.Where("currency = ?", key.Currency.Currency).Delete(&schema.BalanceLock{})
	})
	return key
}

func TestConcurrentReallocationNeverOverdraws(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB, adapter.NewClock())

	from := committedKey(t)
	to := domain.OwnerRef{ChainID: "base", Address: "recipient-" + uuid.NewString()}
	require.NoError(t, s.Transaction(ctx, func(tx Tx) error {
		if _, err := tx.RecordEntry(RecordEntryInput{
			ID:            testID("concurrent-reallocation-" + from.Currency.Currency),
			Kind:          domain.CustodyKindDepository,
			ChainID:       "base",
			TransactionID: "0x01",
			Key:           from,
			Delta:         big.NewInt(100),
		}); err != nil {
			return err
		}
		return tx.InitializeBalance(from.WithOwner(to))
	}))

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.Transaction(ctx, func(tx Tx) error {
				result, err := tx.Reallocate(from, to, big.NewInt(60))
				if err != nil {
					return err
				}
				if !result.Complete() {
					return domain.ErrReallocationFailed
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	succeeded, overdrawn := 0, 0
	for _, err := range errs {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, domain.ErrInsufficientBalance):
			overdrawn++
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, 1, overdrawn)

	debited, err := s.GetBalance(ctx, from)
	require.NoError(t, err)
	credited, err := s.GetBalance(ctx, from.WithOwner(to))
	require.NoError(t, err)
	assert.Equal(t, "40", debited.AvailableAmount)
	assert.Equal(t, "60", credited.AvailableAmount)
	assert.Equal(t, int64(100), new(big.Int).Add(debited.Total(), credited.Total()).Int64())
}

func TestConcurrentLockIsAppliedOnce(t *testing.T) {
	ctx := context.Background()
	s := NewPGStore(testDB, adapter.NewClock())

	key := committedKey(t)
	lockID := testID("concurrent-lock-" + key.Currency.Currency)
	require.NoError(t, s.Transaction(ctx, func(tx Tx) error {
		_, err := tx.RecordEntry(RecordEntryInput{
			ID:            testID("concurrent-lock-entry-" + key.Currency.Currency),
			Kind:          domain.CustodyKindEscrow,
			ChainID:       "base",
			TransactionID: "0x02",
			Key:           key,
			Delta:         big.NewInt(500),
		})
		return err
	}))

	var wg sync.WaitGroup
	var mu sync.Mutex
	applied := 0
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.Transaction(ctx, func(tx Tx) error {
				result, err := tx.Lock(LockInput{ID: lockID, Source: schema.LockSourceDeposit, Key: key, Amount: big.NewInt(500)})
				if err != nil {
					return err
				}
				if result.Applied {
					mu.Lock()
					applied++
					mu.Unlock()
				}
				return nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, applied)
	balance, err := s.GetBalance(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "0", balance.AvailableAmount)
	assert.Equal(t, "500", balance.LockedAmount)
}
