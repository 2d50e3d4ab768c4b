package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/registry"
	"github.com/relay-hub/settlement-hub/internal/store"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// fakeStore runs transactions against fakeTx and can fail the first attempts
type fakeStore struct {
	store.Store
	tx       store.Tx
	failures []error
	attempts int
}

func (s *fakeStore) Transaction(_ context.Context, fn func(tx store.Tx) error) error {
	s.attempts++
	if len(s.failures) > 0 {
		err := s.failures[0]
		s.failures = s.failures[1:]
		return err
	}
	return fn(s.tx)
}

// fakeTx unlocks every lock and reallocates without a credited row
type fakeTx struct {
	store.Tx
	lock schema.BalanceLock
}

func (t *fakeTx) Unlock(id string, _ store.UnlockOptions) (store.UnlockResult, error) {
	lock := t.lock
	lock.ID = id
	return store.UnlockResult{Applied: true, Lock: &lock}, nil
}

func (t *fakeTx) InitializeBalance(domain.BalanceKey) error {
	return nil
}

func (t *fakeTx) Reallocate(from domain.BalanceKey, _ domain.OwnerRef, _ *big.Int) (store.ReallocationResult, error) {
	return store.ReallocationResult{Debited: &schema.Balance{Owner: from.Owner.Address}}, nil
}

func newFakeExecutor(t *testing.T, s store.Store) Executor {
	t.Helper()
	chains, err := registry.NewChainRegistry(context.Background(), testChains)
	require.NoError(t, err)
	resolver := normalizer.NewResolver(chains, normalizer.New())
	return NewExecutor(s, resolver, adapter.NewJSON(), Config{MaxRetries: 3, RetryInitialInterval: time.Millisecond})
}

func testLock() schema.BalanceLock {
	return schema.BalanceLock{
		Source:          schema.LockSourceDeposit,
		OwnerChainID:    testChain,
		Owner:           "0x1111111111111111111111111111111111111111",
		CurrencyChainID: testChain,
		Currency:        testCurrency,
		Amount:          "100",
	}
}

func TestIncompleteReallocationFails(t *testing.T) {
	s := &fakeStore{tx: &fakeTx{lock: testLock()}}
	exec := newFakeExecutor(t, s)

	result, err := exec.ExecuteSolverRefund(context.Background(), domain.SolverRefundAction{
		Data: domain.SolverRefundData{OrderID: "order", Inputs: []domain.SolverInput{{LockID: randomID()}}},
		Result: domain.SolverRefundResult{Solver: domain.OwnerRef{
			ChainID: testChain,
			Address: "0x2222222222222222222222222222222222222222",
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ResultStatusFailure, result.Status)
	assert.Equal(t, domain.ResultDetailsReallocationFailed, result.Details)
	assert.ErrorIs(t, result.Err, domain.ErrReallocationFailed)
	assert.Equal(t, 1, s.attempts)
}

func TestAbortedTransactionIsRetried(t *testing.T) {
	s := &fakeStore{
		tx: &fakeTx{lock: testLock()},
		failures: []error{
			fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"}),
			&pgconn.PgError{Code: "40001"},
		},
	}
	exec := newFakeExecutor(t, s)

	result, err := exec.ExecuteSolverRefund(context.Background(), domain.SolverRefundAction{
		Data: domain.SolverRefundData{OrderID: "order", Inputs: []domain.SolverInput{{LockID: randomID()}}},
		Result: domain.SolverRefundResult{Solver: domain.OwnerRef{
			ChainID: testChain,
			Address: "0x2222222222222222222222222222222222222222",
		}},
	})
	require.NoError(t, err)
	// The fake reallocation never completes, which shows the third attempt ran the steps
	assert.Equal(t, domain.ResultDetailsReallocationFailed, result.Details)
	assert.Equal(t, 3, s.attempts)
}

func TestRetriesAreBounded(t *testing.T) {
	deadlock := &pgconn.PgError{Code: "40P01"}
	s := &fakeStore{failures: []error{deadlock, deadlock, deadlock, deadlock, deadlock}}
	exec := newFakeExecutor(t, s)

	result, err := exec.ExecuteWithdrawal(context.Background(), buildWithdrawal(randomID(), domain.WithdrawalStatusExecuted))
	require.NoError(t, err)
	assert.Equal(t, domain.Failure(domain.ResultDetailsUnknown, result.Err), result)
	assert.True(t, store.IsRetryable(result.Err))
	assert.Equal(t, 4, s.attempts)
}

func TestOtherErrorsAreNotRetried(t *testing.T) {
	s := &fakeStore{failures: []error{errors.New("connection refused"), nil}}
	exec := newFakeExecutor(t, s)

	result, err := exec.ExecuteWithdrawal(context.Background(), buildWithdrawal(randomID(), domain.WithdrawalStatusExecuted))
	require.NoError(t, err)
	assert.Equal(t, domain.ResultDetailsUnknown, result.Details)
	assert.EqualError(t, result.Err, "connection refused")
	assert.Equal(t, 1, s.attempts)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		details domain.ResultDetails
		err     error
		want    domain.ActionResult
	}{
		{"applied", domain.ResultDetailsSuccess, nil, domain.Success(domain.ResultDetailsSuccess)},
		{"replay without writes", domain.ResultDetailsAlreadySaved, nil, domain.Success(domain.ResultDetailsAlreadySaved)},
		{"replay rolled back", domain.ResultDetailsAlreadyUnlocked, errAlreadyApplied, domain.Success(domain.ResultDetailsAlreadyUnlocked)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classify(tt.details, tt.err))
		})
	}

	wrapped := fmt.Errorf("step: %w", domain.ErrReallocationFailed)
	assert.Equal(t, domain.Failure(domain.ResultDetailsReallocationFailed, wrapped), classify("", wrapped))

	overdraw := fmt.Errorf("%w: check violation", domain.ErrInsufficientBalance)
	assert.Equal(t, domain.Failure(domain.ResultDetailsInsufficientBalance, overdraw), classify("", overdraw))

	other := errors.New("boom")
	assert.Equal(t, domain.Failure(domain.ResultDetailsUnknown, other), classify("", other))
}
