package executor

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/registry"
	"github.com/relay-hub/settlement-hub/internal/store"
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

const (
	testChain    = "ethereum"
	testCurrency = "0x0000000000000000000000000000000000000000"
	fivePercent  = "50000000000000000"
)

var testChains = registry.StaticSource{
	{ID: "ethereum", VmType: domain.VmTypeEthereum},
	{ID: "solana", VmType: domain.VmTypeSolana},
}

// =============================================================================
// Test Data Builders
// =============================================================================

type testEnv struct {
	ctx   context.Context
	store store.Store
	exec  Executor
}

// newTestEnv builds an executor over the shared database. Tests isolate themselves by using fresh owners.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	chains, err := registry.NewChainRegistry(ctx, testChains)
	require.NoError(t, err)

	s := store.NewPGStore(testDB, adapter.NewClock())
	resolver := normalizer.NewResolver(chains, normalizer.New())
	return &testEnv{
		ctx:   ctx,
		store: s,
		exec:  NewExecutor(s, resolver, adapter.NewJSON(), Config{MaxRetries: 5, RetryInitialInterval: time.Millisecond}),
	}
}

func randomID() string {
	return crypto.Keccak256Hash([]byte(uuid.NewString())).Hex()
}

func randomAddress(t *testing.T) string {
	t.Helper()
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	return strings.ToLower(crypto.PubkeyToAddress(key.PublicKey).Hex())
}

func ownerKey(owner string) domain.BalanceKey {
	return domain.BalanceKey{
		Owner:    domain.OwnerRef{ChainID: testChain, Address: owner},
		Currency: domain.CurrencyRef{ChainID: testChain, Currency: testCurrency},
	}
}

func buildDeposit(owner, amount, depositID string) domain.DepositAction {
	return domain.DepositAction{
		Data: domain.DepositData{
			Kind:          domain.CustodyKindDepository,
			ChainID:       testChain,
			TransactionID: randomID(),
		},
		Result: domain.DepositResult{
			OnchainID: randomID(),
			Depositor: owner,
			Currency:  testCurrency,
			Amount:    amount,
			DepositID: depositID,
		},
	}
}

func buildWithdrawal(withdrawalID string, status domain.WithdrawalStatus) domain.WithdrawalAction {
	return domain.WithdrawalAction{
		Data: domain.WithdrawalData{
			Kind:          domain.CustodyKindDepository,
			ChainID:       testChain,
			TransactionID: randomID(),
		},
		Result: domain.WithdrawalResult{
			OnchainID:    randomID(),
			WithdrawalID: withdrawalID,
			Status:       status,
		},
	}
}

// deposit credits owner with amount, locked under depositID when it is not empty
func (e *testEnv) deposit(t *testing.T, owner, amount, depositID string) {
	t.Helper()
	result, err := e.exec.ExecuteDeposit(e.ctx, buildDeposit(owner, amount, depositID))
	require.NoError(t, err)
	require.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)
}

// lock reserves amount of owner's balance under a fresh id
func (e *testEnv) lock(t *testing.T, owner string, source schema.LockSource, amount int64, expiration *time.Time) string {
	t.Helper()
	id := randomID()
	require.NoError(t, e.store.Transaction(e.ctx, func(tx store.Tx) error {
		result, err := tx.Lock(store.LockInput{
			ID:         id,
			Source:     source,
			Key:        ownerKey(owner),
			Amount:     big.NewInt(amount),
			Expiration: expiration,
		})
		if err != nil {
			return err
		}
		require.True(t, result.Applied)
		return nil
	}))
	return id
}

func (e *testEnv) requireBalance(t *testing.T, owner, available, locked string) {
	t.Helper()
	balance, err := e.store.GetBalance(e.ctx, ownerKey(owner))
	require.NoError(t, err)
	require.NotNil(t, balance, "balance of %s", owner)
	assert.Equal(t, available, balance.AvailableAmount, "available of %s", owner)
	assert.Equal(t, locked, balance.LockedAmount, "locked of %s", owner)
}

func fill(lockIDs []string, solver string, fees []domain.SolverFee, bpsDiff string) domain.SolverFillAction {
	inputs := make([]domain.SolverInput, 0, len(lockIDs))
	for _, id := range lockIDs {
		inputs = append(inputs, domain.SolverInput{LockID: id})
	}
	return domain.SolverFillAction{
		Data:   domain.SolverFillData{OrderID: uuid.NewString(), Inputs: inputs, Fees: fees},
		Result: domain.SolverFillResult{Solver: domain.OwnerRef{ChainID: testChain, Address: solver}, BpsDiff: bpsDiff},
	}
}

// =============================================================================
// Deposit
// =============================================================================

func TestExecuteDeposit(t *testing.T) {
	env := newTestEnv(t)

	t.Run("unbound deposit credits available", func(t *testing.T) {
		owner := randomAddress(t)
		action := buildDeposit(owner, "1000", "")

		result, err := env.exec.ExecuteDeposit(env.ctx, action)
		require.NoError(t, err)
		assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)
		env.requireBalance(t, owner, "1000", "0")

		result, err = env.exec.ExecuteDeposit(env.ctx, action)
		require.NoError(t, err)
		assert.Equal(t, domain.Success(domain.ResultDetailsAlreadySaved), result)
		assert.True(t, result.IsReplay())
		env.requireBalance(t, owner, "1000", "0")

		entry, err := env.store.GetEntry(env.ctx, action.Result.OnchainID)
		require.NoError(t, err)
		require.NotNil(t, entry)
		assert.Equal(t, "1000", entry.BalanceDiff)
		assert.Equal(t, string(domain.CustodyKindDepository), entry.Kind)
	})

	t.Run("zero deposit id is unbound", func(t *testing.T) {
		owner := randomAddress(t)
		env.deposit(t, owner, "250", domain.ZeroID)
		env.requireBalance(t, owner, "250", "0")
	})

	t.Run("bound deposit is locked under its deposit id", func(t *testing.T) {
		owner := randomAddress(t)
		depositID := randomID()
		env.deposit(t, owner, "700", depositID)
		env.requireBalance(t, owner, "0", "700")

		lock, err := env.store.GetLock(env.ctx, depositID)
		require.NoError(t, err)
		require.NotNil(t, lock)
		assert.Equal(t, schema.LockSourceDeposit, lock.Source)
		assert.Equal(t, "700", lock.Amount)
		assert.False(t, lock.Executed)
	})

	t.Run("reused deposit id keeps the credit but not a second lock", func(t *testing.T) {
		owner := randomAddress(t)
		depositID := randomID()
		env.deposit(t, owner, "700", depositID)

		result, err := env.exec.ExecuteDeposit(env.ctx, buildDeposit(owner, "300", depositID))
		require.NoError(t, err)
		assert.Equal(t, domain.Success(domain.ResultDetailsAlreadyLocked), result)
		env.requireBalance(t, owner, "300", "700")
	})

	t.Run("identifiers are normalized before keying", func(t *testing.T) {
		owner := randomAddress(t)
		action := buildDeposit("0x"+strings.ToUpper(owner[2:]), "5", "")
		action.Result.OnchainID = strings.ToUpper(action.Result.OnchainID)

		result, err := env.exec.ExecuteDeposit(env.ctx, action)
		require.NoError(t, err)
		assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)
		env.requireBalance(t, owner, "5", "0")
	})
}

func TestExecuteDepositValidation(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)

	tests := []struct {
		name   string
		mutate func(a *domain.DepositAction)
		target error
	}{
		{"unknown chain", func(a *domain.DepositAction) { a.Data.ChainID = "cosmos" }, domain.ErrChainNotFound},
		{"bad custody kind", func(a *domain.DepositAction) { a.Data.Kind = "vault" }, domain.ErrValidation},
		{"bad transaction id", func(a *domain.DepositAction) { a.Data.TransactionID = "0x1234" }, domain.ErrValidation},
		{"bad onchain id", func(a *domain.DepositAction) { a.Result.OnchainID = "nope" }, domain.ErrValidation},
		{"bad depositor", func(a *domain.DepositAction) { a.Result.Depositor = "0xabc" }, domain.ErrValidation},
		{"zero amount", func(a *domain.DepositAction) { a.Result.Amount = "0" }, domain.ErrValidation},
		{"negative amount", func(a *domain.DepositAction) { a.Result.Amount = "-5" }, domain.ErrValidation},
		{"bad deposit id", func(a *domain.DepositAction) { a.Result.DepositID = "0x01" }, domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := buildDeposit(owner, "10", "")
			tt.mutate(&action)

			_, err := env.exec.ExecuteDeposit(env.ctx, action)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
			assert.True(t, domain.IsValidationError(err))
		})
	}

	balance, err := env.store.GetBalance(env.ctx, ownerKey(owner))
	require.NoError(t, err)
	assert.Nil(t, balance)
}

func TestExecuteDepositConcurrentReplays(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	action := buildDeposit(owner, "1000000", randomID())

	const deliveries = 100
	results := make([]domain.ActionResult, deliveries)
	errs := make([]error, deliveries)

	var wg sync.WaitGroup
	for i := 0; i < deliveries; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = env.exec.ExecuteDeposit(env.ctx, action)
		}(i)
	}
	wg.Wait()

	applied := 0
	for i := range results {
		require.NoError(t, errs[i])
		require.True(t, results[i].Succeeded(), "delivery %d: %+v", i, results[i])
		if !results[i].IsReplay() {
			applied++
		}
	}
	assert.Equal(t, 1, applied)
	env.requireBalance(t, owner, "0", "1000000")
}

// =============================================================================
// Withdrawal
// =============================================================================

func TestExecuteWithdrawalExecuted(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	env.deposit(t, owner, "1000", "")
	withdrawalID := env.lock(t, owner, schema.LockSourceWithdrawal, 400, nil)
	env.requireBalance(t, owner, "600", "400")

	action := buildWithdrawal(withdrawalID, domain.WithdrawalStatusExecuted)
	result, err := env.exec.ExecuteWithdrawal(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)
	env.requireBalance(t, owner, "600", "0")

	entry, err := env.store.GetEntry(env.ctx, action.Result.OnchainID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, "-400", entry.BalanceDiff)
	require.NotNil(t, entry.SettledLockID)
	assert.Equal(t, withdrawalID, *entry.SettledLockID)

	// Redelivery of the same confirmation
	result, err = env.exec.ExecuteWithdrawal(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsAlreadyUnlocked), result)
	env.requireBalance(t, owner, "600", "0")
}

func TestExecuteWithdrawalRejectsDepositLock(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	depositID := randomID()
	env.deposit(t, owner, "1000", depositID)

	result, err := env.exec.ExecuteWithdrawal(env.ctx, buildWithdrawal(depositID, domain.WithdrawalStatusExecuted))
	require.NoError(t, err)
	assert.Equal(t, domain.ResultStatusFailure, result.Status)
	assert.Equal(t, domain.ResultDetailsUnknown, result.Details)
	assert.ErrorIs(t, result.Err, domain.ErrLockSourceMismatch)

	env.requireBalance(t, owner, "0", "1000")
	lock, err := env.store.GetLock(env.ctx, depositID)
	require.NoError(t, err)
	assert.False(t, lock.Executed)
}

func TestExecuteWithdrawalUnknownLock(t *testing.T) {
	env := newTestEnv(t)

	result, err := env.exec.ExecuteWithdrawal(env.ctx, buildWithdrawal(randomID(), domain.WithdrawalStatusExecuted))
	require.NoError(t, err)
	assert.Equal(t, domain.ResultStatusFailure, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrLockNotFound)
}

func TestExecuteWithdrawalExpired(t *testing.T) {
	env := newTestEnv(t)

	t.Run("expired lock returns to available", func(t *testing.T) {
		owner := randomAddress(t)
		env.deposit(t, owner, "1000", "")
		past := time.Now().Add(-time.Hour)
		withdrawalID := env.lock(t, owner, schema.LockSourceWithdrawal, 400, &past)

		action := buildWithdrawal(withdrawalID, domain.WithdrawalStatusExpired)
		result, err := env.exec.ExecuteWithdrawal(env.ctx, action)
		require.NoError(t, err)
		assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)
		env.requireBalance(t, owner, "1000", "0")

		entry, err := env.store.GetEntry(env.ctx, action.Result.OnchainID)
		require.NoError(t, err)
		assert.Nil(t, entry)

		result, err = env.exec.ExecuteWithdrawal(env.ctx, action)
		require.NoError(t, err)
		assert.Equal(t, domain.Success(domain.ResultDetailsAlreadyUnlocked), result)
		env.requireBalance(t, owner, "1000", "0")
	})

	t.Run("running lock is left alone", func(t *testing.T) {
		owner := randomAddress(t)
		env.deposit(t, owner, "1000", "")
		withdrawalID := env.lock(t, owner, schema.LockSourceWithdrawal, 400, nil)

		result, err := env.exec.ExecuteWithdrawal(env.ctx, buildWithdrawal(withdrawalID, domain.WithdrawalStatusExpired))
		require.NoError(t, err)
		assert.Equal(t, domain.ResultStatusFailure, result.Status)
		assert.ErrorIs(t, result.Err, domain.ErrLockNotExpired)
		env.requireBalance(t, owner, "600", "400")
	})
}

func TestExecuteWithdrawalValidation(t *testing.T) {
	env := newTestEnv(t)

	action := buildWithdrawal(randomID(), "pending")
	_, err := env.exec.ExecuteWithdrawal(env.ctx, action)
	assert.ErrorIs(t, err, domain.ErrValidation)

	action = buildWithdrawal("0xnothex", domain.WithdrawalStatusExecuted)
	_, err = env.exec.ExecuteWithdrawal(env.ctx, action)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// =============================================================================
// Solver fill and refund
// =============================================================================

func TestExecuteSolverFill(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	solver := randomAddress(t)
	feeRecipient := randomAddress(t)

	first, second := randomID(), randomID()
	env.deposit(t, owner, "600", first)
	env.deposit(t, owner, "400", second)
	env.requireBalance(t, owner, "0", "1000")

	action := fill([]string{first, second}, solver, []domain.SolverFee{{
		Recipient: domain.OwnerRef{ChainID: testChain, Address: feeRecipient},
		Currency:  domain.CurrencyRef{ChainID: testChain, Currency: testCurrency},
		Amount:    "100",
	}}, fivePercent)

	result, err := env.exec.ExecuteSolverFill(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)

	env.requireBalance(t, owner, "0", "0")
	env.requireBalance(t, solver, "895", "0")
	env.requireBalance(t, feeRecipient, "105", "0")

	result, err = env.exec.ExecuteSolverFill(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsAlreadyUnlocked), result)
	env.requireBalance(t, solver, "895", "0")
	env.requireBalance(t, feeRecipient, "105", "0")
}

func TestExecuteSolverFillRollsBackOnUncoveredFee(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	solver := randomAddress(t)
	lockID := randomID()
	env.deposit(t, owner, "1000", lockID)

	action := fill([]string{lockID}, solver, []domain.SolverFee{{
		Recipient: domain.OwnerRef{ChainID: testChain, Address: randomAddress(t)},
		Currency:  domain.CurrencyRef{ChainID: testChain, Currency: testCurrency},
		Amount:    "1000",
	}}, fivePercent)

	result, err := env.exec.ExecuteSolverFill(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Failure(domain.ResultDetailsInsufficientBalance, result.Err), result)
	assert.ErrorIs(t, result.Err, domain.ErrInsufficientBalance)

	env.requireBalance(t, owner, "0", "1000")
	lock, err := env.store.GetLock(env.ctx, lockID)
	require.NoError(t, err)
	assert.False(t, lock.Executed)
}

func TestExecuteSolverFillPartiallyConsumedInputs(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	solver := randomAddress(t)
	consumed, fresh := randomID(), randomID()
	env.deposit(t, owner, "300", consumed)
	env.deposit(t, owner, "200", fresh)

	result, err := env.exec.ExecuteSolverRefund(env.ctx, domain.SolverRefundAction{
		Data:   domain.SolverRefundData{OrderID: "first", Inputs: []domain.SolverInput{{LockID: consumed}}},
		Result: domain.SolverRefundResult{Solver: domain.OwnerRef{ChainID: testChain, Address: solver}},
	})
	require.NoError(t, err)
	require.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)

	// The fresh input must not be released when another input was already consumed
	result, err = env.exec.ExecuteSolverFill(env.ctx, fill([]string{fresh, consumed}, solver, nil, ""))
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsAlreadyUnlocked), result)

	env.requireBalance(t, owner, "0", "200")
	env.requireBalance(t, solver, "300", "0")
}

func TestExecuteSolverFillRejectsWithdrawalLock(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	env.deposit(t, owner, "1000", "")
	withdrawalID := env.lock(t, owner, schema.LockSourceWithdrawal, 1000, nil)

	result, err := env.exec.ExecuteSolverFill(env.ctx, fill([]string{withdrawalID}, randomAddress(t), nil, ""))
	require.NoError(t, err)
	assert.Equal(t, domain.ResultStatusFailure, result.Status)
	assert.ErrorIs(t, result.Err, domain.ErrLockSourceMismatch)
	env.requireBalance(t, owner, "0", "1000")
}

func TestExecuteSolverFillValidation(t *testing.T) {
	env := newTestEnv(t)
	solver := randomAddress(t)
	id := randomID()

	tests := []struct {
		name   string
		action domain.SolverFillAction
	}{
		{"no inputs", fill(nil, solver, nil, "")},
		{"duplicate inputs", fill([]string{id, strings.ToUpper(id)}, solver, nil, "")},
		{"bad bps diff", fill([]string{id}, solver, nil, "5%")},
		{"bad solver", fill([]string{id}, "0x12", nil, "")},
		{"bad fee amount", fill([]string{id}, solver, []domain.SolverFee{{
			Recipient: domain.OwnerRef{ChainID: testChain, Address: solver},
			Currency:  domain.CurrencyRef{ChainID: testChain, Currency: testCurrency},
			Amount:    "-1",
		}}, "")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.exec.ExecuteSolverFill(env.ctx, tt.action)
			assert.True(t, domain.IsValidationError(err), "got %v", err)
		})
	}

	action := fill([]string{id}, solver, nil, "")
	action.Data.OrderID = " "
	_, err := env.exec.ExecuteSolverFill(env.ctx, action)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestExecuteSolverRefund(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	solver := randomAddress(t)
	lockID := randomID()
	env.deposit(t, owner, "1000", lockID)

	action := domain.SolverRefundAction{
		Data:   domain.SolverRefundData{OrderID: uuid.NewString(), Inputs: []domain.SolverInput{{LockID: lockID}}},
		Result: domain.SolverRefundResult{Solver: domain.OwnerRef{ChainID: testChain, Address: solver}},
	}

	result, err := env.exec.ExecuteSolverRefund(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), result)
	env.requireBalance(t, owner, "0", "0")
	env.requireBalance(t, solver, "1000", "0")

	result, err = env.exec.ExecuteSolverRefund(env.ctx, action)
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsAlreadyUnlocked), result)
	env.requireBalance(t, solver, "1000", "0")
}

// =============================================================================
// Dispatch
// =============================================================================

func TestExecuteDecodesAttestedActions(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	deposit := buildDeposit(owner, "42", "")

	data, err := json.Marshal(deposit.Data)
	require.NoError(t, err)
	result, err := json.Marshal(deposit.Result)
	require.NoError(t, err)

	outcome, err := env.exec.Execute(env.ctx, domain.AttestedAction{Kind: domain.ActionKindDeposit, Data: data, Result: result})
	require.NoError(t, err)
	assert.Equal(t, domain.Success(domain.ResultDetailsSuccess), outcome)
	env.requireBalance(t, owner, "42", "0")

	_, err = env.exec.Execute(env.ctx, domain.AttestedAction{Kind: "mint", Data: data, Result: result})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = env.exec.Execute(env.ctx, domain.AttestedAction{Kind: domain.ActionKindWithdrawal, Data: json.RawMessage(`[`), Result: result})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

// =============================================================================
// Deposit then partial withdrawal, with conservation checked at every step
// =============================================================================

func TestConservationAcrossActions(t *testing.T) {
	env := newTestEnv(t)
	owner := randomAddress(t)
	solver := randomAddress(t)

	total := func() *big.Int {
		sum := new(big.Int)
		for _, who := range []string{owner, solver} {
			balance, err := env.store.GetBalance(env.ctx, ownerKey(who))
			require.NoError(t, err)
			if balance != nil {
				sum.Add(sum, balance.Total())
			}
		}
		return sum
	}

	lockID := randomID()
	env.deposit(t, owner, "5000", lockID)
	env.deposit(t, owner, "3000", "")
	assert.Equal(t, int64(8000), total().Int64())

	_, err := env.exec.ExecuteSolverRefund(env.ctx, domain.SolverRefundAction{
		Data:   domain.SolverRefundData{OrderID: "order", Inputs: []domain.SolverInput{{LockID: lockID}}},
		Result: domain.SolverRefundResult{Solver: domain.OwnerRef{ChainID: testChain, Address: solver}},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(8000), total().Int64())

	withdrawalID := env.lock(t, owner, schema.LockSourceWithdrawal, 1000, nil)
	assert.Equal(t, int64(8000), total().Int64())

	result, err := env.exec.ExecuteWithdrawal(env.ctx, buildWithdrawal(withdrawalID, domain.WithdrawalStatusExecuted))
	require.NoError(t, err)
	require.True(t, result.Succeeded())
	assert.Equal(t, int64(7000), total().Int64())

	env.requireBalance(t, owner, "2000", "0")
	env.requireBalance(t, solver, "5000", "0")
}
