package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/metrics"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/store"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// Executor applies attested settlement actions to the balance ledger.
// Every entry point runs inside one database transaction and returns a tagged result;
// the error is non-nil only when the action was rejected as malformed before any write.
//
//go:generate mockgen -source=executor.go -destination=../mocks/executor.go -package=mocks -mock_names=Executor=MockExecutor
type Executor interface {
	// Execute decodes a verified attested action and runs the matching entry point
	Execute(ctx context.Context, action domain.AttestedAction) (domain.ActionResult, error)
	// ExecuteDeposit credits a deposit and, when bound, locks it under its deposit id
	ExecuteDeposit(ctx context.Context, action domain.DepositAction) (domain.ActionResult, error)
	// ExecuteWithdrawal settles or releases the lock of a withdrawal request
	ExecuteWithdrawal(ctx context.Context, action domain.WithdrawalAction) (domain.ActionResult, error)
	// ExecuteSolverFill hands the locked order inputs to the solver and pays its fees
	ExecuteSolverFill(ctx context.Context, action domain.SolverFillAction) (domain.ActionResult, error)
	// ExecuteSolverRefund hands the locked order inputs to the solver that refunded the user
	ExecuteSolverRefund(ctx context.Context, action domain.SolverRefundAction) (domain.ActionResult, error)
}

// Config holds executor settings
type Config struct {
	// MaxRetries bounds how many times an aborted transaction is replayed
	MaxRetries uint64
	// RetryInitialInterval is the first backoff delay between replays
	RetryInitialInterval time.Duration
}

// errAlreadyApplied rolls back a transaction that discovered the action was applied before
var errAlreadyApplied = errors.New("action already applied")

// txFunc runs the steps of one action and reports the success variant it reached
type txFunc func(tx store.Tx) (domain.ResultDetails, error)

type executor struct {
	store    store.Store
	resolver *normalizer.Resolver
	json     adapter.JSON
	config   Config
}

// NewExecutor creates a new settlement action executor
func NewExecutor(store store.Store, resolver *normalizer.Resolver, json adapter.JSON, config Config) Executor {
	if config.RetryInitialInterval == 0 {
		config.RetryInitialInterval = 50 * time.Millisecond
	}
	return &executor{
		store:    store,
		resolver: resolver,
		json:     json,
		config:   config,
	}
}

// Execute decodes the data and result of action into the typed message of its kind
func (e *executor) Execute(ctx context.Context, action domain.AttestedAction) (domain.ActionResult, error) {
	switch action.Kind {
	case domain.ActionKindDeposit:
		var a domain.DepositAction
		if err := e.decode(action, &a.Data, &a.Result); err != nil {
			return domain.ActionResult{}, err
		}
		return e.ExecuteDeposit(ctx, a)
	case domain.ActionKindWithdrawal:
		var a domain.WithdrawalAction
		if err := e.decode(action, &a.Data, &a.Result); err != nil {
			return domain.ActionResult{}, err
		}
		return e.ExecuteWithdrawal(ctx, a)
	case domain.ActionKindSolverFill:
		var a domain.SolverFillAction
		if err := e.decode(action, &a.Data, &a.Result); err != nil {
			return domain.ActionResult{}, err
		}
		return e.ExecuteSolverFill(ctx, a)
	case domain.ActionKindSolverRefund:
		var a domain.SolverRefundAction
		if err := e.decode(action, &a.Data, &a.Result); err != nil {
			return domain.ActionResult{}, err
		}
		return e.ExecuteSolverRefund(ctx, a)
	default:
		return domain.ActionResult{}, domain.NewValidationError("kind", string(action.Kind), "unknown action kind")
	}
}

func (e *executor) decode(action domain.AttestedAction, data, result interface{}) error {
	if err := e.json.Unmarshal(action.Data, data); err != nil {
		return domain.NewValidationError("data", "", err.Error())
	}
	if err := e.json.Unmarshal(action.Result, result); err != nil {
		return domain.NewValidationError("result", "", err.Error())
	}
	return nil
}

// ExecuteDeposit journals the deposit and locks it when a deposit id binds it to a pending request
func (e *executor) ExecuteDeposit(ctx context.Context, action domain.DepositAction) (domain.ActionResult, error) {
	d, err := e.validateDeposit(action)
	if err != nil {
		return domain.ActionResult{}, err
	}

	ctx = logger.WithFields(ctx,
		zap.String("kind", string(domain.ActionKindDeposit)),
		zap.String("entry_id", d.entryID),
		zap.String("balance", d.key.String()),
	)

	return e.run(ctx, domain.ActionKindDeposit, func(tx store.Tx) (domain.ResultDetails, error) {
		entry, err := tx.RecordEntry(store.RecordEntryInput{
			ID:            d.entryID,
			Kind:          d.custody,
			ChainID:       d.chainID,
			TransactionID: d.txID,
			Key:           d.key,
			Delta:         d.amount,
		})
		if err != nil {
			return "", err
		}
		if !entry.Applied {
			return domain.ResultDetailsAlreadySaved, nil
		}

		if d.depositID == "" {
			return domain.ResultDetailsSuccess, nil
		}

		lock, err := tx.Lock(store.LockInput{
			ID:     d.depositID,
			Source: schema.LockSourceDeposit,
			Key:    d.key,
			Amount: d.amount,
		})
		if err != nil {
			return "", err
		}
		if !lock.Applied {
			// The credit stays: the deposit is new, only the binding was seen before
			return domain.ResultDetailsAlreadyLocked, nil
		}
		return domain.ResultDetailsSuccess, nil
	}), nil
}

// ExecuteWithdrawal consumes the withdrawal lock once the payout happened on-chain,
// or returns its value to available once the request expired unexecuted.
func (e *executor) ExecuteWithdrawal(ctx context.Context, action domain.WithdrawalAction) (domain.ActionResult, error) {
	w, err := e.validateWithdrawal(action)
	if err != nil {
		return domain.ActionResult{}, err
	}

	ctx = logger.WithFields(ctx,
		zap.String("kind", string(domain.ActionKindWithdrawal)),
		zap.String("entry_id", w.entryID),
		zap.String("withdrawal_id", w.withdrawalID),
		zap.String("status", string(w.status)),
	)

	if w.status == domain.WithdrawalStatusExpired {
		return e.run(ctx, domain.ActionKindWithdrawal, func(tx store.Tx) (domain.ResultDetails, error) {
			unlocked, err := tx.Unlock(w.withdrawalID, store.UnlockOptions{CheckExpiration: true})
			if err != nil {
				return "", err
			}
			if !unlocked.Applied {
				return notUnlocked(tx, w.withdrawalID, true)
			}
			if unlocked.Lock.Source != schema.LockSourceWithdrawal {
				return "", fmt.Errorf("%w: %s is a %s lock", domain.ErrLockSourceMismatch, w.withdrawalID, unlocked.Lock.Source)
			}
			return domain.ResultDetailsSuccess, nil
		}), nil
	}

	return e.run(ctx, domain.ActionKindWithdrawal, func(tx store.Tx) (domain.ResultDetails, error) {
		unlocked, err := tx.Unlock(w.withdrawalID, store.UnlockOptions{SkipAvailableAdjustment: true})
		if err != nil {
			return "", err
		}
		if !unlocked.Applied {
			return notUnlocked(tx, w.withdrawalID, false)
		}

		lock := unlocked.Lock
		if lock.Source != schema.LockSourceWithdrawal {
			return "", fmt.Errorf("%w: %s is a %s lock", domain.ErrLockSourceMismatch, lock.ID, lock.Source)
		}
		entry, err := tx.RecordEntry(store.RecordEntryInput{
			ID:            w.entryID,
			Kind:          w.custody,
			ChainID:       w.chainID,
			TransactionID: w.txID,
			Key:           lockKey(lock),
			Delta:         negate(lock.AmountInt()),
			SettledLockID: &lock.ID,
		})
		if err != nil {
			return "", err
		}
		if !entry.Applied {
			return domain.ResultDetailsAlreadySaved, errAlreadyApplied
		}

		if err := tx.MarkWithdrawalExecuted(lock.ID); err != nil {
			return "", err
		}
		return domain.ResultDetailsSuccess, nil
	}), nil
}

// ExecuteSolverFill releases every order input, moves it to the solver and pays the fees out of the solver balance
func (e *executor) ExecuteSolverFill(ctx context.Context, action domain.SolverFillAction) (domain.ActionResult, error) {
	f, err := e.validateSolverFill(action)
	if err != nil {
		return domain.ActionResult{}, err
	}

	ctx = logger.WithFields(ctx,
		zap.String("kind", string(domain.ActionKindSolverFill)),
		zap.String("order_id", f.orderID),
		zap.String("solver", f.solver.ChainID+":"+f.solver.Address),
	)

	return e.run(ctx, domain.ActionKindSolverFill, func(tx store.Tx) (domain.ResultDetails, error) {
		if details, err := settleInputs(tx, f.lockIDs, f.solver); err != nil || details != "" {
			return details, err
		}

		for _, fee := range f.fees {
			amount := FillFee(fee.amount, f.bpsDiff)
			if amount.Sign() == 0 {
				continue
			}
			from := domain.BalanceKey{Owner: f.solver, Currency: fee.currency}
			if err := reallocate(tx, from, fee.recipient, amount); err != nil {
				return "", err
			}
		}
		return domain.ResultDetailsSuccess, nil
	}), nil
}

// ExecuteSolverRefund releases every order input and moves it to the solver
func (e *executor) ExecuteSolverRefund(ctx context.Context, action domain.SolverRefundAction) (domain.ActionResult, error) {
	r, err := e.validateSolverRefund(action)
	if err != nil {
		return domain.ActionResult{}, err
	}

	ctx = logger.WithFields(ctx,
		zap.String("kind", string(domain.ActionKindSolverRefund)),
		zap.String("order_id", r.orderID),
		zap.String("solver", r.solver.ChainID+":"+r.solver.Address),
	)

	return e.run(ctx, domain.ActionKindSolverRefund, func(tx store.Tx) (domain.ResultDetails, error) {
		if details, err := settleInputs(tx, r.lockIDs, r.solver); err != nil || details != "" {
			return details, err
		}
		return domain.ResultDetailsSuccess, nil
	}), nil
}

// settleInputs unlocks every input lock back to its owner's available and reallocates it to solver.
// A non-empty details means the action was applied before and the transaction must roll back.
func settleInputs(tx store.Tx, lockIDs []string, solver domain.OwnerRef) (domain.ResultDetails, error) {
	for _, id := range lockIDs {
		unlocked, err := tx.Unlock(id, store.UnlockOptions{})
		if err != nil {
			return "", err
		}
		if !unlocked.Applied {
			return notUnlocked(tx, id, false)
		}
		if unlocked.Lock.Source != schema.LockSourceDeposit {
			return "", fmt.Errorf("%w: %s is a %s lock", domain.ErrLockSourceMismatch, id, unlocked.Lock.Source)
		}

		if err := reallocate(tx, lockKey(unlocked.Lock), solver, unlocked.Lock.AmountInt()); err != nil {
			return "", err
		}
	}
	return "", nil
}

// reallocate creates the recipient row and moves amount, failing unless both sides landed
func reallocate(tx store.Tx, from domain.BalanceKey, to domain.OwnerRef, amount *big.Int) error {
	if err := tx.InitializeBalance(from.WithOwner(to)); err != nil {
		return err
	}
	result, err := tx.Reallocate(from, to, amount)
	if err != nil {
		return err
	}
	if !result.Complete() {
		return fmt.Errorf("%w: %s to %s:%s", domain.ErrReallocationFailed, from, to.ChainID, to.Address)
	}
	return nil
}

// notUnlocked tells an already executed lock apart from a missing or still running one
func notUnlocked(tx store.Tx, id string, checkExpiration bool) (domain.ResultDetails, error) {
	lock, err := tx.GetLock(id)
	if err != nil {
		return "", err
	}
	switch {
	case lock == nil:
		return "", fmt.Errorf("%w: %s", domain.ErrLockNotFound, id)
	case lock.Executed:
		return domain.ResultDetailsAlreadyUnlocked, errAlreadyApplied
	case checkExpiration:
		return "", fmt.Errorf("%w: %s expires at %s", domain.ErrLockNotExpired, id, lock.Expiration.Format(time.RFC3339))
	default:
		return "", fmt.Errorf("balance lock %s could not be unlocked", id)
	}
}

// run executes fn in a transaction, replaying it when Postgres aborts it with a
// deadlock or serialization failure, and classifies the outcome.
func (e *executor) run(ctx context.Context, kind domain.ActionKind, fn txFunc) domain.ActionResult {
	start := time.Now()
	defer func() {
		metrics.ActionDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
	}()

	var details domain.ResultDetails
	operation := func() error {
		err := e.store.Transaction(ctx, func(tx store.Tx) error {
			var err error
			details, err = fn(tx)
			return err
		})
		if err == nil || store.IsRetryable(err) {
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.config.RetryInitialInterval
	b.MaxInterval = 2 * time.Second
	retryable := backoff.WithContext(backoff.WithMaxRetries(b, e.config.MaxRetries), ctx)

	var attemptCount int
	notifyOnError := func(err error, next time.Duration) {
		attemptCount++
		metrics.TransactionRetries.WithLabelValues(string(kind)).Inc()
		logger.WarnCtx(ctx, "Settlement transaction aborted, retrying",
			zap.Error(err),
			zap.Int("attempt", attemptCount),
			zap.Duration("next_retry_in", next),
		)
	}

	result := classify(details, backoff.RetryNotify(operation, retryable, notifyOnError))
	metrics.ActionsExecuted.WithLabelValues(string(kind), string(result.Status), string(result.Details)).Inc()

	switch {
	case !result.Succeeded():
		logger.ErrorCtx(ctx, result.Err,
			zap.String("details", string(result.Details)),
			zap.Int("attempts", attemptCount+1),
		)
	case result.IsReplay():
		logger.InfoCtx(ctx, "Settlement action already applied", zap.String("details", string(result.Details)))
	default:
		logger.DebugCtx(ctx, "Settlement action applied")
	}
	return result
}

// classify maps the outcome of a transaction to the result taxonomy
func classify(details domain.ResultDetails, err error) domain.ActionResult {
	switch {
	case err == nil:
		return domain.Success(details)
	case errors.Is(err, errAlreadyApplied):
		return domain.Success(details)
	case errors.Is(err, domain.ErrReallocationFailed):
		return domain.Failure(domain.ResultDetailsReallocationFailed, err)
	case errors.Is(err, domain.ErrInsufficientBalance):
		return domain.Failure(domain.ResultDetailsInsufficientBalance, err)
	default:
		return domain.Failure(domain.ResultDetailsUnknown, err)
	}
}
