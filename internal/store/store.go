package store

import (
	"context"
	"math/big"
	"time"

	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// Store defines the interface for database operations
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=Store=MockStore
type Store interface {
	// Transaction runs fn inside one database transaction. Any error returned by fn rolls back every write made through tx.
	Transaction(ctx context.Context, fn func(tx Tx) error) error

	// GetBalance retrieves a balance by key, nil if the row does not exist
	GetBalance(ctx context.Context, key domain.BalanceKey) (*schema.Balance, error)
	// ListBalancesByOwner retrieves every balance held by an owner
	ListBalancesByOwner(ctx context.Context, owner domain.OwnerRef) ([]schema.Balance, error)
	// GetLock retrieves a balance lock by id, nil if not found
	GetLock(ctx context.Context, id string) (*schema.BalanceLock, error)
	// GetEntry retrieves a journal entry by id, nil if not found
	GetEntry(ctx context.Context, id string) (*schema.OnchainEntry, error)
	// GetWithdrawalRequest retrieves a withdrawal request by id, nil if not found
	GetWithdrawalRequest(ctx context.Context, id string) (*schema.WithdrawalRequest, error)

	// SaveNonceMapping inserts a nonce mapping, domain.ErrAlreadyExists if the key is taken
	SaveNonceMapping(ctx context.Context, mapping schema.NonceMapping) error
	// GetNonceMapping retrieves a nonce mapping, nil if not found
	GetNonceMapping(ctx context.Context, walletChainID, wallet, nonce string) (*schema.NonceMapping, error)
	// SaveDepositBinding inserts a deposit binding, domain.ErrAlreadyExists if the key is taken
	SaveDepositBinding(ctx context.Context, binding schema.DepositBinding) error
	// GetDepositBinding retrieves a deposit binding, nil if not found
	GetDepositBinding(ctx context.Context, depositorChainID, depositor, nonce string) (*schema.DepositBinding, error)
	// SaveRequestIDMapping inserts a request id mapping, domain.ErrAlreadyExists if the key is taken
	SaveRequestIDMapping(ctx context.Context, mapping schema.RequestIDMapping) error
	// GetRequestIDMapping retrieves a request id mapping, nil if not found
	GetRequestIDMapping(ctx context.Context, chainID, wallet, nonce string) (*schema.RequestIDMapping, error)

	// ListChains retrieves every registered chain
	ListChains(ctx context.Context) ([]schema.Chain, error)
	// UpsertChain registers a chain or replaces its settings
	UpsertChain(ctx context.Context, chain schema.Chain) error
}

// Tx exposes the balance ledger and journal primitives.
// A Tx only exists inside Store.Transaction, so none of these can run outside a transaction.
type Tx interface {
	// GetBalance reads a balance inside the transaction, nil if the row does not exist
	GetBalance(key domain.BalanceKey) (*schema.Balance, error)
	// InitializeBalance creates a zero balance row if none exists
	InitializeBalance(key domain.BalanceKey) error
	// Lock inserts a lock and, only if the insert happened, moves its amount from available to locked
	Lock(input LockInput) (LockResult, error)
	// Unlock marks a lock executed and releases its amount from locked
	Unlock(id string, opts UnlockOptions) (UnlockResult, error)
	// Reallocate moves available amount from one owner to another in the same currency
	Reallocate(from domain.BalanceKey, to domain.OwnerRef, amount *big.Int) (ReallocationResult, error)
	// RecordEntry journals an external event and, only on first insert, applies its delta
	RecordEntry(input RecordEntryInput) (EntryResult, error)
	// GetEntry reads a journal entry, nil if not found
	GetEntry(id string) (*schema.OnchainEntry, error)
	// GetLock reads a balance lock, nil if not found
	GetLock(id string) (*schema.BalanceLock, error)
	// CreateWithdrawalRequest inserts a withdrawal request
	CreateWithdrawalRequest(request schema.WithdrawalRequest) error
	// MarkWithdrawalExecuted flags a withdrawal request as paid out on-chain
	MarkWithdrawalExecuted(id string) error
}

// LockInput represents the data needed to create a balance lock
type LockInput struct {
	ID     string
	Source schema.LockSource
	Key    domain.BalanceKey
	Amount *big.Int
	// Expiration defaults to now + domain.DefaultLockTTL when nil
	Expiration *time.Time
}

// LockResult is the outcome of Lock. Applied is false when the lock id already existed.
type LockResult struct {
	Applied bool
	Balance *schema.Balance
}

// UnlockOptions tunes how Unlock releases a lock
type UnlockOptions struct {
	// SkipAvailableAdjustment leaves available untouched, for value that left the system or moves by reallocation
	SkipAvailableAdjustment bool
	// CheckExpiration only unlocks when the lock has expired
	CheckExpiration bool
}

// UnlockResult is the outcome of Unlock. Applied is false when the lock was missing, already executed or not yet expired.
type UnlockResult struct {
	Applied bool
	Lock    *schema.BalanceLock
	Balance *schema.Balance
}

// ReallocationResult holds the rows touched by a reallocation
type ReallocationResult struct {
	Debited  *schema.Balance
	Credited *schema.Balance
}

// Complete reports whether both sides of the reallocation landed
func (r ReallocationResult) Complete() bool {
	return r.Debited != nil && r.Credited != nil
}

// RecordEntryInput represents the data needed to journal an external event
type RecordEntryInput struct {
	ID            string
	Kind          domain.CustodyKind
	ChainID       string
	TransactionID string
	Key           domain.BalanceKey
	Delta         *big.Int
	// SettledLockID marks an entry that settles an already consumed lock. Its delta is journaled but not applied.
	SettledLockID *string
}

// EntryResult is the outcome of RecordEntry. Applied is false when the entry already existed.
type EntryResult struct {
	Applied bool
	Balance *schema.Balance
}
