package schema

import (
	"math/big"
	"time"
)

// LockSource tells which flow created a balance lock
type LockSource string

const (
	// LockSourceDeposit marks a lock created by a deposit bound to a pending request
	LockSourceDeposit LockSource = "deposit"
	// LockSourceWithdrawal marks a lock created by a withdrawal request
	LockSourceWithdrawal LockSource = "withdrawal"
)

// BalanceLock represents the balance_locks table - value moved from available to locked under a unique id
type BalanceLock struct {
	// ID is the 32-byte lock identifier (0x-prefixed lowercase hex)
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Source is the flow that created the lock
	Source LockSource `gorm:"column:source;not null;type:text"`
	// OwnerChainID is the chain of the locked balance's owner
	OwnerChainID string `gorm:"column:owner_chain_id;not null;type:text"`
	// Owner is the normalized owner address
	Owner string `gorm:"column:owner;not null;type:text"`
	// CurrencyChainID is the chain of the locked currency
	CurrencyChainID string `gorm:"column:currency_chain_id;not null;type:text"`
	// Currency is the normalized currency identifier
	Currency string `gorm:"column:currency;not null;type:text"`
	// Amount is the locked value
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// Expiration is when the lock may be released by the expiry path
	Expiration time.Time `gorm:"column:expiration;not null;type:timestamptz"`
	// Executed flips false to true exactly once when the lock is released
	Executed bool `gorm:"column:executed;not null;default:false"`
	// CreatedAt is the timestamp when this lock was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this lock was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the BalanceLock model
func (BalanceLock) TableName() string {
	return "balance_locks"
}

// AmountInt returns Amount as an integer
func (l BalanceLock) AmountInt() *big.Int {
	return parseNumeric(l.Amount)
}
