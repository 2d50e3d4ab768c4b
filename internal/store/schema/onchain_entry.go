package schema

import (
	"math/big"
	"time"
)

// OnchainEntry represents the onchain_entries table - the write-once journal of external balance events
type OnchainEntry struct {
	// ID is the 32-byte event id derived from the attested message
	ID string `gorm:"column:id;primaryKey;type:text"`
	// Kind is the custody contract family that emitted the event (escrow, depository)
	Kind string `gorm:"column:kind;not null;type:text"`
	// ChainID is the chain the event happened on
	ChainID string `gorm:"column:chain_id;not null;type:text;index:idx_onchain_entries_chain_tx,priority:1"`
	// TransactionID is the normalized transaction id
	TransactionID string `gorm:"column:transaction_id;not null;type:text;index:idx_onchain_entries_chain_tx,priority:2"`
	// OwnerChainID is the chain of the affected balance's owner
	OwnerChainID string `gorm:"column:owner_chain_id;not null;type:text"`
	// Owner is the normalized owner address
	Owner string `gorm:"column:owner;not null;type:text"`
	// CurrencyChainID is the chain of the affected currency
	CurrencyChainID string `gorm:"column:currency_chain_id;not null;type:text"`
	// Currency is the normalized currency identifier
	Currency string `gorm:"column:currency;not null;type:text"`
	// BalanceDiff is the signed delta (positive credit, negative debit)
	BalanceDiff string `gorm:"column:balance_diff;not null;type:numeric(78,0)"`
	// SettledLockID is set when the entry settles a consumed lock; such entries do not touch available
	SettledLockID *string `gorm:"column:settled_lock_id;type:text"`
	// CreatedAt is the timestamp when this entry was journaled
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the OnchainEntry model
func (OnchainEntry) TableName() string {
	return "onchain_entries"
}

// Diff returns BalanceDiff as a signed integer
func (e OnchainEntry) Diff() *big.Int {
	return parseNumeric(e.BalanceDiff)
}
