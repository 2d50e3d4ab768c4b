package schema

import (
	"math/big"
	"time"
)

// Balance represents the balances table - the custodial balance of one owner in one currency
type Balance struct {
	// ID is the internal database primary key
	ID int64 `gorm:"column:id;primaryKey;autoIncrement"`
	// OwnerChainID is the chain the owner address belongs to
	OwnerChainID string `gorm:"column:owner_chain_id;not null;type:text;uniqueIndex:idx_balances_owner_currency,priority:1"`
	// Owner is the normalized owner address
	Owner string `gorm:"column:owner;not null;type:text;uniqueIndex:idx_balances_owner_currency,priority:2"`
	// CurrencyChainID is the chain the currency lives on
	CurrencyChainID string `gorm:"column:currency_chain_id;not null;type:text;uniqueIndex:idx_balances_owner_currency,priority:3"`
	// Currency is the normalized currency identifier
	Currency string `gorm:"column:currency;not null;type:text;uniqueIndex:idx_balances_owner_currency,priority:4"`
	// AvailableAmount is spendable value (stored as string to support up to 78 digits)
	AvailableAmount string `gorm:"column:available_amount;not null;default:0;type:numeric(78,0)"`
	// LockedAmount is value reserved by balance locks
	LockedAmount string `gorm:"column:locked_amount;not null;default:0;type:numeric(78,0)"`
	// CreatedAt is the timestamp when this balance was created
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
	// UpdatedAt is the timestamp when this balance was last updated
	UpdatedAt time.Time `gorm:"column:updated_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Balance model
func (Balance) TableName() string {
	return "balances"
}

// Available returns AvailableAmount as an integer, zero if unset
func (b Balance) Available() *big.Int {
	return parseNumeric(b.AvailableAmount)
}

// Locked returns LockedAmount as an integer, zero if unset
func (b Balance) Locked() *big.Int {
	return parseNumeric(b.LockedAmount)
}

// Total returns available plus locked
func (b Balance) Total() *big.Int {
	return new(big.Int).Add(b.Available(), b.Locked())
}

func parseNumeric(s string) *big.Int {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return new(big.Int)
	}
	return v
}
