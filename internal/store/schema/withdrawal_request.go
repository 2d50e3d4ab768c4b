package schema

import "time"

// WithdrawalRequest represents the withdrawal_requests table - a signed payload authorizing an on-chain payout
type WithdrawalRequest struct {
	// ID is the hash of the VM-specific payload, shared with its balance lock
	ID string `gorm:"column:id;primaryKey;type:text"`
	// OwnerChainID is the chain of the debited owner
	OwnerChainID string `gorm:"column:owner_chain_id;not null;type:text;index:idx_withdrawal_requests_owner,priority:1"`
	// Owner is the normalized owner address
	Owner string `gorm:"column:owner;not null;type:text;index:idx_withdrawal_requests_owner,priority:2"`
	// ChainID is the chain the payout happens on
	ChainID string `gorm:"column:chain_id;not null;type:text"`
	// Currency is the normalized currency on ChainID
	Currency string `gorm:"column:currency;not null;type:text"`
	// Amount is the payout value
	Amount string `gorm:"column:amount;not null;type:numeric(78,0)"`
	// Recipient is the normalized payout address on ChainID
	Recipient string `gorm:"column:recipient;not null;type:text"`
	// EncodedData is the VM-specific payload (hex)
	EncodedData string `gorm:"column:encoded_data;not null;type:text"`
	// Signature is the hub signature over the payload id (hex)
	Signature string `gorm:"column:signature;not null;type:text"`
	// Executed is set once the withdrawal confirmation is applied
	Executed bool `gorm:"column:executed;not null;default:false"`
	// CreatedAt is the timestamp when this request was issued
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the WithdrawalRequest model
func (WithdrawalRequest) TableName() string {
	return "withdrawal_requests"
}
