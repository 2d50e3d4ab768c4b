package schema

import "time"

// NonceMapping represents the nonce_mappings table - binds a wallet nonce to an id
type NonceMapping struct {
	WalletChainID string    `gorm:"column:wallet_chain_id;primaryKey;type:text"`
	Wallet        string    `gorm:"column:wallet;primaryKey;type:text"`
	Nonce         string    `gorm:"column:nonce;primaryKey;type:text"`
	ID            string    `gorm:"column:id;not null;type:text"`
	CreatedAt     time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the NonceMapping model
func (NonceMapping) TableName() string {
	return "nonce_mappings"
}

// DepositBinding represents the deposit_bindings table - binds a depositor nonce to a deposit id
type DepositBinding struct {
	DepositorChainID string    `gorm:"column:depositor_chain_id;primaryKey;type:text"`
	Depositor        string    `gorm:"column:depositor;primaryKey;type:text"`
	Nonce            string    `gorm:"column:nonce;primaryKey;type:text"`
	DepositID        string    `gorm:"column:deposit_id;not null;type:text"`
	CreatedAt        time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the DepositBinding model
func (DepositBinding) TableName() string {
	return "deposit_bindings"
}

// RequestIDMapping represents the request_id_mappings table - binds a wallet nonce to a request id
type RequestIDMapping struct {
	ChainID   string    `gorm:"column:chain_id;primaryKey;type:text"`
	Wallet    string    `gorm:"column:wallet;primaryKey;type:text"`
	Nonce     string    `gorm:"column:nonce;primaryKey;type:text"`
	RequestID string    `gorm:"column:request_id;not null;type:text"`
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the RequestIDMapping model
func (RequestIDMapping) TableName() string {
	return "request_id_mappings"
}
