package schema

import (
	"time"

	"gorm.io/datatypes"
)

// Chain represents the chains table - the persisted source of the chain registry
type Chain struct {
	// ID is the chain identifier (e.g. "ethereum", "base", "solana")
	ID string `gorm:"column:id;primaryKey;type:text"`
	// VmType is the virtual machine family of the chain
	VmType string `gorm:"column:vm_type;not null;type:text"`
	// Depository is the depository contract address, if deployed
	Depository *string `gorm:"column:depository;type:text"`
	// Escrow is the escrow contract address, if deployed
	Escrow *string `gorm:"column:escrow;type:text"`
	// Metadata holds free-form chain settings
	Metadata datatypes.JSON `gorm:"column:metadata;type:jsonb"`
	// CreatedAt is the timestamp when this chain was registered
	CreatedAt time.Time `gorm:"column:created_at;not null;default:now();type:timestamptz"`
}

// TableName specifies the table name for the Chain model
func (Chain) TableName() string {
	return "chains"
}
