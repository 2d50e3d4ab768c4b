package dto

import (
	"time"

	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// ActionResultResponse is the outcome of an executed attested action
type ActionResultResponse struct {
	MessageID string               `json:"message_id"`
	Kind      domain.ActionKind    `json:"kind"`
	Status    domain.ResultStatus  `json:"status"`
	Details   domain.ResultDetails `json:"details"`
}

// Failed reports whether the action was rolled back
func (r *ActionResultResponse) Failed() bool {
	return r.Status == domain.ResultStatusFailure
}

// BalanceResponse represents one balance row
type BalanceResponse struct {
	OwnerChainID    string    `json:"owner_chain_id"`
	Owner           string    `json:"owner"`
	CurrencyChainID string    `json:"currency_chain_id"`
	Currency        string    `json:"currency"`
	Available       string    `json:"available"`
	Locked          string    `json:"locked"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BalanceListResponse represents every balance of an owner
type BalanceListResponse struct {
	Items []BalanceResponse `json:"items"`
}

// LockResponse represents a balance lock
type LockResponse struct {
	ID              string            `json:"id"`
	Source          schema.LockSource `json:"source"`
	OwnerChainID    string            `json:"owner_chain_id"`
	Owner           string            `json:"owner"`
	CurrencyChainID string            `json:"currency_chain_id"`
	Currency        string            `json:"currency"`
	Amount          string            `json:"amount"`
	Expiration      time.Time         `json:"expiration"`
	Executed        bool              `json:"executed"`
	CreatedAt       time.Time         `json:"created_at"`
}

// EntryResponse represents a journal entry
type EntryResponse struct {
	ID              string    `json:"id"`
	Kind            string    `json:"kind"`
	ChainID         string    `json:"chain_id"`
	TransactionID   string    `json:"transaction_id"`
	OwnerChainID    string    `json:"owner_chain_id"`
	Owner           string    `json:"owner"`
	CurrencyChainID string    `json:"currency_chain_id"`
	Currency        string    `json:"currency"`
	BalanceDiff     string    `json:"balance_diff"`
	SettledLockID   *string   `json:"settled_lock_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// WithdrawalRequestResponse represents a signed withdrawal request
type WithdrawalRequestResponse struct {
	ID           string    `json:"id"`
	OwnerChainID string    `json:"owner_chain_id"`
	Owner        string    `json:"owner"`
	ChainID      string    `json:"chain_id"`
	Currency     string    `json:"currency"`
	Amount       string    `json:"amount"`
	Recipient    string    `json:"recipient"`
	EncodedData  string    `json:"encoded_data"`
	Signature    string    `json:"signature"`
	Executed     bool      `json:"executed"`
	CreatedAt    time.Time `json:"created_at"`
}

// NonceMappingResponse represents a nonce mapping
type NonceMappingResponse struct {
	WalletChainID string    `json:"wallet_chain_id"`
	Wallet        string    `json:"wallet"`
	Nonce         string    `json:"nonce"`
	ID            string    `json:"id"`
	CreatedAt     time.Time `json:"created_at"`
}

// DepositBindingResponse represents a deposit binding
type DepositBindingResponse struct {
	DepositorChainID string    `json:"depositor_chain_id"`
	Depositor        string    `json:"depositor"`
	Nonce            string    `json:"nonce"`
	DepositID        string    `json:"deposit_id"`
	CreatedAt        time.Time `json:"created_at"`
}

// RequestIDMappingResponse represents a request id mapping
type RequestIDMappingResponse struct {
	ChainID   string    `json:"chain_id"`
	Wallet    string    `json:"wallet"`
	Nonce     string    `json:"nonce"`
	RequestID string    `json:"request_id"`
	CreatedAt time.Time `json:"created_at"`
}

// HealthResponse is served by GET /health
type HealthResponse struct {
	Status string `json:"status"`
}
