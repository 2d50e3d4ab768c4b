package dto

import (
	apierrors "github.com/relay-hub/settlement-hub/internal/api/shared/errors"
	"github.com/relay-hub/settlement-hub/internal/domain"
)

// OwnerRequest identifies an owner by chain and address
type OwnerRequest struct {
	ChainID string `json:"chain_id"`
	Address string `json:"address"`
}

// OwnerRef converts the request into a domain owner reference
func (o OwnerRequest) OwnerRef() domain.OwnerRef {
	return domain.OwnerRef{ChainID: o.ChainID, Address: o.Address}
}

// WithdrawalRequestBody represents the request body for POST /api/v1/requests/withdrawals
type WithdrawalRequestBody struct {
	Owner     OwnerRequest `json:"owner"`
	ChainID   string       `json:"chain_id"`
	Currency  string       `json:"currency"`
	Amount    string       `json:"amount"`
	Recipient string       `json:"recipient"`
}

// Validate validates the request body
func (r *WithdrawalRequestBody) Validate() error {
	if r.Owner.ChainID == "" || r.Owner.Address == "" {
		return apierrors.NewValidationError("owner.chain_id and owner.address are required")
	}
	if r.ChainID == "" {
		return apierrors.NewValidationError("chain_id is required")
	}
	if r.Currency == "" {
		return apierrors.NewValidationError("currency is required")
	}
	if r.Amount == "" {
		return apierrors.NewValidationError("amount is required")
	}
	if r.Recipient == "" {
		return apierrors.NewValidationError("recipient is required")
	}
	return nil
}

// UnlockRequestBody represents the request body for POST /api/v1/requests/unlocks
type UnlockRequestBody struct {
	LockID string `json:"lock_id"`
}

// Validate validates the request body
func (r *UnlockRequestBody) Validate() error {
	if r.LockID == "" {
		return apierrors.NewValidationError("lock_id is required")
	}
	return nil
}

// BalanceQuery holds query parameters for GET /api/v1/balances
type BalanceQuery struct {
	OwnerChainID    string `form:"owner_chain_id"`
	Owner           string `form:"owner"`
	CurrencyChainID string `form:"currency_chain_id"`
	Currency        string `form:"currency"`
}

// Validate validates the query parameters
func (q *BalanceQuery) Validate() error {
	if q.OwnerChainID == "" || q.Owner == "" {
		return apierrors.NewValidationError("owner_chain_id and owner are required")
	}
	if (q.CurrencyChainID == "") != (q.Currency == "") {
		return apierrors.NewValidationError("currency_chain_id and currency must be given together")
	}
	return nil
}

// HasCurrency reports whether the query selects a single currency
func (q *BalanceQuery) HasCurrency() bool {
	return q.Currency != ""
}

// NonceMappingBody represents the request body for POST /api/v1/mappings/nonces
type NonceMappingBody struct {
	WalletChainID string `json:"wallet_chain_id"`
	Wallet        string `json:"wallet"`
	Nonce         string `json:"nonce"`
	ID            string `json:"id"`
}

// Validate validates the request body
func (r *NonceMappingBody) Validate() error {
	return requireFields(
		field{"wallet_chain_id", r.WalletChainID},
		field{"wallet", r.Wallet},
		field{"nonce", r.Nonce},
		field{"id", r.ID},
	)
}

// DepositBindingBody represents the request body for POST /api/v1/mappings/deposits
type DepositBindingBody struct {
	DepositorChainID string `json:"depositor_chain_id"`
	Depositor        string `json:"depositor"`
	Nonce            string `json:"nonce"`
	DepositID        string `json:"deposit_id"`
}

// Validate validates the request body
func (r *DepositBindingBody) Validate() error {
	return requireFields(
		field{"depositor_chain_id", r.DepositorChainID},
		field{"depositor", r.Depositor},
		field{"nonce", r.Nonce},
		field{"deposit_id", r.DepositID},
	)
}

// RequestIDMappingBody represents the request body for POST /api/v1/mappings/requests
type RequestIDMappingBody struct {
	ChainID   string `json:"chain_id"`
	Wallet    string `json:"wallet"`
	Nonce     string `json:"nonce"`
	RequestID string `json:"request_id"`
}

// Validate validates the request body
func (r *RequestIDMappingBody) Validate() error {
	return requireFields(
		field{"chain_id", r.ChainID},
		field{"wallet", r.Wallet},
		field{"nonce", r.Nonce},
		field{"request_id", r.RequestID},
	)
}

// MappingQuery holds the key of a mapping lookup
type MappingQuery struct {
	ChainID string `form:"chain_id"`
	Wallet  string `form:"wallet"`
	Nonce   string `form:"nonce"`
}

// Validate validates the query parameters
func (q *MappingQuery) Validate() error {
	return requireFields(
		field{"chain_id", q.ChainID},
		field{"wallet", q.Wallet},
		field{"nonce", q.Nonce},
	)
}

type field struct {
	name  string
	value string
}

func requireFields(fields ...field) error {
	for _, f := range fields {
		if f.value == "" {
			return apierrors.NewValidationError(f.name + " is required")
		}
	}
	return nil
}
