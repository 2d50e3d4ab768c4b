package domain

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// Chain is an entry of the chain registry. Immutable once loaded.
type Chain struct {
	ID         string         `json:"id"`
	VmType     VmType         `json:"vm_type"`
	Depository *string        `json:"depository,omitempty"`
	Escrow     *string        `json:"escrow,omitempty"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// OwnerRef identifies an account holder on a chain
type OwnerRef struct {
	ChainID string `json:"chain_id"`
	Address string `json:"address"`
}

// CurrencyRef identifies a currency on a chain
type CurrencyRef struct {
	ChainID  string `json:"chain_id"`
	Currency string `json:"currency"`
}

// BalanceKey is the unique key of a balance row.
// Both halves must already be normalized for their chain's VM type.
type BalanceKey struct {
	Owner    OwnerRef    `json:"owner"`
	Currency CurrencyRef `json:"currency"`
}

func (k BalanceKey) String() string {
	return fmt.Sprintf("%s:%s/%s:%s", k.Owner.ChainID, k.Owner.Address, k.Currency.ChainID, k.Currency.Currency)
}

// WithOwner returns the same currency held by a different owner
func (k BalanceKey) WithOwner(owner OwnerRef) BalanceKey {
	return BalanceKey{Owner: owner, Currency: k.Currency}
}

// NormalizeID validates a 32-byte 0x-prefixed hex identifier and returns its lowercase form
func NormalizeID(field, id string) (string, error) {
	b, err := hexutil.Decode(strings.ToLower(strings.TrimSpace(id)))
	if err != nil {
		return "", NewValidationError(field, id, err.Error())
	}
	if len(b) != 32 {
		return "", NewValidationError(field, id, fmt.Sprintf("expected 32 bytes, got %d", len(b)))
	}
	return hexutil.Encode(b), nil
}

// IsZeroID checks if a normalized id is the all-zero identifier
func IsZeroID(id string) bool {
	return id == "" || id == ZeroID
}

// ParseAmount parses a non-negative base-10 integer amount
func ParseAmount(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, NewValidationError(field, s, "not a base-10 integer")
	}
	if v.Sign() < 0 {
		return nil, NewValidationError(field, s, "must not be negative")
	}
	return v, nil
}

// ParsePositiveAmount parses a strictly positive base-10 integer amount
func ParsePositiveAmount(field, s string) (*big.Int, error) {
	v, err := ParseAmount(field, s)
	if err != nil {
		return nil, err
	}
	if v.Sign() == 0 {
		return nil, NewValidationError(field, s, "must be positive")
	}
	return v, nil
}

// ParseSignedAmount parses a base-10 integer that may be negative
func ParseSignedAmount(field, s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok {
		return nil, NewValidationError(field, s, "not a base-10 integer")
	}
	return v, nil
}
