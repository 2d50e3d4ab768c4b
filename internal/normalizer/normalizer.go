package normalizer

import (
	"fmt"
	"strings"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// Normalizer validates chain identifiers and returns their canonical storage form.
// The same real-world address, currency or transaction id always maps to one string.
type Normalizer interface {
	NormalizeAddress(vm domain.VmType, value string) (string, error)
	NormalizeCurrency(vm domain.VmType, value string) (string, error)
	NormalizeTxID(vm domain.VmType, value string) (string, error)
}

type normalizer struct{}

// New creates a Normalizer covering every supported VM type
func New() Normalizer {
	return &normalizer{}
}

const (
	fieldAddress  = "address"
	fieldCurrency = "currency"
	fieldTxID     = "transaction_id"
)

func (n *normalizer) NormalizeAddress(vm domain.VmType, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(fieldAddress, value, "empty")
	}

	switch vm {
	case domain.VmTypeEthereum, domain.VmTypeHyperliquid:
		return normalizeEVMAddress(fieldAddress, value)
	case domain.VmTypeBitcoin:
		return normalizeBitcoinAddress(fieldAddress, value)
	case domain.VmTypeSolana:
		return normalizeSolanaAddress(fieldAddress, value)
	case domain.VmTypeSui:
		return normalizeSuiAddress(fieldAddress, value)
	case domain.VmTypeTon:
		return normalizeTonAddress(fieldAddress, value)
	case domain.VmTypeTron:
		return normalizeTronAddress(fieldAddress, value)
	default:
		return "", unsupported(vm)
	}
}

func (n *normalizer) NormalizeCurrency(vm domain.VmType, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(fieldCurrency, value, "empty")
	}

	switch vm {
	case domain.VmTypeEthereum:
		return normalizeEVMAddress(fieldCurrency, value)
	case domain.VmTypeHyperliquid:
		return normalizeHyperliquidCurrency(value)
	case domain.VmTypeBitcoin:
		return normalizeBitcoinAddress(fieldCurrency, value)
	case domain.VmTypeSolana:
		return normalizeSolanaAddress(fieldCurrency, value)
	case domain.VmTypeSui:
		return normalizeSuiCoinType(value)
	case domain.VmTypeTon:
		return normalizeTonAddress(fieldCurrency, value)
	case domain.VmTypeTron:
		return normalizeTronAddress(fieldCurrency, value)
	default:
		return "", unsupported(vm)
	}
}

func (n *normalizer) NormalizeTxID(vm domain.VmType, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", domain.NewValidationError(fieldTxID, value, "empty")
	}

	switch vm {
	case domain.VmTypeEthereum, domain.VmTypeHyperliquid:
		return normalizePrefixedHash(fieldTxID, value)
	case domain.VmTypeBitcoin, domain.VmTypeTron:
		return normalizeBareHash(fieldTxID, value)
	case domain.VmTypeSolana:
		return normalizeBase58(fieldTxID, value, 64)
	case domain.VmTypeSui:
		return normalizeBase58(fieldTxID, value, 32)
	case domain.VmTypeTon:
		return normalizeTonTxID(value)
	default:
		return "", unsupported(vm)
	}
}

func unsupported(vm domain.VmType) error {
	return fmt.Errorf("%w: %q", domain.ErrUnsupportedVmType, vm)
}
