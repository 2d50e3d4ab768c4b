package normalizer

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// normalizeEVMAddress returns the lowercase 0x form of a 20-byte address.
// Checksum casing is not enforced, mixed-case input is accepted and lowered.
func normalizeEVMAddress(field, value string) (string, error) {
	if !has0xPrefix(value) || !common.IsHexAddress(value) {
		return "", domain.NewValidationError(field, value, "expected 0x-prefixed 20-byte hex address")
	}
	return strings.ToLower(common.HexToAddress(value).Hex()), nil
}

// normalizeHyperliquidCurrency accepts EVM token addresses and 16-byte spot token ids
func normalizeHyperliquidCurrency(value string) (string, error) {
	b, err := hexutil.Decode(strings.ToLower(value))
	if err != nil {
		return "", domain.NewValidationError(fieldCurrency, value, err.Error())
	}
	if len(b) != 20 && len(b) != 16 {
		return "", domain.NewValidationError(fieldCurrency, value, fmt.Sprintf("expected 16 or 20 bytes, got %d", len(b)))
	}
	return hexutil.Encode(b), nil
}

// normalizePrefixedHash returns the lowercase 0x form of a 32-byte hash
func normalizePrefixedHash(field, value string) (string, error) {
	if !has0xPrefix(value) {
		return "", domain.NewValidationError(field, value, "expected 0x prefix")
	}
	b, err := decodeHash(value[2:])
	if err != nil {
		return "", domain.NewValidationError(field, value, err.Error())
	}
	return hexutil.Encode(b), nil
}

// normalizeBareHash returns the lowercase unprefixed form of a 32-byte hash
func normalizeBareHash(field, value string) (string, error) {
	if has0xPrefix(value) {
		value = value[2:]
	}
	b, err := decodeHash(value)
	if err != nil {
		return "", domain.NewValidationError(field, value, err.Error())
	}
	return hex.EncodeToString(b), nil
}

func decodeHash(s string) ([]byte, error) {
	if len(s) != 64 {
		return nil, fmt.Errorf("expected 64 hex characters, got %d", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("not hex: %w", err)
	}
	return b, nil
}

func has0xPrefix(s string) bool {
	return len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X')
}
