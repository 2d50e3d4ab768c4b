package normalizer

import (
	"encoding/hex"
	"strings"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

const suiAddressHexLength = 64

// normalizeSuiAddress left-pads a 0x address to 32 bytes and lowercases it
func normalizeSuiAddress(field, value string) (string, error) {
	if !has0xPrefix(value) {
		return "", domain.NewValidationError(field, value, "expected 0x prefix")
	}
	body := strings.ToLower(value[2:])
	if body == "" || len(body) > suiAddressHexLength {
		return "", domain.NewValidationError(field, value, "expected 1 to 64 hex characters")
	}
	body = strings.Repeat("0", suiAddressHexLength-len(body)) + body
	if _, err := hex.DecodeString(body); err != nil {
		return "", domain.NewValidationError(field, value, "not hex")
	}
	return "0x" + body, nil
}

// normalizeSuiCoinType normalizes the package address of "address::module::Name" coin types.
// Module and type names are case sensitive and kept as is.
func normalizeSuiCoinType(value string) (string, error) {
	parts := strings.SplitN(value, "::", 3)
	if len(parts) != 3 {
		return normalizeSuiAddress(fieldCurrency, value)
	}
	if parts[1] == "" || parts[2] == "" {
		return "", domain.NewValidationError(fieldCurrency, value, "expected address::module::name")
	}
	address, err := normalizeSuiAddress(fieldCurrency, parts[0])
	if err != nil {
		return "", err
	}
	return address + "::" + parts[1] + "::" + parts[2], nil
}
