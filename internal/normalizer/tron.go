package normalizer

import (
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

const tronAddressPrefix = 0x41

// normalizeTronAddress returns the base58check form of a Tron address.
// Hex input ("41" followed by 20 bytes, optionally 0x-prefixed) is converted.
func normalizeTronAddress(field, value string) (string, error) {
	if strings.HasPrefix(value, "T") {
		payload, version, err := base58.CheckDecode(value)
		if err != nil {
			return "", domain.NewValidationError(field, value, err.Error())
		}
		if version != tronAddressPrefix || len(payload) != 20 {
			return "", domain.NewValidationError(field, value, "expected 0x41-prefixed 21-byte address")
		}
		return value, nil
	}

	raw := value
	if has0xPrefix(raw) {
		raw = raw[2:]
	}
	b, err := hex.DecodeString(raw)
	if err != nil || len(b) != 21 || b[0] != tronAddressPrefix {
		return "", domain.NewValidationError(field, value, "expected base58check or 41-prefixed hex address")
	}
	return base58.CheckEncode(b[1:], tronAddressPrefix), nil
}
