package normalizer

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// normalizeSolanaAddress validates a base58 32-byte public key
func normalizeSolanaAddress(field, value string) (string, error) {
	return normalizeBase58(field, value, 32)
}

// normalizeBase58 decodes value and re-encodes it, rejecting anything not exactly size bytes
func normalizeBase58(field, value string, size int) (string, error) {
	b := base58.Decode(value)
	if len(b) != size {
		return "", domain.NewValidationError(field, value, fmt.Sprintf("expected base58 of %d bytes", size))
	}
	encoded := base58.Encode(b)
	if encoded != value {
		return "", domain.NewValidationError(field, value, "non-canonical base58")
	}
	return encoded, nil
}
