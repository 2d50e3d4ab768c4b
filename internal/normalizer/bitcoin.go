package normalizer

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// Base58check version bytes of legacy P2PKH and P2SH addresses on mainnet and testnet
var bitcoinLegacyVersions = map[byte]bool{
	0x00: true,
	0x05: true,
	0x6f: true,
	0xc4: true,
}

var bitcoinSegwitHRPs = map[string]bool{
	"bc":   true,
	"tb":   true,
	"bcrt": true,
}

// normalizeBitcoinAddress lowercases segwit addresses and keeps legacy base58check addresses verbatim
func normalizeBitcoinAddress(field, value string) (string, error) {
	lower := strings.ToLower(value)
	if strings.HasPrefix(lower, "bc1") || strings.HasPrefix(lower, "tb1") || strings.HasPrefix(lower, "bcrt1") {
		if err := validateSegwit(value); err != nil {
			return "", domain.NewValidationError(field, value, err.Error())
		}
		return lower, nil
	}

	payload, version, err := base58.CheckDecode(value)
	if err != nil {
		return "", domain.NewValidationError(field, value, err.Error())
	}
	if !bitcoinLegacyVersions[version] || len(payload) != 20 {
		return "", domain.NewValidationError(field, value, "unknown base58 address version")
	}
	return value, nil
}

func validateSegwit(value string) error {
	hrp, data, encoding, err := bech32.DecodeGeneric(value)
	if err != nil {
		return err
	}
	if !bitcoinSegwitHRPs[hrp] {
		return fmt.Errorf("unknown human readable part %q", hrp)
	}
	if len(data) < 1 {
		return fmt.Errorf("missing witness version")
	}

	witnessVersion := data[0]
	if witnessVersion > 16 {
		return fmt.Errorf("invalid witness version %d", witnessVersion)
	}
	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return err
	}
	if len(program) < 2 || len(program) > 40 {
		return fmt.Errorf("invalid witness program length %d", len(program))
	}

	if witnessVersion == 0 {
		if encoding != bech32.Version0 {
			return fmt.Errorf("witness v0 must use bech32")
		}
		if len(program) != 20 && len(program) != 32 {
			return fmt.Errorf("invalid witness v0 program length %d", len(program))
		}
		return nil
	}
	if encoding != bech32.VersionM {
		return fmt.Errorf("witness v%d must use bech32m", witnessVersion)
	}
	return nil
}
