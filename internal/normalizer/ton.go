package normalizer

import (
	"encoding/base64"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

const (
	tonFriendlyLength = 48
	tonFlagTestOnly   = 0x80
	tonFlagBounceable = 0x11
	tonFlagNoBounce   = 0x51
)

// normalizeTonAddress returns the raw "workchain:hex" form of a TON address.
// User-friendly base64 addresses are decoded and their CRC verified.
func normalizeTonAddress(field, value string) (string, error) {
	if strings.Contains(value, ":") {
		return normalizeTonRaw(field, value)
	}
	if len(value) != tonFriendlyLength {
		return "", domain.NewValidationError(field, value, "expected raw or 48-character user-friendly address")
	}

	b, err := decodeTonBase64(value)
	if err != nil || len(b) != 36 {
		return "", domain.NewValidationError(field, value, "invalid user-friendly encoding")
	}

	flags := b[0] &^ tonFlagTestOnly
	if flags != tonFlagBounceable && flags != tonFlagNoBounce {
		return "", domain.NewValidationError(field, value, fmt.Sprintf("unknown address flags 0x%02x", b[0]))
	}
	if crc16XModem(b[:34]) != binary.BigEndian.Uint16(b[34:]) {
		return "", domain.NewValidationError(field, value, "checksum mismatch")
	}

	return fmt.Sprintf("%d:%s", int8(b[1]), hex.EncodeToString(b[2:34])), nil
}

func normalizeTonRaw(field, value string) (string, error) {
	parts := strings.SplitN(value, ":", 2)
	workchain, err := strconv.ParseInt(parts[0], 10, 8)
	if err != nil {
		return "", domain.NewValidationError(field, value, "invalid workchain")
	}
	hash := strings.ToLower(parts[1])
	if _, err := decodeHash(hash); err != nil {
		return "", domain.NewValidationError(field, value, err.Error())
	}
	return fmt.Sprintf("%d:%s", workchain, hash), nil
}

// normalizeTonTxID returns the lowercase hex form of a transaction hash given as hex or base64
func normalizeTonTxID(value string) (string, error) {
	raw := value
	if has0xPrefix(raw) {
		raw = raw[2:]
	}
	if b, err := decodeHash(raw); err == nil {
		return hex.EncodeToString(b), nil
	}

	b, err := decodeTonBase64(value)
	if err != nil || len(b) != 32 {
		return "", domain.NewValidationError(fieldTxID, value, "expected 32-byte hash as hex or base64")
	}
	return hex.EncodeToString(b), nil
}

func decodeTonBase64(value string) ([]byte, error) {
	if strings.ContainsAny(value, "-_") {
		return base64.URLEncoding.DecodeString(value)
	}
	return base64.StdEncoding.DecodeString(value)
}

// crc16XModem is the CRC-16/XMODEM checksum TON appends to user-friendly addresses
func crc16XModem(data []byte) uint16 {
	var crc uint16
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}
