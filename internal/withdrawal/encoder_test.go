package withdrawal

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

func evmPayload() Payload {
	return Payload{
		ChainID:    "ethereum",
		Currency:   "0xa0b86991c6218b36c1d19d4a2e9eb0ce3606eb48",
		Amount:     big.NewInt(400000),
		Recipient:  "0x1111111111111111111111111111111111111111",
		Nonce:      "01JABCDEF0123456789ABCDEFG",
		Expiration: 1760000000,
	}
}

func TestEncodeEVM(t *testing.T) {
	enc := NewEncoder()
	payload := evmPayload()

	encoded, err := enc.Encode(domain.VmTypeEthereum, payload)
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash(encoded.Data), encoded.ID)
	// six head words, then the string length word and one padded word of chain id
	assert.Len(t, encoded.Data, 8*32)

	values, err := evmPayloadArguments.Unpack(encoded.Data)
	require.NoError(t, err)
	require.Len(t, values, 6)
	assert.Equal(t, common.HexToAddress(payload.Recipient), values[0])
	assert.Equal(t, common.HexToAddress(payload.Currency), values[1])
	assert.Equal(t, 0, payload.Amount.Cmp(values[2].(*big.Int)))
	assert.Equal(t, [32]byte(crypto.Keccak256Hash([]byte(payload.Nonce))), values[3])
	assert.Equal(t, int64(1760000000), values[4].(*big.Int).Int64())
	assert.Equal(t, "ethereum", values[5])

	again, err := enc.Encode(domain.VmTypeEthereum, payload)
	require.NoError(t, err)
	assert.Equal(t, encoded.ID, again.ID)

	payload.Nonce = "01JABCDEF0123456789ABCDEFH"
	other, err := enc.Encode(domain.VmTypeEthereum, payload)
	require.NoError(t, err)
	assert.NotEqual(t, encoded.ID, other.ID)
}

func TestEncodeCanonicalJSON(t *testing.T) {
	payload := Payload{
		ChainID:    "solana",
		Currency:   "So11111111111111111111111111111111111111112",
		Amount:     big.NewInt(5),
		Recipient:  "9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM",
		Nonce:      "n",
		Expiration: 10,
	}

	encoded, err := NewEncoder().Encode(domain.VmTypeSolana, payload)
	require.NoError(t, err)
	assert.Equal(t,
		`{"amount":"5","chain_id":"solana","currency":"So11111111111111111111111111111111111111112",`+
			`"expiration":10,"nonce":"n","recipient":"9WzDXwBbmkg8ZTbNMqUxvQRAyrZzDsGYdLVL9zYtAWWM","vm_type":"solana-vm"}`,
		string(encoded.Data))
	assert.Equal(t, crypto.Keccak256Hash(encoded.Data), encoded.ID)

	// The VM type is part of the payload, so the same fields on another VM hash differently
	tron, err := NewEncoder().Encode(domain.VmTypeTron, payload)
	require.NoError(t, err)
	assert.NotEqual(t, encoded.ID, tron.ID)
}

func TestEncodeRejects(t *testing.T) {
	enc := NewEncoder()

	_, err := enc.Encode("cosmos-vm", evmPayload())
	assert.ErrorIs(t, err, domain.ErrUnsupportedVmType)

	payload := evmPayload()
	payload.Amount = big.NewInt(0)
	_, err = enc.Encode(domain.VmTypeEthereum, payload)
	assert.ErrorIs(t, err, domain.ErrValidation)

	payload.Amount = nil
	_, err = enc.Encode(domain.VmTypeSui, payload)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestEveryVmTypeEncodes(t *testing.T) {
	for _, vm := range domain.AllVmTypes {
		_, err := NewEncoder().Encode(vm, evmPayload())
		assert.NoError(t, err, vm)
	}
}
