package withdrawal

import (
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// Payload is the VM-independent content of a withdrawal
type Payload struct {
	ChainID    string   `json:"chain_id"`
	Currency   string   `json:"currency"`
	Amount     *big.Int `json:"amount"`
	Recipient  string   `json:"recipient"`
	Nonce      string   `json:"nonce"`
	Expiration int64    `json:"expiration"`
}

// EncodedPayload is a payload in the form the payout chain verifies
type EncodedPayload struct {
	// ID is keccak256 of Data and doubles as the withdrawal lock id
	ID common.Hash
	// Data is the encoded payload
	Data []byte
}

// Encoder turns a withdrawal payload into its VM-specific encoding
//
//go:generate mockgen -source=encoder.go -destination=../mocks/encoder.go -package=mocks -mock_names=Encoder=MockEncoder
type Encoder interface {
	Encode(vm domain.VmType, payload Payload) (EncodedPayload, error)
}

var evmPayloadArguments = mustArguments("address", "address", "uint256", "bytes32", "uint256", "string")

func mustArguments(types ...string) abi.Arguments {
	args := make(abi.Arguments, 0, len(types))
	for _, t := range types {
		typ, err := abi.NewType(t, "", nil)
		if err != nil {
			panic(err)
		}
		args = append(args, abi.Argument{Type: typ})
	}
	return args
}

type encoder struct{}

// NewEncoder creates an Encoder covering every supported VM type
func NewEncoder() Encoder {
	return &encoder{}
}

func (e *encoder) Encode(vm domain.VmType, payload Payload) (EncodedPayload, error) {
	if payload.Amount == nil || payload.Amount.Sign() <= 0 {
		return EncodedPayload{}, domain.NewValidationError("amount", fmt.Sprint(payload.Amount), "must be positive")
	}

	var (
		data []byte
		err  error
	)
	switch vm {
	case domain.VmTypeEthereum:
		data, err = encodeEVM(payload)
	case domain.VmTypeHyperliquid, domain.VmTypeBitcoin, domain.VmTypeSolana,
		domain.VmTypeSui, domain.VmTypeTon, domain.VmTypeTron:
		data, err = encodeCanonicalJSON(vm, payload)
	default:
		return EncodedPayload{}, fmt.Errorf("%w: %q", domain.ErrUnsupportedVmType, vm)
	}
	if err != nil {
		return EncodedPayload{}, err
	}

	return EncodedPayload{ID: crypto.Keccak256Hash(data), Data: data}, nil
}

// encodeEVM abi-encodes the payload the way the depository contract hashes it
func encodeEVM(payload Payload) ([]byte, error) {
	nonce := crypto.Keccak256Hash([]byte(payload.Nonce))
	return evmPayloadArguments.Pack(
		common.HexToAddress(payload.Recipient),
		common.HexToAddress(payload.Currency),
		payload.Amount,
		nonce,
		big.NewInt(payload.Expiration),
		payload.ChainID,
	)
}

// encodeCanonicalJSON serializes the payload as RFC 8785 JSON, tagged with its VM type
func encodeCanonicalJSON(vm domain.VmType, payload Payload) ([]byte, error) {
	raw, err := json.Marshal(struct {
		VmType domain.VmType `json:"vm_type"`
		Payload
		Amount string `json:"amount"`
	}{VmType: vm, Payload: payload, Amount: payload.Amount.String()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal withdrawal payload: %w", err)
	}
	return jcs.Transform(raw)
}

// EncodeHex renders encoded payload bytes for storage
func EncodeHex(data []byte) string {
	return hexutil.Encode(data)
}
