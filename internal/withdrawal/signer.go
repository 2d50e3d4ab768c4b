package withdrawal

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Signer signs withdrawal payload ids on behalf of the hub
//
//go:generate mockgen -source=signer.go -destination=../mocks/signer.go -package=mocks -mock_names=Signer=MockSigner
type Signer interface {
	// Sign returns a 65-byte signature over the EIP-191 hash of id
	Sign(id common.Hash) ([]byte, error)
	// Address returns the address the signatures recover to
	Address() common.Address
}

type localSigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewLocalSigner creates a Signer from a hex-encoded secp256k1 private key
func NewLocalSigner(privateKeyHex string) (Signer, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(privateKeyHex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid signer private key: %w", err)
	}
	return &localSigner{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}, nil
}

func (s *localSigner) Sign(id common.Hash) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(id.Bytes()), s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to sign %s: %w", id.Hex(), err)
	}
	sig[crypto.RecoveryIDOffset] += 27
	return sig, nil
}

func (s *localSigner) Address() common.Address {
	return s.address
}
