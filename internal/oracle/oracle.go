package oracle

import (
	"crypto/ecdsa"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/gowebpki/jcs"
	"go.uber.org/zap"

	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/logger"
)

// Verifier checks that enough allowed oracles signed an attested action
//
//go:generate mockgen -source=oracle.go -destination=../mocks/oracle.go -package=mocks -mock_names=Verifier=MockVerifier
type Verifier interface {
	// Verify returns the message id of action when at least the threshold of distinct allowed oracles signed it
	Verify(action domain.AttestedAction) (common.Hash, error)
}

// MessageID computes keccak256(kind || jcs(data) || jcs(result)).
// Canonical JSON makes the id independent of key order and whitespace.
func MessageID(action domain.AttestedAction) (common.Hash, error) {
	if !action.Kind.Valid() {
		return common.Hash{}, domain.NewValidationError("kind", string(action.Kind), "unknown action kind")
	}
	data, err := jcs.Transform(action.Data)
	if err != nil {
		return common.Hash{}, domain.NewValidationError("data", "", err.Error())
	}
	result, err := jcs.Transform(action.Result)
	if err != nil {
		return common.Hash{}, domain.NewValidationError("result", "", err.Error())
	}
	return crypto.Keccak256Hash([]byte(action.Kind), data, result), nil
}

// SignMessageID signs id the way oracles do: a 65-byte secp256k1 signature over its EIP-191 hash
func SignMessageID(key *ecdsa.PrivateKey, id common.Hash) (string, error) {
	sig, err := crypto.Sign(accounts.TextHash(id.Bytes()), key)
	if err != nil {
		return "", err
	}
	sig[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(sig), nil
}

// RecoverSigner returns the address that produced signature over id
func RecoverSigner(id common.Hash, signature string) (common.Address, error) {
	sig, err := hexutil.Decode(signature)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	if len(sig) != crypto.SignatureLength {
		return common.Address{}, fmt.Errorf("%w: expected %d bytes, got %d", domain.ErrInvalidSignature, crypto.SignatureLength, len(sig))
	}
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	pub, err := crypto.SigToPub(accounts.TextHash(id.Bytes()), sig)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", domain.ErrInvalidSignature, err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

type thresholdVerifier struct {
	signers   map[common.Address]bool
	threshold int
}

// NewVerifier creates a Verifier accepting the given oracle addresses
func NewVerifier(signers []string, threshold int) (Verifier, error) {
	if threshold < 1 {
		return nil, fmt.Errorf("oracle threshold must be at least 1, got %d", threshold)
	}

	allowed := make(map[common.Address]bool, len(signers))
	for _, s := range signers {
		if !common.IsHexAddress(s) {
			return nil, fmt.Errorf("invalid oracle address %q", s)
		}
		allowed[common.HexToAddress(s)] = true
	}
	if len(allowed) < threshold {
		return nil, fmt.Errorf("oracle threshold %d exceeds the %d configured signers", threshold, len(allowed))
	}

	return &thresholdVerifier{signers: allowed, threshold: threshold}, nil
}

// Verify checks the signatures of action. Signatures that do not recover to their
// claimed oracle, or whose oracle is not allowed, are ignored rather than counted.
func (v *thresholdVerifier) Verify(action domain.AttestedAction) (common.Hash, error) {
	id, err := MessageID(action)
	if err != nil {
		return common.Hash{}, err
	}

	seen := make(map[common.Address]bool, len(action.Signatures))
	for _, s := range action.Signatures {
		signer, err := RecoverSigner(id, s.Signature)
		if err != nil {
			logger.Warn("Ignoring undecodable oracle signature", zap.String("oracle", s.Oracle), zap.Error(err))
			continue
		}
		if !strings.EqualFold(signer.Hex(), s.Oracle) {
			logger.Warn("Ignoring oracle signature from a different signer",
				zap.String("oracle", s.Oracle), zap.String("recovered", signer.Hex()))
			continue
		}
		if !v.signers[signer] {
			continue
		}
		seen[signer] = true
	}

	if len(seen) < v.threshold {
		return common.Hash{}, fmt.Errorf("%w: %d of %d", domain.ErrInsufficientSignatures, len(seen), v.threshold)
	}
	return id, nil
}
