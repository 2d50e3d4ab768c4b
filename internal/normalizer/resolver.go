package normalizer

import (
	"github.com/relay-hub/settlement-hub/internal/domain"
)

// ChainLookup resolves a chain id to its registry entry
type ChainLookup interface {
	GetChain(id string) (*domain.Chain, error)
}

// Resolver normalizes values given by chain id instead of VM type
type Resolver struct {
	chains     ChainLookup
	normalizer Normalizer
}

// NewResolver creates a Resolver
func NewResolver(chains ChainLookup, normalizer Normalizer) *Resolver {
	return &Resolver{chains: chains, normalizer: normalizer}
}

// Chain returns the registry entry of chainID
func (r *Resolver) Chain(chainID string) (*domain.Chain, error) {
	return r.chains.GetChain(chainID)
}

// Owner normalizes an owner address for its chain
func (r *Resolver) Owner(ref domain.OwnerRef) (domain.OwnerRef, error) {
	chain, err := r.chains.GetChain(ref.ChainID)
	if err != nil {
		return domain.OwnerRef{}, err
	}
	address, err := r.normalizer.NormalizeAddress(chain.VmType, ref.Address)
	if err != nil {
		return domain.OwnerRef{}, err
	}
	return domain.OwnerRef{ChainID: chain.ID, Address: address}, nil
}

// Currency normalizes a currency identifier for its chain
func (r *Resolver) Currency(ref domain.CurrencyRef) (domain.CurrencyRef, error) {
	chain, err := r.chains.GetChain(ref.ChainID)
	if err != nil {
		return domain.CurrencyRef{}, err
	}
	currency, err := r.normalizer.NormalizeCurrency(chain.VmType, ref.Currency)
	if err != nil {
		return domain.CurrencyRef{}, err
	}
	return domain.CurrencyRef{ChainID: chain.ID, Currency: currency}, nil
}

// Key normalizes both halves of a balance key
func (r *Resolver) Key(owner domain.OwnerRef, currency domain.CurrencyRef) (domain.BalanceKey, error) {
	o, err := r.Owner(owner)
	if err != nil {
		return domain.BalanceKey{}, err
	}
	c, err := r.Currency(currency)
	if err != nil {
		return domain.BalanceKey{}, err
	}
	return domain.BalanceKey{Owner: o, Currency: c}, nil
}

// TxID normalizes a transaction id for its chain
func (r *Resolver) TxID(chainID, txID string) (string, error) {
	chain, err := r.chains.GetChain(chainID)
	if err != nil {
		return "", err
	}
	return r.normalizer.NormalizeTxID(chain.VmType, txID)
}
