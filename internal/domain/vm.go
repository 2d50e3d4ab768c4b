package domain

import "fmt"

// VmType represents the virtual-machine family of a chain
type VmType string

const (
	VmTypeEthereum    VmType = "ethereum-vm"
	VmTypeBitcoin     VmType = "bitcoin-vm"
	VmTypeSolana      VmType = "solana-vm"
	VmTypeHyperliquid VmType = "hyperliquid-vm"
	VmTypeSui         VmType = "sui-vm"
	VmTypeTon         VmType = "ton-vm"
	VmTypeTron        VmType = "tron-vm"
)

// AllVmTypes lists every supported VM type.
// Adding a variant here requires updating every switch on VmType.
var AllVmTypes = []VmType{
	VmTypeEthereum,
	VmTypeBitcoin,
	VmTypeSolana,
	VmTypeHyperliquid,
	VmTypeSui,
	VmTypeTon,
	VmTypeTron,
}

// Valid checks if the VM type is one of the known variants
func (v VmType) Valid() bool {
	for _, t := range AllVmTypes {
		if v == t {
			return true
		}
	}
	return false
}

// ParseVmType parses a VM type tag
func ParseVmType(s string) (VmType, error) {
	v := VmType(s)
	if !v.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedVmType, s)
	}
	return v, nil
}

func (v VmType) String() string {
	return string(v)
}
