package dto

import (
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// MapBalanceToDTO maps a balance row to its response
func MapBalanceToDTO(b *schema.Balance) *BalanceResponse {
	return &BalanceResponse{
		OwnerChainID:    b.OwnerChainID,
		Owner:           b.Owner,
		CurrencyChainID: b.CurrencyChainID,
		Currency:        b.Currency,
		Available:       b.Available().String(),
		Locked:          b.Locked().String(),
		UpdatedAt:       b.UpdatedAt,
	}
}

// MapLockToDTO maps a balance lock to its response
func MapLockToDTO(l *schema.BalanceLock) *LockResponse {
	return &LockResponse{
		ID:              l.ID,
		Source:          l.Source,
		OwnerChainID:    l.OwnerChainID,
		Owner:           l.Owner,
		CurrencyChainID: l.CurrencyChainID,
		Currency:        l.Currency,
		Amount:          l.AmountInt().String(),
		Expiration:      l.Expiration,
		Executed:        l.Executed,
		CreatedAt:       l.CreatedAt,
	}
}

// MapEntryToDTO maps a journal entry to its response
func MapEntryToDTO(e *schema.OnchainEntry) *EntryResponse {
	return &EntryResponse{
		ID:              e.ID,
		Kind:            e.Kind,
		ChainID:         e.ChainID,
		TransactionID:   e.TransactionID,
		OwnerChainID:    e.OwnerChainID,
		Owner:           e.Owner,
		CurrencyChainID: e.CurrencyChainID,
		Currency:        e.Currency,
		BalanceDiff:     e.Diff().String(),
		SettledLockID:   e.SettledLockID,
		CreatedAt:       e.CreatedAt,
	}
}

// MapWithdrawalRequestToDTO maps a withdrawal request to its response
func MapWithdrawalRequestToDTO(r *schema.WithdrawalRequest) *WithdrawalRequestResponse {
	return &WithdrawalRequestResponse{
		ID:           r.ID,
		OwnerChainID: r.OwnerChainID,
		Owner:        r.Owner,
		ChainID:      r.ChainID,
		Currency:     r.Currency,
		Amount:       r.Amount,
		Recipient:    r.Recipient,
		EncodedData:  r.EncodedData,
		Signature:    r.Signature,
		Executed:     r.Executed,
		CreatedAt:    r.CreatedAt,
	}
}

func MapNonceMappingToDTO(m *schema.NonceMapping) *NonceMappingResponse {
	return &NonceMappingResponse{
		WalletChainID: m.WalletChainID,
		Wallet:        m.Wallet,
		Nonce:         m.Nonce,
		ID:            m.ID,
		CreatedAt:     m.CreatedAt,
	}
}

func MapDepositBindingToDTO(b *schema.DepositBinding) *DepositBindingResponse {
	return &DepositBindingResponse{
		DepositorChainID: b.DepositorChainID,
		Depositor:        b.Depositor,
		Nonce:            b.Nonce,
		DepositID:        b.DepositID,
		CreatedAt:        b.CreatedAt,
	}
}

func MapRequestIDMappingToDTO(m *schema.RequestIDMapping) *RequestIDMappingResponse {
	return &RequestIDMappingResponse{
		ChainID:   m.ChainID,
		Wallet:    m.Wallet,
		Nonce:     m.Nonce,
		RequestID: m.RequestID,
		CreatedAt: m.CreatedAt,
	}
}
