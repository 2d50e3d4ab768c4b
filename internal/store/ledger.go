package store

import (
	"errors"
	"fmt"
	"math/big"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// balanceKeyColumns is the unique key of the balances table
var balanceKeyColumns = []clause.Column{
	{Name: "owner_chain_id"},
	{Name: "owner"},
	{Name: "currency_chain_id"},
	{Name: "currency"},
}

// pgTx implements Tx on top of an open gorm transaction
type pgTx struct {
	db    *gorm.DB
	clock adapter.Clock
}

// GetBalance reads a balance inside the transaction
func (t *pgTx) GetBalance(key domain.BalanceKey) (*schema.Balance, error) {
	var balance schema.Balance
	err := whereBalanceKey(t.db, key).First(&balance).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance %s: %w", key, err)
	}
	return &balance, nil
}

// InitializeBalance creates a zero balance row if none exists
func (t *pgTx) InitializeBalance(key domain.BalanceKey) error {
	balance := newBalance(key, "0")
	if err := t.db.Clauses(clause.OnConflict{
		Columns:   balanceKeyColumns,
		DoNothing: true,
	}).Create(&balance).Error; err != nil {
		return fmt.Errorf("failed to initialize balance %s: %w", key, err)
	}
	return nil
}

// Lock inserts the lock row and moves its amount from available to locked.
// The balance is only touched when the insert actually happened, so a replayed lock id is a no-op.
func (t *pgTx) Lock(input LockInput) (LockResult, error) {
	if input.Amount == nil || input.Amount.Sign() < 0 {
		return LockResult{}, domain.NewValidationError("amount", fmt.Sprint(input.Amount), "must not be negative")
	}

	if err := t.InitializeBalance(input.Key); err != nil {
		return LockResult{}, err
	}

	expiration := t.clock.Now().Add(domain.DefaultLockTTL)
	if input.Expiration != nil {
		expiration = *input.Expiration
	}

	lock := schema.BalanceLock{
		ID:              input.ID,
		Source:          input.Source,
		OwnerChainID:    input.Key.Owner.ChainID,
		Owner:           input.Key.Owner.Address,
		CurrencyChainID: input.Key.Currency.ChainID,
		Currency:        input.Key.Currency.Currency,
		Amount:          input.Amount.String(),
		Expiration:      expiration,
	}

	result := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&lock)
	if result.Error != nil {
		return LockResult{}, fmt.Errorf("failed to create balance lock %s: %w", input.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return LockResult{Applied: false}, nil
	}

	var balance schema.Balance
	update := whereBalanceKey(t.db.Model(&balance).Clauses(clause.Returning{}), input.Key).
		Updates(map[string]interface{}{
			"available_amount": gorm.Expr("available_amount - ?", lock.Amount),
			"locked_amount":    gorm.Expr("locked_amount + ?", lock.Amount),
		})
	if update.Error != nil {
		return LockResult{}, fmt.Errorf("failed to lock balance %s: %w", input.Key, classifyWriteError(update.Error))
	}
	if update.RowsAffected == 0 {
		return LockResult{}, fmt.Errorf("balance %s vanished while locking", input.Key)
	}

	return LockResult{Applied: true, Balance: &balance}, nil
}

// Unlock flips executed on the lock and releases its amount from locked.
// Available is credited back unless opts.SkipAvailableAdjustment is set.
func (t *pgTx) Unlock(id string, opts UnlockOptions) (UnlockResult, error) {
	var lock schema.BalanceLock
	query := t.db.Model(&lock).Clauses(clause.Returning{}).
		Where("id = ? AND executed = ?", id, false)
	if opts.CheckExpiration {
		query = query.Where("expiration <= ?", t.clock.Now())
	}

	result := query.Update("executed", true)
	if result.Error != nil {
		return UnlockResult{}, fmt.Errorf("failed to execute balance lock %s: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return UnlockResult{Applied: false}, nil
	}

	key := domain.BalanceKey{
		Owner:    domain.OwnerRef{ChainID: lock.OwnerChainID, Address: lock.Owner},
		Currency: domain.CurrencyRef{ChainID: lock.CurrencyChainID, Currency: lock.Currency},
	}
	updates := map[string]interface{}{
		"locked_amount": gorm.Expr("locked_amount - ?", lock.Amount),
	}
	if !opts.SkipAvailableAdjustment {
		updates["available_amount"] = gorm.Expr("available_amount + ?", lock.Amount)
	}

	var balance schema.Balance
	update := whereBalanceKey(t.db.Model(&balance).Clauses(clause.Returning{}), key).Updates(updates)
	if update.Error != nil {
		return UnlockResult{}, fmt.Errorf("failed to unlock balance %s: %w", key, classifyWriteError(update.Error))
	}
	if update.RowsAffected == 0 {
		return UnlockResult{}, fmt.Errorf("balance %s not found for lock %s", key, id)
	}

	return UnlockResult{Applied: true, Lock: &lock, Balance: &balance}, nil
}

// Reallocate debits from.available and credits the same currency to to.available in one statement.
// Only existing rows are updated; a missing side leaves the result incomplete for the caller to reject.
func (t *pgTx) Reallocate(from domain.BalanceKey, to domain.OwnerRef, amount *big.Int) (ReallocationResult, error) {
	if amount == nil {
		return ReallocationResult{}, domain.NewValidationError("amount", "", "missing")
	}
	toKey := from.WithOwner(to)

	// Moving value to the same row only needs the debit side to be coverable
	if toKey == from {
		balance, err := t.GetBalance(from)
		if err != nil || balance == nil {
			return ReallocationResult{}, err
		}
		if balance.Available().Cmp(amount) < 0 {
			return ReallocationResult{}, fmt.Errorf("failed to reallocate %s: %w", from, domain.ErrInsufficientBalance)
		}
		return ReallocationResult{Debited: balance, Credited: balance}, nil
	}

	value := amount.String()
	var rows []schema.Balance
	err := t.db.Model(&rows).Clauses(clause.Returning{}).
		Where("currency_chain_id = ? AND currency = ?", from.Currency.ChainID, from.Currency.Currency).
		Where("((owner_chain_id = ? AND owner = ?) OR (owner_chain_id = ? AND owner = ?))",
			from.Owner.ChainID, from.Owner.Address, to.ChainID, to.Address).
		Update("available_amount", gorm.Expr(
			"CASE WHEN owner_chain_id = ? AND owner = ? THEN available_amount - ? ELSE available_amount + ? END",
			from.Owner.ChainID, from.Owner.Address, value, value,
		)).Error
	if err != nil {
		return ReallocationResult{}, fmt.Errorf("failed to reallocate %s to %s:%s: %w",
			from, to.ChainID, to.Address, classifyWriteError(err))
	}

	var result ReallocationResult
	for i := range rows {
		switch {
		case rows[i].OwnerChainID == from.Owner.ChainID && rows[i].Owner == from.Owner.Address:
			result.Debited = &rows[i]
		case rows[i].OwnerChainID == to.ChainID && rows[i].Owner == to.Address:
			result.Credited = &rows[i]
		}
	}
	return result, nil
}

// RecordEntry inserts the journal entry and, only on first insert, applies its delta to available.
// Entries settling a consumed lock are journaled without touching available.
func (t *pgTx) RecordEntry(input RecordEntryInput) (EntryResult, error) {
	if input.Delta == nil {
		return EntryResult{}, domain.NewValidationError("delta", "", "missing")
	}

	entry := schema.OnchainEntry{
		ID:              input.ID,
		Kind:            string(input.Kind),
		ChainID:         input.ChainID,
		TransactionID:   input.TransactionID,
		OwnerChainID:    input.Key.Owner.ChainID,
		Owner:           input.Key.Owner.Address,
		CurrencyChainID: input.Key.Currency.ChainID,
		Currency:        input.Key.Currency.Currency,
		BalanceDiff:     input.Delta.String(),
		SettledLockID:   input.SettledLockID,
	}

	result := t.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&entry)
	if result.Error != nil {
		return EntryResult{}, fmt.Errorf("failed to create onchain entry %s: %w", input.ID, result.Error)
	}
	if result.RowsAffected == 0 {
		return EntryResult{Applied: false}, nil
	}

	if input.SettledLockID != nil {
		balance, err := t.GetBalance(input.Key)
		if err != nil {
			return EntryResult{}, err
		}
		return EntryResult{Applied: true, Balance: balance}, nil
	}

	// A negative delta on a missing row inserts a negative balance, which the CHECK constraint rejects
	balance := newBalance(input.Key, entry.BalanceDiff)
	if err := t.db.Clauses(clause.OnConflict{
		Columns: balanceKeyColumns,
		DoUpdates: clause.Assignments(map[string]interface{}{
			"available_amount": gorm.Expr("balances.available_amount + EXCLUDED.available_amount"),
			"updated_at":       gorm.Expr("now()"),
		}),
	}, clause.Returning{}).Create(&balance).Error; err != nil {
		return EntryResult{}, fmt.Errorf("failed to apply onchain entry %s: %w", input.ID, classifyWriteError(err))
	}

	return EntryResult{Applied: true, Balance: &balance}, nil
}

// GetEntry reads a journal entry
func (t *pgTx) GetEntry(id string) (*schema.OnchainEntry, error) {
	var entry schema.OnchainEntry
	if err := t.db.Where("id = ?", id).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get onchain entry %s: %w", id, err)
	}
	return &entry, nil
}

// GetLock reads a balance lock
func (t *pgTx) GetLock(id string) (*schema.BalanceLock, error) {
	var lock schema.BalanceLock
	if err := t.db.Where("id = ?", id).First(&lock).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get balance lock %s: %w", id, err)
	}
	return &lock, nil
}

// CreateWithdrawalRequest inserts a withdrawal request
func (t *pgTx) CreateWithdrawalRequest(request schema.WithdrawalRequest) error {
	if err := t.db.Create(&request).Error; err != nil {
		return fmt.Errorf("failed to create withdrawal request %s: %w", request.ID, classifyWriteError(err))
	}
	return nil
}

// MarkWithdrawalExecuted flags a withdrawal request as paid out on-chain.
// Withdrawals issued outside this hub have no request row, which is not an error.
func (t *pgTx) MarkWithdrawalExecuted(id string) error {
	if err := t.db.Model(&schema.WithdrawalRequest{}).
		Where("id = ?", id).
		Update("executed", true).Error; err != nil {
		return fmt.Errorf("failed to mark withdrawal request %s executed: %w", id, err)
	}
	return nil
}

func newBalance(key domain.BalanceKey, available string) schema.Balance {
	return schema.Balance{
		OwnerChainID:    key.Owner.ChainID,
		Owner:           key.Owner.Address,
		CurrencyChainID: key.Currency.ChainID,
		Currency:        key.Currency.Currency,
		AvailableAmount: available,
		LockedAmount:    "0",
	}
}
