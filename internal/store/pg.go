package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

type pgStore struct {
	db    *gorm.DB
	clock adapter.Clock
}

func hasDBResolver(db *gorm.DB) bool {
	return db != nil && db.Callback().Query().Get("gorm:db_resolver") != nil
}

// NewPGStore creates a new PostgreSQL store instance
func NewPGStore(db *gorm.DB, clock adapter.Clock) Store {
	return &pgStore{db: db, clock: clock}
}

// ConfigureConnectionPool configures the connection pool settings for a GORM database connection.
// It accesses the underlying *sql.DB and sets the pool configuration.
// Zero settings fall back to the defaults of NormalizeConnectionPoolSettings.
func ConfigureConnectionPool(db *gorm.DB, maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime =
		NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime)

	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(connMaxIdleTime)

	return nil
}

// NormalizeConnectionPoolSettings applies defaults and clamps pool settings into safe values.
//
// Defaults (when zero):
//   - MaxOpenConns: 20
//   - MaxIdleConns: 5
//   - ConnMaxLifetime: 5 minutes
//   - ConnMaxIdleTime: 10 minutes
func NormalizeConnectionPoolSettings(maxOpenConns, maxIdleConns int, connMaxLifetime, connMaxIdleTime time.Duration) (int, int, time.Duration, time.Duration) {
	if maxOpenConns == 0 {
		maxOpenConns = 20
	}
	if maxIdleConns == 0 {
		maxIdleConns = 5
	}
	if connMaxLifetime == 0 {
		connMaxLifetime = 5 * time.Minute
	}
	if connMaxIdleTime == 0 {
		connMaxIdleTime = 10 * time.Minute
	}

	// Ensure MaxIdleConns doesn't exceed MaxOpenConns
	if maxIdleConns > maxOpenConns {
		maxIdleConns = maxOpenConns
	}

	return maxOpenConns, maxIdleConns, connMaxLifetime, connMaxIdleTime
}

// UseReadReplica routes read queries of db to the replica behind replicaDialector.
// Writes and transactions stay on the primary.
func UseReadReplica(db *gorm.DB, replicaDialector gorm.Dialector) error {
	return db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{replicaDialector},
		Policy:   dbresolver.RandomPolicy{},
	}))
}

// Transaction runs fn inside one database transaction
func (s *pgStore) Transaction(ctx context.Context, fn func(tx Tx) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&pgTx{db: tx, clock: s.clock})
	})
}

// firstWithPrimaryFallback runs a point read on the default connection and,
// when a replica is configured and the row is missing, retries on the primary.
// Returns false when the row does not exist on either.
func (s *pgStore) firstWithPrimaryFallback(ctx context.Context, query func(db *gorm.DB) error) (bool, error) {
	err := query(s.db.WithContext(ctx))
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}
	if !hasDBResolver(s.db) {
		return false, nil
	}

	// Replica can lag behind primary; retry on primary before returning not found.
	err = query(s.db.WithContext(ctx).Clauses(dbresolver.Write))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	return false, err
}

// GetBalance retrieves a balance by key
func (s *pgStore) GetBalance(ctx context.Context, key domain.BalanceKey) (*schema.Balance, error) {
	var balance schema.Balance
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return whereBalanceKey(db, key).First(&balance).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get balance %s: %w", key, err)
	}
	if !found {
		return nil, nil
	}
	return &balance, nil
}

// ListBalancesByOwner retrieves every balance held by an owner
func (s *pgStore) ListBalancesByOwner(ctx context.Context, owner domain.OwnerRef) ([]schema.Balance, error) {
	var balances []schema.Balance
	err := s.db.WithContext(ctx).
		Where("owner_chain_id = ? AND owner = ?", owner.ChainID, owner.Address).
		Order("currency_chain_id ASC, currency ASC").
		Find(&balances).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list balances for %s:%s: %w", owner.ChainID, owner.Address, err)
	}
	return balances, nil
}

// GetLock retrieves a balance lock by id
func (s *pgStore) GetLock(ctx context.Context, id string) (*schema.BalanceLock, error) {
	var lock schema.BalanceLock
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&lock).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get balance lock %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &lock, nil
}

// GetEntry retrieves a journal entry by id
func (s *pgStore) GetEntry(ctx context.Context, id string) (*schema.OnchainEntry, error) {
	var entry schema.OnchainEntry
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&entry).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get onchain entry %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &entry, nil
}

// GetWithdrawalRequest retrieves a withdrawal request by id
func (s *pgStore) GetWithdrawalRequest(ctx context.Context, id string) (*schema.WithdrawalRequest, error) {
	var request schema.WithdrawalRequest
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return db.Where("id = ?", id).First(&request).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal request %s: %w", id, err)
	}
	if !found {
		return nil, nil
	}
	return &request, nil
}

// SaveNonceMapping inserts a nonce mapping
func (s *pgStore) SaveNonceMapping(ctx context.Context, mapping schema.NonceMapping) error {
	return s.insertOnce(ctx, &mapping, "nonce mapping")
}

// GetNonceMapping retrieves a nonce mapping
func (s *pgStore) GetNonceMapping(ctx context.Context, walletChainID, wallet, nonce string) (*schema.NonceMapping, error) {
	var mapping schema.NonceMapping
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return db.Where("wallet_chain_id = ? AND wallet = ? AND nonce = ?", walletChainID, wallet, nonce).
			First(&mapping).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce mapping: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &mapping, nil
}

// SaveDepositBinding inserts a deposit binding
func (s *pgStore) SaveDepositBinding(ctx context.Context, binding schema.DepositBinding) error {
	return s.insertOnce(ctx, &binding, "deposit binding")
}

// GetDepositBinding retrieves a deposit binding
func (s *pgStore) GetDepositBinding(ctx context.Context, depositorChainID, depositor, nonce string) (*schema.DepositBinding, error) {
	var binding schema.DepositBinding
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return db.Where("depositor_chain_id = ? AND depositor = ? AND nonce = ?", depositorChainID, depositor, nonce).
			First(&binding).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get deposit binding: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &binding, nil
}

// SaveRequestIDMapping inserts a request id mapping
func (s *pgStore) SaveRequestIDMapping(ctx context.Context, mapping schema.RequestIDMapping) error {
	return s.insertOnce(ctx, &mapping, "request id mapping")
}

// GetRequestIDMapping retrieves a request id mapping
func (s *pgStore) GetRequestIDMapping(ctx context.Context, chainID, wallet, nonce string) (*schema.RequestIDMapping, error) {
	var mapping schema.RequestIDMapping
	found, err := s.firstWithPrimaryFallback(ctx, func(db *gorm.DB) error {
		return db.Where("chain_id = ? AND wallet = ? AND nonce = ?", chainID, wallet, nonce).
			First(&mapping).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get request id mapping: %w", err)
	}
	if !found {
		return nil, nil
	}
	return &mapping, nil
}

// ListChains retrieves every registered chain
func (s *pgStore) ListChains(ctx context.Context) ([]schema.Chain, error) {
	var chains []schema.Chain
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&chains).Error; err != nil {
		return nil, fmt.Errorf("failed to list chains: %w", err)
	}
	return chains, nil
}

// UpsertChain registers a chain or replaces its settings
func (s *pgStore) UpsertChain(ctx context.Context, chain schema.Chain) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"vm_type", "depository", "escrow", "metadata"}),
	}).Create(&chain).Error
	if err != nil {
		return fmt.Errorf("failed to upsert chain %s: %w", chain.ID, err)
	}
	return nil
}

// insertOnce creates record in its own (sub)transaction so a duplicate key does not poison an enclosing one
func (s *pgStore) insertOnce(ctx context.Context, record interface{}, what string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", what, classifyWriteError(err))
	}
	return nil
}

func whereBalanceKey(db *gorm.DB, key domain.BalanceKey) *gorm.DB {
	return db.Where("owner_chain_id = ? AND owner = ? AND currency_chain_id = ? AND currency = ?",
		key.Owner.ChainID, key.Owner.Address, key.Currency.ChainID, key.Currency.Currency)
}
