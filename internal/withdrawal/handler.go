package withdrawal

import (
	"context"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/relay-hub/settlement-hub/internal/adapter"
	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/metrics"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/store"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

// Request asks for a withdrawal of an owner's balance to a recipient on ChainID
type Request struct {
	Owner     domain.OwnerRef `json:"owner"`
	ChainID   string          `json:"chain_id"`
	Currency  string          `json:"currency"`
	Amount    string          `json:"amount"`
	Recipient string          `json:"recipient"`
}

// Handler issues withdrawal requests and releases deposit locks on request
//
//go:generate mockgen -source=handler.go -destination=../mocks/withdrawal_handler.go -package=mocks -mock_names=Handler=MockWithdrawalHandler
type Handler interface {
	// HandleWithdrawal signs a withdrawal payload and locks its amount under the payload id
	HandleWithdrawal(ctx context.Context, req Request) (*schema.WithdrawalRequest, error)
	// HandleUnlock releases a deposit lock back to its owner's available balance
	HandleUnlock(ctx context.Context, lockID string) (*schema.Balance, error)
}

// Config holds withdrawal handler settings
type Config struct {
	// LockTTL is how long a withdrawal stays payable before its lock can be released as expired
	LockTTL time.Duration
}

type handler struct {
	store    store.Store
	resolver *normalizer.Resolver
	encoder  Encoder
	signer   Signer
	clock    adapter.Clock
	config   Config
}

// NewHandler creates a new withdrawal request handler
func NewHandler(store store.Store, resolver *normalizer.Resolver, encoder Encoder, signer Signer, clock adapter.Clock, config Config) Handler {
	if config.LockTTL == 0 {
		config.LockTTL = domain.DefaultLockTTL
	}
	return &handler{
		store:    store,
		resolver: resolver,
		encoder:  encoder,
		signer:   signer,
		clock:    clock,
		config:   config,
	}
}

// HandleWithdrawal validates the request, builds and signs the VM payload,
// then locks the amount and persists the request in one transaction
func (h *handler) HandleWithdrawal(ctx context.Context, req Request) (*schema.WithdrawalRequest, error) {
	chain, err := h.resolver.Chain(req.ChainID)
	if err != nil {
		return nil, err
	}
	key, err := h.resolver.Key(req.Owner, domain.CurrencyRef{ChainID: chain.ID, Currency: req.Currency})
	if err != nil {
		return nil, err
	}
	recipient, err := h.resolver.Owner(domain.OwnerRef{ChainID: chain.ID, Address: req.Recipient})
	if err != nil {
		return nil, err
	}
	amount, err := domain.ParsePositiveAmount("amount", req.Amount)
	if err != nil {
		return nil, err
	}

	expiration := h.clock.Now().Add(h.config.LockTTL).Truncate(time.Second)
	encoded, err := h.encoder.Encode(chain.VmType, Payload{
		ChainID:    chain.ID,
		Currency:   key.Currency.Currency,
		Amount:     amount,
		Recipient:  recipient.Address,
		Nonce:      ulid.Make().String(),
		Expiration: expiration.Unix(),
	})
	if err != nil {
		return nil, err
	}
	signature, err := h.signer.Sign(encoded.ID)
	if err != nil {
		return nil, err
	}

	request := schema.WithdrawalRequest{
		ID:           encoded.ID.Hex(),
		OwnerChainID: key.Owner.ChainID,
		Owner:        key.Owner.Address,
		ChainID:      chain.ID,
		Currency:     key.Currency.Currency,
		Amount:       amount.String(),
		Recipient:    recipient.Address,
		EncodedData:  EncodeHex(encoded.Data),
		Signature:    hexutil.Encode(signature),
	}

	err = h.store.Transaction(ctx, func(tx store.Tx) error {
		locked, err := tx.Lock(store.LockInput{
			ID:         request.ID,
			Source:     schema.LockSourceWithdrawal,
			Key:        key,
			Amount:     amount,
			Expiration: &expiration,
		})
		if err != nil {
			return err
		}
		if !locked.Applied {
			return fmt.Errorf("%w: withdrawal lock %s", domain.ErrAlreadyExists, request.ID)
		}
		return tx.CreateWithdrawalRequest(request)
	})
	if err != nil {
		return nil, err
	}

	metrics.WithdrawalRequests.WithLabelValues(string(chain.VmType)).Inc()
	logger.InfoCtx(ctx, "Withdrawal request issued",
		zap.String("id", request.ID),
		zap.String("balance", key.String()),
		zap.String("amount", request.Amount),
		zap.String("recipient", request.Recipient),
	)
	return &request, nil
}

// HandleUnlock releases a deposit lock. Withdrawal locks are only ever released by
// their on-chain confirmation or expiry, never by request.
func (h *handler) HandleUnlock(ctx context.Context, lockID string) (*schema.Balance, error) {
	id, err := domain.NormalizeID("lock_id", lockID)
	if err != nil {
		return nil, err
	}

	var balance *schema.Balance
	err = h.store.Transaction(ctx, func(tx store.Tx) error {
		lock, err := tx.GetLock(id)
		if err != nil {
			return err
		}
		if lock == nil {
			return fmt.Errorf("%w: %s", domain.ErrLockNotFound, id)
		}
		if lock.Source != schema.LockSourceDeposit {
			return fmt.Errorf("%w: %s is a %s lock", domain.ErrLockSourceMismatch, id, lock.Source)
		}
		if lock.Executed {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyUnlocked, id)
		}

		unlocked, err := tx.Unlock(id, store.UnlockOptions{})
		if err != nil {
			return err
		}
		if !unlocked.Applied {
			return fmt.Errorf("%w: %s", domain.ErrAlreadyUnlocked, id)
		}
		balance = unlocked.Balance
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ManualUnlocks.Inc()
	logger.InfoCtx(ctx, "Deposit lock released", zap.String("id", id))
	return balance, nil
}
