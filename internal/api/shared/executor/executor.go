package executor

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/relay-hub/settlement-hub/internal/api/shared/dto"
	apierrors "github.com/relay-hub/settlement-hub/internal/api/shared/errors"
	"github.com/relay-hub/settlement-hub/internal/domain"
	settlement "github.com/relay-hub/settlement-hub/internal/executor"
	"github.com/relay-hub/settlement-hub/internal/logger"
	"github.com/relay-hub/settlement-hub/internal/normalizer"
	"github.com/relay-hub/settlement-hub/internal/oracle"
	"github.com/relay-hub/settlement-hub/internal/store"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
	"github.com/relay-hub/settlement-hub/internal/withdrawal"
)

// Executor is the interface for the API executor.
// Every error it returns is an *apierrors.APIError; lookups return nil, nil when nothing matches.
//
//go:generate mockgen -source=executor.go -destination=../../../mocks/api_executor.go -package=mocks -mock_names=Executor=MockAPIExecutor
type Executor interface {
	// ExecuteAction verifies the oracle attestation of action and applies it to the ledger
	ExecuteAction(ctx context.Context, kind domain.ActionKind, action domain.AttestedAction) (*dto.ActionResultResponse, error)

	// RequestWithdrawal issues a signed withdrawal request
	RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequestBody) (*dto.WithdrawalRequestResponse, error)
	// RequestUnlock releases a deposit lock back to available
	RequestUnlock(ctx context.Context, req dto.UnlockRequestBody) (*dto.BalanceResponse, error)
	// GetWithdrawalRequest retrieves a withdrawal request by id
	GetWithdrawalRequest(ctx context.Context, id string) (*dto.WithdrawalRequestResponse, error)

	// GetBalances retrieves one balance when the query names a currency, otherwise every balance of the owner
	GetBalances(ctx context.Context, query dto.BalanceQuery) (*dto.BalanceListResponse, error)
	// GetEntry retrieves a journal entry by id
	GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error)
	// GetLock retrieves a balance lock by id
	GetLock(ctx context.Context, id string) (*dto.LockResponse, error)

	SaveNonceMapping(ctx context.Context, req dto.NonceMappingBody) (*dto.NonceMappingResponse, error)
	GetNonceMapping(ctx context.Context, query dto.MappingQuery) (*dto.NonceMappingResponse, error)
	SaveDepositBinding(ctx context.Context, req dto.DepositBindingBody) (*dto.DepositBindingResponse, error)
	GetDepositBinding(ctx context.Context, query dto.MappingQuery) (*dto.DepositBindingResponse, error)
	SaveRequestIDMapping(ctx context.Context, req dto.RequestIDMappingBody) (*dto.RequestIDMappingResponse, error)
	GetRequestIDMapping(ctx context.Context, query dto.MappingQuery) (*dto.RequestIDMappingResponse, error)
}

type executor struct {
	store      store.Store
	resolver   *normalizer.Resolver
	verifier   oracle.Verifier
	settlement settlement.Executor
	withdrawal withdrawal.Handler
}

func NewExecutor(
	store store.Store,
	resolver *normalizer.Resolver,
	verifier oracle.Verifier,
	settlement settlement.Executor,
	withdrawal withdrawal.Handler,
) Executor {
	return &executor{
		store:      store,
		resolver:   resolver,
		verifier:   verifier,
		settlement: settlement,
		withdrawal: withdrawal,
	}
}

func (e *executor) ExecuteAction(ctx context.Context, kind domain.ActionKind, action domain.AttestedAction) (*dto.ActionResultResponse, error) {
	if action.Kind == "" {
		action.Kind = kind
	}
	if action.Kind != kind {
		return nil, apierrors.NewValidationError(fmt.Sprintf("action kind %q does not match route kind %q", action.Kind, kind))
	}

	messageID, err := e.verifier.Verify(action)
	if err != nil {
		logger.WarnCtx(ctx, "Rejected action attestation", zap.Error(err), zap.String("kind", string(kind)))
		return nil, apierrors.FromDomainError(err, "Action attestation rejected")
	}

	ctx = logger.WithFields(ctx, zap.String("messageID", messageID.Hex()))
	result, err := e.settlement.Execute(ctx, action)
	if err != nil {
		return nil, apierrors.FromDomainError(err, "Malformed action")
	}

	return &dto.ActionResultResponse{
		MessageID: messageID.Hex(),
		Kind:      kind,
		Status:    result.Status,
		Details:   result.Details,
	}, nil
}

func (e *executor) RequestWithdrawal(ctx context.Context, req dto.WithdrawalRequestBody) (*dto.WithdrawalRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	request, err := e.withdrawal.HandleWithdrawal(ctx, withdrawal.Request{
		Owner:     req.Owner.OwnerRef(),
		ChainID:   req.ChainID,
		Currency:  req.Currency,
		Amount:    req.Amount,
		Recipient: req.Recipient,
	})
	if err != nil {
		return nil, e.serviceError(ctx, err, "Failed to issue withdrawal request")
	}

	return dto.MapWithdrawalRequestToDTO(request), nil
}

func (e *executor) RequestUnlock(ctx context.Context, req dto.UnlockRequestBody) (*dto.BalanceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	balance, err := e.withdrawal.HandleUnlock(ctx, req.LockID)
	if err != nil {
		return nil, e.serviceError(ctx, err, "Failed to unlock deposit")
	}

	return dto.MapBalanceToDTO(balance), nil
}

func (e *executor) GetWithdrawalRequest(ctx context.Context, id string) (*dto.WithdrawalRequestResponse, error) {
	id, err := domain.NormalizeID("id", id)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	request, err := e.store.GetWithdrawalRequest(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get withdrawal request: %v", err))
	}
	if request == nil {
		return nil, nil
	}

	return dto.MapWithdrawalRequestToDTO(request), nil
}

func (e *executor) GetBalances(ctx context.Context, query dto.BalanceQuery) (*dto.BalanceListResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	owner, err := e.resolver.Owner(domain.OwnerRef{ChainID: query.OwnerChainID, Address: query.Owner})
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	var balances []schema.Balance
	if query.HasCurrency() {
		currency, err := e.resolver.Currency(domain.CurrencyRef{ChainID: query.CurrencyChainID, Currency: query.Currency})
		if err != nil {
			return nil, apierrors.NewValidationError(err.Error())
		}
		balance, err := e.store.GetBalance(ctx, domain.BalanceKey{Owner: owner, Currency: currency})
		if err != nil {
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get balance: %v", err))
		}
		if balance != nil {
			balances = append(balances, *balance)
		}
	} else {
		balances, err = e.store.ListBalancesByOwner(ctx, owner)
		if err != nil {
			return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to list balances: %v", err))
		}
	}

	items := make([]dto.BalanceResponse, len(balances))
	for i := range balances {
		items[i] = *dto.MapBalanceToDTO(&balances[i])
	}
	return &dto.BalanceListResponse{Items: items}, nil
}

func (e *executor) GetEntry(ctx context.Context, id string) (*dto.EntryResponse, error) {
	id, err := domain.NormalizeID("id", id)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	entry, err := e.store.GetEntry(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get entry: %v", err))
	}
	if entry == nil {
		return nil, nil
	}

	return dto.MapEntryToDTO(entry), nil
}

func (e *executor) GetLock(ctx context.Context, id string) (*dto.LockResponse, error) {
	id, err := domain.NormalizeID("id", id)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	lock, err := e.store.GetLock(ctx, id)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get lock: %v", err))
	}
	if lock == nil {
		return nil, nil
	}

	return dto.MapLockToDTO(lock), nil
}

func (e *executor) SaveNonceMapping(ctx context.Context, req dto.NonceMappingBody) (*dto.NonceMappingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	wallet, err := e.resolver.Owner(domain.OwnerRef{ChainID: req.WalletChainID, Address: req.Wallet})
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	id, err := domain.NormalizeID("id", req.ID)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	mapping := schema.NonceMapping{WalletChainID: wallet.ChainID, Wallet: wallet.Address, Nonce: req.Nonce, ID: id}
	if err := e.store.SaveNonceMapping(ctx, mapping); err != nil {
		return nil, e.mappingError(ctx, err, "Nonce mapping already exists")
	}
	return dto.MapNonceMappingToDTO(&mapping), nil
}

func (e *executor) GetNonceMapping(ctx context.Context, query dto.MappingQuery) (*dto.NonceMappingResponse, error) {
	wallet, err := e.mappingKey(query)
	if err != nil {
		return nil, err
	}

	mapping, err := e.store.GetNonceMapping(ctx, wallet.ChainID, wallet.Address, query.Nonce)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get nonce mapping: %v", err))
	}
	if mapping == nil {
		return nil, nil
	}
	return dto.MapNonceMappingToDTO(mapping), nil
}

func (e *executor) SaveDepositBinding(ctx context.Context, req dto.DepositBindingBody) (*dto.DepositBindingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	depositor, err := e.resolver.Owner(domain.OwnerRef{ChainID: req.DepositorChainID, Address: req.Depositor})
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	depositID, err := domain.NormalizeID("deposit_id", req.DepositID)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	binding := schema.DepositBinding{DepositorChainID: depositor.ChainID, Depositor: depositor.Address, Nonce: req.Nonce, DepositID: depositID}
	if err := e.store.SaveDepositBinding(ctx, binding); err != nil {
		return nil, e.mappingError(ctx, err, "Deposit binding already exists")
	}
	return dto.MapDepositBindingToDTO(&binding), nil
}

func (e *executor) GetDepositBinding(ctx context.Context, query dto.MappingQuery) (*dto.DepositBindingResponse, error) {
	depositor, err := e.mappingKey(query)
	if err != nil {
		return nil, err
	}

	binding, err := e.store.GetDepositBinding(ctx, depositor.ChainID, depositor.Address, query.Nonce)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get deposit binding: %v", err))
	}
	if binding == nil {
		return nil, nil
	}
	return dto.MapDepositBindingToDTO(binding), nil
}

func (e *executor) SaveRequestIDMapping(ctx context.Context, req dto.RequestIDMappingBody) (*dto.RequestIDMappingResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	wallet, err := e.resolver.Owner(domain.OwnerRef{ChainID: req.ChainID, Address: req.Wallet})
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}
	requestID, err := domain.NormalizeID("request_id", req.RequestID)
	if err != nil {
		return nil, apierrors.NewValidationError(err.Error())
	}

	mapping := schema.RequestIDMapping{ChainID: wallet.ChainID, Wallet: wallet.Address, Nonce: req.Nonce, RequestID: requestID}
	if err := e.store.SaveRequestIDMapping(ctx, mapping); err != nil {
		return nil, e.mappingError(ctx, err, "Request id mapping already exists")
	}
	return dto.MapRequestIDMappingToDTO(&mapping), nil
}

func (e *executor) GetRequestIDMapping(ctx context.Context, query dto.MappingQuery) (*dto.RequestIDMappingResponse, error) {
	wallet, err := e.mappingKey(query)
	if err != nil {
		return nil, err
	}

	mapping, err := e.store.GetRequestIDMapping(ctx, wallet.ChainID, wallet.Address, query.Nonce)
	if err != nil {
		return nil, apierrors.NewDatabaseError(fmt.Sprintf("Failed to get request id mapping: %v", err))
	}
	if mapping == nil {
		return nil, nil
	}
	return dto.MapRequestIDMappingToDTO(mapping), nil
}

// mappingKey validates a mapping lookup and normalizes its wallet
func (e *executor) mappingKey(query dto.MappingQuery) (domain.OwnerRef, error) {
	if err := query.Validate(); err != nil {
		return domain.OwnerRef{}, err
	}
	wallet, err := e.resolver.Owner(domain.OwnerRef{ChainID: query.ChainID, Address: query.Wallet})
	if err != nil {
		return domain.OwnerRef{}, apierrors.NewValidationError(err.Error())
	}
	return wallet, nil
}

func (e *executor) mappingError(ctx context.Context, err error, conflict string) error {
	if errors.Is(err, domain.ErrAlreadyExists) {
		return apierrors.NewConflictError(conflict)
	}
	logger.ErrorCtx(ctx, err, zap.String("message", "Failed to save mapping"))
	return apierrors.NewDatabaseError(fmt.Sprintf("Failed to save mapping: %v", err))
}

// serviceError maps a withdrawal handler error and logs the unexpected ones
func (e *executor) serviceError(ctx context.Context, err error, message string) error {
	apiErr := apierrors.FromDomainError(err, message)
	if apiErr.Code == apierrors.ErrCodeInternalError {
		logger.ErrorCtx(ctx, err, zap.String("message", message))
	}
	return apiErr
}
