package executor

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/relay-hub/settlement-hub/internal/domain"
	"github.com/relay-hub/settlement-hub/internal/store/schema"
)

type deposit struct {
	entryID   string
	custody   domain.CustodyKind
	chainID   string
	txID      string
	key       domain.BalanceKey
	amount    *big.Int
	depositID string
}

type withdrawal struct {
	entryID      string
	custody      domain.CustodyKind
	chainID      string
	txID         string
	withdrawalID string
	status       domain.WithdrawalStatus
}

type fee struct {
	recipient domain.OwnerRef
	currency  domain.CurrencyRef
	amount    *big.Int
}

type solverFill struct {
	orderID string
	lockIDs []string
	solver  domain.OwnerRef
	bpsDiff *big.Int
	fees    []fee
}

type solverRefund struct {
	orderID string
	lockIDs []string
	solver  domain.OwnerRef
}

func validateCustody(kind domain.CustodyKind) error {
	switch kind {
	case domain.CustodyKindEscrow, domain.CustodyKindDepository:
		return nil
	}
	return domain.NewValidationError("data.kind", string(kind), "must be escrow or depository")
}

func (e *executor) validateDeposit(action domain.DepositAction) (deposit, error) {
	if err := validateCustody(action.Data.Kind); err != nil {
		return deposit{}, err
	}
	txID, err := e.resolver.TxID(action.Data.ChainID, action.Data.TransactionID)
	if err != nil {
		return deposit{}, err
	}
	entryID, err := domain.NormalizeID("result.onchain_id", action.Result.OnchainID)
	if err != nil {
		return deposit{}, err
	}
	key, err := e.resolver.Key(
		domain.OwnerRef{ChainID: action.Data.ChainID, Address: action.Result.Depositor},
		domain.CurrencyRef{ChainID: action.Data.ChainID, Currency: action.Result.Currency},
	)
	if err != nil {
		return deposit{}, err
	}
	amount, err := domain.ParsePositiveAmount("result.amount", action.Result.Amount)
	if err != nil {
		return deposit{}, err
	}

	var depositID string
	if action.Result.DepositID != "" {
		if depositID, err = domain.NormalizeID("result.deposit_id", action.Result.DepositID); err != nil {
			return deposit{}, err
		}
		if domain.IsZeroID(depositID) {
			depositID = ""
		}
	}

	return deposit{
		entryID:   entryID,
		custody:   action.Data.Kind,
		chainID:   action.Data.ChainID,
		txID:      txID,
		key:       key,
		amount:    amount,
		depositID: depositID,
	}, nil
}

func (e *executor) validateWithdrawal(action domain.WithdrawalAction) (withdrawal, error) {
	if err := validateCustody(action.Data.Kind); err != nil {
		return withdrawal{}, err
	}
	txID, err := e.resolver.TxID(action.Data.ChainID, action.Data.TransactionID)
	if err != nil {
		return withdrawal{}, err
	}
	entryID, err := domain.NormalizeID("result.onchain_id", action.Result.OnchainID)
	if err != nil {
		return withdrawal{}, err
	}
	withdrawalID, err := domain.NormalizeID("result.withdrawal_id", action.Result.WithdrawalID)
	if err != nil {
		return withdrawal{}, err
	}

	switch action.Result.Status {
	case domain.WithdrawalStatusExecuted, domain.WithdrawalStatusExpired:
	default:
		return withdrawal{}, domain.NewValidationError("result.status", string(action.Result.Status), "must be executed or expired")
	}

	return withdrawal{
		entryID:      entryID,
		custody:      action.Data.Kind,
		chainID:      action.Data.ChainID,
		txID:         txID,
		withdrawalID: withdrawalID,
		status:       action.Result.Status,
	}, nil
}

func (e *executor) validateInputs(orderID string, inputs []domain.SolverInput) ([]string, error) {
	if strings.TrimSpace(orderID) == "" {
		return nil, domain.NewValidationError("data.order_id", orderID, "empty")
	}
	if len(inputs) == 0 {
		return nil, domain.NewValidationError("data.inputs", "", "order has no inputs")
	}

	ids := make([]string, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for i, input := range inputs {
		id, err := domain.NormalizeID(fmt.Sprintf("data.inputs[%d].lock_id", i), input.LockID)
		if err != nil {
			return nil, err
		}
		if seen[id] {
			return nil, domain.NewValidationError(fmt.Sprintf("data.inputs[%d].lock_id", i), id, "duplicate input")
		}
		seen[id] = true
		ids = append(ids, id)
	}
	return ids, nil
}

func (e *executor) validateSolverFill(action domain.SolverFillAction) (solverFill, error) {
	lockIDs, err := e.validateInputs(action.Data.OrderID, action.Data.Inputs)
	if err != nil {
		return solverFill{}, err
	}
	solver, err := e.resolver.Owner(action.Result.Solver)
	if err != nil {
		return solverFill{}, err
	}

	bpsDiff := new(big.Int)
	if action.Result.BpsDiff != "" {
		if bpsDiff, err = domain.ParseSignedAmount("result.bps_diff", action.Result.BpsDiff); err != nil {
			return solverFill{}, err
		}
	}

	fees := make([]fee, 0, len(action.Data.Fees))
	for i, f := range action.Data.Fees {
		recipient, err := e.resolver.Owner(f.Recipient)
		if err != nil {
			return solverFill{}, err
		}
		currency, err := e.resolver.Currency(f.Currency)
		if err != nil {
			return solverFill{}, err
		}
		amount, err := domain.ParseAmount(fmt.Sprintf("data.fees[%d].amount", i), f.Amount)
		if err != nil {
			return solverFill{}, err
		}
		fees = append(fees, fee{recipient: recipient, currency: currency, amount: amount})
	}

	return solverFill{
		orderID: action.Data.OrderID,
		lockIDs: lockIDs,
		solver:  solver,
		bpsDiff: bpsDiff,
		fees:    fees,
	}, nil
}

func (e *executor) validateSolverRefund(action domain.SolverRefundAction) (solverRefund, error) {
	lockIDs, err := e.validateInputs(action.Data.OrderID, action.Data.Inputs)
	if err != nil {
		return solverRefund{}, err
	}
	solver, err := e.resolver.Owner(action.Result.Solver)
	if err != nil {
		return solverRefund{}, err
	}
	return solverRefund{orderID: action.Data.OrderID, lockIDs: lockIDs, solver: solver}, nil
}

func lockKey(lock *schema.BalanceLock) domain.BalanceKey {
	return domain.BalanceKey{
		Owner:    domain.OwnerRef{ChainID: lock.OwnerChainID, Address: lock.Owner},
		Currency: domain.CurrencyRef{ChainID: lock.CurrencyChainID, Currency: lock.Currency},
	}
}
