package domain

import "encoding/json"

// ActionKind is the type of an attested settlement action
type ActionKind string

const (
	ActionKindDeposit      ActionKind = "deposit"
	ActionKindWithdrawal   ActionKind = "withdrawal"
	ActionKindSolverFill   ActionKind = "solver-fill"
	ActionKindSolverRefund ActionKind = "solver-refund"
)

// Valid checks if the action kind is known
func (k ActionKind) Valid() bool {
	switch k {
	case ActionKindDeposit, ActionKindWithdrawal, ActionKindSolverFill, ActionKindSolverRefund:
		return true
	}
	return false
}

// CustodyKind is the on-chain contract family that observed the event
type CustodyKind string

const (
	CustodyKindEscrow     CustodyKind = "escrow"
	CustodyKindDepository CustodyKind = "depository"
)

// OracleSignature is one oracle's signature over an action message id
type OracleSignature struct {
	Oracle    string `json:"oracle"`
	Signature string `json:"signature"`
}

// AttestedAction is the wire envelope delivered by oracles over HTTP or the queue.
// Data and Result stay raw so the message id is computed over exactly what was signed.
type AttestedAction struct {
	Kind       ActionKind        `json:"kind"`
	Data       json.RawMessage   `json:"data"`
	Result     json.RawMessage   `json:"result"`
	Signatures []OracleSignature `json:"signatures"`
}

// DepositData holds the chain facts of a deposit
type DepositData struct {
	Kind          CustodyKind `json:"kind"`
	ChainID       string      `json:"chain_id"`
	TransactionID string      `json:"transaction_id"`
}

// DepositResult holds the oracle-computed outcome of a deposit
type DepositResult struct {
	OnchainID string `json:"onchain_id"`
	Depositor string `json:"depositor"`
	Currency  string `json:"currency"`
	Amount    string `json:"amount"`
	// DepositID binds the deposit to a pending request; zero means unbound
	DepositID string `json:"deposit_id,omitempty"`
}

// DepositAction is a validated deposit message
type DepositAction struct {
	Data   DepositData   `json:"data"`
	Result DepositResult `json:"result"`
}

// WithdrawalStatus is the on-chain outcome of a withdrawal request
type WithdrawalStatus string

const (
	WithdrawalStatusExecuted WithdrawalStatus = "executed"
	WithdrawalStatusExpired  WithdrawalStatus = "expired"
)

// WithdrawalData holds the chain facts of a withdrawal
type WithdrawalData struct {
	Kind          CustodyKind `json:"kind"`
	ChainID       string      `json:"chain_id"`
	TransactionID string      `json:"transaction_id"`
}

// WithdrawalResult holds the oracle-computed outcome of a withdrawal
type WithdrawalResult struct {
	OnchainID    string           `json:"onchain_id"`
	WithdrawalID string           `json:"withdrawal_id"`
	Status       WithdrawalStatus `json:"status"`
}

// WithdrawalAction is a validated withdrawal message
type WithdrawalAction struct {
	Data   WithdrawalData   `json:"data"`
	Result WithdrawalResult `json:"result"`
}

// SolverInput references the balance lock backing one order input
type SolverInput struct {
	LockID string `json:"lock_id"`
}

// SolverFee is a fee owed by the solver out of a fill
type SolverFee struct {
	Recipient OwnerRef    `json:"recipient"`
	Currency  CurrencyRef `json:"currency"`
	Amount    string      `json:"amount"`
}

// SolverFillData holds the order facts of a fill
type SolverFillData struct {
	OrderID string        `json:"order_id"`
	Inputs  []SolverInput `json:"inputs"`
	Fees    []SolverFee   `json:"fees"`
}

// SolverFillResult holds the oracle-computed outcome of a fill
type SolverFillResult struct {
	Solver OwnerRef `json:"solver"`
	// BpsDiff is a signed 1e18 fixed-point correction between quoted and deposited amounts
	BpsDiff string `json:"bps_diff"`
}

// SolverFillAction is a validated fill message
type SolverFillAction struct {
	Data   SolverFillData   `json:"data"`
	Result SolverFillResult `json:"result"`
}

// SolverRefundData holds the order facts of a refund
type SolverRefundData struct {
	OrderID string        `json:"order_id"`
	Inputs  []SolverInput `json:"inputs"`
}

// SolverRefundResult holds the oracle-computed outcome of a refund
type SolverRefundResult struct {
	Solver OwnerRef `json:"solver"`
}

// SolverRefundAction is a validated refund message
type SolverRefundAction struct {
	Data   SolverRefundData   `json:"data"`
	Result SolverRefundResult `json:"result"`
}
