package domain

// ResultStatus is the top-level outcome of an executed action
type ResultStatus string

const (
	ResultStatusSuccess ResultStatus = "success"
	ResultStatusFailure ResultStatus = "failure"
)

// ResultDetails refines a ResultStatus
type ResultDetails string

const (
	// Success variants. Everything but ResultDetailsSuccess is an idempotent replay.
	ResultDetailsSuccess         ResultDetails = "success"
	ResultDetailsAlreadySaved    ResultDetails = "already-saved"
	ResultDetailsAlreadyLocked   ResultDetails = "already-locked"
	ResultDetailsAlreadyUnlocked ResultDetails = "already-unlocked"

	// Failure variants. The transaction was rolled back.
	ResultDetailsReallocationFailed  ResultDetails = "reallocation-failed"
	ResultDetailsInsufficientBalance ResultDetails = "insufficient-balance"
	ResultDetailsUnknown             ResultDetails = "unknown"
)

// ActionResult is the tagged result of every executor entry point
type ActionResult struct {
	Status  ResultStatus  `json:"status"`
	Details ResultDetails `json:"details"`
	// Err carries the cause of a failure for logging, never serialized
	Err error `json:"-"`
}

// Succeeded reports whether the action is applied, now or previously
func (r ActionResult) Succeeded() bool {
	return r.Status == ResultStatusSuccess
}

// IsReplay reports whether the action had already been applied
func (r ActionResult) IsReplay() bool {
	return r.Status == ResultStatusSuccess && r.Details != ResultDetailsSuccess
}

// Success builds a success result with the given variant
func Success(details ResultDetails) ActionResult {
	return ActionResult{Status: ResultStatusSuccess, Details: details}
}

// Failure builds a failure result with the given variant and cause
func Failure(details ResultDetails, err error) ActionResult {
	return ActionResult{Status: ResultStatusFailure, Details: details, Err: err}
}
