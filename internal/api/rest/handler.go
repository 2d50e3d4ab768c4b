package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/relay-hub/settlement-hub/internal/api/shared/dto"
	"github.com/relay-hub/settlement-hub/internal/api/shared/executor"
	"github.com/relay-hub/settlement-hub/internal/domain"
)

// Handler defines the interface for REST API handlers
type Handler interface {
	// SubmitDeposit executes an attested deposit
	// POST /api/v1/actions/deposits
	SubmitDeposit(c *gin.Context)

	// SubmitWithdrawal executes an attested withdrawal
	// POST /api/v1/actions/withdrawals
	SubmitWithdrawal(c *gin.Context)

	// SubmitSolverFill executes an attested solver fill
	// POST /api/v1/actions/solver-fills
	SubmitSolverFill(c *gin.Context)

	// SubmitSolverRefund executes an attested solver refund
	// POST /api/v1/actions/solver-refunds
	SubmitSolverRefund(c *gin.Context)

	// RequestWithdrawal issues a signed withdrawal request (requires authentication)
	// POST /api/v1/requests/withdrawals
	RequestWithdrawal(c *gin.Context)

	// GetWithdrawalRequest retrieves an issued withdrawal request
	// GET /api/v1/requests/withdrawals/:id
	GetWithdrawalRequest(c *gin.Context)

	// RequestUnlock releases a deposit lock (requires authentication)
	// POST /api/v1/requests/unlocks
	RequestUnlock(c *gin.Context)

	// GetBalances retrieves the balances of an owner
	// GET /api/v1/balances?owner_chain_id=<chain>&owner=<address>&currency_chain_id=<chain>&currency=<currency>
	GetBalances(c *gin.Context)

	// GetEntry retrieves a journal entry
	// GET /api/v1/entries/:id
	GetEntry(c *gin.Context)

	// GetLock retrieves a balance lock
	// GET /api/v1/locks/:id
	GetLock(c *gin.Context)

	// POST /api/v1/mappings/nonces
	SaveNonceMapping(c *gin.Context)
	// GET /api/v1/mappings/nonces?chain_id=<chain>&wallet=<address>&nonce=<nonce>
	GetNonceMapping(c *gin.Context)
	// POST /api/v1/mappings/deposits
	SaveDepositBinding(c *gin.Context)
	// GET /api/v1/mappings/deposits?chain_id=<chain>&wallet=<address>&nonce=<nonce>
	GetDepositBinding(c *gin.Context)
	// POST /api/v1/mappings/requests
	SaveRequestIDMapping(c *gin.Context)
	// GET /api/v1/mappings/requests?chain_id=<chain>&wallet=<address>&nonce=<nonce>
	GetRequestIDMapping(c *gin.Context)

	// HealthCheck returns the health status of the API
	// GET /health
	HealthCheck(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	executor executor.Executor
}

// NewHandler creates a new REST API handler using the shared executor
func NewHandler(exec executor.Executor) Handler {
	return &handler{
		executor: exec,
	}
}

func (h *handler) SubmitDeposit(c *gin.Context) {
	h.submitAction(c, domain.ActionKindDeposit)
}

func (h *handler) SubmitWithdrawal(c *gin.Context) {
	h.submitAction(c, domain.ActionKindWithdrawal)
}

func (h *handler) SubmitSolverFill(c *gin.Context) {
	h.submitAction(c, domain.ActionKindSolverFill)
}

func (h *handler) SubmitSolverRefund(c *gin.Context) {
	h.submitAction(c, domain.ActionKindSolverRefund)
}

// submitAction executes an attested action of kind.
// Failure results are rolled back and served as 409 with the result body.
func (h *handler) submitAction(c *gin.Context, kind domain.ActionKind) {
	var action domain.AttestedAction
	if err := c.ShouldBindJSON(&action); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.executor.ExecuteAction(c.Request.Context(), kind, action)
	if err != nil {
		respondError(c, err, "Failed to execute action")
		return
	}

	if result.Failed() {
		c.JSON(http.StatusConflict, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *handler) RequestWithdrawal(c *gin.Context) {
	var req dto.WithdrawalRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.RequestWithdrawal(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to request withdrawal")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetWithdrawalRequest(c *gin.Context) {
	resp, err := h.executor.GetWithdrawalRequest(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get withdrawal request")
		return
	}
	if resp == nil {
		respondNotFound(c, "Withdrawal request not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) RequestUnlock(c *gin.Context) {
	var req dto.UnlockRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.RequestUnlock(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to unlock deposit")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetBalances(c *gin.Context) {
	var query dto.BalanceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.executor.GetBalances(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to get balances")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetEntry(c *gin.Context) {
	resp, err := h.executor.GetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get entry")
		return
	}
	if resp == nil {
		respondNotFound(c, "Entry not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) GetLock(c *gin.Context) {
	resp, err := h.executor.GetLock(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Failed to get lock")
		return
	}
	if resp == nil {
		respondNotFound(c, "Lock not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) SaveNonceMapping(c *gin.Context) {
	var req dto.NonceMappingBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.SaveNonceMapping(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save nonce mapping")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetNonceMapping(c *gin.Context) {
	var query dto.MappingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.executor.GetNonceMapping(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to get nonce mapping")
		return
	}
	if resp == nil {
		respondNotFound(c, "Nonce mapping not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) SaveDepositBinding(c *gin.Context) {
	var req dto.DepositBindingBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.SaveDepositBinding(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save deposit binding")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetDepositBinding(c *gin.Context) {
	var query dto.MappingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.executor.GetDepositBinding(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to get deposit binding")
		return
	}
	if resp == nil {
		respondNotFound(c, "Deposit binding not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *handler) SaveRequestIDMapping(c *gin.Context) {
	var req dto.RequestIDMappingBody
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	resp, err := h.executor.SaveRequestIDMapping(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to save request id mapping")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *handler) GetRequestIDMapping(c *gin.Context) {
	var query dto.MappingQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		respondBadRequest(c, "Invalid query parameters", err.Error())
		return
	}

	resp, err := h.executor.GetRequestIDMapping(c.Request.Context(), query)
	if err != nil {
		respondError(c, err, "Failed to get request id mapping")
		return
	}
	if resp == nil {
		respondNotFound(c, "Request id mapping not found")
		return
	}

	c.JSON(http.StatusOK, resp)
}

// HealthCheck returns the health status
func (h *handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
