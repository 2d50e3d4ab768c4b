package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/relay-hub/settlement-hub/internal/api/middleware"
)

// SetupRoutes configures all REST API routes. v1Middleware runs ahead of every /api/v1 route.
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig, v1Middleware ...gin.HandlerFunc) {
	// Health check and metrics endpoints (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1", v1Middleware...)
	{
		// Attested actions (authenticated by oracle signatures)
		actions := v1.Group("/actions")
		actions.POST("/deposits", handler.SubmitDeposit)
		actions.POST("/withdrawals", handler.SubmitWithdrawal)
		actions.POST("/solver-fills", handler.SubmitSolverFill)
		actions.POST("/solver-refunds", handler.SubmitSolverRefund)

		// Owner requests (requires authentication)
		v1.POST("/requests/withdrawals", middleware.Auth(authCfg), handler.RequestWithdrawal)
		v1.GET("/requests/withdrawals/:id", handler.GetWithdrawalRequest)
		v1.POST("/requests/unlocks", middleware.Auth(authCfg), handler.RequestUnlock)

		// Ledger reads (public read access)
		v1.GET("/balances", handler.GetBalances)
		v1.GET("/entries/:id", handler.GetEntry)
		v1.GET("/locks/:id", handler.GetLock)

		// Mappings (writes require authentication)
		mappings := v1.Group("/mappings")
		mappings.POST("/nonces", middleware.Auth(authCfg), handler.SaveNonceMapping)
		mappings.GET("/nonces", handler.GetNonceMapping)
		mappings.POST("/deposits", middleware.Auth(authCfg), handler.SaveDepositBinding)
		mappings.GET("/deposits", handler.GetDepositBinding)
		mappings.POST("/requests", middleware.Auth(authCfg), handler.SaveRequestIDMapping)
		mappings.GET("/requests", handler.GetRequestIDMapping)
	}
}
