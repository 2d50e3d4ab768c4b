package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/relay-hub/settlement-hub/internal/api/shared/errors"
)

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	respondAPIError(c, errors.NewBadRequestError(message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	respondAPIError(c, errors.NewNotFoundError(message, details...))
}

// respondError responds with the API error err maps to
func respondError(c *gin.Context, err error, message string) {
	respondAPIError(c, errors.FromDomainError(err, message))
}

func respondAPIError(c *gin.Context, apiErr *errors.APIError) {
	c.JSON(apiErr.StatusCode(), apiErr)
}
