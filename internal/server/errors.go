package server

import (
	"errors"
	"net/http"

	"github.com/LSC-ship-it/luxem-lsc-cashback/internal/cashback/domain"
	"github.com/gin-gonic/gin"
)

type apiError struct {
	Status  int    `json:"-"`
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (e *apiError) Error() string { return e.Code }

var (
	ErrUnauthorized = &apiError{Status: http.StatusUnauthorized, Code: "unauthorized", Message: "unauthorized"}
	ErrNotFound     = &apiError{Status: http.StatusNotFound, Code: "not_found", Message: "resource not found"}
)

func invalidRequestError() *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: "invalid_request", Message: "invalid request"}
}

func newValidationError(field, code, message string) *apiError {
	return &apiError{Status: http.StatusBadRequest, Code: code, Field: field, Message: message}
}

// AbortWithError maps domain sentinels and apiErrors onto HTTP responses.
// Unrecognized errors become an opaque 500; details stay in the logs.
func AbortWithError(c *gin.Context, err error) {
	var api *apiError
	if errors.As(err, &api) {
		c.AbortWithStatusJSON(api.Status, gin.H{"error": api})
		return
	}

	switch {
	case errors.Is(err, domain.ErrInvalidPayload):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "invalid_payload",
			"message": "request body is not valid JSON",
		}})
	case errors.Is(err, domain.ErrInvalidShopDomain),
		errors.Is(err, domain.ErrInvalidSignature),
		errors.Is(err, domain.ErrMissingSecret):
		// Missing-secret misconfiguration folds into the fail-closed 401 so
		// probing senders cannot tell it apart from a bad signature.
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{
			"code":    "unauthorized",
			"message": "webhook could not be verified",
		}})
	case errors.Is(err, domain.ErrInvalidOrderID):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": gin.H{
			"code":    "invalid_order_id",
			"message": "invalid order id",
		}})
	case errors.Is(err, domain.ErrEventNotFound):
		c.AbortWithStatusJSON(ErrNotFound.Status, gin.H{"error": ErrNotFound})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": gin.H{
			"code":    "internal_error",
			"message": "internal error",
		}})
	}
}
