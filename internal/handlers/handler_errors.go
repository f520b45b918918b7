package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kyukyubank/banking-service/internal/apperrors"
)

// ErrorResponse is the generic error payload returned by all handlers.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError maps service-layer error kinds onto HTTP statuses. The
// sentinel message stays in the payload; wrapped detail is for the logs only.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	msg := "Internal server error"

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		status, msg = http.StatusNotFound, "Not found"
	case errors.Is(err, apperrors.ErrValidation), errors.Is(err, apperrors.ErrOutOfRange):
		status, msg = http.StatusBadRequest, err.Error()
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, msg = http.StatusForbidden, "Forbidden"
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		status, msg = http.StatusUnprocessableEntity, "Insufficient balance"
	case errors.Is(err, apperrors.ErrInactiveAccount):
		status, msg = http.StatusConflict, "Account is not active"
	case errors.Is(err, apperrors.ErrDuplicateAccountNumber):
		status, msg = http.StatusConflict, "Account number collision"
	case errors.Is(err, apperrors.ErrConfiguration):
		status, msg = http.StatusBadRequest, err.Error()
	}

	c.JSON(status, ErrorResponse{Error: msg})
}
