package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/middleware"
)

// transactionHandler handles direct transaction lookups.
type transactionHandler struct {
	transferService portssvc.TransferSvcFacade
}

// registerTransactionRoutes registers transaction lookup routes.
func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransferSvcFacade) {
	h := &transactionHandler{transferService: ts}

	transactions := rg.Group("/transactions")
	{
		transactions.GET("/:id", h.getTransaction)
	}
}

func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	transactionID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid transaction id"})
		return
	}

	txn, err := h.transferService.GetTransaction(c.Request.Context(), userID, transactionID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}
