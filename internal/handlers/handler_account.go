package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	portssvc "github.com/kyukyubank/banking-service/internal/core/ports/services"
	"github.com/kyukyubank/banking-service/internal/dto"
	"github.com/kyukyubank/banking-service/internal/middleware"
)

// accountHandler handles HTTP requests related to accounts and the money
// movements that start from an account.
type accountHandler struct {
	accountService  portssvc.AccountSvcFacade
	transferService portssvc.TransferSvcFacade
	ledgerService   portssvc.LedgerSvcFacade
}

func newAccountHandler(as portssvc.AccountSvcFacade, ts portssvc.TransferSvcFacade, ls portssvc.LedgerSvcFacade) *accountHandler {
	return &accountHandler{accountService: as, transferService: ts, ledgerService: ls}
}

// registerAccountRoutes registers all account-related routes.
func registerAccountRoutes(rg *gin.RouterGroup, as portssvc.AccountSvcFacade, ts portssvc.TransferSvcFacade, ls portssvc.LedgerSvcFacade) {
	h := newAccountHandler(as, ts, ls)

	accounts := rg.Group("/accounts")
	{
		accounts.POST("", h.createAccount)
		accounts.GET("", h.listAccounts)
		accounts.GET("/:id", h.getAccount)
		accounts.GET("/:id/balance", h.getBalance)
		accounts.POST("/:id/close", h.closeAccount)
		accounts.POST("/:id/deposit", h.deposit)
		accounts.POST("/:id/withdraw", h.withdraw)
		accounts.POST("/:id/transfer", h.transfer)
		accounts.GET("/:id/transactions", h.listTransactions)
		accounts.GET("/:id/ledger", h.listLedger)
	}
}

func (h *accountHandler) createAccount(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req dto.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	account, err := h.accountService.CreateAccount(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.ToAccountResponse(account))
}

func (h *accountHandler) listAccounts(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return
	}

	accounts, err := h.accountService.ListAccounts(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListAccountResponse(accounts))
}

func (h *accountHandler) getAccount(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToAccountResponse(account))
}

func (h *accountHandler) getBalance(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccountByID(c.Request.Context(), userID, accountID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.AccountBalanceResponse{
		AccountID:     account.AccountID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
		CurrencyCode:  account.CurrencyCode,
	})
}

func (h *accountHandler) closeAccount(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	if err := h.accountService.CloseAccount(c.Request.Context(), userID, accountID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *accountHandler) deposit(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	var req dto.DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.accountService.Deposit(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(res))
}

func (h *accountHandler) withdraw(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	var req dto.WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.accountService.Withdraw(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(res))
}

func (h *accountHandler) transfer(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.transferService.Transfer(c.Request.Context(), userID, accountID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToTransferResponse(res))
}

func (h *accountHandler) listTransactions(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	txns, err := h.transferService.ListTransactions(c.Request.Context(), userID, accountID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListTransactionsResponse(txns, params.Limit))
}

func (h *accountHandler) listLedger(c *gin.Context) {
	userID, accountID, ok := h.userAndAccountID(c)
	if !ok {
		return
	}

	var params dto.ListLedgerParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid query parameters: " + err.Error()})
		return
	}

	entries, err := h.ledgerService.ListEntries(c.Request.Context(), userID, accountID, params)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToListLedgerResponse(entries, params.Limit))
}

// userAndAccountID pulls the authenticated user and the :id path parameter,
// writing the error response itself when either is missing.
func (h *accountHandler) userAndAccountID(c *gin.Context) (int64, int64, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return 0, 0, false
	}
	accountID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid account id"})
		return 0, 0, false
	}
	return userID, accountID, true
}
