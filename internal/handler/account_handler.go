package handler

import (
	"errors"
	"net/http"

	"github.com/eaglebank/banking/internal/account"
	"github.com/eaglebank/banking/internal/session"
	"github.com/eaglebank/banking/shared/cqrs"
	"github.com/eaglebank/banking/shared/middleware"
	"github.com/eaglebank/banking/shared/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// AccountCommander defines the write-side operations used by AccountHandler.
type AccountCommander interface {
	Deposit(cqrs.DepositCommand) (*models.AccountView, error)
	Withdraw(cqrs.WithdrawCommand) (*models.AccountView, error)
	ApplyInterest(cqrs.ApplyInterestCommand) (*models.AccountView, error)
}

// AccountQuerier defines the read-side operations used by AccountHandler.
type AccountQuerier interface {
	GetAccount(cqrs.GetAccountQuery) (*models.AccountView, error)
	ListAccounts(cqrs.ListAccountsQuery) ([]models.AccountView, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	commands AccountCommander
	queries  AccountQuerier
}

// AmountRequest accepts the amount as a JSON number or numeric string.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,gt=0"`
}

type ListAccountsResponse struct {
	Accounts []models.AccountView `json:"accounts"`
}

func NewAccountHandler(commands AccountCommander, queries AccountQuerier) *AccountHandler {
	return &AccountHandler{commands: commands, queries: queries}
}

func (h *AccountHandler) ListAccounts(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	views, err := h.queries.ListAccounts(cqrs.ListAccountsQuery{SessionID: sessionID})
	if err != nil {
		respondWithDomainError(c, err, "Failed to list accounts")
		return
	}
	c.JSON(http.StatusOK, ListAccountsResponse{Accounts: views})
}

func (h *AccountHandler) GetAccount(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	view, err := h.queries.GetAccount(cqrs.GetAccountQuery{
		SessionID:   sessionID,
		AccountType: c.Param("accountType"),
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to get account")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) Deposit(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	req, ok := bindAmount(c)
	if !ok {
		return
	}
	view, err := h.commands.Deposit(cqrs.DepositCommand{
		SessionID:   sessionID,
		AccountType: c.Param("accountType"),
		Amount:      req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to deposit")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) Withdraw(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	req, ok := bindAmount(c)
	if !ok {
		return
	}
	view, err := h.commands.Withdraw(cqrs.WithdrawCommand{
		SessionID:   sessionID,
		AccountType: c.Param("accountType"),
		Amount:      req.Amount,
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to withdraw")
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *AccountHandler) ApplyInterest(c *gin.Context) {
	sessionID, _ := middleware.GetSessionID(c)

	view, err := h.commands.ApplyInterest(cqrs.ApplyInterestCommand{
		SessionID:   sessionID,
		AccountType: c.Param("accountType"),
	})
	if err != nil {
		respondWithDomainError(c, err, "Failed to apply interest")
		return
	}
	c.JSON(http.StatusOK, view)
}

func bindAmount(c *gin.Context) (AmountRequest, bool) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return req, false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return req, false
	}
	return req, true
}

func respondWithDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Session not found")
	case errors.Is(err, account.ErrUnknownKind):
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, account.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusUnprocessableEntity, "Withdrawal failed! Minimum balance not maintained.")
	case errors.Is(err, account.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, "Amount must be greater than zero")
	case errors.Is(err, account.ErrInterestNotSupported):
		middleware.RespondWithError(c, http.StatusBadRequest, "Interest is only available on savings accounts")
	default:
		_ = c.Error(err)
		middleware.RespondWithError(c, http.StatusInternalServerError, fallback)
	}
}
