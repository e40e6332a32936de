package api

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go-ledger/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type AccountRequest struct {
	ID string `json:"id"`
}

type AmountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type TransferRequest struct {
	ID     string          `json:"id"`
	From   string          `json:"from" binding:"required"`
	To     string          `json:"to" binding:"required"`
	Amount decimal.Decimal `json:"amount"`
}

type BalanceResponse struct {
	ID      string          `json:"id"`
	Balance decimal.Decimal `json:"balance"`
}

type StatementResponse struct {
	ID      string         `json:"id"`
	Entries []models.Entry `json:"entries"`
}

type TransferStatusResponse struct {
	TransferID string                `json:"transferId"`
	Status     models.TransferStatus `json:"status"`
}

type handler struct {
	accounts  AccountsOperations
	transfers TransfersOperations
	logger    *zap.Logger
	timeout   time.Duration
}

func (h *handler) createAccount(c *gin.Context) {
	var req AccountRequest
	// An empty body is allowed and means "pick an id for me".
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		badRequest(c)
		return
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.accounts.Create(ctx, req.ID)
	if err != nil {
		h.transportError(c, err)
		return
	}
	switch result := result.(type) {
	case models.AccountCreated:
		c.JSON(http.StatusCreated, gin.H{"id": result.AccountID})
	default:
		h.accountResultError(c, result)
	}
}

func (h *handler) getBalance(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.accounts.GetBalance(ctx, c.Param("id"))
	if err != nil {
		h.transportError(c, err)
		return
	}
	switch result := result.(type) {
	case models.AccountBalance:
		c.JSON(http.StatusOK, BalanceResponse{ID: result.AccountID, Balance: result.Balance})
	default:
		h.accountResultError(c, result)
	}
}

func (h *handler) getStatement(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.accounts.GetStatement(ctx, c.Param("id"))
	if err != nil {
		h.transportError(c, err)
		return
	}
	switch result := result.(type) {
	case models.AccountStatement:
		entries := result.Entries
		if entries == nil {
			entries = []models.Entry{}
		}
		c.JSON(http.StatusOK, StatementResponse{ID: result.AccountID, Entries: entries})
	default:
		h.accountResultError(c, result)
	}
}

func (h *handler) deposit(c *gin.Context) {
	h.moveCash(c, h.accounts.DepositCash)
}

func (h *handler) withdraw(c *gin.Context) {
	h.moveCash(c, h.accounts.WithdrawCash)
}

func (h *handler) moveCash(c *gin.Context, op func(context.Context, string, decimal.Decimal) (models.AccountResult, error)) {
	var req AmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	id := c.Param("id")
	result, err := op(ctx, id, req.Amount)
	if err != nil {
		h.transportError(c, err)
		return
	}
	switch result.(type) {
	case models.Success:
		c.JSON(http.StatusOK, gin.H{"id": id})
	default:
		h.accountResultError(c, result)
	}
}

func (h *handler) createTransfer(c *gin.Context) {
	var req TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c)
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"error": models.WrongAmount{Amount: req.Amount}.Error()})
		return
	}
	if req.ID == "" {
		req.ID = uuid.New().String()
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.transfers.Create(ctx, req.ID, req.From, req.To, req.Amount)
	if err != nil {
		h.transportError(c, err)
		return
	}
	switch result := result.(type) {
	case models.TransferCreated:
		c.JSON(http.StatusCreated, gin.H{"id": result.TransferID})
	default:
		h.transferResultError(c, result)
	}
}

func (h *handler) getTransferStatus(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	result, err := h.transfers.Status(ctx, c.Param("id"))
	if err != nil {
		h.transportError(c, err)
		return
	}
	switch result := result.(type) {
	case models.TransferStatusResult:
		c.JSON(http.StatusOK, TransferStatusResponse{TransferID: result.TransferID, Status: result.Status})
	default:
		h.transferResultError(c, result)
	}
}

func (h *handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), h.timeout)
}

func (h *handler) accountResultError(c *gin.Context, result models.AccountResult) {
	failure, ok := result.(models.AccountFailure)
	if !ok {
		h.unexpected(c, result)
		return
	}

	status := http.StatusInternalServerError
	switch failure.Fault.(type) {
	case models.AccountNotFound:
		status = http.StatusNotFound
	case models.AccountAlreadyExists:
		status = http.StatusConflict
	case models.NotEnoughMoney:
		status = http.StatusUnprocessableEntity
	case models.WrongAmount:
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": failure.Fault.Error()})
}

func (h *handler) transferResultError(c *gin.Context, result models.TransferResult) {
	failure, ok := result.(models.TransferFailure)
	if !ok {
		h.unexpected(c, result)
		return
	}

	status := http.StatusInternalServerError
	switch failure.Fault.(type) {
	case models.TransferNotFound:
		status = http.StatusNotFound
	case models.TransferAlreadyExists:
		status = http.StatusConflict
	}
	c.JSON(status, gin.H{"error": failure.Fault.Error()})
}

func (h *handler) transportError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		h.logger.Warn("ledger did not answer in time", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusGatewayTimeout, gin.H{"error": "Ledger did not answer in time"})
		return
	}
	h.logger.Error("ledger unavailable", zap.String("path", c.Request.URL.Path), zap.Error(err))
	c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Ledger unavailable"})
}

func (h *handler) unexpected(c *gin.Context, result any) {
	h.logger.Error("unexpected ledger result", zap.String("result", fmt.Sprintf("%T", result)))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected ledger result"})
}

func badRequest(c *gin.Context) {
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
}
