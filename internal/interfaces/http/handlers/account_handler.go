package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/interfaces/http/response"
)

type LedgerService interface {
	GetBalance(ctx context.Context, accountID uuid.UUID) (*entities.BalanceSnapshot, error)
	GetTransactions(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*entities.LedgerTransaction, int64, error)
}

// AccountHandler handles seller account endpoints
type AccountHandler struct {
	ledgerUsecase LedgerService
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(ledgerUsecase LedgerService) *AccountHandler {
	return &AccountHandler{ledgerUsecase: ledgerUsecase}
}

// GetBalance returns the account's balance snapshot
// GET /api/v1/accounts/:id/balance
func (h *AccountHandler) GetBalance(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	balance, err := h.ledgerUsecase.GetBalance(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"balance": balance})
}

// ListTransactions returns the account's ledger history, newest-first
// GET /api/v1/accounts/:id/transactions
func (h *AccountHandler) ListTransactions(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	transactions, total, err := h.ledgerUsecase.GetTransactions(c.Request.Context(), id, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, transactions, total, page, limit)
}
