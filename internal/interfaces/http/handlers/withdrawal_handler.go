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

type WithdrawalService interface {
	Request(ctx context.Context, input entities.CreateWithdrawalInput) (*entities.Withdrawal, error)
	Get(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error)
	ListByAccount(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*entities.Withdrawal, int64, error)
}

// WithdrawalHandler handles withdrawal endpoints
type WithdrawalHandler struct {
	withdrawalUsecase WithdrawalService
}

// NewWithdrawalHandler creates a new withdrawal handler
func NewWithdrawalHandler(withdrawalUsecase WithdrawalService) *WithdrawalHandler {
	return &WithdrawalHandler{withdrawalUsecase: withdrawalUsecase}
}

// RequestWithdrawal opens a withdrawal request and blocks the funds
// POST /api/v1/withdrawals
func (h *WithdrawalHandler) RequestWithdrawal(c *gin.Context) {
	var input entities.CreateWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Request(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"withdrawal": withdrawal})
}

// GetWithdrawal gets a withdrawal by ID
// GET /api/v1/withdrawals/:id
func (h *WithdrawalHandler) GetWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid withdrawal ID"))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Get(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Withdrawal not found"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"withdrawal": withdrawal})
}

// ListWithdrawals lists an account's withdrawals
// GET /api/v1/accounts/:id/withdrawals
func (h *WithdrawalHandler) ListWithdrawals(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	withdrawals, total, err := h.withdrawalUsecase.ListByAccount(c.Request.Context(), accountID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, withdrawals, total, page, limit)
}
