package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/interfaces/http/middleware"
	"sellhub.backend/internal/interfaces/http/response"
	"sellhub.backend/internal/usecases"
)

type WithdrawalAdminService interface {
	Approve(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*entities.Withdrawal, error)
	ExecutePayout(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error)
}

type AdjustmentService interface {
	ManualAdjustment(ctx context.Context, accountID uuid.UUID, typ entities.TransactionType, amount decimal.Decimal, actorID, reason string) (*entities.LedgerTransaction, error)
}

type RefundAdminService interface {
	AdminRefund(ctx context.Context, input usecases.AdminRefundInput, actorID string) (*entities.Refund, error)
}

// AdminHandler handles the back-office endpoints. Every route behind it
// requires the acting admin's identity via the actor middleware.
type AdminHandler struct {
	withdrawalUsecase WithdrawalAdminService
	ledgerUsecase     AdjustmentService
	refundUsecase     RefundAdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	withdrawalUsecase WithdrawalAdminService,
	ledgerUsecase AdjustmentService,
	refundUsecase RefundAdminService,
) *AdminHandler {
	return &AdminHandler{
		withdrawalUsecase: withdrawalUsecase,
		ledgerUsecase:     ledgerUsecase,
		refundUsecase:     refundUsecase,
	}
}

// ApproveWithdrawal approves a pending withdrawal
// POST /api/v1/admin/withdrawals/:id/approve
func (h *AdminHandler) ApproveWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid withdrawal ID"))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Approve(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"withdrawal": withdrawal})
}

type rejectWithdrawalInput struct {
	Reason string `json:"reason" binding:"required"`
}

// RejectWithdrawal rejects a withdrawal and releases the blocked funds
// POST /api/v1/admin/withdrawals/:id/reject
func (h *AdminHandler) RejectWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid withdrawal ID"))
		return
	}

	var input rejectWithdrawalInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	withdrawal, err := h.withdrawalUsecase.Reject(c.Request.Context(), id, input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"withdrawal": withdrawal})
}

// ExecuteWithdrawal triggers the provider transfer for an approved withdrawal
// POST /api/v1/admin/withdrawals/:id/execute
func (h *AdminHandler) ExecuteWithdrawal(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid withdrawal ID"))
		return
	}

	withdrawal, err := h.withdrawalUsecase.ExecutePayout(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"withdrawal": withdrawal})
}

type adjustmentInput struct {
	Type   string `json:"type" binding:"required"`
	Amount string `json:"amount" binding:"required"`
	Reason string `json:"reason" binding:"required"`
}

// CreateAdjustment posts a manual ledger adjustment
// POST /api/v1/admin/accounts/:id/adjustments
func (h *AdminHandler) CreateAdjustment(c *gin.Context) {
	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid account ID"))
		return
	}

	var input adjustmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	amount, err := decimal.NewFromString(input.Amount)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid amount"))
		return
	}

	actorID := c.GetString(middleware.ActorKey)
	txn, err := h.ledgerUsecase.ManualAdjustment(c.Request.Context(), accountID,
		entities.TransactionType(input.Type), amount, actorID, input.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"transaction": txn})
}

// CreateRefund applies an admin-initiated refund
// POST /api/v1/admin/refunds
func (h *AdminHandler) CreateRefund(c *gin.Context) {
	var input usecases.AdminRefundInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	actorID := c.GetString(middleware.ActorKey)
	refund, err := h.refundUsecase.AdminRefund(c.Request.Context(), input, actorID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"refund": refund})
}
