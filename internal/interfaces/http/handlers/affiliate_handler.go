package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"sellhub.backend/internal/domain/entities"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/interfaces/http/response"
)

type AffiliateService interface {
	ListSales(ctx context.Context, affiliateID uuid.UUID, page, limit int) ([]*entities.AffiliateSale, int64, error)
	GetSummary(ctx context.Context, affiliateID uuid.UUID, now time.Time) (*entities.AffiliateCommissionSummary, error)
	RequestPayout(ctx context.Context, affiliateID uuid.UUID, pixKey string, now time.Time) (*entities.Withdrawal, error)
}

// AffiliateHandler handles affiliate commission endpoints
type AffiliateHandler struct {
	affiliateUsecase AffiliateService
}

// NewAffiliateHandler creates a new affiliate handler
func NewAffiliateHandler(affiliateUsecase AffiliateService) *AffiliateHandler {
	return &AffiliateHandler{affiliateUsecase: affiliateUsecase}
}

// ListSales lists an affiliate's sales with their availability state
// GET /api/v1/affiliates/:id/sales
func (h *AffiliateHandler) ListSales(c *gin.Context) {
	affiliateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid affiliate ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	sales, total, err := h.affiliateUsecase.ListSales(c.Request.Context(), affiliateID, page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, http.StatusOK, sales, total, page, limit)
}

// GetCommission returns the affiliate's commission buckets
// GET /api/v1/affiliates/:id/commission
func (h *AffiliateHandler) GetCommission(c *gin.Context) {
	affiliateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid affiliate ID"))
		return
	}

	summary, err := h.affiliateUsecase.GetSummary(c.Request.Context(), affiliateID, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"commission": summary})
}

type requestAffiliatePayoutInput struct {
	PixKey string `json:"pixKey" binding:"required"`
}

// RequestPayout pays out every available commission through a withdrawal
// POST /api/v1/affiliates/:id/payouts
func (h *AffiliateHandler) RequestPayout(c *gin.Context) {
	affiliateID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid affiliate ID"))
		return
	}

	var input requestAffiliatePayoutInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	withdrawal, err := h.affiliateUsecase.RequestPayout(c.Request.Context(), affiliateID, input.PixKey, time.Now())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"withdrawal": withdrawal})
}
