package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/internal/interfaces/http/response"
	"sellhub.backend/internal/usecases"
)

type WebhookService interface {
	Handle(ctx context.Context, event usecases.WebhookEvent) error
}

// WebhookHandler receives gateway and fulfillment events
type WebhookHandler struct {
	webhookUsecase WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(webhookUsecase WebhookService) *WebhookHandler {
	return &WebhookHandler{webhookUsecase: webhookUsecase}
}

// HandleGatewayEvent dispatches one gateway event. The flows behind it are
// idempotent, so acknowledging with 200 after success is always safe even
// for redelivered events.
// POST /api/v1/webhooks/gateway
func (h *WebhookHandler) HandleGatewayEvent(c *gin.Context) {
	var event usecases.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.webhookUsecase.Handle(c.Request.Context(), event); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"status": "processed"})
}
