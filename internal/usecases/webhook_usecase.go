package usecases

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	domainerrors "sellhub.backend/internal/domain/errors"
	"sellhub.backend/pkg/logger"
)

// Webhook event types accepted from the gateway and fulfillment side
const (
	EventPaymentApproved = "payment.approved"
	EventRefundConfirmed = "refund.confirmed"
	EventOrderDelivered  = "order.delivered"
)

// WebhookEvent is the envelope of every inbound event
type WebhookEvent struct {
	EventType string          `json:"eventType" binding:"required"`
	Data      json.RawMessage `json:"data" binding:"required"`
}

// Per-event payloads are closed structs: a shape the dispatcher does not
// know is rejected at the boundary instead of being half-processed.
type paymentApprovedData struct {
	OrderID          string `json:"orderId"`
	GatewayPaymentID string `json:"paymentId"`
	Amount           string `json:"amount"`
}

type refundConfirmedData struct {
	GatewayRefundID  string `json:"refundId"`
	GatewayPaymentID string `json:"paymentId"`
	Amount           string `json:"amount"`
}

type orderDeliveredData struct {
	OrderID     string `json:"orderId"`
	DeliveredAt string `json:"deliveredAt"`
}

// WebhookUsecase decodes gateway events and dispatches them to the
// settlement flows. Every flow behind it is idempotent, so the gateway may
// redeliver any event at will.
type WebhookUsecase struct {
	order     *OrderUsecase
	affiliate *AffiliateUsecase
	refund    *RefundUsecase
}

// NewWebhookUsecase creates a new webhook usecase
func NewWebhookUsecase(order *OrderUsecase, affiliate *AffiliateUsecase, refund *RefundUsecase) *WebhookUsecase {
	return &WebhookUsecase{
		order:     order,
		affiliate: affiliate,
		refund:    refund,
	}
}

// Handle dispatches one decoded webhook envelope
func (u *WebhookUsecase) Handle(ctx context.Context, event WebhookEvent) error {
	logger.Info(ctx, "Webhook event received", zap.String("event_type", event.EventType))

	switch event.EventType {
	case EventPaymentApproved:
		var data paymentApprovedData
		if err := decodeStrict(event.Data, &data); err != nil {
			return err
		}
		orderID, err := uuid.Parse(data.OrderID)
		if err != nil {
			return domainerrors.BadRequest("invalid order id")
		}
		if data.GatewayPaymentID == "" {
			return domainerrors.BadRequest("payment id is required")
		}
		amount, err := decimal.NewFromString(data.Amount)
		if err != nil || !amount.IsPositive() {
			return domainerrors.BadRequest("invalid amount")
		}
		return u.order.HandlePaymentApproved(ctx, orderID, data.GatewayPaymentID, amount)

	case EventRefundConfirmed:
		var data refundConfirmedData
		if err := decodeStrict(event.Data, &data); err != nil {
			return err
		}
		amount, err := decimal.NewFromString(data.Amount)
		if err != nil || !amount.IsPositive() {
			return domainerrors.BadRequest("invalid amount")
		}
		_, err = u.refund.HandleRefundConfirmed(ctx, data.GatewayRefundID, data.GatewayPaymentID, amount)
		return err

	case EventOrderDelivered:
		var data orderDeliveredData
		if err := decodeStrict(event.Data, &data); err != nil {
			return err
		}
		orderID, err := uuid.Parse(data.OrderID)
		if err != nil {
			return domainerrors.BadRequest("invalid order id")
		}
		deliveredAt := time.Now()
		if data.DeliveredAt != "" {
			deliveredAt, err = time.Parse(time.RFC3339, data.DeliveredAt)
			if err != nil {
				return domainerrors.BadRequest("invalid deliveredAt timestamp")
			}
		}
		return u.affiliate.HandleOrderDelivered(ctx, orderID, deliveredAt)

	default:
		return domainerrors.BadRequest("unknown event type: " + event.EventType)
	}
}

// decodeStrict unmarshals a payload rejecting fields the target struct does
// not declare
func decodeStrict(raw json.RawMessage, target interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(target); err != nil {
		return domainerrors.BadRequest("malformed event payload: " + err.Error())
	}
	return nil
}
