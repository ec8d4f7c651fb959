package usecases_test

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellhub.backend/internal/domain/entities"
	"sellhub.backend/internal/usecases"
)

func event(eventType, dataJSON string) usecases.WebhookEvent {
	return usecases.WebhookEvent{
		EventType: eventType,
		Data:      json.RawMessage(dataJSON),
	}
}

func TestWebhookHandle_PaymentApproved(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()

	order, err := env.order.CreateOrder(ctx, &entities.CreateOrderInput{
		CustomerRef: "cust-1",
		Items:       []entities.CreateOrderItemInput{ownLine(seller, "100.00", 1, "10")},
	})
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"orderId":%q,"paymentId":"pay-1","amount":"100.00"}`, order.ID)
	require.NoError(t, env.webhook.Handle(ctx, event(usecases.EventPaymentApproved, payload)))

	updated, err := env.order.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusPaid, updated.Status)

	account, err := env.ledger.EnsureAccount(ctx, seller)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(d("90.00")))
}

func TestWebhookHandle_OrderDelivered(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	affiliateID := uuid.New()
	order := paidOrderWithAffiliate(t, env, affiliateID, "200.00", "5")

	deliveredAt := time.Date(2026, 4, 1, 9, 30, 0, 0, time.UTC)
	payload := fmt.Sprintf(`{"orderId":%q,"deliveredAt":%q}`, order.ID, deliveredAt.Format(time.RFC3339))
	require.NoError(t, env.webhook.Handle(ctx, event(usecases.EventOrderDelivered, payload)))

	sale, err := env.affiliateSaleRepo.GetByOrderID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.AffiliateSaleStatusConfirmed, sale.Status)
	require.NotNil(t, sale.AvailableAt)
	assert.True(t, sale.AvailableAt.Equal(deliveredAt.Add(7*24*time.Hour)))
}

func TestWebhookHandle_RefundConfirmed(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()
	order := paidOrder(t, env, seller, "100.00", "pay-1")

	payload := `{"refundId":"ref-1","paymentId":"pay-1","amount":"100.00"}`
	require.NoError(t, env.webhook.Handle(ctx, event(usecases.EventRefundConfirmed, payload)))

	cancelled, err := env.order.GetOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.OrderStatusCancelled, cancelled.Status)
}

func TestWebhookHandle_RedeliveredEventIsIdempotent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	seller := uuid.New()

	order, err := env.order.CreateOrder(ctx, &entities.CreateOrderInput{
		CustomerRef: "cust-1",
		Items:       []entities.CreateOrderItemInput{ownLine(seller, "100.00", 1, "10")},
	})
	require.NoError(t, err)

	payload := fmt.Sprintf(`{"orderId":%q,"paymentId":"pay-1","amount":"100.00"}`, order.ID)
	require.NoError(t, env.webhook.Handle(ctx, event(usecases.EventPaymentApproved, payload)))
	require.NoError(t, env.webhook.Handle(ctx, event(usecases.EventPaymentApproved, payload)))

	account, err := env.ledger.EnsureAccount(ctx, seller)
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(d("90.00")), "credited once, got %s", account.Balance)
}

func TestWebhookHandle_UnknownEventType(t *testing.T) {
	env := newTestEnv(t)

	err := env.webhook.Handle(context.Background(), event("payment.disputed", `{}`))
	assert.Error(t, err)
}

func TestWebhookHandle_RejectsUnknownPayloadFields(t *testing.T) {
	env := newTestEnv(t)

	payload := fmt.Sprintf(`{"orderId":%q,"paymentId":"pay-1","amount":"100.00","surprise":true}`, uuid.New())
	err := env.webhook.Handle(context.Background(), event(usecases.EventPaymentApproved, payload))
	assert.Error(t, err)
}

func TestWebhookHandle_RejectsBadAmounts(t *testing.T) {
	env := newTestEnv(t)

	for _, amount := range []string{"", "abc", "-5", "0"} {
		payload := fmt.Sprintf(`{"orderId":%q,"paymentId":"pay-1","amount":%q}`, uuid.New(), amount)
		err := env.webhook.Handle(context.Background(), event(usecases.EventPaymentApproved, payload))
		assert.Error(t, err, "amount %q must be rejected", amount)
	}
}

func TestWebhookHandle_RejectsBadDeliveredAt(t *testing.T) {
	env := newTestEnv(t)

	payload := fmt.Sprintf(`{"orderId":%q,"deliveredAt":"yesterday"}`, uuid.New())
	err := env.webhook.Handle(context.Background(), event(usecases.EventOrderDelivered, payload))
	assert.Error(t, err)
}
