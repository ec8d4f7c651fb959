package handlers_test

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"sellhub.backend/internal/domain/entities"
	"sellhub.backend/internal/usecases"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) CreateOrder(ctx context.Context, input *entities.CreateOrderInput) (*entities.Order, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Order), args.Error(1)
}

func (m *MockOrderService) GetOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Order), args.Error(1)
}

type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) GetBalance(ctx context.Context, accountID uuid.UUID) (*entities.BalanceSnapshot, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.BalanceSnapshot), args.Error(1)
}

func (m *MockLedgerService) GetTransactions(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*entities.LedgerTransaction, int64, error) {
	args := m.Called(ctx, accountID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.LedgerTransaction), args.Get(1).(int64), args.Error(2)
}

type MockWithdrawalService struct {
	mock.Mock
}

func (m *MockWithdrawalService) Request(ctx context.Context, input entities.CreateWithdrawalInput) (*entities.Withdrawal, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) Get(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalService) ListByAccount(ctx context.Context, accountID uuid.UUID, page, limit int) ([]*entities.Withdrawal, int64, error) {
	args := m.Called(ctx, accountID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.Withdrawal), args.Get(1).(int64), args.Error(2)
}

type MockAffiliateService struct {
	mock.Mock
}

func (m *MockAffiliateService) ListSales(ctx context.Context, affiliateID uuid.UUID, page, limit int) ([]*entities.AffiliateSale, int64, error) {
	args := m.Called(ctx, affiliateID, page, limit)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*entities.AffiliateSale), args.Get(1).(int64), args.Error(2)
}

func (m *MockAffiliateService) GetSummary(ctx context.Context, affiliateID uuid.UUID, now time.Time) (*entities.AffiliateCommissionSummary, error) {
	args := m.Called(ctx, affiliateID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.AffiliateCommissionSummary), args.Error(1)
}

func (m *MockAffiliateService) RequestPayout(ctx context.Context, affiliateID uuid.UUID, pixKey string, now time.Time) (*entities.Withdrawal, error) {
	args := m.Called(ctx, affiliateID, pixKey, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

type MockWithdrawalAdminService struct {
	mock.Mock
}

func (m *MockWithdrawalAdminService) Approve(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalAdminService) Reject(ctx context.Context, id uuid.UUID, reason string) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

func (m *MockWithdrawalAdminService) ExecutePayout(ctx context.Context, id uuid.UUID) (*entities.Withdrawal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Withdrawal), args.Error(1)
}

type MockAdjustmentService struct {
	mock.Mock
}

func (m *MockAdjustmentService) ManualAdjustment(ctx context.Context, accountID uuid.UUID, typ entities.TransactionType, amount decimal.Decimal, actorID, reason string) (*entities.LedgerTransaction, error) {
	args := m.Called(ctx, accountID, typ, amount, actorID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.LedgerTransaction), args.Error(1)
}

type MockRefundAdminService struct {
	mock.Mock
}

func (m *MockRefundAdminService) AdminRefund(ctx context.Context, input usecases.AdminRefundInput, actorID string) (*entities.Refund, error) {
	args := m.Called(ctx, input, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Refund), args.Error(1)
}

type MockWebhookService struct {
	mock.Mock
}

func (m *MockWebhookService) Handle(ctx context.Context, event usecases.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
