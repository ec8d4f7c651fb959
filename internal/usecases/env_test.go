package usecases_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"sellhub.backend/internal/config"
	domainRepos "sellhub.backend/internal/domain/repositories"
	"sellhub.backend/internal/infrastructure/repositories"
	"sellhub.backend/internal/usecases"
)

// testEnv wires the settlement usecases against an in-memory database, the
// same way main does against postgres.
type testEnv struct {
	db  *gorm.DB
	cfg config.SettlementConfig

	accountRepo       domainRepos.SellerAccountRepository
	ledgerRepo        domainRepos.LedgerTransactionRepository
	withdrawalRepo    domainRepos.WithdrawalRepository
	affiliateSaleRepo domainRepos.AffiliateSaleRepository
	orderRepo         domainRepos.OrderRepository
	paymentRepo       domainRepos.PaymentRepository
	refundRepo        domainRepos.RefundRepository
	uow               domainRepos.UnitOfWork

	calculator *usecases.CommissionCalculator
	ledger     *usecases.LedgerUsecase
	order      *usecases.OrderUsecase
	withdrawal *usecases.WithdrawalUsecase
	affiliate  *usecases.AffiliateUsecase
	refund     *usecases.RefundUsecase
	webhook    *usecases.WebhookUsecase
	provider   *fakeProvider
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	createSchema(t, db)

	env := &testEnv{
		db: db,
		cfg: config.SettlementConfig{
			DefaultCommissionPercent: decimal.NewFromInt(10),
			AffiliateGracePeriod:     7 * 24 * time.Hour,
			WithdrawalMinAmount:      decimal.Zero,
			PayoutStuckThreshold:     10 * time.Minute,
		},
		provider: &fakeProvider{},
	}

	env.accountRepo = repositories.NewSellerAccountRepository(db)
	env.ledgerRepo = repositories.NewLedgerTransactionRepository(db)
	env.withdrawalRepo = repositories.NewWithdrawalRepository(db)
	env.affiliateSaleRepo = repositories.NewAffiliateSaleRepository(db)
	env.orderRepo = repositories.NewOrderRepository(db)
	env.paymentRepo = repositories.NewPaymentRepository(db)
	env.refundRepo = repositories.NewRefundRepository(db)
	env.uow = repositories.NewUnitOfWork(db)

	env.calculator = usecases.NewCommissionCalculator(env.cfg)
	env.ledger = usecases.NewLedgerUsecase(env.accountRepo, env.ledgerRepo, env.uow)
	env.order = usecases.NewOrderUsecase(env.orderRepo, env.paymentRepo, env.affiliateSaleRepo, env.calculator, env.ledger, env.uow)
	env.withdrawal = usecases.NewWithdrawalUsecase(env.withdrawalRepo, env.ledger, env.provider, env.uow, env.cfg)
	env.affiliate = usecases.NewAffiliateUsecase(env.affiliateSaleRepo, env.orderRepo, env.ledger, env.withdrawal, env.uow, env.cfg)
	env.refund = usecases.NewRefundUsecase(env.refundRepo, env.paymentRepo, env.orderRepo, env.ledgerRepo, env.ledger, env.affiliate, env.uow)
	env.webhook = usecases.NewWebhookUsecase(env.order, env.affiliate, env.refund)
	return env
}

func createSchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	statements := []string{
		`CREATE TABLE seller_accounts (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			balance NUMERIC NOT NULL DEFAULT 0,
			blocked_balance NUMERIC NOT NULL DEFAULT 0,
			total_received NUMERIC NOT NULL DEFAULT 0,
			total_withdrawn NUMERIC NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			kyc_status TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE ledger_transactions (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			type TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			balance_before NUMERIC NOT NULL,
			balance_after NUMERIC NOT NULL,
			status TEXT NOT NULL,
			order_id TEXT,
			withdrawal_id TEXT,
			description TEXT,
			actor_id TEXT,
			created_at DATETIME
		);`,
		`CREATE TABLE withdrawals (
			id TEXT PRIMARY KEY,
			account_id TEXT NOT NULL,
			amount NUMERIC NOT NULL,
			status TEXT NOT NULL,
			payment_method TEXT NOT NULL,
			pix_key TEXT NOT NULL,
			transaction_id TEXT,
			rejection_reason TEXT,
			failure_reason TEXT,
			processed_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE affiliate_sales (
			id TEXT PRIMARY KEY,
			affiliate_id TEXT NOT NULL,
			order_id TEXT NOT NULL UNIQUE,
			order_total NUMERIC NOT NULL,
			commission_rate NUMERIC NOT NULL,
			commission_amount NUMERIC NOT NULL,
			status TEXT NOT NULL,
			confirmed_at DATETIME,
			available_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE orders (
			id TEXT PRIMARY KEY,
			customer_ref TEXT NOT NULL,
			total NUMERIC NOT NULL,
			status TEXT NOT NULL,
			payment_status TEXT NOT NULL,
			affiliate_id TEXT,
			affiliate_rate NUMERIC NOT NULL DEFAULT 0,
			delivered_at DATETIME,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE order_items (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			seller_id TEXT NOT NULL,
			product_ref TEXT NOT NULL,
			item_type TEXT NOT NULL,
			unit_price NUMERIC NOT NULL,
			quantity INTEGER NOT NULL,
			source_base_price NUMERIC,
			commission_rate NUMERIC NOT NULL,
			commission_amount NUMERIC NOT NULL,
			seller_revenue NUMERIC NOT NULL,
			created_at DATETIME
		);`,
		`CREATE TABLE payments (
			id TEXT PRIMARY KEY,
			order_id TEXT NOT NULL,
			gateway_payment_id TEXT NOT NULL UNIQUE,
			amount NUMERIC NOT NULL,
			status TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE refunds (
			id TEXT PRIMARY KEY,
			payment_id TEXT NOT NULL,
			order_id TEXT NOT NULL,
			gateway_refund_id TEXT NOT NULL UNIQUE,
			amount NUMERIC NOT NULL,
			reconciliation_note TEXT,
			created_at DATETIME
		);`,
	}
	for _, q := range statements {
		require.NoError(t, db.Exec(q).Error, "exec failed: query=%s", q)
	}
}
