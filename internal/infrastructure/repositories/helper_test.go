package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createSellerAccountTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE seller_accounts (
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
	);`)
}

func createLedgerTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE ledger_transactions (
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
	);`)
}

func createWithdrawalTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE withdrawals (
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
	);`)
}

func createAffiliateSaleTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE affiliate_sales (
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
	);`)
}

func createOrderTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE orders (
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
	);`)
	mustExec(t, db, `CREATE TABLE order_items (
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
	);`)
}

func createPaymentTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		order_id TEXT NOT NULL,
		gateway_payment_id TEXT NOT NULL UNIQUE,
		amount NUMERIC NOT NULL,
		status TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE refunds (
		id TEXT PRIMARY KEY,
		payment_id TEXT NOT NULL,
		order_id TEXT NOT NULL,
		gateway_refund_id TEXT NOT NULL UNIQUE,
		amount NUMERIC NOT NULL,
		reconciliation_note TEXT,
		created_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createSellerAccountTable(t, db)
	createLedgerTransactionTable(t, db)
	createWithdrawalTable(t, db)
	createAffiliateSaleTable(t, db)
	createOrderTables(t, db)
	createPaymentTables(t, db)
}
