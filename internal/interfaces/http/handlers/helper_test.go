package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"sellhub.backend/internal/domain/entities"
	"sellhub.backend/pkg/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func sampleWithdrawal() *entities.Withdrawal {
	return &entities.Withdrawal{
		ID:            utils.GenerateUUIDv7(),
		AccountID:     utils.GenerateUUIDv7(),
		Amount:        decimal.RequireFromString("100.00"),
		Status:        entities.WithdrawalStatusPending,
		PaymentMethod: "pix",
		PixKey:        "seller@example.com",
	}
}
