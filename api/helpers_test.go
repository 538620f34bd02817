package api

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"pocketledger/config"
	"pocketledger/middleware"
	"pocketledger/service"
	"pocketledger/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var (
	testDay       = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	ledgerColumns = []string{"id", "name", "user_id", "created_at", "updated_at"}
	txColumns     = []string{
		"id", "user_id", "ledger_id", "type", "description", "amount", "category", "date",
		"original_amount", "division_factor", "is_installment", "total_installments", "paid_installments",
		"created_at", "updated_at",
	}
)

func init() {
	gin.SetMode(gin.TestMode)
}

// setUserIDMiddleware stands in for the JWT guard
func setUserIDMiddleware(uid uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.ContextUserIDKey, uid)
		c.Next()
	}
}

type testServices struct {
	db           *gorm.DB
	mock         sqlmock.Sqlmock
	users        *service.UserService
	ledgers      *service.LedgerService
	transactions *service.TransactionService
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, mock := testutil.MockDB(t)
	v, err := service.NewTransactionValidator()
	require.NoError(t, err)

	jwt := middleware.NewJWT(config.JWTConfig{Secret: "test-secret", ExpireTime: time.Hour})
	ledgers := service.NewLedgerService(db)
	return &testServices{
		db:           db,
		mock:         mock,
		users:        service.NewUserService(db, jwt, nil, nil),
		ledgers:      ledgers,
		transactions: service.NewTransactionService(db, ledgers, v, nil, nil),
	}
}

func doJSON(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorMsg(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Msg
}

func expectLedger(mock sqlmock.Sqlmock, id, owner uint) {
	mock.ExpectQuery("SELECT \\* FROM `ledgers`").
		WillReturnRows(sqlmock.NewRows(ledgerColumns).AddRow(id, "Home", owner, testDay, testDay))
}
