package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"pocketledger/config"
	"pocketledger/middleware"
	"pocketledger/service"
	"pocketledger/testutil"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock, *middleware.JWT) {
	t.Helper()
	db, mock := testutil.MockDB(t)
	v, err := service.NewTransactionValidator()
	require.NoError(t, err)

	cfg := &config.Config{
		Server: config.ServerConfig{LoginRateLimit: 2, LoginRateWindow: time.Minute},
		JWT:    config.JWTConfig{Secret: "router-secret", ExpireTime: time.Hour},
	}
	jwt := middleware.NewJWT(cfg.JWT)
	ledgers := service.NewLedgerService(db)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := SetupRouter(ctx, Deps{
		Config:       cfg,
		JWT:          jwt,
		Users:        service.NewUserService(db, jwt, nil, nil),
		Ledgers:      ledgers,
		Transactions: service.NewTransactionService(db, ledgers, v, nil, nil),
		Analysis:     service.NewAnalysisService(db, ledgers, nil, 0, nil),
	})
	return r, mock, jwt
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	r, _, _ := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/api/ledgers"},
		{http.MethodPost, "/api/transactions"},
		{http.MethodGet, "/api/transactions/summary"},
		{http.MethodPost, "/api/transactions/analyze-ai"},
		{http.MethodGet, "/api/transactions/export"},
		{http.MethodDelete, "/api/transactions/1"},
		{http.MethodGet, "/api/analyses"},
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)

		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, middleware.MsgNoToken, body["msg"])
	}
}

func TestAuthorizedRequest(t *testing.T) {
	r, mock, jwt := newTestRouter(t)
	token, err := jwt.GenerateToken(7)
	require.NoError(t, err)

	mock.ExpectQuery("SELECT \\* FROM `ledgers`").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "user_id", "created_at", "updated_at"}))

	req := httptest.NewRequest(http.MethodGet, "/api/ledgers", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStaticRoutesBeforeID(t *testing.T) {
	r, _, jwt := newTestRouter(t)
	token, err := jwt.GenerateToken(7)
	require.NoError(t, err)

	// analyze-ai must not be captured by /:id; no analyzer is configured
	req := httptest.NewRequest(http.MethodPost, "/api/transactions/analyze-ai", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestLoginRateLimit(t *testing.T) {
	r, _, _ := newTestRouter(t)

	// bodies are invalid so nothing reaches the database
	var last int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/users/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		last = w.Code
	}
	assert.Equal(t, http.StatusTooManyRequests, last)
}

func TestCORSPreflight(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/api/ledgers", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
