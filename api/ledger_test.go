package api

import (
	"encoding/json"
	"testing"

	"pocketledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerRouter(s *testServices, uid uint) *gin.Engine {
	router := gin.New()
	router.Use(setUserIDMiddleware(uid))
	h := NewLedgerHandler(s.ledgers)
	router.GET("/ledgers", h.List)
	router.POST("/ledgers", h.Create)
	return router
}

func TestLedgerHandler_List(t *testing.T) {
	s := newTestServices(t)
	s.mock.ExpectQuery("SELECT \\* FROM `ledgers` WHERE user_id = \\?").
		WithArgs(uint(1)).
		WillReturnRows(sqlmock.NewRows(ledgerColumns).AddRow(1, "General", 1, testDay, testDay))

	w := doJSON(ledgerRouter(s, 1), "GET", "/ledgers", "")
	assert.Equal(t, 200, w.Code)

	var ledgers []models.Ledger
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ledgers))
	require.Len(t, ledgers, 1)
	assert.Equal(t, "General", ledgers[0].Name)
	assert.Contains(t, w.Body.String(), `"userId":1`)
}

func TestLedgerHandler_Create(t *testing.T) {
	s := newTestServices(t)
	router := ledgerRouter(s, 1)

	s.mock.ExpectQuery("SELECT count\\(\\*\\) FROM `ledgers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO `ledgers`").WillReturnResult(sqlmock.NewResult(2, 1))
	s.mock.ExpectCommit()

	w := doJSON(router, "POST", "/ledgers", `{"name":"Home"}`)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Home"`)

	s.mock.ExpectQuery("SELECT count\\(\\*\\) FROM `ledgers`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	w = doJSON(router, "POST", "/ledgers", `{"name":"Home"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "a ledger with that name already exists", errorMsg(t, w))

	w = doJSON(router, "POST", "/ledgers", `{"name":"  "}`)
	assert.Equal(t, 400, w.Code)
	require.NoError(t, s.mock.ExpectationsWereMet())
}
