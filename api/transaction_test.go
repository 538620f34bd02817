package api

import (
	"encoding/json"
	"errors"
	"testing"

	"pocketledger/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func transactionRouter(s *testServices, uid uint) *gin.Engine {
	router := gin.New()
	router.Use(setUserIDMiddleware(uid))
	h := NewTransactionHandler(s.transactions)
	router.GET("/transactions", h.List)
	router.POST("/transactions", h.Create)
	router.GET("/transactions/summary", h.Summary)
	router.PUT("/transactions/:id", h.Update)
	router.DELETE("/transactions/:id", h.Delete)
	return router
}

func expenseRow(id, owner uint) *sqlmock.Rows {
	return sqlmock.NewRows(txColumns).
		AddRow(id, owner, 1, "expense", "TV", 100.0, "Tech", testDay, 300.0, 3.0, false, nil, nil, testDay, testDay)
}

func TestTransactionHandler_List(t *testing.T) {
	s := newTestServices(t)
	router := transactionRouter(s, 1)

	w := doJSON(router, "GET", "/transactions", "")
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "ledgerId is required", errorMsg(t, w))

	w = doJSON(router, "GET", "/transactions?ledgerId=abc", "")
	assert.Equal(t, 400, w.Code)

	expectLedger(s.mock, 1, 1)
	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(expenseRow(4, 1))
	w = doJSON(router, "GET", "/transactions?ledgerId=1", "")
	assert.Equal(t, 200, w.Code)

	var txs []models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, 300.0, *txs[0].OriginalAmount)
	assert.Contains(t, w.Body.String(), `"divisionFactor":3`)

	// foreign ledger
	expectLedger(s.mock, 2, 9)
	w = doJSON(router, "GET", "/transactions?ledgerId=2", "")
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "ledger not found", errorMsg(t, w))
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestTransactionHandler_Create(t *testing.T) {
	s := newTestServices(t)
	router := transactionRouter(s, 1)

	expectLedger(s.mock, 1, 1)
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO `transactions`").WillReturnResult(sqlmock.NewResult(8, 1))
	s.mock.ExpectCommit()

	w := doJSON(router, "POST", "/transactions", `{"ledgerId":1,"type":"income","description":"Salary","amount":1000,"category":"Job"}`)
	assert.Equal(t, 200, w.Code)
	var tx models.Transaction
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tx))
	assert.Equal(t, uint(8), tx.ID)
	assert.Equal(t, uint(1), tx.UserID)

	w = doJSON(router, "POST", "/transactions", `{"type":"income","description":"Salary","amount":1000,"category":"Job"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "ledgerId is required", errorMsg(t, w))

	w = doJSON(router, "POST", "/transactions", `{"ledgerId":1,"type":"bonus","description":"Salary","amount":1000,"category":"Job"}`)
	assert.Equal(t, 400, w.Code)
	assert.Contains(t, errorMsg(t, w), "type")
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestTransactionHandler_Update(t *testing.T) {
	s := newTestServices(t)
	router := transactionRouter(s, 1)

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(expenseRow(4, 1))
	s.mock.ExpectBegin()
	s.mock.ExpectExec("UPDATE `transactions` SET").WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()
	s.mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE id = \\? AND user_id = \\?").WillReturnRows(expenseRow(4, 1))

	w := doJSON(router, "PUT", "/transactions/4", `{"amount":300,"divisionFactor":3}`)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), `"amount":100`)

	w = doJSON(router, "PUT", "/transactions/abc", `{}`)
	assert.Equal(t, 404, w.Code)
	assert.Equal(t, "transaction not found", errorMsg(t, w))

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(expenseRow(4, 2))
	w = doJSON(router, "PUT", "/transactions/4", `{"amount":10}`)
	assert.Equal(t, 401, w.Code)
	assert.Equal(t, "not authorized", errorMsg(t, w))

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(expenseRow(4, 1))
	w = doJSON(router, "PUT", "/transactions/4", `{"divisionFactor":-2}`)
	assert.Equal(t, 400, w.Code)
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestTransactionHandler_Delete(t *testing.T) {
	s := newTestServices(t)
	router := transactionRouter(s, 1)

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(expenseRow(4, 1))
	s.mock.ExpectBegin()
	s.mock.ExpectExec("DELETE FROM `transactions`").WillReturnResult(sqlmock.NewResult(0, 1))
	s.mock.ExpectCommit()
	w := doJSON(router, "DELETE", "/transactions/4", "")
	assert.Equal(t, 204, w.Code)
	assert.Empty(t, w.Body.String())

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(sqlmock.NewRows(txColumns))
	w = doJSON(router, "DELETE", "/transactions/4", "")
	assert.Equal(t, 404, w.Code)

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnRows(expenseRow(5, 2))
	w = doJSON(router, "DELETE", "/transactions/5", "")
	assert.Equal(t, 401, w.Code)
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestTransactionHandler_ServerError(t *testing.T) {
	s := newTestServices(t)
	router := transactionRouter(s, 1)

	s.mock.ExpectQuery("SELECT \\* FROM `transactions`").WillReturnError(errors.New("connection reset"))
	w := doJSON(router, "DELETE", "/transactions/4", "")
	assert.Equal(t, 500, w.Code)
	assert.Equal(t, "server error", errorMsg(t, w))
	assert.NotContains(t, w.Body.String(), "connection reset")
}

func TestTransactionHandler_Summary(t *testing.T) {
	s := newTestServices(t)
	router := transactionRouter(s, 1)

	rows := sqlmock.NewRows(txColumns).
		AddRow(1, 1, 1, "income", "Pay", 1000.5, "Job", testDay, nil, 1.0, false, nil, nil, testDay, testDay).
		AddRow(2, 1, 1, "expense", "TV", 100.0, "Tech", testDay, 300.0, 3.0, false, nil, nil, testDay, testDay).
		AddRow(3, 1, 1, "expense", "Lunch", 0.1, "Food", testDay, nil, 1.0, false, nil, nil, testDay, testDay)
	s.mock.ExpectQuery("SELECT \\* FROM `transactions` WHERE user_id = \\? AND date >= \\? AND date <= \\?").WillReturnRows(rows)

	w := doJSON(router, "GET", "/transactions/summary?startDate=2024-03-01&endDate=2024-03-31", "")
	assert.Equal(t, 200, w.Code)
	assert.JSONEq(t, `{"totalIncome":1000.5,"totalExpenses":300.1,"balance":700.4,"expensesByCategory":{"Tech":300,"Food":0.1}}`, w.Body.String())

	w = doJSON(router, "GET", "/transactions/summary?startDate=March", "")
	assert.Equal(t, 400, w.Code)
	require.NoError(t, s.mock.ExpectationsWereMet())
}
