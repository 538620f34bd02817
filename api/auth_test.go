package api

import (
	"encoding/json"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func authRouter(s *testServices) *gin.Engine {
	router := gin.New()
	h := NewAuthHandler(s.users)
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
	return router
}

func TestAuthHandler_Register(t *testing.T) {
	s := newTestServices(t)

	s.mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WithArgs("test@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	s.mock.ExpectBegin()
	s.mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(1, 1))
	s.mock.ExpectCommit()

	w := doJSON(authRouter(s), "POST", "/register", `{"email":"test@example.com","password":"password123"}`)
	assert.Equal(t, 200, w.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestAuthHandler_Register_Duplicate(t *testing.T) {
	s := newTestServices(t)

	s.mock.ExpectQuery("SELECT count\\(\\*\\) FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	w := doJSON(authRouter(s), "POST", "/register", `{"email":"test@example.com","password":"password123"}`)
	assert.Equal(t, 400, w.Code)
	assert.Equal(t, "user already exists", errorMsg(t, w))
}

func TestAuthHandler_Register_InvalidInput(t *testing.T) {
	s := newTestServices(t)
	router := authRouter(s)

	for _, body := range []string{
		`{"email":"not-an-email","password":"password123"}`,
		`{"email":"a@b.com","password":"123"}`,
		`{"email":"a@b.com"}`,
		`not json`,
	} {
		w := doJSON(router, "POST", "/register", body)
		assert.Equal(t, 400, w.Code, body)
	}
	require.NoError(t, s.mock.ExpectationsWereMet())
}

func TestAuthHandler_Login(t *testing.T) {
	s := newTestServices(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)

	s.mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).AddRow(1, "test@example.com", string(hash)))

	w := doJSON(authRouter(s), "POST", "/login", `{"email":"test@example.com","password":"password123"}`)
	assert.Equal(t, 200, w.Code)
	assert.Contains(t, w.Body.String(), "token")
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	s := newTestServices(t)
	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	router := authRouter(s)

	s.mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}).AddRow(1, "test@example.com", string(hash)))
	wrongPassword := doJSON(router, "POST", "/login", `{"email":"test@example.com","password":"wrong-password"}`)

	s.mock.ExpectQuery("SELECT .* FROM `users`").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password"}))
	unknownEmail := doJSON(router, "POST", "/login", `{"email":"nobody@example.com","password":"password123"}`)

	assert.Equal(t, 400, wrongPassword.Code)
	assert.Equal(t, 400, unknownEmail.Code)
	assert.Equal(t, "invalid credentials", errorMsg(t, wrongPassword))
	assert.Equal(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}
