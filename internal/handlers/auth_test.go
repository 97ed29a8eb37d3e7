package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"blogapi/internal/utils"
)

func loginRouter(db *gorm.DB) *gin.Engine {
	h := NewAuthHandler(db)
	r := gin.New()
	r.POST("/login", h.Login)
	return r
}

func formRequest(t *testing.T, router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	return resp
}

func TestLoginSuccess(t *testing.T) {
	db, mock := setupMockDB(t)
	router := loginRouter(db)

	hashed, err := utils.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "email", "password", "created_at"}).
				AddRow(101, "user@example.com", hashed, time.Now()),
		)

	resp := formRequest(t, router, "/login", url.Values{
		"username": {"user@example.com"},
		"password": {"Secret123"},
	})
	mustStatus(t, resp, http.StatusOK)

	out := decodeBody(t, resp)
	token, _ := out["access_token"].(string)
	assert.NotEmpty(t, token)
	assert.Equal(t, "bearer", out["token_type"])

	// The token must resolve back to the same user.
	claims, err := utils.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	assert.Equal(t, 101, claims.UserID)

	expectationsMet(t, mock)
}

func TestLoginWrongPassword(t *testing.T) {
	db, mock := setupMockDB(t)
	router := loginRouter(db)

	hashed, err := utils.HashPassword("Secret123")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(
			sqlmock.NewRows([]string{"id", "email", "password", "created_at"}).
				AddRow(101, "user@example.com", hashed, time.Now()),
		)

	resp := formRequest(t, router, "/login", url.Values{
		"username": {"user@example.com"},
		"password": {"wrong"},
	})
	mustStatus(t, resp, http.StatusForbidden)

	out := decodeBody(t, resp)
	assert.Equal(t, "Invalid Credentials", out["error"])
}

func TestLoginUnknownEmail(t *testing.T) {
	db, mock := setupMockDB(t)
	router := loginRouter(db)

	mock.ExpectQuery(`SELECT .* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "created_at"}))

	resp := formRequest(t, router, "/login", url.Values{
		"username": {"nobody@example.com"},
		"password": {"Secret123"},
	})
	mustStatus(t, resp, http.StatusForbidden)

	// Identical body to the wrong-password case: the caller must not be
	// able to tell which credential was wrong.
	out := decodeBody(t, resp)
	assert.Equal(t, "Invalid Credentials", out["error"])
}

func TestLoginMissingFields(t *testing.T) {
	db, _ := setupMockDB(t)
	router := loginRouter(db)

	resp := formRequest(t, router, "/login", url.Values{
		"username": {"user@example.com"},
	})
	mustStatus(t, resp, http.StatusUnprocessableEntity)
}
