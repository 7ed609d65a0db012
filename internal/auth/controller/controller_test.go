package controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

type mockLogin struct {
	LoginFunc func(ctx context.Context, username, password string) (string, time.Time, error)
}

func (m *mockLogin) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	return m.LoginFunc(ctx, username, password)
}

func TestHandleLogin(t *testing.T) {
	expires := time.Date(2024, 5, 2, 8, 0, 0, 0, time.UTC)
	c := NewController(&mockLogin{
		LoginFunc: func(ctx context.Context, username, password string) (string, time.Time, error) {
			assert.Equal(t, "admin", username)
			assert.Equal(t, "pw", password)
			return "tok", expires, nil
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":" admin ","password":"pw"}`)))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.LoginResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "tok", resp.Token)
	assert.True(t, expires.Equal(resp.ExpiresAt))
}

func TestHandleLogin_Validation(t *testing.T) {
	c := NewController(&mockLogin{}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":""}`)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Details, 2)
}

func TestHandleLogin_Rejected(t *testing.T) {
	c := NewController(&mockLogin{
		LoginFunc: func(ctx context.Context, username, password string) (string, time.Time, error) {
			return "", time.Time{}, apperrors.NewUnauthorizedError("invalid username or password")
		},
	}, zap.NewNop())

	rec := httptest.NewRecorder()
	c.HandleLogin(rec, httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(`{"username":"admin","password":"x"}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
