package controller

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barorder/internal/domain"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

type mockOrderLister struct {
	ListActiveOrdersFunc func(ctx context.Context) ([]domain.Order, error)
}

func (m *mockOrderLister) ListActiveOrders(ctx context.Context) ([]domain.Order, error) {
	return m.ListActiveOrdersFunc(ctx)
}

type mockAdvanceStatus struct {
	ExecuteFunc func(ctx context.Context, orderID uint, next domain.OrderStatus) ([]domain.Order, error)
}

func (m *mockAdvanceStatus) Execute(ctx context.Context, orderID uint, next domain.OrderStatus) ([]domain.Order, error) {
	return m.ExecuteFunc(ctx, orderID, next)
}

func newRouter(lister OrderLister, advance AdvanceStatusUseCase) http.Handler {
	c := NewFulfillmentController(lister, advance, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/orders", c.HandleListActiveOrders)
	r.Post("/orders/{orderId}/status", c.HandleAdvanceStatus)
	return r
}

func pendingOrder() domain.Order {
	return domain.Order{
		ID:          1,
		TableNumber: 7,
		Status:      domain.OrderStatusPending,
		Total:       decimal.RequireFromString("9.00"),
		CreatedAt:   time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC),
		Items: []domain.OrderItem{{
			ID: 1, Quantity: 2, Price: decimal.RequireFromString("4.50"),
			Product: &domain.Product{ID: 3, Name: "Lager", Category: domain.CategoryBeer},
		}},
	}
}

func TestHandleListActiveOrders(t *testing.T) {
	lister := &mockOrderLister{
		ListActiveOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return []domain.Order{pendingOrder()}, nil
		},
	}

	rec := httptest.NewRecorder()
	newRouter(lister, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, 7, resp.Orders[0].TableNumber)
	require.NotNil(t, resp.Orders[0].NextAction)
	assert.Equal(t, "PREPARING", resp.Orders[0].NextAction.Status)
	assert.Equal(t, "Start Preparing", resp.Orders[0].NextAction.Label)
	assert.Equal(t, "Lager", resp.Orders[0].Items[0].ProductName)
}

func TestHandleListActiveOrders_StoreFailure(t *testing.T) {
	lister := &mockOrderLister{
		ListActiveOrdersFunc: func(ctx context.Context) ([]domain.Order, error) {
			return nil, apperrors.NewRemoteCallError("Failed to load orders", errors.New("timeout"))
		},
	}

	rec := httptest.NewRecorder()
	newRouter(lister, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load orders")
}

func TestHandleAdvanceStatus(t *testing.T) {
	advance := &mockAdvanceStatus{
		ExecuteFunc: func(ctx context.Context, orderID uint, next domain.OrderStatus) ([]domain.Order, error) {
			assert.Equal(t, uint(1), orderID)
			assert.Equal(t, domain.OrderStatusPreparing, next)
			o := pendingOrder()
			o.Status = next
			return []domain.Order{o}, nil
		},
	}

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/orders/1/status", strings.NewReader(`{"status":"preparing"}`))
	newRouter(nil, advance).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Orders, 1)
	assert.Equal(t, "Mark Ready", resp.Orders[0].NextAction.Label)
}

func TestHandleAdvanceStatus_Errors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"invalid id", "/orders/abc/status", `{"status":"READY"}`, nil, http.StatusBadRequest, apperrors.CodeValidation},
		{"invalid json", "/orders/1/status", `{`, nil, http.StatusBadRequest, apperrors.CodeValidation},
		{"not found", "/orders/1/status", `{"status":"READY"}`, apperrors.NewNotFoundError("order with id 1 not found"), http.StatusNotFound, "NOT_FOUND"},
		{"invalid transition", "/orders/1/status", `{"status":"PAID"}`, apperrors.NewInvalidTransitionError("PENDING", "PAID"), http.StatusConflict, apperrors.CodeInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			advance := &mockAdvanceStatus{
				ExecuteFunc: func(ctx context.Context, orderID uint, next domain.OrderStatus) ([]domain.Order, error) {
					return nil, tt.err
				},
			}

			rec := httptest.NewRecorder()
			newRouter(nil, advance).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))

			assert.Equal(t, tt.wantStatus, rec.Code)
			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}
