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

	"barorder/internal/cart/session"
	"barorder/internal/domain"
	"barorder/internal/dto"
	apperrors "barorder/internal/errors"
)

type mockProducts struct {
	GetProductFunc func(ctx context.Context, id int) (*domain.Product, error)
}

func (m *mockProducts) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	return m.GetProductFunc(ctx, id)
}

type mockCheckout struct {
	ExecuteFunc func(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error)
}

func (m *mockCheckout) Execute(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error) {
	return m.ExecuteFunc(ctx, tableNumber, items)
}

var catalog = map[int]domain.Product{
	1: {ID: 1, Name: "Lager", Price: decimal.RequireFromString("4.50"), Category: domain.CategoryBeer, Stock: 20},
	2: {ID: 2, Name: "Cola", Price: decimal.RequireFromString("2.00"), Category: domain.CategorySoftDrink, Stock: 20},
	9: {ID: 9, Name: "Negroni", Price: decimal.RequireFromString("9.00"), Category: domain.CategoryCocktail, Stock: 0},
}

func catalogLookup() *mockProducts {
	return &mockProducts{
		GetProductFunc: func(ctx context.Context, id int) (*domain.Product, error) {
			p, ok := catalog[id]
			if !ok {
				return nil, apperrors.NewNotFoundError("product not found")
			}
			return &p, nil
		},
	}
}

type fixture struct {
	store    *session.Store
	checkout *mockCheckout
	router   http.Handler
}

func newFixture() *fixture {
	f := &fixture{
		store:    session.NewStore(time.Hour),
		checkout: &mockCheckout{},
	}
	c := NewController(f.store, catalogLookup(), f.checkout, 50, zap.NewNop())

	r := chi.NewRouter()
	r.Post("/sessions", c.HandleCreateSession)
	r.Route("/sessions/{sessionId}", func(r chi.Router) {
		r.Get("/", c.HandleGetSession)
		r.Delete("/", c.HandleDeleteSession)
		r.Put("/table", c.HandleChangeTable)
		r.Post("/items", c.HandleAddItem)
		r.Delete("/items", c.HandleClearCart)
		r.Put("/items/{productId}", c.HandleSetQuantity)
		r.Delete("/items/{productId}", c.HandleRemoveItem)
		r.Post("/checkout", c.HandleCheckout)
	})
	f.router = r
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func decodeSession(t *testing.T, rec *httptest.ResponseRecorder) dto.SessionDTO {
	t.Helper()
	var s dto.SessionDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func (f *fixture) openSession(t *testing.T, table string) string {
	t.Helper()
	rec := f.do(t, http.MethodPost, "/sessions", `{"table":"`+table+`"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeSession(t, rec).SessionID
}

func TestHandleCreateSession(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/sessions", `{"table":"7"}`)

	assert.Equal(t, http.StatusCreated, rec.Code)
	s := decodeSession(t, rec)
	assert.NotEmpty(t, s.SessionID)
	assert.Equal(t, 7, s.Table)
	assert.Equal(t, "/table/7", s.MenuPath)
	assert.Empty(t, s.Items)
	assert.Equal(t, 1, f.store.Len())
}

func TestHandleCreateSession_FromQuery(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodPost, "/sessions?table=12", "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 12, decodeSession(t, rec).Table)
}

func TestHandleCreateSession_InvalidTable(t *testing.T) {
	for _, code := range []string{"abc", "0", "51", ""} {
		t.Run(code, func(t *testing.T) {
			f := newFixture()

			rec := f.do(t, http.MethodPost, "/sessions", `{"table":"`+code+`"}`)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), apperrors.CodeInvalidTable)
			assert.Equal(t, 0, f.store.Len())
		})
	}
}

func TestHandleChangeTable(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "3")

	rec := f.do(t, http.MethodPut, "/sessions/"+id+"/table", `{"table":"9"}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 9, decodeSession(t, rec).Table)

	rec = f.do(t, http.MethodPut, "/sessions/"+id+"/table", `{"table":"99"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetSession_Unknown(t *testing.T) {
	f := newFixture()

	rec := f.do(t, http.MethodGet, "/sessions/nope/", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartLifecycle(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")

	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)
	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	s := decodeSession(t, rec)
	require.Len(t, s.Items, 2)
	assert.Equal(t, 2, s.Items[0].Quantity)
	assert.Equal(t, 9.0, s.Items[0].Subtotal)
	assert.Equal(t, 3, s.ItemCount)
	assert.Equal(t, 11.0, s.Total)

	rec = f.do(t, http.MethodPut, "/sessions/"+id+"/items/2", `{"quantity":3}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 15.0, decodeSession(t, rec).Total)

	rec = f.do(t, http.MethodPut, "/sessions/"+id+"/items/1", `{"quantity":0}`)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decodeSession(t, rec)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].ProductID)

	rec = f.do(t, http.MethodDelete, "/sessions/"+id+"/items/2", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeSession(t, rec).Items)
}

func TestHandleAddItem_UnknownProduct(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")

	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":42}`)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleAddItem_OutOfStock(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")

	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":9}`)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeOutOfStock, body.Code)
	assert.Equal(t, "Negroni is out of stock", body.Message)

	rec = f.do(t, http.MethodGet, "/sessions/"+id+"/", "")
	assert.Empty(t, decodeSession(t, rec).Items)
}

func TestHandleSetQuantity_Invalid(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)

	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/sessions/"+id+"/items/1", `{"quantity":-1}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/sessions/"+id+"/items/1", `{}`).Code)
	assert.Equal(t, http.StatusBadRequest, f.do(t, http.MethodPut, "/sessions/"+id+"/items/x", `{"quantity":1}`).Code)
}

func TestHandleClearCartAndDeleteSession(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)

	rec := f.do(t, http.MethodDelete, "/sessions/"+id+"/items", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeSession(t, rec).Items)

	rec = f.do(t, http.MethodDelete, "/sessions/"+id+"/", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 0, f.store.Len())
}

func TestHandleCheckout_Success(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)

	f.checkout.ExecuteFunc = func(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error) {
		assert.Equal(t, 7, tableNumber)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
		return &domain.Order{
			ID:          11,
			TableNumber: tableNumber,
			Status:      domain.OrderStatusPending,
			Total:       domain.CartTotal(items),
		}, nil
	}

	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/checkout", "")

	assert.Equal(t, http.StatusCreated, rec.Code)
	var resp dto.CheckoutResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint(11), resp.Order.ID)
	assert.Equal(t, 9.0, resp.Order.Total)
	assert.Equal(t, "PENDING", resp.Order.Status)
	assert.Empty(t, resp.Session.Items)
	assert.Equal(t, 7, resp.Session.Table)

	rec = f.do(t, http.MethodGet, "/sessions/"+id+"/", "")
	assert.Empty(t, decodeSession(t, rec).Items)
}

func TestHandleCheckout_FailureKeepsCart(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":2}`)

	f.checkout.ExecuteFunc = func(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error) {
		return nil, apperrors.NewOrderSubmitError(errors.New("connection reset"))
	}

	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/checkout", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to submit order. Please try again.")

	rec = f.do(t, http.MethodGet, "/sessions/"+id+"/", "")
	assert.Len(t, decodeSession(t, rec).Items, 1)
}

func TestHandleCheckout_InvalidOrder(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")

	f.checkout.ExecuteFunc = func(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error) {
		return nil, apperrors.NewInvalidOrderError()
	}

	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/checkout", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), apperrors.CodeInvalidOrder)
}

func TestHandleCheckout_DeadlockRetriesExhausted(t *testing.T) {
	f := newFixture()
	id := f.openSession(t, "7")
	f.do(t, http.MethodPost, "/sessions/"+id+"/items", `{"productId":1}`)

	f.checkout.ExecuteFunc = func(ctx context.Context, tableNumber int, items []domain.CartItem) (*domain.Order, error) {
		return nil, apperrors.NewOrderSubmitError(apperrors.NewDeadlockError("max retries exceeded"))
	}

	rec := f.do(t, http.MethodPost, "/sessions/"+id+"/checkout", "")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, apperrors.CodeOrderSubmitFailed, body.Code)
	assert.Equal(t, "Failed to submit order. Please try again.", body.Message)

	rec = f.do(t, http.MethodGet, "/sessions/"+id+"/", "")
	assert.Len(t, decodeSession(t, rec).Items, 1)
}
