package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"barorder/internal/dto"
)

func TestHandleTableLink(t *testing.T) {
	c := NewController("https://bar.example.com/", 50, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/tables/{number}/link", c.HandleTableLink)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/12/link", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp dto.TableLinkResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.Table)
	assert.Equal(t, "https://bar.example.com/?table=12", resp.URL)
	assert.Equal(t, "/table/12", resp.MenuPath)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/tables/51/link", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
