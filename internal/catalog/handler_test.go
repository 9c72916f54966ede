package catalog

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Fikiresilase/mini-finance/internal/ledger"
	"github.com/Fikiresilase/mini-finance/internal/store"
)

func newTestRouter(t *testing.T) (chi.Router, *Service) {
	t.Helper()
	logger := testLogger()
	st := store.New(store.NewMemoryKV(), logger)
	ledgerSvc := ledger.NewService(st, logger)
	svc := NewService(st, ledgerSvc, logger)

	r := chi.NewRouter()
	NewHandler(logger, svc).MountRoutes(r)
	return r, svc
}

func doJSON(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestCreateItemEndpoint(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/items/", CreateItemRequest{
		Name: "Mug", OriginalPrice: 2, SellingPrice: 5, Stock: 10, Category: "Kitchen",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var item Item
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&item))
	assert.NotEmpty(t, item.ID)
	assert.Equal(t, "Mug", item.Name)
}

func TestCreateItemEndpointValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodPost, "/items/", CreateItemRequest{
		Name: "", OriginalPrice: -1, SellingPrice: 5, Stock: 10, Category: "Kitchen",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Error  string            `json:"error"`
		Fields map[string]string `json:"fields"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Contains(t, resp.Fields, "Name")
	assert.Contains(t, resp.Fields, "OriginalPrice")
}

func TestListItemsEndpointFilters(t *testing.T) {
	r, svc := newTestRouter(t)
	seedItems(t, svc)

	rec := doJSON(t, r, http.MethodGet, "/items/?category=Kitchen&inStock=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []Item `json:"items"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "Mug", resp.Items[0].Name)

	rec = doJSON(t, r, http.MethodGet, "/items/?inStock=maybe", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSellEndpoint(t *testing.T) {
	r, svc := newTestRouter(t)
	items := seedItems(t, svc)

	rec := doJSON(t, r, http.MethodPost, "/items/"+items[0].ID+"/sell", nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	var sale ledger.Sale
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&sale))
	assert.Equal(t, items[0].ID, sale.ItemID)
	assert.InDelta(t, 5.0, sale.Price, 0.0001)

	rec = doJSON(t, r, http.MethodPost, "/items/"+items[0].ID+"/sell", nil)
	require.Equal(t, http.StatusConflict, rec.Code, "stock exhausted")

	rec = doJSON(t, r, http.MethodPost, "/items/nope/sell", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(t, r, http.MethodGet, "/categories/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listResp struct {
		Categories []Category `json:"categories"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&listResp))
	require.Equal(t, DefaultCategories, listResp.Categories)

	rec = doJSON(t, r, http.MethodPost, "/categories/", map[string]string{"label": "Garden"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/categories/", map[string]string{"label": "Garden"})
	require.Equal(t, http.StatusOK, rec.Code, "duplicate is a silent no-op")
}

func seedItems(t *testing.T, svc *Service) []Item {
	t.Helper()
	mug, err := svc.AddItem(t.Context(), CreateItemRequest{Name: "Mug", OriginalPrice: 2, SellingPrice: 5, Stock: 1, Category: "Kitchen"})
	require.NoError(t, err)
	book, err := svc.AddItem(t.Context(), CreateItemRequest{Name: "Book", OriginalPrice: 3, SellingPrice: 8, Stock: 0, Category: "Books"})
	require.NoError(t, err)
	return []Item{mug, book}
}
