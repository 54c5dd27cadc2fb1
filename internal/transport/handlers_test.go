package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"delicassy/internal/middleware"
	"delicassy/internal/notify"
	"delicassy/internal/repository"
	"delicassy/internal/schema"
	"delicassy/internal/service"
	"delicassy/internal/store"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

type testAPI struct {
	router http.Handler
	users  service.UserService
}

func newTestAPI(t *testing.T, s store.Store, protectWrites bool) *testAPI {
	t.Helper()
	logger := zap.NewNop()

	hub := notify.NewHub(logger)
	t.Cleanup(func() { hub.Close() })

	categories := repository.NewCategoryRepository(s)
	products := repository.NewProductRepository(s)
	reviews := repository.NewReviewRepository(s)
	carts := repository.NewCartRepository(s)
	orders := repository.NewOrderRepository(s)
	content := repository.NewContentRepository(s)
	users := service.NewUserService(repository.NewUserRepository(s), testJWTSecret, time.Hour, logger)

	auth := middleware.AuthMiddleware(testJWTSecret, logger)
	guard := middleware.WriteGuard(protectWrites, testJWTSecret, logger)

	r := chi.NewRouter()
	NewSystemHandler(s, true, schema.Default(), logger).RegisterRoutes(r)
	NewCatalogHandler(service.NewCatalogService(categories, products, reviews, logger), logger).RegisterRoutes(r, guard)
	NewCartHandler(service.NewCartService(carts, logger), logger).RegisterRoutes(r)
	NewCheckoutHandler(service.NewCheckoutService(carts, products, orders, logger), logger).RegisterRoutes(r)
	NewContentHandler(service.NewContentService(content, hub, logger), logger).RegisterRoutes(r, guard)
	NewUserHandler(users, logger).RegisterRoutes(r, auth)

	return &testAPI{router: r, users: users}
}

func (a *testAPI) do(t *testing.T, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testAPI) create(t *testing.T, path string, body interface{}) string {
	t.Helper()
	w := a.do(t, "POST", path, body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp IDResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	require.True(t, store.ValidID(resp.ID))
	return resp.ID
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(w.Body).Decode(v), w.Body.String())
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp middleware.ErrorResponse
	decodeBody(t, w, &resp)
	return resp.Error.Message
}

func productBody(slug string, price float64, stock, fragility int) map[string]interface{} {
	return map[string]interface{}{
		"title":            "Item " + slug,
		"slug":             slug,
		"description":      "Handmade " + slug,
		"price":            price,
		"category":         "glassware",
		"stock":            stock,
		"fragility_rating": fragility,
	}
}

func checkoutBody(cartID string) map[string]interface{} {
	return map[string]interface{}{
		"cart_id": cartID,
		"shipping_address": map[string]string{
			"full_name":   "Ada Lovelace",
			"line1":       "12 Crescent Row",
			"city":        "London",
			"postal_code": "N1 9GU",
			"country":     "UK",
		},
		"payment": map[string]string{"method": "card"},
	}
}
