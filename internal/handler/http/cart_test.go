package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beliver-cell/kreateyo-sub000/internal/catalog"
	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	"github.com/Beliver-cell/kreateyo-sub000/internal/event"
	"github.com/Beliver-cell/kreateyo-sub000/internal/gateway"
	gwmock "github.com/Beliver-cell/kreateyo-sub000/internal/gateway/mock"
	"github.com/Beliver-cell/kreateyo-sub000/internal/service"
	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/health"
)

// memRepo is an in-memory cart repository for handler tests.
type memRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newMemRepo() *memRepo {
	return &memRepo{carts: make(map[string]*domain.Cart)}
}

func (m *memRepo) Get(_ context.Context, businessID, customerID string) (*domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	cart, ok := m.carts[businessID+":"+customerID]
	if !ok {
		return nil, apperrors.NotFound("cart", businessID+":"+customerID)
	}
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)
	return &cp, nil
}

func (m *memRepo) SaveIfVersion(_ context.Context, cart *domain.Cart, expectedVersion int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := cart.BusinessID + ":" + cart.CustomerID
	stored, ok := m.carts[key]
	if ok && stored.Version != expectedVersion {
		return false, nil
	}
	if !ok && expectedVersion != 0 {
		return false, nil
	}
	cart.Version = expectedVersion + 1
	cp := *cart
	cp.Items = append([]domain.CartItem(nil), cart.Items...)
	m.carts[key] = &cp
	return true, nil
}

func (m *memRepo) Delete(_ context.Context, businessID, customerID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, businessID+":"+customerID)
	return nil
}

// stubCatalog serves products from a fixed map.
type stubCatalog struct {
	products map[string]*catalog.Product
}

func (s *stubCatalog) GetProduct(_ context.Context, _, productID string) (*catalog.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, apperrors.NotFound("product", productID)
	}
	return p, nil
}

func testServer(t *testing.T, gw gateway.Gateway) *httptest.Server {
	t.Helper()

	l := slog.New(slog.NewTextHandler(io.Discard, nil))
	repo := newMemRepo()
	carts := service.NewCartService(repo, event.NoopPublisher{}, l, "USD", 24*time.Hour)
	checkout := service.NewCheckoutService(carts, gw, event.NoopPublisher{}, l, 0)

	cat := &stubCatalog{products: map[string]*catalog.Product{
		"prod-1": {ID: "prod-1", Name: "Latte", Price: 450, Stock: 10, Images: []string{"latte.jpg"}},
		"prod-2": {ID: "prod-2", Name: "Scone", Price: 300, Stock: 3},
		"prod-3": {ID: "prod-3", Name: "Sold Out Special", Price: 999, Stock: 0},
	}}

	router := NewRouter(NewCartHandler(carts, cat), NewCheckoutHandler(checkout), health.NewHandler(), l)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, srv *httptest.Server, method, path string, body any) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Business-ID", "biz-1")
	req.Header.Set("X-Customer-ID", "cust-1")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func decodeCart(t *testing.T, resp *http.Response) cartView {
	t.Helper()
	var view cartView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	return view
}

func TestCartRoutes_MissingHeaders(t *testing.T) {
	srv := testServer(t, nil)

	req, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/cart", http.NoBody)
	require.NoError(t, err)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req2, err := http.NewRequest(http.MethodGet, srv.URL+"/api/v1/cart", http.NoBody)
	require.NoError(t, err)
	req2.Header.Set("X-Business-ID", "biz-1")
	resp2, err := srv.Client().Do(req2)
	require.NoError(t, err)
	defer resp2.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp2.StatusCode)
}

func TestCartRoutes_EmptyCart(t *testing.T) {
	srv := testServer(t, nil)

	resp := doJSON(t, srv, http.MethodGet, "/api/v1/cart", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeCart(t, resp)
	assert.True(t, view.Empty)
	assert.Equal(t, 0, view.ItemCount)
	assert.Equal(t, "0.00", view.TotalDisplay)
	assert.Empty(t, view.Items)
}

func TestCartRoutes_AddItem(t *testing.T) {
	srv := testServer(t, nil)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": "prod-1", "quantity": 2,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeCart(t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "Latte", view.Items[0].Name)
	assert.Equal(t, "latte.jpg", view.Items[0].ImageURL)
	assert.Equal(t, "4.50", view.Items[0].PriceDisplay)
	assert.Equal(t, "9.00", view.Items[0].LineTotalDisplay)
	assert.Equal(t, 2, view.ItemCount)
	assert.Equal(t, int64(900), view.TotalCents)
	assert.False(t, view.Empty)
}

func TestCartRoutes_AddItem_OutOfStock(t *testing.T) {
	srv := testServer(t, nil)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": "prod-3", "quantity": 1,
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// The cart must still be empty.
	view := decodeCart(t, doJSON(t, srv, http.MethodGet, "/api/v1/cart", nil))
	assert.True(t, view.Empty)
}

func TestCartRoutes_AddItem_UnknownProduct(t *testing.T) {
	srv := testServer(t, nil)

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{
		"product_id": "ghost", "quantity": 1,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartRoutes_UpdateQuantityZeroRemoves(t *testing.T) {
	srv := testServer(t, nil)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-1", "quantity": 2})
	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-2", "quantity": 1})

	resp := doJSON(t, srv, http.MethodPut, "/api/v1/cart/items/prod-1", map[string]any{"quantity": 0})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeCart(t, resp)
	require.Len(t, view.Items, 1)
	assert.Equal(t, "prod-2", view.Items[0].ProductID)
}

func TestCartRoutes_RemoveAbsentItemIsNoop(t *testing.T) {
	srv := testServer(t, nil)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-1", "quantity": 1})

	resp := doJSON(t, srv, http.MethodDelete, "/api/v1/cart/items/ghost", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	view := decodeCart(t, resp)
	assert.Equal(t, 1, view.ItemCount)
}

func TestCartRoutes_Clear(t *testing.T) {
	srv := testServer(t, nil)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-1", "quantity": 1})

	resp := doJSON(t, srv, http.MethodDelete, "/api/v1/cart", nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	view := decodeCart(t, doJSON(t, srv, http.MethodGet, "/api/v1/cart", nil))
	assert.True(t, view.Empty)
}

func TestCheckoutRoute_Success(t *testing.T) {
	srv := testServer(t, gwmock.New(slog.New(slog.NewTextHandler(io.Discard, nil)), 0))

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-1", "quantity": 2})

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", map[string]any{
		"email": "jo@example.com", "first_name": "Jo", "last_name": "Doe",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var receipt receiptView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&receipt))
	assert.NotEmpty(t, receipt.Reference)
	assert.Equal(t, int64(900), receipt.AmountCents)
	assert.Equal(t, "9.00", receipt.AmountDisplay)

	// Success clears the cart.
	view := decodeCart(t, doJSON(t, srv, http.MethodGet, "/api/v1/cart", nil))
	assert.True(t, view.Empty)
}

func TestCheckoutRoute_ValidationFailure(t *testing.T) {
	srv := testServer(t, gwmock.New(slog.New(slog.NewTextHandler(io.Discard, nil)), 0))

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-1", "quantity": 1})

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", map[string]any{
		"email": "not-an-email", "first_name": "Jo", "last_name": "Doe",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// The cart keeps its contents on a rejected submission.
	view := decodeCart(t, doJSON(t, srv, http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, 1, view.ItemCount)
}

func TestCheckoutRoute_NoGateway(t *testing.T) {
	srv := testServer(t, nil)

	doJSON(t, srv, http.MethodPost, "/api/v1/cart/items", map[string]any{"product_id": "prod-1", "quantity": 1})

	resp := doJSON(t, srv, http.MethodPost, "/api/v1/checkout", map[string]any{
		"email": "jo@example.com", "first_name": "Jo", "last_name": "Doe",
	})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	var body errorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "PAYMENT_UNAVAILABLE", body.Error.Code)

	view := decodeCart(t, doJSON(t, srv, http.MethodGet, "/api/v1/cart", nil))
	assert.Equal(t, 1, view.ItemCount)
}

func TestCheckoutRoute_StateIdle(t *testing.T) {
	srv := testServer(t, nil)

	resp := doJSON(t, srv, http.MethodGet, "/api/v1/checkout/state", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "idle", body["state"])
}
