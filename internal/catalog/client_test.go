package catalog

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/httpclient"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := httpclient.Config{
		Timeout:      2 * time.Second,
		MaxRetries:   0,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: time.Millisecond,
	}
	return NewClient(srv.URL, cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClient_GetProduct(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/businesses/biz-1/products/prod-1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"product":{"id":"prod-1","name":"Latte","price":450,"stock":12,"images":["latte.jpg"]}}`))
	})

	product, err := client.GetProduct(context.Background(), "biz-1", "prod-1")

	require.NoError(t, err)
	assert.Equal(t, "Latte", product.Name)
	assert.Equal(t, int64(450), product.Price)
	assert.True(t, product.InStock())
	assert.Equal(t, "latte.jpg", product.FirstImage())
}

func TestClient_GetProduct_NotFound(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := client.GetProduct(context.Background(), "biz-1", "missing")

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestProduct_InStock(t *testing.T) {
	assert.False(t, (&Product{Stock: 0}).InStock())
	assert.True(t, (&Product{Stock: 1}).InStock())
	// Unknown stock reported as negative still allows adding; only an exact
	// zero blocks.
	assert.True(t, (&Product{Stock: -1}).InStock())
}
