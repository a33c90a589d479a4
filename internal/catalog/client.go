package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/httpclient"
)

// Client is an HTTP catalog client with retry and circuit breaker protection.
type Client struct {
	http    *httpclient.CircuitBreakerClient
	baseURL string
	logger  *slog.Logger
}

// NewClient creates a catalog client against the given base URL.
func NewClient(baseURL string, cfg httpclient.Config, logger *slog.Logger) *Client {
	inner := httpclient.New(cfg)
	cb := httpclient.NewCircuitBreakerClient(inner,
		httpclient.DefaultCircuitBreakerConfig("catalog"), logger)

	return &Client{
		http:    cb,
		baseURL: baseURL,
		logger:  logger,
	}
}

type productResponse struct {
	Product Product `json:"product"`
}

// GetProduct fetches one product of a business.
func (c *Client) GetProduct(ctx context.Context, businessID, productID string) (*Product, error) {
	url := fmt.Sprintf("%s/api/v1/businesses/%s/products/%s", c.baseURL, businessID, productID)

	resp, err := c.http.Get(ctx, url)
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) {
			return nil, apperrors.Wrap(err, "catalog unavailable")
		}
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperrors.NotFound("product", productID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var body productResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode catalog response: %w", err)
	}
	if body.Product.ID == "" {
		body.Product.ID = productID
	}

	return &body.Product, nil
}
