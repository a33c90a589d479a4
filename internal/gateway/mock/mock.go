// Package mock provides a payment gateway that authorizes everything.
// It is the development and demo provider; production deployments configure
// a real provider instead.
package mock

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Beliver-cell/kreateyo-sub000/internal/gateway"
)

// Gateway authorizes every payment after a short simulated delay.
type Gateway struct {
	logger *slog.Logger
	delay  time.Duration
}

// New creates a mock gateway. A zero delay makes PayCart return immediately,
// which is what tests want.
func New(logger *slog.Logger, delay time.Duration) *Gateway {
	return &Gateway{
		logger: logger,
		delay:  delay,
	}
}

// Name returns the provider identifier.
func (g *Gateway) Name() string {
	return "mock"
}

// PayCart always authorizes and returns a generated reference.
func (g *Gateway) PayCart(ctx context.Context, req *gateway.PayRequest) (*gateway.PayResult, error) {
	if g.delay > 0 {
		select {
		case <-time.After(g.delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("mock gateway: %w", ctx.Err())
		}
	}

	ref := "mock_" + uuid.NewString()
	g.logger.Info("mock gateway authorized payment",
		"reference", ref,
		"business_id", req.Metadata.BusinessID,
		"items", len(req.Items),
	)

	return &gateway.PayResult{
		Reference: ref,
		Provider:  g.Name(),
	}, nil
}
