package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	"github.com/Beliver-cell/kreateyo-sub000/internal/event"
	"github.com/Beliver-cell/kreateyo-sub000/internal/repository"
	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
)

var cartMutations = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cart_mutations_total",
		Help: "Total cart mutations by operation",
	},
	[]string{"op"},
)

// maxSaveRetries bounds the optimistic-lock retry loop. Two browser tabs
// racing resolves within one retry; more than three conflicts in a row means
// something is wrong.
const maxSaveRetries = 3

// CartService implements the cart operations shared by every storefront
// surface of a business. All derived values (count, total) come from the item
// list at read time.
type CartService struct {
	repo      repository.CartRepository
	publisher event.Publisher
	logger    *slog.Logger
	currency  string
	ttl       time.Duration
}

// NewCartService creates a cart service.
func NewCartService(repo repository.CartRepository, publisher event.Publisher, logger *slog.Logger, currency string, ttl time.Duration) *CartService {
	if currency == "" {
		currency = "USD"
	}
	return &CartService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		currency:  currency,
		ttl:       ttl,
	}
}

// GetCart returns the customer's cart, or a fresh empty cart when none is
// stored. An empty cart is a valid state, not an error.
func (s *CartService) GetCart(ctx context.Context, businessID, customerID string) (*domain.Cart, error) {
	cart, err := s.repo.Get(ctx, businessID, customerID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return s.newCart(businessID, customerID), nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}
	return cart, nil
}

// AddItem merges the given item into the cart and persists it. The item is a
// catalog snapshot taken by the caller at add time; an existing line for the
// same product keeps its original snapshot and only gains quantity.
func (s *CartService) AddItem(ctx context.Context, businessID, customerID string, item domain.CartItem) (*domain.Cart, error) {
	cart, err := s.mutate(ctx, businessID, customerID, func(c *domain.Cart) bool {
		c.AddItem(item)
		return true
	})
	if err != nil {
		return nil, err
	}

	cartMutations.WithLabelValues("add").Inc()
	s.publisher.CartUpdated(ctx, cart)

	s.logger.InfoContext(ctx, "item added to cart",
		slog.String("business_id", businessID),
		slog.String("product_id", item.ProductID),
		slog.Int("quantity", item.Quantity),
	)

	return cart, nil
}

// UpdateItemQuantity sets the quantity of a line. Zero or negative removes
// the line; a product not in the cart leaves it unchanged.
func (s *CartService) UpdateItemQuantity(ctx context.Context, businessID, customerID, productID string, quantity int) (*domain.Cart, error) {
	var changed bool
	cart, err := s.mutate(ctx, businessID, customerID, func(c *domain.Cart) bool {
		changed = c.SetQuantity(productID, quantity)
		return changed
	})
	if err != nil {
		return nil, err
	}

	if changed {
		cartMutations.WithLabelValues("update").Inc()
		s.publisher.CartUpdated(ctx, cart)
	}

	return cart, nil
}

// RemoveItem removes a line from the cart. Removing a product that is not in
// the cart is a no-op, so removal is safe to repeat.
func (s *CartService) RemoveItem(ctx context.Context, businessID, customerID, productID string) (*domain.Cart, error) {
	var changed bool
	cart, err := s.mutate(ctx, businessID, customerID, func(c *domain.Cart) bool {
		changed = c.RemoveItem(productID)
		return changed
	})
	if err != nil {
		return nil, err
	}

	if changed {
		cartMutations.WithLabelValues("remove").Inc()
		s.publisher.CartUpdated(ctx, cart)
	}

	return cart, nil
}

// ClearCart removes the whole cart. Clearing an absent cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, businessID, customerID string) error {
	if err := s.repo.Delete(ctx, businessID, customerID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	cartMutations.WithLabelValues("clear").Inc()
	s.publisher.CartCleared(ctx, businessID, customerID)

	s.logger.InfoContext(ctx, "cart cleared",
		slog.String("business_id", businessID),
		slog.String("customer_id", customerID),
	)

	return nil
}

// mutate runs fn against a fresh read of the cart and saves with optimistic
// locking, retrying on version conflicts. fn returns false to skip the save
// when nothing changed.
func (s *CartService) mutate(ctx context.Context, businessID, customerID string, fn func(*domain.Cart) bool) (*domain.Cart, error) {
	for attempt := 0; attempt < maxSaveRetries; attempt++ {
		cart, err := s.GetCart(ctx, businessID, customerID)
		if err != nil {
			return nil, err
		}

		if !fn(cart) {
			return cart, nil
		}

		now := time.Now().UTC()
		cart.UpdatedAt = now
		cart.ExpiresAt = now.Add(s.ttl)

		ok, err := s.repo.SaveIfVersion(ctx, cart, cart.Version)
		if err != nil {
			return nil, fmt.Errorf("save cart: %w", err)
		}
		if ok {
			return cart, nil
		}

		s.logger.DebugContext(ctx, "cart version conflict, retrying",
			slog.String("business_id", businessID),
			slog.Int("attempt", attempt+1),
		)
	}

	return nil, apperrors.Conflict("cart was modified concurrently")
}

func (s *CartService) newCart(businessID, customerID string) *domain.Cart {
	now := time.Now().UTC()
	return &domain.Cart{
		ID:         uuid.NewString(),
		BusinessID: businessID,
		CustomerID: customerID,
		Items:      []domain.CartItem{},
		Currency:   s.currency,
		Version:    0,
		CreatedAt:  now,
		UpdatedAt:  now,
		ExpiresAt:  now.Add(s.ttl),
	}
}
