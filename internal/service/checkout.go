package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	"github.com/Beliver-cell/kreateyo-sub000/internal/event"
	"github.com/Beliver-cell/kreateyo-sub000/internal/gateway"
	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
)

var checkoutAttempts = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "checkout_attempts_total",
		Help: "Total checkout attempts by outcome",
	},
	[]string{"outcome"},
)

const (
	outcomeSuccess       = "success"
	outcomePaymentFailed = "payment_failed"
	outcomeUnavailable   = "unavailable"
	outcomeInvalidInput  = "invalid_input"
	outcomeEmptyCart     = "empty_cart"
	outcomeConflict      = "conflict"
)

// CheckoutService orchestrates a checkout submission: validate the customer
// details, hand the cart to the payment gateway, and clear the cart if and
// only if the gateway authorized. Payment failure leaves the cart untouched
// so the customer can retry without rebuilding it.
type CheckoutService struct {
	carts     *CartService
	gateway   gateway.Gateway
	publisher event.Publisher
	logger    *slog.Logger

	// payTimeout bounds the gateway call; zero means no bound beyond the
	// provider's own.
	payTimeout time.Duration

	mu       sync.Mutex
	inFlight map[string]struct{}
}

// NewCheckoutService creates a checkout service. A nil gateway is a valid
// configuration: submissions then fail with a payment-unavailable error
// before any provider call.
func NewCheckoutService(carts *CartService, gw gateway.Gateway, publisher event.Publisher, logger *slog.Logger, payTimeout time.Duration) *CheckoutService {
	return &CheckoutService{
		carts:      carts,
		gateway:    gw,
		publisher:  publisher,
		logger:     logger,
		payTimeout: payTimeout,
		inFlight:   make(map[string]struct{}),
	}
}

// State returns the checkout state for a customer: submitting while an
// attempt is in flight, idle otherwise. Succeeded and failed are terminal
// per attempt and reported through Submit's return.
func (s *CheckoutService) State(businessID, customerID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[businessID+":"+customerID]; ok {
		return domain.CheckoutStateSubmitting
	}
	return domain.CheckoutStateIdle
}

// Submit runs one checkout attempt for the customer's cart.
//
// The gateway is called at most once per attempt, on a context detached from
// the request so a closed browser tab cannot abandon a payment that is
// already in flight. Success clears the cart; every failure path leaves it
// exactly as it was.
func (s *CheckoutService) Submit(ctx context.Context, businessID, customerID string, req *domain.CheckoutRequest) (*domain.Receipt, error) {
	if missing := req.MissingFields(); len(missing) > 0 {
		checkoutAttempts.WithLabelValues(outcomeInvalidInput).Inc()
		return nil, apperrors.InvalidInput("missing required fields: " + strings.Join(missing, ", "))
	}

	key := businessID + ":" + customerID
	if !s.acquire(key) {
		checkoutAttempts.WithLabelValues(outcomeConflict).Inc()
		return nil, apperrors.Conflict("a checkout is already in progress")
	}
	defer s.release(key)

	if s.gateway == nil {
		checkoutAttempts.WithLabelValues(outcomeUnavailable).Inc()
		s.publisher.CheckoutFailed(ctx, businessID, customerID, "no payment gateway configured")
		return nil, apperrors.PaymentUnavailable("this business has no payment integration configured")
	}

	cart, err := s.carts.GetCart(ctx, businessID, customerID)
	if err != nil {
		return nil, err
	}
	if cart.IsEmpty() {
		checkoutAttempts.WithLabelValues(outcomeEmptyCart).Inc()
		return nil, apperrors.InvalidInput("cart is empty")
	}

	result, err := s.pay(ctx, cart, req)
	if err != nil {
		checkoutAttempts.WithLabelValues(outcomePaymentFailed).Inc()
		s.publisher.CheckoutFailed(ctx, businessID, customerID, err.Error())
		s.logger.WarnContext(ctx, "payment rejected",
			slog.String("business_id", businessID),
			slog.String("provider", s.gateway.Name()),
			slog.String("error", err.Error()),
		)
		return nil, apperrors.PaymentFailed("payment was not authorized")
	}

	receipt := &domain.Receipt{
		Reference:   result.Reference,
		BusinessID:  businessID,
		CustomerID:  customerID,
		AmountCents: cart.TotalCents(),
		Currency:    cart.Currency,
		ItemCount:   cart.ItemCount(),
		SettledAt:   time.Now().UTC(),
	}

	// The payment is settled; a failure to clear must not turn success into
	// an error for the customer. Use the detached context so a client
	// disconnect cannot skip the clear either.
	if err := s.carts.ClearCart(context.WithoutCancel(ctx), businessID, customerID); err != nil {
		s.logger.ErrorContext(ctx, "clear cart after successful checkout",
			slog.String("business_id", businessID),
			slog.String("reference", receipt.Reference),
			slog.String("error", err.Error()),
		)
	}

	checkoutAttempts.WithLabelValues(outcomeSuccess).Inc()
	s.publisher.CheckoutSucceeded(ctx, receipt)
	s.logger.InfoContext(ctx, "checkout succeeded",
		slog.String("business_id", businessID),
		slog.String("reference", receipt.Reference),
		slog.Int64("amount_cents", receipt.AmountCents),
	)

	return receipt, nil
}

// pay calls the gateway once with the cart contents. The call runs on a
// context that survives request cancellation, bounded by payTimeout when set.
func (s *CheckoutService) pay(ctx context.Context, cart *domain.Cart, req *domain.CheckoutRequest) (*gateway.PayResult, error) {
	payCtx := context.WithoutCancel(ctx)
	if s.payTimeout > 0 {
		var cancel context.CancelFunc
		payCtx, cancel = context.WithTimeout(payCtx, s.payTimeout)
		defer cancel()
	}

	items := make([]gateway.PayItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, gateway.PayItem{
			ID:       it.ProductID,
			Name:     it.Name,
			Price:    it.Price,
			Quantity: it.Quantity,
		})
	}

	return s.gateway.PayCart(payCtx, &gateway.PayRequest{
		Items: items,
		Customer: gateway.Customer{
			Email: req.Email,
			Name:  req.CustomerName(),
			Phone: req.Phone,
		},
		Metadata: gateway.Metadata{
			BusinessID: cart.BusinessID,
			OrderType:  req.OrderType,
		},
	})
}

func (s *CheckoutService) acquire(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.inFlight[key]; ok {
		return false
	}
	s.inFlight[key] = struct{}{}
	return true
}

func (s *CheckoutService) release(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.inFlight, key)
}
