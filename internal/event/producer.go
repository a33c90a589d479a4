// Package event publishes storefront cart and checkout events to Kafka.
// Publishing is best effort: a broker outage must never fail the customer
// facing operation, so failures are logged and swallowed.
package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/kafka"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/logger"
)

// Topics for storefront events.
const (
	TopicCartUpdated       = "storefront.cart.updated"
	TopicCartCleared       = "storefront.cart.cleared"
	TopicCheckoutSucceeded = "storefront.checkout.succeeded"
	TopicCheckoutFailed    = "storefront.checkout.failed"
)

// Event types carried in the envelope.
const (
	TypeCartUpdated       = "cart.updated"
	TypeCartCleared       = "cart.cleared"
	TypeCheckoutSucceeded = "checkout.succeeded"
	TypeCheckoutFailed    = "checkout.failed"
)

const source = "storefront-service"

// Publisher is the event emission contract used by the services.
type Publisher interface {
	CartUpdated(ctx context.Context, cart *domain.Cart)
	CartCleared(ctx context.Context, businessID, customerID string)
	CheckoutSucceeded(ctx context.Context, receipt *domain.Receipt)
	CheckoutFailed(ctx context.Context, businessID, customerID, reason string)
}

// CartUpdatedPayload is the body of cart.updated events.
type CartUpdatedPayload struct {
	BusinessID string `json:"business_id"`
	CustomerID string `json:"customer_id"`
	ItemCount  int    `json:"item_count"`
	TotalCents int64  `json:"total_cents"`
	Currency   string `json:"currency"`
}

// CheckoutFailedPayload is the body of checkout.failed events.
type CheckoutFailedPayload struct {
	BusinessID string    `json:"business_id"`
	CustomerID string    `json:"customer_id"`
	Reason     string    `json:"reason"`
	FailedAt   time.Time `json:"failed_at"`
}

// KafkaPublisher publishes storefront events through the shared producer.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher on top of a Kafka producer.
func NewKafkaPublisher(producer *kafka.Producer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: producer,
		logger:   logger,
	}
}

func (p *KafkaPublisher) publish(ctx context.Context, topic, eventType, aggregateID string, payload any) {
	evt, err := kafka.NewEvent(eventType, aggregateID, "cart", source, payload)
	if err != nil {
		p.logger.Error("marshal event payload", "event_type", eventType, "error", err)
		return
	}
	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		evt = evt.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, topic, evt); err != nil {
		p.logger.Error("publish event",
			"topic", topic,
			"event_type", eventType,
			"aggregate_id", aggregateID,
			"error", err,
		)
	}
}

// CartUpdated emits a cart.updated event with the derived totals.
func (p *KafkaPublisher) CartUpdated(ctx context.Context, cart *domain.Cart) {
	p.publish(ctx, TopicCartUpdated, TypeCartUpdated, cart.BusinessID+":"+cart.CustomerID, CartUpdatedPayload{
		BusinessID: cart.BusinessID,
		CustomerID: cart.CustomerID,
		ItemCount:  cart.ItemCount(),
		TotalCents: cart.TotalCents(),
		Currency:   cart.Currency,
	})
}

// CartCleared emits a cart.cleared event.
func (p *KafkaPublisher) CartCleared(ctx context.Context, businessID, customerID string) {
	p.publish(ctx, TopicCartCleared, TypeCartCleared, businessID+":"+customerID, map[string]string{
		"business_id": businessID,
		"customer_id": customerID,
	})
}

// CheckoutSucceeded emits a checkout.succeeded event carrying the receipt.
func (p *KafkaPublisher) CheckoutSucceeded(ctx context.Context, receipt *domain.Receipt) {
	p.publish(ctx, TopicCheckoutSucceeded, TypeCheckoutSucceeded, receipt.BusinessID+":"+receipt.CustomerID, receipt)
}

// CheckoutFailed emits a checkout.failed event with the failure reason.
func (p *KafkaPublisher) CheckoutFailed(ctx context.Context, businessID, customerID, reason string) {
	p.publish(ctx, TopicCheckoutFailed, TypeCheckoutFailed, businessID+":"+customerID, CheckoutFailedPayload{
		BusinessID: businessID,
		CustomerID: customerID,
		Reason:     reason,
		FailedAt:   time.Now().UTC(),
	})
}

// NoopPublisher drops all events. Used when Kafka is not configured.
type NoopPublisher struct{}

func (NoopPublisher) CartUpdated(context.Context, *domain.Cart)              {}
func (NoopPublisher) CartCleared(context.Context, string, string)            {}
func (NoopPublisher) CheckoutSucceeded(context.Context, *domain.Receipt)     {}
func (NoopPublisher) CheckoutFailed(context.Context, string, string, string) {}
