package gateway

import "context"

// PayItem is one cart line as presented to the payment provider.
type PayItem struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"` // minor units (cents)
	Quantity int    `json:"quantity"`
}

// Customer identifies the paying customer to the provider.
type Customer struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

// Metadata carries tenant context the provider may attach to the charge.
type Metadata struct {
	BusinessID string `json:"business_id"`
	OrderType  string `json:"order_type,omitempty"`
}

// PayRequest is the full payload handed to the provider for one checkout.
type PayRequest struct {
	Items    []PayItem `json:"items"`
	Customer Customer  `json:"customer"`
	Metadata Metadata  `json:"metadata"`
}

// PayResult is the provider's answer for an authorized payment.
type PayResult struct {
	Reference string `json:"reference"`
	Provider  string `json:"provider"`
}

// Gateway is the payment provider contract. PayCart either authorizes the
// whole cart and returns a reference, or returns an error; there is no
// partial outcome. Implementations decide amounts, currency handling, and
// retries on their side; the checkout flow treats the call as opaque.
type Gateway interface {
	// Name returns the provider identifier used in logs and events.
	Name() string

	// PayCart authorizes payment for the given cart contents.
	PayCart(ctx context.Context, req *PayRequest) (*PayResult, error)
}
