package domain

import (
	"strings"
	"time"
)

// Checkout attempt states. An attempt starts Submitting the moment the
// re-entrancy guard admits it; Succeeded is the only state in which the cart
// is cleared.
const (
	CheckoutStateIdle       = "idle"
	CheckoutStateSubmitting = "submitting"
	CheckoutStateSucceeded  = "succeeded"
	CheckoutStateFailed     = "failed"
)

// CheckoutRequest carries the customer details for one checkout submission.
// It is ephemeral: built from the dialog form, handed to the payment gateway,
// and never persisted.
type CheckoutRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	OrderType string `json:"order_type,omitempty"`
}

// CustomerName returns the customer's display name as "first last".
func (r *CheckoutRequest) CustomerName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// MissingFields returns the names of required fields that are empty or
// whitespace. Required fields are email, first name, and last name.
func (r *CheckoutRequest) MissingFields() []string {
	var missing []string
	if strings.TrimSpace(r.Email) == "" {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(r.FirstName) == "" {
		missing = append(missing, "first_name")
	}
	if strings.TrimSpace(r.LastName) == "" {
		missing = append(missing, "last_name")
	}
	return missing
}

// Receipt is the result of a successful checkout: the gateway reference plus
// the settled amount, returned to the storefront for the success notice.
type Receipt struct {
	Reference   string    `json:"reference"`
	BusinessID  string    `json:"business_id"`
	CustomerID  string    `json:"customer_id"`
	AmountCents int64     `json:"amount_cents"`
	Currency    string    `json:"currency"`
	ItemCount   int       `json:"item_count"`
	SettledAt   time.Time `json:"settled_at"`
}
