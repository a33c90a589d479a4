package http

import (
	"encoding/json"
	"net/http"

	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	"github.com/Beliver-cell/kreateyo-sub000/internal/service"
	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/money"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/validator"
)

// CheckoutHandler serves the checkout dialog submission.
type CheckoutHandler struct {
	checkout *service.CheckoutService
}

// NewCheckoutHandler creates the checkout HTTP handler.
func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

type checkoutRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
	OrderType string `json:"order_type,omitempty"`
}

type receiptView struct {
	Reference     string `json:"reference"`
	AmountCents   int64  `json:"amount_cents"`
	AmountDisplay string `json:"amount_display"`
	Currency      string `json:"currency"`
	ItemCount     int    `json:"item_count"`
	SettledAt     string `json:"settled_at"`
}

// Submit runs one checkout attempt for the customer's cart. Error statuses:
// 400 invalid input, 409 attempt already in flight, 422 payment rejected,
// 503 no gateway configured.
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.InvalidInput("invalid request body"))
		return
	}
	if err := validator.Validate(req); err != nil {
		respondError(w, r, err)
		return
	}

	receipt, err := h.checkout.Submit(r.Context(),
		businessIDFrom(r.Context()), customerIDFrom(r.Context()),
		&domain.CheckoutRequest{
			Email:     req.Email,
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Phone:     req.Phone,
			Address:   req.Address,
			OrderType: req.OrderType,
		})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, receiptView{
		Reference:     receipt.Reference,
		AmountCents:   receipt.AmountCents,
		AmountDisplay: money.Format(receipt.AmountCents),
		Currency:      receipt.Currency,
		ItemCount:     receipt.ItemCount,
		SettledAt:     receipt.SettledAt.Format("2006-01-02T15:04:05Z07:00"),
	})
}

// State reports whether a checkout attempt is currently in flight for the
// customer, so a reopened drawer can disable its submit button.
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	state := h.checkout.State(businessIDFrom(r.Context()), customerIDFrom(r.Context()))
	respondJSON(w, http.StatusOK, map[string]string{"state": state})
}
