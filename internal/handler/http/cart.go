package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Beliver-cell/kreateyo-sub000/internal/catalog"
	"github.com/Beliver-cell/kreateyo-sub000/internal/domain"
	"github.com/Beliver-cell/kreateyo-sub000/internal/service"
	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/money"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/validator"
)

// CartHandler serves the cart drawer: its contents, the badge count, and the
// mutations the drawer offers.
type CartHandler struct {
	carts   *service.CartService
	catalog catalog.Catalog
}

// NewCartHandler creates the cart HTTP handler.
func NewCartHandler(carts *service.CartService, cat catalog.Catalog) *CartHandler {
	return &CartHandler{
		carts:   carts,
		catalog: cat,
	}
}

// cartItemView is one line as the drawer renders it.
type cartItemView struct {
	ProductID        string `json:"product_id"`
	Name             string `json:"name"`
	ImageURL         string `json:"image_url,omitempty"`
	Quantity         int    `json:"quantity"`
	PriceCents       int64  `json:"price_cents"`
	PriceDisplay     string `json:"price_display"`
	LineTotalCents   int64  `json:"line_total_cents"`
	LineTotalDisplay string `json:"line_total_display"`
}

// cartView is the drawer payload. Count and total are derived from the item
// list on every render.
type cartView struct {
	Items        []cartItemView `json:"items"`
	ItemCount    int            `json:"item_count"`
	TotalCents   int64          `json:"total_cents"`
	TotalDisplay string         `json:"total_display"`
	Currency     string         `json:"currency"`
	Empty        bool           `json:"empty"`
}

func toCartView(cart *domain.Cart) cartView {
	items := make([]cartItemView, 0, len(cart.Items))
	for _, it := range cart.Items {
		items = append(items, cartItemView{
			ProductID:        it.ProductID,
			Name:             it.Name,
			ImageURL:         it.ImageURL,
			Quantity:         it.Quantity,
			PriceCents:       it.Price,
			PriceDisplay:     money.Format(it.Price),
			LineTotalCents:   it.LineTotal(),
			LineTotalDisplay: money.Format(it.LineTotal()),
		})
	}

	return cartView{
		Items:        items,
		ItemCount:    cart.ItemCount(),
		TotalCents:   cart.TotalCents(),
		TotalDisplay: money.Format(cart.TotalCents()),
		Currency:     cart.Currency,
		Empty:        cart.IsEmpty(),
	}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gte=0"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" validate:"gte=0"`
}

// Get returns the cart drawer contents. An absent cart renders as empty.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	cart, err := h.carts.GetCart(r.Context(), businessIDFrom(r.Context()), customerIDFrom(r.Context()))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toCartView(cart))
}

// AddItem adds a product to the cart. The product is looked up in the catalog
// here so the cart stores a display snapshot; an out-of-stock product is
// rejected before the cart is touched.
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.InvalidInput("invalid request body"))
		return
	}
	if err := validator.Validate(req); err != nil {
		respondError(w, r, err)
		return
	}

	businessID := businessIDFrom(r.Context())
	customerID := customerIDFrom(r.Context())

	product, err := h.catalog.GetProduct(r.Context(), businessID, req.ProductID)
	if err != nil {
		respondError(w, r, err)
		return
	}
	if !product.InStock() {
		respondError(w, r, apperrors.Conflict("product is out of stock"))
		return
	}

	cart, err := h.carts.AddItem(r.Context(), businessID, customerID, domain.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  req.Quantity,
		ImageURL:  product.FirstImage(),
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(cart))
}

// UpdateQuantity sets the quantity of a line; zero removes it.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, r, apperrors.InvalidInput("invalid request body"))
		return
	}

	productID := chi.URLParam(r, "productID")
	cart, err := h.carts.UpdateItemQuantity(r.Context(),
		businessIDFrom(r.Context()), customerIDFrom(r.Context()), productID, req.Quantity)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(cart))
}

// RemoveItem removes a line from the cart.
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "productID")
	cart, err := h.carts.RemoveItem(r.Context(),
		businessIDFrom(r.Context()), customerIDFrom(r.Context()), productID)
	if err != nil {
		respondError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, toCartView(cart))
}

// Clear empties the cart.
func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.ClearCart(r.Context(), businessIDFrom(r.Context()), customerIDFrom(r.Context())); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
