package http

import (
	"context"
	"net/http"

	apperrors "github.com/Beliver-cell/kreateyo-sub000/pkg/errors"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/logger"
)

type contextKey string

const (
	businessIDKey contextKey = "business_id"
	customerIDKey contextKey = "customer_id"
)

// RequireTenant extracts the business and customer identity headers set by
// the storefront edge. Every cart route needs both: the business scopes the
// catalog and gateway, the customer scopes the cart.
func RequireTenant(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		businessID := r.Header.Get("X-Business-ID")
		if businessID == "" {
			respondError(w, r, apperrors.InvalidInput("missing X-Business-ID header"))
			return
		}

		customerID := r.Header.Get("X-Customer-ID")
		if customerID == "" {
			respondError(w, r, apperrors.Unauthorized("missing X-Customer-ID header"))
			return
		}

		ctx := context.WithValue(r.Context(), businessIDKey, businessID)
		ctx = context.WithValue(ctx, customerIDKey, customerID)
		ctx = logger.WithCustomerID(ctx, customerID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func businessIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(businessIDKey).(string)
	return id
}

func customerIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(customerIDKey).(string)
	return id
}

// ContentTypeJSON sets the response content type for API routes.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// CORS allows the storefront pages, which are served from per-business
// domains, to call the cart API from the browser.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Business-ID, X-Customer-ID, X-Correlation-ID")
			w.Header().Set("Access-Control-Max-Age", "300")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
