package http

import (
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Beliver-cell/kreateyo-sub000/pkg/health"
	"github.com/Beliver-cell/kreateyo-sub000/pkg/middleware"
)

const serviceName = "storefront"

// NewRouter assembles the storefront API router.
func NewRouter(cart *CartHandler, checkout *CheckoutHandler, healthHandler *health.Handler, l *slog.Logger) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(l))
	r.Use(chimiddleware.Compress(5))
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(l))
	r.Use(middleware.PrometheusMetrics(serviceName))
	r.Use(middleware.Tracing(serviceName))
	r.Use(middleware.RequestLogger(l))

	r.Get("/healthz", healthHandler.LivenessHandler())
	r.Get("/readyz", healthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(CORS)
		r.Use(ContentTypeJSON)
		r.Use(RequireTenant)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.Get)
			r.Delete("/", cart.Clear)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{productID}", cart.UpdateQuantity)
			r.Delete("/items/{productID}", cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", checkout.Submit)
			r.Get("/state", checkout.State)
		})
	})

	return r
}
