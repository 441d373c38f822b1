package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"loyallight/backend/internal/middleware"
)

const version = "1.0.0"

type Handler struct {
	router *chi.Mux
}

func NewHandler(
	logger *logrus.Logger,
	auth *middleware.Auth,
	cors *middleware.CORS,
	clients *ClientHandler,
	items *ItemHandler,
	purchases *PurchaseHandler,
	analytics *AnalyticsHandler,
	suggestions *SuggestionHandler,
) *Handler {
	router := chi.NewRouter()

	// Middleware
	router.Use(chimw.RequestID)
	router.Use(chimw.Recoverer)
	router.Use(cors.Handler)
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics)

	router.Handle("/metrics", promhttp.Handler())

	router.Route("/v1", func(r chi.Router) {
		r.Get("/health", HealthCheck)

		r.Group(func(r chi.Router) {
			r.Use(auth.Handler)

			r.Route("/clients", func(r chi.Router) {
				r.Get("/", clients.List)
				r.Post("/", clients.Create)
				r.Get("/{id}", clients.Get)
				r.Patch("/{id}", clients.Update)
				r.Delete("/{id}", clients.Delete)
			})

			r.Route("/items", func(r chi.Router) {
				r.Get("/", items.List)
				r.Post("/", items.Create)
				r.Post("/upload-image", items.UploadImage)
				r.Delete("/{id}", items.Delete)
			})

			r.Route("/purchases", func(r chi.Router) {
				r.Get("/", purchases.List)
				r.Post("/", purchases.Create)
			})

			r.Get("/analytics/overview", analytics.Overview)

			r.Route("/ai", func(r chi.Router) {
				r.Get("/suggestions", suggestions.TopAtRisk)
				r.Get("/clients/{id}/suggestions", suggestions.ForClient)
			})
		})
	})

	return &Handler{router: router}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.router.ServeHTTP(w, r)
}

func HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok", "version": version})
}
