package api

import (
	"github.com/casavia/casavia-be/internal/api/handlers"
	"github.com/casavia/casavia-be/internal/auth"
	"github.com/casavia/casavia-be/internal/metrics"
	"github.com/casavia/casavia-be/internal/models"
	"github.com/casavia/casavia-be/internal/services"
	"github.com/casavia/casavia-be/internal/websocket"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
)

// Deps bundles everything the router needs.
type Deps struct {
	Hub        *websocket.Hub
	Users      services.UserServiceProvider
	Properties services.PropertyServiceProvider
	Bookings   services.BookingServiceProvider
	Events     services.EventServiceProvider
	Collector  *metrics.Collector
	Registry   *prometheus.Registry
	CORSOrigin string
}

// NewRouter creates and configures a new Chi router.
func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(deps.Users, deps.Events, deps.Collector)
	propertyHandler := handlers.NewPropertyHandler(deps.Properties, deps.Events, deps.Collector)
	bookingHandler := handlers.NewBookingHandler(deps.Bookings, deps.Events, deps.Collector)
	eventHandler := handlers.NewEventHandler(deps.Events)
	wsHandler := handlers.NewWebSocketHandler(deps.Hub)

	r.Handle("/metrics", metrics.Handler(deps.Registry))

	// API versioning
	r.Route("/api/v1", func(r chi.Router) {
		// Live event feed
		r.Get("/ws", wsHandler.Serve)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/register/host", authHandler.RegisterHost)
			r.Post("/login", authHandler.Login)
			r.Post("/host-login", authHandler.HostLogin)

			r.Group(func(r chi.Router) {
				r.Use(auth.JWTMiddleware())
				r.Post("/become-host", authHandler.BecomeHost)
				r.Get("/me", authHandler.GetMe)
			})
		})

		r.Route("/properties", func(r chi.Router) {
			r.Post("/search", propertyHandler.Search)

			// Host-only routes must come before the {id} wildcard.
			r.Group(func(r chi.Router) {
				r.Use(auth.JWTMiddleware())
				r.Use(auth.RequireRole(models.RoleHost))
				r.Post("/", propertyHandler.Create)
				r.Get("/my-properties", propertyHandler.MyProperties)
			})

			r.Get("/{id}", propertyHandler.Get)
		})

		r.Route("/bookings", func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Get("/", bookingHandler.List)
			r.Post("/", bookingHandler.Create)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.JWTMiddleware())
			r.Use(auth.RequireRole(models.RoleHost))
			r.Get("/events", eventHandler.Recent)
		})
	})

	return r
}
