package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/varlopecar/react-form/backend/internal/setup"
	mw "github.com/varlopecar/react-form/shared/middleware"
	"github.com/varlopecar/react-form/shared/middleware/metrics"
)

// New creates and configures a new chi router with all the routes.
func New(deps *setup.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(metrics.Middleware)
	r.Use(chimw.Compress(5))

	// setup CORS for the browser frontends
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.Config.Public.CorsOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(mw.SecurityHeaders(deps.Config.Public.HTTPS))

	h := deps.Handler
	authMw := deps.AuthMiddleware

	r.Get("/", h.Info)
	r.Get("/health", h.Health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Post("/register", h.Register)
	r.With(mw.RateLimit(deps.LoginLimiter, mw.GetIP)).Post("/login", h.Login)
	r.Get("/public-users", h.PublicUsers)

	// Logged-in user routes
	r.Group(func(r chi.Router) {
		r.Use(authMw.NeedAuth())
		r.Get("/users", h.Users)
		r.Get("/me", h.Me)
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(authMw.AdminOnly())
		r.Delete("/users/{id}", h.DeleteUser)
	})

	return r
}
