package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/nstepanova/onboard/internal/middleware"
)

// NewRouter constructs the HTTP handler serving the onboarding API.
//
// Routes:
//
//	POST /api/users              → userHandler.Create
//	PUT  /api/users/{id}         → userHandler.Update
//	GET  /api/users              → userHandler.List
//	GET  /api/admin/config       → componentHandler.GetConfig
//	POST /api/admin/config       → componentHandler.SetConfig
//	GET  /api/components         → componentHandler.GetConfig (legacy mount)
//	POST /api/components         → componentHandler.SetConfig (legacy mount)
//
// Middleware chain (applied in order):
//  1. cors.Handler                        — allows browser clients from any origin
//  2. AllowContentType("application/json") — rejects non-JSON request bodies
//  3. WithRequestLogging(logger)          — logs each request with an id
func NewRouter(
	userHandler *UserHandler,
	componentHandler *ComponentHandler,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}))
	r.Use(chiMiddleware.AllowContentType("application/json"))
	r.Use(middleware.WithRequestLogging(logger))

	configRoutes := func(r chi.Router) {
		r.Get("/", componentHandler.GetConfig)
		r.Post("/", componentHandler.SetConfig)
	}

	r.Route("/api", func(r chi.Router) {
		r.Route("/users", func(r chi.Router) {
			r.Get("/", userHandler.List)
			r.Post("/", userHandler.Create)
			r.Put("/{id}", userHandler.Update)
		})

		r.Route("/admin/config", configRoutes)
		// Older clients still post to /api/components.
		r.Route("/components", configRoutes)
	})

	return r
}
