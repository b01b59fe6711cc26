// Package rest wires the development server's HTTP surface. It speaks the
// same wire format as the production backend so the client cannot tell
// them apart.
package rest

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"soundmap/infrastructure/persistence/memory"
	"soundmap/interfaces/http/rest/handlers"
	"soundmap/interfaces/http/rest/middleware"
	"soundmap/pkg/auth"
)

// Router creates and configures the HTTP router
type Router struct {
	store   *memory.Store
	catalog *memory.Catalog
	issuer  *auth.TokenIssuer
	logger  *zap.Logger
}

// NewRouter creates a new router instance
func NewRouter(store *memory.Store, catalog *memory.Catalog, issuer *auth.TokenIssuer, logger *zap.Logger) *Router {
	return &Router{
		store:   store,
		catalog: catalog,
		issuer:  issuer,
		logger:  logger,
	}
}

// Setup configures all routes and middleware
func (rt *Router) Setup() http.Handler {
	router := chi.NewRouter()

	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(chimiddleware.Recoverer)
	router.Use(middleware.Logger(rt.logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	router.Get("/health", rt.healthCheck)

	authHandler := handlers.NewAuthHandler(rt.store, rt.issuer, rt.logger)
	artistHandler := handlers.NewArtistHandler(rt.catalog, rt.logger)
	networkHandler := handlers.NewNetworkHandler(rt.store, rt.logger)

	router.Route("/api", func(r chi.Router) {
		// Anonymous endpoints
		r.Post("/token/", authHandler.Token)
		r.Post("/token/refresh/", authHandler.Refresh)
		r.Post("/signup/", authHandler.Signup)
		r.Get("/artists/", artistHandler.Search)
		r.Get("/artists/top/", artistHandler.TopTrack)
		r.Post("/graph-json/", artistHandler.Graph)

		// Endpoints that need a logged-in user
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(rt.issuer, rt.logger))
			r.Post("/save-network/", networkHandler.Save)
			r.Get("/my-networks/", networkHandler.List)
			r.Patch("/update-network/{id}/", networkHandler.UpdateMemo)
			r.Delete("/delete-network/{id}/", networkHandler.Delete)
		})
	})

	return router
}

func (rt *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy"}`))
}
