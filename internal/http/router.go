package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/eldermuller/dindin/internal/auth"
	categoryHandler "github.com/eldermuller/dindin/internal/http/category"
	txHandler "github.com/eldermuller/dindin/internal/http/transaction"
	userHandler "github.com/eldermuller/dindin/internal/http/user"
)

func New(
	authService *auth.Service,
	users *userHandler.Handler,
	categories *categoryHandler.Handler,
	transactions *txHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// The browser client is served from a different origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	router.Group(func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		users.PublicRoutes(r)
	})

	router.Group(func(r chi.Router) {
		r.Use(authService.Middleware)
		r.Use(middleware.AllowContentType("application/json"))

		users.ProfileRoutes(r)

		r.Route("/categories", categories.Routes)

		r.Route("/transactions", transactions.Routes)
	})

	return router
}
