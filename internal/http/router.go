package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/FarukBas12/servistakip-sub000/internal/auth"
	authHandler "github.com/FarukBas12/servistakip-sub000/internal/http/auth"
	exportHandler "github.com/FarukBas12/servistakip-sub000/internal/http/export"
	projectHandler "github.com/FarukBas12/servistakip-sub000/internal/http/project"
	stockHandler "github.com/FarukBas12/servistakip-sub000/internal/http/stock"
	userHandler "github.com/FarukBas12/servistakip-sub000/internal/http/user"
)

func New(
	jwtSecret string,
	authV1 *authHandler.Handler,
	stockV1 *stockHandler.Handler,
	exportV1 *exportHandler.Handler,
	projectsV1 *projectHandler.Handler,
	usersV1 *userHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/auth", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))
		authV1.Routes(r)
	})

	// Everything below requires a valid token.
	router.Group(func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret))

		r.Route("/stock-tracking", func(r chi.Router) {
			r.Route("/export", exportV1.Routes)
			stockV1.Routes(r)
		})

		r.Route("/projects", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			projectsV1.Routes(r)
		})

		r.Route("/users", usersV1.Routes)
	})

	return router
}
