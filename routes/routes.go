package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/mychesstour/chesstour-api/handlers"
	"github.com/mychesstour/chesstour-api/middleware"
)

// SetupRoutes собирает всё дерево маршрутов API.
func SetupRoutes(
	router *chi.Mux,
	tournamentHandler *handlers.TournamentHandler,
	authHandler *handlers.AuthHandler,
	waitlistHandler *handlers.WaitlistHandler,
	progressHandler *handlers.ProgressHandler,
	jwtSecret string,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Recoverer)

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Route("/api/v1", func(r chi.Router) {
		// Публичный листинг турниров.
		r.Get("/tournaments", tournamentHandler.ListHandler)

		r.Post("/waitlist", waitlistHandler.JoinHandler)
		r.Get("/progress", progressHandler.GetHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", authHandler.SignupHandler)
			r.Post("/login", authHandler.LoginHandler)
			r.Post("/logout", authHandler.LogoutHandler)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate([]byte(jwtSecret)))
				r.Get("/me", authHandler.MeHandler)
			})
		})
	})
}
