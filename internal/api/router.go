package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/isdelr/typetester-be/internal/api/handlers"
	"github.com/isdelr/typetester-be/internal/auth"
	"github.com/isdelr/typetester-be/internal/services"
)

// NewRouter creates and configures a new Chi router.
func NewRouter(
	tokens *auth.TokenManager,
	userService services.UserServiceProvider,
	resultService services.ResultServiceProvider,
	clientURL string,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{clientURL},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	metaHandler := handlers.NewMetaHandler()
	userHandler := handlers.NewUserHandler(userService, tokens)
	resultHandler := handlers.NewResultHandler(resultService)

	r.Get("/", metaHandler.Index)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", metaHandler.Health)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", userHandler.Register)
			r.Post("/login", userHandler.Login)
			r.With(tokens.Require).Get("/me", userHandler.GetMe)
		})

		r.Route("/results", func(r chi.Router) {
			// Submission works logged out; a valid token attributes the result
			r.With(tokens.Optional).Post("/", resultHandler.Submit)
			r.With(tokens.Require).Get("/me", resultHandler.ListMine)
			r.With(tokens.Require).Get("/stats", resultHandler.Stats)
		})
	})

	return r
}
