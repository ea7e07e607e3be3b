package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/portfolio-chat/relay/internal/handlers"
	"github.com/portfolio-chat/relay/internal/middleware"
)

func New(
	logger zerolog.Logger,
	chatHandler *handlers.ChatHandler,
	chatLimiter *middleware.RateLimiter,
	allowedOrigin string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.RequestLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(allowedOrigin))

	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// ──── Chat relay ────
	r.Group(func(r chi.Router) {
		if chatLimiter != nil {
			r.Use(chatLimiter.Middleware)
		}
		r.Options("/chat", chatHandler.Preflight)
		r.Post("/chat", chatHandler.Chat)
	})

	return r
}
