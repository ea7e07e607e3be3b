package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/portfolio-chat/relay/internal/config"
	"github.com/portfolio-chat/relay/internal/database"
	"github.com/portfolio-chat/relay/internal/handlers"
	"github.com/portfolio-chat/relay/internal/logging"
	"github.com/portfolio-chat/relay/internal/middleware"
	"github.com/portfolio-chat/relay/internal/router"
	"github.com/portfolio-chat/relay/internal/services"
)

func main() {
	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()

	logger := logging.Init(cfg.LogLevel, cfg.IsDevelopment())
	logger.Info().Msg("🚀 Starting portfolio chat relay...")
	logger.Info().
		Str("env", cfg.Env).
		Str("model", cfg.GroqModel).
		Str("upstream", cfg.GroqAPIURL).
		Int("max_tokens", cfg.GroqMaxTokens).
		Float64("temperature", cfg.GroqTemperature).
		Msg("✓ Environment variables loaded")

	// ──── Step 2: Completion Provider Client ────
	completion := services.NewCompletionClient(services.CompletionOptions{
		APIKey:      cfg.GroqAPIKey,
		URL:         cfg.GroqAPIURL,
		Model:       cfg.GroqModel,
		MaxTokens:   cfg.GroqMaxTokens,
		Temperature: cfg.GroqTemperature,
		Timeout:     cfg.UpstreamTimeout,
	})
	relay := services.NewRelayService(completion, logger)

	// ──── Step 3: Rate Limiter (optional) ────
	var limiter *middleware.RateLimiter
	if cfg.RateLimitPerMinute > 0 {
		var store middleware.RateLimitStore
		if cfg.RedisURL != "" {
			redisClient, err := database.NewRedisClient(cfg.RedisURL)
			if err != nil {
				logger.Fatal().Err(err).Msg("✗ Redis connection failed")
			}
			defer redisClient.Close()
			store = middleware.NewRedisStore(redisClient, time.Minute)
			logger.Info().Msg("✓ Redis connected (shared rate limiting)")
		} else {
			memStore := middleware.NewMemoryStore(time.Minute)
			defer memStore.Close()
			store = memStore
		}
		limiter = middleware.NewRateLimiter(store, cfg.RateLimitPerMinute, logger)
		logger.Info().Int("per_minute", cfg.RateLimitPerMinute).Msg("✓ Rate limiting enabled")
	}

	// ──── Step 4: HTTP Server ────
	chatHandler := handlers.NewChatHandler(relay, cfg.MaxBodyBytes)
	r := router.New(logger, chatHandler, limiter, cfg.CORSAllowedOrigin)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		logger.Info().Msgf("✓ Relay ready on http://localhost:%s/chat", cfg.Port)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-ctx.Done()
		logger.Info().Msg("Shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := eg.Wait(); err != nil {
		logger.Error().Err(err).Msg("Server error")
		os.Exit(1)
	}
}
