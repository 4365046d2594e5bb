package main

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	server "place_sentiment/internal/adapters/http_server"
	"place_sentiment/internal/adapters/observability"
	"place_sentiment/internal/adapters/places"
	redisad "place_sentiment/internal/adapters/redis"
	"place_sentiment/internal/app"
	"place_sentiment/internal/domain"
	"place_sentiment/internal/sentiment"
	"place_sentiment/internal/shared"
)

func main() {
	cfg, err := shared.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv, cfg.LogLevel)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	// deps
	client, err := places.New(cfg.PlacesBase, cfg.PlacesKey, cfg.Timeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize places client")
	}
	classifier := sentiment.NewClassifier(sentiment.NewVader(), cfg.Policy)
	svc := app.NewSearchService(client, classifier, app.SearchOptions{
		Language:      cfg.Language,
		MaxReviews:    cfg.MaxReviews,
		ErrorsAsEmpty: cfg.ErrorsAsEmpty,
	})

	var guard domain.Guard = app.NewMemoryGuard()
	if cfg.RedisAddr != "" {
		rg := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rg.Ping(ctx); err != nil {
			log.Fatal().Err(err).Str("addr", cfg.RedisAddr).Msg("redis ping failed")
		}
		cancel()
		guard = rg
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis in-flight guard")
	}

	// http
	srv := server.New(cfg.RateLimitRPS, cfg.RateBurst, cfg.TrustProxy)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{S: svc, Guard: guard, GuardTTL: cfg.GuardTTL})

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Str("policy", string(cfg.Policy)).
		Int("max_reviews", cfg.MaxReviews).
		Str("language", cfg.Language).
		Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
