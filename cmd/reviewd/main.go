package main

import (
	"github.com/ByteStackx/collaborative-code-review-platform/db"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/auth"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/config"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/events"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/handlers"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/logging"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/metrics"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/policy"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/router"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/services"
	"github.com/ByteStackx/collaborative-code-review-platform/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	database, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := db.MigrateDatabase(database); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure tokens")
	}

	st := store.New(database)
	origins := cfg.Origins()

	handler := handlers.New(handlers.Options{
		Store:       st,
		Rules:       policy.NewRules(st),
		Tokens:      tokens,
		Hub:         events.NewHub(),
		Notifier:    services.NewNotifier(nil),
		DefaultRole: cfg.DefaultRole,
		Origins:     origins,
	})

	r := router.NewRouter(router.Dependencies{
		Handler:  handler,
		Resolver: tokens,
		Metrics:  metrics.New(),
		Origins:  origins,
	})

	log.Info().Str("port", cfg.Port).Msg("starting server")

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
