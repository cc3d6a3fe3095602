package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sales-insights-go/internal/api"
	"sales-insights-go/internal/auth"
	"sales-insights-go/internal/cache"
	"sales-insights-go/internal/config"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/store"
)

func main() {
	cfg := config.Load()

	log := logger.New()
	log.WithField("service", "sales-insights-go").Info("starting service")

	st, err := store.New(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to apply migrations")
	}

	var ca cache.Cache = cache.NewNop()
	if cfg.RedisURL != "" {
		ca, err = cache.NewRedis(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to redis")
		}
		log.Info("redis cache connected")
	}

	holder := insights.NewModelHolder(insights.GatewayConfig{
		BaseURL:        cfg.ModelGatewayURL,
		APIKey:         cfg.ModelAPIKey,
		SentimentModel: cfg.SentimentModel,
		EmbeddingModel: cfg.EmbeddingModel,
	}, log.WithComponent("models"))
	proc := insights.NewProcessor(holder, log.WithComponent("insights"))

	authSvc := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	server := api.NewServer(cfg, log, st, ca, proc, authSvc)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.WithField("addr", srv.Addr).Info("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("server terminated")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("graceful shutdown failed")
	}
}
