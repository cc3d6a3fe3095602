package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"sales-insights-go/internal/config"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/store"
	"sales-insights-go/internal/worker"
)

func main() {
	once := flag.Bool("once", false, "run one recompute pass and exit")
	flag.Parse()

	cfg := config.Load()
	log := logger.New()
	log.WithField("service", "sales-insights-worker").Info("starting worker")

	st, err := store.New(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()

	holder := insights.NewModelHolder(insights.GatewayConfig{
		BaseURL:        cfg.ModelGatewayURL,
		APIKey:         cfg.ModelAPIKey,
		SentimentModel: cfg.SentimentModel,
		EmbeddingModel: cfg.EmbeddingModel,
	}, log.WithComponent("models"))
	proc := insights.NewProcessor(holder, log.WithComponent("insights"))

	recomputer := worker.NewRecomputer(st, proc, log.WithComponent("recompute"))

	if *once {
		if _, _, err := recomputer.Run(context.Background()); err != nil {
			log.WithError(err).Fatal("recompute failed")
		}
		return
	}

	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := recomputer.Schedule(c); err != nil {
		log.WithError(err).Fatal("failed to schedule recompute")
	}
	c.Start()
	log.Info("nightly recompute scheduled for 02:00 UTC")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("shutting down")
	<-c.Stop().Done()
}
