package main

import (
	"context"
	"flag"
	"time"

	"sales-insights-go/internal/config"
	"sales-insights-go/internal/ingest"
	"sales-insights-go/internal/insights"
	"sales-insights-go/internal/logger"
	"sales-insights-go/internal/store"
)

func main() {
	count := flag.Int("count", 200, "number of synthetic calls to generate")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random seed for the generator")
	xlsxPath := flag.String("xlsx", "", "import call records from a spreadsheet instead of generating")
	flag.Parse()

	cfg := config.Load()
	log := logger.New()
	log.WithField("service", "sales-insights-ingest").Info("starting ingestion")

	st, err := store.New(cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer st.Close()
	if err := st.Migrate(); err != nil {
		log.WithError(err).Fatal("failed to apply migrations")
	}

	holder := insights.NewModelHolder(insights.GatewayConfig{
		BaseURL:        cfg.ModelGatewayURL,
		APIKey:         cfg.ModelAPIKey,
		SentimentModel: cfg.SentimentModel,
		EmbeddingModel: cfg.EmbeddingModel,
	}, log.WithComponent("models"))
	proc := insights.NewProcessor(holder, log.WithComponent("insights"))

	runner := ingest.NewRunner(st, proc, log.WithComponent("ingest"))
	ctx := context.Background()

	if *xlsxPath != "" {
		records, err := ingest.LoadXLSX(*xlsxPath)
		if err != nil {
			log.WithError(err).Fatal("failed to load spreadsheet")
		}
		log.WithField("records", len(records)).Info("spreadsheet loaded")
		runner.IngestRecords(ctx, records)
		return
	}

	runner.IngestSynthetic(ctx, ingest.NewGenerator(*seed), *count)
}
