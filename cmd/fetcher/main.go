package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"sentinews/db"
	"sentinews/internal/aggregator"
	"sentinews/internal/config"
	"sentinews/internal/repository"
	"sentinews/internal/sentiment"
	"sentinews/pkg/news"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	clients := news.BuildClients(cfg)
	if len(clients) == 0 {
		log.Fatal("no provider API keys configured")
	}

	engine, err := sentiment.NewEngine(cfg)
	if err != nil {
		log.Fatalf("error building sentiment engine: %v", err)
	}
	scorer := sentiment.NewScorer(engine)

	repo := repository.NewArticleRepository(db.DB)

	end := time.Now().UTC()
	start := end.AddDate(0, 0, -cfg.FetchWindowDays)
	tickers := cfg.DefaultTickers()

	slog.Info("starting fetch cycle",
		"providers", len(clients), "tickers", len(tickers),
		"window_days", cfg.FetchWindowDays)

	articles := aggregator.Aggregate(context.Background(), clients, tickers, start, end)
	if len(articles) == 0 {
		slog.Info("no data from any provider this cycle")
		return
	}

	if cfg.EnrichTickers {
		articles = aggregator.EnrichTickers(articles, tickers)
	}

	articles = scorer.ScoreAll(articles)

	saved, err := repo.Upsert(articles)
	if err != nil {
		log.Fatalf("error saving articles: %v", err)
	}

	purged, err := repo.Purge(cfg.RetentionDays)
	if err != nil {
		log.Fatalf("error purging old articles: %v", err)
	}

	slog.Info("fetch cycle complete",
		"fetched", len(articles), "saved", saved, "purged", purged,
		"retention_days", cfg.RetentionDays)
}
