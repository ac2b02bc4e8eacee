package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sentinews/db"
	"sentinews/internal/cache"
	"sentinews/internal/config"
	"sentinews/internal/handler"
	"sentinews/internal/repository"
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

	var responseCache *cache.ResponseCache
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(cfg.RedisURL); err != nil {
			slog.Warn("Redis unavailable, serving uncached", "error", err)
		} else {
			defer db.CloseRedis()
			responseCache = cache.New(db.Redis, cfg.CacheTTL)
		}
	}

	repo := repository.NewArticleRepository(db.DB)
	articleHandler := handler.NewArticleHandler(repo, responseCache, cfg.Sectors, cfg.Sources)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}
	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/articles", articleHandler.GetArticles)
	r.GET("/sentiment/summary", articleHandler.GetSentimentSummary)
	r.GET("/sectors", articleHandler.GetSectors)
	r.GET("/health", articleHandler.GetHealth)

	err = r.Run(":8080")
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
