package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"sentinews/internal/cache"
	"sentinews/internal/model"
)

type ArticleStore interface {
	Query(tickers []string, start, end *time.Time, limit int) ([]model.Article, error)
	SentimentSummary(tickers []string, start, end *time.Time) (*model.SentimentSummary, error)
	Count() (int, error)
}

type ArticleHandler struct {
	store   ArticleStore
	cache   *cache.ResponseCache
	sectors map[string][]string
	sources []string
}

func NewArticleHandler(store ArticleStore, responseCache *cache.ResponseCache, sectors map[string][]string, sources []string) *ArticleHandler {
	return &ArticleHandler{
		store:   store,
		cache:   responseCache,
		sectors: sectors,
		sources: sources,
	}
}

func (h *ArticleHandler) GetArticles(c *gin.Context) {
	tickers := parseTickers(c.Query("tickers"))
	limit := getQueryLimit(c)

	start, ok := parseTimeParam(c, "start")
	if !ok {
		return
	}
	end, ok := parseTimeParam(c, "end")
	if !ok {
		return
	}

	key := cache.Key("articles", c.Request.URL.RawQuery)
	if data, hit := h.cache.Get(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	articles, err := h.store.Query(tickers, start, end, limit)
	if err != nil {
		slog.Error("error querying articles", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	articleRes := make([]ArticleResponse, 0, len(articles))
	for _, a := range articles {
		articleRes = append(articleRes, ArticleResponse{
			Provider:       string(a.SourceProvider),
			Title:          a.Title,
			URL:            a.URL,
			Content:        a.Content,
			SourceName:     a.SourceName,
			Published:      a.Published.UTC().Format(time.RFC3339),
			Tickers:        a.Tickers,
			SentimentScore: a.SentimentScore,
			SentimentLabel: string(a.SentimentLabel),
			ItemType:       string(a.ItemType),
		})
	}

	res := FeedResponse{
		Articles: articleRes,
		Count:    len(articleRes),
		Limit:    limit,
	}

	h.respondCached(c, key, res)
}

func (h *ArticleHandler) GetSentimentSummary(c *gin.Context) {
	tickers := parseTickers(c.Query("tickers"))

	start, ok := parseTimeParam(c, "start")
	if !ok {
		return
	}
	end, ok := parseTimeParam(c, "end")
	if !ok {
		return
	}

	key := cache.Key("summary", c.Request.URL.RawQuery)
	if data, hit := h.cache.Get(c.Request.Context(), key); hit {
		c.Data(http.StatusOK, "application/json; charset=utf-8", data)
		return
	}

	summary, err := h.store.SentimentSummary(tickers, start, end)
	if err != nil {
		slog.Error("error querying sentiment summary", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	res := SentimentSummaryResponse{
		Positive:     summary.Positive,
		Neutral:      summary.Neutral,
		Negative:     summary.Negative,
		Total:        summary.Total,
		AverageScore: summary.AverageScore,
	}

	h.respondCached(c, key, res)
}

func (h *ArticleHandler) GetSectors(c *gin.Context) {
	c.JSON(http.StatusOK, SectorsResponse{
		Sectors: h.sectors,
		Sources: h.sources,
	})
}

func (h *ArticleHandler) GetHealth(c *gin.Context) {
	_, err := h.store.Count()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":   "unhealthy",
			"database": "disconnected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"database": "connected",
	})
}

// respondCached serializes once so the cached bytes and the live response
// are identical.
func (h *ArticleHandler) respondCached(c *gin.Context, key string, res interface{}) {
	data, err := json.Marshal(res)
	if err != nil {
		slog.Error("error encoding response", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Encoding error"})
		return
	}

	h.cache.Set(c.Request.Context(), key, data)
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

func parseTickers(raw string) []string {
	if raw == "" {
		return nil
	}

	var tickers []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			tickers = append(tickers, t)
		}
	}
	return tickers
}

// parseTimeParam accepts RFC3339 or a bare date. A bare-date end is
// widened to the end of that day so the day's articles stay in the
// window. A malformed value is a 400 and the handler stops.
func parseTimeParam(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}

	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, raw); err == nil {
			ts = ts.UTC()
			if layout == "2006-01-02" && name == "end" {
				ts = ts.Add(24*time.Hour - time.Nanosecond)
			}
			return &ts, true
		}
	}

	slog.Warn("invalid time parameter", "param", name, "value", raw)
	c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " parameter"})
	return nil, false
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	raw := c.Query(name)
	if raw == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(raw)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", raw, "error", err)
		return defaultValue
	}
	return parsed
}

func getQueryLimit(c *gin.Context) int {
	const (
		defaultLimit = 100
		maxLimit     = 1000
	)

	limit := getQueryInt("limit", defaultLimit, c)
	if limit < 1 {
		slog.Warn("invalid query parameter, using default", "param", "limit", "value", limit, "default", defaultLimit)
		return defaultLimit
	}

	if limit > maxLimit {
		slog.Warn("query parameter exceeds max, clamping", "param", "limit", "value", limit, "max", maxLimit)
		return maxLimit
	}

	return limit
}
